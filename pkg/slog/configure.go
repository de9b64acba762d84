package slog

import (
	"log/slog"

	"github.com/loggord/discord-logger/pkg/discord"
)

// loggerKey is the attribute key carrying the configured logger name on every record.
const loggerKey = "logger"

// Configure builds a logger that sends records to Discord in one call. It constructs the sender selected by the
// config, attaches the Discord handler at [slog.LevelInfo] and above, joins it with any additional handlers, and
// returns a logger carrying the given name as a `logger` attribute.
//
// The joined logger accepts every level any of its handlers accepts, so pairing the Discord handler with, say, a
// debug-level console handler captures all severities while Discord still only receives info and above.
//
// A configuration error from [discord.New] is returned before any handler is attached, leaving no side effect behind.
func Configure(name string, config discord.Config, handlers ...slog.Handler) (*slog.Logger, error) {
	sender, err := discord.New(config)
	if err != nil {
		return nil, err
	}

	discordHandler := NewHandler(sender, &slog.HandlerOptions{Level: slog.LevelInfo})
	joined := NewJoinedHandler(append(handlers, discordHandler)...)

	return slog.New(joined).With(slog.String(loggerKey, name)), nil
}
