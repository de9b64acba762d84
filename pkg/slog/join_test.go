package slog

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/loggord/discord-logger/pkg/discord"
	"github.com/loggord/discord-logger/pkg/discord/fake"
)

func TestJoinedHandler_Enabled(t *testing.T) {
	t.Parallel()

	debugHandler := NewHandler(fake.New(), &slog.HandlerOptions{Level: slog.LevelDebug})
	infoHandler := NewHandler(fake.New(), &slog.HandlerOptions{Level: slog.LevelInfo})

	joined := NewJoinedHandler(debugHandler, infoHandler)

	require.True(t, joined.Enabled(context.Background(), slog.LevelDebug), "expected the most permissive member to win")
	require.True(t, joined.Enabled(context.Background(), slog.LevelError))

	strict := NewJoinedHandler(infoHandler)
	require.False(t, strict.Enabled(context.Background(), slog.LevelDebug))
}

// A record admitted by a permissive member must still be filtered before a stricter member. This is what lets a logger
// capture all severities while Discord only receives info and above.
func TestJoinedHandler_HandleFiltersPerMember(t *testing.T) {
	t.Parallel()

	debugSender := fake.New()
	infoSender := fake.New()

	debugHandler := NewHandler(debugSender, &slog.HandlerOptions{Level: slog.LevelDebug})
	infoHandler := NewHandler(infoSender, &slog.HandlerOptions{Level: slog.LevelInfo})

	logger := NewJoinedLogger(debugHandler, infoHandler)

	logger.Debug("debug only")
	logger.Info("both")

	debugSender.AssertMessages(t, []discord.Message{
		{Level: slog.LevelDebug, Module: "join_test", Description: "debug only"},
		{Level: slog.LevelInfo, Module: "join_test", Description: "both"},
	})
	infoSender.AssertMessages(t, []discord.Message{
		{Level: slog.LevelInfo, Module: "join_test", Description: "both"},
	})
}

func TestJoinedHandler_WithHandlers(t *testing.T) {
	t.Parallel()

	sender := fake.New()
	joined := NewJoinedHandler().WithHandlers(NewHandler(sender, nil))

	logger := slog.New(joined)
	logger.Info("added later")

	sender.AssertMessages(t, []discord.Message{
		{Level: slog.LevelInfo, Module: "join_test", Description: "added later"},
	})
}

func TestJoinedHandler_WithAttrsAndGroup(t *testing.T) {
	t.Parallel()

	sender := fake.New()
	joined := NewJoinedHandler(NewHandler(sender, nil)).
		WithGroup("req").
		WithAttrs([]slog.Attr{slog.String("id", "42")})

	logger := slog.New(joined)
	logger.Info("tagged")

	sender.AssertMessages(t, []discord.Message{
		{
			Level:       slog.LevelInfo,
			Module:      "join_test",
			Description: "tagged",
			Extra:       map[string]string{"req_id": "42"},
		},
	})
}

func TestJoinedHandler_Concurrent(t *testing.T) {
	t.Parallel()

	first := fake.New()
	second := fake.New()

	logger := NewJoinedLogger(
		NewHandler(first, nil),
		NewHandler(second, nil),
	)
	logger = slog.New(logger.Handler().(*JoinedHandler).WithConcurrency(true))

	logger.Info("fan out")

	first.AssertMessages(t, []discord.Message{
		{Level: slog.LevelInfo, Module: "join_test", Description: "fan out"},
	})
	second.AssertMessages(t, []discord.Message{
		{Level: slog.LevelInfo, Module: "join_test", Description: "fan out"},
	})
}
