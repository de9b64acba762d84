package slog

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/loggord/discord-logger/pkg/discord"
	"github.com/loggord/discord-logger/pkg/discord/fake"
	internalfake "github.com/loggord/discord-logger/pkg/internal/fake"
)

func TestConfigure_ConfigurationErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		config        discord.Config
		expectedError error
	}{
		{
			name:          "neither",
			config:        discord.Config{},
			expectedError: discord.ErrNoTarget,
		},
		{
			name: "both",
			config: discord.Config{
				Session:    fake.NewSession(),
				Scheduler:  fake.NewScheduler(),
				ChannelID:  "123",
				WebhookURL: "https://discord.com/api/webhooks/0/example",
			},
			expectedError: discord.ErrBothTargets,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			logger, err := Configure("app", testCase.config)

			require.ErrorIs(t, err, testCase.expectedError)
			require.Nil(t, logger)
		})
	}
}

func TestConfigure_Webhook(t *testing.T) {
	t.Parallel()

	fakeServer := internalfake.NewServer(0)
	httpServer := fakeServer.Start()

	defer httpServer.Close()

	logger, err := Configure("app", discord.Config{WebhookURL: httpServer.URL})
	require.NoError(t, err)

	// The Discord sink only activates at info and above, so the debug record goes nowhere.
	logger.Debug("too quiet")
	logger.Info("loud enough")

	payloads := fakeServer.Payloads()
	defer fakeServer.Close()

	require.Len(t, payloads, 1)
	discord.AssertPayloadMatchesMessage(t, discord.Message{
		Timestamp:   time.Now(),
		Level:       slog.LevelInfo,
		Module:      "configure_test",
		Description: "loud enough",
		Extra:       map[string]string{loggerKey: "app"},
	}, payloads[0])
}

// With a debug-level companion handler, the joined logger captures all severities while the Discord sink still only
// receives info and above.
func TestConfigure_MostPermissiveLogger(t *testing.T) {
	t.Parallel()

	debugSender := fake.New()
	debugHandler := NewHandler(debugSender, &slog.HandlerOptions{Level: slog.LevelDebug})

	discordSender := fake.New()
	// Build the same shape Configure produces, with the fake sender standing in for the webhook client.
	discordHandler := NewHandler(discordSender, &slog.HandlerOptions{Level: slog.LevelInfo})
	logger := NewJoinedLogger(debugHandler, discordHandler).With(slog.String(loggerKey, "app"))

	require.True(t, logger.Enabled(context.Background(), slog.LevelDebug))

	logger.Debug("debug record")
	logger.Info("info record")

	debugSender.AssertMessages(t, []discord.Message{
		{
			Level:       slog.LevelDebug,
			Module:      "configure_test",
			Description: "debug record",
			Extra:       map[string]string{loggerKey: "app"},
		},
		{
			Level:       slog.LevelInfo,
			Module:      "configure_test",
			Description: "info record",
			Extra:       map[string]string{loggerKey: "app"},
		},
	})
	discordSender.AssertMessages(t, []discord.Message{
		{
			Level:       slog.LevelInfo,
			Module:      "configure_test",
			Description: "info record",
			Extra:       map[string]string{loggerKey: "app"},
		},
	})
}
