package main

import (
	"context"
	"log/slog"

	"github.com/loggord/discord-logger/pkg/discord"
	discordslog "github.com/loggord/discord-logger/pkg/slog"
)

func main() {
	webhookClient := discord.NewWebhookClient("https://discord.com/api/webhooks/0/example")
	logger := discordslog.NewLogger(webhookClient, nil)
	logger.LogAttrs(context.Background(), slog.LevelInfo, "Hello, world!", slog.Bool("test", true))
}
