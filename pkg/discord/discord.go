package discord

import "context"

// Sender is the interface shared by both delivery transports. The logging adapters in this module are written against
// it, so a fake can be swapped in for testing.
type Sender interface {
	// Send delivers a single message to the configured Discord channel. The webhook transport blocks for the full
	// HTTP round trip and returns any delivery failure. The bot transport only schedules the send and always
	// returns nil.
	Send(ctx context.Context, message Message) error
}

// Config selects the delivery target for a sink. Exactly one of the bot target (Session, Scheduler, and ChannelID) or
// the webhook target (WebhookURL) must be set.
type Config struct {
	// Session is the caller-owned bot session used to resolve the channel. Setting it selects the bot target.
	Session Session
	// Scheduler receives the fire-and-forget send tasks for the bot target. Required when Session is set.
	Scheduler Scheduler
	// ChannelID identifies the channel the bot target posts to.
	ChannelID string
	// WebhookURL is the webhook endpoint. Setting it selects the webhook target.
	WebhookURL string
}

// New constructs the Sender selected by the Config. It returns [ErrBothTargets] if both a bot session and a webhook
// URL are set, [ErrNoTarget] if neither is, and [ErrNoScheduler] if a bot session is set without a scheduler.
// Construction performs no I/O, so a configuration error leaves no side effect behind.
//
//nolint:ireturn // Which transport is returned depends on the Config.
func New(config Config) (Sender, error) {
	if config.Session != nil && config.WebhookURL != "" {
		return nil, ErrBothTargets
	}

	if config.Session == nil && config.WebhookURL == "" {
		return nil, ErrNoTarget
	}

	if config.Session != nil {
		if config.Scheduler == nil {
			return nil, ErrNoScheduler
		}

		return NewBotClient(config.Session, config.Scheduler, config.ChannelID), nil
	}

	return NewWebhookClient(config.WebhookURL), nil
}
