package discord

import "context"

// Session is the channel-resolution capability of a caller-owned bot connection. The sink never opens or closes the
// underlying connection; it only asks it for channels.
type Session interface {
	// Channel resolves a channel by its identifier. Resolution happens inside the scheduled send task, so a
	// failure here surfaces through the scheduler, not through [BotClient.Send].
	Channel(ctx context.Context, id string) (Channel, error)
}

// Channel is a resolved Discord channel that can receive embeds.
type Channel interface {
	SendEmbed(ctx context.Context, embed Embed) error
}

// Scheduler is the fire-and-forget dispatch capability the bot transport hands its send tasks to. It is owned by the
// caller, never by the sink, and its policy for task errors is its own. Ordering between scheduled tasks is whatever
// the implementation provides.
type Scheduler interface {
	Schedule(task func(ctx context.Context) error)
}

// SchedulerFunc adapts an ordinary function to the [Scheduler] interface.
type SchedulerFunc func(task func(ctx context.Context) error)

// Schedule calls the underlying function with the task.
func (schedule SchedulerFunc) Schedule(task func(ctx context.Context) error) {
	schedule(task)
}

// BotClient delivers messages through a caller-owned bot session. Send only schedules the delivery and returns
// immediately; the scheduled task resolves the channel by its stored identifier and posts the rendered embed to it.
type BotClient struct {
	session   Session
	scheduler Scheduler
	channelID string
}

// Assert that BotClient implements the [Sender] interface.
var _ Sender = (*BotClient)(nil)

// NewBotClient creates a new BotClient posting to the channel with the given identifier through the given session.
// Send tasks are handed to the given scheduler.
func NewBotClient(session Session, scheduler Scheduler, channelID string) *BotClient {
	return &BotClient{
		session:   session,
		scheduler: scheduler,
		channelID: channelID,
	}
}

// Send renders the message and schedules its delivery, returning nil without waiting for the send to run. A failure to
// resolve the channel or to post the embed is the scheduled task's return value and surfaces only through the
// scheduler's own error policy.
func (botClient *BotClient) Send(_ context.Context, message Message) error {
	embed := message.AsEmbed()

	botClient.scheduler.Schedule(func(ctx context.Context) error {
		channel, err := botClient.session.Channel(ctx, botClient.channelID)
		if err != nil {
			return err
		}

		return channel.SendEmbed(ctx, embed)
	})

	return nil
}
