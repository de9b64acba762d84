// Package bot wires a [discordgo.Session] into the bot-target capabilities of the discord package. The adapter
// resolves channels through the session's state cache, falling back to the REST API, and dispatches scheduled sends on
// their own goroutines. Task errors go to a configurable handler that defaults to writing on stderr, since a
// fire-and-forget send has no caller left to return to.
package bot

import (
	"context"
	"fmt"
	"os"

	"github.com/bwmarrin/discordgo"

	"github.com/loggord/discord-logger/pkg/discord"
)

// Adapter implements [discord.Session] and [discord.Scheduler] on top of a [discordgo.Session]. The underlying
// session is owned by the caller; the adapter never opens or closes it.
type Adapter struct {
	session *discordgo.Session
	onError func(error)
}

// Assert that Adapter implements the bot-target capabilities.
var (
	_ discord.Session   = (*Adapter)(nil)
	_ discord.Scheduler = (*Adapter)(nil)
)

// Wrap returns an Adapter around the given session. Task errors are written to stderr unless
// [Adapter.WithErrorHandler] installs another handler.
func Wrap(session *discordgo.Session) *Adapter {
	return &Adapter{
		session: session,
		onError: func(err error) {
			fmt.Fprintf(os.Stderr, "discord log send failed: %v\n", err)
		},
	}
}

// WithErrorHandler returns a new Adapter reporting task errors to the given handler. The original Adapter is not
// modified.
func (adapter *Adapter) WithErrorHandler(onError func(error)) *Adapter {
	return &Adapter{
		session: adapter.session,
		onError: onError,
	}
}

// Channel resolves a channel by its identifier, preferring the session's state cache and falling back to the REST API.
//
//nolint:ireturn // Necessary to implement the Session interface.
func (adapter *Adapter) Channel(ctx context.Context, id string) (discord.Channel, error) {
	_, err := adapter.session.State.Channel(id)
	if err != nil {
		_, err = adapter.session.Channel(id, discordgo.WithContext(ctx))
	}

	if err != nil {
		return nil, fmt.Errorf("resolving channel %s: %w", id, err)
	}

	return &channel{session: adapter.session, id: id}, nil
}

// Schedule runs the task on its own goroutine and hands any error to the adapter's error handler.
func (adapter *Adapter) Schedule(task func(ctx context.Context) error) {
	go func() {
		err := task(context.Background())
		if err != nil && adapter.onError != nil {
			adapter.onError(err)
		}
	}()
}

// channel is a resolved channel bound to the session it was resolved through.
type channel struct {
	session *discordgo.Session
	id      string
}

var _ discord.Channel = (*channel)(nil)

// SendEmbed posts the embed to the channel.
func (ch *channel) SendEmbed(ctx context.Context, embed discord.Embed) error {
	_, err := ch.session.ChannelMessageSendEmbed(ch.id, convertEmbed(embed), discordgo.WithContext(ctx))

	return err
}

// convertEmbed translates the wire embed into discordgo's message embed.
func convertEmbed(embed discord.Embed) *discordgo.MessageEmbed {
	fields := make([]*discordgo.MessageEmbedField, 0, len(embed.Fields))
	for _, field := range embed.Fields {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   field.Name,
			Value:  field.Value,
			Inline: field.Inline,
		})
	}

	return &discordgo.MessageEmbed{
		Description: embed.Description,
		Color:       embed.Color,
		Timestamp:   embed.Timestamp,
		Fields:      fields,
	}
}
