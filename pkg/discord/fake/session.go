package fake

import (
	"context"
	"fmt"
	"sync"

	"github.com/loggord/discord-logger/pkg/discord"
)

// Session is a fake bot session resolving channels from an in-memory map. Resolving an identifier that has not been
// added returns an error, matching a bot whose channel cache does not know the channel.
type Session struct {
	channels map[string]*Channel
	lock     *sync.RWMutex
}

// Assert that Session implements the [discord.Session] interface.
var _ discord.Session = (*Session)(nil)

// NewSession creates a new Session with no channels. It is safe to call concurrently from multiple goroutines.
func NewSession() *Session {
	return &Session{
		channels: make(map[string]*Channel),
		lock:     &sync.RWMutex{},
	}
}

// AddChannel registers a channel under the given identifier and returns it for later inspection.
func (session *Session) AddChannel(id string) *Channel {
	session.lock.Lock()
	defer session.lock.Unlock()

	channel := &Channel{lock: &sync.RWMutex{}}
	session.channels[id] = channel

	return channel
}

// Channel resolves a previously added channel by its identifier.
//
//nolint:ireturn // Necessary to implement the Session interface.
func (session *Session) Channel(_ context.Context, id string) (discord.Channel, error) {
	session.lock.RLock()
	defer session.lock.RUnlock()

	channel, ok := session.channels[id]
	if !ok {
		return nil, fmt.Errorf("fake session has no channel %q", id)
	}

	return channel, nil
}

// Channel is a fake channel recording every embed sent to it.
type Channel struct {
	embeds  []discord.Embed
	sendErr error
	lock    *sync.RWMutex
}

// Assert that Channel implements the [discord.Channel] interface.
var _ discord.Channel = (*Channel)(nil)

// WithError makes every subsequent SendEmbed return the given error without recording the embed.
func (channel *Channel) WithError(err error) *Channel {
	channel.lock.Lock()
	defer channel.lock.Unlock()

	channel.sendErr = err

	return channel
}

// SendEmbed records the given embed. It is safe to call concurrently from multiple goroutines.
func (channel *Channel) SendEmbed(_ context.Context, embed discord.Embed) error {
	channel.lock.Lock()
	defer channel.lock.Unlock()

	if channel.sendErr != nil {
		return channel.sendErr
	}

	channel.embeds = append(channel.embeds, embed)

	return nil
}

// Embeds returns a copy of the embeds that have been sent to the channel. It is safe to call concurrently from
// multiple goroutines.
func (channel *Channel) Embeds() []discord.Embed {
	channel.lock.RLock()
	defer channel.lock.RUnlock()

	embeds := make([]discord.Embed, len(channel.embeds))
	copy(embeds, channel.embeds)

	return embeds
}
