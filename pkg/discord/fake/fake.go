// Package fake provides in-memory fakes for testing the logging adapters. The fake [Client] implements the
// [discord.Sender] interface but saves all messages in memory, and the fakes for the bot-target capabilities allow
// scripting channel resolution and controlling exactly when scheduled sends run.
package fake

import (
	"context"
	"sync"

	"github.com/loggord/discord-logger/pkg/discord"
)

// Client is a fake sender that stores all sent messages in memory.
type Client struct {
	messages []discord.Message
	err      error
	lock     *sync.RWMutex
}

// Assert that Client implements the [discord.Sender] interface.
var _ discord.Sender = (*Client)(nil)

// New creates a new Client. It is safe to call concurrently from multiple goroutines.
func New() *Client {
	return &Client{
		lock: &sync.RWMutex{},
	}
}

// WithError makes every subsequent Send return the given error without recording the message.
func (client *Client) WithError(err error) *Client {
	client.lock.Lock()
	defer client.lock.Unlock()

	client.err = err

	return client
}

// Send records the given message. It is safe to call concurrently from multiple goroutines.
func (client *Client) Send(_ context.Context, message discord.Message) error {
	client.lock.Lock()
	defer client.lock.Unlock()

	if client.err != nil {
		return client.err
	}

	client.messages = append(client.messages, message)

	return nil
}

// Messages returns all messages that have been sent to the Client. Messages should not be modified by the caller. It
// locks the Client for reading, so each call should be followed by a call to Close. It is safe to call concurrently
// from multiple goroutines.
func (client *Client) Messages() []discord.Message {
	client.lock.RLock()

	return client.messages
}

// Close unlocks the Client for reading. Each call to Messages should be paired with a call to Close.
func (client *Client) Close() {
	client.lock.RUnlock()
}
