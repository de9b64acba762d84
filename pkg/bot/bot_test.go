package bot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"

	"github.com/loggord/discord-logger/pkg/discord"
)

var errTask = errors.New("task failed")

func TestConvertEmbed(t *testing.T) {
	t.Parallel()

	embed := discord.Embed{
		Description: "boom",
		Color:       discord.ColorError,
		Timestamp:   "2024-03-01T12:00:00.000Z",
		Fields: []discord.EmbedField{
			{Name: "Level", Value: "ERROR", Inline: true},
			{Name: "Module", Value: "worker", Inline: true},
		},
	}

	expected := &discordgo.MessageEmbed{
		Description: "boom",
		Color:       discord.ColorError,
		Timestamp:   "2024-03-01T12:00:00.000Z",
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Level", Value: "ERROR", Inline: true},
			{Name: "Module", Value: "worker", Inline: true},
		},
	}

	require.Equal(t, expected, convertEmbed(embed))
}

func TestAdapter_ScheduleReportsErrors(t *testing.T) {
	t.Parallel()

	errChan := make(chan error, 1)
	adapter := Wrap(nil).WithErrorHandler(func(err error) {
		errChan <- err
	})

	adapter.Schedule(func(_ context.Context) error {
		return errTask
	})

	select {
	case err := <-errChan:
		require.ErrorIs(t, err, errTask)
	case <-time.After(time.Second):
		t.Fatal("expected the error handler to be called")
	}
}

func TestAdapter_ScheduleSwallowsSuccess(t *testing.T) {
	t.Parallel()

	called := make(chan struct{})
	adapter := Wrap(nil).WithErrorHandler(func(_ error) {
		t.Error("error handler called for a successful task")
	})

	adapter.Schedule(func(_ context.Context) error {
		close(called)

		return nil
	})

	select {
	case <-called:
	case <-time.After(time.Second):
		t.Fatal("expected the task to run")
	}
}

func TestAdapter_WithErrorHandlerDoesNotModifyOriginal(t *testing.T) {
	t.Parallel()

	adapter := Wrap(nil)
	original := adapter.onError

	replaced := adapter.WithErrorHandler(nil)

	require.NotNil(t, original)
	require.Nil(t, replaced.onError)
	require.NotNil(t, adapter.onError)
}
