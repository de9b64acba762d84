package discord_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/loggord/discord-logger/pkg/discord"
	"github.com/loggord/discord-logger/pkg/internal/fake"
)

var testStatusError = discord.StatusError{
	StatusCode: 500,
	Status:     "500 Internal Server Error",
	Body:       []byte("Internal Server Error"),
}

func TestWebhookClient_Send(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		message       discord.Message
		expectedError error
	}{
		{
			name: "success",
			message: discord.Message{
				Timestamp:   time.Now(),
				Level:       slog.LevelError,
				Module:      "worker",
				Description: "boom",
			},
			expectedError: nil,
		},
		{
			name:          "error",
			message:       discord.Message{},
			expectedError: &testStatusError,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			sendError := uint(0)
			if testCase.expectedError != nil {
				sendError = 1
			}

			fakeServer := fake.NewServer(sendError)
			httpServer := fakeServer.Start()

			defer httpServer.Close()

			webhookClient := discord.NewWebhookClient(httpServer.URL)
			err := webhookClient.Send(context.Background(), testCase.message)

			if testCase.expectedError != nil {
				require.Error(t, err)
				require.Exactly(t, testCase.expectedError, err)

				payloads := fakeServer.Payloads()
				defer fakeServer.Close()

				require.Empty(t, payloads, "expected no payload to be stored on failure")

				return
			}

			require.NoError(t, err)

			payloads := fakeServer.Payloads()
			defer fakeServer.Close()

			require.Len(t, payloads, 1, "expected exactly one payload to be posted")
			discord.AssertPayloadMatchesMessage(t, testCase.message, payloads[0])
		})
	}
}

func TestWebhookClient_SendHeaders(t *testing.T) {
	t.Parallel()

	fakeServer := fake.NewServer(0)
	httpServer := fakeServer.Start()

	defer httpServer.Close()

	webhookClient := discord.NewWebhookClient(httpServer.URL)
	err := webhookClient.Send(context.Background(), discord.Message{Description: "headers"})
	require.NoError(t, err)

	headers := fakeServer.Headers()
	defer fakeServer.Close()

	require.Len(t, headers, 1)
	require.Equal(t, "application/json", headers[0].Get("Content-Type"))
	require.Equal(t, "Mozilla/5.0", headers[0].Get("User-Agent"))
}

// Failed sends must be idempotent: repeating the same send against the same failing endpoint yields the same error,
// and a later attempt succeeds once the endpoint recovers.
func TestWebhookClient_SendRepeatedFailure(t *testing.T) {
	t.Parallel()

	fakeServer := fake.NewServer(2)
	httpServer := fakeServer.Start()

	defer httpServer.Close()

	webhookClient := discord.NewWebhookClient(httpServer.URL)
	message := discord.Message{Description: "retry me"}

	firstErr := webhookClient.Send(context.Background(), message)
	secondErr := webhookClient.Send(context.Background(), message)

	require.Exactly(t, firstErr, secondErr)
	require.ErrorIs(t, firstErr, &discord.StatusError{})

	require.NoError(t, webhookClient.Send(context.Background(), message))

	payloads := fakeServer.Payloads()
	defer fakeServer.Close()

	require.Len(t, payloads, 1)
}

func TestWebhookClient_SendTransportError(t *testing.T) {
	t.Parallel()

	// Nothing listens on this address, so the POST fails before any status code exists.
	webhookClient := discord.NewWebhookClient("http://127.0.0.1:1")
	err := webhookClient.Send(context.Background(), discord.Message{})

	require.Error(t, err)
	require.False(t, errors.Is(err, &discord.StatusError{}))
}

func TestWebhookClient_WithHTTPClient(t *testing.T) {
	t.Parallel()

	fakeServer := fake.NewServer(0)
	httpServer := fakeServer.Start()

	defer httpServer.Close()

	webhookClient := discord.NewWebhookClient(httpServer.URL).
		WithHTTPClient(&http.Client{Timeout: time.Second})

	require.NoError(t, webhookClient.Send(context.Background(), discord.Message{Description: "with client"}))
}
