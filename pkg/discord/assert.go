package discord

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// embedTimestampLayout parses the ISO instant written into embeds. The trailing Z is a literal since embeds are always
// rendered in UTC.
const embedTimestampLayout = "2006-01-02T15:04:05.000Z"

// AssertPayloadMatchesMessage asserts that the given webhook payload is the rendering of the given message. It checks
// that the payload has exactly one embed, that the description, color, and labeled fields match, and that the embed
// timestamp is within a second of the expected one. If the expected message has a zero timestamp, it uses time.Now()
// as the expected timestamp.
func AssertPayloadMatchesMessage(t *testing.T, expected Message, actual WebhookPayload) {
	t.Helper()

	expectedTimestamp := expected.Timestamp
	if expectedTimestamp.IsZero() {
		expectedTimestamp = time.Now()
	}

	require.Len(t, actual.Embeds, 1, "expected exactly one embed in the payload")

	embed := actual.Embeds[0]
	require.Equal(t, expected.Description, embed.Description, "expected descriptions to match")
	require.Equal(t, LevelColor(expected.Level), embed.Color, "expected colors to match")

	actualTimestamp, err := time.Parse(embedTimestampLayout, embed.Timestamp)
	require.NoError(t, err, "expected embed timestamp to parse as an ISO instant")
	require.WithinDuration(t, expectedTimestamp.UTC(), actualTimestamp, time.Second,
		"expected timestamps to be within 1 second of each other")

	expectedFields := (&Message{
		Level:  expected.Level,
		Module: expected.Module,
		Extra:  expected.Extra,
	}).AsEmbed().Fields
	require.Equal(t, expectedFields, embed.Fields, "expected labeled fields to match")
}
