package fake

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/loggord/discord-logger/pkg/discord"
)

// AssertMessages asserts that the Client has been sent the given messages. It handles the locking of the Client for
// reading and unlocking it after the assertion.
//
// The messages are compared so that the timestamps are within a second of the expected time, or of this function being
// called when the expected time is zero, and all other fields are equal.
//
// Like the testify/assert package, this function returns true if the assertion is successful.
func (client *Client) AssertMessages(t *testing.T, expected []discord.Message) bool {
	t.Helper()

	actual := client.Messages()
	defer client.Close()

	if !assert.Len(t, actual, len(expected)) {
		return false
	}

	ok := true
	for i := range expected {
		ok = ok && assertMessage(t, expected[i], actual[i])
	}

	return ok
}

// assertMessage asserts that the actual Message is equal to the expected Message, with the timestamp compared only to
// within a second.
//
// Like the testify/assert package, this function returns true if the assertion is successful.
func assertMessage(t *testing.T, expected discord.Message, actual discord.Message) bool {
	t.Helper()

	if expected.Timestamp.IsZero() {
		expected.Timestamp = time.Now()
	}

	ok := true
	ok = ok && assert.WithinDuration(t, expected.Timestamp, actual.Timestamp, time.Second)
	ok = ok && assert.Equal(t, expected.Level, actual.Level)
	ok = ok && assert.Equal(t, expected.Module, actual.Module)
	ok = ok && assert.Equal(t, expected.Description, actual.Description)
	ok = ok && assertExtra(t, expected.Extra, actual.Extra)

	return ok
}

func assertExtra(t *testing.T, expected map[string]string, actual map[string]string) bool {
	t.Helper()

	if !assert.Len(t, actual, len(expected)) {
		return false
	}

	ok := true
	for key, expectedValue := range expected {
		actualValue, found := actual[key]
		ok = ok && assert.Truef(t, found, "expected key `%s` to exist", key)
		ok = ok && assert.Equal(t, expectedValue, actualValue)
	}

	return ok
}
