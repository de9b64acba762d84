// Package discord provides the types and transports for sending log messages to a Discord channel. A message can be
// delivered either synchronously through a webhook URL using [WebhookClient] or asynchronously through a caller-owned
// bot session using [BotClient]. Both transports implement the [Sender] interface, which is what the logging adapters
// in the other packages of this module are built against.
package discord

import (
	"encoding/json"
	"log/slog"
	"slices"
	"strings"
	"time"
)

// Accent colors for the embed, keyed by severity. Records at error severity or above are red, warnings are yellow, and
// everything below is a neutral grey.
const (
	ColorError   = 0xE74C3C
	ColorWarning = 0xF1C40F
	ColorNeutral = 0x95A5A6
)

// displayLayout is the layout of the human-readable timestamp shown in the embed. It intentionally carries no
// sub-second precision.
const displayLayout = "2006-01-02 15:04:05"

// Message is a single log record rendered for delivery to Discord. It contains the timestamp, severity, originating
// module, message text, and any extra labeled fields contributed by the logging adapter. It has no knowledge of which
// transport will carry it.
type Message struct {
	Timestamp   time.Time
	Level       slog.Level
	Module      string
	Description string
	// Extra holds additional labeled fields appended to the embed after the Level and Module fields, in sorted key
	// order. It may be nil.
	Extra map[string]string
}

// Embed is the wire representation of a single Discord embed.
type Embed struct {
	Description string       `json:"description"`
	Color       int          `json:"color"`
	Timestamp   string       `json:"timestamp"`
	Fields      []EmbedField `json:"fields"`
}

// EmbedField is a single labeled field within an [Embed].
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// WebhookPayload is the body of a webhook POST. Discord accepts up to ten embeds per payload, but this module only
// ever sends one per log record.
type WebhookPayload struct {
	Embeds []Embed `json:"embeds"`
}

// LevelColor returns the embed accent color for the given severity. Levels at or above [slog.LevelError] map to
// [ColorError], levels at or above [slog.LevelWarn] map to [ColorWarning], and everything below maps to
// [ColorNeutral].
func LevelColor(level slog.Level) int {
	switch {
	case level >= slog.LevelError:
		return ColorError
	case level >= slog.LevelWarn:
		return ColorWarning
	default:
		return ColorNeutral
	}
}

// FormatTimestamp renders the given time in UTC using the display layout, i.e. `YYYY-MM-DD HH:MM:SS`.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(displayLayout)
}

// DisplayTimestamp truncates a formatted timestamp at the first comma, dropping any trailing millisecond or locale
// suffix. A timestamp without a comma is returned unchanged.
func DisplayTimestamp(formatted string) string {
	display, _, _ := strings.Cut(formatted, ",")

	return display
}

// ISOTimestamp converts a display timestamp to the ISO-8601 UTC instant Discord expects in the embed timestamp field.
// The separating space is replaced with `T` and `.000Z` is appended.
func ISOTimestamp(display string) string {
	return strings.Replace(display, " ", "T", 1) + ".000Z"
}

// AsEmbed renders the Message as an [Embed]. The Level and Module fields always come first, followed by any Extra
// fields in sorted key order. This method does not modify the Message.
func (message *Message) AsEmbed() Embed {
	display := FormatTimestamp(message.Timestamp)

	fields := []EmbedField{
		{Name: "Level", Value: message.Level.String(), Inline: true},
		{Name: "Module", Value: message.Module, Inline: true},
	}

	keys := make([]string, 0, len(message.Extra))
	for key := range message.Extra {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		fields = append(fields, EmbedField{Name: key, Value: message.Extra[key], Inline: true})
	}

	return Embed{
		Description: message.Description,
		Color:       LevelColor(message.Level),
		Timestamp:   ISOTimestamp(display),
		Fields:      fields,
	}
}

// AsWebhookPayload wraps the rendered embed in a [WebhookPayload] for the webhook transport. This method does not
// modify the Message.
func (message *Message) AsWebhookPayload() WebhookPayload {
	return WebhookPayload{
		Embeds: []Embed{message.AsEmbed()},
	}
}

// Encode serializes the Message as the JSON body of a webhook POST. This method does not modify the Message.
func (message *Message) Encode() ([]byte, error) {
	payload := message.AsWebhookPayload()

	buf, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return buf, nil
}
