// Package logr provides a [logr.LogSink] implementation that sends log entries to a Discord channel.
package logr

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-logr/logr"

	"github.com/loggord/discord-logger/pkg/discord"
)

const (
	// ErrorKey is the extra field added to the embed when an error is logged. Its value is the stringified error.
	ErrorKey = "error"
	// VerbosityKey is the extra field carrying the logr V-level of a log line when it is above zero.
	VerbosityKey = "v"
	// defaultModule is the Module field used when the logger has no name.
	defaultModule = "logr"
)

// New creates a new [logr.Logger] sending to the given sender. Optionally, it can be configured with the given level.
// If multiple levels are provided, the sink will log only messages with a V-level less than or equal to the first
// level provided. It is safe to call concurrently from multiple goroutines, even if the sender is shared.
//
// For more control over the sink, use [NewSink] instead and create a [logr.Logger] with that sink.
//
//	sink := NewSink(sender, level)
//	// ...configure sink...
//	logger := logr.New(sink)
func New(sender discord.Sender, level ...int) *logr.Logger {
	sink := NewSink(sender, level...)
	logger := logr.New(sink)

	return &logger
}

// Sink is a [logr.LogSink] that sends log entries to a Discord channel. Names added with WithName become the Module
// field of the embed, joined by a `/`. Keys and values, whether added to the logger or passed to a logging call,
// become extra labeled fields. Messages logged through Info are rendered at info severity and messages logged through
// Error at error severity, so only the latter get the red accent.
type Sink struct {
	sender    discord.Sender
	info      logr.RuntimeInfo
	callDepth int
	level     int
	names     []string
	// values is a map of extra fields to add to each message. It should never be nil.
	values map[string]string
}

// Assert that Sink implements the [logr.LogSink] and [logr.CallDepthLogSink] interfaces.
var (
	_ logr.LogSink          = (*Sink)(nil)
	_ logr.CallDepthLogSink = (*Sink)(nil)
)

// NewSink creates a new Sink with the given sender. Optionally, it can be configured with the given level. If multiple
// levels are provided, the sink will log only messages with a V-level less than or equal to the first level provided.
// It is safe to call concurrently from multiple goroutines, even if the sender is shared.
func NewSink(sender discord.Sender, level ...int) *Sink {
	logLevel := 0
	if len(level) > 0 {
		logLevel = level[0]
	}

	return &Sink{
		sender: sender,
		values: make(map[string]string),
		level:  logLevel,
	}
}

// WithLevel returns a new Sink with the given level. It is safe to call concurrently from multiple goroutines.
func (sink *Sink) WithLevel(level int) *Sink {
	newSink := sink.Clone()
	newSink.level = level

	return newSink
}

// Clone returns a copy of the sink. Only the sender is shared. It is safe to call concurrently from multiple
// goroutines.
func (sink *Sink) Clone() *Sink {
	newSink := &Sink{
		sender:    sink.sender,
		info:      sink.info,
		callDepth: sink.callDepth,
		level:     sink.level,
		names:     slices.Clone(sink.names),
		values:    maps.Clone(sink.values),
	}

	return newSink
}

// Init allows the sink to be initialized with the given [logr.RuntimeInfo]. It modifies the sink in place.
func (sink *Sink) Init(info logr.RuntimeInfo) {
	sink.info = info
}

// Enabled reports whether the sink is enabled for the given level, i.e. whether the provided level is less than or
// equal to the sink's level. It is safe to call concurrently from multiple goroutines.
func (sink *Sink) Enabled(level int) bool {
	return level <= sink.level
}

// Info logs the message with the provided V-level at info severity. The keys and values become extra fields of the
// embed. It is safe to call concurrently from multiple goroutines.
func (sink *Sink) Info(level int, msg string, keysAndValues ...any) {
	message := sink.createMessage(slog.LevelInfo, level, msg, keysAndValues)
	_ = sink.sender.Send(context.Background(), message)
}

// Error logs the message with the provided error at error severity. The error is added to the extra fields under
// [ErrorKey]. It is safe to call concurrently from multiple goroutines.
func (sink *Sink) Error(err error, msg string, keysAndValues ...any) {
	keysAndValues = append(keysAndValues, ErrorKey, err)
	message := sink.createMessage(slog.LevelError, 0, msg, keysAndValues)
	_ = sink.sender.Send(context.Background(), message)
}

// WithValues returns a new Sink with the given keys and values added to the extra fields. If there are an odd number
// of keys and values, the last value is ignored. It is safe to call concurrently from multiple goroutines.
//
//nolint:ireturn
func (sink *Sink) WithValues(keysAndValues ...any) logr.LogSink {
	newSink := sink.Clone()

	if len(keysAndValues)%2 != 0 {
		keysAndValues = keysAndValues[:len(keysAndValues)-1]
	}

	for i := 0; i < len(keysAndValues); i += 2 {
		key := fmt.Sprint(keysAndValues[i])
		value := fmt.Sprint(keysAndValues[i+1])
		newSink.values[key] = value
	}

	return newSink
}

// WithName returns a new Sink with the given name joined to the existing names by a `/`. The joined names become the
// Module field of the embed. It is safe to call concurrently from multiple goroutines.
//
//nolint:ireturn
func (sink *Sink) WithName(name string) logr.LogSink {
	newSink := sink.Clone()
	newSink.names = append(newSink.names, name)

	return newSink
}

// WithCallDepth returns a new Sink with the given call depth offset as specified by the [logr.CallDepthLogSink]
// interface. The sink does not inspect the call stack, so the depth only travels along for wrappers that expect the
// interface. It is safe to call concurrently from multiple goroutines.
//
//nolint:ireturn
func (sink *Sink) WithCallDepth(depth int) logr.LogSink {
	newSink := sink.Clone()
	newSink.callDepth += depth

	return newSink
}

// createMessage builds the Discord message for a log line, merging the sink's stored values with the keys and values
// of the call. Values from the call win on key collisions.
func (sink *Sink) createMessage(severity slog.Level, level int, msg string, keysAndValues []any) discord.Message {
	extra := maps.Clone(sink.values)

	if level > 0 {
		extra[VerbosityKey] = strconv.Itoa(level)
	}

	if len(keysAndValues)%2 != 0 {
		keysAndValues = keysAndValues[:len(keysAndValues)-1]
	}

	for i := 0; i < len(keysAndValues); i += 2 {
		key := fmt.Sprint(keysAndValues[i])
		value := fmt.Sprint(keysAndValues[i+1])
		extra[key] = value
	}

	if len(extra) == 0 {
		extra = nil
	}

	module := defaultModule
	if len(sink.names) > 0 {
		module = strings.Join(sink.names, "/")
	}

	return discord.Message{
		Timestamp:   time.Now(),
		Level:       severity,
		Module:      module,
		Description: msg,
		Extra:       extra,
	}
}
