package slog

import (
	"context"
	"log/slog"
	"maps"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/loggord/discord-logger/pkg/discord"
)

// moduleUnknown is the Module field value for records without a program counter.
const moduleUnknown = "unknown"

// Handler implements the [slog.Handler] interface and sends log records to a Discord channel through a
// [discord.Sender]. It is best used to create a [slog.Logger].
//
// # Attributes
//
// Attributes and groups, whether added to the logger or included in the Record, become extra labeled fields of the
// embed after the Level and Module fields. Group names prefix the field names, separated by an underscore (`_`).
//
// # Options
//
// The Handler uses [slog.HandlerOptions] with the Level field functioning identical to its documentation, except that
// a nil Level means [slog.LevelInfo] rather than relying on the default logger level. The ReplaceAttr field applies to
// the attributes that become extra fields; the built-in time, message, and level of the record are rendered directly
// into the embed and cannot be replaced.
type Handler struct {
	sender  discord.Sender
	options slog.HandlerOptions
	attrs   map[string]string
	groups  []string
}

var _ slog.Handler = (*Handler)(nil)

// NewLogger creates a new slog.Logger with the Handler attached. It is equivalent to
//
//	slog.New(NewHandler(sender, options))
func NewLogger(sender discord.Sender, options *slog.HandlerOptions) *slog.Logger {
	return slog.New(NewHandler(sender, options))
}

// NewHandler creates a new Handler with the given sender and options. See the documentation of [Handler] for more
// information on how the options are used.
func NewHandler(sender discord.Sender, options *slog.HandlerOptions) *Handler {
	if options == nil {
		options = &slog.HandlerOptions{}
	}

	return &Handler{
		sender:  sender,
		options: *options,
		attrs:   make(map[string]string),
	}
}

// Enabled returns true if the Handler is enabled for the given level. Without an explicit level in the options, the
// Handler is enabled at [slog.LevelInfo] and above.
func (handler *Handler) Enabled(_ context.Context, level slog.Level) bool {
	if handler.options.Level == nil {
		return level >= slog.LevelInfo
	}

	return level >= handler.options.Level.Level()
}

// Handle renders the given Record as a Discord message and delegates delivery to the sender. With a webhook sender,
// any delivery failure is returned synchronously; with a bot sender, the send is only scheduled and Handle always
// returns nil. Handle never emits log records of its own, so a failing sender cannot re-enter the logging pipeline.
func (handler *Handler) Handle(ctx context.Context, record slog.Record) error {
	message := handler.recordToMessage(record)

	return handler.sender.Send(ctx, message)
}

// WithAttrs returns a new Handler with the given attributes appended to the existing ones. They appear as extra
// labeled fields on every embed.
func (handler *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandler := handler.clone()
	newState := newHandler.newMutatingHandleState()

	newState.appendAttrs(attrs)

	return newHandler
}

// WithGroup returns a new Handler with the given group name appended to the existing ones. Group names appear as
// prefixes of the extra field names, separated by an underscore (`_`).
func (handler *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return handler
	}

	newHandler := handler.clone()
	newHandler.groups = append(newHandler.groups, name)

	return newHandler
}

// clone returns a copy of the Handler only sharing the sender, although the sender should be safe to use concurrently.
func (handler *Handler) clone() *Handler {
	newHandler := &Handler{
		sender:  handler.sender,
		options: handler.options,
		attrs:   maps.Clone(handler.attrs),
		groups:  slices.Clone(handler.groups),
	}

	return newHandler
}

// recordToMessage converts the given Record to the Message used by the sender. The Module field is derived from the
// source file of the log call.
func (handler *Handler) recordToMessage(record slog.Record) discord.Message {
	if record.Time.IsZero() {
		record.Time = time.Now()
	}

	extra := maps.Clone(handler.attrs)
	state := handler.newHandleState(extra, slices.Clone(handler.groups))

	record.Attrs(func(attr slog.Attr) bool {
		state.appendAttr(attr)

		return true
	})

	if len(extra) == 0 {
		extra = nil
	}

	return discord.Message{
		Timestamp:   record.Time,
		Level:       record.Level,
		Module:      moduleFromPC(record.PC),
		Description: record.Message,
		Extra:       extra,
	}
}

// moduleFromPC derives the originating module of a record as the base name of its source file, without the `.go`
// suffix. It returns "unknown" when no program counter is available.
func moduleFromPC(pc uintptr) string {
	if pc == 0 {
		return moduleUnknown
	}

	frames := runtime.CallersFrames([]uintptr{pc})
	frame, _ := frames.Next()

	if frame.File == "" {
		return moduleUnknown
	}

	return strings.TrimSuffix(filepath.Base(frame.File), ".go")
}

// handleState is used to hold the state necessary for adding attributes and groups to a handler. The handler is not
// mutated and only its options are read.
type handleState struct {
	handler *Handler
	attrMap map[string]string
	groups  []string
}

// newHandleState returns a new handleState with the given attributes and groups. These may be modified by the state
// when adding attributes and groups.
func (handler *Handler) newHandleState(attrMap map[string]string, groups []string) *handleState {
	return &handleState{
		handler: handler,
		attrMap: attrMap,
		groups:  groups,
	}
}

// newMutatingHandleState returns a new handleState with the same attributes and groups as the handler. Note that this
// cannot be used concurrently with a shared handler without additional synchronization.
func (handler *Handler) newMutatingHandleState() *handleState {
	return handler.newHandleState(handler.attrs, handler.groups)
}

// appendAttrs appends the given attributes to the state. It is equivalent to looping over the attributes and calling
// appendAttr.
func (state *handleState) appendAttrs(attrs []slog.Attr) {
	for _, attr := range attrs {
		state.appendAttr(attr)
	}
}

// appendAttr appends the given attribute to the state. It is responsible for handling the ReplaceAttr option.
func (state *handleState) appendAttr(attr slog.Attr) {
	attr.Value = attr.Value.Resolve()

	if state.handler.options.ReplaceAttr != nil && attr.Value.Kind() != slog.KindGroup {
		attr = state.handler.options.ReplaceAttr(state.groups, attr)
		attr.Value = attr.Value.Resolve()
	}

	if attr.Equal(slog.Attr{}) {
		return
	}

	if attr.Value.Kind() != slog.KindGroup {
		state.insertAttr(attr)

		return
	}

	if attr.Key != "" {
		state.groups = append(state.groups, attr.Key)
	}

	state.appendAttrs(attr.Value.Group())

	if attr.Key != "" {
		state.groups = state.groups[:len(state.groups)-1]
	}
}

// insertAttr appends the given attribute to the state. It assumes the attribute is not a group and has already been
// resolved. All it does is add the attribute to the map and formats the key.
func (state *handleState) insertAttr(attr slog.Attr) {
	var fullKey strings.Builder

	for _, group := range state.groups {
		fullKey.WriteString(group)
		fullKey.WriteByte('_')
	}

	fullKey.WriteString(attr.Key)

	state.attrMap[fullKey.String()] = attr.Value.String()
}
