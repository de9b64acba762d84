// Package slog implements a [slog.Handler] that sends log records to a Discord channel.
//
// The handler can be created directly using [NewHandler] or a [slog.Logger] can be created using [NewLogger]. These
// functions take a [discord.Sender] and a [slog.HandlerOptions] as arguments. Note that the [slog.HandlerOptions] are
// used slightly differently than in the slog package. See the documentation of [Handler] for more information.
//
// Attributes and groups added to the logger or included in a record become extra labeled fields of the embed after the
// Level and Module fields.
//
// # Configure
//
// [Configure] is the one-call setup: given a [discord.Config] it builds the sender, attaches the Discord handler at
// [slog.LevelInfo], and joins it with any other handlers the caller wants records to reach, such as a console handler
// at a lower level.
//
// # JoinedHandler
//
// The [JoinedHandler] is a [slog.Handler] that wraps multiple other handlers and fans records out to each of them that
// is enabled for the record's level. This can be used to send logs both to Discord and elsewhere, although there is no
// dependency on the Discord sender.
//
// If you need something more complex, another library such as [slog-multi] may be a better fit.
//
// [slog-multi]: https://pkg.go.dev/github.com/samber/slog-multi
package slog
