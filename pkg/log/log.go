// Package log provides an [io.Writer] that sends each written line to a Discord channel. It is intended for use as an
// output for [log.Logger].
//
// As an additional convenience, it also provides a [New] function that creates a new [log.Logger] with the given
// writers. This function is intended to be used as a drop-in replacement for [log.New] and supports using multiple
// writers.
package log

import (
	"context"
	"io"
	"log"
	"log/slog"
	"time"

	"github.com/loggord/discord-logger/pkg/discord"
)

// defaultModule is the Module field used when none is configured.
const defaultModule = "log"

// New creates a new logger with the given prefix and flags, combining the writers using io.MultiWriter. Any writes
// will be sequentially written to the writers, stopping at the first error.
func New(prefix string, flag int, writers ...io.Writer) *log.Logger {
	multiWriter := io.MultiWriter(writers...)
	logger := log.New(multiWriter, prefix, flag)

	return logger
}

// Writer is a writer that sends log lines to a Discord channel. It implements the [io.Writer] interface. Writes are
// assumed to always be a full log line. The stdlib log package carries no severity, so every line is sent at the
// configured level, info by default.
type Writer struct {
	sender discord.Sender
	level  slog.Level
	module string
}

// Assert that Writer implements the io.Writer interface.
var _ io.Writer = (*Writer)(nil)

// NewWriter creates a new Writer sending through the given sender, at info severity and with the default module.
func NewWriter(sender discord.Sender) *Writer {
	return &Writer{
		sender: sender,
		level:  slog.LevelInfo,
		module: defaultModule,
	}
}

// WithLevel returns a new Writer sending every line at the given severity. The original Writer is not modified.
func (writer *Writer) WithLevel(level slog.Level) *Writer {
	newWriter := writer.Clone()
	newWriter.level = level

	return newWriter
}

// WithModule returns a new Writer using the given Module field. The original Writer is not modified.
func (writer *Writer) WithModule(module string) *Writer {
	newWriter := writer.Clone()
	newWriter.module = module

	return newWriter
}

// Clone returns a copy of the Writer, sharing only the sender. It is safe to call concurrently from multiple
// goroutines.
func (writer *Writer) Clone() *Writer {
	return &Writer{
		sender: writer.sender,
		level:  writer.level,
		module: writer.module,
	}
}

// Write sends a new log line to the Discord channel. It first processes the message to remove any trailing newline
// characters. However, to uphold the requirements of io.Writer, it does not modify the message and returns the
// original length before processing.
//
// It is safe to call Write concurrently from multiple goroutines.
func (writer *Writer) Write(message []byte) (int, error) {
	originalLen := len(message)

	for i := originalLen - 1; i >= 0; i-- {
		if message[i] != '\n' && message[i] != '\r' {
			break
		}

		message = message[:i]
	}

	entry := discord.Message{
		Timestamp:   time.Now(),
		Level:       writer.level,
		Module:      writer.module,
		Description: string(message),
	}

	err := writer.sender.Send(context.Background(), entry)
	if err != nil {
		return 0, err
	}

	return originalLen, nil
}
