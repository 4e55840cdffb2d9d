// Package logger is a standardized event logging framework for the shell.
// Events are recorded as newline-delimited JSON objects so sessions can be
// analyzed offline.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"time"
)

// LogEntry is one recorded event. Exactly one of the event pointers is set.
type LogEntry struct {
	TimestampMicros int64  `json:"timestamp_micros"`
	SessionID       string `json:"session_id,omitempty"`

	SessionStart   *SessionStart   `json:"session_start,omitempty"`
	SessionEnd     *SessionEnd     `json:"session_end,omitempty"`
	Statement      *Statement      `json:"statement,omitempty"`
	LexError       *LexError       `json:"lex_error,omitempty"`
	UnknownCommand *UnknownCommand `json:"unknown_command,omitempty"`
}

// SessionStart records the beginning of an interactive or script session.
type SessionStart struct {
	User string `json:"user,omitempty"`
}

// SessionEnd records the end of a session with its final status.
type SessionEnd struct {
	Status int `json:"status"`
}

// Statement records one statement handed to the pipeline builder.
type Statement struct {
	Text string `json:"text"`
}

// LexError records a statement-scoped lexical error.
type LexError struct {
	Line  string `json:"line"`
	Error string `json:"error"`
}

// UnknownCommand records a command that failed to resolve or run.
type UnknownCommand struct {
	Command string `json:"command"`
	Error   string `json:"error,omitempty"`
}

// LogRecorder stores events in an external datastore.
type LogRecorder func(le *LogEntry) error

// Logger captures shell interaction events.
type Logger struct {
	Record LogRecorder
}

// NewJSONLinesLogger creates a Logger that writes newline-delimited JSON
// objects. A nil writer discards every event.
func NewJSONLinesLogger(w io.Writer) *Logger {
	if w == nil {
		return &Logger{Record: func(*LogEntry) error { return nil }}
	}
	return &Logger{
		Record: func(le *LogEntry) error {
			entry, err := json.Marshal(le)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(w, string(entry))
			return err
		},
	}
}

func (l *Logger) record(sessionID string, fill func(le *LogEntry)) error {
	le := &LogEntry{
		TimestampMicros: time.Now().UnixNano() / int64(time.Microsecond),
		SessionID:       sessionID,
	}
	fill(le)
	return l.Record(le)
}

// NewSession creates a logger with a fresh session ID attached.
func (l *Logger) NewSession() *SessionLogger {
	return &SessionLogger{Logger: l, sessionID: fmt.Sprintf("%d", rand.Uint64())}
}

// Sessionless creates a logger without a session ID.
func (l *Logger) Sessionless() *SessionLogger {
	return &SessionLogger{Logger: l}
}

// SessionLogger logs events with a shared session ID.
type SessionLogger struct {
	*Logger
	sessionID string
}

func (s *SessionLogger) SessionStart(user string) error {
	return s.record(s.sessionID, func(le *LogEntry) {
		le.SessionStart = &SessionStart{User: user}
	})
}

func (s *SessionLogger) SessionEnd(status int) error {
	return s.record(s.sessionID, func(le *LogEntry) {
		le.SessionEnd = &SessionEnd{Status: status}
	})
}

func (s *SessionLogger) Statement(text string) error {
	return s.record(s.sessionID, func(le *LogEntry) {
		le.Statement = &Statement{Text: text}
	})
}

func (s *SessionLogger) LexError(line string, err error) error {
	return s.record(s.sessionID, func(le *LogEntry) {
		le.LexError = &LexError{Line: line, Error: err.Error()}
	})
}

func (s *SessionLogger) UnknownCommand(command string, err error) error {
	return s.record(s.sessionID, func(le *LogEntry) {
		msg := ""
		if err != nil {
			msg = err.Error()
		}
		le.UnknownCommand = &UnknownCommand{Command: command, Error: msg}
	})
}

// ReadJSONLinesLog parses a newline-delimited JSON log, calling handler for
// every entry.
func ReadJSONLinesLog(r io.Reader, handler func(le *LogEntry)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var logEntry LogEntry
		if err := decoder.Decode(&logEntry); err != nil {
			return err
		}
		handler(&logEntry)
	}
	return nil
}
