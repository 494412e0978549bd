// Package messages keeps the timestamped, human readable outcome log shown
// to the user. The log is observational only.
package messages

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// Level classifies a message for display
type Level int

const (
	LevelOK Level = iota
	LevelError
)

func (l Level) String() string {
	if l == LevelError {
		return "error"
	}
	return "ok"
}

// Message is one log line
type Message struct {
	Time  time.Time
	Level Level
	Text  string
}

// String renders the message with its timestamp
func (m Message) String() string {
	return fmt.Sprintf("%s  %s", m.Time.Format("15:04:05"), m.Text)
}

// Log is an append-only message log. Messages are returned most recent first.
type Log struct {
	mu       sync.RWMutex
	messages []Message
	now      func() time.Time
	mirror   bool
}

// Option configures a Log
type Option func(*Log)

// WithClock overrides the timestamp source
func WithClock(now func() time.Time) Option {
	return func(l *Log) { l.now = now }
}

// WithoutMirror stops the log from copying lines to the std logger
func WithoutMirror() Option {
	return func(l *Log) { l.mirror = false }
}

// New creates an empty message log
func New(opts ...Option) *Log {
	l := &Log{now: time.Now, mirror: true}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// OK appends an informational message
func (l *Log) OK(text string) Message {
	return l.push(LevelOK, text)
}

// Error appends an error message
func (l *Log) Error(text string) Message {
	return l.push(LevelError, text)
}

// OKf appends a formatted informational message
func (l *Log) OKf(format string, args ...interface{}) Message {
	return l.push(LevelOK, fmt.Sprintf(format, args...))
}

// Errorf appends a formatted error message
func (l *Log) Errorf(format string, args ...interface{}) Message {
	return l.push(LevelError, fmt.Sprintf(format, args...))
}

func (l *Log) push(level Level, text string) Message {
	msg := Message{Time: l.now(), Level: level, Text: text}

	l.mu.Lock()
	l.messages = append(l.messages, msg)
	l.mu.Unlock()

	if l.mirror {
		log.Printf("[%s] %s", level, text)
	}
	return msg
}

// Messages returns a copy of the log, newest first
func (l *Log) Messages() []Message {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Message, len(l.messages))
	for i, msg := range l.messages {
		out[len(l.messages)-1-i] = msg
	}
	return out
}

// Latest returns the newest message, if any
func (l *Log) Latest() (Message, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(l.messages) == 0 {
		return Message{}, false
	}
	return l.messages[len(l.messages)-1], true
}

// Len returns the number of messages logged so far
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.messages)
}
