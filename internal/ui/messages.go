package ui

import (
	"dropzone/internal/eventbus"
	"dropzone/internal/upload"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// uploadDoneMsg carries the outcome of a mock submission
type uploadDoneMsg struct {
	receipt *upload.Receipt
	err     error
}

// pagerMsg contains the result of a pager command
type pagerMsg struct {
	what string
	err  error
}
