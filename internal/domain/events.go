package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventEntriesAdded      EventType = "EntriesAdded"
	EventCandidateRejected EventType = "CandidateRejected"
	EventEntryRemoved      EventType = "EntryRemoved"
	EventEntryMoved        EventType = "EntryMoved"
	EventSelectionCleared  EventType = "SelectionCleared"
	EventUploadStarted     EventType = "UploadStarted"
	EventUploadCompleted   EventType = "UploadCompleted"
	EventConfigLoaded      EventType = "ConfigLoaded"
	EventConfigSaved       EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// EntriesAdded is emitted once per admission batch that appended anything
type EntriesAdded struct {
	Entries []Entry
	Total   int // selection length after the batch
}

func (e EntriesAdded) Type() EventType { return EventEntriesAdded }

// CandidateRejected is emitted for every candidate refused by the admission policy
type CandidateRejected struct {
	Name   string
	Reason string
}

func (e CandidateRejected) Type() EventType { return EventCandidateRejected }

// EntryRemoved is emitted when a single entry leaves the selection
type EntryRemoved struct {
	Index int
	Entry Entry
	Total int
}

func (e EntryRemoved) Type() EventType { return EventEntryRemoved }

// EntryMoved is emitted when two neighbouring entries swap places
type EntryMoved struct {
	From int
	To   int
}

func (e EntryMoved) Type() EventType { return EventEntryMoved }

// SelectionCleared is emitted by clear all
type SelectionCleared struct {
	Removed int
}

func (e SelectionCleared) Type() EventType { return EventSelectionCleared }

// UploadStarted is emitted when a mock submission begins
type UploadStarted struct {
	Files int
}

func (e UploadStarted) Type() EventType { return EventUploadStarted }

// UploadCompleted is emitted once the simulated delay has elapsed
type UploadCompleted struct {
	Files int
	Bytes int
}

func (e UploadCompleted) Type() EventType { return EventUploadCompleted }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
