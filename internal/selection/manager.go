// Package selection owns the ordered, policy-bounded list of admitted files.
package selection

import (
	"fmt"

	"github.com/google/uuid"

	"dropzone/internal/domain"
	"dropzone/internal/eventbus"
	"dropzone/internal/messages"
)

// Releaser frees the preview resources held for an entry
type Releaser interface {
	Release(entryID string) bool
}

// Report summarises one admission batch
type Report struct {
	Added      []domain.Entry
	Rejections []*Rejection
}

// Count returns the number of entries appended by the batch
func (r Report) Count() int {
	return len(r.Added)
}

// Manager maintains the selection. It is not safe for concurrent use; the
// owning event loop serialises every call.
type Manager struct {
	policy   Policy
	entries  []domain.Entry
	log      *messages.Log
	bus      eventbus.EventBus
	releaser Releaser
	newID    func() string
}

// Option configures a Manager
type Option func(*Manager)

// WithBus publishes change notifications on the given bus
func WithBus(bus eventbus.EventBus) Option {
	return func(m *Manager) { m.bus = bus }
}

// WithReleaser sets who frees preview handles on removal
func WithReleaser(r Releaser) Option {
	return func(m *Manager) { m.releaser = r }
}

// WithIDFunc overrides entry ID generation
func WithIDFunc(fn func() string) Option {
	return func(m *Manager) { m.newID = fn }
}

// NewManager creates an empty selection governed by policy. Outcomes are
// written to msgs; a nil log gets a private one.
func NewManager(policy Policy, msgs *messages.Log, opts ...Option) *Manager {
	if msgs == nil {
		msgs = messages.New()
	}
	m := &Manager{
		policy: policy,
		log:    msgs,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Policy returns the admission policy in force
func (m *Manager) Policy() Policy {
	return m.policy
}

// Log returns the message log the manager reports to
func (m *Manager) Log() *messages.Log {
	return m.log
}

// Len returns the number of entries in the selection
func (m *Manager) Len() int {
	return len(m.entries)
}

// At returns the entry at index
func (m *Manager) At(index int) (domain.Entry, bool) {
	if index < 0 || index >= len(m.entries) {
		return domain.Entry{}, false
	}
	return m.entries[index], true
}

// Entries returns a copy of the selection in display order
func (m *Manager) Entries() []domain.Entry {
	return append([]domain.Entry(nil), m.entries...)
}

// IsFull reports whether the selection is at capacity
func (m *Manager) IsFull() bool {
	return len(m.entries) >= m.policy.MaxFiles
}

// Admit evaluates candidates in order and appends the ones the policy
// accepts. Each candidate is judged independently; a rejection never stops
// the batch. One success message is logged per batch that added anything.
func (m *Manager) Admit(candidates []domain.File) Report {
	var report Report
	if len(candidates) == 0 {
		return report
	}

	for _, f := range candidates {
		if f == nil {
			continue
		}
		if rej := m.policy.Check(len(m.entries), f); rej != nil {
			report.Rejections = append(report.Rejections, rej)
			m.log.Error(rej.Error())
			m.publish(domain.CandidateRejected{Name: rej.Name, Reason: rej.Kind.String()})
			continue
		}
		entry := domain.Entry{ID: m.newID(), File: f}
		m.entries = append(m.entries, entry)
		report.Added = append(report.Added, entry)
	}

	if n := len(report.Added); n > 0 {
		m.log.OKf("Added %d file(s).", n)
		m.publish(domain.EntriesAdded{
			Entries: append([]domain.Entry(nil), report.Added...),
			Total:   len(m.entries),
		})
	}
	return report
}

// RemoveAt removes and returns the entry at index, releasing its preview
// handle first.
func (m *Manager) RemoveAt(index int) (domain.Entry, error) {
	if index < 0 || index >= len(m.entries) {
		return domain.Entry{}, fmt.Errorf("remove %d of %d: %w", index, len(m.entries), ErrIndexOutOfRange)
	}

	entry := m.entries[index]
	m.release(entry)
	m.entries = append(m.entries[:index], m.entries[index+1:]...)

	m.publish(domain.EntryRemoved{Index: index, Entry: entry, Total: len(m.entries)})
	return entry, nil
}

// Move swaps the entry at index with its neighbour in direction (-1 or +1).
// Moving the first entry up or the last entry down does nothing.
func (m *Manager) Move(index, direction int) error {
	if direction != -1 && direction != 1 {
		return fmt.Errorf("move %d by %d: %w", index, direction, ErrInvalidDirection)
	}
	if index < 0 || index >= len(m.entries) {
		return fmt.Errorf("move %d of %d: %w", index, len(m.entries), ErrIndexOutOfRange)
	}

	target := index + direction
	if target < 0 || target >= len(m.entries) {
		return nil
	}

	m.entries[index], m.entries[target] = m.entries[target], m.entries[index]
	m.publish(domain.EntryMoved{From: index, To: target})
	return nil
}

// MoveUp moves the entry at index one place towards the front
func (m *Manager) MoveUp(index int) error {
	return m.Move(index, -1)
}

// MoveDown moves the entry at index one place towards the back
func (m *Manager) MoveDown(index int) error {
	return m.Move(index, 1)
}

// ClearAll releases every preview handle and empties the selection
func (m *Manager) ClearAll() {
	removed := len(m.entries)
	for _, entry := range m.entries {
		m.release(entry)
	}
	m.entries = nil

	m.log.OK("Cleared all files.")
	m.publish(domain.SelectionCleared{Removed: removed})
}

func (m *Manager) release(entry domain.Entry) {
	if m.releaser != nil {
		m.releaser.Release(entry.ID)
	}
}

func (m *Manager) publish(event domain.DomainEvent) {
	if m.bus != nil {
		m.bus.Publish(event)
	}
}
