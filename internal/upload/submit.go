package upload

import (
	"errors"
	"fmt"
	"time"

	"dropzone/internal/domain"
	"dropzone/internal/eventbus"
	"dropzone/internal/messages"
)

// DefaultDelay is the simulated server round trip
const DefaultDelay = 800 * time.Millisecond

// ErrNothingToUpload is returned when Submit is called with no entries
var ErrNothingToUpload = errors.New("nothing to upload")

// Receipt is the simulated acknowledgment
type Receipt struct {
	Files []string
	Bytes int
	At    time.Time
}

// Submitter performs mock submissions. Once started a submission always
// completes after the delay; there is no cancellation, retry or timeout.
type Submitter struct {
	Field string
	Delay time.Duration

	log   *messages.Log
	bus   eventbus.EventBus
	sleep func(time.Duration)
	now   func() time.Time
}

// NewSubmitter creates a submitter reporting to log
func NewSubmitter(log *messages.Log, bus eventbus.EventBus) *Submitter {
	return &Submitter{
		Field: DefaultFieldName,
		Delay: DefaultDelay,
		log:   log,
		bus:   bus,
		sleep: time.Sleep,
		now:   time.Now,
	}
}

// SetSleep replaces the delay primitive, for tests
func (s *Submitter) SetSleep(fn func(time.Duration)) {
	s.sleep = fn
}

// Submit builds the payload for a snapshot of the selection, waits the
// simulated delay and reports success. It never modifies the selection.
func (s *Submitter) Submit(entries []domain.Entry) (*Receipt, error) {
	if len(entries) == 0 {
		return nil, ErrNothingToUpload
	}

	s.log.OK("Uploading…")
	s.publish(domain.UploadStarted{Files: len(entries)})

	payload, err := BuildPayload(s.Field, entries)
	if err != nil {
		s.log.Errorf("Upload failed: %v", err)
		return nil, fmt.Errorf("failed to build payload: %w", err)
	}

	s.sleep(s.Delay)

	s.log.OKf("Uploaded %d file(s). (mock)", len(payload.Files))
	s.publish(domain.UploadCompleted{Files: len(payload.Files), Bytes: payload.Len()})

	return &Receipt{Files: payload.Files, Bytes: payload.Len(), At: s.now()}, nil
}

func (s *Submitter) publish(event domain.DomainEvent) {
	if s.bus != nil {
		s.bus.Publish(event)
	}
}
