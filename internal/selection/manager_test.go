package selection

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dropzone/internal/domain"
	"dropzone/internal/eventbus"
	"dropzone/internal/messages"
)

type fakeFile struct {
	name      string
	mediaType string
	size      int64
}

func (f fakeFile) Name() string      { return f.name }
func (f fakeFile) MediaType() string { return f.mediaType }
func (f fakeFile) Size() int64       { return f.size }
func (f fakeFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(make([]byte, f.size))), nil
}

func image(name string) fakeFile {
	return fakeFile{name: name, mediaType: "image/png", size: 1}
}

func images(n int) []domain.File {
	out := make([]domain.File, n)
	for i := range out {
		out[i] = image(fmt.Sprintf("img-%02d.png", i))
	}
	return out
}

type fakeReleaser struct {
	released []string
}

func (r *fakeReleaser) Release(id string) bool {
	r.released = append(r.released, id)
	return true
}

type syncBus struct {
	mu     sync.Mutex
	events []eventbus.DomainEvent
}

func (b *syncBus) Publish(e eventbus.DomainEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

func (b *syncBus) Subscribe(eventbus.EventType, eventbus.EventHandler) func() {
	return func() {}
}

func (b *syncBus) types() []eventbus.EventType {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]eventbus.EventType, len(b.events))
	for i, e := range b.events {
		out[i] = e.Type()
	}
	return out
}

func newTestManager(opts ...Option) (*Manager, *messages.Log) {
	log := messages.New(messages.WithoutMirror())
	counter := 0
	opts = append([]Option{WithIDFunc(func() string {
		counter++
		return fmt.Sprintf("id-%d", counter)
	})}, opts...)
	return NewManager(DefaultPolicy(), log, opts...), log
}

func names(entries []domain.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name()
	}
	return out
}

func assertInvariants(t *testing.T, m *Manager) {
	t.Helper()
	p := m.Policy()
	require.LessOrEqual(t, m.Len(), p.MaxFiles)
	for _, e := range m.Entries() {
		assert.LessOrEqual(t, e.Size(), p.MaxBytes)
		assert.True(t, p.Allows(e.MediaType()), "type %q should be allowed", e.MediaType())
	}
}

func TestAdmitCapsAtMaxFiles(t *testing.T) {
	m, log := newTestManager()

	report := m.Admit(images(21))

	assert.Equal(t, 20, m.Len())
	assert.Equal(t, 20, report.Count())
	require.Len(t, report.Rejections, 1)
	assert.Equal(t, LimitReached, report.Rejections[0].Kind)
	assert.Equal(t, "img-20.png", report.Rejections[0].Name)

	msgs := log.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "Added 20 file(s).", msgs[0].Text)
	assert.Equal(t, `Limit reached (20). Skipping "img-20.png".`, msgs[1].Text)
	assert.Equal(t, messages.LevelError, msgs[1].Level)
	assertInvariants(t, m)
}

func TestAdmitChecksCapacityPerCandidate(t *testing.T) {
	m, _ := newTestManager()
	m.Admit(images(19))

	batch := []domain.File{
		fakeFile{name: "notes.txt", mediaType: "text/plain", size: 1},
		image("fits.png"),
		image("late-1.png"),
		fakeFile{name: "late.txt", mediaType: "text/plain", size: 1},
	}
	report := m.Admit(batch)

	assert.Equal(t, 20, m.Len())
	assert.Equal(t, 1, report.Count())
	require.Len(t, report.Rejections, 3)
	assert.Equal(t, UnsupportedType, report.Rejections[0].Kind)
	assert.Equal(t, LimitReached, report.Rejections[1].Kind)
	// capacity is checked before type
	assert.Equal(t, LimitReached, report.Rejections[2].Kind)
}

func TestAdmitUnsupportedType(t *testing.T) {
	m, log := newTestManager()

	report := m.Admit([]domain.File{fakeFile{name: "readme.txt", mediaType: "text/plain", size: 10}})

	assert.Equal(t, 0, report.Count())
	require.Len(t, report.Rejections, 1)
	rej := report.Rejections[0]
	assert.Equal(t, UnsupportedType, rej.Kind)
	assert.Equal(t, "text/plain", rej.MediaType)
	assert.Equal(t, 0, m.Len())

	msgs := log.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, `Unsupported type: text/plain for "readme.txt".`, msgs[0].Text)
}

func TestAdmitUnknownTypeMessage(t *testing.T) {
	m, _ := newTestManager()
	report := m.Admit([]domain.File{fakeFile{name: "blob", size: 10}})
	require.Len(t, report.Rejections, 1)
	assert.Equal(t, `Unsupported type: unknown for "blob".`, report.Rejections[0].Error())
}

func TestAdmitTooLarge(t *testing.T) {
	m, log := newTestManager()

	report := m.Admit([]domain.File{fakeFile{name: "huge.png", mediaType: "image/png", size: 6 * 1024 * 1024}})

	assert.Equal(t, 0, report.Count())
	require.Len(t, report.Rejections, 1)
	assert.Equal(t, TooLarge, report.Rejections[0].Kind)
	assert.Equal(t, int64(6*1024*1024), report.Rejections[0].Size)
	assert.Equal(t, `"huge.png" is too large (6.0 MB). Max 5.0 MB.`, log.Messages()[0].Text)
}

func TestAdmitExactlyMaxBytesIsAccepted(t *testing.T) {
	m, _ := newTestManager()
	report := m.Admit([]domain.File{fakeFile{name: "edge.pdf", mediaType: "application/pdf", size: DefaultMaxBytes}})
	assert.Equal(t, 1, report.Count())
	assert.Empty(t, report.Rejections)
}

func TestAdmitEmptyBatchDoesNothing(t *testing.T) {
	bus := &syncBus{}
	m, log := newTestManager(WithBus(bus))

	report := m.Admit(nil)

	assert.Equal(t, 0, report.Count())
	assert.Empty(t, report.Rejections)
	assert.Equal(t, 0, log.Len())
	assert.Empty(t, bus.types())
}

func TestAdmitAllRejectedLogsNoSuccess(t *testing.T) {
	m, log := newTestManager()
	m.Admit([]domain.File{fakeFile{name: "a.txt", mediaType: "text/plain", size: 1}})
	for _, msg := range log.Messages() {
		assert.NotContains(t, msg.Text, "Added")
	}
}

func TestAdmitPublishesOneAddedEventPerBatch(t *testing.T) {
	bus := &syncBus{}
	m, _ := newTestManager(WithBus(bus))

	m.Admit([]domain.File{image("a.png"), image("b.png"), fakeFile{name: "c.txt", mediaType: "text/plain"}})

	assert.Equal(t, []eventbus.EventType{
		eventbus.EventCandidateRejected,
		eventbus.EventEntriesAdded,
	}, bus.types())

	added, ok := bus.events[1].(eventbus.EntriesAddedEvent)
	require.True(t, ok)
	assert.Len(t, added.Entries, 2)
	assert.Equal(t, 2, added.Total)
}

func TestAdmitAssignsDistinctIDs(t *testing.T) {
	m := NewManager(DefaultPolicy(), nil)
	same := image("same.png")
	m.Admit([]domain.File{same, same})

	entries := m.Entries()
	require.Len(t, entries, 2)
	assert.NotEmpty(t, entries[0].ID)
	assert.NotEqual(t, entries[0].ID, entries[1].ID)
}

func TestRemoveAtReleasesHandle(t *testing.T) {
	rel := &fakeReleaser{}
	m, _ := newTestManager(WithReleaser(rel))
	m.Admit([]domain.File{image("a.png"), image("b.png"), image("c.png")})

	removed, err := m.RemoveAt(1)

	require.NoError(t, err)
	assert.Equal(t, "b.png", removed.Name())
	assert.Equal(t, []string{"a.png", "c.png"}, names(m.Entries()))
	assert.Equal(t, []string{removed.ID}, rel.released)
}

func TestRemoveAtOutOfRange(t *testing.T) {
	rel := &fakeReleaser{}
	m, _ := newTestManager(WithReleaser(rel))
	m.Admit([]domain.File{image("a.png")})

	for _, idx := range []int{-1, 1, 5} {
		_, err := m.RemoveAt(idx)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
	}
	assert.Equal(t, 1, m.Len())
	assert.Empty(t, rel.released)
}

func TestMoveSwapsNeighbours(t *testing.T) {
	m, _ := newTestManager()
	m.Admit([]domain.File{image("a.png"), image("b.png"), image("c.png")})

	require.NoError(t, m.MoveDown(0))
	assert.Equal(t, []string{"b.png", "a.png", "c.png"}, names(m.Entries()))

	require.NoError(t, m.MoveUp(2))
	assert.Equal(t, []string{"b.png", "c.png", "a.png"}, names(m.Entries()))
}

func TestMoveAtBoundsIsNoOp(t *testing.T) {
	bus := &syncBus{}
	m, _ := newTestManager(WithBus(bus))
	m.Admit([]domain.File{image("a.png"), image("b.png")})
	before := names(m.Entries())

	assert.NoError(t, m.Move(0, -1))
	assert.NoError(t, m.Move(1, 1))

	assert.Equal(t, before, names(m.Entries()))
	assert.NotContains(t, bus.types(), eventbus.EventEntryMoved)
}

func TestMoveInvalidArguments(t *testing.T) {
	m, _ := newTestManager()
	m.Admit([]domain.File{image("a.png"), image("b.png")})

	assert.ErrorIs(t, m.Move(2, -1), ErrIndexOutOfRange)
	assert.ErrorIs(t, m.Move(-1, 1), ErrIndexOutOfRange)
	assert.ErrorIs(t, m.Move(0, 2), ErrInvalidDirection)
	assert.ErrorIs(t, m.Move(0, 0), ErrInvalidDirection)
}

func TestMoveInverseLaw(t *testing.T) {
	m, _ := newTestManager()
	m.Admit(images(6))
	original := names(m.Entries())

	for i := 1; i < m.Len(); i++ {
		require.NoError(t, m.Move(i, -1))
		require.NoError(t, m.Move(i-1, 1))
		assert.Equal(t, original, names(m.Entries()), "index %d", i)
	}
}

func TestClearAllReleasesEveryHandle(t *testing.T) {
	rel := &fakeReleaser{}
	bus := &syncBus{}
	m, log := newTestManager(WithReleaser(rel), WithBus(bus))
	m.Admit(images(3))
	ids := []string{}
	for _, e := range m.Entries() {
		ids = append(ids, e.ID)
	}

	m.ClearAll()

	assert.Equal(t, 0, m.Len())
	assert.Equal(t, ids, rel.released)
	assert.Equal(t, "Cleared all files.", log.Messages()[0].Text)
	assert.Contains(t, bus.types(), eventbus.EventSelectionCleared)
}

func TestClearAllIsIdempotent(t *testing.T) {
	m, log := newTestManager()
	m.Admit(images(2))

	m.ClearAll()
	assert.Equal(t, 0, m.Len())
	m.ClearAll()
	assert.Equal(t, 0, m.Len())

	msgs := log.Messages()
	assert.Equal(t, "Cleared all files.", msgs[0].Text)
	assert.Equal(t, "Cleared all files.", msgs[1].Text)
}

func TestAdmitRemoveMoveScenario(t *testing.T) {
	m, _ := newTestManager()
	original := []domain.File{image("zero.png"), image("one.png"), image("two.png")}
	m.Admit(original)

	_, err := m.RemoveAt(1)
	require.NoError(t, err)
	require.NoError(t, m.Move(0, 1))

	assert.Equal(t, []string{"two.png", "zero.png"}, names(m.Entries()))
}

func TestInvariantsHoldAcrossOperations(t *testing.T) {
	m, _ := newTestManager()
	batch := []domain.File{
		image("ok.png"),
		fakeFile{name: "clip.mp4", mediaType: "video/mp4", size: 1024},
		fakeFile{name: "doc.pdf", mediaType: "application/pdf", size: 2048},
		fakeFile{name: "big.mp4", mediaType: "video/mp4", size: DefaultMaxBytes + 1},
		fakeFile{name: "page.html", mediaType: "text/html", size: 5},
	}

	for round := 0; round < 6; round++ {
		m.Admit(batch)
		assertInvariants(t, m)
		_ = m.Move(0, 1)
		assertInvariants(t, m)
		_, _ = m.RemoveAt(m.Len() - 1)
		assertInvariants(t, m)
	}
	m.ClearAll()
	assertInvariants(t, m)
}

func TestEntriesReturnsCopy(t *testing.T) {
	m, _ := newTestManager()
	m.Admit([]domain.File{image("a.png"), image("b.png")})

	entries := m.Entries()
	entries[0], entries[1] = entries[1], entries[0]

	assert.Equal(t, []string{"a.png", "b.png"}, names(m.Entries()))
}

func TestCustomPolicy(t *testing.T) {
	policy := Policy{MaxFiles: 2, MaxBytes: 10, AllowedTypePrefixes: []string{"text/"}}
	m := NewManager(policy, messages.New(messages.WithoutMirror()))

	report := m.Admit([]domain.File{
		fakeFile{name: "a.txt", mediaType: "text/plain", size: 10},
		fakeFile{name: "b.png", mediaType: "image/png", size: 1},
		fakeFile{name: "c.txt", mediaType: "text/plain", size: 11},
		fakeFile{name: "d.txt", mediaType: "text/plain", size: 1},
		fakeFile{name: "e.txt", mediaType: "text/plain", size: 1},
	})

	assert.Equal(t, []string{"a.txt", "d.txt"}, names(report.Added))
	kinds := []string{}
	for _, r := range report.Rejections {
		kinds = append(kinds, r.Kind.String())
	}
	assert.Equal(t, "UnsupportedType,TooLarge,LimitReached", strings.Join(kinds, ","))
	assert.True(t, m.IsFull())
}
