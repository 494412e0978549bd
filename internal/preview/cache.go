// Package preview owns the per-entry preview handles used by the renderer.
// A handle is created lazily the first time an entry is displayed and is
// released exactly once, no later than the entry's removal.
package preview

import (
	"sync"

	"github.com/google/uuid"

	"dropzone/internal/domain"
)

// DefaultThumbnailWidth is the thumbnail width in terminal cells
const DefaultThumbnailWidth = 16

// Handle is the transient presentation resource for one entry
type Handle struct {
	ID        string
	EntryID   string
	Kind      domain.MediaKind
	Badge     string
	Thumbnail []string // rendered rows; nil when the entry has no pixel preview
	Err       error    // decode failure, the handle falls back to its badge
}

// Stats counts handle lifecycle transitions
type Stats struct {
	Created  int
	Released int
}

// Cache creates and reuses preview handles keyed by entry ID
type Cache struct {
	mu         sync.Mutex
	handles    map[string]*Handle
	width      int
	thumbnails bool
	stats      Stats
}

// Option configures a Cache
type Option func(*Cache)

// ThumbnailWidth returns the width thumbnails are drawn at for a configured
// width. Anything below one cell means the default.
func ThumbnailWidth(width int) int {
	if width <= 0 {
		return DefaultThumbnailWidth
	}
	return width
}

// WithThumbnailWidth sets the thumbnail width in cells
func WithThumbnailWidth(width int) Option {
	return func(c *Cache) { c.width = ThumbnailWidth(width) }
}

// WithThumbnails toggles pixel thumbnails for images
func WithThumbnails(enabled bool) Option {
	return func(c *Cache) { c.thumbnails = enabled }
}

// NewCache creates an empty handle cache
func NewCache(opts ...Option) *Cache {
	c := &Cache{
		handles:    make(map[string]*Handle),
		width:      DefaultThumbnailWidth,
		thumbnails: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Acquire returns the entry's handle, creating it on first use
func (c *Cache) Acquire(entry domain.Entry) *Handle {
	c.mu.Lock()
	if h, ok := c.handles[entry.ID]; ok {
		c.mu.Unlock()
		return h
	}
	c.mu.Unlock()

	h := c.build(entry)

	c.mu.Lock()
	defer c.mu.Unlock()
	// another caller may have won the race while we were decoding
	if existing, ok := c.handles[entry.ID]; ok {
		return existing
	}
	c.handles[entry.ID] = h
	c.stats.Created++
	return h
}

// Peek returns the handle for an entry without creating one
func (c *Cache) Peek(entryID string) (*Handle, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	h, ok := c.handles[entryID]
	return h, ok
}

// Release frees the handle for entryID. It reports false when no live
// handle existed, so a second release is a no-op.
func (c *Cache) Release(entryID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	h, ok := c.handles[entryID]
	if !ok {
		return false
	}
	h.Thumbnail = nil
	delete(c.handles, entryID)
	c.stats.Released++
	return true
}

// ReleaseAll frees every live handle and returns how many were released
func (c *Cache) ReleaseAll() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.handles)
	for id, h := range c.handles {
		h.Thumbnail = nil
		delete(c.handles, id)
	}
	c.stats.Released += n
	return n
}

// Live returns the number of handles currently held
func (c *Cache) Live() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.handles)
}

// Stats returns lifecycle counters
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

func (c *Cache) build(entry domain.Entry) *Handle {
	h := &Handle{
		ID:      uuid.NewString(),
		EntryID: entry.ID,
		Kind:    entry.Kind(),
		Badge:   domain.Badge(entry.MediaType()),
	}
	if h.Kind == domain.KindImage && c.thumbnails {
		h.Thumbnail, h.Err = Thumbnail(entry.File, c.width)
	}
	return h
}
