package selection

import (
	"strings"

	"dropzone/internal/domain"
)

// Default admission limits
const (
	DefaultMaxFiles = 20
	DefaultMaxBytes = 5 * 1024 * 1024
)

// DefaultAllowedTypePrefixes are the media type prefixes accepted by default
var DefaultAllowedTypePrefixes = []string{"image/", "video/", "application/pdf"}

// Policy is the admission rule: count ceiling, type allow-list and size ceiling
type Policy struct {
	MaxFiles            int
	MaxBytes            int64
	AllowedTypePrefixes []string
}

// DefaultPolicy returns the stock admission policy
func DefaultPolicy() Policy {
	return Policy{
		MaxFiles:            DefaultMaxFiles,
		MaxBytes:            DefaultMaxBytes,
		AllowedTypePrefixes: append([]string(nil), DefaultAllowedTypePrefixes...),
	}
}

// Allows reports whether the media type starts with one of the allowed prefixes
func (p Policy) Allows(mediaType string) bool {
	for _, prefix := range p.AllowedTypePrefixes {
		if strings.HasPrefix(mediaType, prefix) {
			return true
		}
	}
	return false
}

// Check evaluates one candidate against a selection currently holding count
// entries. Capacity is tested first, then type, then size.
func (p Policy) Check(count int, f domain.File) *Rejection {
	switch {
	case count >= p.MaxFiles:
		return &Rejection{Kind: LimitReached, Name: f.Name(), Limit: int64(p.MaxFiles)}
	case !p.Allows(f.MediaType()):
		return &Rejection{Kind: UnsupportedType, Name: f.Name(), MediaType: f.MediaType()}
	case f.Size() > p.MaxBytes:
		return &Rejection{Kind: TooLarge, Name: f.Name(), Size: f.Size(), Limit: p.MaxBytes}
	}
	return nil
}
