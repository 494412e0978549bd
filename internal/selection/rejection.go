package selection

import (
	"errors"
	"fmt"

	"dropzone/internal/format"
)

var (
	// ErrIndexOutOfRange is returned by RemoveAt and Move for an index outside the selection
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrInvalidDirection is returned by Move for a direction other than -1 or +1
	ErrInvalidDirection = errors.New("direction must be -1 or +1")
)

// RejectionKind names the admission rule a candidate failed
type RejectionKind int

const (
	LimitReached RejectionKind = iota + 1
	UnsupportedType
	TooLarge
)

func (k RejectionKind) String() string {
	switch k {
	case LimitReached:
		return "LimitReached"
	case UnsupportedType:
		return "UnsupportedType"
	case TooLarge:
		return "TooLarge"
	default:
		return "Unknown"
	}
}

// Rejection is an advisory report for a refused candidate. It satisfies
// error so it can travel through error-shaped plumbing, but admission never
// returns it as a failure.
type Rejection struct {
	Kind      RejectionKind
	Name      string
	MediaType string // UnsupportedType only
	Size      int64  // TooLarge only
	Limit     int64  // file count for LimitReached, byte ceiling for TooLarge
}

func (r *Rejection) Error() string {
	switch r.Kind {
	case LimitReached:
		return fmt.Sprintf("Limit reached (%d). Skipping %q.", r.Limit, r.Name)
	case UnsupportedType:
		mediaType := r.MediaType
		if mediaType == "" {
			mediaType = "unknown"
		}
		return fmt.Sprintf("Unsupported type: %s for %q.", mediaType, r.Name)
	case TooLarge:
		return fmt.Sprintf("%q is too large (%s). Max %s.", r.Name, format.Bytes(r.Size), format.Bytes(r.Limit))
	default:
		return fmt.Sprintf("%q was rejected.", r.Name)
	}
}
