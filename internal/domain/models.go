package domain

import (
	"io"
	"strings"
)

// File is a candidate file handed to the selection by one of the input
// sources. Implementations reference the underlying content; they never
// hold a copy of it.
type File interface {
	Name() string
	MediaType() string // declared media type, "" if unknown
	Size() int64       // byte length
	Open() (io.ReadCloser, error)
}

// Entry is one admitted file within the selection
type Entry struct {
	ID   string // stable across reorders
	File File
}

// Name returns the display name of the entry
func (e Entry) Name() string {
	if e.File == nil {
		return ""
	}
	return e.File.Name()
}

// MediaType returns the declared media type of the entry
func (e Entry) MediaType() string {
	if e.File == nil {
		return ""
	}
	return e.File.MediaType()
}

// Size returns the byte length of the entry
func (e Entry) Size() int64 {
	if e.File == nil {
		return 0
	}
	return e.File.Size()
}

// Kind returns how the entry should be presented
func (e Entry) Kind() MediaKind {
	return KindOf(e.MediaType())
}

// MediaKind selects the preview presentation for an entry
type MediaKind int

const (
	KindDocument MediaKind = iota
	KindImage
	KindVideo
)

// KindOf maps a media type to its presentation kind
func KindOf(mediaType string) MediaKind {
	switch {
	case strings.HasPrefix(mediaType, "image/"):
		return KindImage
	case strings.HasPrefix(mediaType, "video/"):
		return KindVideo
	default:
		return KindDocument
	}
}

// Badge returns the upper-cased top-level type, e.g. "IMAGE" for image/png
func Badge(mediaType string) string {
	top, _, _ := strings.Cut(mediaType, "/")
	if top == "" {
		return "FILE"
	}
	return strings.ToUpper(top)
}

func (k MediaKind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindVideo:
		return "video"
	default:
		return "document"
	}
}

// Source identifies which input surface produced a batch of candidates
type Source int

const (
	SourceChooser Source = iota
	SourceDrop
	SourcePaste
	SourceArgs
)

func (s Source) String() string {
	switch s {
	case SourceChooser:
		return "chooser"
	case SourceDrop:
		return "drop"
	case SourcePaste:
		return "paste"
	case SourceArgs:
		return "args"
	default:
		return "unknown"
	}
}
