package intake

import (
	"bytes"
	"io"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	"github.com/gabriel-vasile/mimetype"
	imgclip "golang.design/x/clipboard"
)

// Clipboard is the paste source. ReadImage returns nil data when the
// clipboard holds no image.
type Clipboard interface {
	ReadImage() ([]byte, error)
	ReadText() (string, error)
}

// TextClipboard adapts a text-only reader into a Clipboard
type TextClipboard func() (string, error)

func (t TextClipboard) ReadImage() ([]byte, error) { return nil, nil }
func (t TextClipboard) ReadText() (string, error)  { return t() }

type systemClipboard struct {
	once    sync.Once
	initErr error
}

// SystemClipboard reads the OS clipboard. Images come from the native
// clipboard API, text from the platform clipboard utilities.
var SystemClipboard Clipboard = &systemClipboard{}

func (c *systemClipboard) ReadImage() ([]byte, error) {
	c.once.Do(func() { c.initErr = imgclip.Init() })
	if c.initErr != nil {
		return nil, c.initErr
	}
	return imgclip.Read(imgclip.FmtImage), nil
}

func (c *systemClipboard) ReadText() (string, error) {
	return clipboard.ReadAll()
}

// pastedFile is a clipboard image held in memory
type pastedFile struct {
	name      string
	mediaType string
	data      []byte
}

// newPastedFile names the image after the time it was pasted and sniffs its
// type from the bytes.
func newPastedFile(data []byte, at time.Time) *pastedFile {
	mt := mimetype.Detect(data)
	return &pastedFile{
		name:      "pasted-" + at.Format("20060102-150405") + mt.Extension(),
		mediaType: stripParams(mt.String()),
		data:      data,
	}
}

func (f *pastedFile) Name() string      { return f.name }
func (f *pastedFile) MediaType() string { return f.mediaType }
func (f *pastedFile) Size() int64       { return int64(len(f.data)) }

func (f *pastedFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.data)), nil
}
