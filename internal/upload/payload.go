// Package upload builds the multipart payload a real submission would send
// and simulates the server acknowledgment.
package upload

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"

	"dropzone/internal/domain"
)

// DefaultFieldName is the multipart field every file is attached under
const DefaultFieldName = "files[]"

// Payload is a ready-to-send multipart/form-data body
type Payload struct {
	ContentType string
	Body        []byte
	Files       []string // file names in upload order
}

// Len returns the body size in bytes
func (p *Payload) Len() int {
	return len(p.Body)
}

// WriteTo writes the body to w
func (p *Payload) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(p.Body)
	return int64(n), err
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// BuildPayload serialises entries, in selection order, as parts of one
// multipart field paired with their original file names.
func BuildPayload(field string, entries []domain.Entry) (*Payload, error) {
	if field == "" {
		field = DefaultFieldName
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	files := make([]string, 0, len(entries))

	for _, entry := range entries {
		if err := writePart(mw, field, entry); err != nil {
			return nil, err
		}
		files = append(files, entry.Name())
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart body: %w", err)
	}

	return &Payload{
		ContentType: mw.FormDataContentType(),
		Body:        buf.Bytes(),
		Files:       files,
	}, nil
}

func writePart(mw *multipart.Writer, field string, entry domain.Entry) error {
	mediaType := entry.MediaType()
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(field), quoteEscaper.Replace(entry.Name())))
	h.Set("Content-Type", mediaType)

	part, err := mw.CreatePart(h)
	if err != nil {
		return fmt.Errorf("failed to create part for %s: %w", entry.Name(), err)
	}

	rc, err := entry.File.Open()
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", entry.Name(), err)
	}
	defer rc.Close()

	if _, err := io.Copy(part, rc); err != nil {
		return fmt.Errorf("failed to read %s: %w", entry.Name(), err)
	}
	return nil
}
