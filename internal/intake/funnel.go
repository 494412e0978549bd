package intake

import (
	"errors"
	"io/fs"
	"log"
	"strings"
	"time"

	"dropzone/internal/domain"
	"dropzone/internal/messages"
	"dropzone/internal/selection"
)

// Funnel is the single path from every input source into the selection
type Funnel struct {
	manager *selection.Manager
	log     *messages.Log
	resolve func(string) ([]domain.File, error)
	now     func() time.Time
}

// NewFunnel creates a funnel feeding manager
func NewFunnel(manager *selection.Manager) *Funnel {
	return &Funnel{
		manager: manager,
		log:     manager.Log(),
		resolve: Resolve,
		now:     time.Now,
	}
}

// Receive resolves paths in order and admits the resulting batch. Paths that
// cannot be read are reported and skipped; they are not policy rejections.
func (f *Funnel) Receive(source domain.Source, paths []string) selection.Report {
	if len(paths) == 0 {
		return selection.Report{}
	}
	log.Printf("Intake: %d path(s) from %s", len(paths), source)

	var files []domain.File
	for _, p := range paths {
		resolved, err := f.resolve(p)
		if err != nil {
			f.log.Errorf("Cannot read %q: %v", p, cause(err))
			continue
		}
		files = append(files, resolved...)
	}
	return f.manager.Admit(files)
}

// ReceiveText parses a drop or paste payload and admits it
func (f *Funnel) ReceiveText(source domain.Source, text string) selection.Report {
	return f.Receive(source, ParsePaths(text))
}

// Paste admits the clipboard contents. An image on the clipboard is admitted
// as a single in-memory file; otherwise the text is parsed as paths.
func (f *Funnel) Paste(cb Clipboard) (selection.Report, error) {
	data, err := cb.ReadImage()
	if err != nil {
		log.Printf("Clipboard image unavailable: %v", err)
	} else if len(data) > 0 {
		log.Printf("Intake: clipboard image (%d bytes) from %s", len(data), domain.SourcePaste)
		return f.manager.Admit([]domain.File{newPastedFile(data, f.now())}), nil
	}

	text, err := cb.ReadText()
	if err != nil {
		f.log.Errorf("Clipboard unavailable: %v", err)
		return selection.Report{}, err
	}
	if strings.TrimSpace(text) == "" {
		return selection.Report{}, nil
	}
	return f.ReceiveText(domain.SourcePaste, text), nil
}

func cause(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}
