// Package intake turns the three candidate sources (file chooser, drag and
// drop, clipboard paste) into one ordered batch of files and hands every
// batch to the selection through the same funnel.
package intake

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"dropzone/internal/domain"
)

const octetStream = "application/octet-stream"

// pathFile is a domain.File backed by a path on disk. Content is read on
// demand and never buffered.
type pathFile struct {
	path      string
	mediaType string
	size      int64
}

func (f *pathFile) Name() string      { return filepath.Base(f.path) }
func (f *pathFile) MediaType() string { return f.mediaType }
func (f *pathFile) Size() int64       { return f.size }
func (f *pathFile) Path() string      { return f.path }

func (f *pathFile) Open() (io.ReadCloser, error) {
	return os.Open(f.path)
}

// Resolve stats a path and returns its candidate files. A directory yields
// its regular files in name order, one level deep.
func Resolve(path string) ([]domain.File, error) {
	path = expandHome(path)
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !info.Mode().IsRegular() {
			return nil, fmt.Errorf("%s: not a regular file", path)
		}
		return []domain.File{newPathFile(path, info.Size())}, nil
	}

	dirEntries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	sort.Slice(dirEntries, func(i, j int) bool { return dirEntries[i].Name() < dirEntries[j].Name() })

	var files []domain.File
	for _, de := range dirEntries {
		full := filepath.Join(path, de.Name())
		var fi os.FileInfo
		switch {
		case de.Type().IsRegular():
			fi, err = de.Info()
		case de.Type()&os.ModeSymlink != 0:
			// followed the same way a symlink passed directly is
			fi, err = os.Stat(full)
		default:
			continue
		}
		if err != nil || !fi.Mode().IsRegular() {
			continue
		}
		files = append(files, newPathFile(full, fi.Size()))
	}
	return files, nil
}

func newPathFile(path string, size int64) *pathFile {
	return &pathFile{path: path, mediaType: DetectMediaType(path), size: size}
}

// DetectMediaType sniffs the file content and falls back to the extension
// when the content is not recognised.
func DetectMediaType(path string) string {
	sniffed := ""
	if mt, err := mimetype.DetectFile(path); err == nil {
		sniffed = stripParams(mt.String())
	}
	if sniffed != "" && sniffed != octetStream {
		return sniffed
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); byExt != "" {
		return stripParams(byExt)
	}
	return sniffed
}

func stripParams(mediaType string) string {
	base, _, _ := strings.Cut(mediaType, ";")
	return strings.TrimSpace(base)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
