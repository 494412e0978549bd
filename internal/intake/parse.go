package intake

import (
	"net/url"
	"os"
	"strings"

	"github.com/google/shlex"
)

// ParsePaths extracts paths from a drop or clipboard payload. Terminals
// deliver drops either as shell-quoted paths separated by spaces or as
// newline separated file:// URIs; both forms are accepted, mixed freely.
func ParsePaths(text string) []string {
	var paths []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		paths = append(paths, parseLine(line)...)
	}
	return paths
}

// parseLine splits one line into paths. A line that names an existing file as
// a whole is taken literally, so unquoted spaces and backslashes survive.
func parseLine(line string) []string {
	if _, err := os.Stat(expandHome(line)); err == nil {
		return []string{line}
	}

	words, err := shlex.Split(line)
	if err != nil {
		// unbalanced quotes: treat the whole line as one path
		words = []string{strings.Trim(line, `"'`)}
	}

	paths := make([]string, 0, len(words))
	for _, w := range words {
		if p, ok := fromURI(w); ok {
			paths = append(paths, p)
			continue
		}
		paths = append(paths, w)
	}
	return paths
}

func fromURI(word string) (string, bool) {
	if !strings.HasPrefix(word, "file://") {
		return "", false
	}
	u, err := url.Parse(word)
	if err != nil || u.Path == "" {
		return "", false
	}
	return u.Path, true
}
