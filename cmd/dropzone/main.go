// Command dropzone admits files without the terminal UI. It applies the same
// policy as the interactive program, prints the outcome messages and can
// write the multipart body a real upload would send.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"dropzone/internal/config"
	"dropzone/internal/domain"
	"dropzone/internal/format"
	"dropzone/internal/intake"
	"dropzone/internal/messages"
	"dropzone/internal/selection"
	"dropzone/internal/upload"
)

func main() {
	var configPath, outPath, fromFile string
	var verbose bool
	flag.StringVar(&configPath, "config", "", "Path to the config file (default: user config)")
	flag.StringVar(&outPath, "o", "", "Write the multipart payload to this file")
	flag.StringVar(&fromFile, "from", "", "Read paths, one per line, from this file (- for stdin)")
	flag.BoolVar(&verbose, "v", false, "Log diagnostics to stderr")
	flag.Parse()

	log.SetOutput(io.Discard)
	if verbose {
		log.SetOutput(os.Stderr)
	}

	os.Exit(run(configPath, outPath, fromFile, flag.Args(), os.Stdin, os.Stdout))
}

func run(configPath, outPath, fromFile string, args []string, stdin io.Reader, stdout io.Writer) int {
	svc := config.NewConfigService()
	if configPath != "" {
		svc = config.NewConfigServiceForPath(configPath, nil)
	}
	cfg, err := svc.Load()
	if err != nil {
		fmt.Fprintf(stdout, "Error loading config: %v\n", err)
		return 2
	}

	msgs := messages.New(messages.WithoutMirror())
	manager := selection.NewManager(cfg.SelectionPolicy(), msgs)
	funnel := intake.NewFunnel(manager)

	if len(args) > 0 {
		funnel.Receive(domain.SourceArgs, args)
	}
	if fromFile != "" {
		text, err := readAll(fromFile, stdin)
		if err != nil {
			fmt.Fprintf(stdout, "Error reading %s: %v\n", fromFile, err)
			return 2
		}
		funnel.ReceiveText(domain.SourceArgs, text)
	}

	printMessages(stdout, msgs)
	printSelection(stdout, manager)

	if manager.Len() == 0 {
		return 1
	}
	if outPath != "" {
		if err := writePayload(outPath, cfg.Upload.FieldName, manager.Entries(), stdout); err != nil {
			fmt.Fprintf(stdout, "Error writing payload: %v\n", err)
			return 2
		}
	}
	return 0
}

func readAll(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

// printMessages writes the log oldest first, the order things happened
func printMessages(w io.Writer, msgs *messages.Log) {
	all := msgs.Messages()
	for i := len(all) - 1; i >= 0; i-- {
		prefix := "ok   "
		if all[i].Level == messages.LevelError {
			prefix = "error"
		}
		fmt.Fprintf(w, "%s  %s\n", prefix, all[i].Text)
	}
}

func printSelection(w io.Writer, manager *selection.Manager) {
	policy := manager.Policy()
	fmt.Fprintf(w, "\n%d/%d files\n", manager.Len(), policy.MaxFiles)

	var total int64
	for i, entry := range manager.Entries() {
		total += entry.Size()
		fmt.Fprintf(w, "%3d  %-6s %10s  %s\n", i+1, domain.Badge(entry.MediaType()),
			format.Bytes(entry.Size()), entry.Name())
	}
	if manager.Len() > 0 {
		fmt.Fprintf(w, "%s total\n", format.Bytes(total))
	}
}

func writePayload(path, field string, entries []domain.Entry, w io.Writer) error {
	payload, err := upload.BuildPayload(field, entries)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := payload.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(w, "Wrote %s (%s) to %s\n", format.Bytes(int64(payload.Len())), payload.ContentType, path)
	return nil
}
