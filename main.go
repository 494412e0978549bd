package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"dropzone/internal/config"
	"dropzone/internal/domain"
	"dropzone/internal/eventbus"
	"dropzone/internal/intake"
	"dropzone/internal/messages"
	"dropzone/internal/preview"
	"dropzone/internal/selection"
	"dropzone/internal/ui"
)

// localConfigName is looked up in the start directory before the user config
const localConfigName = ".dropzone.toml"

func main() {
	var startDir, configPath string
	flag.StringVar(&startDir, "dir", "", "Directory the file picker opens in")
	flag.StringVar(&startDir, "d", "", "Directory the file picker opens in (shorthand)")
	flag.StringVar(&configPath, "config", "", "Path to the config file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [path ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if startDir == "" {
		var err error
		startDir, err = os.Getwd()
		if err != nil {
			fmt.Printf("Error getting current directory: %v\n", err)
			os.Exit(1)
		}
	}
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		fmt.Printf("Error resolving path: %v\n", err)
		os.Exit(1)
	}

	// Set up logging; the config may move it elsewhere once loaded
	logFile := redirectLog(config.DefaultConfig().UI.LogFile)
	defer func() {
		if logFile != nil {
			logFile.Close()
		}
	}()

	bus := eventbus.New()
	defer bus.Close()

	configSvc := config.NewConfigServiceForPath(resolveConfigPath(configPath, absDir), bus)
	cfg, err := loadOrCreateConfig(configSvc)
	if err != nil {
		log.Printf("Error loading config from %s: %v", configSvc.Path(), err)
	}
	if logFile == nil || cfg.UI.LogFile != logFile.Name() {
		if f := redirectLog(cfg.UI.LogFile); f != nil {
			if logFile != nil {
				logFile.Close()
			}
			logFile = f
		}
	}
	if cfg.UI.StartDir == "" {
		cfg.UI.StartDir = absDir
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	previews := preview.NewCache(
		preview.WithThumbnailWidth(cfg.UI.ThumbnailWidth),
		preview.WithThumbnails(cfg.UI.Thumbnails),
	)
	msgs := messages.New()
	manager := selection.NewManager(cfg.SelectionPolicy(), msgs,
		selection.WithBus(bus),
		selection.WithReleaser(previews),
	)

	// Paths on the command line are admitted before the UI starts
	if flag.NArg() > 0 {
		intake.NewFunnel(manager).Receive(domain.SourceArgs, flag.Args())
	}

	uiModel := ui.NewModel(cfg, bus, manager, previews)
	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithContext(ctx))
	uiModel.SetProgram(p)

	eventChan := make(chan eventbus.DomainEvent, 100)
	forwardEvent := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Println("Event channel full, dropping event")
		}
	}
	uiEvents := append([]eventbus.EventType{
		eventbus.EventUploadStarted,
		eventbus.EventUploadCompleted,
	}, eventbus.SelectionEvents...)
	for _, eventType := range uiEvents {
		bus.Subscribe(eventType, forwardEvent)
	}

	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	log.Printf("Starting UI with %d file(s)...", manager.Len())
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		log.Printf("Error running program: %v", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}

	released := previews.ReleaseAll()
	stats := previews.Stats()
	log.Printf("UI exited, released %d preview(s) (%d created, %d released)", released, stats.Created, stats.Released)

	// Stop the dispatcher before closing the channel its handlers write to
	bus.Close()
	close(eventChan)
}

// redirectLog sends the standard logger to path, returning the open file
func redirectLog(path string) *os.File {
	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
		return nil
	}
	log.SetOutput(logFile)
	return logFile
}

// resolveConfigPath prefers an explicit path, then a config in the start
// directory, then the per-user config.
func resolveConfigPath(explicit, dir string) string {
	if explicit != "" {
		return explicit
	}
	local := filepath.Join(dir, localConfigName)
	if _, err := os.Stat(local); err == nil {
		return local
	}
	return config.DefaultPath()
}

// loadOrCreateConfig loads the config, writing the defaults out when no file
// exists yet. A broken file falls back to the defaults.
func loadOrCreateConfig(configSvc config.ConfigService) (*config.Config, error) {
	_, statErr := os.Stat(configSvc.Path())

	cfg, err := configSvc.Load()
	if err != nil {
		return config.DefaultConfig(), err
	}

	if os.IsNotExist(statErr) {
		if err := configSvc.Save(cfg); err != nil {
			return cfg, fmt.Errorf("failed to save default config: %w", err)
		}
	}
	return cfg, nil
}
