// Package main is the entry point for modalkeys.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/modalkeys/internal/app"
	"github.com/dshills/modalkeys/internal/config"
	"github.com/dshills/modalkeys/internal/config/loader"
	"github.com/dshills/modalkeys/internal/terminal"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath string
	logLevel   string
	keys       string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	// The terminal UI owns stdout and stderr, so without a log file it logs nowhere.
	out, closeLog, err := logOutput(cfg, opts.keys != "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: opening log file: %v\n", err)
		return 1
	}
	defer closeLog()

	logCfg := app.DefaultLoggerConfig()
	logCfg.Level = app.ParseLogLevel(cfg.Log.Level)
	logCfg.Output = out

	application, err := app.New(app.Options{Config: cfg, Logger: app.NewLogger(logCfg)})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	if opts.keys != "" {
		if _, err := application.Replay(opts.keys, app.NewWriterSurface(os.Stdout)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	screen, err := terminal.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	surface := app.NewScreenSurface(screen)
	screen.OnResize(func(int, int) {
		application.Post(func() {})
	})

	err = application.Run(ctx, screen, surface)
	screen.Close()
	if err != nil && !errors.Is(err, app.ErrQuit) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func loadConfig(opts options) (*config.Config, error) {
	path := opts.configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err == nil {
			path = p
		}
	}

	cfg, err := config.Load(loader.DefaultFS(), path, loader.NewEnv())
	if err != nil {
		return nil, err
	}

	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func logOutput(cfg *config.Config, scripted bool) (io.Writer, func(), error) {
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		return f, func() { f.Close() }, nil
	}
	if scripted {
		return os.Stderr, func() {}, nil
	}
	return io.Discard, func() {}, nil
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file (.toml, .yaml)")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.keys, "keys", "", "Replay a key sequence and print the actions, e.g. \"3dd<C-r>\"")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "modalkeys - Vim-style modal key interpreter\n\n")
		fmt.Fprintf(os.Stderr, "Usage: modalkeys [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  F2                 Toggle modal editing (saved to settings.json)\n")
		fmt.Fprintf(os.Stderr, "  Ctrl+C, Ctrl+Q     Quit\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  modalkeys                   Open the interactive terminal\n")
		fmt.Fprintf(os.Stderr, "  modalkeys -keys 3ddgg       Print the actions for a key sequence\n")
		fmt.Fprintf(os.Stderr, "  modalkeys -keys \"Ctrl+R Escape\"\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("modalkeys %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	return opts
}
