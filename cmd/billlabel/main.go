package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"golang.org/x/term"

	"github.com/lachiem1/billlabel/internal/images"
	"github.com/lachiem1/billlabel/internal/label"
	"github.com/lachiem1/billlabel/internal/storage"
	"github.com/lachiem1/billlabel/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := ff.NewFlagSet("billlabel")
	var (
		imagesDir = fs.StringLong("images", "", "directory of receipt images to label")
		logPath   = fs.StringLong("log", "", "log file path (defaults to the user cache dir)")
		wipe      = fs.BoolLong("wipe", "delete the local database and exit")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("BILLLABEL"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		return err
	}

	if *wipe {
		cfg, err := storage.Wipe()
		if err != nil {
			return err
		}
		fmt.Printf("Removed local database at %s.\n", cfg.Path)
		return nil
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("billlabel is interactive and needs a terminal")
	}

	logger, closeLog, err := openLogger(*logPath)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx := context.Background()

	db, cfg, err := storage.Open(ctx)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	logger.Info("database open", "path", cfg.Path, "mode", cfg.Mode)

	var scanned []images.Image
	if *imagesDir != "" {
		scanned, err = images.ScanDir(*imagesDir)
		if err != nil {
			return fmt.Errorf("scan images dir: %w", err)
		}
		if len(scanned) == 0 {
			fmt.Fprintf(os.Stderr, "No images found in the selected folder %s.\n", *imagesDir)
		}
	}

	nav := &images.Sequence{}
	session := storage.NewSessionRepo(db)
	model := tui.NewProgram(nav, func(n label.Notifier) *label.Manager {
		mgr := label.NewManager(nav, session, n, logger)
		mgr.Restore(ctx)
		if len(scanned) > 0 {
			mgr.SetImages(scanned)
		}
		return mgr
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		logger.Error("program exited", "error", err)
		return err
	}
	return nil
}

func openLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		cacheDir, err := os.UserCacheDir()
		if err != nil {
			return nil, nil, fmt.Errorf("resolve cache dir: %w", err)
		}
		dir := filepath.Join(cacheDir, "billlabel")
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		path = filepath.Join(dir, "billlabel.log")
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, nil))
	return logger, func() { f.Close() }, nil
}
