// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command catalog is the interactive terminal browser of the BGPiesa catalog.
//
// # Startup Sequence
//
//  1. Load configuration from environment variables.
//  2. Initialize structured logger on stderr.
//  3. Build the catalog backend client.
//  4. Open the line editor and the credential file.
//  5. Run the command loop until exit, EOF or a signal.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/taibuivan/bgpiesa/internal/client"
	"github.com/taibuivan/bgpiesa/internal/platform/config"
	"github.com/taibuivan/bgpiesa/internal/platform/constants"
	"github.com/taibuivan/bgpiesa/internal/richtext"
	"github.com/taibuivan/bgpiesa/internal/session"
	"github.com/taibuivan/bgpiesa/internal/shell"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "bgpiesa:", err)
		os.Exit(1)
	}
}

func run() error {
	// ── 1. Configuration ──────────────────────────────────────────────────
	cfg, err := config.LoadCLI()
	if err != nil {
		return err
	}

	// ── 2. Logger ─────────────────────────────────────────────────────────
	// Only warnings reach the terminal unless DEBUG is set.
	level := slog.LevelWarn
	if cfg.Debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	// ── 3. Catalog Backend ────────────────────────────────────────────────
	catalogClient, err := client.New(cfg.APIBaseURL, client.Options{
		Timeout: cfg.HTTPTimeout,
		Logger:  log,
	})
	if err != nil {
		return err
	}

	// ── 4. Terminal ───────────────────────────────────────────────────────
	terminal, err := shell.NewTerminal(cfg.HistoryFile)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := terminal.Close(); cerr != nil {
			log.Warn("terminal_close_failed", slog.Any("error", cerr))
		}
	}()

	credentials := session.NewFileStore(cfg.CredentialFile)
	log.Debug("credential_store_opened", slog.String("path", credentials.Path()))

	browser := shell.New(shell.Options{
		Client:      catalogClient,
		Credentials: credentials,
		Renderer:    richtext.New(),
		Language:    cfg.Language(),
		Out:         os.Stdout,
		Progress:    os.Stderr,
		Logger:      log,
	})

	// ── 5. Command Loop ───────────────────────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	return browser.Run(ctx, terminal)
}
