// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package shell is the interactive terminal browser of the catalog.

It reads one command per line, resolves every bilingual field for the current
display language, and prints descriptions as plain text. The plays and library
listings each own a [filter.Controller]: "set" and "unset" edit the pending
criteria, "apply" commits them, "clear" resets them, and "search" refetches
immediately.

The admin credential is persisted between sessions by a [CredentialStore].
*/
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/peterh/liner"

	"github.com/taibuivan/bgpiesa/internal/catalog"
	"github.com/taibuivan/bgpiesa/internal/client"
	"github.com/taibuivan/bgpiesa/internal/filter"
	"github.com/taibuivan/bgpiesa/internal/i18n"
	"github.com/taibuivan/bgpiesa/internal/platform/apperr"
	"github.com/taibuivan/bgpiesa/internal/richtext"
	"github.com/taibuivan/bgpiesa/internal/session"
)

// ErrExit is returned by [Shell.Execute] for the exit command.
var ErrExit = errors.New("shell: exit")

// # Contracts

// LineReader is the interactive input. [Terminal] implements it.
type LineReader interface {
	Prompt(prompt string) (string, error)
	PasswordPrompt(prompt string) (string, error)
	AppendHistory(item string)
}

// CredentialStore persists the admin credential. [session.FileStore]
// implements it.
type CredentialStore interface {
	Load() (*session.Credential, error)
	Save(credential *session.Credential) error
	Clear() error
}

// Options configures a [Shell].
type Options struct {
	Client      *client.Client
	Credentials CredentialStore
	Renderer    *richtext.Renderer
	Language    i18n.Lang

	// Out receives command output.
	Out io.Writer

	// Progress receives upload and download progress bars. Nil disables them.
	Progress io.Writer

	Logger *slog.Logger

	// Now defaults to [time.Now].
	Now func() time.Time
}

type (
	playsController   = filter.Controller[catalog.PlayCriteria, catalog.Play]
	libraryController = filter.Controller[catalog.LibraryCriteria, catalog.LiteraryPiece]
)

// listingKind names the listing that filter commands act on.
type listingKind string

const (
	listingNone    listingKind = ""
	listingPlays   listingKind = "plays"
	listingLibrary listingKind = "library"
)

// Shell executes catalog commands.
type Shell struct {
	client      *client.Client
	credentials CredentialStore
	renderer    *richtext.Renderer
	out         io.Writer
	progress    io.Writer
	logger      *slog.Logger
	now         func() time.Time

	lang       i18n.Lang
	credential *session.Credential
	active     listingKind
	input      LineReader

	plays       *playsController
	playOptions *catalog.PlayOptions
	library     *libraryController
}

// New creates a [Shell] and restores any stored credential.
func New(options Options) *Shell {
	s := &Shell{
		client:      options.Client,
		credentials: options.Credentials,
		renderer:    options.Renderer,
		out:         options.Out,
		progress:    options.Progress,
		logger:      options.Logger,
		now:         options.Now,
		lang:        options.Language,
	}

	if s.renderer == nil {
		s.renderer = richtext.New()
	}
	if s.out == nil {
		s.out = io.Discard
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if !s.lang.IsValid() {
		s.lang = i18n.Default
	}

	s.plays = filter.New(s.fetchPlays, filter.Options[catalog.PlayCriteria, catalog.Play]{
		Baseline: catalog.PlayOptions{}.Baseline(),
		Logger:   s.logger,
	})
	s.library = filter.New(s.fetchLibrary, filter.Options[catalog.LibraryCriteria, catalog.LiteraryPiece]{
		ResetSearchOnClear: true,
		Logger:             s.logger,
	})

	s.restoreCredential()
	return s
}

func (s *Shell) restoreCredential() {
	if s.credentials == nil {
		return
	}

	credential, err := s.credentials.Load()
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			s.logger.Warn("credential_restore_failed", slog.Any("error", err))
		}
		return
	}

	if credential.Valid(s.now()) {
		s.credential = credential
	}
}

// # Loop

// Run reads and executes commands until exit or end of input.
func (s *Shell) Run(ctx context.Context, input LineReader) error {
	s.input = input
	s.println("BGPiesa: type help for commands.")

	for {
		line, err := input.Prompt(s.prompt())
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("shell: read line: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		input.AppendHistory(line)

		if err := s.Execute(ctx, line); err != nil {
			if errors.Is(err, ErrExit) {
				return nil
			}
			s.report(err)
		}
	}
}

// Execute runs a single command line.
func (s *Shell) Execute(ctx context.Context, line string) error {
	args, err := splitArgs(line)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return nil
	}

	cmd, ok := commands[strings.ToLower(args[0])]
	if !ok {
		s.println(i18n.T(s.lang, i18n.MsgUnknownCommand))
		return nil
	}

	if len(args)-1 < cmd.minArgs {
		return usageError(cmd.usage)
	}

	return cmd.run(s, ctx, args[1:])
}

func (s *Shell) prompt() string {
	if s.active == listingNone {
		return fmt.Sprintf("bgpiesa[%s]> ", s.lang)
	}
	return fmt.Sprintf("bgpiesa[%s|%s]> ", s.lang, s.active)
}

// # Commands

type command struct {
	run     func(s *Shell, ctx context.Context, args []string) error
	minArgs int
	usage   string
	summary string
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"help":     {run: (*Shell).help, usage: "help", summary: "list commands"},
		"exit":     {run: (*Shell).exit, usage: "exit", summary: "leave the browser"},
		"quit":     {run: (*Shell).exit, usage: "quit", summary: "leave the browser"},
		"lang":     {run: (*Shell).setLanguage, minArgs: 1, usage: "lang bg|en", summary: "switch the display language"},
		"home":     {run: (*Shell).home, usage: "home", summary: "featured authors and plays"},
		"authors":  {run: (*Shell).listAuthors, usage: "authors [search]", summary: "list authors"},
		"author":   {run: (*Shell).showAuthor, minArgs: 1, usage: "author <id> [play search]", summary: "author biography and plays"},
		"plays":    {run: (*Shell).showPlays, usage: "plays", summary: "open the plays listing"},
		"play":     {run: (*Shell).showPlay, minArgs: 1, usage: "play <id>", summary: "play details"},
		"library":  {run: (*Shell).showLibrary, usage: "library", summary: "open the library listing"},
		"piece":    {run: (*Shell).showPiece, minArgs: 1, usage: "piece <id>", summary: "literary piece details"},
		"search":   {run: (*Shell).search, usage: "search [term]", summary: "search the open listing"},
		"set":      {run: (*Shell).setFilter, minArgs: 2, usage: "set <field> <value>", summary: "edit a pending filter"},
		"unset":    {run: (*Shell).unsetFilter, minArgs: 1, usage: "unset <field>", summary: "reset a pending filter"},
		"pending":  {run: (*Shell).showPending, usage: "pending", summary: "pending and applied filters"},
		"apply":    {run: (*Shell).applyFilters, usage: "apply", summary: "apply the pending filters"},
		"clear":    {run: (*Shell).clearFilters, usage: "clear", summary: "reset all filters"},
		"options":  {run: (*Shell).showOptions, usage: "options", summary: "selectable filter values"},
		"download": {run: (*Shell).download, minArgs: 3, usage: "download play|piece <id> <path> | download file <play id> <file id> <path>", summary: "save a PDF or attachment"},
		"login":    {run: (*Shell).login, usage: "login", summary: "sign in as admin"},
		"logout":   {run: (*Shell).logout, usage: "logout", summary: "sign out"},
		"admin":    {run: (*Shell).admin, minArgs: 1, usage: "admin <action> ...", summary: "manage the catalog (see help admin)"},
	}
}

func (s *Shell) help(_ context.Context, args []string) error {
	if len(args) > 0 && args[0] == "admin" {
		for _, line := range adminUsage {
			s.println("  " + line)
		}
		return nil
	}

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	table := s.table()
	for _, name := range names {
		fmt.Fprintf(table, "  %s\t%s\n", commands[name].usage, commands[name].summary)
	}
	return table.Flush()
}

func (s *Shell) exit(context.Context, []string) error {
	return ErrExit
}

func (s *Shell) setLanguage(_ context.Context, args []string) error {
	lang := i18n.Lang(strings.ToLower(args[0]))
	if !lang.IsValid() {
		return usageError("lang bg|en")
	}
	s.lang = lang
	return nil
}

// # Output

func (s *Shell) println(text string) {
	fmt.Fprintln(s.out, text)
}

// report prints err the way the catalog views show failures.
func (s *Shell) report(err error) {
	switch {
	case errors.Is(err, client.ErrNoCredential):
		s.println(i18n.T(s.lang, i18n.MsgLoginRequired))
	case errors.Is(err, context.Canceled):
	default:
		if appError := apperr.As(err); appError != nil {
			s.println(appError.Message)
			for _, detail := range appError.Details {
				s.println(fmt.Sprintf("  %s: %s", detail.Field, detail.Message))
			}
			return
		}
		if requestErr, ok := client.AsRequestError(err); ok {
			s.println(requestErr.Message())
			return
		}
		s.println(err.Error())
	}
}

func usageError(usage string) error {
	return fmt.Errorf("usage: %s", usage)
}
