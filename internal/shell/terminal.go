// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package shell

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterh/liner"
)

// Terminal is the interactive line editor with persistent history.
type Terminal struct {
	*liner.State
	historyPath string
}

// NewTerminal opens the line editor and loads history from historyPath. An
// empty path disables persistence.
func NewTerminal(historyPath string) (*Terminal, error) {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	state.SetCompleter(completeCommand)

	terminal := &Terminal{State: state, historyPath: historyPath}
	if historyPath == "" {
		return terminal, nil
	}

	file, err := os.Open(historyPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return terminal, nil
		}
		_ = state.Close()
		return nil, fmt.Errorf("shell: open history: %w", err)
	}
	defer file.Close()

	if _, err := state.ReadHistory(file); err != nil {
		_ = state.Close()
		return nil, fmt.Errorf("shell: read history: %w", err)
	}

	return terminal, nil
}

// Close writes the history back and restores the terminal.
func (t *Terminal) Close() error {
	var saveErr error
	if t.historyPath != "" {
		saveErr = t.saveHistory()
	}
	return errors.Join(saveErr, t.State.Close())
}

func (t *Terminal) saveHistory() error {
	if err := os.MkdirAll(filepath.Dir(t.historyPath), 0o700); err != nil {
		return fmt.Errorf("shell: create history dir: %w", err)
	}

	file, err := os.OpenFile(t.historyPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("shell: write history: %w", err)
	}
	defer file.Close()

	if _, err := t.WriteHistory(file); err != nil {
		return fmt.Errorf("shell: write history: %w", err)
	}
	return nil
}

// completeCommand offers command names for the first word of a line.
func completeCommand(line string) []string {
	if strings.Contains(line, " ") {
		return nil
	}

	var matches []string
	for name := range commands {
		if strings.HasPrefix(name, strings.ToLower(line)) {
			matches = append(matches, name)
		}
	}
	sort.Strings(matches)
	return matches
}
