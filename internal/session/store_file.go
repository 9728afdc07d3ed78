// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileStore persists a single credential in a YAML file, so the terminal
// browser stays logged in across restarts.
type FileStore struct {
	path string
}

// NewFileStore creates a [FileStore] writing to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the file location.
func (store *FileStore) Path() string {
	return store.path
}

// Load reads the stored credential. It returns [ErrNotFound] when nothing has
// been saved yet.
func (store *FileStore) Load() (*Credential, error) {
	data, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("session: read %s: %w", store.path, err)
	}

	credential := &Credential{}
	if err := yaml.Unmarshal(data, credential); err != nil {
		return nil, fmt.Errorf("session: decode %s: %w", store.path, err)
	}

	if credential.Token == "" {
		return nil, ErrNotFound
	}

	return credential, nil
}

// Save writes the credential with owner-only permissions.
func (store *FileStore) Save(credential *Credential) error {
	data, err := yaml.Marshal(credential)
	if err != nil {
		return fmt.Errorf("session: encode credential: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(store.path), 0o700); err != nil {
		return fmt.Errorf("session: create %s: %w", filepath.Dir(store.path), err)
	}

	if err := os.WriteFile(store.path, data, 0o600); err != nil {
		return fmt.Errorf("session: write %s: %w", store.path, err)
	}

	return nil
}

// Clear removes the stored credential. Clearing an empty store is not an error.
func (store *FileStore) Clear() error {
	if err := os.Remove(store.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("session: remove %s: %w", store.path, err)
	}
	return nil
}
