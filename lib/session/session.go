// Copyright 2026 The Desk Authors
// SPDX-License-Identifier: Apache-2.0

// Package session persists the client's portal identity between
// invocations. The identity is a single phone number — the portal
// backend authenticates every request by the X-Client-Phone header,
// so the phone is the whole session. Stored at a well-known path and
// loaded transparently by commands that require authentication,
// analogous to SSH keys: log in once, then access is seamless.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoSession is returned by Load when no session file exists. The
// caller decides how to surface it — CLI commands direct the user to
// "desk login", the console switches to the login view.
var ErrNoSession = errors.New("not logged in")

// Session holds the client's authentication state. There is no token,
// expiry, or signature — the portal's auth scheme is the bare phone
// number, and the session file simply remembers it.
type Session struct {
	// Phone is the client's phone number exactly as entered at login
	// (trimmed of surrounding whitespace, otherwise unvalidated).
	Phone string `json:"phone"`
}

// FilePath returns the path to the session file. Checks the
// DESK_SESSION_FILE environment variable first, then falls back to
// ~/.config/desk/session.json.
func FilePath() string {
	if envPath := os.Getenv("DESK_SESSION_FILE"); envPath != "" {
		return envPath
	}

	configDirectory := os.Getenv("XDG_CONFIG_HOME")
	if configDirectory == "" {
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			// Fallback — this should rarely happen.
			return filepath.Join("/tmp", "desk-session.json")
		}
		configDirectory = filepath.Join(homeDirectory, ".config")
	}
	return filepath.Join(configDirectory, "desk", "session.json")
}

// Store reads and writes the session at a fixed path. Constructed once
// at startup and passed to everything that needs the identity, so no
// package-level mutable state is involved.
type Store struct {
	path string
}

// NewStore creates a Store for the given file path. An empty path
// selects the well-known location from FilePath.
func NewStore(path string) *Store {
	if path == "" {
		path = FilePath()
	}
	return &Store{path: path}
}

// Path returns the file path this store reads and writes.
func (s *Store) Path() string {
	return s.path
}

// Load reads the stored phone number. Returns ErrNoSession (wrapped)
// when the session file does not exist.
func (s *Store) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w — run \"desk login\" first", ErrNoSession)
		}
		return "", fmt.Errorf("reading session file %s: %w", s.path, err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return "", fmt.Errorf("parsing session file %s: %w", s.path, err)
	}
	if sess.Phone == "" {
		return "", fmt.Errorf("session file %s has no phone", s.path)
	}

	return sess.Phone, nil
}

// Save writes the phone number to the session file. The phone is
// trimmed; an empty result is rejected. No format validation beyond
// that — the backend is the authority on what a valid phone is.
// Creates the parent directory with mode 0700 if needed; the file is
// written with mode 0600 since it is the client's entire credential.
func (s *Store) Save(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return fmt.Errorf("session: phone is empty")
	}

	data, err := json.MarshalIndent(Session{Phone: phone}, "", "  ")
	if err != nil {
		return fmt.Errorf("session: marshaling: %w", err)
	}
	data = append(data, '\n')

	directory := filepath.Dir(s.path)
	if err := os.MkdirAll(directory, 0700); err != nil {
		return fmt.Errorf("session: creating directory %s: %w", directory, err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("session: writing %s: %w", s.path, err)
	}
	return nil
}

// Clear removes the session file, returning the client to the
// unauthenticated state. Clearing an absent session is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("session: removing %s: %w", s.path, err)
	}
	return nil
}
