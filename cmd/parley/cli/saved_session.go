// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SavedSession holds the persisted authentication state. Stored at the
// well-known path returned by SessionFilePath and loaded automatically
// on startup so the user logs in once and later runs are seamless.
type SavedSession struct {
	// UserID is the authenticated user's id on the backend.
	UserID string `json:"user_id"`

	// AccessToken proves the user's identity. Validated against the
	// backend's /me endpoint before reuse.
	AccessToken string `json:"access_token"`

	// BackendURL is the base URL the token was issued by. Included so
	// a token is never sent to a different backend than it came from.
	BackendURL string `json:"backend_url"`
}

// SessionFilePath returns the path of the saved session file. Checks
// the PARLEY_SESSION_FILE environment variable first, then falls back
// to $XDG_CONFIG_HOME/parley/session.json or ~/.config/parley/session.json.
func SessionFilePath() string {
	if envPath := os.Getenv("PARLEY_SESSION_FILE"); envPath != "" {
		return envPath
	}

	configDirectory := os.Getenv("XDG_CONFIG_HOME")
	if configDirectory == "" {
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join("/tmp", "parley-session.json")
		}
		configDirectory = filepath.Join(homeDirectory, ".config")
	}
	return filepath.Join(configDirectory, "parley", "session.json")
}

// LoadSession reads the saved session from the well-known path.
func LoadSession() (*SavedSession, error) {
	return LoadSessionFrom(SessionFilePath())
}

// LoadSessionFrom reads a saved session from a specific file path.
// Returns os.ErrNotExist-wrapped errors when no session exists, so
// callers can fall back to an interactive login.
func LoadSessionFrom(path string) (*SavedSession, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no saved session at %s: %w", path, err)
		}
		return nil, fmt.Errorf("reading session file %s: %w", path, err)
	}

	var saved SavedSession
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, fmt.Errorf("parsing session file %s: %w", path, err)
	}

	if saved.UserID == "" {
		return nil, fmt.Errorf("session file %s has no user_id", path)
	}
	if saved.AccessToken == "" {
		return nil, fmt.Errorf("session file %s has no access_token", path)
	}
	if saved.BackendURL == "" {
		return nil, fmt.Errorf("session file %s has no backend_url", path)
	}

	return &saved, nil
}

// SaveSession writes a saved session to the well-known path.
func SaveSession(saved *SavedSession) error {
	return SaveSessionTo(saved, SessionFilePath())
}

// SaveSessionTo writes a saved session to a specific file path. Creates
// the parent directory with mode 0700 if it doesn't exist. The file is
// written with mode 0600 (owner-only) since it contains an access
// token.
func SaveSessionTo(saved *SavedSession, path string) error {
	data, err := json.MarshalIndent(saved, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}
	data = append(data, '\n')

	directory := filepath.Dir(path)
	if err := os.MkdirAll(directory, 0700); err != nil {
		return fmt.Errorf("creating session directory %s: %w", directory, err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing session file %s: %w", path, err)
	}
	return nil
}

// RemoveSession deletes the saved session file. A missing file is not
// an error — logout after an expired or never-saved session succeeds.
func RemoveSession() error {
	return RemoveSessionAt(SessionFilePath())
}

// RemoveSessionAt deletes a saved session file at a specific path.
func RemoveSessionAt(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}
