// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSavedSessionRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	saved := &SavedSession{
		UserID:      "u1",
		AccessToken: "tok-abc",
		BackendURL:  "https://api.parley.im",
	}
	if err := SaveSessionTo(saved, path); err != nil {
		t.Fatalf("SaveSessionTo: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		t.Errorf("session file mode = %o, want 0600", mode)
	}

	loaded, err := LoadSessionFrom(path)
	if err != nil {
		t.Fatalf("LoadSessionFrom: %v", err)
	}
	if *loaded != *saved {
		t.Errorf("loaded = %+v, want %+v", loaded, saved)
	}
}

func TestLoadSessionMissingFile(t *testing.T) {
	_, err := LoadSessionFrom(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatal("expected error for missing session file")
	}
	if !os.IsNotExist(errUnwrapAll(err)) {
		t.Errorf("error %v does not unwrap to os.ErrNotExist", err)
	}
}

func errUnwrapAll(err error) error {
	for {
		unwrapped, ok := err.(interface{ Unwrap() error })
		if !ok {
			return err
		}
		err = unwrapped.Unwrap()
	}
}

func TestLoadSessionIncompleteFile(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"no user_id", `{"access_token": "tok", "backend_url": "https://x"}`},
		{"no access_token", `{"user_id": "u1", "backend_url": "https://x"}`},
		{"no backend_url", `{"user_id": "u1", "access_token": "tok"}`},
		{"not json", `hello`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "session.json")
			if err := os.WriteFile(path, []byte(tc.body), 0600); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadSessionFrom(path); err == nil {
				t.Error("expected error for incomplete session file")
			}
		})
	}
}

func TestSessionFilePathOverride(t *testing.T) {
	origPath := os.Getenv("PARLEY_SESSION_FILE")
	defer os.Setenv("PARLEY_SESSION_FILE", origPath)

	os.Setenv("PARLEY_SESSION_FILE", "/tmp/override.json")
	if got := SessionFilePath(); got != "/tmp/override.json" {
		t.Errorf("SessionFilePath() = %s, want the override", got)
	}
}

func TestReadLoginPasswordFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "password")
	if err := os.WriteFile(path, []byte("s3cret\n"), 0600); err != nil {
		t.Fatal(err)
	}

	password, err := ReadLoginPassword(path)
	if err != nil {
		t.Fatalf("ReadLoginPassword: %v", err)
	}
	if password != "s3cret" {
		t.Errorf("password = %q, want s3cret (trailing newline stripped)", password)
	}
}

func TestReadLoginPasswordEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "password")
	if err := os.WriteFile(path, []byte("\n\n"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadLoginPassword(path); err == nil {
		t.Fatal("expected error for empty password file")
	}
}
