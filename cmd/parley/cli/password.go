// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// ReadLoginPassword reads a password for login. If passwordFile is
// empty or "-", prompts interactively on the terminal with echo
// disabled. Otherwise reads from the file path, stripping trailing
// newlines (common with echo/printf pipelines).
func ReadLoginPassword(passwordFile string) (string, error) {
	if passwordFile != "" && passwordFile != "-" {
		return readPasswordFile(passwordFile)
	}

	stdinFileDescriptor := int(os.Stdin.Fd())
	if !term.IsTerminal(stdinFileDescriptor) {
		return "", fmt.Errorf("no terminal available for interactive password prompt (use --password-file)")
	}

	fmt.Fprint(os.Stderr, "Password: ")
	passwordBytes, err := term.ReadPassword(stdinFileDescriptor)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	if len(passwordBytes) == 0 {
		return "", fmt.Errorf("empty password")
	}
	return string(passwordBytes), nil
}

func readPasswordFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	for len(data) > 0 && (data[len(data)-1] == '\n' || data[len(data)-1] == '\r') {
		data = data[:len(data)-1]
	}

	if len(data) == 0 {
		return "", fmt.Errorf("file %s is empty (after stripping trailing newlines)", path)
	}
	return string(data), nil
}
