// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestExecuteDispatch(t *testing.T) {
	var ran []string
	root := &Command{
		Name: "parley",
		Subcommands: []*Command{
			{
				Name: "logout",
				Run: func(args []string) error {
					ran = append(ran, "logout")
					return nil
				},
			},
			{
				Name: "version",
				Run: func(args []string) error {
					ran = append(ran, "version")
					return nil
				},
			},
		},
	}

	if err := root.Execute([]string{"logout"}); err != nil {
		t.Fatalf("Execute(logout): %v", err)
	}
	if len(ran) != 1 || ran[0] != "logout" {
		t.Errorf("ran = %v, want [logout]", ran)
	}
}

func TestExecuteUnknownCommandSuggestion(t *testing.T) {
	root := &Command{
		Name: "parley",
		Subcommands: []*Command{
			{Name: "logout", Run: func(args []string) error { return nil }},
		},
	}

	err := root.Execute([]string{"logut"})
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
	if !strings.Contains(err.Error(), `did you mean "logout"`) {
		t.Errorf("error %q missing suggestion", err)
	}
}

func TestExecuteFlagParsing(t *testing.T) {
	var command string
	var gotArgs []string
	cmd := &Command{
		Name: "parley",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("parley", pflag.ContinueOnError)
			flagSet.StringVar(&command, "command", "", "run one command and exit")
			return flagSet
		},
		Run: func(args []string) error {
			gotArgs = args
			return nil
		},
	}

	if err := cmd.Execute([]string{"--command", "threads", "extra"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if command != "threads" {
		t.Errorf("command flag = %q, want threads", command)
	}
	if len(gotArgs) != 1 || gotArgs[0] != "extra" {
		t.Errorf("args = %v, want [extra]", gotArgs)
	}
}

func TestExecuteUnknownFlagSuggestion(t *testing.T) {
	cmd := &Command{
		Name: "parley",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("parley", pflag.ContinueOnError)
			flagSet.String("config", "", "config file path")
			return flagSet
		},
		Run: func(args []string) error { return nil },
	}

	err := cmd.Execute([]string{"--confg", "x"})
	if err == nil {
		t.Fatal("expected error for unknown flag")
	}
	if !strings.Contains(err.Error(), "--config") {
		t.Errorf("error %q missing flag suggestion", err)
	}
}

func TestExecuteHelp(t *testing.T) {
	cmd := &Command{
		Name:    "parley",
		Summary: "interactive messaging client",
		Run: func(args []string) error {
			t.Fatal("Run must not execute for --help")
			return nil
		},
	}

	if err := cmd.Execute([]string{"--help"}); err != nil {
		t.Fatalf("Execute(--help): %v", err)
	}
}

func TestPrintHelpListsSubcommands(t *testing.T) {
	root := &Command{
		Name: "parley",
		Subcommands: []*Command{
			{Name: "logout", Summary: "remove the saved session"},
		},
	}

	var b strings.Builder
	root.PrintHelp(&b)
	if !strings.Contains(b.String(), "logout") || !strings.Contains(b.String(), "remove the saved session") {
		t.Errorf("help output missing subcommand listing:\n%s", b.String())
	}
}

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "abc", 3},
		{"abc", "abc", 0},
		{"logut", "logout", 1},
		{"kitten", "sitting", 3},
	}
	for _, tc := range cases {
		if got := levenshtein(tc.a, tc.b); got != tc.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}
