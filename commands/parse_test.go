// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import "testing"

func TestArguments(t *testing.T) {
	cases := []struct {
		line string
		want string
	}{
		{"m Alice hello", "Alice hello"},
		{"threads", ""},
		{"  threads  10  ", "10"},
		{"r\thi there", "hi there"},
	}
	for _, tc := range cases {
		if got := arguments(tc.line); got != tc.want {
			t.Errorf("arguments(%q) = %q, want %q", tc.line, got, tc.want)
		}
	}
}

func TestSplitTarget(t *testing.T) {
	cases := []struct {
		name       string
		args       string
		wantTarget string
		wantRest   string
		wantErr    bool
	}{
		{"bare target", "Alice hello there", "Alice", "hello there", false},
		{"bare target only", "Alice", "Alice", "", false},
		{"quoted target", `"Bob Smith" lunch?`, "Bob Smith", "lunch?", false},
		{"quoted target only", `"Bob Smith"`, "Bob Smith", "", false},
		{"quoted with escapes", `"say \"hi\"" ok`, `say "hi"`, "ok", false},
		{"unterminated quote", `"Bob Smith lunch?`, "", "", true},
		{"empty", "", "", "", true},
		{"whitespace only", "   ", "", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			target, rest, err := splitTarget(tc.args)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("splitTarget(%q): expected error", tc.args)
				}
				return
			}
			if err != nil {
				t.Fatalf("splitTarget(%q): %v", tc.args, err)
			}
			if target != tc.wantTarget || rest != tc.wantRest {
				t.Errorf("splitTarget(%q) = %q, %q, want %q, %q",
					tc.args, target, rest, tc.wantTarget, tc.wantRest)
			}
		})
	}
}

func TestParseLimit(t *testing.T) {
	if limit, err := parseLimit("", 20); err != nil || limit != 20 {
		t.Errorf("parseLimit(empty) = %d, %v, want 20, nil", limit, err)
	}
	if limit, err := parseLimit("5", 20); err != nil || limit != 5 {
		t.Errorf("parseLimit(5) = %d, %v, want 5, nil", limit, err)
	}
	for _, bad := range []string{"zero", "-3", "0"} {
		if _, err := parseLimit(bad, 20); err == nil {
			t.Errorf("parseLimit(%q): expected error", bad)
		}
	}
}
