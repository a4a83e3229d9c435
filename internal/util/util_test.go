package util

import "testing"

func TestTrimQuotes(t *testing.T) {
	cases := map[string]string{
		`"quoted"`: "quoted",
		`plain`:    "plain",
		`""`:       "",
	}
	for in, want := range cases {
		if got := TrimQuotes(in); got != want {
			t.Errorf("TrimQuotes(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSanitizeName(t *testing.T) {
	cases := map[string]string{
		"my tour":          "my tour",
		"a/b\\c":           "a-b-c",
		"  spaced  ":       "spaced",
		"dots...":          "dots",
		"برج السلام":       "برج السلام",
		"bad:*?\"<>|chars": "bad-------chars",
		"":                 "untitled",
		"///":              "---",
	}
	for in, want := range cases {
		if got := SanitizeName(in); got != want {
			t.Errorf("SanitizeName(%q) = %q, want %q", in, got, want)
		}
	}
}
