package textutil

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{"short", "Error: bad file", 200, "Error: bad file"},
		{"collapse whitespace", "Error:\n  bad\tfile\n", 200, "Error: bad file"},
		{"limit", "abcdefghij", 4, "abcd"},
		{"runes", "日本語のエラー", 3, "日本語"},
		{"no limit", "a b", 0, "a b"},
		{"empty", "", 10, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.input, tt.max); got != tt.want {
				t.Fatalf("Truncate(%q, %d) = %q, want %q", tt.input, tt.max, got, tt.want)
			}
		})
	}
}

func TestShortenMiddle(t *testing.T) {
	if got := ShortenMiddle("short.mkv", 20); got != "short.mkv" {
		t.Fatalf("unexpected shortening: %q", got)
	}
	got := ShortenMiddle("Series/Season 01/Episode 01.mkv", 11)
	if len([]rune(got)) != 11 {
		t.Fatalf("expected 11 runes, got %q", got)
	}
	if got != "Serie…1.mkv" {
		t.Fatalf("unexpected result %q", got)
	}
	if got := ShortenMiddle("abcdef", 2); got != "ab" {
		t.Fatalf("unexpected narrow result %q", got)
	}
}
