package assistant

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateShortStringUnchanged(t *testing.T) {
	if got := truncate("short", 500); got != "short" {
		t.Fatalf("short string altered: %q", got)
	}
}

func TestTruncateASCIIBoundary(t *testing.T) {
	s := strings.Repeat("a", 600)
	got := truncate(s, 500)
	if len(got) != 500 {
		t.Fatalf("expected 500 bytes, got %d", len(got))
	}
}

func TestTruncateNeverSplitsRune(t *testing.T) {
	// "38.5 °C" style output: "°" is two bytes, so a byte cut at an odd
	// offset would land mid-rune.
	for _, s := range []string{
		strings.Repeat("°", 300),
		strings.Repeat("a°", 200),
		strings.Repeat("•", 250),
		"Temperature is 38.5 °C. " + strings.Repeat("“fine” ", 80),
	} {
		for _, n := range []int{499, 500, 501} {
			got := truncate(s, n)
			if len(got) > n {
				t.Fatalf("truncate(%d) returned %d bytes", n, len(got))
			}
			if !utf8.ValidString(got) {
				t.Fatalf("truncate(%d) split a rune: %q...", n, got[len(got)-4:])
			}
			if !strings.HasPrefix(s, got) {
				t.Fatalf("truncate(%d) is not a prefix of the input", n)
			}
		}
	}
}
