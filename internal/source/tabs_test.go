package source

import (
	"testing"
)

func TestParseTabLines(t *testing.T) {
	out := "Example Page\thttps://www.example.com/path\nDocs\thttps://docs.example.com\n"
	tabs := parseTabLines("Safari", out)

	if len(tabs) != 2 {
		t.Fatalf("len = %d, want 2", len(tabs))
	}
	if tabs[0].Title != "Example Page" || tabs[0].URL != "https://www.example.com/path" {
		t.Errorf("tabs[0] = %+v", tabs[0])
	}
	if tabs[0].Domain != "example.com" {
		t.Errorf("Domain = %q, want example.com", tabs[0].Domain)
	}
	if tabs[0].Browser != "Safari" {
		t.Errorf("Browser = %q", tabs[0].Browser)
	}
}

func TestParseTabLines_SkipsMalformed(t *testing.T) {
	out := "no tab separator\nTitle\t\nBlank URL\tmissing value\nOK\thttps://ok.com"
	tabs := parseTabLines("Google Chrome", out)

	if len(tabs) != 1 {
		t.Fatalf("len = %d, want 1 (%+v)", len(tabs), tabs)
	}
	if tabs[0].URL != "https://ok.com" {
		t.Errorf("URL = %q", tabs[0].URL)
	}
}

func TestParseTabLines_Empty(t *testing.T) {
	if tabs := parseTabLines("Arc", ""); len(tabs) != 0 {
		t.Errorf("empty output should yield no tabs, got %+v", tabs)
	}
}

func TestBrowserTargets_Fixed(t *testing.T) {
	// The aggregate order contract depends on this list's order.
	if browserTargets[0] != "Safari" {
		t.Errorf("browserTargets[0] = %q, want Safari first", browserTargets[0])
	}
	seen := make(map[string]bool)
	for _, b := range browserTargets {
		if seen[b] {
			t.Errorf("duplicate browser target %q", b)
		}
		seen[b] = true
	}
}
