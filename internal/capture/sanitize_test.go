package capture

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSanitizeClipboard_StripsControlChars(t *testing.T) {
	in := "hello\x00world\x01\x02 ok"
	got := SanitizeClipboard(in, ClipboardMaxChars)
	want := "helloworld ok"
	if got != want {
		t.Errorf("SanitizeClipboard() = %q, want %q", got, want)
	}
}

func TestSanitizeClipboard_PreservesWhitespaceControls(t *testing.T) {
	in := "line one\nline two\ttabbed\r\nend"
	got := SanitizeClipboard(in, ClipboardMaxChars)
	if got != in {
		t.Errorf("newline/tab/CR should survive, got %q", got)
	}
}

func TestSanitizeClipboard_Trims(t *testing.T) {
	got := SanitizeClipboard("  padded  ", ClipboardMaxChars)
	if got != "padded" {
		t.Errorf("SanitizeClipboard() = %q, want trimmed", got)
	}
}

func TestSanitizeClipboard_EmptyAfterSanitization(t *testing.T) {
	for _, in := range []string{"", "   ", "\x00\x01\x02", " \x00 "} {
		if got := SanitizeClipboard(in, ClipboardMaxChars); got != "" {
			t.Errorf("SanitizeClipboard(%q) = %q, want empty", in, got)
		}
	}
}

func TestSanitizeClipboard_CapsWithMarker(t *testing.T) {
	in := strings.Repeat("a", ClipboardMaxChars+500)
	got := SanitizeClipboard(in, ClipboardMaxChars)

	if !strings.HasSuffix(got, TruncationMarker) {
		t.Errorf("capped output should end with marker, got suffix %q", got[len(got)-20:])
	}
	wantLen := ClipboardMaxChars + utf8.RuneCountInString(TruncationMarker)
	if gotLen := utf8.RuneCountInString(got); gotLen != wantLen {
		t.Errorf("capped length = %d, want %d", gotLen, wantLen)
	}
}

func TestSanitizeClipboard_MultibyteCap(t *testing.T) {
	// Cap counts runes, not bytes
	in := strings.Repeat("é", 20)
	got := SanitizeClipboard(in, 10)
	if !strings.HasPrefix(got, strings.Repeat("é", 10)) || !strings.HasSuffix(got, TruncationMarker) {
		t.Errorf("rune-based cap failed: %q", got)
	}
}

func TestSanitizeClipboard_UnderCapUntouched(t *testing.T) {
	in := "short text"
	if got := SanitizeClipboard(in, ClipboardMaxChars); got != in {
		t.Errorf("SanitizeClipboard() = %q, want unchanged", got)
	}
}
