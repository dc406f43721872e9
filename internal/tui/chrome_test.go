package tui

import (
	"testing"
	"time"
)

func TestPageIcon_KnownTokensAndFallback(t *testing.T) {
	setGlyphs(glyphSetUnicode)
	if got := pageIcon("star"); got != "⭐" {
		t.Fatalf("star token: got %q", got)
	}
	// Unknown tokens pass through untouched so literal emoji still work.
	if got := pageIcon("🦄"); got != "🦄" {
		t.Fatalf("unknown token: got %q", got)
	}
	if got := pageIcon(""); got != "" {
		t.Fatalf("empty token: got %q", got)
	}

	setGlyphs(glyphSetASCII)
	defer setGlyphs(glyphSetUnicode)
	if got := pageIcon("star"); got != "(star)" {
		t.Fatalf("ascii star token: got %q", got)
	}
}

func TestPickerTokens_CoverEveryMappedToken(t *testing.T) {
	icons := pickerTokens(modalPageIcon)
	if icons[0] != "" {
		t.Fatalf("first picker entry must clear the field")
	}
	for _, token := range icons[1:] {
		if _, ok := pageIcons[token]; !ok {
			t.Fatalf("picker token %q has no glyph", token)
		}
	}

	colors := pickerTokens(modalPageColor)
	for _, token := range colors[1:] {
		if _, ok := pageBackground(token); !ok {
			t.Fatalf("picker token %q has no color", token)
		}
	}
}

func TestGlyphs_ASCIIFallback(t *testing.T) {
	setGlyphs(glyphSetASCII)
	defer setGlyphs(glyphSetUnicode)
	if got := glyphCheckbox(true); got != "[x]" {
		t.Fatalf("checked: got %q", got)
	}
	if got := glyphCheckbox(false); got != "[ ]" {
		t.Fatalf("unchecked: got %q", got)
	}
	if got := glyphBullet(); got != "*" {
		t.Fatalf("bullet: got %q", got)
	}
}

func TestFormatRelative(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		at   time.Time
		want string
	}{
		{now.Add(-30 * time.Second), "just now"},
		{now.Add(-5 * time.Minute), "5m ago"},
		{now.Add(-3 * time.Hour), "3h ago"},
		{now.Add(-24 * time.Hour), "1 day ago"},
		{now.Add(-72 * time.Hour), "3 days ago"},
		{now.Add(-90 * 24 * time.Hour), "Mar 17, 2024"},
		{time.Time{}, ""},
	}
	for _, tt := range tests {
		if got := formatRelative(tt.at, now); got != tt.want {
			t.Errorf("formatRelative(%v) = %q, want %q", tt.at, got, tt.want)
		}
	}
}
