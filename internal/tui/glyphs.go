package tui

import (
	"os"
	"strings"
	"sync"
)

// Terminal apps can't change the user's actual font. Instead, we can choose
// between Unicode and ASCII glyph sets for UI affordances (checkboxes,
// bullets, dividers). This helps on terminals/fonts that don't render some
// glyphs cleanly.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

func applyGlyphPreference() {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("NOTA_TUI_GLYPHS")))
	switch v {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	default:
		// Unknown value: ignore.
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func glyphBullet() string {
	if glyphs() == glyphSetASCII {
		return "*"
	}
	return "•"
}

func glyphCheckbox(checked bool) string {
	if glyphs() == glyphSetASCII {
		if checked {
			return "[x]"
		}
		return "[ ]"
	}
	if checked {
		return "☑"
	}
	return "☐"
}

func glyphDivider() string {
	if glyphs() == glyphSetASCII {
		return "-"
	}
	return "─"
}

func glyphQuoteBar() string {
	if glyphs() == glyphSetASCII {
		return "|"
	}
	return "┃"
}

func glyphShared() string {
	if glyphs() == glyphSetASCII {
		return "~"
	}
	return "⤴"
}

func glyphAttachment() string {
	if glyphs() == glyphSetASCII {
		return "@"
	}
	return "📎"
}
