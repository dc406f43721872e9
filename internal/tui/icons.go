package tui

import "github.com/charmbracelet/lipgloss"

// Page icons are stored server-side as short tokens so they survive clients
// with different emoji support. Unknown tokens fall back to the raw value,
// which also covers pages whose icon is a literal emoji.
var pageIcons = map[string]string{
	"note":     "📝",
	"notebook": "📓",
	"book":     "📖",
	"star":     "⭐",
	"pin":      "📌",
	"bulb":     "💡",
	"rocket":   "🚀",
	"target":   "🎯",
	"calendar": "📅",
	"folder":   "📁",
	"home":     "🏠",
	"heart":    "❤️",
}

// pageIconTokens is the picker order.
var pageIconTokens = []string{
	"note", "notebook", "book", "star", "pin", "bulb",
	"rocket", "target", "calendar", "folder", "home", "heart",
}

func pageIcon(token string) string {
	if token == "" {
		return ""
	}
	if g, ok := pageIcons[token]; ok {
		if glyphs() == glyphSetASCII {
			return "(" + token + ")"
		}
		return g
	}
	return token
}

// Background color tokens map to terminal-safe colors for the page header.
var pageBackgrounds = map[string]lipgloss.TerminalColor{
	"red":    ac("203", "124"),
	"orange": ac("208", "130"),
	"yellow": ac("178", "143"),
	"green":  ac("71", "65"),
	"blue":   ac("69", "25"),
	"purple": ac("135", "54"),
	"pink":   ac("211", "132"),
	"gray":   ac("246", "240"),
}

var pageBackgroundTokens = []string{
	"red", "orange", "yellow", "green", "blue", "purple", "pink", "gray",
}

func pageBackground(token string) (lipgloss.TerminalColor, bool) {
	c, ok := pageBackgrounds[token]
	return c, ok
}
