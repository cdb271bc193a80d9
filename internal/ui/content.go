package ui

import (
	"github.com/five82/greenhouse/internal/state"
)

const (
	glyphFavorite = "★"
	glyphPlain    = "☆"
)

// sectionStyle describes how a section's rows are laid out.
type sectionStyle struct {
	Title string
	Inset bool // rows drawn inside a rounded box
}

// styleFor resolves a section tag to its presentation.
func styleFor(section state.Section) sectionStyle {
	switch section {
	case state.Grouped:
		return sectionStyle{Title: "Grouped", Inset: true}
	default:
		return sectionStyle{Title: "Sidebar"}
	}
}

// rowContent is what a row shows. It depends only on the record and its
// section; colors are resolved from the theme at draw time.
type rowContent struct {
	Text     string
	Glyph    string
	Favorite bool
	Style    sectionStyle
}

func contentFor(rec state.Record, section state.Section) rowContent {
	glyph := glyphPlain
	if rec.Favorite {
		glyph = glyphFavorite
	}
	return rowContent{
		Text:     rec.Name,
		Glyph:    glyph,
		Favorite: rec.Favorite,
		Style:    styleFor(section),
	}
}
