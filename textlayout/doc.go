// Package textlayout shapes and wraps text with go-text/typesetting.
//
// The Engine implements canvas.TextLayoutEngine: it resolves font
// families and font files to concrete faces, shapes styled runs with
// HarfBuzz, wraps them into lines, and converts every glyph to a
// scaled outline path. Backends therefore never touch font data; they
// only fill the paths the engine hands them.
//
// Two faces are embedded so the engine works without any fonts on the
// host: Go Regular (the default face) and Latin Modern Roman (the
// built-in fallback for characters the selected face lacks).
package textlayout
