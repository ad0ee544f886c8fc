// Package pdf renders recordings into PDF documents. Importing the
// package registers it for the "pdf" file extension.
//
// Geometry arrives fully transformed in page coordinates (y-up,
// points) and is written through codeberg.org/go-pdf/fpdf. Text
// reaches the painter as glyph outlines, so documents embed no fonts;
// the glyphs are vector paths.
package pdf

import (
	"context"
	"log/slog"
)

// nopHandler discards all log records. Enabled returns false so the
// caller skips message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }
