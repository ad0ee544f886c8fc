// Package raster renders recordings into bitmap images and encodes
// them as PNG, JPEG, animated GIF, TIFF or BMP. Importing the package
// registers it for those file extensions.
//
// Geometry arrives fully transformed in page coordinates (y-up,
// points); the painter scales it by the imageResolution option and
// flips it into pixel space. Text reaches the painter as glyph
// outlines, so no font handling happens here.
package raster

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
