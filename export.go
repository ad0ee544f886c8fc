package inkdraw

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/inkdraw/inkdraw/canvas"
	"github.com/inkdraw/inkdraw/recording"

	pdfbackend "github.com/inkdraw/inkdraw/backends/pdf"
	_ "github.com/inkdraw/inkdraw/backends/raster"
)

// SaveOption is a named export option passed to SaveImage. Options the
// chosen format does not understand are dropped with a warning.
type SaveOption struct {
	Name  string
	Value any
}

// ImageResolution sets the raster export resolution in dots per inch.
func ImageResolution(dpi float64) SaveOption {
	return SaveOption{Name: "imageResolution", Value: dpi}
}

// JPEGQuality sets the JPEG encoder quality, 1 to 100.
func JPEGQuality(quality int) SaveOption {
	return SaveOption{Name: "jpegQuality", Value: quality}
}

// Multipage forces numbered per-page files even for single-page
// drawings.
func Multipage(on bool) SaveOption {
	return SaveOption{Name: "multipage", Value: on}
}

// SaveImage replays the drawing into the backend matching the path's
// extension and writes the result. The parent directory must exist.
func (d *Drawing) SaveImage(path string, options ...SaveOption) error {
	ext := filepath.Ext(path)
	if ext == "" {
		return canvas.Usagef("saveImage", "%q has no file extension to pick an output format by", path)
	}
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return &canvas.ResourceError{Op: "saveImage", Path: path, Err: err}
		}
	}

	backend, err := recording.NewBackend(ext, d.engine)
	if err != nil {
		return &canvas.ResourceError{Op: "saveImage", Path: path, Err: err}
	}
	propagateLogger(backend)
	defer releaseReplayFonts(backend)

	known := backend.OptionNames()
	for _, opt := range options {
		if !slices.Contains(known, opt.Name) {
			Logger().Warn("ignoring an option the output format does not support",
				"option", opt.Name, "format", ext)
			continue
		}
		if err := backend.SetOption(opt.Name, opt.Value); err != nil {
			return err
		}
	}

	if err := d.rec.Replay(backend); err != nil {
		return err
	}
	return backend.SaveTo(path)
}

// PDFData replays the drawing into the PDF backend and returns the
// document bytes without touching the filesystem.
func (d *Drawing) PDFData() ([]byte, error) {
	backend := pdfbackend.New(d.engine)
	propagateLogger(backend)
	defer backend.ReleaseFonts()
	if err := d.rec.Replay(backend); err != nil {
		return nil, err
	}
	return backend.Data()
}

// releaseReplayFonts undoes the font installs a replay performed on
// the shared engine, so exporting after EndDrawing leaves no fonts
// behind.
func releaseReplayFonts(b recording.Backend) {
	if r, ok := b.(interface{ ReleaseFonts() }); ok {
		r.ReleaseFonts()
	}
}
