package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/inkdraw/inkdraw/canvas"
	"github.com/inkdraw/inkdraw/recording"
)

func init() {
	for _, ext := range []string{"png", "jpg", "jpeg", "gif", "tiff", "bmp"} {
		recording.Register(ext, func(engine canvas.TextLayoutEngine) recording.Backend {
			return New(engine)
		})
	}
}

// Backend renders a replayed recording into bitmap images, one per
// page, and encodes them in the format implied by the save path.
type Backend struct {
	*canvas.StateCanvas
	painter *painter

	jpegQuality int
	multipage   bool
}

// New returns a raster backend rendering at 72 dpi until the
// imageResolution option says otherwise.
func New(engine canvas.TextLayoutEngine) *Backend {
	pt := newPainter(slog.New(nopHandler{}))
	return &Backend{
		StateCanvas: canvas.NewStateCanvas(pt, engine),
		painter:     pt,
		jpegQuality: 90,
	}
}

// SetLogger routes backend warnings to l.
func (b *Backend) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	b.painter.logger = l
}

// OptionNames returns the export options this backend accepts.
func (b *Backend) OptionNames() []string {
	return []string{"imageResolution", "jpegQuality", "multipage"}
}

// SetOption configures an export option. It must be called before any
// page is replayed.
func (b *Backend) SetOption(name string, value any) error {
	switch name {
	case "imageResolution":
		dpi, ok := toFloat(value)
		if !ok || dpi <= 0 {
			return fmt.Errorf("imageResolution must be a positive number, got %v", value)
		}
		b.painter.scale = dpi / 72
	case "jpegQuality":
		q, ok := toInt(value)
		if !ok || q < 1 || q > 100 {
			return fmt.Errorf("jpegQuality must be an integer in [1, 100], got %v", value)
		}
		b.jpegQuality = q
	case "multipage":
		v, ok := value.(bool)
		if !ok {
			return fmt.Errorf("multipage must be a bool, got %T", value)
		}
		b.multipage = v
	default:
		return fmt.Errorf("unknown raster option %q", name)
	}
	return nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}

// SaveTo encodes the rendered pages. Animated GIF is always a single
// file; the other formats write one file per page, named base_N.ext
// when there is more than one page or the multipage option is set.
func (b *Backend) SaveTo(path string) error {
	if len(b.painter.pages) == 0 {
		return fmt.Errorf("nothing to save: no pages were drawn")
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "gif" {
		return b.saveGIF(path)
	}

	encode := func(f *os.File, img *image.RGBA) error {
		switch ext {
		case "png":
			return png.Encode(f, img)
		case "jpg", "jpeg":
			return jpeg.Encode(f, onWhite(img), &jpeg.Options{Quality: b.jpegQuality})
		case "tiff":
			return tiff.Encode(f, img, nil)
		case "bmp":
			return bmp.Encode(f, onWhite(img))
		}
		return fmt.Errorf("unsupported raster format %q", ext)
	}

	paths := pagePaths(path, len(b.painter.pages), b.multipage)
	for i, pg := range b.painter.pages {
		if err := writeFile(paths[i], pg.img, encode); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, img *image.RGBA, encode func(*os.File, *image.RGBA) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// pagePaths derives per-page file names: a single page keeps the path
// as given unless multipage naming was forced.
func pagePaths(path string, n int, forceMulti bool) []string {
	if n == 1 && !forceMulti {
		return []string{path}
	}
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	paths := make([]string, n)
	for i := range paths {
		paths[i] = fmt.Sprintf("%s_%d%s", base, i+1, ext)
	}
	return paths
}

// saveGIF writes all pages as one animated GIF, using each page's
// frame duration (default 1/10s).
func (b *Backend) saveGIF(path string) error {
	anim := &gif.GIF{}
	for _, pg := range b.painter.pages {
		anim.Image = append(anim.Image, palettize(onWhite(pg.img)))
		d := pg.frameDuration
		if d <= 0 {
			d = 0.1
		}
		anim.Delay = append(anim.Delay, int(d*100+0.5))
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(f, anim); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func palettize(img *image.RGBA) *image.Paletted {
	b := img.Bounds()
	p := image.NewPaletted(b, palette.Plan9)
	draw.FloydSteinberg.Draw(p, b, img, b.Min)
	return p
}

// onWhite composites the page onto an opaque white background for
// formats without an alpha channel.
func onWhite(img *image.RGBA) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(out, b, img, b.Min, draw.Over)
	return out
}
