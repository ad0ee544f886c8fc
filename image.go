package inkdraw

import (
	"fmt"
	"image"
	"image/gif"
	"os"
	"path/filepath"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/inkdraw/inkdraw/canvas"
	"github.com/inkdraw/inkdraw/recording"
)

// ImageOption configures Image and DrawImage.
type ImageOption func(*imageOptions)

type imageOptions struct {
	alpha float64
	page  int
}

// WithAlpha draws the image with an extra opacity in [0, 1].
func WithAlpha(alpha float64) ImageOption {
	return func(o *imageOptions) {
		o.alpha = alpha
	}
}

// WithImagePage selects a frame of a multi-frame source such as an
// animated GIF, counting from 1.
func WithImagePage(page int) ImageOption {
	return func(o *imageOptions) {
		o.page = page
	}
}

// Image places an image file with its lower-left corner at p. PNG,
// JPEG, GIF, TIFF and BMP files are supported; repeated placements of
// the same file reuse the decoded pixels.
func (d *Drawing) Image(path string, p Point, opts ...ImageOption) error {
	cfg := imageOptions{alpha: 1}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.alpha < 0 || cfg.alpha > 1 {
		return canvas.Usagef("image", "alpha must be in the range 0..1, got %v", cfg.alpha)
	}
	img, err := d.loadImage(path, cfg.page)
	if err != nil {
		return err
	}
	return d.record(recording.ImageCommand{Image: img, Point: p, Alpha: cfg.alpha})
}

// DrawImage places an in-memory image with its lower-left corner at p.
func (d *Drawing) DrawImage(img image.Image, p Point, opts ...ImageOption) error {
	cfg := imageOptions{alpha: 1}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.alpha < 0 || cfg.alpha > 1 {
		return canvas.Usagef("image", "alpha must be in the range 0..1, got %v", cfg.alpha)
	}
	return d.record(recording.ImageCommand{Image: img, Point: p, Alpha: cfg.alpha})
}

// ImageSize returns the pixel dimensions of an image file without
// decoding its pixels.
func (d *Drawing) ImageSize(path string) (w, h float64, err error) {
	if img, ok := d.imageCache[imageCacheKey(path, 0)]; ok {
		b := img.Bounds()
		return float64(b.Dx()), float64(b.Dy()), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, &canvas.ResourceError{Op: "imageSize", Path: path, Err: err}
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, &canvas.ResourceError{Op: "imageSize", Path: path, Err: err}
	}
	return float64(cfg.Width), float64(cfg.Height), nil
}

func imageCacheKey(path string, page int) string {
	if page <= 1 {
		return path
	}
	return fmt.Sprintf("%s#%d", path, page)
}

func (d *Drawing) loadImage(path string, page int) (image.Image, error) {
	key := imageCacheKey(path, page)
	if img, ok := d.imageCache[key]; ok {
		return img, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &canvas.ResourceError{Op: "image", Path: path, Err: err}
	}
	defer f.Close()

	var img image.Image
	if page > 1 {
		if !strings.EqualFold(filepath.Ext(path), ".gif") {
			return nil, canvas.Usagef("image", "page selection needs a multi-frame source, %q is not one", path)
		}
		g, err := gif.DecodeAll(f)
		if err != nil {
			return nil, &canvas.ResourceError{Op: "image", Path: path, Err: err}
		}
		if page > len(g.Image) {
			return nil, canvas.Usagef("image", "%q has %d frames, page %d requested", path, len(g.Image), page)
		}
		img = g.Image[page-1]
	} else {
		if img, _, err = image.Decode(f); err != nil {
			return nil, &canvas.ResourceError{Op: "image", Path: path, Err: err}
		}
	}

	if d.imageCache == nil {
		d.imageCache = make(map[string]image.Image)
	}
	d.imageCache[key] = img
	return img, nil
}
