package textlayout

import (
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype"

	"github.com/inkdraw/inkdraw/canvas"
)

// outlineCache caches glyph outlines in font units, keyed by font and
// glyph id. Scaling to the requested font size happens on retrieval,
// so one cached outline serves every size. Access is serialized by the
// engine mutex.
type outlineCache struct {
	paths map[outlineKey]*canvas.Path
}

type outlineKey struct {
	font *font.Font
	gid  font.GID
}

func (c *outlineCache) init() {
	c.paths = make(map[outlineKey]*canvas.Path)
}

// glyphPath returns the glyph outline scaled to the font size, y-up
// with the origin at the glyph origin. Bitmap and SVG glyphs have no
// outline and return nil.
func (c *outlineCache) glyphPath(face *font.Face, gid font.GID, size float64) *canvas.Path {
	key := outlineKey{font: face.Font, gid: gid}
	p, ok := c.paths[key]
	if !ok {
		p = buildOutline(face, gid)
		c.paths[key] = p
	}
	if p == nil {
		return nil
	}
	scale := size / float64(face.Upem())
	return p.Scale(scale, scale)
}

// buildOutline converts a glyph's segments into a path in font units.
func buildOutline(face *font.Face, gid font.GID) *canvas.Path {
	data := face.GlyphData(gid)
	outline, ok := data.(font.GlyphOutline)
	if !ok || len(outline.Segments) == 0 {
		return nil
	}
	// Font segments never carry explicit closes; every contour starts
	// with a move and implicitly closes at the next move or the end.
	p := canvas.NewPath()
	started := false
	for _, s := range outline.Segments {
		switch s.Op {
		case opentype.SegmentOpMoveTo:
			if started {
				p.ClosePath()
			}
			p.MoveTo(segPoint(s.Args[0]))
			started = true
		case opentype.SegmentOpLineTo:
			p.LineTo(segPoint(s.Args[0]))
		case opentype.SegmentOpQuadTo:
			p.QCurveTo(segPoint(s.Args[0]), segPoint(s.Args[1]))
		case opentype.SegmentOpCubeTo:
			p.CurveTo(segPoint(s.Args[0]), segPoint(s.Args[1]), segPoint(s.Args[2]))
		}
	}
	if !started {
		return nil
	}
	p.ClosePath()
	return p
}

func segPoint(pt opentype.SegmentPoint) canvas.Point {
	return canvas.Point{X: float64(pt.X), Y: float64(pt.Y)}
}
