package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"log/slog"

	"codeberg.org/go-pdf/fpdf"

	"github.com/inkdraw/inkdraw/canvas"
)

// painter writes already-transformed page geometry into an fpdf
// document. Geometry arrives y-up in points; fpdf positions are y-down
// from the top-left, so every y flips through the page height.
type painter struct {
	pdf    *fpdf.Fpdf
	pageH  float64
	logger *slog.Logger

	// Clip nesting per graphics state, so PopState closes exactly the
	// clips opened since the matching PushState.
	clipDepth  int
	clipStack  []int
	imageCount int

	// Named destinations share fpdf link identifiers between the rects
	// that point at them and the LinkDestination that anchors them.
	namedLinks map[string]int
}

var _ canvas.Painter = (*painter)(nil)

func newPainter(logger *slog.Logger) *painter {
	return &painter{
		logger:     logger,
		namedLinks: make(map[string]int),
	}
}

func (pt *painter) PageBegin(w, h float64) error {
	if pt.pdf == nil {
		pt.pdf = fpdf.New("P", "pt", "", "")
		pt.pdf.SetAutoPageBreak(false, 0)
		pt.pdf.SetMargins(0, 0, 0)
	}
	pt.pdf.AddPageFormat("P", fpdf.SizeType{Wd: w, Ht: h})
	pt.pageH = h
	return pt.pdf.Error()
}

// FrameDuration has no meaning in a PDF; the recorded value is simply
// ignored here.
func (pt *painter) FrameDuration(float64) error { return nil }

func (pt *painter) PushState() error {
	pt.clipStack = append(pt.clipStack, pt.clipDepth)
	return nil
}

func (pt *painter) PopState() error {
	if n := len(pt.clipStack); n > 0 {
		for pt.clipDepth > pt.clipStack[n-1] {
			pt.pdf.ClipEnd()
			pt.clipDepth--
		}
		pt.clipStack = pt.clipStack[:n-1]
	}
	return pt.pdf.Error()
}

// fy flips a page y coordinate into fpdf's top-down space.
func (pt *painter) fy(y float64) float64 {
	return pt.pageH - y
}

// ClipPath restricts drawing to the path, flattened to a polygon since
// the writer clips polygons only.
func (pt *painter) ClipPath(p *canvas.Path) error {
	pt.pdf.ClipPolygon(pt.flatten(p), false)
	pt.clipDepth++
	return pt.pdf.Error()
}

// flatten converts a path to a single clip polygon. Subpaths beyond
// the first are appended to it, which is exact for the common
// one-subpath case and an approximation otherwise.
func (pt *painter) flatten(p *canvas.Path) []fpdf.PointType {
	var points []fpdf.PointType
	for _, sub := range p.Flatten() {
		for _, pnt := range sub {
			points = append(points, fpdf.PointType{X: pnt.X, Y: pt.fy(pnt.Y)})
		}
	}
	return points
}

// tracePath replays a path into the document's current path buffer.
func (pt *painter) tracePath(p *canvas.Path) {
	for _, el := range p.Elements() {
		switch e := el.(type) {
		case canvas.MoveTo:
			pt.pdf.MoveTo(e.Point.X, pt.fy(e.Point.Y))
		case canvas.LineTo:
			pt.pdf.LineTo(e.Point.X, pt.fy(e.Point.Y))
		case canvas.QuadTo:
			pt.pdf.CurveTo(e.Control.X, pt.fy(e.Control.Y), e.Point.X, pt.fy(e.Point.Y))
		case canvas.CubicTo:
			pt.pdf.CurveBezierCubicTo(
				e.Control1.X, pt.fy(e.Control1.Y),
				e.Control2.X, pt.fy(e.Control2.Y),
				e.Point.X, pt.fy(e.Point.Y))
		case canvas.Close:
			pt.pdf.ClosePath()
		}
	}
}

var blendModeNames = map[canvas.BlendMode]string{
	canvas.BlendNormal:     "Normal",
	canvas.BlendMultiply:   "Multiply",
	canvas.BlendScreen:     "Screen",
	canvas.BlendOverlay:    "Overlay",
	canvas.BlendDarken:     "Darken",
	canvas.BlendLighten:    "Lighten",
	canvas.BlendColorDodge: "ColorDodge",
	canvas.BlendColorBurn:  "ColorBurn",
	canvas.BlendHardLight:  "HardLight",
	canvas.BlendSoftLight:  "SoftLight",
	canvas.BlendDifference: "Difference",
	canvas.BlendExclusion:  "Exclusion",
	canvas.BlendHue:        "Hue",
	canvas.BlendSaturation: "Saturation",
	canvas.BlendColor:      "Color",
	canvas.BlendLuminosity: "Luminosity",
}

func (pt *painter) DrawPath(p *canvas.Path, style *canvas.DrawStyle) error {
	blend, ok := blendModeNames[style.BlendMode]
	if !ok {
		blend = "Normal"
	}

	if style.Shadow != nil {
		pt.drawShadow(p, style, blend)
	}
	if style.Gradient != nil {
		pt.fillGradient(p, style.Gradient, style.Opacity, blend)
	}

	fill := style.Fill.Set && style.Gradient == nil
	stroke := style.Stroke.Set && style.StrokeWidth > 0
	if !fill && !stroke {
		return pt.pdf.Error()
	}

	pt.pdf.SetAlpha(style.Opacity, blend)
	if fill {
		pt.setFillColor(style.Fill)
	}
	if stroke {
		pt.setStrokeStyle(style)
	}
	pt.tracePath(p)
	switch {
	case fill && stroke:
		pt.pdf.DrawPath("FD")
	case fill:
		pt.pdf.DrawPath("f")
	default:
		pt.pdf.DrawPath("D")
	}
	pt.pdf.SetAlpha(1, "Normal")
	return pt.pdf.Error()
}

func (pt *painter) setFillColor(paint canvas.Paint) {
	r, g, b := toRGB255(paint.Color)
	pt.pdf.SetFillColor(r, g, b)
}

func (pt *painter) setStrokeStyle(style *canvas.DrawStyle) {
	r, g, b := toRGB255(style.Stroke.Color)
	pt.pdf.SetDrawColor(r, g, b)
	pt.pdf.SetLineWidth(style.StrokeWidth)
	pt.pdf.SetLineCapStyle(style.LineCap.String())
	pt.pdf.SetLineJoinStyle(style.LineJoin.String())
	pt.pdf.SetDashPattern(style.LineDash, style.DashOffset)
}

func toRGB255(c canvas.Color) (int, int, int) {
	cl := func(v float64) int {
		return int(min(max(v, 0), 1)*255 + 0.5)
	}
	return cl(c.R), cl(c.G), cl(c.B)
}

// fillGradient approximates a gradient fill: the path becomes a clip
// region and a two-color axial or radial shading covers its bounds.
// Intermediate stops are dropped, which the writer cannot express.
func (pt *painter) fillGradient(p *canvas.Path, g *canvas.Gradient, opacity float64, blend string) {
	if len(g.Stops) == 0 {
		return
	}
	if len(g.Stops) > 2 {
		pt.logger.Warn("pdf gradients keep only the first and last color stop", "stops", len(g.Stops))
	}
	first, last := g.Stops[0].Color, g.Stops[len(g.Stops)-1].Color
	r1, g1, b1 := toRGB255(first)
	r2, g2, b2 := toRGB255(last)

	b := p.Bounds()
	if b.W <= 0 || b.H <= 0 {
		return
	}
	x, y := b.X, pt.fy(b.Y+b.H)
	// Gradient coordinates are relative to the bounds rect.
	rel := func(pnt canvas.Point) (float64, float64) {
		return (pnt.X - b.X) / b.W, (pt.fy(pnt.Y) - y) / b.H
	}

	pt.pdf.SetAlpha(opacity, blend)
	pt.pdf.ClipPolygon(pt.flatten(p), false)
	if g.Kind == canvas.GradientRadial {
		cx, cy := rel(g.End)
		fx, fyr := rel(g.Start)
		pt.pdf.RadialGradient(x, y, b.W, b.H, r1, g1, b1, r2, g2, b2,
			fx, fyr, cx, cy, g.EndRadius/max(b.W, b.H))
	} else {
		x1, y1 := rel(g.Start)
		x2, y2 := rel(g.End)
		pt.pdf.LinearGradient(x, y, b.W, b.H, r1, g1, b1, r2, g2, b2, x1, y1, x2, y2)
	}
	pt.pdf.ClipEnd()
	pt.pdf.SetAlpha(1, "Normal")
}

// drawShadow paints the path silhouette offset in the shadow color.
// PDF has no portable blur, so the shadow has hard edges.
func (pt *painter) drawShadow(p *canvas.Path, style *canvas.DrawStyle, blend string) {
	sh := style.Shadow
	shifted := p.Transform(canvas.Translation(sh.Offset.X, sh.Offset.Y))
	pt.pdf.SetAlpha(sh.Color.A*style.Opacity, blend)
	r, g, b := toRGB255(sh.Color)
	pt.pdf.SetFillColor(r, g, b)
	pt.tracePath(shifted)
	pt.pdf.DrawPath("f")
	pt.pdf.SetAlpha(1, "Normal")
}

// DrawImage embeds the image as PNG and places it through the page
// transform. m maps image space (y-up, unit pixels, origin at the
// image's lower-left) to page space.
func (pt *painter) DrawImage(img image.Image, m canvas.Matrix, alpha float64) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encoding image for pdf: %w", err)
	}
	pt.imageCount++
	name := fmt.Sprintf("img%d", pt.imageCount)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pt.pdf.RegisterImageOptionsReader(name, opts, &buf)

	sb := img.Bounds()
	w, h := float64(sb.Dx()), float64(sb.Dy())

	// Placing the image at (0,0,w,h) in writer coordinates puts pixel
	// (x, y) at PDF point (x, pageH - y); compose m against that
	// placement so the transform lands pixels where m says.
	t := m.Multiply(canvas.Translation(0, h-pt.pageH))

	pt.pdf.TransformBegin()
	pt.pdf.Transform(fpdf.TransformMatrix{A: t.A, B: t.D, C: t.B, D: t.E, E: t.C, F: t.F})
	if alpha < 1 {
		pt.pdf.SetAlpha(alpha, "Normal")
	}
	pt.pdf.ImageOptions(name, 0, 0, w, h, false, opts, 0, "")
	if alpha < 1 {
		pt.pdf.SetAlpha(1, "Normal")
	}
	pt.pdf.TransformEnd()
	return pt.pdf.Error()
}

func (pt *painter) LinkURL(url string, r canvas.Rect) error {
	pt.pdf.LinkString(r.X, pt.fy(r.Y+r.H), r.W, r.H, url)
	return pt.pdf.Error()
}

func (pt *painter) linkID(name string) int {
	id, ok := pt.namedLinks[name]
	if !ok {
		id = pt.pdf.AddLink()
		pt.namedLinks[name] = id
	}
	return id
}

func (pt *painter) LinkDestination(name string, p canvas.Point) error {
	pt.pdf.SetLink(pt.linkID(name), pt.fy(p.Y), pt.pdf.PageNo())
	return pt.pdf.Error()
}

func (pt *painter) LinkRect(name string, r canvas.Rect) error {
	pt.pdf.Link(r.X, pt.fy(r.Y+r.H), r.W, r.H, pt.linkID(name))
	return pt.pdf.Error()
}
