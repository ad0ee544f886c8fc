package raster

import (
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"math"

	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"

	"github.com/inkdraw/inkdraw/canvas"
)

// page is one rendered page.
type page struct {
	w, h          float64 // size in points
	img           *image.RGBA
	frameDuration float64 // seconds, used by animated outputs
}

// painter rasterizes already-transformed page geometry into one RGBA
// image per page. Geometry arrives y-up in points; the painter flips
// and scales to y-down device pixels.
type painter struct {
	scale  float64 // device pixels per point
	pages  []*page
	logger *slog.Logger

	// Clip paths in page coordinates, bracketed by PushState/PopState.
	clips     []*canvas.Path
	clipSaves []int

	// Cached intersection mask of the clip stack.
	mask      *image.Alpha
	maskClips int
	maskPage  *page

	warnedBlend bool
}

var _ canvas.Painter = (*painter)(nil)

func newPainter(logger *slog.Logger) *painter {
	return &painter{scale: 1, logger: logger}
}

func (pt *painter) cur() *page {
	if len(pt.pages) == 0 {
		return nil
	}
	return pt.pages[len(pt.pages)-1]
}

func (pt *painter) PageBegin(w, h float64) error {
	pw := max(int(math.Ceil(w*pt.scale)), 1)
	ph := max(int(math.Ceil(h*pt.scale)), 1)
	pt.pages = append(pt.pages, &page{
		w:   w,
		h:   h,
		img: image.NewRGBA(image.Rect(0, 0, pw, ph)),
	})
	return nil
}

func (pt *painter) FrameDuration(seconds float64) error {
	if pg := pt.cur(); pg != nil {
		pg.frameDuration = seconds
	}
	return nil
}

func (pt *painter) PushState() error {
	pt.clipSaves = append(pt.clipSaves, len(pt.clips))
	return nil
}

func (pt *painter) PopState() error {
	if n := len(pt.clipSaves); n > 0 {
		pt.clips = pt.clips[:pt.clipSaves[n-1]]
		pt.clipSaves = pt.clipSaves[:n-1]
	}
	return nil
}

func (pt *painter) ClipPath(p *canvas.Path) error {
	pt.clips = append(pt.clips, p)
	return nil
}

// Raster output has no link annotations; the operations validate and
// record but leave no pixels behind.
func (pt *painter) LinkURL(string, canvas.Rect) error          { return nil }
func (pt *painter) LinkDestination(string, canvas.Point) error { return nil }
func (pt *painter) LinkRect(string, canvas.Rect) error         { return nil }

// dev maps a page point (y-up, points) to a device point (y-down,
// pixels) on the current page.
func (pt *painter) dev(p canvas.Point) fixed.Point26_6 {
	pg := pt.cur()
	return fixed.Point26_6{
		X: fixed.Int26_6(p.X * pt.scale * 64),
		Y: fixed.Int26_6((pg.h - p.Y) * pt.scale * 64),
	}
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

// addPath feeds a path into a rasterx adder, converting each point to
// device space.
func (pt *painter) addPath(r rasterx.Adder, p *canvas.Path) {
	open := false
	for _, el := range p.Elements() {
		switch e := el.(type) {
		case canvas.MoveTo:
			if open {
				r.Stop(false)
			}
			r.Start(pt.dev(e.Point))
			open = true
		case canvas.LineTo:
			r.Line(pt.dev(e.Point))
		case canvas.QuadTo:
			r.QuadBezier(pt.dev(e.Control), pt.dev(e.Point))
		case canvas.CubicTo:
			r.CubeBezier(pt.dev(e.Control1), pt.dev(e.Control2), pt.dev(e.Point))
		case canvas.Close:
			r.Stop(true)
			open = false
		}
	}
	if open {
		r.Stop(false)
	}
}

// target returns the image to render into and a commit func. Without
// active clips the page image is rendered into directly; with clips,
// rendering goes to a scratch image that commit composites through the
// clip mask.
func (pt *painter) target() (draw.Image, func()) {
	pg := pt.cur()
	if len(pt.clips) == 0 {
		return pg.img, func() {}
	}
	b := pg.img.Bounds()
	scratch := image.NewRGBA(b)
	return scratch, func() {
		draw.DrawMask(pg.img, b, scratch, b.Min, pt.clipMask(), b.Min, draw.Over)
	}
}

// clipMask rasterizes the intersection of the clip stack, cached until
// the stack or the page changes.
func (pt *painter) clipMask() *image.Alpha {
	pg := pt.cur()
	if pt.mask != nil && pt.maskClips == len(pt.clips) && pt.maskPage == pg {
		return pt.mask
	}
	b := pg.img.Bounds()
	acc := image.NewAlpha(b)
	for i, cp := range pt.clips {
		m := acc
		if i > 0 {
			m = image.NewAlpha(b)
		}
		sc := rasterx.NewScannerGV(b.Dx(), b.Dy(), m, b)
		sc.SetColor(color.Alpha{A: 0xff})
		filler := rasterx.NewFiller(b.Dx(), b.Dy(), sc)
		filler.SetWinding(true)
		pt.addPath(filler, cp)
		filler.Draw()
		if i > 0 {
			for j := range acc.Pix {
				if m.Pix[j] < acc.Pix[j] {
					acc.Pix[j] = m.Pix[j]
				}
			}
		}
	}
	pt.mask = acc
	pt.maskClips = len(pt.clips)
	pt.maskPage = pg
	return acc
}

func (pt *painter) DrawPath(p *canvas.Path, style *canvas.DrawStyle) error {
	if style.BlendMode != canvas.BlendNormal && !pt.warnedBlend {
		pt.logger.Warn("raster output composites all blend modes as normal", "blendMode", style.BlendMode)
		pt.warnedBlend = true
	}
	dst, commit := pt.target()
	if style.Shadow != nil {
		pt.drawShadow(dst, p, style)
	}
	if style.Gradient != nil || style.Fill.Set {
		pt.fillPath(dst, p, style)
	}
	if style.Stroke.Set && style.StrokeWidth > 0 {
		pt.strokePath(dst, p, style)
	}
	commit()
	return nil
}

func (pt *painter) fillPath(dst draw.Image, p *canvas.Path, style *canvas.DrawStyle) {
	b := dst.Bounds()
	sc := rasterx.NewScannerGV(b.Dx(), b.Dy(), dst, b)
	if style.Gradient != nil {
		sc.SetColor(pt.gradientColor(style.Gradient, style.Opacity))
	} else {
		sc.SetColor(rasterx.ApplyOpacity(style.Fill.Color.Color(), style.Opacity))
	}
	filler := rasterx.NewFiller(b.Dx(), b.Dy(), sc)
	filler.SetWinding(true)
	pt.addPath(filler, p)
	filler.Draw()
}

var (
	capFuncs = map[canvas.LineCap]rasterx.CapFunc{
		canvas.LineCapButt:   rasterx.ButtCap,
		canvas.LineCapRound:  rasterx.RoundCap,
		canvas.LineCapSquare: rasterx.SquareCap,
	}
	joinModes = map[canvas.LineJoin]rasterx.JoinMode{
		canvas.LineJoinMiter: rasterx.Miter,
		canvas.LineJoinRound: rasterx.Round,
		canvas.LineJoinBevel: rasterx.Bevel,
	}
)

func (pt *painter) strokePath(dst draw.Image, p *canvas.Path, style *canvas.DrawStyle) {
	b := dst.Bounds()
	sc := rasterx.NewScannerGV(b.Dx(), b.Dy(), dst, b)
	sc.SetColor(rasterx.ApplyOpacity(style.Stroke.Color.Color(), style.Opacity))
	dasher := rasterx.NewDasher(b.Dx(), b.Dy(), sc)
	dasher.SetWinding(true)

	var dash []float64
	if len(style.LineDash) > 0 {
		dash = make([]float64, len(style.LineDash))
		for i, d := range style.LineDash {
			dash[i] = d * pt.scale
		}
	}
	dasher.SetStroke(
		toFixed(style.StrokeWidth*pt.scale), toFixed(style.MiterLimit),
		capFuncs[style.LineCap], capFuncs[style.LineCap], rasterx.FlatGap,
		joinModes[style.LineJoin], dash, style.DashOffset*pt.scale,
	)
	pt.addPath(dasher, p)
	dasher.Draw()
}

// gradientColor converts a page-space gradient into a rasterx color
// function in device space.
func (pt *painter) gradientColor(g *canvas.Gradient, opacity float64) interface{} {
	pg := pt.cur()
	devPt := func(p canvas.Point) (float64, float64) {
		return p.X * pt.scale, (pg.h - p.Y) * pt.scale
	}
	var points [5]float64
	isRadial := g.Kind == canvas.GradientRadial
	if isRadial {
		cx, cy := devPt(g.End)
		fx, fy := devPt(g.Start)
		points = [5]float64{cx, cy, fx, fy, g.EndRadius * pt.scale}
	} else {
		x1, y1 := devPt(g.Start)
		x2, y2 := devPt(g.End)
		points = [5]float64{x1, y1, x2, y2, 0}
	}
	stops := make([]rasterx.GradStop, len(g.Stops))
	for i, s := range g.Stops {
		c := s.Color
		stops[i] = rasterx.GradStop{
			StopColor: color.NRGBA{
				R: uint8(clamp01(c.R)*255 + 0.5),
				G: uint8(clamp01(c.G)*255 + 0.5),
				B: uint8(clamp01(c.B)*255 + 0.5),
				A: 0xff,
			},
			Offset:  s.Location,
			Opacity: clamp01(c.A),
		}
	}
	grad := rasterx.Gradient{
		Points:   points,
		Stops:    stops,
		Matrix:   rasterx.Identity,
		Spread:   rasterx.PadSpread,
		Units:    rasterx.UserSpaceOnUse,
		IsRadial: isRadial,
	}
	grad.Bounds.W = pg.w * pt.scale
	grad.Bounds.H = pg.h * pt.scale
	return grad.GetColorFunction(opacity)
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

// drawShadow renders the path's filled silhouette, blurs it, and
// composites it tinted and offset under the shape.
func (pt *painter) drawShadow(dst draw.Image, p *canvas.Path, style *canvas.DrawStyle) {
	pg := pt.cur()
	b := pg.img.Bounds()
	mask := image.NewAlpha(b)
	sc := rasterx.NewScannerGV(b.Dx(), b.Dy(), mask, b)
	sc.SetColor(color.Alpha{A: 0xff})
	filler := rasterx.NewFiller(b.Dx(), b.Dy(), sc)
	filler.SetWinding(true)
	pt.addPath(filler, p)
	filler.Draw()

	if r := int(style.Shadow.Blur*pt.scale/2 + 0.5); r > 0 {
		// Three box blur passes approximate a gaussian.
		for i := 0; i < 3; i++ {
			boxBlurAlpha(mask, r)
		}
	}

	sh := style.Shadow
	tint := rasterx.ApplyOpacity(sh.Color.Color(), style.Opacity)
	offset := image.Pt(
		int(sh.Offset.X*pt.scale+0.5),
		int(-sh.Offset.Y*pt.scale+0.5), // y-up offset, y-down image
	)
	draw.DrawMask(dst, b.Add(offset), image.NewUniform(tint), image.Point{}, mask, b.Min, draw.Over)
}

// boxBlurAlpha blurs an alpha image in place with a box kernel of the
// given radius, one horizontal and one vertical pass.
func boxBlurAlpha(m *image.Alpha, radius int) {
	b := m.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 || radius <= 0 {
		return
	}
	size := 2*radius + 1
	tmp := make([]uint8, w*h)

	// Horizontal pass into tmp.
	for y := 0; y < h; y++ {
		row := m.Pix[y*m.Stride : y*m.Stride+w]
		sum := 0
		for x := -radius; x <= radius; x++ {
			sum += int(row[clampIdx(x, w)])
		}
		for x := 0; x < w; x++ {
			tmp[y*w+x] = uint8(sum / size)
			sum += int(row[clampIdx(x+radius+1, w)]) - int(row[clampIdx(x-radius, w)])
		}
	}
	// Vertical pass back into m.
	for x := 0; x < w; x++ {
		sum := 0
		for y := -radius; y <= radius; y++ {
			sum += int(tmp[clampIdx(y, h)*w+x])
		}
		for y := 0; y < h; y++ {
			m.Pix[y*m.Stride+x] = uint8(sum / size)
			sum += int(tmp[clampIdx(y+radius+1, h)*w+x]) - int(tmp[clampIdx(y-radius, h)*w+x])
		}
	}
}

func clampIdx(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// DrawImage places an image mapped through m (image pixel space, y-up
// origin at the lower-left pixel, to page space) with bilinear
// resampling.
func (pt *painter) DrawImage(img image.Image, m canvas.Matrix, alpha float64) error {
	pg := pt.cur()
	sb := img.Bounds()

	// Source pixels are y-down; flip them into the y-up space m maps
	// from, then through m to the page, then to device pixels.
	flipSrc := canvas.FromComponents(1, 0, 0, -1, 0, float64(sb.Dy()))
	pageToDev := canvas.FromComponents(pt.scale, 0, 0, -pt.scale, 0, pg.h*pt.scale)
	full := pageToDev.Multiply(m).Multiply(flipSrc)

	aff := f64.Aff3{full.A, full.B, full.C, full.D, full.E, full.F}
	opts := &xdraw.Options{}
	if alpha < 1 {
		opts.SrcMask = image.NewUniform(color.Alpha{A: uint8(alpha*255 + 0.5)})
	}

	dst, commit := pt.target()
	xdraw.ApproxBiLinear.Transform(dst, aff, img, sb, xdraw.Over, opts)
	commit()
	return nil
}
