package canvas

import "image"

// StateCanvas implements Canvas on top of a StateStack and a Painter.
// It owns every piece of state semantics: mutual exclusion of fills
// and gradients, path construction rules, transform accumulation, and
// the flattening of graphics state into the DrawStyle handed to the
// painter. Geometry reaches the painter already mapped through the
// current transform.
type StateCanvas struct {
	painter Painter
	engine  TextLayoutEngine
	stack   *StateStack

	pageW, pageH float64
	hasPage      bool

	// Font files installed through this canvas, in install order.
	installedFonts []string
}

// NewStateCanvas returns a canvas drawing through the given painter.
func NewStateCanvas(painter Painter, engine TextLayoutEngine) *StateCanvas {
	return &StateCanvas{
		painter: painter,
		engine:  engine,
		stack:   NewStateStack(),
	}
}

// NewValidationCanvas returns a canvas that applies full state
// semantics but discards all output. Used to validate calls before
// they are recorded.
func NewValidationCanvas(engine TextLayoutEngine) *StateCanvas {
	return NewStateCanvas(NopPainter{}, engine)
}

// State returns the active graphics state.
func (c *StateCanvas) State() *GraphicsState {
	return c.stack.Current()
}

// StackDepth returns the number of saved graphics states.
func (c *StateCanvas) StackDepth() int {
	return c.stack.Depth()
}

// HasPage reports whether NewPage has been applied.
func (c *StateCanvas) HasPage() bool {
	return c.hasPage
}

// PageSize returns the size of the current page.
func (c *StateCanvas) PageSize() (w, h float64) {
	return c.pageW, c.pageH
}

// Reset discards all pages and reinstalls the default state.
func (c *StateCanvas) Reset() {
	c.stack.Reset()
	c.pageW, c.pageH = 0, 0
	c.hasPage = false
}

// NewPage starts a new page. The graphics state carries over, as does
// the save stack.
func (c *StateCanvas) NewPage(w, h float64) error {
	if w <= 0 || h <= 0 {
		return Usagef("newPage", "width and height must be positive, got %v x %v", w, h)
	}
	if err := c.painter.PageBegin(w, h); err != nil {
		return err
	}
	c.pageW, c.pageH = w, h
	c.hasPage = true
	return nil
}

// FrameDuration sets how long the current page is displayed in
// animated output formats.
func (c *StateCanvas) FrameDuration(seconds float64) error {
	if seconds <= 0 {
		return Usagef("frameDuration", "duration must be positive, got %v", seconds)
	}
	return c.painter.FrameDuration(seconds)
}

// Save pushes a snapshot of the graphics state.
func (c *StateCanvas) Save() error {
	c.stack.Save()
	return c.painter.PushState()
}

// Restore pops the most recent snapshot.
func (c *StateCanvas) Restore() error {
	if err := c.stack.Restore(); err != nil {
		return err
	}
	return c.painter.PopState()
}

// DrawRect fills and strokes a rectangle.
func (c *StateCanvas) DrawRect(r Rect) error {
	p := NewPath()
	p.Rect(r)
	return c.paintPath(p)
}

// DrawOval fills and strokes an ellipse inscribed in the rectangle.
func (c *StateCanvas) DrawOval(r Rect) error {
	p := NewPath()
	p.Oval(r)
	return c.paintPath(p)
}

// DrawLine strokes a line segment.
func (c *StateCanvas) DrawLine(p1, p2 Point) error {
	p := NewPath()
	p.Line(p1, p2)
	return c.paintPath(p)
}

// DrawPolygon fills and strokes a polygon.
func (c *StateCanvas) DrawPolygon(points []Point, close bool) error {
	p := NewPath()
	if err := p.Polygon(points, close); err != nil {
		return err
	}
	return c.paintPath(p)
}

// NewPath begins a fresh path in the graphics state.
func (c *StateCanvas) NewPath() error {
	c.State().Path = NewPath()
	return nil
}

func (c *StateCanvas) currentPath(op string) (*Path, error) {
	p := c.State().Path
	if p == nil {
		return nil, Usagef(op, "create a new path first")
	}
	return p, nil
}

// MoveTo starts a new subpath in the current path.
func (c *StateCanvas) MoveTo(p Point) error {
	path, err := c.currentPath("moveTo")
	if err != nil {
		return err
	}
	path.MoveTo(p)
	return nil
}

// LineTo adds a line to the current path.
func (c *StateCanvas) LineTo(p Point) error {
	path, err := c.currentPath("lineTo")
	if err != nil {
		return err
	}
	return path.LineTo(p)
}

// CurveTo adds a cubic curve to the current path.
func (c *StateCanvas) CurveTo(c1, c2, p Point) error {
	path, err := c.currentPath("curveTo")
	if err != nil {
		return err
	}
	return path.CurveTo(c1, c2, p)
}

// QCurveTo adds a quadratic curve run to the current path.
func (c *StateCanvas) QCurveTo(points ...Point) error {
	path, err := c.currentPath("qCurveTo")
	if err != nil {
		return err
	}
	return path.QCurveTo(points...)
}

// Arc adds a circular arc to the current path.
func (c *StateCanvas) Arc(center Point, radius, startAngle, endAngle float64, clockwise bool) error {
	path, err := c.currentPath("arc")
	if err != nil {
		return err
	}
	return path.Arc(center, radius, startAngle, endAngle, clockwise)
}

// ArcTo adds a tangent arc to the current path.
func (c *StateCanvas) ArcTo(p1, p2 Point, radius float64) error {
	path, err := c.currentPath("arcTo")
	if err != nil {
		return err
	}
	return path.ArcTo(p1, p2, radius)
}

// ClosePath closes the current subpath of the current path.
func (c *StateCanvas) ClosePath() error {
	path, err := c.currentPath("closePath")
	if err != nil {
		return err
	}
	path.ClosePath()
	return nil
}

// DrawPath fills and strokes a path; nil means the current path.
func (c *StateCanvas) DrawPath(p *Path) error {
	if p == nil {
		var err error
		p, err = c.currentPath("drawPath")
		if err != nil {
			return err
		}
	}
	return c.paintPath(p)
}

// ClipPath intersects the clip region with a path; nil means the
// current path.
func (c *StateCanvas) ClipPath(p *Path) error {
	if p == nil {
		var err error
		p, err = c.currentPath("clipPath")
		if err != nil {
			return err
		}
	}
	if p.IsEmpty() {
		return Usagef("clipPath", "path is empty")
	}
	return c.painter.ClipPath(p.Transform(c.State().CTM))
}

// SetFill sets the fill color; nil clears it. Setting a solid fill
// clears any gradient.
func (c *StateCanvas) SetFill(col *Color) error {
	s := c.State()
	if col == nil {
		s.Fill = NoPaint()
		return nil
	}
	s.Fill = SolidPaint(*col)
	s.Gradient = nil
	return nil
}

// SetCMYKFill sets the fill from CMYK components, keeping both the
// CMYK values and their RGB conversion. Nil clears the fill.
func (c *StateCanvas) SetCMYKFill(col *CMYK) error {
	s := c.State()
	if col == nil {
		s.Fill = NoPaint()
		return nil
	}
	s.Fill = CMYKPaint(*col)
	s.Gradient = nil
	return nil
}

// SetStroke sets the stroke color; nil clears it.
func (c *StateCanvas) SetStroke(col *Color) error {
	s := c.State()
	if col == nil {
		s.Stroke = NoPaint()
		return nil
	}
	s.Stroke = SolidPaint(*col)
	return nil
}

// SetCMYKStroke sets the stroke from CMYK components; nil clears it.
func (c *StateCanvas) SetCMYKStroke(col *CMYK) error {
	s := c.State()
	if col == nil {
		s.Stroke = NoPaint()
		return nil
	}
	s.Stroke = CMYKPaint(*col)
	return nil
}

// SetGradient installs a gradient fill, clearing any solid fill. Nil
// clears the gradient.
func (c *StateCanvas) SetGradient(g *Gradient) error {
	s := c.State()
	if g == nil {
		s.Gradient = nil
		return nil
	}
	s.Gradient = g.Clone()
	s.Fill = NoPaint()
	return nil
}

// SetShadow installs a drop shadow; nil clears it.
func (c *StateCanvas) SetShadow(sh *Shadow) error {
	if sh != nil && sh.Blur < 0 {
		return Usagef("shadow", "blur must not be negative, got %v", sh.Blur)
	}
	c.State().Shadow = sh.Clone()
	return nil
}

// SetOpacity sets the global alpha for subsequent drawing.
func (c *StateCanvas) SetOpacity(v float64) error {
	if v < 0 || v > 1 {
		return Usagef("opacity", "value must be between 0 and 1, got %v", v)
	}
	c.State().Opacity = v
	return nil
}

// SetBlendMode sets the compositing mode for subsequent drawing.
func (c *StateCanvas) SetBlendMode(m BlendMode) error {
	c.State().BlendMode = m
	return nil
}

// SetColorSpace sets the working color space.
func (c *StateCanvas) SetColorSpace(s ColorSpace) error {
	c.State().ColorSpace = s
	return nil
}

// SetStrokeWidth sets the stroke width in points.
func (c *StateCanvas) SetStrokeWidth(w float64) error {
	if w < 0 {
		return Usagef("strokeWidth", "width must not be negative, got %v", w)
	}
	c.State().StrokeWidth = w
	return nil
}

// SetMiterLimit sets the miter limit for line joins.
func (c *StateCanvas) SetMiterLimit(v float64) error {
	if v < 0 {
		return Usagef("miterLimit", "limit must not be negative, got %v", v)
	}
	c.State().MiterLimit = v
	return nil
}

// SetLineCap sets the stroke end cap.
func (c *StateCanvas) SetLineCap(lc LineCap) error {
	c.State().LineCap = lc
	return nil
}

// SetLineJoin sets the stroke join.
func (c *StateCanvas) SetLineJoin(j LineJoin) error {
	c.State().LineJoin = j
	return nil
}

// SetLineDash sets the dash pattern; an empty pattern clears dashing.
func (c *StateCanvas) SetLineDash(lengths []float64, offset float64) error {
	for _, l := range lengths {
		if l < 0 {
			return Usagef("lineDash", "dash lengths must not be negative, got %v", l)
		}
	}
	s := c.State()
	// The offset is kept even without lengths, so setting it ahead of
	// the pattern works.
	s.DashOffset = offset
	if len(lengths) == 0 {
		s.LineDash = nil
		return nil
	}
	s.LineDash = make([]float64, len(lengths))
	copy(s.LineDash, lengths)
	return nil
}

// Transform concatenates a matrix onto the current transform.
func (c *StateCanvas) Transform(m Matrix) error {
	s := c.State()
	s.CTM = s.CTM.Multiply(m)
	return nil
}

// SetFont sets the font by family name or file path. The font is
// resolved immediately so a bad name fails at the call site.
func (c *StateCanvas) SetFont(nameOrPath string, index int) error {
	s := c.State()
	candidate := s.Text.Clone()
	candidate.Font = nameOrPath
	candidate.FontIndex = index
	if c.engine != nil {
		if _, err := c.engine.ResolveFont(candidate); err != nil {
			return err
		}
	}
	s.Text.Font = nameOrPath
	s.Text.FontIndex = index
	return nil
}

// SetFallbackFont sets the face consulted for missing glyphs.
func (c *StateCanvas) SetFallbackFont(nameOrPath string, index int) error {
	s := c.State()
	if nameOrPath != "" && c.engine != nil {
		candidate := s.Text.Clone()
		candidate.Font = nameOrPath
		candidate.FontIndex = index
		if _, err := c.engine.ResolveFont(candidate); err != nil {
			return err
		}
	}
	s.Text.Fallback = nameOrPath
	s.Text.FallbackIndex = index
	return nil
}

// SetFontSize sets the font size in points.
func (c *StateCanvas) SetFontSize(size float64) error {
	if size <= 0 {
		return Usagef("fontSize", "size must be positive, got %v", size)
	}
	c.State().Text.FontSize = size
	return nil
}

// SetLineHeight sets the line height; 0 restores font-derived spacing.
func (c *StateCanvas) SetLineHeight(height float64) error {
	if height < 0 {
		return Usagef("lineHeight", "height must not be negative, got %v", height)
	}
	c.State().Text.LineHeight = height
	return nil
}

// SetTracking sets the extra advance added after every glyph.
func (c *StateCanvas) SetTracking(tracking float64) error {
	c.State().Text.Tracking = tracking
	return nil
}

// SetBaselineShift moves the baseline of subsequent text.
func (c *StateCanvas) SetBaselineShift(shift float64) error {
	c.State().Text.BaselineShift = shift
	return nil
}

// SetUnderline sets the underline decoration.
func (c *StateCanvas) SetUnderline(style UnderlineStyle) error {
	c.State().Text.Underline = style
	return nil
}

// SetStrikethrough sets the strikethrough decoration.
func (c *StateCanvas) SetStrikethrough(style UnderlineStyle) error {
	c.State().Text.Strikethrough = style
	return nil
}

// SetURL attaches a link URL to subsequent text.
func (c *StateCanvas) SetURL(u string) error {
	c.State().Text.URL = u
	return nil
}

// SetHyphenation switches soft-hyphen line breaking on or off.
func (c *StateCanvas) SetHyphenation(on bool) error {
	c.State().Hyphenation = on
	return nil
}

// SetTabs sets the paragraph tab stops; nil restores the defaults.
func (c *StateCanvas) SetTabs(stops []TabStop) error {
	s := c.State()
	if stops == nil {
		s.Text.Tabs = nil
		return nil
	}
	s.Text.Tabs = make([]TabStop, len(stops))
	copy(s.Text.Tabs, stops)
	return nil
}

// SetLanguage sets the language used for shaping and hyphenation.
func (c *StateCanvas) SetLanguage(tag string) error {
	c.State().Text.Language = tag
	return nil
}

// SetTextAlign sets the horizontal alignment inside text boxes.
func (c *StateCanvas) SetTextAlign(a Align) error {
	c.State().Text.Align = a
	return nil
}

// SetWritingDirection sets the base writing direction.
func (c *StateCanvas) SetWritingDirection(d Direction) error {
	c.State().Text.Direction = d
	return nil
}

// SetOpenTypeFeatures merges feature settings into the state; reset
// replaces the whole set.
func (c *StateCanvas) SetOpenTypeFeatures(features map[string]bool, reset bool) error {
	s := c.State()
	if reset || s.Text.OpenTypeFeatures == nil {
		s.Text.OpenTypeFeatures = make(map[string]bool, len(features))
	}
	for k, v := range features {
		s.Text.OpenTypeFeatures[k] = v
	}
	return nil
}

// SetFontVariations merges variable font axis values into the state;
// reset replaces the whole set.
func (c *StateCanvas) SetFontVariations(axes map[string]float64, reset bool) error {
	s := c.State()
	if reset || s.Text.FontVariations == nil {
		s.Text.FontVariations = make(map[string]float64, len(axes))
	}
	for k, v := range axes {
		s.Text.FontVariations[k] = v
	}
	return nil
}

// DrawTextBox lays the formatted text into the rectangle and paints
// the resulting glyph outlines.
func (c *StateCanvas) DrawTextBox(ft *FormattedText, r Rect) error {
	if ft == nil || len(ft.Runs) == 0 {
		return nil
	}
	if c.engine == nil {
		return Usagef("textBox", "no text layout engine configured")
	}
	layout, err := c.engine.Layout(ft, r.W, r.H, c.State().Hyphenation)
	if err != nil {
		return err
	}
	return c.paintLayout(layout, Point{X: r.X, Y: r.Y})
}

// paintLayout renders a laid-out text at the given box origin.
func (c *StateCanvas) paintLayout(layout *TextLayout, origin Point) error {
	s := c.State()
	for _, line := range layout.Lines {
		lineOrigin := Point{X: origin.X + line.Origin.X, Y: origin.Y + line.Origin.Y}
		penX := 0.0
		for _, run := range line.Runs {
			style := c.drawStyle()
			if run.Fill.Set {
				style.Fill = run.Fill
				style.Gradient = nil
			}
			if run.Stroke.Set {
				style.Stroke = run.Stroke
			}
			if !style.Fill.Set && style.Gradient == nil && !style.Stroke.Set {
				penX += run.Width
				continue
			}

			runStart := penX
			baselineY := run.Style.BaselineShift
			for _, g := range run.Glyphs {
				penX = g.X + g.XAdvance
				if g.Outline == nil || g.Outline.IsEmpty() {
					continue
				}
				gp := g.Outline.Translate(lineOrigin.X+g.X, lineOrigin.Y+baselineY+g.Y)
				if err := c.painter.DrawPath(gp.Transform(s.CTM), style); err != nil {
					return err
				}
			}

			if err := c.paintRunDecorations(run, lineOrigin, runStart, style); err != nil {
				return err
			}
			if run.Style.URL != "" {
				r := Rect{
					X: lineOrigin.X + runStart,
					Y: lineOrigin.Y - run.Descent,
					W: run.Width,
					H: run.Ascent + run.Descent,
				}
				if err := c.LinkURL(run.Style.URL, r); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// paintRunDecorations draws underline and strikethrough bars for a run.
func (c *StateCanvas) paintRunDecorations(run TextRun, lineOrigin Point, runStart float64, style *DrawStyle) error {
	if run.Width <= 0 {
		return nil
	}
	size := run.Style.FontSize
	thickness := size / 15
	bar := func(y, t float64) error {
		p := NewPath()
		p.Rect(Rect{X: lineOrigin.X + runStart, Y: lineOrigin.Y + y - t/2, W: run.Width, H: t})
		barStyle := *style
		barStyle.Stroke = NoPaint()
		return c.painter.DrawPath(p.Transform(c.State().CTM), &barStyle)
	}
	switch run.Style.Underline {
	case UnderlineSingle:
		if err := bar(-size*0.12, thickness); err != nil {
			return err
		}
	case UnderlineThick:
		if err := bar(-size*0.12, thickness*2); err != nil {
			return err
		}
	case UnderlineDouble:
		if err := bar(-size*0.1, thickness); err != nil {
			return err
		}
		if err := bar(-size*0.1-thickness*2, thickness); err != nil {
			return err
		}
	}
	if run.Style.Strikethrough != UnderlineNone {
		t := thickness
		if run.Style.Strikethrough == UnderlineThick {
			t *= 2
		}
		if err := bar(size*0.25, t); err != nil {
			return err
		}
	}
	return nil
}

// DrawImage places an image with its lower-left corner at p.
func (c *StateCanvas) DrawImage(img image.Image, p Point, alpha float64) error {
	if img == nil {
		return Usagef("image", "image is nil")
	}
	if alpha < 0 || alpha > 1 {
		return Usagef("image", "alpha must be between 0 and 1, got %v", alpha)
	}
	m := c.State().CTM.Multiply(Translation(p.X, p.Y))
	return c.painter.DrawImage(img, m, alpha)
}

// LinkURL attaches a URL link covering the rectangle.
func (c *StateCanvas) LinkURL(url string, r Rect) error {
	if url == "" {
		return Usagef("linkURL", "url is empty")
	}
	return c.painter.LinkURL(url, c.transformRect(r))
}

// LinkDestination places a named link target at a point.
func (c *StateCanvas) LinkDestination(name string, p Point) error {
	if name == "" {
		return Usagef("linkDestination", "name is empty")
	}
	return c.painter.LinkDestination(name, c.State().CTM.TransformPoint(p))
}

// LinkRect attaches an internal link to a named destination.
func (c *StateCanvas) LinkRect(name string, r Rect) error {
	if name == "" {
		return Usagef("linkRect", "name is empty")
	}
	return c.painter.LinkRect(name, c.transformRect(r))
}

// InstallFont registers a font file with the engine and remembers the
// install so ReleaseFonts can undo it.
func (c *StateCanvas) InstallFont(path string) error {
	if c.engine == nil {
		return nil
	}
	if _, err := c.engine.InstallFont(path); err != nil {
		return err
	}
	c.installedFonts = append(c.installedFonts, path)
	return nil
}

// UninstallFont removes a session font.
func (c *StateCanvas) UninstallFont(path string) error {
	if c.engine == nil {
		return nil
	}
	if err := c.engine.UninstallFont(path); err != nil {
		return err
	}
	for i := len(c.installedFonts) - 1; i >= 0; i-- {
		if c.installedFonts[i] == path {
			c.installedFonts = append(c.installedFonts[:i], c.installedFonts[i+1:]...)
			break
		}
	}
	return nil
}

// ReleaseFonts undoes every font install this canvas performed. Called
// after a replay so replay-time installs do not outlive it.
func (c *StateCanvas) ReleaseFonts() {
	if c.engine == nil {
		c.installedFonts = nil
		return
	}
	for i := len(c.installedFonts) - 1; i >= 0; i-- {
		_ = c.engine.UninstallFont(c.installedFonts[i])
	}
	c.installedFonts = nil
}

// paintPath maps a path through the current transform and hands it to
// the painter with the flattened paint state. Nothing is drawn when no
// fill, gradient or stroke is active.
func (c *StateCanvas) paintPath(p *Path) error {
	if p.IsEmpty() {
		return nil
	}
	style := c.drawStyle()
	if !style.Fill.Set && style.Gradient == nil && !style.Stroke.Set {
		return nil
	}
	return c.painter.DrawPath(p.Transform(c.State().CTM), style)
}

// drawStyle flattens the graphics state into page-space paint
// parameters.
func (c *StateCanvas) drawStyle() *DrawStyle {
	s := c.State()
	scale := s.CTM.ScaleFactor()
	style := &DrawStyle{
		Fill:        s.Fill.Clone(),
		Gradient:    s.Gradient.Transform(s.CTM),
		Stroke:      s.Stroke.Clone(),
		StrokeWidth: s.StrokeWidth * scale,
		LineCap:     s.LineCap,
		LineJoin:    s.LineJoin,
		MiterLimit:  s.MiterLimit,
		Opacity:     s.Opacity,
		BlendMode:   s.BlendMode,
		Shadow:      s.Shadow.Clone(),
	}
	if len(s.LineDash) > 0 {
		style.LineDash = make([]float64, len(s.LineDash))
		for i, l := range s.LineDash {
			style.LineDash[i] = l * scale
		}
		style.DashOffset = s.DashOffset * scale
	}
	return style
}

// transformRect maps a rectangle through the current transform and
// returns the bounding box of the result.
func (c *StateCanvas) transformRect(r Rect) Rect {
	m := c.State().CTM
	corners := []Point{
		{X: r.X, Y: r.Y},
		{X: r.X + r.W, Y: r.Y},
		{X: r.X, Y: r.Y + r.H},
		{X: r.X + r.W, Y: r.Y + r.H},
	}
	first := true
	var minX, minY, maxX, maxY float64
	for _, pt := range corners {
		tp := m.TransformPoint(pt)
		if first {
			minX, maxX = tp.X, tp.X
			minY, maxY = tp.Y, tp.Y
			first = false
			continue
		}
		minX = min(minX, tp.X)
		maxX = max(maxX, tp.X)
		minY = min(minY, tp.Y)
		maxY = max(maxY, tp.Y)
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// NopPainter discards all drawing. It backs the validation canvas.
type NopPainter struct{}

func (NopPainter) PageBegin(w, h float64) error                             { return nil }
func (NopPainter) DrawPath(p *Path, style *DrawStyle) error                 { return nil }
func (NopPainter) ClipPath(p *Path) error                                   { return nil }
func (NopPainter) PushState() error                                         { return nil }
func (NopPainter) PopState() error                                          { return nil }
func (NopPainter) DrawImage(img image.Image, m Matrix, alpha float64) error { return nil }
func (NopPainter) FrameDuration(seconds float64) error                      { return nil }
func (NopPainter) LinkURL(url string, r Rect) error                         { return nil }
func (NopPainter) LinkDestination(name string, p Point) error               { return nil }
func (NopPainter) LinkRect(name string, r Rect) error                       { return nil }
