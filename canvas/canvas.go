package canvas

import "image"

// Canvas is the full set of operations a recorded drawing can apply.
// The validation context and every rendering backend sit behind the
// same implementation (StateCanvas), so replaying a command has
// exactly the semantics that validated it.
type Canvas interface {
	// Pages and animation.
	NewPage(w, h float64) error
	FrameDuration(seconds float64) error

	// Graphics state.
	Save() error
	Restore() error

	// Shapes.
	DrawRect(r Rect) error
	DrawOval(r Rect) error
	DrawLine(p1, p2 Point) error
	DrawPolygon(points []Point, close bool) error

	// Path construction and drawing.
	NewPath() error
	MoveTo(p Point) error
	LineTo(p Point) error
	CurveTo(c1, c2, p Point) error
	QCurveTo(points ...Point) error
	Arc(center Point, radius, startAngle, endAngle float64, clockwise bool) error
	ArcTo(p1, p2 Point, radius float64) error
	ClosePath() error
	DrawPath(p *Path) error
	ClipPath(p *Path) error

	// Paint.
	SetFill(c *Color) error
	SetCMYKFill(c *CMYK) error
	SetStroke(c *Color) error
	SetCMYKStroke(c *CMYK) error
	SetGradient(g *Gradient) error
	SetShadow(s *Shadow) error
	SetOpacity(v float64) error
	SetBlendMode(m BlendMode) error
	SetColorSpace(s ColorSpace) error

	// Stroke attributes.
	SetStrokeWidth(w float64) error
	SetMiterLimit(v float64) error
	SetLineCap(c LineCap) error
	SetLineJoin(j LineJoin) error
	SetLineDash(lengths []float64, offset float64) error

	// Transform.
	Transform(m Matrix) error

	// Text attributes.
	SetFont(nameOrPath string, index int) error
	SetFallbackFont(nameOrPath string, index int) error
	SetFontSize(size float64) error
	SetLineHeight(height float64) error
	SetTracking(tracking float64) error
	SetBaselineShift(shift float64) error
	SetUnderline(style UnderlineStyle) error
	SetStrikethrough(style UnderlineStyle) error
	SetURL(u string) error
	SetHyphenation(on bool) error
	SetTabs(stops []TabStop) error
	SetLanguage(tag string) error
	SetTextAlign(a Align) error
	SetWritingDirection(d Direction) error
	SetOpenTypeFeatures(features map[string]bool, reset bool) error
	SetFontVariations(axes map[string]float64, reset bool) error

	// Text drawing.
	DrawTextBox(ft *FormattedText, r Rect) error

	// Images.
	DrawImage(img image.Image, p Point, alpha float64) error

	// Links.
	LinkURL(url string, r Rect) error
	LinkDestination(name string, p Point) error
	LinkRect(name string, r Rect) error

	// Session fonts.
	InstallFont(path string) error
	UninstallFont(path string) error
}

// DrawStyle is the flattened paint state a painter needs to render one
// shape. Geometry handed to the painter is already transformed into
// page coordinates; the stroke width is pre-scaled accordingly.
type DrawStyle struct {
	Fill     Paint
	Gradient *Gradient
	Stroke   Paint

	StrokeWidth float64
	LineDash    []float64
	DashOffset  float64
	LineCap     LineCap
	LineJoin    LineJoin
	MiterLimit  float64

	Opacity   float64
	BlendMode BlendMode
	Shadow    *Shadow
}

// Painter renders already-transformed geometry. Implemented by the
// output backends; the validation context uses a painter that discards
// everything.
type Painter interface {
	// PageBegin starts a new page of the given size in points.
	PageBegin(w, h float64) error
	// DrawPath fills and/or strokes a path in page coordinates.
	DrawPath(p *Path, style *DrawStyle) error
	// ClipPath intersects the clip region with a path.
	ClipPath(p *Path) error
	// PushState and PopState bracket Save/Restore so painters can
	// rewind their clip bookkeeping.
	PushState() error
	PopState() error
	// DrawImage places an image mapped through m (image pixel space,
	// y-up with origin at the lower-left pixel, to page space).
	DrawImage(img image.Image, m Matrix, alpha float64) error
	// FrameDuration sets the display duration of the current page for
	// animated outputs.
	FrameDuration(seconds float64) error
	// Link annotations.
	LinkURL(url string, r Rect) error
	LinkDestination(name string, p Point) error
	LinkRect(name string, r Rect) error
}

// Glyph is one positioned glyph inside a text run. Offsets are
// relative to the line origin; the outline is scaled to the run's font
// size with a y-up origin at the glyph's own origin.
type Glyph struct {
	GID      uint32
	Cluster  int
	X, Y     float64
	XAdvance float64
	Outline  *Path
}

// TextRun is a maximal span of glyphs sharing one face and style.
type TextRun struct {
	Glyphs []Glyph
	Style  TextStyle
	// Fill and Stroke override the graphics state paint when set.
	Fill   Paint
	Stroke Paint
	Width  float64
	// Metrics at the run's font size.
	Ascent, Descent float64
}

// TextLine is one laid-out line. Origin is the baseline start relative
// to the lower-left corner of the layout box, y-up.
type TextLine struct {
	Runs    []TextRun
	Origin  Point
	Width   float64
	Ascent  float64
	Descent float64
}

// TextLayout is the result of laying a formatted text into a box.
type TextLayout struct {
	Lines []TextLine
	// Width and Height are the extent actually used by the lines.
	Width, Height float64
	// Overflow is the trailing part of the source text that did not
	// fit the box, empty when everything fit.
	Overflow string
}

// FontInfo describes a resolved font face. The metric fields are
// normalized to a font size of 1 and scale linearly.
type FontInfo struct {
	Family string
	Path   string
	Index  int

	Ascender   float64
	Descender  float64
	XHeight    float64
	CapHeight  float64
	LineHeight float64
}

// TextLayoutEngine shapes and wraps text. Implemented by the
// textlayout package; kept as an interface so the canvas and recording
// layers stay free of font dependencies.
type TextLayoutEngine interface {
	// Layout lays ft into a box of the given size. A non-positive
	// width disables wrapping; a non-positive height disables
	// truncation. hyphenate enables soft-hyphen break opportunities.
	Layout(ft *FormattedText, width, height float64, hyphenate bool) (*TextLayout, error)
	// ResolveFont resolves a style's font to a concrete face.
	ResolveFont(style TextStyle) (FontInfo, error)
	// ContainsCharacters reports whether the style's face has a glyph
	// for every rune of txt.
	ContainsCharacters(style TextStyle, txt string) (bool, error)
	// InstallFont registers a font file and returns its family name.
	InstallFont(path string) (string, error)
	// UninstallFont removes a previously installed font file.
	UninstallFont(path string) error
	// InstalledFonts lists the family names added by InstallFont.
	InstalledFonts() []string
}
