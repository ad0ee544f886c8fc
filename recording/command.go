// Package recording captures drawing operations as typed commands and
// replays them against any canvas implementation.
//
// Every script-facing operation has one command struct. Commands are
// validated before they are recorded, so Replay applies them without
// re-checking arguments: the same Apply method drives both the
// validation pass and the actual rendering, which keeps the two from
// drifting apart.
//
// The log is partitioned into page groups. A NewPage command always
// begins a new group; when drawing starts before any page exists, a
// synthetic NewPage with the configured default size is inserted at
// the front of the first group.
package recording

import (
	"image"

	"github.com/inkdraw/inkdraw/canvas"
)

// CommandType identifies the type of a command.
type CommandType uint8

const (
	// Page commands
	CmdNewPage CommandType = iota
	CmdFrameDuration

	// State commands
	CmdSave
	CmdRestore

	// Shape commands
	CmdRect
	CmdOval
	CmdLine
	CmdPolygon

	// Path commands
	CmdNewPath
	CmdMoveTo
	CmdLineTo
	CmdCurveTo
	CmdQCurveTo
	CmdArc
	CmdArcTo
	CmdClosePath
	CmdDrawPath
	CmdClipPath

	// Paint commands
	CmdFill
	CmdCMYKFill
	CmdStroke
	CmdCMYKStroke
	CmdGradient
	CmdShadow
	CmdOpacity
	CmdBlendMode
	CmdColorSpace

	// Stroke attribute commands
	CmdStrokeWidth
	CmdMiterLimit
	CmdLineCap
	CmdLineJoin
	CmdLineDash

	// Transform commands
	CmdTransform

	// Text attribute commands
	CmdFont
	CmdFallbackFont
	CmdFontSize
	CmdLineHeight
	CmdTracking
	CmdBaselineShift
	CmdUnderline
	CmdStrikethrough
	CmdURL
	CmdHyphenation
	CmdTabs
	CmdLanguage
	CmdTextAlign
	CmdWritingDirection
	CmdOpenTypeFeatures
	CmdFontVariations

	// Drawing commands
	CmdTextBox
	CmdImage

	// Link commands
	CmdLinkURL
	CmdLinkDestination
	CmdLinkRect

	// Font installation commands
	CmdInstallFont
	CmdUninstallFont
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdNewPage:          "NewPage",
	CmdFrameDuration:    "FrameDuration",
	CmdSave:             "Save",
	CmdRestore:          "Restore",
	CmdRect:             "Rect",
	CmdOval:             "Oval",
	CmdLine:             "Line",
	CmdPolygon:          "Polygon",
	CmdNewPath:          "NewPath",
	CmdMoveTo:           "MoveTo",
	CmdLineTo:           "LineTo",
	CmdCurveTo:          "CurveTo",
	CmdQCurveTo:         "QCurveTo",
	CmdArc:              "Arc",
	CmdArcTo:            "ArcTo",
	CmdClosePath:        "ClosePath",
	CmdDrawPath:         "DrawPath",
	CmdClipPath:         "ClipPath",
	CmdFill:             "Fill",
	CmdCMYKFill:         "CMYKFill",
	CmdStroke:           "Stroke",
	CmdCMYKStroke:       "CMYKStroke",
	CmdGradient:         "Gradient",
	CmdShadow:           "Shadow",
	CmdOpacity:          "Opacity",
	CmdBlendMode:        "BlendMode",
	CmdColorSpace:       "ColorSpace",
	CmdStrokeWidth:      "StrokeWidth",
	CmdMiterLimit:       "MiterLimit",
	CmdLineCap:          "LineCap",
	CmdLineJoin:         "LineJoin",
	CmdLineDash:         "LineDash",
	CmdTransform:        "Transform",
	CmdFont:             "Font",
	CmdFallbackFont:     "FallbackFont",
	CmdFontSize:         "FontSize",
	CmdLineHeight:       "LineHeight",
	CmdTracking:         "Tracking",
	CmdBaselineShift:    "BaselineShift",
	CmdUnderline:        "Underline",
	CmdStrikethrough:    "Strikethrough",
	CmdURL:              "URL",
	CmdHyphenation:      "Hyphenation",
	CmdTabs:             "Tabs",
	CmdLanguage:         "Language",
	CmdTextAlign:        "TextAlign",
	CmdWritingDirection: "WritingDirection",
	CmdOpenTypeFeatures: "OpenTypeFeatures",
	CmdFontVariations:   "FontVariations",
	CmdTextBox:          "TextBox",
	CmdImage:            "Image",
	CmdLinkURL:          "LinkURL",
	CmdLinkDestination:  "LinkDestination",
	CmdLinkRect:         "LinkRect",
	CmdInstallFont:      "InstallFont",
	CmdUninstallFont:    "UninstallFont",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is one recorded drawing operation.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
	// RequiresPage reports whether applying this command needs a page
	// to exist. Recording such a command before any NewPage triggers
	// the synthetic first page.
	RequiresPage() bool
	// Apply performs the operation on a canvas. The same method runs
	// during validation and during replay.
	Apply(c canvas.Canvas) error
}

// --------------------------------------------------------------------------
// Pages
// --------------------------------------------------------------------------

// NewPageCommand starts a new page.
type NewPageCommand struct {
	Width, Height float64
}

func (NewPageCommand) Type() CommandType { return CmdNewPage }

func (NewPageCommand) RequiresPage() bool { return false }

func (cmd NewPageCommand) Apply(c canvas.Canvas) error {
	return c.NewPage(cmd.Width, cmd.Height)
}

// FrameDurationCommand sets the display duration of the current page.
type FrameDurationCommand struct {
	Seconds float64
}

func (FrameDurationCommand) Type() CommandType { return CmdFrameDuration }

func (FrameDurationCommand) RequiresPage() bool { return true }

func (cmd FrameDurationCommand) Apply(c canvas.Canvas) error {
	return c.FrameDuration(cmd.Seconds)
}

// --------------------------------------------------------------------------
// State
// --------------------------------------------------------------------------

// SaveCommand pushes a snapshot of the graphics state.
type SaveCommand struct{}

func (SaveCommand) Type() CommandType { return CmdSave }

func (SaveCommand) RequiresPage() bool { return true }

func (SaveCommand) Apply(c canvas.Canvas) error { return c.Save() }

// RestoreCommand pops the most recent snapshot.
type RestoreCommand struct{}

func (RestoreCommand) Type() CommandType { return CmdRestore }

func (RestoreCommand) RequiresPage() bool { return true }

func (RestoreCommand) Apply(c canvas.Canvas) error { return c.Restore() }

// --------------------------------------------------------------------------
// Shapes
// --------------------------------------------------------------------------

// RectCommand draws a rectangle.
type RectCommand struct {
	Rect canvas.Rect
}

func (RectCommand) Type() CommandType { return CmdRect }

func (RectCommand) RequiresPage() bool { return true }

func (cmd RectCommand) Apply(c canvas.Canvas) error { return c.DrawRect(cmd.Rect) }

// OvalCommand draws an ellipse inscribed in a rectangle.
type OvalCommand struct {
	Rect canvas.Rect
}

func (OvalCommand) Type() CommandType { return CmdOval }

func (OvalCommand) RequiresPage() bool { return true }

func (cmd OvalCommand) Apply(c canvas.Canvas) error { return c.DrawOval(cmd.Rect) }

// LineCommand draws a line segment.
type LineCommand struct {
	P1, P2 canvas.Point
}

func (LineCommand) Type() CommandType { return CmdLine }

func (LineCommand) RequiresPage() bool { return true }

func (cmd LineCommand) Apply(c canvas.Canvas) error { return c.DrawLine(cmd.P1, cmd.P2) }

// PolygonCommand draws a polygon.
type PolygonCommand struct {
	Points []canvas.Point
	Close  bool
}

func (PolygonCommand) Type() CommandType { return CmdPolygon }

func (PolygonCommand) RequiresPage() bool { return true }

func (cmd PolygonCommand) Apply(c canvas.Canvas) error {
	return c.DrawPolygon(cmd.Points, cmd.Close)
}

// --------------------------------------------------------------------------
// Path building
// --------------------------------------------------------------------------

// NewPathCommand begins a fresh path in the graphics state.
type NewPathCommand struct{}

func (NewPathCommand) Type() CommandType { return CmdNewPath }

func (NewPathCommand) RequiresPage() bool { return true }

func (NewPathCommand) Apply(c canvas.Canvas) error { return c.NewPath() }

// MoveToCommand starts a new subpath.
type MoveToCommand struct {
	Point canvas.Point
}

func (MoveToCommand) Type() CommandType { return CmdMoveTo }

func (MoveToCommand) RequiresPage() bool { return true }

func (cmd MoveToCommand) Apply(c canvas.Canvas) error { return c.MoveTo(cmd.Point) }

// LineToCommand adds a line to the current path.
type LineToCommand struct {
	Point canvas.Point
}

func (LineToCommand) Type() CommandType { return CmdLineTo }

func (LineToCommand) RequiresPage() bool { return true }

func (cmd LineToCommand) Apply(c canvas.Canvas) error { return c.LineTo(cmd.Point) }

// CurveToCommand adds a cubic Bezier curve to the current path.
type CurveToCommand struct {
	Control1, Control2, Point canvas.Point
}

func (CurveToCommand) Type() CommandType { return CmdCurveTo }

func (CurveToCommand) RequiresPage() bool { return true }

func (cmd CurveToCommand) Apply(c canvas.Canvas) error {
	return c.CurveTo(cmd.Control1, cmd.Control2, cmd.Point)
}

// QCurveToCommand adds a quadratic curve run to the current path.
type QCurveToCommand struct {
	Points []canvas.Point
}

func (QCurveToCommand) Type() CommandType { return CmdQCurveTo }

func (QCurveToCommand) RequiresPage() bool { return true }

func (cmd QCurveToCommand) Apply(c canvas.Canvas) error { return c.QCurveTo(cmd.Points...) }

// ArcCommand adds a circular arc to the current path.
type ArcCommand struct {
	Center               canvas.Point
	Radius               float64
	StartAngle, EndAngle float64
	Clockwise            bool
}

func (ArcCommand) Type() CommandType { return CmdArc }

func (ArcCommand) RequiresPage() bool { return true }

func (cmd ArcCommand) Apply(c canvas.Canvas) error {
	return c.Arc(cmd.Center, cmd.Radius, cmd.StartAngle, cmd.EndAngle, cmd.Clockwise)
}

// ArcToCommand adds a tangent arc to the current path.
type ArcToCommand struct {
	P1, P2 canvas.Point
	Radius float64
}

func (ArcToCommand) Type() CommandType { return CmdArcTo }

func (ArcToCommand) RequiresPage() bool { return true }

func (cmd ArcToCommand) Apply(c canvas.Canvas) error {
	return c.ArcTo(cmd.P1, cmd.P2, cmd.Radius)
}

// ClosePathCommand closes the current subpath.
type ClosePathCommand struct{}

func (ClosePathCommand) Type() CommandType { return CmdClosePath }

func (ClosePathCommand) RequiresPage() bool { return true }

func (ClosePathCommand) Apply(c canvas.Canvas) error { return c.ClosePath() }

// DrawPathCommand fills and strokes a path; a nil path means the
// current one.
type DrawPathCommand struct {
	Path *canvas.Path
}

func (DrawPathCommand) Type() CommandType { return CmdDrawPath }

func (DrawPathCommand) RequiresPage() bool { return true }

func (cmd DrawPathCommand) Apply(c canvas.Canvas) error { return c.DrawPath(cmd.Path) }

// ClipPathCommand intersects the clip region with a path; a nil path
// means the current one.
type ClipPathCommand struct {
	Path *canvas.Path
}

func (ClipPathCommand) Type() CommandType { return CmdClipPath }

func (ClipPathCommand) RequiresPage() bool { return true }

func (cmd ClipPathCommand) Apply(c canvas.Canvas) error { return c.ClipPath(cmd.Path) }

// --------------------------------------------------------------------------
// Paint
// --------------------------------------------------------------------------

// FillCommand sets or clears the fill color.
type FillCommand struct {
	Color *canvas.Color
}

func (FillCommand) Type() CommandType { return CmdFill }

func (FillCommand) RequiresPage() bool { return true }

func (cmd FillCommand) Apply(c canvas.Canvas) error { return c.SetFill(cmd.Color) }

// CMYKFillCommand sets or clears the fill from CMYK components.
type CMYKFillCommand struct {
	Color *canvas.CMYK
}

func (CMYKFillCommand) Type() CommandType { return CmdCMYKFill }

func (CMYKFillCommand) RequiresPage() bool { return true }

func (cmd CMYKFillCommand) Apply(c canvas.Canvas) error { return c.SetCMYKFill(cmd.Color) }

// StrokeCommand sets or clears the stroke color.
type StrokeCommand struct {
	Color *canvas.Color
}

func (StrokeCommand) Type() CommandType { return CmdStroke }

func (StrokeCommand) RequiresPage() bool { return true }

func (cmd StrokeCommand) Apply(c canvas.Canvas) error { return c.SetStroke(cmd.Color) }

// CMYKStrokeCommand sets or clears the stroke from CMYK components.
type CMYKStrokeCommand struct {
	Color *canvas.CMYK
}

func (CMYKStrokeCommand) Type() CommandType { return CmdCMYKStroke }

func (CMYKStrokeCommand) RequiresPage() bool { return true }

func (cmd CMYKStrokeCommand) Apply(c canvas.Canvas) error { return c.SetCMYKStroke(cmd.Color) }

// GradientCommand installs or clears a gradient fill.
type GradientCommand struct {
	Gradient *canvas.Gradient
}

func (GradientCommand) Type() CommandType { return CmdGradient }

func (GradientCommand) RequiresPage() bool { return true }

func (cmd GradientCommand) Apply(c canvas.Canvas) error { return c.SetGradient(cmd.Gradient) }

// ShadowCommand installs or clears a drop shadow.
type ShadowCommand struct {
	Shadow *canvas.Shadow
}

func (ShadowCommand) Type() CommandType { return CmdShadow }

func (ShadowCommand) RequiresPage() bool { return true }

func (cmd ShadowCommand) Apply(c canvas.Canvas) error { return c.SetShadow(cmd.Shadow) }

// OpacityCommand sets the global alpha.
type OpacityCommand struct {
	Value float64
}

func (OpacityCommand) Type() CommandType { return CmdOpacity }

func (OpacityCommand) RequiresPage() bool { return true }

func (cmd OpacityCommand) Apply(c canvas.Canvas) error { return c.SetOpacity(cmd.Value) }

// BlendModeCommand sets the compositing mode.
type BlendModeCommand struct {
	Mode canvas.BlendMode
}

func (BlendModeCommand) Type() CommandType { return CmdBlendMode }

func (BlendModeCommand) RequiresPage() bool { return true }

func (cmd BlendModeCommand) Apply(c canvas.Canvas) error { return c.SetBlendMode(cmd.Mode) }

// ColorSpaceCommand sets the working color space.
type ColorSpaceCommand struct {
	Space canvas.ColorSpace
}

func (ColorSpaceCommand) Type() CommandType { return CmdColorSpace }

func (ColorSpaceCommand) RequiresPage() bool { return true }

func (cmd ColorSpaceCommand) Apply(c canvas.Canvas) error { return c.SetColorSpace(cmd.Space) }

// --------------------------------------------------------------------------
// Stroke attributes
// --------------------------------------------------------------------------

// StrokeWidthCommand sets the stroke width.
type StrokeWidthCommand struct {
	Width float64
}

func (StrokeWidthCommand) Type() CommandType { return CmdStrokeWidth }

func (StrokeWidthCommand) RequiresPage() bool { return true }

func (cmd StrokeWidthCommand) Apply(c canvas.Canvas) error { return c.SetStrokeWidth(cmd.Width) }

// MiterLimitCommand sets the miter limit.
type MiterLimitCommand struct {
	Limit float64
}

func (MiterLimitCommand) Type() CommandType { return CmdMiterLimit }

func (MiterLimitCommand) RequiresPage() bool { return true }

func (cmd MiterLimitCommand) Apply(c canvas.Canvas) error { return c.SetMiterLimit(cmd.Limit) }

// LineCapCommand sets the stroke end cap.
type LineCapCommand struct {
	Cap canvas.LineCap
}

func (LineCapCommand) Type() CommandType { return CmdLineCap }

func (LineCapCommand) RequiresPage() bool { return true }

func (cmd LineCapCommand) Apply(c canvas.Canvas) error { return c.SetLineCap(cmd.Cap) }

// LineJoinCommand sets the stroke join.
type LineJoinCommand struct {
	Join canvas.LineJoin
}

func (LineJoinCommand) Type() CommandType { return CmdLineJoin }

func (LineJoinCommand) RequiresPage() bool { return true }

func (cmd LineJoinCommand) Apply(c canvas.Canvas) error { return c.SetLineJoin(cmd.Join) }

// LineDashCommand sets or clears the dash pattern.
type LineDashCommand struct {
	Lengths []float64
	Offset  float64
}

func (LineDashCommand) Type() CommandType { return CmdLineDash }

func (LineDashCommand) RequiresPage() bool { return true }

func (cmd LineDashCommand) Apply(c canvas.Canvas) error {
	return c.SetLineDash(cmd.Lengths, cmd.Offset)
}

// --------------------------------------------------------------------------
// Transform
// --------------------------------------------------------------------------

// TransformCommand concatenates a matrix onto the current transform.
type TransformCommand struct {
	Matrix canvas.Matrix
}

func (TransformCommand) Type() CommandType { return CmdTransform }

func (TransformCommand) RequiresPage() bool { return true }

func (cmd TransformCommand) Apply(c canvas.Canvas) error { return c.Transform(cmd.Matrix) }

// --------------------------------------------------------------------------
// Text attributes
// --------------------------------------------------------------------------

// FontCommand sets the font by family name or file path.
type FontCommand struct {
	NameOrPath string
	Index      int
}

func (FontCommand) Type() CommandType { return CmdFont }

func (FontCommand) RequiresPage() bool { return false }

func (cmd FontCommand) Apply(c canvas.Canvas) error {
	return c.SetFont(cmd.NameOrPath, cmd.Index)
}

// FallbackFontCommand sets the fallback face.
type FallbackFontCommand struct {
	NameOrPath string
	Index      int
}

func (FallbackFontCommand) Type() CommandType { return CmdFallbackFont }

func (FallbackFontCommand) RequiresPage() bool { return false }

func (cmd FallbackFontCommand) Apply(c canvas.Canvas) error {
	return c.SetFallbackFont(cmd.NameOrPath, cmd.Index)
}

// FontSizeCommand sets the font size.
type FontSizeCommand struct {
	Size float64
}

func (FontSizeCommand) Type() CommandType { return CmdFontSize }

func (FontSizeCommand) RequiresPage() bool { return false }

func (cmd FontSizeCommand) Apply(c canvas.Canvas) error { return c.SetFontSize(cmd.Size) }

// LineHeightCommand sets the line height.
type LineHeightCommand struct {
	Height float64
}

func (LineHeightCommand) Type() CommandType { return CmdLineHeight }

func (LineHeightCommand) RequiresPage() bool { return false }

func (cmd LineHeightCommand) Apply(c canvas.Canvas) error { return c.SetLineHeight(cmd.Height) }

// TrackingCommand sets the extra per-glyph advance.
type TrackingCommand struct {
	Tracking float64
}

func (TrackingCommand) Type() CommandType { return CmdTracking }

func (TrackingCommand) RequiresPage() bool { return false }

func (cmd TrackingCommand) Apply(c canvas.Canvas) error { return c.SetTracking(cmd.Tracking) }

// BaselineShiftCommand moves the text baseline.
type BaselineShiftCommand struct {
	Shift float64
}

func (BaselineShiftCommand) Type() CommandType { return CmdBaselineShift }

func (BaselineShiftCommand) RequiresPage() bool { return false }

func (cmd BaselineShiftCommand) Apply(c canvas.Canvas) error {
	return c.SetBaselineShift(cmd.Shift)
}

// UnderlineCommand sets the underline decoration.
type UnderlineCommand struct {
	Style canvas.UnderlineStyle
}

func (UnderlineCommand) Type() CommandType { return CmdUnderline }

func (UnderlineCommand) RequiresPage() bool { return false }

func (cmd UnderlineCommand) Apply(c canvas.Canvas) error { return c.SetUnderline(cmd.Style) }

// StrikethroughCommand sets the strikethrough decoration.
type StrikethroughCommand struct {
	Style canvas.UnderlineStyle
}

func (StrikethroughCommand) Type() CommandType { return CmdStrikethrough }

func (StrikethroughCommand) RequiresPage() bool { return false }

func (cmd StrikethroughCommand) Apply(c canvas.Canvas) error {
	return c.SetStrikethrough(cmd.Style)
}

// URLCommand attaches a link URL to subsequent text.
type URLCommand struct {
	URL string
}

func (URLCommand) Type() CommandType { return CmdURL }

func (URLCommand) RequiresPage() bool { return false }

func (cmd URLCommand) Apply(c canvas.Canvas) error { return c.SetURL(cmd.URL) }

// HyphenationCommand switches soft-hyphen line breaking.
type HyphenationCommand struct {
	On bool
}

func (HyphenationCommand) Type() CommandType { return CmdHyphenation }

func (HyphenationCommand) RequiresPage() bool { return false }

func (cmd HyphenationCommand) Apply(c canvas.Canvas) error { return c.SetHyphenation(cmd.On) }

// TabsCommand sets the paragraph tab stops.
type TabsCommand struct {
	Stops []canvas.TabStop
}

func (TabsCommand) Type() CommandType { return CmdTabs }

func (TabsCommand) RequiresPage() bool { return false }

func (cmd TabsCommand) Apply(c canvas.Canvas) error { return c.SetTabs(cmd.Stops) }

// LanguageCommand sets the shaping language.
type LanguageCommand struct {
	Tag string
}

func (LanguageCommand) Type() CommandType { return CmdLanguage }

func (LanguageCommand) RequiresPage() bool { return false }

func (cmd LanguageCommand) Apply(c canvas.Canvas) error { return c.SetLanguage(cmd.Tag) }

// TextAlignCommand sets the horizontal text alignment.
type TextAlignCommand struct {
	Align canvas.Align
}

func (TextAlignCommand) Type() CommandType { return CmdTextAlign }

func (TextAlignCommand) RequiresPage() bool { return false }

func (cmd TextAlignCommand) Apply(c canvas.Canvas) error { return c.SetTextAlign(cmd.Align) }

// WritingDirectionCommand sets the base writing direction.
type WritingDirectionCommand struct {
	Direction canvas.Direction
}

func (WritingDirectionCommand) Type() CommandType { return CmdWritingDirection }

func (WritingDirectionCommand) RequiresPage() bool { return false }

func (cmd WritingDirectionCommand) Apply(c canvas.Canvas) error {
	return c.SetWritingDirection(cmd.Direction)
}

// OpenTypeFeaturesCommand merges or replaces OpenType feature settings.
type OpenTypeFeaturesCommand struct {
	Features map[string]bool
	Reset    bool
}

func (OpenTypeFeaturesCommand) Type() CommandType { return CmdOpenTypeFeatures }

func (OpenTypeFeaturesCommand) RequiresPage() bool { return false }

func (cmd OpenTypeFeaturesCommand) Apply(c canvas.Canvas) error {
	return c.SetOpenTypeFeatures(cmd.Features, cmd.Reset)
}

// FontVariationsCommand merges or replaces variable font axis values.
type FontVariationsCommand struct {
	Axes  map[string]float64
	Reset bool
}

func (FontVariationsCommand) Type() CommandType { return CmdFontVariations }

func (FontVariationsCommand) RequiresPage() bool { return false }

func (cmd FontVariationsCommand) Apply(c canvas.Canvas) error {
	return c.SetFontVariations(cmd.Axes, cmd.Reset)
}

// --------------------------------------------------------------------------
// Text and image drawing
// --------------------------------------------------------------------------

// TextBoxCommand lays formatted text into a rectangle and draws it.
type TextBoxCommand struct {
	Text *canvas.FormattedText
	Rect canvas.Rect
}

func (TextBoxCommand) Type() CommandType { return CmdTextBox }

func (TextBoxCommand) RequiresPage() bool { return true }

func (cmd TextBoxCommand) Apply(c canvas.Canvas) error {
	return c.DrawTextBox(cmd.Text, cmd.Rect)
}

// ImageCommand places a decoded image with its lower-left corner at a
// point.
type ImageCommand struct {
	Image image.Image
	Point canvas.Point
	Alpha float64
}

func (ImageCommand) Type() CommandType { return CmdImage }

func (ImageCommand) RequiresPage() bool { return true }

func (cmd ImageCommand) Apply(c canvas.Canvas) error {
	return c.DrawImage(cmd.Image, cmd.Point, cmd.Alpha)
}

// --------------------------------------------------------------------------
// Links
// --------------------------------------------------------------------------

// LinkURLCommand attaches a URL link covering a rectangle.
type LinkURLCommand struct {
	URL  string
	Rect canvas.Rect
}

func (LinkURLCommand) Type() CommandType { return CmdLinkURL }

func (LinkURLCommand) RequiresPage() bool { return true }

func (cmd LinkURLCommand) Apply(c canvas.Canvas) error { return c.LinkURL(cmd.URL, cmd.Rect) }

// LinkDestinationCommand places a named link target.
type LinkDestinationCommand struct {
	Name  string
	Point canvas.Point
}

func (LinkDestinationCommand) Type() CommandType { return CmdLinkDestination }

func (LinkDestinationCommand) RequiresPage() bool { return true }

func (cmd LinkDestinationCommand) Apply(c canvas.Canvas) error {
	return c.LinkDestination(cmd.Name, cmd.Point)
}

// LinkRectCommand attaches an internal link to a named destination.
type LinkRectCommand struct {
	Name string
	Rect canvas.Rect
}

func (LinkRectCommand) Type() CommandType { return CmdLinkRect }

func (LinkRectCommand) RequiresPage() bool { return true }

func (cmd LinkRectCommand) Apply(c canvas.Canvas) error {
	return c.LinkRect(cmd.Name, cmd.Rect)
}

// --------------------------------------------------------------------------
// Session fonts
// --------------------------------------------------------------------------

// InstallFontCommand registers a font file for the session.
type InstallFontCommand struct {
	Path string
}

func (InstallFontCommand) Type() CommandType { return CmdInstallFont }

func (InstallFontCommand) RequiresPage() bool { return false }

func (cmd InstallFontCommand) Apply(c canvas.Canvas) error { return c.InstallFont(cmd.Path) }

// UninstallFontCommand removes a session font.
type UninstallFontCommand struct {
	Path string
}

func (UninstallFontCommand) Type() CommandType { return CmdUninstallFont }

func (UninstallFontCommand) RequiresPage() bool { return false }

func (cmd UninstallFontCommand) Apply(c canvas.Canvas) error { return c.UninstallFont(cmd.Path) }
