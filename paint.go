package inkdraw

import (
	"github.com/inkdraw/inkdraw/canvas"
	"github.com/inkdraw/inkdraw/recording"
)

// Color is an RGBA color with components in [0, 1].
type Color = canvas.Color

// CMYK is a CMYKA color with components in [0, 1].
type CMYK = canvas.CMYK

// parseColor interprets the variadic color convention shared by the
// paint calls: (gray), (gray, alpha), (r, g, b) or (r, g, b, alpha).
func parseColor(op string, comps []float64) (canvas.Color, error) {
	for _, v := range comps {
		if v < 0 || v > 1 {
			return canvas.Color{}, canvas.Usagef(op, "color components must be in the range 0..1, got %v", v)
		}
	}
	switch len(comps) {
	case 1:
		return canvas.Color{R: comps[0], G: comps[0], B: comps[0], A: 1}, nil
	case 2:
		return canvas.Color{R: comps[0], G: comps[0], B: comps[0], A: comps[1]}, nil
	case 3:
		return canvas.Color{R: comps[0], G: comps[1], B: comps[2], A: 1}, nil
	case 4:
		return canvas.Color{R: comps[0], G: comps[1], B: comps[2], A: comps[3]}, nil
	}
	return canvas.Color{}, canvas.Usagef(op, "expects 1 (gray), 2 (gray, alpha), 3 (rgb) or 4 (rgba) components, got %d", len(comps))
}

func parseCMYK(op string, c, m, y, k float64, alpha []float64) (canvas.CMYK, error) {
	col := canvas.CMYK{C: c, M: m, Y: y, K: k, A: 1}
	switch len(alpha) {
	case 0:
	case 1:
		col.A = alpha[0]
	default:
		return canvas.CMYK{}, canvas.Usagef(op, "expects at most one alpha component, got %d", len(alpha))
	}
	for _, v := range []float64{col.C, col.M, col.Y, col.K, col.A} {
		if v < 0 || v > 1 {
			return canvas.CMYK{}, canvas.Usagef(op, "color components must be in the range 0..1, got %v", v)
		}
	}
	return col, nil
}

// SetFill sets the fill color: (gray), (gray, alpha), (r, g, b) or
// (r, g, b, alpha). It clears any gradient and CMYK fill.
func (d *Drawing) SetFill(components ...float64) error {
	c, err := parseColor("fill", components)
	if err != nil {
		return err
	}
	return d.record(recording.FillCommand{Color: &c})
}

// ClearFill removes the fill, leaving shapes unfilled.
func (d *Drawing) ClearFill() error {
	return d.record(recording.FillCommand{})
}

// SetStroke sets the stroke color with the same component convention
// as SetFill.
func (d *Drawing) SetStroke(components ...float64) error {
	c, err := parseColor("stroke", components)
	if err != nil {
		return err
	}
	return d.record(recording.StrokeCommand{Color: &c})
}

// ClearStroke removes the stroke.
func (d *Drawing) ClearStroke() error {
	return d.record(recording.StrokeCommand{})
}

// SetCMYKFill sets the fill from CMYK components with an optional
// alpha. Both the CMYK values and their RGB conversion are kept, so
// CMYK-capable outputs use the original components.
func (d *Drawing) SetCMYKFill(c, m, y, k float64, alpha ...float64) error {
	col, err := parseCMYK("cmykFill", c, m, y, k, alpha)
	if err != nil {
		return err
	}
	return d.record(recording.CMYKFillCommand{Color: &col})
}

// SetCMYKStroke sets the stroke from CMYK components.
func (d *Drawing) SetCMYKStroke(c, m, y, k float64, alpha ...float64) error {
	col, err := parseCMYK("cmykStroke", c, m, y, k, alpha)
	if err != nil {
		return err
	}
	return d.record(recording.CMYKStrokeCommand{Color: &col})
}

// SetOpacity sets the global alpha applied on top of fill and stroke
// colors.
func (d *Drawing) SetOpacity(v float64) error {
	return d.record(recording.OpacityCommand{Value: v})
}

// SetBlendMode sets the compositing mode by name ("normal",
// "multiply", "screen", ...).
func (d *Drawing) SetBlendMode(name string) error {
	mode, err := canvas.ParseBlendMode(name)
	if err != nil {
		return canvas.Usagef("blendMode", "%v", err)
	}
	return d.record(recording.BlendModeCommand{Mode: mode})
}

// SetColorSpace sets the working color space by name ("genericRGB",
// "sRGB", "adobeRGB", "genericGray").
func (d *Drawing) SetColorSpace(name string) error {
	space, err := canvas.ParseColorSpace(name)
	if err != nil {
		return canvas.Usagef("colorSpace", "%v", err)
	}
	return d.record(recording.ColorSpaceCommand{Space: space})
}

// --------------------------------------------------------------------------
// Gradients and shadows
// --------------------------------------------------------------------------

// LinearGradient installs a linear gradient fill between two points.
// Locations may be nil for evenly spaced colors. The gradient clears
// any solid fill.
func (d *Drawing) LinearGradient(start, end Point, colors []Color, locations []float64) error {
	g, err := canvas.NewLinearGradient(start, end, colors, locations)
	if err != nil {
		return err
	}
	return d.record(recording.GradientCommand{Gradient: g})
}

// RadialGradient installs a radial gradient fill between two circles.
func (d *Drawing) RadialGradient(start, end Point, colors []Color, locations []float64, startRadius, endRadius float64) error {
	g, err := canvas.NewRadialGradient(start, end, colors, locations, startRadius, endRadius)
	if err != nil {
		return err
	}
	return d.record(recording.GradientCommand{Gradient: g})
}

// CMYKLinearGradient is LinearGradient with CMYK colors, converted to
// RGB stops for rendering.
func (d *Drawing) CMYKLinearGradient(start, end Point, colors []CMYK, locations []float64) error {
	return d.LinearGradient(start, end, cmykToRGB(colors), locations)
}

// CMYKRadialGradient is RadialGradient with CMYK colors.
func (d *Drawing) CMYKRadialGradient(start, end Point, colors []CMYK, locations []float64, startRadius, endRadius float64) error {
	return d.RadialGradient(start, end, cmykToRGB(colors), locations, startRadius, endRadius)
}

func cmykToRGB(colors []CMYK) []Color {
	out := make([]Color, len(colors))
	for i, c := range colors {
		out[i] = c.RGB()
	}
	return out
}

// ClearGradient removes the gradient fill.
func (d *Drawing) ClearGradient() error {
	return d.record(recording.GradientCommand{})
}

// SetShadow installs a drop shadow: an offset in points, a blur
// radius, and a color in the SetFill component convention.
func (d *Drawing) SetShadow(offset Point, blur float64, components ...float64) error {
	c, err := parseColor("shadow", components)
	if err != nil {
		return err
	}
	if blur < 0 {
		return canvas.Usagef("shadow", "blur must not be negative, got %v", blur)
	}
	return d.record(recording.ShadowCommand{Shadow: &canvas.Shadow{Offset: offset, Blur: blur, Color: c}})
}

// SetCMYKShadow is SetShadow with a CMYK color.
func (d *Drawing) SetCMYKShadow(offset Point, blur float64, c, m, y, k float64, alpha ...float64) error {
	col, err := parseCMYK("cmykShadow", c, m, y, k, alpha)
	if err != nil {
		return err
	}
	if blur < 0 {
		return canvas.Usagef("cmykShadow", "blur must not be negative, got %v", blur)
	}
	return d.record(recording.ShadowCommand{Shadow: &canvas.Shadow{Offset: offset, Blur: blur, Color: col.RGB(), CMYK: &col}})
}

// ClearShadow removes the drop shadow.
func (d *Drawing) ClearShadow() error {
	return d.record(recording.ShadowCommand{})
}

// --------------------------------------------------------------------------
// Stroke attributes
// --------------------------------------------------------------------------

// SetStrokeWidth sets the stroke width in points.
func (d *Drawing) SetStrokeWidth(w float64) error {
	return d.record(recording.StrokeWidthCommand{Width: w})
}

// SetMiterLimit sets the miter limit for miter line joins.
func (d *Drawing) SetMiterLimit(v float64) error {
	return d.record(recording.MiterLimitCommand{Limit: v})
}

// SetLineCap sets the stroke end cap by name ("butt", "square",
// "round").
func (d *Drawing) SetLineCap(name string) error {
	lc, err := canvas.ParseLineCap(name)
	if err != nil {
		return canvas.Usagef("lineCap", "%v", err)
	}
	return d.record(recording.LineCapCommand{Cap: lc})
}

// SetLineJoin sets the stroke join by name ("miter", "round",
// "bevel").
func (d *Drawing) SetLineJoin(name string) error {
	j, err := canvas.ParseLineJoin(name)
	if err != nil {
		return canvas.Usagef("lineJoin", "%v", err)
	}
	return d.record(recording.LineJoinCommand{Join: j})
}

// SetLineDash sets the stroke dash pattern, keeping the current dash
// offset. No lengths clears the pattern.
func (d *Drawing) SetLineDash(lengths ...float64) error {
	return d.record(recording.LineDashCommand{Lengths: lengths, Offset: d.val.State().DashOffset})
}

// SetLineDashOffset shifts the start of the current dash pattern.
func (d *Drawing) SetLineDashOffset(offset float64) error {
	s := d.val.State()
	return d.record(recording.LineDashCommand{Lengths: s.LineDash, Offset: offset})
}
