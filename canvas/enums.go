package canvas

import "fmt"

// LineCap describes how stroke endpoints are drawn.
type LineCap int

const (
	LineCapButt LineCap = iota
	LineCapSquare
	LineCapRound
)

func (c LineCap) String() string {
	switch c {
	case LineCapButt:
		return "butt"
	case LineCapSquare:
		return "square"
	case LineCapRound:
		return "round"
	}
	return fmt.Sprintf("LineCap(%d)", int(c))
}

// ParseLineCap maps a cap name to its LineCap value.
func ParseLineCap(name string) (LineCap, error) {
	switch name {
	case "butt":
		return LineCapButt, nil
	case "square":
		return LineCapSquare, nil
	case "round":
		return LineCapRound, nil
	}
	return 0, fmt.Errorf("lineCap() argument must be 'butt', 'square' or 'round', got %q", name)
}

// LineJoin describes how stroke segments are joined.
type LineJoin int

const (
	LineJoinMiter LineJoin = iota
	LineJoinRound
	LineJoinBevel
)

func (j LineJoin) String() string {
	switch j {
	case LineJoinMiter:
		return "miter"
	case LineJoinRound:
		return "round"
	case LineJoinBevel:
		return "bevel"
	}
	return fmt.Sprintf("LineJoin(%d)", int(j))
}

// ParseLineJoin maps a join name to its LineJoin value.
func ParseLineJoin(name string) (LineJoin, error) {
	switch name {
	case "miter":
		return LineJoinMiter, nil
	case "round":
		return LineJoinRound, nil
	case "bevel":
		return LineJoinBevel, nil
	}
	return 0, fmt.Errorf("lineJoin() argument must be 'miter', 'round' or 'bevel', got %q", name)
}

// Align describes horizontal text alignment inside a text box.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
	AlignJustified
)

func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignJustified:
		return "justified"
	}
	return fmt.Sprintf("Align(%d)", int(a))
}

// ParseAlign maps an alignment name to its Align value.
func ParseAlign(name string) (Align, error) {
	switch name {
	case "left":
		return AlignLeft, nil
	case "center":
		return AlignCenter, nil
	case "right":
		return AlignRight, nil
	case "justified":
		return AlignJustified, nil
	}
	return 0, fmt.Errorf("align must be 'left', 'center', 'right' or 'justified', got %q", name)
}

// Direction describes the base writing direction of a text run.
type Direction int

const (
	DirectionAuto Direction = iota
	DirectionLTR
	DirectionRTL
)

// ParseDirection maps a writing direction name to its Direction value.
// The empty string selects automatic detection.
func ParseDirection(name string) (Direction, error) {
	switch name {
	case "", "auto":
		return DirectionAuto, nil
	case "ltr":
		return DirectionLTR, nil
	case "rtl":
		return DirectionRTL, nil
	}
	return 0, fmt.Errorf("writingDirection must be 'ltr', 'rtl' or 'auto', got %q", name)
}

// UnderlineStyle selects an underline decoration for text.
type UnderlineStyle int

const (
	UnderlineNone UnderlineStyle = iota
	UnderlineSingle
	UnderlineThick
	UnderlineDouble
)

// ParseUnderline maps an underline name to its UnderlineStyle value.
func ParseUnderline(name string) (UnderlineStyle, error) {
	switch name {
	case "", "none":
		return UnderlineNone, nil
	case "single":
		return UnderlineSingle, nil
	case "thick":
		return UnderlineThick, nil
	case "double":
		return UnderlineDouble, nil
	}
	return 0, fmt.Errorf("underline must be 'single', 'thick' or 'double', got %q", name)
}

// TabAlign describes the alignment of text at a tab stop.
type TabAlign int

const (
	TabAlignLeft TabAlign = iota
	TabAlignCenter
	TabAlignRight
)

// ParseTabAlign maps a tab stop alignment name to its TabAlign value.
func ParseTabAlign(name string) (TabAlign, error) {
	switch name {
	case "", "left":
		return TabAlignLeft, nil
	case "center":
		return TabAlignCenter, nil
	case "right":
		return TabAlignRight, nil
	}
	return 0, fmt.Errorf("tab alignment must be 'left', 'center' or 'right', got %q", name)
}

// TabStop places a tab position within a paragraph.
type TabStop struct {
	Position float64
	Align    TabAlign
}

// ColorSpace selects the working color space for subsequent fills and
// strokes. Backends without color management treat every space as sRGB.
type ColorSpace int

const (
	ColorSpaceGenericRGB ColorSpace = iota
	ColorSpaceSRGB
	ColorSpaceAdobeRGB
	ColorSpaceGenericGray
)

func (s ColorSpace) String() string {
	switch s {
	case ColorSpaceGenericRGB:
		return "genericRGB"
	case ColorSpaceSRGB:
		return "sRGB"
	case ColorSpaceAdobeRGB:
		return "adobeRGB"
	case ColorSpaceGenericGray:
		return "genericGray"
	}
	return fmt.Sprintf("ColorSpace(%d)", int(s))
}

// ParseColorSpace maps a color space name to its ColorSpace value.
func ParseColorSpace(name string) (ColorSpace, error) {
	switch name {
	case "", "genericRGB":
		return ColorSpaceGenericRGB, nil
	case "sRGB":
		return ColorSpaceSRGB, nil
	case "adobeRGB":
		return ColorSpaceAdobeRGB, nil
	case "genericGray":
		return ColorSpaceGenericGray, nil
	}
	return 0, fmt.Errorf("colorSpace must be 'genericRGB', 'sRGB', 'adobeRGB' or 'genericGray', got %q", name)
}

// BlendMode selects how subsequent drawing composites with what is
// already on the page.
type BlendMode int

const (
	BlendNormal BlendMode = iota
	BlendMultiply
	BlendScreen
	BlendOverlay
	BlendDarken
	BlendLighten
	BlendColorDodge
	BlendColorBurn
	BlendSoftLight
	BlendHardLight
	BlendDifference
	BlendExclusion
	BlendHue
	BlendSaturation
	BlendColor
	BlendLuminosity
)

var blendModeNames = map[string]BlendMode{
	"normal":     BlendNormal,
	"multiply":   BlendMultiply,
	"screen":     BlendScreen,
	"overlay":    BlendOverlay,
	"darken":     BlendDarken,
	"lighten":    BlendLighten,
	"colorDodge": BlendColorDodge,
	"colorBurn":  BlendColorBurn,
	"softLight":  BlendSoftLight,
	"hardLight":  BlendHardLight,
	"difference": BlendDifference,
	"exclusion":  BlendExclusion,
	"hue":        BlendHue,
	"saturation": BlendSaturation,
	"color":      BlendColor,
	"luminosity": BlendLuminosity,
}

func (b BlendMode) String() string {
	for name, mode := range blendModeNames {
		if mode == b {
			return name
		}
	}
	return fmt.Sprintf("BlendMode(%d)", int(b))
}

// ParseBlendMode maps a blend mode name to its BlendMode value.
func ParseBlendMode(name string) (BlendMode, error) {
	if name == "" {
		return BlendNormal, nil
	}
	if mode, ok := blendModeNames[name]; ok {
		return mode, nil
	}
	return 0, fmt.Errorf("unknown blend mode %q", name)
}
