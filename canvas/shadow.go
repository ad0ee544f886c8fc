package canvas

// Shadow describes a drop shadow applied to subsequent drawing.
// A nil *Shadow in the graphics state means no shadow.
type Shadow struct {
	Offset Point
	Blur   float64
	Color  Color
	// CMYK carries the original CMYK components when the shadow color
	// was given in CMYK.
	CMYK *CMYK
}

// Clone returns a deep copy of the shadow.
func (s *Shadow) Clone() *Shadow {
	if s == nil {
		return nil
	}
	t := *s
	if s.CMYK != nil {
		c := *s.CMYK
		t.CMYK = &c
	}
	return &t
}
