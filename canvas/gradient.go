package canvas

// GradientKind selects between the two gradient geometries.
type GradientKind int

const (
	GradientLinear GradientKind = iota
	GradientRadial
)

// GradientStop is a color at a position along the gradient axis,
// with the position in [0, 1].
type GradientStop struct {
	Location float64
	Color    Color
}

// Gradient is a linear or radial color ramp used as a fill source.
// Setting a gradient clears any solid fill and vice versa.
type Gradient struct {
	Kind  GradientKind
	Start Point
	End   Point
	Stops []GradientStop
	// Radii apply to radial gradients only.
	StartRadius float64
	EndRadius   float64
}

// NewLinearGradient builds a linear gradient between two points.
// Locations may be nil, in which case the colors are spaced evenly.
func NewLinearGradient(start, end Point, colors []Color, locations []float64) (*Gradient, error) {
	stops, err := makeStops("linearGradient", colors, locations)
	if err != nil {
		return nil, err
	}
	return &Gradient{Kind: GradientLinear, Start: start, End: end, Stops: stops}, nil
}

// NewRadialGradient builds a radial gradient between two circles.
// Locations may be nil, in which case the colors are spaced evenly.
func NewRadialGradient(start, end Point, colors []Color, locations []float64, startRadius, endRadius float64) (*Gradient, error) {
	stops, err := makeStops("radialGradient", colors, locations)
	if err != nil {
		return nil, err
	}
	if endRadius <= 0 {
		return nil, Usagef("radialGradient", "endRadius must be positive, got %v", endRadius)
	}
	return &Gradient{
		Kind:        GradientRadial,
		Start:       start,
		End:         end,
		Stops:       stops,
		StartRadius: startRadius,
		EndRadius:   endRadius,
	}, nil
}

func makeStops(op string, colors []Color, locations []float64) ([]GradientStop, error) {
	if len(colors) < 2 {
		return nil, Usagef(op, "needs at least 2 colors, got %d", len(colors))
	}
	if locations == nil {
		locations = make([]float64, len(colors))
		step := 1.0 / float64(len(colors)-1)
		for i := range locations {
			locations[i] = float64(i) * step
		}
	}
	if len(locations) != len(colors) {
		return nil, Usagef(op, "expects the same number of locations as colors, got %d locations for %d colors", len(locations), len(colors))
	}
	stops := make([]GradientStop, len(colors))
	for i, c := range colors {
		loc := locations[i]
		if loc < 0 || loc > 1 {
			return nil, Usagef(op, "locations must be in the range 0..1, got %v", loc)
		}
		stops[i] = GradientStop{Location: loc, Color: c}
	}
	return stops, nil
}

// Clone returns a deep copy of the gradient.
func (g *Gradient) Clone() *Gradient {
	if g == nil {
		return nil
	}
	h := *g
	h.Stops = make([]GradientStop, len(g.Stops))
	copy(h.Stops, g.Stops)
	return &h
}

// Transform returns a copy of the gradient with its geometry mapped
// through the matrix. Radii are scaled by the matrix scale factor.
func (g *Gradient) Transform(m Matrix) *Gradient {
	if g == nil {
		return nil
	}
	h := g.Clone()
	h.Start = m.TransformPoint(g.Start)
	h.End = m.TransformPoint(g.End)
	s := m.ScaleFactor()
	h.StartRadius = g.StartRadius * s
	h.EndRadius = g.EndRadius * s
	return h
}
