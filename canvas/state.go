package canvas

// DefaultFont is the family name of the embedded default face.
const DefaultFont = "Go-Regular"

// DefaultFontSize is the font size installed in a fresh graphics state.
const DefaultFontSize = 10.0

// GraphicsState is one snapshot of every attribute that influences
// drawing. Save pushes a Clone, so every nested mutable member must be
// deep-copied there.
type GraphicsState struct {
	ColorSpace ColorSpace
	BlendMode  BlendMode
	Opacity    float64

	Fill     Paint
	Stroke   Paint
	Gradient *Gradient
	Shadow   *Shadow

	StrokeWidth float64
	LineDash    []float64
	DashOffset  float64
	LineCap     LineCap
	LineJoin    LineJoin
	MiterLimit  float64

	Text        TextStyle
	Hyphenation bool

	// Path is the path under construction, nil when not building.
	Path *Path

	// CTM is the current transformation matrix.
	CTM Matrix
}

// NewGraphicsState returns a state with the default attribute values:
// opaque black fill, no stroke, stroke width 1, miter limit 10, the
// embedded default font at size 10, identity transform.
func NewGraphicsState() *GraphicsState {
	return &GraphicsState{
		Opacity:     1,
		Fill:        SolidPaint(RGB(0, 0, 0)),
		StrokeWidth: 1,
		MiterLimit:  10,
		Text: TextStyle{
			Font:     DefaultFont,
			FontSize: DefaultFontSize,
		},
		CTM: Identity(),
	}
}

// Clone returns a deep copy of the state.
func (g *GraphicsState) Clone() *GraphicsState {
	c := *g
	c.Fill = g.Fill.Clone()
	c.Stroke = g.Stroke.Clone()
	c.Gradient = g.Gradient.Clone()
	c.Shadow = g.Shadow.Clone()
	if g.LineDash != nil {
		c.LineDash = make([]float64, len(g.LineDash))
		copy(c.LineDash, g.LineDash)
	}
	c.Text = g.Text.Clone()
	c.Path = g.Path.Copy()
	return &c
}

// EffectiveStrokeWidth returns the stroke width scaled by the current
// transform.
func (g *GraphicsState) EffectiveStrokeWidth() float64 {
	return g.StrokeWidth * g.CTM.ScaleFactor()
}

// StateStack is a current graphics state plus the stack of snapshots
// made by Save.
type StateStack struct {
	current *GraphicsState
	saved   []*GraphicsState
}

// NewStateStack returns a stack holding a single default state.
func NewStateStack() *StateStack {
	return &StateStack{current: NewGraphicsState()}
}

// Current returns the active graphics state.
func (s *StateStack) Current() *GraphicsState {
	return s.current
}

// Save pushes a deep copy of the current state.
func (s *StateStack) Save() {
	s.saved = append(s.saved, s.current.Clone())
}

// Restore pops the most recent snapshot into the current state. With
// no snapshot on the stack it fails and leaves the state untouched.
func (s *StateStack) Restore() error {
	if len(s.saved) == 0 {
		return &UnbalancedRestoreError{}
	}
	s.current = s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
	return nil
}

// Depth returns the number of saved snapshots.
func (s *StateStack) Depth() int {
	return len(s.saved)
}

// Reset discards all snapshots and reinstalls a single default state.
func (s *StateStack) Reset() {
	s.current = NewGraphicsState()
	s.saved = s.saved[:0]
}
