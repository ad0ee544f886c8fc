package canvas

// TextStyle holds every text attribute carried by the graphics state.
// Maps and slices are deep-copied by Clone so snapshots stay isolated.
type TextStyle struct {
	// Font is a family name or a font file path; FontIndex selects a
	// face inside a collection file.
	Font      string
	FontIndex int
	// Fallback is consulted for characters the primary face lacks.
	Fallback      string
	FallbackIndex int

	FontSize      float64
	LineHeight    float64 // 0 means font-derived
	Tracking      float64 // extra advance per glyph, in points
	BaselineShift float64

	Underline     UnderlineStyle
	Strikethrough UnderlineStyle
	URL           string

	OpenTypeFeatures map[string]bool
	FontVariations   map[string]float64

	Align           Align
	Direction       Direction
	Language        string
	Tabs            []TabStop
	Indent          float64
	TailIndent      float64
	FirstLineIndent float64
	ParagraphTop    float64
	ParagraphBottom float64
}

// Clone returns a deep copy of the style.
func (t TextStyle) Clone() TextStyle {
	c := t
	if t.OpenTypeFeatures != nil {
		c.OpenTypeFeatures = make(map[string]bool, len(t.OpenTypeFeatures))
		for k, v := range t.OpenTypeFeatures {
			c.OpenTypeFeatures[k] = v
		}
	}
	if t.FontVariations != nil {
		c.FontVariations = make(map[string]float64, len(t.FontVariations))
		for k, v := range t.FontVariations {
			c.FontVariations[k] = v
		}
	}
	if t.Tabs != nil {
		c.Tabs = make([]TabStop, len(t.Tabs))
		copy(c.Tabs, t.Tabs)
	}
	return c
}

// TextRunSource is one styled span of a FormattedText value.
type TextRunSource struct {
	Text  string
	Style TextStyle
	// Fill/Stroke override the state paint for this run when set.
	Fill   Paint
	Stroke Paint
}

// FormattedText is a sequence of styled runs built up with Append.
// It is a plain value carried inside text commands.
type FormattedText struct {
	Runs []TextRunSource
}

// Append adds a styled run.
func (f *FormattedText) Append(run TextRunSource) {
	f.Runs = append(f.Runs, run)
}

// Text returns the concatenated plain text of all runs.
func (f *FormattedText) Text() string {
	var s string
	for _, r := range f.Runs {
		s += r.Text
	}
	return s
}

// Clone returns a deep copy.
func (f *FormattedText) Clone() *FormattedText {
	if f == nil {
		return nil
	}
	g := &FormattedText{Runs: make([]TextRunSource, len(f.Runs))}
	for i, r := range f.Runs {
		g.Runs[i] = TextRunSource{
			Text:   r.Text,
			Style:  r.Style.Clone(),
			Fill:   r.Fill.Clone(),
			Stroke: r.Stroke.Clone(),
		}
	}
	return g
}
