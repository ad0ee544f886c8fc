package textlayout

import (
	"strings"
	"testing"

	"github.com/inkdraw/inkdraw/canvas"
)

func plainText(txt string, style canvas.TextStyle) *canvas.FormattedText {
	ft := &canvas.FormattedText{}
	ft.Append(canvas.TextRunSource{Text: txt, Style: style})
	return ft
}

func TestLayoutSingleLine(t *testing.T) {
	e := newTestEngine(t)

	layout, err := e.Layout(plainText("Hello world", canvas.TextStyle{FontSize: 12}), 0, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(layout.Lines) != 1 {
		t.Fatalf("len(Lines) = %d, want 1", len(layout.Lines))
	}
	if layout.Overflow != "" {
		t.Errorf("Overflow = %q, want empty", layout.Overflow)
	}
	line := layout.Lines[0]
	if len(line.Runs) == 0 || len(line.Runs[0].Glyphs) == 0 {
		t.Fatal("line has no glyphs")
	}
	if line.Width <= 0 {
		t.Errorf("line width = %v, want > 0", line.Width)
	}
	if line.Ascent <= 0 || line.Descent <= 0 {
		t.Errorf("line metrics = ascent %v descent %v, want both > 0", line.Ascent, line.Descent)
	}

	// Pen positions advance monotonically for left-to-right text.
	glyphs := line.Runs[0].Glyphs
	for i := 1; i < len(glyphs); i++ {
		if glyphs[i].X < glyphs[i-1].X {
			t.Errorf("glyph %d at x=%v is left of glyph %d at x=%v", i, glyphs[i].X, i-1, glyphs[i-1].X)
		}
	}
}

func TestLayoutGlyphOutlines(t *testing.T) {
	e := newTestEngine(t)

	layout, err := e.Layout(plainText("H", canvas.TextStyle{FontSize: 100}), 0, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	g := layout.Lines[0].Runs[0].Glyphs[0]
	if g.Outline == nil {
		t.Fatal("glyph has no outline")
	}
	b := g.Outline.Bounds()
	if b.H <= 0 || b.H > 100 {
		t.Errorf("outline height = %v, want within (0, 100]", b.H)
	}
	if b.W <= 0 {
		t.Errorf("outline width = %v, want > 0", b.W)
	}
}

func TestLayoutWrapsAtWidth(t *testing.T) {
	e := newTestEngine(t)
	txt := "the quick brown fox jumps over the lazy dog"

	layout, err := e.Layout(plainText(txt, canvas.TextStyle{FontSize: 12}), 80, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(layout.Lines) < 2 {
		t.Fatalf("len(Lines) = %d, want wrapping into several lines", len(layout.Lines))
	}
	for i, line := range layout.Lines {
		if line.Width > 81 {
			t.Errorf("line %d width = %v, exceeds the box width", i, line.Width)
		}
	}
	// Lines stack top-down in a y-up coordinate space.
	for i := 1; i < len(layout.Lines); i++ {
		if layout.Lines[i].Origin.Y >= layout.Lines[i-1].Origin.Y {
			t.Errorf("line %d baseline %v is not below line %d baseline %v",
				i, layout.Lines[i].Origin.Y, i-1, layout.Lines[i-1].Origin.Y)
		}
	}
}

func TestLayoutParagraphSplit(t *testing.T) {
	e := newTestEngine(t)

	layout, err := e.Layout(plainText("first\nsecond", canvas.TextStyle{FontSize: 12}), 0, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(layout.Lines) != 2 {
		t.Fatalf("len(Lines) = %d, want 2", len(layout.Lines))
	}
}

func TestLayoutBlankLineKeepsHeight(t *testing.T) {
	e := newTestEngine(t)

	one, err := e.Layout(plainText("a\nb", canvas.TextStyle{FontSize: 12}), 0, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	two, err := e.Layout(plainText("a\n\nb", canvas.TextStyle{FontSize: 12}), 0, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	if two.Height <= one.Height {
		t.Errorf("blank line did not add height: %v vs %v", two.Height, one.Height)
	}
}

func TestLayoutOverflow(t *testing.T) {
	e := newTestEngine(t)
	txt := "the quick brown fox jumps over the lazy dog"

	layout, err := e.Layout(plainText(txt, canvas.TextStyle{FontSize: 12}), 80, 30, false)
	if err != nil {
		t.Fatal(err)
	}
	if layout.Overflow == "" {
		t.Fatal("expected overflow for a 30pt tall box")
	}
	if !strings.HasSuffix(txt, layout.Overflow) {
		t.Errorf("Overflow = %q, not a suffix of the source text", layout.Overflow)
	}
	if len(layout.Lines) == 0 {
		t.Error("no lines placed despite room for at least one")
	}
}

func TestLayoutTooSmallBoxOverflowsEverything(t *testing.T) {
	e := newTestEngine(t)
	txt := "does not fit"

	layout, err := e.Layout(plainText(txt, canvas.TextStyle{FontSize: 12}), 200, 2, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(layout.Lines) != 0 {
		t.Errorf("len(Lines) = %d, want 0", len(layout.Lines))
	}
	if layout.Overflow != txt {
		t.Errorf("Overflow = %q, want the full text", layout.Overflow)
	}
}

func TestLayoutAlignment(t *testing.T) {
	e := newTestEngine(t)
	const boxW = 300.0

	left, err := e.Layout(plainText("Hi", canvas.TextStyle{FontSize: 12}), boxW, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	center, err := e.Layout(plainText("Hi", canvas.TextStyle{FontSize: 12, Align: canvas.AlignCenter}), boxW, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	right, err := e.Layout(plainText("Hi", canvas.TextStyle{FontSize: 12, Align: canvas.AlignRight}), boxW, 0, false)
	if err != nil {
		t.Fatal(err)
	}

	lx := left.Lines[0].Origin.X
	cx := center.Lines[0].Origin.X
	rx := right.Lines[0].Origin.X
	w := left.Lines[0].Width
	if lx != 0 {
		t.Errorf("left origin = %v, want 0", lx)
	}
	if got, want := cx, (boxW-w)/2; !near(got, want) {
		t.Errorf("center origin = %v, want %v", got, want)
	}
	if got, want := rx, boxW-w; !near(got, want) {
		t.Errorf("right origin = %v, want %v", got, want)
	}
}

func TestLayoutTrackingWidensText(t *testing.T) {
	e := newTestEngine(t)

	plain, err := e.Layout(plainText("spacing", canvas.TextStyle{FontSize: 12}), 0, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	tracked, err := e.Layout(plainText("spacing", canvas.TextStyle{FontSize: 12, Tracking: 2}), 0, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	want := plain.Lines[0].Width + 2*float64(len("spacing"))
	if got := tracked.Lines[0].Width; !near(got, want) {
		t.Errorf("tracked width = %v, want %v", got, want)
	}
}

func TestLayoutSoftHyphensStrippedWithoutHyphenation(t *testing.T) {
	e := newTestEngine(t)

	with, err := e.Layout(plainText("hy­phen", canvas.TextStyle{FontSize: 12}), 0, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	without, err := e.Layout(plainText("hyphen", canvas.TextStyle{FontSize: 12}), 0, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	if !near(with.Lines[0].Width, without.Lines[0].Width) {
		t.Errorf("width with stripped soft hyphen = %v, want %v", with.Lines[0].Width, without.Lines[0].Width)
	}
}

func TestLayoutEmptyText(t *testing.T) {
	e := newTestEngine(t)

	layout, err := e.Layout(&canvas.FormattedText{}, 100, 100, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(layout.Lines) != 0 || layout.Overflow != "" {
		t.Errorf("empty text produced lines=%d overflow=%q", len(layout.Lines), layout.Overflow)
	}
}

func TestSplitParagraphs(t *testing.T) {
	tests := []struct {
		name string
		txt  string
		want []parRange
	}{
		{"single", "abc", []parRange{{0, 3}}},
		{"two", "ab\ncd", []parRange{{0, 2}, {3, 5}}},
		{"blank middle", "a\n\nb", []parRange{{0, 1}, {2, 2}, {3, 4}}},
		{"trailing newline", "ab\n", []parRange{{0, 2}}},
		{"empty", "", []parRange{{0, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitParagraphs([]rune(tt.txt))
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("paragraph %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNextTabStop(t *testing.T) {
	stops := []canvas.TabStop{{Position: 50}, {Position: 120}}
	tests := []struct {
		x    float64
		tabs []canvas.TabStop
		want float64
	}{
		{0, stops, 50},
		{50, stops, 120},
		{119, stops, 120},
		{120, stops, 140}, // past the last stop, the 28pt grid takes over
		{0, nil, 28},
		{28, nil, 56},
		{30, nil, 56},
	}
	for _, tt := range tests {
		if got := nextTabStop(tt.x, tt.tabs); got != tt.want {
			t.Errorf("nextTabStop(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func near(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 0.1
}

func TestLayoutAtMeasuredSize(t *testing.T) {
	e := newTestEngine(t)
	ft := plainText("Hello world", canvas.TextStyle{FontSize: 12.5})

	measured, err := e.Layout(ft, 0, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(measured.Lines) != 1 {
		t.Fatalf("unconstrained len(Lines) = %d, want 1", len(measured.Lines))
	}

	// Laying the same text into a box of its own measured size must not
	// wrap or truncate, fractional width included.
	relaid, err := e.Layout(ft, measured.Width, measured.Height, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(relaid.Lines) != 1 {
		t.Errorf("len(Lines) at measured size = %d, want 1", len(relaid.Lines))
	}
	if relaid.Overflow != "" {
		t.Errorf("Overflow = %q at measured size, want empty", relaid.Overflow)
	}
}
