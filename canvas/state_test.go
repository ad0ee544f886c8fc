package canvas

import (
	"errors"
	"testing"
)

func TestStateStackSaveRestore(t *testing.T) {
	s := NewStateStack()
	s.Current().StrokeWidth = 5
	s.Save()
	s.Current().StrokeWidth = 9
	if err := s.Restore(); err != nil {
		t.Fatal(err)
	}
	if got := s.Current().StrokeWidth; got != 5 {
		t.Errorf("StrokeWidth after restore = %v, want 5", got)
	}
}

func TestStateStackUnbalancedRestore(t *testing.T) {
	s := NewStateStack()
	s.Current().StrokeWidth = 3
	err := s.Restore()
	var ur *UnbalancedRestoreError
	if !errors.As(err, &ur) {
		t.Fatalf("Restore on empty stack: err = %v, want UnbalancedRestoreError", err)
	}
	// The failed restore leaves the state untouched.
	if got := s.Current().StrokeWidth; got != 3 {
		t.Errorf("StrokeWidth after failed restore = %v, want 3", got)
	}
}

func TestGraphicsStateDefaults(t *testing.T) {
	g := NewGraphicsState()
	if !g.Fill.Set || g.Fill.Color != RGB(0, 0, 0) {
		t.Errorf("default fill = %+v, want opaque black", g.Fill)
	}
	if g.Stroke.Set {
		t.Errorf("default stroke = %+v, want unset", g.Stroke)
	}
	if g.StrokeWidth != 1 {
		t.Errorf("default stroke width = %v, want 1", g.StrokeWidth)
	}
	if g.MiterLimit != 10 {
		t.Errorf("default miter limit = %v, want 10", g.MiterLimit)
	}
	if g.Text.Font != DefaultFont || g.Text.FontSize != DefaultFontSize {
		t.Errorf("default font = %q/%v, want %q/%v", g.Text.Font, g.Text.FontSize, DefaultFont, DefaultFontSize)
	}
	if !g.CTM.IsIdentity() {
		t.Errorf("default CTM = %+v, want identity", g.CTM)
	}
}

func TestGraphicsStateCloneIsDeep(t *testing.T) {
	g := NewGraphicsState()
	g.LineDash = []float64{2, 4}
	g.Text.OpenTypeFeatures = map[string]bool{"liga": true}
	g.Text.Tabs = []TabStop{{Position: 10}}
	grad, err := NewLinearGradient(Pt(0, 0), Pt(100, 0), []Color{RGB(1, 0, 0), RGB(0, 0, 1)}, nil)
	if err != nil {
		t.Fatal(err)
	}
	g.Gradient = grad
	g.Shadow = &Shadow{Offset: Pt(2, -2), Blur: 4, Color: RGB(0, 0, 0)}
	g.Path = NewPath()
	g.Path.MoveTo(Pt(0, 0))

	c := g.Clone()
	c.LineDash[0] = 99
	c.Text.OpenTypeFeatures["liga"] = false
	c.Text.Tabs[0].Position = 99
	c.Gradient.Stops[0].Color = RGB(0, 1, 0)
	c.Shadow.Blur = 99
	if err := c.Path.LineTo(Pt(1, 1)); err != nil {
		t.Fatal(err)
	}

	if g.LineDash[0] != 2 {
		t.Error("clone shares LineDash with source")
	}
	if !g.Text.OpenTypeFeatures["liga"] {
		t.Error("clone shares OpenTypeFeatures with source")
	}
	if g.Text.Tabs[0].Position != 10 {
		t.Error("clone shares Tabs with source")
	}
	if g.Gradient.Stops[0].Color != RGB(1, 0, 0) {
		t.Error("clone shares gradient stops with source")
	}
	if g.Shadow.Blur != 4 {
		t.Error("clone shares shadow with source")
	}
	if len(g.Path.Elements()) != 1 {
		t.Error("clone shares path with source")
	}
}

func TestStateStackReset(t *testing.T) {
	s := NewStateStack()
	s.Save()
	s.Save()
	s.Current().Opacity = 0.5
	s.Reset()
	if s.Depth() != 0 {
		t.Errorf("Depth after reset = %d, want 0", s.Depth())
	}
	if s.Current().Opacity != 1 {
		t.Errorf("Opacity after reset = %v, want 1", s.Current().Opacity)
	}
}

func TestCMYKToRGB(t *testing.T) {
	tests := []struct {
		name string
		c    CMYK
		want Color
	}{
		{"black", CMYK{K: 1, A: 1}, RGBA(0, 0, 0, 1)},
		{"white", CMYK{A: 1}, RGBA(1, 1, 1, 1)},
		{"cyan", CMYK{C: 1, A: 1}, RGBA(0, 1, 1, 1)},
		{"half key", CMYK{K: 0.5, A: 1}, RGBA(0.5, 0.5, 0.5, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.c.RGB()
			if !nearEqual(got.R, tt.want.R) || !nearEqual(got.G, tt.want.G) ||
				!nearEqual(got.B, tt.want.B) || !nearEqual(got.A, tt.want.A) {
				t.Errorf("RGB() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestGradientValidation(t *testing.T) {
	if _, err := NewLinearGradient(Pt(0, 0), Pt(1, 0), []Color{RGB(1, 0, 0)}, nil); err == nil {
		t.Error("single color gradient did not fail")
	}
	if _, err := NewLinearGradient(Pt(0, 0), Pt(1, 0), []Color{RGB(1, 0, 0), RGB(0, 1, 0)}, []float64{0}); err == nil {
		t.Error("mismatched locations did not fail")
	}
	if _, err := NewLinearGradient(Pt(0, 0), Pt(1, 0), []Color{RGB(1, 0, 0), RGB(0, 1, 0)}, []float64{0, 1.5}); err == nil {
		t.Error("out of range location did not fail")
	}
	g, err := NewLinearGradient(Pt(0, 0), Pt(1, 0), []Color{RGB(1, 0, 0), RGB(0, 1, 0), RGB(0, 0, 1)}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := g.Stops[1].Location; !nearEqual(got, 0.5) {
		t.Errorf("even spacing: middle stop at %v, want 0.5", got)
	}
}
