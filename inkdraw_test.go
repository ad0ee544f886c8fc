package inkdraw

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/inkdraw/inkdraw/canvas"
	"github.com/inkdraw/inkdraw/recording"
)

func newTestDrawing(t *testing.T) *Drawing {
	t.Helper()
	d, err := New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(d.EndDrawing)
	return d
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPaperSize(t *testing.T) {
	tests := []struct {
		name    string
		w, h    float64
		wantErr bool
	}{
		{name: "A4", w: 595, h: 842},
		{name: "A4Landscape", w: 842, h: 595},
		{name: "Letter", w: 612, h: 792},
		{name: "TabloidLandscape", w: 1224, h: 792},
		{name: "B5", wantErr: true},
		{name: "", wantErr: true},
	}
	for _, tt := range tests {
		w, h, err := PaperSize(tt.name)
		if tt.wantErr {
			if err == nil {
				t.Errorf("PaperSize(%q): want error, got %v x %v", tt.name, w, h)
			}
			continue
		}
		if err != nil {
			t.Errorf("PaperSize(%q): %v", tt.name, err)
			continue
		}
		if w != tt.w || h != tt.h {
			t.Errorf("PaperSize(%q) = %v x %v, want %v x %v", tt.name, w, h, tt.w, tt.h)
		}
	}
}

func TestSizeAfterDrawingBegan(t *testing.T) {
	d := newTestDrawing(t)
	if err := d.Size(400, 300); err != nil {
		t.Fatal(err)
	}
	if w, h := d.Width(), d.Height(); w != 400 || h != 300 {
		t.Errorf("size = %v x %v, want 400 x 300", w, h)
	}
	if err := d.Rect(0, 0, 10, 10); err != nil {
		t.Fatal(err)
	}
	err := d.Size(500, 500)
	var uerr *canvas.UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("Size after drawing = %v, want UsageError", err)
	}
}

func TestSizeRejectsNonPositive(t *testing.T) {
	d := newTestDrawing(t)
	if err := d.Size(0, 100); err == nil {
		t.Error("Size(0, 100): want error")
	}
	if err := d.Size(100, -1); err == nil {
		t.Error("Size(100, -1): want error")
	}
}

func TestSyntheticFirstPage(t *testing.T) {
	d := newTestDrawing(t)
	if err := d.Size(300, 200); err != nil {
		t.Fatal(err)
	}
	if err := d.Rect(10, 10, 50, 50); err != nil {
		t.Fatal(err)
	}
	if got := d.PageCount(); got != 1 {
		t.Fatalf("PageCount = %d, want 1", got)
	}
	w, h := d.Pages()[0].Size()
	if w != 300 || h != 200 {
		t.Errorf("first page = %v x %v, want 300 x 200", w, h)
	}
	if err := d.NewPage(100, 100); err != nil {
		t.Fatal(err)
	}
	if got := d.PageCount(); got != 2 {
		t.Errorf("PageCount = %d, want 2", got)
	}
	if w, h := d.Width(), d.Height(); w != 100 || h != 100 {
		t.Errorf("current page = %v x %v, want 100 x 100", w, h)
	}
}

func TestValidationFailureRecordsNothing(t *testing.T) {
	d := newTestDrawing(t)
	tests := []struct {
		name string
		call func() error
	}{
		{"fill component out of range", func() error { return d.SetFill(2) }},
		{"moveTo without a path", func() error { return d.MoveTo(Pt(0, 0)) }},
		{"negative dash length", func() error { return d.SetLineDash(-1) }},
		{"unknown blend mode", func() error { return d.SetBlendMode("glow") }},
		{"zero page", func() error { return d.NewPage(0, 0) }},
		{"non-positive frame duration", func() error { return d.FrameDuration(0) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); err == nil {
				t.Fatal("want error")
			}
			if got := d.rec.Len(); got != 0 {
				t.Errorf("recorded %d commands after a failed call", got)
			}
		})
	}
}

func TestUnbalancedRestore(t *testing.T) {
	d := newTestDrawing(t)
	if err := d.NewPage(100, 100); err != nil {
		t.Fatal(err)
	}
	err := d.Restore()
	var rerr *canvas.UnbalancedRestoreError
	if !errors.As(err, &rerr) {
		t.Fatalf("Restore without Save = %v, want UnbalancedRestoreError", err)
	}
}

func TestWithSavedState(t *testing.T) {
	d := newTestDrawing(t)
	if err := d.NewPage(100, 100); err != nil {
		t.Fatal(err)
	}
	if err := d.SetFill(1, 0, 0); err != nil {
		t.Fatal(err)
	}
	err := d.WithSavedState(func() error {
		if err := d.SetFill(0, 1, 0); err != nil {
			return err
		}
		if got := d.val.State().Fill.Color; !approx(got.G, 1) {
			t.Errorf("inner fill = %+v, want green", got)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := d.val.State().Fill.Color; !approx(got.R, 1) || !approx(got.G, 0) {
		t.Errorf("fill after restore = %+v, want red", got)
	}
}

func TestWithSavedStateRestoresOnError(t *testing.T) {
	d := newTestDrawing(t)
	if err := d.NewPage(100, 100); err != nil {
		t.Fatal(err)
	}
	sentinel := errors.New("boom")
	if err := d.WithSavedState(func() error { return sentinel }); !errors.Is(err, sentinel) {
		t.Fatalf("err = %v, want %v", err, sentinel)
	}
	if got := d.val.StackDepth(); got != 0 {
		t.Errorf("stack depth = %d after WithSavedState, want 0", got)
	}
}

func TestCMYKFillKeepsBothRepresentations(t *testing.T) {
	d := newTestDrawing(t)
	if err := d.SetCMYKFill(1, 0, 0, 0); err != nil {
		t.Fatal(err)
	}
	fill := d.val.State().Fill
	if !fill.Set {
		t.Fatal("fill not set")
	}
	if fill.CMYK == nil || fill.CMYK.C != 1 {
		t.Errorf("fill.CMYK = %+v, want cyan kept", fill.CMYK)
	}
	if !approx(fill.Color.R, 0) || !approx(fill.Color.G, 1) || !approx(fill.Color.B, 1) {
		t.Errorf("fill.Color = %+v, want RGB conversion of cyan", fill.Color)
	}
}

func TestParseColorConventions(t *testing.T) {
	tests := []struct {
		comps   []float64
		want    Color
		wantErr bool
	}{
		{comps: []float64{0.5}, want: Color{R: 0.5, G: 0.5, B: 0.5, A: 1}},
		{comps: []float64{0.5, 0.25}, want: Color{R: 0.5, G: 0.5, B: 0.5, A: 0.25}},
		{comps: []float64{1, 0, 0}, want: Color{R: 1, A: 1}},
		{comps: []float64{1, 0, 0, 0.5}, want: Color{R: 1, A: 0.5}},
		{comps: nil, wantErr: true},
		{comps: []float64{1, 2, 3, 4, 5}, wantErr: true},
		{comps: []float64{1.5}, wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseColor("test", tt.comps)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseColor(%v): want error", tt.comps)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseColor(%v): %v", tt.comps, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseColor(%v) = %+v, want %+v", tt.comps, got, tt.want)
		}
	}
}

func TestRotateAroundCenter(t *testing.T) {
	d := newTestDrawing(t)
	if err := d.NewPage(200, 200); err != nil {
		t.Fatal(err)
	}
	if err := d.Rotate(90, Pt(100, 100)); err != nil {
		t.Fatal(err)
	}
	ctm := d.val.State().CTM

	// The center stays fixed.
	if got := ctm.TransformPoint(Pt(100, 100)); !approx(got.X, 100) || !approx(got.Y, 100) {
		t.Errorf("center moved to %+v", got)
	}
	// A point to the right of the center rotates above it.
	if got := ctm.TransformPoint(Pt(200, 100)); !approx(got.X, 100) || !approx(got.Y, 200) {
		t.Errorf("(200,100) rotated to %+v, want (100, 200)", got)
	}
}

func TestScaleUniformWithSingleFactor(t *testing.T) {
	d := newTestDrawing(t)
	if err := d.NewPage(100, 100); err != nil {
		t.Fatal(err)
	}
	if err := d.Scale(2, 0); err != nil {
		t.Fatal(err)
	}
	got := d.val.State().CTM.TransformPoint(Pt(3, 4))
	if !approx(got.X, 6) || !approx(got.Y, 8) {
		t.Errorf("scaled point = %+v, want (6, 8)", got)
	}
}

func TestTransformRejectsMultipleCenters(t *testing.T) {
	d := newTestDrawing(t)
	if err := d.NewPage(100, 100); err != nil {
		t.Fatal(err)
	}
	if err := d.Rotate(45, Pt(0, 0), Pt(1, 1)); err == nil {
		t.Error("Rotate with two centers: want error")
	}
}

func TestSaveImagePNG(t *testing.T) {
	d := newTestDrawing(t)
	if err := d.Size(64, 64); err != nil {
		t.Fatal(err)
	}
	if err := d.SetFill(1, 0, 0); err != nil {
		t.Fatal(err)
	}
	if err := d.Rect(0, 0, 64, 64); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "out.png")
	if err := d.SaveImage(path); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 64 {
		t.Errorf("image size = %v, want 64x64", b)
	}
	r, _, _, a := img.At(32, 32).RGBA()
	if r == 0 || a == 0 {
		t.Errorf("center pixel = %v, want red", img.At(32, 32))
	}
}

func TestSaveImageDropsUnknownOptions(t *testing.T) {
	d := newTestDrawing(t)
	if err := d.Rect(0, 0, 10, 10); err != nil {
		t.Fatal(err)
	}
	// jpegQuality means nothing to the PDF backend; it is dropped with
	// a warning rather than failing the export.
	path := filepath.Join(t.TempDir(), "out.pdf")
	if err := d.SaveImage(path, JPEGQuality(50)); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatal(err)
	}
}

func TestSaveImageErrors(t *testing.T) {
	d := newTestDrawing(t)
	if err := d.Rect(0, 0, 10, 10); err != nil {
		t.Fatal(err)
	}
	if err := d.SaveImage("out"); err == nil {
		t.Error("path without extension: want error")
	}
	if err := d.SaveImage(filepath.Join(t.TempDir(), "missing", "out.png")); err == nil {
		t.Error("missing parent directory: want error")
	}
	if err := d.SaveImage(filepath.Join(t.TempDir(), "out.docx")); err == nil {
		t.Error("unknown format: want error")
	}
}

func TestPDFData(t *testing.T) {
	d := newTestDrawing(t)
	if err := d.Size(200, 200); err != nil {
		t.Fatal(err)
	}
	if err := d.Oval(50, 50, 100, 100); err != nil {
		t.Fatal(err)
	}
	data, err := d.PDFData()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("PDFData does not start with a PDF header: %q", data[:min(16, len(data))])
	}
}

func TestReset(t *testing.T) {
	d := newTestDrawing(t)
	if err := d.Rect(0, 0, 10, 10); err != nil {
		t.Fatal(err)
	}
	if err := d.SetFill(0, 0, 1); err != nil {
		t.Fatal(err)
	}
	d.Reset()
	if got := d.PageCount(); got != 0 {
		t.Errorf("PageCount after Reset = %d, want 0", got)
	}
	if got := d.val.State().Fill.Color; approx(got.B, 1) {
		t.Error("fill survived Reset")
	}
}

func TestImageSizeMissingFile(t *testing.T) {
	d := newTestDrawing(t)
	_, _, err := d.ImageSize(filepath.Join(t.TempDir(), "nope.png"))
	var rerr *canvas.ResourceError
	if !errors.As(err, &rerr) {
		t.Fatalf("err = %v, want ResourceError", err)
	}
}

func writeTestPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestImagePlacement(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dot.png")
	writeTestPNG(t, path, 8, 6)

	d := newTestDrawing(t)
	w, h, err := d.ImageSize(path)
	if err != nil {
		t.Fatal(err)
	}
	if w != 8 || h != 6 {
		t.Errorf("ImageSize = %v x %v, want 8 x 6", w, h)
	}
	if err := d.Image(path, Pt(10, 10), WithAlpha(0.5)); err != nil {
		t.Fatal(err)
	}
	if got := d.PageCount(); got != 1 {
		t.Errorf("PageCount = %d, want 1", got)
	}
	// The decode is cached, so a second placement must not re-open the
	// file.
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if err := d.Image(path, Pt(20, 20)); err != nil {
		t.Errorf("cached placement failed: %v", err)
	}
}

func TestLineDashKeepsOffset(t *testing.T) {
	d := newTestDrawing(t)
	if err := d.SetLineDashOffset(3); err != nil {
		t.Fatal(err)
	}
	if err := d.SetLineDash(4, 2); err != nil {
		t.Fatal(err)
	}
	s := d.val.State()
	if s.DashOffset != 3 {
		t.Errorf("DashOffset = %v, want 3", s.DashOffset)
	}
	if len(s.LineDash) != 2 || s.LineDash[0] != 4 || s.LineDash[1] != 2 {
		t.Errorf("LineDash = %v, want [4 2]", s.LineDash)
	}
	if err := d.SetLineDash(); err != nil {
		t.Fatal(err)
	}
	if s := d.val.State(); s.LineDash != nil || s.DashOffset != 3 {
		t.Errorf("after clearing: LineDash = %v DashOffset = %v, want nil and 3", s.LineDash, s.DashOffset)
	}
}

func TestRecordedPathIsIsolated(t *testing.T) {
	d := newTestDrawing(t)
	p := NewPath()
	p.Rect(MakeRect(0, 0, 10, 10))
	if err := d.DrawPath(p); err != nil {
		t.Fatal(err)
	}
	want := len(p.Elements())

	// Mutating the caller's path must not change what was recorded.
	p.Rect(MakeRect(20, 20, 10, 10))
	for _, cmd := range d.Pages()[0].Commands() {
		if dp, ok := cmd.(recording.DrawPathCommand); ok {
			if got := len(dp.Path.Elements()); got != want {
				t.Errorf("recorded path has %d elements after mutation, want %d", got, want)
			}
		}
	}
}
