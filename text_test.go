package inkdraw

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/inkdraw/inkdraw/canvas"
	"github.com/inkdraw/inkdraw/recording"
)

func TestSetFontReturnsFamily(t *testing.T) {
	d := newTestDrawing(t)
	family, err := d.SetFont(canvas.DefaultFont, WithFontSize(24))
	if err != nil {
		t.Fatal(err)
	}
	if family != canvas.DefaultFont {
		t.Errorf("family = %q, want %q", family, canvas.DefaultFont)
	}
	if got := d.val.State().Text.FontSize; got != 24 {
		t.Errorf("font size = %v, want 24", got)
	}
}

func TestSetFontUnknownFallsBack(t *testing.T) {
	d := newTestDrawing(t)
	family, err := d.SetFont("No Such Family")
	if err != nil {
		t.Fatal(err)
	}
	if family != canvas.DefaultFont {
		t.Errorf("family = %q, want fallback to %q", family, canvas.DefaultFont)
	}
}

func TestSetLanguage(t *testing.T) {
	d := newTestDrawing(t)
	for _, tag := range []string{"", "en", "nl-BE", "zh-Hant"} {
		if err := d.SetLanguage(tag); err != nil {
			t.Errorf("SetLanguage(%q): %v", tag, err)
		}
	}
	if err := d.SetLanguage("not a tag"); err == nil {
		t.Error("SetLanguage with an invalid tag: want error")
	}
}

func TestDecorationNames(t *testing.T) {
	d := newTestDrawing(t)
	for _, name := range []string{"none", "single", "thick", "double"} {
		if err := d.SetUnderline(name); err != nil {
			t.Errorf("SetUnderline(%q): %v", name, err)
		}
	}
	if err := d.SetUnderline("wavy"); err == nil {
		t.Error("SetUnderline(wavy): want error")
	}
	if err := d.SetStrikethrough("single"); err != nil {
		t.Errorf("SetStrikethrough: %v", err)
	}
}

func TestTextSize(t *testing.T) {
	d := newTestDrawing(t)
	if err := d.SetFontSize(12); err != nil {
		t.Fatal(err)
	}
	w, h, err := d.TextSize("Hello world", 0)
	if err != nil {
		t.Fatal(err)
	}
	if w <= 0 || h <= 0 {
		t.Fatalf("TextSize = %v x %v, want positive", w, h)
	}
	// Wrapping at half the natural width needs at least two lines.
	_, h2, err := d.TextSize("Hello world", w/2)
	if err != nil {
		t.Fatal(err)
	}
	if h2 <= h {
		t.Errorf("wrapped height = %v, want > %v", h2, h)
	}
}

func TestTextRecordsABox(t *testing.T) {
	d := newTestDrawing(t)
	if err := d.Size(200, 200); err != nil {
		t.Fatal(err)
	}
	if err := d.Text("anchor", Pt(20, 50)); err != nil {
		t.Fatal(err)
	}
	if got := d.rec.Len(); got == 0 {
		t.Fatal("nothing recorded")
	}
	// Empty text is a no-op, not an error.
	before := d.rec.Len()
	if err := d.Text("", Pt(0, 0)); err != nil {
		t.Fatal(err)
	}
	if got := d.rec.Len(); got != before {
		t.Errorf("empty text recorded %d commands", got-before)
	}
}

func TestTextBoxOverflow(t *testing.T) {
	d := newTestDrawing(t)
	if err := d.Size(400, 400); err != nil {
		t.Fatal(err)
	}
	long := strings.Repeat("overflowing words ", 50)
	rest, err := d.TextBox(long, MakeRect(10, 10, 100, 30))
	if err != nil {
		t.Fatal(err)
	}
	if rest == "" {
		t.Error("want overflow for a text far larger than its box")
	}
	if !strings.HasSuffix(strings.TrimSpace(long), strings.TrimSpace(rest)) {
		t.Errorf("overflow %q is not a tail of the source text", rest)
	}

	rest, err = d.TextBox("fits", MakeRect(10, 10, 300, 300))
	if err != nil {
		t.Fatal(err)
	}
	if rest != "" {
		t.Errorf("overflow = %q, want empty for fitting text", rest)
	}
}

func TestTextBoxAlignOverride(t *testing.T) {
	d := newTestDrawing(t)
	if _, err := d.TextBox("x", MakeRect(0, 0, 100, 100), "center"); err != nil {
		t.Fatal(err)
	}
	if _, err := d.TextBox("x", MakeRect(0, 0, 100, 100), "sideways"); err == nil {
		t.Error("invalid alignment: want error")
	}
}

func TestFormattedText(t *testing.T) {
	d := newTestDrawing(t)
	var ft FormattedText
	if err := d.AppendText(&ft, "red ", TextFill(1, 0, 0), TextFontSize(14)); err != nil {
		t.Fatal(err)
	}
	if err := d.AppendText(&ft, "plain"); err != nil {
		t.Fatal(err)
	}
	if len(ft.Runs) != 2 {
		t.Fatalf("runs = %d, want 2", len(ft.Runs))
	}
	if !ft.Runs[0].Fill.Set || ft.Runs[0].Style.FontSize != 14 {
		t.Errorf("first run = %+v, want red 14pt", ft.Runs[0])
	}
	if ft.Runs[1].Fill.Set {
		t.Error("second run has an explicit fill, want state paint")
	}
	if _, err := d.DrawFormattedText(&ft, MakeRect(0, 0, 200, 200)); err != nil {
		t.Fatal(err)
	}
}

func TestTextOptionErrors(t *testing.T) {
	d := newTestDrawing(t)
	var ft FormattedText
	if err := d.AppendText(&ft, "x", TextFill(3)); err == nil {
		t.Error("TextFill(3): want error")
	}
	if err := d.AppendText(&ft, "x", TextUnderline("wavy")); err == nil {
		t.Error("TextUnderline(wavy): want error")
	}
	if len(ft.Runs) != 0 {
		t.Errorf("failed appends added %d runs", len(ft.Runs))
	}
}

func TestFontMetrics(t *testing.T) {
	d := newTestDrawing(t)
	if err := d.SetFontSize(20); err != nil {
		t.Fatal(err)
	}
	asc, err := d.FontAscender()
	if err != nil {
		t.Fatal(err)
	}
	desc, err := d.FontDescender()
	if err != nil {
		t.Fatal(err)
	}
	if asc <= 0 {
		t.Errorf("ascender = %v, want > 0", asc)
	}
	if desc >= 0 {
		t.Errorf("descender = %v, want < 0", desc)
	}
	lh, err := d.FontLineHeight()
	if err != nil {
		t.Fatal(err)
	}
	if lh < asc-desc-1e-6 {
		t.Errorf("line height = %v, want >= %v", lh, asc-desc)
	}

	// An explicit line height wins over the font-derived one.
	if err := d.SetLineHeight(99); err != nil {
		t.Fatal(err)
	}
	if lh, err = d.FontLineHeight(); err != nil || lh != 99 {
		t.Errorf("FontLineHeight = %v, %v, want 99", lh, err)
	}
}

func TestFontContainsCharacters(t *testing.T) {
	d := newTestDrawing(t)
	ok, err := d.FontContainsCharacters("Hello")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("default face should cover ASCII")
	}
}

func TestInstallFontMissingFile(t *testing.T) {
	d := newTestDrawing(t)
	if _, err := d.InstallFont("/no/such/font.ttf"); err == nil {
		t.Error("InstallFont with a missing file: want error")
	}
	if got := d.InstalledFonts(); len(got) != 0 {
		t.Errorf("InstalledFonts = %v, want empty", got)
	}
}

func TestTextReplaysWithinItsBox(t *testing.T) {
	d := newTestDrawing(t)
	if err := d.SetFontSize(12.5); err != nil {
		t.Fatal(err)
	}
	if err := d.Text("Hello world", Pt(20, 100)); err != nil {
		t.Fatal(err)
	}

	var tb recording.TextBoxCommand
	found := false
	for _, cmd := range d.Pages()[0].Commands() {
		if c, ok := cmd.(recording.TextBoxCommand); ok {
			tb = c
			found = true
		}
	}
	if !found {
		t.Fatal("no text box command recorded")
	}

	// Replaying lays the text into the recorded rect again; the
	// measured box must hold the whole single line.
	layout, err := d.engine.Layout(tb.Text, tb.Rect.W, tb.Rect.H, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(layout.Lines) != 1 {
		t.Errorf("len(Lines) in the recorded rect = %d, want 1", len(layout.Lines))
	}
	if layout.Overflow != "" {
		t.Errorf("Overflow = %q in the recorded rect, want empty", layout.Overflow)
	}
}

func TestRecordedFormattedTextIsIsolated(t *testing.T) {
	d := newTestDrawing(t)
	var ft FormattedText
	if err := d.AppendText(&ft, "before"); err != nil {
		t.Fatal(err)
	}
	if _, err := d.DrawFormattedText(&ft, MakeRect(0, 0, 200, 200)); err != nil {
		t.Fatal(err)
	}
	if err := d.AppendText(&ft, " after"); err != nil {
		t.Fatal(err)
	}

	for _, cmd := range d.Pages()[0].Commands() {
		if tb, ok := cmd.(recording.TextBoxCommand); ok {
			if got := len(tb.Text.Runs); got != 1 {
				t.Errorf("recorded runs = %d after mutating the source, want 1", got)
			}
		}
	}
}

func TestExportReleasesReplayFonts(t *testing.T) {
	fontPath := filepath.Join(t.TempDir(), "face.ttf")
	if err := os.WriteFile(fontPath, goregular.TTF, 0o644); err != nil {
		t.Fatal(err)
	}

	d := newTestDrawing(t)
	if _, err := d.InstallFont(fontPath); err != nil {
		t.Fatal(err)
	}
	if err := d.Text("hi", Pt(10, 10)); err != nil {
		t.Fatal(err)
	}
	d.EndDrawing()
	if got := d.InstalledFonts(); len(got) != 0 {
		t.Fatalf("fonts after EndDrawing = %v, want none", got)
	}

	// Replaying re-installs the font for the export's duration only.
	data, err := d.PDFData()
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Fatal("empty pdf data")
	}
	if got := d.InstalledFonts(); len(got) != 0 {
		t.Errorf("fonts after export = %v, want none", got)
	}
}
