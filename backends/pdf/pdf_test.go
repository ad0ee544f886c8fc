package pdf

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/inkdraw/inkdraw/canvas"
)

func TestDataProducesPDF(t *testing.T) {
	b := New(nil)
	if err := b.NewPage(200, 100); err != nil {
		t.Fatal(err)
	}
	if err := b.SetFill(&canvas.Color{R: 1, A: 1}); err != nil {
		t.Fatal(err)
	}
	if err := b.DrawRect(canvas.MakeRect(10, 10, 50, 50)); err != nil {
		t.Fatal(err)
	}

	data, err := b.Data()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("output does not start with a PDF header: %q", data[:min(len(data), 8)])
	}
}

func TestMultiplePages(t *testing.T) {
	b := New(nil)
	for i := 0; i < 3; i++ {
		if err := b.NewPage(100, 100); err != nil {
			t.Fatal(err)
		}
	}
	if got := b.painter.pdf.PageNo(); got != 3 {
		t.Errorf("PageNo() = %d, want 3", got)
	}
}

func TestSaveTo(t *testing.T) {
	b := New(nil)
	if err := b.NewPage(100, 100); err != nil {
		t.Fatal(err)
	}
	if err := b.DrawRect(canvas.MakeRect(0, 0, 100, 100)); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "out.pdf")
	if err := b.SaveTo(path); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("saved PDF is empty")
	}
}

func TestSaveToNoPages(t *testing.T) {
	b := New(nil)
	if err := b.SaveTo(filepath.Join(t.TempDir(), "out.pdf")); err == nil {
		t.Error("saving with no pages did not fail")
	}
}

func TestSetOptionRejectsEverything(t *testing.T) {
	b := New(nil)
	if err := b.SetOption("imageResolution", 144); err == nil {
		t.Error("SetOption did not fail for a raster-only option")
	}
	if got := b.OptionNames(); len(got) != 0 {
		t.Errorf("OptionNames() = %v, want none", got)
	}
}

func TestLinksDoNotFail(t *testing.T) {
	b := New(nil)
	if err := b.NewPage(100, 100); err != nil {
		t.Fatal(err)
	}
	if err := b.LinkURL("https://example.org", canvas.MakeRect(0, 0, 50, 20)); err != nil {
		t.Fatal(err)
	}
	// A rect may reference a destination defined later.
	if err := b.LinkRect("section", canvas.MakeRect(0, 40, 50, 20)); err != nil {
		t.Fatal(err)
	}
	if err := b.NewPage(100, 100); err != nil {
		t.Fatal(err)
	}
	if err := b.LinkDestination("section", canvas.Pt(0, 90)); err != nil {
		t.Fatal(err)
	}

	data, err := b.Data()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("example.org")) {
		t.Error("URL annotation missing from the document")
	}
}

func TestClipBalancedAcrossStates(t *testing.T) {
	b := New(nil)
	if err := b.NewPage(100, 100); err != nil {
		t.Fatal(err)
	}
	clip := &canvas.Path{}
	clip.Rect(canvas.MakeRect(0, 0, 50, 100))

	if err := b.Save(); err != nil {
		t.Fatal(err)
	}
	if err := b.ClipPath(clip); err != nil {
		t.Fatal(err)
	}
	if err := b.DrawRect(canvas.MakeRect(0, 0, 100, 100)); err != nil {
		t.Fatal(err)
	}
	if err := b.Restore(); err != nil {
		t.Fatal(err)
	}
	if b.painter.clipDepth != 0 {
		t.Errorf("clipDepth after Restore = %d, want 0", b.painter.clipDepth)
	}
	if _, err := b.Data(); err != nil {
		t.Fatal(err)
	}
}
