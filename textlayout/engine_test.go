package textlayout

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/inkdraw/inkdraw/canvas"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return e
}

func TestResolveFontDefault(t *testing.T) {
	e := newTestEngine(t)

	info, err := e.ResolveFont(canvas.TextStyle{})
	if err != nil {
		t.Fatal(err)
	}
	if info.Family != canvas.DefaultFont {
		t.Errorf("default family = %q, want %q", info.Family, canvas.DefaultFont)
	}
	if info.Ascender <= 0 {
		t.Errorf("Ascender = %v, want > 0", info.Ascender)
	}
	if info.Descender >= 0 {
		t.Errorf("Descender = %v, want < 0", info.Descender)
	}
	if info.LineHeight < info.Ascender-info.Descender {
		t.Errorf("LineHeight = %v, want >= %v", info.LineHeight, info.Ascender-info.Descender)
	}
	if info.XHeight <= 0 || info.XHeight >= info.Ascender {
		t.Errorf("XHeight = %v, want between 0 and ascender %v", info.XHeight, info.Ascender)
	}
}

func TestResolveFontUnknownFamilyFallsBack(t *testing.T) {
	e := newTestEngine(t)

	info, err := e.ResolveFont(canvas.TextStyle{Font: "NoSuchFamily-12345"})
	if err != nil {
		t.Fatal(err)
	}
	if info.Family != canvas.DefaultFont {
		t.Errorf("family = %q, want fallback to %q", info.Family, canvas.DefaultFont)
	}
}

func TestResolveFontByName(t *testing.T) {
	e := newTestEngine(t)

	// Family matching ignores case and separators.
	for _, name := range []string{"Go-Regular", "go regular", "GoRegular"} {
		info, err := e.ResolveFont(canvas.TextStyle{Font: name})
		if err != nil {
			t.Fatal(err)
		}
		if info.Family != canvas.DefaultFont {
			t.Errorf("ResolveFont(%q) family = %q, want %q", name, info.Family, canvas.DefaultFont)
		}
	}
}

func TestResolveFontByPath(t *testing.T) {
	e := newTestEngine(t)
	path := writeTestFont(t)

	info, err := e.ResolveFont(canvas.TextStyle{Font: path})
	if err != nil {
		t.Fatal(err)
	}
	if info.Path != path {
		t.Errorf("Path = %q, want %q", info.Path, path)
	}
	if info.Family == "" {
		t.Error("Family is empty for a file font")
	}
}

func TestResolveFontMissingFile(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.ResolveFont(canvas.TextStyle{Font: "/no/such/font.ttf"})
	if err == nil {
		t.Fatal("resolving a missing font file did not fail")
	}
	var rerr *canvas.ResourceError
	if !errors.As(err, &rerr) {
		t.Errorf("error type = %T, want *canvas.ResourceError", err)
	}
}

func TestContainsCharacters(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		name string
		txt  string
		want bool
	}{
		{"ascii", "Hello, world!", true},
		{"latin accents", "déjà vu", true},
		{"cjk not in default face", "日本語", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.ContainsCharacters(canvas.TextStyle{}, tt.txt)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("ContainsCharacters(%q) = %v, want %v", tt.txt, got, tt.want)
			}
		})
	}
}

func TestInstallAndUninstallFont(t *testing.T) {
	e := newTestEngine(t)
	path := writeTestFont(t)

	family, err := e.InstallFont(path)
	if err != nil {
		t.Fatal(err)
	}
	if family == "" {
		t.Fatal("InstallFont returned an empty family name")
	}

	found := false
	for _, f := range e.InstalledFonts() {
		if f == family {
			found = true
		}
	}
	if !found {
		t.Errorf("InstalledFonts() = %v, missing %q", e.InstalledFonts(), family)
	}

	// The installed family resolves by name now.
	info, err := e.ResolveFont(canvas.TextStyle{Font: family})
	if err != nil {
		t.Fatal(err)
	}
	if info.Family != family {
		t.Errorf("resolved family = %q, want %q", info.Family, family)
	}

	if err := e.UninstallFont(path); err != nil {
		t.Fatal(err)
	}
	if len(e.InstalledFonts()) != 0 {
		t.Errorf("InstalledFonts() after uninstall = %v, want empty", e.InstalledFonts())
	}
	if err := e.UninstallFont(path); err == nil {
		t.Error("uninstalling twice did not fail")
	}
}

func TestIsFontPath(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Helvetica", false},
		{"Go-Regular", false},
		{"font.ttf", true},
		{"Some.OTF", true},
		{"dir/face", true},
		{"/abs/face.ttc", true},
	}
	for _, tt := range tests {
		if got := isFontPath(tt.name); got != tt.want {
			t.Errorf("isFontPath(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestNormalizeFamily(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Go-Regular", "goregular"},
		{"Latin Modern Roman", "latinmodernroman"},
		{"already", "already"},
	}
	for _, tt := range tests {
		if got := normalizeFamily(tt.in); got != tt.want {
			t.Errorf("normalizeFamily(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// writeTestFont copies the embedded default face into a temp file so
// file-based resolution has something real to load.
func writeTestFont(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test-face.ttf")
	if err := os.WriteFile(path, defaultFontData, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestUninstallFontCountsInstalls(t *testing.T) {
	e := newTestEngine(t)
	path := writeTestFont(t)

	family, err := e.InstallFont(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.InstallFont(path); err != nil {
		t.Fatal(err)
	}

	// One release: the other holder keeps the font available.
	if err := e.UninstallFont(path); err != nil {
		t.Fatal(err)
	}
	if got := e.InstalledFonts(); len(got) != 1 || got[0] != family {
		t.Fatalf("InstalledFonts after one release = %v, want [%s]", got, family)
	}

	if err := e.UninstallFont(path); err != nil {
		t.Fatal(err)
	}
	if got := e.InstalledFonts(); len(got) != 0 {
		t.Errorf("InstalledFonts after the last release = %v, want none", got)
	}
	if err := e.UninstallFont(path); err == nil {
		t.Error("uninstalling an already released font: want error")
	}
}
