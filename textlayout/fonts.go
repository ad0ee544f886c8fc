package textlayout

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-fonts/latin-modern/lmroman10regular"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/fontscan"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/inkdraw/inkdraw/canvas"
)

// faceEntry is a resolved font face plus the identity and metrics the
// rest of the engine needs. Entries are cached and shared; all access
// happens under the engine mutex.
type faceEntry struct {
	face   *font.Face
	family string
	path   string
	index  int

	info *canvas.FontInfo // lazily computed, normalized to size 1
}

// fontInfo returns the face metrics normalized to a font size of 1.
func (fe *faceEntry) fontInfo() canvas.FontInfo {
	if fe.info == nil {
		f := fe.face
		upem := float64(f.Upem())
		ext, _ := f.FontHExtents()
		asc := float64(ext.Ascender) / upem
		desc := float64(ext.Descender) / upem
		gap := float64(ext.LineGap) / upem
		fe.info = &canvas.FontInfo{
			Family:     fe.family,
			Path:       fe.path,
			Index:      fe.index,
			Ascender:   asc,
			Descender:  desc,
			XHeight:    float64(f.LineMetric(font.XHeight)) / upem,
			CapHeight:  float64(f.LineMetric(font.CapHeight)) / upem,
			LineHeight: asc - desc + gap,
		}
	}
	return *fe.info
}

// fileKey identifies a parsed font file. The modification time is part
// of the key so an overwritten file is reparsed instead of served
// stale from the cache.
type fileKey struct {
	path  string
	index int
	mtime int64
}

// fontFileExts are the extensions treated as font file paths when a
// font name is resolved.
var fontFileExts = map[string]bool{
	".ttf": true,
	".otf": true,
	".ttc": true,
	".otc": true,
}

// isFontPath reports whether name refers to a font file rather than a
// font family name.
func isFontPath(name string) bool {
	if strings.ContainsRune(name, os.PathSeparator) || strings.ContainsRune(name, '/') {
		return true
	}
	return fontFileExts[strings.ToLower(filepath.Ext(name))]
}

// normalizeFamily folds a family name for case- and
// separator-insensitive matching, the way fontscan matches families.
func normalizeFamily(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch r {
		case ' ', '-', '_', '.':
			continue
		}
		b.WriteRune(unicodeLower(r))
	}
	return b.String()
}

func unicodeLower(r rune) rune {
	if 'A' <= r && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// parseFace parses one face out of a font file. Plain TTF/OTF data
// ignores the index; collections select the face at the index.
func parseFace(data []byte, index int) (*font.Face, error) {
	if index > 0 {
		faces, err := font.ParseTTC(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		if index >= len(faces) {
			return nil, fmt.Errorf("collection has %d faces, index %d out of range", len(faces), index)
		}
		return faces[index], nil
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err == nil {
		return face, nil
	}
	if faces, errc := font.ParseTTC(bytes.NewReader(data)); errc == nil && len(faces) > 0 {
		return faces[0], nil
	}
	return nil, err
}

// loadEmbedded parses a compiled-in font and fixes its canonical
// family name.
func loadEmbedded(data []byte, family string) (*faceEntry, error) {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("textlayout: parsing embedded font %s: %w", family, err)
	}
	return &faceEntry{face: face, family: family}, nil
}

// loadFile loads and caches a font file. The cache key includes the
// file's modification time.
func (e *Engine) loadFile(path string, index int) (*faceEntry, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, &canvas.ResourceError{Op: "font", Path: path, Err: err}
	}
	key := fileKey{path: path, index: index, mtime: st.ModTime().UnixNano()}
	if fe, ok := e.files[key]; ok {
		return fe, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &canvas.ResourceError{Op: "font", Path: path, Err: err}
	}
	face, err := parseFace(data, index)
	if err != nil {
		return nil, &canvas.ResourceError{Op: "font", Path: path, Err: err}
	}
	fe := &faceEntry{
		face:   face,
		family: face.Describe().Family,
		path:   path,
		index:  index,
	}
	e.files[key] = fe
	return fe, nil
}

// resolveStyleFace resolves a style's font to a face entry. Unknown
// family names fall back to the default face with a warning; unreadable
// font files are an error.
func (e *Engine) resolveStyleFace(style canvas.TextStyle) (*faceEntry, error) {
	name := style.Font
	if name == "" {
		return e.def, nil
	}
	if isFontPath(name) {
		return e.loadFile(name, style.FontIndex)
	}
	if fe := e.lookupFamily(name); fe != nil {
		return fe, nil
	}
	e.logger.Warn("font is not installed, using the default font",
		"font", name, "default", e.def.family)
	return e.def, nil
}

// lookupFamily finds a face for a family name: session-installed fonts
// first, then the embedded faces, then the system font map.
func (e *Engine) lookupFamily(name string) *faceEntry {
	norm := normalizeFamily(name)
	if fe, ok := e.installed[norm]; ok {
		return fe
	}
	for _, fe := range []*faceEntry{e.def, e.fallback} {
		if normalizeFamily(fe.family) == norm {
			return fe
		}
	}
	if e.fontMap == nil {
		return nil
	}
	e.fontMap.SetQuery(fontscan.Query{Families: []string{name}})
	face := e.fontMap.ResolveFace('A')
	if face == nil {
		return nil
	}
	desc := face.Describe()
	got := normalizeFamily(desc.Family)
	// ResolveFace substitutes a default when the family is unknown, so
	// only accept faces whose family actually matches the request.
	// PostScript-style names ("Helvetica-Bold") match by prefix.
	if got != norm && !strings.HasPrefix(norm, got) {
		return nil
	}
	return &faceEntry{face: face, family: desc.Family}
}

// resolveFallbackFace resolves the style's fallback font, or nil when
// the style has none or it cannot be resolved.
func (e *Engine) resolveFallbackFace(style canvas.TextStyle) *faceEntry {
	if style.Fallback == "" {
		return nil
	}
	fe, err := e.resolveStyleFace(canvas.TextStyle{
		Font:      style.Fallback,
		FontIndex: style.FallbackIndex,
	})
	if err != nil {
		e.logger.Warn("fallback font could not be loaded", "font", style.Fallback, "error", err)
		return nil
	}
	return fe
}

// runeResolver picks a face per rune during segmentation. Faces are
// tried in priority order; the system font map covers anything they
// miss, and the last face is the answer of last resort.
type runeResolver struct {
	faces   []*font.Face
	fontMap *fontscan.FontMap
}

func (rr *runeResolver) ResolveFace(r rune) *font.Face {
	for _, f := range rr.faces {
		if _, ok := f.Cmap.Lookup(r); ok {
			return f
		}
	}
	if rr.fontMap != nil {
		if f := rr.fontMap.ResolveFace(r); f != nil {
			if _, ok := f.Cmap.Lookup(r); ok {
				return f
			}
		}
	}
	return rr.faces[len(rr.faces)-1]
}

// resolverFor builds the per-span rune resolver: primary face, the
// style's fallback, session-installed fonts, then the built-in
// fallback face.
func (e *Engine) resolverFor(primary, styleFallback *faceEntry) *runeResolver {
	faces := make([]*font.Face, 0, 3+len(e.installed))
	faces = append(faces, primary.face)
	if styleFallback != nil {
		faces = append(faces, styleFallback.face)
	}
	for _, norm := range e.installedOrder {
		if fe, ok := e.installed[norm]; ok {
			faces = append(faces, fe.face)
		}
	}
	faces = append(faces, e.fallback.face)
	return &runeResolver{faces: faces, fontMap: e.fontMap}
}

// InstallFont registers a font file for the session and returns its
// family name.
func (e *Engine) InstallFont(path string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	fe, err := e.loadFile(path, 0)
	if err != nil {
		return "", err
	}
	norm := normalizeFamily(fe.family)
	if _, ok := e.installed[norm]; !ok {
		e.installedOrder = append(e.installedOrder, norm)
	}
	e.installed[norm] = fe
	e.installedPaths[path] = norm
	e.installedRefs[path]++
	return fe.family, nil
}

// UninstallFont undoes one InstallFont of the path. Installs are
// counted, so a font installed by both a session and a replay of its
// recording stays available until the last holder releases it.
func (e *Engine) UninstallFont(path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	norm, ok := e.installedPaths[path]
	if !ok {
		return canvas.Usagef("uninstallFont", "font %q was not installed", path)
	}
	if e.installedRefs[path] > 1 {
		e.installedRefs[path]--
		return nil
	}
	delete(e.installedRefs, path)
	delete(e.installedPaths, path)
	delete(e.installed, norm)
	for i, n := range e.installedOrder {
		if n == norm {
			e.installedOrder = append(e.installedOrder[:i], e.installedOrder[i+1:]...)
			break
		}
	}
	return nil
}

// InstalledFonts lists the family names added by InstallFont, sorted.
func (e *Engine) InstalledFonts() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	families := make([]string, 0, len(e.installed))
	for _, fe := range e.installed {
		families = append(families, fe.family)
	}
	sort.Strings(families)
	return families
}

// Embedded font data for the default and built-in fallback faces.
var (
	defaultFontData  = goregular.TTF
	fallbackFontData = lmroman10regular.TTF
)
