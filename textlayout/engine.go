package textlayout

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-text/typesetting/fontscan"
	"github.com/go-text/typesetting/shaping"

	"github.com/inkdraw/inkdraw/canvas"
)

// nopHandler discards all log records. Enabled returns false so the
// caller skips message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// Engine shapes and wraps text. It implements canvas.TextLayoutEngine.
//
// Engine is safe for concurrent use: the shaper, segmenter, wrapper
// and font map all carry internal mutable state, so every operation is
// serialized behind one mutex.
type Engine struct {
	mu sync.Mutex

	shaper    shaping.HarfbuzzShaper
	segmenter shaping.Segmenter
	wrapper   shaping.LineWrapper
	fontMap   *fontscan.FontMap

	def      *faceEntry
	fallback *faceEntry

	installed      map[string]*faceEntry // normalized family -> session font
	installedPaths map[string]string     // font file path -> normalized family
	installedOrder []string
	installedRefs  map[string]int // font file path -> install count

	files    map[fileKey]*faceEntry
	outlines outlineCache

	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*engineConfig)

type engineConfig struct {
	systemFonts bool
	cacheDir    string
	logger      *slog.Logger
}

// WithSystemFonts enables resolving font family names against the
// fonts installed on the host. The fontscan index is cached under
// cacheDir; an empty cacheDir uses the user cache directory.
func WithSystemFonts(cacheDir string) Option {
	return func(c *engineConfig) {
		c.systemFonts = true
		c.cacheDir = cacheDir
	}
}

// WithLogger sets the logger. The default engine is silent.
func WithLogger(l *slog.Logger) Option {
	return func(c *engineConfig) {
		c.logger = l
	}
}

// New creates a text layout engine. The embedded Go Regular face is
// the default font and Latin Modern Roman the built-in fallback, so
// the engine works without any fonts installed on the host.
func New(opts ...Option) (*Engine, error) {
	var cfg engineConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(nopHandler{})
	}

	e := &Engine{
		installed:      make(map[string]*faceEntry),
		installedPaths: make(map[string]string),
		installedRefs:  make(map[string]int),
		files:          make(map[fileKey]*faceEntry),
		logger:         cfg.logger,
	}
	e.outlines.init()
	e.shaper.SetFontCacheSize(32)

	var err error
	if e.def, err = loadEmbedded(defaultFontData, canvas.DefaultFont); err != nil {
		return nil, err
	}
	if e.fallback, err = loadEmbedded(fallbackFontData, "Latin Modern Roman"); err != nil {
		return nil, err
	}

	if cfg.systemFonts {
		dir := cfg.cacheDir
		if dir == "" {
			if ucd, err := os.UserCacheDir(); err == nil {
				dir = filepath.Join(ucd, "inkdraw")
			}
		}
		e.fontMap = fontscan.NewFontMap(nil)
		if err := e.fontMap.UseSystemFonts(dir); err != nil {
			e.logger.Warn("loading system fonts failed", "error", err)
			e.fontMap = nil
		}
	}
	return e, nil
}

// SetLogger replaces the engine's logger. Pass nil to silence it.
func (e *Engine) SetLogger(l *slog.Logger) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if l == nil {
		l = slog.New(nopHandler{})
	}
	e.logger = l
}

// ResolveFont resolves a style's font to a concrete face and returns
// its identity and metrics, normalized to a font size of 1.
func (e *Engine) ResolveFont(style canvas.TextStyle) (canvas.FontInfo, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	fe, err := e.resolveStyleFace(style)
	if err != nil {
		return canvas.FontInfo{}, err
	}
	return fe.fontInfo(), nil
}

// ContainsCharacters reports whether the style's face has a glyph for
// every rune of txt. Only the primary face is consulted, not the
// fallback chain.
func (e *Engine) ContainsCharacters(style canvas.TextStyle, txt string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	fe, err := e.resolveStyleFace(style)
	if err != nil {
		return false, err
	}
	for _, r := range txt {
		if _, ok := fe.face.Cmap.Lookup(r); !ok {
			return false, nil
		}
	}
	return true, nil
}

var _ canvas.TextLayoutEngine = (*Engine)(nil)
