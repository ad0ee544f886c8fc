package inkdraw

import (
	"image"

	"github.com/inkdraw/inkdraw/canvas"
	"github.com/inkdraw/inkdraw/recording"
	"github.com/inkdraw/inkdraw/textlayout"
)

// Convenience aliases so scripts only import this package.
type (
	// Point is a location in page coordinates (points, y-up).
	Point = canvas.Point
	// Rect is an axis-aligned rectangle anchored at its lower-left.
	Rect = canvas.Rect
	// Path is a standalone vector path.
	Path = canvas.Path
	// Matrix is a 2D affine transform.
	Matrix = canvas.Matrix
	// FormattedText is styled text built from runs.
	FormattedText = canvas.FormattedText
	// TabStop positions a tab along a line.
	TabStop = canvas.TabStop
)

// Pt is shorthand for a Point.
func Pt(x, y float64) Point { return canvas.Pt(x, y) }

// MakeRect is shorthand for a Rect.
func MakeRect(x, y, w, h float64) Rect { return canvas.MakeRect(x, y, w, h) }

// NewPath returns an empty standalone path.
func NewPath() *Path { return canvas.NewPath() }

// Drawing is one recorded drawing session. Every public call validates
// against a non-rendering canvas first and is appended to the command
// log only when it succeeds, so the log replays cleanly into any
// backend.
//
// A Drawing is not safe for concurrent use.
type Drawing struct {
	engine canvas.TextLayoutEngine
	val    *canvas.StateCanvas
	rec    *recording.Recorder

	// Font files installed through this session, released by
	// EndDrawing.
	sessionFonts []string

	// Decoded image files, keyed by path, so repeated placements of
	// the same file decode once.
	imageCache map[string]image.Image
}

// Option configures a Drawing during creation.
type Option func(*drawingOptions)

type drawingOptions struct {
	engine       canvas.TextLayoutEngine
	systemFonts  bool
	fontCacheDir string
}

// WithTextEngine injects a text layout engine. Without it, a default
// engine with the embedded faces is created.
func WithTextEngine(e canvas.TextLayoutEngine) Option {
	return func(o *drawingOptions) {
		o.engine = e
	}
}

// WithSystemFonts makes the default text engine index the host's
// installed fonts, caching the index under cacheDir (empty picks a
// directory under os.UserCacheDir). Ignored when WithTextEngine is
// also given.
func WithSystemFonts(cacheDir string) Option {
	return func(o *drawingOptions) {
		o.systemFonts = true
		o.fontCacheDir = cacheDir
	}
}

// New creates an empty drawing session.
func New(opts ...Option) (*Drawing, error) {
	var cfg drawingOptions
	for _, opt := range opts {
		opt(&cfg)
	}

	engine := cfg.engine
	if engine == nil {
		var topts []textlayout.Option
		if cfg.systemFonts {
			topts = append(topts, textlayout.WithSystemFonts(cfg.fontCacheDir))
		}
		topts = append(topts, textlayout.WithLogger(Logger()))
		e, err := textlayout.New(topts...)
		if err != nil {
			return nil, err
		}
		engine = e
	}

	return &Drawing{
		engine: engine,
		val:    canvas.NewValidationCanvas(engine),
		rec:    recording.NewRecorder(),
	}, nil
}

// Draw runs fn inside a fresh session and ends the drawing afterwards,
// releasing session fonts even when fn fails.
func Draw(fn func(*Drawing) error, opts ...Option) error {
	d, err := New(opts...)
	if err != nil {
		return err
	}
	defer d.EndDrawing()
	return fn(d)
}

// record validates a command against the session's state and appends
// it to the log when the validation passes.
func (d *Drawing) record(cmd recording.Command) error {
	if err := cmd.Apply(d.val); err != nil {
		return err
	}
	d.rec.Record(cmd)
	return nil
}

// Reset discards the recorded commands, the graphics state, and the
// session fonts, returning the session to its initial state.
func (d *Drawing) Reset() {
	d.releaseSessionFonts()
	d.rec.Reset()
	d.val = canvas.NewValidationCanvas(d.engine)
	d.imageCache = nil
}

// EndDrawing releases the fonts installed during the session. The
// command log is kept, so exports remain possible afterwards.
func (d *Drawing) EndDrawing() {
	d.releaseSessionFonts()
}

// Close is an alias for EndDrawing.
func (d *Drawing) Close() {
	d.EndDrawing()
}

func (d *Drawing) releaseSessionFonts() {
	d.val.ReleaseFonts()
	for _, path := range d.sessionFonts {
		if err := d.engine.UninstallFont(path); err != nil {
			Logger().Warn("failed to release a session font", "path", path, "error", err)
		}
	}
	d.sessionFonts = nil
}

// --------------------------------------------------------------------------
// Pages
// --------------------------------------------------------------------------

// Size sets the page size used when drawing starts without an explicit
// NewPage. It fails once anything has been recorded.
func (d *Drawing) Size(w, h float64) error {
	if d.rec.Len() > 0 {
		return canvas.Usagef("size", "can't change the size after drawing has begun, use newPage instead")
	}
	if w <= 0 || h <= 0 {
		return canvas.Usagef("size", "width and height must be positive, got %v x %v", w, h)
	}
	d.rec.SetDefaultSize(w, h)
	return nil
}

// SizeNamed is Size with a named paper size such as "A4" or
// "LetterLandscape".
func (d *Drawing) SizeNamed(name string) error {
	w, h, err := PaperSize(name)
	if err != nil {
		return err
	}
	return d.Size(w, h)
}

// NewPage starts a new page of the given size.
func (d *Drawing) NewPage(w, h float64) error {
	return d.record(recording.NewPageCommand{Width: w, Height: h})
}

// NewPageNamed starts a new page with a named paper size.
func (d *Drawing) NewPageNamed(name string) error {
	w, h, err := PaperSize(name)
	if err != nil {
		return err
	}
	return d.NewPage(w, h)
}

// Width returns the width of the current page, or the width the
// synthetic first page would get.
func (d *Drawing) Width() float64 {
	if d.val.HasPage() {
		w, _ := d.val.PageSize()
		return w
	}
	w, _ := d.rec.DefaultSize()
	return w
}

// Height returns the height of the current page, or the height the
// synthetic first page would get.
func (d *Drawing) Height() float64 {
	if d.val.HasPage() {
		_, h := d.val.PageSize()
		return h
	}
	_, h := d.rec.DefaultSize()
	return h
}

// PageCount returns the number of recorded pages.
func (d *Drawing) PageCount() int {
	return d.rec.PageCount()
}

// Pages returns the recorded pages as independently replayable values.
func (d *Drawing) Pages() []*recording.Page {
	return d.rec.Pages()
}

// FrameDuration sets how long the current page is displayed in
// animated output formats such as GIF.
func (d *Drawing) FrameDuration(seconds float64) error {
	if seconds <= 0 {
		return canvas.Usagef("frameDuration", "duration must be positive, got %v", seconds)
	}
	return d.record(recording.FrameDurationCommand{Seconds: seconds})
}

// --------------------------------------------------------------------------
// Graphics state
// --------------------------------------------------------------------------

// Save pushes a snapshot of the graphics state.
func (d *Drawing) Save() error {
	return d.record(recording.SaveCommand{})
}

// Restore pops the most recent snapshot. Restoring with no matching
// Save fails and leaves the state untouched.
func (d *Drawing) Restore() error {
	return d.record(recording.RestoreCommand{})
}

// WithSavedState runs fn between Save and Restore. The Restore runs
// even when fn fails.
func (d *Drawing) WithSavedState(fn func() error) error {
	if err := d.Save(); err != nil {
		return err
	}
	ferr := fn()
	if err := d.Restore(); err != nil && ferr == nil {
		return err
	}
	return ferr
}
