package recording

import "github.com/inkdraw/inkdraw/canvas"

// Backend renders a replayed recording into an output format. A
// backend is a full canvas plus export: the recorder replays into it,
// then SaveTo writes the result.
//
// A backend instance renders one export and is not reused.
type Backend interface {
	canvas.Canvas

	// SetOption configures an export option before replay. Unknown
	// names return an error; the caller decides whether that is fatal.
	SetOption(name string, value any) error
	// OptionNames returns the export option names the backend accepts.
	OptionNames() []string
	// SaveTo writes the rendered output. Backends producing one file
	// per page derive the per-page file names from path.
	SaveTo(path string) error
}

// BackendFactory creates a backend instance. The text layout engine is
// the one the session recorded with, so replayed text resolves the
// same fonts.
type BackendFactory func(engine canvas.TextLayoutEngine) Backend
