package pdf

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/inkdraw/inkdraw/canvas"
	"github.com/inkdraw/inkdraw/recording"
)

func init() {
	recording.Register("pdf", func(engine canvas.TextLayoutEngine) recording.Backend {
		return New(engine)
	})
}

// Backend renders a replayed recording into a multi-page PDF document.
type Backend struct {
	*canvas.StateCanvas
	painter *painter
}

// New returns a PDF backend.
func New(engine canvas.TextLayoutEngine) *Backend {
	pt := newPainter(slog.New(nopHandler{}))
	return &Backend{
		StateCanvas: canvas.NewStateCanvas(pt, engine),
		painter:     pt,
	}
}

// SetLogger routes backend warnings to l.
func (b *Backend) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	b.painter.logger = l
}

// OptionNames returns the export options this backend accepts. PDF
// export has none.
func (b *Backend) OptionNames() []string { return nil }

// SetOption rejects every option name; PDF export has none.
func (b *Backend) SetOption(name string, value any) error {
	return fmt.Errorf("unknown pdf option %q", name)
}

// SaveTo writes the document to path.
func (b *Backend) SaveTo(path string) error {
	if b.painter.pdf == nil {
		return fmt.Errorf("nothing to save: no pages were drawn")
	}
	return b.painter.pdf.OutputFileAndClose(path)
}

// Data returns the document bytes without touching the filesystem.
func (b *Backend) Data() ([]byte, error) {
	if b.painter.pdf == nil {
		return nil, fmt.Errorf("no pages were drawn")
	}
	var buf bytes.Buffer
	if err := b.painter.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
