package recording

import "github.com/inkdraw/inkdraw/canvas"

// DefaultPageWidth and DefaultPageHeight are the dimensions of the
// synthetic first page when no size was configured.
const (
	DefaultPageWidth  = 1000.0
	DefaultPageHeight = 1000.0
)

// Recorder is an ordered, page-partitioned log of drawing commands.
// Commands must be validated before they are recorded; the recorder
// itself never rejects a command.
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	groups [][]Command

	defaultW, defaultH float64
	hasPage            bool
}

// NewRecorder creates an empty recorder with the 1000x1000 default
// page size.
func NewRecorder() *Recorder {
	return &Recorder{
		defaultW: DefaultPageWidth,
		defaultH: DefaultPageHeight,
	}
}

// SetDefaultSize sets the dimensions used for the synthetic first
// page. Size and NewPage calls update it, so a later synthetic page
// picks up the last configured size.
func (r *Recorder) SetDefaultSize(w, h float64) {
	r.defaultW = w
	r.defaultH = h
}

// DefaultSize returns the dimensions the synthetic first page would
// use.
func (r *Recorder) DefaultSize() (w, h float64) {
	return r.defaultW, r.defaultH
}

// Record appends a command to the log. A NewPage command always
// begins a new group, even when the current group is empty. When a
// command that requires a page arrives before any page exists, a
// synthetic NewPage is inserted at the front of the first group, once.
func (r *Recorder) Record(cmd Command) {
	if cmd.Type() == CmdNewPage {
		r.SetDefaultSize(cmd.(NewPageCommand).Width, cmd.(NewPageCommand).Height)
		r.groups = append(r.groups, []Command{cmd})
		r.hasPage = true
		return
	}

	if len(r.groups) == 0 {
		r.groups = append(r.groups, nil)
	}
	if !r.hasPage && cmd.RequiresPage() {
		first := make([]Command, 0, len(r.groups[0])+2)
		first = append(first, NewPageCommand{Width: r.defaultW, Height: r.defaultH})
		first = append(first, r.groups[0]...)
		r.groups[0] = first
		r.hasPage = true
	}
	last := len(r.groups) - 1
	r.groups[last] = append(r.groups[last], cmd)
}

// HasPage reports whether the log contains a page.
func (r *Recorder) HasPage() bool {
	return r.hasPage
}

// Len returns the total number of recorded commands.
func (r *Recorder) Len() int {
	n := 0
	for _, g := range r.groups {
		n += len(g)
	}
	return n
}

// Commands returns all recorded commands in order.
func (r *Recorder) Commands() []Command {
	out := make([]Command, 0, r.Len())
	for _, g := range r.groups {
		out = append(out, g...)
	}
	return out
}

// Replay applies every recorded command to the canvas in order. It
// fails fast on the first error and never mutates the log, so a
// recording can be replayed any number of times.
func (r *Recorder) Replay(c canvas.Canvas) error {
	for _, g := range r.groups {
		for _, cmd := range g {
			if err := cmd.Apply(c); err != nil {
				return err
			}
		}
	}
	return nil
}

// PageCount returns the number of page groups.
func (r *Recorder) PageCount() int {
	return len(r.groups)
}

// Pages returns the groups that begin with a NewPage command as
// independently replayable pages.
func (r *Recorder) Pages() []*Page {
	var pages []*Page
	for _, g := range r.groups {
		if len(g) > 0 && g[0].Type() == CmdNewPage {
			pages = append(pages, &Page{commands: g})
		}
	}
	return pages
}

// Reset discards every recorded command. The default page size is
// kept.
func (r *Recorder) Reset() {
	r.groups = nil
	r.hasPage = false
}

// Page is one independently replayable page group. Its first command
// is always a NewPage.
type Page struct {
	commands []Command
}

// Size returns the page dimensions.
func (p *Page) Size() (w, h float64) {
	np := p.commands[0].(NewPageCommand)
	return np.Width, np.Height
}

// Commands returns the page's commands, starting with its NewPage.
func (p *Page) Commands() []Command {
	return p.commands
}

// Replay applies the page's commands to the canvas.
func (p *Page) Replay(c canvas.Canvas) error {
	for _, cmd := range p.commands {
		if err := cmd.Apply(c); err != nil {
			return err
		}
	}
	return nil
}
