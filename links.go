package inkdraw

import "github.com/inkdraw/inkdraw/recording"

// LinkURL makes a rectangle of the page click through to an external
// URL in formats that support links.
func (d *Drawing) LinkURL(url string, r Rect) error {
	return d.record(recording.LinkURLCommand{URL: url, Rect: r})
}

// LinkDestination marks a named position on the current page as a
// jump target for LinkRect.
func (d *Drawing) LinkDestination(name string, p Point) error {
	return d.record(recording.LinkDestinationCommand{Name: name, Point: p})
}

// LinkRect makes a rectangle of the page jump to a named destination.
// The destination may be defined on a later page.
func (d *Drawing) LinkRect(name string, r Rect) error {
	return d.record(recording.LinkRectCommand{Name: name, Rect: r})
}
