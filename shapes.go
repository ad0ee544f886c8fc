package inkdraw

import "github.com/inkdraw/inkdraw/recording"

// Rect draws a rectangle with the current fill and stroke.
func (d *Drawing) Rect(x, y, w, h float64) error {
	return d.record(recording.RectCommand{Rect: MakeRect(x, y, w, h)})
}

// Oval draws an ellipse inscribed in the rectangle.
func (d *Drawing) Oval(x, y, w, h float64) error {
	return d.record(recording.OvalCommand{Rect: MakeRect(x, y, w, h)})
}

// Line draws a line segment between two points.
func (d *Drawing) Line(p1, p2 Point) error {
	return d.record(recording.LineCommand{P1: p1, P2: p2})
}

// Polygon draws a polygon through the points, optionally closing it
// back to the first point.
func (d *Drawing) Polygon(points []Point, close bool) error {
	return d.record(recording.PolygonCommand{Points: points, Close: close})
}

// NewPath begins a fresh path in the graphics state. Subsequent
// MoveTo/LineTo/CurveTo calls extend it until DrawPath or ClipPath
// consumes it.
func (d *Drawing) NewPath() error {
	return d.record(recording.NewPathCommand{})
}

// MoveTo starts a new subpath of the current path. Calling it without
// a NewPath first is a usage error.
func (d *Drawing) MoveTo(p Point) error {
	return d.record(recording.MoveToCommand{Point: p})
}

// LineTo adds a line to the current path.
func (d *Drawing) LineTo(p Point) error {
	return d.record(recording.LineToCommand{Point: p})
}

// CurveTo adds a cubic Bezier curve to the current path.
func (d *Drawing) CurveTo(c1, c2, p Point) error {
	return d.record(recording.CurveToCommand{Control1: c1, Control2: c2, Point: p})
}

// QCurveTo adds a run of quadratic curve segments to the current path.
// With two points a single quadratic segment is added; more points
// form a spline with implied on-curve midpoints.
func (d *Drawing) QCurveTo(points ...Point) error {
	return d.record(recording.QCurveToCommand{Points: points})
}

// Arc adds a circular arc around center. Angles are in degrees,
// counterclockwise from the positive x axis.
func (d *Drawing) Arc(center Point, radius, startAngle, endAngle float64, clockwise bool) error {
	return d.record(recording.ArcCommand{
		Center:     center,
		Radius:     radius,
		StartAngle: degToRad(startAngle),
		EndAngle:   degToRad(endAngle),
		Clockwise:  clockwise,
	})
}

// ArcTo adds an arc tangent to the lines current-point→p1 and p1→p2.
func (d *Drawing) ArcTo(p1, p2 Point, radius float64) error {
	return d.record(recording.ArcToCommand{P1: p1, P2: p2, Radius: radius})
}

// ClosePath closes the current subpath.
func (d *Drawing) ClosePath() error {
	return d.record(recording.ClosePathCommand{})
}

// DrawPath fills and strokes a path with the current paint. A nil path
// draws the path under construction. The path is copied, so mutating
// it afterwards does not change what was recorded.
func (d *Drawing) DrawPath(p *Path) error {
	return d.record(recording.DrawPathCommand{Path: copyPath(p)})
}

// ClipPath intersects the clip region with a path. A nil path clips to
// the path under construction. The clip is released by Restore.
func (d *Drawing) ClipPath(p *Path) error {
	return d.record(recording.ClipPathCommand{Path: copyPath(p)})
}

func copyPath(p *Path) *Path {
	if p == nil {
		return nil
	}
	return p.Copy()
}
