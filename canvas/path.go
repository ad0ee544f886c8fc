package canvas

import "math"

// PathElement represents a single element in a path.
type PathElement interface {
	isPathElement()
}

// MoveTo moves to a point without drawing.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathElement() {}

// LineTo draws a line to a point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathElement() {}

// QuadTo draws a quadratic Bezier curve.
type QuadTo struct {
	Control Point
	Point   Point
}

func (QuadTo) isPathElement() {}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathElement() {}

// Close closes the current subpath.
type Close struct{}

func (Close) isPathElement() {}

// Path represents a vector path built from move, line, curve and
// close elements. All construction methods that need a current point
// return a UsageError when the path is empty.
type Path struct {
	elements []PathElement
	start    Point // starting point of current subpath
	current  Point // current point
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{
		elements: make([]PathElement, 0, 16),
	}
}

// MoveTo moves to a point without drawing, starting a new subpath.
func (p *Path) MoveTo(pt Point) {
	p.elements = append(p.elements, MoveTo{Point: pt})
	p.start = pt
	p.current = pt
}

// LineTo draws a line from the current point.
func (p *Path) LineTo(pt Point) error {
	if len(p.elements) == 0 {
		return Usagef("lineTo", "path has no current point, use moveTo first")
	}
	p.elements = append(p.elements, LineTo{Point: pt})
	p.current = pt
	return nil
}

// CurveTo draws a cubic Bezier curve from the current point with two
// control points.
func (p *Path) CurveTo(c1, c2, pt Point) error {
	if len(p.elements) == 0 {
		return Usagef("curveTo", "path has no current point, use moveTo first")
	}
	p.elements = append(p.elements, CubicTo{Control1: c1, Control2: c2, Point: pt})
	p.current = pt
	return nil
}

// QCurveTo draws a quadratic curve through a run of off-curve control
// points ending at the last given point. Intermediate on-curve points
// are implied at the midpoints between consecutive off-curve points,
// as in TrueType outlines.
func (p *Path) QCurveTo(points ...Point) error {
	if len(p.elements) == 0 {
		return Usagef("qCurveTo", "path has no current point, use moveTo first")
	}
	if len(points) == 0 {
		return Usagef("qCurveTo", "needs at least one point")
	}
	end := points[len(points)-1]
	ctrls := points[:len(points)-1]
	if len(ctrls) == 0 {
		return p.LineTo(end)
	}
	for i := 0; i < len(ctrls); i++ {
		ctrl := ctrls[i]
		var on Point
		if i == len(ctrls)-1 {
			on = end
		} else {
			next := ctrls[i+1]
			on = Point{X: (ctrl.X + next.X) / 2, Y: (ctrl.Y + next.Y) / 2}
		}
		p.elements = append(p.elements, QuadTo{Control: ctrl, Point: on})
		p.current = on
	}
	return nil
}

// ClosePath closes the current subpath with a line to its start.
func (p *Path) ClosePath() {
	p.elements = append(p.elements, Close{})
	p.current = p.start
}

// Arc adds a circular arc around center from startAngle to endAngle,
// both in degrees measured counterclockwise from the positive x axis.
// When the path already has a current point a line connects it to the
// arc start, otherwise the arc begins a new subpath.
func (p *Path) Arc(center Point, radius, startAngle, endAngle float64, clockwise bool) error {
	if radius <= 0 {
		return Usagef("arc", "radius must be positive, got %v", radius)
	}
	a1 := startAngle * math.Pi / 180
	a2 := endAngle * math.Pi / 180
	const twoPi = 2 * math.Pi
	if clockwise {
		for a2 > a1 {
			a2 -= twoPi
		}
	} else {
		for a2 < a1 {
			a2 += twoPi
		}
	}

	startPt := Point{X: center.X + radius*math.Cos(a1), Y: center.Y + radius*math.Sin(a1)}
	if len(p.elements) == 0 {
		p.MoveTo(startPt)
	} else {
		p.elements = append(p.elements, LineTo{Point: startPt})
		p.current = startPt
	}

	// Split into cubic segments of at most 90 degrees.
	const maxAngle = math.Pi / 2
	sweep := a2 - a1
	numSegments := int(math.Ceil(math.Abs(sweep) / maxAngle))
	if numSegments == 0 {
		numSegments = 1
	}
	step := sweep / float64(numSegments)
	for i := 0; i < numSegments; i++ {
		p.arcSegment(center, radius, a1+float64(i)*step, a1+float64(i+1)*step)
	}
	return nil
}

// arcSegment appends a single cubic approximation of an arc of at most
// 90 degrees. The current point must already be the segment start.
func (p *Path) arcSegment(center Point, r, a1, a2 float64) {
	alpha := math.Sin(a2-a1) * (math.Sqrt(4+3*math.Tan((a2-a1)/2)*math.Tan((a2-a1)/2)) - 1) / 3

	cos1, sin1 := math.Cos(a1), math.Sin(a1)
	cos2, sin2 := math.Cos(a2), math.Sin(a2)

	x2 := center.X + r*cos2
	y2 := center.Y + r*sin2

	c1 := Point{
		X: center.X + r*cos1 - alpha*r*sin1,
		Y: center.Y + r*sin1 + alpha*r*cos1,
	}
	c2 := Point{
		X: x2 + alpha*r*sin2,
		Y: y2 - alpha*r*cos2,
	}
	p.elements = append(p.elements, CubicTo{Control1: c1, Control2: c2, Point: Point{X: x2, Y: y2}})
	p.current = Point{X: x2, Y: y2}
}

// ArcTo adds an arc of the given radius tangent to the lines from the
// current point to p1 and from p1 to p2.
func (p *Path) ArcTo(p1, p2 Point, radius float64) error {
	if len(p.elements) == 0 {
		return Usagef("arcTo", "path has no current point, use moveTo first")
	}
	if radius <= 0 {
		return Usagef("arcTo", "radius must be positive, got %v", radius)
	}
	p0 := p.current

	v1 := Point{X: p0.X - p1.X, Y: p0.Y - p1.Y}
	v2 := Point{X: p2.X - p1.X, Y: p2.Y - p1.Y}
	len1 := math.Hypot(v1.X, v1.Y)
	len2 := math.Hypot(v2.X, v2.Y)
	if len1 == 0 || len2 == 0 {
		return p.LineTo(p1)
	}
	v1 = Point{X: v1.X / len1, Y: v1.Y / len1}
	v2 = Point{X: v2.X / len2, Y: v2.Y / len2}

	cross := v1.X*v2.Y - v1.Y*v2.X
	if math.Abs(cross) < 1e-10 {
		// Collinear, no arc fits.
		return p.LineTo(p1)
	}

	dot := v1.X*v2.X + v1.Y*v2.Y
	halfAngle := math.Acos(math.Max(-1, math.Min(1, dot))) / 2
	dist := radius / math.Tan(halfAngle)

	t1 := Point{X: p1.X + v1.X*dist, Y: p1.Y + v1.Y*dist}
	t2 := Point{X: p1.X + v2.X*dist, Y: p1.Y + v2.Y*dist}

	// Circle center lies along the angle bisector.
	bis := Point{X: v1.X + v2.X, Y: v1.Y + v2.Y}
	bisLen := math.Hypot(bis.X, bis.Y)
	bis = Point{X: bis.X / bisLen, Y: bis.Y / bisLen}
	centerDist := radius / math.Sin(halfAngle)
	center := Point{X: p1.X + bis.X*centerDist, Y: p1.Y + bis.Y*centerDist}

	startAngle := math.Atan2(t1.Y-center.Y, t1.X-center.X) * 180 / math.Pi
	endAngle := math.Atan2(t2.Y-center.Y, t2.X-center.X) * 180 / math.Pi

	if err := p.LineTo(t1); err != nil {
		return err
	}
	// cross < 0 means the turn from v1 to v2 is clockwise around the center.
	return p.Arc(center, radius, startAngle, endAngle, cross > 0)
}

// Rect adds a rectangle as a closed subpath.
func (p *Path) Rect(r Rect) {
	p.MoveTo(Point{X: r.X, Y: r.Y})
	p.elements = append(p.elements,
		LineTo{Point: Point{X: r.X + r.W, Y: r.Y}},
		LineTo{Point: Point{X: r.X + r.W, Y: r.Y + r.H}},
		LineTo{Point: Point{X: r.X, Y: r.Y + r.H}},
		Close{},
	)
	p.current = p.start
}

// Oval adds an ellipse inscribed in the rectangle as a closed subpath.
func (p *Path) Oval(r Rect) {
	// Magic constant for circle approximation with cubic Beziers
	const k = 0.5522847498307936 // 4/3 * (sqrt(2) - 1)
	cx := r.X + r.W/2
	cy := r.Y + r.H/2
	rx := r.W / 2
	ry := r.H / 2
	ox := rx * k
	oy := ry * k

	p.MoveTo(Point{X: cx + rx, Y: cy})
	p.elements = append(p.elements,
		CubicTo{Control1: Point{X: cx + rx, Y: cy + oy}, Control2: Point{X: cx + ox, Y: cy + ry}, Point: Point{X: cx, Y: cy + ry}},
		CubicTo{Control1: Point{X: cx - ox, Y: cy + ry}, Control2: Point{X: cx - rx, Y: cy + oy}, Point: Point{X: cx - rx, Y: cy}},
		CubicTo{Control1: Point{X: cx - rx, Y: cy - oy}, Control2: Point{X: cx - ox, Y: cy - ry}, Point: Point{X: cx, Y: cy - ry}},
		CubicTo{Control1: Point{X: cx + ox, Y: cy - ry}, Control2: Point{X: cx + rx, Y: cy - oy}, Point: Point{X: cx + rx, Y: cy}},
		Close{},
	)
	p.current = p.start
}

// Line adds an open subpath from p1 to p2.
func (p *Path) Line(p1, p2 Point) {
	p.MoveTo(p1)
	p.elements = append(p.elements, LineTo{Point: p2})
	p.current = p2
}

// Polygon adds a subpath through the given points, closed when close
// is true. At least two points are required.
func (p *Path) Polygon(points []Point, close bool) error {
	if len(points) < 2 {
		return Usagef("polygon", "needs at least 2 points, got %d", len(points))
	}
	p.MoveTo(points[0])
	for _, pt := range points[1:] {
		p.elements = append(p.elements, LineTo{Point: pt})
		p.current = pt
	}
	if close {
		p.ClosePath()
	}
	return nil
}

// AppendPath appends the elements of another path.
func (p *Path) AppendPath(other *Path) {
	if other == nil {
		return
	}
	p.elements = append(p.elements, other.elements...)
	p.start = other.start
	p.current = other.current
}

// Elements returns the path elements.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// IsEmpty reports whether the path has no elements.
func (p *Path) IsEmpty() bool {
	return p == nil || len(p.elements) == 0
}

// CurrentPoint returns the current point.
func (p *Path) CurrentPoint() Point {
	return p.current
}

// Copy creates a deep copy of the path. A nil path copies to nil.
func (p *Path) Copy() *Path {
	if p == nil {
		return nil
	}
	result := NewPath()
	result.elements = make([]PathElement, len(p.elements))
	copy(result.elements, p.elements)
	result.start = p.start
	result.current = p.current
	return result
}

// Transform returns a new path with every point mapped through the
// matrix.
func (p *Path) Transform(m Matrix) *Path {
	result := NewPath()
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			result.MoveTo(m.TransformPoint(e.Point))
		case LineTo:
			result.elements = append(result.elements, LineTo{Point: m.TransformPoint(e.Point)})
			result.current = m.TransformPoint(e.Point)
		case QuadTo:
			result.elements = append(result.elements, QuadTo{
				Control: m.TransformPoint(e.Control),
				Point:   m.TransformPoint(e.Point),
			})
			result.current = m.TransformPoint(e.Point)
		case CubicTo:
			result.elements = append(result.elements, CubicTo{
				Control1: m.TransformPoint(e.Control1),
				Control2: m.TransformPoint(e.Control2),
				Point:    m.TransformPoint(e.Point),
			})
			result.current = m.TransformPoint(e.Point)
		case Close:
			result.ClosePath()
		}
	}
	return result
}

// Translate returns the path moved by (x, y).
func (p *Path) Translate(x, y float64) *Path {
	return p.Transform(Translation(x, y))
}

// Scale returns the path scaled around the origin.
func (p *Path) Scale(x, y float64) *Path {
	return p.Transform(Scaling(x, y))
}

// Rotate returns the path rotated around the origin by an angle in
// degrees.
func (p *Path) Rotate(angle float64) *Path {
	return p.Transform(Rotation(angle * math.Pi / 180))
}

// Skew returns the path skewed around the origin by angles in degrees.
func (p *Path) Skew(ax, ay float64) *Path {
	return p.Transform(Shearing(ax*math.Pi/180, ay*math.Pi/180))
}

// Bounds returns the bounding box of the path's anchor and control
// points. For curves this is the control hull, which always contains
// the rendered curve.
func (p *Path) Bounds() Rect {
	first := true
	var minX, minY, maxX, maxY float64
	grow := func(pt Point) {
		if first {
			minX, maxX = pt.X, pt.X
			minY, maxY = pt.Y, pt.Y
			first = false
			return
		}
		minX = min(minX, pt.X)
		maxX = max(maxX, pt.X)
		minY = min(minY, pt.Y)
		maxY = max(maxY, pt.Y)
	}
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			grow(e.Point)
		case LineTo:
			grow(e.Point)
		case QuadTo:
			grow(e.Control)
			grow(e.Point)
		case CubicTo:
			grow(e.Control1)
			grow(e.Control2)
			grow(e.Point)
		}
	}
	if first {
		return Rect{}
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// flattenSteps is the number of line segments each curve is divided
// into when flattening.
const flattenSteps = 16

// Flatten converts the path into polylines, one per subpath, with
// curves subdivided into line segments.
func (p *Path) Flatten() [][]Point {
	var subpaths [][]Point
	var cur []Point
	var start Point
	flush := func() {
		if len(cur) > 1 {
			subpaths = append(subpaths, cur)
		}
		cur = nil
	}
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			flush()
			start = e.Point
			cur = []Point{e.Point}
		case LineTo:
			cur = append(cur, e.Point)
		case QuadTo:
			if len(cur) == 0 {
				break
			}
			p0 := cur[len(cur)-1]
			for i := 1; i <= flattenSteps; i++ {
				t := float64(i) / flattenSteps
				cur = append(cur, quadPoint(p0, e.Control, e.Point, t))
			}
		case CubicTo:
			if len(cur) == 0 {
				break
			}
			p0 := cur[len(cur)-1]
			for i := 1; i <= flattenSteps; i++ {
				t := float64(i) / flattenSteps
				cur = append(cur, cubicPoint(p0, e.Control1, e.Control2, e.Point, t))
			}
		case Close:
			if len(cur) > 0 {
				cur = append(cur, start)
			}
		}
	}
	flush()
	return subpaths
}

func quadPoint(p0, c, p1 Point, t float64) Point {
	u := 1 - t
	return Point{
		X: u*u*p0.X + 2*u*t*c.X + t*t*p1.X,
		Y: u*u*p0.Y + 2*u*t*c.Y + t*t*p1.Y,
	}
}

func cubicPoint(p0, c1, c2, p1 Point, t float64) Point {
	u := 1 - t
	return Point{
		X: u*u*u*p0.X + 3*u*u*t*c1.X + 3*u*t*t*c2.X + t*t*t*p1.X,
		Y: u*u*u*p0.Y + 3*u*u*t*c1.Y + 3*u*t*t*c2.Y + t*t*t*p1.Y,
	}
}

// PointInside reports whether the point lies inside the path using the
// even-odd rule on the flattened outline.
func (p *Path) PointInside(pt Point) bool {
	inside := false
	for _, sub := range p.Flatten() {
		n := len(sub)
		for i := 0; i < n; i++ {
			a := sub[i]
			b := sub[(i+1)%n]
			if (a.Y > pt.Y) != (b.Y > pt.Y) {
				x := a.X + (pt.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
				if pt.X < x {
					inside = !inside
				}
			}
		}
	}
	return inside
}
