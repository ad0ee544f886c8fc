package inkdraw

import (
	"math"

	"github.com/inkdraw/inkdraw/canvas"
	"github.com/inkdraw/inkdraw/recording"
)

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// Transform concatenates a matrix onto the current transform.
func (d *Drawing) Transform(m Matrix) error {
	return d.record(recording.TransformCommand{Matrix: m})
}

// TransformComponents is Transform with the six-component form
// (xx, xy, yx, yy, dx, dy).
func (d *Drawing) TransformComponents(xx, xy, yx, yy, dx, dy float64) error {
	return d.Transform(canvas.FromComponents(xx, xy, yx, yy, dx, dy))
}

// Translate moves the origin.
func (d *Drawing) Translate(x, y float64) error {
	return d.Transform(canvas.Translation(x, y))
}

// Rotate rotates the coordinate system counterclockwise by an angle in
// degrees, optionally around a center point.
func (d *Drawing) Rotate(angle float64, center ...Point) error {
	return d.aroundCenter("rotate", canvas.Rotation(degToRad(angle)), center)
}

// Scale scales the coordinate system, optionally around a center
// point. A single factor scales uniformly.
func (d *Drawing) Scale(sx, sy float64, center ...Point) error {
	if sy == 0 {
		sy = sx
	}
	return d.aroundCenter("scale", canvas.Scaling(sx, sy), center)
}

// Skew shears the coordinate system by angles in degrees, optionally
// around a center point.
func (d *Drawing) Skew(ax, ay float64, center ...Point) error {
	return d.aroundCenter("skew", canvas.Shearing(degToRad(ax), degToRad(ay)), center)
}

// aroundCenter conjugates a transform with translations so it applies
// around the given point instead of the origin.
func (d *Drawing) aroundCenter(op string, m Matrix, center []Point) error {
	switch len(center) {
	case 0:
	case 1:
		c := center[0]
		m = canvas.Translation(c.X, c.Y).Multiply(m).Multiply(canvas.Translation(-c.X, -c.Y))
	default:
		return canvas.Usagef(op, "expects at most one center point, got %d", len(center))
	}
	return d.Transform(m)
}
