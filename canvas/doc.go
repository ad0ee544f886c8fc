// Package canvas defines the drawing model shared by the recording and
// rendering halves of inkdraw: the graphics state and its save/restore
// stack, the geometric and style value types (paths, colors, gradients,
// shadows, text attributes), and the Canvas interface that every
// recorded operation is eventually applied to.
//
// The package has no rendering capability of its own. StateCanvas
// implements Canvas by maintaining a state stack and delegating the
// actual painting to a Painter, an interface implemented by the output
// backends. A StateCanvas constructed with a discarding Painter is used
// as the validation ("dummy") context: it applies exactly the same
// state semantics as a real backend, so argument errors surface at the
// call site instead of at export time.
package canvas
