// Package inkdraw is a recorded 2D drawing API. A Drawing session
// validates every call against a live graphics state, appends the
// successful ones to a command log, and replays the log into an output
// backend on export, so one script can produce PNG, GIF, TIFF, BMP,
// JPEG and PDF output from the same drawing.
//
// Coordinates are PostScript-style: points, origin at the lower-left,
// y up. A minimal script:
//
//	d, _ := inkdraw.New()
//	d.Size(400, 400)
//	d.SetFill(1, 0, 0)
//	d.Rect(50, 50, 300, 300)
//	d.SaveImage("out.png")
package inkdraw
