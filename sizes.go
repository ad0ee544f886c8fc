package inkdraw

import (
	"sort"
	"strings"

	"github.com/inkdraw/inkdraw/canvas"
)

// paperSizes maps names to portrait dimensions in points.
var paperSizes = map[string][2]float64{
	"A0":      {2384, 3370},
	"A1":      {1684, 2384},
	"A2":      {1190, 1684},
	"A3":      {842, 1190},
	"A4":      {595, 842},
	"A5":      {420, 595},
	"Letter":  {612, 792},
	"Legal":   {612, 1008},
	"Tabloid": {792, 1224},
}

// PaperSize resolves a named paper size to its dimensions in points.
// Appending "Landscape" to a name swaps width and height.
func PaperSize(name string) (w, h float64, err error) {
	base, landscape := strings.CutSuffix(name, "Landscape")
	size, ok := paperSizes[base]
	if !ok {
		return 0, 0, canvas.Usagef("size", "unknown paper size %q, use one of %s", name, strings.Join(PaperSizes(), ", "))
	}
	if landscape {
		return size[1], size[0], nil
	}
	return size[0], size[1], nil
}

// PaperSizes returns the known paper size names, sorted, without the
// Landscape variants.
func PaperSizes() []string {
	names := make([]string, 0, len(paperSizes))
	for name := range paperSizes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
