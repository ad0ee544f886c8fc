package textlayout

import (
	"math"
	"sort"
	"unicode"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/inkdraw/inkdraw/canvas"
)

const softHyphen = '\u00ad'

// defaultTabInterval is the spacing of the implicit tab grid used when
// a tab falls beyond the last explicit tab stop.
const defaultTabInterval = 28.0

// span is one styled stretch of the joined source text with its
// resolved faces.
type span struct {
	start, end int
	style      canvas.TextStyle
	fill       canvas.Paint
	stroke     canvas.Paint
	face       *faceEntry
	fallback   *faceEntry
}

func (sp *span) fontSize() float64 {
	if sp.style.FontSize > 0 {
		return sp.style.FontSize
	}
	return canvas.DefaultFontSize
}

// builtLine is a wrapped line before vertical placement.
type builtLine struct {
	runs      []canvas.TextRun
	startRune int
	width     float64
	ascent    float64
	descent   float64
	gap       float64
	style     canvas.TextStyle
	parFirst  bool
	parLast   bool
}

// Layout shapes and wraps ft into a box. A non-positive width disables
// wrapping; a non-positive height disables truncation. With hyphenate
// set, soft hyphens become break opportunities; otherwise they are
// stripped before shaping.
func (e *Engine) Layout(ft *canvas.FormattedText, width, height float64, hyphenate bool) (*canvas.TextLayout, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if ft == nil {
		return &canvas.TextLayout{}, nil
	}
	spans, txt, err := e.buildSpans(ft, hyphenate)
	if err != nil {
		return nil, err
	}
	if len(txt) == 0 {
		return &canvas.TextLayout{}, nil
	}

	var built []*builtLine
	missing := 0
	for _, par := range splitParagraphs(txt) {
		built = append(built, e.layoutParagraph(spans, txt, par, width, &missing)...)
	}
	if missing > 0 {
		e.logger.Warn("font has no glyph for some characters", "count", missing)
	}
	return e.placeLines(built, txt, width, height), nil
}

// buildSpans joins the source runs into one rune slice and resolves a
// face per run.
func (e *Engine) buildSpans(ft *canvas.FormattedText, hyphenate bool) ([]*span, []rune, error) {
	var spans []*span
	var txt []rune
	for _, run := range ft.Runs {
		runes := []rune(run.Text)
		if !hyphenate {
			runes = stripSoftHyphens(runes)
		}
		if len(runes) == 0 {
			continue
		}
		face, err := e.resolveStyleFace(run.Style)
		if err != nil {
			return nil, nil, err
		}
		spans = append(spans, &span{
			start:    len(txt),
			end:      len(txt) + len(runes),
			style:    run.Style,
			fill:     run.Fill,
			stroke:   run.Stroke,
			face:     face,
			fallback: e.resolveFallbackFace(run.Style),
		})
		txt = append(txt, runes...)
	}
	return spans, txt, nil
}

func stripSoftHyphens(runes []rune) []rune {
	out := runes[:0:len(runes)]
	for _, r := range runes {
		if r != softHyphen {
			out = append(out, r)
		}
	}
	return out
}

// parRange is a paragraph's rune range, excluding its terminating
// newline.
type parRange struct {
	start, end int
}

func splitParagraphs(txt []rune) []parRange {
	var pars []parRange
	start := 0
	for i, r := range txt {
		if r == '\n' {
			pars = append(pars, parRange{start, i})
			start = i + 1
		}
	}
	if start < len(txt) || len(pars) == 0 {
		pars = append(pars, parRange{start, len(txt)})
	}
	return pars
}

// layoutParagraph shapes and wraps one paragraph into lines.
func (e *Engine) layoutParagraph(spans []*span, txt []rune, par parRange, width float64, missing *int) []*builtLine {
	sp := spanAt(spans, par.start)
	if sp == nil {
		return nil
	}
	if par.start == par.end {
		// Blank line, consumes one line height of the governing style.
		info := sp.face.fontInfo()
		size := sp.fontSize()
		return []*builtLine{{
			startRune: par.start,
			ascent:    info.Ascender * size,
			descent:   -info.Descender * size,
			gap:       (info.LineHeight - info.Ascender + info.Descender) * size,
			style:     sp.style,
			parFirst:  true,
			parLast:   true,
		}}
	}

	parText := txt[par.start:par.end]
	var outs []shaping.Output
	for _, sp := range spans {
		rs, re := max(sp.start, par.start), min(sp.end, par.end)
		if rs >= re {
			continue
		}
		outs = append(outs, e.shapeSpan(sp, parText, rs-par.start, re-par.start)...)
	}
	if len(outs) == 0 {
		return nil
	}

	brk := shaping.WhenNecessary
	maxSize := math.MaxInt32 / 4
	if width > 0 {
		// The wrapper ceils line advances before comparing, so the
		// width must ceil too or a line no longer fits the very box it
		// was measured into.
		maxSize = int(math.Ceil(width))
	} else {
		brk = shaping.Never
	}
	cfg := shaping.WrapConfig{
		Direction:   mapBaseDirection(sp.style.Direction, parText),
		BreakPolicy: brk,
	}
	lines, _ := e.wrapper.WrapParagraph(cfg, maxSize, parText, shaping.NewSliceIterator(outs))

	built := make([]*builtLine, 0, len(lines))
	for li, lno := range lines {
		bl := e.buildLine(lno, spans, txt, par.start, missing)
		if bl == nil {
			continue
		}
		bl.parFirst = li == 0
		bl.parLast = li == len(lines)-1
		built = append(built, bl)
	}
	return built
}

// shapeSpan shapes one styled sub-range of a paragraph. The segmenter
// splits it further wherever a different face has to step in.
func (e *Engine) shapeSpan(sp *span, parText []rune, runStart, runEnd int) []shaping.Output {
	in := shaping.Input{
		Text:      parText,
		RunStart:  runStart,
		RunEnd:    runEnd,
		Direction: mapBaseDirection(sp.style.Direction, parText[runStart:runEnd]),
		Size:      floatToFixed(sp.fontSize()),
		Script:    detectScript(parText[runStart:runEnd]),
		Language:  styleLanguage(sp.style.Language),
	}
	if feats := e.fontFeatures(sp.style.OpenTypeFeatures); len(feats) > 0 {
		in.FontFeatures = feats
	}
	resolver := e.resolverFor(sp.face, sp.fallback)
	vars := fontVariations(sp.style.FontVariations)

	var outs []shaping.Output
	for _, split := range e.segmenter.Split(in, resolver) {
		if split.Face == nil {
			continue
		}
		if len(vars) > 0 {
			face := font.NewFace(split.Face.Font)
			face.SetVariations(vars)
			split.Face = face
		}
		outs = append(outs, e.shaper.Shape(split))
	}
	return outs
}

// buildLine converts one wrapped line of shaping outputs into glyph
// runs with line-relative pen positions.
func (e *Engine) buildLine(lno shaping.Line, spans []*span, txt []rune, parStart int, missing *int) *builtLine {
	bl := &builtLine{startRune: math.MaxInt}
	penX := 0.0
	for oi := range lno {
		out := &lno[oi]
		gStart := parStart + out.Runes.Offset
		if gStart < bl.startRune {
			bl.startRune = gStart
		}
		sp := spanAt(spans, gStart)
		if sp == nil {
			continue
		}
		run := e.buildRun(out, sp, txt, parStart, &penX, missing)
		bl.ascent = math.Max(bl.ascent, run.Ascent)
		bl.descent = math.Max(bl.descent, run.Descent)
		bl.gap = math.Max(bl.gap, fixedToFloat(out.LineBounds.Gap))
		if len(bl.runs) == 0 {
			bl.style = sp.style
		}
		bl.runs = append(bl.runs, run)
	}
	if len(bl.runs) == 0 {
		return nil
	}
	bl.width = penX
	return bl
}

// buildRun converts one shaping output into a glyph run, advancing the
// shared line pen. Tracking widens every advance; tabs jump the pen to
// the next tab stop.
func (e *Engine) buildRun(out *shaping.Output, sp *span, txt []rune, parStart int, penX *float64, missing *int) canvas.TextRun {
	size := sp.fontSize()
	startX := *penX
	run := canvas.TextRun{
		Style:   sp.style,
		Fill:    sp.fill,
		Stroke:  sp.stroke,
		Ascent:  fixedToFloat(out.LineBounds.Ascent),
		Descent: -fixedToFloat(out.LineBounds.Descent),
		Glyphs:  make([]canvas.Glyph, 0, len(out.Glyphs)),
	}
	for _, g := range out.Glyphs {
		cluster := parStart + g.ClusterIndex
		adv := fixedToFloat(g.XAdvance) + sp.style.Tracking
		isTab := cluster < len(txt) && txt[cluster] == '\t'
		if isTab {
			adv = nextTabStop(*penX, sp.style.Tabs) - *penX
		}
		gl := canvas.Glyph{
			GID:      uint32(g.GlyphID),
			Cluster:  cluster,
			X:        *penX + fixedToFloat(g.XOffset),
			Y:        fixedToFloat(g.YOffset),
			XAdvance: adv,
		}
		if g.GlyphID == 0 {
			*missing++
		} else if !isTab {
			gl.Outline = e.outlines.glyphPath(out.Face, g.GlyphID, size)
		}
		run.Glyphs = append(run.Glyphs, gl)
		*penX += adv
	}
	run.Width = *penX - startX
	return run
}

// placeLines stacks the built lines top-down, truncating at the box
// height, then converts baselines to y-up origins.
func (e *Engine) placeLines(built []*builtLine, txt []rune, width, height float64) *canvas.TextLayout {
	type placed struct {
		bl          *builtLine
		baselineTop float64
		xOff        float64
	}
	var placedLines []placed
	cursor := 0.0
	overflowStart := -1
	for _, bl := range built {
		st := bl.style
		if bl.parFirst && len(placedLines) > 0 {
			cursor += st.ParagraphTop
		}
		baselineTop := cursor + bl.ascent
		if height > 0 && baselineTop+bl.descent > height+1e-6 {
			overflowStart = bl.startRune
			break
		}
		xOff := e.alignLine(bl, txt, width)
		placedLines = append(placedLines, placed{bl, baselineTop, xOff})
		step := st.LineHeight
		if step <= 0 {
			step = bl.ascent + bl.descent + bl.gap
		}
		cursor += step
		if bl.parLast {
			cursor += st.ParagraphBottom
		}
	}

	layout := &canvas.TextLayout{Height: cursor}
	boxH := height
	if boxH <= 0 {
		boxH = cursor
	}
	for _, pl := range placedLines {
		layout.Lines = append(layout.Lines, canvas.TextLine{
			Runs:    pl.bl.runs,
			Origin:  canvas.Point{X: pl.xOff, Y: boxH - pl.baselineTop},
			Width:   pl.bl.width,
			Ascent:  pl.bl.ascent,
			Descent: pl.bl.descent,
		})
		layout.Width = math.Max(layout.Width, pl.xOff+pl.bl.width)
	}
	if overflowStart >= 0 {
		layout.Overflow = string(txt[overflowStart:])
	}
	return layout
}

// alignLine computes the line's x origin from indents and alignment,
// justifying glyph advances in place when asked to.
func (e *Engine) alignLine(bl *builtLine, txt []rune, width float64) float64 {
	st := bl.style
	left := st.Indent
	if bl.parFirst && st.FirstLineIndent != 0 {
		left = st.FirstLineIndent
	}
	if width <= 0 {
		return left
	}
	right := width
	if st.TailIndent > 0 {
		right = st.TailIndent
	} else if st.TailIndent < 0 {
		right = width + st.TailIndent
	}
	avail := right - left
	if avail <= 0 {
		return left
	}
	switch st.Align {
	case canvas.AlignCenter:
		return left + (avail-bl.width)/2
	case canvas.AlignRight:
		return left + avail - bl.width
	case canvas.AlignJustified:
		if !bl.parLast {
			justifyLine(bl, txt, avail)
		}
		return left
	default:
		return left
	}
}

// justifyLine distributes the slack of a line evenly over its space
// glyphs, shifting everything after each widened space.
func justifyLine(bl *builtLine, txt []rune, avail float64) {
	extra := avail - bl.width
	if extra <= 0 {
		return
	}
	spaces := 0
	for _, run := range bl.runs {
		for _, g := range run.Glyphs {
			if g.Cluster < len(txt) && txt[g.Cluster] == ' ' {
				spaces++
			}
		}
	}
	if spaces == 0 {
		return
	}
	per := extra / float64(spaces)
	shift := 0.0
	for ri := range bl.runs {
		run := &bl.runs[ri]
		runStart := shift
		for i := range run.Glyphs {
			g := &run.Glyphs[i]
			g.X += shift
			if g.Cluster < len(txt) && txt[g.Cluster] == ' ' {
				g.XAdvance += per
				shift += per
			}
		}
		run.Width += shift - runStart
	}
	bl.width = avail
}

// spanAt finds the span covering a rune index; positions past the last
// span (a trailing newline) belong to the last span.
func spanAt(spans []*span, i int) *span {
	for _, sp := range spans {
		if i >= sp.start && i < sp.end {
			return sp
		}
	}
	if len(spans) > 0 {
		return spans[len(spans)-1]
	}
	return nil
}

func nextTabStop(x float64, tabs []canvas.TabStop) float64 {
	for _, t := range tabs {
		if t.Position > x+1e-6 {
			return t.Position
		}
	}
	return (math.Floor(x/defaultTabInterval) + 1) * defaultTabInterval
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func styleLanguage(tag string) language.Language {
	if tag == "" {
		return language.NewLanguage("en")
	}
	return language.NewLanguage(tag)
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if unicode.IsSpace(r) {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// mapBaseDirection maps the style direction to go-text, detecting the
// first strong character for DirectionAuto.
func mapBaseDirection(d canvas.Direction, runes []rune) di.Direction {
	switch d {
	case canvas.DirectionLTR:
		return di.DirectionLTR
	case canvas.DirectionRTL:
		return di.DirectionRTL
	}
	for _, r := range runes {
		if unicode.In(r, unicode.Hebrew, unicode.Arabic) {
			return di.DirectionRTL
		}
		if unicode.IsLetter(r) {
			return di.DirectionLTR
		}
	}
	return di.DirectionLTR
}

// fontFeatures converts the style's OpenType feature switches, skipping
// malformed tags with a warning.
func (e *Engine) fontFeatures(features map[string]bool) []shaping.FontFeature {
	if len(features) == 0 {
		return nil
	}
	tags := make([]string, 0, len(features))
	for tag := range features {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	out := make([]shaping.FontFeature, 0, len(tags))
	for _, tag := range tags {
		if len(tag) != 4 {
			e.logger.Warn("ignoring malformed OpenType feature tag", "tag", tag)
			continue
		}
		var value uint32
		if features[tag] {
			value = 1
		}
		out = append(out, shaping.FontFeature{Tag: opentype.MustNewTag(tag), Value: value})
	}
	return out
}

// fontVariations converts the style's variation axes, skipping
// malformed tags.
func fontVariations(axes map[string]float64) []font.Variation {
	if len(axes) == 0 {
		return nil
	}
	tags := make([]string, 0, len(axes))
	for tag := range axes {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	out := make([]font.Variation, 0, len(tags))
	for _, tag := range tags {
		if len(tag) != 4 {
			continue
		}
		out = append(out, font.Variation{Tag: opentype.MustNewTag(tag), Value: float32(axes[tag])})
	}
	return out
}
