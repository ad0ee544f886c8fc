package inkdraw

import (
	xlanguage "golang.org/x/text/language"

	"github.com/inkdraw/inkdraw/canvas"
	"github.com/inkdraw/inkdraw/recording"
)

// FontOption configures SetFont.
type FontOption func(*fontOptions)

type fontOptions struct {
	index int
	size  *float64
}

// WithFontSize sets the font size together with the font.
func WithFontSize(size float64) FontOption {
	return func(o *fontOptions) {
		o.size = &size
	}
}

// WithFontIndex selects a face inside a font collection file.
func WithFontIndex(index int) FontOption {
	return func(o *fontOptions) {
		o.index = index
	}
}

// SetFont sets the font by family name or font file path and returns
// the canonical family name of the face that will be used. An unknown
// family falls back to the default face with a warning.
func (d *Drawing) SetFont(nameOrPath string, opts ...FontOption) (string, error) {
	var cfg fontOptions
	for _, opt := range opts {
		opt(&cfg)
	}
	propagateLogger(d.engine)
	if err := d.record(recording.FontCommand{NameOrPath: nameOrPath, Index: cfg.index}); err != nil {
		return "", err
	}
	if cfg.size != nil {
		if err := d.SetFontSize(*cfg.size); err != nil {
			return "", err
		}
	}
	info, err := d.engine.ResolveFont(d.val.State().Text)
	if err != nil {
		return "", err
	}
	return info.Family, nil
}

// SetFallbackFont sets the face used for characters the primary font
// does not cover.
func (d *Drawing) SetFallbackFont(nameOrPath string, opts ...FontOption) error {
	var cfg fontOptions
	for _, opt := range opts {
		opt(&cfg)
	}
	return d.record(recording.FallbackFontCommand{NameOrPath: nameOrPath, Index: cfg.index})
}

// SetFontSize sets the font size in points.
func (d *Drawing) SetFontSize(size float64) error {
	return d.record(recording.FontSizeCommand{Size: size})
}

// SetLineHeight sets the distance between baselines. Zero restores the
// font's natural line height.
func (d *Drawing) SetLineHeight(height float64) error {
	return d.record(recording.LineHeightCommand{Height: height})
}

// SetTracking adds extra space after every glyph, in points.
func (d *Drawing) SetTracking(tracking float64) error {
	return d.record(recording.TrackingCommand{Tracking: tracking})
}

// SetBaselineShift moves the text baseline up (positive) or down.
func (d *Drawing) SetBaselineShift(shift float64) error {
	return d.record(recording.BaselineShiftCommand{Shift: shift})
}

// SetUnderline sets the underline decoration by name ("none",
// "single", "thick", "double").
func (d *Drawing) SetUnderline(name string) error {
	style, err := canvas.ParseUnderline(name)
	if err != nil {
		return canvas.Usagef("underline", "%v", err)
	}
	return d.record(recording.UnderlineCommand{Style: style})
}

// SetStrikethrough sets the strikethrough decoration by name.
func (d *Drawing) SetStrikethrough(name string) error {
	style, err := canvas.ParseUnderline(name)
	if err != nil {
		return canvas.Usagef("strikethrough", "%v", err)
	}
	return d.record(recording.StrikethroughCommand{Style: style})
}

// SetURL attaches a link URL to subsequent text.
func (d *Drawing) SetURL(u string) error {
	return d.record(recording.URLCommand{URL: u})
}

// SetHyphenation switches soft-hyphen line breaking for text boxes.
func (d *Drawing) SetHyphenation(on bool) error {
	return d.record(recording.HyphenationCommand{On: on})
}

// SetTabs sets the paragraph tab stops. No stops restores the default
// tab grid.
func (d *Drawing) SetTabs(stops ...TabStop) error {
	return d.record(recording.TabsCommand{Stops: stops})
}

// SetLanguage sets the language used for shaping, as a BCP 47 tag
// such as "en" or "nl-BE". The tag is validated; shaping-only support
// means hyphenation dictionaries are not consulted.
func (d *Drawing) SetLanguage(tag string) error {
	if tag != "" {
		if _, err := xlanguage.Parse(tag); err != nil {
			return canvas.Usagef("language", "invalid language tag %q: %v", tag, err)
		}
	}
	return d.record(recording.LanguageCommand{Tag: tag})
}

// SetTextAlign sets the horizontal alignment by name ("left",
// "center", "right", "justified").
func (d *Drawing) SetTextAlign(name string) error {
	align, err := canvas.ParseAlign(name)
	if err != nil {
		return canvas.Usagef("textAlign", "%v", err)
	}
	return d.record(recording.TextAlignCommand{Align: align})
}

// SetWritingDirection sets the base writing direction by name
// ("auto", "ltr", "rtl").
func (d *Drawing) SetWritingDirection(name string) error {
	dir, err := canvas.ParseDirection(name)
	if err != nil {
		return canvas.Usagef("writingDirection", "%v", err)
	}
	return d.record(recording.WritingDirectionCommand{Direction: dir})
}

// OpenTypeFeatures merges OpenType feature settings ("liga", "smcp",
// ...) into the current state; reset replaces them instead.
func (d *Drawing) OpenTypeFeatures(features map[string]bool, reset bool) error {
	return d.record(recording.OpenTypeFeaturesCommand{Features: features, Reset: reset})
}

// FontVariations merges variable font axis values ("wght", "wdth",
// ...) into the current state; reset replaces them instead.
func (d *Drawing) FontVariations(axes map[string]float64, reset bool) error {
	return d.record(recording.FontVariationsCommand{Axes: axes, Reset: reset})
}

// --------------------------------------------------------------------------
// Text drawing and measuring
// --------------------------------------------------------------------------

// plainRun wraps txt in a single-run formatted text using the current
// text style. The style is cloned so later state changes cannot reach
// into recorded commands.
func (d *Drawing) plainRun(txt string) *FormattedText {
	ft := &canvas.FormattedText{}
	ft.Append(canvas.TextRunSource{Text: txt, Style: d.val.State().Text.Clone()})
	return ft
}

// Text draws txt with its first baseline starting at p. The alignment
// (the state's, or an explicit override) moves the anchor: centered
// text centers on p.X, right-aligned text ends at p.X.
func (d *Drawing) Text(txt string, p Point, align ...string) error {
	if txt == "" {
		return nil
	}
	ft := d.plainRun(txt)
	if len(align) > 0 {
		a, err := canvas.ParseAlign(align[0])
		if err != nil {
			return canvas.Usagef("text", "%v", err)
		}
		ft.Runs[0].Style.Align = a
	}
	layout, err := d.engine.Layout(ft, 0, 0, d.val.State().Hyphenation)
	if err != nil {
		return err
	}
	if len(layout.Lines) == 0 {
		return nil
	}

	x := p.X
	switch ft.Runs[0].Style.Align {
	case canvas.AlignCenter:
		x -= layout.Width / 2
	case canvas.AlignRight:
		x -= layout.Width
	}
	// Anchor the first baseline at p.Y: line origins are relative to
	// the box lower-left.
	y := p.Y - layout.Lines[0].Origin.Y
	r := canvas.MakeRect(x, y, layout.Width, layout.Height)
	return d.record(recording.TextBoxCommand{Text: ft, Rect: r})
}

// TextBox lays txt into the rectangle and draws it, wrapping lines at
// the box width and truncating at its height. It returns the text
// that did not fit.
func (d *Drawing) TextBox(txt string, r Rect, align ...string) (string, error) {
	ft := d.plainRun(txt)
	if len(align) > 0 {
		a, err := canvas.ParseAlign(align[0])
		if err != nil {
			return "", canvas.Usagef("textBox", "%v", err)
		}
		ft.Runs[0].Style.Align = a
	}
	return d.drawTextBox(ft, r)
}

// DrawFormattedText lays run-styled text into the rectangle and draws
// it, returning the text that did not fit.
func (d *Drawing) DrawFormattedText(ft *FormattedText, r Rect) (string, error) {
	return d.drawTextBox(ft, r)
}

func (d *Drawing) drawTextBox(ft *FormattedText, r Rect) (string, error) {
	// Record a copy so appending runs afterwards cannot change what
	// replays.
	if err := d.record(recording.TextBoxCommand{Text: ft.Clone(), Rect: r}); err != nil {
		return "", err
	}
	layout, err := d.engine.Layout(ft, r.W, r.H, d.val.State().Hyphenation)
	if err != nil {
		return "", err
	}
	return layout.Overflow, nil
}

// TextSize measures txt with the current text style. A positive width
// wraps the text at that width first.
func (d *Drawing) TextSize(txt string, width float64) (w, h float64, err error) {
	layout, err := d.engine.Layout(d.plainRun(txt), width, 0, d.val.State().Hyphenation)
	if err != nil {
		return 0, 0, err
	}
	return layout.Width, layout.Height, nil
}

// TextOption styles one run appended to a FormattedText.
type TextOption func(*canvas.TextRunSource) error

// TextFont sets the run's font by family name or file path.
func TextFont(nameOrPath string) TextOption {
	return func(r *canvas.TextRunSource) error {
		r.Style.Font = nameOrPath
		return nil
	}
}

// TextFontSize sets the run's font size.
func TextFontSize(size float64) TextOption {
	return func(r *canvas.TextRunSource) error {
		r.Style.FontSize = size
		return nil
	}
}

// TextFill sets the run's fill color in the SetFill component
// convention.
func TextFill(components ...float64) TextOption {
	return func(r *canvas.TextRunSource) error {
		c, err := parseColor("textFill", components)
		if err != nil {
			return err
		}
		r.Fill = canvas.SolidPaint(c)
		return nil
	}
}

// TextStroke sets the run's stroke color.
func TextStroke(components ...float64) TextOption {
	return func(r *canvas.TextRunSource) error {
		c, err := parseColor("textStroke", components)
		if err != nil {
			return err
		}
		r.Stroke = canvas.SolidPaint(c)
		return nil
	}
}

// TextTracking sets the run's extra per-glyph advance.
func TextTracking(tracking float64) TextOption {
	return func(r *canvas.TextRunSource) error {
		r.Style.Tracking = tracking
		return nil
	}
}

// TextLineHeight sets the run's line height.
func TextLineHeight(height float64) TextOption {
	return func(r *canvas.TextRunSource) error {
		r.Style.LineHeight = height
		return nil
	}
}

// TextURL attaches a link URL to the run.
func TextURL(u string) TextOption {
	return func(r *canvas.TextRunSource) error {
		r.Style.URL = u
		return nil
	}
}

// TextUnderline sets the run's underline decoration by name.
func TextUnderline(name string) TextOption {
	return func(r *canvas.TextRunSource) error {
		style, err := canvas.ParseUnderline(name)
		if err != nil {
			return canvas.Usagef("textUnderline", "%v", err)
		}
		r.Style.Underline = style
		return nil
	}
}

// AppendText appends a styled run to a FormattedText. The run starts
// from the session's current text style; options override it.
func (d *Drawing) AppendText(ft *FormattedText, txt string, opts ...TextOption) error {
	run := canvas.TextRunSource{Text: txt, Style: d.val.State().Text.Clone()}
	for _, opt := range opts {
		if err := opt(&run); err != nil {
			return err
		}
	}
	ft.Append(run)
	return nil
}

// --------------------------------------------------------------------------
// Font metric queries
// --------------------------------------------------------------------------

// resolvedMetric looks up the current face and scales a normalized
// metric by the font size.
func (d *Drawing) resolvedMetric(pick func(canvas.FontInfo) float64) (float64, error) {
	style := d.val.State().Text
	info, err := d.engine.ResolveFont(style)
	if err != nil {
		return 0, err
	}
	size := style.FontSize
	if size == 0 {
		size = canvas.DefaultFontSize
	}
	return pick(info) * size, nil
}

// FontAscender returns the current face's ascender at the current
// font size.
func (d *Drawing) FontAscender() (float64, error) {
	return d.resolvedMetric(func(i canvas.FontInfo) float64 { return i.Ascender })
}

// FontDescender returns the descender, a negative value.
func (d *Drawing) FontDescender() (float64, error) {
	return d.resolvedMetric(func(i canvas.FontInfo) float64 { return i.Descender })
}

// FontXHeight returns the x-height.
func (d *Drawing) FontXHeight() (float64, error) {
	return d.resolvedMetric(func(i canvas.FontInfo) float64 { return i.XHeight })
}

// FontCapHeight returns the cap height.
func (d *Drawing) FontCapHeight() (float64, error) {
	return d.resolvedMetric(func(i canvas.FontInfo) float64 { return i.CapHeight })
}

// FontLineHeight returns the natural line height, unless SetLineHeight
// overrode it.
func (d *Drawing) FontLineHeight() (float64, error) {
	if lh := d.val.State().Text.LineHeight; lh != 0 {
		return lh, nil
	}
	return d.resolvedMetric(func(i canvas.FontInfo) float64 { return i.LineHeight })
}

// FontContainsCharacters reports whether the current face covers every
// character of txt, ignoring fallbacks.
func (d *Drawing) FontContainsCharacters(txt string) (bool, error) {
	return d.engine.ContainsCharacters(d.val.State().Text, txt)
}

// FontFilePath returns the file path of the current face, or an empty
// string for the embedded faces.
func (d *Drawing) FontFilePath() (string, error) {
	info, err := d.engine.ResolveFont(d.val.State().Text)
	if err != nil {
		return "", err
	}
	return info.Path, nil
}

// --------------------------------------------------------------------------
// Session fonts
// --------------------------------------------------------------------------

// InstallFont registers a font file for this session and returns its
// family name. EndDrawing releases it.
func (d *Drawing) InstallFont(path string) (string, error) {
	if err := d.record(recording.InstallFontCommand{Path: path}); err != nil {
		return "", err
	}
	family, err := d.engine.InstallFont(path)
	if err != nil {
		return "", err
	}
	d.sessionFonts = append(d.sessionFonts, path)
	return family, nil
}

// UninstallFont removes a session font before EndDrawing would.
func (d *Drawing) UninstallFont(path string) error {
	if err := d.record(recording.UninstallFontCommand{Path: path}); err != nil {
		return err
	}
	for i, p := range d.sessionFonts {
		if p == path {
			d.sessionFonts = append(d.sessionFonts[:i], d.sessionFonts[i+1:]...)
			if err := d.engine.UninstallFont(path); err != nil {
				return err
			}
			break
		}
	}
	return nil
}

// InstalledFonts returns the family names of the session fonts.
func (d *Drawing) InstalledFonts() []string {
	return d.engine.InstalledFonts()
}
