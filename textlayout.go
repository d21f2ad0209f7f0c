package pptxscene

import "strconv"

// FontSpec is the resolved font description of one run.
type FontSpec struct {
	Family string
	Bold   bool
	Italic bool
	SizePx float64
}

// Run is one contiguous run of text sharing font/color/decoration.
type Run struct {
	Text          string
	Font          FontSpec
	Color         ResolvedColor
	Underline     string
	Strikethrough bool
	Highlight     *ResolvedColor
	Hyperlink     string
	BaselineShift float64 // percent
	Caps          string
}

// Line is one laid-out line of a TextLayout.
type Line struct {
	Y           float64
	X           float64
	Bullet      string
	BulletColor *ResolvedColor
	Runs        []Run
}

// TextLayout is the wrapped, positioned output of laying out a text body.
type TextLayout struct {
	TotalHeight float64
	Lines       []Line
}

// runProps is the mergeable run-property bag: every
// field is a pointer so "not set at this level" is distinguishable from
// "explicitly set to the zero value".
type runProps struct {
	SizeHundredths *int
	Bold           *bool
	Italic         *bool
	Underline      *string
	Strike         *bool
	Color          *Color
	Family         *string
	Highlight      *Color
	BaselineShift  *int
	Spacing        *int
	Caps           *string
	Hyperlink      *string
}

func mergeRunProps(base, override runProps) runProps {
	m := base
	if override.SizeHundredths != nil {
		m.SizeHundredths = override.SizeHundredths
	}
	if override.Bold != nil {
		m.Bold = override.Bold
	}
	if override.Italic != nil {
		m.Italic = override.Italic
	}
	if override.Underline != nil {
		m.Underline = override.Underline
	}
	if override.Strike != nil {
		m.Strike = override.Strike
	}
	if override.Color != nil {
		m.Color = override.Color
	}
	if override.Family != nil {
		m.Family = override.Family
	}
	if override.Highlight != nil {
		m.Highlight = override.Highlight
	}
	if override.BaselineShift != nil {
		m.BaselineShift = override.BaselineShift
	}
	if override.Spacing != nil {
		m.Spacing = override.Spacing
	}
	if override.Caps != nil {
		m.Caps = override.Caps
	}
	if override.Hyperlink != nil {
		m.Hyperlink = override.Hyperlink
	}
	return m
}

// parseRunProps parses an <a:rPr> or <a:defRPr> element.
func parseRunProps(node *XmlNode) runProps {
	var rp runProps
	if !node.Exists() {
		return rp
	}
	if v, ok := node.Attr("sz"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			rp.SizeHundredths = &n
		}
	}
	if v, ok := node.Attr("b"); ok {
		b := v == "1" || v == "true"
		rp.Bold = &b
	}
	if v, ok := node.Attr("i"); ok {
		b := v == "1" || v == "true"
		rp.Italic = &b
	}
	if v, ok := node.Attr("u"); ok {
		rp.Underline = &v
	}
	if v, ok := node.Attr("strike"); ok {
		b := v != "noStrike" && v != ""
		rp.Strike = &b
	}
	if v, ok := node.Attr("baseline"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			rp.BaselineShift = &n
		}
	}
	if v, ok := node.Attr("spc"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			rp.Spacing = &n
		}
	}
	if v, ok := node.Attr("cap"); ok {
		rp.Caps = &v
	}
	if fill := node.ChildAny("solidFill"); fill.Exists() {
		for _, c := range fill.Children() {
			if col := parseColor(c); col != nil {
				rp.Color = col
				break
			}
		}
	}
	if latin := node.Child("latin"); latin.Exists() {
		if tf, ok := latin.Attr("typeface"); ok {
			rp.Family = &tf
		}
	}
	if hl := node.Child("highlight"); hl.Exists() {
		for _, c := range hl.Children() {
			if col := parseColor(c); col != nil {
				rp.Highlight = col
				break
			}
		}
	}
	if hlink := node.Child("hlinkClick"); hlink.Exists() {
		if relID, ok := hlink.AttrNS(nsRel, "id"); ok {
			rp.Hyperlink = &relID
		}
	}
	return rp
}

// resolveFontFamily resolves "+mj-lt"/"+mn-lt" theme font aliases through
// the theme, falling back to "Arial" when the theme's own font is unset.
func resolveFontFamily(family string, theme Theme) string {
	switch family {
	case "+mj-lt":
		if theme.FontScheme.Major != "" {
			return theme.FontScheme.Major
		}
		return "Arial"
	case "+mn-lt":
		if theme.FontScheme.Minor != "" {
			return theme.FontScheme.Minor
		}
		return "Arial"
	case "":
		return "Arial"
	default:
		return family
	}
}

// paragraphProps is the mergeable paragraph-property bag.
type paragraphProps struct {
	Align   string
	MarL    int64
	Indent  int64
	Bullet  *Bullet
	DefRun  runProps
}

func defaultParagraphProps() paragraphProps {
	return paragraphProps{Align: "l"}
}

// mergeParagraphLevel folds one pPr node's direct attributes/children onto
// base, left to right: later call takes precedence.
func mergeParagraphLevel(base paragraphProps, node *XmlNode) paragraphProps {
	m := base
	if !node.Exists() {
		return m
	}
	if v, ok := node.Attr("algn"); ok {
		m.Align = v
	}
	if v, ok := node.Attr("marL"); ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			m.MarL = n
		}
	}
	if v, ok := node.Attr("indent"); ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			m.Indent = n
		}
	}
	if b := parseBullet(node); b != nil {
		m.Bullet = b
	}
	if defRPr := node.Child("defRPr"); defRPr.Exists() {
		m.DefRun = mergeRunProps(m.DefRun, parseRunProps(defRPr))
	}
	return m
}

// listCounters tracks the per-level running count for numeric bullets,
// confined to one mutable instance per shape-tree pass and reset at every
// ParseShapeTree entry, per the rearchitecture note.
type listCounters struct {
	counts map[int]int
}

func newListCounters() *listCounters {
	return &listCounters{counts: map[int]int{}}
}

func (lc *listCounters) next(level, startAt int) int {
	if lc.counts[level] == 0 {
		lc.counts[level] = startAt
	} else {
		lc.counts[level]++
	}
	return lc.counts[level]
}

// textBodyLayoutInput is everything layoutTextBody needs for one paragraph
// node plus its resolved effective properties and bodyPr-derived metrics.
type textBodyLayoutInput struct {
	Paragraphs     []*XmlNode
	DefaultLevels  [9]TextStyleLevel // from the shape's governing default-text-style (title/body/other)
	MasterListLvls [9]TextStyleLevel
	LayoutListLvls [9]TextStyleLevel
	AvailableWidth float64 // px, already reduced by insets
	LnSpcReduction float64 // 0..1, from normAutofit
	Theme          Theme
	Measure        MeasureFunc
	Counters       *listCounters
}

// layoutTextBody runs the text layout algorithm end to end: merge stack,
// bullets/numbering, run merge, word wrap, line height, alignment.
func layoutTextBody(in textBodyLayoutInput) TextLayout {
	var layout TextLayout
	y := 0.0

	for _, p := range in.Paragraphs {
		pPr := p.Child("pPr")
		level := 0
		if pPr.Exists() {
			level = pPr.AttrInt("lvl", 0)
		}
		if level < 0 {
			level = 0
		}
		if level > 8 {
			level = 8
		}

		eff := defaultParagraphProps()
		eff = mergeParagraphLevel(eff, in.DefaultLevels[level].ParagraphProps)
		eff = mergeParagraphLevel(eff, in.MasterListLvls[level].ParagraphProps)
		eff = mergeParagraphLevel(eff, in.LayoutListLvls[level].ParagraphProps)
		eff = mergeParagraphLevel(eff, pPr)

		bulletPrefix := ""
		var bulletColor *ResolvedColor
		if eff.Bullet != nil {
			switch eff.Bullet.Type {
			case BulletTypeChar:
				bulletPrefix = eff.Bullet.Char
			case BulletTypeNumeric:
				n := in.Counters.next(level, eff.Bullet.StartAt)
				bulletPrefix = numberPrefix(eff.Bullet.NumFormat, n)
			}
			if eff.Bullet.Color != nil {
				c := resolveColorStandalone(eff.Bullet.Color, in.Theme)
				bulletColor = &c
			}
		}

		runs := collectRuns(p, eff, in.Theme)
		bulletOffset := 0.0
		if bulletPrefix != "" {
			bulletOffset = EMUToPixel(Point(12)) // one default bullet slot width approximation
		}
		indentEMU := eff.MarL + eff.Indent
		available := in.AvailableWidth - EMUToPixel(indentEMU) - bulletOffset
		if available < 1 {
			available = 1
		}

		lines := wrapRuns(runs, available, in.Measure)
		maxSize := 12.0
		for _, r := range runs {
			if r.Font.SizePx > maxSize {
				maxSize = r.Font.SizePx
			}
		}
		lineHeight := maxSize * (1 - in.LnSpcReduction) * 1.25

		for i, lr := range lines {
			x := EMUToPixel(indentEMU)
			ln := Line{Y: y, X: x, Runs: lr}
			if i == 0 {
				ln.Bullet = bulletPrefix
				ln.BulletColor = bulletColor
			}
			ln = alignLine(ln, eff.Align, available, in.Measure)
			layout.Lines = append(layout.Lines, ln)
			y += lineHeight
		}
		if len(lines) == 0 {
			y += lineHeight
		}
	}

	layout.TotalHeight = y
	return layout
}

// collectRuns merges each <a:r>'s rPr with the paragraph's effective
// default run properties and resolves the result to a concrete Run,
// including <a:br/> as a zero-width forced-break marker run and <a:fld/>
// as a plain text run carrying its field's cached text.
func collectRuns(p *XmlNode, eff paragraphProps, theme Theme) []Run {
	var runs []Run
	for _, c := range p.Children() {
		switch c.LocalName() {
		case "r":
			rPr := parseRunProps(c.Child("rPr"))
			merged := mergeRunProps(eff.DefRun, rPr)
			runs = append(runs, runFromProps(merged, c.Child("t").Text(), theme))
		case "fld":
			rPr := parseRunProps(c.Child("rPr"))
			merged := mergeRunProps(eff.DefRun, rPr)
			runs = append(runs, runFromProps(merged, c.Child("t").Text(), theme))
		case "br":
			runs = append(runs, Run{Text: "\n"})
		}
	}
	return runs
}

func runFromProps(rp runProps, text string, theme Theme) Run {
	run := Run{Text: text}
	run.Font.SizePx = 18 * (4.0 / 3.0)
	if rp.SizeHundredths != nil {
		run.Font.SizePx = hundredthsPointToPixel(*rp.SizeHundredths)
	}
	if rp.Bold != nil {
		run.Font.Bold = *rp.Bold
	}
	if rp.Italic != nil {
		run.Font.Italic = *rp.Italic
	}
	family := ""
	if rp.Family != nil {
		family = *rp.Family
	}
	run.Font.Family = resolveFontFamily(family, theme)
	if rp.Color != nil {
		run.Color = resolveColorStandalone(rp.Color, theme)
	}
	if rp.Underline != nil {
		run.Underline = *rp.Underline
	}
	if rp.Strike != nil {
		run.Strikethrough = *rp.Strike
	}
	if rp.Highlight != nil {
		c := resolveColorStandalone(rp.Highlight, theme)
		run.Highlight = &c
	}
	if rp.BaselineShift != nil {
		run.BaselineShift = float64(*rp.BaselineShift) / 1000.0
	}
	if rp.Caps != nil {
		run.Caps = *rp.Caps
	}
	if rp.Hyperlink != nil {
		run.Hyperlink = *rp.Hyperlink
	}
	return run
}

// resolveColorStandalone resolves a Color using only a theme and the
// identity color map - used for bullet/highlight colors, which are
// resolved independently of the shape's own fill but still need theme
// scheme lookups.
func resolveColorStandalone(c *Color, theme Theme) ResolvedColor {
	ctx := &SlideContext{Theme: theme, ColorMap: DefaultColorMap()}
	return resolveColor(c, ctx, false)
}

// wrapRuns breaks runs into words on whitespace and greedily wraps them
// into lines no wider than availableWidth, measuring each word with
// measure. A run boundary never splits a word; an embedded "\n" (from a
// <a:br/> run) always forces a new line.
func wrapRuns(runs []Run, availableWidth float64, measure MeasureFunc) [][]Run {
	if measure == nil {
		measure = stubMeasure
	}
	var lines [][]Run
	var current []Run
	var currentWidth float64

	flush := func() {
		lines = append(lines, current)
		current = nil
		currentWidth = 0
	}

	for _, r := range runs {
		if r.Text == "\n" {
			flush()
			continue
		}
		words := splitKeepSpace(r.Text)
		for _, w := range words {
			if w == "" {
				continue
			}
			style := FontStyle{Family: r.Font.Family, Bold: r.Font.Bold, Italic: r.Font.Italic}
			wWidth := measure(w, style, r.Font.SizePx)
			if currentWidth+wWidth > availableWidth && len(current) > 0 {
				flush()
			}
			wordRun := r
			wordRun.Text = w
			current = append(current, wordRun)
			currentWidth += wWidth
		}
	}
	if len(current) > 0 || len(lines) == 0 {
		lines = append(lines, current)
	}
	return lines
}

// splitKeepSpace splits on spaces while keeping the trailing space attached
// to each word, so re-joined text preserves original spacing.
func splitKeepSpace(s string) []string {
	var out []string
	var cur []rune
	for _, r := range s {
		cur = append(cur, r)
		if r == ' ' {
			out = append(out, string(cur))
			cur = nil
		}
	}
	if len(cur) > 0 {
		out = append(out, string(cur))
	}
	return out
}

// alignLine shifts a line's X according to its paragraph alignment
// (l|ctr|r|just). Justify is approximated as left-alignment; the scene
// graph records line content and a starting X, and a renderer may still
// redistribute inter-word spacing itself.
func alignLine(ln Line, align string, availableWidth float64, measure MeasureFunc) Line {
	if align != "ctr" && align != "r" {
		return ln
	}
	if measure == nil {
		measure = stubMeasure
	}
	var lineWidth float64
	for _, r := range ln.Runs {
		style := FontStyle{Family: r.Font.Family, Bold: r.Font.Bold, Italic: r.Font.Italic}
		lineWidth += measure(r.Text, style, r.Font.SizePx)
	}
	slack := availableWidth - lineWidth
	if slack <= 0 {
		return ln
	}
	switch align {
	case "ctr":
		ln.X += slack / 2
	case "r":
		ln.X += slack
	}
	return ln
}
