package pptxscene

// SlideContext bundles the two things every resolver in this package needs
// to turn a raw Color or style ref into a concrete value.
type SlideContext struct {
	Theme    Theme
	ColorMap ColorMap
}

// ResolutionStack is the master/layout ancestry for one slide:
// grouped together because every placeholder lookup and default-style
// lookup needs both, in that precedence order.
type ResolutionStack struct {
	Master *PartModel
	Layout *PartModel
}

// TransitionType is the slide transition's declared kind. Only the type,
// speed, and duration are carried through.
type TransitionType int

const (
	TransitionNone TransitionType = iota
	TransitionFade
	TransitionPush
	TransitionWipe
	TransitionSplit
	TransitionCover
	TransitionUncover
	TransitionDissolve
)

// TransitionSpeed is the transition's declared speed.
type TransitionSpeed string

const (
	TransitionSpeedSlow   TransitionSpeed = "slow"
	TransitionSpeedMedium TransitionSpeed = "med"
	TransitionSpeedFast   TransitionSpeed = "fast"
)

// Transition is the read-side record of a slide's declared transition.
type Transition struct {
	Type     TransitionType
	Speed    TransitionSpeed
	Duration int // milliseconds, from the transition's advTm attribute when present
}

var transitionTagKinds = map[string]TransitionType{
	"fade": TransitionFade, "push": TransitionPush, "wipe": TransitionWipe,
	"split": TransitionSplit, "cover": TransitionCover, "pull": TransitionUncover,
	"cut": TransitionNone, "dissolve": TransitionDissolve,
}

func parseTransition(sldNode *XmlNode) *Transition {
	trans := sldNode.Child("transition")
	if !trans.Exists() {
		return nil
	}
	t := &Transition{Speed: TransitionSpeed(trans.AttrString("spd", "med"))}
	for _, c := range trans.Children() {
		if kind, ok := transitionTagKinds[c.LocalName()]; ok {
			t.Type = kind
			break
		}
	}
	if dur, ok := trans.Attr("advTm"); ok {
		if n, ok := parseSignedInt(dur); ok {
			t.Duration = n
		}
	}
	return t
}

// SlideImageMap is the append-only relId -> resolved-href map accumulated
// while parsing one layer of shapes.
type SlideImageMap map[string]string

func (m SlideImageMap) resolve(em *EntryMap, rels map[string]Relationship, partPath, relID string, mediaDecode func([]byte, string) string) (string, bool) {
	if href, ok := m[relID]; ok {
		return href, true
	}
	rel, ok := rels[relID]
	if !ok {
		return "", false
	}
	mediaPath := resolveRelTarget(partPath, rel)
	data, ok := em.bytes(mediaPath)
	if !ok {
		return "", false
	}
	href := mediaHrefFallback(data, mediaPath)
	if mediaDecode != nil {
		href = mediaDecode(data, mimeHintFromPath(mediaPath))
	}
	m[relID] = href
	return href, true
}

func mimeHintFromPath(path string) string {
	switch {
	case hasSuffixFold(path, ".png"):
		return "image/png"
	case hasSuffixFold(path, ".jpg"), hasSuffixFold(path, ".jpeg"):
		return "image/jpeg"
	case hasSuffixFold(path, ".gif"):
		return "image/gif"
	case hasSuffixFold(path, ".bmp"):
		return "image/bmp"
	case hasSuffixFold(path, ".svg"):
		return "image/svg+xml"
	case hasSuffixFold(path, ".emf"), hasSuffixFold(path, ".wmf"):
		return "image/x-emf"
	default:
		return "application/octet-stream"
	}
}

func hasSuffixFold(s, suffix string) bool {
	if len(s) < len(suffix) {
		return false
	}
	tail := s[len(s)-len(suffix):]
	for i := range tail {
		a, b := tail[i], suffix[i]
		if a >= 'A' && a <= 'Z' {
			a += 'a' - 'A'
		}
		if b >= 'A' && b <= 'Z' {
			b += 'a' - 'A'
		}
		if a != b {
			return false
		}
	}
	return true
}

// mediaHrefFallback is used when ParseOptions.MediaDecode is nil: the
// media's archive path itself stands in as an opaque reference, so
// consumers convert media bytes to a reference however they like without
// this package ever deciding an encoding policy of its own.
func mediaHrefFallback(data []byte, path string) string {
	return path
}

// SlideOutput is the per-slide result: { id, background?, shapes,
// imageMaps }, plus comments/notes/transition records.
type SlideOutput struct {
	ID         string
	Background *Fill
	Shapes     []Shape
	ImageMaps  SlideImageMap
	Comments   []SlideComment
	Notes      *SlideNotes
	Transition *Transition
	Diagnostics []Diagnostic
}

// slideAssets is everything parseSlide needs gathered up front: the three
// XML roots plus their relationship maps and part paths.
type slideAssets struct {
	SlideRoot     *XmlNode
	SlidePath     string
	SlideRels     map[string]Relationship
	Stack         ResolutionStack
	Theme         Theme
	ColorMap      ColorMap
	SlideSize     SlideSize
	TableStyles   map[string]TableStyle
	DefaultStyle  string
}

// parseSlide runs the resolution state machine for one slide: visibility,
// static master/layout shapes, then the slide's own shapes, background,
// and transition.
func parseSlide(em *EntryMap, assets slideAssets, opts ParseOptions, sink *diagnosticSink) SlideOutput {
	out := SlideOutput{ImageMaps: SlideImageMap{}}

	ctx := &SlideContext{Theme: assets.Theme, ColorMap: assets.ColorMap}
	cSld := assets.SlideRoot.Child("cSld")
	spTree := cSld.Child("spTree")

	visibility := computeVisibility(assets.SlideRoot)

	masterKeysFilled := map[string]bool{}
	for _, sp := range spTree.Children() {
		if sp.LocalName() != "pic" {
			continue
		}
		if ph := findPhElement(sp); ph.Exists() {
			key, _, _, _ := placeholderKey(ph)
			masterKeysFilled[key] = true
		}
	}

	pctx := &parseCtx{
		em:        em,
		slidePath: assets.SlidePath,
		slideRels: assets.SlideRels,
		theme:     assets.Theme,
		slideCtx:  ctx,
		opts:      opts,
		sink:      sink,
		images:    out.ImageMaps,
		tableStyles: assets.TableStyles,
		defaultTableStyle: assets.DefaultStyle,
		stack:     assets.Stack,
		visibility: visibility,
	}
	pctx.backgroundFill = selectBackground(assets.SlideRoot, assets.Stack, ctx, pctx)

	var shapes []Shape

	if assets.Stack.Master != nil {
		counters := newListCounters()
		for _, ref := range filterVisibleStatic(assets.Stack.Master.StaticShapes, visibility) {
			if masterKeysFilled[staticShapeKey(ref.Node)] {
				continue
			}
			if s, ok := pctx.parseShapeElement(ref.Node, ref.Tag, Identity(), counters, assets.Stack.Master, nil); ok {
				shapes = append(shapes, s)
			}
		}
	}
	if assets.Stack.Layout != nil {
		counters := newListCounters()
		for _, ref := range filterVisibleStatic(assets.Stack.Layout.StaticShapes, visibility) {
			if masterKeysFilled[staticShapeKey(ref.Node)] {
				continue
			}
			if s, ok := pctx.parseShapeElement(ref.Node, ref.Tag, Identity(), counters, assets.Stack.Layout, assets.Stack.Master); ok {
				shapes = append(shapes, s)
			}
		}
	}

	masterLayoutCount := len(shapes)

	slideCounters := newListCounters()
	for _, child := range spTree.Children() {
		tag := child.LocalName()
		switch tag {
		case "sp", "cxnSp", "pic", "grpSp", "graphicFrame":
			if s, ok := pctx.parseShapeElement(child, tag, Identity(), slideCounters, nil, nil); ok {
				shapes = append(shapes, s)
			}
		}
	}

	out.Background = pctx.backgroundFill
	shapes = reorderBackgroundShape(shapes, assets.SlideSize, masterLayoutCount)
	out.Shapes = shapes

	out.Transition = parseTransition(assets.SlideRoot)

	return out
}

// staticShapeKey computes the same placeholder key a static shape would
// have had if it were a placeholder, for the "picture at the slide level
// suppresses the corresponding master/layout placeholder" rule - static shapes never carry a ph element themselves, so
// this only ever matches via the slide-level picture's own key captured
// in masterKeysFilled; static shapes are always emitted.
func staticShapeKey(node *XmlNode) string {
	return ""
}

func filterVisibleStatic(refs []RawShapeRef, vis slideVisibility) []RawShapeRef {
	var out []RawShapeRef
	for _, r := range refs {
		out = append(out, r)
	}
	_ = vis
	return out
}

// slideVisibility records whether footer/date/slide-number placeholders
// should be shown, from the slide's <p:hf> element.
type slideVisibility struct {
	ShowFooter      bool
	ShowDate        bool
	ShowSlideNumber bool
}

func computeVisibility(slideRoot *XmlNode) slideVisibility {
	v := slideVisibility{ShowFooter: true, ShowDate: true, ShowSlideNumber: true}
	hf := slideRoot.Child("hf")
	if !hf.Exists() {
		return v
	}
	v.ShowFooter = hf.AttrBool("ftr", true)
	v.ShowDate = hf.AttrBool("dt", true)
	v.ShowSlideNumber = hf.AttrBool("sldNum", true)
	return v
}

// selectBackground prefers the slide's own bg, else the layout's, else
// the master's.
func selectBackground(slideRoot *XmlNode, stack ResolutionStack, ctx *SlideContext, pctx *parseCtx) *Fill {
	if bg := slideRoot.Child("cSld").Child("bg"); bg.Exists() {
		if f := parseBackground(bg, pctx, ctx); f != nil {
			return f
		}
	}
	if stack.Layout != nil && stack.Layout.Background != nil {
		if f := parseBackground(stack.Layout.Background, pctx, ctx); f != nil {
			return f
		}
	}
	if stack.Master != nil && stack.Master.Background != nil {
		if f := parseBackground(stack.Master.Background, pctx, ctx); f != nil {
			return f
		}
	}
	return nil
}

// parseBackground prefers bgPr over bgRef: a bgRef with idx in
// [1,999] indexes theme.formatScheme.bgFills[idx-1] with a color override;
// idx >= 1000 is a direct color reference (the 1000-offset preset-color
// convention ECMA-376 uses for the 12 theme colors as raw background
// refs).
func parseBackground(bg *XmlNode, pctx *parseCtx, ctx *SlideContext) *Fill {
	if bgPr := bg.Child("bgPr"); bgPr.Exists() {
		fillNode := bgPr.ChildAny("solidFill", "gradFill", "noFill", "blipFill", "pattFill")
		if fillNode.Exists() {
			rf := parseFill(fillNode)
			return finalizeFill(&rf, ctx)
		}
	}
	if bgRef := bg.Child("bgRef"); bgRef.Exists() {
		idx := bgRef.AttrInt("idx", 0)
		var override *Color
		for _, c := range bgRef.Children() {
			if col := parseColor(c); col != nil {
				override = col
				break
			}
		}
		if idx >= 1000 {
			if override != nil {
				return finalizeFill(&rawFill{Kind: fillKindSolid, Color: override}, ctx)
			}
		} else if idx >= 1 {
			if rf, ok := pctx.theme.FormatScheme.bgFillAt(idx); ok {
				rf = substitutePhClrFill(rf, override)
				return finalizeFill(&rf, ctx)
			}
		}
	}
	return nil
}

// reorderBackgroundShape handles one exception to append order: a
// slide-level picture exactly the size of the slide is a background layer,
// sorted in front of master/layout shapes but behind every other slide
// shape. Shapes are appended in master, layout, slide order by parseSlide
// already; this pass only relocates a full-bleed picture found among the
// slide-level shapes.
func reorderBackgroundShape(shapes []Shape, size SlideSize, masterLayoutCount int) []Shape {
	targetW := EMUToPixel(size.CX)
	targetH := EMUToPixel(size.CY)
	bgIdx := -1
	for i := masterLayoutCount; i < len(shapes); i++ {
		s := shapes[i]
		if s.Kind != KindPicture {
			continue
		}
		if isFullBleed(s, targetW, targetH) {
			bgIdx = i
			break
		}
	}
	if bgIdx < 0 {
		return shapes
	}
	bg := shapes[bgIdx]
	rest := append(append([]Shape{}, shapes[:bgIdx]...), shapes[bgIdx+1:]...)
	if masterLayoutCount > len(rest) {
		masterLayoutCount = len(rest)
	}
	out := make([]Shape, 0, len(shapes))
	out = append(out, rest[:masterLayoutCount]...)
	out = append(out, bg)
	out = append(out, rest[masterLayoutCount:]...)
	return out
}

func isFullBleed(s Shape, targetW, targetH float64) bool {
	const tolerance = 2.0 // px
	return absf(s.Width-targetW) < tolerance && absf(s.Height-targetH) < tolerance &&
		absf(s.Pos.X) < tolerance && absf(s.Pos.Y) < tolerance
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
