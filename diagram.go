package pptxscene

// diagramPoint is one <dgm:pt> of a data model: a node in the underlying
// document graph, or one of the special pres/parTrans/sibTrans kinds that
// the presentation tree and transition markers use.
type diagramPoint struct {
	ModelID string
	Type    string // "node" | "doc" | "pres" | "parTrans" | "sibTrans" | "asst"
	Text    string
	Node    *XmlNode
}

// diagramConnection is one <dgm:cxn>: a directed edge of the data graph,
// tagged with its relationship kind ("parOf", "presOf", "presParOf", ...).
type diagramConnection struct {
	Type   string
	SrcID  string
	DestID string
	SrcOrd int
}

type diagramModel struct {
	Points      map[string]*diagramPoint
	Connections []diagramConnection
	RootID      string
}

// parseDiagramFrame prefers a prebaked drawing when present, else falls
// back to the layout-script interpreter over the data model.
func (pctx *parseCtx) parseDiagramFrame(relIds *XmlNode, base Shape) (Shape, bool) {
	dmRelID, _ := relIds.AttrNS(nsRel, "dm")
	loRelID, _ := relIds.AttrNS(nsRel, "lo")

	dataRoot, dataPath, ok := pctx.loadDiagramPart(dmRelID)
	if !ok {
		pctx.sink.partMissing("diagram data model")
		return base, false
	}
	model := parseDiagramDataModel(dataRoot)

	if drawingRoot, ok := pctx.loadPrebakedDrawing(dataRoot, dataPath); ok {
		out := base
		out.Kind = KindDiagram
		out.Children = pctx.parsePrebakedDrawing(drawingRoot, model)
		return out, true
	}

	loRoot, _, ok := pctx.loadDiagramPart(loRelID)
	if !ok {
		pctx.sink.partMissing("diagram layout definition")
		out := base
		out.Kind = KindDiagram
		return out, true
	}

	layoutNode := loRoot.ChildAny("layoutNode")
	if !layoutNode.Exists() {
		layoutNode = loRoot
	}

	interp := &diagramInterp{pctx: pctx, model: model, extCX: base.Width, extCY: base.Height}
	rootCtx := diagramExecCtx{points: rootDataPoints(model)}
	interp.run(layoutNode, rootCtx)

	out := base
	out.Kind = KindDiagram
	out.Children = interp.shapes
	return out, true
}

func (pctx *parseCtx) loadDiagramPart(relID string) (*XmlNode, string, bool) {
	if relID == "" {
		return nil, "", false
	}
	rel, ok := pctx.slideRels[relID]
	if !ok {
		return nil, "", false
	}
	path := resolveRelTarget(pctx.slidePath, rel)
	text, ok := pctx.em.normalizedText(path)
	if !ok {
		return nil, "", false
	}
	return parseXml(pctx.sink, text, path), path, true
}

func (pctx *parseCtx) loadPrebakedDrawing(dataRoot *XmlNode, dataPath string) (*XmlNode, bool) {
	ext := dataRoot.Child("extLst")
	if !ext.Exists() {
		return nil, false
	}
	dataModelExt := ext.ChildAny("ext")
	if !dataModelExt.Exists() {
		return nil, false
	}
	relData := dataModelExt.Child("dataModelExt")
	if !relData.Exists() {
		return nil, false
	}
	drawingRelID, ok := relData.Attr("relId")
	if !ok {
		return nil, false
	}
	dataRels := relationshipsFor(pctx.em, dataPath)
	rel, ok := dataRels[drawingRelID]
	if !ok {
		return nil, false
	}
	path := resolveRelTarget(dataPath, rel)
	text, ok := pctx.em.normalizedText(path)
	if !ok {
		return nil, false
	}
	return parseXml(pctx.sink, text, path), true
}

// parsePrebakedDrawing walks a dsp:drawing shape tree, parsing each shape
// with the ordinary shape-property parser and attaching its resolved
// data-point text via the shape's dsp:dataModelId.
func (pctx *parseCtx) parsePrebakedDrawing(drawingRoot *XmlNode, model diagramModel) []Shape {
	visited := map[string]bool{}
	var shapes []Shape
	var walk func(node *XmlNode)
	walk = func(node *XmlNode) {
		for _, child := range node.Children() {
			switch child.LocalName() {
			case "sp":
				if s, ok := pctx.parseDiagramShape(child, model, visited); ok {
					shapes = append(shapes, s)
				}
			case "grpSp", "spTree":
				walk(child)
			}
		}
	}
	walk(drawingRoot)
	return shapes
}

func (pctx *parseCtx) parseDiagramShape(node *XmlNode, model diagramModel, visited map[string]bool) (Shape, bool) {
	spPr := node.Child("spPr")
	style := node.Child("style")
	props := parseShapeProperties(spPr, style, pctx.theme, false)

	s := Shape{
		Kind:     KindShape,
		Name:     shapeName(node),
		Rotation: degreesFromSixtyThousandths(props.Rotation),
	}
	s.Width = EMUToPixel(props.Width)
	s.Height = EMUToPixel(props.Height)
	s.Pos = Pos{X: EMUToPixel(props.OffsetX), Y: EMUToPixel(props.OffY)}
	s.Transform = shapeLocalMatrix(props.OffsetX, props.OffY, props.Width, props.Height, s.Rotation, props.FlipH, props.FlipV)
	s.Geometry = props.Geometry
	s.Fill = finalizeFill(props.Fill, pctx.slideCtx)
	s.Stroke = finalizeStroke(props.Stroke, pctx.slideCtx)
	s.Effect = finalizeEffect(props.Effect, pctx.slideCtx)

	modelID, _ := node.AttrNS(nsDiagDsp, "modelId")
	if modelID == "" {
		modelID, _ = node.Attr("modelId")
	}
	if modelID != "" {
		for k := range visited {
			delete(visited, k)
		}
		if text := resolveDiagramText(model, modelID, visited); text != "" {
			counters := newListCounters()
			layout := layoutTextBody(textBodyLayoutInput{
				AvailableWidth: s.Width,
				Theme:          pctx.theme,
				Measure:        pctx.opts.measureFunc(),
				Counters:       counters,
			})
			layout.Lines = []Line{{Runs: []Run{{Text: text}}}}
			s.Text = &layout
		}
	}

	return s, true
}

// resolveDiagramText resolves a data point's display text: presentation
// points proxy through inbound presOf connections, transition points are
// ignored, and a textless node descends through outbound non-presOf
// connections.
func resolveDiagramText(model diagramModel, modelID string, visited map[string]bool) string {
	if visited[modelID] {
		return ""
	}
	visited[modelID] = true

	pt, ok := model.Points[modelID]
	if !ok {
		return ""
	}
	if pt.Type == "parTrans" || pt.Type == "sibTrans" {
		return ""
	}
	if pt.Text != "" {
		return pt.Text
	}
	if pt.Type == "pres" {
		for _, c := range model.Connections {
			if c.Type == "presOf" && c.DestID == modelID {
				if text := resolveDiagramText(model, c.SrcID, visited); text != "" {
					return text
				}
			}
		}
		return ""
	}
	for _, c := range model.Connections {
		if c.SrcID == modelID && c.Type != "presOf" {
			if text := resolveDiagramText(model, c.DestID, visited); text != "" {
				return text
			}
		}
	}
	return ""
}

func parseDiagramDataModel(root *XmlNode) diagramModel {
	model := diagramModel{Points: map[string]*diagramPoint{}}
	ptLst := root.Child("ptLst")
	for _, pt := range ptLst.ChildrenNS(nsDiagram, "pt") {
		p := &diagramPoint{
			ModelID: pt.AttrString("modelId", ""),
			Type:    pt.AttrString("type", "node"),
		}
		if t := pt.Child("t"); t.Exists() {
			p.Text = collectParagraphText(t)
		}
		if p.Type == "doc" {
			model.RootID = p.ModelID
		}
		model.Points[p.ModelID] = p
	}
	cxnLst := root.Child("cxnLst")
	for _, cxn := range cxnLst.ChildrenNS(nsDiagram, "cxn") {
		model.Connections = append(model.Connections, diagramConnection{
			Type:   cxn.AttrString("type", "parOf"),
			SrcID:  cxn.AttrString("srcId", ""),
			DestID: cxn.AttrString("destId", ""),
			SrcOrd: cxn.AttrInt("srcOrd", 0),
		})
	}
	return model
}

func collectParagraphText(t *XmlNode) string {
	var parts []string
	for _, p := range t.ChildrenNS(nsDML, "p") {
		var line string
		for _, r := range p.ChildrenNS(nsDML, "r") {
			if tn := r.Child("t"); tn.Exists() {
				line += tn.Text()
			}
		}
		parts = append(parts, line)
	}
	return joinLines(parts)
}

func rootDataPoints(model diagramModel) []*diagramPoint {
	if model.RootID == "" {
		var out []*diagramPoint
		for _, p := range model.Points {
			if p.Type == "node" {
				out = append(out, p)
			}
		}
		return out
	}
	var children []*diagramPoint
	for _, c := range model.Connections {
		if c.Type == "parOf" && c.SrcID == model.RootID {
			if p, ok := model.Points[c.DestID]; ok {
				children = append(children, p)
			}
		}
	}
	return children
}

// diagramExecCtx is the layout-script interpreter's current data context:
// the set of data points the enclosing forEach/root bound.
type diagramExecCtx struct {
	points []*diagramPoint
}

type diagramInterp struct {
	pctx        *parseCtx
	model       diagramModel
	extCX, extCY float64
	shapes      []Shape
	cursorY     float64
}

// run interprets one layoutNode (or its equivalent forEach/choose/presOf
// child) against the given data context.
func (in *diagramInterp) run(node *XmlNode, ctx diagramExecCtx) {
	var w, h float64 = in.extCX, in.extCY
	if constrLst := node.Child("constrLst"); constrLst.Exists() {
		for _, c := range constrLst.ChildrenNS(nsDiagram, "constr") {
			switch c.AttrString("type", "") {
			case "w":
				w = EMUToPixel(c.AttrInt64("val", 0))
			case "h":
				h = EMUToPixel(c.AttrInt64("val", 0))
			}
		}
	}

	var childPoints []*diagramPoint
	var childLayoutNodes []*XmlNode
	boundThisNode := false

	for _, child := range node.Children() {
		switch child.LocalName() {
		case "forEach":
			childPoints = append(childPoints, in.evalForEach(child, ctx)...)
			childLayoutNodes = append(childLayoutNodes, childrenNamed(child, "layoutNode")...)
		case "choose":
			pts, branch := in.evalChoose(child, ctx)
			childPoints = append(childPoints, pts...)
			if branch != nil {
				childLayoutNodes = append(childLayoutNodes, childrenNamed(branch, "layoutNode")...)
			}
		case "presOf":
			boundThisNode = true
		case "layoutNode":
			childLayoutNodes = append(childLayoutNodes, child)
		}
	}

	if boundThisNode {
		in.emitShapeForContext(ctx, w, h)
		return
	}

	algType := "lin"
	if alg := node.Child("alg"); alg.Exists() {
		algType = alg.AttrString("type", "lin")
	}

	for _, child := range childLayoutNodes {
		switch {
		case algType == "lin" && len(childPoints) > 0:
			// Each bound point gets the node's own full constrained extent and
			// stacks below the previous one (emitShapeForContext advances
			// cursorY by h every call), rather than sharing a divided slice.
			for _, pt := range childPoints {
				in.runSized(child, diagramExecCtx{points: []*diagramPoint{pt}}, w, h)
			}
		case len(childPoints) > 0:
			in.runSized(child, diagramExecCtx{points: childPoints}, w, h)
		default:
			in.runSized(child, ctx, w, h)
		}
	}
}

// childrenNamed returns every direct child element with the given local
// name, regardless of namespace prefix.
func childrenNamed(node *XmlNode, name string) []*XmlNode {
	var out []*XmlNode
	for _, c := range node.Children() {
		if c.LocalName() == name {
			out = append(out, c)
		}
	}
	return out
}

func (in *diagramInterp) runSized(node *XmlNode, ctx diagramExecCtx, w, h float64) {
	saved := in.extCX
	savedH := in.extCY
	in.extCX, in.extCY = w, h
	in.run(node, ctx)
	in.extCX, in.extCY = saved, savedH
}

func (in *diagramInterp) emitShapeForContext(ctx diagramExecCtx, w, h float64) {
	var text string
	for _, p := range ctx.points {
		if p.Text != "" {
			text = p.Text
			break
		}
	}
	s := Shape{
		Kind:   KindShape,
		Pos:    Pos{X: 0, Y: in.cursorY},
		Width:  w,
		Height: h,
	}
	s.Transform = Identity().Translate(0, in.cursorY)
	if text != "" {
		counters := newListCounters()
		layout := layoutTextBody(textBodyLayoutInput{
			AvailableWidth: w,
			Theme:          in.pctx.theme,
			Measure:        in.pctx.opts.measureFunc(),
			Counters:       counters,
		})
		layout.Lines = []Line{{Runs: []Run{{Text: text}}}}
		s.Text = &layout
	}
	in.cursorY += h
	in.shapes = append(in.shapes, s)
}

func (in *diagramInterp) evalForEach(node *XmlNode, ctx diagramExecCtx) []*diagramPoint {
	axis := node.AttrString("axis", "ch")
	if axis == "self" {
		return ctx.points
	}
	var out []*diagramPoint
	for _, p := range ctx.points {
		for _, c := range in.model.Connections {
			if c.Type == "parOf" && c.SrcID == p.ModelID {
				if child, ok := in.model.Points[c.DestID]; ok {
					out = append(out, child)
				}
			}
		}
	}
	return out
}

// evalChoose evaluates a choose node's if/else branches in order and
// returns the matched branch's bound points along with the branch node
// itself, so the caller can find any layoutNode it wraps.
func (in *diagramInterp) evalChoose(node *XmlNode, ctx diagramExecCtx) ([]*diagramPoint, *XmlNode) {
	for _, branch := range node.Children() {
		switch branch.LocalName() {
		case "if":
			if in.evalIf(branch, ctx) {
				return in.evalForEach(branch, ctx), branch
			}
		case "else":
			return in.evalForEach(branch, ctx), branch
		}
	}
	return nil, nil
}

func (in *diagramInterp) evalIf(ifNode *XmlNode, ctx diagramExecCtx) bool {
	if ifNode.AttrString("func", "") != "cnt" {
		return true
	}
	count := len(in.evalForEach(ifNode, ctx))
	val := ifNode.AttrInt("val", 0)
	switch ifNode.AttrString("op", "gte") {
	case "equ":
		return count == val
	case "neq":
		return count != val
	case "gt":
		return count > val
	case "lt":
		return count < val
	case "gte":
		return count >= val
	case "lte":
		return count <= val
	default:
		return count >= val
	}
}
