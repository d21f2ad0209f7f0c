package pptxscene

// parseCtx bundles everything the shape-tree walk needs that doesn't
// belong on SlideContext itself: the archive, relationship maps, options,
// diagnostics sink, and the accumulating per-layer image map.
type parseCtx struct {
	em                *EntryMap
	slidePath         string
	slideRels         map[string]Relationship
	theme             Theme
	slideCtx          *SlideContext
	opts              ParseOptions
	sink              *diagnosticSink
	images            SlideImageMap
	tableStyles       map[string]TableStyle
	defaultTableStyle string
	stack             ResolutionStack
	visibility        slideVisibility
	backgroundFill    *Fill
}

// parseShapeElement is the tagged dispatcher over a shape-tree element's
// local name: sp/cxnSp go to parseShape, grpSp to parseGroupShape,
// graphicFrame inspects its graphicData URI, pic to parsePicture.
// ownerLayer/ownerParentLayer identify which PartModel's static-shape coordinate
// system this element belongs to (nil for slide-level shapes, where
// placeholder lookups instead use
// pctx.stack).
func (pctx *parseCtx) parseShapeElement(node *XmlNode, tag string, parent Matrix, counters *listCounters, ownerLayer *PartModel, ownerParentLayer *PartModel) (Shape, bool) {
	switch tag {
	case "sp", "cxnSp":
		return pctx.parseShape(node, tag == "cxnSp", parent, counters, ownerLayer, ownerParentLayer)
	case "grpSp":
		return pctx.parseGroupShape(node, parent, ownerLayer, ownerParentLayer)
	case "graphicFrame":
		return pctx.parseGraphicFrame(node, parent)
	case "pic":
		return pctx.parsePicture(node, parent, ownerLayer, ownerParentLayer)
	default:
		return Shape{}, false
	}
}

// parseShape resolves one shape element: placeholder key lookup,
// three-layer property merge, useBgFill handling.
func (pctx *parseCtx) parseShape(node *XmlNode, isConnector bool, parent Matrix, counters *listCounters, ownerLayer, ownerParentLayer *PartModel) (Shape, bool) {
	ph := findPhElement(node)
	var key string
	var phType PlaceholderType
	hasPh := ph.Exists()
	if hasPh {
		key, phType, _, _ = placeholderKey(ph)
		if isSpecialPlaceholderType(phType) && ownerLayer == nil {
			switch phType {
			case PlaceholderFooter:
				if !pctx.visibility.ShowFooter {
					return Shape{}, false
				}
			case PlaceholderDate:
				if !pctx.visibility.ShowDate {
					return Shape{}, false
				}
			case PlaceholderSlideNumber:
				if !pctx.visibility.ShowSlideNumber {
					return Shape{}, false
				}
			}
		}
	}

	var masterPh, layoutPh *Placeholder
	if hasPh && ownerLayer == nil {
		if pctx.stack.Master != nil {
			if p, ok := lookupPlaceholder(pctx.stack.Master, key, phType); ok {
				masterPh = &p
			}
		}
		if pctx.stack.Layout != nil {
			if p, ok := lookupPlaceholder(pctx.stack.Layout, key, phType); ok {
				layoutPh = &p
			}
		}
	}

	spPr := node.Child("spPr")
	style := node.Child("style")
	direct := parseShapeProperties(spPr, style, pctx.theme, isConnector)

	props := direct
	if !props.HasTransform {
		if layoutPh != nil && layoutPh.Transform != nil && layoutPh.Transform.HasTransform {
			props.HasTransform = true
			props.OffsetX, props.OffY, props.Width, props.Height = layoutPh.Transform.OffsetX, layoutPh.Transform.OffY, layoutPh.Transform.Width, layoutPh.Transform.Height
			props.Rotation, props.FlipH, props.FlipV = layoutPh.Transform.Rotation, layoutPh.Transform.FlipH, layoutPh.Transform.FlipV
		} else if masterPh != nil && masterPh.Transform != nil && masterPh.Transform.HasTransform {
			props.HasTransform = true
			props.OffsetX, props.OffY, props.Width, props.Height = masterPh.Transform.OffsetX, masterPh.Transform.OffY, masterPh.Transform.Width, masterPh.Transform.Height
			props.Rotation, props.FlipH, props.FlipV = masterPh.Transform.Rotation, masterPh.Transform.FlipH, masterPh.Transform.FlipV
		}
	}
	if direct.Fill == nil && !isExplicitNoFill(direct.RawFillXML) {
		if layoutPh != nil && layoutPh.ShapeProps != nil && (layoutPh.ShapeProps.Fill != nil || isExplicitNoFill(layoutPh.ShapeProps.RawFillXML)) {
			props.Fill = layoutPh.ShapeProps.Fill
			props.RawFillXML = layoutPh.ShapeProps.RawFillXML
		} else if masterPh != nil && masterPh.ShapeProps != nil && (masterPh.ShapeProps.Fill != nil || isExplicitNoFill(masterPh.ShapeProps.RawFillXML)) {
			props.Fill = masterPh.ShapeProps.Fill
			props.RawFillXML = masterPh.ShapeProps.RawFillXML
		}
	}
	if direct.Stroke == nil {
		if layoutPh != nil && layoutPh.ShapeProps != nil && layoutPh.ShapeProps.Stroke != nil {
			props.Stroke = layoutPh.ShapeProps.Stroke
		} else if masterPh != nil && masterPh.ShapeProps != nil && masterPh.ShapeProps.Stroke != nil {
			props.Stroke = masterPh.ShapeProps.Stroke
		}
	}
	if direct.Effect == nil {
		if layoutPh != nil && layoutPh.ShapeProps != nil && layoutPh.ShapeProps.Effect != nil {
			props.Effect = layoutPh.ShapeProps.Effect
		} else if masterPh != nil && masterPh.ShapeProps != nil && masterPh.ShapeProps.Effect != nil {
			props.Effect = masterPh.ShapeProps.Effect
		}
	}
	if direct.Geometry == nil {
		if layoutPh != nil && layoutPh.ShapeProps != nil && layoutPh.ShapeProps.Geometry != nil {
			props.Geometry = layoutPh.ShapeProps.Geometry
		} else if masterPh != nil && masterPh.ShapeProps != nil && masterPh.ShapeProps.Geometry != nil {
			props.Geometry = masterPh.ShapeProps.Geometry
		}
	}

	useBgFill := spPr.AttrBool("useBgFill", false) || node.AttrBool("useBgFill", false)
	var bgOverride *Fill
	if useBgFill {
		if bgFill := pctx.currentBackgroundFill(); bgFill != nil && bgFill.Kind == FillSolid {
			solid := *bgFill
			bgOverride = &solid
		} else {
			none := rawFill{Kind: fillKindNone}
			props.Fill = &none
		}
	}

	shape := Shape{
		Kind:     KindShape,
		Name:     shapeName(node),
		FlipH:    props.FlipH,
		FlipV:    props.FlipV,
		Rotation: degreesFromSixtyThousandths(props.Rotation),
	}
	shape.Width = EMUToPixel(props.Width)
	shape.Height = EMUToPixel(props.Height)
	shape.Pos = Pos{X: EMUToPixel(props.OffsetX), Y: EMUToPixel(props.OffY)}
	local := shapeLocalMatrix(props.OffsetX, props.OffY, props.Width, props.Height, shape.Rotation, props.FlipH, props.FlipV)
	shape.Transform = parent.Multiply(local)

	if props.Geometry != nil {
		shape.Geometry = props.Geometry
	}
	shape.Fill = pctx.resolveFillRelID(finalizeFill(props.Fill, pctx.slideCtx), direct)
	if bgOverride != nil {
		shape.Fill = bgOverride
	}
	shape.Stroke = finalizeStroke(props.Stroke, pctx.slideCtx)
	shape.Effect = finalizeEffect(props.Effect, pctx.slideCtx)

	txBody := node.Child("txBody")
	if !hasTextContent(txBody) {
		if layoutPh != nil && layoutPh.TxBodyRef != nil && hasTextContent(layoutPh.TxBodyRef) {
			txBody = layoutPh.TxBodyRef
		} else if masterPh != nil && masterPh.TxBodyRef != nil && hasTextContent(masterPh.TxBodyRef) {
			txBody = masterPh.TxBodyRef
		}
	}
	if txBody.Exists() {
		layout := pctx.layoutTextBodyForShape(txBody, phType, shape.Width, counters, masterPh, layoutPh)
		shape.Text = &layout
	}

	return shape, true
}

func hasTextContent(txBody *XmlNode) bool {
	if !txBody.Exists() {
		return false
	}
	for _, p := range txBody.ChildrenNS(nsDML, "p") {
		for _, r := range p.ChildrenNS(nsDML, "r") {
			if r.Child("t").Text() != "" {
				return true
			}
		}
	}
	return false
}

func shapeName(node *XmlNode) string {
	for _, nv := range node.Children() {
		if cNvPr := nv.Child("cNvPr"); cNvPr.Exists() {
			return cNvPr.AttrString("name", "")
		}
	}
	return ""
}

// resolveFillRelID fills in an image href for blip fills from the raw
// relId captured during parsing.
func (pctx *parseCtx) resolveFillRelID(f *Fill, direct rawShapeProps) *Fill {
	if f == nil || f.Kind != FillBlip {
		return f
	}
	if direct.Fill == nil || direct.Fill.ImageRelID == "" {
		return f
	}
	if href, ok := pctx.images.resolve(pctx.em, pctx.slideRels, pctx.slidePath, direct.Fill.ImageRelID, pctx.opts.MediaDecode); ok {
		f.ImageHref = href
	}
	return f
}

func (pctx *parseCtx) currentBackgroundFill() *Fill {
	return pctx.backgroundFill
}

func (pctx *parseCtx) layoutTextBodyForShape(txBody *XmlNode, phType PlaceholderType, widthPx float64, counters *listCounters, masterPh, layoutPh *Placeholder) TextLayout {
	bodyPr := txBody.Child("bodyPr")
	lnSpcReduction := 0.0
	if na := bodyPr.Child("normAutofit"); na.Exists() {
		lnSpcReduction = float64(na.AttrInt("lnSpcReduction", 0)) / 100000.0
	}

	insetL := EMUToPixel(bodyPr.AttrInt64("lIns", 91440))
	insetR := EMUToPixel(bodyPr.AttrInt64("rIns", 91440))
	avail := widthPx - insetL - insetR
	if avail < 1 {
		avail = 1
	}

	var defaults, masterList, layoutList [9]TextStyleLevel
	if pctx.stack.Master != nil {
		defaults = defaultLevelsForType(pctx.stack.Master.DefaultTextStyles, phType)
	}
	if masterPh != nil && masterPh.ListStyle.Exists() {
		masterList = parseTextStyleLevels(masterPh.ListStyle)
	}
	if layoutPh != nil && layoutPh.ListStyle.Exists() {
		layoutList = parseTextStyleLevels(layoutPh.ListStyle)
	}

	measure := pctx.opts.measureFunc()

	in := textBodyLayoutInput{
		Paragraphs:     txBody.ChildrenNS(nsDML, "p"),
		DefaultLevels:  defaults,
		MasterListLvls: masterList,
		LayoutListLvls: layoutList,
		AvailableWidth: avail,
		LnSpcReduction: lnSpcReduction,
		Theme:          pctx.theme,
		Measure:        measure,
		Counters:       counters,
	}
	return layoutTextBody(in)
}

func defaultLevelsForType(dts DefaultTextStyles, phType PlaceholderType) [9]TextStyleLevel {
	switch phType {
	case PlaceholderTitle, PlaceholderCenterTitle, PlaceholderSubTitle:
		return dts.Title
	case PlaceholderBody, "":
		return dts.Body
	default:
		return dts.Other
	}
}

// parseGroupShape recurses into a grpSp's children with an updated matrix,
// pre-multiplying each child's own transform by the group's combined one.
func (pctx *parseCtx) parseGroupShape(node *XmlNode, parent Matrix, ownerLayer, ownerParentLayer *PartModel) (Shape, bool) {
	grpSpPr := node.Child("grpSpPr")
	xfrm := grpSpPr.Child("xfrm")
	if !xfrm.Exists() {
		return Shape{}, false
	}

	off := xfrm.Child("off")
	ext := xfrm.Child("ext")
	chOff := xfrm.Child("chOff")
	chExt := xfrm.Child("chExt")

	offX, offY := off.AttrInt64("x", 0), off.AttrInt64("y", 0)
	extCX, extCY := ext.AttrInt64("cx", 0), ext.AttrInt64("cy", 0)
	chOffX, chOffY := chOff.AttrInt64("x", 0), chOff.AttrInt64("y", 0)
	chExtCX, chExtCY := chExt.AttrInt64("cx", extCX), chExt.AttrInt64("cy", extCY)
	rot := degreesFromSixtyThousandths(xfrm.AttrInt("rot", 0))
	flipH, flipV := xfrm.AttrBool("flipH", false), xfrm.AttrBool("flipV", false)

	local := shapeLocalMatrix(offX, offY, extCX, extCY, rot, flipH, flipV)
	placement := parent.Multiply(local)
	// childToParentMatrix maps chOff-space into the group's own absolute
	// off/ext box; shapeLocalMatrix expects points already re-based to that
	// box's local [0,extCX]x[0,extCY] origin, so re-base before composing
	// with placement (which carries the rotate/flip-about-center step).
	childMap := childToParentMatrix(offX, offY, extCX, extCY, chOffX, chOffY, chExtCX, chExtCY)
	combined := placement.Multiply(translateInverse(offX, offY)).Multiply(childMap)

	group := Shape{
		Kind:      KindGroup,
		Name:      shapeName(node),
		Pos:       Pos{X: EMUToPixel(offX), Y: EMUToPixel(offY)},
		Width:     EMUToPixel(extCX),
		Height:    EMUToPixel(extCY),
		Transform: placement,
		Rotation:  rot,
		FlipH:     flipH,
		FlipV:     flipV,
	}

	counters := newListCounters()
	for _, child := range node.Children() {
		tag := child.LocalName()
		switch tag {
		case "sp", "cxnSp", "pic", "grpSp", "graphicFrame":
			if s, ok := pctx.parseShapeElement(child, tag, combined, counters, ownerLayer, ownerParentLayer); ok {
				group.Children = append(group.Children, s)
			}
		}
	}

	return group, true
}

func translateInverse(x, y int64) Matrix {
	return Identity().Translate(-float64(x), -float64(y))
}

// parseGraphicFrame inspects graphicData.uri to dispatch to table, chart,
// or diagram parsing.
func (pctx *parseCtx) parseGraphicFrame(node *XmlNode, parent Matrix) (Shape, bool) {
	xfrm := node.Child("xfrm")
	offX, offY := int64(0), int64(0)
	extCX, extCY := int64(0), int64(0)
	if off := xfrm.Child("off"); off.Exists() {
		offX, offY = off.AttrInt64("x", 0), off.AttrInt64("y", 0)
	}
	if ext := xfrm.Child("ext"); ext.Exists() {
		extCX, extCY = ext.AttrInt64("cx", 0), ext.AttrInt64("cy", 0)
	}
	local := shapeLocalMatrix(offX, offY, extCX, extCY, 0, false, false)
	transform := parent.Multiply(local)

	graphic := node.Child("graphic")
	graphicData := graphic.Child("graphicData")
	uri := graphicData.AttrString("uri", "")

	base := Shape{
		Name:      shapeName(node),
		Pos:       Pos{X: EMUToPixel(offX), Y: EMUToPixel(offY)},
		Width:     EMUToPixel(extCX),
		Height:    EMUToPixel(extCY),
		Transform: transform,
	}

	switch uri {
	case graphicDataTable:
		if tbl := graphicData.Child("tbl"); tbl.Exists() {
			return pctx.parseTable(tbl, base)
		}
	case graphicDataChart:
		if chartRef := graphicData.ChildNS(nsChart, "chart"); chartRef.Exists() {
			return pctx.parseChartFrame(chartRef, base)
		}
	case graphicDataDiagram:
		if relIds := graphicData.Child("relIds"); relIds.Exists() {
			return pctx.parseDiagramFrame(relIds, base)
		}
	}
	pctx.sink.unsupported("graphicFrame", "unrecognized graphicData uri "+uri)
	return Shape{}, false
}
