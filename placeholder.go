package pptxscene

import "strconv"

// PlaceholderType is the ph element's "type" attribute; an
// absent type with a present idx implies "body".
type PlaceholderType string

const (
	PlaceholderBody        PlaceholderType = "body"
	PlaceholderTitle       PlaceholderType = "title"
	PlaceholderCenterTitle PlaceholderType = "ctrTitle"
	PlaceholderSubTitle    PlaceholderType = "subTitle"
	PlaceholderDate        PlaceholderType = "dt"
	PlaceholderFooter      PlaceholderType = "ftr"
	PlaceholderSlideNumber PlaceholderType = "sldNum"
	PlaceholderPicture     PlaceholderType = "pic"
	PlaceholderChart       PlaceholderType = "chart"
	PlaceholderTable       PlaceholderType = "tbl"
	PlaceholderDiagram     PlaceholderType = "dgm"
	PlaceholderMedia       PlaceholderType = "media"
	PlaceholderObject      PlaceholderType = "obj"
)

// specialPlaceholderTypes are excluded from the "slide placeholder falls
// back to any master placeholder of matching type" rule: a
// non-special slide placeholder must never silently inherit from a
// dt/ftr/sldNum master placeholder.
func isSpecialPlaceholderType(t PlaceholderType) bool {
	switch t {
	case PlaceholderDate, PlaceholderFooter, PlaceholderSlideNumber:
		return true
	default:
		return false
	}
}

// Placeholder is a master/layout placeholder's inherited style and geometry.
type Placeholder struct {
	Key        string
	Type       PlaceholderType
	HasIdx     bool
	Idx        int
	Pos        *XmlNode // retained for position fallback only; not exported past resolution
	Transform  *rawShapeProps
	ListStyle  *XmlNode
	BodyPr     *XmlNode
	ShapeProps *rawShapeProps
	TxBodyRef  *XmlNode
}

// placeholderKey computes the "idx_<n> if idx present else type" key a
// shape's <p:ph> uses to look up its inherited placeholder.
func placeholderKey(phNode *XmlNode) (string, PlaceholderType, bool, int) {
	typ := PlaceholderType(phNode.AttrString("type", ""))
	idxStr, hasIdx := phNode.Attr("idx")
	idx := 0
	if hasIdx {
		idx, _ = strconv.Atoi(idxStr)
	}
	if typ == "" {
		if hasIdx {
			typ = PlaceholderBody
		} else {
			typ = PlaceholderBody
		}
	}
	if hasIdx {
		return "idx_" + idxStr, typ, true, idx
	}
	return string(typ), typ, false, 0
}

// RawShapeRef is a static (non-placeholder) shape captured on a master or
// layout, re-parsed later by the slide parser in that layer's own
// coordinate system.
type RawShapeRef struct {
	Node *XmlNode
	Tag  string // "sp" | "cxnSp" | "pic" | "grpSp" | "graphicFrame"
}

// TextStyleLevel is one of the nine paragraph+run property levels of a
// titleStyle/bodyStyle/otherStyle default text style list.
type TextStyleLevel struct {
	ParagraphProps *XmlNode
	RunProps       *XmlNode
}

// DefaultTextStyles holds the three named 9-level style lists the
type DefaultTextStyles struct {
	Title [9]TextStyleLevel
	Body  [9]TextStyleLevel
	Other [9]TextStyleLevel
}

// PartModel is the parsed shape/style content of a master or layout part.
type PartModel struct {
	IsMaster          bool
	Placeholders      map[string]Placeholder
	StaticShapes      []RawShapeRef
	DefaultTextStyles DefaultTextStyles
	ColorMap          ColorMap
	Theme             Theme
	Background        *XmlNode
	PartPath          string
	Relationships     map[string]Relationship
	masterPath        string // layouts only: cache key for resolveAncestry's master lookup
}

// parsePartModel parses a slideMaster or slideLayout XML root into a
// PartModel. theme is the already-resolved theme for a master; for a
// layout, baseColorMap is the master's color map, overridden by the
// layout's own clrMapOvr if present.
func parsePartModel(root *XmlNode, isMaster bool, theme Theme, baseColorMap ColorMap, partPath string, rels map[string]Relationship, sink *diagnosticSink) PartModel {
	pm := PartModel{
		IsMaster:      isMaster,
		Placeholders:  map[string]Placeholder{},
		Theme:         theme,
		PartPath:      partPath,
		Relationships: rels,
	}

	if isMaster {
		pm.ColorMap = parseColorMap(root.Child("clrMap"))
	} else {
		pm.ColorMap = mergeColorMapOverride(baseColorMap, root.Child("clrMapOvr"))
	}

	cSld := root.Child("cSld")
	if bg := cSld.Child("bg"); bg.Exists() {
		pm.Background = bg
	}

	spTree := cSld.Child("spTree")
	for _, child := range spTree.Children() {
		tag := child.LocalName()
		switch tag {
		case "sp", "cxnSp", "pic", "grpSp", "graphicFrame":
			if ph := findPhElement(child); ph.Exists() {
				key, typ, hasIdx, idx := placeholderKey(ph)
				spPr := child.Child("spPr")
				style := child.Child("style")
				props := parseShapeProperties(spPr, style, theme, tag == "cxnSp")
				pm.Placeholders[key] = Placeholder{
					Key:        key,
					Type:       typ,
					HasIdx:     hasIdx,
					Idx:        idx,
					Transform:  &props,
					ShapeProps: &props,
					ListStyle:  child.Child("txBody").Child("lstStyle"),
					BodyPr:     child.Child("txBody").Child("bodyPr"),
					TxBodyRef:  child.Child("txBody"),
				}
			} else {
				pm.StaticShapes = append(pm.StaticShapes, RawShapeRef{Node: child, Tag: tag})
			}
		}
	}

	if isMaster {
		txStyles := root.Child("txStyles")
		pm.DefaultTextStyles.Title = parseTextStyleLevels(txStyles.Child("titleStyle"))
		pm.DefaultTextStyles.Body = parseTextStyleLevels(txStyles.Child("bodyStyle"))
		pm.DefaultTextStyles.Other = parseTextStyleLevels(txStyles.Child("otherStyle"))
	}

	return pm
}

// findPhElement looks for a <p:nvSpPr>/<p:nvPr>/<p:ph> element (or the
// cxnSp/pic/graphicFrame/grpSp equivalents, which all nest nvPr one level
// under their respective non-visual properties element).
func findPhElement(shapeNode *XmlNode) *XmlNode {
	for _, nv := range shapeNode.Children() {
		name := nv.LocalName()
		if name == "nvSpPr" || name == "nvCxnSpPr" || name == "nvPicPr" ||
			name == "nvGraphicFramePr" || name == "nvGrpSpPr" {
			if nvPr := nv.Child("nvPr"); nvPr.Exists() {
				if ph := nvPr.Child("ph"); ph.Exists() {
					return ph
				}
			}
		}
	}
	return emptyXmlNode()
}

// parseTextStyleLevels parses a titleStyle/bodyStyle/otherStyle element's
// lvl1pPr..lvl9pPr children into the 9-level array.
func parseTextStyleLevels(styleNode *XmlNode) [9]TextStyleLevel {
	var levels [9]TextStyleLevel
	if !styleNode.Exists() {
		return levels
	}
	names := [9]string{"lvl1pPr", "lvl2pPr", "lvl3pPr", "lvl4pPr", "lvl5pPr", "lvl6pPr", "lvl7pPr", "lvl8pPr", "lvl9pPr"}
	for i, name := range names {
		pPr := styleNode.Child(name)
		if pPr.Exists() {
			levels[i] = TextStyleLevel{ParagraphProps: pPr, RunProps: pPr.Child("defRPr")}
		}
	}
	return levels
}

// lookupPlaceholder resolves a placeholder: exact key match first, then
// (for non-special types) the first master placeholder whose type matches.
func lookupPlaceholder(pm *PartModel, key string, typ PlaceholderType) (Placeholder, bool) {
	if pm == nil {
		return Placeholder{}, false
	}
	if ph, ok := pm.Placeholders[key]; ok {
		return ph, true
	}
	if isSpecialPlaceholderType(typ) {
		return Placeholder{}, false
	}
	for _, ph := range pm.Placeholders {
		if ph.Type == typ && !isSpecialPlaceholderType(ph.Type) {
			return ph, true
		}
	}
	return Placeholder{}, false
}
