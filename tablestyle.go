package pptxscene

// TableCellStyle is the fill/border/text formatting for one named part of a
// table style.
type TableCellStyle struct {
	Fill        *rawFill
	TopBorder   *rawStroke
	BottomBorder *rawStroke
	LeftBorder  *rawStroke
	RightBorder *rawStroke
	TextColor   *Color
	Bold        bool
	Italic      bool
}

// TableStyle is one <a:tableStyle> entry of tableStyles.xml: a named set of
// the thirteen style parts a table can define, used to resolve a table's
// effective per-cell formatting before any direct per-cell overrides.
type TableStyle struct {
	StyleID      string
	WholeTbl     TableCellStyle
	Band1H       TableCellStyle
	Band2H       TableCellStyle
	Band1V       TableCellStyle
	Band2V       TableCellStyle
	FirstRow     TableCellStyle
	LastRow      TableCellStyle
	FirstCol     TableCellStyle
	LastCol      TableCellStyle
	SeCell       TableCellStyle
	SwCell       TableCellStyle
	NeCell       TableCellStyle
	NwCell       TableCellStyle
}

// tableStylePartNames lists the thirteen style-part element names walked
// once per <a:tableStyle>, table-driven rather than a long switch.
var tableStylePartNames = []string{
	"wholeTbl", "band1H", "band2H", "band1V", "band2V",
	"firstRow", "lastRow", "firstCol", "lastCol",
	"seCell", "swCell", "neCell", "nwCell",
}

// parseTableStyles parses ppt/tableStyles.xml's <a:tblStyleLst> into a
// styleID -> TableStyle map, and returns the document's declared default
// style id (possibly empty).
func parseTableStyles(root *XmlNode) (map[string]TableStyle, string) {
	out := map[string]TableStyle{}
	defaultID := root.AttrString("def", "")
	for _, s := range root.ChildrenNS(nsDML, "tableStyle") {
		ts := parseTableStyle(s)
		out[ts.StyleID] = ts
	}
	return out, defaultID
}

func parseTableStyle(node *XmlNode) TableStyle {
	ts := TableStyle{StyleID: node.AttrString("styleId", "")}
	for _, name := range tableStylePartNames {
		part := node.Child(name)
		if !part.Exists() {
			continue
		}
		cs := parseTableCellStyle(part)
		switch name {
		case "wholeTbl":
			ts.WholeTbl = cs
		case "band1H":
			ts.Band1H = cs
		case "band2H":
			ts.Band2H = cs
		case "band1V":
			ts.Band1V = cs
		case "band2V":
			ts.Band2V = cs
		case "firstRow":
			ts.FirstRow = cs
		case "lastRow":
			ts.LastRow = cs
		case "firstCol":
			ts.FirstCol = cs
		case "lastCol":
			ts.LastCol = cs
		case "seCell":
			ts.SeCell = cs
		case "swCell":
			ts.SwCell = cs
		case "neCell":
			ts.NeCell = cs
		case "nwCell":
			ts.NwCell = cs
		}
	}
	return ts
}

func parseTableCellStyle(node *XmlNode) TableCellStyle {
	var cs TableCellStyle

	if tcStyle := node.Child("tcStyle"); tcStyle.Exists() {
		if fill := tcStyle.ChildAny("solidFill", "gradFill", "noFill", "pattFill"); fill.Exists() {
			rf := parseFill(fill)
			cs.Fill = &rf
		}
		if tcBdr := tcStyle.Child("tcBdr"); tcBdr.Exists() {
			cs.TopBorder = parseTableBorder(tcBdr.Child("top"))
			cs.BottomBorder = parseTableBorder(tcBdr.Child("bottom"))
			cs.LeftBorder = parseTableBorder(tcBdr.Child("left"))
			cs.RightBorder = parseTableBorder(tcBdr.Child("right"))
		}
	}

	if txStyle := node.Child("tcTxStyle"); txStyle.Exists() {
		cs.Bold = txStyle.AttrBool("b", false)
		cs.Italic = txStyle.AttrBool("i", false)
		for _, c := range txStyle.Children() {
			if col := parseColor(c); col != nil {
				cs.TextColor = col
				break
			}
		}
	}

	return cs
}

func parseTableBorder(side *XmlNode) *rawStroke {
	if !side.Exists() {
		return nil
	}
	ln := side.Child("ln")
	if !ln.Exists() {
		return nil
	}
	s := parseStroke(ln)
	return &s
}

// lookupTableStyle resolves a table's styleId against the document's
// tableStyles.xml map, falling back to an all-zero (effectively invisible)
// style when the id is absent so a table without a recognized style still
// renders as plain cells rather than failing the parse.
func lookupTableStyle(styles map[string]TableStyle, styleID string) TableStyle {
	if ts, ok := styles[styleID]; ok {
		return ts
	}
	return TableStyle{StyleID: styleID}
}
