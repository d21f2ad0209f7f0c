package pptxscene

// GeometryKind discriminates the Geometry sum type: a named
// preset with its adjustment-value overrides, or a fully custom path.
type GeometryKind int

const (
	GeometryPreset GeometryKind = iota
	GeometryCustom
)

// PathCommandKind tags one drawing instruction of a custom geometry path.
type PathCommandKind int

const (
	PathMoveTo PathCommandKind = iota
	PathLineTo
	PathCubicTo
	PathQuadTo
	PathArcTo
	PathClose
)

// Point2D is a single EMU-space coordinate pair, local to the shape's
// bounding box.
type Point2D struct {
	X, Y int64
}

// PathCommand is one step of a custom geometry outline. Which fields are
// meaningful depends on Kind:
//
//	MoveTo/LineTo: To
//	CubicTo:       Ctrl1, Ctrl2, To
//	QuadTo:        Ctrl1, To
//	ArcTo:         To (wR/hR radii as To.X/To.Y), StartAngle, SweepAngle
//	Close:         no fields
type PathCommand struct {
	Kind       PathCommandKind
	Ctrl1      Point2D
	Ctrl2      Point2D
	To         Point2D
	StartAngle float64 // degrees, ArcTo only
	SweepAngle float64 // degrees, ArcTo only
}

// Path is one closed or open outline of a custom geometry, with its own
// fill/stroke-toggle flags (a:path's fill/stroke attributes).
type Path struct {
	Width, Height int64 // the path's local coordinate space extent
	Commands      []PathCommand
	NoFill        bool
	NoStroke      bool
}

// Geometry is the shape-outline sum type: a preset (with guide values),
// a custom path, or none.
type Geometry struct {
	Kind        GeometryKind
	Preset      string             // GeometryPreset: the prstGeom "prst" value, e.g. "roundRect"
	Adjustments map[string]float64 // GeometryPreset: gd name -> value override (guide values, 1/100000 units where applicable)
	Paths       []Path             // GeometryCustom
}

// ResolvePaths returns the geometry's outline paths in the given shape
// bounding box, expanding a preset's parametric formula on demand (custom
// geometries already carry their own paths, fixed at parse time).
func (g *Geometry) ResolvePaths(w, h int64) []Path {
	if g == nil {
		return nil
	}
	if g.Kind == GeometryCustom {
		return g.Paths
	}
	return buildPresetPath(g.Preset, g.Adjustments, w, h)
}

// parsePresetGeometry parses a <a:prstGeom> element into a preset Geometry,
// collecting its avLst guide overrides by name.
func parsePresetGeometry(node *XmlNode) *Geometry {
	g := &Geometry{Kind: GeometryPreset, Preset: node.AttrString("prst", "rect"), Adjustments: map[string]float64{}}
	for _, gd := range node.Child("avLst").ChildrenNS(nsDML, "gd") {
		name := gd.AttrString("name", "")
		if name == "" {
			continue
		}
		g.Adjustments[name] = float64(gd.AttrInt64("fmla", 0))
		if v, ok := gd.Attr("fmla"); ok {
			g.Adjustments[name] = parseGuideFormula(v)
		}
	}
	return g
}

// parseGuideFormula extracts the trailing numeric literal from a guide's
// "fmla" attribute (e.g. "val 50000" -> 50000, "*/ w 1 2" -> 2). A formula
// with no numeric literal at all ("*/ w h") yields zero; the preset table
// falls back to its own default for those, matching the tolerant-degrade
// posture used throughout parsing.
func parseGuideFormula(fmla string) float64 {
	var lastNum float64
	var cur string
	var sawDigit bool
	flush := func() {
		if cur == "" {
			return
		}
		n, ok := parseSignedInt(cur)
		if ok {
			lastNum = float64(n)
			sawDigit = true
		}
		cur = ""
	}
	for _, r := range fmla {
		if (r >= '0' && r <= '9') || r == '-' {
			cur += string(r)
		} else {
			flush()
		}
	}
	flush()
	if !sawDigit {
		return 0
	}
	return lastNum
}

func parseSignedInt(s string) (int, bool) {
	if s == "" || s == "-" {
		return 0, false
	}
	neg := false
	i := 0
	if s[0] == '-' {
		neg = true
		i = 1
	}
	n := 0
	for ; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
		n = n*10 + int(s[i]-'0')
	}
	if neg {
		n = -n
	}
	return n, true
}

// parseCustomGeometry parses a <a:custGeom> element's pathLst into a custom
// Geometry, ignoring the avLst/gdLst/ahLst/cxnLst/rect children that only
// matter for adjustment-handle editing UI, which is out of scope for a
// render-ready scene graph.
func parseCustomGeometry(node *XmlNode) *Geometry {
	g := &Geometry{Kind: GeometryCustom}
	for _, p := range node.Child("pathLst").ChildrenNS(nsDML, "path") {
		path := Path{
			Width:    p.AttrInt64("w", 0),
			Height:   p.AttrInt64("h", 0),
			NoFill:   p.AttrString("fill", "norm") == "none",
			NoStroke: !p.AttrBool("stroke", true),
		}
		for _, c := range p.Children() {
			switch c.LocalName() {
			case "moveTo":
				if pt := firstPoint(c); pt != nil {
					path.Commands = append(path.Commands, PathCommand{Kind: PathMoveTo, To: *pt})
				}
			case "lnTo":
				if pt := firstPoint(c); pt != nil {
					path.Commands = append(path.Commands, PathCommand{Kind: PathLineTo, To: *pt})
				}
			case "cubicBezTo":
				pts := allPoints(c)
				if len(pts) == 3 {
					path.Commands = append(path.Commands, PathCommand{Kind: PathCubicTo, Ctrl1: pts[0], Ctrl2: pts[1], To: pts[2]})
				}
			case "quadBezTo":
				pts := allPoints(c)
				if len(pts) == 2 {
					path.Commands = append(path.Commands, PathCommand{Kind: PathQuadTo, Ctrl1: pts[0], To: pts[1]})
				}
			case "arcTo":
				path.Commands = append(path.Commands, PathCommand{
					Kind:       PathArcTo,
					To:         Point2D{X: c.AttrInt64("wR", 0), Y: c.AttrInt64("hR", 0)},
					StartAngle: degreesFromSixtyThousandths(c.AttrInt("stAng", 0)),
					SweepAngle: degreesFromSixtyThousandths(c.AttrInt("swAng", 0)),
				})
			case "close":
				path.Commands = append(path.Commands, PathCommand{Kind: PathClose})
			}
		}
		g.Paths = append(g.Paths, path)
	}
	return g
}

func firstPoint(node *XmlNode) *Point2D {
	pt := node.Child("pt")
	if !pt.Exists() {
		return nil
	}
	return &Point2D{X: pt.AttrInt64("x", 0), Y: pt.AttrInt64("y", 0)}
}

func allPoints(node *XmlNode) []Point2D {
	var out []Point2D
	for _, pt := range node.ChildrenNS(nsDML, "pt") {
		out = append(out, Point2D{X: pt.AttrInt64("x", 0), Y: pt.AttrInt64("y", 0)})
	}
	return out
}
