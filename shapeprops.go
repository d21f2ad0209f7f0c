package pptxscene

import "strings"

// --- Internal (pre-resolution) representations ---
//
// raw* types hold a *Color rather than a resolved hex string because
// theme format-scheme entries and shape-level overrides are parsed long
// before a slide's active color map is known. Resolution to the final,
// exported Fill/Stroke/Effect happens once per shape, in the slide parser,
// when a SlideContext is finally available.

type fillKind int

const (
	fillKindNone fillKind = iota
	fillKindSolid
	fillKindGradient
	fillKindBlip
	fillKindPattern
	fillKindGroup
)

type rawGradientStop struct {
	Position float64 // 0..1
	Color    *Color
}

type rawFill struct {
	Kind          fillKind
	Color         *Color // fillKindSolid, also the phClr carrier for theme-indexed fills
	Stops         []rawGradientStop
	GradientAngle float64
	ImageRelID    string
	SrcRect       *Rect
	AlphaModFix   *float64
	PatternPreset string
	PatternFg     *Color
	PatternBg     *Color
}

type rawStroke struct {
	NoFill   bool
	WidthPx  float64
	Cap      string
	Join     string
	Compound string
	Dash     string
	Color    *Color
	Fill     *rawFill
}

type rawEffect struct {
	HasShadow     bool
	BlurPx        float64
	DistancePx    float64
	DirectionDeg  float64
	Color         *Color
}

// Rect is a fractional crop rectangle (left/top/right/bottom, each 0..1)
// used by srcRect on picture fills.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// --- Output representations ---

type FillKind = fillKind

const (
	FillNone     = fillKindNone
	FillSolid    = fillKindSolid
	FillGradient = fillKindGradient
	FillBlip     = fillKindBlip
	FillPattern  = fillKindPattern
	FillGroup    = fillKindGroup
)

// GradientStop is one resolved stop of a gradient fill.
type GradientStop struct {
	Position float64
	Color    ResolvedColor
}

// Fill is the emitted fill of a shape, picture, or table cell.
type Fill struct {
	Kind          FillKind
	Color         ResolvedColor
	Stops         []GradientStop
	GradientAngle float64
	ImageHref     string
	SrcRect       *Rect
	AlphaModFix   *float64
	PatternPreset string
	PatternFg     ResolvedColor
	PatternBg     ResolvedColor
}

// Stroke is the emitted line/border style of a shape or table cell border.
type Stroke struct {
	NoFill   bool
	WidthPx  float64
	Cap      string
	Join     string
	Compound string
	Dash     string
	Color    ResolvedColor
}

// Effect is the emitted outer-shadow effect of a shape.
type Effect struct {
	HasShadow    bool
	BlurPx       float64
	DistancePx   float64
	DirectionDeg float64
	Color        ResolvedColor
}

func finalizeFill(rf *rawFill, ctx *SlideContext) *Fill {
	if rf == nil {
		return nil
	}
	f := &Fill{Kind: rf.Kind, GradientAngle: rf.GradientAngle, SrcRect: rf.SrcRect, AlphaModFix: rf.AlphaModFix, PatternPreset: rf.PatternPreset}
	if rf.Color != nil {
		f.Color = resolveColor(rf.Color, ctx, false)
	}
	for _, s := range rf.Stops {
		f.Stops = append(f.Stops, GradientStop{Position: s.Position, Color: resolveColor(s.Color, ctx, true)})
	}
	if rf.PatternFg != nil {
		f.PatternFg = resolveColor(rf.PatternFg, ctx, false)
	}
	if rf.PatternBg != nil {
		f.PatternBg = resolveColor(rf.PatternBg, ctx, false)
	}
	return f
}

func finalizeStroke(rs *rawStroke, ctx *SlideContext) *Stroke {
	if rs == nil {
		return nil
	}
	s := &Stroke{NoFill: rs.NoFill, WidthPx: rs.WidthPx, Cap: rs.Cap, Join: rs.Join, Compound: rs.Compound, Dash: rs.Dash}
	if rs.Color != nil {
		s.Color = resolveColor(rs.Color, ctx, false)
	}
	return s
}

func finalizeEffect(re *rawEffect, ctx *SlideContext) *Effect {
	if re == nil || !re.HasShadow {
		return nil
	}
	e := &Effect{HasShadow: true, BlurPx: re.BlurPx, DistancePx: re.DistancePx, DirectionDeg: re.DirectionDeg}
	if re.Color != nil {
		e.Color = resolveColor(re.Color, ctx, false)
	}
	return e
}

// substitutePhClrFill (and its Stroke/Effect siblings) replaces a
// theme-indexed fill/stroke/effect's "phClr"
// placeholder color with the concrete override color carried by the
// referencing styleRef (fillRef/lnRef/effectRef), per the DrawingML style
// matrix convention.
func substitutePhClrFill(f rawFill, override *Color) rawFill {
	if override == nil {
		return f
	}
	if f.Color != nil && f.Color.Kind == ColorKindScheme && f.Color.Scheme == "phClr" {
		merged := *override
		merged.Modifiers = append(append([]ColorModifier{}, override.Modifiers...), f.Color.Modifiers...)
		f.Color = &merged
	}
	for i := range f.Stops {
		if f.Stops[i].Color != nil && f.Stops[i].Color.Kind == ColorKindScheme && f.Stops[i].Color.Scheme == "phClr" {
			merged := *override
			merged.Modifiers = append(append([]ColorModifier{}, override.Modifiers...), f.Stops[i].Color.Modifiers...)
			f.Stops[i].Color = &merged
		}
	}
	return f
}

func substitutePhClrStroke(s rawStroke, override *Color) rawStroke {
	if override == nil {
		return s
	}
	if s.Color != nil && s.Color.Kind == ColorKindScheme && s.Color.Scheme == "phClr" {
		merged := *override
		merged.Modifiers = append(append([]ColorModifier{}, override.Modifiers...), s.Color.Modifiers...)
		s.Color = &merged
	}
	return s
}

func substitutePhClrEffect(e rawEffect, override *Color) rawEffect {
	if override == nil {
		return e
	}
	if e.Color != nil && e.Color.Kind == ColorKindScheme && e.Color.Scheme == "phClr" {
		merged := *override
		merged.Modifiers = append(append([]ColorModifier{}, override.Modifiers...), e.Color.Modifiers...)
		e.Color = &merged
	}
	return e
}

// parseFill recognizes solidFill, gradFill, noFill, blipFill, pattFill,
// and grpFill. node is the fill element itself.
func parseFill(node *XmlNode) rawFill {
	if !node.Exists() {
		return rawFill{Kind: fillKindNone}
	}
	switch node.LocalName() {
	case "noFill":
		return rawFill{Kind: fillKindNone}
	case "solidFill":
		for _, c := range node.Children() {
			if col := parseColor(c); col != nil {
				return rawFill{Kind: fillKindSolid, Color: col}
			}
		}
		return rawFill{Kind: fillKindNone}
	case "gradFill":
		f := rawFill{Kind: fillKindGradient}
		gsLst := node.Child("gsLst")
		for _, gs := range gsLst.ChildrenNS(nsDML, "gs") {
			pos := float64(gs.AttrInt("pos", 0)) / 100000.0
			for _, c := range gs.Children() {
				if col := parseColor(c); col != nil {
					f.Stops = append(f.Stops, rawGradientStop{Position: pos, Color: col})
					break
				}
			}
		}
		if lin := node.Child("lin"); lin.Exists() {
			f.GradientAngle = degreesFromSixtyThousandths(lin.AttrInt("ang", 0))
		}
		return f
	case "blipFill":
		f := rawFill{Kind: fillKindBlip}
		blip := node.Child("blip")
		if relID, ok := blip.AttrNS(nsRel, "embed"); ok {
			f.ImageRelID = relID
		} else if relID, ok := blip.AttrNS(nsRel, "link"); ok {
			f.ImageRelID = relID
		}
		for _, mod := range blip.Children() {
			if mod.LocalName() == "alphaModFix" {
				v := float64(mod.AttrInt("amt", 100000)) / 100000.0
				f.AlphaModFix = &v
			}
		}
		if sr := node.Child("srcRect"); sr.Exists() {
			f.SrcRect = &Rect{
				Left:   float64(sr.AttrInt("l", 0)) / 100000.0,
				Top:    float64(sr.AttrInt("t", 0)) / 100000.0,
				Right:  float64(sr.AttrInt("r", 0)) / 100000.0,
				Bottom: float64(sr.AttrInt("b", 0)) / 100000.0,
			}
		}
		return f
	case "pattFill":
		f := rawFill{Kind: fillKindPattern, PatternPreset: node.AttrString("prst", "pct50")}
		if fg := node.Child("fgClr"); fg.Exists() {
			for _, c := range fg.Children() {
				if col := parseColor(c); col != nil {
					f.PatternFg = col
					break
				}
			}
		}
		if bg := node.Child("bgClr"); bg.Exists() {
			for _, c := range bg.Children() {
				if col := parseColor(c); col != nil {
					f.PatternBg = col
					break
				}
			}
		}
		return f
	case "grpFill":
		return rawFill{Kind: fillKindGroup}
	default:
		return rawFill{Kind: fillKindNone}
	}
}

// parseStroke parses a <a:ln> element's width, cap, join, compound, dash,
// and color.
func parseStroke(node *XmlNode) rawStroke {
	if !node.Exists() {
		return rawStroke{NoFill: true}
	}
	s := rawStroke{
		WidthPx:  EMUToPixel(node.AttrInt64("w", 12700)),
		Cap:      node.AttrString("cap", "flat"),
		Compound: node.AttrString("cmpd", "sng"),
	}
	if join := node.ChildAny("round", "bevel", "miter"); join.Exists() {
		s.Join = join.LocalName()
	} else {
		s.Join = "miter"
	}
	fillNode := node.ChildAny("solidFill", "gradFill", "noFill", "pattFill")
	if fillNode.Exists() {
		rf := parseFill(fillNode)
		if rf.Kind == fillKindNone {
			s.NoFill = true
		} else if rf.Kind == fillKindSolid {
			s.Color = rf.Color
		} else {
			s.Fill = &rf
		}
	} else {
		s.NoFill = true
	}
	if dash := node.Child("prstDash"); dash.Exists() {
		s.Dash = dash.AttrString("val", "solid")
	} else {
		s.Dash = "solid"
	}
	return s
}

// parseEffect parses an effectLst for its outerShdw child.
func parseEffect(effectLst *XmlNode) rawEffect {
	shadow := effectLst.Child("outerShdw")
	if !shadow.Exists() {
		return rawEffect{}
	}
	e := rawEffect{
		HasShadow:    true,
		BlurPx:       EMUToPixel(shadow.AttrInt64("blurRad", 0)),
		DistancePx:   EMUToPixel(shadow.AttrInt64("dist", 0)),
		DirectionDeg: degreesFromSixtyThousandths(shadow.AttrInt("dir", 0)),
	}
	for _, c := range shadow.Children() {
		if col := parseColor(c); col != nil {
			e.Color = col
			break
		}
	}
	return e
}

// rawShapeProps is the shape-property parser's output: geometry, fill,
// stroke, effect, plus the raw outer-XML of the fill/stroke nodes so the
// three-layer merge can tell "absent" from "explicit noFill".
type rawShapeProps struct {
	Geometry      *Geometry
	Fill          *rawFill
	Stroke        *rawStroke
	Effect        *rawEffect
	RawFillXML    string // "" means no direct fill node was present at all
	RawStrokeXML  string
	Rotation      int // 60,000ths of a degree
	FlipH, FlipV  bool
	OffsetX, OffY int64
	Width, Height int64
	HasTransform  bool
}

// parseShapeProperties extracts geometry/fill/stroke/effect from an
// <p:spPr>/<p:grpSpPr> node plus the sibling <p:style> node (for
// fillRef/lnRef/effectRef fallback).
func parseShapeProperties(spPr, style *XmlNode, theme Theme, isConnector bool) rawShapeProps {
	var props rawShapeProps

	if xfrm := spPr.Child("xfrm"); xfrm.Exists() {
		props.HasTransform = true
		props.Rotation = xfrm.AttrInt("rot", 0)
		props.FlipH = xfrm.AttrBool("flipH", false)
		props.FlipV = xfrm.AttrBool("flipV", false)
		if off := xfrm.Child("off"); off.Exists() {
			props.OffsetX = off.AttrInt64("x", 0)
			props.OffY = off.AttrInt64("y", 0)
		}
		if ext := xfrm.Child("ext"); ext.Exists() {
			props.Width = ext.AttrInt64("cx", 0)
			props.Height = ext.AttrInt64("cy", 0)
		}
	}

	if prst := spPr.Child("prstGeom"); prst.Exists() {
		props.Geometry = parsePresetGeometry(prst)
	} else if cust := spPr.Child("custGeom"); cust.Exists() {
		props.Geometry = parseCustomGeometry(cust)
	}

	fillNode := spPr.ChildAny("solidFill", "gradFill", "noFill", "blipFill", "pattFill", "grpFill")
	if fillNode.Exists() {
		props.RawFillXML = fillNode.OuterXML()
		rf := parseFill(fillNode)
		props.Fill = &rf
	} else if style.Exists() {
		if ref := style.Child("fillRef"); ref.Exists() {
			idx := ref.AttrInt("idx", 0)
			if f, ok := theme.FormatScheme.fillAt(idx); ok {
				var override *Color
				for _, c := range ref.Children() {
					if col := parseColor(c); col != nil {
						override = col
						break
					}
				}
				f = substitutePhClrFill(f, override)
				props.Fill = &f
			}
		}
	}
	if props.Fill == nil && !isConnector {
		if n := len(theme.FormatScheme.Fills); n > 0 {
			idx := 2
			if n < 2 {
				idx = 1
			}
			if f, ok := theme.FormatScheme.fillAt(idx); ok {
				props.Fill = &f
			}
		}
	}

	if ln := spPr.Child("ln"); ln.Exists() {
		props.RawStrokeXML = ln.OuterXML()
		rs := parseStroke(ln)
		props.Stroke = &rs
	} else if style.Exists() {
		if ref := style.Child("lnRef"); ref.Exists() {
			idx := ref.AttrInt("idx", 0)
			if s, ok := theme.FormatScheme.lineAt(idx); ok {
				var override *Color
				for _, c := range ref.Children() {
					if col := parseColor(c); col != nil {
						override = col
						break
					}
				}
				s = substitutePhClrStroke(s, override)
				props.Stroke = &s
			}
		}
	}

	if effectLst := spPr.Child("effectLst"); effectLst.Exists() {
		re := parseEffect(effectLst)
		if re.HasShadow {
			props.Effect = &re
		}
	} else if style.Exists() {
		if ref := style.Child("effectRef"); ref.Exists() {
			idx := ref.AttrInt("idx", 0)
			if e, ok := theme.FormatScheme.effectAt(idx); ok && e.HasShadow {
				var override *Color
				for _, c := range ref.Children() {
					if col := parseColor(c); col != nil {
						override = col
						break
					}
				}
				e = substitutePhClrEffect(e, override)
				props.Effect = &e
			}
		}
	}

	return props
}

// isExplicitNoFill reports whether the raw fill XML (if any) is an
// explicit <a:noFill/>, as opposed to simply absent.
func isExplicitNoFill(rawXML string) bool {
	return strings.Contains(rawXML, "noFill")
}
