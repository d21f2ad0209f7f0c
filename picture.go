package pptxscene

import (
	"fmt"
	"strings"
)

// parsePicture handles a pic element: transform (falling back to the
// inherited placeholder position when the pic element carries no xfrm of
// its own), srcRect crop, alphaModFix opacity, duotone
// recoloring, and a clip PathString when the picture's geometry preset is
// anything other than a plain rectangle.
func (pctx *parseCtx) parsePicture(node *XmlNode, parent Matrix, ownerLayer, ownerParentLayer *PartModel) (Shape, bool) {
	ph := findPhElement(node)
	var key string
	var phType PlaceholderType
	hasPh := ph.Exists()
	var hasIdx bool
	var idx int
	if hasPh {
		key, phType, hasIdx, idx = placeholderKey(ph)
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
	props := parseShapeProperties(spPr, style, pctx.theme, false)

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

	// No xfrm anywhere (no direct one, no placeholder to inherit from) means
	// this picture has no resolvable position; it is omitted entirely rather
	// than guessing a placement.
	if !props.HasTransform {
		return Shape{}, false
	}

	blipFill := node.Child("blipFill")
	blip := blipFill.Child("blip")
	var relID string
	if v, ok := blip.AttrNS(nsRel, "embed"); ok {
		relID = v
	} else if v, ok := blip.AttrNS(nsRel, "link"); ok {
		relID = v
	}

	var href string
	if relID != "" {
		if h, ok := pctx.images.resolve(pctx.em, pctx.slideRels, pctx.slidePath, relID, pctx.opts.MediaDecode); ok {
			href = h
		} else {
			pctx.sink.relationshipMissing(pctx.slidePath, relID)
		}
	}

	img := &ImageRef{Href: href}
	if sr := blipFill.Child("srcRect"); sr.Exists() {
		img.SrcRect = &Rect{
			Left:   float64(sr.AttrInt("l", 0)) / 100000.0,
			Top:    float64(sr.AttrInt("t", 0)) / 100000.0,
			Right:  float64(sr.AttrInt("r", 0)) / 100000.0,
			Bottom: float64(sr.AttrInt("b", 0)) / 100000.0,
		}
	}
	for _, mod := range blip.Children() {
		switch mod.LocalName() {
		case "alphaModFix":
			v := float64(mod.AttrInt("amt", 100000)) / 100000.0
			img.Opacity = &v
		case "duotone":
			var cols []ResolvedColor
			for _, c := range mod.Children() {
				if col := parseColor(c); col != nil {
					cols = append(cols, resolveColor(col, pctx.slideCtx, false))
				}
			}
			if len(cols) == 2 {
				img.Duotone = cols
			}
		}
	}

	shape := Shape{
		Kind:     KindPicture,
		Name:     shapeName(node),
		FlipH:    props.FlipH,
		FlipV:    props.FlipV,
		Rotation: degreesFromSixtyThousandths(props.Rotation),
		Image:    img,
	}
	shape.Width = EMUToPixel(props.Width)
	shape.Height = EMUToPixel(props.Height)
	shape.Pos = Pos{X: EMUToPixel(props.OffsetX), Y: EMUToPixel(props.OffY)}
	local := shapeLocalMatrix(props.OffsetX, props.OffY, props.Width, props.Height, shape.Rotation, props.FlipH, props.FlipV)
	shape.Transform = parent.Multiply(local)

	if props.Geometry != nil && !(props.Geometry.Kind == GeometryPreset && props.Geometry.Preset == "rect") {
		shape.PathString = geometryToPathString(props.Geometry, props.Width, props.Height)
	}

	if hasPh {
		shape.Placeholder = &PlaceholderInfo{Type: phType, HasIdx: hasIdx, Idx: idx}
	}

	return shape, true
}

// geometryToPathString renders a Geometry's resolved paths as an SVG-style
// path data string in pixel space, for picture clip shapes.
func geometryToPathString(g *Geometry, w, h int64) string {
	paths := g.ResolvePaths(w, h)
	var b strings.Builder
	for _, p := range paths {
		for _, c := range p.Commands {
			switch c.Kind {
			case PathMoveTo:
				fmt.Fprintf(&b, "M%.2f,%.2f ", EMUToPixel(c.To.X), EMUToPixel(c.To.Y))
			case PathLineTo:
				fmt.Fprintf(&b, "L%.2f,%.2f ", EMUToPixel(c.To.X), EMUToPixel(c.To.Y))
			case PathCubicTo:
				fmt.Fprintf(&b, "C%.2f,%.2f %.2f,%.2f %.2f,%.2f ",
					EMUToPixel(c.Ctrl1.X), EMUToPixel(c.Ctrl1.Y),
					EMUToPixel(c.Ctrl2.X), EMUToPixel(c.Ctrl2.Y),
					EMUToPixel(c.To.X), EMUToPixel(c.To.Y))
			case PathQuadTo:
				fmt.Fprintf(&b, "Q%.2f,%.2f %.2f,%.2f ",
					EMUToPixel(c.Ctrl1.X), EMUToPixel(c.Ctrl1.Y),
					EMUToPixel(c.To.X), EMUToPixel(c.To.Y))
			case PathArcTo:
				fmt.Fprintf(&b, "A%.2f,%.2f 0 0 1 %.2f,%.2f ",
					EMUToPixel(c.To.X), EMUToPixel(c.To.Y), c.StartAngle, c.SweepAngle)
			case PathClose:
				b.WriteString("Z ")
			}
		}
	}
	return strings.TrimSpace(b.String())
}
