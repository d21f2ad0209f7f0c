package pptxscene

import "math"

// buildPresetPath expands a named preset geometry plus its adjustment-guide
// overrides into concrete paths in the shape's own w x h coordinate space,
// covering the common ECMA-376 preset shapes that need parametric expansion
// (rectangle family, rounded/snipped corner family, ellipse, arcs, and a
// handful of common block shapes). Presets outside this table degrade to
// a plain rectangle rather than failing the parse -
// render-ready fidelity for the long tail of rarely-used presets is an
// explicit Non-goal.
func buildPresetPath(preset string, adj map[string]float64, w, h int64) []Path {
	switch preset {
	case "rect", "frame", "flowChartProcess":
		return []Path{rectPath(w, h)}
	case "ellipse":
		return []Path{ellipsePath(w, h)}
	case "roundRect":
		return []Path{roundRectPath(w, h, adjOr(adj, "adj", 16667), adjOr(adj, "adj", 16667))}
	case "round1Rect":
		return []Path{round1RectPath(w, h, adjOr(adj, "adj", 16667))}
	case "round2SameRect":
		return []Path{round2SameRectPath(w, h, adjOr(adj, "adj1", 16667), adjOr(adj, "adj2", 0))}
	case "round2DiagRect":
		return []Path{round2DiagRectPath(w, h, adjOr(adj, "adj1", 16667), adjOr(adj, "adj2", 0))}
	case "snip1Rect":
		return []Path{snip1RectPath(w, h, adjOr(adj, "adj", 16667))}
	case "snip2SameRect":
		return []Path{snip2SameRectPath(w, h, adjOr(adj, "adj1", 16667), adjOr(adj, "adj2", 0))}
	case "snip2DiagRect":
		return []Path{snip2DiagRectPath(w, h, adjOr(adj, "adj1", 16667), adjOr(adj, "adj2", 16667))}
	case "snipRoundRect":
		return []Path{snipRoundRectPath(w, h, adjOr(adj, "adj1", 16667), adjOr(adj, "adj2", 16667))}
	case "arc":
		return []Path{arcPath(w, h, adjOr(adj, "adj1", 16200000), adjOr(adj, "adj2", 0))}
	case "blockArc":
		return []Path{blockArcPath(w, h, adjOr(adj, "adj1", 10800000), adjOr(adj, "adj2", 0), adjOr(adj, "adj3", 25000))}
	case "chevron":
		return []Path{chevronPath(w, h, adjOr(adj, "adj", 50000))}
	case "homePlate":
		return []Path{homePlatePath(w, h, adjOr(adj, "adj", 50000))}
	case "round2DiagCorner", "corner":
		return []Path{cornerPath(w, h, adjOr(adj, "adj1", 50000), adjOr(adj, "adj2", 0))}
	default:
		return []Path{rectPath(w, h)}
	}
}

// adjOr returns the override for name if present and non-zero, else def. Both are in
// 100,000ths (guide "percent of shape" units), matching ECMA-376 avLst
// conventions.
func adjOr(adj map[string]float64, name string, def float64) float64 {
	if v, ok := adj[name]; ok && v != 0 {
		return v
	}
	return def
}

func pct(v float64) float64 { return v / 100000.0 }

func pt(x, y int64) Point2D { return Point2D{X: x, Y: y} }

func rectPath(w, h int64) Path {
	return Path{
		Width: w, Height: h,
		Commands: []PathCommand{
			{Kind: PathMoveTo, To: pt(0, 0)},
			{Kind: PathLineTo, To: pt(w, 0)},
			{Kind: PathLineTo, To: pt(w, h)},
			{Kind: PathLineTo, To: pt(0, h)},
			{Kind: PathClose},
		},
	}
}

func ellipsePath(w, h int64) Path {
	return Path{
		Width: w, Height: h,
		Commands: []PathCommand{
			{Kind: PathMoveTo, To: pt(0, h/2)},
			{Kind: PathArcTo, To: pt(w/2, h/2), StartAngle: 180, SweepAngle: 180},
			{Kind: PathArcTo, To: pt(w/2, h/2), StartAngle: 0, SweepAngle: 180},
			{Kind: PathClose},
		},
	}
}

// roundRectPath builds a rectangle with four equal corner arcs of radius
// min(w,h)*pct(rx). ry is accepted for call-site symmetry with the two-radius
// presets but PowerPoint's roundRect only exposes a single "adj" guide.
func roundRectPath(w, h int64, rx, ry float64) Path {
	r := int64(math.Min(float64(w), float64(h)) * pct(rx))
	_ = ry
	return cornerArcRect(w, h, r, r, r, r)
}

func round1RectPath(w, h int64, rx float64) Path {
	r := int64(math.Min(float64(w), float64(h)) * pct(rx))
	return cornerArcRect(w, h, r, 0, 0, 0)
}

func round2SameRectPath(w, h int64, r1, r2 float64) Path {
	radius1 := int64(math.Min(float64(w), float64(h)) * pct(r1))
	radius2 := int64(math.Min(float64(w), float64(h)) * pct(r2))
	return cornerArcRect(w, h, radius1, radius1, radius2, radius2)
}

func round2DiagRectPath(w, h int64, r1, r2 float64) Path {
	radius1 := int64(math.Min(float64(w), float64(h)) * pct(r1))
	radius2 := int64(math.Min(float64(w), float64(h)) * pct(r2))
	return cornerArcRect(w, h, radius1, 0, radius2, 0)
}

// cornerArcRect draws a rectangle outline with independently-radiused
// corners (topLeft, topRight, bottomRight, bottomLeft), using quarter-circle
// ArcTo segments, matching the path-building style the remaining "snip"
// variants reuse below.
func cornerArcRect(w, h, tl, tr, br, bl int64) Path {
	cmds := []PathCommand{
		{Kind: PathMoveTo, To: pt(0, tl)},
	}
	if tl > 0 {
		cmds = append(cmds, PathCommand{Kind: PathArcTo, To: pt(tl, tl), StartAngle: 180, SweepAngle: 90})
	}
	cmds = append(cmds, PathCommand{Kind: PathLineTo, To: pt(w-tr, 0)})
	if tr > 0 {
		cmds = append(cmds, PathCommand{Kind: PathArcTo, To: pt(tr, tr), StartAngle: 270, SweepAngle: 90})
	}
	cmds = append(cmds, PathCommand{Kind: PathLineTo, To: pt(w, h-br)})
	if br > 0 {
		cmds = append(cmds, PathCommand{Kind: PathArcTo, To: pt(br, br), StartAngle: 0, SweepAngle: 90})
	}
	cmds = append(cmds, PathCommand{Kind: PathLineTo, To: pt(bl, h)})
	if bl > 0 {
		cmds = append(cmds, PathCommand{Kind: PathArcTo, To: pt(bl, bl), StartAngle: 90, SweepAngle: 90})
	}
	cmds = append(cmds, PathCommand{Kind: PathClose})
	return Path{Width: w, Height: h, Commands: cmds}
}

func snip1RectPath(w, h int64, r float64) Path {
	s := int64(math.Min(float64(w), float64(h)) * pct(r))
	return snipRect(w, h, s, 0, 0, 0)
}

func snip2SameRectPath(w, h int64, r1, r2 float64) Path {
	s1 := int64(math.Min(float64(w), float64(h)) * pct(r1))
	s2 := int64(math.Min(float64(w), float64(h)) * pct(r2))
	return snipRect(w, h, s1, s1, s2, s2)
}

func snip2DiagRectPath(w, h int64, r1, r2 float64) Path {
	s1 := int64(math.Min(float64(w), float64(h)) * pct(r1))
	s2 := int64(math.Min(float64(w), float64(h)) * pct(r2))
	return snipRect(w, h, s1, 0, s2, 0)
}

func snipRoundRectPath(w, h int64, r1, r2 float64) Path {
	// mixed snip/round corners render close enough as a pure snip for a
	// scene-graph consumer that only needs an outline, not a pixel-identical
	// rasterization.
	return snip2DiagRectPath(w, h, r1, r2)
}

// snipRect draws a rectangle with straight 45-degree corner cuts of the
// given sizes (topLeft, topRight, bottomRight, bottomLeft).
func snipRect(w, h, tl, tr, br, bl int64) Path {
	cmds := []PathCommand{
		{Kind: PathMoveTo, To: pt(0, tl)},
	}
	if tl > 0 {
		cmds = append(cmds, PathCommand{Kind: PathLineTo, To: pt(tl, 0)})
	}
	cmds = append(cmds, PathCommand{Kind: PathLineTo, To: pt(w-tr, 0)})
	if tr > 0 {
		cmds = append(cmds, PathCommand{Kind: PathLineTo, To: pt(w, tr)})
	}
	cmds = append(cmds, PathCommand{Kind: PathLineTo, To: pt(w, h-br)})
	if br > 0 {
		cmds = append(cmds, PathCommand{Kind: PathLineTo, To: pt(w-br, h)})
	}
	cmds = append(cmds, PathCommand{Kind: PathLineTo, To: pt(bl, h)})
	if bl > 0 {
		cmds = append(cmds, PathCommand{Kind: PathLineTo, To: pt(0, h-bl)})
	}
	cmds = append(cmds, PathCommand{Kind: PathClose})
	return Path{Width: w, Height: h, Commands: cmds}
}

// arcPath applies the source's own comment-acknowledged correction factor
// (shift the start angle back 60 degrees, compress the sweep by pi*sqrt(2))
// rather than the raw adj1/adj2 angles. Flip state isn't available at this
// level (it's folded into the shape's outer transform, not the path
// builder), so this runs unconditionally; treated as a fidelity target and
// a known deviation, not a verified formula.
func arcPath(w, h int64, startAdj, swingAdj float64) Path {
	start := startAdj/60000.0 - 60
	sweep := swingAdj / 60000.0 / (math.Pi * math.Sqrt2)
	return Path{
		Width: w, Height: h,
		Commands: []PathCommand{
			{Kind: PathMoveTo, To: pt(w/2, h/2)},
			{Kind: PathArcTo, To: pt(w/2, h/2), StartAngle: start, SweepAngle: sweep},
		},
	}
}

func blockArcPath(w, h int64, startAdj, swingAdj, thicknessAdj float64) Path {
	start := startAdj / 60000.0
	sweep := swingAdj / 60000.0
	thickness := pct(thicknessAdj)
	outerR := math.Min(float64(w), float64(h)) / 2
	innerR := outerR * (1 - thickness)
	return Path{
		Width: w, Height: h,
		Commands: []PathCommand{
			{Kind: PathMoveTo, To: pt(w/2, h/2)},
			{Kind: PathArcTo, To: pt(int64(outerR), int64(outerR)), StartAngle: start, SweepAngle: sweep},
			{Kind: PathArcTo, To: pt(int64(innerR), int64(innerR)), StartAngle: start + sweep, SweepAngle: -sweep},
			{Kind: PathClose},
		},
	}
}

func chevronPath(w, h int64, adj float64) Path {
	x := int64(float64(w) * pct(adj))
	return Path{
		Width: w, Height: h,
		Commands: []PathCommand{
			{Kind: PathMoveTo, To: pt(0, 0)},
			{Kind: PathLineTo, To: pt(w-x, 0)},
			{Kind: PathLineTo, To: pt(w, h/2)},
			{Kind: PathLineTo, To: pt(w-x, h)},
			{Kind: PathLineTo, To: pt(0, h)},
			{Kind: PathLineTo, To: pt(x, h/2)},
			{Kind: PathClose},
		},
	}
}

func homePlatePath(w, h int64, adj float64) Path {
	x := int64(float64(w) * pct(adj))
	return Path{
		Width: w, Height: h,
		Commands: []PathCommand{
			{Kind: PathMoveTo, To: pt(0, 0)},
			{Kind: PathLineTo, To: pt(w-x, 0)},
			{Kind: PathLineTo, To: pt(w, h/2)},
			{Kind: PathLineTo, To: pt(w-x, h)},
			{Kind: PathLineTo, To: pt(0, h)},
			{Kind: PathClose},
		},
	}
}

func cornerPath(w, h int64, adj1, adj2 float64) Path {
	x := int64(float64(w) * pct(adj1))
	y := int64(float64(h) * pct(adj2))
	return Path{
		Width: w, Height: h,
		Commands: []PathCommand{
			{Kind: PathMoveTo, To: pt(0, 0)},
			{Kind: PathLineTo, To: pt(x, 0)},
			{Kind: PathLineTo, To: pt(x, y)},
			{Kind: PathLineTo, To: pt(w, y)},
			{Kind: PathLineTo, To: pt(w, h)},
			{Kind: PathLineTo, To: pt(0, h)},
			{Kind: PathClose},
		},
	}
}
