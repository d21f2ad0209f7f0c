package pptxscene

import "strconv"

// parseChartFrame extracts a minimal ChartData from an embedded chart
// part's plotArea.
func (pctx *parseCtx) parseChartFrame(chartRef *XmlNode, base Shape) (Shape, bool) {
	relID, ok := chartRef.AttrNS(nsRel, "id")
	if !ok {
		pctx.sink.unsupported("graphicFrame", "chart reference missing r:id")
		return Shape{}, false
	}
	rel, ok := pctx.slideRels[relID]
	if !ok {
		pctx.sink.relationshipMissing(pctx.slidePath, relID)
		return Shape{}, false
	}
	chartPath := resolveRelTarget(pctx.slidePath, rel)
	text, ok := pctx.em.normalizedText(chartPath)
	if !ok {
		pctx.sink.partMissing(chartPath)
		return Shape{}, false
	}
	root := parseXml(pctx.sink, text, chartPath)

	plotArea := root.Child("chart").Child("plotArea")
	data := &ChartData{}

	for _, plotKind := range []string{"barChart", "lineChart", "pieChart", "areaChart", "scatterChart"} {
		chartNode := plotArea.Child(plotKind)
		if !chartNode.Exists() {
			continue
		}
		data.ChartType = plotKind
		for _, ser := range chartNode.ChildrenNS(nsChart, "ser") {
			data.Series = append(data.Series, parseChartSeries(ser, pctx, &data.Categories))
		}
		break
	}

	out := base
	out.Kind = KindChart
	out.Chart = data
	return out, true
}

func parseChartSeries(ser *XmlNode, pctx *parseCtx, categories *[]string) ChartSeries {
	s := ChartSeries{}
	if tx := ser.Child("tx"); tx.Exists() {
		if v := tx.Child("strRef").Child("strCache"); v.Exists() {
			if pt := v.Child("pt"); pt.Exists() {
				s.Name = pt.Child("v").Text()
			}
		} else if v := tx.Child("v"); v.Exists() {
			s.Name = v.Text()
		}
	}

	if spPr := ser.Child("spPr"); spPr.Exists() {
		if fillNode := spPr.ChildAny("solidFill", "gradFill", "noFill", "pattFill"); fillNode.Exists() {
			rf := parseFill(fillNode)
			if rf.Color != nil {
				col := resolveColor(rf.Color, pctx.slideCtx, false)
				s.Color = &col
			}
		}
	}

	if len(*categories) == 0 {
		if cat := ser.Child("cat"); cat.Exists() {
			*categories = parseChartStringCache(cat)
		}
	}

	if val := ser.Child("val"); val.Exists() {
		s.Values = parseChartNumCache(val)
	}

	return s
}

func parseChartStringCache(cat *XmlNode) []string {
	var out []string
	cache := cat.Child("strRef").Child("strCache")
	if !cache.Exists() {
		cache = cat.Child("numRef").Child("numCache")
	}
	for _, pt := range cache.ChildrenNS(nsChart, "pt") {
		out = append(out, pt.Child("v").Text())
	}
	return out
}

func parseChartNumCache(val *XmlNode) []float64 {
	var out []float64
	cache := val.Child("numRef").Child("numCache")
	for _, pt := range cache.ChildrenNS(nsChart, "pt") {
		f, _ := strconv.ParseFloat(pt.Child("v").Text(), 64)
		out = append(out, f)
	}
	return out
}
