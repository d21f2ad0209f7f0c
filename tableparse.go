package pptxscene

// parseTable builds a table shape: grid column widths, hMerge/vMerge/
// gridSpan/rowSpan accumulation, and per-cell fill/border/text resolution
// through the table's named style, banded/edge/corner precedence.
func (pctx *parseCtx) parseTable(tbl *XmlNode, base Shape) (Shape, bool) {
	tblPr := tbl.Child("tblPr")
	styleID := ""
	if styleRef := tblPr.Child("tableStyleId"); styleRef.Exists() {
		styleID = styleRef.Text()
	}
	if styleID == "" {
		styleID = pctx.defaultTableStyle
	}
	style := lookupTableStyle(pctx.tableStyles, styleID)

	firstRow := tblPr.AttrBool("firstRow", false)
	lastRow := tblPr.AttrBool("lastRow", false)
	firstCol := tblPr.AttrBool("firstCol", false)
	lastCol := tblPr.AttrBool("lastCol", false)
	bandRow := tblPr.AttrBool("bandRow", false)
	bandCol := tblPr.AttrBool("bandCol", false)

	var colWidths []int64
	for _, gridCol := range tbl.Child("tblGrid").ChildrenNS(nsDML, "gridCol") {
		colWidths = append(colWidths, gridCol.AttrInt64("w", 0))
	}
	numCols := len(colWidths)

	rows := tbl.ChildrenNS(nsDML, "tr")
	numRows := len(rows)

	// occupied[r][c] marks grid cells already claimed by an earlier cell's
	// gridSpan/rowSpan. hMerge/vMerge continuation tcs each take one grid
	// column; a row whose tc list leaves those continuations out still
	// lands its cells in the right columns by skipping occupied ones.
	occupied := make([][]bool, numRows)
	for i := range occupied {
		occupied[i] = make([]bool, numCols)
	}

	out := Shape{
		Kind:      KindTable,
		Name:      base.Name,
		Pos:       base.Pos,
		Width:     base.Width,
		Height:    base.Height,
		Transform: base.Transform,
		NumRows:   numRows,
		NumCols:   numCols,
	}

	for r, tr := range rows {
		col := 0
		for _, tc := range tr.ChildrenNS(nsDML, "tc") {
			if col >= numCols {
				break
			}
			if tc.AttrBool("hMerge", false) || tc.AttrBool("vMerge", false) {
				col++
				continue
			}
			for col < numCols && occupied[r][col] {
				col++
			}
			if col >= numCols {
				break
			}

			gridSpan := tc.AttrInt("gridSpan", 1)
			if gridSpan < 1 {
				gridSpan = 1
			}
			rowSpan := tc.AttrInt("rowSpan", 1)
			if rowSpan < 1 {
				rowSpan = 1
			}

			for dr := 0; dr < rowSpan && r+dr < numRows; dr++ {
				for dc := 0; dc < gridSpan && col+dc < numCols; dc++ {
					if dr == 0 && dc == 0 {
						continue
					}
					occupied[r+dr][col+dc] = true
				}
			}

			isFirstRow := firstRow && r == 0
			isLastRow := lastRow && r == numRows-1
			isFirstCol := firstCol && col == 0
			isLastCol := lastCol && col+gridSpan-1 == numCols-1
			isDataRow := !isFirstRow && !isLastRow
			isDataCol := !isFirstCol && !isLastCol

			dataRow, dataCol := r, col
			if firstRow {
				dataRow--
			}
			if firstCol {
				dataCol--
			}

			cs := style.WholeTbl
			if bandRow && isDataRow {
				if dataRow%2 == 0 {
					cs = mergeCellStyle(cs, style.Band1H)
				} else {
					cs = mergeCellStyle(cs, style.Band2H)
				}
			}
			if bandCol && isDataCol {
				if dataCol%2 == 0 {
					cs = mergeCellStyle(cs, style.Band1V)
				} else {
					cs = mergeCellStyle(cs, style.Band2V)
				}
			}
			if isFirstCol {
				cs = mergeCellStyle(cs, style.FirstCol)
			}
			if isLastCol {
				cs = mergeCellStyle(cs, style.LastCol)
			}
			if isFirstRow {
				cs = mergeCellStyle(cs, style.FirstRow)
			}
			if isLastRow {
				cs = mergeCellStyle(cs, style.LastRow)
			}
			if isFirstRow && isFirstCol {
				cs = mergeCellStyle(cs, style.NwCell)
			}
			if isFirstRow && isLastCol {
				cs = mergeCellStyle(cs, style.NeCell)
			}
			if isLastRow && isFirstCol {
				cs = mergeCellStyle(cs, style.SwCell)
			}
			if isLastRow && isLastCol {
				cs = mergeCellStyle(cs, style.SeCell)
			}

			tcPr := tc.Child("tcPr")
			if directFill := tcPr.ChildAny("solidFill", "gradFill", "noFill", "blipFill", "pattFill"); directFill.Exists() && directFill.LocalName() != "noFill" {
				rf := parseFill(directFill)
				cs.Fill = &rf
			}
			if lnT := tcPr.Child("lnT"); lnT.Exists() {
				rs := parseStroke(lnT.Child("ln"))
				cs.TopBorder = &rs
			}
			if lnB := tcPr.Child("lnB"); lnB.Exists() {
				rs := parseStroke(lnB.Child("ln"))
				cs.BottomBorder = &rs
			}
			if lnL := tcPr.Child("lnL"); lnL.Exists() {
				rs := parseStroke(lnL.Child("ln"))
				cs.LeftBorder = &rs
			}
			if lnR := tcPr.Child("lnR"); lnR.Exists() {
				rs := parseStroke(lnR.Child("ln"))
				cs.RightBorder = &rs
			}

			cell := Cell{
				Row: r, Col: col,
				RowSpan: rowSpan, ColSpan: gridSpan,
				Fill:         finalizeFill(cs.Fill, pctx.slideCtx),
				TopBorder:    finalizeStroke(cs.TopBorder, pctx.slideCtx),
				BottomBorder: finalizeStroke(cs.BottomBorder, pctx.slideCtx),
				LeftBorder:   finalizeStroke(cs.LeftBorder, pctx.slideCtx),
				RightBorder:  finalizeStroke(cs.RightBorder, pctx.slideCtx),
			}

			if txBody := tc.Child("txBody"); txBody.Exists() {
				counters := newListCounters()
				in := textBodyLayoutInput{
					Paragraphs:     txBody.ChildrenNS(nsDML, "p"),
					AvailableWidth: cellWidthPx(colWidths, col, gridSpan),
					Theme:          pctx.theme,
					Measure:        pctx.opts.measureFunc(),
					Counters:       counters,
				}
				cell.Text = layoutTextBody(in)
			}

			out.Cells = append(out.Cells, cell)
			col++
		}
	}

	return out, true
}

func cellWidthPx(colWidths []int64, col, span int) float64 {
	var total int64
	for i := col; i < col+span && i < len(colWidths); i++ {
		total += colWidths[i]
	}
	w := EMUToPixel(total)
	if w < 1 {
		w = 1
	}
	return w
}

// mergeCellStyle layers override on top of base, field by field: later
// wins, absent means inherit.
func mergeCellStyle(base, override TableCellStyle) TableCellStyle {
	if override.Fill != nil {
		base.Fill = override.Fill
	}
	if override.TopBorder != nil {
		base.TopBorder = override.TopBorder
	}
	if override.BottomBorder != nil {
		base.BottomBorder = override.BottomBorder
	}
	if override.LeftBorder != nil {
		base.LeftBorder = override.LeftBorder
	}
	if override.RightBorder != nil {
		base.RightBorder = override.RightBorder
	}
	if override.TextColor != nil {
		base.TextColor = override.TextColor
	}
	if override.Bold {
		base.Bold = true
	}
	if override.Italic {
		base.Italic = true
	}
	return base
}
