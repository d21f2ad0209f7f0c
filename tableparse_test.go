package pptxscene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParsePresentation_TableDirectCellNoFillInheritsStyle covers a cell
// that carries an explicit direct <a:noFill/> in its own tcPr on top of a
// wholeTbl style that fills every cell red: the direct noFill means
// "inherit from style", not "make this cell transparent", so the cell
// must still come out red.
func TestParsePresentation_TableDirectCellNoFillInheritsStyle(t *testing.T) {
	const styleID = "{TESTSTYLE-NOFILL}"

	tableStylesXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<a:tblStyleLst xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" def="` + styleID + `">
  <a:tblStyle styleId="` + styleID + `" styleName="Test Style">
    <a:wholeTbl><a:tcStyle><a:solidFill><a:srgbClr val="FF0000"/></a:solidFill></a:tcStyle></a:wholeTbl>
  </a:tblStyle>
</a:tblStyleLst>`

	slideXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"
       xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
  <p:cSld>
    <p:spTree>
      <p:graphicFrame>
        <p:nvGraphicFramePr><p:cNvPr id="2" name="Table"/></p:nvGraphicFramePr>
        <p:xfrm><a:off x="0" y="0"/><a:ext cx="1000000" cy="500000"/></p:xfrm>
        <a:graphic>
          <a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/table">
            <a:tbl>
              <a:tblPr><a:tableStyleId>` + styleID + `</a:tableStyleId></a:tblPr>
              <a:tblGrid>
                <a:gridCol w="500000"/><a:gridCol w="500000"/>
              </a:tblGrid>
              <a:tr h="500000">
                <a:tc><a:tcPr><a:noFill/></a:tcPr></a:tc>
                <a:tc/>
              </a:tr>
            </a:tbl>
          </a:graphicData>
        </a:graphic>
      </p:graphicFrame>
    </p:spTree>
  </p:cSld>
</p:sld>`

	files := baseScaffold(emptyMasterXML(), emptyLayoutXML(), slideXML)
	files["ppt/tableStyles.xml"] = tableStylesXML
	files["ppt/_rels/presentation.xml.rels"] = presentationRelsWithTableStyles

	pkg := buildPackage(t, files)

	result, err := ParsePresentation(pkg, ParseOptions{})
	require.NoError(t, err)
	require.Len(t, result.Slides, 1)
	require.Len(t, result.Slides[0].Shapes, 1)

	table := result.Slides[0].Shapes[0]
	require.Equal(t, KindTable, table.Kind)
	require.Len(t, table.Cells, 2)

	for _, cell := range table.Cells {
		require.NotNil(t, cell.Fill, "col %d fill", cell.Col)
		assert.NotEqual(t, FillNone, cell.Fill.Kind, "col %d fill kind", cell.Col)
		assert.Equal(t, "#FF0000", cell.Fill.Color.Hex, "col %d fill color", cell.Col)
	}
}
