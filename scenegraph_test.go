package pptxscene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParsePresentation_MinimalDeck covers a single-slide deck whose only
// declared formatting is the master's solid red background: no layout
// override, no shapes anywhere.
func TestParsePresentation_MinimalDeck(t *testing.T) {
	masterXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sldMaster xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"
             xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
  <p:cSld>
    <p:bg>
      <p:bgPr>
        <a:solidFill><a:srgbClr val="FF0000"/></a:solidFill>
      </p:bgPr>
    </p:bg>
    <p:spTree/>
  </p:cSld>
</p:sldMaster>`

	pkg := buildPackage(t, baseScaffold(masterXML, emptyLayoutXML(), emptySlideXML()))

	result, err := ParsePresentation(pkg, ParseOptions{})
	require.NoError(t, err)
	require.Len(t, result.Slides, 1)

	slide := result.Slides[0]
	require.NotNil(t, slide.Background)
	assert.Equal(t, FillSolid, slide.Background.Kind)
	assert.Equal(t, "#FF0000", slide.Background.Color.Hex)
	assert.Empty(t, slide.Shapes)
}

// TestParsePresentation_FillInheritance covers the three-layer fill merge:
// the master placeholder carries a solid black fill, the layout placeholder
// overrides it with an explicit noFill, and the slide placeholder carries no
// fill node at all - the layout's noFill must win, resolving to Fill{Kind:
// FillNone} rather than a nil Fill or the master's black.
func TestParsePresentation_FillInheritance(t *testing.T) {
	masterXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sldMaster xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"
             xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
  <p:cSld>
    <p:spTree>
      <p:sp>
        <p:nvSpPr>
          <p:cNvPr id="2" name="MasterBody"/>
          <p:cNvSpPr/>
          <p:nvPr><p:ph type="body" idx="1"/></p:nvPr>
        </p:nvSpPr>
        <p:spPr>
          <a:xfrm><a:off x="100" y="100"/><a:ext cx="200" cy="200"/></a:xfrm>
          <a:solidFill><a:srgbClr val="000000"/></a:solidFill>
        </p:spPr>
      </p:sp>
    </p:spTree>
  </p:cSld>
</p:sldMaster>`

	layoutXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sldLayout xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"
             xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
  <p:cSld>
    <p:spTree>
      <p:sp>
        <p:nvSpPr>
          <p:cNvPr id="2" name="LayoutBody"/>
          <p:cNvSpPr/>
          <p:nvPr><p:ph type="body" idx="1"/></p:nvPr>
        </p:nvSpPr>
        <p:spPr><a:noFill/></p:spPr>
      </p:sp>
    </p:spTree>
  </p:cSld>
</p:sldLayout>`

	slideXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"
       xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
  <p:cSld>
    <p:spTree>
      <p:sp>
        <p:nvSpPr>
          <p:cNvPr id="2" name="SlideBody"/>
          <p:cNvSpPr/>
          <p:nvPr><p:ph type="body" idx="1"/></p:nvPr>
        </p:nvSpPr>
        <p:spPr/>
      </p:sp>
    </p:spTree>
  </p:cSld>
</p:sld>`

	pkg := buildPackage(t, baseScaffold(masterXML, layoutXML, slideXML))

	result, err := ParsePresentation(pkg, ParseOptions{})
	require.NoError(t, err)
	require.Len(t, result.Slides, 1)
	require.Len(t, result.Slides[0].Shapes, 1)

	shape := result.Slides[0].Shapes[0]
	require.NotNil(t, shape.Fill)
	assert.Equal(t, FillNone, shape.Fill.Kind)
}

// TestParsePresentation_ThemeFontAlias covers a run whose typeface is the
// "+mn-lt" theme alias: it must resolve through the (default, since this
// fixture carries no theme part) theme's minor font, and its sz/i
// attributes must convert to pixel size and italic correctly.
func TestParsePresentation_ThemeFontAlias(t *testing.T) {
	slideXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"
       xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
  <p:cSld>
    <p:spTree>
      <p:sp>
        <p:nvSpPr>
          <p:cNvPr id="2" name="TextBox"/>
          <p:cNvSpPr txBox="1"/>
          <p:nvPr/>
        </p:nvSpPr>
        <p:spPr>
          <a:xfrm><a:off x="0" y="0"/><a:ext cx="914400" cy="914400"/></a:xfrm>
        </p:spPr>
        <p:txBody>
          <a:bodyPr/>
          <a:p>
            <a:r>
              <a:rPr sz="1800" i="1"><a:latin typeface="+mn-lt"/></a:rPr>
              <a:t>Hello</a:t>
            </a:r>
          </a:p>
        </p:txBody>
      </p:sp>
    </p:spTree>
  </p:cSld>
</p:sld>`

	pkg := buildPackage(t, baseScaffold(emptyMasterXML(), emptyLayoutXML(), slideXML))

	result, err := ParsePresentation(pkg, ParseOptions{})
	require.NoError(t, err)
	require.Len(t, result.Slides, 1)
	require.Len(t, result.Slides[0].Shapes, 1)

	shape := result.Slides[0].Shapes[0]
	require.NotNil(t, shape.Text)
	require.Len(t, shape.Text.Lines, 1)
	require.Len(t, shape.Text.Lines[0].Runs, 1)

	run := shape.Text.Lines[0].Runs[0]
	assert.Equal(t, "Hello", run.Text)
	assert.Equal(t, "Calibri", run.Font.Family)
	assert.True(t, run.Font.Italic)
	assert.InDelta(t, 24.0, run.Font.SizePx, 1e-9)
}

// TestParsePresentation_TableBanding covers a 5x5 table with firstRow and
// bandRow turned on: the first row's style wins over banding, and the
// banding alternates band1H/band2H starting from row 1.
func TestParsePresentation_TableBanding(t *testing.T) {
	const styleID = "{TESTSTYLE-0001}"

	tableStylesXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<a:tblStyleLst xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" def="` + styleID + `">
  <a:tblStyle styleId="` + styleID + `" styleName="Test Style">
    <a:wholeTbl/>
    <a:band1H><a:tcStyle><a:solidFill><a:srgbClr val="00FF00"/></a:solidFill></a:tcStyle></a:band1H>
    <a:band2H><a:tcStyle><a:solidFill><a:srgbClr val="0000FF"/></a:solidFill></a:tcStyle></a:band2H>
    <a:firstRow><a:tcStyle><a:solidFill><a:srgbClr val="FF0000"/></a:solidFill></a:tcStyle></a:firstRow>
  </a:tblStyle>
</a:tblStyleLst>`

	var rowsXML string
	for r := 0; r < 5; r++ {
		rowsXML += `<a:tr h="100">`
		for c := 0; c < 5; c++ {
			rowsXML += `<a:tc/>`
		}
		rowsXML += `</a:tr>`
	}

	slideXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"
       xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
  <p:cSld>
    <p:spTree>
      <p:graphicFrame>
        <p:nvGraphicFramePr><p:cNvPr id="2" name="Table"/></p:nvGraphicFramePr>
        <p:xfrm><a:off x="0" y="0"/><a:ext cx="2500000" cy="1500000"/></p:xfrm>
        <a:graphic>
          <a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/table">
            <a:tbl>
              <a:tblPr firstRow="1" bandRow="1"><a:tableStyleId>` + styleID + `</a:tableStyleId></a:tblPr>
              <a:tblGrid>
                <a:gridCol w="500000"/><a:gridCol w="500000"/><a:gridCol w="500000"/><a:gridCol w="500000"/><a:gridCol w="500000"/>
              </a:tblGrid>
              ` + rowsXML + `
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
	require.Equal(t, 5, table.NumRows)
	require.Equal(t, 5, table.NumCols)

	wantCol0 := []string{"#FF0000", "#00FF00", "#0000FF", "#00FF00", "#0000FF"}
	for _, cell := range table.Cells {
		if cell.Col != 0 {
			continue
		}
		require.NotNil(t, cell.Fill, "row %d col 0 fill", cell.Row)
		assert.Equal(t, wantCol0[cell.Row], cell.Fill.Color.Hex, "row %d col 0 fill", cell.Row)
	}

	assert.Empty(t, CheckPresentation(result))
}

// TestParsePresentation_GroupedRotation covers a rotated group: the child
// rectangle's resolved Transform must equal the same composition the
// group-shape parser itself builds (parent * groupLocal * rebase *
// childMap * rectLocal), not an ad hoc approximation.
func TestParsePresentation_GroupedRotation(t *testing.T) {
	slideXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"
       xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
  <p:cSld>
    <p:spTree>
      <p:grpSp>
        <p:nvGrpSpPr><p:cNvPr id="2" name="RotatedGroup"/></p:nvGrpSpPr>
        <p:grpSpPr>
          <a:xfrm rot="5400000">
            <a:off x="100000" y="100000"/>
            <a:ext cx="200000" cy="50000"/>
            <a:chOff x="0" y="0"/>
            <a:chExt cx="200000" cy="50000"/>
          </a:xfrm>
        </p:grpSpPr>
        <p:sp>
          <p:nvSpPr>
            <p:cNvPr id="3" name="Rect"/>
            <p:cNvSpPr/>
            <p:nvPr/>
          </p:nvSpPr>
          <p:spPr>
            <a:xfrm><a:off x="0" y="0"/><a:ext cx="200000" cy="50000"/></a:xfrm>
          </p:spPr>
        </p:sp>
      </p:grpSp>
    </p:spTree>
  </p:cSld>
</p:sld>`

	pkg := buildPackage(t, baseScaffold(emptyMasterXML(), emptyLayoutXML(), slideXML))

	result, err := ParsePresentation(pkg, ParseOptions{})
	require.NoError(t, err)
	require.Len(t, result.Slides, 1)
	require.Len(t, result.Slides[0].Shapes, 1)

	group := result.Slides[0].Shapes[0]
	require.Equal(t, KindGroup, group.Kind)
	require.Len(t, group.Children, 1)
	rect := group.Children[0]

	groupLocal := shapeLocalMatrix(100000, 100000, 200000, 50000, 90, false, false)
	childMap := childToParentMatrix(100000, 100000, 200000, 50000, 0, 0, 200000, 50000)
	combined := groupLocal.Multiply(translateInverse(100000, 100000)).Multiply(childMap)
	rectLocal := shapeLocalMatrix(0, 0, 200000, 50000, 0, false, false)
	want := combined.Multiply(rectLocal)

	const eps = 1e-6
	assert.InDelta(t, want.A, rect.Transform.A, eps)
	assert.InDelta(t, want.B, rect.Transform.B, eps)
	assert.InDelta(t, want.C, rect.Transform.C, eps)
	assert.InDelta(t, want.D, rect.Transform.D, eps)
	assert.InDelta(t, want.Tx, rect.Transform.Tx, eps)
	assert.InDelta(t, want.Ty, rect.Transform.Ty, eps)

	wantX0, wantY0 := want.TransformPoint(0, 0)
	gotX0, gotY0 := rect.Transform.TransformPoint(0, 0)
	assert.InDelta(t, wantX0, gotX0, eps)
	assert.InDelta(t, wantY0, gotY0, eps)
}

func emptyMasterXML() string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sldMaster xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"
             xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
  <p:cSld>
    <p:spTree/>
  </p:cSld>
</p:sldMaster>`
}

const presentationRelsWithTableStyles = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rIdSlide1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide1.xml"/>
  <Relationship Id="rIdTableStyles" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/tableStyles" Target="tableStyles.xml"/>
</Relationships>`
