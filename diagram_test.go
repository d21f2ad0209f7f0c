package pptxscene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParsePresentation_DiagramLinearLayout covers a SmartArt frame with no
// prebaked drawing: the layout-script interpreter must fall back to the
// "lin" algorithm, giving each of the three data-model node points the full
// constrained height and stacking the resulting shapes top to bottom by
// running y-offset, each carrying its point's own text. The per-point
// layoutNode is wrapped inside forEach, the nesting real layout parts use.
func TestParsePresentation_DiagramLinearLayout(t *testing.T) {
	dataModelXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<dgm:dataModel xmlns:dgm="http://schemas.openxmlformats.org/drawingml/2006/diagram"
               xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
  <dgm:ptLst>
    <dgm:pt modelId="root" type="doc"/>
    <dgm:pt modelId="ptA" type="node"><dgm:t><a:p><a:r><a:t>A</a:t></a:r></a:p></dgm:t></dgm:pt>
    <dgm:pt modelId="ptB" type="node"><dgm:t><a:p><a:r><a:t>B</a:t></a:r></a:p></dgm:t></dgm:pt>
    <dgm:pt modelId="ptC" type="node"><dgm:t><a:p><a:r><a:t>C</a:t></a:r></a:p></dgm:t></dgm:pt>
  </dgm:ptLst>
  <dgm:cxnLst>
    <dgm:cxn type="parOf" srcId="root" destId="ptA" srcOrd="0"/>
    <dgm:cxn type="parOf" srcId="root" destId="ptB" srcOrd="1"/>
    <dgm:cxn type="parOf" srcId="root" destId="ptC" srcOrd="2"/>
  </dgm:cxnLst>
</dgm:dataModel>`

	layoutDefXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<dgm:layoutDef xmlns:dgm="http://schemas.openxmlformats.org/drawingml/2006/diagram"
               xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
  <dgm:layoutNode name="root">
    <dgm:constrLst>
      <dgm:constr type="w" val="9525000"/>
      <dgm:constr type="h" val="4762500"/>
    </dgm:constrLst>
    <dgm:alg type="lin"/>
    <dgm:forEach axis="self">
      <dgm:layoutNode name="node">
        <dgm:presOf axis="self"/>
      </dgm:layoutNode>
    </dgm:forEach>
  </dgm:layoutNode>
</dgm:layoutDef>`

	slideXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"
       xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"
       xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <p:cSld>
    <p:spTree>
      <p:graphicFrame>
        <p:nvGraphicFramePr><p:cNvPr id="2" name="Diagram"/></p:nvGraphicFramePr>
        <p:xfrm><a:off x="0" y="0"/><a:ext cx="9525000" cy="4762500"/></p:xfrm>
        <a:graphic>
          <a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/diagram">
            <a:relIds r:dm="rIdDgmData" r:lo="rIdDgmLayout"/>
          </a:graphicData>
        </a:graphic>
      </p:graphicFrame>
    </p:spTree>
  </p:cSld>
</p:sld>`

	slideRels := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rIdLayout1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>
  <Relationship Id="rIdDgmData" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/diagramData" Target="../diagrams/data1.xml"/>
  <Relationship Id="rIdDgmLayout" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/diagramLayout" Target="../diagrams/layout1.xml"/>
</Relationships>`

	files := baseScaffold(emptyMasterXML(), emptyLayoutXML(), slideXML)
	files["ppt/slides/_rels/slide1.xml.rels"] = slideRels
	files["ppt/diagrams/data1.xml"] = dataModelXML
	files["ppt/diagrams/layout1.xml"] = layoutDefXML

	pkg := buildPackage(t, files)

	result, err := ParsePresentation(pkg, ParseOptions{})
	require.NoError(t, err)
	require.Len(t, result.Slides, 1)
	require.Len(t, result.Slides[0].Shapes, 1)

	diagram := result.Slides[0].Shapes[0]
	require.Equal(t, KindDiagram, diagram.Kind)
	require.Len(t, diagram.Children, 3)

	wantH := 500.0
	wantTexts := []string{"A", "B", "C"}
	for i, child := range diagram.Children {
		assert.InDelta(t, wantH, child.Height, 1e-9, "child %d height", i)
		assert.InDelta(t, float64(i)*wantH, child.Pos.Y, 1e-9, "child %d y", i)
		require.NotNil(t, child.Text, "child %d text", i)
		require.Len(t, child.Text.Lines, 1)
		require.Len(t, child.Text.Lines[0].Runs, 1)
		assert.Equal(t, wantTexts[i], child.Text.Lines[0].Runs[0].Text)
	}
}
