package pptxscene

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckColor_ValidHexPasses(t *testing.T) {
	assert.Empty(t, checkColor(ResolvedColor{Hex: "#1A2B3C"}, "fill"))
}

func TestCheckColor_InvalidHexFails(t *testing.T) {
	errs := checkColor(ResolvedColor{Hex: "#ZZZZZZ"}, "fill")
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0], "fill")
}

func TestCheckColor_SchemeTokenPasses(t *testing.T) {
	assert.Empty(t, checkColor(ResolvedColor{SchemeName: "accent1"}, "fill"))
}

func TestCheckColor_ZeroValueIsNotAViolation(t *testing.T) {
	assert.Empty(t, checkColor(ResolvedColor{}, "fill"))
}

func TestCheckTableGridCoverage_FullyTiledPasses(t *testing.T) {
	sh := &Shape{
		Kind: KindTable, NumRows: 2, NumCols: 2,
		Cells: []Cell{
			{Row: 0, Col: 0, RowSpan: 1, ColSpan: 1},
			{Row: 0, Col: 1, RowSpan: 1, ColSpan: 1},
			{Row: 1, Col: 0, RowSpan: 1, ColSpan: 1},
			{Row: 1, Col: 1, RowSpan: 1, ColSpan: 1},
		},
	}
	assert.Empty(t, checkTableGridCoverage(sh, "table"))
}

func TestCheckTableGridCoverage_GapIsReported(t *testing.T) {
	sh := &Shape{
		Kind: KindTable, NumRows: 2, NumCols: 2,
		Cells: []Cell{
			{Row: 0, Col: 0, RowSpan: 1, ColSpan: 1},
		},
	}
	errs := checkTableGridCoverage(sh, "table")
	assert.Len(t, errs, 3) // (0,1), (1,0), (1,1) uncovered
}

func TestCheckTableGridCoverage_OverlapIsReported(t *testing.T) {
	sh := &Shape{
		Kind: KindTable, NumRows: 2, NumCols: 2,
		Cells: []Cell{
			{Row: 0, Col: 0, RowSpan: 2, ColSpan: 2},
			{Row: 0, Col: 0, RowSpan: 1, ColSpan: 1},
		},
	}
	errs := checkTableGridCoverage(sh, "table")
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0], "claimed by more than one cell")
}

func TestCheckTableGridCoverage_NonPositiveDimensionsRejected(t *testing.T) {
	sh := &Shape{Kind: KindTable, NumRows: 0, NumCols: 2}
	errs := checkTableGridCoverage(sh, "table")
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0], "non-positive dimensions")
}

func TestCheckTransformProduct_MatchingAncestryPasses(t *testing.T) {
	parent := Identity().Translate(10, 20)
	local := Identity().Translate(5, 5)
	got := parent.Multiply(local)
	assert.Empty(t, checkTransformProduct(got, parent, local))
}

func TestCheckTransformProduct_MismatchIsReported(t *testing.T) {
	got := Identity().Translate(999, 999)
	parent := Identity().Translate(10, 20)
	local := Identity().Translate(5, 5)
	errs := checkTransformProduct(got, parent, local)
	assert.Len(t, errs, 1)
}

func TestCheckNumberingCounters_MonotonicPasses(t *testing.T) {
	draws := []struct{ Level, StartAt int }{
		{Level: 0, StartAt: 1},
		{Level: 0, StartAt: 1},
		{Level: 0, StartAt: 1},
	}
	assert.Empty(t, checkNumberingCounters(draws))
}

func TestCheckPathGrammar_WellFormedRectPasses(t *testing.T) {
	path := "M0.00,0.00 L100.00,0.00 L100.00,50.00 L0.00,50.00 Z"
	assert.Empty(t, checkPathGrammar(path, 100, 50))
}

func TestCheckPathGrammar_EmptyStringPasses(t *testing.T) {
	assert.Empty(t, checkPathGrammar("", 100, 50))
}

func TestCheckPathGrammar_OutOfBoundsEndpointFails(t *testing.T) {
	path := "M0.00,0.00 L500.00,0.00 Z"
	errs := checkPathGrammar(path, 100, 50)
	assert.NotEmpty(t, errs)
}

func TestCheckPathGrammar_UnparsedTrailingBytesFail(t *testing.T) {
	path := "M0.00,0.00 garbage"
	errs := checkPathGrammar(path, 100, 50)
	assert.NotEmpty(t, errs)
}

func TestCheckPresentation_EmptyResultHasNoViolations(t *testing.T) {
	pr := PresentationResult{Slides: []SlideOutput{{ID: "slide1"}}}
	assert.Empty(t, CheckPresentation(pr))
}

func TestCheckPresentation_PrefixesViolationsWithSlideIdentity(t *testing.T) {
	pr := PresentationResult{
		Slides: []SlideOutput{
			{
				ID: "slide1",
				Shapes: []Shape{
					{Kind: KindShape, Fill: &Fill{Kind: FillSolid, Color: ResolvedColor{Hex: "nope"}}},
				},
			},
		},
	}
	errs := CheckPresentation(pr)
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0], "slide 1 (slide1)")
}
