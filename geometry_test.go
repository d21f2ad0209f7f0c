package pptxscene

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPresetPath_RectIsFourCornersClosed(t *testing.T) {
	paths := buildPresetPath("rect", nil, 100, 50)
	assert.Len(t, paths, 1)
	p := paths[0]
	assert.Equal(t, int64(100), p.Width)
	assert.Equal(t, int64(50), p.Height)
	last := p.Commands[len(p.Commands)-1]
	assert.Equal(t, PathClose, last.Kind)
}

func TestBuildPresetPath_UnknownPresetDegradesToRect(t *testing.T) {
	paths := buildPresetPath("someExoticPreset", nil, 100, 50)
	rectPaths := buildPresetPath("rect", nil, 100, 50)
	assert.Equal(t, rectPaths, paths)
}

func TestBuildPresetPath_EllipseStartsAtLeftMidpointAndCloses(t *testing.T) {
	paths := buildPresetPath("ellipse", nil, 200, 100)
	assert.Len(t, paths, 1)
	cmds := paths[0].Commands
	assert.Equal(t, PathMoveTo, cmds[0].Kind)
	assert.Equal(t, Point2D{X: 0, Y: 50}, cmds[0].To)
	assert.Equal(t, PathClose, cmds[len(cmds)-1].Kind)
}

func TestAdjOr_ReturnsOverrideWhenPresent(t *testing.T) {
	adj := map[string]float64{"adj": 25000}
	assert.Equal(t, 25000.0, adjOr(adj, "adj", 16667))
}

func TestAdjOr_ReturnsDefaultWhenAbsent(t *testing.T) {
	adj := map[string]float64{}
	assert.Equal(t, 16667.0, adjOr(adj, "adj", 16667))
}

func TestAdjOr_ZeroOverrideFallsBackToDefault(t *testing.T) {
	// adjOr treats a stored zero the same as "not overridden", since 0 is
	// also parseGuideFormula's failure value for an unresolvable guide
	// reference.
	adj := map[string]float64{"adj": 0}
	assert.Equal(t, 16667.0, adjOr(adj, "adj", 16667))
}

func TestParseGuideFormula_ExtractsTrailingLiteral(t *testing.T) {
	assert.Equal(t, 50000.0, parseGuideFormula("val 50000"))
}

func TestParseGuideFormula_NegativeLiteral(t *testing.T) {
	assert.Equal(t, -5000.0, parseGuideFormula("val -5000"))
}

func TestParseGuideFormula_NoDigitsReturnsZero(t *testing.T) {
	assert.Equal(t, 0.0, parseGuideFormula("*/ w h"))
}

func TestParseGuideFormula_TakesLastNumericLiteral(t *testing.T) {
	assert.Equal(t, 2.0, parseGuideFormula("*/ w 1 2"))
}

func TestGeometry_ResolvePaths_CustomReturnsStoredPaths(t *testing.T) {
	want := []Path{{Width: 10, Height: 10}}
	g := &Geometry{Kind: GeometryCustom, Paths: want}
	assert.Equal(t, want, g.ResolvePaths(999, 999))
}

func TestGeometry_ResolvePaths_NilGeometryReturnsNil(t *testing.T) {
	var g *Geometry
	assert.Nil(t, g.ResolvePaths(100, 100))
}

func TestGeometry_ResolvePaths_PresetExpandsAgainstGivenBox(t *testing.T) {
	g := &Geometry{Kind: GeometryPreset, Preset: "rect"}
	paths := g.ResolvePaths(300, 150)
	assert.Equal(t, int64(300), paths[0].Width)
	assert.Equal(t, int64(150), paths[0].Height)
}
