package pptxscene

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrix_IdentityTransformPointIsNoop(t *testing.T) {
	x, y := Identity().TransformPoint(12, 34)
	assert.Equal(t, 12.0, x)
	assert.Equal(t, 34.0, y)
}

func TestMatrix_TranslateMovesOrigin(t *testing.T) {
	m := Identity().Translate(10, -5)
	x, y := m.TransformPoint(0, 0)
	assert.Equal(t, 10.0, x)
	assert.Equal(t, -5.0, y)
}

func TestMatrix_ScaleThenTranslateOrder(t *testing.T) {
	// Scale is applied before Translate's own Tx/Ty, since Translate composes
	// outer-after-inner: m.Translate(dx,dy) == m.Multiply(Translate(dx,dy)).
	m := Identity().Translate(100, 100).Scale(2, 3)
	x, y := m.TransformPoint(1, 1)
	assert.InDelta(t, 102.0, x, 1e-9)
	assert.InDelta(t, 103.0, y, 1e-9)
}

func TestMatrix_Rotate90DegreesClockwise(t *testing.T) {
	m := Identity().Rotate(90)
	x, y := m.TransformPoint(1, 0)
	assert.InDelta(t, 0.0, x, 1e-9)
	assert.InDelta(t, 1.0, y, 1e-9)
}

func TestMatrix_FlipHNegatesX(t *testing.T) {
	m := Identity().FlipH()
	x, y := m.TransformPoint(5, 5)
	assert.InDelta(t, -5.0, x, 1e-9)
	assert.InDelta(t, 5.0, y, 1e-9)
}

func TestMatrix_FlipVNegatesY(t *testing.T) {
	m := Identity().FlipV()
	x, y := m.TransformPoint(5, 5)
	assert.InDelta(t, 5.0, x, 1e-9)
	assert.InDelta(t, -5.0, y, 1e-9)
}

func TestMatrix_MultiplyAppliesInnerFirst(t *testing.T) {
	outer := Identity().Translate(100, 0)
	inner := Identity().Translate(0, 50)
	combined := outer.Multiply(inner)
	x, y := combined.TransformPoint(0, 0)
	assert.InDelta(t, 100.0, x, 1e-9)
	assert.InDelta(t, 50.0, y, 1e-9)
}

func TestShapeLocalMatrix_NoRotationIsJustOffset(t *testing.T) {
	m := shapeLocalMatrix(1000, 2000, 400, 600, 0, false, false)
	x, y := m.TransformPoint(0, 0)
	assert.InDelta(t, 1000.0, x, 1e-6)
	assert.InDelta(t, 2000.0, y, 1e-6)
	x, y = m.TransformPoint(400, 600)
	assert.InDelta(t, 1400.0, x, 1e-6)
	assert.InDelta(t, 2600.0, y, 1e-6)
}

func TestShapeLocalMatrix_Rotate90AboutCenter(t *testing.T) {
	// A 200x100 box at origin rotated 90 degrees about its own center: the
	// center (100,50) is the fixed point of the rotation.
	m := shapeLocalMatrix(0, 0, 200, 100, 90, false, false)
	x, y := m.TransformPoint(100, 50) // shape's own center
	assert.InDelta(t, 100.0, x, 1e-6)
	assert.InDelta(t, 50.0, y, 1e-6)
}

func TestShapeLocalMatrix_FlipHMirrorsAboutCenter(t *testing.T) {
	m := shapeLocalMatrix(0, 0, 200, 100, 0, true, false)
	x, y := m.TransformPoint(0, 0)
	assert.InDelta(t, 200.0, x, 1e-6)
	assert.InDelta(t, 0.0, y, 1e-6)
}

func TestChildToParentMatrix_IdentityScaleWhenExtentsMatch(t *testing.T) {
	m := childToParentMatrix(100, 100, 200, 200, 0, 0, 200, 200)
	x, y := m.TransformPoint(50, 50)
	assert.InDelta(t, 150.0, x, 1e-6)
	assert.InDelta(t, 150.0, y, 1e-6)
}

func TestChildToParentMatrix_ScalesChildSpaceIntoParentExtent(t *testing.T) {
	// Child space spans [0,100]x[0,100] but must fit into a 200x50 parent box
	// offset at (10,20): a 2x horizontal, 0.5x vertical scale.
	m := childToParentMatrix(10, 20, 200, 50, 0, 0, 100, 100)
	x, y := m.TransformPoint(100, 100)
	assert.InDelta(t, 210.0, x, 1e-6)
	assert.InDelta(t, 70.0, y, 1e-6)
}

func TestTranslateInverse_UndoesOffset(t *testing.T) {
	m := translateInverse(30, 40)
	x, y := m.TransformPoint(30, 40)
	assert.InDelta(t, 0.0, x, 1e-9)
	assert.InDelta(t, 0.0, y, 1e-9)
}
