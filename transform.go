package pptxscene

import "math"

// Matrix is a 2x3 affine transform:
//
//	| A  C  Tx |
//	| B  D  Ty |
//
// composed in the usual order x' = A*x + C*y + Tx, y' = B*x + D*y + Ty.
type Matrix struct {
	A, B, C, D, Tx, Ty float64
}

// Identity returns the identity transform.
func Identity() Matrix {
	return Matrix{A: 1, D: 1}
}

// Clone returns a copy (Matrix is a value type, but this documents intent
// at call sites building up a resolution stack).
func (m Matrix) Clone() Matrix { return m }

// Translate returns m translated by (dx, dy) in m's own coordinate space,
// applied before m (i.e. Translate is the new innermost transform).
func (m Matrix) Translate(dx, dy float64) Matrix {
	return m.Multiply(Matrix{A: 1, D: 1, Tx: dx, Ty: dy})
}

// Scale returns m scaled by (sx, sy), applied before m.
func (m Matrix) Scale(sx, sy float64) Matrix {
	return m.Multiply(Matrix{A: sx, D: sy})
}

// Rotate returns m rotated by degrees clockwise (PML's rotation sense),
// applied before m.
func (m Matrix) Rotate(degrees float64) Matrix {
	rad := degrees * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	return m.Multiply(Matrix{A: cos, B: sin, C: -sin, D: cos})
}

// FlipH returns m mirrored horizontally, applied before m.
func (m Matrix) FlipH() Matrix {
	return m.Multiply(Matrix{A: -1, D: 1})
}

// FlipV returns m mirrored vertically, applied before m.
func (m Matrix) FlipV() Matrix {
	return m.Multiply(Matrix{A: 1, D: -1})
}

// Multiply composes m (outer) with other (inner): the result first applies
// other, then m.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A:  m.A*other.A + m.C*other.B,
		B:  m.B*other.A + m.D*other.B,
		C:  m.A*other.C + m.C*other.D,
		D:  m.B*other.C + m.D*other.D,
		Tx: m.A*other.Tx + m.C*other.Ty + m.Tx,
		Ty: m.B*other.Tx + m.D*other.Ty + m.Ty,
	}
}

// TransformPoint applies m to (x, y).
func (m Matrix) TransformPoint(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.Tx, m.B*x + m.D*y + m.Ty
}

// shapeLocalMatrix builds the local placement transform for a shape from
// its xfrm fields, per the convention: flip about the shape's own center,
// then rotate about its own center, then translate to its slide-space
// offset. off/ext are in EMU; rotation is degrees (already normalized from
// the 60,000ths-of-a-degree PML unit by the caller).
func shapeLocalMatrix(offX, offY, extCX, extCY int64, rotationDeg float64, flipH, flipV bool) Matrix {
	cx := float64(offX) + float64(extCX)/2
	cy := float64(offY) + float64(extCY)/2

	m := Identity()
	m = m.Translate(cx, cy)
	m = m.Rotate(rotationDeg)
	if flipH {
		m = m.FlipH()
	}
	if flipV {
		m = m.FlipV()
	}
	m = m.Translate(-float64(extCX)/2, -float64(extCY)/2)
	return m
}

// childToParentMatrix builds the transform that maps a group's child
// coordinate space (chOff/chExt) into the group's own local space
// (off/ext), per the group-shape child-offset convention.
func childToParentMatrix(offX, offY, extCX, extCY, chOffX, chOffY, chExtCX, chExtCY int64) Matrix {
	sx := 1.0
	sy := 1.0
	if chExtCX != 0 {
		sx = float64(extCX) / float64(chExtCX)
	}
	if chExtCY != 0 {
		sy = float64(extCY) / float64(chExtCY)
	}
	m := Identity()
	m = m.Translate(float64(offX), float64(offY))
	m = m.Scale(sx, sy)
	m = m.Translate(-float64(chOffX), -float64(chOffY))
	return m
}
