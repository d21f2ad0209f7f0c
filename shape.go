package pptxscene

// Pos is a 2D point in pixel space (already EMU-converted), used for each
// output shape's nominal top-left position alongside its full transform.
type Pos struct {
	X, Y float64
}

// ShapeKind discriminates the output Shape sum type.
type ShapeKind int

const (
	KindShape ShapeKind = iota
	KindGroup
	KindPicture
	KindTable
	KindChart
	KindDiagram
)

// ImageRef is a resolved picture fill's image data, opaque past whatever
// href-resolution callback produced it.
type ImageRef struct {
	Href    string
	SrcRect *Rect
	Opacity *float64
	Duotone []ResolvedColor // 0 or 2 entries
}

// PlaceholderInfo carries a picture's inherited placeholder identity
// through to the output, so a renderer can tell a content-placeholder
// picture apart from a freestanding one.
type PlaceholderInfo struct {
	Type   PlaceholderType
	HasIdx bool
	Idx    int
}

// Cell is one occupied table grid position.
type Cell struct {
	Row, Col         int
	RowSpan, ColSpan int
	Fill             *Fill
	TopBorder        *Stroke
	BottomBorder     *Stroke
	LeftBorder       *Stroke
	RightBorder      *Stroke
	Text             TextLayout
}

// ChartData is a minimal extraction of a chart part's category/series
// values, enough for a renderer to draw bars/lines/pie without needing to
// re-parse chart XML itself. Full chart styling is out of scope.
type ChartData struct {
	ChartType string
	Categories []string
	Series     []ChartSeries
}

// ChartSeries is one series of a ChartData.
type ChartSeries struct {
	Name   string
	Values []float64
	Color  *ResolvedColor
}

// Shape is the emitted node of the scene graph.
// Kind selects which of the type-specific fields are meaningful; a Group
// keeps its Children nested rather than flattening them, with each
// child's Transform already pre-multiplied by the group's own matrix.
type Shape struct {
	Kind ShapeKind

	Name      string
	Pos       Pos
	Width     float64 // px, pre-transform local extent
	Height    float64
	Transform Matrix
	Rotation  float64
	FlipH     bool
	FlipV     bool

	// KindShape
	Geometry *Geometry
	Fill     *Fill
	Stroke   *Stroke
	Effect   *Effect
	Text     *TextLayout

	// KindGroup
	Children []Shape

	// KindPicture
	PathString  string
	Image       *ImageRef
	Placeholder *PlaceholderInfo

	// KindTable
	Cells []Cell
	NumRows, NumCols int

	// KindChart
	Chart *ChartData

	Extensions map[string]string
}
