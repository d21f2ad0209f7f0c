package pptxscene

// Namespace URIs this module matches against. Matching is always by URI,
// never by prefix - real decks use "a", "dml", "draw" or no prefix at all
// for the same namespace.
const (
	nsPML     = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsDML     = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsChart   = "http://schemas.openxmlformats.org/drawingml/2006/chart"
	nsTable   = "http://schemas.openxmlformats.org/drawingml/2006/table"
	nsDiagram = "http://schemas.openxmlformats.org/drawingml/2006/diagram"
	nsDiagDsp = "http://schemas.microsoft.com/office/drawing/2008/diagram"
	nsRel     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsCT      = "http://schemas.openxmlformats.org/package/2006/content-types"
)

// Relationship type URIs this module looks up (exact strings).
const (
	relTypeTheme       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme"
	relTypeTableStyles = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/tableStyles"
	relTypeSlideLayout = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout"
	relTypeSlideMaster = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster"
	relTypeImage       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
	relTypeSlide       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
	relTypeChart       = "http://schemas.openxmlformats.org/drawingml/2006/relationships/chart"
	relTypeDiagramData = "http://schemas.openxmlformats.org/drawingml/2006/relationships/diagram"
	relTypeComment     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/comments"
	relTypeNotesSlide  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesSlide"
)

// graphicData URIs identify the payload of a graphicFrame.
const (
	graphicDataTable   = nsTable
	graphicDataChart   = "http://schemas.openxmlformats.org/drawingml/2006/chart"
	graphicDataDiagram = "http://schemas.openxmlformats.org/drawingml/2006/diagram"
)
