package pptxscene

// ProgressSink receives a 0..1 fraction as slides are parsed, so a caller
// driving a long-running parse can render progress without polling.
type ProgressSink func(fraction float64)

// CancellationToken is polled between slides; returning true aborts the
// parse early with whatever slides have already been produced.
type CancellationToken func() bool

// ParseOptions is ParsePresentation's caller-tunable knobs.
// None of them change output semantics when left at their zero value:
// FontCache/FontDirs only improve text-measurement accuracy over the
// built-in stub oracle, MediaDecode only changes how image bytes surface
// as an href, and ProgressSink/Cancel/Strict are purely operational.
type ParseOptions struct {
	ProgressSink ProgressSink
	Cancel       CancellationToken

	FontDirs  []string
	FontCache *FontCache

	// MediaDecode turns a media part's raw bytes (plus a MIME-type hint)
	// into the string an output Fill/ImageRef's Href carries. Left nil,
	// the media's archive-relative path is used verbatim.
	MediaDecode func(data []byte, mimeHint string) string

	// Strict is not read by the parser: malformed XML subtrees, missing
	// relationship targets and other recoverable conditions are recorded
	// as Diagnostics whatever its value.
	Strict bool
}

func (o ParseOptions) measureFunc() MeasureFunc {
	if o.FontCache != nil {
		return NewMeasureFunc(o.FontCache)
	}
	if len(o.FontDirs) > 0 {
		return NewMeasureFunc(NewFontCache(o.FontDirs...))
	}
	return stubMeasure
}
