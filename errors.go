package pptxscene

import "errors"

// The two fatal conditions of the parse: no partial result can be produced
// for either, so they propagate to the caller of ParsePresentation instead
// of being recorded as Diagnostics.
var (
	// ErrArchiveCorrupt is returned when the ZIP central directory cannot
	// be read at all.
	ErrArchiveCorrupt = errors.New("pptxscene: archive is corrupt")
	// ErrPresentationMissing is returned when ppt/presentation.xml is
	// absent from an otherwise valid ZIP archive.
	ErrPresentationMissing = errors.New("pptxscene: ppt/presentation.xml is missing")
)

// DiagnosticKind enumerates the non-fatal error taxonomy the Every
// value here corresponds to a condition that causes the offending shape,
// part, or feature to be skipped rather than aborting the parse.
type DiagnosticKind string

const (
	DiagKindXMLSyntax            DiagnosticKind = "XmlSyntax"
	DiagKindRelationshipMissing  DiagnosticKind = "RelationshipMissing"
	DiagKindPartMissing          DiagnosticKind = "PartMissing"
	DiagKindUnsupportedFeature   DiagnosticKind = "UnsupportedFeature"
	DiagKindLayoutFailure        DiagnosticKind = "LayoutFailure"
)

// Diagnostic is one non-fatal condition recorded during the parse. The
// caller never sees these as Go errors; they ride alongside the
// PresentationResult so renderers can surface them without the parse ever
// aborting.
type Diagnostic struct {
	Kind       DiagnosticKind
	Identifier string // part path, relationship id, slide id - whatever pins down the source
	Message    string
}

func (d Diagnostic) Error() string {
	if d.Identifier == "" {
		return string(d.Kind) + ": " + d.Message
	}
	return string(d.Kind) + " (" + d.Identifier + "): " + d.Message
}

// diagnosticSink collects Diagnostics during one parse. It is owned
// exclusively by the orchestrator and the slide parser it drives; nothing
// else mutates it, reflecting the single-threaded-per-package parse model.
type diagnosticSink struct {
	items []Diagnostic
}

func (s *diagnosticSink) add(kind DiagnosticKind, identifier, message string) {
	s.items = append(s.items, Diagnostic{Kind: kind, Identifier: identifier, Message: message})
}

func (s *diagnosticSink) xmlSyntax(identifier, message string) {
	s.add(DiagKindXMLSyntax, identifier, message)
}

func (s *diagnosticSink) relationshipMissing(sourcePart, relID string) {
	s.add(DiagKindRelationshipMissing, sourcePart, "relationship id "+relID+" not found")
}

func (s *diagnosticSink) partMissing(path string) {
	s.add(DiagKindPartMissing, path, "part not found in archive")
}

func (s *diagnosticSink) unsupported(kind, detail string) {
	s.add(DiagKindUnsupportedFeature, kind, detail)
}

func (s *diagnosticSink) layoutFailure(slideID, message string) {
	s.add(DiagKindLayoutFailure, slideID, message)
}
