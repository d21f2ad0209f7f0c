package pptxscene

import (
	"regexp"
	"time"
)

// SlideSize is the presentation-wide slide extent, read from
// ppt/presentation.xml's sldSz element.
type SlideSize struct {
	CX   int64
	CY   int64
	Name string // sldSz "type" attribute, e.g. "screen4x3"
}

// DocumentProperties carries docProps/core.xml metadata through to the
// scene graph. Ambient metadata only, never load-bearing for any invariant.
type DocumentProperties struct {
	Creator        string
	LastModifiedBy string
	Title          string
	Description    string
	Subject        string
	Keywords       string
	Category       string
	Revision       string
	Created        time.Time
	Modified       time.Time
}

// slideIDEntry is one <p:sldId r:id="..."/> entry from presentation.xml,
// in document order.
type slideIDEntry struct {
	id   string // numeric id attribute, used for diagnostics only
	relID string
}

// sldIDTag is deliberately tolerant of namespace prefixes: real decks use
// p:sldId, but some tools emit it unprefixed or with a different prefix,
// so this scans for sldId elements with an r:id attribute using a
// prefix-tolerant regex, rather than requiring the document to parse
// cleanly first.
var sldIDTag = regexp.MustCompile(`<(?:\w+:)?sldId\b[^>]*/?>`)
var sldIDNumAttr = regexp.MustCompile(`\bid\s*=\s*"([^"]*)"`)
var sldIDRelAttr = regexp.MustCompile(`\b(?:\w+:)?id\s*=\s*"(rId[^"]*)"`)

// readSlideOrder scans presentation.xml text for sldId elements and
// returns them in document order. Only the r:id-shaped attribute value
// (rIdN) is treated as the relationship id; a bare numeric "id" attribute
// is ignored, matching the PML schema where sldId carries both a numeric
// id and an r:id.
func readSlideOrder(text string) []slideIDEntry {
	var out []slideIDEntry
	for _, tag := range sldIDTag.FindAllString(text, -1) {
		e := slideIDEntry{}
		if m := sldIDNumAttr.FindStringSubmatch(tag); len(m) == 2 {
			e.id = m[1]
		}
		if m := sldIDRelAttr.FindStringSubmatch(tag); len(m) == 2 {
			e.relID = m[1]
		}
		if e.relID != "" {
			out = append(out, e)
		}
	}
	return out
}

// parsePresentationPart reads ppt/presentation.xml via the DOM layer for
// the slide size and falls back to relationship-type matching for slide
// order when no r:id-shaped sldId survived the regex scan (e.g. a
// nonstandard prefix the regex didn't anticipate).
func parsePresentationPart(em *EntryMap, sink *diagnosticSink) (SlideSize, []string, bool) {
	text, ok := em.normalizedText("ppt/presentation.xml")
	if !ok {
		return SlideSize{}, nil, false
	}

	root := parseXml(sink, text, "ppt/presentation.xml")
	size := SlideSize{CX: 9144000, CY: 6858000, Name: "screen4x3"}
	if sz := root.ChildNS(nsPML, "sldSz"); sz.Exists() {
		size.CX = sz.AttrInt64("cx", size.CX)
		size.CY = sz.AttrInt64("cy", size.CY)
		size.Name = sz.AttrString("type", size.Name)
	}

	var relIDs []string
	for _, e := range readSlideOrder(text) {
		relIDs = append(relIDs, e.relID)
	}

	if len(relIDs) == 0 {
		rels := relationshipsFor(em, "ppt/presentation.xml")
		for _, r := range byType(rels, relTypeSlide) {
			relIDs = append(relIDs, r.ID)
		}
	}

	return size, relIDs, true
}

// parseCoreProperties reads docProps/core.xml. Absence is tolerated; the
// returned DocumentProperties is simply zero-valued.
func parseCoreProperties(em *EntryMap, sink *diagnosticSink) DocumentProperties {
	var props DocumentProperties
	text, ok := em.normalizedText("docProps/core.xml")
	if !ok {
		return props
	}
	root := parseXml(sink, text, "docProps/core.xml")
	for _, c := range root.Children() {
		switch c.LocalName() {
		case "creator":
			props.Creator = c.Text()
		case "lastModifiedBy":
			props.LastModifiedBy = c.Text()
		case "title":
			props.Title = c.Text()
		case "description":
			props.Description = c.Text()
		case "subject":
			props.Subject = c.Text()
		case "keywords":
			props.Keywords = c.Text()
		case "category":
			props.Category = c.Text()
		case "revision":
			props.Revision = c.Text()
		case "created":
			if t, err := time.Parse(time.RFC3339, c.Text()); err == nil {
				props.Created = t
			}
		case "modified":
			if t, err := time.Parse(time.RFC3339, c.Text()); err == nil {
				props.Modified = t
			}
		}
	}
	return props
}
