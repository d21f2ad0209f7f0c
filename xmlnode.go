package pptxscene

import (
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
)

// XmlNode is the narrow DOM-like interface every parser in this package
// talks to XML through, never through *xmlquery.Node directly, so the
// underlying library is swappable.
//
// It wraps an *xmlquery.Node and a document-wide prefix->URI table built
// once from the root element's xmlns declarations - OOXML parts declare
// every namespace they use on the root, so a single pass is enough and
// namespace lookups stay by URI rather than by prefix.
type XmlNode struct {
	raw *xmlquery.Node
	doc *xmlNamespaces
}

type xmlNamespaces struct {
	uriByPrefix map[string]string
	prefixByURI map[string]string
}

// emptyXmlNode is returned in place of a tree that failed to parse. Every
// lookup on it yields nothing rather than panicking, so callers that
// forgot to check for a syntax error degrade gracefully instead of
// crashing the whole parse.
func emptyXmlNode() *XmlNode {
	return &XmlNode{doc: &xmlNamespaces{uriByPrefix: map[string]string{}, prefixByURI: map[string]string{}}}
}

// parseXml parses text into an XmlNode rooted at the document element. On
// a syntax error it records the identifier and returns an empty tree; it
// never aborts the caller.
func parseXml(sink *diagnosticSink, text, identifier string) *XmlNode {
	root, err := xmlquery.Parse(strings.NewReader(text))
	if err != nil {
		if sink != nil {
			sink.xmlSyntax(identifier, err.Error())
		}
		return emptyXmlNode()
	}

	var elem *xmlquery.Node
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			elem = c
			break
		}
	}
	if elem == nil {
		if sink != nil {
			sink.xmlSyntax(identifier, "no document element")
		}
		return emptyXmlNode()
	}

	ns := &xmlNamespaces{uriByPrefix: map[string]string{}, prefixByURI: map[string]string{}}
	collectNamespaces(elem, ns)
	return &XmlNode{raw: elem, doc: ns}
}

func collectNamespaces(n *xmlquery.Node, ns *xmlNamespaces) {
	for _, a := range n.Attr {
		switch {
		case a.Name.Space == "xmlns":
			ns.uriByPrefix[a.Name.Local] = a.Value
			ns.prefixByURI[a.Value] = a.Name.Local
		case a.Name.Space == "" && a.Name.Local == "xmlns":
			ns.uriByPrefix[""] = a.Value
			ns.prefixByURI[a.Value] = ""
		}
	}
}

// Exists reports whether the node resolved to real content. Nil receivers
// and the sentinel empty tree both report false, so chained lookups like
// node.ChildNS(nsPML, "spTree").ChildNS(...) never need nil checks until
// the final Exists()/Text() call.
func (x *XmlNode) Exists() bool { return x != nil && x.raw != nil }

// LocalName returns the element's tag name without its namespace prefix.
func (x *XmlNode) LocalName() string {
	if !x.Exists() {
		return ""
	}
	return x.raw.Data
}

// NamespaceURI returns the element's namespace URI, resolved through the
// document's xmlns table.
func (x *XmlNode) NamespaceURI() string {
	if !x.Exists() {
		return ""
	}
	return x.doc.uriByPrefix[x.raw.Prefix]
}

// IsNS reports whether the element matches the given namespace URI and
// local name. Unrecognized/absent namespace declarations fall back to
// matching on local name alone.
func (x *XmlNode) IsNS(nsURI, localName string) bool {
	if !x.Exists() || x.raw.Data != localName {
		return false
	}
	ns := x.NamespaceURI()
	return ns == nsURI || ns == ""
}

// Attr returns the value of an unprefixed attribute (or any attribute
// whose local name matches, regardless of namespace) plus whether it was
// present at all.
func (x *XmlNode) Attr(localName string) (string, bool) {
	if !x.Exists() {
		return "", false
	}
	for _, a := range x.raw.Attr {
		if a.Name.Local == localName {
			return a.Value, true
		}
	}
	return "", false
}

// AttrNS returns the value of an attribute qualified by namespace URI
// (e.g. r:id, whose namespace is nsRel) plus whether it was present.
func (x *XmlNode) AttrNS(nsURI, localName string) (string, bool) {
	if !x.Exists() {
		return "", false
	}
	prefix, ok := x.doc.prefixByURI[nsURI]
	for _, a := range x.raw.Attr {
		if a.Name.Local != localName {
			continue
		}
		if ok && a.Name.Space == prefix {
			return a.Value, true
		}
		if a.Name.Space == "" {
			return a.Value, true
		}
	}
	return "", false
}

// AttrString returns Attr with a default when absent.
func (x *XmlNode) AttrString(localName, def string) string {
	if v, ok := x.Attr(localName); ok {
		return v
	}
	return def
}

// AttrInt parses Attr as a base-10 integer, returning def on absence or
// parse failure.
func (x *XmlNode) AttrInt(localName string, def int) int {
	v, ok := x.Attr(localName)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// AttrInt64 is AttrInt for int64-sized values (EMU offsets/extents).
func (x *XmlNode) AttrInt64(localName string, def int64) int64 {
	v, ok := x.Attr(localName)
	if !ok {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}

// AttrBool parses a PML boolean attribute ("1"/"true"/"0"/"false"),
// returning def on absence or an unrecognized value.
func (x *XmlNode) AttrBool(localName string, def bool) bool {
	v, ok := x.Attr(localName)
	if !ok {
		return def
	}
	switch v {
	case "1", "true":
		return true
	case "0", "false":
		return false
	default:
		return def
	}
}

// Children returns every element child in document order.
func (x *XmlNode) Children() []*XmlNode {
	if !x.Exists() {
		return nil
	}
	var out []*XmlNode
	for c := x.raw.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			out = append(out, &XmlNode{raw: c, doc: x.doc})
		}
	}
	return out
}

// Child returns the first element child whose local name matches,
// regardless of namespace.
func (x *XmlNode) Child(localName string) *XmlNode {
	if !x.Exists() {
		return emptyXmlNode()
	}
	for c := x.raw.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode && c.Data == localName {
			return &XmlNode{raw: c, doc: x.doc}
		}
	}
	return emptyXmlNode()
}

// ChildNS returns the first element child matching namespace URI + local
// name (falling back to local-name-only when the namespace can't be
// resolved, same tolerance as IsNS).
func (x *XmlNode) ChildNS(nsURI, localName string) *XmlNode {
	for _, c := range x.Children() {
		if c.IsNS(nsURI, localName) {
			return c
		}
	}
	return emptyXmlNode()
}

// ChildrenNS returns every element child matching namespace URI + local name.
func (x *XmlNode) ChildrenNS(nsURI, localName string) []*XmlNode {
	var out []*XmlNode
	for _, c := range x.Children() {
		if c.IsNS(nsURI, localName) {
			out = append(out, c)
		}
	}
	return out
}

// ChildAny returns the first element child, in document order, whose local
// name is one of the given names - used for "first of these
// alternative tags" lookups like fill: solidFill | gradFill | noFill | ...
func (x *XmlNode) ChildAny(localNames ...string) *XmlNode {
	for _, c := range x.Children() {
		for _, name := range localNames {
			if c.LocalName() == name {
				return c
			}
		}
	}
	return emptyXmlNode()
}

// Text returns the element's concatenated text content.
func (x *XmlNode) Text() string {
	if !x.Exists() {
		return ""
	}
	return x.raw.InnerText()
}

// OuterXML reserializes the element and its subtree, used to retain
// fill/stroke nodes verbatim so higher layers can distinguish "absent"
// from "explicit noFill".
func (x *XmlNode) OuterXML() string {
	if !x.Exists() {
		return ""
	}
	return x.raw.OutputXML(true)
}
