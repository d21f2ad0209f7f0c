package pptxscene

import "regexp"

// Relationship is the {id, type, target} triple the Target is
// stored exactly as written in the .rels file (possibly relative); callers
// resolve it against the referring part's directory with resolvePath.
type Relationship struct {
	ID     string
	Type   string
	Target string
}

// relationshipTag matches a single <Relationship .../> element tolerantly:
// it does not require well-formed XML around it, only that Id, Type, and
// Target all appear as attributes on the same tag, in any order. Real-world
// .rels files occasionally carry stray invalid fragments elsewhere in the
// document that would sink a strict parse.
var relationshipTag = regexp.MustCompile(`<Relationship\b[^>]*/?>`)

var (
	relAttrID     = regexp.MustCompile(`\bId\s*=\s*"([^"]*)"`)
	relAttrType   = regexp.MustCompile(`\bType\s*=\s*"([^"]*)"`)
	relAttrTarget = regexp.MustCompile(`\bTarget\s*=\s*"([^"]*)"`)
)

// readRelationships scans the text of a .rels part and returns id ->
// Relationship. Malformed <Relationship> tags missing any of the three
// required attributes are skipped silently rather than aborting the parse.
func readRelationships(text string) map[string]Relationship {
	out := make(map[string]Relationship)
	for _, tag := range relationshipTag.FindAllString(text, -1) {
		id := firstSubmatch(relAttrID, tag)
		typ := firstSubmatch(relAttrType, tag)
		target := firstSubmatch(relAttrTarget, tag)
		if id == "" || typ == "" || target == "" {
			continue
		}
		out[id] = Relationship{ID: id, Type: typ, Target: target}
	}
	return out
}

func firstSubmatch(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

// relationshipsFor loads and parses the .rels sibling of partPath, or
// returns an empty map (never nil) when it is absent.
func relationshipsFor(em *EntryMap, partPath string) map[string]Relationship {
	text, ok := em.normalizedText(relsPathFor(partPath))
	if !ok {
		return map[string]Relationship{}
	}
	return readRelationships(text)
}

// resolveRelTarget resolves a relationship's Target against the directory
// of the part that referenced it.
func resolveRelTarget(partPath string, rel Relationship) string {
	return resolvePath(dirOf(partPath), rel.Target)
}

// byType returns every relationship of a given type URI, in map-iteration
// order (the caller is expected to not depend on ordering among same-type
// relationships beyond what the owning XML part's own ordering provides).
func byType(rels map[string]Relationship, typ string) []Relationship {
	var out []Relationship
	for _, r := range rels {
		if r.Type == typ {
			out = append(out, r)
		}
	}
	return out
}
