package pptxscene

import "time"

// SlideCommentAuthor is one entry of ppt/commentAuthors.xml.
type SlideCommentAuthor struct {
	Name     string
	Initials string
	ID       int
	ColorIdx int
}

// SlideComment is one <p:cm> comment anchored to a slide position. A plain
// author+text+position pass-through; never load-bearing for any invariant.
type SlideComment struct {
	Author    SlideCommentAuthor
	Text      string
	Date      time.Time
	PositionX int64 // EMU
	PositionY int64
}

// SlideNotes is the optional notes-slide text body attached to a slide.
type SlideNotes struct {
	Text string
}

// parseCommentAuthors parses ppt/commentAuthors.xml into id -> author.
func parseCommentAuthors(root *XmlNode) map[string]SlideCommentAuthor {
	out := map[string]SlideCommentAuthor{}
	for _, cAuthor := range root.Children() {
		if cAuthor.LocalName() != "cmAuthor" {
			continue
		}
		id := cAuthor.AttrString("id", "")
		out[id] = SlideCommentAuthor{
			Name:     cAuthor.AttrString("name", ""),
			Initials: cAuthor.AttrString("initials", ""),
			ID:       cAuthor.AttrInt("id", 0),
			ColorIdx: cAuthor.AttrInt("clrIdx", 0),
		}
	}
	return out
}

// parseSlideComments parses a ppt/comments/commentN.xml part into a list of
// SlideComment, resolving each entry's authorId against the authors map.
// Absence of either part is tolerated (returns nil), matching the module's
// PartMissing degrade rather than aborting.
func parseSlideComments(root *XmlNode, authors map[string]SlideCommentAuthor) []SlideComment {
	var out []SlideComment
	for _, cm := range root.Children() {
		if cm.LocalName() != "cm" {
			continue
		}
		authorID := cm.AttrString("authorId", "")
		comment := SlideComment{Author: authors[authorID]}
		if pos := cm.Child("pos"); pos.Exists() {
			comment.PositionX = pos.AttrInt64("x", 0)
			comment.PositionY = pos.AttrInt64("y", 0)
		}
		if text := cm.Child("text"); text.Exists() {
			comment.Text = text.Text()
		}
		if dt, ok := cm.Attr("dt"); ok {
			if t, err := time.Parse(time.RFC3339, dt); err == nil {
				comment.Date = t
			}
		}
		out = append(out, comment)
	}
	return out
}

// parseSlideNotes parses a notesSlide part's body text into SlideNotes,
// concatenating every text-bearing run across every paragraph of the
// notes placeholder body.
func parseSlideNotes(root *XmlNode) *SlideNotes {
	spTree := root.Child("cSld").Child("spTree")
	var parts []string
	for _, sp := range spTree.ChildrenNS(nsPML, "sp") {
		txBody := sp.Child("txBody")
		if !txBody.Exists() {
			continue
		}
		for _, p := range txBody.ChildrenNS(nsDML, "p") {
			var line string
			for _, r := range p.ChildrenNS(nsDML, "r") {
				if t := r.Child("t"); t.Exists() {
					line += t.Text()
				}
			}
			parts = append(parts, line)
		}
	}
	if len(parts) == 0 {
		return nil
	}
	return &SlideNotes{Text: joinLines(parts)}
}

func joinLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}
