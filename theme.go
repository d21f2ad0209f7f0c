package pptxscene

// Theme is a deck's theme1.xml: a color scheme, a font scheme
// (major/minor), and a format scheme of four parallel, 1-based-indexed
// lists (fills, lines, effects, bgFills) referenced by style refs.
type Theme struct {
	Name         string
	ColorScheme  map[string]Color // theme color name (dk1, lt1, dk2, lt2, accent1..6, hlink, folHlink) -> raw Color
	FontScheme   FontScheme
	FormatScheme FormatScheme
}

// FontScheme is the theme's major/minor font pair. A run whose typeface
// is "+mj-lt"/"+mn-lt" resolves to these, falling back to "Arial" if unset.
type FontScheme struct {
	Major string
	Minor string
}

// FormatScheme holds the four ordered, 1-based-indexed format lists a
// <p:style> styleRef indexes into.
type FormatScheme struct {
	Fills   []rawFill
	Lines   []rawStroke
	Effects []rawEffect
	BgFills []rawFill
}

// fillAt (like lineAt, effectAt and bgFillAt) returns the 1-based-indexed
// element, or the zero value and false when idx is
// out of range - callers treat that the same as "no style found" rather
// than panicking on a malformed style ref.
func (fs FormatScheme) fillAt(idx int) (rawFill, bool) {
	if idx < 1 || idx > len(fs.Fills) {
		return rawFill{}, false
	}
	return fs.Fills[idx-1], true
}

func (fs FormatScheme) lineAt(idx int) (rawStroke, bool) {
	if idx < 1 || idx > len(fs.Lines) {
		return rawStroke{}, false
	}
	return fs.Lines[idx-1], true
}

func (fs FormatScheme) effectAt(idx int) (rawEffect, bool) {
	if idx < 1 || idx > len(fs.Effects) {
		return rawEffect{}, false
	}
	return fs.Effects[idx-1], true
}

func (fs FormatScheme) bgFillAt(idx int) (rawFill, bool) {
	if idx < 1 || idx > len(fs.BgFills) {
		return rawFill{}, false
	}
	return fs.BgFills[idx-1], true
}

var themeColorNames = []string{"dk1", "lt1", "dk2", "lt2", "accent1", "accent2", "accent3", "accent4", "accent5", "accent6", "hlink", "folHlink"}

// parseTheme parses a theme*.xml document root into a Theme.
func parseTheme(root *XmlNode) Theme {
	t := Theme{ColorScheme: map[string]Color{}}
	t.Name = root.AttrString("name", "")

	elems := root.ChildNS(nsDML, "themeElements")
	clrScheme := elems.ChildNS(nsDML, "clrScheme")
	for _, name := range themeColorNames {
		node := clrScheme.Child(name)
		if !node.Exists() {
			continue
		}
		// a theme color element wraps exactly one concrete color child
		for _, child := range node.Children() {
			if c := parseColor(child); c != nil {
				t.ColorScheme[name] = *c
				break
			}
		}
	}

	fontScheme := elems.ChildNS(nsDML, "fontScheme")
	if major := fontScheme.Child("majorFont").Child("latin"); major.Exists() {
		t.FontScheme.Major = major.AttrString("typeface", "")
	}
	if minor := fontScheme.Child("minorFont").Child("latin"); minor.Exists() {
		t.FontScheme.Minor = minor.AttrString("typeface", "")
	}
	if t.FontScheme.Major == "" {
		t.FontScheme.Major = "Arial"
	}
	if t.FontScheme.Minor == "" {
		t.FontScheme.Minor = "Arial"
	}

	fmtScheme := elems.ChildNS(nsDML, "fmtScheme")
	for _, f := range fmtScheme.Child("fillStyleLst").Children() {
		t.FormatScheme.Fills = append(t.FormatScheme.Fills, parseFill(f))
	}
	for _, l := range fmtScheme.Child("lnStyleLst").ChildrenNS(nsDML, "ln") {
		t.FormatScheme.Lines = append(t.FormatScheme.Lines, parseStroke(l))
	}
	for _, e := range fmtScheme.Child("effectStyleLst").ChildrenNS(nsDML, "effectStyle") {
		t.FormatScheme.Effects = append(t.FormatScheme.Effects, parseEffect(e.Child("effectLst")))
	}
	for _, f := range fmtScheme.Child("bgFillStyleLst").Children() {
		t.FormatScheme.BgFills = append(t.FormatScheme.BgFills, parseFill(f))
	}

	return t
}

// defaultTheme is used when a presentation's theme part is missing or
// unparseable, so downstream resolution always has something to fall back
// to rather than nil-checking everywhere.
func defaultTheme() Theme {
	return Theme{
		ColorScheme: map[string]Color{
			"dk1": {Kind: ColorKindSrgb, Srgb: 0x000000},
			"lt1": {Kind: ColorKindSrgb, Srgb: 0xFFFFFF},
			"dk2": {Kind: ColorKindSrgb, Srgb: 0x44546A},
			"lt2": {Kind: ColorKindSrgb, Srgb: 0xE7E6E6},
			"accent1": {Kind: ColorKindSrgb, Srgb: 0x4472C4},
			"accent2": {Kind: ColorKindSrgb, Srgb: 0xED7D31},
			"accent3": {Kind: ColorKindSrgb, Srgb: 0xA5A5A5},
			"accent4": {Kind: ColorKindSrgb, Srgb: 0xFFC000},
			"accent5": {Kind: ColorKindSrgb, Srgb: 0x5B9BD5},
			"accent6": {Kind: ColorKindSrgb, Srgb: 0x70AD47},
			"hlink": {Kind: ColorKindSrgb, Srgb: 0x0563C1},
			"folHlink": {Kind: ColorKindSrgb, Srgb: 0x954F72},
		},
		FontScheme: FontScheme{Major: "Calibri Light", Minor: "Calibri"},
	}
}
