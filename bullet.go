package pptxscene

import "strings"

// BulletType discriminates a paragraph's bullet/numbering treatment,
// parsed from the buNone/buChar/buAutoNum elements of a paragraph's list
// style.
type BulletType int

const (
	BulletTypeNone BulletType = iota
	BulletTypeChar
	BulletTypeNumeric
)

// Bullet is the resolved per-paragraph bullet/numbering spec: what
// character or counter-derived prefix to render before the paragraph's
// first run, plus its own font/color/size overrides.
type Bullet struct {
	Type      BulletType
	Char      string // BulletTypeChar
	Font      string
	NumFormat string // BulletTypeNumeric, e.g. "arabicPeriod"
	StartAt   int
	Color     *Color
	SizePct   int // percentage of the paragraph's text size, 25-400
}

// Numeric format constants (a:buAutoNum type= values) this module handles.
const (
	NumFormatArabicPeriod  = "arabicPeriod"
	NumFormatArabicParenR  = "arabicParenR"
	NumFormatRomanUcPeriod = "romanUcPeriod"
	NumFormatRomanLcPeriod = "romanLcPeriod"
	NumFormatAlphaUcPeriod = "alphaUcPeriod"
	NumFormatAlphaLcPeriod = "alphaLcPeriod"
	NumFormatAlphaLcParenR = "alphaLcParenR"
)

// parseBullet parses a paragraph-properties node's bullet children. A
// returned nil means "no bullet specified at this level" (the merge stack
// keeps scanning outward), as distinct from an explicit buNone which
// returns a zero-value, BulletTypeNone Bullet (a definite override).
func parseBullet(pPr *XmlNode) *Bullet {
	if !pPr.Exists() {
		return nil
	}
	if pPr.Child("buNone").Exists() {
		return &Bullet{Type: BulletTypeNone}
	}

	var b Bullet
	found := false

	if buChar := pPr.Child("buChar"); buChar.Exists() {
		b.Type = BulletTypeChar
		b.Char = buChar.AttrString("char", "•")
		found = true
	}
	if buAuto := pPr.Child("buAutoNum"); buAuto.Exists() {
		b.Type = BulletTypeNumeric
		b.NumFormat = buAuto.AttrString("type", NumFormatArabicPeriod)
		b.StartAt = buAuto.AttrInt("startAt", 1)
		found = true
	}
	if buFont := pPr.Child("buFont"); buFont.Exists() {
		b.Font = buFont.AttrString("typeface", "")
	}
	if buSzPct := pPr.Child("buSzPct"); buSzPct.Exists() {
		b.SizePct = buSzPct.AttrInt("val", 100000) / 1000
	}
	if buClr := pPr.Child("buClr"); buClr.Exists() {
		for _, c := range buClr.Children() {
			if col := parseColor(c); col != nil {
				b.Color = col
				break
			}
		}
	}

	if !found {
		if b.Font != "" || b.SizePct != 0 || b.Color != nil {
			return nil
		}
		return nil
	}
	if b.SizePct == 0 {
		b.SizePct = 100
	}
	return &b
}

// numberPrefix renders a numeric bullet's counter value in the given
// format, e.g. 3 -> "3." (arabicPeriod), "III." (romanUcPeriod), "c)"
// (alphaLcParenR).
func numberPrefix(format string, n int) string {
	switch format {
	case NumFormatArabicParenR:
		return itoa(n) + ")"
	case NumFormatRomanUcPeriod:
		return strings.ToUpper(toRoman(n)) + "."
	case NumFormatRomanLcPeriod:
		return strings.ToLower(toRoman(n)) + "."
	case NumFormatAlphaUcPeriod:
		return strings.ToUpper(toAlpha(n)) + "."
	case NumFormatAlphaLcPeriod:
		return strings.ToLower(toAlpha(n)) + "."
	case NumFormatAlphaLcParenR:
		return strings.ToLower(toAlpha(n)) + ")"
	case NumFormatArabicPeriod:
		fallthrough
	default:
		return itoa(n) + "."
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	if neg {
		return "-" + string(digits)
	}
	return string(digits)
}

// toAlpha renders n (1-based) as a base-26 letter sequence: 1->a, 26->z,
// 27->aa, matching the alphaLcPeriod/alphaUcPeriod numbering convention.
func toAlpha(n int) string {
	if n <= 0 {
		return "a"
	}
	var out []byte
	for n > 0 {
		n--
		out = append([]byte{byte('a' + n%26)}, out...)
		n /= 26
	}
	return string(out)
}

var romanTable = []struct {
	value  int
	symbol string
}{
	{1000, "m"}, {900, "cm"}, {500, "d"}, {400, "cd"},
	{100, "c"}, {90, "xc"}, {50, "l"}, {40, "xl"},
	{10, "x"}, {9, "ix"}, {5, "v"}, {4, "iv"}, {1, "i"},
}

func toRoman(n int) string {
	if n <= 0 {
		return ""
	}
	var sb strings.Builder
	for _, entry := range romanTable {
		for n >= entry.value {
			sb.WriteString(entry.symbol)
			n -= entry.value
		}
	}
	return sb.String()
}
