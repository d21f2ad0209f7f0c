package pptxscene

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ColorKind discriminates the Color tagged union.
type ColorKind int

const (
	ColorKindSrgb ColorKind = iota
	ColorKindScheme
	ColorKindSystem
)

// ColorModifier is one entry of the ordered modifier list applied to a
// Color's HSL form, e.g. tint, shade, lumMod, lumOff, satMod, hueMod.
// Alpha is carried on Color.Alpha, not in this list. Value is
// the raw "val" attribute (thousandths of a percent, e.g. 50000 = 50%).
type ColorModifier struct {
	Name  string
	Value int
}

// Color is the tagged union: either a concrete sRGB triple, an
// unresolved theme-scheme token, or a system color, plus the ordered
// modifier list to apply on resolution. Every Color reaching the scene
// graph must be one of these resolved shapes, never a raw XML node.
type Color struct {
	Kind      ColorKind
	Srgb      uint32  // 24-bit rgb, valid when Kind == ColorKindSrgb
	Scheme    string  // theme color map slot name (bg1, tx1, accent1, ...), valid when Kind == ColorKindScheme
	SystemRGB uint32  // lastClr fallback, valid when Kind == ColorKindSystem
	Alpha     *int    // straight alpha override in thousandths of a percent, nil = fully opaque/unspecified
	Modifiers []ColorModifier
}

// ResolvedColor is what resolveColor returns: either a concrete "#RRGGBB"
// string, or the original scheme token with its modifier list preserved.
type ResolvedColor struct {
	Hex        string // set when resolved to a concrete color
	SchemeName string // set when still a scheme token (resolveColor couldn't/shouldn't resolve further)
	Modifiers  []ColorModifier
}

var presetColors = map[string]uint32{
	"black": 0x000000, "white": 0xFFFFFF, "red": 0xFF0000, "green": 0x008000,
	"blue": 0x0000FF, "yellow": 0xFFFF00, "orange": 0xFFA500, "purple": 0x800080,
	"gray": 0x808080, "grey": 0x808080, "silver": 0xC0C0C0, "maroon": 0x800000,
	"olive": 0x808000, "lime": 0x00FF00, "aqua": 0x00FFFF, "teal": 0x008080,
	"navy": 0x000080, "fuchsia": 0xFF00FF, "cyan": 0x00FFFF, "magenta": 0xFF00FF,
	"brown": 0xA52A2A, "pink": 0xFFC0CB, "gold": 0xFFD700, "indigo": 0x4B0082,
	"ivory": 0xFFFFF0, "khaki": 0xF0E68C, "salmon": 0xFA8072, "tan": 0xD2B48C,
	"turquoise": 0x40E0D0, "violet": 0xEE82EE, "wheat": 0xF5DEB3, "coral": 0xFF7F50,
	"crimson": 0xDC143C, "darkblue": 0x00008B, "darkgreen": 0x006400, "darkred": 0x8B0000,
	"lightblue": 0xADD8E6, "lightgreen": 0x90EE90, "lightgray": 0xD3D3D3, "lightgrey": 0xD3D3D3,
	"none": 0xFFFFFF, "transparent": 0xFFFFFF,
}

// parseColor recognizes srgbClr, sysClr (preferring lastClr), schemeClr,
// and prstClr, absorbing any modifier children into the modifier list.
func parseColor(node *XmlNode) *Color {
	if !node.Exists() {
		return nil
	}
	var c Color
	switch node.LocalName() {
	case "srgbClr":
		c.Kind = ColorKindSrgb
		c.Srgb = parseHexRGB(node.AttrString("val", "000000"))
	case "sysClr":
		c.Kind = ColorKindSystem
		if last, ok := node.Attr("lastClr"); ok {
			c.SystemRGB = parseHexRGB(last)
		} else {
			c.SystemRGB = parseHexRGB(node.AttrString("val", "000000"))
		}
	case "schemeClr":
		c.Kind = ColorKindScheme
		c.Scheme = node.AttrString("val", "")
	case "prstClr":
		c.Kind = ColorKindSrgb
		name := strings.ToLower(node.AttrString("val", "black"))
		if rgb, ok := presetColors[name]; ok {
			c.Srgb = rgb
		}
	default:
		return nil
	}

	for _, mod := range node.Children() {
		switch mod.LocalName() {
		case "tint", "shade", "lumMod", "lumOff", "satMod", "hueMod", "hueOff", "alphaOff", "red", "green", "blue", "gray":
			val := mod.AttrInt("val", 0)
			c.Modifiers = append(c.Modifiers, ColorModifier{Name: mod.LocalName(), Value: val})
		case "alpha":
			val := mod.AttrInt("val", 100000)
			a := val
			c.Alpha = &a
		}
	}
	return &c
}

func parseHexRGB(s string) uint32 {
	s = strings.TrimPrefix(s, "#")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0
	}
	return uint32(v)
}

// resolveColor rebinds scheme colors through the slide's active color map
// into the theme, then applies the ordered modifier list to the HSL form
// of the result. When keepStops is true the modifier list is skipped and
// the unmodified color is returned.
func resolveColor(c *Color, ctx *SlideContext, keepStops bool) ResolvedColor {
	if c == nil {
		return ResolvedColor{}
	}

	var rgb uint32
	switch c.Kind {
	case ColorKindSrgb:
		rgb = c.Srgb
	case ColorKindSystem:
		rgb = c.SystemRGB
	case ColorKindScheme:
		themeName := ctx.ColorMap.resolveSlot(c.Scheme)
		if themeName == "" {
			return ResolvedColor{SchemeName: c.Scheme, Modifiers: c.Modifiers}
		}
		resolved, ok := ctx.Theme.ColorScheme[themeName]
		if !ok {
			return ResolvedColor{SchemeName: c.Scheme, Modifiers: c.Modifiers}
		}
		if resolved.Kind == ColorKindScheme {
			// themes never nest scheme refs in practice; guard against cycles defensively.
			return ResolvedColor{SchemeName: c.Scheme, Modifiers: c.Modifiers}
		}
		if resolved.Kind == ColorKindSystem {
			rgb = resolved.SystemRGB
		} else {
			rgb = resolved.Srgb
		}
	}

	h, s, l := rgbToHSL(rgb)
	if !keepStops {
		for _, m := range c.Modifiers {
			h, s, l = applyColorModifier(h, s, l, m)
		}
	}
	rgb = hslToRGB(h, s, l)
	return ResolvedColor{Hex: fmt.Sprintf("#%06X", rgb)}
}

func applyColorModifier(h, s, l float64, m ColorModifier) (float64, float64, float64) {
	pct := float64(m.Value) / 100000.0
	switch m.Name {
	case "tint":
		l = l + (1-l)*(1-pct)
	case "shade":
		l = l * pct
	case "lumMod":
		l = l * pct
	case "lumOff":
		l = l + pct
	case "satMod":
		s = s * pct
	case "hueMod":
		h = math.Mod(h*pct, 360)
	case "hueOff":
		h = math.Mod(h+pct*360, 360)
	}
	if l < 0 {
		l = 0
	}
	if l > 1 {
		l = 1
	}
	if s < 0 {
		s = 0
	}
	if s > 1 {
		s = 1
	}
	return h, s, l
}

func rgbToHSL(rgb uint32) (h, s, l float64) {
	r := float64((rgb>>16)&0xFF) / 255
	g := float64((rgb>>8)&0xFF) / 255
	b := float64(rgb&0xFF) / 255

	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l = (max + min) / 2

	if max == min {
		return 0, 0, l
	}

	d := max - min
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}

	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	case b:
		h = (r-g)/d + 4
	}
	h *= 60
	return h, s, l
}

func hslToRGB(h, s, l float64) uint32 {
	if s == 0 {
		v := uint32(math.Round(l * 255))
		return v<<16 | v<<8 | v
	}
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	hk := h / 360

	r := hueToRGB(p, q, hk+1.0/3.0)
	g := hueToRGB(p, q, hk)
	b := hueToRGB(p, q, hk-1.0/3.0)

	return uint32(math.Round(r*255))<<16 | uint32(math.Round(g*255))<<8 | uint32(math.Round(b*255))
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 1.0/2.0:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	default:
		return p
	}
}

// ColorMap is the eight-slot translation table from scheme-slot token to theme
// color name.
type ColorMap struct {
	Bg1, Tx1, Bg2, Tx2                                 string
	Accent1, Accent2, Accent3, Accent4, Accent5, Accent6 string
	Hlink, FolHlink                                    string
}

// DefaultColorMap returns the standard OOXML clrMap identity mapping.
func DefaultColorMap() ColorMap {
	return ColorMap{
		Bg1: "lt1", Tx1: "dk1", Bg2: "lt2", Tx2: "dk2",
		Accent1: "accent1", Accent2: "accent2", Accent3: "accent3",
		Accent4: "accent4", Accent5: "accent5", Accent6: "accent6",
		Hlink: "hlink", FolHlink: "folHlink",
	}
}

// resolveSlot maps a scheme-color token (as it appears in schemeClr val=)
// to the theme color name it is bound to.
func (m ColorMap) resolveSlot(slot string) string {
	switch slot {
	case "bg1":
		return m.Bg1
	case "tx1":
		return m.Tx1
	case "bg2":
		return m.Bg2
	case "tx2":
		return m.Tx2
	case "accent1":
		return m.Accent1
	case "accent2":
		return m.Accent2
	case "accent3":
		return m.Accent3
	case "accent4":
		return m.Accent4
	case "accent5":
		return m.Accent5
	case "accent6":
		return m.Accent6
	case "hlink":
		return m.Hlink
	case "folHlink":
		return m.FolHlink
	case "dk1", "dk2", "lt1", "lt2":
		// some producers emit the raw theme name directly instead of the mapped slot
		return slot
	default:
		return ""
	}
}

// parseColorMap reads a <p:clrMap .../> element's attributes into a
// ColorMap, falling back to the default identity mapping for any slot not
// present.
func parseColorMap(node *XmlNode) ColorMap {
	m := DefaultColorMap()
	if !node.Exists() {
		return m
	}
	assign := func(attr string, field *string) {
		if v, ok := node.Attr(attr); ok {
			*field = v
		}
	}
	assign("bg1", &m.Bg1)
	assign("tx1", &m.Tx1)
	assign("bg2", &m.Bg2)
	assign("tx2", &m.Tx2)
	assign("accent1", &m.Accent1)
	assign("accent2", &m.Accent2)
	assign("accent3", &m.Accent3)
	assign("accent4", &m.Accent4)
	assign("accent5", &m.Accent5)
	assign("accent6", &m.Accent6)
	assign("hlink", &m.Hlink)
	assign("folHlink", &m.FolHlink)
	return m
}

// mergeColorMapOverride applies a layout's clrMapOvr/overrideClrMapping on
// top of the master's color map. An overrideClrMapping element carries the
// same attribute set as clrMap; an <a:masterClrMapping/> means "no
// override, inherit the master's map unchanged".
func mergeColorMapOverride(base ColorMap, overrideNode *XmlNode) ColorMap {
	if !overrideNode.Exists() {
		return base
	}
	ovr := overrideNode.Child("overrideClrMapping")
	if !ovr.Exists() {
		return base
	}
	return parseColorMap(ovr)
}
