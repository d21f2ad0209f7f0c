package pptxscene

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func mustParseXmlFragment(t *testing.T, xml string) *XmlNode {
	t.Helper()
	root := parseXml(nil, xml, "fragment")
	if !root.Exists() {
		t.Fatalf("fragment failed to parse: %s", xml)
	}
	return root
}

func TestParseHexRGB_ParsesWithAndWithoutHash(t *testing.T) {
	assert.Equal(t, uint32(0xFF0000), parseHexRGB("FF0000"))
	assert.Equal(t, uint32(0xFF0000), parseHexRGB("#FF0000"))
}

func TestParseHexRGB_InvalidInputReturnsZero(t *testing.T) {
	assert.Equal(t, uint32(0), parseHexRGB("not-hex"))
}

func TestRgbToHSL_Black(t *testing.T) {
	h, s, l := rgbToHSL(0x000000)
	assert.Equal(t, 0.0, h)
	assert.Equal(t, 0.0, s)
	assert.Equal(t, 0.0, l)
}

func TestRgbToHSL_White(t *testing.T) {
	h, s, l := rgbToHSL(0xFFFFFF)
	assert.Equal(t, 0.0, h)
	assert.Equal(t, 0.0, s)
	assert.Equal(t, 1.0, l)
}

func TestRgbToHSL_PureRed(t *testing.T) {
	h, s, l := rgbToHSL(0xFF0000)
	assert.InDelta(t, 0.0, h, 1e-9)
	assert.InDelta(t, 1.0, s, 1e-9)
	assert.InDelta(t, 0.5, l, 1e-9)
}

func TestHslToRGB_RoundTripsPureRed(t *testing.T) {
	h, s, l := rgbToHSL(0xFF0000)
	assert.Equal(t, uint32(0xFF0000), hslToRGB(h, s, l))
}

func TestHslToRGB_RoundTripsGray(t *testing.T) {
	h, s, l := rgbToHSL(0x808080)
	got := hslToRGB(h, s, l)
	// rounding through HSL can land off by one 8-bit step per channel
	assert.InDelta(t, 0x80, (got>>16)&0xFF, 1)
	assert.InDelta(t, 0x80, (got>>8)&0xFF, 1)
	assert.InDelta(t, 0x80, got&0xFF, 1)
}

func TestApplyColorModifier_ShadeDarkens(t *testing.T) {
	_, _, l := applyColorModifier(0, 0, 1.0, ColorModifier{Name: "shade", Value: 50000})
	assert.InDelta(t, 0.5, l, 1e-9)
}

func TestApplyColorModifier_TintLightens(t *testing.T) {
	_, _, l := applyColorModifier(0, 0, 0.0, ColorModifier{Name: "tint", Value: 50000})
	assert.InDelta(t, 0.5, l, 1e-9)
}

func TestApplyColorModifier_ClampsLightnessAndSaturation(t *testing.T) {
	_, s, l := applyColorModifier(0, 2.0, 2.0, ColorModifier{Name: "satMod", Value: 100000})
	assert.LessOrEqual(t, s, 1.0)
	assert.LessOrEqual(t, l, 1.0)
}

func TestParseColor_SrgbClr(t *testing.T) {
	node := mustParseXmlFragment(t, `<a:srgbClr xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" val="336699"/>`)
	c := parseColor(node)
	if assert.NotNil(t, c) {
		assert.Equal(t, ColorKindSrgb, c.Kind)
		assert.Equal(t, uint32(0x336699), c.Srgb)
	}
}

func TestParseColor_SchemeClr(t *testing.T) {
	node := mustParseXmlFragment(t, `<a:schemeClr xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" val="accent2"/>`)
	c := parseColor(node)
	if assert.NotNil(t, c) {
		assert.Equal(t, ColorKindScheme, c.Kind)
		assert.Equal(t, "accent2", c.Scheme)
	}
}

func TestParseColor_PrstClrKnownName(t *testing.T) {
	node := mustParseXmlFragment(t, `<a:prstClr xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" val="Gold"/>`)
	c := parseColor(node)
	if assert.NotNil(t, c) {
		assert.Equal(t, ColorKindSrgb, c.Kind)
		assert.Equal(t, uint32(0xFFD700), c.Srgb)
	}
}

func TestParseColor_SysClrPrefersLastClr(t *testing.T) {
	node := mustParseXmlFragment(t, `<a:sysClr xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" val="windowText" lastClr="1A1A1A"/>`)
	c := parseColor(node)
	if assert.NotNil(t, c) {
		assert.Equal(t, ColorKindSystem, c.Kind)
		assert.Equal(t, uint32(0x1A1A1A), c.SystemRGB)
	}
}

func TestParseColor_ModifiersCollected(t *testing.T) {
	node := mustParseXmlFragment(t, `<a:srgbClr xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" val="FF0000">
		<a:shade val="50000"/>
		<a:alpha val="80000"/>
	</a:srgbClr>`)
	c := parseColor(node)
	if assert.NotNil(t, c) {
		assert.Len(t, c.Modifiers, 1)
		assert.Equal(t, "shade", c.Modifiers[0].Name)
		if assert.NotNil(t, c.Alpha) {
			assert.Equal(t, 80000, *c.Alpha)
		}
	}
}

func TestColorMap_DefaultIdentityMapping(t *testing.T) {
	m := DefaultColorMap()
	assert.Equal(t, "lt1", m.resolveSlot("bg1"))
	assert.Equal(t, "dk1", m.resolveSlot("tx1"))
	assert.Equal(t, "accent3", m.resolveSlot("accent3"))
}

func TestColorMap_ResolveSlot_RawThemeNamePassesThrough(t *testing.T) {
	m := DefaultColorMap()
	assert.Equal(t, "dk2", m.resolveSlot("dk2"))
}

func TestColorMap_ResolveSlot_UnknownSlotIsEmpty(t *testing.T) {
	m := DefaultColorMap()
	assert.Equal(t, "", m.resolveSlot("nonsense"))
}

func TestResolveColor_SrgbWithNoModifiers(t *testing.T) {
	c := &Color{Kind: ColorKindSrgb, Srgb: 0x336699}
	got := resolveColor(c, &SlideContext{ColorMap: DefaultColorMap(), Theme: defaultTheme()}, false)
	assert.Equal(t, "#336699", got.Hex)
}

func TestResolveColor_SchemeFallsBackWhenSlotUnmapped(t *testing.T) {
	c := &Color{Kind: ColorKindScheme, Scheme: "bg1"}
	cm := ColorMap{} // every slot empty
	got := resolveColor(c, &SlideContext{ColorMap: cm, Theme: defaultTheme()}, false)
	assert.Equal(t, "bg1", got.SchemeName)
	assert.Equal(t, "", got.Hex)
}

func TestResolveColor_NilColorReturnsZeroValue(t *testing.T) {
	got := resolveColor(nil, &SlideContext{}, false)
	assert.Equal(t, ResolvedColor{}, got)
}
