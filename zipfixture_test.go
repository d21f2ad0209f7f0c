package pptxscene

import (
	"archive/zip"
	"bytes"
)

// buildPackage assembles an in-memory ZIP from a path -> XML text map, the
// same shape as a real .pptx but built in code instead of checked in as a
// binary fixture. Every _test.go in this package that needs a parseable
// archive shares this helper.
func buildPackage(t interface{ Fatalf(string, ...any) }, files map[string]string) []byte {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

const presentationXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:presentation xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"
                 xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <p:sldIdLst>
    <p:sldId id="256" r:id="rIdSlide1"/>
  </p:sldIdLst>
  <p:sldSz cx="9144000" cy="6858000" type="screen4x3"/>
</p:presentation>`

const presentationRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rIdSlide1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide1.xml"/>
</Relationships>`

const slideRelsToLayout = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rIdLayout1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>
</Relationships>`

const layoutRelsToMaster = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rIdMaster1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="../slideMasters/slideMaster1.xml"/>
</Relationships>`

func emptyLayoutXML() string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sldLayout xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"
             xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
  <p:cSld>
    <p:spTree/>
  </p:cSld>
</p:sldLayout>`
}

func emptySlideXML() string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"
       xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
  <p:cSld>
    <p:spTree/>
  </p:cSld>
</p:sld>`
}

// baseScaffold returns the presentation/slide/layout/rels parts common to
// every scenario, keyed by archive path. masterXML and layoutXML/slideXML
// are supplied by the caller so each scenario can vary exactly the part it
// needs to exercise.
func baseScaffold(masterXML, layoutXML, slideXML string) map[string]string {
	return map[string]string{
		"ppt/presentation.xml":                        presentationXML,
		"ppt/_rels/presentation.xml.rels":              presentationRels,
		"ppt/slides/slide1.xml":                        slideXML,
		"ppt/slides/_rels/slide1.xml.rels":              slideRelsToLayout,
		"ppt/slideLayouts/slideLayout1.xml":             layoutXML,
		"ppt/slideLayouts/_rels/slideLayout1.xml.rels":  layoutRelsToMaster,
		"ppt/slideMasters/slideMaster1.xml":             masterXML,
	}
}
