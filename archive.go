package pptxscene

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// entry is an opaque handle to one archive member, capable of producing
// raw bytes or a normalized text decoding. Package paths are stored
// "/"-joined with no leading slash.
type entry struct {
	path string
	file *zip.File
}

// EntryMap is the package entry map: a mapping from archive-internal
// path to an entry handle.
type EntryMap struct {
	entries map[string]*entry
}

// load opens a PPTX/ZIP byte stream and enumerates its entries. It fails
// with ErrArchiveCorrupt if the ZIP central directory can't be read.
func load(packageBytes []byte) (*EntryMap, error) {
	zr, err := zip.NewReader(bytes.NewReader(packageBytes), int64(len(packageBytes)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArchiveCorrupt, err)
	}

	em := &EntryMap{entries: make(map[string]*entry, len(zr.File))}
	for _, f := range zr.File {
		p := normalizeArchivePath(f.Name)
		em.entries[p] = &entry{path: p, file: f}
	}
	return em, nil
}

func normalizeArchivePath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	return strings.TrimPrefix(p, "/")
}

// has reports whether a path exists in the archive.
func (em *EntryMap) has(p string) bool {
	_, ok := em.entries[normalizeArchivePath(p)]
	return ok
}

// bytes returns the raw, undecoded contents of an entry, or (nil, false)
// when the path is absent.
func (em *EntryMap) bytes(p string) ([]byte, bool) {
	e, ok := em.entries[normalizeArchivePath(p)]
	if !ok {
		return nil, false
	}
	rc, err := e.file.Open()
	if err != nil {
		return nil, false
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, false
	}
	return data, true
}

// normalizedText returns UTF-8 text with any BOM stripped and CRLF/CR line
// endings collapsed to LF. It returns (value, false) when the path is
// missing - it never panics or returns an error for a missing path.
func (em *EntryMap) normalizedText(p string) (string, bool) {
	raw, ok := em.bytes(p)
	if !ok {
		return "", false
	}
	return normalizeText(raw), true
}

// normalizeText strips a UTF-8/UTF-16 BOM (via golang.org/x/text's BOM
// sniffing transformer) and collapses CRLF/CR to LF.
func normalizeText(raw []byte) string {
	transformer := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	decoded, _, err := transform.Bytes(transformer, raw)
	if err != nil {
		decoded = raw
	}
	s := string(decoded)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return s
}

// resolvePath joins baseDir with target using POSIX semantics, resolving
// "." and ".." segments and normalizing to a canonical archive path. A
// target starting with "/" is treated as absolute within the package.
func resolvePath(baseDir, target string) string {
	if target == "" {
		return normalizeArchivePath(baseDir)
	}
	target = strings.ReplaceAll(target, "\\", "/")
	if strings.HasPrefix(target, "/") {
		return path.Clean(target)[1:]
	}
	joined := path.Join(baseDir, target)
	return normalizeArchivePath(joined)
}

// dirOf returns the directory component of an archive path, "" for a
// top-level path.
func dirOf(p string) string {
	d := path.Dir(normalizeArchivePath(p))
	if d == "." {
		return ""
	}
	return d
}

// baseOf returns the final path component.
func baseOf(p string) string {
	return path.Base(p)
}

// relsPathFor returns the _rels/<name>.rels sibling of a part path, e.g.
// ppt/slides/slide3.xml -> ppt/slides/_rels/slide3.xml.rels.
func relsPathFor(partPath string) string {
	dir := dirOf(partPath)
	name := baseOf(partPath)
	if dir == "" {
		return "_rels/" + name + ".rels"
	}
	return dir + "/_rels/" + name + ".rels"
}
