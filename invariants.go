package pptxscene

import (
	"fmt"
	"regexp"
	"strings"
)

// CheckPresentation re-walks an already-parsed PresentationResult and
// reports invariant violations: every resolved hex color (shape fill,
// gradient stops, stroke, slide background) must match colorHexPattern,
// and every table's cells must tile its grid exactly once; group children
// are checked the same way. Transform products and numbering counters are
// not re-checked here. It never mutates its input; callers that
// only care about pass/fail can check len(result) == 0.
func CheckPresentation(pr PresentationResult) []string {
	var errs []string
	for i, slide := range pr.Slides {
		prefix := fmt.Sprintf("slide %d (%s)", i+1, slide.ID)
		for _, e := range checkSlide(slide) {
			errs = append(errs, prefix+": "+e)
		}
	}
	return errs
}

func checkSlide(s SlideOutput) []string {
	var errs []string
	for j := range s.Shapes {
		errs = append(errs, checkShape(&s.Shapes[j], fmt.Sprintf("shape %d", j+1))...)
	}
	if s.Background != nil {
		errs = append(errs, checkColor(s.Background.Color, "background fill color")...)
	}
	return errs
}

func checkShape(sh *Shape, prefix string) []string {
	var errs []string

	if sh.Fill != nil {
		errs = append(errs, checkColor(sh.Fill.Color, prefix+": fill color")...)
		for k, stop := range sh.Fill.Stops {
			errs = append(errs, checkColor(stop.Color, fmt.Sprintf("%s: gradient stop %d", prefix, k))...)
		}
	}
	if sh.Stroke != nil {
		errs = append(errs, checkColor(sh.Stroke.Color, prefix+": stroke color")...)
	}

	switch sh.Kind {
	case KindTable:
		errs = append(errs, checkTableGridCoverage(sh, prefix)...)
	case KindGroup:
		for k := range sh.Children {
			errs = append(errs, checkShape(&sh.Children[k], fmt.Sprintf("%s/child %d", prefix, k))...)
		}
	}

	return errs
}

// colorHexPattern is the required shape for a resolved srgb color:
// a 7-character "#RRGGBB" string, uppercase or lowercase hex digits.
var colorHexPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// checkColor checks a ResolvedColor invariant: a ResolvedColor
// is either a concrete hex triple matching colorHexPattern, or a scheme
// token with its name preserved - never both empty, never a hex value that
// fails the pattern.
func checkColor(c ResolvedColor, label string) []string {
	if c.Hex == "" && c.SchemeName == "" {
		return nil // zero-value ResolvedColor: field was never populated, not a violation on its own
	}
	if c.Hex != "" {
		if !colorHexPattern.MatchString(c.Hex) {
			return []string{fmt.Sprintf("%s: hex value %q does not match /^#[0-9A-Fa-f]{6}$/", label, c.Hex)}
		}
		return nil
	}
	// scheme token path: name must be non-empty, which the guard above
	// already established.
	return nil
}

// checkTableGridCoverage checks that a table's cells exactly tile its grid: for a
// numRows x numCols table, the union of cells' occupied grid positions
// equals the full rectangle exactly once each, with no overlaps.
func checkTableGridCoverage(sh *Shape, prefix string) []string {
	var errs []string
	if sh.NumRows <= 0 || sh.NumCols <= 0 {
		return []string{fmt.Sprintf("%s: table has non-positive dimensions %dx%d", prefix, sh.NumRows, sh.NumCols)}
	}

	covered := make([][]bool, sh.NumRows)
	for i := range covered {
		covered[i] = make([]bool, sh.NumCols)
	}

	for _, cell := range sh.Cells {
		rowSpan := cell.RowSpan
		if rowSpan < 1 {
			rowSpan = 1
		}
		colSpan := cell.ColSpan
		if colSpan < 1 {
			colSpan = 1
		}
		for dr := 0; dr < rowSpan; dr++ {
			for dc := 0; dc < colSpan; dc++ {
				r, c := cell.Row+dr, cell.Col+dc
				if r < 0 || r >= sh.NumRows || c < 0 || c >= sh.NumCols {
					errs = append(errs, fmt.Sprintf("%s: cell at (%d,%d) span (%d,%d) reaches out of bounds at (%d,%d)", prefix, cell.Row, cell.Col, rowSpan, colSpan, r, c))
					continue
				}
				if covered[r][c] {
					errs = append(errs, fmt.Sprintf("%s: grid position (%d,%d) claimed by more than one cell", prefix, r, c))
				}
				covered[r][c] = true
			}
		}
	}

	for r := 0; r < sh.NumRows; r++ {
		for c := 0; c < sh.NumCols; c++ {
			if !covered[r][c] {
				errs = append(errs, fmt.Sprintf("%s: grid position (%d,%d) is not covered by any cell", prefix, r, c))
			}
		}
	}

	return errs
}

// checkTransformProduct checks that a shape's Transform equals the product of its ancestry: a
// shape's Transform, applied to the local unit square scaled by its own
// Width/Height, must equal manually composing parent * local for the
// ancestry actually walked to produce it. Callers building a transform
// chain by hand (tests, or a debugging tool) pass the same ancestry list
// used to derive got, in outermost-to-innermost order.
func checkTransformProduct(got Matrix, ancestry ...Matrix) []string {
	want := Identity()
	for _, m := range ancestry {
		want = want.Multiply(m)
	}
	const eps = 1e-6
	if !matrixApproxEqual(got, want, eps) {
		return []string{fmt.Sprintf("transform %+v does not equal ancestry product %+v", got, want)}
	}
	return nil
}

func matrixApproxEqual(a, b Matrix, eps float64) bool {
	return approxEqual(a.A, b.A, eps) && approxEqual(a.B, b.B, eps) &&
		approxEqual(a.C, b.C, eps) && approxEqual(a.D, b.D, eps) &&
		approxEqual(a.Tx, b.Tx, eps) && approxEqual(a.Ty, b.Ty, eps)
}

func approxEqual(a, b, eps float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}

// checkNumberingCounters checks that numbering counters increase monotonically: for a
// given level, consecutive auto-numbered paragraphs observed in a single
// shape-tree pass carry strictly increasing values starting at startAt.
// Kept as a standalone checker (rather than folded into listCounters
// itself) so a caller can replay a recorded sequence of (level, startAt)
// draws against a fresh counter and assert the property without needing a
// live parse.
func checkNumberingCounters(draws []struct{ Level, StartAt int }) []string {
	var errs []string
	lc := newListCounters()
	seen := map[int][]int{}
	firstStart := map[int]int{}
	for _, d := range draws {
		if _, ok := firstStart[d.Level]; !ok {
			firstStart[d.Level] = d.StartAt
		}
		v := lc.next(d.Level, d.StartAt)
		seen[d.Level] = append(seen[d.Level], v)
	}
	for level, vals := range seen {
		if vals[0] != firstStart[level] {
			errs = append(errs, fmt.Sprintf("level %d: first counter value %d is not startAt %d", level, vals[0], firstStart[level]))
		}
		for i := 1; i < len(vals); i++ {
			if vals[i] != vals[i-1]+1 {
				errs = append(errs, fmt.Sprintf("level %d: counter value %d does not follow %d", level, vals[i], vals[i-1]))
			}
		}
	}
	return errs
}

// svgPathCommand splits a geometryToPathString-style path string into
// command letter plus the raw argument text up to the next command
// letter, the same granularity SVG path grammar itself uses.
var svgPathCommand = regexp.MustCompile(`([MLCQAZ])([^MLCQAZ]*)`)

// svgNumber pulls one signed decimal out of a comma/space separated
// argument run.
var svgNumber = regexp.MustCompile(`-?[0-9]+(?:\.[0-9]+)?`)

// checkPathGrammar checks the round-trip law for the path
// builder: the generated string must parse as valid SVG path grammar
// (a command letter followed by the right shape of numeric arguments) and
// every endpoint coordinate must land within [0,0]-[width,height] plus a
// 1px tolerance.
func checkPathGrammar(pathData string, width, height float64) []string {
	var errs []string
	const tolerance = 1.0

	pathData = strings.TrimSpace(pathData)
	if pathData == "" {
		return nil
	}

	pos := 0
	for _, m := range svgPathCommand.FindAllStringSubmatchIndex(pathData, -1) {
		if m[0] != pos {
			errs = append(errs, fmt.Sprintf("unparsed path data before position %d: %q", m[0], pathData[pos:m[0]]))
		}
		pos = m[1]
		cmd := pathData[m[2]:m[3]]
		argText := pathData[m[4]:m[5]]
		nums := svgNumber.FindAllString(argText, -1)

		var minArgs int
		switch cmd {
		case "M", "L":
			minArgs = 2
		case "C":
			minArgs = 6
		case "Q":
			minArgs = 4
		case "A":
			minArgs = 7 // radii x,y, rot, large-arc, sweep flags, endpoint x,y
		case "Z":
			minArgs = 0
		}
		if len(nums) < minArgs {
			errs = append(errs, fmt.Sprintf("command %q has %d numeric args, want at least %d", cmd, len(nums), minArgs))
			continue
		}
		if stray := strings.Trim(svgNumber.ReplaceAllString(argText, ""), " ,\t\n"); stray != "" {
			errs = append(errs, fmt.Sprintf("command %q has non-numeric argument text %q", cmd, stray))
			continue
		}
		if len(nums) < 2 {
			continue
		}
		x := mustParseFloat(nums[len(nums)-2])
		y := mustParseFloat(nums[len(nums)-1])
		if x < -tolerance || x > width+tolerance || y < -tolerance || y > height+tolerance {
			errs = append(errs, fmt.Sprintf("command %q endpoint (%.2f,%.2f) outside [0,0]-[%.2f,%.2f] +-1", cmd, x, y, width, height))
		}
	}
	if pos != len(pathData) {
		errs = append(errs, fmt.Sprintf("path data has %d unparsed trailing byte(s): %q", len(pathData)-pos, pathData[pos:]))
	}

	return errs
}

func mustParseFloat(s string) float64 {
	var v float64
	fmt.Sscanf(s, "%g", &v)
	return v
}
