package font

import "strings"

// A DefectSet is a set of independent defect flags over a glyph or a
// font, as computed by the engine's validation. A DefectSet is
// trustworthy only immediately after a (re)validation call; any mutation
// of the glyph invalidates it until the glyph is validated again.
type DefectSet uint32

// Defect flags. DefectValidated is the engine's marker bit telling that
// validation has run at all; it is set on every validated glyph and is
// not a defect by itself.
const (
	DefectValidated          DefectSet = 1 << iota // validation has run
	DefectOpenContours                             // contour not closed
	DefectSelfIntersecting                         // outline intersects itself
	DefectWrongDirection                           // contour wound the wrong way
	DefectMissingExtrema                           // curve extrema without points
	DefectNonIntegral                              // non-integral coordinates
	DefectBadGlyphTable                            // malformed outline table
	DefectExtremaAttempted                         // extrema fix already attempted
	DefectOverlappedHints                          // hints overlap
	DefectDuplicateCodepoint                       // font-level: code-point assigned twice
)

// SkipFontSignature is the exact validation bitmask which the engine
// reports for fonts with corrupt outline tables. It is an
// engine-specific constant, not a portable rule: a glyph whose bitmask
// equals this value (rather than merely containing DefectBadGlyphTable)
// signals that the whole font should be skipped.
const SkipFontSignature = DefectValidated | DefectBadGlyphTable

var defectNames = []struct {
	flag DefectSet
	name string
}{
	{DefectValidated, "validated"},
	{DefectOpenContours, "open-contours"},
	{DefectSelfIntersecting, "self-intersecting"},
	{DefectWrongDirection, "wrong-direction"},
	{DefectMissingExtrema, "missing-extrema"},
	{DefectNonIntegral, "non-integral"},
	{DefectBadGlyphTable, "bad-glyph-table"},
	{DefectExtremaAttempted, "extrema-attempted"},
	{DefectOverlappedHints, "overlapped-hints"},
	{DefectDuplicateCodepoint, "duplicate-codepoint"},
}

// Has tells if d contains all flags of mask.
func (d DefectSet) Has(mask DefectSet) bool {
	return d&mask == mask
}

// Without returns d with all flags of mask removed.
func (d DefectSet) Without(mask DefectSet) DefectSet {
	return d &^ mask
}

// With returns d with all flags of mask set.
func (d DefectSet) With(mask DefectSet) DefectSet {
	return d | mask
}

func (d DefectSet) String() string {
	if d == 0 {
		return "none"
	}
	var names []string
	for _, dn := range defectNames {
		if d&dn.flag != 0 {
			names = append(names, dn.name)
		}
	}
	return strings.Join(names, "|")
}
