/*
Package repair implements structural glyph repair: defects reported by
the engine's validation are classified and resolved with escalating fix
attempts until they clear or are declared unfixable.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package repair

import (
	"github.com/npillmayer/fontconv/core"
	"github.com/npillmayer/fontconv/font"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fontconv.repair'.
func tracer() tracing.Trace {
	return tracing.Select("fontconv.repair")
}

// BenignDefects are residual defect flags which do not block
// serialization. Glyphs may keep them after repair without failing the
// font.
const BenignDefects = font.DefectValidated |
	font.DefectSelfIntersecting |
	font.DefectExtremaAttempted |
	font.DefectOverlappedHints

// roundingFactors is the escalation ladder for coordinate rounding:
// round to 1/1000 design units first, true integer rounding last.
var roundingFactors = []int{1000, 100, 10, 1}

// extremaModes is the escalation ladder for extrema insertion.
var extremaModes = []font.ExtremaMode{font.ExtremaConservative, font.ExtremaExhaustive}

// A fix is one class of automated glyph repair, chosen by classify.
type fix int

const (
	fixDirection fix = iota // rewind contours
	fixExtrema              // insert points at curve extrema
	fixRounding             // round coordinates
)

// classify inspects a validation bitmask and returns the fixes to apply,
// in application order. Benign flags produce no fix.
func classify(state font.DefectSet) (fixes []fix) {
	if state.Has(font.DefectWrongDirection) {
		fixes = append(fixes, fixDirection)
	}
	if state.Has(font.DefectMissingExtrema) && !state.Has(font.DefectExtremaAttempted) {
		fixes = append(fixes, fixExtrema)
	}
	if state.Has(font.DefectNonIntegral) {
		fixes = append(fixes, fixRounding)
	}
	return fixes
}

// Glyph repairs a single glyph. Each detected defect class is resolved
// with its escalation ladder; a defect outside BenignDefects that
// survives all attempts fails the glyph. The index is the glyph's
// position within the font and is used for reporting only.
//
// A glyph whose validation state equals font.SkipFontSignature aborts
// with a skip-font error instead of a glyph error.
func Glyph(eng font.Engine, g *font.Glyph, index int) error {
	state := eng.ValidateGlyph(g)
	if state == font.SkipFontSignature {
		tracer().Errorf("glyph %s #%d reports corrupt glyph tables", g.Name, index)
		return core.Error(core.ESKIPFONT, "glyph %s #%d: corrupt glyph tables, font skipped", g.Name, index)
	}
	for _, f := range classify(state) {
		var err error
		switch f {
		case fixDirection:
			state, err = fixGlyphDirection(eng, g, index)
		case fixExtrema:
			state = fixGlyphExtrema(eng, g, index)
		case fixRounding:
			state, err = fixGlyphRounding(eng, g, index)
		}
		if err != nil {
			return err
		}
	}
	residual := state.Without(BenignDefects)
	if state.Has(font.DefectExtremaAttempted) {
		// an earlier exhausted extrema fix leaves the defect in place;
		// it is advisory and must not fail the glyph again
		residual = residual.Without(font.DefectMissingExtrema)
	}
	if residual != 0 {
		tracer().Errorf("glyph %s #%d has unhandled defects: %s", g.Name, index, residual)
		return core.Error(core.EGLYPH, "glyph %s #%d: unhandled defects: %s", g.Name, index, residual)
	}
	return nil
}

// fixGlyphDirection corrects contour direction. The engine's automatic
// correction is invoked once; a persisting defect is fatal.
func fixGlyphDirection(eng font.Engine, g *font.Glyph, index int) (font.DefectSet, error) {
	if err := eng.CorrectDirection(g); err != nil {
		return 0, err
	}
	state := eng.ValidateGlyph(g)
	if state.Has(font.DefectWrongDirection) {
		tracer().Errorf("glyph %s #%d: contour direction not correctable", g.Name, index)
		return state, core.Error(core.EGLYPH, "glyph %s #%d: wrong contour direction persists", g.Name, index)
	}
	tracer().Infof("glyph %s #%d: corrected contour direction", g.Name, index)
	return state, nil
}

// fixGlyphExtrema inserts missing extrema points, escalating through the
// insertion modes. Exhaustion is not fatal: extrema completeness is
// advisory and does not block serialization.
func fixGlyphExtrema(eng font.Engine, g *font.Glyph, index int) font.DefectSet {
	state := eng.ValidateGlyph(g)
	for _, mode := range extremaModes {
		if eng.AddExtrema(g, mode) != nil {
			break
		}
		state = eng.ValidateGlyph(g)
		if !state.Has(font.DefectMissingExtrema) {
			tracer().Infof("glyph %s #%d: added extrema (%s)", g.Name, index, mode)
			return state
		}
	}
	tracer().Errorf("glyph %s #%d: extrema still missing after all modes, accepting", g.Name, index)
	return state.With(font.DefectExtremaAttempted)
}

// fixGlyphRounding rounds glyph coordinates with decreasing precision.
// If even true integer rounding leaves non-integral coordinates, the
// glyph fails.
func fixGlyphRounding(eng font.Engine, g *font.Glyph, index int) (font.DefectSet, error) {
	var state font.DefectSet
	for _, factor := range roundingFactors {
		if err := eng.RoundCoordinates(g, factor); err != nil {
			return 0, err
		}
		state = eng.ValidateGlyph(g)
		if !state.Has(font.DefectNonIntegral) {
			tracer().Infof("glyph %s #%d: rounded coordinates to 1/%d units", g.Name, index, factor)
			return state, nil
		}
	}
	tracer().Errorf("glyph %s #%d: coordinates not integral after integer rounding", g.Name, index)
	return state, core.Error(core.EGLYPH, "glyph %s #%d: non-integral coordinates persist", g.Name, index)
}
