/*
Package remap recomputes glyph-to-code-point assignments. Legacy fonts
encode symbols at ASCII positions or carry code-points only inside glyph
names; remapping moves glyphs to their intended Unicode positions and
renames them after the canonical Unicode character names.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package remap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/fontconv/font"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/unicode/runenames"
)

// tracer traces with key 'fontconv.remap'.
func tracer() tracing.Trace {
	return tracing.Select("fontconv.remap")
}

// A ShiftRange moves every code-point of the inclusive interval
// [Lo, Hi] by Offset. Lo ≤ Hi must hold.
type ShiftRange struct {
	Lo, Hi rune
	Offset rune
}

// Contains tells if cp falls within the range.
func (r ShiftRange) Contains(cp rune) bool {
	return cp >= r.Lo && cp <= r.Hi
}

// A Replacement moves a single code-point. Explicit replacements take
// priority over shift ranges covering the same code-point.
type Replacement struct {
	From, To rune
}

// Apply recomputes the code-point of every glyph of f and renames
// remapped glyphs after the canonical Unicode character name of their
// new code-point. Per glyph, the first matching rule wins:
//
//  1. an explicit replacement of the current code-point,
//  2. a shift range containing the current code-point (first-declared
//     range wins on overlap),
//  3. a code-point parsed from the glyph name ("$A0" hexadecimal,
//     "char160" decimal, "uni00A0" hexadecimal).
//
// Glyphs matching no rule are left untouched. A missing canonical name
// for a new code-point keeps the old glyph name and is reported, but
// does not fail the font.
func Apply(f *font.Font, shifts []ShiftRange, replacements []Replacement) {
	warnConfig(shifts)
	repl := make(map[rune]rune, len(replacements))
	for _, r := range replacements {
		repl[r.From] = r.To
	}
	for i, g := range f.Glyphs {
		cp, ok := newCodepoint(g, shifts, repl)
		if !ok {
			continue
		}
		old := g.Codepoint
		g.Codepoint = cp
		tracer().Infof("glyph %s #%d: code-point %s to U+%04X", g.Name, i, formatOld(old), cp)
		rename(g, i)
	}
}

func newCodepoint(g *font.Glyph, shifts []ShiftRange, repl map[rune]rune) (rune, bool) {
	if g.Assigned() {
		if to, ok := repl[g.Codepoint]; ok {
			return to, true
		}
		for _, r := range shifts {
			if r.Contains(g.Codepoint) {
				return g.Codepoint + r.Offset, true
			}
		}
	}
	return codepointFromName(g.Name)
}

// codepointFromName recovers a code-point embedded in a glyph name.
func codepointFromName(name string) (rune, bool) {
	switch {
	case strings.HasPrefix(name, "$"):
		return parseCodepoint(name[1:], 16)
	case strings.HasPrefix(name, "char"):
		return parseCodepoint(name[4:], 10)
	case strings.HasPrefix(name, "uni"):
		return parseCodepoint(name[3:], 16)
	}
	return 0, false
}

func parseCodepoint(s string, base int) (rune, bool) {
	n, err := strconv.ParseInt(s, base, 32)
	if err != nil || n < 0 {
		return 0, false
	}
	return rune(n), true
}

// rename sets the glyph name to the canonical Unicode character name of
// its code-point. Code-points without a canonical name (unassigned ones,
// controls) keep the old glyph name.
func rename(g *font.Glyph, index int) {
	name := runenames.Name(g.Codepoint)
	if name == "" || strings.HasPrefix(name, "<") {
		tracer().Errorf("glyph %s #%d: no canonical name for U+%04X, keeping old name",
			g.Name, index, g.Codepoint)
		return
	}
	g.Name = name
}

// warnConfig reports questionable remapping configurations: inverted
// intervals and overlapping shift ranges. Overlaps resolve to the
// first-declared range, which may or may not be what the user intended.
func warnConfig(shifts []ShiftRange) {
	for i, r := range shifts {
		if r.Lo > r.Hi {
			tracer().Errorf("shift range %d has lo U+%04X above hi U+%04X and cannot match", i, r.Lo, r.Hi)
		}
		for j := i + 1; j < len(shifts); j++ {
			s := shifts[j]
			if r.Lo <= s.Hi && s.Lo <= r.Hi {
				tracer().Errorf("shift ranges %d and %d overlap, the first-declared range wins", i, j)
			}
		}
	}
}

func formatOld(cp rune) string {
	if cp == font.NoCodepoint {
		return "(unassigned)"
	}
	return fmt.Sprintf("U+%04X", cp)
}
