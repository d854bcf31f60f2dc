/*
Package monospace checks or enforces width uniformity of a font.
Terminal and editor fonts must be strictly monospaced; legacy fonts
frequently carry a handful of glyphs with deviating advance widths.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package monospace

import (
	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/npillmayer/fontconv/font"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fontconv.widths'.
func tracer() tracing.Trace {
	return tracing.Select("fontconv.widths")
}

// maxListedDeviants limits how many deviating glyphs Report lists
// individually before falling back to a count.
const maxListedDeviants = 5

// Report checks the font for monospacing deviations without enforcing
// anything. Deviation is measured against the maximum glyph width. The
// single benign case of a lone unassigned null-placeholder glyph with a
// deviating width is fixed silently by removing the glyph; everything
// else is only reported.
func Report(eng font.Engine, f *font.Font) error {
	max := 0
	for _, g := range f.Glyphs {
		if g.Width > max {
			max = g.Width
		}
	}
	var deviants []*font.Glyph
	for _, g := range f.Glyphs {
		if g.Width != max {
			deviants = append(deviants, g)
		}
	}
	switch {
	case len(deviants) == 0:
		tracer().Infof("font %s: monospaced, OK", f.Family)
	case len(deviants) == 1 && !deviants[0].Assigned() && deviants[0].Name == font.NullGlyphName:
		// known artifact of Type1 conversion, not worth a warning
		tracer().Infof("font %s: removing null placeholder with width %d", f.Family, deviants[0].Width)
		return eng.RemoveGlyph(f, deviants[0])
	case len(deviants) <= maxListedDeviants:
		for _, g := range deviants {
			tracer().Errorf("font %s: glyph %s has width %d, not %d", f.Family, g, g.Width, max)
		}
	default:
		tracer().Errorf("font %s: %d glyphs deviate from width %d", f.Family, len(deviants), max)
	}
	return nil
}

// Force rescales every glyph to the canonical advance width. The
// canonical width is the modal width over all glyphs, not the maximum:
// fonts typically carry a few oversized outliers which must not win.
// Reserved non-printing glyphs get their width set directly, everything
// else is scaled horizontally so that outline and width stay consistent.
func Force(eng font.Engine, f *font.Font) error {
	width := modalWidth(f)
	if width == 0 {
		tracer().Infof("font %s has no glyphs, nothing to enforce", f.Family)
		return nil
	}
	tracer().Infof("font %s: enforcing advance width %d", f.Family, width)
	if _, err := eng.EnsureGlyph(f, font.NullGlyphName, width); err != nil {
		return err
	}
	for _, g := range f.Glyphs {
		if g.Width == width {
			continue
		}
		if font.IsReservedName(g.Name) || g.Width == 0 {
			// reserved glyphs have no outline worth scaling, and a
			// zero-width glyph cannot be scaled into shape
			tracer().Infof("font %s: setting width of %s to %d", f.Family, g.Name, width)
			g.Width = width
			continue
		}
		factor := float64(width) / float64(g.Width)
		tracer().Infof("font %s: scaling glyph %s from width %d by %.4f", f.Family, g, g.Width, factor)
		if err := eng.ScaleGlyph(g, factor); err != nil {
			return err
		}
	}
	return nil
}

// modalWidth returns the most frequent glyph width. Ties resolve to the
// width seen first in glyph storage order.
func modalWidth(f *font.Font) int {
	counts := linkedhashmap.New() // width → number of glyphs
	for _, g := range f.Glyphs {
		n := 0
		if v, ok := counts.Get(g.Width); ok {
			n = v.(int)
		}
		counts.Put(g.Width, n+1)
	}
	width, best := 0, 0
	counts.Each(func(key interface{}, value interface{}) {
		if value.(int) > best {
			width, best = key.(int), value.(int)
		}
	})
	return width
}
