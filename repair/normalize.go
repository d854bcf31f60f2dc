package repair

import (
	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/npillmayer/fontconv/core"
	"github.com/npillmayer/fontconv/font"
)

// Normalize performs the font-wide fixes required before serialization:
// em-size correction, duplicate code-point elimination, then structural
// repair of every glyph. A returned error with code core.ESKIPFONT means
// the whole font should be excluded from the batch; any other error is
// fatal for this font.
func Normalize(eng font.Engine, f *font.Font) error {
	fixEmSize(f)
	state := eng.ValidateFont(f)
	if state.Has(font.DefectDuplicateCodepoint) {
		removeDuplicateCodepoints(eng, f)
	}
	for i, g := range f.Glyphs {
		if err := Glyph(eng, g, i); err != nil {
			return err
		}
	}
	return nil
}

// fixEmSize replaces a non-power-of-two em-size with the smallest power
// of two not below the current value. TrueType mandates a power-of-two
// em.
func fixEmSize(f *font.Font) {
	em := nextPowerOfTwo(f.EmSize)
	if em == f.EmSize {
		return
	}
	tracer().Infof("font %s: em-size %d is not a power of two, set to %d", f.Family, f.EmSize, em)
	f.EmSize = em
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// removeDuplicateCodepoints scans glyphs in storage order and removes
// every glyph whose code-point has been seen on an earlier glyph. The
// earliest glyph wins. Glyphs without an assigned code-point are exempt.
func removeDuplicateCodepoints(eng font.Engine, f *font.Font) {
	type first struct {
		index int
		name  string
	}
	seen := linkedhashmap.New() // code-point → first glyph carrying it
	var doomed []*font.Glyph
	for i, g := range f.Glyphs {
		if !g.Assigned() {
			continue
		}
		if v, ok := seen.Get(g.Codepoint); ok {
			keeper := v.(first)
			tracer().Infof("font %s: glyph %s #%d duplicates U+%04X of glyph %s #%d, removing",
				f.Family, g.Name, i, g.Codepoint, keeper.name, keeper.index)
			doomed = append(doomed, g)
			continue
		}
		seen.Put(g.Codepoint, first{index: i, name: g.Name})
	}
	for _, g := range doomed {
		if err := eng.RemoveGlyph(f, g); err != nil {
			tracer().Errorf("font %s: cannot remove duplicate glyph %s: %v",
				f.Family, g.Name, core.UserMessage(err))
		}
	}
}
