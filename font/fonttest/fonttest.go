/*
Package fonttest provides a scripted font engine for testing the
conversion pipeline without a real font-construction backend. Glyph
outlines are replaced by defect scripts: each glyph carries a DefectSet
plus thresholds telling which repair operations will clear which flags.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package fonttest

import (
	"math"
	"os"

	"github.com/npillmayer/fontconv/core"
	"github.com/npillmayer/fontconv/font"
)

func init() {
	font.RegisterEngine("fonttest", func() font.Engine { return NewEngine() })
}

// Outline is the scripted stand-in for engine-owned outline storage.
type Outline struct {
	Defects          font.DefectSet   // current defect flags
	DirectionStuck   bool             // CorrectDirection has no effect
	ExtremaNeed      font.ExtremaMode // minimum mode clearing missing-extrema
	ExtremaUnfixable bool             // no mode clears missing-extrema
	RoundableAt      int              // largest factor clearing non-integral (0: any)
	Unroundable      bool             // no factor clears non-integral

	DirectionCalls int
	ExtremaCalls   []font.ExtremaMode
	RoundCalls     []int
	ScaleCalls     []float64
}

// State returns the scripted outline of g, creating an empty one on
// first use.
func State(g *font.Glyph) *Outline {
	if g.Outline == nil {
		g.Outline = &Outline{}
	}
	return g.Outline.(*Outline)
}

// NewGlyph creates a glyph with a scripted outline carrying the given
// defect flags.
func NewGlyph(name string, codepoint rune, width int, defects font.DefectSet) *font.Glyph {
	return &font.Glyph{
		Name:      name,
		Codepoint: codepoint,
		Width:     width,
		Outline:   &Outline{Defects: defects},
	}
}

// NewFont assembles a font from scripted glyphs.
func NewFont(family string, em int, glyphs ...*font.Glyph) *font.Font {
	f := &font.Font{
		Family: family,
		EmSize: em,
		Glyphs: glyphs,
	}
	f.SetName(font.NameFamily, family)
	return f
}

// Engine is a scripted font engine. The zero value is usable; use
// AddFont to make fonts openable by path.
type Engine struct {
	FontDefects font.DefectSet // extra font-level flags reported by ValidateFont
	NoTransform bool           // report bitmap transforms as unsupported

	TTFWrites  []string // paths written as TTF, in order
	OTBWrites  []string // paths written as OTB, in order
	Imports    []string // strike files imported, in order
	Transforms []string // bitmap transforms applied
	Closed     int

	fonts map[string]*font.Font
}

var _ font.Engine = (*Engine)(nil)

func NewEngine() *Engine {
	return &Engine{fonts: make(map[string]*font.Font)}
}

// AddFont registers f to be returned by OpenFont(path).
func (e *Engine) AddFont(path string, f *font.Font) {
	if e.fonts == nil {
		e.fonts = make(map[string]*font.Font)
	}
	f.Path = path
	e.fonts[path] = f
}

func (e *Engine) OpenFont(path string) (*font.Font, error) {
	if f, ok := e.fonts[path]; ok {
		return f, nil
	}
	return nil, core.Error(core.EMISSING, "no such font: %s", path)
}

func (e *Engine) CloseFont(f *font.Font) error {
	e.Closed++
	return nil
}

func (e *Engine) ValidateFont(f *font.Font) font.DefectSet {
	state := font.DefectValidated | e.FontDefects
	seen := make(map[rune]bool)
	for _, g := range f.Glyphs {
		if !g.Assigned() {
			continue
		}
		if seen[g.Codepoint] {
			state = state.With(font.DefectDuplicateCodepoint)
		}
		seen[g.Codepoint] = true
	}
	return state
}

func (e *Engine) ValidateGlyph(g *font.Glyph) font.DefectSet {
	return State(g).Defects.With(font.DefectValidated)
}

func (e *Engine) CorrectDirection(g *font.Glyph) error {
	s := State(g)
	s.DirectionCalls++
	if !s.DirectionStuck {
		s.Defects = s.Defects.Without(font.DefectWrongDirection)
	}
	return nil
}

func (e *Engine) AddExtrema(g *font.Glyph, mode font.ExtremaMode) error {
	s := State(g)
	s.ExtremaCalls = append(s.ExtremaCalls, mode)
	if s.ExtremaUnfixable {
		s.Defects = s.Defects.With(font.DefectExtremaAttempted)
		return nil
	}
	if mode >= s.ExtremaNeed {
		s.Defects = s.Defects.Without(font.DefectMissingExtrema)
	}
	return nil
}

func (e *Engine) RoundCoordinates(g *font.Glyph, factor int) error {
	s := State(g)
	s.RoundCalls = append(s.RoundCalls, factor)
	if s.Unroundable {
		return nil
	}
	if s.RoundableAt == 0 || factor <= s.RoundableAt {
		s.Defects = s.Defects.Without(font.DefectNonIntegral)
	}
	return nil
}

func (e *Engine) ScaleGlyph(g *font.Glyph, factor float64) error {
	s := State(g)
	s.ScaleCalls = append(s.ScaleCalls, factor)
	g.Width = int(math.Round(float64(g.Width) * factor))
	return nil
}

func (e *Engine) RemoveGlyph(f *font.Font, g *font.Glyph) error {
	for i, h := range f.Glyphs {
		if h == g {
			f.Glyphs = append(f.Glyphs[:i], f.Glyphs[i+1:]...)
			return nil
		}
	}
	return core.Error(core.EINTERNAL, "glyph %s not part of font %s", g.Name, f.Family)
}

func (e *Engine) EnsureGlyph(f *font.Font, name string, width int) (*font.Glyph, error) {
	if g := f.GlyphByName(name); g != nil {
		return g, nil
	}
	g := NewGlyph(name, font.NoCodepoint, width, 0)
	f.Glyphs = append(f.Glyphs, g)
	return g, nil
}

func (e *Engine) ImportBitmaps(f *font.Font, path string) error {
	e.Imports = append(e.Imports, path)
	return nil
}

func (e *Engine) BitmapTransform(f *font.Font, name string, dx, dy int) error {
	if e.NoTransform {
		return font.ErrTransformUnsupported
	}
	e.Transforms = append(e.Transforms, name)
	return nil
}

func (e *Engine) WriteTTF(f *font.Font, path string) error {
	e.TTFWrites = append(e.TTFWrites, path)
	return os.WriteFile(path, []byte("fonttest TTF "+f.Family), 0644)
}

func (e *Engine) WriteOTB(f *font.Font, path string) error {
	e.OTBWrites = append(e.OTBWrites, path)
	return os.WriteFile(path, []byte("fonttest OTB "+f.Family), 0644)
}
