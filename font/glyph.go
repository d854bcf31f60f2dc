package font

import "fmt"

// A Glyph is one character shape within a font. The outline itself lives
// in engine-owned storage and is manipulated only through Engine
// operations; the pipeline sees name, code-point and advance width.
type Glyph struct {
	Name      string      // PostScript-style glyph name
	Codepoint rune        // assigned code-point, or NoCodepoint
	Width     int         // advance width in design units
	Outline   interface{} // engine-owned outline storage, opaque
}

// Assigned tells if the glyph has a code-point assigned.
func (g *Glyph) Assigned() bool {
	return g.Codepoint != NoCodepoint
}

func (g *Glyph) String() string {
	if g.Assigned() {
		return fmt.Sprintf("%s(U+%04X)", g.Name, g.Codepoint)
	}
	return fmt.Sprintf("%s(-)", g.Name)
}

// Reserved glyph names for non-printing glyphs. These are exempt from
// geometric width scaling: their width may be set directly.
const (
	NotdefGlyphName      = ".notdef"          // shown for characters missing from the font
	NullGlyphName        = ".null"            // null placeholder
	NonmarkingReturnName = "nonmarkingreturn" // non-marking carriage return
)

// IsReservedName tells if name is one of the reserved non-printing glyph
// names.
func IsReservedName(name string) bool {
	switch name {
	case NotdefGlyphName, NullGlyphName, NonmarkingReturnName:
		return true
	}
	return false
}
