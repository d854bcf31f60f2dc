package font

import (
	"errors"
	"sync"

	"github.com/npillmayer/fontconv/core"
)

// ExtremaMode selects how aggressively the engine inserts points at
// curve extrema.
type ExtremaMode int

// Extrema insertion modes, in escalating order.
const (
	ExtremaConservative ExtremaMode = iota // only where it cannot hurt
	ExtremaExhaustive                      // insert at every extremum
)

func (m ExtremaMode) String() string {
	if m == ExtremaExhaustive {
		return "exhaustive"
	}
	return "conservative"
}

// ErrTransformUnsupported is returned by engines which cannot apply a
// requested bitmap transform.
var ErrTransformUnsupported = errors.New("engine does not support bitmap transforms")

// Engine is the contract with the underlying font-construction engine.
// The engine parses input formats (Type1, BDF, PCF), owns outline and
// bitmap storage, performs geometric operations on glyphs, and
// serializes fonts. All operations are synchronous; glyph mutations
// invalidate any previously computed DefectSet.
type Engine interface {
	// OpenFont parses a font file into a Font.
	OpenFont(path string) (*Font, error)

	// CloseFont releases engine-side resources of f. f must not be used
	// afterwards.
	CloseFont(f *Font) error

	// ValidateFont recomputes font-wide validation state.
	ValidateFont(f *Font) DefectSet

	// ValidateGlyph recomputes the validation state of one glyph.
	ValidateGlyph(g *Glyph) DefectSet

	// CorrectDirection rewinds contours of g into the canonical
	// direction.
	CorrectDirection(g *Glyph) error

	// AddExtrema inserts points at curve extrema of g.
	AddExtrema(g *Glyph, mode ExtremaMode) error

	// RoundCoordinates rounds the coordinates of g to multiples of
	// 1/factor design units. Factor 1 rounds to integers.
	RoundCoordinates(g *Glyph, factor int) error

	// ScaleGlyph applies a uniform horizontal scale to the outline of g
	// and updates the advance width accordingly.
	ScaleGlyph(g *Glyph, factor float64) error

	// RemoveGlyph removes g from f, including its backing storage.
	RemoveGlyph(f *Font, g *Glyph) error

	// EnsureGlyph returns the glyph with the given name, creating an
	// empty one with the given advance width if absent.
	EnsureGlyph(f *Font, name string, width int) (*Glyph, error)

	// ImportBitmaps merges all bitmap strikes of the file at path into
	// f. Gzip-compressed strike files are decompressed transparently.
	ImportBitmaps(f *Font, path string) error

	// BitmapTransform applies a named geometric transform (flip, rotate,
	// skew, translate) with two integer arguments to all strikes of f.
	// Engines lacking this capability return ErrTransformUnsupported.
	BitmapTransform(f *Font, name string, dx, dy int) error

	// WriteTTF serializes f as a TrueType font file.
	WriteTTF(f *Font, path string) error

	// WriteOTB serializes f as a bitmap-only OpenType container.
	WriteOTB(f *Font, path string) error
}

// --- Engine registry -------------------------------------------------------

// Engines register themselves by name, in the manner of database/sql
// drivers, so that the CLI can select one with a flag and tests can plug
// in a scripted engine.

var enginesMu sync.Mutex
var engines = make(map[string]func() Engine)

// RegisterEngine makes an engine constructor available under the given
// name. Registering twice under one name overwrites the first entry.
func RegisterEngine(name string, factory func() Engine) {
	if factory == nil {
		tracer().Errorf("refusing to register nil engine factory %q", name)
		return
	}
	enginesMu.Lock()
	defer enginesMu.Unlock()
	engines[name] = factory
}

// NewEngine creates an engine registered under the given name.
func NewEngine(name string) (Engine, error) {
	enginesMu.Lock()
	factory, ok := engines[name]
	enginesMu.Unlock()
	if !ok {
		return nil, core.Error(core.ECONFIG, "no font engine registered as %q", name)
	}
	return factory(), nil
}

// EngineNames returns the names of all registered engines.
func EngineNames() []string {
	enginesMu.Lock()
	defer enginesMu.Unlock()
	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	return names
}
