/*
Package font holds the data model of the conversion pipeline: fonts,
glyphs, name-table entries and validation state, together with the
contract for the font-construction engine which owns outline storage
and serialization.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package font

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fontconv.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("fontconv.fonts")
}

// NoCodepoint marks a glyph without an assigned code-point.
const NoCodepoint rune = -1

// A NameEntry is one entry of a font's name table, keyed by a name type
// such as "Family" or "SubFamily". Entries are ordered.
type NameEntry struct {
	Type  string
	Value string
}

// A Font is a mutable collection of glyphs plus font-wide attributes.
// A Font is owned by a single conversion job and must not be retained
// by pipeline stages beyond the call they receive it for.
type Font struct {
	Family string      // family name, e.g. "Nimbus Mono"
	EmSize int         // design grid units per em
	Names  []NameEntry // ordered name table
	Glyphs []*Glyph    // glyphs in storage order
	Path   string      // file the font was opened from
	Handle interface{} // engine-owned backing store, opaque to the pipeline
}

// LookupName returns a pointer to the first name-table entry of the given
// type, or nil if the font has none.
func (f *Font) LookupName(nameType string) *NameEntry {
	for i := range f.Names {
		if f.Names[i].Type == nameType {
			return &f.Names[i]
		}
	}
	return nil
}

// SetName replaces the value of the first name-table entry of the given
// type, appending a new entry if none exists.
func (f *Font) SetName(nameType, value string) {
	if e := f.LookupName(nameType); e != nil {
		e.Value = value
		return
	}
	f.Names = append(f.Names, NameEntry{Type: nameType, Value: value})
}

// Subfamily returns the value of the "SubFamily" name entry, or "" if
// the font has none.
func (f *Font) Subfamily() string {
	if e := f.LookupName(NameSubfamily); e != nil {
		return e.Value
	}
	return ""
}

// Name types used by the pipeline.
const (
	NameFamily    = "Family"
	NameSubfamily = "SubFamily"
	NameFullname  = "Fullname"
)

// GlyphByName returns the first glyph with the given name, or nil.
func (f *Font) GlyphByName(name string) *Glyph {
	for _, g := range f.Glyphs {
		if g.Name == name {
			return g
		}
	}
	return nil
}
