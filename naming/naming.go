/*
Package naming rewrites a font's subfamily (style) name entry. Vendors
of legacy Type1 fonts abbreviate style names ("BoldCondItal"); the
TrueType name table wants them spelled out.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package naming

import (
	"github.com/npillmayer/fontconv/font"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fontconv.naming'.
func tracer() tracing.Trace {
	return tracing.Select("fontconv.naming")
}

// subfamilies translates abbreviated style tokens to their canonical
// expanded forms. "StandardSymL" is the style token URW uses for its
// symbol fonts and simply means Regular.
var subfamilies = map[string]string{
	"Regu":          "Regular",
	"ReguItal":      "Regular Italic",
	"ReguObli":      "Regular Oblique",
	"ReguCond":      "Regular Condensed",
	"ReguCondItal":  "Regular Condensed Italic",
	"Medi":          "Medium",
	"MediItal":      "Medium Italic",
	"MediObli":      "Medium Oblique",
	"MediumOblique": "Medium Oblique",
	"Bold":          "Bold",
	"BoldItal":      "Bold Italic",
	"BoldObli":      "Bold Oblique",
	"BoldCond":      "Bold Condensed",
	"BoldCondItal":  "Bold Condensed Italic",
	"Demi":          "Demi Bold",
	"DemiItal":      "Demi Bold Italic",
	"Cond":          "Condensed",
	"CondItal":      "Condensed Italic",
	"Ital":          "Italic",
	"Obli":          "Oblique",
	"StandardSymL":  "Regular",
}

// FixSubfamily rewrites the font's "SubFamily" name entry. An explicit
// override always wins. Without an override, the current value is
// expanded through the translation table; an unrecognized value is left
// unchanged.
func FixSubfamily(f *font.Font, override string) {
	entry := f.LookupName(font.NameSubfamily)
	if override != "" {
		if entry == nil {
			f.SetName(font.NameSubfamily, override)
		} else {
			entry.Value = override
		}
		tracer().Infof("font %s: subfamily set to %q", f.Family, override)
		return
	}
	if entry == nil {
		return
	}
	if expanded, ok := subfamilies[entry.Value]; ok && expanded != entry.Value {
		tracer().Infof("font %s: subfamily %q expanded to %q", f.Family, entry.Value, expanded)
		entry.Value = expanded
	}
}
