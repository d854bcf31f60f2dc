/*
Package bitmap groups bitmap strike files into font families. Multi-
resolution bitmap fonts come as one file per strike; files belonging to
the same (family, style) pair are merged into a single font before
serialization. Strike files may be gzip-compressed.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package bitmap

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/npillmayer/fontconv/core"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fontconv.bitmap'.
func tracer() tracing.Trace {
	return tracing.Select("fontconv.bitmap")
}

// charsetMarkers mark per-charset re-encodings of a strike file. Those
// duplicate the base file's bitmaps and are excluded from grouping.
var charsetMarkers = []string{"-ISO8859-", "-KOI8-"}

// Excluded tells if a strike file is a per-charset variant which must
// not take part in grouping.
func Excluded(path string) bool {
	for _, marker := range charsetMarkers {
		if strings.Contains(path, marker) {
			return true
		}
	}
	return false
}

// Identity is the (family, style) key of one strike file.
type Identity struct {
	Family string
	Style  string
}

// A Group collects all strike files sharing one identity, in input
// order.
type Group struct {
	Identity
	Paths []string
}

// Base returns the strike file to open as the group's base font.
func (g Group) Base() string {
	return g.Paths[0]
}

// Rest returns the strike files to import into the base font.
func (g Group) Rest() []string {
	return g.Paths[1:]
}

// GroupFiles queries the embedded name metadata of every strike file and
// groups the files by (family, style). Files carrying a charset marker
// in their name are skipped. Group order and path order within a group
// follow the input order.
func GroupFiles(paths []string) ([]Group, error) {
	groups := linkedhashmap.New() // Identity → *Group
	for _, path := range paths {
		if Excluded(path) {
			tracer().Infof("excluding charset variant %s", path)
			continue
		}
		id, err := QueryIdentity(path)
		if err != nil {
			return nil, err
		}
		tracer().Infof("strike %s belongs to %s %s", path, id.Family, id.Style)
		if v, ok := groups.Get(id); ok {
			g := v.(*Group)
			g.Paths = append(g.Paths, path)
			continue
		}
		groups.Put(id, &Group{Identity: id, Paths: []string{path}})
	}
	result := make([]Group, 0, groups.Size())
	groups.Each(func(key interface{}, value interface{}) {
		result = append(result, *value.(*Group))
	})
	return result, nil
}

// QueryIdentity reads the family and style out of a strike file's
// embedded properties. Gzip-compressed files are decompressed
// transparently.
func QueryIdentity(path string) (Identity, error) {
	file, err := os.Open(path)
	if err != nil {
		return Identity{}, core.WrapError(err, core.EMISSING, "cannot open strike file %s", path)
	}
	defer file.Close()
	r, err := maybeGunzip(file, path)
	if err != nil {
		return Identity{}, core.WrapError(err, core.ECONFIG, "strike file %s is not valid gzip", path)
	}
	id, err := readProperties(r)
	if err != nil {
		return Identity{}, core.WrapError(err, core.ECONFIG, "strike file %s: %v", path, err)
	}
	return id, nil
}

// maybeGunzip wraps r in a gzip reader if path names a compressed file.
func maybeGunzip(r io.Reader, path string) (io.Reader, error) {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".gz") || strings.HasSuffix(lower, ".z") {
		return gzip.NewReader(r)
	}
	return r, nil
}

// readProperties scans the textual header of a BDF strike for the
// FAMILY_NAME, WEIGHT_NAME and SLANT properties. Scanning stops at the
// end of the property section.
func readProperties(r io.Reader) (Identity, error) {
	scanner := bufio.NewScanner(r)
	var family, weight, slant string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, "FAMILY_NAME "):
			family = unquote(line[len("FAMILY_NAME "):])
		case strings.HasPrefix(line, "WEIGHT_NAME "):
			weight = unquote(line[len("WEIGHT_NAME "):])
		case strings.HasPrefix(line, "SLANT "):
			slant = unquote(line[len("SLANT "):])
		case line == "ENDPROPERTIES" || strings.HasPrefix(line, "CHARS "):
			return identity(family, weight, slant)
		}
	}
	if err := scanner.Err(); err != nil {
		return Identity{}, err
	}
	return identity(family, weight, slant)
}

func identity(family, weight, slant string) (Identity, error) {
	if family == "" {
		return Identity{}, core.Error(core.ECONFIG, "no FAMILY_NAME property found")
	}
	if weight == "" {
		weight = "Medium"
	}
	style := weight
	switch slant {
	case "I":
		style += " Italic"
	case "O":
		style += " Oblique"
	}
	return Identity{Family: family, Style: style}, nil
}

func unquote(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"`)
}
