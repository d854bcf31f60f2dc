/*
Package convert orchestrates font conversion jobs: it sequences repair,
naming correction, width enforcement and Unicode remapping over input
fonts and delegates parsing and serialization to the font engine.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package convert

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/fontconv/core"
	"github.com/npillmayer/fontconv/font"
	"github.com/npillmayer/fontconv/remap"
	"github.com/npillmayer/schuko/tracing"
	xsfnt "golang.org/x/image/font/sfnt"
)

// tracer traces with key 'fontconv.convert'.
func tracer() tracing.Trace {
	return tracing.Select("fontconv.convert")
}

// A BitmapTransform names a geometric transform (flip, rotate, skew,
// translate) with two integer arguments, applied to every strike of a
// bitmap font.
type BitmapTransform struct {
	Name   string
	DX, DY int
}

// Options is the configuration surface of a conversion job.
type Options struct {
	ForceMonospace    bool                // rescale glyphs instead of reporting deviations
	FamilyOverride    string              // replace the family name
	SubfamilyOverride string              // replace the subfamily (style) name
	FixUnicode        bool                // run the Unicode remapper
	Replacements      []remap.Replacement // explicit code-point replacements
	Shifts            []remap.ShiftRange  // code-point shift ranges
	Transform         *BitmapTransform    // optional bitmap transform
	OutDir            string              // output directory, "" means current
	OutName           string              // explicit output file name
	VerifyOutput      bool                // re-parse emitted TTF files
}

// FileStatus records the outcome for one input file or family group.
type FileStatus struct {
	Path   string // input path or group base path
	Output string // written output file, if any
	Err    error  // failure or skip reason
}

// Result summarizes a batch conversion.
type Result struct {
	Converted []FileStatus
	Skipped   []FileStatus // fonts excluded by the skip-font condition
	Failed    []FileStatus // fonts with fatal defects
}

// OK tells if every input was converted.
func (r Result) OK() bool {
	return len(r.Skipped) == 0 && len(r.Failed) == 0
}

// ttfName derives the output file name for a vector font:
// <family><style>.ttf with spaces stripped, unless an explicit name is
// configured.
func ttfName(f *font.Font, opts Options) string {
	if opts.OutName != "" {
		return opts.OutName
	}
	name := strings.ReplaceAll(f.Family+f.Subfamily(), " ", "")
	return name + ".ttf"
}

// otbName derives the output file name for a bitmap family:
// <family>-<style>.otb with spaces replaced by hyphens.
func otbName(family, style string) string {
	return strings.ReplaceAll(family+"-"+style, " ", "-") + ".otb"
}

// verifyTTF re-parses a written TTF file and checks that it carries a
// family name. This catches engine serialization bugs early, at the
// price of reading the file back.
func verifyTTF(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot read back %s", path)
	}
	sf, err := xsfnt.Parse(data)
	if err != nil {
		return core.WrapError(err, core.EINTERNAL, "emitted font %s does not parse", path)
	}
	name, err := sf.Name(nil, xsfnt.NameIDFamily)
	if err != nil || name == "" {
		return core.Error(core.EINTERNAL, "emitted font %s has no family name", path)
	}
	tracer().Infof("verified %s: family %q", filepath.Base(path), name)
	return nil
}
