package convert

import (
	"errors"
	"path/filepath"

	"github.com/npillmayer/fontconv/bitmap"
	"github.com/npillmayer/fontconv/core"
	"github.com/npillmayer/fontconv/font"
	"github.com/npillmayer/fontconv/locate"
	"github.com/npillmayer/fontconv/naming"
	"github.com/npillmayer/fontconv/remap"
)

// Bitmap converts bitmap strike files to OTB containers, one output per
// (family, style) group. Strikes of one group are merged into the
// group's base font. Unlike the vector batch there is no per-font
// isolation: the grouping happens up front and any fatal condition
// aborts the whole job.
func Bitmap(eng font.Engine, paths []string, opts Options) (Result, error) {
	outdir, err := locate.OutputDir(opts.OutDir)
	if err != nil {
		return Result{}, err
	}
	groups, err := bitmap.GroupFiles(paths)
	if err != nil {
		return Result{}, err
	}
	var result Result
	for _, group := range groups {
		output, err := bitmapGroup(eng, group, outdir, opts)
		if err != nil {
			return result, err
		}
		result.Converted = append(result.Converted, FileStatus{Path: group.Base(), Output: output})
	}
	return result, nil
}

// bitmapGroup merges one family group and writes it as OTB.
func bitmapGroup(eng font.Engine, group bitmap.Group, outdir string, opts Options) (string, error) {
	tracer().Infof("merging %d strikes of %s %s", len(group.Paths), group.Family, group.Style)
	f, err := eng.OpenFont(group.Base())
	if err != nil {
		return "", err
	}
	defer eng.CloseFont(f)
	for _, path := range group.Rest() {
		if err := eng.ImportBitmaps(f, path); err != nil {
			return "", err
		}
		tracer().Infof("imported strikes of %s", path)
	}
	if opts.Transform != nil {
		err := eng.BitmapTransform(f, opts.Transform.Name, opts.Transform.DX, opts.Transform.DY)
		if errors.Is(err, font.ErrTransformUnsupported) {
			return "", core.WrapError(err, core.ECONFIG,
				"transform %q requested but the engine cannot transform bitmaps", opts.Transform.Name)
		}
		if err != nil {
			return "", err
		}
		tracer().Infof("applied bitmap transform %q (%d, %d)",
			opts.Transform.Name, opts.Transform.DX, opts.Transform.DY)
	}
	family := group.Family
	if opts.FamilyOverride != "" {
		family = opts.FamilyOverride
	}
	f.Family = family
	f.SetName(font.NameFamily, family)
	f.SetName(font.NameSubfamily, group.Style)
	naming.FixSubfamily(f, opts.SubfamilyOverride)

	if opts.FixUnicode {
		remap.Apply(f, opts.Shifts, opts.Replacements)
	}
	output := filepath.Join(outdir, otbName(family, f.Subfamily()))
	tracer().Infof("writing %s", output)
	if err := eng.WriteOTB(f, output); err != nil {
		return "", err
	}
	return output, nil
}
