package convert

import (
	"os"
	"path/filepath"

	"github.com/benoitkugler/textlayout/fonts/type1"
	"github.com/npillmayer/fontconv/core"
	"github.com/npillmayer/fontconv/font"
	"github.com/npillmayer/fontconv/locate"
	"github.com/npillmayer/fontconv/monospace"
	"github.com/npillmayer/fontconv/naming"
	"github.com/npillmayer/fontconv/remap"
	"github.com/npillmayer/fontconv/repair"
)

// Vector converts a batch of Type1 outline fonts to TTF, one output
// file per input. A font signalling the skip-font condition is recorded
// as skipped; a font with a fatal defect is recorded as failed; the
// batch continues either way. Only configuration errors fail the whole
// run.
func Vector(eng font.Engine, paths []string, opts Options) (Result, error) {
	outdir, err := locate.OutputDir(opts.OutDir)
	if err != nil {
		return Result{}, err
	}
	var result Result
	for _, path := range paths {
		output, err := vectorFile(eng, path, outdir, opts)
		status := FileStatus{Path: path, Output: output, Err: err}
		switch {
		case core.IsSkip(err):
			tracer().Errorf("font %s not converted: %s", path, core.UserMessage(err))
			result.Skipped = append(result.Skipped, status)
		case err != nil:
			tracer().Errorf("font %s failed: %s", path, core.UserMessage(err))
			result.Failed = append(result.Failed, status)
		default:
			result.Converted = append(result.Converted, status)
		}
	}
	return result, nil
}

// vectorFile runs the full pipeline over a single input file.
func vectorFile(eng font.Engine, path, outdir string, opts Options) (string, error) {
	resolved, err := locate.FontFile(path)
	if err != nil {
		return "", err
	}
	preflight(resolved)
	f, err := eng.OpenFont(resolved)
	if err != nil {
		return "", err
	}
	defer eng.CloseFont(f)
	if opts.FamilyOverride != "" {
		tracer().Infof("font %s: family set to %q", f.Family, opts.FamilyOverride)
		f.Family = opts.FamilyOverride
		f.SetName(font.NameFamily, opts.FamilyOverride)
	}
	if err := repair.Normalize(eng, f); err != nil {
		return "", err
	}
	naming.FixSubfamily(f, opts.SubfamilyOverride)
	if opts.ForceMonospace {
		err = monospace.Force(eng, f)
	} else {
		err = monospace.Report(eng, f)
	}
	if err != nil {
		return "", err
	}
	if opts.FixUnicode {
		remap.Apply(f, opts.Shifts, opts.Replacements)
	}
	output := filepath.Join(outdir, ttfName(f, opts))
	tracer().Infof("writing %s", output)
	if err := eng.WriteTTF(f, output); err != nil {
		return "", err
	}
	if opts.VerifyOutput {
		if err := verifyTTF(output); err != nil {
			return output, err
		}
	}
	return output, nil
}

// preflight parses the input as Type1 before the engine sees it. A
// parse failure is reported but does not block conversion: the engine
// accepts some files this parser rejects.
func preflight(path string) {
	if !locate.IsVectorFont(path) {
		return
	}
	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()
	if _, err := type1.Parse(file); err != nil {
		tracer().Errorf("%s does not parse as Type1: %v", path, err)
	}
}
