/*
Package locate resolves input font files. Arguments may be file paths or
bare font names; names are searched on the system font path.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package locate

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/fontconv/core"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fontconv.locate'.
func tracer() tracing.Trace {
	return tracing.Select("fontconv.locate")
}

// Recognized input extensions.
var (
	vectorExts = []string{".pfa", ".pfb"}
	// Entries must be lower case; matching lowercases the basename, so
	// ".pcf.z" covers compress(1) output named either fixed.pcf.Z or
	// fixed.pcf.z.
	bitmapExts = []string{".bdf", ".pcf", ".bdf.gz", ".pcf.gz", ".pcf.z"}
)

// IsVectorFont tells if path names a Type1 outline font file.
func IsVectorFont(path string) bool {
	return hasAnySuffix(path, vectorExts)
}

// IsBitmapFont tells if path names a bitmap strike file, possibly
// compressed.
func IsBitmapFont(path string) bool {
	return hasAnySuffix(path, bitmapExts)
}

func hasAnySuffix(path string, exts []string) bool {
	base := strings.ToLower(filepath.Base(path))
	for _, ext := range exts {
		if strings.HasSuffix(base, ext) {
			return true
		}
	}
	return false
}

// FontFile resolves a font argument to a readable file path. A readable
// path is returned as-is; otherwise the argument is searched as a system
// font.
func FontFile(arg string) (string, error) {
	if _, err := os.Stat(arg); err == nil {
		return arg, nil
	}
	fpath, err := findfont.Find(arg) // try to find as system font
	if err == nil && fpath != "" {
		tracer().Infof("%s is a system font at %s", arg, fpath)
		return fpath, nil
	}
	return "", core.Error(core.EMISSING, "font %s: no such file or system font", arg)
}

// OutputDir validates that dir exists and is a directory. An empty dir
// means the current directory.
func OutputDir(dir string) (string, error) {
	if dir == "" {
		return ".", nil
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", core.Error(core.ECONFIG, "output directory %s does not exist", dir)
	}
	return dir, nil
}
