package convert

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/fontconv/font"
	"github.com/npillmayer/fontconv/font/fonttest"
	"github.com/npillmayer/fontconv/remap"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// vectorFixture sets up a stub engine with one openable font. The input
// file exists on disk so that path resolution succeeds.
func vectorFixture(t *testing.T, family, style string, glyphs ...*font.Glyph) (*fonttest.Engine, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "input.pfb")
	if err := os.WriteFile(path, []byte("%!PS-AdobeFont-1.0"), 0644); err != nil {
		t.Fatal(err)
	}
	f := fonttest.NewFont(family, 1000, glyphs...)
	f.SetName(font.NameSubfamily, style)
	eng := fonttest.NewEngine()
	eng.AddFont(path, f)
	return eng, path
}

func TestVectorBatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontconv.convert")
	defer teardown()
	//
	eng, path := vectorFixture(t, "Nimbus Mono", "BoldItal",
		fonttest.NewGlyph("A", 'A', 600, font.DefectMissingExtrema),
		fonttest.NewGlyph("B", 'B', 600, 0),
	)
	outdir := t.TempDir()
	result, err := Vector(eng, []string{path}, Options{OutDir: outdir})
	if err != nil {
		t.Fatal(err)
	}
	if !result.OK() || len(result.Converted) != 1 {
		t.Fatalf("expected one converted font, got %+v", result)
	}
	want := filepath.Join(outdir, "NimbusMonoBoldItalic.ttf")
	if result.Converted[0].Output != want {
		t.Errorf("expected output %s, got %s", want, result.Converted[0].Output)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("expected output file to exist: %v", err)
	}
}

func TestVectorEmSizeCorrection(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontconv.convert")
	defer teardown()
	//
	eng, path := vectorFixture(t, "Test", "Regu",
		fonttest.NewGlyph("A", 'A', 600, 0))
	result, err := Vector(eng, []string{path}, Options{OutDir: t.TempDir()})
	if err != nil || !result.OK() {
		t.Fatalf("conversion failed: %v, %+v", err, result)
	}
	f, _ := eng.OpenFont(path)
	if f.EmSize != 1024 {
		t.Errorf("expected em-size corrected to 1024, got %d", f.EmSize)
	}
}

func TestVectorSkipFontIsRecorded(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontconv.convert")
	defer teardown()
	//
	eng, bad := vectorFixture(t, "Corrupt", "Regu",
		fonttest.NewGlyph("A", 'A', 600, font.DefectBadGlyphTable))
	result, err := Vector(eng, []string{bad}, Options{OutDir: t.TempDir()})
	if err != nil {
		t.Fatalf("a skipped font must not fail the batch: %v", err)
	}
	if len(result.Skipped) != 1 || len(result.Converted) != 0 {
		t.Errorf("expected the font to be recorded as skipped, got %+v", result)
	}
}

func TestVectorFatalDefectIsRecorded(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontconv.convert")
	defer teardown()
	//
	eng, path := vectorFixture(t, "Broken", "Regu",
		fonttest.NewGlyph("A", 'A', 600, font.DefectOpenContours))
	result, err := Vector(eng, []string{path}, Options{OutDir: t.TempDir()})
	if err != nil {
		t.Fatalf("a failed font must not fail the batch: %v", err)
	}
	if len(result.Failed) != 1 {
		t.Errorf("expected the font to be recorded as failed, got %+v", result)
	}
}

func TestVectorInvalidOutputDir(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontconv.convert")
	defer teardown()
	//
	eng := fonttest.NewEngine()
	_, err := Vector(eng, nil, Options{OutDir: filepath.Join(t.TempDir(), "nope")})
	if err == nil {
		t.Errorf("expected configuration error for invalid output directory")
	}
}

func TestVectorRemap(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontconv.convert")
	defer teardown()
	//
	a := fonttest.NewGlyph("A", 0x41, 600, 0)
	eng, path := vectorFixture(t, "Symbols", "Regu", a)
	opts := Options{
		OutDir:     t.TempDir(),
		FixUnicode: true,
		Shifts:     []remap.ShiftRange{{Lo: 0x20, Hi: 0x7E, Offset: 0xF000}},
	}
	result, err := Vector(eng, []string{path}, opts)
	if err != nil || !result.OK() {
		t.Fatalf("conversion failed: %v, %+v", err, result)
	}
	if a.Codepoint != 0xF041 {
		t.Errorf("expected glyph shifted to U+F041, got U+%04X", a.Codepoint)
	}
}

// --- Bitmap path -----------------------------------------------------------

func writeBDF(t *testing.T, dir, name, family, weight string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	content := "STARTFONT 2.1\nSTARTPROPERTIES 2\n" +
		"FAMILY_NAME \"" + family + "\"\n" +
		"WEIGHT_NAME \"" + weight + "\"\n" +
		"ENDPROPERTIES\nCHARS 0\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBitmapJob(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontconv.convert")
	defer teardown()
	//
	dir := t.TempDir()
	paths := []string{
		writeBDF(t, dir, "fixed-13.bdf", "Fixed Wide", "Medium"),
		writeBDF(t, dir, "fixed-18.bdf", "Fixed Wide", "Medium"),
	}
	eng := fonttest.NewEngine()
	eng.AddFont(paths[0], fonttest.NewFont("Fixed Wide", 1024))
	outdir := t.TempDir()
	result, err := Bitmap(eng, paths, Options{OutDir: outdir})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Converted) != 1 {
		t.Fatalf("expected one merged family, got %+v", result)
	}
	want := filepath.Join(outdir, "Fixed-Wide-Medium.otb")
	if result.Converted[0].Output != want {
		t.Errorf("expected output %s, got %s", want, result.Converted[0].Output)
	}
	if len(eng.Imports) != 1 || eng.Imports[0] != paths[1] {
		t.Errorf("expected second strike imported into base font, got %v", eng.Imports)
	}
}

func TestBitmapSubfamilyOverrideIsVerbatim(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontconv.convert")
	defer teardown()
	//
	dir := t.TempDir()
	path := writeBDF(t, dir, "fixed-13.bdf", "Fixed", "Medium")
	eng := fonttest.NewEngine()
	f := fonttest.NewFont("Fixed", 1024)
	eng.AddFont(path, f)
	outdir := t.TempDir()
	result, err := Bitmap(eng, []string{path}, Options{
		OutDir:            outdir,
		SubfamilyOverride: "Medi",
	})
	if err != nil || len(result.Converted) != 1 {
		t.Fatalf("conversion failed: %v, %+v", err, result)
	}
	if sub := f.Subfamily(); sub != "Medi" {
		t.Errorf("expected overriding subfamily to be kept verbatim, got %q", sub)
	}
	want := filepath.Join(outdir, "Fixed-Medi.otb")
	if result.Converted[0].Output != want {
		t.Errorf("expected output %s, got %s", want, result.Converted[0].Output)
	}
}

func TestBitmapTransformUnsupported(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontconv.convert")
	defer teardown()
	//
	dir := t.TempDir()
	path := writeBDF(t, dir, "fixed-13.bdf", "Fixed", "Medium")
	eng := fonttest.NewEngine()
	eng.NoTransform = true
	eng.AddFont(path, fonttest.NewFont("Fixed", 1024))
	opts := Options{
		OutDir:    t.TempDir(),
		Transform: &BitmapTransform{Name: "rotate", DX: 90},
	}
	_, err := Bitmap(eng, []string{path}, opts)
	if err == nil {
		t.Errorf("expected missing transform capability to fail the job")
	}
}
