package monospace

import (
	"testing"

	"github.com/npillmayer/fontconv/font"
	"github.com/npillmayer/fontconv/font/fonttest"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestReportMonospacedFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontconv.widths")
	defer teardown()
	//
	eng := fonttest.NewEngine()
	f := fonttest.NewFont("Mono", 2048,
		fonttest.NewGlyph("A", 'A', 600, 0),
		fonttest.NewGlyph("B", 'B', 600, 0),
	)
	if err := Report(eng, f); err != nil {
		t.Errorf("expected clean report, got %v", err)
	}
	if len(f.Glyphs) != 2 {
		t.Errorf("report mode must not mutate a monospaced font")
	}
}

func TestReportRemovesLoneNullGlyph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontconv.widths")
	defer teardown()
	//
	eng := fonttest.NewEngine()
	f := fonttest.NewFont("Mono", 2048,
		fonttest.NewGlyph("A", 'A', 600, 0),
		fonttest.NewGlyph(font.NullGlyphName, font.NoCodepoint, 0, 0),
		fonttest.NewGlyph("B", 'B', 600, 0),
	)
	if err := Report(eng, f); err != nil {
		t.Fatalf("expected null glyph removal, got %v", err)
	}
	if len(f.Glyphs) != 2 || f.GlyphByName(font.NullGlyphName) != nil {
		t.Errorf("expected null placeholder to be removed, glyphs = %v", f.Glyphs)
	}
}

func TestReportKeepsOtherDeviants(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontconv.widths")
	defer teardown()
	//
	eng := fonttest.NewEngine()
	f := fonttest.NewFont("Mono", 2048,
		fonttest.NewGlyph("A", 'A', 600, 0),
		fonttest.NewGlyph("m", 'm', 750, 0),
		fonttest.NewGlyph("w", 'w', 800, 0),
	)
	if err := Report(eng, f); err != nil {
		t.Fatalf("report mode must not fail on deviants: %v", err)
	}
	if len(f.Glyphs) != 3 {
		t.Errorf("report mode must not remove assigned glyphs")
	}
}

func TestReportManyDeviantsAreOnlyCounted(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontconv.widths")
	defer teardown()
	//
	eng := fonttest.NewEngine()
	f := fonttest.NewFont("Mono", 2048,
		fonttest.NewGlyph("m", 'm', 800, 0),
		fonttest.NewGlyph("a", 'a', 500, 0),
		fonttest.NewGlyph("b", 'b', 510, 0),
		fonttest.NewGlyph("c", 'c', 520, 0),
		fonttest.NewGlyph("d", 'd', 530, 0),
		fonttest.NewGlyph("e", 'e', 540, 0),
		fonttest.NewGlyph("f", 'f', 550, 0),
	)
	if err := Report(eng, f); err != nil {
		t.Fatalf("report mode must not fail on deviants: %v", err)
	}
	if len(f.Glyphs) != 7 {
		t.Fatalf("report mode must not remove glyphs, %d left", len(f.Glyphs))
	}
	for i, want := range []int{800, 500, 510, 520, 530, 540, 550} {
		if f.Glyphs[i].Width != want {
			t.Errorf("glyph %s: expected width %d untouched, got %d",
				f.Glyphs[i].Name, want, f.Glyphs[i].Width)
		}
		if len(fonttest.State(f.Glyphs[i]).ScaleCalls) != 0 {
			t.Errorf("glyph %s: report mode must not scale", f.Glyphs[i].Name)
		}
	}
}

func TestForceScalesToModalWidth(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontconv.widths")
	defer teardown()
	//
	eng := fonttest.NewEngine()
	wide := fonttest.NewGlyph("m", 'm', 1200, 0)
	f := fonttest.NewFont("Mono", 2048,
		fonttest.NewGlyph("A", 'A', 600, 0),
		fonttest.NewGlyph("B", 'B', 600, 0),
		fonttest.NewGlyph("C", 'C', 600, 0),
		wide,
	)
	if err := Force(eng, f); err != nil {
		t.Fatalf("force failed: %v", err)
	}
	for _, g := range f.Glyphs {
		if g.Width != 600 {
			t.Errorf("glyph %s: expected width 600, got %d", g.Name, g.Width)
		}
	}
	scales := fonttest.State(wide).ScaleCalls
	if len(scales) != 1 || scales[0] != 0.5 {
		t.Errorf("expected outlier scaled by 0.5, got %v", scales)
	}
}

func TestForceModalBeatsMaximum(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontconv.widths")
	defer teardown()
	//
	eng := fonttest.NewEngine()
	f := fonttest.NewFont("Mono", 2048,
		fonttest.NewGlyph("A", 'A', 500, 0),
		fonttest.NewGlyph("B", 'B', 500, 0),
		fonttest.NewGlyph("m", 'm', 900, 0),
	)
	if err := Force(eng, f); err != nil {
		t.Fatalf("force failed: %v", err)
	}
	if f.Glyphs[2].Width != 500 {
		t.Errorf("canonical width must be modal, not maximal; got %d", f.Glyphs[2].Width)
	}
}

func TestForceCreatesNullGlyph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontconv.widths")
	defer teardown()
	//
	eng := fonttest.NewEngine()
	f := fonttest.NewFont("Mono", 2048,
		fonttest.NewGlyph("A", 'A', 600, 0),
	)
	if err := Force(eng, f); err != nil {
		t.Fatalf("force failed: %v", err)
	}
	null := f.GlyphByName(font.NullGlyphName)
	if null == nil {
		t.Fatalf("expected null placeholder to be created")
	}
	if null.Width != 600 {
		t.Errorf("expected null placeholder width 600, got %d", null.Width)
	}
}

func TestForceDoesNotScaleReservedGlyphs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontconv.widths")
	defer teardown()
	//
	eng := fonttest.NewEngine()
	notdef := fonttest.NewGlyph(font.NotdefGlyphName, font.NoCodepoint, 900, 0)
	cr := fonttest.NewGlyph(font.NonmarkingReturnName, 0x0D, 250, 0)
	f := fonttest.NewFont("Mono", 2048,
		fonttest.NewGlyph("A", 'A', 600, 0),
		fonttest.NewGlyph("B", 'B', 600, 0),
		notdef,
		cr,
	)
	if err := Force(eng, f); err != nil {
		t.Fatalf("force failed: %v", err)
	}
	for _, g := range []*font.Glyph{notdef, cr} {
		if g.Width != 600 {
			t.Errorf("reserved glyph %s: expected width 600, got %d", g.Name, g.Width)
		}
		if len(fonttest.State(g).ScaleCalls) != 0 {
			t.Errorf("reserved glyph %s must not be scaled geometrically", g.Name)
		}
	}
}
