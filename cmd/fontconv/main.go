// Fontconv normalizes legacy fonts and converts them to TrueType
// containers: Type1 outline fonts become TTF files, bitmap strike
// families become OTB files.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/fontconv/convert"
	"github.com/npillmayer/fontconv/core"
	"github.com/npillmayer/fontconv/font"
	"github.com/npillmayer/fontconv/locate"
	"github.com/npillmayer/fontconv/remap"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'fontconv.cli'
func tracer() tracing.Trace {
	return tracing.Select("fontconv.cli")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":        "go",
		"trace.fontconv.cli":     "Info",
		"trace.fontconv.convert": "Info",
		"trace.fontconv.repair":  "Info",
		"trace.fontconv.widths":  "Info",
		"trace.fontconv.naming":  "Info",
		"trace.fontconv.remap":   "Info",
		"trace.fontconv.bitmap":  "Info",
		"trace.fontconv.locate":  "Info",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	var replaceList, shiftList multiFlag
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	engineName := flag.String("engine", "", "Font engine to use")
	monospaced := flag.Bool("monospaced", false, "Force all glyphs to the modal advance width")
	family := flag.String("family", "", "Override the family name")
	subfamily := flag.String("subfamily", "", "Override the subfamily (style) name")
	fixUnicode := flag.Bool("fix-unicode", false, "Recompute glyph code-points")
	transform := flag.String("transform", "", "Bitmap transform as name:dx:dy")
	outdir := flag.String("outdir", "", "Output directory")
	outname := flag.String("o", "", "Explicit output file name")
	flag.Var(&replaceList, "replace", "Code-point replacement from:to (repeatable)")
	flag.Var(&shiftList, "shift", "Code-point shift range lo:hi:offset (repeatable)")
	flag.Parse()
	setTraceLevel(*tlevel)
	if flag.NArg() == 0 {
		pterm.Error.Println("no input fonts given")
		os.Exit(2)
	}

	opts := convert.Options{
		ForceMonospace:    *monospaced,
		FamilyOverride:    *family,
		SubfamilyOverride: *subfamily,
		FixUnicode:        *fixUnicode,
		OutDir:            *outdir,
		OutName:           *outname,
		VerifyOutput:      true,
	}
	var err error
	if opts.Replacements, err = parseReplacements(replaceList); err != nil {
		fail(err)
	}
	if opts.Shifts, err = parseShifts(shiftList); err != nil {
		fail(err)
	}
	if opts.Transform, err = parseTransform(*transform); err != nil {
		fail(err)
	}

	eng, err := selectEngine(*engineName)
	if err != nil {
		fail(err)
	}

	var result convert.Result
	if locate.IsBitmapFont(flag.Arg(0)) {
		result, err = convert.Bitmap(eng, flag.Args(), opts)
	} else {
		result, err = convert.Vector(eng, flag.Args(), opts)
	}
	if err != nil {
		fail(err)
	}
	report(result)
	if !result.OK() {
		os.Exit(1)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func setTraceLevel(level string) {
	switch strings.ToLower(level) {
	case "debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
	case "error":
		tracer().SetTraceLevel(tracing.LevelError)
	default:
		tracer().SetTraceLevel(tracing.LevelInfo)
	}
}

func report(result convert.Result) {
	for _, status := range result.Converted {
		pterm.Info.Printfln("converted %s to %s", status.Path, status.Output)
	}
	for _, status := range result.Skipped {
		pterm.Printfln("not converted: %s (%s)", status.Path, core.UserMessage(status.Err))
	}
	for _, status := range result.Failed {
		pterm.Error.Printfln("failed: %s (%s)", status.Path, core.UserMessage(status.Err))
	}
}

func fail(err error) {
	core.UserError(err)
	os.Exit(3)
}

// selectEngine creates the configured engine, or the only registered
// one if none is configured.
func selectEngine(name string) (font.Engine, error) {
	if name == "" {
		names := font.EngineNames()
		if len(names) != 1 {
			return nil, core.Error(core.ECONFIG,
				"no engine selected, registered engines: %v", names)
		}
		name = names[0]
	}
	return font.NewEngine(name)
}

// multiFlag collects repeatable flag values.
type multiFlag []string

func (m *multiFlag) String() string {
	return strings.Join(*m, ",")
}

func (m *multiFlag) Set(value string) error {
	*m = append(*m, value)
	return nil
}

func parseReplacements(values []string) ([]remap.Replacement, error) {
	var replacements []remap.Replacement
	for _, v := range values {
		parts, err := splitCodepoints(v, 2)
		if err != nil {
			return nil, core.WrapError(err, core.ECONFIG, "replacement must be from:to, have %q", v)
		}
		replacements = append(replacements, remap.Replacement{From: parts[0], To: parts[1]})
	}
	return replacements, nil
}

func parseShifts(values []string) ([]remap.ShiftRange, error) {
	var shifts []remap.ShiftRange
	for _, v := range values {
		parts, err := splitCodepoints(v, 3)
		if err != nil {
			return nil, core.WrapError(err, core.ECONFIG, "shift must be lo:hi:offset, have %q", v)
		}
		if parts[0] > parts[1] {
			return nil, core.Error(core.ECONFIG, "shift range %q has lo above hi", v)
		}
		shifts = append(shifts, remap.ShiftRange{Lo: parts[0], Hi: parts[1], Offset: parts[2]})
	}
	return shifts, nil
}

func parseTransform(value string) (*convert.BitmapTransform, error) {
	if value == "" {
		return nil, nil
	}
	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return nil, core.Error(core.ECONFIG, "transform must be name:dx:dy, have %q", value)
	}
	dx, err1 := strconv.Atoi(parts[1])
	dy, err2 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil {
		return nil, core.Error(core.ECONFIG, "transform offsets must be integers, have %q", value)
	}
	return &convert.BitmapTransform{Name: parts[0], DX: dx, DY: dy}, nil
}

// splitCodepoints parses n colon-separated code-points. Values may be
// decimal or hexadecimal with an 0x prefix.
func splitCodepoints(value string, n int) ([]rune, error) {
	parts := strings.Split(value, ":")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d fields, have %d", n, len(parts))
	}
	runes := make([]rune, n)
	for i, p := range parts {
		cp, err := strconv.ParseInt(p, 0, 32)
		if err != nil {
			return nil, err
		}
		runes[i] = rune(cp)
	}
	return runes, nil
}
