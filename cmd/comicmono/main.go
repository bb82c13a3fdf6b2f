/*
Command comicmono builds the Comic Mono fonts.

Without arguments it reads vendor/comic-shanns.otf and
vendor/Cousine-Regular.ttf and writes ComicMono.ttf and ComicMono-Bold.ttf
to the current directory:

	comicmono [--vendor DIR] [--out DIR] [--width N] [--scale F] [--stroke F]
	          [--trace LEVEL] [--no-verify]

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/comicmono/build"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

// tracer traces with key 'comicmono'
func tracer() tracing.Trace {
	return tracing.Select("comicmono")
}

// tracers lists the trace keys of all packages taking part in a build.
var tracers = []string{
	"comicmono",
	"comicmono.build",
	"font.edit",
	"font.outline",
	"font.opentype",
	"font.ttf",
}

func main() {
	commando.
		SetExecutableName("comicmono").
		SetVersion(build.DefaultConfig().Regular.Version).
		SetDescription("Generates the monospaced fonts Comic Mono and Comic Mono Bold from Comic Shanns.")

	commando.
		Register(nil).
		AddFlag("vendor,i", "directory holding comic-shanns.otf and Cousine-Regular.ttf", commando.String, "vendor").
		AddFlag("out,o", "output directory", commando.String, ".").
		AddFlag("width,w", "advance width of every glyph", commando.Int, 510).
		AddFlag("scale,s", "scale applied after matching cap heights", commando.String, "0.875").
		AddFlag("stroke", "stem thickening of the bold variant", commando.String, "32").
		AddFlag("trace,t", "trace level [Debug|Info|Error]", commando.String, "Info").
		AddFlag("no-verify", "do not re-read the generated fonts", commando.Bool, nil).
		SetAction(runBuild)

	commando.Parse(nil)
}

func runBuild(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	initDisplay()
	level := mustFlagString(flags["trace"], "trace")
	if err := setupTracing(level); err != nil {
		fatalf("%v", err)
	}
	width, err := flags["width"].GetInt()
	if err != nil {
		fatalf("invalid --width flag: %v", err)
	}
	noVerify, err := flags["no-verify"].GetBool()
	if err != nil {
		fatalf("invalid --no-verify flag: %v", err)
	}
	conf := testconfig.Conf{
		build.KeyVendor: mustFlagString(flags["vendor"], "vendor"),
		build.KeyOutDir: mustFlagString(flags["out"], "out"),
		build.KeyWidth:  strconv.Itoa(width),
		build.KeyScale:  mustFlagString(flags["scale"], "scale"),
		build.KeyStroke: mustFlagString(flags["stroke"], "stroke"),
		build.KeyVerify: strconv.FormatBool(!noVerify),
	}
	cfg, err := build.ConfigFrom(conf)
	if err != nil {
		fatalf("%v", err)
	}
	tracer().Infof("source %s, reference %s", cfg.Source, cfg.Reference)
	rep, err := build.Run(cfg)
	if rep != nil {
		printReport(rep)
	}
	if err != nil {
		fatalf("%v", err)
	}
	pterm.Info.Printf("built %d fonts\n", len(rep.Outputs))
}

// setupTracing routes all tracers to Go's log package.
func setupTracing(level string) error {
	levels := map[string]string{"debug": "Debug", "info": "Info", "error": "Error"}
	l, ok := levels[strings.ToLower(level)]
	if !ok {
		return fmt.Errorf("invalid trace level: %s", level)
	}
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
	}
	for _, key := range tracers {
		conf["trace."+key] = l
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return fmt.Errorf("error configuring tracing: %w", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return nil
}

func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func printReport(rep *build.Report) {
	w := rep.Widths
	data := [][]string{
		{"Glyphs", "Count"},
		{"adjusted to target width", strconv.Itoa(w.Adjusted)},
		{"already at target width", strconv.Itoa(w.Unchanged)},
		{"combining marks", strconv.Itoa(w.SkippedMarks)},
		{"without advance", strconv.Itoa(w.SkippedEmpty)},
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	if rep.CapScale != 0 {
		pterm.Info.Printf("cap height scale %.4f\n", rep.CapScale)
	}
	for _, out := range rep.Outputs {
		pterm.Info.Printf("wrote %s\n", out)
	}
}

func mustFlagString(flag commando.FlagValue, name string) string {
	s, err := flag.GetString()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return strings.TrimSpace(s)
}

func fatalf(format string, args ...interface{}) {
	pterm.Error.Printf(format+"\n", args...)
	os.Exit(1)
}
