/*
Command fontcheck is an interactive inspector for generated fonts.

	fontcheck --font ComicMono.ttf

Commands are entered at the prompt, several of them separated by blanks.
Arguments follow a command after a colon, e.g. "glyph:U+0041" or
"glyph:m cells:中文". Enter "help" for a list of commands.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/comicmono"
	"github.com/npillmayer/comicmono/fontedit"
	"github.com/npillmayer/comicmono/ot"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'comicmono'
func tracer() tracing.Trace {
	return tracing.Select("comicmono")
}

func main() {
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	fontname := flag.String("font", "ComicMono.ttf", "Font to inspect")
	flag.Parse()
	initDisplay()
	if err := setupTracing(*tlevel); err != nil {
		pterm.Error.Println(err)
		os.Exit(5)
	}
	intp, err := loadFont(*fontname)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(4)
	}
	if intp.repl, err = readline.New("fc > "); err != nil {
		pterm.Error.Println(err)
		os.Exit(3)
	}
	defer intp.repl.Close()
	pterm.Info.Printf("Inspecting %s, quit with <ctrl>D\n", *fontname)
	intp.REPL()
}

// setupTracing routes the tracers of fontcheck and of the font packages to
// Go's log package, all of them at the given level.
func setupTracing(level string) error {
	switch level {
	case "Debug", "Info", "Error":
	default:
		return fmt.Errorf("invalid trace level: %s", level)
	}
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{"tracing.adapter": "go"}
	for _, key := range []string{"comicmono", "font.edit", "font.opentype"} {
		conf["trace."+key] = level
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return fmt.Errorf("configuring tracing: %w", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return nil
}

func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " fc ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " fail ",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgWhite),
	}
}

// Intp is our interpreter object. It holds the font twice: as raw tables
// and as an editable model.
type Intp struct {
	otf  *ot.Font
	font *fontedit.Font
	repl *readline.Instance
}

func (intp *Intp) String() string {
	if intp == nil || intp.font == nil {
		return "()"
	}
	return fmt.Sprintf("( font=%s, %d glyphs )", intp.font.FullName, len(intp.font.Glyphs))
}

// REPL reads command lines until the user quits or closes the input.
func (intp *Intp) REPL() {
	pterm.Println(intp.String())
	for {
		line, err := intp.repl.Readline()
		if err != nil {
			return
		}
		if line = strings.TrimSpace(line); line != "" && intp.execute(parseCommand(line)) {
			return
		}
	}
}

// Op is a single command together with its argument.
type Op struct {
	code int
	arg  string
}

func (op *Op) noArg() bool {
	return op.arg == ""
}

const (
	QUIT int = iota
	HELP
	GLYPH
	CELLS
	METRICS
	NAMES
	TABLES
	MONO
)

var opMap = map[string]int{
	"quit":    QUIT,
	"help":    HELP,
	"glyph":   GLYPH,
	"cells":   CELLS,
	"metrics": METRICS,
	"names":   NAMES,
	"tables":  TABLES,
	"mono":    MONO,
}

// parseCommand splits a line into operations. Unknown commands turn into
// requests for help.
func parseCommand(line string) []Op {
	var ops []Op
	for _, step := range strings.Fields(line) {
		name, arg, _ := strings.Cut(step, ":")
		code, ok := opMap[strings.ToLower(name)]
		if !ok {
			code, arg = HELP, ""
		}
		ops = append(ops, Op{code: code, arg: arg})
		if code == QUIT {
			break
		}
	}
	return ops
}

var commandFn map[int]func(*Intp, *Op) (error, bool)

func init() {
	commandFn = map[int]func(*Intp, *Op) (error, bool){
		QUIT:    quitOp,
		HELP:    helpOp,
		GLYPH:   glyphOp,
		CELLS:   cellsOp,
		METRICS: metricsOp,
		NAMES:   namesOp,
		TABLES:  tablesOp,
		MONO:    monoOp,
	}
}

// execute runs ops in order and reports whether the REPL should stop.
// An error aborts the remaining ops of the line.
func (intp *Intp) execute(ops []Op) bool {
	for _, op := range ops {
		f, ok := commandFn[op.code]
		if !ok {
			pterm.Error.Printf("unknown command code: %d\n", op.code)
			return false
		}
		err, stop := f(intp, &op)
		if err != nil {
			pterm.Error.Println(err)
			return false
		}
		if stop {
			return true
		}
	}
	return false
}

func quitOp(intp *Intp, op *Op) (error, bool) {
	return nil, true
}

// --- Font Loading -----------------------------------------------------

var errNoFont = errors.New("no font loaded")

func loadFont(path string) (*Intp, error) {
	sf, err := comicmono.LoadOpenTypeFont(path)
	if err != nil {
		return nil, err
	}
	otf, err := ot.Parse(sf.Binary)
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", path, err)
	}
	f, err := fontedit.FromScalableFont(sf)
	if err != nil {
		return nil, err
	}
	tracer().Infof("loaded font %s from %s", f.FullName, path)
	return &Intp{otf: otf, font: f}, nil
}

func (intp *Intp) checkFont() error {
	if intp.font == nil || intp.otf == nil {
		return errNoFont
	}
	return nil
}
