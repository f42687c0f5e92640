package main

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/goforj/godump"
	"golang.org/x/term"
)

func main() {

	path, required := configPath()

	cfg, err := loadConfig(path, required)
	if err != nil {
		crash(err.Error())
	}

	if len(os.Args) > 2 {
		crash("Usage: basic [program]")
	}

	stdin, stdout := int(os.Stdin.Fd()), int(os.Stdout.Fd())

	var src lineSource

	if term.IsTerminal(stdin) && term.IsTerminal(stdout) {
		src = newLinerSource(cfg.HistoryFile)
	} else {
		src = newPlainSource(os.Stdin, nil)
	}

	bp := newInterp(src, os.Stdout, cfg)

	bp.colorize = term.IsTerminal(stdout)

	bp.setupWindow(stdout)

	//
	// We need to close the Liner instances on the way out, to make
	// sure we end up back in normal (cooked) terminal mode
	//

	defer func() {
		if err := src.close(); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}()

	if len(os.Args) == 2 {
		if err := bp.loadProgram(os.Args[1]); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}

	bp.session()
}

func newInterp(src lineSource, out io.Writer, cfg config) *interp {

	bp := &interp{cfg: cfg, src: src, out: out}

	bp.tracedVarsMap = make(map[string]bool)

	bp.printStats = cfg.Stats
	bp.traceExec = cfg.Trace.Exec
	bp.traceVars = cfg.Trace.Vars
	bp.traceDump = cfg.Trace.Dump

	bp.numOutputZones = max(1, defaultColumns/cfg.ZoneWidth)

	seed := time.Now().UnixNano()
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}

	bp.rng = rand.New(rand.NewSource(seed))

	bp.initializeRun()

	return bp
}

//
// Loop forever, or until we quit
//

func (bp *interp) session() {

	bp.println("READY")

	bp.commandLoop(bp.src, bp.cfg.Prompt)
}

func (bp *interp) commandLoop(src lineSource, prompt string) {

	for !bp.exiting {
		line, err := src.readCommand(prompt)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				bp.println(err)
			}
			return
		}

		bp.call(func() {
			if err := bp.command(line); err != nil {
				bp.reportError(err)
			}
		})

		bp.resetPrint(false)
	}
}

//
// Feed a program file through the command dispatcher, one line at a
// time, exactly as if it had been typed
//

func (bp *interp) loadProgram(filename string) error {

	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("Unable to open %q (%w)", filename, err)
	}
	defer f.Close()

	bp.commandLoop(newPlainSource(f, nil), "")

	return nil
}

//
// Handle one line from the command source.  A line starting with a
// digit goes to the program store; anything else is a command
//

func (bp *interp) command(line string) error {

	line = strings.TrimLeft(strings.TrimRight(line, "\r\n"), " \t")

	if strings.TrimSpace(line) == "" {
		return nil
	}

	if isDigit(line[0]) {
		return bp.enterLine(line)
	}

	return catchBasicError(func() {
		bp.dispatch(line)
	})
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func (bp *interp) dispatch(line string) {

	fields := strings.Fields(line)
	args := fields[1:]

	switch strings.ToUpper(fields[0]) {
	case "RUN":
		bp.executeRun()

	case "LIST":
		bp.listCommand(line)

	case "NEW":
		bp.executeNew()

	case "EXIT", "BYE":
		bp.executeBye()

	case "HELP":
		bp.executeHelp(args)

	case "TRACE":
		bp.executeTrace(args)

	case "STATS":
		bp.printStats = !bp.printStats
		bp.printf("toggling stats %s\n", switchSetting(bp.printStats))

	default:
		panic(&basicError{kind: errSyntax, source: line, col: 1,
			end: len(fields[0]), msg: fmt.Sprintf("Unrecognized command %q", fields[0])})
	}
}

//
// LIST at command level goes through the statement parser, so the
// range syntax is shared with LIST inside a program
//

func (bp *interp) listCommand(line string) {

	stmts, err := parseStatements(line)
	if err == nil && (len(stmts) != 1 || stmts[0].token != LIST) {
		err = &basicError{kind: errSyntax, msg: "LIST takes only a line range"}
	}

	if err != nil {
		be := err.(*basicError)
		be.source = line
		panic(be)
	}

	bp.executeList(stmts[0])
}

//
// Insert, replace or delete a numbered program line.  The raw text
// is kept exactly as typed, for LIST
//

func (bp *interp) enterLine(line string) error {

	i := 0
	for i < len(line) && isDigit(line[i]) {
		i++
	}

	lineNo, err := strconv.Atoi(line[:i])
	if err != nil || lineNo < 1 || lineNo > maxLineNumber {
		return &basicError{kind: errSyntax, msg: EILLEGALLINENUMBER,
			col: 1, end: i, source: line}
	}

	text := line[i:]

	if strings.TrimSpace(text) == "" {
		if pl := bp.prog.lookupLine(lineNo); pl != nil {
			bp.prog.removeLine(pl)
			bp.initializeRun()
		}
		return nil
	}

	stmts, err := parseStatements(text)
	if err != nil {
		var be *basicError
		if errors.As(err, &be) {
			be.source = line
			be.col += i
			be.end += i
		}
		return err
	}

	pl := &programLine{lineNo: lineNo, raw: line, stmts: stmts}

	bp.prog.insertLine(pl)

	bp.initializeRun()

	if bp.traceDump {
		godump.Fdump(bp.out, pl.stmts)
	}

	return nil
}

//
// Report an error that made it back to the command loop.  For a
// rejected line on a terminal, echo the line with the culprit token
// in red first
//

func (bp *interp) reportError(err error) {

	var be *basicError

	bp.resetPrint(false)

	if errors.As(err, &be) && be.source != "" && bp.colorize && be.col > 0 {
		fmt.Fprintln(bp.out, colorizeString(be.source, be.col, be.end, colorRedSeq))
	}

	fmt.Fprintln(bp.out, err)

	if !errors.Is(err, errSyntax) {
		bp.printStatistics()
	}
}

//
// Toggle trace flags
//

func (bp *interp) executeTrace(args []string) {

	if len(args) == 0 {
		bp.printf("traceExec %s\n", switchSetting(bp.traceExec))
		bp.printf("traceVars %s\n", switchSetting(bp.traceVars))
		bp.printf("traceDump %s\n", switchSetting(bp.traceDump))
		return
	}

	for _, arg := range args {
		switch name := strings.ToUpper(arg); name {
		case "EXEC":
			bp.traceExec = !bp.traceExec
			bp.printf("toggling traceExec %s\n", switchSetting(bp.traceExec))

		case "VARS":
			bp.traceVars = !bp.traceVars
			bp.printf("toggling traceVars %s\n", switchSetting(bp.traceVars))

		case "DUMP":
			bp.traceDump = !bp.traceDump
			bp.printf("toggling traceDump %s\n", switchSetting(bp.traceDump))

		default:
			if !isVariableName(name) {
				syntaxError(token{}, "Invalid trace option %q", arg)
			}

			//
			// If (un)tracing specific variables, disable global
			// variable trace flag, if set
			//

			bp.traceVars = false
			bp.printf("Tracing variable %q ", name)
			if bp.tracedVarsMap[name] {
				bp.println("disabled")
			} else {
				bp.println("enabled")
			}
			bp.tracedVarsMap[name] = !bp.tracedVarsMap[name]
		}
	}
}

func isVariableName(name string) bool {

	tokens, err := tokenize(name)

	return err == nil && len(tokens) == 2 && tokens[0].kind == tokIdent
}

//
// Wrapper routine for a function.  We need this so that panic calls
// can be caught and decoded before returning to our caller
//

func (bp *interp) call(f func()) {

	defer func() {
		if e := recover(); e != nil {
			bp.decodePanic(e)
		}
	}()

	f()
}

//
// Ugly: the best thing I've been able to come up with is to scan the
// call stack, looking for a function named 'runtime.gopanic', and
// picking the next non-runtime frame
//

func (bp *interp) decodePanic(e any) {

	bp.running = false

	bp.resetPrint(false)

	switch e := e.(type) {
	default:
		var panicSeen bool
		var panicFrame runtime.Frame

		pcs := make([]uintptr, 64)

		frames := runtime.CallersFrames(pcs[:runtime.Callers(1, pcs)])

		for {
			frame, more := frames.Next()

			if frame.Function == "runtime.gopanic" {
				panicSeen = true
			} else if panicSeen && !strings.HasPrefix(frame.Function, "runtime.") {
				panicFrame = frame
				break
			}

			if !more {
				break
			}
		}

		fmt.Fprintf(bp.out, "%v at %s line %d\n", e,
			filepath.Base(panicFrame.File), panicFrame.Line)

		debug.PrintStack()

	case *basicError:
		bp.reportError(e)

	case *basicErrorInfo:
		fmt.Fprintf(bp.out, "%q at %s line %d\n", e.msg, filepath.Base(e.file), e.line)
	}
}

//
// A couple of handy 'assert' functions
//

func basicAssert(chk bool, msg string) {

	if !chk {
		fatalError(msg)
	}
}

func (bp *interp) runtimeCheck(chk bool, kind error, f string, args ...any) {

	if !chk {
		bp.runtimeError(kind, f, args...)
	}
}

//
// Runtime errors carry the number of the line being executed, if
// there is one
//

func (bp *interp) runtimeError(kind error, f string, args ...any) {

	be := &basicError{kind: kind, msg: fmt.Sprintf(f, args...)}

	if bp.running && bp.r.cur.line != nil {
		be.lineNo = bp.r.cur.line.lineNo
	}

	panic(be)
}

//
// Errors raised by the interpreter itself.  We find filename and line
// number of our caller, and stuff those into the basicErrorInfo
// structure before calling panic
//

func fatalError(msg string) {

	_, file, line, ok := runtime.Caller(1)
	if !ok {
		crash("Unable to find caller frame!")
	}

	panic(&basicErrorInfo{strings.TrimRight(msg, "\n"), file, line})
}
