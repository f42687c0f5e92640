package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/danswartzendruber/liner"
	"golang.org/x/term"
)

// We create two Liner instances.  One for commands, and one for
// any INPUT statements.  We do this because we want a scrollback
// history for commands, but not for user input.  We need to create
// and destroy them in LIFO order, as the Close method is documented
// as 'restoring the terminal to its previous state'.  This means that
// if we create the command instance, and then the 'input' instance, the
// terminal state will go normal => raw => raw.  If we then Close them
// in reverse order, we will see raw => raw => normal
//

type linerSource struct {
	cmdLiner    *liner.State
	inputLiner  *liner.State
	historyFile string
}

func newLinerSource(historyFile string) *linerSource {

	ls := &linerSource{historyFile: historyFile}

	ls.cmdLiner = setupLiner(false)
	ls.inputLiner = setupLiner(true)

	if historyFile != "" {
		if f, err := os.Open(historyFile); err == nil {
			_, _ = ls.cmdLiner.ReadHistory(f)
			f.Close()
		}
	}

	return ls
}

func setupLiner(allowCtrlC bool) *liner.State {

	l := liner.NewLiner()

	l.SetCtrlCAborts(allowCtrlC)

	l.SetMultiLineMode(allowCtrlC)

	return l
}

//
// Annoyingly, a non-nil error here can be totally okay.  ^C at the
// command prompt just abandons the line; ^D (EOF) ends the session
//

func (ls *linerSource) readCommand(prompt string) (string, error) {

	s, err := ls.cmdLiner.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", nil
	} else if err != nil {
		return "", err
	}

	if strings.TrimSpace(s) != "" {
		ls.cmdLiner.AppendHistory(s)
	}

	return s, nil
}

func (ls *linerSource) readInput(prompt string) (string, error) {

	return ls.inputLiner.Prompt(prompt)
}

//
// Restore terminal state, saving the command history on the way out
//

func (ls *linerSource) close() error {

	var err error

	if ls.historyFile != "" {
		var f *os.File

		if f, err = os.Create(ls.historyFile); err == nil {
			_, err = ls.cmdLiner.WriteHistory(f)
			f.Close()
		}
	}

	cleanupLiner(&ls.inputLiner)
	cleanupLiner(&ls.cmdLiner)

	return err
}

func cleanupLiner(linerState **liner.State) {

	if *linerState != nil {
		(*linerState).Close()
		*linerState = nil
	}
}

func isAbort(err error) bool {

	return errors.Is(err, liner.ErrPromptAborted)
}

//
// Line source for anything that is not a terminal (pipes, program
// files, tests).  Prompts are echoed only if a prompt writer is given
//

type plainSource struct {
	reader *bufio.Reader
	echo   io.Writer
}

func newPlainSource(r io.Reader, echo io.Writer) *plainSource {

	return &plainSource{reader: bufio.NewReader(r), echo: echo}
}

func (ps *plainSource) readLine(prompt string) (string, error) {

	if ps.echo != nil {
		fmt.Fprint(ps.echo, prompt)
	}

	s, err := ps.reader.ReadString('\n')
	if err == io.EOF && s != "" {
		err = nil
	}

	return strings.TrimRight(s, "\r\n"), err
}

func (ps *plainSource) readCommand(prompt string) (string, error) {

	return ps.readLine(prompt)
}

func (ps *plainSource) readInput(prompt string) (string, error) {

	return ps.readLine(prompt)
}

func (ps *plainSource) close() error {

	return nil
}

func (bp *interp) println(l ...any) {

	bp.resetPrint(false)

	fmt.Fprintln(bp.out, l...)
}

func (bp *interp) printf(f string, args ...any) {

	bp.resetPrint(false)

	fmt.Fprintf(bp.out, f, args...)
}

func (bp *interp) resetPrint(forceNL bool) {

	printNL := forceNL

	if bp.p.cursorPos != 0 || bp.p.outputZone != 0 {
		printNL = true
		bp.p.outputZone = 0
		bp.p.cursorPos = 0
	}

	if printNL {
		fmt.Fprintln(bp.out)
	}
}

//
// Write one PRINT item.  With checkZone set we pad out to the start
// of the next print zone, wrapping once the line is full
//

func (bp *interp) basicPrint(msg string, checkZone bool) {

	fmt.Fprint(bp.out, msg)

	bp.p.cursorPos += len(msg)

	if !checkZone {
		return
	}

	zw := bp.cfg.ZoneWidth

	resid := zw - bp.p.cursorPos

	for resid < 0 {
		bp.p.outputZone++
		resid += zw
	}

	if resid > 0 {
		fmt.Fprint(bp.out, strings.Repeat(" ", resid))
	}

	bp.p.outputZone++
	bp.p.cursorPos = 0

	if bp.p.outputZone >= bp.numOutputZones {
		bp.resetPrint(false)
	}
}

//
// basicFormat formats a Number for PRINT.  Twelve significant digits,
// and the 'g' verb already drops trailing zeros, so we never return
// something like '123.45600000'.  No padding either side
//

func basicFormat(f float64) string {

	if f == 0 {
		f = 0 // no '-0'
	}

	return strconv.FormatFloat(f, 'g', 12, 64)
}

//
// This routine implements replacement of a substring.  The replaced
// substring can be empty (e.g. sloc and eloc are equal), in which
// case we're basically inserting the replacement string at that
// location
//

func replaceSubstring(src string, sloc, eloc int, rep string) string {

	return src[0:sloc] + rep + src[eloc:]
}

//
// Return a copy of the input string with columns col..end (1-based,
// inclusive) wrapped in the escape sequence
//

func colorizeString(str string, col, end int, esc string) string {

	s := max(0, col-1)
	e := min(len(str), end)

	if s >= e {
		return str
	}

	return replaceSubstring(str, s, e, esc+str[s:e]+colorResetSeq)
}

func pluralize(str string, num int64) string {

	//
	// Oddity: 0 is considered plural
	//

	if num != 1 {
		return str + "s"
	}

	return str
}

func switchSetting(b bool) string {

	if b {
		return "ON"
	} else {
		return "OFF"
	}
}

//
// Read terminal geometry and set output zones.  Anything that is not
// a terminal gets the classic 80 columns
//

func (bp *interp) setupWindow(fd int) {

	cols := defaultColumns

	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w >= bp.cfg.ZoneWidth {
			cols = w
		}
	}

	bp.numOutputZones = max(1, cols/bp.cfg.ZoneWidth)
}

//
// Print a fatal message and abort the process.  We write to standard
// error, since the user may have redirected standard output
//

func crash(msg string) {

	if msg != "" {
		fmt.Fprintln(os.Stderr, msg)
	}

	os.Exit(1)
}
