package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

func (bp *interp) executeBye() {

	bp.exiting = true
}

//
// Erase the current program
//

func (bp *interp) executeNew() {

	bp.prog.clear()

	bp.initializeRun()
}

//
// Reinitialize the non-persistent state of a program
//

func (bp *interp) initializeRun() {

	bp.r = run{}

	bp.initSymbolTable()
}

func (bp *interp) executeRun() {

	if bp.prog.firstLine() == nil {
		bp.println("No program loaded")
		return
	}

	bp.initializeRun()

	bp.resetStatistics()

	bp.initClock()

	bp.r.cur = cursor{line: bp.prog.firstLine()}

	bp.running = true

	defer func() {
		bp.running = false
	}()

	bp.executeRunInternal()

	bp.printStatistics()
}

//
// executeStmt returns the cursor to transfer to, or nil to advance
// to the next sequential statement.  We stop when a statement halts
// the program or when we run off the end of the last line
//

func (bp *interp) executeRunInternal() {

	for bp.r.cur.line != nil && !bp.r.halted {
		basicAssert(bp.r.cur.idx < len(bp.r.cur.line.stmts), "Cursor past end of line")

		stmt := bp.r.cur.line.stmts[bp.r.cur.idx]

		if bp.traceExec {
			bp.resetPrint(false)
			fmt.Fprintf(bp.out, "[%d]\n", bp.r.cur.line.lineNo)
		}

		if next := bp.executeStmt(stmt); next != nil {
			bp.r.cur = *next
		} else {
			bp.r.cur = bp.computeNextStmt(bp.r.cur)
		}
	}
}

//
// This function takes a cursor and determines the next statement to
// execute.  If there is another statement on the same line, we use
// that, otherwise, we look up the next numbered line in the program
// tree.  A cursor with a nil line means the program is finished
//

func (bp *interp) computeNextStmt(cur cursor) cursor {

	if cur.idx+1 < len(cur.line.stmts) {
		return cursor{line: cur.line, idx: cur.idx + 1}
	}

	return cursor{line: bp.prog.nextLine(cur.line)}
}

func (bp *interp) executeStmt(stmt *stmtNode) *cursor {

	bp.s.numStatements++

	switch stmt.token {
	default:
		fatalError(fmt.Sprintf("Unexpected statement token %d", stmt.token))

	case LET:
		bp.assignVar(stmt.operands[0], bp.evaluateExpr(stmt.operands[1]))

	case PRINT:
		bp.executePrint(stmt)

	case IF:
		return bp.executeIf(stmt)

	case FOR:
		return bp.executeFor(stmt)

	case NEXT:
		return bp.executeNext(stmt)

	case GOTO:
		return bp.executeGoto(stmt.operands[0], "GOTO")

	case GOSUB:
		return bp.executeGosub(stmt.operands[0])

	case RETURN:
		return bp.executeReturn()

	case DIM:
		for _, decl := range stmt.operands {
			bp.processDim(decl)
		}

	case INPUT:
		bp.executeInput(stmt)

	case REM:
		// NOP

	case LIST:
		bp.executeList(stmt)

	case END:
		bp.r.halted = true
	}

	return nil
}

//
// Execute a THEN or ELSE branch in place.  The first statement that
// transfers control (or halts) ends the branch
//

func (bp *interp) executeStmtList(stmts []*stmtNode) *cursor {

	for _, stmt := range stmts {
		if next := bp.executeStmt(stmt); next != nil || bp.r.halted {
			return next
		}
	}

	return nil
}

func (bp *interp) executeIf(curStmt *stmtNode) *cursor {

	if bp.evaluateBooleanExpr(curStmt.operands[0]) {
		return bp.executeStmtList(curStmt.thenList)
	}

	return bp.executeStmtList(curStmt.elseList)
}

func (bp *interp) executeGoto(target *exprNode, verb string) *cursor {

	lineNo := bp.evaluateNumericExpr(target)

	var pl *programLine

	if lineNo == math.Trunc(lineNo) && lineNo > 0 && lineNo <= maxLineNumber {
		pl = bp.prog.lookupLine(int(lineNo))
	}

	if pl == nil {
		bp.runtimeError(errUndefinedLine, EUNDEFINEDLINE, verb, int64(lineNo))
	}

	return &cursor{line: pl}
}

func (bp *interp) executeGosub(target *exprNode) *cursor {

	bp.runtimeCheck(len(bp.r.gosubStack) < gosubStackMax, errControlFlow,
		EGOSUBOVERFLOW)

	next := bp.executeGoto(target, "GOSUB")

	bp.r.gosubStack = append(bp.r.gosubStack, bp.computeNextStmt(bp.r.cur))

	return next
}

func (bp *interp) executeReturn() *cursor {

	n := len(bp.r.gosubStack)

	bp.runtimeCheck(n > 0, errControlFlow, ERETURNWITHOUT)

	ret := bp.r.gosubStack[n-1]
	bp.r.gosubStack = bp.r.gosubStack[:n-1]

	return &ret
}

//
// Hitting a FOR always starts a brand-new loop.  If the loop variable
// is already on the FOR stack (the old loop was left via GOTO), that
// entry and everything above it is discarded first
//

func (bp *interp) executeFor(curStmt *stmtNode) *cursor {

	loopVar := curStmt.operands[0]

	bp.runtimeCheck(!loopVar.isStr, errType, ETYPEMISMATCH)

	from := bp.evaluateNumericExpr(curStmt.operands[1])
	limit := bp.evaluateNumericExpr(curStmt.operands[2])
	step := 1.0

	if len(curStmt.operands) == 4 {
		step = bp.evaluateNumericExpr(curStmt.operands[3])
		bp.runtimeCheck(step != 0, errControlFlow, EZEROSTEP)
	}

	if fsIdx := bp.findForStackEntryVar(loopVar.name); fsIdx >= 0 {
		bp.popForStackEntry(fsIdx)
	}

	bp.runtimeCheck(len(bp.r.forStack) < forStackMax, errControlFlow,
		EFORSTACKOVERFLOW)

	past, ok := bp.findNext(curStmt)

	bp.runtimeCheck(ok, errControlFlow, ENOMATCHINGNEXT)

	bp.storeScalar(loopVar.name, from)

	//
	// A loop that can never satisfy its bound runs zero times
	//

	if checkLoopTermination(from, limit, step) {
		return &past
	}

	bp.r.forStack = append(bp.r.forStack, &forStackNode{varName: loopVar.name,
		limit: limit, step: step, resume: bp.computeNextStmt(bp.r.cur)})

	return nil
}

func (bp *interp) executeNext(curStmt *stmtNode) *cursor {

	var fsIdx int

	if len(curStmt.operands) == 0 {
		fsIdx = len(bp.r.forStack) - 1
	} else {
		fsIdx = bp.findForStackEntryVar(curStmt.operands[0].name)
	}

	bp.runtimeCheck(fsIdx >= 0, errControlFlow, ENEXTWITHOUTFOR)

	fsp := bp.r.forStack[fsIdx]

	//
	// Any inner loops that were not closed are abandoned
	//

	bp.r.forStack = bp.r.forStack[:fsIdx+1]

	val := bp.lookupScalar(fsp.varName, false).(float64)
	val = bp.checkFloatingStatus(val + fsp.step)

	bp.storeScalar(fsp.varName, val)

	if checkLoopTermination(val, fsp.limit, fsp.step) {
		bp.popForStackEntry(fsIdx)
		return nil
	}

	resume := fsp.resume

	return &resume
}

//
// This function returns a boolean indicating whether the loop should
// terminate.  NB: the step can't be zero here (this is rejected much
// earlier in the process)
//

func checkLoopTermination(val, limit, step float64) bool {

	if step > 0 {
		return val > limit
	}

	return val < limit
}

//
// Given a variable, search the FOR stack for a matching entry,
// innermost first.  If we don't find one, return -1
//

func (bp *interp) findForStackEntryVar(loopVar string) int {

	for i := len(bp.r.forStack) - 1; i >= 0; i-- {
		if bp.r.forStack[i].varName == loopVar {
			return i
		}
	}

	return -1
}

//
// This function pops an entry off of the FOR stack.  If there are
// any subsidiary FOR entries, those will be popped as well
//

func (bp *interp) popForStackEntry(fsIdx int) {

	bp.r.forStack = bp.r.forStack[:fsIdx]
}

//
// Given a FOR statement, search forward in the program for the
// matching NEXT and return the cursor just past the top-level
// statement holding it.  Complication: the NEXT may be nested inside
// an IF branch, and a bare NEXT closes whichever loop is innermost,
// so we track FOR/NEXT nesting as we go
//

func (bp *interp) findNext(forStmt *stmtNode) (cursor, bool) {

	var seen, found bool

	depth := 0
	forLoopVar := forStmt.operands[0].name

	var visit func(stmts []*stmtNode)

	visit = func(stmts []*stmtNode) {
		for _, stmt := range stmts {
			if found {
				return
			}

			if !seen {
				seen = stmt == forStmt
			} else {
				switch stmt.token {
				case FOR:
					depth++

				case NEXT:
					named := len(stmt.operands) != 0
					if (named && stmt.operands[0].name == forLoopVar) ||
						(!named && depth == 0) {
						found = true
						return
					}
					if depth > 0 {
						depth--
					}
				}
			}

			visit(stmt.thenList)
			visit(stmt.elseList)
		}
	}

	for cur := bp.r.cur; cur.line != nil; cur = bp.computeNextStmt(cur) {
		visit(cur.line.stmts[cur.idx : cur.idx+1])
		if found {
			return bp.computeNextStmt(cur), true
		}
	}

	return cursor{}, false
}

func (bp *interp) executePrint(curStmt *stmtNode) {

	printNL := true

	for _, item := range curStmt.items {
		if item.expr != nil {
			switch res := bp.evaluateExpr(item.expr).(type) {
			case float64:
				bp.basicPrint(basicFormat(res), false)

			case string:
				bp.basicPrint(res, false)
			}
		}

		printNL = item.sep == sepNone

		if item.sep == sepComma {
			bp.basicPrint("", true)
		}
	}

	if printNL {
		bp.resetPrint(true)
	}
}

//
// INPUT reads one line and splits it on commas, one field per
// variable.  If the line runs short, we prompt for more
//

func (bp *interp) executeInput(curStmt *stmtNode) {

	var fields []string

	prompt := curStmt.prompt + bp.cfg.InputPrompt

	for _, ref := range curStmt.operands {
		for len(fields) == 0 {
			fields = strings.Split(bp.readInputLine(prompt), ",")
			prompt = "?" + bp.cfg.InputPrompt
		}

		inputToken := strings.TrimSpace(fields[0])
		fields = fields[1:]

		if ref.isStr {
			bp.assignVar(ref, inputToken)
		} else {
			bp.assignVar(ref, bp.convertFloat(inputToken))
		}
	}
}

func (bp *interp) readInputLine(prompt string) string {

	s, err := bp.src.readInput(prompt)
	if err != nil {
		if isAbort(err) {
			bp.runtimeError(errInput, EINPUTABORTED)
		}
		bp.runtimeError(errInput, EENDOFFILE)
	}

	//
	// The user's newline moved the cursor back to column 0
	//

	bp.p = printState{}

	return strings.TrimRight(s, "\r\n")
}

//
// Convert an INPUT field to a Number.  If the conversion is
// unsuccessful, signal an error and abort to command level
//

func (bp *interp) convertFloat(s string) float64 {

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if err.(*strconv.NumError).Err == strconv.ErrRange {
			bp.runtimeError(errArithmetic, EFLOATINGERROR)
		}
		bp.runtimeError(errInput, EILLEGALNUMBER)
	}

	return f
}

//
// LIST [first[-last]].  Lines come out exactly as they were typed
//

func (bp *interp) executeList(curStmt *stmtNode) {

	first, last := 0, maxLineNumber

	if len(curStmt.operands) == 2 {
		first = int(bp.evaluateNumericExpr(curStmt.operands[0]))
		last = int(bp.evaluateNumericExpr(curStmt.operands[1]))
	}

	bp.resetPrint(false)

	for pl := bp.prog.firstLine(); pl != nil; pl = bp.prog.nextLine(pl) {
		if pl.lineNo < first {
			continue
		} else if pl.lineNo > last {
			break
		}

		fmt.Fprintln(bp.out, pl.raw)
	}
}
