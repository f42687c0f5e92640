package main

import (
	"fmt"
	"math"
	"strings"
)

// Scalars and arrays live in separate maps, so A and A(1) are
// different variables.  An array is further keyed by its number of
// dimensions, so A(1) and A(1,1) do not collide either.  The '$'
// suffix is part of every name
//

//
// Initialize the symbol table to pristine state
//

func (bp *interp) initSymbolTable() {

	bp.r.scalars = make(map[string]any)
	bp.r.arrays = make(map[arrayKey]*symtabNode)
}

func defaultValue(isStr bool) any {

	if isStr {
		return ""
	}

	return float64(0)
}

//
// Scalars spring into existence with a zero value on first use
//

func (bp *interp) lookupScalar(name string, isStr bool) any {

	if val, ok := bp.r.scalars[name]; ok {
		return val
	}

	return defaultValue(isStr)
}

func (bp *interp) storeScalar(name string, val any) {

	oval := bp.lookupScalar(name, strings.HasSuffix(name, "$"))

	bp.traceVar(name, nil, oval, val)

	bp.r.scalars[name] = val
}

//
// Assign a value to the variable or array cell named by ref.  The
// value's type must agree with the target's '$' suffix
//

func (bp *interp) assignVar(ref *exprNode, val any) {

	_, isStr := val.(string)
	bp.runtimeCheck(isStr == ref.isStr, errType, ETYPEMISMATCH)

	if len(ref.operands) == 0 {
		bp.storeScalar(ref.name, val)
		return
	}

	bp.storeArrayVar(ref.name, bp.evaluateSubs(ref.operands), val)
}

//
// Subscripts (and DIM sizes) are truncated to integers.  Anything
// negative can never be in range
//

func (bp *interp) evaluateSubs(ops []*exprNode) []int {

	subs := make([]int, len(ops))

	for i, op := range ops {
		f := math.Trunc(bp.evaluateNumericExpr(op))
		bp.runtimeCheck(f >= 0 && f <= maxArrayCells, errBounds, ESUBSCRIPTERROR)
		subs[i] = int(f)
	}

	return subs
}

//
// Execute one DIM declaration.  A size of N yields cells 0..N in that
// dimension.  Bounds are fixed for the rest of the run
//

func (bp *interp) processDim(decl *exprNode) {

	key := arrayKey{name: decl.name, rank: len(decl.operands)}

	bp.runtimeCheck(bp.r.arrays[key] == nil, errDim, EDUPLICATEDIM)

	dims := bp.evaluateSubs(decl.operands)

	total := 1
	for _, d := range dims {
		total *= d + 1
		bp.runtimeCheck(total <= maxArrayCells, errDim, EMATRIXTOOLARGE)
	}

	sym := &symtabNode{name: decl.name, isStr: decl.isStr, dims: dims}

	sym.cells = make([]any, total)
	for i := range sym.cells {
		sym.cells[i] = defaultValue(decl.isStr)
	}

	bp.r.arrays[key] = sym
}

func (bp *interp) lookupArray(name string, rank int) *symtabNode {

	sym := bp.r.arrays[arrayKey{name: name, rank: rank}]
	if sym == nil {
		bp.runtimeError(errDim, EUNDIMENSIONED, name, rank)
	}

	return sym
}

//
// Row-major linear offset of a cell
//

func (bp *interp) computeOffset(sym *symtabNode, subs []int) int {

	offset := 0

	for i, sub := range subs {
		bp.runtimeCheck(sub <= sym.dims[i], errBounds, ESUBSCRIPTERROR)
		offset = offset*(sym.dims[i]+1) + sub
	}

	return offset
}

func (bp *interp) fetchArrayVar(name string, subs []int) any {

	sym := bp.lookupArray(name, len(subs))

	return sym.cells[bp.computeOffset(sym, subs)]
}

func (bp *interp) storeArrayVar(name string, subs []int, val any) {

	sym := bp.lookupArray(name, len(subs))
	offset := bp.computeOffset(sym, subs)

	bp.traceVar(name, subs, sym.cells[offset], val)

	sym.cells[offset] = val
}

func (bp *interp) traceVar(name string, subs []int, oval, nval any) {

	if !bp.traceVars && !bp.tracedVarsMap[name] {
		return
	}

	fmtStr := " changed from "

	bp.resetPrint(false)

	fmt.Fprintf(bp.out, "Variable %s", name)

	if len(subs) != 0 {
		strs := make([]string, len(subs))
		for i, sub := range subs {
			strs[i] = fmt.Sprint(sub)
		}
		fmt.Fprintf(bp.out, "(%s)", strings.Join(strs, ","))
	}

	if strings.HasSuffix(name, "$") {
		fmtStr += "%q to %q"
	} else {
		fmtStr += "%s to %s"
		oval = basicFormat(oval.(float64))
		nval = basicFormat(nval.(float64))
	}

	fmt.Fprintf(bp.out, fmtStr, oval, nval)
	fmt.Fprintln(bp.out)
}
