package main

import (
	"math"
	"strconv"
	"strings"
)

type bifInfo struct {
	minArgs int
	maxArgs int
}

//
// Built-in functions.  A name ending in '$' returns a String
//

var builtins = map[string]bifInfo{
	"ABS":    {1, 1},
	"ASC":    {1, 1},
	"CHR$":   {1, 1},
	"INT":    {1, 1},
	"LEFT$":  {2, 2},
	"LEN":    {1, 1},
	"RIGHT$": {2, 2},
	"RND":    {1, 1},
	"SGN":    {1, 1},
	"SQR":    {1, 1},
	"STR$":   {1, 1},
	"VAL":    {1, 1},
}

//
// Evaluate an expression tree against the current variable and array
// store.  The result is either a float64 or a string
//

func (bp *interp) evaluateExpr(node *exprNode) any {

	switch node.kind {
	default:
		fatalError("unexpected expression node kind")

	case exLiteral:
		return node.value

	case exVar:
		if len(node.operands) == 0 {
			return bp.lookupScalar(node.name, node.isStr)
		}
		return bp.fetchArrayVar(node.name, bp.evaluateSubs(node.operands))

	case exUnary:
		val := bp.evaluateNumericExpr(node.operands[0])
		if node.op == "-" {
			return -val
		}
		return val

	case exBinary:
		if relationalOps[node.op] {
			bp.runtimeError(errType, ERELATIONAL)
		}
		return bp.evaluateBinary(node)

	case exCall:
		args := make([]any, len(node.operands))
		for i, op := range node.operands {
			args[i] = bp.evaluateExpr(op)
		}
		return bp.callFunction(node.name, args)
	}

	panic(nil) // avoid compiler complaint
}

func (bp *interp) evaluateNumericExpr(node *exprNode) float64 {

	f, ok := bp.evaluateExpr(node).(float64)
	bp.runtimeCheck(ok, errType, ETYPEMISMATCH)

	return f
}

//
// Conditions are the only place a relational result is consumed.
// A non-relational Number condition is true when non-zero
//

func (bp *interp) evaluateBooleanExpr(node *exprNode) bool {

	if node.kind == exBinary && relationalOps[node.op] {
		lval := bp.evaluateExpr(node.operands[0])
		rval := bp.evaluateExpr(node.operands[1])
		return bp.compareValues(node.op, lval, rval)
	}

	return bp.evaluateNumericExpr(node) != 0
}

func (bp *interp) compareValues(op string, lval, rval any) bool {

	var cmp int

	switch l := lval.(type) {
	case float64:
		r, ok := rval.(float64)
		bp.runtimeCheck(ok, errType, ETYPEMISMATCH)
		if l < r {
			cmp = -1
		} else if l > r {
			cmp = 1
		}

	case string:
		r, ok := rval.(string)
		bp.runtimeCheck(ok, errType, ETYPEMISMATCH)
		cmp = strings.Compare(l, r)
	}

	switch op {
	case "=":
		return cmp == 0

	case "<>":
		return cmp != 0

	case "<":
		return cmp < 0

	case ">":
		return cmp > 0

	case "<=":
		return cmp <= 0

	case ">=":
		return cmp >= 0
	}

	fatalError("unexpected relational operator " + op)

	return false
}

func (bp *interp) evaluateBinary(node *exprNode) any {

	lval := bp.evaluateExpr(node.operands[0])
	rval := bp.evaluateExpr(node.operands[1])

	//
	// '+' on two strings concatenates; everything else is numeric only
	//

	if ls, ok := lval.(string); ok {
		rs, ok := rval.(string)
		bp.runtimeCheck(ok && node.op == "+", errType, ETYPEMISMATCH)
		return ls + rs
	}

	l, lok := lval.(float64)
	r, rok := rval.(float64)
	bp.runtimeCheck(lok && rok, errType, ETYPEMISMATCH)

	var res float64

	switch node.op {
	case "+":
		res = l + r

	case "-":
		res = l - r

	case "*":
		res = l * r

	case "/":
		bp.runtimeCheck(r != 0, errArithmetic, EDIVISIONBYZERO)
		res = l / r

	default:
		fatalError("unexpected binary operator " + node.op)
	}

	return bp.checkFloatingStatus(res)
}

//
// Overflow to Inf or NaN is an arithmetic fault rather than a value
//

func (bp *interp) checkFloatingStatus(val float64) float64 {

	bp.runtimeCheck(!math.IsNaN(val) && !math.IsInf(val, 0),
		errArithmetic, EFLOATINGERROR)

	return val
}

func (bp *interp) callFunction(name string, args []any) any {

	numArg := func(i int) float64 {
		f, ok := args[i].(float64)
		bp.runtimeCheck(ok, errType, ETYPEMISMATCH)
		return f
	}

	strArg := func(i int) string {
		s, ok := args[i].(string)
		bp.runtimeCheck(ok, errType, ETYPEMISMATCH)
		return s
	}

	switch name {
	case "ABS":
		return math.Abs(numArg(0))

	case "ASC":
		s := strArg(0)
		bp.runtimeCheck(len(s) > 0, errArithmetic, "ASC of empty string")
		return float64(s[0])

	case "CHR$":
		code := numArg(0)
		bp.runtimeCheck(code >= 0 && code <= 255, errArithmetic,
			"Illegal argument to CHR$")
		return string([]byte{byte(code)})

	case "INT":
		return math.Trunc(numArg(0))

	case "LEFT$":
		s := strArg(0)
		return s[:clampIndex(numArg(1), len(s))]

	case "LEN":
		return float64(len(strArg(0)))

	case "RIGHT$":
		s := strArg(0)
		return s[len(s)-clampIndex(numArg(1), len(s)):]

	case "RND":
		_ = numArg(0)
		return bp.rng.Float64()

	case "SGN":
		return computeSgn(numArg(0))

	case "SQR":
		f := numArg(0)
		bp.runtimeCheck(f >= 0, errArithmetic, ESQRERROR)
		return math.Sqrt(f)

	case "STR$":
		return basicFormat(numArg(0))

	case "VAL":
		f, err := strconv.ParseFloat(strings.TrimSpace(strArg(0)), 64)
		bp.runtimeCheck(err == nil, errType, EILLEGALNUMBER)
		return f
	}

	fatalError("unknown function " + name)

	return nil
}

func computeSgn(f float64) float64 {

	if f < 0 {
		return -1.0
	} else if f > 0 {
		return 1.0
	} else {
		return 0
	}
}

func clampIndex(f float64, n int) int {

	i := int(math.Trunc(f))

	return max(0, min(i, n))
}
