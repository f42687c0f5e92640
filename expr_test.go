package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//
// Evaluate the expression of a one-item PRINT statement
//

func evalExpr(t *testing.T, bp *interp, src string) (any, error) {

	t.Helper()

	stmt := parseOne(t, "PRINT "+src)
	require.Len(t, stmt.items, 1, src)

	var val any

	err := catchBasicError(func() {
		val = bp.evaluateExpr(stmt.items[0].expr)
	})

	return val, err
}

func evalCond(t *testing.T, bp *interp, src string) (bool, error) {

	t.Helper()

	stmt := parseOne(t, "IF "+src+" THEN END")

	var val bool

	err := catchBasicError(func() {
		val = bp.evaluateBooleanExpr(stmt.operands[0])
	})

	return val, err
}

func TestEvaluateExpressions(t *testing.T) {

	bp, _ := newTestInterp("")

	tests := []struct {
		src  string
		want any
	}{
		{"2*3+1", 7.0},
		{"-(2+3)", -5.0},
		{"7/2", 3.5},
		{"10-4-3", 3.0},
		{`"A" + "B"`, "AB"},
		{"LEN(\"ABC\")", 3.0},
		{`LEFT$("HELLO", 2)`, "HE"},
		{`LEFT$("HI", 10)`, "HI"},
		{`RIGHT$("HELLO", 3)`, "LLO"},
		{`RIGHT$("HELLO", -1)`, ""},
		{"ABS(-2)", 2.0},
		{"SGN(-3)", -1.0},
		{"SGN(0)", 0.0},
		{"SQR(16)", 4.0},
		{`ASC("A")`, 65.0},
		{"CHR$(65)", "A"},
		{`VAL(" 3.5 ")`, 3.5},
		{"STR$(7)", "7"},
		{"STR$(0.5)", "0.5"},
		{"INT(-2.5)", -2.0},
		{"INT(2.9)", 2.0},
		{"Z", 0.0},
		{"Z$", ""},
	}

	for _, tt := range tests {
		val, err := evalExpr(t, bp, tt.src)
		require.NoError(t, err, tt.src)
		assert.Equal(t, tt.want, val, tt.src)
	}
}

func TestEvaluateVariables(t *testing.T) {

	bp, _ := newTestInterp("")

	bp.storeScalar("A", 2.0)
	bp.storeScalar("S$", "XY")

	val, err := evalExpr(t, bp, "A*A")
	require.NoError(t, err)
	assert.Equal(t, 4.0, val)

	val, err = evalExpr(t, bp, `S$ + "Z"`)
	require.NoError(t, err)
	assert.Equal(t, "XYZ", val)
}

func TestRndRange(t *testing.T) {

	bp, _ := newTestInterp("")

	for i := 0; i < 100; i++ {
		val, err := evalExpr(t, bp, "RND(1)")
		require.NoError(t, err)

		f := val.(float64)
		assert.GreaterOrEqual(t, f, 0.0)
		assert.Less(t, f, 1.0)
	}
}

func TestRndSeeded(t *testing.T) {

	bp1, _ := newTestInterp("")
	bp2, _ := newTestInterp("")

	v1, err := evalExpr(t, bp1, "RND(1)")
	require.NoError(t, err)

	v2, err := evalExpr(t, bp2, "RND(1)")
	require.NoError(t, err)

	assert.Equal(t, v1, v2)
}

func TestEvaluateErrors(t *testing.T) {

	bp, _ := newTestInterp("")

	tests := []struct {
		src  string
		kind error
		msg  string
	}{
		{"1/0", errArithmetic, EDIVISIONBYZERO},
		{"SQR(-1)", errArithmetic, ESQRERROR},
		{"1E308*10", errArithmetic, EFLOATINGERROR},
		{`ASC("")`, errArithmetic, "ASC of empty string"},
		{"CHR$(300)", errArithmetic, "Illegal argument to CHR$"},
		{`"A"*2`, errType, ETYPEMISMATCH},
		{`1+"A"`, errType, ETYPEMISMATCH},
		{`"A"-"B"`, errType, ETYPEMISMATCH},
		{`-"A"`, errType, ETYPEMISMATCH},
		{"LEN(5)", errType, ETYPEMISMATCH},
		{`VAL("X")`, errType, EILLEGALNUMBER},
		{"1<2", errType, ERELATIONAL},
	}

	for _, tt := range tests {
		_, err := evalExpr(t, bp, tt.src)
		require.Error(t, err, tt.src)
		assert.ErrorIs(t, err, tt.kind, tt.src)
		assert.Equal(t, tt.kind.Error()+": "+tt.msg, err.Error(), tt.src)
	}
}

func TestEvaluateConditions(t *testing.T) {

	bp, _ := newTestInterp("")

	tests := []struct {
		src  string
		want bool
	}{
		{"1 < 2", true},
		{"2 <= 2", true},
		{"3 >= 4", false},
		{"1 <> 1", false},
		{`"A" < "B"`, true},
		{`"ABC" = "ABC"`, true},
		{`"B" > "AZ"`, true},
		{"0", false},
		{"2-2", false},
		{"0.5", true},
	}

	for _, tt := range tests {
		val, err := evalCond(t, bp, tt.src)
		require.NoError(t, err, tt.src)
		assert.Equal(t, tt.want, val, tt.src)
	}

	_, err := evalCond(t, bp, `"A" = 1`)
	assert.ErrorIs(t, err, errType)

	_, err = evalCond(t, bp, `"A"`)
	assert.ErrorIs(t, err, errType)
}
