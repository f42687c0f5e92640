package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dimDecl(t *testing.T, src string) *exprNode {

	t.Helper()

	stmt := parseOne(t, src)
	require.Equal(t, DIM, stmt.token)

	return stmt.operands[0]
}

func TestDimAllocatesCells(t *testing.T) {

	bp, _ := newTestInterp("")

	require.NoError(t, catchBasicError(func() {
		bp.processDim(dimDecl(t, "DIM A(2,3)"))
	}))

	sym := bp.r.arrays[arrayKey{name: "A", rank: 2}]
	require.NotNil(t, sym)

	assert.Equal(t, []int{2, 3}, sym.dims)
	assert.Len(t, sym.cells, 12)

	for _, c := range sym.cells {
		assert.Equal(t, 0.0, c)
	}

	assert.Equal(t, 6, bp.computeOffset(sym, []int{1, 2}))
	assert.Equal(t, 11, bp.computeOffset(sym, []int{2, 3}))
}

func TestStringArrayDefaults(t *testing.T) {

	bp, _ := newTestInterp("")

	bp.processDim(dimDecl(t, "DIM B$(3)"))

	assert.Equal(t, "", bp.fetchArrayVar("B$", []int{3}))
}

func TestArrayStoreAndFetch(t *testing.T) {

	bp, _ := newTestInterp("")

	bp.processDim(dimDecl(t, "DIM A(2,3)"))

	bp.storeArrayVar("A", []int{1, 2}, 5.0)

	assert.Equal(t, 5.0, bp.fetchArrayVar("A", []int{1, 2}))
	assert.Equal(t, 5.0, bp.r.arrays[arrayKey{name: "A", rank: 2}].cells[6])
	assert.Equal(t, 0.0, bp.fetchArrayVar("A", []int{2, 1}))
}

func TestScalarsAndArraysAreSeparate(t *testing.T) {

	bp, _ := newTestInterp("")

	bp.processDim(dimDecl(t, "DIM A(2)"))
	bp.processDim(dimDecl(t, "DIM A(2,2)"))

	bp.storeScalar("A", 1.0)
	bp.storeArrayVar("A", []int{1}, 2.0)
	bp.storeArrayVar("A", []int{1, 1}, 3.0)

	assert.Equal(t, 1.0, bp.lookupScalar("A", false))
	assert.Equal(t, 2.0, bp.fetchArrayVar("A", []int{1}))
	assert.Equal(t, 3.0, bp.fetchArrayVar("A", []int{1, 1}))
}

func TestDimErrors(t *testing.T) {

	bp, _ := newTestInterp("")

	bp.processDim(dimDecl(t, "DIM A(2)"))

	err := catchBasicError(func() {
		bp.processDim(dimDecl(t, "DIM A(5)"))
	})
	assert.ErrorIs(t, err, errDim)
	assert.Contains(t, err.Error(), EDUPLICATEDIM)

	err = catchBasicError(func() {
		bp.processDim(dimDecl(t, "DIM C(5000,5000)"))
	})
	assert.ErrorIs(t, err, errDim)
	assert.Contains(t, err.Error(), EMATRIXTOOLARGE)

	err = catchBasicError(func() {
		bp.processDim(dimDecl(t, "DIM D(-1)"))
	})
	assert.ErrorIs(t, err, errBounds)
}

func TestArrayAccessErrors(t *testing.T) {

	bp, _ := newTestInterp("")

	bp.processDim(dimDecl(t, "DIM A(2,3)"))

	err := catchBasicError(func() {
		bp.fetchArrayVar("A", []int{3, 0})
	})
	assert.ErrorIs(t, err, errBounds)

	err = catchBasicError(func() {
		bp.fetchArrayVar("A", []int{1})
	})
	assert.ErrorIs(t, err, errDim)
	assert.Equal(t, "DIM ERROR: Array A(1) not dimensioned", err.Error())

	err = catchBasicError(func() {
		bp.storeArrayVar("Q", []int{0}, 1.0)
	})
	assert.ErrorIs(t, err, errDim)
}

func TestScalarDefaults(t *testing.T) {

	bp, _ := newTestInterp("")

	assert.Equal(t, 0.0, bp.lookupScalar("X", false))
	assert.Equal(t, "", bp.lookupScalar("X$", true))
}

func TestAssignVarTypeCheck(t *testing.T) {

	bp, _ := newTestInterp("")

	ref := &exprNode{kind: exVar, name: "N"}
	sref := &exprNode{kind: exVar, name: "N$", isStr: true}

	err := catchBasicError(func() {
		bp.assignVar(ref, "X")
	})
	assert.ErrorIs(t, err, errType)

	err = catchBasicError(func() {
		bp.assignVar(sref, 1.0)
	})
	assert.ErrorIs(t, err, errType)

	require.NoError(t, catchBasicError(func() {
		bp.assignVar(ref, 3.0)
		bp.assignVar(sref, "OK")
	}))

	assert.Equal(t, 3.0, bp.lookupScalar("N", false))
	assert.Equal(t, "OK", bp.lookupScalar("N$", true))
}

func TestInitializeRunClearsVariables(t *testing.T) {

	bp, _ := newTestInterp("")

	bp.storeScalar("A", 1.0)
	bp.processDim(dimDecl(t, "DIM B(1)"))

	bp.initializeRun()

	assert.Equal(t, 0.0, bp.lookupScalar("A", false))
	assert.Empty(t, bp.r.arrays)
}
