package main

import (
	"bytes"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicFormat(t *testing.T) {

	tests := []struct {
		in   float64
		want string
	}{
		{2, "2"},
		{-1, "-1"},
		{0.4, "0.4"},
		{100, "100"},
		{1e20, "1e+20"},
		{1.0 / 3, "0.333333333333"},
		{123456789012, "123456789012"},
		{1234567890123, "1.23456789012e+12"},
		{math.Copysign(0, -1), "0"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, basicFormat(tt.in))
	}
}

func TestColorizeString(t *testing.T) {

	red := colorRedSeq

	assert.Equal(t, "A"+red+"BC"+colorResetSeq+"DE", colorizeString("ABCDE", 2, 3, red))
	assert.Equal(t, "A"+red+"B"+colorResetSeq, colorizeString("AB", 2, 9, red))
	assert.Equal(t, "ABC", colorizeString("ABC", 0, 0, red))
	assert.Equal(t, "ABC", colorizeString("ABC", 5, 6, red))
}

func TestReplaceSubstring(t *testing.T) {

	assert.Equal(t, "hXYlo", replaceSubstring("hello", 1, 3, "XY"))
	assert.Equal(t, "heXYllo", replaceSubstring("hello", 2, 2, "XY"))
}

func TestPluralize(t *testing.T) {

	assert.Equal(t, "statements", pluralize("statement", 0))
	assert.Equal(t, "statement", pluralize("statement", 1))
	assert.Equal(t, "statements", pluralize("statement", 2))
}

func TestSwitchSetting(t *testing.T) {

	assert.Equal(t, "ON", switchSetting(true))
	assert.Equal(t, "OFF", switchSetting(false))
}

func TestPlainSource(t *testing.T) {

	var echo bytes.Buffer

	ps := newPlainSource(strings.NewReader("one\r\ntwo\nthree"), &echo)

	for _, want := range []string{"one", "two", "three"} {
		s, err := ps.readCommand("> ")
		require.NoError(t, err)
		assert.Equal(t, want, s)
	}

	_, err := ps.readInput("? ")
	assert.ErrorIs(t, err, io.EOF)

	assert.Equal(t, "> > > ? ", echo.String())
	assert.NoError(t, ps.close())
}

func TestBasicPrintZones(t *testing.T) {

	bp, out := newTestInterp("")

	bp.basicPrint("AB", true)
	assert.Equal(t, "AB"+strings.Repeat(" ", 12), out.String())
	assert.Equal(t, printState{outputZone: 1}, bp.p)

	out.Reset()

	//
	// An item wider than a zone spills into the next one
	//

	bp.basicPrint(strings.Repeat("X", 20), true)
	assert.Equal(t, strings.Repeat("X", 20)+strings.Repeat(" ", 8), out.String())
	assert.Equal(t, 3, bp.p.outputZone)
}

func TestBasicPrintWraps(t *testing.T) {

	bp, out := newTestInterp("")

	for i := 0; i < bp.numOutputZones; i++ {
		bp.basicPrint("", true)
	}

	assert.Equal(t, strings.Repeat(" ", zoneWidth*bp.numOutputZones)+"\n", out.String())
	assert.Equal(t, printState{}, bp.p)
}

func TestResetPrint(t *testing.T) {

	bp, out := newTestInterp("")

	bp.resetPrint(false)
	assert.Equal(t, "", out.String())

	bp.resetPrint(true)
	assert.Equal(t, "\n", out.String())

	bp.basicPrint("X", false)
	bp.println("Y")
	assert.Equal(t, "\nX\nY\n", out.String())
}

func TestSetupWindowNotATerminal(t *testing.T) {

	bp, _ := newTestInterp("")

	bp.numOutputZones = 0
	bp.setupWindow(-1)

	assert.Equal(t, defaultColumns/zoneWidth, bp.numOutputZones)
}
