package main

import (
	"io"
	"math/rand"
	"time"

	"github.com/danswartzendruber/avl"
)

//
// Constants
//

const forStackMax = 16
const gosubStackMax = 32

const maxLineLen = 255
const maxLineNumber = 65535

const maxArrayCells = 1 << 24

const myPrompt = "% "

const executePrompt = "? "

const zoneWidth = 14

const defaultColumns = 80

const colorRedSeq = "\033[31m"
const colorResetSeq = "\033[0m"

//
// Keyword tokens.  Statement nodes are tagged with the keyword that
// introduced them, so these double as statement types
//

const (
	LET = iota + 1
	PRINT
	IF
	THEN
	ELSE
	FOR
	TO
	STEP
	NEXT
	GOTO
	GOSUB
	RETURN
	DIM
	INPUT
	REM
	END
	LIST
)

//
// Lexical token classes
//

const (
	tokEOL = iota
	tokNumber
	tokString
	tokIdent
	tokOperator
	tokKeyword
	tokPunct
)

//
// Expression node kinds
//

const (
	exLiteral = iota
	exVar
	exBinary
	exUnary
	exCall
)

//
// PRINT item terminators
//

const (
	sepNone = iota
	sepSemi
	sepComma
)

//
// Type definitions
//

// A token is immutable once the lexer hands it over.  text holds the
// upper-cased identifier name, the operator/punctuation symbol, the
// keyword spelling, or the verbatim contents of a string literal.
// Columns are 1-based and relative to the statement text.
type token struct {
	kind    int
	keyword int
	num     float64
	text    string
	isStr   bool
	col     int
	end     int
}

type exprNode struct {
	kind     int
	op       string
	name     string
	isStr    bool
	value    any
	operands []*exprNode
}

type printItem struct {
	expr *exprNode
	sep  int
}

type stmtNode struct {
	token    int
	operands []*exprNode
	items    []printItem
	thenList []*stmtNode
	elseList []*stmtNode
	prompt   string
	text     string
}

type programLine struct {
	avl    avl.AvlNode
	lineNo int
	raw    string
	stmts  []*stmtNode
}

type program struct {
	root  *avl.AvlNode
	count int
}

type arrayKey struct {
	name string
	rank int
}

type symtabNode struct {
	name  string
	isStr bool
	dims  []int
	cells []any
}

// The execution cursor always names a top-level statement of a
// program line.  A nil line means we ran off the end of the program.
type cursor struct {
	line *programLine
	idx  int
}

type forStackNode struct {
	varName string
	limit   float64
	step    float64
	resume  cursor
}

//
// This structure contains the non-persistent state of a program.
// It is rebuilt from scratch by every RUN
//

type run struct {
	cur        cursor
	scalars    map[string]any
	arrays     map[arrayKey]*symtabNode
	forStack   []*forStackNode
	gosubStack []cursor
	halted     bool
}

type printState struct {
	cursorPos  int
	outputZone int
}

type runStats struct {
	elapsed       time.Time
	utime         int64
	stime         int64
	numStatements int64
}

type lineSource interface {
	readCommand(prompt string) (string, error)
	readInput(prompt string) (string, error)
	close() error
}

// interp owns every piece of mutable interpreter state for one session
type interp struct {
	prog           program
	r              run
	p              printState
	s              runStats
	cfg            config
	src            lineSource
	out            io.Writer
	rng            *rand.Rand
	tracedVarsMap  map[string]bool
	numOutputZones int
	colorize       bool
	exiting        bool
	running        bool
	printStats     bool
	traceExec      bool
	traceVars      bool
	traceDump      bool
}

var keywordMap map[string]int
var keywordNames map[int]string

func init() {

	keywordMap = map[string]int{
		"LET": LET, "PRINT": PRINT, "IF": IF, "THEN": THEN,
		"ELSE": ELSE, "FOR": FOR, "TO": TO, "STEP": STEP,
		"NEXT": NEXT, "GOTO": GOTO, "GOSUB": GOSUB, "RETURN": RETURN,
		"DIM": DIM, "INPUT": INPUT, "REM": REM, "END": END,
		"LIST": LIST,
	}

	keywordNames = make(map[int]string)
	for k, v := range keywordMap {
		keywordNames[v] = k
	}
}
