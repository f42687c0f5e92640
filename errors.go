package main

import (
	"errors"
	"fmt"
)

//
// Manifest constants for the interpreter's error messages
//

const (
	ETYPEMISMATCH      = "Type mismatch"
	ERELATIONAL        = "Relational operator outside IF"
	EILLEGALNUMBER     = "Illegal number"
	EDIVISIONBYZERO    = "Division by 0"
	EFLOATINGERROR     = "Floating point error"
	ESQRERROR          = "Argument to SQR is negative"
	ESUBSCRIPTERROR    = "Subscript out of range"
	EMATRIXTOOLARGE    = "Array or matrix too large"
	EDUPLICATEDIM      = "Duplicate DIM statement"
	EUNDIMENSIONED     = "Array %s(%d) not dimensioned"
	ENEXTWITHOUTFOR    = "NEXT without matching FOR"
	ENOMATCHINGNEXT    = "FOR without matching NEXT"
	EZEROSTEP          = "STEP expression must be non-zero"
	EFORSTACKOVERFLOW  = "FOR stack overflow"
	EGOSUBOVERFLOW     = "GOSUB stack overflow"
	ERETURNWITHOUT     = "RETURN without GOSUB"
	EENDOFFILE         = "End of file on device"
	ELINETOOLONG       = "Line too long"
	EILLEGALLINENUMBER = "Illegal line number"
	EINPUTABORTED      = "Input aborted"
	EUNDEFINEDLINE     = "%s to non-existent line %d"
)

//
// One sentinel per error class.  A basicError unwraps to exactly one
// of these, so callers can classify with errors.Is
//

var (
	errSyntax        = errors.New("SYNTAX ERROR")
	errType          = errors.New("TYPE ERROR")
	errUndefinedLine = errors.New("UNDEFINED LINE ERROR")
	errBounds        = errors.New("BOUNDS ERROR")
	errControlFlow   = errors.New("CONTROL FLOW ERROR")
	errDim           = errors.New("DIM ERROR")
	errArithmetic    = errors.New("ARITHMETIC ERROR")
	errInput         = errors.New("INPUT ERROR")
)

//
// basicError is what runtime checks panic with.  lineNo is 0 for
// errors raised while entering a line (syntax errors).  For syntax
// errors, col/end locate the culprit token in source, which is the
// rejected line as typed
//

type basicError struct {
	kind   error
	msg    string
	lineNo int
	col    int
	end    int
	source string
}

func (e *basicError) Error() string {

	if e.lineNo > 0 {
		return fmt.Sprintf("%s: %s at line %d", e.kind, e.msg, e.lineNo)
	}

	return fmt.Sprintf("%s: %s", e.kind, e.msg)
}

func (e *basicError) Unwrap() error {
	return e.kind
}

//
// Internal consistency failures.  These are interpreter bugs, not
// user errors, so we record where they were raised
//

type basicErrorInfo struct {
	msg  string
	file string
	line int
}

//
// Run f, converting a basicError panic into an ordinary error.
// Anything else continues to signal
//

func catchBasicError(f func()) (err error) {

	defer func() {
		if e := recover(); e != nil {
			be, ok := e.(*basicError)
			if !ok {
				panic(e)
			}
			err = be
		}
	}()

	f()

	return nil
}
