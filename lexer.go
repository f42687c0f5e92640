package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/scanner"
	"unicode"
)

//
// Lexer state for a single statement text (line number already
// stripped).  The REM handling needs the raw text, as everything
// after the keyword is kept verbatim
//

type Lexer struct {
	tokens []token
	line   string
}

//
// Convert one line of statement text into tokens.  The returned slice
// always ends with a tokEOL token
//

func tokenize(line string) (tokens []token, err error) {

	err = catchBasicError(func() {
		yylex := &Lexer{line: line}
		myScanner(yylex)
		tokens = yylex.tokens
	})

	return tokens, err
}

func saveToken(yylex *Lexer, tok token) {
	yylex.tokens = append(yylex.tokens, tok)
}

//
// Panic with a syntax error located at the given token.  The
// command dispatcher catches this and rejects the line
//

func syntaxError(t token, f string, args ...any) {

	panic(&basicError{kind: errSyntax, msg: fmt.Sprintf(f, args...),
		col: t.col, end: t.end})
}

func myScanner(yylex *Lexer) {

	var s scanner.Scanner

	if len(yylex.line) > maxLineLen {
		syntaxError(token{}, ELINETOOLONG)
	}

	s.Init(strings.NewReader(yylex.line))
	s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats
	s.IsIdentRune = basicIdent
	s.Error = dummyScannerError

	for {
		t, eof := getLexeme(&s, yylex.prevToken())

		if eof {
			t = token{kind: tokEOL}
			t.col, t.end = getTokenLoc(&s)
			saveToken(yylex, t)
			return
		}

		saveToken(yylex, t)

		//
		// REM swallows the rest of the line.  We hand the parser the
		// remainder as a single string token, exactly as typed
		//

		if t.kind == tokKeyword && t.keyword == REM {
			rest := token{kind: tokString, text: yylex.line[s.Pos().Offset:]}
			rest.col = t.end + 1
			rest.end = len(yylex.line)
			saveToken(yylex, rest)
			saveToken(yylex, token{kind: tokEOL, col: len(yylex.line) + 1,
				end: len(yylex.line) + 1})
			return
		}
	}
}

func (yylex *Lexer) prevToken() *token {

	if len(yylex.tokens) == 0 {
		return nil
	}

	return &yylex.tokens[len(yylex.tokens)-1]
}

//
// A '-' is folded into a numeric literal only in operand position,
// i.e. when the previous token cannot end an operand
//

func operandPosition(prev *token) bool {

	if prev == nil {
		return true
	}

	switch prev.kind {
	case tokNumber, tokString, tokIdent:
		return false

	case tokPunct:
		return prev.text != ")"
	}

	return true
}

func getLexeme(s *scanner.Scanner, prev *token) (token, bool) {

	var t token

	tok := s.Scan()
	txt := s.TokenText()

	if tok == scanner.EOF {
		return token{}, true
	}

	switch tok {
	case scanner.Ident:
		txt = strings.ToUpper(txt)

		if i := strings.IndexByte(txt, '$'); i >= 0 && i != len(txt)-1 {
			t.col, t.end = getTokenLoc(s)
			syntaxError(t, "Malformed identifier %q", txt)
		}

		if keyword, ok := keywordMap[txt]; ok {
			t = token{kind: tokKeyword, keyword: keyword, text: txt}
			break
		}

		t = token{kind: tokIdent, text: txt, isStr: strings.HasSuffix(txt, "$")}

	case scanner.Int, scanner.Float:
		t = token{kind: tokNumber, num: parseNumber(s, txt)}

	case '"':
		t = lexString(s)

	case '-':
		if operandPosition(prev) && isNumberStart(s.Peek()) {
			col := s.Position.Column
			ntok := s.Scan()
			if ntok != scanner.Int && ntok != scanner.Float {
				t.col, t.end = getTokenLoc(s)
				syntaxError(t, "Illegal number")
			}
			t = token{kind: tokNumber, num: -parseNumber(s, s.TokenText())}
			_, t.end = getTokenLoc(s)
			t.col = col
			return t, false
		}
		t = token{kind: tokOperator, text: "-"}

	case '<':
		if s.Peek() == '>' {
			_ = s.Next()
			t = token{kind: tokOperator, text: "<>"}
		} else if s.Peek() == '=' {
			_ = s.Next()
			t = token{kind: tokOperator, text: "<="}
		} else {
			t = token{kind: tokOperator, text: "<"}
		}

	case '>':
		if s.Peek() == '=' {
			_ = s.Next()
			t = token{kind: tokOperator, text: ">="}
		} else {
			t = token{kind: tokOperator, text: ">"}
		}

	case '+', '*', '/', '=':
		t = token{kind: tokOperator, text: string(tok)}

	case '(', ')', ',', ';', ':':
		t = token{kind: tokPunct, text: string(tok)}

	default:
		t.col, t.end = getTokenLoc(s)
		syntaxError(t, "Unrecognized character %q", string(tok))
	}

	t.col, t.end = getTokenLoc(s)

	return t, false
}

func isNumberStart(ch rune) bool {
	return unicode.IsDigit(ch) || ch == '.'
}

func parseNumber(s *scanner.Scanner, txt string) float64 {

	f, err := strconv.ParseFloat(txt, 64)
	if err != nil {
		var t token
		t.col, t.end = getTokenLoc(s)
		syntaxError(t, EILLEGALNUMBER)
	}

	return f
}

//
// Scan a string literal.  The contents are taken verbatim; there is
// no escape processing
//

func lexString(s *scanner.Scanner) token {

	var buf []byte

	col := s.Position.Column

	for {
		rch := s.Next()
		if rch == scanner.EOF {
			syntaxError(token{col: col, end: s.Pos().Column - 1},
				"Unterminated string")
		}

		if rch == '"' {
			return token{kind: tokString, text: string(buf)}
		}

		buf = append(buf, string(rch)...)
	}
}

//
// This is a dummy to suppress reporting of errors by the scanner
//

func dummyScannerError(s *scanner.Scanner, msg string) {
}

//
// Ident predicate routine for text/scanner.  '$' is accepted anywhere
// after the first character; getLexeme rejects it unless it is last
//

func basicIdent(ch rune, pos int) bool {

	if pos == 0 {
		return unicode.IsLetter(ch)
	}

	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '$'
}

//
// NB: if the scanner ran out of data in the input string,
// the end column will be less than the start column
//

func getTokenLoc(s *scanner.Scanner) (int, int) {

	col := s.Position.Column
	end := s.Pos().Column - 1

	if col == 0 {
		col = s.Pos().Column
	}

	if end < col {
		end = col
	}

	return col, end
}
