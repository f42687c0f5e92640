package main

//
// Recursive descent parser for one line of statement text.  The
// expression part is precedence climbing over a small binding table
//

const (
	_ int = iota
	LOWEST
	RELATIONAL // = <> < > <= >=
	SUM        // + -
	PRODUCT    // * /
	PREFIX     // -X
)

var precedences = map[string]int{
	"=":  RELATIONAL,
	"<>": RELATIONAL,
	"<":  RELATIONAL,
	">":  RELATIONAL,
	"<=": RELATIONAL,
	">=": RELATIONAL,
	"+":  SUM,
	"-":  SUM,
	"*":  PRODUCT,
	"/":  PRODUCT,
}

var relationalOps = map[string]bool{
	"=": true, "<>": true, "<": true, ">": true, "<=": true, ">=": true,
}

type parser struct {
	tokens    []token
	pos       int
	thenDepth int
}

//
// Tokenize and parse a line of statement text into its statement
// sequence.  Any lexical or parse failure comes back as a SYNTAX
// error and nothing is produced
//

func parseStatements(line string) (stmts []*stmtNode, err error) {

	tokens, err := tokenize(line)
	if err != nil {
		return nil, err
	}

	err = catchBasicError(func() {
		ps := &parser{tokens: tokens}
		stmts = ps.parseStmtList()
		ps.expectEOL()
	})

	if err != nil {
		return nil, err
	}

	return stmts, nil
}

func (ps *parser) peek() token {
	return ps.tokens[ps.pos]
}

func (ps *parser) next() token {

	t := ps.tokens[ps.pos]

	if t.kind != tokEOL {
		ps.pos++
	}

	return t
}

func (ps *parser) atKeyword(keyword int) bool {

	t := ps.peek()

	return t.kind == tokKeyword && t.keyword == keyword
}

func (ps *parser) atPunct(p string) bool {

	t := ps.peek()

	return t.kind == tokPunct && t.text == p
}

func (ps *parser) atOperator(op string) bool {

	t := ps.peek()

	return t.kind == tokOperator && t.text == op
}

func (ps *parser) atEndOfStmt() bool {

	t := ps.peek()

	return t.kind == tokEOL || (t.kind == tokPunct && t.text == ":") ||
		(t.kind == tokKeyword && t.keyword == ELSE)
}

func (ps *parser) expectPunct(p string) {

	if !ps.atPunct(p) {
		ps.unexpected("Expected %q", p)
	}

	ps.next()
}

func (ps *parser) expectOperator(op string) {

	if !ps.atOperator(op) {
		ps.unexpected("Expected %q", op)
	}

	ps.next()
}

func (ps *parser) expectKeyword(keyword int) {

	if !ps.atKeyword(keyword) {
		ps.unexpected("Expected %s", keywordNames[keyword])
	}

	ps.next()
}

func (ps *parser) expectEOL() {

	t := ps.peek()

	if t.kind == tokKeyword && t.keyword == ELSE {
		syntaxError(t, "ELSE without THEN")
	}

	if t.kind != tokEOL {
		ps.unexpected("Unexpected %s", describeToken(t))
	}
}

func (ps *parser) unexpected(f string, args ...any) {

	t := ps.peek()

	if t.kind == tokEOL {
		syntaxError(t, "Unexpected end of input")
	}

	syntaxError(t, f, args...)
}

func describeToken(t token) string {

	switch t.kind {
	case tokNumber:
		return "number " + basicFormat(t.num)

	case tokString:
		return "string \"" + t.text + "\""

	case tokEOL:
		return "end of input"
	}

	return "\"" + t.text + "\""
}

//
// Parse statements separated by ':'.  Inside a THEN clause the list
// stops in front of ELSE, which belongs to the innermost open IF
//

func (ps *parser) parseStmtList() []*stmtNode {

	var stmts []*stmtNode

	for {
		stmts = append(stmts, ps.parseStmt())

		if ps.atPunct(":") {
			ps.next()
			continue
		}

		if ps.atKeyword(ELSE) && ps.thenDepth == 0 {
			syntaxError(ps.peek(), "ELSE without THEN")
		}

		return stmts
	}
}

func (ps *parser) parseStmt() *stmtNode {

	t := ps.peek()

	switch t.kind {
	case tokIdent:

		//
		// Implicit LET
		//

		return ps.parseLet()

	case tokKeyword:
		// handled below

	default:
		ps.unexpected("Statement expected")
	}

	switch t.keyword {
	case LET:
		ps.next()
		return ps.parseLet()

	case PRINT:
		ps.next()
		return ps.parsePrint()

	case IF:
		ps.next()
		return ps.parseIf()

	case FOR:
		ps.next()
		return ps.parseFor()

	case NEXT:
		ps.next()
		stmt := &stmtNode{token: NEXT}
		if ps.peek().kind == tokIdent {
			stmt.operands = []*exprNode{ps.parseScalarRef()}
		}
		return stmt

	case GOTO, GOSUB:
		ps.next()
		return &stmtNode{token: t.keyword, operands: []*exprNode{ps.parseExpr(LOWEST)}}

	case RETURN, END:
		ps.next()
		return &stmtNode{token: t.keyword}

	case DIM:
		ps.next()
		return ps.parseDim()

	case INPUT:
		ps.next()
		return ps.parseInput()

	case REM:
		ps.next()
		rest := ps.next()
		return &stmtNode{token: REM, text: rest.text}

	case LIST:
		ps.next()
		return ps.parseList()

	case ELSE:
		syntaxError(t, "ELSE without THEN")
	}

	ps.unexpected("Unexpected %s", describeToken(t))

	return nil
}

func (ps *parser) parseLet() *stmtNode {

	if ps.peek().kind != tokIdent {
		ps.unexpected("Variable expected")
	}

	target := ps.parseVarRef()

	ps.expectOperator("=")

	return &stmtNode{token: LET, operands: []*exprNode{target, ps.parseExpr(LOWEST)}}
}

//
// PRINT [item {; | ,} ...].  Each item records the separator that
// followed it; a separator with no expression in front of it is an
// item with a nil expression
//

func (ps *parser) parsePrint() *stmtNode {

	stmt := &stmtNode{token: PRINT}

	for !ps.atEndOfStmt() {
		var item printItem

		if !ps.atPunct(";") && !ps.atPunct(",") {
			item.expr = ps.parseExpr(LOWEST)
		}

		if ps.atPunct(";") {
			ps.next()
			item.sep = sepSemi
		} else if ps.atPunct(",") {
			ps.next()
			item.sep = sepComma
		} else if !ps.atEndOfStmt() {
			ps.unexpected("Expected \";\" or \",\"")
		}

		stmt.items = append(stmt.items, item)
	}

	return stmt
}

func (ps *parser) parseIf() *stmtNode {

	stmt := &stmtNode{token: IF}

	stmt.operands = []*exprNode{ps.parseExpr(LOWEST)}

	if ps.atKeyword(ELSE) {
		syntaxError(ps.peek(), "ELSE without THEN")
	}

	ps.expectKeyword(THEN)

	ps.thenDepth++
	stmt.thenList = ps.parseBranch()
	ps.thenDepth--

	if ps.atKeyword(ELSE) {
		ps.next()
		stmt.elseList = ps.parseBranch()
	}

	return stmt
}

//
// A branch is either a bare line number (shorthand for GOTO) or a
// statement list
//

func (ps *parser) parseBranch() []*stmtNode {

	t := ps.peek()

	if t.kind == tokNumber {
		ps.next()
		target := &exprNode{kind: exLiteral, value: t.num}
		return []*stmtNode{{token: GOTO, operands: []*exprNode{target}}}
	}

	if t.kind == tokEOL {
		ps.unexpected("Statement expected")
	}

	return ps.parseStmtList()
}

func (ps *parser) parseFor() *stmtNode {

	stmt := &stmtNode{token: FOR}

	if ps.peek().kind != tokIdent {
		ps.unexpected("Loop variable expected")
	}

	loopVar := ps.parseScalarRef()

	ps.expectOperator("=")
	from := ps.parseExpr(LOWEST)

	ps.expectKeyword(TO)
	to := ps.parseExpr(LOWEST)

	stmt.operands = []*exprNode{loopVar, from, to}

	if ps.atKeyword(STEP) {
		ps.next()
		stmt.operands = append(stmt.operands, ps.parseExpr(LOWEST))
	}

	return stmt
}

func (ps *parser) parseDim() *stmtNode {

	stmt := &stmtNode{token: DIM}

	for {
		t := ps.peek()
		if t.kind != tokIdent {
			ps.unexpected("Array name expected")
		}

		ps.next()
		ps.expectPunct("(")

		decl := &exprNode{kind: exVar, name: t.text, isStr: t.isStr}
		decl.operands = ps.parseExprList()

		ps.expectPunct(")")

		stmt.operands = append(stmt.operands, decl)

		if !ps.atPunct(",") {
			return stmt
		}

		ps.next()
	}
}

//
// INPUT ["prompt";] var {, var}
//

func (ps *parser) parseInput() *stmtNode {

	stmt := &stmtNode{token: INPUT}

	if t := ps.peek(); t.kind == tokString {
		ps.next()
		stmt.prompt = t.text
		if !ps.atPunct(";") && !ps.atPunct(",") {
			ps.unexpected("Expected \";\"")
		}
		ps.next()
	}

	for {
		if ps.peek().kind != tokIdent {
			ps.unexpected("Variable expected")
		}

		stmt.operands = append(stmt.operands, ps.parseVarRef())

		if !ps.atPunct(",") {
			return stmt
		}

		ps.next()
	}
}

//
// LIST [first][-[last]]
//

func (ps *parser) parseList() *stmtNode {

	stmt := &stmtNode{token: LIST}

	if ps.atEndOfStmt() {
		return stmt
	}

	first := ps.next()
	if first.kind != tokNumber {
		syntaxError(first, "Line number expected")
	}

	stmt.operands = []*exprNode{literal(first.num)}

	if ps.atOperator("-") {
		ps.next()
		last := ps.next()
		if last.kind != tokNumber {
			syntaxError(last, "Line number expected")
		}
		stmt.operands = append(stmt.operands, literal(last.num))
	} else {
		stmt.operands = append(stmt.operands, literal(first.num))
	}

	return stmt
}

func literal(v any) *exprNode {
	return &exprNode{kind: exLiteral, value: v}
}

func (ps *parser) parseScalarRef() *exprNode {

	t := ps.next()

	if t.kind != tokIdent {
		syntaxError(t, "Variable expected")
	}

	return &exprNode{kind: exVar, name: t.text, isStr: t.isStr}
}

//
// A variable reference, with an optional parenthesized subscript list
//

func (ps *parser) parseVarRef() *exprNode {

	node := ps.parseScalarRef()

	if ps.atPunct("(") {
		ps.next()
		node.operands = ps.parseExprList()
		ps.expectPunct(")")
	}

	return node
}

func (ps *parser) parseExprList() []*exprNode {

	list := []*exprNode{ps.parseExpr(LOWEST)}

	for ps.atPunct(",") {
		ps.next()
		list = append(list, ps.parseExpr(LOWEST))
	}

	return list
}

func (ps *parser) parseExpr(precedence int) *exprNode {

	left := ps.parsePrefix()

	for {
		t := ps.peek()
		if t.kind != tokOperator {
			return left
		}

		opPrec := precedences[t.text]
		if opPrec <= precedence {
			return left
		}

		ps.next()

		right := ps.parseExpr(opPrec)

		left = &exprNode{kind: exBinary, op: t.text, operands: []*exprNode{left, right}}
	}
}

func (ps *parser) parsePrefix() *exprNode {

	t := ps.peek()

	switch t.kind {
	case tokNumber:
		ps.next()
		return literal(t.num)

	case tokString:
		ps.next()
		return literal(t.text)

	case tokIdent:
		if _, ok := builtins[t.text]; ok {
			return ps.parseCall()
		}
		return ps.parseVarRef()

	case tokOperator:
		if t.text == "-" || t.text == "+" {
			ps.next()
			operand := ps.parseExpr(PREFIX)
			return &exprNode{kind: exUnary, op: t.text, operands: []*exprNode{operand}}
		}

	case tokPunct:
		if t.text == "(" {
			ps.next()
			e := ps.parseExpr(LOWEST)
			ps.expectPunct(")")
			return e
		}
	}

	ps.unexpected("Unexpected %s", describeToken(t))

	return nil
}

func (ps *parser) parseCall() *exprNode {

	t := ps.next()

	node := &exprNode{kind: exCall, name: t.text, isStr: t.isStr}

	ps.expectPunct("(")
	node.operands = ps.parseExprList()
	ps.expectPunct(")")

	bif := builtins[t.text]
	if len(node.operands) < bif.minArgs || len(node.operands) > bif.maxArgs {
		syntaxError(t, "Wrong number of arguments to %s", t.text)
	}

	return node
}
