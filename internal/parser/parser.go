package parser

import (
	"math"
	"strconv"

	"github.com/kolkov/elvas/internal/ast"
	"github.com/kolkov/elvas/internal/lexer"
	"github.com/kolkov/elvas/internal/token"
)

const endOfStatement = "end of statement"

// Parser is a recursive descent parser for one ELVAS statement.
//
// Grammar, lowest to highest binding:
//
//	statement  = funcdef | echo | subst
//	funcdef    = name [ "(" [ name { "," name } ] ")" ] ":=" subst
//	echo       = "print" "(" string ")"
//	subst      = { name "=" } or
//	or         = and { "|" and }
//	and        = rel { "&" rel }
//	rel        = sum [ cmp sum ]
//	sum        = product { ("+" | "-") product }
//	product    = power { ("*" | "/") power }
//	power      = signed [ "^" ( int | signed ) ]
//	signed     = [ "+" | "-" ] primary
//	primary    = number | name | call | if | "(" subst ")"
//	call       = name "(" [ subst { "," subst } ] ")"
//	if         = "if" "(" subst "," subst { "," subst } ")"
type Parser struct {
	toks    []lexer.Token // Whole statement, ending in EOF or ILLEGAL
	idx     int           // Index of the current token
	tok     lexer.Token   // Current token
	prevTok lexer.Token   // Previous token
	src     string        // Statement text, for excerpts
	err     *ParseError   // First error; parsing stops once set
}

// ParseStatement parses one statement line. Line is the 1-based script line
// used in positions; pass 0 when unknown.
func ParseStatement(src string, line int) (ast.Expr, error) {
	p := newParser(src, line)
	stmt := p.parseStatement()
	p.expectEnd()
	if p.err != nil {
		return nil, p.err
	}
	return stmt, nil
}

// ParseExpr parses a single expression (assignments allowed, definitions
// and print literals not).
func ParseExpr(src string) (ast.Expr, error) {
	p := newParser(src, 0)
	expr := p.parseSubst()
	p.expectEnd()
	if p.err != nil {
		return nil, p.err
	}
	return expr, nil
}

func newParser(src string, line int) *Parser {
	p := &Parser{
		toks: lexer.New([]byte(src), line).ScanAll(),
		src:  src,
		idx:  -1,
	}
	p.next()
	return p
}

// -----------------------------------------------------------------------------
// Token handling
// -----------------------------------------------------------------------------

// next advances to the next token. The final token repeats forever.
func (p *Parser) next() {
	p.prevTok = p.tok
	if p.idx < len(p.toks)-1 {
		p.idx++
	}
	p.tok = p.toks[p.idx]
}

// peek returns the token n positions ahead of the current one.
func (p *Parser) peek(n int) lexer.Token {
	i := min(p.idx+n, len(p.toks)-1)
	return p.toks[i]
}

// expect checks that the current token is tok and advances.
// If not, it records an error.
func (p *Parser) expect(tok token.Token) bool {
	if p.tok.Type != tok {
		p.error(expectedError(p.tok.Pos, "'"+tok.String()+"'", p.tokenDesc()))
		return false
	}
	p.next()
	return true
}

// expectName expects a NAME token and returns its value.
func (p *Parser) expectName() (string, bool) {
	name := p.tok.Value
	if p.tok.Type != token.NAME {
		p.error(expectedError(p.tok.Pos, "name", p.tokenDesc()))
		return "", false
	}
	p.next()
	return name, true
}

// expectEnd reports trailing input after a complete statement.
func (p *Parser) expectEnd() {
	if p.err != nil || p.tok.Type == token.EOF {
		return
	}
	if p.tok.Type == token.ILLEGAL {
		p.errorf("%s", p.tok.Value)
		return
	}
	if p.tok.Type == token.DEFINE {
		p.errorf("function definitions are only allowed as a whole statement")
		return
	}
	p.error(expectedError(p.tok.Pos, endOfStatement, p.tokenDesc()))
}

// match returns true if current token matches any of the given types.
func (p *Parser) match(types ...token.Token) bool {
	for _, t := range types {
		if p.tok.Type == t {
			return true
		}
	}
	return false
}

// tokenDesc returns a description of the current token for error messages.
func (p *Parser) tokenDesc() string {
	switch p.tok.Type {
	case token.NAME, token.NUMBER:
		return p.tok.Value
	case token.STRING:
		return strconv.Quote(p.tok.Value)
	case token.ILLEGAL:
		return p.tok.Value
	case token.EOF:
		return endOfStatement
	default:
		return "'" + p.tok.Type.String() + "'"
	}
}

// error records the first parse error.
func (p *Parser) error(err *ParseError) {
	if p.err != nil {
		return
	}
	err.Source = p.src
	p.err = err
}

// errorf records a formatted parse error at current position.
func (p *Parser) errorf(format string, args ...any) {
	p.error(errorf(p.tok.Pos, format, args...))
}

// base returns positions from start to the end of the last consumed token.
func (p *Parser) base(start token.Position) ast.BaseExpr {
	end := p.prevTok.Pos
	end.Offset += len(p.prevTok.Value)
	end.Column += len(p.prevTok.Value)
	return ast.MakeBaseExpr(start, end)
}

// -----------------------------------------------------------------------------
// Statements
// -----------------------------------------------------------------------------

func (p *Parser) parseStatement() ast.Expr {
	switch {
	case p.isFuncDef():
		return p.parseFuncDef()
	case p.isEcho():
		return p.parseEcho()
	default:
		return p.parseSubst()
	}
}

// isFuncDef looks ahead for name := or name(params) :=.
func (p *Parser) isFuncDef() bool {
	if p.tok.Type != token.NAME {
		return false
	}
	switch p.peek(1).Type {
	case token.DEFINE:
		return true
	case token.LPAREN:
	default:
		return false
	}
	i := 2
	if p.peek(i).Type == token.RPAREN {
		return p.peek(i+1).Type == token.DEFINE
	}
	for {
		if p.peek(i).Type != token.NAME {
			return false
		}
		i++
		switch p.peek(i).Type {
		case token.COMMA:
			i++
		case token.RPAREN:
			return p.peek(i+1).Type == token.DEFINE
		default:
			return false
		}
	}
}

func (p *Parser) parseFuncDef() ast.Expr {
	start := p.tok.Pos
	name := p.tok.Value
	p.next()

	var params []string
	seen := make(map[string]bool)
	if p.tok.Type == token.LPAREN {
		p.next()
		for p.tok.Type != token.RPAREN && p.err == nil {
			if len(params) > 0 && !p.expect(token.COMMA) {
				return nil
			}
			pos := p.tok.Pos
			param, ok := p.expectName()
			if !ok {
				return nil
			}
			if seen[param] {
				p.error(errorf(pos, "duplicate parameter %s", param))
				return nil
			}
			seen[param] = true
			params = append(params, param)
		}
		p.expect(token.RPAREN)
	}
	if !p.expect(token.DEFINE) {
		return nil
	}

	body := p.parseSubst()
	if body == nil {
		return nil
	}
	return &ast.FuncDef{BaseExpr: p.base(start), Name: name, Params: params, Body: body}
}

// isEcho reports whether the statement is exactly print("...").
func (p *Parser) isEcho() bool {
	return p.tok.Type == token.NAME && p.tok.Value == "print" &&
		p.peek(1).Type == token.LPAREN &&
		p.peek(2).Type == token.STRING &&
		p.peek(3).Type == token.RPAREN
}

func (p *Parser) parseEcho() ast.Expr {
	start := p.tok.Pos
	p.next() // print
	p.next() // (
	text := p.tok.Value
	p.next() // string
	p.next() // )
	return &ast.Echo{BaseExpr: p.base(start), Text: text}
}

// -----------------------------------------------------------------------------
// Expressions
// -----------------------------------------------------------------------------

// parseSubst parses an optional chain of assignments followed by an
// or-expression.
func (p *Parser) parseSubst() ast.Expr {
	if p.tok.Type != token.NAME || p.peek(1).Type != token.ASSIGN {
		return p.parseOr()
	}

	start := p.tok.Pos
	var names []string
	for p.tok.Type == token.NAME && p.peek(1).Type == token.ASSIGN {
		names = append(names, p.tok.Value)
		p.next()
		p.next()
	}
	value := p.parseOr()
	if value == nil {
		return nil
	}
	return &ast.Assign{BaseExpr: p.base(start), Names: names, Value: value}
}

func (p *Parser) parseOr() ast.Expr {
	start := p.tok.Pos
	operands := p.parseChain(p.parseAnd, token.OR)
	switch len(operands) {
	case 0:
		return nil
	case 1:
		return operands[0]
	}
	return &ast.Or{BaseExpr: p.base(start), Operands: operands}
}

func (p *Parser) parseAnd() ast.Expr {
	start := p.tok.Pos
	operands := p.parseChain(p.parseRel, token.AND)
	switch len(operands) {
	case 0:
		return nil
	case 1:
		return operands[0]
	}
	return &ast.And{BaseExpr: p.base(start), Operands: operands}
}

// parseChain parses higher { op higher }. It returns nil on error.
func (p *Parser) parseChain(higher func() ast.Expr, op token.Token) []ast.Expr {
	first := higher()
	if first == nil {
		return nil
	}
	operands := []ast.Expr{first}
	for p.tok.Type == op {
		p.next()
		x := higher()
		if x == nil {
			return nil
		}
		operands = append(operands, x)
	}
	return operands
}

func (p *Parser) parseRel() ast.Expr {
	start := p.tok.Pos
	left := p.parseSum()
	if left == nil || !p.tok.Type.IsComparison() {
		return left
	}

	op := p.tok.Type
	p.next()
	right := p.parseSum()
	if right == nil {
		return nil
	}
	if p.tok.Type.IsComparison() {
		p.errorf("comparisons cannot be chained; combine them with &")
		return nil
	}
	return &ast.Rel{BaseExpr: p.base(start), Left: left, Op: op, Right: right}
}

func (p *Parser) parseSum() ast.Expr {
	start := p.tok.Pos
	first := p.parseProduct()
	if first == nil || !p.match(token.ADD, token.SUB) {
		return first
	}

	terms := []ast.Term{{X: first}}
	for p.match(token.ADD, token.SUB) {
		neg := p.tok.Type == token.SUB
		p.next()
		x := p.parseProduct()
		if x == nil {
			return nil
		}
		terms = append(terms, ast.Term{Neg: neg, X: x})
	}
	return &ast.Sum{BaseExpr: p.base(start), Terms: terms}
}

func (p *Parser) parseProduct() ast.Expr {
	start := p.tok.Pos
	first := p.parsePower()
	if first == nil || !p.match(token.MUL, token.DIV) {
		return first
	}

	operands := []ast.Operand{{X: first}}
	for p.match(token.MUL, token.DIV) {
		invert := p.tok.Type == token.DIV
		p.next()
		x := p.parsePower()
		if x == nil {
			return nil
		}
		operands = append(operands, ast.Operand{Invert: invert, X: x})
	}
	return &ast.Product{BaseExpr: p.base(start), Operands: operands}
}

func (p *Parser) parsePower() ast.Expr {
	start := p.tok.Pos
	base := p.parseSigned()
	if base == nil || p.tok.Type != token.POW {
		return base
	}
	p.next()

	var power ast.Expr
	if n, ok := p.intExponent(); ok {
		if !p.checkAfterPrimary() {
			return nil
		}
		power = &ast.PowerInt{BaseExpr: p.base(start), Base: base, Exp: n}
	} else {
		exp := p.parseSigned()
		if exp == nil {
			return nil
		}
		power = &ast.Power{BaseExpr: p.base(start), Base: base, Exp: exp}
	}

	if p.tok.Type == token.POW {
		p.errorf("exponents cannot be chained; use parentheses")
		return nil
	}
	return power
}

// intExponent consumes an optionally signed integer literal that fits in
// 32 bits. Anything else is left for the general exponent path.
func (p *Parser) intExponent() (int32, bool) {
	sign := ""
	lit := p.tok
	skip := 1
	if p.match(token.ADD, token.SUB) {
		sign = p.tok.Value
		lit = p.peek(1)
		skip = 2
	}
	if lit.Type != token.NUMBER || !isIntLiteral(lit.Value) {
		return 0, false
	}
	n, err := strconv.ParseInt(sign+lit.Value, 10, 32)
	if err != nil {
		return 0, false
	}
	for range skip {
		p.next()
	}
	return int32(n), true
}

func isIntLiteral(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

func (p *Parser) parseSigned() ast.Expr {
	if !p.match(token.ADD, token.SUB) {
		return p.parsePrimary()
	}
	start := p.tok.Pos
	neg := p.tok.Type == token.SUB
	p.next()
	x := p.parsePrimary()
	if x == nil {
		return nil
	}
	return &ast.Signed{BaseExpr: p.base(start), Neg: neg, X: x}
}

func (p *Parser) parsePrimary() ast.Expr {
	start := p.tok.Pos
	var expr ast.Expr

	switch p.tok.Type {
	case token.NUMBER:
		expr = p.parseNumber()

	case token.NAME:
		name := p.tok.Value
		p.next()
		if p.tok.Type == token.LPAREN {
			expr = p.parseCall(name, start)
		} else {
			expr = &ast.Const{BaseExpr: p.base(start), Name: name}
		}

	case token.IF:
		expr = p.parseCond()

	case token.LPAREN:
		p.next()
		inner := p.parseSubst()
		if inner == nil || !p.expect(token.RPAREN) {
			return nil
		}
		expr = inner

	case token.STRING:
		p.errorf("string literals are only allowed as print(\"...\")")
		return nil

	case token.ILLEGAL:
		p.errorf("%s", p.tok.Value)
		return nil

	default:
		p.error(expectedError(p.tok.Pos, "expression", p.tokenDesc()))
		return nil
	}

	if expr == nil || !p.checkAfterPrimary() {
		return nil
	}
	return expr
}

// checkAfterPrimary rejects an operand directly followed by another operand,
// as in 2x or f()(1).
func (p *Parser) checkAfterPrimary() bool {
	if p.err != nil {
		return false
	}
	if p.match(token.NAME, token.NUMBER, token.LPAREN, token.IF, token.STRING) {
		p.error(expectedError(p.tok.Pos, "operator", p.tokenDesc()))
		return false
	}
	return true
}

func (p *Parser) parseNumber() ast.Expr {
	start := p.tok.Pos
	raw := p.tok.Value

	var value float64
	if raw == "inf" {
		value = math.Inf(1)
	} else {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil && !isRangeError(err) {
			p.errorf("invalid number %s", raw)
			return nil
		}
		value = v
	}
	p.next()
	return &ast.Num{BaseExpr: p.base(start), Value: value, Raw: raw}
}

func isRangeError(err error) bool {
	ne, ok := err.(*strconv.NumError)
	return ok && ne.Err == strconv.ErrRange
}

// parseCall parses the argument list of name(...). The current token is (.
func (p *Parser) parseCall(name string, start token.Position) ast.Expr {
	p.next() // (
	args := p.parseExprList()
	if args == nil && p.err != nil {
		return nil
	}
	if !p.expect(token.RPAREN) {
		return nil
	}
	return &ast.Call{BaseExpr: p.base(start), Name: name, Args: args}
}

// parseExprList parses zero or more comma-separated expressions up to ).
func (p *Parser) parseExprList() []ast.Expr {
	if p.tok.Type == token.RPAREN {
		return nil
	}
	var list []ast.Expr
	for {
		x := p.parseSubst()
		if x == nil {
			return nil
		}
		list = append(list, x)
		if p.tok.Type != token.COMMA {
			return list
		}
		p.next()
	}
}

func (p *Parser) parseCond() ast.Expr {
	start := p.tok.Pos
	p.next() // if
	if !p.expect(token.LPAREN) {
		return nil
	}
	test := p.parseSubst()
	if test == nil || !p.expect(token.COMMA) {
		return nil
	}

	var branches []ast.Expr
	for {
		b := p.parseSubst()
		if b == nil {
			return nil
		}
		branches = append(branches, b)
		if p.tok.Type != token.COMMA {
			break
		}
		p.next()
	}
	if !p.expect(token.RPAREN) {
		return nil
	}
	return &ast.Cond{BaseExpr: p.base(start), Test: test, Branches: branches}
}
