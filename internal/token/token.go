// Package token defines lexical tokens for ELVAS script statements.
package token

// Token represents a lexical token type.
type Token uint8

const (
	// Special tokens
	ILLEGAL Token = iota // <illegal>
	EOF                  // EOF

	// Literals
	literalStart
	NAME   // name
	NUMBER // number
	STRING // string
	literalEnd

	// Operators and delimiters
	operatorStart
	ADD // +
	SUB // -
	MUL // *
	DIV // /
	POW // ^

	ASSIGN     // =
	DEFINE     // :=
	EQUALS     // ==
	NOT_EQUALS // !=
	LESS       // <
	LTE        // <=
	GREATER    // >
	GTE        // >=

	AND // &
	OR  // |

	LPAREN // (
	RPAREN // )
	COMMA  // ,
	operatorEnd

	// Keywords
	keywordStart
	IF // if
	keywordEnd
)

var names = [...]string{
	ILLEGAL:    "<illegal>",
	EOF:        "EOF",
	NAME:       "name",
	NUMBER:     "number",
	STRING:     "string",
	ADD:        "+",
	SUB:        "-",
	MUL:        "*",
	DIV:        "/",
	POW:        "^",
	ASSIGN:     "=",
	DEFINE:     ":=",
	EQUALS:     "==",
	NOT_EQUALS: "!=",
	LESS:       "<",
	LTE:        "<=",
	GREATER:    ">",
	GTE:        ">=",
	AND:        "&",
	OR:         "|",
	LPAREN:     "(",
	RPAREN:     ")",
	COMMA:      ",",
	IF:         "if",
}

// String returns the source spelling of operators and keywords, or a
// descriptive name for the other token kinds.
func (t Token) String() string {
	if int(t) < len(names) && names[t] != "" {
		return names[t]
	}
	return "<token>"
}

// IsOperator returns true if the token is an operator or delimiter.
func (t Token) IsOperator() bool {
	return t > operatorStart && t < operatorEnd
}

// IsKeyword returns true if the token is a keyword.
func (t Token) IsKeyword() bool {
	return t > keywordStart && t < keywordEnd
}

// IsLiteral returns true if the token is a name or literal.
func (t Token) IsLiteral() bool {
	return t > literalStart && t < literalEnd
}

// IsComparison reports whether t is one of the relational operators.
func (t Token) IsComparison() bool {
	switch t {
	case EQUALS, NOT_EQUALS, LESS, LTE, GREATER, GTE:
		return true
	}
	return false
}

// keywords maps keyword strings to their token types.
var keywords = map[string]Token{
	"if": IF,
}

// LookupIdent returns the token type for an identifier.
// Returns the keyword token if ident is a keyword, otherwise NAME.
func LookupIdent(ident string) Token {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return NAME
}
