package lexer

// TokenType represents the type of a token.
type TokenType string

// Token represents a lexical token.
type Token struct {
	Type         TokenType
	Literal      string // The actual text of the token; cooked value for strings, raw text for templates
	Line         int    // 1-based line number where the token starts
	Column       int    // 1-based column number (rune index) where the token starts
	StartPos     int    // 0-based byte offset where the token starts
	EndPos       int    // 0-based byte offset after the token ends
	HadLineBreak bool   // Whether a line terminator occurred between the previous token and this one
}

// --- Token Types ---
const (
	// Special
	ILLEGAL TokenType = "ILLEGAL" // Scan failure, Literal carries the message
	EOF     TokenType = "EOF"     // End Of File

	// Identifiers + Literals
	IDENT         TokenType = "IDENT"  // functionName, variableName
	NUMBER        TokenType = "NUMBER" // 123, 45.67, 0xff, 1_000
	BIGINT        TokenType = "BIGINT" // 123n
	STRING        TokenType = "STRING" // "hello world", 'hello world'
	REGEX_LITERAL TokenType = "REGEX"  // /pattern/flags
	TEMPLATE      TokenType = "TEMPLATE"
	NULL          TokenType = "NULL"
	UNDEFINED     TokenType = "UNDEFINED"
	TRUE          TokenType = "TRUE"
	FALSE         TokenType = "FALSE"

	// Operators
	ASSIGN         TokenType = "="
	PLUS           TokenType = "+"
	MINUS          TokenType = "-"
	BANG           TokenType = "!"
	ASTERISK       TokenType = "*"
	SLASH          TokenType = "/"
	PERCENT        TokenType = "%"
	EXPONENT       TokenType = "**"
	LT             TokenType = "<"
	GT             TokenType = ">"
	LE             TokenType = "<="
	GE             TokenType = ">="
	EQ             TokenType = "=="
	NOT_EQ         TokenType = "!="
	STRICT_EQ      TokenType = "==="
	STRICT_NOT_EQ  TokenType = "!=="
	DOT            TokenType = "."
	SPREAD         TokenType = "..."
	OPTIONAL_CHAIN TokenType = "?."
	ARROW          TokenType = "=>"

	// Bitwise / shift operators
	BITWISE_AND          TokenType = "&"
	PIPE                 TokenType = "|"
	BITWISE_XOR          TokenType = "^"
	BITWISE_NOT          TokenType = "~"
	LEFT_SHIFT           TokenType = "<<"
	RIGHT_SHIFT          TokenType = ">>"
	UNSIGNED_RIGHT_SHIFT TokenType = ">>>"

	// Compound Assignment
	PLUS_ASSIGN                 TokenType = "+="
	MINUS_ASSIGN                TokenType = "-="
	ASTERISK_ASSIGN             TokenType = "*="
	SLASH_ASSIGN                TokenType = "/="
	PERCENT_ASSIGN              TokenType = "%="
	EXPONENT_ASSIGN             TokenType = "**="
	LEFT_SHIFT_ASSIGN           TokenType = "<<="
	RIGHT_SHIFT_ASSIGN          TokenType = ">>="
	UNSIGNED_RIGHT_SHIFT_ASSIGN TokenType = ">>>="
	BITWISE_AND_ASSIGN          TokenType = "&="
	BITWISE_OR_ASSIGN           TokenType = "|="
	BITWISE_XOR_ASSIGN          TokenType = "^="
	LOGICAL_AND_ASSIGN          TokenType = "&&="
	LOGICAL_OR_ASSIGN           TokenType = "||="
	COALESCE_ASSIGN             TokenType = "??="

	// Increment/Decrement
	INC TokenType = "++"
	DEC TokenType = "--"

	// Logical Operators
	LOGICAL_AND TokenType = "&&"
	LOGICAL_OR  TokenType = "||"
	COALESCE    TokenType = "??"

	// Ternary Operator
	QUESTION TokenType = "?"

	// Delimiters
	COMMA         TokenType = ","
	SEMICOLON     TokenType = ";"
	COLON         TokenType = ":"
	LPAREN        TokenType = "("
	RPAREN        TokenType = ")"
	LBRACE        TokenType = "{"
	RBRACE        TokenType = "}"
	LBRACKET      TokenType = "["
	RBRACKET      TokenType = "]"
	BACKTICK      TokenType = "`"
	DOLLAR_LBRACE TokenType = "${"

	// Keywords
	FUNCTION   TokenType = "FUNCTION"
	LET        TokenType = "LET"
	CONST      TokenType = "CONST"
	VAR        TokenType = "VAR"
	IF         TokenType = "IF"
	ELSE       TokenType = "ELSE"
	RETURN     TokenType = "RETURN"
	WHILE      TokenType = "WHILE"
	DO         TokenType = "DO"
	FOR        TokenType = "FOR"
	OF         TokenType = "OF"
	IN         TokenType = "IN"
	BREAK      TokenType = "BREAK"
	CONTINUE   TokenType = "CONTINUE"
	SWITCH     TokenType = "SWITCH"
	CASE       TokenType = "CASE"
	DEFAULT    TokenType = "DEFAULT"
	NEW        TokenType = "NEW"
	TYPEOF     TokenType = "TYPEOF"
	INSTANCEOF TokenType = "INSTANCEOF"
	VOID       TokenType = "VOID"
	DELETE     TokenType = "DELETE"
	THROW      TokenType = "THROW"
	TRY        TokenType = "TRY"
	CATCH      TokenType = "CATCH"
	FINALLY    TokenType = "FINALLY"
	CLASS      TokenType = "CLASS"
	EXTENDS    TokenType = "EXTENDS"
	SUPER      TokenType = "SUPER"
	THIS       TokenType = "THIS"
	WITH       TokenType = "WITH"
	YIELD      TokenType = "YIELD"
	AWAIT      TokenType = "AWAIT"
	DEBUGGER   TokenType = "DEBUGGER"
	IMPORT     TokenType = "IMPORT"
	EXPORT     TokenType = "EXPORT"
)

var keywords = map[string]TokenType{
	"function":   FUNCTION,
	"let":        LET,
	"const":      CONST,
	"var":        VAR,
	"true":       TRUE,
	"false":      FALSE,
	"null":       NULL,
	"undefined":  UNDEFINED,
	"if":         IF,
	"else":       ELSE,
	"return":     RETURN,
	"while":      WHILE,
	"do":         DO,
	"for":        FOR,
	"of":         OF,
	"in":         IN,
	"break":      BREAK,
	"continue":   CONTINUE,
	"switch":     SWITCH,
	"case":       CASE,
	"default":    DEFAULT,
	"new":        NEW,
	"typeof":     TYPEOF,
	"instanceof": INSTANCEOF,
	"void":       VOID,
	"delete":     DELETE,
	"throw":      THROW,
	"try":        TRY,
	"catch":      CATCH,
	"finally":    FINALLY,
	"class":      CLASS,
	"extends":    EXTENDS,
	"super":      SUPER,
	"this":       THIS,
	"with":       WITH,
	"yield":      YIELD,
	"await":      AWAIT,
	"debugger":   DEBUGGER,
	"import":     IMPORT,
	"export":     EXPORT,
}

// LookupIdent checks the keywords table for an identifier.
func LookupIdent(ident string) TokenType {
	if tokType, ok := keywords[ident]; ok {
		return tokType
	}
	return IDENT
}

// beforeExprTable answers, per token type, "may an expression start immediately
// after this token, in isolation from context?". Token types not listed are
// false. The table is the per-token-kind constant the state machine falls back
// to when no dedicated rule applies, and it is what turns a following `/` into
// a regular expression rather than division.
var beforeExprTable = map[TokenType]bool{
	// Punctuation that opens an expression position
	LBRACKET:      true,
	LBRACE:        true,
	LPAREN:        true,
	COMMA:         true,
	SEMICOLON:     true,
	COLON:         true,
	QUESTION:      true,
	ARROW:         true,
	SPREAD:        true,
	DOLLAR_LBRACE: true,

	// Every binary operator expects a right-hand side
	PLUS:                 true,
	MINUS:                true,
	ASTERISK:             true,
	SLASH:                true,
	PERCENT:              true,
	EXPONENT:             true,
	EQ:                   true,
	NOT_EQ:               true,
	STRICT_EQ:            true,
	STRICT_NOT_EQ:        true,
	LT:                   true,
	GT:                   true,
	LE:                   true,
	GE:                   true,
	LEFT_SHIFT:           true,
	RIGHT_SHIFT:          true,
	UNSIGNED_RIGHT_SHIFT: true,
	BITWISE_AND:          true,
	PIPE:                 true,
	BITWISE_XOR:          true,
	LOGICAL_AND:          true,
	LOGICAL_OR:           true,
	COALESCE:             true,

	// Prefix operators
	BANG:        true,
	BITWISE_NOT: true,

	// Assignments
	ASSIGN:                      true,
	PLUS_ASSIGN:                 true,
	MINUS_ASSIGN:                true,
	ASTERISK_ASSIGN:             true,
	SLASH_ASSIGN:                true,
	PERCENT_ASSIGN:              true,
	EXPONENT_ASSIGN:             true,
	LEFT_SHIFT_ASSIGN:           true,
	RIGHT_SHIFT_ASSIGN:          true,
	UNSIGNED_RIGHT_SHIFT_ASSIGN: true,
	BITWISE_AND_ASSIGN:          true,
	BITWISE_OR_ASSIGN:           true,
	BITWISE_XOR_ASSIGN:          true,
	LOGICAL_AND_ASSIGN:          true,
	LOGICAL_OR_ASSIGN:           true,
	COALESCE_ASSIGN:             true,

	// Keywords that are followed by an expression
	CASE:       true,
	DEFAULT:    true,
	DO:         true,
	ELSE:       true,
	RETURN:     true,
	THROW:      true,
	NEW:        true,
	IN:         true,
	INSTANCEOF: true,
	TYPEOF:     true,
	VOID:       true,
	DELETE:     true,
	EXTENDS:    true,
	YIELD:      true,
	AWAIT:      true,
}

// BeforeExpr reports the per-token-kind before-expression constant.
func BeforeExpr(t TokenType) bool {
	return beforeExprTable[t]
}

// keywordTokens is the set of reserved-word token types. NULL, UNDEFINED, TRUE
// and FALSE are word tokens but not keywords for context purposes: `obj.null`
// and `obj.if` take different paths through the state machine.
var keywordTokens = map[TokenType]bool{
	FUNCTION: true, LET: true, CONST: true, VAR: true,
	IF: true, ELSE: true, RETURN: true, WHILE: true, DO: true,
	FOR: true, OF: true, IN: true, BREAK: true, CONTINUE: true,
	SWITCH: true, CASE: true, DEFAULT: true, NEW: true,
	TYPEOF: true, INSTANCEOF: true, VOID: true, DELETE: true,
	THROW: true, TRY: true, CATCH: true, FINALLY: true,
	CLASS: true, EXTENDS: true, SUPER: true, THIS: true,
	WITH: true, YIELD: true, AWAIT: true, DEBUGGER: true,
	IMPORT: true, EXPORT: true,
}

// IsKeyword reports whether t is a reserved-word token type.
func IsKeyword(t TokenType) bool {
	return keywordTokens[t]
}

// binaryOpTokens is the set of binary operator token types. Assignment
// operators, prefix-only operators and ++/-- are excluded on purpose: they
// classify as Other and never reach the operator-specific context rules.
var binaryOpTokens = map[TokenType]bool{
	PLUS: true, MINUS: true, ASTERISK: true, SLASH: true, PERCENT: true,
	EXPONENT: true, EQ: true, NOT_EQ: true, STRICT_EQ: true,
	STRICT_NOT_EQ: true, LT: true, GT: true, LE: true, GE: true,
	LEFT_SHIFT: true, RIGHT_SHIFT: true, UNSIGNED_RIGHT_SHIFT: true,
	BITWISE_AND: true, PIPE: true, BITWISE_XOR: true,
	LOGICAL_AND: true, LOGICAL_OR: true, COALESCE: true,
}

// IsBinaryOperator reports whether t is a binary operator token type.
func IsBinaryOperator(t TokenType) bool {
	return binaryOpTokens[t]
}
