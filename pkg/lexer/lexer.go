package lexer

import (
	"tokenati/pkg/errors"
	"tokenati/pkg/source"
)

// Lexer holds one tokenization session: the input cursor, the context-
// sensitivity state machine, and the scan failures recorded so far. A
// session is single-threaded and forward-only; re-lexing the same source
// means constructing a fresh Lexer.
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char's byte offset)
	readPosition int  // current reading position in input (byte offset after current char)
	ch           byte // current char under examination
	line         int  // current 1-based line number
	column       int  // current 1-based column number

	state state
	src   *source.SourceFile // optional, attached to error positions

	errs []errors.TokenatiError

	// Set when a scan failure consumed the rest of the input (for example
	// an unterminated template literal), so the stream terminates with EOF
	// instead of re-reporting the same failure forever.
	scanErrAtEOF bool
}

// NewLexer creates a new Lexer session over raw source text.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, line: 1, state: newState()}
	l.readChar() // initialize l.ch, l.position, l.readPosition
	return l
}

// NewLexerWithSource creates a session whose error positions reference the
// given source file.
func NewLexerWithSource(src *source.SourceFile) *Lexer {
	l := NewLexer(src.Content)
	l.src = src
	return l
}

// NextToken scans the input and returns the next token, carrying its span
// and line-break flag. Scan failures surface as ILLEGAL tokens in stream
// order; after the end of input every call returns EOF.
func (l *Lexer) NextToken() Token {
	// The first token of a file behaves as if a line break preceded it.
	hadLineBreak := l.state.isFirst
	l.state.isFirst = false

	if l.scanErrAtEOF && l.ch == 0 {
		return Token{Type: EOF, Literal: "", Line: l.line, Column: l.column, StartPos: l.position, EndPos: l.position, HadLineBreak: hadLineBreak}
	}

	// Inside raw template text whitespace is token text, everywhere else it
	// is skippable.
	if l.state.canSkipSpace() {
		sawNewline, err := l.skipInsignificantSpace()
		if sawNewline {
			hadLineBreak = true
		}
		l.state.hadLineBreak = hadLineBreak
		if err != nil {
			return l.illegalToken(err, hadLineBreak)
		}
	} else {
		l.state.hadLineBreak = hadLineBreak
	}

	start := l.position

	var tok Token
	var err *errors.SyntaxError
	if cur, ok := l.state.ctx.current(); ok && cur.kind == ctxTpl {
		tok, err = l.readTemplateToken(cur.start)
	} else {
		tok, err = l.readOrdinaryToken()
	}
	if err != nil {
		return l.illegalToken(err, hadLineBreak)
	}

	tok.HadLineBreak = hadLineBreak
	if tok.Type == EOF {
		return tok
	}

	// Only successfully scanned tokens feed the state machine; ILLEGAL and
	// EOF leave the context stack as it was.
	l.state.update(start, tok)
	return tok
}

// illegalToken converts a scan failure into an ILLEGAL token carrying the
// failure's span and message, and records the structured error for callers
// that render diagnostics.
func (l *Lexer) illegalToken(err *errors.SyntaxError, hadLineBreak bool) Token {
	l.errs = append(l.errs, err)
	if l.ch == 0 {
		l.scanErrAtEOF = true
	}
	return Token{
		Type:         ILLEGAL,
		Literal:      err.Msg,
		Line:         err.Line,
		Column:       err.Column,
		StartPos:     err.StartPos,
		EndPos:       err.EndPos,
		HadLineBreak: hadLineBreak,
	}
}

// CurrentPosition returns the lexer's current byte position in the input.
func (l *Lexer) CurrentPosition() int {
	return l.position
}

// ExpressionExpected reports whether the grammar position immediately after
// the last produced token admits the start of an expression. The parser uses
// it to disambiguate productions the token stream alone cannot resolve.
func (l *Lexer) ExpressionExpected() bool {
	return l.state.exprAllowed
}

// LastWasTemplateElement reports whether the last produced token was a raw
// template text chunk.
func (l *Lexer) LastWasTemplateElement() bool {
	return l.state.lastWasTemplateElement()
}

// PendingOctalPosition returns the byte offset of the most recently scanned
// legacy octal literal. Strict-mode code must reject such literals; that
// decision belongs to the parser, so the lexer only records the position.
func (l *Lexer) PendingOctalPosition() (int, bool) {
	if l.state.octalPos < 0 {
		return 0, false
	}
	return l.state.octalPos, true
}

// Errors returns the scan failures recorded so far, in source order. Each
// failure was also surfaced as an ILLEGAL token at its span.
func (l *Lexer) Errors() []errors.TokenatiError {
	return l.errs
}
