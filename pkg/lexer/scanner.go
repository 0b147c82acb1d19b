package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
	"golang.org/x/text/unicode/norm"

	"tokenati/pkg/errors"
)

// This file is the character-level half of the lexer: it turns source bytes
// into concrete tokens. The only context it consults is the narrow state view
// (expressionAllowed for slash disambiguation, markOctal for legacy octal
// literals); everything else about context lives in state.go.

// readChar gives us the next character and advances our position in the
// input string. It also updates the line and column count.
func (l *Lexer) readChar() {
	// Before advancing, check if the current character was a newline.
	if l.ch == '\n' {
		l.line++
		l.column = 0 // Reset column, it will be incremented below
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0 // 0 is ASCII for NUL, signifies EOF
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	// UTF-8 continuation bytes stay in the current column, so columns
	// count runes, not bytes.
	if l.ch&0xc0 != 0x80 {
		l.column++
	}
}

// peekChar looks ahead in the input without consuming the character.
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// peekCharAt looks offset bytes past the current character; peekCharAt(1) is
// peekChar.
func (l *Lexer) peekCharAt(offset int) byte {
	pos := l.position + offset
	if pos >= len(l.input) {
		return 0
	}
	return l.input[pos]
}

// skipInsignificantSpace consumes whitespace and comments. It reports whether
// the skipped run contained a line terminator, which feeds the line-break
// flag consumed by ASI-sensitive rules. The caller decides whether to invoke
// it at all: inside raw template text whitespace is token text.
func (l *Lexer) skipInsignificantSpace() (bool, *errors.SyntaxError) {
	sawNewline := false
	for {
		switch {
		case l.ch == '\n':
			sawNewline = true
			l.readChar()
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\v' || l.ch == '\f':
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			l.skipLineComment()
		case l.ch == '/' && l.peekChar() == '*':
			nl, err := l.skipBlockComment()
			sawNewline = sawNewline || nl
			if err != nil {
				return sawNewline, err
			}
		case l.ch >= utf8.RuneSelf:
			r, size := utf8.DecodeRuneInString(l.input[l.position:])
			// U+2028 and U+2029 are line terminators for ASI purposes even
			// though only '\n' advances the line counter.
			if r == '\u2028' || r == '\u2029' {
				sawNewline = true
			} else if !unicode.IsSpace(r) && r != '\ufeff' {
				return sawNewline, nil
			}
			for i := 0; i < size; i++ {
				l.readChar()
			}
		default:
			return sawNewline, nil
		}
	}
}

// skipLineComment reads until the end of the line. The newline itself is left
// for skipInsignificantSpace so the line-break flag is recorded.
func (l *Lexer) skipLineComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

// skipBlockComment consumes a /* ... */ comment and reports whether it
// spanned a line terminator.
func (l *Lexer) skipBlockComment() (bool, *errors.SyntaxError) {
	startLine, startCol, startPos := l.line, l.column, l.position
	l.readChar() // consume '/'
	l.readChar() // consume '*'

	sawNewline := false
	for {
		if l.ch == 0 {
			return sawNewline, l.syntaxErr(startLine, startCol, startPos, l.position, "unterminated block comment")
		}
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar() // consume '*'
			l.readChar() // consume '/'
			return sawNewline, nil
		}
		if l.ch == '\n' {
			sawNewline = true
		}
		l.readChar()
	}
}

// readOrdinaryToken scans the next token outside template text. Comments and
// whitespace have already been consumed, so a '/' here is a regex start, a
// division operator, or /=.
func (l *Lexer) readOrdinaryToken() (Token, *errors.SyntaxError) {
	startLine, startCol, startPos := l.line, l.column, l.position

	switch l.ch {
	case '=':
		if l.peekChar() == '=' {
			if l.peekCharAt(2) == '=' {
				return l.operatorToken(STRICT_EQ, 3), nil
			}
			return l.operatorToken(EQ, 2), nil
		}
		if l.peekChar() == '>' {
			return l.operatorToken(ARROW, 2), nil
		}
		return l.operatorToken(ASSIGN, 1), nil

	case '!':
		if l.peekChar() == '=' {
			if l.peekCharAt(2) == '=' {
				return l.operatorToken(STRICT_NOT_EQ, 3), nil
			}
			return l.operatorToken(NOT_EQ, 2), nil
		}
		return l.operatorToken(BANG, 1), nil

	case '+':
		if l.peekChar() == '+' {
			return l.operatorToken(INC, 2), nil
		}
		if l.peekChar() == '=' {
			return l.operatorToken(PLUS_ASSIGN, 2), nil
		}
		return l.operatorToken(PLUS, 1), nil

	case '-':
		if l.peekChar() == '-' {
			return l.operatorToken(DEC, 2), nil
		}
		if l.peekChar() == '=' {
			return l.operatorToken(MINUS_ASSIGN, 2), nil
		}
		return l.operatorToken(MINUS, 1), nil

	case '*':
		if l.peekChar() == '*' {
			if l.peekCharAt(2) == '=' {
				return l.operatorToken(EXPONENT_ASSIGN, 3), nil
			}
			return l.operatorToken(EXPONENT, 2), nil
		}
		if l.peekChar() == '=' {
			return l.operatorToken(ASTERISK_ASSIGN, 2), nil
		}
		return l.operatorToken(ASTERISK, 1), nil

	case '/':
		if l.state.expressionAllowed() {
			return l.readRegexLiteral()
		}
		if l.peekChar() == '=' {
			return l.operatorToken(SLASH_ASSIGN, 2), nil
		}
		return l.operatorToken(SLASH, 1), nil

	case '%':
		if l.peekChar() == '=' {
			return l.operatorToken(PERCENT_ASSIGN, 2), nil
		}
		return l.operatorToken(PERCENT, 1), nil

	case '<':
		if l.peekChar() == '<' {
			if l.peekCharAt(2) == '=' {
				return l.operatorToken(LEFT_SHIFT_ASSIGN, 3), nil
			}
			return l.operatorToken(LEFT_SHIFT, 2), nil
		}
		if l.peekChar() == '=' {
			return l.operatorToken(LE, 2), nil
		}
		return l.operatorToken(LT, 1), nil

	case '>':
		if l.peekChar() == '>' {
			if l.peekCharAt(2) == '>' {
				if l.peekCharAt(3) == '=' {
					return l.operatorToken(UNSIGNED_RIGHT_SHIFT_ASSIGN, 4), nil
				}
				return l.operatorToken(UNSIGNED_RIGHT_SHIFT, 3), nil
			}
			if l.peekCharAt(2) == '=' {
				return l.operatorToken(RIGHT_SHIFT_ASSIGN, 3), nil
			}
			return l.operatorToken(RIGHT_SHIFT, 2), nil
		}
		if l.peekChar() == '=' {
			return l.operatorToken(GE, 2), nil
		}
		return l.operatorToken(GT, 1), nil

	case '&':
		if l.peekChar() == '&' {
			if l.peekCharAt(2) == '=' {
				return l.operatorToken(LOGICAL_AND_ASSIGN, 3), nil
			}
			return l.operatorToken(LOGICAL_AND, 2), nil
		}
		if l.peekChar() == '=' {
			return l.operatorToken(BITWISE_AND_ASSIGN, 2), nil
		}
		return l.operatorToken(BITWISE_AND, 1), nil

	case '|':
		if l.peekChar() == '|' {
			if l.peekCharAt(2) == '=' {
				return l.operatorToken(LOGICAL_OR_ASSIGN, 3), nil
			}
			return l.operatorToken(LOGICAL_OR, 2), nil
		}
		if l.peekChar() == '=' {
			return l.operatorToken(BITWISE_OR_ASSIGN, 2), nil
		}
		return l.operatorToken(PIPE, 1), nil

	case '^':
		if l.peekChar() == '=' {
			return l.operatorToken(BITWISE_XOR_ASSIGN, 2), nil
		}
		return l.operatorToken(BITWISE_XOR, 1), nil

	case '~':
		return l.operatorToken(BITWISE_NOT, 1), nil

	case '?':
		if l.peekChar() == '.' && !isDigit(l.peekCharAt(2)) {
			// `a?.5:b` keeps the dot with the number, not the chain.
			return l.operatorToken(OPTIONAL_CHAIN, 2), nil
		}
		if l.peekChar() == '?' {
			if l.peekCharAt(2) == '=' {
				return l.operatorToken(COALESCE_ASSIGN, 3), nil
			}
			return l.operatorToken(COALESCE, 2), nil
		}
		return l.operatorToken(QUESTION, 1), nil

	case '.':
		if l.peekChar() == '.' && l.peekCharAt(2) == '.' {
			return l.operatorToken(SPREAD, 3), nil
		}
		if isDigit(l.peekChar()) {
			return l.readNumber()
		}
		return l.operatorToken(DOT, 1), nil

	case ';':
		return l.operatorToken(SEMICOLON, 1), nil
	case ':':
		return l.operatorToken(COLON, 1), nil
	case ',':
		return l.operatorToken(COMMA, 1), nil
	case '(':
		return l.operatorToken(LPAREN, 1), nil
	case ')':
		return l.operatorToken(RPAREN, 1), nil
	case '{':
		return l.operatorToken(LBRACE, 1), nil
	case '}':
		return l.operatorToken(RBRACE, 1), nil
	case '[':
		return l.operatorToken(LBRACKET, 1), nil
	case ']':
		return l.operatorToken(RBRACKET, 1), nil
	case '`':
		return l.operatorToken(BACKTICK, 1), nil

	case '"', '\'':
		return l.readString(l.ch)

	case 0: // EOF
		return Token{Type: EOF, Literal: "", Line: startLine, Column: startCol, StartPos: startPos, EndPos: startPos}, nil

	default:
		if isDigit(l.ch) {
			return l.readNumber()
		}
		if isLetter(l.ch) || l.ch == '\\' || l.ch >= utf8.RuneSelf {
			return l.readIdentifier()
		}
		l.readChar()
		return Token{}, l.syntaxErr(startLine, startCol, startPos, l.position, "unexpected character %q", l.input[startPos:l.position])
	}
}

// readTemplateToken scans the next token inside a template literal: a raw
// text chunk, the `${` interpolation opener, or the terminating backtick.
// tplStart is the byte offset of the opening backtick; unterminated-template
// errors anchor there and span the whole literal.
func (l *Lexer) readTemplateToken(tplStart int) (Token, *errors.SyntaxError) {
	startLine, startCol, startPos := l.line, l.column, l.position

	switch {
	case l.ch == 0:
		return Token{}, l.unterminatedTemplate(tplStart)
	case l.ch == '`':
		return l.operatorToken(BACKTICK, 1), nil
	case l.ch == '$' && l.peekChar() == '{':
		return l.operatorToken(DOLLAR_LBRACE, 2), nil
	}

	// Raw text chunk, preserved verbatim: whitespace, newlines, and escape
	// sequences are all token text. A backslash shields the next character
	// so \` and \${ do not terminate the chunk. Cooking (and rejecting bad
	// escapes outside tagged templates) is the parser's job.
	for {
		if l.ch == 0 {
			return Token{}, l.unterminatedTemplate(tplStart)
		}
		if l.ch == '`' || (l.ch == '$' && l.peekChar() == '{') {
			break
		}
		if l.ch == '\\' {
			l.readChar()
			if l.ch == 0 {
				continue
			}
		}
		l.readChar()
	}
	return Token{Type: TEMPLATE, Literal: l.input[startPos:l.position], Line: startLine, Column: startCol, StartPos: startPos, EndPos: l.position}, nil
}

// unterminatedTemplate builds the scan failure for a template literal that
// ran off the end of the input, anchored at the opening backtick.
func (l *Lexer) unterminatedTemplate(tplStart int) *errors.SyntaxError {
	line, col := l.lineColAt(tplStart)
	return l.syntaxErr(line, col, tplStart, l.position, "unterminated template literal")
}

// operatorToken consumes width bytes and returns the punctuator token they
// form. Maximal munch is the caller's job: it peeks before choosing width.
func (l *Lexer) operatorToken(t TokenType, width int) Token {
	line, col, start := l.line, l.column, l.position
	for i := 0; i < width; i++ {
		l.readChar()
	}
	return Token{Type: t, Literal: l.input[start:l.position], Line: line, Column: col, StartPos: start, EndPos: l.position}
}

// readString reads a string literal enclosed in the given quote character.
// The token Literal is the cooked value with escape sequences resolved.
func (l *Lexer) readString(quote byte) (Token, *errors.SyntaxError) {
	startLine, startCol, startPos := l.line, l.column, l.position
	var builder strings.Builder
	l.readChar() // consume the opening quote

	for {
		switch {
		case l.ch == quote:
			l.readChar() // consume the closing quote
			return Token{Type: STRING, Literal: builder.String(), Line: startLine, Column: startCol, StartPos: startPos, EndPos: l.position}, nil
		case l.ch == 0, l.ch == '\n', l.ch == '\r':
			return Token{}, l.syntaxErr(startLine, startCol, startPos, l.position, "unterminated string literal")
		case l.ch == '\\':
			if err := l.readEscapeSequence(&builder); err != nil {
				return Token{}, err
			}
		default:
			// Multi-byte characters pass through byte by byte; U+2028 and
			// U+2029 are legal in string literals.
			builder.WriteByte(l.ch)
			l.readChar()
		}
	}
}

// readEscapeSequence consumes one backslash escape sequence and appends its
// cooked value to b. Escapes without special meaning cook to the escaped
// character itself (\z is z).
func (l *Lexer) readEscapeSequence(b *strings.Builder) *errors.SyntaxError {
	escLine, escCol, escPos := l.line, l.column, l.position
	l.readChar() // consume the backslash

	switch l.ch {
	case 'n':
		b.WriteByte('\n')
	case 't':
		b.WriteByte('\t')
	case 'r':
		b.WriteByte('\r')
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'v':
		b.WriteByte('\v')
	case '0', '1', '2', '3', '4', '5', '6', '7':
		// Legacy octal escape: up to three digits, at most \377. Strict-mode
		// rejection is the parser's call.
		val := int(l.ch - '0')
		max := 3
		if val > 3 {
			max = 2
		}
		for digits := 1; digits < max && isOctalDigit(l.peekChar()); digits++ {
			l.readChar()
			val = val*8 + int(l.ch-'0')
		}
		b.WriteRune(rune(val))
	case 'x':
		v, err := l.readHexDigits(2, escLine, escCol, escPos)
		if err != nil {
			return err
		}
		b.WriteRune(rune(v))
	case 'u':
		r, err := l.readUnicodeEscapeTail(escLine, escCol, escPos)
		if err != nil {
			return err
		}
		b.WriteRune(r)
	case '\n':
		// Line continuation cooks to nothing.
	case '\r':
		if l.peekChar() == '\n' {
			l.readChar()
		}
	case 0:
		return l.syntaxErr(escLine, escCol, escPos, l.position, "unterminated string literal")
	default:
		if l.ch >= utf8.RuneSelf {
			r, size := utf8.DecodeRuneInString(l.input[l.position:])
			b.WriteRune(r)
			for i := 1; i < size; i++ {
				l.readChar()
			}
		} else {
			b.WriteByte(l.ch)
		}
	}
	l.readChar() // consume the final character of the escape
	return nil
}

// readHexDigits consumes exactly n hex digits following the current
// character and returns their value, leaving the last digit current.
func (l *Lexer) readHexDigits(n, errLine, errCol, errPos int) (int, *errors.SyntaxError) {
	val := 0
	for i := 0; i < n; i++ {
		d, ok := hexDigitValue(l.peekChar())
		if !ok {
			return 0, l.syntaxErr(errLine, errCol, errPos, l.position+1, "invalid hexadecimal escape sequence")
		}
		l.readChar()
		val = val*16 + d
	}
	return val, nil
}

// readUnicodeEscapeTail reads the remainder of a \u escape with 'u' current:
// either \uXXXX (combining a trailing low-surrogate escape into one code
// point) or \u{X...}. The escape's last character is left current.
func (l *Lexer) readUnicodeEscapeTail(errLine, errCol, errPos int) (rune, *errors.SyntaxError) {
	if l.peekChar() == '{' {
		l.readChar() // now on '{'
		val := 0
		digits := 0
		for {
			d, ok := hexDigitValue(l.peekChar())
			if !ok {
				break
			}
			l.readChar()
			val = val*16 + d
			digits++
			if val > unicode.MaxRune {
				return 0, l.syntaxErr(errLine, errCol, errPos, l.position+1, "undefined Unicode code point")
			}
		}
		if digits == 0 || l.peekChar() != '}' {
			return 0, l.syntaxErr(errLine, errCol, errPos, l.position+1, "invalid Unicode escape sequence")
		}
		l.readChar() // consume '}'
		return rune(val), nil
	}

	v, err := l.readHexDigits(4, errLine, errCol, errPos)
	if err != nil {
		return 0, err
	}
	r := rune(v)
	if utf16.IsSurrogate(r) && l.peekCharAt(1) == '\\' && l.peekCharAt(2) == 'u' {
		lo := 0
		valid := true
		for i := 3; i <= 6; i++ {
			d, ok := hexDigitValue(l.peekCharAt(i))
			if !ok {
				valid = false
				break
			}
			lo = lo*16 + d
		}
		if valid {
			if full := utf16.DecodeRune(r, rune(lo)); full != utf8.RuneError {
				for i := 0; i < 6; i++ {
					l.readChar()
				}
				return full, nil
			}
		}
	}
	// A lone surrogate cannot be carried in a UTF-8 string; it cooks to
	// the replacement character.
	return r, nil
}

// readNumber reads a numeric literal: decimal with optional fraction and
// exponent, 0x/0o/0b integers, legacy octals, BigInts, and numeric
// separators. The token Literal is the raw source text; value
// interpretation is left to the consumer.
func (l *Lexer) readNumber() (Token, *errors.SyntaxError) {
	startLine, startCol, startPos := l.line, l.column, l.position
	base := 10
	isDecimalFloat := false
	legacyOctal := false

	if l.ch == '0' {
		switch l.peekChar() {
		case 'x', 'X':
			base = 16
			l.readChar()
			l.readChar()
		case 'b', 'B':
			base = 2
			l.readChar()
			l.readChar()
		case 'o', 'O':
			base = 8
			l.readChar()
			l.readChar()
		default:
			if isDigit(l.peekChar()) {
				// Legacy octal (077) or legacy decimal (089). Both are
				// rejected by strict mode; the parser checks via
				// PendingOctalPosition.
				legacyOctal = true
				l.state.markOctal(startPos)
			}
		}
	}

	if base != 10 {
		n, err := l.readDigitRun(base, startLine, startCol, startPos)
		if err != nil {
			return Token{}, err
		}
		if n == 0 {
			return Token{}, l.syntaxErr(startLine, startCol, startPos, l.position, "missing digits after %q prefix", l.input[startPos:l.position])
		}
	} else {
		if legacyOctal {
			// Legacy octal and decimal literals take no separators.
			for isDigit(l.ch) {
				l.readChar()
			}
			if l.ch == '_' {
				return Token{}, l.syntaxErr(startLine, startCol, startPos, l.position+1, "numeric separator must not follow a leading zero")
			}
		} else if l.ch == '0' && l.peekChar() == '_' {
			l.readChar()
			return Token{}, l.syntaxErr(startLine, startCol, startPos, l.position+1, "numeric separator must not follow a leading zero")
		} else if l.ch != '.' {
			if _, err := l.readDigitRun(10, startLine, startCol, startPos); err != nil {
				return Token{}, err
			}
		}
		if l.ch == '.' {
			isDecimalFloat = true
			l.readChar()
			// A trailing dot with no fraction digits is fine: `1.` is 1.0
			// and `1..toString()` lexes as NUMBER DOT IDENT.
			if _, err := l.readDigitRun(10, startLine, startCol, startPos); err != nil {
				return Token{}, err
			}
		}
		if l.ch == 'e' || l.ch == 'E' {
			isDecimalFloat = true
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			n, err := l.readDigitRun(10, startLine, startCol, startPos)
			if err != nil {
				return Token{}, err
			}
			if n == 0 {
				return Token{}, l.syntaxErr(startLine, startCol, startPos, l.position, "missing digits in numeric exponent")
			}
		}
	}

	typ := NUMBER
	if l.ch == 'n' {
		if isDecimalFloat || legacyOctal {
			return Token{}, l.syntaxErr(startLine, startCol, startPos, l.position+1, "invalid BigInt literal")
		}
		l.readChar()
		typ = BIGINT
	}

	if isDigit(l.ch) || isLetter(l.ch) || (l.ch >= utf8.RuneSelf && l.identStartAt(l.position)) {
		return Token{}, l.syntaxErr(startLine, startCol, startPos, l.position+1, "identifier or digit starts immediately after numeric literal")
	}

	return Token{Type: typ, Literal: l.input[startPos:l.position], Line: startLine, Column: startCol, StartPos: startPos, EndPos: l.position}, nil
}

// readDigitRun consumes digits of the given base plus numeric separators and
// returns how many digits it read. A separator must sit between two digits.
func (l *Lexer) readDigitRun(base, errLine, errCol, errPos int) (int, *errors.SyntaxError) {
	count := 0
	for {
		if isDigitForBase(l.ch, base) {
			count++
			l.readChar()
			continue
		}
		if l.ch == '_' {
			if count == 0 || !isDigitForBase(l.peekChar(), base) {
				return count, l.syntaxErr(errLine, errCol, errPos, l.position+1, "numeric separator must be surrounded by digits")
			}
			l.readChar()
			continue
		}
		return count, nil
	}
}

// readIdentifier reads an identifier or keyword and advances the lexer's
// position. The ASCII path returns a slice of the input; Unicode letters and
// \u escapes take the slow path.
func (l *Lexer) readIdentifier() (Token, *errors.SyntaxError) {
	startLine, startCol, startPos := l.line, l.column, l.position

	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	if l.ch != '\\' && l.ch < utf8.RuneSelf {
		literal := l.input[startPos:l.position]
		return Token{Type: LookupIdent(literal), Literal: literal, Line: startLine, Column: startCol, StartPos: startPos, EndPos: l.position}, nil
	}

	return l.readEscapedIdentifier(startLine, startCol, startPos)
}

// readEscapedIdentifier continues an identifier containing Unicode letters
// or \u escapes. The cooked name is NFC-normalized so differently encoded
// spellings of the same identifier compare equal. A keyword spelled with
// escapes (`if`) is an error, not an identifier.
func (l *Lexer) readEscapedIdentifier(startLine, startCol, startPos int) (Token, *errors.SyntaxError) {
	var builder strings.Builder
	builder.WriteString(l.input[startPos:l.position])
	containsEsc := false
	sawUnicode := false

scan:
	for {
		switch {
		case isLetter(l.ch) || isDigit(l.ch):
			builder.WriteByte(l.ch)
			l.readChar()

		case l.ch == '\\':
			containsEsc = true
			escLine, escCol, escPos := l.line, l.column, l.position
			l.readChar()
			if l.ch != 'u' {
				return Token{}, l.syntaxErr(escLine, escCol, escPos, l.position+1, "invalid escape in identifier")
			}
			r, err := l.readUnicodeEscapeTail(escLine, escCol, escPos)
			if err != nil {
				return Token{}, err
			}
			l.readChar() // step past the escape's last character
			if builder.Len() == 0 {
				if !isIdentStartRune(r) {
					return Token{}, l.syntaxErr(escLine, escCol, escPos, l.position, "invalid identifier start %q", r)
				}
			} else if !isIdentPartRune(r) {
				return Token{}, l.syntaxErr(escLine, escCol, escPos, l.position, "invalid identifier character %q", r)
			}
			if r >= utf8.RuneSelf {
				sawUnicode = true
			}
			builder.WriteRune(r)

		case l.ch >= utf8.RuneSelf:
			r, size := utf8.DecodeRuneInString(l.input[l.position:])
			if builder.Len() == 0 {
				if !isIdentStartRune(r) {
					for i := 0; i < size; i++ {
						l.readChar()
					}
					return Token{}, l.syntaxErr(startLine, startCol, startPos, l.position, "unexpected character %q", r)
				}
			} else if !isIdentPartRune(r) {
				break scan
			}
			sawUnicode = true
			builder.WriteString(l.input[l.position : l.position+size])
			for i := 0; i < size; i++ {
				l.readChar()
			}

		default:
			break scan
		}
	}

	name := builder.String()
	if sawUnicode {
		name = norm.NFC.String(name)
	}
	typ := LookupIdent(name)
	if containsEsc && typ != IDENT {
		return Token{}, l.syntaxErr(startLine, startCol, startPos, l.position, "keyword must not contain escape sequences")
	}
	return Token{Type: typ, Literal: name, Line: startLine, Column: startCol, StartPos: startPos, EndPos: l.position}, nil
}

// readRegexLiteral reads a regular-expression literal. Callers only reach it
// when the state machine says an expression may start here; otherwise '/'
// lexes as division. The token Literal is the full /pattern/flags text.
func (l *Lexer) readRegexLiteral() (Token, *errors.SyntaxError) {
	startLine, startCol, startPos := l.line, l.column, l.position
	l.readChar() // consume the opening '/'

	inClass := false
body:
	for {
		switch l.ch {
		case 0, '\n', '\r':
			return Token{}, l.syntaxErr(startLine, startCol, startPos, l.position, "unterminated regular expression")
		case '\\':
			l.readChar()
			if l.ch == 0 || l.ch == '\n' || l.ch == '\r' {
				return Token{}, l.syntaxErr(startLine, startCol, startPos, l.position, "unterminated regular expression")
			}
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '/':
			if !inClass {
				break body
			}
		}
		l.readChar()
	}
	pattern := l.input[startPos+1 : l.position]
	l.readChar() // consume the closing '/'

	flagsStart := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	flags := l.input[flagsStart:l.position]
	for i, f := range flags {
		if !strings.ContainsRune("dgimsuvy", f) {
			return Token{}, l.syntaxErr(startLine, startCol, startPos, l.position, "invalid regular expression flag %q", f)
		}
		if strings.ContainsRune(flags[:i], f) {
			return Token{}, l.syntaxErr(startLine, startCol, startPos, l.position, "duplicate regular expression flag %q", f)
		}
	}

	// Validate the pattern. ECMAScript mode only combines with IgnoreCase
	// and Multiline; dotAll and unicode-mode patterns are checked against
	// the full engine syntax instead.
	var opts regexp2.RegexOptions = regexp2.ECMAScript
	if strings.ContainsAny(flags, "suv") {
		opts = regexp2.None
	}
	if strings.ContainsRune(flags, 'i') {
		opts |= regexp2.IgnoreCase
	}
	if strings.ContainsRune(flags, 'm') {
		opts |= regexp2.Multiline
	}
	if strings.ContainsRune(flags, 's') {
		opts |= regexp2.Singleline
	}
	if _, err := regexp2.Compile(pattern, opts); err != nil {
		return Token{}, l.syntaxErr(startLine, startCol, startPos, l.position, "invalid regular expression: %v", err).CausedBy(err)
	}

	return Token{Type: REGEX_LITERAL, Literal: l.input[startPos:l.position], Line: startLine, Column: startCol, StartPos: startPos, EndPos: l.position}, nil
}

// lineColAt recomputes the line and column of the rune at byte offset pos by
// rescanning from the start of the input. Error paths only; the cursor itself
// tracks just the current position.
func (l *Lexer) lineColAt(pos int) (int, int) {
	line, col := 1, 0
	for i := 0; i <= pos && i < len(l.input); i++ {
		if i > 0 && l.input[i-1] == '\n' {
			line++
			col = 0
		}
		if l.input[i]&0xc0 != 0x80 {
			col++
		}
	}
	return line, col
}

func (l *Lexer) syntaxErr(line, col, start, end int, format string, args ...interface{}) *errors.SyntaxError {
	return &errors.SyntaxError{
		Position: errors.Position{Line: line, Column: col, StartPos: start, EndPos: end, Source: l.src},
		Msg:      fmt.Sprintf(format, args...),
	}
}

// identStartAt reports whether the rune at byte offset pos could start an
// identifier.
func (l *Lexer) identStartAt(pos int) bool {
	r, _ := utf8.DecodeRuneInString(l.input[pos:])
	return isIdentStartRune(r)
}

// isLetter checks if the character is an ASCII letter, underscore or dollar.
func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_' || ch == '$'
}

// isDigit checks if the character is a digit.
func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// isHexDigit checks if the character is a hexadecimal digit (0-9, a-f, A-F).
func isHexDigit(ch byte) bool {
	return ('0' <= ch && ch <= '9') || ('a' <= ch && ch <= 'f') || ('A' <= ch && ch <= 'F')
}

func hexDigitValue(ch byte) (int, bool) {
	switch {
	case '0' <= ch && ch <= '9':
		return int(ch - '0'), true
	case 'a' <= ch && ch <= 'f':
		return int(ch-'a') + 10, true
	case 'A' <= ch && ch <= 'F':
		return int(ch-'A') + 10, true
	}
	return 0, false
}

// isOctalDigit checks if the character is an octal digit (0-7).
func isOctalDigit(ch byte) bool {
	return '0' <= ch && ch <= '7'
}

// isBinaryDigit checks if the character is a binary digit (0-1).
func isBinaryDigit(ch byte) bool {
	return ch == '0' || ch == '1'
}

// isDigitForBase checks if the character is a valid digit for the given base.
func isDigitForBase(ch byte, base int) bool {
	switch base {
	case 16:
		return isHexDigit(ch)
	case 10:
		return isDigit(ch)
	case 8:
		return isOctalDigit(ch)
	case 2:
		return isBinaryDigit(ch)
	default:
		return false
	}
}

// isIdentStartRune matches the characters that may open an identifier.
func isIdentStartRune(r rune) bool {
	return r == '$' || r == '_' || unicode.IsLetter(r) || unicode.In(r, unicode.Nl, unicode.Other_ID_Start)
}

// isIdentPartRune matches the characters that may continue an identifier,
// including ZWNJ and ZWJ.
func isIdentPartRune(r rune) bool {
	return isIdentStartRune(r) ||
		r == '\u200c' || r == '\u200d' ||
		unicode.In(r, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc, unicode.Other_ID_Continue)
}
