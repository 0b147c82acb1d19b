package lexer

import (
	"testing"
)

func TestRegexLiterals(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []TokenType
		literals []string
	}{
		{
			name:     "Simple regex",
			input:    "/hello/",
			expected: []TokenType{REGEX_LITERAL, EOF},
			literals: []string{"/hello/", ""},
		},
		{
			name:     "Regex with flags",
			input:    "/world/gi",
			expected: []TokenType{REGEX_LITERAL, EOF},
			literals: []string{"/world/gi", ""},
		},
		{
			name:     "Complex regex",
			input:    "/complex[A-Z]+/m",
			expected: []TokenType{REGEX_LITERAL, EOF},
			literals: []string{"/complex[A-Z]+/m", ""},
		},
		{
			name:     "Assignment context",
			input:    "let x = /test/i;",
			expected: []TokenType{LET, IDENT, ASSIGN, REGEX_LITERAL, SEMICOLON, EOF},
			literals: []string{"let", "x", "=", "/test/i", ";", ""},
		},
		{
			name:     "Escaped slash in pattern",
			input:    `/a\/b/`,
			expected: []TokenType{REGEX_LITERAL, EOF},
			literals: []string{`/a\/b/`, ""},
		},
		{
			name:     "Slash inside character class",
			input:    "/[/]/",
			expected: []TokenType{REGEX_LITERAL, EOF},
			literals: []string{"/[/]/", ""},
		},
		{
			name:     "Division vs regex - division",
			input:    "5 / 2",
			expected: []TokenType{NUMBER, SLASH, NUMBER, EOF},
			literals: []string{"5", "/", "2", ""},
		},
		{
			name:     "Division vs regex - regex after paren",
			input:    "(/pattern/)",
			expected: []TokenType{LPAREN, REGEX_LITERAL, RPAREN, EOF},
			literals: []string{"(", "/pattern/", ")", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLexer(tt.input)

			for i, expectedToken := range tt.expected {
				tok := l.NextToken()
				if tok.Type != expectedToken {
					t.Errorf("test[%d] - tokentype wrong. expected=%q, got=%q", i, expectedToken, tok.Type)
				}
				if i < len(tt.literals) && tok.Literal != tt.literals[i] {
					t.Errorf("test[%d] - literal wrong. expected=%q, got=%q", i, tt.literals[i], tok.Literal)
				}
			}
		})
	}
}

// TestRegexVsDivision covers the cases where a '/' is only readable with the
// context stack: what the previous token was is not enough to decide.
func TestRegexVsDivision(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []TokenType
	}{
		{
			name:     "Division after identifier",
			input:    "a / b",
			expected: []TokenType{IDENT, SLASH, IDENT, EOF},
		},
		{
			name:     "Regex after return",
			input:    "return /x/g",
			expected: []TokenType{RETURN, REGEX_LITERAL, EOF},
		},
		{
			name:     "Regex after typeof",
			input:    "typeof /re/",
			expected: []TokenType{TYPEOF, REGEX_LITERAL, EOF},
		},
		{
			name:     "Regex after binary operator",
			input:    "a + /re/.source",
			expected: []TokenType{IDENT, PLUS, REGEX_LITERAL, DOT, IDENT, EOF},
		},
		{
			name:     "Division after index expression",
			input:    "a[0] / 2",
			expected: []TokenType{IDENT, LBRACKET, NUMBER, RBRACKET, SLASH, NUMBER, EOF},
		},
		{
			name:     "Division after parenthesized expression",
			input:    "(a) / 2",
			expected: []TokenType{LPAREN, IDENT, RPAREN, SLASH, NUMBER, EOF},
		},
		{
			name:  "Regex after if condition",
			input: "if (a) /re/.test(b)",
			expected: []TokenType{
				IF, LPAREN, IDENT, RPAREN, REGEX_LITERAL, DOT, IDENT, LPAREN, IDENT, RPAREN, EOF,
			},
		},
		{
			name:  "Division after function expression body",
			input: "let f = function(){}/42/i;",
			expected: []TokenType{
				LET, IDENT, ASSIGN, FUNCTION, LPAREN, RPAREN, LBRACE, RBRACE,
				SLASH, NUMBER, SLASH, IDENT, SEMICOLON, EOF,
			},
		},
		{
			name:     "Division after object literal",
			input:    "x = {} / 2",
			expected: []TokenType{IDENT, ASSIGN, LBRACE, RBRACE, SLASH, NUMBER, EOF},
		},
		{
			name:     "Regex after block statement",
			input:    "{} /re/",
			expected: []TokenType{LBRACE, RBRACE, REGEX_LITERAL, EOF},
		},
		{
			name:     "Division after postfix increment",
			input:    "i++ / 2",
			expected: []TokenType{IDENT, INC, SLASH, NUMBER, EOF},
		},
		{
			name:     "Regex inside template substitution",
			input:    "`${/re/}`",
			expected: []TokenType{BACKTICK, DOLLAR_LBRACE, REGEX_LITERAL, RBRACE, BACKTICK, EOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLexer(tt.input)

			for i, expectedToken := range tt.expected {
				tok := l.NextToken()
				if tok.Type != expectedToken {
					t.Errorf("test[%d] - tokentype wrong. expected=%q, got=%q (literal: %q)",
						i, expectedToken, tok.Type, tok.Literal)
				}
			}
		})
	}
}

func TestRegexFlags(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:    "Valid flags",
			input:   "/test/gims",
			wantErr: false,
		},
		{
			name:    "Sticky and indices flags",
			input:   "/test/dy",
			wantErr: false,
		},
		{
			name:    "Invalid flag",
			input:   "/test/x",
			wantErr: true,
		},
		{
			name:    "Duplicate flag",
			input:   "/test/gg",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLexer(tt.input)
			tok := l.NextToken()

			if tt.wantErr {
				if tok.Type != ILLEGAL {
					t.Errorf("expected ILLEGAL token for invalid regex, got %q", tok.Type)
				}
			} else {
				if tok.Type != REGEX_LITERAL {
					t.Errorf("expected REGEX_LITERAL token, got %q", tok.Type)
				}
			}
		})
	}
}

func TestRegexPatternValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"Well formed group", "/(a|b)+/", false},
		{"Unclosed group", "/(/", true},
		{"Unclosed quantifier brace is literal", "/a{2/", false},
		{"Unterminated at newline", "/abc\n/", true},
		{"Unterminated at EOF", "/abc", true},
		{"Trailing backslash", "/abc\\", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLexer(tt.input)
			tok := l.NextToken()

			if tt.wantErr && tok.Type != ILLEGAL {
				t.Errorf("expected ILLEGAL token, got %q (literal: %q)", tok.Type, tok.Literal)
			}
			if !tt.wantErr && tok.Type != REGEX_LITERAL {
				t.Errorf("expected REGEX_LITERAL token, got %q (literal: %q)", tok.Type, tok.Literal)
			}
		})
	}
}
