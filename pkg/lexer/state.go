package lexer

import (
	"tokenati/pkg/errors"
)

// This file is the context-sensitivity core of the tokenizer: a small amount
// of history (the previous token's classification, whether a line break
// preceded the current token) plus a stack of nested lexical contexts. That
// is enough to answer the three classic ambiguities of JavaScript lexing:
// whether `/` starts a regular expression or divides, whether `{` opens a
// block or an object literal, and where ASI-sensitive line breaks change the
// meaning of the next identifier.

// classKind tags a tokenClass. Tokens with bespoke ASI/regex significance
// get dedicated kinds because their before-expression answer is a fixed
// constant; everything else is classOther with a per-token-kind constant.
type classKind int

const (
	classNone classKind = iota // no previous token yet
	classTemplate
	classDot
	classColon
	classLBrace
	classRParen
	classSemi
	classBinOp
	classKeyword
	classOther
)

// tokenClass is the classification of a concrete token used for context
// decisions. It is a small copyable value; the zero value means "no previous
// token".
type tokenClass struct {
	kind   classKind
	tok    TokenType // operator for classBinOp, keyword for classKeyword
	before bool      // before-expression constant for classOther
}

func classify(t Token) tokenClass {
	switch t.Type {
	case TEMPLATE:
		return tokenClass{kind: classTemplate}
	case DOT:
		return tokenClass{kind: classDot}
	case COLON:
		return tokenClass{kind: classColon}
	case LBRACE:
		return tokenClass{kind: classLBrace}
	case RPAREN:
		return tokenClass{kind: classRParen}
	case SEMICOLON:
		return tokenClass{kind: classSemi}
	}
	if IsBinaryOperator(t.Type) {
		return tokenClass{kind: classBinOp, tok: t.Type}
	}
	if IsKeyword(t.Type) {
		return tokenClass{kind: classKeyword, tok: t.Type}
	}
	return tokenClass{kind: classOther, before: BeforeExpr(t.Type)}
}

// beforeExpr answers "does an expression grammatically follow this token?".
// The first six kinds have fixed answers; operators and keywords look up
// their per-token constant.
func (c tokenClass) beforeExpr() bool {
	switch c.kind {
	case classTemplate, classDot, classRParen:
		return false
	case classColon, classLBrace, classSemi:
		return true
	case classBinOp, classKeyword:
		return BeforeExpr(c.tok)
	default:
		return c.before
	}
}

// The algorithm used to determine whether a regular expression can appear at
// a given point in the program is loosely based on sweet.js' approach.
// See https://github.com/mozilla/sweet.js/wiki/design
type contextKind int

const (
	ctxBraceStmt contextKind = iota // `{` opening a block statement
	ctxBraceExpr                    // `{` opening an object literal
	ctxTplQuasi                     // inside a `${ ... }` interpolation
	ctxParenStmt                    // `(` following if/with/while/for
	ctxParenExpr                    // any other `(`
	ctxTpl                          // inside a template literal's raw text
	ctxFnExpr                       // `function` used as a value
)

// context is one marker on the lexical context stack.
type context struct {
	kind      contextKind
	isForLoop bool // ctxParenStmt: whether the paren follows `for`
	start     int  // ctxTpl: byte offset of the opening backtick
}

// isExpr reports whether this context denotes an expression position.
func (c context) isExpr() bool {
	switch c.kind {
	case ctxBraceExpr, ctxTplQuasi, ctxParenExpr, ctxTpl, ctxFnExpr:
		return true
	}
	return false
}

// preservesSpace reports whether literal whitespace inside this context must
// be kept as token text rather than skipped. Only raw template text does.
func (c context) preservesSpace() bool {
	return c.kind == ctxTpl
}

// contextStack is the ordered, growable stack of lexical-context markers.
// No operation panics; popping an empty stack reports false and callers
// treat that as "top level, no enclosing context".
type contextStack struct {
	stack []context
}

func (cs *contextStack) push(c context) {
	cs.stack = append(cs.stack, c)
}

func (cs *contextStack) pop() (context, bool) {
	if len(cs.stack) == 0 {
		return context{}, false
	}
	c := cs.stack[len(cs.stack)-1]
	cs.stack = cs.stack[:len(cs.stack)-1]
	return c, true
}

func (cs *contextStack) current() (context, bool) {
	if len(cs.stack) == 0 {
		return context{}, false
	}
	return cs.stack[len(cs.stack)-1], true
}

func (cs *contextStack) depth() int {
	return len(cs.stack)
}

// isBraceBlock decides whether an upcoming `{` opens a statement block,
// given the previous token's classification, whether a line break preceded
// the brace, and the current expression-expected flag.
func (cs *contextStack) isBraceBlock(prev tokenClass, hadLineBreak, exprAllowed bool) bool {
	if prev.kind == classColon {
		// In `{ a: {} }` the inner brace after a colon inherits the kind
		// of the enclosing brace; a colon in label position does not.
		if cur, ok := cs.current(); ok {
			switch cur.kind {
			case ctxBraceStmt:
				return true
			case ctxBraceExpr:
				return false
			}
		}
	}

	switch prev.kind {
	case classKeyword:
		switch prev.tok {
		//  function a() {
		//      return { a: "" };
		//  }
		//  function a() {
		//      return
		//      {
		//          function b(){}
		//      };
		//  }
		case RETURN, YIELD:
			return hadLineBreak
		case ELSE:
			return true
		}

	case classSemi, classNone, classRParen:
		return true

	// If the previous token was `{`, nested statement blocks stay statements.
	case classLBrace:
		cur, ok := cs.current()
		return ok && cur.kind == ctxBraceStmt

	case classBinOp:
		// `class C<T> { ... }`
		if prev.tok == LT || prev.tok == GT {
			return true
		}
	}

	return !exprAllowed
}

// state holds everything the tokenizer remembers between tokens: the
// previous token's classification, the expression-expected flag, the
// line-break flag, and the context stack. One state instance lives exactly
// as long as one tokenization session.
type state struct {
	exprAllowed  bool
	octalPos     int // byte offset of a pending legacy octal literal, -1 when none
	hadLineBreak bool
	isFirst      bool
	prevClass    tokenClass
	ctx          contextStack
}

// newState seeds the context stack with one brace-statement marker
// representing the top-level program body; it must never underflow.
func newState() state {
	return state{
		exprAllowed: true,
		octalPos:    -1,
		isFirst:     true,
		ctx:         contextStack{stack: []context{{kind: ctxBraceStmt}}},
	}
}

func (s *state) canSkipSpace() bool {
	cur, ok := s.ctx.current()
	return !(ok && cur.preservesSpace())
}

func (s *state) lastWasTemplateElement() bool {
	return s.prevClass.kind == classTemplate
}

// expressionAllowed and markOctal form the narrow view of session state the
// character scanner reads back: the expression flag decides slash
// disambiguation, and legacy octals are recorded for the parser's
// strict-mode check.
func (s *state) expressionAllowed() bool { return s.exprAllowed }
func (s *state) markOctal(pos int)       { s.octalPos = pos }

// update is the single mutating operation of the lexer state, invoked once
// per produced token. It records the token's classification and computes the
// next expression-expected flag, mutating the context stack in place.
func (s *state) update(start int, tok Token) {
	prev := s.prevClass
	s.prevClass = classify(tok)

	s.exprAllowed = isExprAllowedOnNext(&s.ctx, prev, start, tok, s.hadLineBreak, s.exprAllowed)
}

// isExprAllowedOnNext dispatches on the newly produced token; each branch
// encodes one grammatical ambiguity of JavaScript resolvable only with one
// token of lookback plus nesting context. exprAllowed is the previous value
// of the flag, start the byte offset of the new token.
func isExprAllowedOnNext(ctx *contextStack, prev tokenClass, start int, tok Token, hadLineBreak, exprAllowed bool) bool {
	if IsKeyword(tok.Type) && prev.kind == classDot {
		// Property access: `obj.if` loses its keyword-ness.
		return false
	}

	switch tok.Type {
	case RPAREN, RBRACE:
		// Unbalanced closers at the seed marker keep the safe default.
		if ctx.depth() == 1 {
			return true
		}

		out, _ := ctx.pop()

		// let a = function(){}
		if out.kind == ctxBraceStmt {
			if cur, ok := ctx.current(); ok && cur.kind == ctxFnExpr {
				ctx.pop()
				return false
			}
		}

		// ${} in template
		if out.kind == ctxTplQuasi {
			return true
		}

		// expression cannot follow expression
		return !out.isExpr()

	case FUNCTION:
		// This is required to lex
		// `x = function(){}/42/i`
		if exprAllowed && !ctx.isBraceBlock(prev, hadLineBreak, exprAllowed) {
			ctx.push(context{kind: ctxFnExpr})
		}
		return false

	case OF:
		// for (a of b) {}
		if cur, ok := ctx.current(); ok && cur.kind == ctxParenStmt && cur.isForLoop {
			if prev.kind == classNone {
				panic(&errors.InternalError{
					Position: errors.Position{StartPos: start, EndPos: start},
					Msg:      "for-loop paren context with no previous token",
				})
			}
			// e.g. for (a of _) => true
			return !prev.beforeExpr()
		}
		// Outside a for-loop header `of` is an ordinary identifier,
		// declaration ASI rule included.
		return identAllowsExpr(prev, hadLineBreak)

	case IDENT:
		return identAllowsExpr(prev, hadLineBreak)

	case LBRACE:
		kind := ctxBraceExpr
		if ctx.isBraceBlock(prev, hadLineBreak, exprAllowed) {
			kind = ctxBraceStmt
		}
		ctx.push(context{kind: kind})
		return true

	case DOLLAR_LBRACE:
		ctx.push(context{kind: ctxTplQuasi})
		return true

	case LPAREN:
		// if, for, with, while open statement parens.
		c := context{kind: ctxParenExpr}
		if prev.kind == classKeyword {
			switch prev.tok {
			case IF, WITH, WHILE:
				c = context{kind: ctxParenStmt}
			case FOR:
				c = context{kind: ctxParenStmt, isForLoop: true}
			}
		}
		ctx.push(c)
		return true

	case INC, DEC:
		// remains unchanged
		return exprAllowed

	case BACKTICK:
		// If we are in a template, ` terminates it; otherwise it opens one.
		if cur, ok := ctx.current(); ok && cur.kind == ctxTpl {
			ctx.pop()
		} else {
			ctx.push(context{kind: ctxTpl, start: start})
		}
		return false
	}

	return BeforeExpr(tok.Type)
}

// identAllowsExpr is the identifier arm of the dispatch: variable declaration
// plus automatic semicolon insertion. `let\nx` starts a new statement whose
// first token is x, so an expression may begin there.
func identAllowsExpr(prev tokenClass, hadLineBreak bool) bool {
	if hadLineBreak && prev.kind == classKeyword {
		switch prev.tok {
		case LET, CONST, VAR:
			return true
		}
	}
	return false
}
