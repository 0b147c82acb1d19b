// Package driver ties the lexer to the outside world: it loads sources, runs
// tokenization sessions, and renders or watches the results. The lexer core
// stays free of I/O; everything that touches a filesystem lives here.
package driver

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/afero"

	"tokenati/pkg/errors"
	"tokenati/pkg/lexer"
	"tokenati/pkg/source"
)

// Tokenati is a tokenization session. It carries the filesystem sources are
// read from and the logger watch mode reports through; lexer state is
// per-call, so one session may tokenize any number of inputs.
type Tokenati struct {
	fs     afero.Fs
	logger *slog.Logger
}

// NewTokenati creates a session backed by the host filesystem.
func NewTokenati() *Tokenati {
	return NewTokenatiWithFs(afero.NewOsFs())
}

// NewTokenatiWithFs creates a session reading sources from fs. Tests use an
// afero.NewMemMapFs here.
func NewTokenatiWithFs(fs afero.Fs) *Tokenati {
	return &Tokenati{
		fs:     fs,
		logger: slog.Default(),
	}
}

// SetLogger replaces the session logger. Passing nil restores the default.
func (t *Tokenati) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	t.logger = logger
}

// Result holds everything one tokenization produced.
type Result struct {
	Source *source.SourceFile
	Tokens []lexer.Token
	Errors []errors.TokenatiError
}

// OK reports whether the input scanned without errors.
func (r *Result) OK() bool { return len(r.Errors) == 0 }

// DisplayErrors renders caret diagnostics for every scan error to w.
func (r *Result) DisplayErrors(w io.Writer) {
	errors.DisplayErrors(w, r.Source.Content, r.Errors)
}

// TokenizeString tokenizes inline source code in the current session.
func (t *Tokenati) TokenizeString(sourceCode string) *Result {
	return tokenize(source.NewEvalSource(sourceCode))
}

// TokenizeSource tokenizes an already loaded source file, such as stdin
// input wrapped in a source.NewStdinSource.
func (t *Tokenati) TokenizeSource(src *source.SourceFile) *Result {
	return tokenize(src)
}

// TokenizeFile reads path from the session filesystem and tokenizes its
// contents. The returned error covers I/O only; scan failures land in
// Result.Errors.
func (t *Tokenati) TokenizeFile(path string) (*Result, error) {
	content, err := afero.ReadFile(t.fs, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return tokenize(source.FromFile(path, string(content))), nil
}

// tokenize drains one lexer session into a Result. Scan errors surface both
// as ILLEGAL tokens in the stream and as structured errors.
func tokenize(src *source.SourceFile) *Result {
	l := lexer.NewLexerWithSource(src)

	res := &Result{Source: src}
	for {
		tok := l.NextToken()
		if tok.Type == lexer.EOF {
			break
		}
		res.Tokens = append(res.Tokens, tok)
	}
	res.Errors = l.Errors()
	return res
}

// TokenizeString tokenizes inline source code in a fresh session.
func TokenizeString(sourceCode string) *Result {
	return NewTokenati().TokenizeString(sourceCode)
}
