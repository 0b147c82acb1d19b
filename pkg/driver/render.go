package driver

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects how a token stream is rendered.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (want text, json, or yaml)", s)
}

// tokenRecord is the wire form of one token, shared by JSON and YAML. Raw
// carries the source text of the span whenever it differs from the cooked
// literal, e.g. a string with escapes or an error token whose literal is the
// diagnostic message.
type tokenRecord struct {
	Type          string `json:"type" yaml:"type"`
	Literal       string `json:"literal" yaml:"literal"`
	Raw           string `json:"raw,omitempty" yaml:"raw,omitempty"`
	Line          int    `json:"line" yaml:"line"`
	Column        int    `json:"column" yaml:"column"`
	Start         int    `json:"start" yaml:"start"`
	End           int    `json:"end" yaml:"end"`
	NewlineBefore bool   `json:"newlineBefore,omitempty" yaml:"newlineBefore,omitempty"`
}

type errorRecord struct {
	Kind    string `json:"kind" yaml:"kind"`
	Message string `json:"message" yaml:"message"`
	Line    int    `json:"line" yaml:"line"`
	Column  int    `json:"column" yaml:"column"`
}

type resultDocument struct {
	File   string        `json:"file" yaml:"file"`
	Tokens []tokenRecord `json:"tokens" yaml:"tokens"`
	Errors []errorRecord `json:"errors,omitempty" yaml:"errors,omitempty"`
}

func (r *Result) document() resultDocument {
	doc := resultDocument{
		File:   r.Source.DisplayPath(),
		Tokens: make([]tokenRecord, 0, len(r.Tokens)),
	}
	for _, tok := range r.Tokens {
		rec := tokenRecord{
			Type:          string(tok.Type),
			Literal:       tok.Literal,
			Line:          tok.Line,
			Column:        tok.Column,
			Start:         tok.StartPos,
			End:           tok.EndPos,
			NewlineBefore: tok.HadLineBreak,
		}
		if raw := r.Source.Snippet(tok.StartPos, tok.EndPos); raw != tok.Literal {
			rec.Raw = raw
		}
		doc.Tokens = append(doc.Tokens, rec)
	}
	for _, e := range r.Errors {
		pos := e.Pos()
		doc.Errors = append(doc.Errors, errorRecord{
			Kind:    e.Kind(),
			Message: e.Message(),
			Line:    pos.Line,
			Column:  pos.Column,
		})
	}
	return doc
}

// Render writes the token stream to w in the requested format. The text
// format covers tokens only; callers print diagnostics separately so errors
// can go to stderr.
func (r *Result) Render(w io.Writer, format Format) error {
	switch format {
	case FormatText:
		return r.renderText(w)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r.document())
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(r.document()); err != nil {
			enc.Close()
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown format %q", format)
}

// renderText prints one line per token. A leading * marks tokens preceded by
// a line break, the detail automatic semicolon insertion hangs on.
func (r *Result) renderText(w io.Writer) error {
	for _, tok := range r.Tokens {
		mark := " "
		if tok.HadLineBreak {
			mark = "*"
		}
		_, err := fmt.Fprintf(w, "%s%4d:%-4d %-12s %q\n", mark, tok.Line, tok.Column, tok.Type, tok.Literal)
		if err != nil {
			return err
		}
	}
	return nil
}
