package errors

import (
	"fmt"
	"io"
	"strings"
)

// TokenatiError is the interface implemented by all tokenati errors.
type TokenatiError interface {
	error // Embed the standard error interface
	Pos() Position
	Kind() string // e.g., "Syntax", "Internal"
	// Message returns the specific error message without position info.
	// This might be useful if the caller wants to format the error differently.
	Message() string
	Unwrap() error // For error wrapping support (errors.Is/As)
}

// --- Concrete Error Types ---

// SyntaxError represents a character-level scan failure: a malformed escape,
// an unterminated literal or comment, an invalid regular expression. It is
// never thrown across the token stream; the lexer converts it into an ILLEGAL
// token and the parser decides whether to recover or abort.
type SyntaxError struct {
	Position
	Msg   string
	Cause error // Underlying cause, if any
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("Syntax Error at %d:%d: %s", e.Line, e.Column, e.Msg)
}
func (e *SyntaxError) Pos() Position   { return e.Position }
func (e *SyntaxError) Kind() string    { return "Syntax" }
func (e *SyntaxError) Message() string { return e.Msg }
func (e *SyntaxError) Unwrap() error   { return e.Cause }
func (e *SyntaxError) CausedBy(cause error) *SyntaxError {
	e.Cause = cause
	return e
}

// InternalError represents an invariant violation inside the lexer state
// machine itself (e.g. a contextual-keyword rule invoked with no previous
// token). It signals a logic defect, not bad user input: the state machine
// panics with an *InternalError and the session is not recoverable.
type InternalError struct {
	Position
	Msg string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("Internal Error at %d:%d: %s", e.Line, e.Column, e.Msg)
}
func (e *InternalError) Pos() Position   { return e.Position }
func (e *InternalError) Kind() string    { return "Internal" }
func (e *InternalError) Message() string { return e.Msg }
func (e *InternalError) Unwrap() error   { return nil }

// --- Error Reporting ---

// DisplayErrors prints a list of tokenati errors to w in a user-friendly
// format, including the source line and position marker.
func DisplayErrors(w io.Writer, source string, errors []TokenatiError) {
	if len(errors) == 0 {
		return
	}

	lines := strings.Split(source, "\n")

	for _, err := range errors {
		pos := err.Pos()
		kind := err.Kind()
		msg := err.Message()

		// Ensure line numbers are within bounds (1-based index)
		lineIdx := pos.Line - 1
		if lineIdx < 0 || lineIdx >= len(lines) {
			// Print a generic error if line info is invalid
			fmt.Fprintf(w, "%s Error: %s\n", kind, msg)
			continue
		}

		sourceLine := lines[lineIdx]
		if pos.Source != nil {
			sourceLine = pos.Source.Line(pos.Line)
		}
		trimmedLine := strings.TrimRight(sourceLine, "\r\n\t ") // Trim trailing whitespace for cleaner output

		// Print error location and message
		// Format: <Kind> Error at <Line>:<Column>: <Message>
		fmt.Fprintf(w, "%s Error at %d:%d: %s\n", kind, pos.Line, pos.Column, msg)

		// Print the source line
		fmt.Fprintf(w, "  %s\n", trimmedLine)

		// Print the marker line (^). Column is 1-based, the marker sits under
		// the offending rune.
		col := pos.Column
		if col < 1 {
			col = 1
		}
		marker := strings.Repeat(" ", col-1) + "^"
		fmt.Fprintf(w, "  %s\n", marker)
		fmt.Fprintln(w) // Add a blank line between errors
	}
}
