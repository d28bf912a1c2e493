package parser

import (
	"fmt"
	"strings"

	"github.com/manav03panchal/blockstage/internal/errors"
)

// ProgramError is a syntax error in program text with helpful examples.
type ProgramError struct {
	Input      string
	Pos        int // byte offset of the offending token
	Message    string
	Examples   []string
	Suggestion string
}

func (e *ProgramError) Error() string {
	return fmt.Sprintf("invalid program at offset %d: %s", e.Pos, e.Message)
}

// Unwrap lets errors.Is match ErrInvalidProgram.
func (e *ProgramError) Unwrap() error {
	return errors.ErrInvalidProgram
}

// ProgramExamples lists valid statements.
var ProgramExamples = []string{
	"move 10",
	"turn -90",
	"goto 0 50",
	`say "Hello!" 2`,
	`think "Hmm..." 1.5`,
	"repeat 4 [ move 20; turn 90 ]",
}

func newProgramError(input string, pos int, format string, args ...any) *ProgramError {
	return &ProgramError{
		Input:      input,
		Pos:        pos,
		Message:    fmt.Sprintf(format, args...),
		Examples:   ProgramExamples,
		Suggestion: "Separate statements with ';' or new lines.",
	}
}

// FormatWithExamples returns the error message with example statements and
// a caret under the offending position.
func (e *ProgramError) FormatWithExamples() string {
	var sb strings.Builder
	sb.WriteString(e.Error())

	if e.Input != "" && !strings.Contains(e.Input, "\n") {
		sb.WriteString("\n\n  ")
		sb.WriteString(e.Input)
		sb.WriteString("\n  ")
		sb.WriteString(strings.Repeat(" ", min(e.Pos, len(e.Input))))
		sb.WriteString("^")
	}

	if len(e.Examples) > 0 {
		sb.WriteString("\n\nValid examples:\n")
		for _, ex := range e.Examples {
			sb.WriteString("  - ")
			sb.WriteString(ex)
			sb.WriteString("\n")
		}
	}

	if e.Suggestion != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Suggestion)
	}

	return sb.String()
}

// ToUserError converts a ProgramError to a UserError for consistent handling.
func (e *ProgramError) ToUserError() *errors.UserError {
	suggestion := e.Suggestion
	if len(e.Examples) > 0 {
		suggestion = fmt.Sprintf("Try: %s", strings.Join(e.Examples[:min(3, len(e.Examples))], ", "))
	}
	return errors.NewUserError(e.Error(), suggestion).Because(errors.ErrInvalidProgram)
}
