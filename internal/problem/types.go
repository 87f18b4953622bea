package problem

import (
	"fmt"
	"strings"
)

// Type identifies a problem shape. Each type has its own pool and screen.
type Type string

const (
	TypeOX             Type = "OX"              // Binary choice: O (true) or X (false)
	TypeMultipleChoice Type = "MULTIPLE_CHOICE" // Pick one of several options
	TypeFillBlank      Type = "FILL_BLANK"      // Type the missing token
	TypeDebugging      Type = "DEBUGGING"       // Point at the buggy line
)

// AllTypes returns all problem types in display order.
func AllTypes() []Type {
	return []Type{TypeOX, TypeMultipleChoice, TypeFillBlank, TypeDebugging}
}

// Valid reports whether t is a recognized problem type.
func (t Type) Valid() bool {
	switch t {
	case TypeOX, TypeMultipleChoice, TypeFillBlank, TypeDebugging:
		return true
	}
	return false
}

// DisplayName returns a human-readable label for the type.
func (t Type) DisplayName() string {
	switch t {
	case TypeOX:
		return "O/X Quiz"
	case TypeMultipleChoice:
		return "Multiple Choice"
	case TypeFillBlank:
		return "Fill in the Blank"
	case TypeDebugging:
		return "Debugging"
	default:
		return string(t)
	}
}

// ParseType parses a type name case-insensitively. Dashes are accepted in
// place of underscores, so "multiple-choice" parses as TypeMultipleChoice.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_")))
	if !t.Valid() {
		return "", fmt.Errorf("unknown problem type: %q", s)
	}
	return t, nil
}

// Problem is a single immutable practice problem. Fields that only apply
// to some types are left empty for the others.
type Problem struct {
	ID       string `json:"id"`
	Type     Type   `json:"type"`
	Category string `json:"category"`

	// Prompt is the question text shown to the learner.
	Prompt string `json:"prompt"`

	// Answer is the canonical correct answer.
	// OX: "O" or "X". Multiple choice: the text of the correct choice.
	// Fill in the blank: the primary accepted token.
	// Debugging: the buggy line number, e.g. "3".
	Answer string `json:"answer"`

	// Choices is populated only for TypeMultipleChoice.
	Choices []string `json:"choices,omitempty"`

	// Blanks lists additional accepted answers for TypeFillBlank.
	Blanks []string `json:"blanks,omitempty"`

	// Code is the snippet shown for TypeDebugging and TypeFillBlank.
	Code string `json:"code,omitempty"`

	// Explanation is shown after the learner answers.
	Explanation string `json:"explanation"`

	// Hints are disclosed one step at a time, in order.
	Hints []string `json:"hints,omitempty"`
}

// CodeLines splits Code into lines for numbered rendering.
func (p Problem) CodeLines() []string {
	if p.Code == "" {
		return nil
	}
	return strings.Split(strings.TrimRight(p.Code, "\n"), "\n")
}

// HintsUpTo returns the hint texts revealed by the given step (1-based).
func (p Problem) HintsUpTo(step int) []string {
	if step <= 0 || len(p.Hints) == 0 {
		return nil
	}
	if step > len(p.Hints) {
		step = len(p.Hints)
	}
	return p.Hints[:step]
}
