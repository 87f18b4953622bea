package problem

import (
	"strconv"
	"strings"
)

// Check compares the learner's input against the problem's answer.
//
// Normalization rules:
//   - Whitespace is trimmed and comparison is case-insensitive
//   - OX: "O"/"true"/"yes" and "X"/"false"/"no" are equivalent
//   - Multiple choice: matches the choice text or its 1-based index
//   - Fill in the blank: any of Answer or Blanks is accepted
//   - Debugging: the line number, leading zeros ignored
func (p Problem) Check(userAnswer string) bool {
	userAnswer = strings.TrimSpace(userAnswer)
	if userAnswer == "" {
		return false
	}

	switch p.Type {
	case TypeOX:
		u, ok := normalizeOX(userAnswer)
		if !ok {
			return false
		}
		a, ok := normalizeOX(p.Answer)
		return ok && u == a
	case TypeMultipleChoice:
		return p.checkMultipleChoice(userAnswer)
	case TypeFillBlank:
		if strings.EqualFold(userAnswer, strings.TrimSpace(p.Answer)) {
			return true
		}
		for _, b := range p.Blanks {
			if strings.EqualFold(userAnswer, strings.TrimSpace(b)) {
				return true
			}
		}
		return false
	case TypeDebugging:
		u, err := strconv.Atoi(userAnswer)
		if err != nil {
			return false
		}
		a, err := strconv.Atoi(strings.TrimSpace(p.Answer))
		return err == nil && u == a
	}
	return false
}

func (p Problem) checkMultipleChoice(userAnswer string) bool {
	if idx, err := strconv.Atoi(userAnswer); err == nil && idx >= 1 && idx <= len(p.Choices) {
		return strings.EqualFold(strings.TrimSpace(p.Choices[idx-1]), strings.TrimSpace(p.Answer))
	}
	return strings.EqualFold(userAnswer, strings.TrimSpace(p.Answer))
}

// CorrectChoiceIndex returns the 0-based index of the correct choice, or -1.
func (p Problem) CorrectChoiceIndex() int {
	for i, c := range p.Choices {
		if strings.EqualFold(strings.TrimSpace(c), strings.TrimSpace(p.Answer)) {
			return i
		}
	}
	return -1
}

func normalizeOX(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "o", "true", "yes", "t", "y":
		return true, true
	case "x", "false", "no", "f", "n":
		return false, true
	}
	return false, false
}
