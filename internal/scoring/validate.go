package scoring

import (
	"fmt"
	"strings"

	"github.com/jonathan/assessment-engine/internal/types"
)

// indexAnswers checks that answers cover every question of cfg exactly once and
// returns them keyed by question ID. Values are checked separately.
func indexAnswers(answers []types.Answer, cfg *types.TestConfig) (map[int]types.AnswerValue, error) {
	questions := cfg.QuestionIndex()
	byID := make(map[int]types.AnswerValue, len(answers))

	for _, a := range answers {
		if _, dup := byID[a.QuestionID]; dup {
			return nil, &Error{Message: "answered more than once", QuestionID: a.QuestionID, Cause: ErrDuplicateAnswer}
		}
		if _, ok := questions[a.QuestionID]; !ok {
			return nil, &Error{
				Message:    fmt.Sprintf("not part of %s", cfg.Taxonomy),
				QuestionID: a.QuestionID,
				Cause:      ErrUnknownQuestion,
			}
		}
		byID[a.QuestionID] = a.Value
	}

	if len(byID) == len(cfg.Questions) {
		return byID, nil
	}

	for _, q := range cfg.Questions {
		if _, ok := byID[q.ID]; !ok {
			return nil, &Error{
				Message:    fmt.Sprintf("no answer given (got %d answers, want %d)", len(byID), len(cfg.Questions)),
				QuestionID: q.ID,
				Cause:      ErrMissingAnswer,
			}
		}
	}

	return nil, &Error{
		Message: fmt.Sprintf("got %d answers, want %d", len(byID), len(cfg.Questions)),
		Cause:   ErrIncompleteAnswers,
	}
}

// likertValue parses and range-checks a Likert answer.
func likertValue(q types.QuestionDef, v types.AnswerValue) (int, error) {
	n, ok := v.Int()
	if !ok || n < types.LikertMin || n > types.LikertMax {
		return 0, &Error{
			Message:    fmt.Sprintf("value %q is not an integer in %d..%d", string(v), types.LikertMin, types.LikertMax),
			QuestionID: q.ID,
			Cause:      ErrValueOutOfRange,
		}
	}
	return n, nil
}

// chosePoleA resolves a binary answer to option A (true) or option B (false).
// Accepted values are "A", "B" or either declared pole letter, case-insensitive.
func chosePoleA(q types.QuestionDef, v types.AnswerValue) (bool, error) {
	s := strings.ToUpper(strings.TrimSpace(string(v)))
	a := strings.ToUpper(q.OptionA.Pole)
	b := strings.ToUpper(q.OptionB.Pole)

	switch s {
	case "A":
		return true, nil
	case "B":
		return false, nil
	case a:
		return true, nil
	case b:
		return false, nil
	}

	return false, &Error{
		Message:    fmt.Sprintf("value %q names neither %s nor %s", string(v), q.OptionA.Pole, q.OptionB.Pole),
		QuestionID: q.ID,
		Cause:      ErrValueOutOfRange,
	}
}
