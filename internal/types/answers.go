package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// AnswerValue holds a raw answer: a Likert integer or a binary choice ("A", "B" or a pole letter).
// It unmarshals from either a JSON number or a JSON string.
type AnswerValue string

// LikertValue builds an AnswerValue from a Likert integer.
func LikertValue(v int) AnswerValue {
	return AnswerValue(strconv.Itoa(v))
}

// Int returns the value as an integer, if it is one.
func (v AnswerValue) Int() (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(string(v)))
	if err != nil {
		return 0, false
	}
	return n, true
}

// UnmarshalJSON accepts numbers and strings.
func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = AnswerValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("answer value must be a number or string: %w", err)
	}
	*v = AnswerValue(n.String())
	return nil
}

// MarshalJSON writes integers as numbers and everything else as strings.
func (v AnswerValue) MarshalJSON() ([]byte, error) {
	if n, ok := v.Int(); ok {
		return []byte(strconv.Itoa(n)), nil
	}
	return json.Marshal(string(v))
}

// Answer is a participant's response to a single question.
type Answer struct {
	QuestionID int         `json:"question_id" validate:"required,gt=0"`
	Value      AnswerValue `json:"value" validate:"required"`
}
