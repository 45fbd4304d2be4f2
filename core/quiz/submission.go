package quiz

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

var ErrInvalidAnswers = errors.New("answers must be an object mapping question ids to answer ids")

// Submission is the body of a quiz submission: {"answers": {"<question_id>": "<answer_id>", ...}}.
type Submission struct {
	Answers Answers `json:"answers"`
}

// AnswerPair is one submitted choice of an answer for a question.
type AnswerPair struct {
	QuestionID string
	AnswerID   string
}

// ids returns the numeric ids of the pair; ok is false when either is not an integer.
func (p AnswerPair) ids() (questionID, answerID int, ok bool) {
	qID, err := strconv.Atoi(strings.TrimSpace(p.QuestionID))
	if err != nil {
		return 0, 0, false
	}
	aID, err := strconv.Atoi(strings.TrimSpace(p.AnswerID))
	if err != nil {
		return 0, 0, false
	}
	return qID, aID, true
}

// Answers keeps the submitted pairs in body order.
// Repeated question ids are all kept, each one is graded on its own.
type Answers []AnswerPair

func (a *Answers) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil { // null
		*a = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return ErrInvalidAnswers
	}

	pairs := make(Answers, 0)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)

		var val interface{}
		if err := dec.Decode(&val); err != nil {
			return err
		}
		pairs = append(pairs, AnswerPair{QuestionID: key, AnswerID: idString(val)})
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return err
	}
	*a = pairs
	return nil
}

// idString accepts ids sent as JSON strings or numbers; anything else can never match an answer.
func idString(val interface{}) string {
	switch v := val.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return ""
	}
}
