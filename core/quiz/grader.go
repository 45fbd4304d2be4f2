package quiz

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"

	"github.com/trezcool/codedaily/core"
)

var ErrEmptyQuiz = core.NewValidationError(errors.New("Quiz has no questions"))

// AnswerStore is the read side used while grading.
type AnswerStore interface {
	// FindAnswer returns the Answer `answerID` only if it belongs to the Question `questionID`.
	// Returns ErrAnswerNotFound otherwise.
	FindAnswer(ctx context.Context, questionID, answerID int) (Answer, error)
}

type Result struct {
	Score        float64 `json:"score"`
	CorrectCount int     `json:"correct_count"`
	Total        int     `json:"total"`
}

// Grade counts the correct pairs of `answers` against the live answer data of `store`.
// total is the quiz's question count: unanswered questions still count in the denominator.
func Grade(ctx context.Context, store AnswerStore, total int, answers Answers) (Result, error) {
	if total == 0 {
		return Result{}, ErrEmptyQuiz
	}

	var correct int
	for _, pair := range answers {
		qID, aID, ok := pair.ids()
		if !ok {
			continue
		}
		ans, err := store.FindAnswer(ctx, qID, aID)
		if err != nil {
			if core.IsNotFound(err) {
				continue
			}
			return Result{}, pkgerrors.Wrap(err, "finding answer")
		}
		if ans.IsCorrect {
			correct++
		}
	}

	return Result{
		Score:        float64(correct) / float64(total) * 100,
		CorrectCount: correct,
		Total:        total,
	}, nil
}
