package quiz

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/codedaily/core"
)

type (
	Quiz struct {
		ID        int        `json:"id"`
		LessonID  int        `json:"-"`
		Title     string     `json:"title"`
		Questions []Question `json:"questions"`
	}

	Question struct {
		ID      int      `json:"id"`
		QuizID  int      `json:"-"`
		Text    string   `json:"text"`
		Answers []Answer `json:"answers"`
	}

	// Answer.IsCorrect is only used server side for grading, it is never serialized.
	Answer struct {
		ID         int    `json:"id"`
		QuestionID int    `json:"-"`
		Text       string `json:"text"`
		IsCorrect  bool   `json:"-"`
	}

	Attempt struct {
		ID          int       `json:"id"`
		UserID      string    `json:"user"`
		QuizID      int       `json:"quiz"`
		Score       float64   `json:"score"`
		AttemptedAt time.Time `json:"attempted_at"` // UTC
	}
)

// NewQuiz contains information needed to create a Quiz with its questions and answers.
type NewQuiz struct {
	LessonID  int           `json:"lesson" validate:"required"`
	Title     string        `json:"title" validate:"required,max=255"`
	Questions []NewQuestion `json:"questions" validate:"dive"`
}

type NewQuestion struct {
	Text    string      `json:"text" validate:"required"`
	Answers []NewAnswer `json:"answers" validate:"dive"`
}

type NewAnswer struct {
	Text      string `json:"text" validate:"required,max=255"`
	IsCorrect bool   `json:"is_correct"`
}

func (nq *NewQuiz) Validate(ctx context.Context, validate *validator.Validate, svc *Service) error {
	nq.Title = core.CleanString(nq.Title)
	for i := range nq.Questions {
		nq.Questions[i].Text = core.CleanString(nq.Questions[i].Text)
		for j := range nq.Questions[i].Answers {
			nq.Questions[i].Answers[j].Text = core.CleanString(nq.Questions[i].Answers[j].Text)
		}
	}

	if err := validate.Struct(nq); err != nil {
		return err
	}
	return svc.checkLesson(ctx, nq.LessonID)
}

type AttemptFilter struct {
	UserID string
	QuizID int
}
