package quiz

import (
	"context"
	"errors"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/trezcool/codedaily/core"
	"github.com/trezcool/codedaily/core/course"
)

var (
	// errors
	ErrQuizNotFound   = core.NewNotFoundError("quiz")
	ErrAnswerNotFound = core.NewNotFoundError("answer")
	ErrQuizExists     = errors.New("this lesson already has a quiz")

	nowFunc = time.Now // mockable

	attemptOrderings = map[string]string{"attempted_at": "attempted_at", "score": "score", "id": "id"}
	defaultOrdering  = []core.DBOrdering{{Field: "attempted_at"}, {Field: "id"}}
)

type (
	// AttemptRecorder persists graded attempts. There is no update path: every call stores a new Attempt.
	AttemptRecorder interface {
		CreateAttempt(ctx context.Context, attempt Attempt) (Attempt, error)
	}

	Repository interface {
		AnswerStore
		AttemptRecorder

		// CreateQuiz saves the Quiz along with its Questions and their Answers.
		CreateQuiz(ctx context.Context, qz Quiz) (Quiz, error)
		// GetQuizByID does not load the Questions.
		GetQuizByID(ctx context.Context, id int) (Quiz, error)
		GetQuizByLessonID(ctx context.Context, lessonID int) (Quiz, error)
		CountQuestions(ctx context.Context, quizID int) (int, error)
		QueryAttempts(ctx context.Context, filter AttemptFilter, orderings []core.DBOrdering) ([]Attempt, error)
	}

	LessonGetter interface {
		GetLessonByID(ctx context.Context, id int) (course.Lesson, error)
	}

	Service struct {
		repo    Repository
		lessons LessonGetter
	}
)

func NewService(repo Repository, lessons LessonGetter) *Service {
	return &Service{repo: repo, lessons: lessons}
}

func (svc *Service) checkLesson(ctx context.Context, lessonID int) error {
	if _, err := svc.lessons.GetLessonByID(ctx, lessonID); err != nil {
		if core.IsNotFound(err) {
			return core.NewValidationError(err, core.FieldError{Field: "lesson", Error: err.Error()})
		}
		return err
	}
	if _, err := svc.repo.GetQuizByLessonID(ctx, lessonID); err == nil {
		return core.NewValidationError(ErrQuizExists, core.FieldError{Field: "lesson", Error: ErrQuizExists.Error()})
	} else if !core.IsNotFound(err) {
		return err
	}
	return nil
}

func (svc *Service) Create(ctx context.Context, nq NewQuiz) (Quiz, error) {
	qz := Quiz{
		LessonID:  nq.LessonID,
		Title:     nq.Title,
		Questions: make([]Question, 0, len(nq.Questions)),
	}
	for _, nqst := range nq.Questions {
		qst := Question{Text: nqst.Text, Answers: make([]Answer, 0, len(nqst.Answers))}
		for _, nans := range nqst.Answers {
			qst.Answers = append(qst.Answers, Answer{Text: nans.Text, IsCorrect: nans.IsCorrect})
		}
		qz.Questions = append(qz.Questions, qst)
	}
	return svc.repo.CreateQuiz(ctx, qz)
}

// GetForLesson returns the Quiz of a lesson, with its questions and answers, ready to be taken.
func (svc *Service) GetForLesson(ctx context.Context, lessonID int) (Quiz, error) {
	return svc.repo.GetQuizByLessonID(ctx, lessonID)
}

// Submit grades `answers` for the Quiz `quizID` and records a new Attempt for `userID`.
// Fails with ErrQuizNotFound before grading, and with ErrEmptyQuiz when the quiz has no questions.
func (svc *Service) Submit(ctx context.Context, userID string, quizID int, answers Answers) (Result, error) {
	if _, err := svc.repo.GetQuizByID(ctx, quizID); err != nil {
		return Result{}, err
	}

	total, err := svc.repo.CountQuestions(ctx, quizID)
	if err != nil {
		return Result{}, pkgerrors.Wrap(err, "counting questions")
	}

	res, err := Grade(ctx, svc.repo, total, answers)
	if err != nil {
		return Result{}, err
	}

	attempt := Attempt{
		UserID:      userID,
		QuizID:      quizID,
		Score:       res.Score,
		AttemptedAt: nowFunc().UTC(),
	}
	if _, err := svc.repo.CreateAttempt(ctx, attempt); err != nil {
		return Result{}, pkgerrors.Wrap(err, "recording attempt")
	}
	return res, nil
}

// AttemptOrderingFields are the public fields attempts can be ordered by.
func AttemptOrderingFields() []string {
	return []string{"attempted_at", "score", "id"}
}

// QueryAttempts lists attempts, newest first unless `orderings` says otherwise.
func (svc *Service) QueryAttempts(ctx context.Context, filter AttemptFilter, orderings []core.DBOrdering) ([]Attempt, error) {
	return svc.repo.QueryAttempts(ctx, filter, core.CleanOrderings(orderings, attemptOrderings, defaultOrdering...))
}
