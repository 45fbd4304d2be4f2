package quiz_test

import (
	"context"
	"encoding/json"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/codedaily/core"
	"github.com/trezcool/codedaily/core/course"
	"github.com/trezcool/codedaily/core/quiz"
	"github.com/trezcool/codedaily/storage/database/dummy"
	"github.com/trezcool/codedaily/tests"
)

func answersFor(t *testing.T, pairs ...[2]int) quiz.Answers {
	t.Helper()
	body := "{"
	for i, p := range pairs {
		if i > 0 {
			body += ","
		}
		body += `"` + strconv.Itoa(p[0]) + `":` + strconv.Itoa(p[1])
	}
	body += "}"

	var answers quiz.Answers
	require.NoError(t, json.Unmarshal([]byte(body), &answers))
	return answers
}

func TestService_Submit(t *testing.T) {
	db := dummydb.Open()
	courseRepo := dummydb.NewCourseRepository(db)
	quizRepo := dummydb.NewQuizRepository(db)
	svc := quiz.NewService(quizRepo, course.NewService(courseRepo))
	ctx := context.Background()

	_, _, lesson := testutil.CreateLesson(t, courseRepo, "go")
	_, _, emptyLesson := testutil.CreateLesson(t, courseRepo, "empty")
	qz := testutil.CreateQuiz(t, quizRepo, lesson.ID,
		[]bool{true, false},
		[]bool{false, true},
		[]bool{true, false},
		[]bool{false, true},
	)
	empty := testutil.CreateQuiz(t, quizRepo, emptyLesson.ID)
	q := qz.Questions

	t.Run("three correct one wrong", func(t *testing.T) {
		res, err := svc.Submit(ctx, "user-1", qz.ID, answersFor(t,
			[2]int{q[0].ID, q[0].Answers[0].ID},
			[2]int{q[1].ID, q[1].Answers[1].ID},
			[2]int{q[2].ID, q[2].Answers[0].ID},
			[2]int{q[3].ID, q[3].Answers[0].ID},
		))
		require.NoError(t, err)
		assert.Equal(t, quiz.Result{Score: 75, CorrectCount: 3, Total: 4}, res)
	})

	t.Run("two submits record two attempts", func(t *testing.T) {
		answers := answersFor(t, [2]int{q[0].ID, q[0].Answers[0].ID})
		for i := 0; i < 2; i++ {
			res, err := svc.Submit(ctx, "user-2", qz.ID, answers)
			require.NoError(t, err)
			assert.Equal(t, 25.0, res.Score)
		}

		attempts, err := svc.QueryAttempts(ctx, quiz.AttemptFilter{UserID: "user-2"}, nil)
		require.NoError(t, err)
		require.Len(t, attempts, 2)
		assert.NotEqual(t, attempts[0].ID, attempts[1].ID)
		assert.Greater(t, attempts[0].ID, attempts[1].ID) // newest first
		for _, a := range attempts {
			assert.Equal(t, qz.ID, a.QuizID)
			assert.Equal(t, 25.0, a.Score)
			assert.Equal(t, "UTC", a.AttemptedAt.Location().String())
		}
	})

	t.Run("answer submitted under another question", func(t *testing.T) {
		res, err := svc.Submit(ctx, "user-3", qz.ID, answersFor(t, [2]int{q[1].ID, q[0].Answers[0].ID}))
		require.NoError(t, err)
		assert.Equal(t, quiz.Result{Score: 0, CorrectCount: 0, Total: 4}, res)
	})

	t.Run("unknown quiz", func(t *testing.T) {
		_, err := svc.Submit(ctx, "user-4", 9999, nil)
		assert.Equal(t, quiz.ErrQuizNotFound, err)
		assert.True(t, core.IsNotFound(err))

		attempts, _ := svc.QueryAttempts(ctx, quiz.AttemptFilter{UserID: "user-4"}, nil)
		assert.Empty(t, attempts)
	})

	t.Run("empty quiz", func(t *testing.T) {
		_, err := svc.Submit(ctx, "user-5", empty.ID, nil)
		assert.Equal(t, quiz.ErrEmptyQuiz, err)

		attempts, _ := svc.QueryAttempts(ctx, quiz.AttemptFilter{UserID: "user-5"}, nil)
		assert.Empty(t, attempts)
	})
}

func TestService_Create(t *testing.T) {
	db := dummydb.Open()
	courseRepo := dummydb.NewCourseRepository(db)
	svc := quiz.NewService(dummydb.NewQuizRepository(db), course.NewService(courseRepo))
	validate, _ := testutil.NewValidator()
	ctx := context.Background()

	_, _, lesson := testutil.CreateLesson(t, courseRepo, "go")

	nq := quiz.NewQuiz{
		LessonID: lesson.ID,
		Title:    "  Go basics ",
		Questions: []quiz.NewQuestion{
			{Text: "Zero value of int?", Answers: []quiz.NewAnswer{{Text: "0", IsCorrect: true}, {Text: "nil"}}},
		},
	}
	require.NoError(t, nq.Validate(ctx, validate, svc))
	qz, err := svc.Create(ctx, nq)
	require.NoError(t, err)
	assert.Equal(t, "Go basics", qz.Title)

	got, err := svc.GetForLesson(ctx, lesson.ID)
	require.NoError(t, err)
	assert.Equal(t, qz, got)

	t.Run("lesson already has a quiz", func(t *testing.T) {
		err := nq.Validate(ctx, validate, svc)
		var verr *core.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, quiz.ErrQuizExists, verr.Err)
	})

	t.Run("unknown lesson", func(t *testing.T) {
		bad := quiz.NewQuiz{LessonID: 9999, Title: "x"}
		err := bad.Validate(ctx, validate, svc)
		var verr *core.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "lesson", verr.Fields[0].Field)
	})
}
