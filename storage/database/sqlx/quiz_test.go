package sqlxrepos_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/codedaily/core"
	"github.com/trezcool/codedaily/core/quiz"
	"github.com/trezcool/codedaily/storage/database/sqlx"
	"github.com/trezcool/codedaily/tests"
)

func itoa(i int) string {
	return strconv.Itoa(i)
}

func Test_quizRepository(t *testing.T) {
	db := testutil.PrepareDB(t)
	repo := sqlxrepos.NewQuizRepository(db)
	ctx := context.Background()

	usr := testutil.CreateUser(t, sqlxrepos.NewUserRepository(db), "ada@test.dev", "Ada", "", "", true)
	_, _, lesson := testutil.CreateLesson(t, sqlxrepos.NewCourseRepository(db), "sql")
	_, _, bareLesson := testutil.CreateLesson(t, sqlxrepos.NewCourseRepository(db), "bare")

	qz := testutil.CreateQuiz(t, repo, lesson.ID,
		[]bool{true, false, false},
		[]bool{false, true},
	)
	bare := testutil.CreateQuiz(t, repo, bareLesson.ID)

	t.Run("get by lesson", func(t *testing.T) {
		got, err := repo.GetQuizByLessonID(ctx, lesson.ID)
		require.NoError(t, err)
		assert.Equal(t, qz, got)

		got, err = repo.GetQuizByLessonID(ctx, bareLesson.ID)
		require.NoError(t, err)
		assert.NotNil(t, got.Questions)
		assert.Empty(t, got.Questions)

		_, err = repo.GetQuizByLessonID(ctx, 999)
		assert.Equal(t, quiz.ErrQuizNotFound, err)
	})

	t.Run("get by id", func(t *testing.T) {
		got, err := repo.GetQuizByID(ctx, qz.ID)
		require.NoError(t, err)
		assert.Equal(t, qz.Title, got.Title)
		assert.Empty(t, got.Questions)

		_, err = repo.GetQuizByID(ctx, 999)
		assert.Equal(t, quiz.ErrQuizNotFound, err)
	})

	t.Run("count questions", func(t *testing.T) {
		n, err := repo.CountQuestions(ctx, qz.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		n, err = repo.CountQuestions(ctx, bare.ID)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("find answer", func(t *testing.T) {
		q1, q2 := qz.Questions[0], qz.Questions[1]

		got, err := repo.FindAnswer(ctx, q1.ID, q1.Answers[0].ID)
		require.NoError(t, err)
		assert.True(t, got.IsCorrect)

		// correct answer of q1 submitted under q2
		_, err = repo.FindAnswer(ctx, q2.ID, q1.Answers[0].ID)
		assert.Equal(t, quiz.ErrAnswerNotFound, err)
	})

	t.Run("attempts", func(t *testing.T) {
		t1 := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
		t2 := t1.Add(time.Hour)

		a1, err := repo.CreateAttempt(ctx, quiz.Attempt{UserID: usr.ID, QuizID: qz.ID, Score: 50, AttemptedAt: t1})
		require.NoError(t, err)
		a2, err := repo.CreateAttempt(ctx, quiz.Attempt{UserID: usr.ID, QuizID: qz.ID, Score: 50, AttemptedAt: t2})
		require.NoError(t, err)
		assert.NotEqual(t, a1.ID, a2.ID)

		got, err := repo.QueryAttempts(ctx, quiz.AttemptFilter{UserID: usr.ID}, []core.DBOrdering{{Field: "attempted_at"}})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, a2.ID, got[0].ID)
		assert.True(t, got[0].AttemptedAt.Equal(t2))
		assert.Equal(t, 50.0, got[1].Score)

		got, err = repo.QueryAttempts(ctx, quiz.AttemptFilter{QuizID: bare.ID}, nil)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}
