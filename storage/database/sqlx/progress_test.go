package sqlxrepos_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/codedaily/core/progress"
	"github.com/trezcool/codedaily/storage/database/sqlx"
	"github.com/trezcool/codedaily/tests"
)

func Test_progressRepository(t *testing.T) {
	db := testutil.PrepareDB(t)
	repo := sqlxrepos.NewProgressRepository(db)
	ctx := context.Background()

	usr := testutil.CreateUser(t, sqlxrepos.NewUserRepository(db), "ada@test.dev", "Ada", "", "", true)
	subj, _, lesson := testutil.CreateLesson(t, sqlxrepos.NewCourseRepository(db), "go")
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	t.Run("enrollment", func(t *testing.T) {
		_, err := repo.GetEnrollment(ctx, usr.ID, subj.ID)
		assert.Equal(t, progress.ErrEnrollmentNotFound, err)

		enr, err := repo.CreateEnrollment(ctx, progress.Enrollment{UserID: usr.ID, SubjectID: subj.ID, EnrolledAt: now})
		require.NoError(t, err)
		assert.NotZero(t, enr.ID)

		got, err := repo.GetEnrollment(ctx, usr.ID, subj.ID)
		require.NoError(t, err)
		assert.Equal(t, enr.ID, got.ID)
		assert.True(t, got.EnrolledAt.Equal(now))

		// unique per (user, subject)
		_, err = repo.CreateEnrollment(ctx, progress.Enrollment{UserID: usr.ID, SubjectID: subj.ID, EnrolledAt: now})
		assert.Error(t, err)
	})

	t.Run("lesson progress", func(t *testing.T) {
		_, err := repo.GetLessonProgress(ctx, usr.ID, lesson.ID)
		assert.Equal(t, progress.ErrProgressNotFound, err)

		lp, err := repo.CreateLessonProgress(ctx, progress.LessonProgress{
			UserID: usr.ID, LessonID: lesson.ID, Status: progress.StatusNotStarted, LastAccessed: now,
		})
		require.NoError(t, err)

		lp.Status = progress.StatusCompleted
		lp.LastAccessed = now.Add(time.Hour)
		_, err = repo.UpdateLessonProgress(ctx, lp)
		require.NoError(t, err)

		got, err := repo.GetLessonProgress(ctx, usr.ID, lesson.ID)
		require.NoError(t, err)
		assert.Equal(t, progress.StatusCompleted, got.Status)
		assert.True(t, got.LastAccessed.Equal(now.Add(time.Hour)))

		records, err := repo.QueryLessonProgress(ctx, usr.ID)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, lp.ID, records[0].ID)

		records, err = repo.QueryLessonProgress(ctx, "someone-else")
		require.NoError(t, err)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	})
}
