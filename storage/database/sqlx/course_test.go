package sqlxrepos_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/codedaily/core/course"
	"github.com/trezcool/codedaily/storage/database/sqlx"
	"github.com/trezcool/codedaily/tests"
)

func Test_courseRepository(t *testing.T) {
	db := testutil.PrepareDB(t)
	repo := sqlxrepos.NewCourseRepository(db)
	ctx := context.Background()

	subj, topic, lesson := testutil.CreateLesson(t, repo, "go-basics",
		course.CodeExample{Language: "go", CodeText: "fmt.Println(1)"},
		course.CodeExample{Language: "go", CodeText: "fmt.Println(2)"},
	)
	// created after but ordered first
	first, err := repo.CreateTopic(ctx, course.Topic{SubjectID: subj.ID, Title: "Intro", OrderIndex: 0})
	require.NoError(t, err)
	empty, err := repo.CreateSubject(ctx, course.Subject{Title: "Empty", Slug: "empty"})
	require.NoError(t, err)

	t.Run("created ids", func(t *testing.T) {
		assert.NotZero(t, lesson.ID)
		require.Len(t, lesson.Examples, 2)
		for _, ex := range lesson.Examples {
			assert.NotZero(t, ex.ID)
			assert.Equal(t, lesson.ID, ex.LessonID)
		}
	})

	t.Run("subject tree", func(t *testing.T) {
		got, err := repo.GetSubjectBySlug(ctx, "go-basics")
		require.NoError(t, err)
		require.Len(t, got.Topics, 2)
		assert.Equal(t, first.ID, got.Topics[0].ID)
		assert.Empty(t, got.Topics[0].Lessons)
		assert.NotNil(t, got.Topics[0].Lessons)
		assert.Equal(t, topic.ID, got.Topics[1].ID)
		require.Len(t, got.Topics[1].Lessons, 1)
		assert.Equal(t, lesson, got.Topics[1].Lessons[0])
	})

	t.Run("query subjects", func(t *testing.T) {
		subjects, err := repo.QuerySubjects(ctx)
		require.NoError(t, err)
		require.Len(t, subjects, 2)
		assert.Equal(t, subj.ID, subjects[0].ID)
		assert.Equal(t, empty.ID, subjects[1].ID)

		data, err := json.Marshal(subjects[1])
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":`+itoa(empty.ID)+`,"title":"Empty","description":"","slug":"empty","topics":[]}`, string(data))
	})

	t.Run("lesson", func(t *testing.T) {
		got, err := repo.GetLessonByID(ctx, lesson.ID)
		require.NoError(t, err)
		assert.Equal(t, lesson, got)

		_, err = repo.GetLessonByID(ctx, 999)
		assert.Equal(t, course.ErrLessonNotFound, err)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.GetSubjectByID(ctx, 999)
		assert.Equal(t, course.ErrSubjectNotFound, err)
		_, err = repo.GetSubjectBySlug(ctx, "nope")
		assert.Equal(t, course.ErrSubjectNotFound, err)
		_, err = repo.GetTopicByID(ctx, 999)
		assert.Equal(t, course.ErrTopicNotFound, err)
	})

	t.Run("slug uniqueness", func(t *testing.T) {
		assert.Equal(t, course.ErrSlugExists, repo.CheckSlugUniqueness(ctx, "go-basics"))
		assert.NoError(t, repo.CheckSlugUniqueness(ctx, "rust-basics"))
	})
}
