package testutil

import (
	"context"
	"testing"
	"time"

	en_locale "github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"

	"github.com/trezcool/codedaily/core"
	"github.com/trezcool/codedaily/core/course"
	"github.com/trezcool/codedaily/core/quiz"
	"github.com/trezcool/codedaily/core/user"
	"github.com/trezcool/codedaily/storage/database"
)

// tables in deletion order
var tables = []string{
	"quiz_attempts", "answers", "questions", "quizzes",
	"lesson_progress", "enrollments",
	"code_examples", "lessons", "topics", "subjects",
	"users",
}

// NewValidator returns a validator with the app and user validators registered.
func NewValidator() (*validator.Validate, ut.Translator) {
	enLocale := en_locale.New()
	translator, _ := ut.New(enLocale, enLocale).GetTranslator("en")
	validate := validator.New()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	return validate, translator
}

// PrepareDB opens a migrated in-memory sqlite DB, closed when the test ends.
func PrepareDB(t testing.TB) *sqlx.DB {
	t.Helper()
	goose.SetLogger(goose.NopLogger())

	db, err := database.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("PrepareDB(): %v", err)
	}
	if err = database.Migrate(context.Background(), db.DB, database.SQLite); err != nil {
		t.Fatalf("PrepareDB(): %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// ResetDB deletes every row of every table.
func ResetDB(t testing.TB, db *sqlx.DB) {
	t.Helper()
	for _, table := range tables {
		if _, err := db.Exec("DELETE FROM " + table); err != nil {
			t.Fatalf("ResetDB(): %v", err)
		}
	}
}

func CreateUser(t testing.TB, repo user.Repository, email, fullName, pwd, role string, isActive bool, joinedAt ...time.Time) user.User {
	t.Helper()
	tstamp := time.Now().UTC()
	if len(joinedAt) > 0 {
		tstamp = joinedAt[0].UTC()
	}
	if role == "" {
		role = user.RoleStudent
	}
	usr := user.User{
		ID:         uuid.NewString(),
		Email:      email,
		FullName:   fullName,
		Role:       role,
		IsActive:   isActive,
		IsStaff:    role == user.RoleAdmin,
		DateJoined: tstamp,
	}
	if pwd == "" {
		pwd = uuid.NewString()
	}
	if err := usr.SetPassword(pwd); err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

// CreateLesson creates a Subject `slug` with one Topic holding one Lesson and its code examples.
func CreateLesson(t testing.TB, repo course.Repository, slug string, examples ...course.CodeExample) (course.Subject, course.Topic, course.Lesson) {
	t.Helper()
	ctx := context.Background()

	subj, err := repo.CreateSubject(ctx, course.Subject{Title: "Subject " + slug, Slug: slug})
	if err != nil {
		t.Fatalf("CreateLesson() failed: %v", err)
	}
	topic, err := repo.CreateTopic(ctx, course.Topic{SubjectID: subj.ID, Title: "Topic " + slug, OrderIndex: 1})
	if err != nil {
		t.Fatalf("CreateLesson() failed: %v", err)
	}
	lesson, err := repo.CreateLesson(ctx, course.Lesson{
		TopicID:       topic.ID,
		Title:         "Lesson " + slug,
		ContentHTML:   "<p>" + slug + "</p>",
		Difficulty:    "beginner",
		EstimatedTime: 15,
		Examples:      examples,
	})
	if err != nil {
		t.Fatalf("CreateLesson() failed: %v", err)
	}
	return subj, topic, lesson
}

// CreateQuiz creates a Quiz for `lessonID`: one Question per entry of `answerKey`,
// each with one Answer per bool telling whether it is correct.
func CreateQuiz(t testing.TB, repo quiz.Repository, lessonID int, answerKey ...[]bool) quiz.Quiz {
	t.Helper()
	qz := quiz.Quiz{LessonID: lessonID, Title: "Quiz", Questions: make([]quiz.Question, 0, len(answerKey))}
	for i, answers := range answerKey {
		qst := quiz.Question{Text: "Question " + string(rune('A'+i)), Answers: make([]quiz.Answer, 0, len(answers))}
		for j, correct := range answers {
			qst.Answers = append(qst.Answers, quiz.Answer{Text: "Answer " + string(rune('a'+j)), IsCorrect: correct})
		}
		qz.Questions = append(qz.Questions, qst)
	}

	qz, err := repo.CreateQuiz(context.Background(), qz)
	if err != nil {
		t.Fatalf("CreateQuiz() failed: %v", err)
	}
	return qz
}
