package sqlxrepos

import (
	"context"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/codedaily/core"
	"github.com/trezcool/codedaily/core/quiz"
)

type (
	quizRow struct {
		ID       int    `db:"id"`
		LessonID int    `db:"lesson_id"`
		Title    string `db:"title"`
	}

	questionRow struct {
		ID     int    `db:"id"`
		QuizID int    `db:"quiz_id"`
		Text   string `db:"text"`
	}

	answerRow struct {
		ID         int    `db:"id"`
		QuestionID int    `db:"question_id"`
		Text       string `db:"text"`
		IsCorrect  bool   `db:"is_correct"`
	}

	attemptRow struct {
		ID          int       `db:"id"`
		UserID      string    `db:"user_id"`
		QuizID      int       `db:"quiz_id"`
		Score       float64   `db:"score"`
		AttemptedAt time.Time `db:"attempted_at"`
	}
)

func (r quizRow) quiz() quiz.Quiz {
	return quiz.Quiz{ID: r.ID, LessonID: r.LessonID, Title: r.Title, Questions: []quiz.Question{}}
}

func (r answerRow) answer() quiz.Answer {
	return quiz.Answer{ID: r.ID, QuestionID: r.QuestionID, Text: r.Text, IsCorrect: r.IsCorrect}
}

func (r attemptRow) attempt() quiz.Attempt {
	return quiz.Attempt{ID: r.ID, UserID: r.UserID, QuizID: r.QuizID, Score: r.Score, AttemptedAt: r.AttemptedAt.UTC()}
}

type quizRepository struct {
	db *sqlx.DB
}

var _ quiz.Repository = (*quizRepository)(nil) // interface compliance check

func NewQuizRepository(db *sqlx.DB) *quizRepository {
	return &quizRepository{db: db}
}

func (repo *quizRepository) CreateQuiz(ctx context.Context, qz quiz.Quiz) (quiz.Quiz, error) {
	err := inTx(ctx, repo.db, func(tx *sqlx.Tx) error {
		var err error
		if qz.ID, err = insert(ctx, tx, "INSERT INTO quizzes (lesson_id, title) VALUES (?, ?)", qz.LessonID, qz.Title); err != nil {
			return errors.Wrap(err, "inserting quiz")
		}

		for i := range qz.Questions {
			qst := &qz.Questions[i]
			qst.QuizID = qz.ID
			if qst.ID, err = insert(ctx, tx, "INSERT INTO questions (quiz_id, text) VALUES (?, ?)", qst.QuizID, qst.Text); err != nil {
				return errors.Wrap(err, "inserting question")
			}
			for j := range qst.Answers {
				ans := &qst.Answers[j]
				ans.QuestionID = qst.ID
				if ans.ID, err = insert(ctx, tx,
					"INSERT INTO answers (question_id, text, is_correct) VALUES (?, ?, ?)",
					ans.QuestionID, ans.Text, ans.IsCorrect,
				); err != nil {
					return errors.Wrap(err, "inserting answer")
				}
			}
			if qst.Answers == nil {
				qst.Answers = []quiz.Answer{}
			}
		}
		return nil
	})
	if err != nil {
		return quiz.Quiz{}, err
	}
	if qz.Questions == nil {
		qz.Questions = []quiz.Question{}
	}
	return qz, nil
}

func (repo *quizRepository) getQuiz(ctx context.Context, where string, arg interface{}) (quiz.Quiz, error) {
	var row quizRow
	q := repo.db.Rebind("SELECT id, lesson_id, title FROM quizzes WHERE " + where + " = ?")
	if err := repo.db.GetContext(ctx, &row, q, arg); err != nil {
		return quiz.Quiz{}, trapNoRowsErr(err, quiz.ErrQuizNotFound, "finding quiz")
	}
	return row.quiz(), nil
}

func (repo *quizRepository) GetQuizByID(ctx context.Context, id int) (quiz.Quiz, error) {
	return repo.getQuiz(ctx, "id", id)
}

func (repo *quizRepository) GetQuizByLessonID(ctx context.Context, lessonID int) (quiz.Quiz, error) {
	qz, err := repo.getQuiz(ctx, "lesson_id", lessonID)
	if err != nil {
		return quiz.Quiz{}, err
	}

	var qstRows []questionRow
	if err = repo.db.SelectContext(ctx, &qstRows,
		repo.db.Rebind("SELECT id, quiz_id, text FROM questions WHERE quiz_id = ? ORDER BY id"), qz.ID,
	); err != nil {
		return quiz.Quiz{}, errors.Wrap(err, "querying questions")
	}
	if len(qstRows) == 0 {
		return qz, nil
	}

	qstIDs := make([]int, 0, len(qstRows))
	for _, r := range qstRows {
		qstIDs = append(qstIDs, r.ID)
	}
	var ansRows []answerRow
	if err = selectIn(ctx, repo.db, &ansRows,
		"SELECT id, question_id, text, is_correct FROM answers WHERE question_id IN (?) ORDER BY id", qstIDs,
	); err != nil {
		return quiz.Quiz{}, errors.Wrap(err, "querying answers")
	}
	answers := make(map[int][]quiz.Answer)
	for _, r := range ansRows {
		answers[r.QuestionID] = append(answers[r.QuestionID], r.answer())
	}

	for _, r := range qstRows {
		qst := quiz.Question{ID: r.ID, QuizID: r.QuizID, Text: r.Text, Answers: []quiz.Answer{}}
		if ans, ok := answers[qst.ID]; ok {
			qst.Answers = ans
		}
		qz.Questions = append(qz.Questions, qst)
	}
	return qz, nil
}

func (repo *quizRepository) CountQuestions(ctx context.Context, quizID int) (int, error) {
	var count int
	if err := repo.db.GetContext(ctx, &count, repo.db.Rebind("SELECT COUNT(*) FROM questions WHERE quiz_id = ?"), quizID); err != nil {
		return 0, errors.Wrap(err, "counting questions")
	}
	return count, nil
}

// FindAnswer only matches an answer that belongs to `questionID`.
func (repo *quizRepository) FindAnswer(ctx context.Context, questionID, answerID int) (quiz.Answer, error) {
	var row answerRow
	q := repo.db.Rebind("SELECT id, question_id, text, is_correct FROM answers WHERE id = ? AND question_id = ?")
	if err := repo.db.GetContext(ctx, &row, q, answerID, questionID); err != nil {
		return quiz.Answer{}, trapNoRowsErr(err, quiz.ErrAnswerNotFound, "finding answer")
	}
	return row.answer(), nil
}

func (repo *quizRepository) CreateAttempt(ctx context.Context, attempt quiz.Attempt) (quiz.Attempt, error) {
	id, err := insert(ctx, repo.db,
		"INSERT INTO quiz_attempts (user_id, quiz_id, score, attempted_at) VALUES (?, ?, ?, ?)",
		attempt.UserID, attempt.QuizID, attempt.Score, attempt.AttemptedAt.UTC(),
	)
	if err != nil {
		return quiz.Attempt{}, errors.Wrap(err, "inserting attempt")
	}
	attempt.ID = id
	return attempt, nil
}

func (repo *quizRepository) QueryAttempts(ctx context.Context, filter quiz.AttemptFilter, orderings []core.DBOrdering) ([]quiz.Attempt, error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.UserID != "" {
		where = append(where, "user_id = ?")
		args = append(args, filter.UserID)
	}
	if filter.QuizID != 0 {
		where = append(where, "quiz_id = ?")
		args = append(args, filter.QuizID)
	}

	q := "SELECT id, user_id, quiz_id, score, attempted_at FROM quiz_attempts"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += core.OrderByClause(orderings)

	var rows []attemptRow
	if err := repo.db.SelectContext(ctx, &rows, repo.db.Rebind(q), args...); err != nil {
		return nil, errors.Wrap(err, "querying attempts")
	}
	attempts := make([]quiz.Attempt, 0, len(rows))
	for _, r := range rows {
		attempts = append(attempts, r.attempt())
	}
	return attempts, nil
}
