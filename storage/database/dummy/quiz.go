package dummydb

import (
	"context"
	"sort"

	"github.com/trezcool/codedaily/core"
	"github.com/trezcool/codedaily/core/quiz"
)

type quizRepository struct {
	db *DB
}

var _ quiz.Repository = (*quizRepository)(nil) // interface compliance check

func NewQuizRepository(db *DB) quiz.Repository {
	return &quizRepository{db: db}
}

func (repo *quizRepository) CreateQuiz(_ context.Context, qz quiz.Quiz) (quiz.Quiz, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, other := range repo.db.quizzes {
		if other.LessonID == qz.LessonID {
			return quiz.Quiz{}, quiz.ErrQuizExists
		}
	}

	qz.ID = repo.db.nextID()
	questions := make([]quiz.Question, 0, len(qz.Questions))
	for _, qst := range qz.Questions {
		qst.ID = repo.db.nextID()
		qst.QuizID = qz.ID
		answers := make([]quiz.Answer, 0, len(qst.Answers))
		for _, ans := range qst.Answers {
			ans.ID = repo.db.nextID()
			ans.QuestionID = qst.ID
			repo.db.answers[ans.ID] = ans
			answers = append(answers, ans)
		}
		qst.Answers = nil
		repo.db.questions[qst.ID] = qst
		qst.Answers = answers
		questions = append(questions, qst)
	}
	qz.Questions = nil
	repo.db.quizzes[qz.ID] = qz
	qz.Questions = questions
	return qz, nil
}

func (repo *quizRepository) GetQuizByID(_ context.Context, id int) (quiz.Quiz, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if qz, ok := repo.db.quizzes[id]; ok {
		qz.Questions = []quiz.Question{}
		return qz, nil
	}
	return quiz.Quiz{}, quiz.ErrQuizNotFound
}

func (repo *quizRepository) GetQuizByLessonID(_ context.Context, lessonID int) (quiz.Quiz, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, qz := range repo.db.quizzes {
		if qz.LessonID != lessonID {
			continue
		}
		qz.Questions = []quiz.Question{}
		for _, qst := range repo.db.questions {
			if qst.QuizID != qz.ID {
				continue
			}
			qst.Answers = []quiz.Answer{}
			for _, ans := range repo.db.answers {
				if ans.QuestionID == qst.ID {
					qst.Answers = append(qst.Answers, ans)
				}
			}
			sort.Slice(qst.Answers, func(i, j int) bool { return qst.Answers[i].ID < qst.Answers[j].ID })
			qz.Questions = append(qz.Questions, qst)
		}
		sort.Slice(qz.Questions, func(i, j int) bool { return qz.Questions[i].ID < qz.Questions[j].ID })
		return qz, nil
	}
	return quiz.Quiz{}, quiz.ErrQuizNotFound
}

func (repo *quizRepository) CountQuestions(_ context.Context, quizID int) (int, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var count int
	for _, qst := range repo.db.questions {
		if qst.QuizID == quizID {
			count++
		}
	}
	return count, nil
}

func (repo *quizRepository) FindAnswer(_ context.Context, questionID, answerID int) (quiz.Answer, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if ans, ok := repo.db.answers[answerID]; ok && ans.QuestionID == questionID {
		return ans, nil
	}
	return quiz.Answer{}, quiz.ErrAnswerNotFound
}

func (repo *quizRepository) CreateAttempt(_ context.Context, attempt quiz.Attempt) (quiz.Attempt, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	attempt.ID = repo.db.nextID()
	repo.db.attempts[attempt.ID] = attempt
	return attempt, nil
}

// QueryAttempts only honours the first ordering.
func (repo *quizRepository) QueryAttempts(_ context.Context, filter quiz.AttemptFilter, orderings []core.DBOrdering) ([]quiz.Attempt, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	attempts := make([]quiz.Attempt, 0)
	for _, a := range repo.db.attempts {
		if filter.UserID != "" && a.UserID != filter.UserID {
			continue
		}
		if filter.QuizID != 0 && a.QuizID != filter.QuizID {
			continue
		}
		attempts = append(attempts, a)
	}

	ord := core.DBOrdering{Field: "id"}
	if len(orderings) > 0 {
		ord = orderings[0]
	}
	less := func(a, b quiz.Attempt) bool {
		switch ord.Field {
		case "attempted_at":
			if !a.AttemptedAt.Equal(b.AttemptedAt) {
				return a.AttemptedAt.Before(b.AttemptedAt)
			}
		case "score":
			if a.Score != b.Score {
				return a.Score < b.Score
			}
		}
		return a.ID < b.ID
	}
	sort.Slice(attempts, func(i, j int) bool {
		if ord.Ascending {
			return less(attempts[i], attempts[j])
		}
		return less(attempts[j], attempts[i])
	})
	return attempts, nil
}
