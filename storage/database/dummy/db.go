// Package dummydb keeps every table in memory. It backs the handler tests and the `memory` database engine.
package dummydb

import (
	"sync"

	"github.com/trezcool/codedaily/core/course"
	"github.com/trezcool/codedaily/core/progress"
	"github.com/trezcool/codedaily/core/quiz"
	"github.com/trezcool/codedaily/core/user"
)

type DB struct {
	sync.RWMutex
	seq int

	users          map[string]user.User
	subjects       map[int]course.Subject // without topics
	topics         map[int]course.Topic   // without lessons
	lessons        map[int]course.Lesson  // without examples
	examples       map[int]course.CodeExample
	quizzes        map[int]quiz.Quiz // without questions
	questions      map[int]quiz.Question
	answers        map[int]quiz.Answer
	attempts       map[int]quiz.Attempt
	enrollments    map[int]progress.Enrollment
	lessonProgress map[int]progress.LessonProgress
}

func Open() *DB {
	db := new(DB)
	db.reset()
	return db
}

// Reset empties every table.
func (db *DB) Reset() {
	db.Lock()
	defer db.Unlock()
	db.reset()
}

func (db *DB) reset() {
	db.users = make(map[string]user.User)
	db.subjects = make(map[int]course.Subject)
	db.topics = make(map[int]course.Topic)
	db.lessons = make(map[int]course.Lesson)
	db.examples = make(map[int]course.CodeExample)
	db.quizzes = make(map[int]quiz.Quiz)
	db.questions = make(map[int]quiz.Question)
	db.answers = make(map[int]quiz.Answer)
	db.attempts = make(map[int]quiz.Attempt)
	db.enrollments = make(map[int]progress.Enrollment)
	db.lessonProgress = make(map[int]progress.LessonProgress)
}

// nextID must be called with the write lock held.
func (db *DB) nextID() int {
	db.seq++
	return db.seq
}
