package dummydb

import (
	"context"
	"sort"

	"github.com/trezcool/codedaily/core/course"
)

type courseRepository struct {
	db *DB
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *DB) course.Repository {
	return &courseRepository{db: db}
}

func (repo *courseRepository) CheckSlugUniqueness(_ context.Context, slug string) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, subj := range repo.db.subjects {
		if subj.Slug == slug {
			return course.ErrSlugExists
		}
	}
	return nil
}

func (repo *courseRepository) CreateSubject(_ context.Context, subj course.Subject) (course.Subject, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	subj.ID = repo.db.nextID()
	subj.Topics = nil
	repo.db.subjects[subj.ID] = subj
	subj.Topics = []course.Topic{}
	return subj, nil
}

func (repo *courseRepository) CreateTopic(_ context.Context, topic course.Topic) (course.Topic, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.subjects[topic.SubjectID]; !ok {
		return course.Topic{}, course.ErrSubjectNotFound
	}
	topic.ID = repo.db.nextID()
	topic.Lessons = nil
	repo.db.topics[topic.ID] = topic
	topic.Lessons = []course.Lesson{}
	return topic, nil
}

func (repo *courseRepository) CreateLesson(_ context.Context, lesson course.Lesson) (course.Lesson, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.topics[lesson.TopicID]; !ok {
		return course.Lesson{}, course.ErrTopicNotFound
	}
	lesson.ID = repo.db.nextID()
	examples := make([]course.CodeExample, 0, len(lesson.Examples))
	for _, ex := range lesson.Examples {
		ex.ID = repo.db.nextID()
		ex.LessonID = lesson.ID
		repo.db.examples[ex.ID] = ex
		examples = append(examples, ex)
	}
	lesson.Examples = nil
	repo.db.lessons[lesson.ID] = lesson
	lesson.Examples = examples
	return lesson, nil
}

// the helpers below must be called with the read lock held

func (repo *courseRepository) lessonTree(lesson course.Lesson) course.Lesson {
	lesson.Examples = []course.CodeExample{}
	for _, ex := range repo.db.examples {
		if ex.LessonID == lesson.ID {
			lesson.Examples = append(lesson.Examples, ex)
		}
	}
	sort.Slice(lesson.Examples, func(i, j int) bool { return lesson.Examples[i].ID < lesson.Examples[j].ID })
	return lesson
}

func (repo *courseRepository) subjectTree(subj course.Subject) course.Subject {
	subj.Topics = []course.Topic{}
	for _, topic := range repo.db.topics {
		if topic.SubjectID != subj.ID {
			continue
		}
		topic.Lessons = []course.Lesson{}
		for _, lesson := range repo.db.lessons {
			if lesson.TopicID == topic.ID {
				topic.Lessons = append(topic.Lessons, repo.lessonTree(lesson))
			}
		}
		sort.Slice(topic.Lessons, func(i, j int) bool { return topic.Lessons[i].ID < topic.Lessons[j].ID })
		subj.Topics = append(subj.Topics, topic)
	}
	sort.Slice(subj.Topics, func(i, j int) bool {
		ti, tj := subj.Topics[i], subj.Topics[j]
		if ti.OrderIndex != tj.OrderIndex {
			return ti.OrderIndex < tj.OrderIndex
		}
		return ti.ID < tj.ID
	})
	return subj
}

func (repo *courseRepository) QuerySubjects(_ context.Context) ([]course.Subject, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	subjects := make([]course.Subject, 0, len(repo.db.subjects))
	for _, subj := range repo.db.subjects {
		subjects = append(subjects, repo.subjectTree(subj))
	}
	sort.Slice(subjects, func(i, j int) bool { return subjects[i].ID < subjects[j].ID })
	return subjects, nil
}

func (repo *courseRepository) GetSubjectByID(_ context.Context, id int) (course.Subject, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if subj, ok := repo.db.subjects[id]; ok {
		return repo.subjectTree(subj), nil
	}
	return course.Subject{}, course.ErrSubjectNotFound
}

func (repo *courseRepository) GetSubjectBySlug(_ context.Context, slug string) (course.Subject, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, subj := range repo.db.subjects {
		if subj.Slug == slug {
			return repo.subjectTree(subj), nil
		}
	}
	return course.Subject{}, course.ErrSubjectNotFound
}

func (repo *courseRepository) GetTopicByID(_ context.Context, id int) (course.Topic, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if topic, ok := repo.db.topics[id]; ok {
		topic.Lessons = []course.Lesson{}
		return topic, nil
	}
	return course.Topic{}, course.ErrTopicNotFound
}

func (repo *courseRepository) GetLessonByID(_ context.Context, id int) (course.Lesson, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if lesson, ok := repo.db.lessons[id]; ok {
		return repo.lessonTree(lesson), nil
	}
	return course.Lesson{}, course.ErrLessonNotFound
}
