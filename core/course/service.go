package course

import (
	"context"
	"errors"

	"github.com/trezcool/codedaily/core"
)

var (
	// errors
	ErrSubjectNotFound = core.NewNotFoundError("subject")
	ErrTopicNotFound   = core.NewNotFoundError("topic")
	ErrLessonNotFound  = core.NewNotFoundError("lesson")
	ErrSlugExists      = errors.New("a subject with this slug already exists")
)

type (
	Repository interface {
		CheckSlugUniqueness(ctx context.Context, slug string) error
		CreateSubject(ctx context.Context, subj Subject) (Subject, error)
		CreateTopic(ctx context.Context, topic Topic) (Topic, error)
		// CreateLesson saves the Lesson along with its Examples.
		CreateLesson(ctx context.Context, lesson Lesson) (Lesson, error)
		// QuerySubjects returns every Subject with its full Topic/Lesson/CodeExample tree.
		QuerySubjects(ctx context.Context) ([]Subject, error)
		GetSubjectByID(ctx context.Context, id int) (Subject, error)
		GetSubjectBySlug(ctx context.Context, slug string) (Subject, error)
		GetTopicByID(ctx context.Context, id int) (Topic, error)
		GetLessonByID(ctx context.Context, id int) (Lesson, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) CheckSlugUniqueness(ctx context.Context, slug string) error {
	if err := svc.repo.CheckSlugUniqueness(ctx, slug); err != nil {
		if err == ErrSlugExists {
			return core.NewValidationError(err, core.FieldError{Field: "slug", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) CreateSubject(ctx context.Context, ns NewSubject) (Subject, error) {
	return svc.repo.CreateSubject(ctx, Subject{
		Title:       ns.Title,
		Description: ns.Description,
		Slug:        ns.Slug,
	})
}

func (svc *Service) CreateTopic(ctx context.Context, nt NewTopic) (Topic, error) {
	if _, err := svc.repo.GetSubjectByID(ctx, nt.SubjectID); err != nil {
		if core.IsNotFound(err) {
			return Topic{}, core.NewValidationError(err, core.FieldError{Field: "subject", Error: err.Error()})
		}
		return Topic{}, err
	}
	return svc.repo.CreateTopic(ctx, Topic{
		SubjectID:  nt.SubjectID,
		Title:      nt.Title,
		OrderIndex: nt.OrderIndex,
	})
}

func (svc *Service) CreateLesson(ctx context.Context, nl NewLesson) (Lesson, error) {
	if _, err := svc.repo.GetTopicByID(ctx, nl.TopicID); err != nil {
		if core.IsNotFound(err) {
			return Lesson{}, core.NewValidationError(err, core.FieldError{Field: "topic", Error: err.Error()})
		}
		return Lesson{}, err
	}

	difficulty := nl.Difficulty
	if difficulty == "" {
		difficulty = core.Difficulties[0]
	}
	lesson := Lesson{
		TopicID:       nl.TopicID,
		Title:         nl.Title,
		ContentHTML:   nl.ContentHTML,
		Difficulty:    difficulty,
		EstimatedTime: nl.EstimatedTime,
		Examples:      make([]CodeExample, 0, len(nl.Examples)),
	}
	for _, ex := range nl.Examples {
		lesson.Examples = append(lesson.Examples, CodeExample{Language: ex.Language, CodeText: ex.CodeText})
	}
	return svc.repo.CreateLesson(ctx, lesson)
}

func (svc *Service) QuerySubjects(ctx context.Context) ([]Subject, error) {
	return svc.repo.QuerySubjects(ctx)
}

func (svc *Service) GetSubjectByID(ctx context.Context, id int) (Subject, error) {
	return svc.repo.GetSubjectByID(ctx, id)
}

func (svc *Service) GetSubjectBySlug(ctx context.Context, slug string) (Subject, error) {
	return svc.repo.GetSubjectBySlug(ctx, core.CleanString(slug, true /* lower */))
}

func (svc *Service) GetLessonByID(ctx context.Context, id int) (Lesson, error) {
	return svc.repo.GetLessonByID(ctx, id)
}
