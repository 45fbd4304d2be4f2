package course

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/codedaily/core"
)

type (
	Subject struct {
		ID          int     `json:"id"`
		Title       string  `json:"title"`
		Description string  `json:"description"`
		Slug        string  `json:"slug"`
		Topics      []Topic `json:"topics"`
	}

	Topic struct {
		ID         int      `json:"id"`
		SubjectID  int      `json:"subject"`
		Title      string   `json:"title"`
		OrderIndex int      `json:"order_index"`
		Lessons    []Lesson `json:"lessons"`
	}

	Lesson struct {
		ID            int           `json:"id"`
		TopicID       int           `json:"topic"`
		Title         string        `json:"title"`
		ContentHTML   string        `json:"content_html"`
		Difficulty    string        `json:"difficulty"`
		EstimatedTime int           `json:"estimated_time"` // minutes
		Examples      []CodeExample `json:"examples"`
	}

	CodeExample struct {
		ID       int    `json:"id"`
		LessonID int    `json:"lesson"`
		Language string `json:"language"`
		CodeText string `json:"code_text"`
	}
)

// NewSubject contains information needed to create a new Subject.
type NewSubject struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description"`
	Slug        string `json:"slug" validate:"required,max=50,slug"`
}

func (ns *NewSubject) Validate(ctx context.Context, validate *validator.Validate, svc *Service) error {
	ns.Title = core.CleanString(ns.Title)
	ns.Description = core.CleanString(ns.Description)
	ns.Slug = core.CleanString(ns.Slug, true /* lower */)

	if err := validate.Struct(ns); err != nil {
		return err
	}
	return svc.CheckSlugUniqueness(ctx, ns.Slug)
}

// NewTopic contains information needed to create a new Topic.
type NewTopic struct {
	SubjectID  int    `json:"subject" validate:"required"`
	Title      string `json:"title" validate:"required,max=255"`
	OrderIndex int    `json:"order_index" validate:"min=0"`
}

func (nt *NewTopic) Validate(validate *validator.Validate) error {
	nt.Title = core.CleanString(nt.Title)
	return validate.Struct(nt)
}

// NewLesson contains information needed to create a new Lesson and its code examples.
type NewLesson struct {
	TopicID       int              `json:"topic" validate:"required"`
	Title         string           `json:"title" validate:"required,max=255"`
	ContentHTML   string           `json:"content_html"`
	Difficulty    string           `json:"difficulty" validate:"omitempty,difficulty"`
	EstimatedTime int              `json:"estimated_time" validate:"min=0"`
	Examples      []NewCodeExample `json:"examples" validate:"dive"`
}

type NewCodeExample struct {
	Language string `json:"language" validate:"required,max=50"`
	CodeText string `json:"code_text" validate:"required"`
}

func (nl *NewLesson) Validate(validate *validator.Validate) error {
	nl.Title = core.CleanString(nl.Title)
	nl.Difficulty = core.CleanString(nl.Difficulty, true /* lower */)
	for i := range nl.Examples {
		nl.Examples[i].Language = core.CleanString(nl.Examples[i].Language, true /* lower */)
	}
	return validate.Struct(nl)
}
