package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/codedaily/core/course"
)

type (
	subjectRow struct {
		ID          int    `db:"id"`
		Title       string `db:"title"`
		Description string `db:"description"`
		Slug        string `db:"slug"`
	}

	topicRow struct {
		ID         int    `db:"id"`
		SubjectID  int    `db:"subject_id"`
		Title      string `db:"title"`
		OrderIndex int    `db:"order_index"`
	}

	lessonRow struct {
		ID            int    `db:"id"`
		TopicID       int    `db:"topic_id"`
		Title         string `db:"title"`
		ContentHTML   string `db:"content_html"`
		Difficulty    string `db:"difficulty"`
		EstimatedTime int    `db:"estimated_time"`
	}

	codeExampleRow struct {
		ID       int    `db:"id"`
		LessonID int    `db:"lesson_id"`
		Language string `db:"language"`
		CodeText string `db:"code_text"`
	}
)

func (r subjectRow) subject() course.Subject {
	return course.Subject{ID: r.ID, Title: r.Title, Description: r.Description, Slug: r.Slug, Topics: []course.Topic{}}
}

func (r topicRow) topic() course.Topic {
	return course.Topic{ID: r.ID, SubjectID: r.SubjectID, Title: r.Title, OrderIndex: r.OrderIndex, Lessons: []course.Lesson{}}
}

func (r lessonRow) lesson() course.Lesson {
	return course.Lesson{
		ID:            r.ID,
		TopicID:       r.TopicID,
		Title:         r.Title,
		ContentHTML:   r.ContentHTML,
		Difficulty:    r.Difficulty,
		EstimatedTime: r.EstimatedTime,
		Examples:      []course.CodeExample{},
	}
}

func (r codeExampleRow) example() course.CodeExample {
	return course.CodeExample{ID: r.ID, LessonID: r.LessonID, Language: r.Language, CodeText: r.CodeText}
}

type courseRepository struct {
	db *sqlx.DB
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *sqlx.DB) *courseRepository {
	return &courseRepository{db: db}
}

func (repo *courseRepository) CheckSlugUniqueness(ctx context.Context, slug string) error {
	var count int
	if err := repo.db.GetContext(ctx, &count, repo.db.Rebind("SELECT COUNT(*) FROM subjects WHERE slug = ?"), slug); err != nil {
		return errors.Wrap(err, "checking slug uniqueness")
	}
	if count > 0 {
		return course.ErrSlugExists
	}
	return nil
}

func (repo *courseRepository) CreateSubject(ctx context.Context, subj course.Subject) (course.Subject, error) {
	id, err := insert(ctx, repo.db,
		"INSERT INTO subjects (title, description, slug) VALUES (?, ?, ?)",
		subj.Title, subj.Description, subj.Slug,
	)
	if err != nil {
		return course.Subject{}, errors.Wrap(err, "inserting subject")
	}
	subj.ID = id
	if subj.Topics == nil {
		subj.Topics = []course.Topic{}
	}
	return subj, nil
}

func (repo *courseRepository) CreateTopic(ctx context.Context, topic course.Topic) (course.Topic, error) {
	id, err := insert(ctx, repo.db,
		"INSERT INTO topics (subject_id, title, order_index) VALUES (?, ?, ?)",
		topic.SubjectID, topic.Title, topic.OrderIndex,
	)
	if err != nil {
		return course.Topic{}, errors.Wrap(err, "inserting topic")
	}
	topic.ID = id
	if topic.Lessons == nil {
		topic.Lessons = []course.Lesson{}
	}
	return topic, nil
}

func (repo *courseRepository) CreateLesson(ctx context.Context, lesson course.Lesson) (course.Lesson, error) {
	err := inTx(ctx, repo.db, func(tx *sqlx.Tx) error {
		id, err := insert(ctx, tx,
			"INSERT INTO lessons (topic_id, title, content_html, difficulty, estimated_time) VALUES (?, ?, ?, ?, ?)",
			lesson.TopicID, lesson.Title, lesson.ContentHTML, lesson.Difficulty, lesson.EstimatedTime,
		)
		if err != nil {
			return errors.Wrap(err, "inserting lesson")
		}
		lesson.ID = id

		for i := range lesson.Examples {
			ex := &lesson.Examples[i]
			ex.LessonID = lesson.ID
			if ex.ID, err = insert(ctx, tx,
				"INSERT INTO code_examples (lesson_id, language, code_text) VALUES (?, ?, ?)",
				ex.LessonID, ex.Language, ex.CodeText,
			); err != nil {
				return errors.Wrap(err, "inserting code example")
			}
		}
		return nil
	})
	if err != nil {
		return course.Lesson{}, err
	}
	if lesson.Examples == nil {
		lesson.Examples = []course.CodeExample{}
	}
	return lesson, nil
}

// loadTree attaches topics (by order_index), lessons and code examples to `subjects`.
func (repo *courseRepository) loadTree(ctx context.Context, rows []subjectRow) ([]course.Subject, error) {
	subjects := make([]course.Subject, 0, len(rows))
	if len(rows) == 0 {
		return subjects, nil
	}
	subjectIDs := make([]int, 0, len(rows))
	for _, r := range rows {
		subjectIDs = append(subjectIDs, r.ID)
	}

	var topicRows []topicRow
	if err := selectIn(ctx, repo.db, &topicRows,
		"SELECT id, subject_id, title, order_index FROM topics WHERE subject_id IN (?) ORDER BY order_index, id", subjectIDs,
	); err != nil {
		return nil, errors.Wrap(err, "querying topics")
	}

	lessonsByTopic := make(map[int][]course.Lesson)
	if len(topicRows) > 0 {
		topicIDs := make([]int, 0, len(topicRows))
		for _, r := range topicRows {
			topicIDs = append(topicIDs, r.ID)
		}

		var lessonRows []lessonRow
		if err := selectIn(ctx, repo.db, &lessonRows,
			"SELECT id, topic_id, title, content_html, difficulty, estimated_time FROM lessons WHERE topic_id IN (?) ORDER BY id", topicIDs,
		); err != nil {
			return nil, errors.Wrap(err, "querying lessons")
		}
		lessons, err := repo.withExamples(ctx, lessonRows)
		if err != nil {
			return nil, err
		}
		for _, l := range lessons {
			lessonsByTopic[l.TopicID] = append(lessonsByTopic[l.TopicID], l)
		}
	}

	topicsBySubject := make(map[int][]course.Topic)
	for _, r := range topicRows {
		topic := r.topic()
		if lessons, ok := lessonsByTopic[topic.ID]; ok {
			topic.Lessons = lessons
		}
		topicsBySubject[topic.SubjectID] = append(topicsBySubject[topic.SubjectID], topic)
	}
	for _, r := range rows {
		subj := r.subject()
		if topics, ok := topicsBySubject[subj.ID]; ok {
			subj.Topics = topics
		}
		subjects = append(subjects, subj)
	}
	return subjects, nil
}

func (repo *courseRepository) withExamples(ctx context.Context, rows []lessonRow) ([]course.Lesson, error) {
	lessons := make([]course.Lesson, 0, len(rows))
	if len(rows) == 0 {
		return lessons, nil
	}
	lessonIDs := make([]int, 0, len(rows))
	for _, r := range rows {
		lessonIDs = append(lessonIDs, r.ID)
	}

	var exampleRows []codeExampleRow
	if err := selectIn(ctx, repo.db, &exampleRows,
		"SELECT id, lesson_id, language, code_text FROM code_examples WHERE lesson_id IN (?) ORDER BY id", lessonIDs,
	); err != nil {
		return nil, errors.Wrap(err, "querying code examples")
	}
	examples := make(map[int][]course.CodeExample)
	for _, r := range exampleRows {
		examples[r.LessonID] = append(examples[r.LessonID], r.example())
	}

	for _, r := range rows {
		lesson := r.lesson()
		if exs, ok := examples[lesson.ID]; ok {
			lesson.Examples = exs
		}
		lessons = append(lessons, lesson)
	}
	return lessons, nil
}

func (repo *courseRepository) QuerySubjects(ctx context.Context) ([]course.Subject, error) {
	var rows []subjectRow
	if err := repo.db.SelectContext(ctx, &rows, "SELECT id, title, description, slug FROM subjects ORDER BY id"); err != nil {
		return nil, errors.Wrap(err, "querying subjects")
	}
	return repo.loadTree(ctx, rows)
}

func (repo *courseRepository) getSubject(ctx context.Context, where string, arg interface{}) (course.Subject, error) {
	var row subjectRow
	q := repo.db.Rebind("SELECT id, title, description, slug FROM subjects WHERE " + where + " = ?")
	if err := repo.db.GetContext(ctx, &row, q, arg); err != nil {
		return course.Subject{}, trapNoRowsErr(err, course.ErrSubjectNotFound, "finding subject")
	}
	subjects, err := repo.loadTree(ctx, []subjectRow{row})
	if err != nil {
		return course.Subject{}, err
	}
	return subjects[0], nil
}

func (repo *courseRepository) GetSubjectByID(ctx context.Context, id int) (course.Subject, error) {
	return repo.getSubject(ctx, "id", id)
}

func (repo *courseRepository) GetSubjectBySlug(ctx context.Context, slug string) (course.Subject, error) {
	return repo.getSubject(ctx, "slug", slug)
}

func (repo *courseRepository) GetTopicByID(ctx context.Context, id int) (course.Topic, error) {
	var row topicRow
	q := repo.db.Rebind("SELECT id, subject_id, title, order_index FROM topics WHERE id = ?")
	if err := repo.db.GetContext(ctx, &row, q, id); err != nil {
		return course.Topic{}, trapNoRowsErr(err, course.ErrTopicNotFound, "finding topic")
	}
	return row.topic(), nil
}

func (repo *courseRepository) GetLessonByID(ctx context.Context, id int) (course.Lesson, error) {
	var row lessonRow
	q := repo.db.Rebind("SELECT id, topic_id, title, content_html, difficulty, estimated_time FROM lessons WHERE id = ?")
	if err := repo.db.GetContext(ctx, &row, q, id); err != nil {
		return course.Lesson{}, trapNoRowsErr(err, course.ErrLessonNotFound, "finding lesson")
	}
	lessons, err := repo.withExamples(ctx, []lessonRow{row})
	if err != nil {
		return course.Lesson{}, err
	}
	return lessons[0], nil
}
