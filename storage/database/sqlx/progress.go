package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/codedaily/core/progress"
)

type (
	enrollmentRow struct {
		ID         int       `db:"id"`
		UserID     string    `db:"user_id"`
		SubjectID  int       `db:"subject_id"`
		EnrolledAt time.Time `db:"enrolled_at"`
	}

	lessonProgressRow struct {
		ID           int       `db:"id"`
		UserID       string    `db:"user_id"`
		LessonID     int       `db:"lesson_id"`
		Status       string    `db:"status"`
		LastAccessed time.Time `db:"last_accessed"`
	}
)

func (r enrollmentRow) enrollment() progress.Enrollment {
	return progress.Enrollment{ID: r.ID, UserID: r.UserID, SubjectID: r.SubjectID, EnrolledAt: r.EnrolledAt.UTC()}
}

func (r lessonProgressRow) lessonProgress() progress.LessonProgress {
	return progress.LessonProgress{
		ID:           r.ID,
		UserID:       r.UserID,
		LessonID:     r.LessonID,
		Status:       r.Status,
		LastAccessed: r.LastAccessed.UTC(),
	}
}

type progressRepository struct {
	db *sqlx.DB
}

var _ progress.Repository = (*progressRepository)(nil) // interface compliance check

func NewProgressRepository(db *sqlx.DB) *progressRepository {
	return &progressRepository{db: db}
}

func (repo *progressRepository) GetEnrollment(ctx context.Context, userID string, subjectID int) (progress.Enrollment, error) {
	var row enrollmentRow
	q := repo.db.Rebind("SELECT id, user_id, subject_id, enrolled_at FROM enrollments WHERE user_id = ? AND subject_id = ?")
	if err := repo.db.GetContext(ctx, &row, q, userID, subjectID); err != nil {
		return progress.Enrollment{}, trapNoRowsErr(err, progress.ErrEnrollmentNotFound, "finding enrollment")
	}
	return row.enrollment(), nil
}

func (repo *progressRepository) CreateEnrollment(ctx context.Context, enr progress.Enrollment) (progress.Enrollment, error) {
	id, err := insert(ctx, repo.db,
		"INSERT INTO enrollments (user_id, subject_id, enrolled_at) VALUES (?, ?, ?)",
		enr.UserID, enr.SubjectID, enr.EnrolledAt.UTC(),
	)
	if err != nil {
		return progress.Enrollment{}, errors.Wrap(err, "inserting enrollment")
	}
	enr.ID = id
	return enr, nil
}

func (repo *progressRepository) GetLessonProgress(ctx context.Context, userID string, lessonID int) (progress.LessonProgress, error) {
	var row lessonProgressRow
	q := repo.db.Rebind("SELECT id, user_id, lesson_id, status, last_accessed FROM lesson_progress WHERE user_id = ? AND lesson_id = ?")
	if err := repo.db.GetContext(ctx, &row, q, userID, lessonID); err != nil {
		return progress.LessonProgress{}, trapNoRowsErr(err, progress.ErrProgressNotFound, "finding lesson progress")
	}
	return row.lessonProgress(), nil
}

func (repo *progressRepository) CreateLessonProgress(ctx context.Context, lp progress.LessonProgress) (progress.LessonProgress, error) {
	id, err := insert(ctx, repo.db,
		"INSERT INTO lesson_progress (user_id, lesson_id, status, last_accessed) VALUES (?, ?, ?, ?)",
		lp.UserID, lp.LessonID, lp.Status, lp.LastAccessed.UTC(),
	)
	if err != nil {
		return progress.LessonProgress{}, errors.Wrap(err, "inserting lesson progress")
	}
	lp.ID = id
	return lp, nil
}

func (repo *progressRepository) UpdateLessonProgress(ctx context.Context, lp progress.LessonProgress) (progress.LessonProgress, error) {
	res, err := repo.db.ExecContext(ctx,
		repo.db.Rebind("UPDATE lesson_progress SET status = ?, last_accessed = ? WHERE id = ?"),
		lp.Status, lp.LastAccessed.UTC(), lp.ID,
	)
	if err != nil {
		return progress.LessonProgress{}, errors.Wrap(err, "updating lesson progress")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return progress.LessonProgress{}, progress.ErrProgressNotFound
	}
	return lp, nil
}

func (repo *progressRepository) QueryLessonProgress(ctx context.Context, userID string) ([]progress.LessonProgress, error) {
	var rows []lessonProgressRow
	q := repo.db.Rebind("SELECT id, user_id, lesson_id, status, last_accessed FROM lesson_progress WHERE user_id = ? ORDER BY id")
	if err := repo.db.SelectContext(ctx, &rows, q, userID); err != nil {
		return nil, errors.Wrap(err, "querying lesson progress")
	}
	records := make([]progress.LessonProgress, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.lessonProgress())
	}
	return records, nil
}
