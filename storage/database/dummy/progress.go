package dummydb

import (
	"context"
	"sort"

	"github.com/trezcool/codedaily/core/progress"
)

type progressRepository struct {
	db *DB
}

var _ progress.Repository = (*progressRepository)(nil) // interface compliance check

func NewProgressRepository(db *DB) progress.Repository {
	return &progressRepository{db: db}
}

func (repo *progressRepository) GetEnrollment(_ context.Context, userID string, subjectID int) (progress.Enrollment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, enr := range repo.db.enrollments {
		if enr.UserID == userID && enr.SubjectID == subjectID {
			return enr, nil
		}
	}
	return progress.Enrollment{}, progress.ErrEnrollmentNotFound
}

func (repo *progressRepository) CreateEnrollment(_ context.Context, enr progress.Enrollment) (progress.Enrollment, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	enr.ID = repo.db.nextID()
	repo.db.enrollments[enr.ID] = enr
	return enr, nil
}

func (repo *progressRepository) GetLessonProgress(_ context.Context, userID string, lessonID int) (progress.LessonProgress, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, lp := range repo.db.lessonProgress {
		if lp.UserID == userID && lp.LessonID == lessonID {
			return lp, nil
		}
	}
	return progress.LessonProgress{}, progress.ErrProgressNotFound
}

func (repo *progressRepository) CreateLessonProgress(_ context.Context, lp progress.LessonProgress) (progress.LessonProgress, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	lp.ID = repo.db.nextID()
	repo.db.lessonProgress[lp.ID] = lp
	return lp, nil
}

func (repo *progressRepository) UpdateLessonProgress(_ context.Context, lp progress.LessonProgress) (progress.LessonProgress, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.lessonProgress[lp.ID]; !ok {
		return progress.LessonProgress{}, progress.ErrProgressNotFound
	}
	repo.db.lessonProgress[lp.ID] = lp
	return lp, nil
}

func (repo *progressRepository) QueryLessonProgress(_ context.Context, userID string) ([]progress.LessonProgress, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	records := make([]progress.LessonProgress, 0)
	for _, lp := range repo.db.lessonProgress {
		if lp.UserID == userID {
			records = append(records, lp)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}
