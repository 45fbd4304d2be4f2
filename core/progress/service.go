package progress

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/codedaily/core"
	"github.com/trezcool/codedaily/core/course"
)

var (
	// errors
	ErrEnrollmentNotFound = core.NewNotFoundError("enrollment")
	ErrProgressNotFound   = core.NewNotFoundError("lesson progress")

	nowFunc = time.Now // mockable
)

type (
	Repository interface {
		GetEnrollment(ctx context.Context, userID string, subjectID int) (Enrollment, error)
		CreateEnrollment(ctx context.Context, enr Enrollment) (Enrollment, error)
		GetLessonProgress(ctx context.Context, userID string, lessonID int) (LessonProgress, error)
		CreateLessonProgress(ctx context.Context, lp LessonProgress) (LessonProgress, error)
		UpdateLessonProgress(ctx context.Context, lp LessonProgress) (LessonProgress, error)
		QueryLessonProgress(ctx context.Context, userID string) ([]LessonProgress, error)
	}

	CourseGetter interface {
		GetSubjectByID(ctx context.Context, id int) (course.Subject, error)
		GetLessonByID(ctx context.Context, id int) (course.Lesson, error)
	}

	Service struct {
		repo    Repository
		courses CourseGetter
	}
)

func NewService(repo Repository, courses CourseGetter) *Service {
	return &Service{repo: repo, courses: courses}
}

// Enroll returns the Enrollment of `userID` in `subjectID`, creating it if needed.
func (svc *Service) Enroll(ctx context.Context, userID string, subjectID int) (Enrollment, bool, error) {
	if _, err := svc.courses.GetSubjectByID(ctx, subjectID); err != nil {
		return Enrollment{}, false, err
	}

	enr, err := svc.repo.GetEnrollment(ctx, userID, subjectID)
	if err == nil {
		return enr, false, nil
	}
	if !core.IsNotFound(err) {
		return Enrollment{}, false, errors.Wrap(err, "getting enrollment")
	}

	enr, err = svc.repo.CreateEnrollment(ctx, Enrollment{
		UserID:     userID,
		SubjectID:  subjectID,
		EnrolledAt: nowFunc().UTC(),
	})
	if err != nil {
		return Enrollment{}, false, errors.Wrap(err, "creating enrollment")
	}
	return enr, true, nil
}

// UpdateProgress gets or creates the LessonProgress of `userID` for `lessonID`,
// then applies `upd.Status` when it is a known status.
func (svc *Service) UpdateProgress(ctx context.Context, userID string, lessonID int, upd ProgressUpdate) (LessonProgress, error) {
	if _, err := svc.courses.GetLessonByID(ctx, lessonID); err != nil {
		return LessonProgress{}, err
	}

	lp, err := svc.repo.GetLessonProgress(ctx, userID, lessonID)
	if err != nil {
		if !core.IsNotFound(err) {
			return LessonProgress{}, errors.Wrap(err, "getting lesson progress")
		}
		lp, err = svc.repo.CreateLessonProgress(ctx, LessonProgress{
			UserID:       userID,
			LessonID:     lessonID,
			Status:       StatusNotStarted,
			LastAccessed: nowFunc().UTC(),
		})
		if err != nil {
			return LessonProgress{}, errors.Wrap(err, "creating lesson progress")
		}
	}

	if IsValidStatus(upd.Status) {
		lp.Status = upd.Status
		lp.LastAccessed = nowFunc().UTC()
		if lp, err = svc.repo.UpdateLessonProgress(ctx, lp); err != nil {
			return LessonProgress{}, errors.Wrap(err, "updating lesson progress")
		}
	}
	return lp, nil
}

func (svc *Service) ListProgress(ctx context.Context, userID string) ([]LessonProgress, error) {
	return svc.repo.QueryLessonProgress(ctx, userID)
}
