package progress

import "time"

// Lesson statuses
const (
	StatusNotStarted = "not_started"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

var Statuses = []Status{
	{Name: "Not Started", Value: StatusNotStarted},
	{Name: "In Progress", Value: StatusInProgress},
	{Name: "Completed", Value: StatusCompleted},
}

type Status struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func IsValidStatus(s string) bool {
	for _, st := range Statuses {
		if st.Value == s {
			return true
		}
	}
	return false
}

// Enrollment is a student signing up for a Subject.
type Enrollment struct {
	ID         int       `json:"id"`
	UserID     string    `json:"user"`
	SubjectID  int       `json:"subject"`
	EnrolledAt time.Time `json:"enrolled_at"` // UTC
}

// LessonProgress tracks the status of one lesson for one user.
type LessonProgress struct {
	ID           int       `json:"id"`
	UserID       string    `json:"user"`
	LessonID     int       `json:"lesson"`
	Status       string    `json:"status"`
	LastAccessed time.Time `json:"last_accessed"` // UTC
}

// ProgressUpdate is the body of a progress update; an unknown or missing status is ignored.
type ProgressUpdate struct {
	Status string `json:"status"`
}
