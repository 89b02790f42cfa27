package domain

import "time"

// ActivityKind classifies an entry in the activity log
type ActivityKind string

const (
	ActivityLesson    ActivityKind = "lesson"
	ActivityExercise  ActivityKind = "exercise"
	ActivityChallenge ActivityKind = "challenge"
	ActivityRun       ActivityKind = "run"
)

// Activity is one entry in the learner's activity log
type Activity struct {
	ID        string       `json:"id"`
	SessionID string       `json:"session_id"`
	Kind      ActivityKind `json:"kind"`
	Title     string       `json:"title"`
	Points    int          `json:"points"`
	CreatedAt time.Time    `json:"created_at"`
}

// ActivityOverview aggregates the activity log
type ActivityOverview struct {
	TotalPoints int `json:"total_points"`
	Lessons     int `json:"lessons"`
	Exercises   int `json:"exercises"`
	Challenges  int `json:"challenges"`
	Runs        int `json:"runs"`
}

// Add folds a into the overview
func (o *ActivityOverview) Add(a Activity) {
	o.TotalPoints += a.Points
	switch a.Kind {
	case ActivityLesson:
		o.Lessons++
	case ActivityExercise:
		o.Exercises++
	case ActivityChallenge:
		o.Challenges++
	case ActivityRun:
		o.Runs++
	}
}
