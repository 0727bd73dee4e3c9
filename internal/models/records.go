// Package models defines the record kinds stored as text documents:
// exercises, workouts, programs, and training sessions.
package models

import "time"

// Source tags where an exercise definition lives. Custom exercises are
// file-backed and editable; database exercises come from the bulk-imported
// catalog and are read-only.
type Source string

const (
	SourceCustom   Source = "custom"
	SourceDatabase Source = "database"
	SourceUnknown  Source = ""
)

// Exercise is a single exercise definition.
type Exercise struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Category        string   `json:"category,omitempty"`
	Equipment       string   `json:"equipment,omitempty"`
	MuscleGroups    []string `json:"muscle_groups,omitempty"`
	DefaultWeight   *float64 `json:"default_weight,omitempty"`
	WeightIncrement *float64 `json:"weight_increment,omitempty"`
	ImageURL        string   `json:"image_url,omitempty"`
	SecondImageURL  string   `json:"second_image_url,omitempty"`
	Notes           string   `json:"notes,omitempty"`
	Source          Source   `json:"source"`
}

// ExerciseRef is one row of a workout's exercise table: a reference to an
// exercise plus its prescription. Source controls rendering — custom
// references become bracket-links, database references stay plain text.
type ExerciseRef struct {
	Exercise      string `json:"exercise"`
	Source        Source `json:"source"`
	TargetSets    int    `json:"target_sets"`
	TargetRepsMin int    `json:"target_reps_min"`
	TargetRepsMax int    `json:"target_reps_max"`
	RestSeconds   int    `json:"rest_seconds"`
}

// Workout is an ordered exercise prescription.
type Workout struct {
	ID                string        `json:"id"`
	Name              string        `json:"name"`
	Description       string        `json:"description,omitempty"`
	EstimatedDuration int           `json:"estimated_duration,omitempty"` // minutes, 0 = unset
	Exercises         []ExerciseRef `json:"exercises"`
}

// QuestionOption is one selectable answer of a review question. At most
// one option per question triggers a free-text field.
type QuestionOption struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	FreeText    bool   `json:"free_text,omitempty"`
	FreeTextMax int    `json:"free_text_max,omitempty"`
}

// Question is a program review question with ordered options.
type Question struct {
	ID      string           `json:"id"`
	Prompt  string           `json:"prompt"`
	Options []QuestionOption `json:"options"`
}

// Program is an ordered plan of workouts, referenced by id or embedded
// inline, with an optional review questionnaire.
type Program struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	WorkoutIDs  []string   `json:"workout_ids,omitempty"`
	Workouts    []Workout  `json:"workouts,omitempty"` // inline definitions
	Questions   []Question `json:"questions,omitempty"`
}

// LoggedSet is one performed set. Weight 0 is the bodyweight sentinel.
type LoggedSet struct {
	Weight           float64   `json:"weight"`
	Reps             int       `json:"reps"`
	Completed        bool      `json:"completed"`
	Timestamp        time.Time `json:"timestamp,omitzero"`
	RPE              *float64  `json:"rpe,omitempty"`
	RestSeconds      *int      `json:"rest_seconds,omitempty"`       // actual rest taken before the next set
	ExtraRestSeconds *int      `json:"extra_rest_seconds,omitempty"` // user-added rest beyond the prescription
	AvgRepDuration   *float64  `json:"avg_rep_duration,omitempty"`   // seconds per rep
}

// SessionExercise is one exercise within a session: the prescription it
// was started from plus the sets logged against it.
type SessionExercise struct {
	Exercise      string           `json:"exercise"`
	Source        Source           `json:"source"`
	TargetSets    int              `json:"target_sets"`
	TargetRepsMin int              `json:"target_reps_min"`
	TargetRepsMax int              `json:"target_reps_max"`
	RestSeconds   int              `json:"rest_seconds"`
	Sets          []LoggedSet      `json:"sets"`
	RPE           *float64         `json:"rpe,omitempty"`
	Engagement    MuscleEngagement `json:"engagement,omitempty"`
}

// CompletedSets counts the completed sets across the exercise.
func (e SessionExercise) CompletedSets() int {
	n := 0
	for _, s := range e.Sets {
		if s.Completed {
			n++
		}
	}
	return n
}

// QuestionAnswer is one answered review question.
type QuestionAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	FreeText string `json:"free_text,omitempty"`
}

// SessionReview is the questionnaire filled in after a program session.
type SessionReview struct {
	Program     string           `json:"program,omitempty"`
	CompletedAt time.Time        `json:"completed_at,omitzero"`
	Skipped     bool             `json:"skipped,omitempty"`
	Answers     []QuestionAnswer `json:"answers,omitempty"`
}

// Session is one training session document.
type Session struct {
	ID               string            `json:"id"`
	Workout          string            `json:"workout,omitempty"` // back-reference, may render as a link
	WorkoutSource    Source            `json:"workout_source,omitempty"`
	Status           SessionStatus     `json:"status"`
	StartedAt        time.Time         `json:"started_at"`
	EndedAt          time.Time         `json:"ended_at,omitzero"` // zero until finalized
	Exercises        []SessionExercise `json:"exercises"`
	Notes            string            `json:"notes,omitempty"`
	Review           *SessionReview    `json:"review,omitempty"`
	CoachFeedback    string            `json:"coach_feedback,omitempty"`
	PreviousFeedback string            `json:"previous_feedback,omitempty"`
}

// CompletedSets counts completed sets across all exercises.
func (s *Session) CompletedSets() int {
	n := 0
	for _, e := range s.Exercises {
		n += e.CompletedSets()
	}
	return n
}

// DatabaseExercise is a row of the imported read-only exercise catalog.
type DatabaseExercise struct {
	Slug         string    `json:"slug"`
	Name         string    `json:"name"`
	Category     string    `json:"category,omitempty"`
	Equipment    string    `json:"equipment,omitempty"`
	MuscleGroups []string  `json:"muscle_groups,omitempty"`
	ImageURL     string    `json:"image_url,omitempty"`
	ImportBatch  string    `json:"import_batch"`
	ImportedAt   time.Time `json:"imported_at"`
}

// ImportLog records one bulk catalog import.
type ImportLog struct {
	BatchID    string    `json:"batch_id"`
	SourceFile string    `json:"source_file"`
	Count      int       `json:"count"`
	ImportedAt time.Time `json:"imported_at"`
}
