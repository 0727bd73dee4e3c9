package models

// SessionStatus is the lifecycle state of a session document.
type SessionStatus string

const (
	StatusActive    SessionStatus = "active"
	StatusPaused    SessionStatus = "paused"
	StatusCompleted SessionStatus = "completed"
	StatusDiscarded SessionStatus = "discarded"
)

// IsTerminal reports whether no further transition is legal.
func (s SessionStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusDiscarded
}

// IsValid reports whether s is a known status.
func (s SessionStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusPaused, StatusCompleted, StatusDiscarded:
		return true
	}
	return false
}

// validTransitions is the full set of legal lifecycle moves. Completed and
// discarded are terminal.
var validTransitions = map[SessionStatus][]SessionStatus{
	StatusActive: {StatusPaused, StatusCompleted, StatusDiscarded},
	StatusPaused: {StatusActive, StatusCompleted, StatusDiscarded},
}

// IsValidTransition reports whether moving from one status to another is
// allowed by the lifecycle state machine.
func IsValidTransition(from, to SessionStatus) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// MuscleEngagement is the answer to the per-exercise muscle question.
type MuscleEngagement string

const (
	EngagementYesClearly MuscleEngagement = "yes-clearly"
	EngagementModerately MuscleEngagement = "moderately"
	EngagementNotReally  MuscleEngagement = "not-really"
	EngagementUnset      MuscleEngagement = ""
)

// engagementLabels is the fixed label map used by the session body codec.
var engagementLabels = map[MuscleEngagement]string{
	EngagementYesClearly: "Yes, clearly",
	EngagementModerately: "Moderately",
	EngagementNotReally:  "Not really",
}

// Label returns the document text for an engagement value.
func (m MuscleEngagement) Label() string {
	return engagementLabels[m]
}

// EngagementFromLabel maps document text back to an engagement value.
// Unknown labels map to EngagementUnset.
func EngagementFromLabel(label string) MuscleEngagement {
	for v, l := range engagementLabels {
		if l == label {
			return v
		}
	}
	return EngagementUnset
}
