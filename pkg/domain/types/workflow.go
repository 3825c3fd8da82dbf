package types

import "fmt"

// CourseState represents the workflow state of a course on the LMS
type CourseState string

const (
	CourseStateAvailable CourseState = "available"
	CourseStateCompleted CourseState = "completed"
	CourseStateDeleted   CourseState = "deleted"
)

// AllCourseStates returns all valid course states
func AllCourseStates() []CourseState {
	return []CourseState{
		CourseStateAvailable,
		CourseStateCompleted,
		CourseStateDeleted,
	}
}

// IsValid checks if the course state is valid
func (s CourseState) IsValid() bool {
	switch s {
	case CourseStateAvailable,
		CourseStateCompleted,
		CourseStateDeleted:
		return true
	default:
		return false
	}
}

// String returns the string representation of the course state
func (s CourseState) String() string {
	return string(s)
}

// AssignmentState represents the publication state of an assignment
type AssignmentState string

const (
	AssignmentStatePublished   AssignmentState = "published"
	AssignmentStateUnpublished AssignmentState = "unpublished"
)

// IsValid checks if the assignment state is valid
func (s AssignmentState) IsValid() bool {
	switch s {
	case AssignmentStatePublished, AssignmentStateUnpublished:
		return true
	default:
		return false
	}
}

// String returns the string representation of the assignment state
func (s AssignmentState) String() string {
	return string(s)
}

// ParseAssignmentState parses a string into an AssignmentState
func ParseAssignmentState(s string) (AssignmentState, error) {
	state := AssignmentState(s)
	if !state.IsValid() {
		return "", fmt.Errorf("invalid assignment state: %s", s)
	}
	return state, nil
}
