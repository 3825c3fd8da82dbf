package model

import (
	"sort"
	"time"

	"github.com/studyhall-lab/studyhall/pkg/domain/types"
)

// Assignment represents an assignment fetched from the LMS.
// DueAt and SubmittedAt are nil when the LMS reports no value.
type Assignment struct {
	ID              int64                 `json:"id"`
	Name            string                `json:"name"`
	Description     string                `json:"description"`
	DueAt           *time.Time            `json:"due_at"`
	SubmittedAt     *time.Time            `json:"submitted_at"`
	SubmissionTypes []string              `json:"submission_types"`
	PointsPossible  float64               `json:"points_possible"`
	CourseID        int64                 `json:"course_id"`
	HTMLURL         string                `json:"html_url"`
	Locked          bool                  `json:"locked"`
	WorkflowState   types.AssignmentState `json:"workflow_state"`
}

// IsPublished returns true if the assignment is visible to students
func (a *Assignment) IsPublished() bool {
	return a.WorkflowState == types.AssignmentStatePublished
}

// AssignmentWithCourse is an Assignment denormalized with its owning course's
// name and code so that UI rendering and prompt building never need a second
// lookup.
type AssignmentWithCourse struct {
	Assignment
	CourseName string `json:"course_name"`
	CourseCode string `json:"course_code"`
}

// DueWithin reports whether the assignment is unsubmitted and due between now
// and now+window. Assignments without a due date never qualify.
func (a *AssignmentWithCourse) DueWithin(now time.Time, window time.Duration) bool {
	if a.DueAt == nil || a.SubmittedAt != nil {
		return false
	}
	return a.DueAt.After(now) && a.DueAt.Before(now.Add(window))
}

// SortByDueDate sorts assignments ascending by due date. Assignments without
// a due date sort strictly after all dated ones; ties and the relative order
// of undated assignments keep their original order.
func SortByDueDate(assignments []*AssignmentWithCourse) {
	sort.SliceStable(assignments, func(i, j int) bool {
		a, b := assignments[i], assignments[j]
		if a.DueAt == nil {
			return false
		}
		if b.DueAt == nil {
			return true
		}
		return a.DueAt.Before(*b.DueAt)
	})
}
