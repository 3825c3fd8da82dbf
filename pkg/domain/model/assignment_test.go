package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/studyhall-lab/studyhall/pkg/domain/model"
	"github.com/studyhall-lab/studyhall/pkg/domain/types"
)

func at(offset time.Duration) *time.Time {
	t := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC).Add(offset)
	return &t
}

func named(name string, due *time.Time) *model.AssignmentWithCourse {
	return &model.AssignmentWithCourse{
		Assignment: model.Assignment{Name: name, DueAt: due},
	}
}

func TestSortByDueDate(t *testing.T) {
	assignments := []*model.AssignmentWithCourse{
		named("undated-1", nil),
		named("week", at(7*24*time.Hour)),
		named("tomorrow", at(24*time.Hour)),
		named("undated-2", nil),
		named("three-days", at(3*24*time.Hour)),
	}

	model.SortByDueDate(assignments)

	gt.Value(t, assignments[0].Name).Equal("tomorrow")
	gt.Value(t, assignments[1].Name).Equal("three-days")
	gt.Value(t, assignments[2].Name).Equal("week")

	// Undated assignments come strictly last, keeping their original order
	gt.Value(t, assignments[3].Name).Equal("undated-1")
	gt.Value(t, assignments[4].Name).Equal("undated-2")
}

func TestSortByDueDateStableTies(t *testing.T) {
	due := at(24 * time.Hour)
	assignments := []*model.AssignmentWithCourse{
		named("first", due),
		named("second", due),
		named("third", due),
	}

	model.SortByDueDate(assignments)

	gt.Value(t, assignments[0].Name).Equal("first")
	gt.Value(t, assignments[1].Name).Equal("second")
	gt.Value(t, assignments[2].Name).Equal("third")
}

func TestDueWithin(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	window := 24 * time.Hour

	tests := []struct {
		name       string
		assignment *model.AssignmentWithCourse
		want       bool
	}{
		{name: "due in 3 hours", assignment: named("a", at(3*time.Hour)), want: true},
		{name: "due in 2 days", assignment: named("a", at(48*time.Hour)), want: false},
		{name: "already past due", assignment: named("a", at(-time.Hour)), want: false},
		{name: "no due date", assignment: named("a", nil), want: false},
		{
			name: "submitted",
			assignment: &model.AssignmentWithCourse{
				Assignment: model.Assignment{Name: "a", DueAt: at(3 * time.Hour), SubmittedAt: at(-time.Hour)},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, tt.assignment.DueWithin(now, window)).Equal(tt.want)
		})
	}
}

func TestIsPublished(t *testing.T) {
	published := &model.Assignment{WorkflowState: types.AssignmentStatePublished}
	gt.Value(t, published.IsPublished()).Equal(true)

	draft := &model.Assignment{WorkflowState: types.AssignmentStateUnpublished}
	gt.Value(t, draft.IsPublished()).Equal(false)
}

func TestNewDueSoonNotification(t *testing.T) {
	due := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)
	n := model.NewDueSoonNotification(&model.AssignmentWithCourse{
		Assignment: model.Assignment{Name: "Problem Set 5", DueAt: &due},
		CourseName: "Calculus II",
	})

	gt.Value(t, n.Type).Equal("basic")
	gt.Value(t, n.Title).Equal("Assignment Due Soon!")
	gt.Value(t, n.Message).Equal("Problem Set 5 (Calculus II) is due " + due.Format(time.RFC1123))
}
