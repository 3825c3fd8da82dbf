package canvas

import (
	"time"

	"github.com/studyhall-lab/studyhall/pkg/domain/model"
	"github.com/studyhall-lab/studyhall/pkg/domain/types"
)

// Built-in sample data served when demo fallback is enabled and the live
// LMS cannot be reached. Keeps the dashboard demoable without a valid host
// session.

func timePtr(t time.Time) *time.Time {
	return &t
}

func demoCourses() []*model.Course {
	return []*model.Course{
		{
			ID:            1,
			Name:          "Computer Science 101",
			CourseCode:    "CS101",
			WorkflowState: types.CourseStateAvailable,
			AccountID:     1,
			StartAt:       timePtr(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)),
			EndAt:         timePtr(time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)),
		},
		{
			ID:            2,
			Name:          "Mathematics for Engineers",
			CourseCode:    "MATH201",
			WorkflowState: types.CourseStateAvailable,
			AccountID:     1,
			StartAt:       timePtr(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)),
			EndAt:         timePtr(time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)),
		},
	}
}

func demoAssignments() []*model.AssignmentWithCourse {
	now := time.Now()

	return []*model.AssignmentWithCourse{
		{
			Assignment: model.Assignment{
				ID:              1,
				Name:            "Final Project Proposal",
				Description:     "Submit your final project proposal with detailed requirements and timeline",
				DueAt:           timePtr(now.Add(24 * time.Hour)),
				SubmissionTypes: []string{"online_text_entry", "online_upload"},
				PointsPossible:  50,
				CourseID:        1,
				HTMLURL:         "#",
				WorkflowState:   types.AssignmentStatePublished,
			},
			CourseName: "Computer Science 101",
			CourseCode: "CS101",
		},
		{
			Assignment: model.Assignment{
				ID:              3,
				Name:            "Data Structures Quiz",
				Description:     "Online quiz covering binary trees and graph algorithms",
				DueAt:           timePtr(now.Add(3 * 24 * time.Hour)),
				SubmissionTypes: []string{"online_quiz"},
				PointsPossible:  100,
				CourseID:        1,
				HTMLURL:         "#",
				WorkflowState:   types.AssignmentStatePublished,
			},
			CourseName: "Computer Science 101",
			CourseCode: "CS101",
		},
		{
			Assignment: model.Assignment{
				ID:              2,
				Name:            "Calculus Problem Set 5",
				Description:     "Complete problems 1-20 from chapter 8",
				DueAt:           timePtr(now.Add(7 * 24 * time.Hour)),
				SubmissionTypes: []string{"online_upload"},
				PointsPossible:  25,
				CourseID:        2,
				HTMLURL:         "#",
				WorkflowState:   types.AssignmentStatePublished,
			},
			CourseName: "Mathematics for Engineers",
			CourseCode: "MATH201",
		},
	}
}
