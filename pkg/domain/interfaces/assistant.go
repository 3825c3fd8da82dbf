package interfaces

import (
	"context"

	"github.com/studyhall-lab/studyhall/pkg/domain/model"
)

// AssistantClient defines the generative assistant operations. Both
// operations degrade to canned content instead of failing: without an API
// key, on transport errors, and on malformed responses the returned text is
// a fixed placeholder and the error is nil.
type AssistantClient interface {
	// GenerateStudyPlan produces a prioritized study plan for the given assignments
	GenerateStudyPlan(ctx context.Context, assignments []*model.AssignmentWithCourse) (string, error)

	// GenerateAssignmentHelp produces guidance for one assignment and a student question
	GenerateAssignmentHelp(ctx context.Context, assignment *model.AssignmentWithCourse, question string) (string, error)
}
