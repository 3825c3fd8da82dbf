package interfaces

import (
	"context"

	"github.com/studyhall-lab/studyhall/pkg/domain/model"
)

// LMSClient defines the read-only view of the host LMS REST API
type LMSClient interface {
	// ListCourses returns the user's active courses
	ListCourses(ctx context.Context) ([]*model.Course, error)

	// ListAssignments returns published assignments across all active courses,
	// denormalized with course name/code and sorted ascending by due date with
	// undated assignments last. A single course's failure does not abort the
	// aggregate.
	ListAssignments(ctx context.Context) ([]*model.AssignmentWithCourse, error)

	// CurrentUser returns the user owning the ambient LMS session
	CurrentUser(ctx context.Context) (*model.User, error)
}
