package model

import (
	"time"

	"github.com/studyhall-lab/studyhall/pkg/domain/types"
)

// Course represents a course fetched from the LMS course listing endpoint.
// Courses are read-only, request-scoped values; nothing is persisted locally.
type Course struct {
	ID            int64             `json:"id"`
	Name          string            `json:"name"`
	CourseCode    string            `json:"course_code"`
	WorkflowState types.CourseState `json:"workflow_state"`
	AccountID     int64             `json:"account_id"`
	StartAt       *time.Time        `json:"start_at"`
	EndAt         *time.Time        `json:"end_at"`
}

// User represents the currently logged-in LMS user
type User struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	LoginID string `json:"login_id"`
}
