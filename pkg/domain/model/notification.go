package model

import (
	"fmt"
	"time"
)

// NotificationIconURL is the icon attached to every reminder notification
const NotificationIconURL = "icons/icon48.png"

// Notification is one due-soon reminder for a single assignment
type Notification struct {
	Type    string `json:"type"`
	IconURL string `json:"iconUrl"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// NewDueSoonNotification builds the reminder notification for an assignment
// that is due within the reminder window and not yet submitted.
func NewDueSoonNotification(a *AssignmentWithCourse) *Notification {
	due := "soon"
	if a.DueAt != nil {
		due = a.DueAt.Format(time.RFC1123)
	}

	return &Notification{
		Type:    "basic",
		IconURL: NotificationIconURL,
		Title:   "Assignment Due Soon!",
		Message: fmt.Sprintf("%s (%s) is due %s", a.Name, a.CourseName, due),
	}
}
