package types

// MessageType represents the kind of a request envelope sent by a UI surface
type MessageType string

const (
	MessageGetAssignments MessageType = "GET_ASSIGNMENTS"
	MessageGetCourses     MessageType = "GET_COURSES"
	MessageGeminiQuery    MessageType = "GEMINI_QUERY"
	MessageSettingsUpdate MessageType = "SETTINGS_UPDATE"
)

// AllMessageTypes returns all valid message types
func AllMessageTypes() []MessageType {
	return []MessageType{
		MessageGetAssignments,
		MessageGetCourses,
		MessageGeminiQuery,
		MessageSettingsUpdate,
	}
}

// IsValid checks if the message type is valid
func (t MessageType) IsValid() bool {
	switch t {
	case MessageGetAssignments,
		MessageGetCourses,
		MessageGeminiQuery,
		MessageSettingsUpdate:
		return true
	default:
		return false
	}
}

// String returns the string representation of the message type
func (t MessageType) String() string {
	return string(t)
}

// QueryKind represents the sub-type of a GEMINI_QUERY payload
type QueryKind string

const (
	QueryStudyPlan      QueryKind = "study_plan"
	QueryAssignmentHelp QueryKind = "assignment_help"
)

// IsValid checks if the query kind is valid
func (k QueryKind) IsValid() bool {
	switch k {
	case QueryStudyPlan, QueryAssignmentHelp:
		return true
	default:
		return false
	}
}

// String returns the string representation of the query kind
func (k QueryKind) String() string {
	return string(k)
}
