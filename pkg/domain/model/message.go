package model

import (
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/studyhall-lab/studyhall/pkg/domain/types"
)

// Message is the request envelope sent by a UI surface. Payload stays raw
// until the router knows which shape to expect for the message type.
// Origin carries the origin of the host page the sender runs inside; it is
// used to derive the LMS base URL when no explicit URL is configured.
type Message struct {
	Type    types.MessageType `json:"type"`
	Payload json.RawMessage   `json:"payload,omitempty"`
	Origin  string            `json:"origin,omitempty"`
}

// Response is the uniform reply envelope. Error is set exactly when
// Success is false; Data carries the result of data-producing operations,
// while acknowledge-only operations answer with a bare success. Use
// NewDataResponse / NewErrorResponse to keep that invariant.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// NewDataResponse returns a success response carrying the given payload
func NewDataResponse(data any) *Response {
	return &Response{Success: true, Data: data}
}

// NewErrorResponse returns a failure response carrying a human-readable error
func NewErrorResponse(msg string) *Response {
	return &Response{Success: false, Error: msg}
}

// GeminiQueryPayload is the payload of a GEMINI_QUERY message. Type selects
// which of the remaining fields are required.
type GeminiQueryPayload struct {
	Type        types.QueryKind         `json:"type"`
	Assignments []*AssignmentWithCourse `json:"assignments"`
	Assignment  *AssignmentWithCourse   `json:"assignment,omitempty"`
	Question    string                  `json:"question,omitempty"`
}

// Validate checks the payload shape against its declared query kind.
// Note that an empty assignment list is valid for study_plan: the assistant
// answers the "no pending assignments" case without a network call.
func (p *GeminiQueryPayload) Validate() error {
	switch p.Type {
	case types.QueryStudyPlan:
		if p.Assignments == nil {
			return goerr.New("study_plan query requires an assignment list")
		}
	case types.QueryAssignmentHelp:
		if p.Assignment == nil {
			return goerr.New("assignment_help query requires an assignment")
		}
		if p.Question == "" {
			return goerr.New("assignment_help query requires a question")
		}
	default:
		return goerr.New("unknown query kind", goerr.V("kind", p.Type))
	}
	return nil
}

// DecodeGeminiQueryPayload parses the raw payload of a GEMINI_QUERY message
func DecodeGeminiQueryPayload(raw json.RawMessage) (*GeminiQueryPayload, error) {
	if len(raw) == 0 {
		return nil, goerr.New("missing payload")
	}

	var payload GeminiQueryPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, goerr.Wrap(err, "failed to decode gemini query payload")
	}
	if err := payload.Validate(); err != nil {
		return nil, err
	}
	return &payload, nil
}

// DecodeSettingsPayload parses the raw payload of a SETTINGS_UPDATE message
func DecodeSettingsPayload(raw json.RawMessage) (*Settings, error) {
	if len(raw) == 0 {
		return nil, goerr.New("missing payload")
	}

	var settings Settings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return nil, goerr.Wrap(err, "failed to decode settings payload")
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}
