package usecase

import "errors"

// Sentinel errors for use case layer. Their messages are what the UI
// surfaces show, so keep them human-readable.
var (
	ErrNotInitialized         = errors.New("service is not initialized yet")
	ErrLMSNotConfigured       = errors.New("LMS base URL is not configured and the request carried no page origin")
	ErrAssistantNotConfigured = errors.New("Gemini API key not configured. Add it in settings")
	ErrUnknownQuery           = errors.New("unknown query type or missing parameters")
	ErrUnknownMessageType     = errors.New("unknown message type")
)
