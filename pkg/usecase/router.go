package usecase

import (
	"context"

	"github.com/studyhall-lab/studyhall/pkg/domain/model"
	"github.com/studyhall-lab/studyhall/pkg/domain/types"
	"github.com/studyhall-lab/studyhall/pkg/utils/logging"
)

// HandleMessage dispatches one request envelope and always produces a
// response envelope; failures travel inside it, never as a Go error. The
// router must be Init'ed first, otherwise every message is answered with
// an error envelope.
func (uc *UseCases) HandleMessage(ctx context.Context, msg *model.Message) *model.Response {
	settings, _, _ := uc.snapshot()
	if settings == nil {
		return model.NewErrorResponse(ErrNotInitialized.Error())
	}

	switch msg.Type {
	case types.MessageGetCourses:
		return uc.handleGetCourses(ctx, msg)

	case types.MessageGetAssignments:
		return uc.handleGetAssignments(ctx, msg)

	case types.MessageGeminiQuery:
		return uc.handleGeminiQuery(ctx, msg)

	case types.MessageSettingsUpdate:
		return uc.handleSettingsUpdate(ctx, msg)

	default:
		logging.From(ctx).Warn("rejected message", "type", msg.Type)
		return model.NewErrorResponse(ErrUnknownMessageType.Error() + ": " + msg.Type.String())
	}
}

func (uc *UseCases) handleGetCourses(ctx context.Context, msg *model.Message) *model.Response {
	lms, err := uc.lmsFor(msg.Origin)
	if err != nil {
		return model.NewErrorResponse(err.Error())
	}

	courses, err := lms.ListCourses(ctx)
	if err != nil {
		logging.From(ctx).Error("failed to list courses", "error", err.Error())
		return model.NewErrorResponse(err.Error())
	}

	return model.NewDataResponse(courses)
}

func (uc *UseCases) handleGetAssignments(ctx context.Context, msg *model.Message) *model.Response {
	lms, err := uc.lmsFor(msg.Origin)
	if err != nil {
		return model.NewErrorResponse(err.Error())
	}

	assignments, err := lms.ListAssignments(ctx)
	if err != nil {
		logging.From(ctx).Error("failed to list assignments", "error", err.Error())
		return model.NewErrorResponse(err.Error())
	}

	return model.NewDataResponse(assignments)
}

func (uc *UseCases) handleGeminiQuery(ctx context.Context, msg *model.Message) *model.Response {
	payload, err := model.DecodeGeminiQueryPayload(msg.Payload)
	if err != nil {
		logging.From(ctx).Warn("rejected assistant query", "error", err.Error())
		return model.NewErrorResponse(ErrUnknownQuery.Error())
	}

	_, _, assistant := uc.snapshot()
	if assistant == nil {
		return model.NewErrorResponse(ErrAssistantNotConfigured.Error())
	}

	var text string
	switch payload.Type {
	case types.QueryStudyPlan:
		text, err = assistant.GenerateStudyPlan(ctx, payload.Assignments)
	case types.QueryAssignmentHelp:
		text, err = assistant.GenerateAssignmentHelp(ctx, payload.Assignment, payload.Question)
	default:
		// Unreachable after Validate, kept for safety
		return model.NewErrorResponse(ErrUnknownQuery.Error())
	}
	if err != nil {
		logging.From(ctx).Error("assistant query failed", "kind", payload.Type, "error", err.Error())
		return model.NewErrorResponse(err.Error())
	}

	return model.NewDataResponse(text)
}

func (uc *UseCases) handleSettingsUpdate(ctx context.Context, msg *model.Message) *model.Response {
	settings, err := model.DecodeSettingsPayload(msg.Payload)
	if err != nil {
		logging.From(ctx).Warn("rejected settings update", "error", err.Error())
		return model.NewErrorResponse(err.Error())
	}

	if err := uc.repo.Settings().Put(ctx, settings); err != nil {
		logging.From(ctx).Error("failed to persist settings", "error", err.Error())
		return model.NewErrorResponse("failed to save settings")
	}

	// Clients are replaced wholesale so in-flight requests keep using the
	// ones they started with
	if err := uc.apply(ctx, settings); err != nil {
		logging.From(ctx).Error("failed to apply settings", "error", err.Error())
		return model.NewErrorResponse(err.Error())
	}

	return &model.Response{Success: true}
}
