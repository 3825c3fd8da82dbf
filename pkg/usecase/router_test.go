package usecase_test

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/studyhall-lab/studyhall/pkg/domain/interfaces"
	"github.com/studyhall-lab/studyhall/pkg/domain/model"
	"github.com/studyhall-lab/studyhall/pkg/domain/types"
	"github.com/studyhall-lab/studyhall/pkg/repository/memory"
	"github.com/studyhall-lab/studyhall/pkg/usecase"
)

type stubLMS struct {
	baseURL     string
	courses     []*model.Course
	assignments []*model.AssignmentWithCourse
	err         error
}

func (s *stubLMS) ListCourses(ctx context.Context) ([]*model.Course, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.courses, nil
}

func (s *stubLMS) ListAssignments(ctx context.Context) ([]*model.AssignmentWithCourse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.assignments, nil
}

func (s *stubLMS) CurrentUser(ctx context.Context) (*model.User, error) {
	return &model.User{ID: 1, Name: "Test Student"}, nil
}

type stubAssistant struct {
	apiKey string
	calls  int
}

func (s *stubAssistant) GenerateStudyPlan(ctx context.Context, assignments []*model.AssignmentWithCourse) (string, error) {
	s.calls++
	return "plan from " + s.apiKey, nil
}

func (s *stubAssistant) GenerateAssignmentHelp(ctx context.Context, assignment *model.AssignmentWithCourse, question string) (string, error) {
	s.calls++
	return "help from " + s.apiKey, nil
}

// testEnv wires UseCases to stub factories that record what they built
type testEnv struct {
	uc         *usecase.UseCases
	repo       *memory.Memory
	lms        *stubLMS
	lmsURLs    []string
	assistants []*stubAssistant
}

func newTestEnv(t *testing.T, opts ...usecase.Option) *testEnv {
	t.Helper()

	env := &testEnv{
		repo: memory.New(),
		lms:  &stubLMS{},
	}

	opts = append(opts,
		usecase.WithLMSFactory(func(baseURL string) (interfaces.LMSClient, error) {
			env.lmsURLs = append(env.lmsURLs, baseURL)
			env.lms.baseURL = baseURL
			return env.lms, nil
		}),
		usecase.WithAssistantFactory(func(apiKey string) interfaces.AssistantClient {
			a := &stubAssistant{apiKey: apiKey}
			env.assistants = append(env.assistants, a)
			return a
		}),
	)

	env.uc = usecase.New(env.repo, opts...)
	return env
}

func rawJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	gt.NoError(t, err).Required()
	return raw
}

func TestInitCreatesDefaultSettings(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	gt.NoError(t, env.uc.Init(ctx)).Required()

	stored, err := env.repo.Settings().Get(ctx)
	gt.NoError(t, err).Required()
	gt.Value(t, stored.EnableNotifications).Equal(true)
	gt.Value(t, stored.StudyReminders).Equal(true)
	gt.Value(t, stored.Theme).Equal(types.ThemeAuto)

	// No API key yet, so no assistant was built
	gt.Array(t, env.assistants).Length(0)
}

func TestHandleMessageBeforeInit(t *testing.T) {
	env := newTestEnv(t)

	resp := env.uc.HandleMessage(context.Background(), &model.Message{Type: types.MessageGetCourses})
	gt.Value(t, resp.Success).Equal(false)
	gt.Value(t, resp.Error != "").Equal(true)
	gt.Value(t, resp.Data == nil).Equal(true)
}

func TestHandleGetCourses(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, usecase.WithBaseURL("https://school.example.edu"))
	env.lms.courses = []*model.Course{
		{ID: 101, Name: "Intro to Computer Science", CourseCode: "CS101"},
	}
	gt.NoError(t, env.uc.Init(ctx)).Required()

	resp := env.uc.HandleMessage(ctx, &model.Message{Type: types.MessageGetCourses})
	gt.Value(t, resp.Success).Equal(true)
	gt.Value(t, resp.Error).Equal("")

	courses := gt.Cast[[]*model.Course](t, resp.Data)
	gt.Array(t, courses).Length(1)
	gt.Value(t, courses[0].CourseCode).Equal("CS101")
}

func TestHandleGetAssignmentsFailure(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, usecase.WithBaseURL("https://school.example.edu"))
	env.lms.err = fmt.Errorf("canvas is down")
	gt.NoError(t, env.uc.Init(ctx)).Required()

	// The failure travels inside the envelope, never as a Go error
	resp := env.uc.HandleMessage(ctx, &model.Message{Type: types.MessageGetAssignments})
	gt.Value(t, resp.Success).Equal(false)
	gt.Value(t, resp.Error != "").Equal(true)
	gt.Value(t, resp.Data == nil).Equal(true)
}

func TestOriginFallbackBaseURL(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	gt.NoError(t, env.uc.Init(ctx)).Required()

	// No configured base URL: the page origin decides per message
	resp := env.uc.HandleMessage(ctx, &model.Message{
		Type:   types.MessageGetCourses,
		Origin: "https://campus.example.edu",
	})
	gt.Value(t, resp.Success).Equal(true)
	gt.Array(t, env.lmsURLs).Length(1)
	gt.Value(t, env.lmsURLs[0]).Equal("https://campus.example.edu")

	// Without an origin either, the request is answered with an error
	resp = env.uc.HandleMessage(ctx, &model.Message{Type: types.MessageGetCourses})
	gt.Value(t, resp.Success).Equal(false)
}

func TestGeminiQueryWithoutKey(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, usecase.WithBaseURL("https://school.example.edu"))
	gt.NoError(t, env.uc.Init(ctx)).Required()

	resp := env.uc.HandleMessage(ctx, &model.Message{
		Type: types.MessageGeminiQuery,
		Payload: rawJSON(t, model.GeminiQueryPayload{
			Type:        types.QueryStudyPlan,
			Assignments: []*model.AssignmentWithCourse{},
		}),
	})
	gt.Value(t, resp.Success).Equal(false)
	gt.Value(t, resp.Error).Equal(usecase.ErrAssistantNotConfigured.Error())
}

func TestGeminiQueryMalformed(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, usecase.WithBaseURL("https://school.example.edu"))
	gt.NoError(t, env.uc.Init(ctx)).Required()

	tests := []struct {
		name    string
		payload json.RawMessage
	}{
		{name: "no payload", payload: nil},
		{name: "unknown kind", payload: rawJSON(t, map[string]any{"type": "translate"})},
		{name: "study plan without list", payload: rawJSON(t, map[string]any{"type": "study_plan"})},
		{name: "help without question", payload: rawJSON(t, map[string]any{
			"type":       "assignment_help",
			"assignment": map[string]any{"name": "Essay"},
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := env.uc.HandleMessage(ctx, &model.Message{
				Type:    types.MessageGeminiQuery,
				Payload: tt.payload,
			})
			gt.Value(t, resp.Success).Equal(false)
			gt.Value(t, resp.Error).Equal(usecase.ErrUnknownQuery.Error())
		})
	}
}

func TestSettingsUpdateRebuildsClients(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, usecase.WithBaseURL("https://school.example.edu"))
	gt.NoError(t, env.uc.Init(ctx)).Required()

	update := &model.Settings{
		GeminiAPIKey:        "fresh-key",
		EnableNotifications: true,
		StudyReminders:      true,
		Theme:               types.ThemeDark,
	}
	resp := env.uc.HandleMessage(ctx, &model.Message{
		Type:    types.MessageSettingsUpdate,
		Payload: rawJSON(t, update),
	})
	gt.Value(t, resp.Success).Equal(true)

	// Persisted verbatim
	stored, err := env.repo.Settings().Get(ctx)
	gt.NoError(t, err).Required()
	gt.Value(t, stored.GeminiAPIKey).Equal("fresh-key")
	gt.Value(t, stored.Theme).Equal(types.ThemeDark)

	// The next query runs against a client built from the new key
	query := env.uc.HandleMessage(ctx, &model.Message{
		Type: types.MessageGeminiQuery,
		Payload: rawJSON(t, model.GeminiQueryPayload{
			Type:        types.QueryStudyPlan,
			Assignments: []*model.AssignmentWithCourse{},
		}),
	})
	gt.Value(t, query.Success).Equal(true)
	gt.Value(t, gt.Cast[string](t, query.Data)).Equal("plan from fresh-key")
	gt.Array(t, env.assistants).Length(1)

	// Updating again replaces the assistant wholesale
	update.GeminiAPIKey = "rotated-key"
	resp = env.uc.HandleMessage(ctx, &model.Message{
		Type:    types.MessageSettingsUpdate,
		Payload: rawJSON(t, update),
	})
	gt.Value(t, resp.Success).Equal(true)
	gt.Array(t, env.assistants).Length(2)
	gt.Value(t, env.assistants[1].apiKey).Equal("rotated-key")
}

func TestSettingsUpdateRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, usecase.WithBaseURL("https://school.example.edu"))
	gt.NoError(t, env.uc.Init(ctx)).Required()

	resp := env.uc.HandleMessage(ctx, &model.Message{
		Type: types.MessageSettingsUpdate,
		Payload: rawJSON(t, map[string]any{
			"canvasUrl": "ftp://not-a-web-url",
		}),
	})
	gt.Value(t, resp.Success).Equal(false)

	// The stored record is untouched
	stored, err := env.repo.Settings().Get(ctx)
	gt.NoError(t, err).Required()
	gt.Value(t, stored.CanvasURL).Equal("")
}

func TestUnknownMessageType(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, usecase.WithBaseURL("https://school.example.edu"))
	gt.NoError(t, env.uc.Init(ctx)).Required()

	resp := env.uc.HandleMessage(ctx, &model.Message{Type: "SELF_DESTRUCT"})
	gt.Value(t, resp.Success).Equal(false)
	gt.Value(t, resp.Error != "").Equal(true)
}

type countingNotifier struct {
	mu     sync.Mutex
	titles []string
	err    error
}

func (n *countingNotifier) Notify(ctx context.Context, notification *model.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.titles = append(n.titles, notification.Message)
	return nil
}

func reminderAssignments() []*model.AssignmentWithCourse {
	soon := time.Now().Add(3 * time.Hour)
	later := time.Now().Add(72 * time.Hour)
	submitted := time.Now().Add(-time.Hour)

	return []*model.AssignmentWithCourse{
		{
			Assignment: model.Assignment{Name: "Reading Response", DueAt: &soon},
			CourseName: "Literature",
		},
		{
			Assignment: model.Assignment{Name: "Term Paper", DueAt: &later},
			CourseName: "Literature",
		},
		{
			Assignment: model.Assignment{Name: "Quiz 3", DueAt: &soon, SubmittedAt: &submitted},
			CourseName: "Biology",
		},
		{
			Assignment: model.Assignment{Name: "Optional Survey"},
			CourseName: "Biology",
		},
	}
}

func TestRunReminderCheck(t *testing.T) {
	ctx := context.Background()
	notifier := &countingNotifier{}
	env := newTestEnv(t,
		usecase.WithBaseURL("https://school.example.edu"),
		usecase.WithNotifier(notifier),
	)
	env.lms.assignments = reminderAssignments()
	gt.NoError(t, env.uc.Init(ctx)).Required()

	gt.NoError(t, env.uc.RunReminderCheck(ctx)).Required()

	// Only the unsubmitted assignment inside the 24h window notifies
	gt.Array(t, notifier.titles).Length(1)
	gt.Value(t, notifier.titles[0]).Equal(
		fmt.Sprintf("Reading Response (Literature) is due %s",
			env.lms.assignments[0].DueAt.Format(time.RFC1123)),
	)
}

func TestRunReminderCheckDisabled(t *testing.T) {
	ctx := context.Background()
	notifier := &countingNotifier{}
	env := newTestEnv(t,
		usecase.WithBaseURL("https://school.example.edu"),
		usecase.WithNotifier(notifier),
	)
	env.lms.assignments = reminderAssignments()
	gt.NoError(t, env.uc.Init(ctx)).Required()

	// Turn reminders off via the same path the UI uses
	resp := env.uc.HandleMessage(ctx, &model.Message{
		Type: types.MessageSettingsUpdate,
		Payload: rawJSON(t, &model.Settings{
			EnableNotifications: true,
			StudyReminders:      false,
			Theme:               types.ThemeAuto,
		}),
	})
	gt.Value(t, resp.Success).Equal(true)

	gt.NoError(t, env.uc.RunReminderCheck(ctx)).Required()
	gt.Array(t, notifier.titles).Length(0)
}

func TestRunReminderCheckDeliveryFailure(t *testing.T) {
	ctx := context.Background()
	notifier := &countingNotifier{err: fmt.Errorf("slack rejected the message")}
	env := newTestEnv(t,
		usecase.WithBaseURL("https://school.example.edu"),
		usecase.WithNotifier(notifier),
	)
	env.lms.assignments = reminderAssignments()
	gt.NoError(t, env.uc.Init(ctx)).Required()

	// Delivery failures are logged, not returned
	gt.NoError(t, env.uc.RunReminderCheck(ctx))
}
