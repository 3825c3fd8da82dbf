package gemini_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/studyhall-lab/studyhall/pkg/domain/model"
	"github.com/studyhall-lab/studyhall/pkg/service/gemini"
)

type recordingTransport struct {
	mu       sync.Mutex
	requests []*http.Request
	bodies   []string
	status   int
	response string
	err      error
}

func (t *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var body string
	if req.Body != nil {
		raw, _ := io.ReadAll(req.Body)
		body = string(raw)
	}
	t.requests = append(t.requests, req)
	t.bodies = append(t.bodies, body)

	if t.err != nil {
		return nil, t.err
	}

	status := t.status
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(t.response)),
		Request:    req,
	}, nil
}

func (t *recordingTransport) callCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.requests)
}

func dueIn(d time.Duration) *time.Time {
	t := time.Now().Add(d)
	return &t
}

func sampleAssignment() *model.AssignmentWithCourse {
	return &model.AssignmentWithCourse{
		Assignment: model.Assignment{
			ID:             42,
			Name:           "Essay Draft",
			Description:    "Write a first draft of your term essay",
			DueAt:          dueIn(48 * time.Hour),
			PointsPossible: 40,
		},
		CourseName: "World History",
		CourseCode: "HIST110",
	}
}

const liveResponse = `{"candidates":[{"content":{"parts":[{"text":"Here is your plan."}]}}]}`

func TestGenerateWithoutKeySkipsNetwork(t *testing.T) {
	transport := &recordingTransport{response: liveResponse}
	client := gemini.New("", gemini.WithHTTPClient(&http.Client{Transport: transport}))
	ctx := context.Background()

	plan, err := client.GenerateStudyPlan(ctx, []*model.AssignmentWithCourse{sampleAssignment()})
	gt.NoError(t, err).Required()
	gt.Value(t, strings.Contains(plan, "Your Personalized Study Plan")).Equal(true)

	help, err := client.GenerateAssignmentHelp(ctx, sampleAssignment(), "Where do I start?")
	gt.NoError(t, err).Required()
	gt.Value(t, strings.Contains(help, "Assignment Guidance")).Equal(true)

	gt.Value(t, transport.callCount()).Equal(0)
}

func TestGenerateStudyPlanLive(t *testing.T) {
	transport := &recordingTransport{response: liveResponse}
	client := gemini.New("secret-key", gemini.WithHTTPClient(&http.Client{Transport: transport}))

	plan, err := client.GenerateStudyPlan(context.Background(), []*model.AssignmentWithCourse{sampleAssignment()})
	gt.NoError(t, err).Required()
	gt.Value(t, plan).Equal("Here is your plan.")
	gt.Value(t, transport.callCount()).Equal(1)

	req := transport.requests[0]
	gt.Value(t, req.Method).Equal(http.MethodPost)
	gt.Value(t, req.URL.Query().Get("key")).Equal("secret-key")

	// Request body carries the single-turn contents/parts structure with the
	// assignment interpolated into the prompt
	var body struct {
		Contents []struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"contents"`
	}
	gt.NoError(t, json.Unmarshal([]byte(transport.bodies[0]), &body)).Required()
	gt.Array(t, body.Contents).Length(1)
	gt.Array(t, body.Contents[0].Parts).Length(1)
	prompt := body.Contents[0].Parts[0].Text
	gt.Value(t, strings.Contains(prompt, "Essay Draft")).Equal(true)
	gt.Value(t, strings.Contains(prompt, "World History")).Equal(true)
}

func TestGenerateStudyPlanEmptyListShortCircuits(t *testing.T) {
	transport := &recordingTransport{response: liveResponse}
	client := gemini.New("secret-key", gemini.WithHTTPClient(&http.Client{Transport: transport}))

	plan, err := client.GenerateStudyPlan(context.Background(), nil)
	gt.NoError(t, err).Required()
	gt.Value(t, strings.Contains(plan, "No pending assignments")).Equal(true)
	gt.Value(t, transport.callCount()).Equal(0)
}

func TestGenerateStudyPlanFiltersSubmittedAndUndated(t *testing.T) {
	transport := &recordingTransport{response: liveResponse}
	client := gemini.New("secret-key", gemini.WithHTTPClient(&http.Client{Transport: transport}))

	submitted := sampleAssignment()
	submitted.SubmittedAt = dueIn(-time.Hour)
	undated := sampleAssignment()
	undated.DueAt = nil

	// Everything filters out, so this is the no-pending path: no network call
	plan, err := client.GenerateStudyPlan(context.Background(), []*model.AssignmentWithCourse{submitted, undated})
	gt.NoError(t, err).Required()
	gt.Value(t, strings.Contains(plan, "No pending assignments")).Equal(true)
	gt.Value(t, transport.callCount()).Equal(0)
}

func TestGenerateFallsBackOnFailure(t *testing.T) {
	tests := []struct {
		name      string
		transport *recordingTransport
	}{
		{
			name:      "transport error",
			transport: &recordingTransport{err: io.ErrUnexpectedEOF},
		},
		{
			name:      "non-200 status",
			transport: &recordingTransport{status: http.StatusTooManyRequests, response: `{}`},
		},
		{
			name:      "malformed body",
			transport: &recordingTransport{response: `{"candidates": "nope"`},
		},
		{
			name:      "missing candidate path",
			transport: &recordingTransport{response: `{"candidates":[]}`},
		},
		{
			name:      "empty candidate text",
			transport: &recordingTransport{response: `{"candidates":[{"content":{"parts":[{"text":""}]}}]}`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := gemini.New("secret-key", gemini.WithHTTPClient(&http.Client{Transport: tt.transport}))

			plan, err := client.GenerateStudyPlan(context.Background(), []*model.AssignmentWithCourse{sampleAssignment()})
			gt.NoError(t, err).Required()
			gt.Value(t, strings.Contains(plan, "Your Personalized Study Plan")).Equal(true)

			help, err := client.GenerateAssignmentHelp(context.Background(), sampleAssignment(), "help me")
			gt.NoError(t, err).Required()
			gt.Value(t, strings.Contains(help, "Assignment Guidance")).Equal(true)
		})
	}
}

func TestGenerateAssignmentHelpPromptContents(t *testing.T) {
	transport := &recordingTransport{response: liveResponse}
	client := gemini.New("secret-key", gemini.WithHTTPClient(&http.Client{Transport: transport}))

	answer, err := client.GenerateAssignmentHelp(context.Background(), sampleAssignment(), "How long should it be?")
	gt.NoError(t, err).Required()
	gt.Value(t, answer).Equal("Here is your plan.")

	prompt := transport.bodies[0]
	gt.Value(t, strings.Contains(prompt, "How long should it be?")).Equal(true)
	gt.Value(t, strings.Contains(prompt, "HIST110")).Equal(true)
	gt.Value(t, strings.Contains(prompt, "Write a first draft")).Equal(true)
}
