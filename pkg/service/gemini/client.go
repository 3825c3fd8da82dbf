package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/m-mizutani/goerr/v2"

	"github.com/studyhall-lab/studyhall/pkg/domain/interfaces"
	"github.com/studyhall-lab/studyhall/pkg/domain/model"
	"github.com/studyhall-lab/studyhall/pkg/utils/logging"
	"github.com/studyhall-lab/studyhall/pkg/utils/safe"
)

// DefaultEndpoint is the single-turn generation endpoint of the assistant API
const DefaultEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash-latest:generateContent"

// Client wraps the generative-language REST API. Without an API key it
// serves canned content only and never touches the network; with a key, any
// transport failure or unexpected response shape degrades to the same
// canned content. Callers therefore never see an error from the generate
// operations.
type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

var _ interfaces.AssistantClient = &Client{}

// Option is a functional option for client configuration
type Option func(*Client)

// WithEndpoint replaces the generation endpoint, mainly for tests
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithHTTPClient replaces the underlying HTTP client, mainly for tests
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a new assistant client. An empty API key is allowed and puts
// the client into demo mode.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		endpoint:   DefaultEndpoint,
		httpClient: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// generateRequest is the wire shape of a single-turn generation request
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// generateResponse covers only the JSON path this client extracts:
// candidates[0].content.parts[0].text
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateStudyPlan produces a study plan for the given assignments.
// Assignments without a due date or already submitted are left out of the
// prompt; when nothing remains the fixed no-pending text is returned without
// a network call.
func (c *Client) GenerateStudyPlan(ctx context.Context, assignments []*model.AssignmentWithCourse) (string, error) {
	if c.apiKey == "" {
		return cannedStudyPlan, nil
	}

	pending := pendingAssignments(assignments)
	if len(pending) == 0 {
		return cannedNoPendingAssignments, nil
	}

	prompt, err := buildStudyPlanPrompt(pending)
	if err != nil {
		logging.From(ctx).Error("failed to build study plan prompt", "error", err.Error())
		return cannedStudyPlan, nil
	}

	text, err := c.generate(ctx, prompt)
	if err != nil {
		logging.From(ctx).Warn("assistant API unavailable, serving canned study plan",
			"demo_fallback", true,
			"error", err.Error(),
		)
		return cannedStudyPlan, nil
	}

	return text, nil
}

// GenerateAssignmentHelp produces guidance for one assignment and a student
// question.
func (c *Client) GenerateAssignmentHelp(ctx context.Context, assignment *model.AssignmentWithCourse, question string) (string, error) {
	if c.apiKey == "" {
		return cannedAssignmentHelp, nil
	}

	prompt, err := buildAssignmentHelpPrompt(assignment, question)
	if err != nil {
		logging.From(ctx).Error("failed to build assignment help prompt", "error", err.Error())
		return cannedAssignmentHelp, nil
	}

	text, err := c.generate(ctx, prompt)
	if err != nil {
		logging.From(ctx).Warn("assistant API unavailable, serving canned help",
			"demo_fallback", true,
			"error", err.Error(),
		)
		return cannedAssignmentHelp, nil
	}

	return text, nil
}

// generate performs one single-turn generation round trip
func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to marshal generation request")
	}

	reqURL := c.endpoint + "?key=" + url.QueryEscape(c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return "", goerr.Wrap(err, "failed to build generation request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", goerr.Wrap(err, "generation request failed")
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", goerr.New("unexpected assistant response status",
			goerr.V("status", resp.StatusCode),
		)
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", goerr.Wrap(err, "failed to decode generation response")
	}

	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", goerr.New("generation response has no candidate text")
	}

	text := decoded.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", goerr.New("generation response text is empty")
	}

	return text, nil
}
