package canvas

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/studyhall-lab/studyhall/pkg/domain/interfaces"
	"github.com/studyhall-lab/studyhall/pkg/domain/model"
	"github.com/studyhall-lab/studyhall/pkg/utils/logging"
	"github.com/studyhall-lab/studyhall/pkg/utils/safe"
)

const (
	// pageSize caps every listing request, matching the LMS API maximum
	pageSize = 100

	// fetchConcurrency bounds parallel per-course assignment fetches
	fetchConcurrency = 4
)

// Client wraps the host LMS REST API. It is stateless aside from
// configuration, so concurrent use is safe without locking.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	cookie       string
	demoFallback bool
}

var _ interfaces.LMSClient = &Client{}

// Option is a functional option for client configuration
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, mainly for tests
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithCookie sets a static LMS session cookie for headless use. A cookie
// forwarded per request via WithRequestCookie takes precedence.
func WithCookie(cookie string) Option {
	return func(c *Client) {
		c.cookie = cookie
	}
}

// WithDemoFallback enables serving built-in sample data when the LMS is
// unreachable or the session is invalid. Fallback results are logged with a
// demo_fallback marker so a masked outage stays distinguishable from a real
// fetch.
func WithDemoFallback(enabled bool) Option {
	return func(c *Client) {
		c.demoFallback = enabled
	}
}

// New creates a new LMS client for the given base URL (scheme and host of
// the LMS deployment, e.g. https://school.instructure.com).
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, goerr.New("invalid LMS base URL", goerr.V("baseURL", baseURL))
	}

	c := &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

type ctxCookieKey struct{}

// WithRequestCookie forwards the ambient LMS session cookie of one request.
// The bridge sets this from the browser's cookies; the client itself never
// stores or transmits credentials beyond this header.
func WithRequestCookie(ctx context.Context, cookie string) context.Context {
	if cookie == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxCookieKey{}, cookie)
}

// RequestCookie returns the cookie set by WithRequestCookie, or empty
func RequestCookie(ctx context.Context) string {
	cookie, _ := ctx.Value(ctxCookieKey{}).(string)
	return cookie
}

// get issues one credentialed GET against the LMS API and decodes the JSON body
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to build LMS request", goerr.V("url", reqURL))
	}
	req.Header.Set("Accept", "application/json")

	cookie := RequestCookie(ctx)
	if cookie == "" {
		cookie = c.cookie
	}
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "LMS request failed", goerr.V("url", reqURL))
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return goerr.New("unexpected LMS response status",
			goerr.V("url", reqURL),
			goerr.V("status", resp.StatusCode),
		)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return goerr.Wrap(err, "failed to decode LMS response", goerr.V("url", reqURL))
	}

	return nil
}

// CurrentUser returns the user owning the ambient LMS session
func (c *Client) CurrentUser(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.get(ctx, "/api/v1/users/self", nil, &user); err != nil {
		return nil, goerr.Wrap(err, "failed to fetch current user")
	}
	return &user, nil
}

// ListCourses returns the user's active courses. When demo fallback is
// enabled, any failure yields the built-in sample courses instead of an
// error.
func (c *Client) ListCourses(ctx context.Context) ([]*model.Course, error) {
	courses, err := c.listCourses(ctx)
	if err != nil {
		if !c.demoFallback {
			return nil, err
		}
		logging.From(ctx).Warn("serving sample courses instead of live data",
			"demo_fallback", true,
			"error", err.Error(),
		)
		return demoCourses(), nil
	}
	return courses, nil
}

func (c *Client) listCourses(ctx context.Context) ([]*model.Course, error) {
	query := url.Values{
		"enrollment_state": []string{"active"},
		"per_page":         []string{fmt.Sprintf("%d", pageSize)},
	}

	var courses []*model.Course
	if err := c.get(ctx, "/api/v1/courses", query, &courses); err != nil {
		return nil, goerr.Wrap(err, "failed to fetch courses")
	}

	return courses, nil
}

// ListAssignments fetches assignments for every active course, keeps only
// published ones, denormalizes course name/code onto each, and returns the
// merged set sorted ascending by due date with undated assignments last.
// One course's fetch failure is logged and skipped; only a failure to list
// courses at all aborts the aggregate (or, with demo fallback, yields the
// built-in sample assignments).
func (c *Client) ListAssignments(ctx context.Context) ([]*model.AssignmentWithCourse, error) {
	courses, err := c.listCourses(ctx)
	if err != nil {
		if !c.demoFallback {
			return nil, err
		}
		logging.From(ctx).Warn("serving sample assignments instead of live data",
			"demo_fallback", true,
			"error", err.Error(),
		)
		return demoAssignments(), nil
	}

	var mu sync.Mutex
	var all []*model.AssignmentWithCourse

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(fetchConcurrency)

	for _, course := range courses {
		eg.Go(func() error {
			assignments, err := c.listCourseAssignments(egCtx, course.ID)
			if err != nil {
				// Partial-failure tolerance: one broken course must not
				// blank out the rest.
				logging.From(ctx).Error("failed to fetch assignments for course",
					"course_id", course.ID,
					"course_name", course.Name,
					"error", err.Error(),
				)
				return nil
			}

			enriched := make([]*model.AssignmentWithCourse, 0, len(assignments))
			for _, a := range assignments {
				if !a.IsPublished() {
					continue
				}
				enriched = append(enriched, &model.AssignmentWithCourse{
					Assignment: *a,
					CourseName: course.Name,
					CourseCode: course.CourseCode,
				})
			}

			mu.Lock()
			all = append(all, enriched...)
			mu.Unlock()
			return nil
		})
	}

	// Per-course errors never propagate, so this only reflects context cancellation
	if err := eg.Wait(); err != nil {
		return nil, goerr.Wrap(err, "assignment aggregation aborted")
	}

	model.SortByDueDate(all)
	return all, nil
}

func (c *Client) listCourseAssignments(ctx context.Context, courseID int64) ([]*model.Assignment, error) {
	query := url.Values{
		"per_page": []string{fmt.Sprintf("%d", pageSize)},
	}

	var assignments []*model.Assignment
	path := fmt.Sprintf("/api/v1/courses/%d/assignments", courseID)
	if err := c.get(ctx, path, query, &assignments); err != nil {
		return nil, err
	}

	return assignments, nil
}
