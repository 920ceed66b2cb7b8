package core

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("lib/scrapers/ulearning/core")

// Environment selects which endpoint table the client uses. Some
// institutions front the platform with their own gateway and expose a
// different API surface.
type Environment string

const (
	EnvDefault Environment = "default"
	EnvDGUT    Environment = "dgut"
)

// DetectEnvironment maps a hostname to its endpoint environment.
func DetectEnvironment(host string) Environment {
	if strings.Contains(strings.ToLower(host), "dgut.edu.cn") {
		return EnvDGUT
	}
	return EnvDefault
}

// Operation names one of the platform calls the exporter needs.
type Operation string

const (
	OpCourseDirectory Operation = "course_directory"
	OpChapterContent  Operation = "chapter_content"
	OpQuestionAnswer  Operation = "question_answer"
)

// Params carries every identifier any endpoint variant can ask for.
// Operations read only the fields they need.
type Params struct {
	CourseID   string
	ClassID    string
	NodeID     string
	QuestionID string
	ParentID   string
}

func (p Params) body(op Operation) map[string]string {
	switch op {
	case OpCourseDirectory:
		return map[string]string{"courseId": p.CourseID, "classId": p.ClassID}
	case OpChapterContent:
		return map[string]string{"nodeId": p.NodeID}
	case OpQuestionAnswer:
		return map[string]string{"questionId": p.QuestionID, "parentId": p.ParentID}
	}
	return nil
}

type endpoint struct {
	method string
	path   func(Params) string
}

func staticPath(p string) func(Params) string {
	return func(Params) string { return p }
}

// Endpoint candidates in preference order. The first candidate that
// yields a decodable JSON object wins; later ones exist because older
// deployments never moved to the /api/v2 prefix.
var defaultEndpoints = map[Operation][]endpoint{
	OpCourseDirectory: {
		{method: http.MethodPost, path: staticPath("/api/v2/learnCourse/courseDirectory")},
		{method: http.MethodPost, path: staticPath("/learnCourse/courseDirectory")},
	},
	OpChapterContent: {
		{method: http.MethodPost, path: staticPath("/api/v2/learnCourse/getWholeChapterPageContent")},
		{method: http.MethodPost, path: staticPath("/learnCourse/getWholeChapterPageContent")},
	},
	OpQuestionAnswer: {
		{method: http.MethodPost, path: staticPath("/api/v2/learnQuestion/getQuestionAnswer")},
		{method: http.MethodPost, path: staticPath("/learnQuestion/getQuestionAnswer")},
	},
}

// The dgut gateway rewrites everything to GET routes under /uaapi.
// When an environment defines candidates for an operation they replace
// the default table outright.
var dgutEndpoints = map[Operation][]endpoint{
	OpCourseDirectory: {
		{method: http.MethodGet, path: func(p Params) string {
			return "/uaapi/course/stu/" + url.PathEscape(p.CourseID) + "/directory?classId=" + url.QueryEscape(p.ClassID)
		}},
	},
	OpChapterContent: {
		{method: http.MethodGet, path: func(p Params) string {
			return "/uaapi/wholepage/chapter/stu/" + url.PathEscape(p.NodeID)
		}},
	},
	OpQuestionAnswer: {
		{method: http.MethodGet, path: func(p Params) string {
			return "/uaapi/questionAnswer/" + url.PathEscape(p.QuestionID) + "?parentId=" + url.QueryEscape(p.ParentID)
		}},
	},
}

var envEndpoints = map[Environment]map[Operation][]endpoint{
	EnvDGUT: dgutEndpoints,
}

// Client speaks the platform's JSON API across its endpoint
// generations.
type Client struct {
	http  *resty.Client
	env   Environment
	token string
}

type ClientOption func(*Client)

// WithToken attaches a bearer-style credential to every request. The
// token is forwarded on both header spellings the platform accepts.
func WithToken(token string) ClientOption {
	return func(c *Client) { c.token = token }
}

// WithEnvironment overrides the environment detected from the base
// URL's hostname.
func WithEnvironment(env Environment) ClientOption {
	return func(c *Client) { c.env = env }
}

// NewClient creates a client rooted at baseURL. Cookies set by the
// server are retained for the client's lifetime since most deployments
// authenticate by session cookie.
func NewClient(baseURL string, options ...ClientOption) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetCookieJar(jar).
		SetHeader("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36").
		SetTimeout(time.Second * 30).
		SetRedirectPolicy(resty.DomainCheckRedirectPolicy(parsed.Hostname()))

	client := &Client{
		http: httpClient,
		env:  DetectEnvironment(parsed.Hostname()),
	}
	for _, option := range options {
		option(client)
	}
	return client, nil
}

// HTTP exposes the underlying resty client so callers can instrument
// it.
func (c *Client) HTTP() *resty.Client { return c.http }

// SetCookies seeds the cookie jar for the client's base URL.
func (c *Client) SetCookies(cookies []*http.Cookie) {
	c.http.SetCookies(cookies)
}

func (c *Client) candidates(op Operation) []endpoint {
	if overrides, ok := envEndpoints[c.env][op]; ok && len(overrides) > 0 {
		return overrides
	}
	return defaultEndpoints[op]
}

// Request performs op against each endpoint candidate in order and
// returns the first decodable response envelope. The caller inspects
// Response.Success; transport and decode failures move on to the next
// candidate and the last error surfaces if every candidate fails.
func (c *Client) Request(ctx context.Context, op Operation, params Params) (Response, error) {
	ctx, span := tracer.Start(ctx, fmt.Sprintf("core.Request %s", op), trace.WithAttributes(
		attribute.String("ulearning.operation", string(op)),
		attribute.String("ulearning.environment", string(c.env)),
	))
	defer span.End()

	var lastErr error
	for _, candidate := range c.candidates(op) {
		resp, err := c.call(ctx, candidate, op, params)
		if err != nil {
			lastErr = err
			continue
		}
		return resp, nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no endpoint candidates for operation %q", op)
	}
	span.RecordError(lastErr)
	span.SetStatus(codes.Error, "all endpoint candidates failed")
	return Response{}, lastErr
}

func (c *Client) call(ctx context.Context, candidate endpoint, op Operation, params Params) (Response, error) {
	req := c.http.R().SetContext(ctx)
	if c.token != "" {
		req.SetHeader("ua-authorization", c.token)
		req.SetHeader("Authorization", c.token)
	}

	path := candidate.path(params)
	var (
		resp *resty.Response
		err  error
	)
	if candidate.method == http.MethodGet {
		resp, err = req.Get(path)
	} else {
		resp, err = req.
			SetHeader("Content-Type", "application/json;charset=UTF-8").
			SetBody(params.body(op)).
			Post(path)
	}
	if err != nil {
		return Response{}, fmt.Errorf("%s %s: %w", candidate.method, path, err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return Response{}, fmt.Errorf("%s %s: http %d", candidate.method, path, resp.StatusCode())
	}
	wrapped, err := wrapResponse(resp.Body())
	if err != nil {
		return Response{}, fmt.Errorf("%s %s: %w", candidate.method, path, err)
	}
	return wrapped, nil
}

type responseEnvelope struct {
	Success *bool           `json:"success"`
	Code    *int            `json:"code"`
	Message string          `json:"message"`
	Msg     string          `json:"msg"`
	Data    json.RawMessage `json:"data"`
}

// wrapResponse reduces the three envelope generations to one shape:
// an explicit success flag, a numeric code where 200 means success, or
// a bare object that is its own payload.
func wrapResponse(body []byte) (Response, error) {
	var env responseEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return Response{}, fmt.Errorf("decode response envelope: %w", err)
	}

	message := firstString(env.Message, env.Msg)
	switch {
	case env.Success != nil:
		return Response{Success: *env.Success, Message: message, Data: env.Data}, nil
	case env.Code != nil:
		return Response{Success: *env.Code == 200, Message: message, Data: env.Data}, nil
	case len(env.Data) > 0 && string(env.Data) != "null":
		return Response{Success: true, Message: message, Data: env.Data}, nil
	default:
		return Response{Success: true, Message: message, Data: json.RawMessage(body)}, nil
	}
}

// IDsFromURL digs the course and class identifiers out of a course
// page URL. The SPA keeps them as query parameters, sometimes behind
// the fragment.
func IDsFromURL(raw string) (courseID, classID string, err error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("parse course url: %w", err)
	}

	queries := []url.Values{parsed.Query()}
	if idx := strings.Index(parsed.Fragment, "?"); idx >= 0 {
		if fragQuery, err := url.ParseQuery(parsed.Fragment[idx+1:]); err == nil {
			queries = append(queries, fragQuery)
		}
	}

	for _, q := range queries {
		if courseID == "" {
			courseID = firstString(q.Get("courseId"), q.Get("courseid"))
		}
		if classID == "" {
			classID = firstString(q.Get("classId"), q.Get("classid"))
		}
	}
	if courseID == "" || classID == "" {
		return courseID, classID, fmt.Errorf("course url %q carries no courseId/classId", raw)
	}
	return courseID, classID, nil
}
