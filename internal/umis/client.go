// Package umis talks to the university management information system's
// dataserver API: credential authentication, reference reads and course
// allocation writes.
package umis

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Dataserver views.
const (
	viewClassOptions = "45:0"
	viewInstructor   = "70:0"
)

var (
	ErrAuthFailed  = errors.New("umis rejected the credentials")
	ErrUnavailable = errors.New("umis is unreachable")
	ErrRejected    = errors.New("umis rejected the request")
)

// Client is a thin HTTP client for the UMIS dataserver.
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger.With().Str("component", "umis").Logger(),
	}
}

// envelope is the dataserver's uniform response shape. A non-zero result
// code means the operation was rejected even on HTTP 200.
type envelope struct {
	Result  int             `json:"result"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// AuthResult is the authenticated identity returned by the dataserver.
type AuthResult struct {
	Token      string `json:"token"`
	UMISID     string `json:"umisid"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Department string `json:"deptname"`
}

// Instructor is a staff record read from the dataserver.
type Instructor struct {
	UMISID     string `json:"umisid"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Department string `json:"deptname"`
}

// ClassOption is a reference class-option row.
type ClassOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PushPayload is one allocation row written to the dataserver.
type PushPayload struct {
	QuarterID    string `json:"quarterid"`
	InstructorID string `json:"instructorid"`
	CourseID     string `json:"courseid"`
	CourseTitle  string `json:"coursetitle"`
	ClassOption  string `json:"classoption"`
	MaxClass     int    `json:"maxclass"`
}

// QuarterID maps an academic session and semester name onto the
// dataserver's quarter identifier: "<session>.1" for first semester,
// ".2" for second, ".3" for summer.
func QuarterID(sessionName, semesterName string) string {
	switch semesterName {
	case "Second Semester":
		return sessionName + ".2"
	case "Summer Semester":
		return sessionName + ".3"
	default:
		return sessionName + ".1"
	}
}

// Authenticate exchanges credentials for a dataserver token. Credentials
// travel base64-encoded in headers, per the dataserver contract.
func (c *Client) Authenticate(ctx context.Context, username, password string) (*AuthResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("action", "authorization")
	req.Header.Set("authuser", base64.StdEncoding.EncodeToString([]byte(username)))
	req.Header.Set("authpass", base64.StdEncoding.EncodeToString([]byte(password)))

	env, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if env.Result != 0 {
		c.logger.Warn().Int("result", env.Result).Str("message", env.Message).Msg("authentication rejected")
		return nil, ErrAuthFailed
	}

	var results []AuthResult
	if err := json.Unmarshal(env.Data, &results); err != nil {
		// Some dataserver deployments return a bare object instead of a
		// single-element array.
		var single AuthResult
		if err2 := json.Unmarshal(env.Data, &single); err2 != nil {
			return nil, fmt.Errorf("decode auth payload: %w", err)
		}
		results = []AuthResult{single}
	}
	if len(results) == 0 || results[0].Token == "" {
		return nil, ErrAuthFailed
	}
	return &results[0], nil
}

// ClassOptions reads the class-option reference list.
func (c *Client) ClassOptions(ctx context.Context, token string) ([]ClassOption, error) {
	env, err := c.read(ctx, token, viewClassOptions, "")
	if err != nil {
		return nil, err
	}
	var options []ClassOption
	if err := json.Unmarshal(env.Data, &options); err != nil {
		return nil, fmt.Errorf("decode class options: %w", err)
	}
	return options, nil
}

// Instructor looks up a staff record by UMIS id. Returns (nil, nil) when the
// dataserver has no matching record.
func (c *Client) Instructor(ctx context.Context, token, umisID string) (*Instructor, error) {
	env, err := c.read(ctx, token, viewInstructor, umisID)
	if err != nil {
		return nil, err
	}
	var instructors []Instructor
	if err := json.Unmarshal(env.Data, &instructors); err != nil {
		return nil, fmt.Errorf("decode instructor: %w", err)
	}
	if len(instructors) == 0 {
		return nil, nil
	}
	return &instructors[0], nil
}

func (c *Client) read(ctx context.Context, token, view, linkdata string) (*envelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, err
	}
	q := req.URL.Query()
	q.Set("view", view)
	if linkdata != "" {
		q.Set("linkdata", linkdata)
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("action", "read")
	req.Header.Set("authorization", token)

	env, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if env.Result != 0 {
		return nil, fmt.Errorf("%w: %s", ErrRejected, env.Message)
	}
	return env, nil
}

// Push writes one allocation row. A non-zero result code is a rejection of
// that row only; callers decide whether to continue with the rest.
func (c *Client) Push(ctx context.Context, token string, payload PushPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("action", "write")
	req.Header.Set("authorization", token)
	req.Header.Set("Content-Type", "application/json")

	env, err := c.do(req)
	if err != nil {
		return err
	}
	if env.Result != 0 {
		return fmt.Errorf("%w: %s", ErrRejected, env.Message)
	}
	return nil
}

func (c *Client) do(req *http.Request) (*envelope, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Msg("dataserver request failed")
		return nil, ErrUnavailable
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, ErrUnavailable
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn().Int("status", resp.StatusCode).Msg("dataserver returned non-2xx")
		return nil, fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode)
	}

	env := &envelope{}
	if err := json.Unmarshal(raw, env); err != nil {
		return nil, fmt.Errorf("decode dataserver response: %w", err)
	}
	return env, nil
}
