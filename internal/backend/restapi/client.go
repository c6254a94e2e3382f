// Package restapi implements service.Service against a JSON REST todo
// service exposing /todos with {"id", "todo", "completed"} records.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"gtodo/internal/service"
)

// APITimeout is the timeout for a single request.
const APITimeout = 5 * time.Second

// maxBody caps how much of a response body is read.
const maxBody = 4 << 20

// Client implements service.Service over HTTP.
type Client struct {
	base *url.URL
	http *http.Client

	mu      sync.Mutex
	numeric map[string]struct{}
}

// New creates a client for the service rooted at baseURL.
// httpClient may be nil.
func New(baseURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid rest base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid rest base url: %s", baseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{base: u, http: httpClient, numeric: make(map[string]struct{})}, nil
}

// todoRecord is the wire shape of a task.
type todoRecord struct {
	ID        recordID `json:"id,omitzero"`
	Todo      string   `json:"todo"`
	Completed bool     `json:"completed"`
}

// recordID accepts both numeric and string identifiers and remembers which
// one it was, so it is written back in the same JSON type.
type recordID struct {
	value   string
	numeric bool
}

func (id *recordID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = recordID{value: s}
		return nil
	}
	*id = recordID{value: string(data), numeric: true}
	return nil
}

func (id recordID) MarshalJSON() ([]byte, error) {
	if id.numeric && json.Valid([]byte(id.value)) {
		return []byte(id.value), nil
	}
	return json.Marshal(id.value)
}

func (r todoRecord) task() service.Task {
	return service.Task{ID: r.ID.value, Text: r.Todo, Completed: r.Completed}
}

// remember records the JSON type of every id the server has sent.
func (c *Client) remember(records ...todoRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range records {
		if r.ID.numeric {
			c.numeric[r.ID.value] = struct{}{}
		} else {
			delete(c.numeric, r.ID.value)
		}
	}
}

// idFor returns the wire id for a task id. Ids never seen as numbers are
// sent as strings.
func (c *Client) idFor(id string) recordID {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, numeric := c.numeric[id]
	return recordID{value: id, numeric: numeric}
}

// ListTasks implements service.Service.
// Both a bare array and a {"todos": [...]} envelope are accepted.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	body, err := c.do(ctx, http.MethodGet, "todos", nil)
	if err != nil {
		return nil, err
	}
	if err := validate(listSchema, body); err != nil {
		return nil, err
	}

	var records []todoRecord
	if bytes.HasPrefix(bytes.TrimSpace(body), []byte("[")) {
		err = json.Unmarshal(body, &records)
	} else {
		var envelope struct {
			Todos []todoRecord `json:"todos"`
		}
		err = json.Unmarshal(body, &envelope)
		records = envelope.Todos
	}
	if err != nil {
		return nil, fmt.Errorf("decode todos: %w", err)
	}

	c.remember(records...)
	result := make([]service.Task, 0, len(records))
	for _, r := range records {
		result = append(result, r.task())
	}
	return result, nil
}

// CreateTask implements service.Service.
func (c *Client) CreateTask(ctx context.Context, text string) (service.Task, error) {
	body, err := c.do(ctx, http.MethodPost, "todos", todoRecord{Todo: text})
	if err != nil {
		return service.Task{}, err
	}
	return c.decodeRecord(body)
}

// UpdateTask implements service.Service.
func (c *Client) UpdateTask(ctx context.Context, task service.Task) (service.Task, error) {
	rec := todoRecord{ID: c.idFor(task.ID), Todo: task.Text, Completed: task.Completed}
	body, err := c.do(ctx, http.MethodPut, "todos/"+url.PathEscape(task.ID), rec)
	if err != nil {
		return service.Task{}, err
	}
	return c.decodeRecord(body)
}

// DeleteTask implements service.Service.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "todos/"+url.PathEscape(id), nil)
	return err
}

func (c *Client) decodeRecord(body []byte) (service.Task, error) {
	if err := validate(todoSchema, body); err != nil {
		return service.Task{}, err
	}
	var rec todoRecord
	if err := json.Unmarshal(body, &rec); err != nil {
		return service.Task{}, fmt.Errorf("decode todo: %w", err)
	}
	c.remember(rec)
	return rec.task(), nil
}

func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+"/"+path, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, wrapError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, wrapError(err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, service.ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: %s", service.ErrUnauthorized, resp.Status)
	case resp.StatusCode >= 300:
		return nil, fmt.Errorf("%s %s: %s", method, path, resp.Status)
	}
	return body, nil
}

func wrapError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out")
	}
	return err
}
