// Package client is a Go client for the task board API. It mirrors what the
// browser client does: it holds a column-keyed projection of one board's
// tasks (BoardState), applies drag/add/edit/delete mutations optimistically,
// and reconciles with the server's response, rolling back on failure.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Column identifiers, matching the server's fixed board columns.
const (
	ColumnTodo       = "todo"
	ColumnInProgress = "inProgress"
	ColumnDone       = "done"
)

type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Board struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Task struct {
	ID          int64  `json:"id"`
	Content     string `json:"content"`
	BoardID     int64  `json:"board_id"`
	ColumnID    string `json:"column_id"`
	ColumnOrder int    `json:"column_order"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// TaskUpdate holds the optional fields of a partial update. Nil fields are
// omitted from the request and keep their stored values.
type TaskUpdate struct {
	Content     *string `json:"content,omitempty"`
	ColumnID    *string `json:"column_id,omitempty"`
	ColumnOrder *int    `json:"column_order,omitempty"`
}

// APIError is a non-2xx response decoded from the server's error body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// SetToken sets the bearer token attached to subsequent requests. Signup and
// Login call it automatically.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Token() string {
	return c.token
}

func (c *Client) Signup(ctx context.Context, name, email, password string) (*AuthResponse, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", body, &resp); err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp, nil
}

func (c *Client) Boards(ctx context.Context) ([]Board, error) {
	var boards []Board
	if err := c.do(ctx, http.MethodGet, "/api/boards", nil, &boards); err != nil {
		return nil, err
	}
	return boards, nil
}

func (c *Client) CreateBoard(ctx context.Context, name string) (*Board, error) {
	var board Board
	if err := c.do(ctx, http.MethodPost, "/api/boards", map[string]string{"name": name}, &board); err != nil {
		return nil, err
	}
	return &board, nil
}

func (c *Client) BoardTasks(ctx context.Context, boardID int64) ([]Task, error) {
	var tasks []Task
	path := fmt.Sprintf("/api/boards/%d/tasks", boardID)
	if err := c.do(ctx, http.MethodGet, path, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) Tasks(ctx context.Context) ([]Task, error) {
	var tasks []Task
	if err := c.do(ctx, http.MethodGet, "/api/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) CreateTask(ctx context.Context, boardID int64, content, columnID string, columnOrder int) (*Task, error) {
	body := map[string]interface{}{
		"content":      content,
		"column_id":    columnID,
		"column_order": columnOrder,
		"board_id":     boardID,
	}
	var task Task
	if err := c.do(ctx, http.MethodPost, "/api/tasks", body, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) UpdateTask(ctx context.Context, id int64, upd TaskUpdate) (*Task, error) {
	var task Task
	path := fmt.Sprintf("/api/tasks/%d", id)
	if err := c.do(ctx, http.MethodPut, path, upd, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) MoveTask(ctx context.Context, id int64, columnID string, columnOrder int) (*Task, error) {
	body := map[string]interface{}{"column_id": columnID, "column_order": columnOrder}
	var task Task
	path := fmt.Sprintf("/api/tasks/%d/move", id)
	if err := c.do(ctx, http.MethodPost, path, body, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/tasks/%d", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
		var errBody struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil && errBody.Error != "" {
			apiErr.Message = errBody.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
