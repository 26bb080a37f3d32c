package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/config"
	"taskboard/internal/models"
	"taskboard/internal/repository"
	"taskboard/internal/service"
	"taskboard/internal/testutil"
	"taskboard/pkg/auth"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db := testutil.NewDB(t)
	log := zerolog.Nop()
	cfg := &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", TokenDuration: time.Hour},
	}

	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TokenDuration)
	userRepo := repository.NewUserRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	srv := NewServer(cfg, log,
		service.NewAuthService(userRepo, tokens, log),
		service.NewBoardService(boardRepo, log),
		service.NewTaskService(taskRepo, boardRepo, log),
	)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

// doJSON sends a request and decodes the response body into a generic map.
func doJSON(t *testing.T, method, url, token string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	// Listing endpoints return arrays; callers that need them decode
	// themselves, so a failed decode into a map is fine here.
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp.StatusCode, decoded
}

func doJSONList(t *testing.T, url, token string) (int, []map[string]interface{}) {
	t.Helper()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func signup(t *testing.T, ts *httptest.Server, email string) string {
	t.Helper()
	status, body := doJSON(t, http.MethodPost, ts.URL+"/api/auth/signup", "", map[string]string{
		"name":     "Ada",
		"email":    email,
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusCreated, status)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func createTask(t *testing.T, ts *httptest.Server, token, content, column string, order int) int64 {
	t.Helper()
	status, body := doJSON(t, http.MethodPost, ts.URL+"/api/tasks", token, map[string]interface{}{
		"content":      content,
		"column_id":    column,
		"column_order": order,
		"board_id":     1,
	})
	require.Equal(t, http.StatusCreated, status)
	return int64(body["id"].(float64))
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	status, body := doJSON(t, http.MethodGet, ts.URL+"/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestSignup(t *testing.T) {
	ts := newTestServer(t)

	status, body := doJSON(t, http.MethodPost, ts.URL+"/api/auth/signup", "", map[string]string{
		"name":     "Ada",
		"email":    "ada@example.com",
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.NotEmpty(t, body["token"])

	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "ada@example.com", user["email"])
	assert.Equal(t, "Ada", user["name"])
	assert.NotContains(t, user, "password_hash")
}

func TestSignupDuplicateEmail(t *testing.T) {
	ts := newTestServer(t)
	signup(t, ts, "ada@example.com")

	status, body := doJSON(t, http.MethodPost, ts.URL+"/api/auth/signup", "", map[string]string{
		"name":     "Imposter",
		"email":    "ada@example.com",
		"password": "battery-staple",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Email already registered", body["error"])
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t)
	signup(t, ts, "ada@example.com")

	t.Run("correct credentials", func(t *testing.T) {
		status, body := doJSON(t, http.MethodPost, ts.URL+"/api/auth/login", "", map[string]string{
			"email":    "ada@example.com",
			"password": "correct-horse",
		})
		assert.Equal(t, http.StatusOK, status)
		assert.NotEmpty(t, body["token"])
	})

	t.Run("wrong password and unknown email are identical", func(t *testing.T) {
		statusA, bodyA := doJSON(t, http.MethodPost, ts.URL+"/api/auth/login", "", map[string]string{
			"email":    "ada@example.com",
			"password": "wrong",
		})
		statusB, bodyB := doJSON(t, http.MethodPost, ts.URL+"/api/auth/login", "", map[string]string{
			"email":    "nobody@example.com",
			"password": "correct-horse",
		})
		assert.Equal(t, http.StatusUnauthorized, statusA)
		assert.Equal(t, statusA, statusB)
		assert.Equal(t, bodyA, bodyB)
		assert.Equal(t, "Invalid credentials", bodyA["error"])
	})
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	ts := newTestServer(t)

	for _, route := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/boards"},
		{http.MethodPost, "/api/boards"},
		{http.MethodGet, "/api/boards/1/tasks"},
		{http.MethodGet, "/api/tasks"},
		{http.MethodPost, "/api/tasks"},
		{http.MethodPut, "/api/tasks/1"},
		{http.MethodDelete, "/api/tasks/1"},
	} {
		status, body := doJSON(t, route.method, ts.URL+route.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, status, "%s %s", route.method, route.path)
		assert.Equal(t, "Unauthorized", body["error"])
	}
}

func TestBoards(t *testing.T) {
	ts := newTestServer(t)
	token := signup(t, ts, "ada@example.com")

	status, created := doJSON(t, http.MethodPost, ts.URL+"/api/boards", token, map[string]string{
		"name": "Sprint 12",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Sprint 12", created["name"])
	assert.NotEmpty(t, created["created_at"])

	status, boards := doJSONList(t, ts.URL+"/api/boards", token)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, boards, 2) // seeded Main Board + Sprint 12
	assert.Equal(t, "Sprint 12", boards[0]["name"])
}

func TestTaskRoundTrip(t *testing.T) {
	ts := newTestServer(t)
	token := signup(t, ts, "ada@example.com")

	createTask(t, ts, token, "x", models.ColumnTodo, 0)

	status, tasks := doJSONList(t, ts.URL+"/api/boards/1/tasks", token)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, tasks, 1)
	assert.Equal(t, "x", tasks[0]["content"])
	assert.Equal(t, models.ColumnTodo, tasks[0]["column_id"])
	assert.Equal(t, float64(0), tasks[0]["column_order"])
}

func TestCreateTaskValidation(t *testing.T) {
	ts := newTestServer(t)
	token := signup(t, ts, "ada@example.com")

	status, _ := doJSON(t, http.MethodPost, ts.URL+"/api/tasks", token, map[string]interface{}{
		"content":   "",
		"column_id": models.ColumnTodo,
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doJSON(t, http.MethodPost, ts.URL+"/api/tasks", token, map[string]interface{}{
		"content":   "task",
		"column_id": "backlog",
	})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestUpdateTask(t *testing.T) {
	ts := newTestServer(t)
	token := signup(t, ts, "ada@example.com")
	id := createTask(t, ts, token, "original", models.ColumnTodo, 0)

	t.Run("partial update keeps omitted fields", func(t *testing.T) {
		status, body := doJSON(t, http.MethodPut, fmt.Sprintf("%s/api/tasks/%d", ts.URL, id), token, map[string]string{
			"content": "edited",
		})
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "edited", body["content"])
		assert.Equal(t, models.ColumnTodo, body["column_id"])
		assert.Equal(t, float64(0), body["column_order"])
	})

	t.Run("unknown id", func(t *testing.T) {
		status, body := doJSON(t, http.MethodPut, ts.URL+"/api/tasks/999", token, map[string]string{
			"content": "edited",
		})
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "Task not found", body["error"])
	})

	t.Run("invalid id", func(t *testing.T) {
		status, _ := doJSON(t, http.MethodPut, ts.URL+"/api/tasks/abc", token, map[string]string{
			"content": "edited",
		})
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

// The legacy drag contract: a plain PUT moves only the targeted row and
// leaves sibling ordering stale.
func TestUpdateDoesNotResequenceSiblings(t *testing.T) {
	ts := newTestServer(t)
	token := signup(t, ts, "ada@example.com")

	aID := createTask(t, ts, token, "A", models.ColumnTodo, 0)
	bID := createTask(t, ts, token, "B", models.ColumnTodo, 1)

	status, body := doJSON(t, http.MethodPut, fmt.Sprintf("%s/api/tasks/%d", ts.URL, aID), token, map[string]interface{}{
		"column_id":    models.ColumnInProgress,
		"column_order": 0,
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, models.ColumnInProgress, body["column_id"])
	assert.Equal(t, float64(0), body["column_order"])

	_, tasks := doJSONList(t, ts.URL+"/api/boards/1/tasks", token)
	for _, task := range tasks {
		if int64(task["id"].(float64)) == bID {
			assert.Equal(t, models.ColumnTodo, task["column_id"])
			// B keeps its stale order: no re-sequencing on PUT.
			assert.Equal(t, float64(1), task["column_order"])
		}
	}
}

// The move endpoint, by contrast, re-sequences both columns atomically.
func TestMoveResequencesSiblings(t *testing.T) {
	ts := newTestServer(t)
	token := signup(t, ts, "ada@example.com")

	aID := createTask(t, ts, token, "A", models.ColumnTodo, 0)
	bID := createTask(t, ts, token, "B", models.ColumnTodo, 1)

	status, body := doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/tasks/%d/move", ts.URL, aID), token, map[string]interface{}{
		"column_id":    models.ColumnInProgress,
		"column_order": 0,
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, models.ColumnInProgress, body["column_id"])

	_, tasks := doJSONList(t, ts.URL+"/api/boards/1/tasks", token)
	for _, task := range tasks {
		if int64(task["id"].(float64)) == bID {
			assert.Equal(t, float64(0), task["column_order"])
		}
	}
}

func TestDeleteTaskIsIdempotent(t *testing.T) {
	ts := newTestServer(t)
	token := signup(t, ts, "ada@example.com")
	id := createTask(t, ts, token, "doomed", models.ColumnTodo, 0)

	status, body := doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/tasks/%d", ts.URL, id), token, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Task deleted successfully", body["message"])

	// Unknown ids get the same success.
	status, body = doJSON(t, http.MethodDelete, ts.URL+"/api/tasks/999", token, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Task deleted successfully", body["message"])
}

func TestGlobalTaskListing(t *testing.T) {
	ts := newTestServer(t)
	token := signup(t, ts, "ada@example.com")

	createTask(t, ts, token, "only", models.ColumnTodo, 0)

	status, tasks := doJSONList(t, ts.URL+"/api/tasks", token)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, tasks, 1)
	assert.Equal(t, "only", tasks[0]["content"])
}
