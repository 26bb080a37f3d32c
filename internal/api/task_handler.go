package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	mw "taskboard/internal/middleware"
	"taskboard/internal/repository"
	"taskboard/internal/service"
)

type TaskHandler struct {
	tasks *service.TaskService
	log   zerolog.Logger
}

func NewTaskHandler(tasks *service.TaskService, log zerolog.Logger) *TaskHandler {
	return &TaskHandler{tasks: tasks, log: log}
}

type createTaskRequest struct {
	Content     string `json:"content"`
	ColumnID    string `json:"column_id"`
	ColumnOrder int    `json:"column_order"`
	BoardID     int64  `json:"board_id"`
}

// Pointer fields distinguish "omitted" from "zero": omitted fields keep
// their stored values.
type updateTaskRequest struct {
	Content     *string `json:"content"`
	ColumnID    *string `json:"column_id"`
	ColumnOrder *int    `json:"column_order"`
}

type moveTaskRequest struct {
	ColumnID    string `json:"column_id"`
	ColumnOrder int    `json:"column_order"`
}

// List returns every task across all boards (legacy) --> GET /api/tasks
func (h *TaskHandler) List(c echo.Context) error {
	tasks, err := h.tasks.List(c.Request().Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, tasks)
}

// Create inserts a task --> POST /api/tasks
func (h *TaskHandler) Create(c echo.Context) error {
	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("Invalid request payload"))
	}

	task, err := h.tasks.Create(c.Request().Context(), req.Content, req.BoardID, req.ColumnID, req.ColumnOrder)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(http.StatusCreated, task)
}

// Update applies a partial update --> PUT /api/tasks/:id
func (h *TaskHandler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("Invalid task ID"))
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("Invalid request payload"))
	}

	task, err := h.tasks.Update(c.Request().Context(), id, repository.TaskUpdate{
		Content:     req.Content,
		ColumnID:    req.ColumnID,
		ColumnOrder: req.ColumnOrder,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(http.StatusOK, task)
}

// Move relocates a task and re-sequences both columns --> POST /api/tasks/:id/move
func (h *TaskHandler) Move(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("Invalid task ID"))
	}

	var req moveTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("Invalid request payload"))
	}

	task, err := h.tasks.Move(c.Request().Context(), id, req.ColumnID, req.ColumnOrder)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(http.StatusOK, task)
}

// Delete removes a task --> DELETE /api/tasks/:id
func (h *TaskHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("Invalid task ID"))
	}

	if err := h.tasks.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, h.log, err)
	}

	h.log.Info().Int64("task_id", id).Int64("user_id", mw.UserID(c)).Msg("task deleted")
	return c.JSON(http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}
