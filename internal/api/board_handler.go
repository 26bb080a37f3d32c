package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	mw "taskboard/internal/middleware"
	"taskboard/internal/service"
)

type BoardHandler struct {
	boards *service.BoardService
	tasks  *service.TaskService
	log    zerolog.Logger
}

func NewBoardHandler(boards *service.BoardService, tasks *service.TaskService, log zerolog.Logger) *BoardHandler {
	return &BoardHandler{boards: boards, tasks: tasks, log: log}
}

type createBoardRequest struct {
	Name string `json:"name"`
}

// List returns all boards, newest first --> GET /api/boards
func (h *BoardHandler) List(c echo.Context) error {
	boards, err := h.boards.List(c.Request().Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, boards)
}

// Create makes a new board --> POST /api/boards
func (h *BoardHandler) Create(c echo.Context) error {
	var req createBoardRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("Invalid request payload"))
	}

	board, err := h.boards.Create(c.Request().Context(), req.Name)
	if err != nil {
		return respondError(c, h.log, err)
	}

	h.log.Info().Int64("board_id", board.ID).Int64("user_id", mw.UserID(c)).Msg("board created")
	return c.JSON(http.StatusCreated, board)
}

// ListTasks returns a board's tasks --> GET /api/boards/:id/tasks
func (h *BoardHandler) ListTasks(c echo.Context) error {
	boardID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("Invalid board ID"))
	}

	tasks, err := h.tasks.ListByBoard(c.Request().Context(), boardID)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(http.StatusOK, tasks)
}
