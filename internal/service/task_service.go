package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"taskboard/internal/models"
	"taskboard/internal/repository"
)

// DefaultBoardID is the board legacy task creation falls back to when no
// board_id is supplied. The migration seeds it.
const DefaultBoardID = 1

type TaskService struct {
	tasks  *repository.TaskRepository
	boards *repository.BoardRepository
	log    zerolog.Logger
}

func NewTaskService(tasks *repository.TaskRepository, boards *repository.BoardRepository, log zerolog.Logger) *TaskService {
	return &TaskService{tasks: tasks, boards: boards, log: log}
}

// List returns every task across all boards (legacy global listing).
func (s *TaskService) List(ctx context.Context) ([]models.Task, error) {
	return s.tasks.List(ctx)
}

// ListByBoard returns a board's tasks ordered by column and position. An
// unknown board id yields an empty list, matching the listing contract.
func (s *TaskService) ListByBoard(ctx context.Context, boardID int64) ([]models.Task, error) {
	return s.tasks.ListByBoard(ctx, boardID)
}

func (s *TaskService) Create(ctx context.Context, content string, boardID int64, columnID string, columnOrder int) (*models.Task, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content is required", ErrInvalidInput)
	}
	if !models.ValidColumn(columnID) {
		return nil, fmt.Errorf("%w: unknown column %q", ErrInvalidInput, columnID)
	}
	if columnOrder < 0 {
		return nil, fmt.Errorf("%w: column_order must not be negative", ErrInvalidInput)
	}
	if boardID == 0 {
		boardID = DefaultBoardID
	}

	exists, err := s.boards.Exists(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrBoardNotFound
	}

	task, err := s.tasks.Create(ctx, content, boardID, columnID, columnOrder)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("task_id", task.ID).Int64("board_id", boardID).Msg("task created")
	return task, nil
}

// Update applies a partial update; nil fields keep their stored values.
// Sibling tasks are never re-sequenced here; use Move for that.
func (s *TaskService) Update(ctx context.Context, id int64, upd repository.TaskUpdate) (*models.Task, error) {
	if upd.Content != nil && strings.TrimSpace(*upd.Content) == "" {
		return nil, fmt.Errorf("%w: content must not be empty", ErrInvalidInput)
	}
	if upd.ColumnID != nil && !models.ValidColumn(*upd.ColumnID) {
		return nil, fmt.Errorf("%w: unknown column %q", ErrInvalidInput, *upd.ColumnID)
	}
	if upd.ColumnOrder != nil && *upd.ColumnOrder < 0 {
		return nil, fmt.Errorf("%w: column_order must not be negative", ErrInvalidInput)
	}

	task, err := s.tasks.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

// Move relocates a task and re-sequences both affected columns atomically.
func (s *TaskService) Move(ctx context.Context, id int64, columnID string, columnOrder int) (*models.Task, error) {
	if !models.ValidColumn(columnID) {
		return nil, fmt.Errorf("%w: unknown column %q", ErrInvalidInput, columnID)
	}

	task, err := s.tasks.Move(ctx, id, columnID, columnOrder)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	s.log.Info().Int64("task_id", id).Str("column", columnID).Int("order", task.ColumnOrder).Msg("task moved")
	return task, nil
}

// Delete removes a task. Unknown ids succeed; delete is idempotent from the
// caller's perspective.
func (s *TaskService) Delete(ctx context.Context, id int64) error {
	return s.tasks.Delete(ctx, id)
}
