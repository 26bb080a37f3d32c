package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"taskboard/internal/models"
)

// TaskUpdate holds the optional fields of a partial task update. A nil field
// keeps the stored value (COALESCE semantics).
type TaskUpdate struct {
	Content     *string
	ColumnID    *string
	ColumnOrder *int
}

type TaskRepository struct {
	db *sqlx.DB
}

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `id, content, board_id, column_id, column_order`

// List returns every task across all boards, ordered by column and position.
func (r *TaskRepository) List(ctx context.Context) ([]models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY column_id, column_order`

	tasks := []models.Task{}
	if err := r.db.SelectContext(ctx, &tasks, query); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) ListByBoard(ctx context.Context, boardID int64) ([]models.Task, error) {
	query := r.db.Rebind(`
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE board_id = ?
		ORDER BY column_id, column_order`)

	tasks := []models.Task{}
	if err := r.db.SelectContext(ctx, &tasks, query, boardID); err != nil {
		return nil, fmt.Errorf("list board tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) Create(ctx context.Context, content string, boardID int64, columnID string, columnOrder int) (*models.Task, error) {
	query := r.db.Rebind(`
		INSERT INTO tasks (content, board_id, column_id, column_order)
		VALUES (?, ?, ?, ?)
		RETURNING ` + taskColumns)

	var task models.Task
	if err := r.db.GetContext(ctx, &task, query, content, boardID, columnID, columnOrder); err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return &task, nil
}

// GetByID returns sql.ErrNoRows when the task does not exist.
func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	query := r.db.Rebind(`SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`)

	var task models.Task
	if err := r.db.GetContext(ctx, &task, query, id); err != nil {
		return nil, err
	}
	return &task, nil
}

// Update applies a partial update. Omitted fields keep their stored values;
// sibling ordering is left untouched. Returns sql.ErrNoRows for unknown ids.
func (r *TaskRepository) Update(ctx context.Context, id int64, upd TaskUpdate) (*models.Task, error) {
	query := r.db.Rebind(`
		UPDATE tasks
		SET content = COALESCE(?, content),
		    column_id = COALESCE(?, column_id),
		    column_order = COALESCE(?, column_order)
		WHERE id = ?
		RETURNING ` + taskColumns)

	var task models.Task
	if err := r.db.GetContext(ctx, &task, query, upd.Content, upd.ColumnID, upd.ColumnOrder, id); err != nil {
		return nil, err
	}
	return &task, nil
}

// Delete removes a task by id. Deleting an id that does not exist is not an
// error; the caller sees the same success either way.
func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	query := r.db.Rebind(`DELETE FROM tasks WHERE id = ?`)

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// Move relocates a task to a column position and re-sequences both affected
// columns so column_order stays dense 0..n-1. The whole operation runs in a
// single transaction; a failed move leaves every row untouched.
func (r *TaskRepository) Move(ctx context.Context, id int64, toColumn string, toIndex int) (*models.Task, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin move: %w", err)
	}
	defer tx.Rollback()

	var task models.Task
	if err := tx.GetContext(ctx, &task, tx.Rebind(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`), id); err != nil {
		return nil, err
	}

	if toIndex < 0 {
		toIndex = 0
	}

	var count int
	countQuery := tx.Rebind(`SELECT COUNT(*) FROM tasks WHERE board_id = ? AND column_id = ?`)
	if err := tx.GetContext(ctx, &count, countQuery, task.BoardID, toColumn); err != nil {
		return nil, fmt.Errorf("count column tasks: %w", err)
	}

	// Clamp the destination so density survives out-of-range indices.
	maxIndex := count
	if toColumn == task.ColumnID {
		maxIndex = count - 1
	}
	if toIndex > maxIndex {
		toIndex = maxIndex
	}

	if toColumn == task.ColumnID {
		if toIndex == task.ColumnOrder {
			return &task, nil
		}
		var shift string
		var args []interface{}
		if toIndex > task.ColumnOrder {
			shift = `UPDATE tasks SET column_order = column_order - 1
				WHERE board_id = ? AND column_id = ? AND column_order > ? AND column_order <= ?`
			args = []interface{}{task.BoardID, task.ColumnID, task.ColumnOrder, toIndex}
		} else {
			shift = `UPDATE tasks SET column_order = column_order + 1
				WHERE board_id = ? AND column_id = ? AND column_order >= ? AND column_order < ?`
			args = []interface{}{task.BoardID, task.ColumnID, toIndex, task.ColumnOrder}
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(shift), args...); err != nil {
			return nil, fmt.Errorf("shift column %s: %w", task.ColumnID, err)
		}
	} else {
		closeGap := tx.Rebind(`UPDATE tasks SET column_order = column_order - 1
			WHERE board_id = ? AND column_id = ? AND column_order > ?`)
		if _, err := tx.ExecContext(ctx, closeGap, task.BoardID, task.ColumnID, task.ColumnOrder); err != nil {
			return nil, fmt.Errorf("shift column %s: %w", task.ColumnID, err)
		}

		openGap := tx.Rebind(`UPDATE tasks SET column_order = column_order + 1
			WHERE board_id = ? AND column_id = ? AND column_order >= ?`)
		if _, err := tx.ExecContext(ctx, openGap, task.BoardID, toColumn, toIndex); err != nil {
			return nil, fmt.Errorf("shift column %s: %w", toColumn, err)
		}
	}

	place := tx.Rebind(`
		UPDATE tasks
		SET column_id = ?, column_order = ?
		WHERE id = ?
		RETURNING ` + taskColumns)
	if err := tx.GetContext(ctx, &task, place, toColumn, toIndex, id); err != nil {
		return nil, fmt.Errorf("place task: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit move: %w", err)
	}
	return &task, nil
}
