package client

import "context"

// The card commands pair an optimistic BoardState mutation with the request
// that persists it. On server failure the mutation is rolled back, so the
// projection never drifts silently from the stored board.

// MoveCard performs a drag: the state changes immediately, then the server
// is asked to persist the move (which re-sequences both columns). The
// server's row is reconciled back into the state.
func (c *Client) MoveCard(ctx context.Context, state *BoardState, from, to Position) (*Task, error) {
	snap := state.Snapshot()

	moved, err := state.Move(from, to)
	if err != nil {
		return nil, err
	}

	updated, err := c.MoveTask(ctx, moved.ID, moved.ColumnID, moved.ColumnOrder)
	if err != nil {
		state.Restore(snap)
		return nil, err
	}

	state.Reconcile(*updated)
	return updated, nil
}

// AddCard creates a task at the end of the todo column and applies the
// created row (with its generated id) to the state.
func (c *Client) AddCard(ctx context.Context, state *BoardState, content string) (*Task, error) {
	order := len(state.Column(ColumnTodo))

	created, err := c.CreateTask(ctx, state.BoardID, content, ColumnTodo, order)
	if err != nil {
		return nil, err
	}

	state.Add(*created)
	return created, nil
}

// EditCard changes a card's content optimistically and reconciles with the
// server's partial-update response.
func (c *Client) EditCard(ctx context.Context, state *BoardState, taskID int64, content string) (*Task, error) {
	snap := state.Snapshot()

	pos, ok := state.Find(taskID)
	if !ok {
		return nil, &APIError{StatusCode: 404, Message: "Task not found"}
	}
	col := state.columns[pos.Column]
	col[pos.Index].Content = content

	updated, err := c.UpdateTask(ctx, taskID, TaskUpdate{Content: &content})
	if err != nil {
		state.Restore(snap)
		return nil, err
	}

	state.Reconcile(*updated)
	return updated, nil
}

// RemoveCard deletes a card optimistically, restoring it if the server
// refuses the delete.
func (c *Client) RemoveCard(ctx context.Context, state *BoardState, taskID int64) error {
	snap := state.Snapshot()

	if _, ok := state.Remove(taskID); !ok {
		return &APIError{StatusCode: 404, Message: "Task not found"}
	}

	if err := c.DeleteTask(ctx, taskID); err != nil {
		state.Restore(snap)
		return err
	}
	return nil
}
