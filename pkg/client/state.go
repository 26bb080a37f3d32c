package client

import "fmt"

// Position addresses a card slot on the board.
type Position struct {
	Column string
	Index  int
}

// BoardState is the in-memory projection of one board's tasks, keyed by
// column and ordered by position. It is derived state: the server owns the
// truth, and the projection is reset whenever a board is loaded.
type BoardState struct {
	BoardID int64
	columns map[string][]Task
}

// Snapshot is an opaque copy of a BoardState used to roll back a failed
// optimistic mutation.
type Snapshot struct {
	columns map[string][]Task
}

// NewBoardState buckets a server task listing by column. The listing is
// already ordered by (column_id, column_order), so slice order is position.
func NewBoardState(boardID int64, tasks []Task) *BoardState {
	columns := map[string][]Task{
		ColumnTodo:       {},
		ColumnInProgress: {},
		ColumnDone:       {},
	}
	for _, t := range tasks {
		columns[t.ColumnID] = append(columns[t.ColumnID], t)
	}
	return &BoardState{BoardID: boardID, columns: columns}
}

// Column returns a copy of the tasks in the given column, in display order.
func (s *BoardState) Column(id string) []Task {
	col := s.columns[id]
	out := make([]Task, len(col))
	copy(out, col)
	return out
}

// Find locates a task on the board.
func (s *BoardState) Find(taskID int64) (Position, bool) {
	for col, tasks := range s.columns {
		for i, t := range tasks {
			if t.ID == taskID {
				return Position{Column: col, Index: i}, true
			}
		}
	}
	return Position{}, false
}

// Move applies the drag transform: the card at from is spliced out of its
// column and inserted at to, and both columns are re-numbered densely. An
// invalid source leaves the state untouched. The destination index is
// clamped into range, mirroring how a drop past the end of a column lands on
// its last slot.
func (s *BoardState) Move(from, to Position) (Task, error) {
	src, ok := s.columns[from.Column]
	if !ok {
		return Task{}, fmt.Errorf("unknown column %q", from.Column)
	}
	if _, ok := s.columns[to.Column]; !ok {
		return Task{}, fmt.Errorf("unknown column %q", to.Column)
	}
	if from.Index < 0 || from.Index >= len(src) {
		return Task{}, fmt.Errorf("no task at %s[%d]", from.Column, from.Index)
	}

	moved := src[from.Index]
	src = append(src[:from.Index], src[from.Index+1:]...)
	s.columns[from.Column] = src

	dst := s.columns[to.Column]
	idx := to.Index
	if idx < 0 {
		idx = 0
	}
	if idx > len(dst) {
		idx = len(dst)
	}
	dst = append(dst, Task{})
	copy(dst[idx+1:], dst[idx:])
	moved.ColumnID = to.Column
	dst[idx] = moved
	s.columns[to.Column] = dst

	s.resequence(from.Column)
	s.resequence(to.Column)
	return s.columns[to.Column][idx], nil
}

// Add appends a task to the end of its column.
func (s *BoardState) Add(t Task) {
	s.columns[t.ColumnID] = append(s.columns[t.ColumnID], t)
	s.resequence(t.ColumnID)
}

// Remove deletes a task from the board and closes the gap it leaves.
func (s *BoardState) Remove(taskID int64) (Task, bool) {
	pos, ok := s.Find(taskID)
	if !ok {
		return Task{}, false
	}
	col := s.columns[pos.Column]
	removed := col[pos.Index]
	s.columns[pos.Column] = append(col[:pos.Index], col[pos.Index+1:]...)
	s.resequence(pos.Column)
	return removed, true
}

// Reconcile applies a server task row back into the projection, replacing
// the optimistic copy's fields with whatever the server persisted.
func (s *BoardState) Reconcile(t Task) {
	for col, tasks := range s.columns {
		for i := range tasks {
			if tasks[i].ID == t.ID {
				if col == t.ColumnID {
					tasks[i] = t
					return
				}
				// Server placed it in a different column than the
				// projection; trust the server.
				s.columns[col] = append(tasks[:i], tasks[i+1:]...)
				s.resequence(col)
				s.insertAt(t)
				return
			}
		}
	}
	s.insertAt(t)
}

// Snapshot deep-copies the projection.
func (s *BoardState) Snapshot() Snapshot {
	columns := make(map[string][]Task, len(s.columns))
	for col, tasks := range s.columns {
		cp := make([]Task, len(tasks))
		copy(cp, tasks)
		columns[col] = cp
	}
	return Snapshot{columns: columns}
}

// Restore rolls the projection back to a snapshot.
func (s *BoardState) Restore(snap Snapshot) {
	s.columns = snap.columns
}

func (s *BoardState) insertAt(t Task) {
	col := s.columns[t.ColumnID]
	idx := t.ColumnOrder
	if idx < 0 {
		idx = 0
	}
	if idx > len(col) {
		idx = len(col)
	}
	col = append(col, Task{})
	copy(col[idx+1:], col[idx:])
	col[idx] = t
	s.columns[t.ColumnID] = col
	s.resequence(t.ColumnID)
}

func (s *BoardState) resequence(column string) {
	for i := range s.columns[column] {
		s.columns[column][i].ColumnOrder = i
	}
}
