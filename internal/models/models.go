package models

import "time"

// Column identifiers. The board has exactly three fixed columns.
const (
	ColumnTodo       = "todo"
	ColumnInProgress = "inProgress"
	ColumnDone       = "done"
)

// Columns lists the valid column identifiers in display order.
var Columns = []string{ColumnTodo, ColumnInProgress, ColumnDone}

// ValidColumn reports whether id names one of the fixed board columns.
func ValidColumn(id string) bool {
	for _, c := range Columns {
		if c == id {
			return true
		}
	}
	return false
}

type User struct {
	ID           int64  `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	Email        string `db:"email" json:"email"`
	PasswordHash string `db:"password_hash" json:"-"`
}

type Board struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Task struct {
	ID          int64  `db:"id" json:"id"`
	Content     string `db:"content" json:"content"`
	BoardID     int64  `db:"board_id" json:"board_id"`
	ColumnID    string `db:"column_id" json:"column_id"`
	ColumnOrder int    `db:"column_order" json:"column_order"`
}
