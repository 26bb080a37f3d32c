package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"taskboard/internal/models"
)

type BoardRepository struct {
	db *sqlx.DB
}

func NewBoardRepository(db *sqlx.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

func (r *BoardRepository) Create(ctx context.Context, name string) (*models.Board, error) {
	query := r.db.Rebind(`
		INSERT INTO boards (name)
		VALUES (?)
		RETURNING id, name, created_at`)

	var board models.Board
	if err := r.db.GetContext(ctx, &board, query, name); err != nil {
		return nil, fmt.Errorf("insert board: %w", err)
	}
	return &board, nil
}

// List returns boards newest first. The id tiebreak keeps the order stable
// when created_at timestamps collide.
func (r *BoardRepository) List(ctx context.Context) ([]models.Board, error) {
	query := `
		SELECT id, name, created_at
		FROM boards
		ORDER BY created_at DESC, id DESC`

	boards := []models.Board{}
	if err := r.db.SelectContext(ctx, &boards, query); err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	return boards, nil
}

// Exists reports whether a board with the given id exists.
func (r *BoardRepository) Exists(ctx context.Context, id int64) (bool, error) {
	query := r.db.Rebind(`SELECT EXISTS (SELECT 1 FROM boards WHERE id = ?)`)

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		return false, fmt.Errorf("check board: %w", err)
	}
	return exists, nil
}
