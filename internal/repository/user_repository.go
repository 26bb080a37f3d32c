package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"taskboard/internal/models"
)

// Queries are written with ? placeholders and rebound for the active driver,
// so the same statements run against postgres and the sqlite test database.

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, name, email, passwordHash string) (*models.User, error) {
	query := r.db.Rebind(`
		INSERT INTO users (name, email, password_hash)
		VALUES (?, ?, ?)
		RETURNING id, name, email, password_hash`)

	var user models.User
	if err := r.db.GetContext(ctx, &user, query, name, email, passwordHash); err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &user, nil
}

// GetByEmail returns sql.ErrNoRows when no user has the given email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := r.db.Rebind(`
		SELECT id, name, email, password_hash
		FROM users
		WHERE email = ?`)

	var user models.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	query := r.db.Rebind(`SELECT EXISTS (SELECT 1 FROM users WHERE email = ?)`)

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return exists, nil
}
