package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"taskboard/internal/models"
	"taskboard/internal/repository"
)

type BoardService struct {
	boards *repository.BoardRepository
	log    zerolog.Logger
}

func NewBoardService(boards *repository.BoardRepository, log zerolog.Logger) *BoardService {
	return &BoardService{boards: boards, log: log}
}

// Create makes a new board. Names are not unique; two boards may share one.
func (s *BoardService) Create(ctx context.Context, name string) (*models.Board, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: board name is required", ErrInvalidInput)
	}

	board, err := s.boards.Create(ctx, name)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("board_id", board.ID).Msg("board created")
	return board, nil
}

// List returns all boards, newest first.
func (s *BoardService) List(ctx context.Context) ([]models.Board, error) {
	return s.boards.List(ctx)
}
