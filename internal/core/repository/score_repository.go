package repository

import (
	"context"

	"github.com/martijn/typesprint/internal/core/domain"
)

type ScoreRepository interface {
	Create(ctx context.Context, score *domain.Score) error
	// Top returns at most limit scores ordered by value descending, ties by id.
	Top(ctx context.Context, limit int) ([]*domain.RankedScore, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
}
