package service

import (
	"context"
	"errors"
	"math"

	"github.com/martijn/typesprint/internal/core/domain"
	"github.com/martijn/typesprint/internal/core/repository"
)

const MaxTopScores = 10

type ScoreService struct {
	scoreRepo repository.ScoreRepository
}

func NewScoreService(scoreRepo repository.ScoreRepository) *ScoreService {
	return &ScoreService{
		scoreRepo: scoreRepo,
	}
}

// RecordScore stores the result of a completed typing session for userID.
func (s *ScoreService) RecordScore(ctx context.Context, userID int64, value float64) (*domain.Score, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return nil, NewValidationError("Score must be a non-negative number")
	}

	score := domain.NewScore(userID, value)
	if err := s.scoreRepo.Create(ctx, score); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFoundError("User not found")
		}
		return nil, NewInternalError(err)
	}
	return score, nil
}

// TopScores returns the best scores, highest first. Limits outside
// 1..MaxTopScores fall back to MaxTopScores.
func (s *ScoreService) TopScores(ctx context.Context, limit int) ([]*domain.RankedScore, error) {
	if limit <= 0 || limit > MaxTopScores {
		limit = MaxTopScores
	}

	scores, err := s.scoreRepo.Top(ctx, limit)
	if err != nil {
		return nil, NewInternalError(err)
	}
	return scores, nil
}
