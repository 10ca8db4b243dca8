package sqlite

import (
	"context"
	"fmt"

	"github.com/martijn/typesprint/internal/core/domain"
	"github.com/martijn/typesprint/internal/core/repository"
)

type scoreRepository struct {
	db *DB
}

func NewScoreRepository(db *DB) repository.ScoreRepository {
	return &scoreRepository{db: db}
}

func (r *scoreRepository) Create(ctx context.Context, score *domain.Score) error {
	query := `
		INSERT INTO score (user_id, score, created_at)
		VALUES (?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		score.UserID,
		score.Value,
		score.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("user %d: %w", score.UserID, repository.ErrNotFound)
		}
		return fmt.Errorf("failed to create score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get score id: %w", err)
	}
	score.ID = id
	return nil
}

func (r *scoreRepository) Top(ctx context.Context, limit int) ([]*domain.RankedScore, error) {
	query := `
		SELECT s.id, u.username, s.score
		FROM score s
		JOIN user u ON u.id = s.user_id
		ORDER BY s.score DESC, s.id ASC
		LIMIT ?
	`
	scores := []*domain.RankedScore{}
	if err := r.db.SelectContext(ctx, &scores, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list top scores: %w", err)
	}
	return scores, nil
}

func (r *scoreRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM score WHERE user_id = ?`, userID); err != nil {
		return 0, fmt.Errorf("failed to count scores: %w", err)
	}
	return count, nil
}
