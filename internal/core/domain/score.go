package domain

import "time"

// Score is the words-per-minute result of one completed typing session.
type Score struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Value     float64   `db:"score"`
	CreatedAt time.Time `db:"created_at"`
}

func NewScore(userID int64, value float64) *Score {
	return &Score{
		UserID:    userID,
		Value:     value,
		CreatedAt: time.Now().UTC(),
	}
}

// RankedScore is a leaderboard entry joined to the owning username.
type RankedScore struct {
	ScoreID  int64   `db:"id"`
	Username string  `db:"username"`
	Value    float64 `db:"score"`
}
