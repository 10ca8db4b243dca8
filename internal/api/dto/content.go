package dto

import "time"

// ParagraphResponse carries a generated practice paragraph
type ParagraphResponse struct {
	Paragraph string `json:"paragraph"`
}

// CreateScoreRequest records the result of a typing session
type CreateScoreRequest struct {
	Score *float64 `json:"score" binding:"required"`
}

// ScoreResponse represents a stored score
type ScoreResponse struct {
	ID        int64     `json:"id"`
	Score     float64   `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// RankedScoreResponse is a leaderboard entry
type RankedScoreResponse struct {
	Username string  `json:"username"`
	Score    float64 `json:"score"`
}

// ScoreListResponse represents the leaderboard
type ScoreListResponse struct {
	Scores []RankedScoreResponse `json:"scores"`
}
