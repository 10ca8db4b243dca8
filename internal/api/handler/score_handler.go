package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/martijn/typesprint/internal/api/dto"
	"github.com/martijn/typesprint/internal/core/service"
)

type ScoreHandler struct {
	scoreService *service.ScoreService
}

func NewScoreHandler(scoreService *service.ScoreService) *ScoreHandler {
	return &ScoreHandler{
		scoreService: scoreService,
	}
}

// ListScores handles GET /scores
func (h *ScoreHandler) ListScores(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(service.MaxTopScores)))
	if err != nil {
		limit = service.MaxTopScores
	}

	scores, err := h.scoreService.TopScores(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	response := dto.ScoreListResponse{
		Scores: make([]dto.RankedScoreResponse, len(scores)),
	}
	for i, score := range scores {
		response.Scores[i] = dto.RankedScoreResponse{
			Username: score.Username,
			Score:    score.Value,
		}
	}

	c.JSON(http.StatusOK, response)
}

// CreateScore handles POST /scores
func (h *ScoreHandler) CreateScore(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req dto.CreateScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Score is required")
		return
	}

	score, err := h.scoreService.RecordScore(c.Request.Context(), userID, *req.Score)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ScoreResponse{
		ID:        score.ID,
		Score:     score.Value,
		CreatedAt: score.CreatedAt,
	})
}
