package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/typesprint/internal/api/dto"
	"github.com/martijn/typesprint/internal/core/domain"
	"github.com/martijn/typesprint/internal/core/service"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := dto.UserListResponse{
		Users: make([]dto.UserResponse, len(users)),
	}
	for i, user := range users {
		response.Users[i] = toUserResponse(user)
	}

	c.JSON(http.StatusOK, response)
}

// UpdateUser handles PUT /update_user
func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	update := domain.UserUpdate{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}
	if _, err := h.userService.UpdateUser(c.Request.Context(), userID, update); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{
		Message: "User updated successfully",
	})
}

// DeleteUser handles DELETE /delete_user
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{
		Message: "User deleted successfully",
	})
}

func toUserResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}
