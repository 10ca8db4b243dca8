package dto

// UpdateUserRequest represents a partial user update. Omitted fields are left unchanged.
type UpdateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// UserResponse represents a user
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserListResponse represents the list of users
type UserListResponse struct {
	Users []UserResponse `json:"users"`
}
