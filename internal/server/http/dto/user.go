package dto

// CreateUserRequest describes POST /user payload.
type CreateUserRequest struct {
	UserName *string `json:"user_name"`
	IsAdmin  bool    `json:"is_admin"`
}

// UserResponse echoes the created user.
type UserResponse struct {
	UserName string `json:"user_name"`
}
