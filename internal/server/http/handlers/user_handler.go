package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/loanledger/internal/server/http/dto"
)

// UserHandler processes user registration.
type UserHandler struct {
	facade UserFacade
}

// NewUserHandler creates UserHandler instance.
func NewUserHandler(facade UserFacade) *UserHandler {
	return &UserHandler{facade: facade}
}

// Create handles POST /user.
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if req.UserName == nil || *req.UserName == "" {
		badRequest(c, "Please provide a user_name in the request body.")
		return
	}

	user, err := h.facade.RegisterUser(c.Request.Context(), *req.UserName, req.IsAdmin)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.UserResponse{UserName: user.UserName})
}
