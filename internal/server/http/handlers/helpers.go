package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/loanledger/internal/domain/errors"
	pkgAuth "github.com/polkiloo/loanledger/internal/pkg/auth"
	"github.com/polkiloo/loanledger/internal/server/http/dto"
	"github.com/polkiloo/loanledger/internal/server/http/middleware"
)

// publicMessages overrides the text of errors whose wording is part of the API.
var publicMessages = []struct {
	err error
	msg string
}{
	{domainErrors.ErrUnauthorized, "Invalid/missing user credentials in the request header"},
	{domainErrors.ErrLoanNotApproved, "The loan is not approved yet. Repayments can only be done for approved loans"},
	{domainErrors.ErrAlreadyExists, "User with this ID already exists."},
}

// CurrentIdentity returns the identity resolved for the request, nil for anonymous callers.
func CurrentIdentity(c *gin.Context) *pkgAuth.Identity {
	val, ok := c.Get(middleware.IdentityContextKey)
	if !ok {
		return nil
	}
	identity, _ := val.(*pkgAuth.Identity)
	return identity
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, domainErrors.ErrInvalidState),
		errors.Is(err, domainErrors.ErrInsufficientAmount),
		errors.Is(err, domainErrors.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func messageFor(err error) string {
	for _, m := range publicMessages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	return err.Error()
}

func writeError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(statusFor(err), dto.ErrorResponse{Error: messageFor(err)})
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: msg})
}

// pathID parses a positive integer path parameter. Anything else does not name a
// resource, so the request ends with 404.
func pathID(c *gin.Context, name, entity string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusNotFound, dto.ErrorResponse{Error: entity + " with ID " + raw + " does not exist"})
		return 0, false
	}
	return id, true
}
