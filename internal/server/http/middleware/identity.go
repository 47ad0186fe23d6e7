package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	pkgAuth "github.com/polkiloo/loanledger/internal/pkg/auth"
	"github.com/polkiloo/loanledger/internal/server/http/dto"
)

// IdentityContextKey is a gin context key for the resolved caller identity.
const IdentityContextKey = "identity"

// IdentityResolver maps the user name header to a known user.
type IdentityResolver interface {
	Identify(ctx context.Context, userName string) (*pkgAuth.Identity, error)
}

// ResolveIdentity attaches the caller identity to the request. Requests without a
// known user name continue anonymously; handlers decide whether that is allowed.
func ResolveIdentity(resolver IdentityResolver, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userName := c.GetHeader(pkgAuth.HeaderName)
		if userName == "" {
			c.Next()
			return
		}

		identity, err := resolver.Identify(c.Request.Context(), userName)
		if err != nil {
			logger.Error("resolve identity", slog.String("request_id", c.GetString(RequestIDContextKey)), slog.Any("error", err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
			return
		}
		if identity != nil {
			c.Set(IdentityContextKey, identity)
		}
		c.Next()
	}
}
