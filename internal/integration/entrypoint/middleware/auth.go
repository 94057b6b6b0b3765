// Package middleware holds the gin middleware shared by the API routes.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/commitly/backend/internal/application/adapter"
	domainerror "github.com/commitly/backend/internal/domain/error"
	"github.com/commitly/backend/internal/integration/entrypoint/dto"
)

// userIDKey is where Authenticate stores the caller's id on the gin context.
const userIDKey = "commitly.user_id"

// Authenticator admits requests that carry a valid bearer access token.
type Authenticator struct {
	tokens adapter.TokenService
}

func NewAuthenticator(tokens adapter.TokenService) *Authenticator {
	return &Authenticator{tokens: tokens}
}

// Authenticate rejects missing, malformed and refresh tokens with 401.
func (a *Authenticator) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, code := bearerToken(c.GetHeader("Authorization"))
		if code != "" {
			unauthorized(c, code)
			return
		}

		claims, err := a.tokens.VerifyAccess(c.Request.Context(), token)
		if err != nil {
			unauthorized(c, domainerror.ErrCodeInvalidToken)
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Next()
	}
}

// bearerToken extracts the token from an Authorization header. The scheme is
// case-insensitive. A non-empty code explains why no token was found.
func bearerToken(header string) (string, domainerror.AuthErrorCode) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", domainerror.ErrCodeMissingToken
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", domainerror.ErrCodeInvalidToken
	}
	if token = strings.TrimSpace(token); token == "" {
		return "", domainerror.ErrCodeMissingToken
	}
	return token, ""
}

var unauthorizedMessages = map[domainerror.AuthErrorCode]string{
	domainerror.ErrCodeMissingToken: "Authorization header is required",
	domainerror.ErrCodeInvalidToken: "Invalid or expired token",
}

func unauthorized(c *gin.Context, code domainerror.AuthErrorCode) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: unauthorizedMessages[code],
		Code:  string(code),
	})
}

// UserID returns the id Authenticate stored for this request.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
