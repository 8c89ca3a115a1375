package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cppla/askboard/utils"
)

const (
	// ContextUserIDKey is the key used to store the viewer id in Gin context.
	ContextUserIDKey = "user_id"
	// UserIDHeader carries the viewer id when no bearer token is used.
	UserIDHeader = "X-User-ID"
)

// CurrentUser resolves the viewer of a request. When secret is set only a
// valid bearer token identifies the viewer; otherwise the X-User-ID header
// does. Anything else is the anonymous viewer, stored as "".
//
// Identity is never required: a bad token degrades to anonymous.
func CurrentUser(secret string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set(ContextUserIDKey, resolveUser(ctx, secret))
		ctx.Next()
	}
}

func resolveUser(ctx *gin.Context, secret string) string {
	if secret == "" {
		return strings.TrimSpace(ctx.GetHeader(UserIDHeader))
	}
	token := bearerToken(ctx.GetHeader("Authorization"))
	if token == "" {
		return ""
	}
	claims, err := utils.ParseToken(secret, token)
	if err != nil {
		return ""
	}
	return claims.UserID
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// UserID returns the viewer id set by CurrentUser, "" for anonymous.
func UserID(ctx *gin.Context) string {
	return ctx.GetString(ContextUserIDKey)
}
