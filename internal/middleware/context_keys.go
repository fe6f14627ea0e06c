package middleware

import (
	"context"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// userIDKey is the key used to store the authenticated user's ID in the Gin context.
const userIDKey = contextKey("userID")

const requestMetaKey = contextKey("requestMeta")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		return GetUserIDFromCtx(c.Request.Context())
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}

	return userID, true
}

// GetUserIDFromCtx retrieves the authenticated user ID from a standard context.
func GetUserIDFromCtx(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// WithUserID returns a copy of ctx carrying userID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// WithRequestMeta returns a copy of ctx carrying the request metadata copied into audit rows.
func WithRequestMeta(ctx context.Context, meta domain.RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey, meta)
}

// GetRequestMetaFromCtx returns the request metadata of ctx. The user id always reflects the
// authenticated user, even when the metadata was captured before authentication ran.
func GetRequestMetaFromCtx(ctx context.Context) domain.RequestMeta {
	meta, _ := ctx.Value(requestMetaKey).(domain.RequestMeta)
	if userID, ok := GetUserIDFromCtx(ctx); ok {
		meta.UserID = userID
	}
	return meta
}

// RequestMetaMiddleware captures client address, URL and user agent for the audit log.
func RequestMetaMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		meta := domain.RequestMeta{
			IPAddress: c.ClientIP(),
			URL:       c.Request.URL.RequestURI(),
			UserAgent: c.Request.UserAgent(),
		}
		c.Request = c.Request.WithContext(WithRequestMeta(c.Request.Context(), meta))
		c.Next()
	}
}
