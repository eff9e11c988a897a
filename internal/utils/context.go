package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

// UserIDKey is the context key the auth middleware stores the caller's
// user id under.
const UserIDKey contextKey = "user_id"

// GetUserIDFromContext extracts the authenticated user id populated by
// the JWT middleware.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return id, ok
}
