package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	IsStaffKey   contextKey = "is_staff"
	SessionIDKey contextKey = "session_id"
)

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}

// IsStaffFromContext reports false when no authenticated user is present.
func IsStaffFromContext(ctx context.Context) bool {
	isStaff, _ := ctx.Value(IsStaffKey).(bool)
	return isStaff
}

func SetUserContext(ctx context.Context, userID uuid.UUID, isStaff bool) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID)
	ctx = context.WithValue(ctx, IsStaffKey, isStaff)
	return ctx
}

// GetSessionIDFromContext returns the session id (token jti) of the request.
func GetSessionIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(SessionIDKey).(uuid.UUID)
	return id, ok
}

func SetSessionContext(ctx context.Context, sessionID uuid.UUID) context.Context {
	return context.WithValue(ctx, SessionIDKey, sessionID)
}
