package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session backs one access token; its ID is the token's jti claim.
type Session struct {
	BaseSimple
	UserID    uuid.UUID  `db:"user_id"`
	UserAgent *string    `db:"user_agent"`
	IPAddress *string    `db:"ip_address"`
	ExpiresAt time.Time  `db:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at"`
}

// SessionUser is a live session joined with the flags of its user.
type SessionUser struct {
	SessionID uuid.UUID
	UserID    uuid.UUID
	IsStaff   bool
	IsActive  bool
}
