package models

import "time"

// RevokedToken marks a token id (jti) as no longer usable until ExpiresAt,
// after which the token would be rejected anyway.
type RevokedToken struct {
	JTI       string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
}
