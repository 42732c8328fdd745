package models

import "time"

// RevokedToken records a JWT jti that has been invalidated by logout or
// refresh. Rows past ExpiresAt are dead weight only; the token they refer to
// would be rejected on expiry anyway.
type RevokedToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	JTI       string    `gorm:"uniqueIndex;not null" json:"jti"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
