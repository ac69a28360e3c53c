package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User is a registered account. Email is unique (case-insensitive,
// trimmed), enforced by a unique index on the users collection.
// ResetToken and ResetExpiry are only set while a password reset is
// pending and are cleared together when the token is consumed.
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	Name         string        `bson:"name"`
	Email        string        `bson:"email"`
	PasswordHash string        `bson:"password"`
	ResetToken   string        `bson:"token,omitempty"`
	ResetExpiry  time.Time     `bson:"expires,omitempty"`
	Image        string        `bson:"image,omitempty"`
	CreatedAt    time.Time     `bson:"created_at"`
}

// HasPendingReset reports whether a reset token is currently stored,
// regardless of expiry. Expired-but-present tokens are invalid for
// consumption but still visible to the cleanup job.
func (u *User) HasPendingReset() bool {
	return u.ResetToken != ""
}

// NormalizeEmail canonicalizes an email the same way the users
// collection stores it.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
