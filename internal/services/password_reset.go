package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/devjobs/board/internal/domain/models"
	"github.com/devjobs/board/internal/events"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"
)

const (
	resetTokenBytes = 20
	resetTokenTTL   = time.Hour
)

type resetUserRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByResetToken(ctx context.Context, token string) (*models.User, error)
	SetResetToken(ctx context.Context, id bson.ObjectID, token string, expiry time.Time) error
	ResetPassword(ctx context.Context, id bson.ObjectID, passwordHash string) error
}

// PasswordReset issues and consumes single-slot reset tokens. A user
// holds at most one token; issuing again overwrites the previous one.
type PasswordReset struct {
	users resetUserRepository
	bus   EventBus.Bus
	host  string
}

func NewPasswordReset(users resetUserRepository, bus EventBus.Bus, host string) *PasswordReset {
	return &PasswordReset{users: users, bus: bus, host: host}
}

// Request stores a fresh token on the matching account and publishes
// the notification event. Returns ErrNotFound for unknown emails; the
// boundary hides that behind a generic message.
func (s *PasswordReset) Request(ctx context.Context, email string) error {

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	token, err := generateResetToken()
	if err != nil {
		return errors.Wrap(err, "failed to generate reset token")
	}

	expiry := time.Now().Add(resetTokenTTL)
	if err := s.users.SetResetToken(ctx, user.ID, token, expiry); err != nil {
		return err
	}

	s.bus.Publish(events.ResetRequestedTopic, events.ResetRequested{
		Name:     user.Name,
		Email:    user.Email,
		ResetURL: fmt.Sprintf("http://%s/reestablecer-password/%s", s.host, token),
	})

	return nil
}

// Validate checks whether a token would currently be accepted, without
// consuming it. The new-password form uses it before rendering.
func (s *PasswordReset) Validate(ctx context.Context, token string) error {

	if token == "" {
		return models.ErrInvalidOrExpiredToken
	}

	user, err := s.users.GetByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrInvalidOrExpiredToken
		}
		return err
	}

	if time.Now().After(user.ResetExpiry) {
		return models.ErrInvalidOrExpiredToken
	}

	return nil
}

// Reset consumes the token: the new password is hashed and stored, and
// token plus expiry are cleared in the same write. An expired token
// fails exactly like an unknown one.
func (s *PasswordReset) Reset(ctx context.Context, token string, newPassword string) error {

	if token == "" {
		return models.ErrInvalidOrExpiredToken
	}

	if len(newPassword) < 6 {
		return errors.Wrap(models.ErrValidation, "password too short")
	}

	user, err := s.users.GetByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrInvalidOrExpiredToken
		}
		return err
	}

	if time.Now().After(user.ResetExpiry) {
		return models.ErrInvalidOrExpiredToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return errors.Wrap(err, "failed to hash password")
	}

	return s.users.ResetPassword(ctx, user.ID, string(hash))
}

func generateResetToken() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
