package services

import (
	"context"
	"testing"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/devjobs/board/internal/domain/models"
	"github.com/devjobs/board/internal/events"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func registeredUser(t *testing.T, users *fakeUsers) *models.User {
	t.Helper()
	accounts := NewAccounts(users, 100)
	user, err := accounts.Register(context.Background(), validRegistration())
	assert.NoError(t, err)
	return user
}

func Test_Request_WhenAccountExists_ShouldStoreTokenAndPublishEvent(t *testing.T) {

	users := newFakeUsers()
	user := registeredUser(t, users)

	bus := EventBus.New()
	var published events.ResetRequested
	err := bus.Subscribe(events.ResetRequestedTopic, func(event events.ResetRequested) {
		published = event
	})
	assert.NoError(t, err)

	resets := NewPasswordReset(users, bus, "devjobs.example")

	err = resets.Request(context.Background(), user.Email)
	assert.NoError(t, err)

	stored, err := users.GetByID(context.Background(), user.ID)
	assert.NoError(t, err)
	assert.True(t, stored.HasPendingReset())
	assert.Len(t, stored.ResetToken, 40) // 20 random bytes, hex encoded
	assert.WithinDuration(t, time.Now().Add(time.Hour), stored.ResetExpiry, time.Minute)

	assert.Equal(t, user.Email, published.Email)
	assert.Equal(t, "http://devjobs.example/reestablecer-password/"+stored.ResetToken, published.ResetURL)
}

func Test_Request_WhenAccountUnknown_ShouldFailWithNotFound(t *testing.T) {

	users := newFakeUsers()
	resets := NewPasswordReset(users, EventBus.New(), "devjobs.example")

	err := resets.Request(context.Background(), "nadie@example.com")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func Test_Request_Twice_ShouldInvalidatePreviousToken(t *testing.T) {

	users := newFakeUsers()
	user := registeredUser(t, users)
	resets := NewPasswordReset(users, EventBus.New(), "devjobs.example")

	assert.NoError(t, resets.Request(context.Background(), user.Email))
	first, _ := users.GetByID(context.Background(), user.ID)

	assert.NoError(t, resets.Request(context.Background(), user.Email))

	err := resets.Reset(context.Background(), first.ResetToken, "otronuevo1")
	assert.ErrorIs(t, err, models.ErrInvalidOrExpiredToken)
}

func Test_Reset_WhenTokenValid_ShouldRehashAndClearToken(t *testing.T) {

	users := newFakeUsers()
	user := registeredUser(t, users)
	resets := NewPasswordReset(users, EventBus.New(), "devjobs.example")

	assert.NoError(t, resets.Request(context.Background(), user.Email))
	pending, _ := users.GetByID(context.Background(), user.ID)

	err := resets.Reset(context.Background(), pending.ResetToken, "nuevosecreto")
	assert.NoError(t, err)

	stored, _ := users.GetByID(context.Background(), user.ID)
	assert.False(t, stored.HasPendingReset())
	assert.True(t, stored.ResetExpiry.IsZero())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("nuevosecreto")))
}

func Test_Reset_WhenTokenExpired_ShouldFailEvenIfTokenMatches(t *testing.T) {

	users := newFakeUsers()
	user := registeredUser(t, users)
	resets := NewPasswordReset(users, EventBus.New(), "devjobs.example")

	assert.NoError(t, resets.Request(context.Background(), user.Email))
	pending, _ := users.GetByID(context.Background(), user.ID)

	// force the expiry into the past
	assert.NoError(t, users.SetResetToken(context.Background(), user.ID, pending.ResetToken, time.Now().Add(-time.Minute)))

	err := resets.Reset(context.Background(), pending.ResetToken, "nuevosecreto")
	assert.ErrorIs(t, err, models.ErrInvalidOrExpiredToken)
}

func Test_Reset_WhenTokenUnknown_ShouldFail(t *testing.T) {

	users := newFakeUsers()
	resets := NewPasswordReset(users, EventBus.New(), "devjobs.example")

	err := resets.Reset(context.Background(), "deadbeef", "nuevosecreto")
	assert.ErrorIs(t, err, models.ErrInvalidOrExpiredToken)
}

func Test_Reset_WhenTokenEmpty_ShouldFail(t *testing.T) {

	users := newFakeUsers()
	user := registeredUser(t, users)
	resets := NewPasswordReset(users, EventBus.New(), "devjobs.example")

	// a user without a pending reset has an empty token slot; an empty
	// token must never match it
	_ = user

	err := resets.Reset(context.Background(), "", "nuevosecreto")
	assert.ErrorIs(t, err, models.ErrInvalidOrExpiredToken)
}

func Test_Validate_WhenTokenExpired_ShouldFail(t *testing.T) {

	users := newFakeUsers()
	user := registeredUser(t, users)
	resets := NewPasswordReset(users, EventBus.New(), "devjobs.example")

	assert.NoError(t, resets.Request(context.Background(), user.Email))
	pending, _ := users.GetByID(context.Background(), user.ID)
	assert.NoError(t, resets.Validate(context.Background(), pending.ResetToken))

	assert.NoError(t, users.SetResetToken(context.Background(), user.ID, pending.ResetToken, time.Now().Add(-time.Minute)))
	assert.ErrorIs(t, resets.Validate(context.Background(), pending.ResetToken), models.ErrInvalidOrExpiredToken)
}

func Test_CleanExpiredTokens_ShouldOnlyAffectExpiredOnes(t *testing.T) {

	users := newFakeUsers()
	userA := registeredUser(t, users)

	accounts := NewAccounts(users, 100)
	input := validRegistration()
	input.Email = "otro@example.com"
	userB, err := accounts.Register(context.Background(), input)
	assert.NoError(t, err)

	assert.NoError(t, users.SetResetToken(context.Background(), userA.ID, "tokenA", time.Now().Add(-time.Minute)))
	assert.NoError(t, users.SetResetToken(context.Background(), userB.ID, "tokenB", time.Now().Add(time.Hour)))

	affected, err := users.RemoveExpiredResetTokens(context.Background(), time.Now())
	assert.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	storedA, _ := users.GetByID(context.Background(), userA.ID)
	storedB, _ := users.GetByID(context.Background(), userB.ID)
	assert.False(t, storedA.HasPendingReset())
	assert.True(t, storedB.HasPendingReset())
}
