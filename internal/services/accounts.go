package services

import (
	"context"

	"github.com/devjobs/board/internal/domain/models"
	"github.com/devjobs/board/internal/metrics"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"
)

// bcryptCost matches the hashing rounds the accounts were created with.
const bcryptCost = 12

type userRepository interface {
	Add(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id bson.ObjectID) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

type RegisterInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
	Confirm  string `validate:"required,eqfield=Password"`
}

type ProfileInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"omitempty,min=6"`
	Image    string `validate:"-"`
}

type Accounts struct {
	users        userRepository
	validate     *validator.Validate
	loginLimiter *rate.Limiter
}

func NewAccounts(users userRepository, loginMaxPerSec float64) *Accounts {
	if loginMaxPerSec <= 0 {
		loginMaxPerSec = 5
	}
	return &Accounts{
		users:        users,
		validate:     validator.New(),
		loginLimiter: rate.NewLimiter(rate.Limit(loginMaxPerSec), int(loginMaxPerSec)),
	}
}

func (s *Accounts) Register(ctx context.Context, input RegisterInput) (*models.User, error) {

	if err := s.validate.Struct(input); err != nil {
		return nil, errors.Wrap(models.ErrValidation, err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	user := &models.User{
		Name:         input.Name,
		Email:        models.NormalizeEmail(input.Email),
		PasswordHash: string(hash),
	}

	if err := s.users.Add(ctx, user); err != nil {
		return nil, err
	}

	metrics.RegistrationsCounter.Inc()
	return user, nil
}

// Authenticate returns the user when email and password match. The
// same ErrInvalidCredentials comes back for an unknown email and a
// wrong password, so callers can't probe which accounts exist.
func (s *Accounts) Authenticate(ctx context.Context, email, password string) (*models.User, error) {

	if !s.loginLimiter.Allow() {
		return nil, models.ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			// burn a comparison so the miss costs the same as a mismatch
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	return user, nil
}

func (s *Accounts) GetByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateProfile copies the allow-listed fields onto the stored user.
// The password is re-hashed only when a new one was supplied.
func (s *Accounts) UpdateProfile(ctx context.Context, userID bson.ObjectID, input ProfileInput) (*models.User, error) {

	if err := s.validate.Struct(input); err != nil {
		return nil, errors.Wrap(models.ErrValidation, err.Error())
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Name = input.Name
	user.Email = models.NormalizeEmail(input.Email)

	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
		if err != nil {
			return nil, errors.Wrap(err, "failed to hash password")
		}
		user.PasswordHash = string(hash)
	}

	if input.Image != "" {
		user.Image = input.Image
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// precomputed hash of an empty password, only used to keep timing flat
var dummyHash = func() []byte {
	hash, _ := bcrypt.GenerateFromPassword([]byte(""), bcryptCost)
	return hash
}()
