package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/devjobs/board/internal/domain/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type Users struct {
	collection *mongo.Collection
}

func NewUsersRepository(db *DbContext) *Users {
	return &Users{collection: db.DB.Collection(usersCollection)}
}

func (repo *Users) Add(ctx context.Context, user *models.User) error {
	user.CreatedAt = time.Now().UTC()
	res, err := repo.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.ErrDuplicateEmail
		}
		return err
	}
	user.ID = res.InsertedID.(bson.ObjectID)
	return nil
}

func (repo *Users) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := repo.collection.FindOne(ctx, bson.M{"email": models.NormalizeEmail(email)}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (repo *Users) GetByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	var user models.User
	err := repo.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (repo *Users) GetByResetToken(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	err := repo.collection.FindOne(ctx, bson.M{"token": token}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (repo *Users) SetResetToken(ctx context.Context, id bson.ObjectID, token string, expiry time.Time) error {
	res, err := repo.collection.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"token": token, "expires": expiry}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// ResetPassword stores the new hash and removes the token and expiry
// in one document update, so a half-consumed token can never exist.
func (repo *Users) ResetPassword(ctx context.Context, id bson.ObjectID, passwordHash string) error {
	res, err := repo.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set":   bson.M{"password": passwordHash},
		"$unset": bson.M{"token": "", "expires": ""},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (repo *Users) Update(ctx context.Context, user *models.User) error {
	res, err := repo.collection.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": bson.M{
		"name":     user.Name,
		"email":    user.Email,
		"password": user.PasswordHash,
		"image":    user.Image,
	}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.ErrDuplicateEmail
		}
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// RemoveExpiredResetTokens clears token slots whose expiry has passed
// and returns how many users were affected.
func (repo *Users) RemoveExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	res, err := repo.collection.UpdateMany(ctx,
		bson.M{"token": bson.M{"$exists": true}, "expires": bson.M{"$lt": now}},
		bson.M{"$unset": bson.M{"token": "", "expires": ""}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
