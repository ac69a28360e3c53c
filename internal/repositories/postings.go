package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/devjobs/board/internal/domain/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type Postings struct {
	collection *mongo.Collection
}

func NewPostingsRepository(db *DbContext) *Postings {
	return &Postings{collection: db.DB.Collection(postingsCollection)}
}

func (repo *Postings) Add(ctx context.Context, posting *models.Posting) error {
	posting.CreatedAt = time.Now().UTC()
	res, err := repo.collection.InsertOne(ctx, posting)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.ErrDuplicateSlug
		}
		return err
	}
	posting.ID = res.InsertedID.(bson.ObjectID)
	return nil
}

func (repo *Postings) GetBySlug(ctx context.Context, slug string) (*models.Posting, error) {
	var posting models.Posting
	err := repo.collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&posting)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &posting, nil
}

func (repo *Postings) GetByID(ctx context.Context, id bson.ObjectID) (*models.Posting, error) {
	var posting models.Posting
	err := repo.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&posting)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &posting, nil
}

func (repo *Postings) GetByAuthor(ctx context.Context, authorID bson.ObjectID) ([]models.Posting, error) {
	cursor, err := repo.collection.Find(ctx, bson.M{"author": authorID})
	if err != nil {
		return nil, err
	}

	var postings []models.Posting
	if err := cursor.All(ctx, &postings); err != nil {
		return nil, err
	}
	return postings, nil
}

func (repo *Postings) GetAll(ctx context.Context) ([]models.Posting, error) {
	cursor, err := repo.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	var postings []models.Posting
	if err := cursor.All(ctx, &postings); err != nil {
		return nil, err
	}
	return postings, nil
}

func (repo *Postings) Update(ctx context.Context, posting *models.Posting) error {
	res, err := repo.collection.UpdateOne(ctx, bson.M{"slug": posting.Slug}, bson.M{"$set": bson.M{
		"title":       posting.Title,
		"company":     posting.Company,
		"location":    posting.Location,
		"contract":    posting.Contract,
		"description": posting.Description,
		"skills":      posting.Skills,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Remove deletes the posting document; embedded candidates go with it.
func (repo *Postings) Remove(ctx context.Context, id bson.ObjectID) error {
	res, err := repo.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (repo *Postings) AppendCandidate(ctx context.Context, slug string, candidate models.Candidate) error {
	res, err := repo.collection.UpdateOne(ctx, bson.M{"slug": slug},
		bson.M{"$push": bson.M{"candidates": candidate}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (repo *Postings) Search(ctx context.Context, query string) ([]models.Posting, error) {
	cursor, err := repo.collection.Find(ctx, bson.M{"$text": bson.M{"$search": query}})
	if err != nil {
		return nil, err
	}

	var postings []models.Posting
	if err := cursor.All(ctx, &postings); err != nil {
		return nil, err
	}
	return postings, nil
}
