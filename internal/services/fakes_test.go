package services

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/devjobs/board/internal/domain/models"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// fakeUsers is an in-memory stand-in for the users repository. It
// enforces email uniqueness the way the unique index does.
type fakeUsers struct {
	users map[string]*models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: make(map[string]*models.User)}
}

func (f *fakeUsers) Add(ctx context.Context, user *models.User) error {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return models.ErrDuplicateEmail
		}
	}
	user.ID = bson.NewObjectID()
	user.CreatedAt = time.Now().UTC()
	copied := *user
	f.users[user.ID.Hex()] = &copied
	return nil
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	normalized := models.NormalizeEmail(email)
	for _, user := range f.users {
		if user.Email == normalized {
			copied := *user
			return &copied, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeUsers) GetByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	user, ok := f.users[id.Hex()]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUsers) GetByResetToken(ctx context.Context, token string) (*models.User, error) {
	for _, user := range f.users {
		if user.ResetToken != "" && user.ResetToken == token {
			copied := *user
			return &copied, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeUsers) SetResetToken(ctx context.Context, id bson.ObjectID, token string, expiry time.Time) error {
	user, ok := f.users[id.Hex()]
	if !ok {
		return models.ErrNotFound
	}
	user.ResetToken = token
	user.ResetExpiry = expiry
	return nil
}

func (f *fakeUsers) ResetPassword(ctx context.Context, id bson.ObjectID, passwordHash string) error {
	user, ok := f.users[id.Hex()]
	if !ok {
		return models.ErrNotFound
	}
	user.PasswordHash = passwordHash
	user.ResetToken = ""
	user.ResetExpiry = time.Time{}
	return nil
}

func (f *fakeUsers) Update(ctx context.Context, user *models.User) error {
	stored, ok := f.users[user.ID.Hex()]
	if !ok {
		return models.ErrNotFound
	}
	for _, existing := range f.users {
		if existing.ID != user.ID && existing.Email == user.Email {
			return models.ErrDuplicateEmail
		}
	}
	stored.Name = user.Name
	stored.Email = user.Email
	stored.PasswordHash = user.PasswordHash
	stored.Image = user.Image
	return nil
}

func (f *fakeUsers) RemoveExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	var affected int64
	for _, user := range f.users {
		if user.ResetToken != "" && user.ResetExpiry.Before(now) {
			user.ResetToken = ""
			user.ResetExpiry = time.Time{}
			affected++
		}
	}
	return affected, nil
}

// fakePostings enforces slug uniqueness like the postings collection.
type fakePostings struct {
	postings map[string]*models.Posting
}

func newFakePostings() *fakePostings {
	return &fakePostings{postings: make(map[string]*models.Posting)}
}

func (f *fakePostings) Add(ctx context.Context, posting *models.Posting) error {
	for _, existing := range f.postings {
		if existing.Slug == posting.Slug {
			return models.ErrDuplicateSlug
		}
	}
	posting.ID = bson.NewObjectID()
	posting.CreatedAt = time.Now().UTC()
	copied := *posting
	f.postings[posting.ID.Hex()] = &copied
	return nil
}

func (f *fakePostings) GetBySlug(ctx context.Context, slug string) (*models.Posting, error) {
	for _, posting := range f.postings {
		if posting.Slug == slug {
			copied := *posting
			return &copied, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakePostings) GetByID(ctx context.Context, id bson.ObjectID) (*models.Posting, error) {
	posting, ok := f.postings[id.Hex()]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *posting
	return &copied, nil
}

func (f *fakePostings) GetByAuthor(ctx context.Context, authorID bson.ObjectID) ([]models.Posting, error) {
	var result []models.Posting
	for _, posting := range f.postings {
		if posting.AuthorID == authorID {
			result = append(result, *posting)
		}
	}
	return result, nil
}

func (f *fakePostings) GetAll(ctx context.Context) ([]models.Posting, error) {
	var result []models.Posting
	for _, posting := range f.postings {
		result = append(result, *posting)
	}
	return result, nil
}

func (f *fakePostings) Update(ctx context.Context, posting *models.Posting) error {
	for _, stored := range f.postings {
		if stored.Slug == posting.Slug {
			stored.Title = posting.Title
			stored.Company = posting.Company
			stored.Location = posting.Location
			stored.Contract = posting.Contract
			stored.Description = posting.Description
			stored.Skills = posting.Skills
			return nil
		}
	}
	return models.ErrNotFound
}

func (f *fakePostings) Remove(ctx context.Context, id bson.ObjectID) error {
	if _, ok := f.postings[id.Hex()]; !ok {
		return models.ErrNotFound
	}
	delete(f.postings, id.Hex())
	return nil
}

func (f *fakePostings) AppendCandidate(ctx context.Context, slug string, candidate models.Candidate) error {
	for _, posting := range f.postings {
		if posting.Slug == slug {
			posting.Candidates = append(posting.Candidates, candidate)
			return nil
		}
	}
	return models.ErrNotFound
}

func (f *fakePostings) Search(ctx context.Context, query string) ([]models.Posting, error) {
	var result []models.Posting
	for _, posting := range f.postings {
		if containsFold(posting.Title, query) || containsFold(posting.Description, query) {
			result = append(result, *posting)
		}
	}
	return result, nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// fakeBlobStore records what was stored and can be told to fail.
type fakeBlobStore struct {
	files   map[string][]byte
	failPut bool
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{files: make(map[string][]byte)}
}

func (f *fakeBlobStore) Put(filename string, r io.Reader) error {
	if f.failPut {
		return errors.New("disk full")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.files[filename] = data
	return nil
}

func (f *fakeBlobStore) Remove(filename string) error {
	delete(f.files, filename)
	return nil
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type fakeMailSender struct {
	sent []sentMail
	err  error
}

func (f *fakeMailSender) Send(to string, subject string, htmlBody string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Body: htmlBody})
	return nil
}
