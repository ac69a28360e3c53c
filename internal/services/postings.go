package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/devjobs/board/internal/domain/models"
	"github.com/devjobs/board/internal/events"
	"github.com/devjobs/board/internal/logger"
	"github.com/devjobs/board/internal/metrics"
	"github.com/go-playground/validator/v10"
	"github.com/gosimple/slug"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const maxSlugAttempts = 5

type postingRepository interface {
	Add(ctx context.Context, posting *models.Posting) error
	GetBySlug(ctx context.Context, slug string) (*models.Posting, error)
	GetByID(ctx context.Context, id bson.ObjectID) (*models.Posting, error)
	GetByAuthor(ctx context.Context, authorID bson.ObjectID) ([]models.Posting, error)
	GetAll(ctx context.Context) ([]models.Posting, error)
	Update(ctx context.Context, posting *models.Posting) error
	Remove(ctx context.Context, id bson.ObjectID) error
	AppendCandidate(ctx context.Context, slug string, candidate models.Candidate) error
	Search(ctx context.Context, query string) ([]models.Posting, error)
}

type cachedPostingReader interface {
	GetBySlug(ctx context.Context, slug string) (*models.Posting, error)
	Invalidate(slug string)
}

type authorResolver interface {
	GetByID(ctx context.Context, id bson.ObjectID) (*models.User, error)
}

type PostingInput struct {
	Title       string `validate:"required"`
	Company     string `validate:"required"`
	Location    string `validate:"required"`
	Contract    string `validate:"required"`
	Description string `validate:"-"`
	Skills      string `validate:"required"`
}

type CandidateInput struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
	CV    string `validate:"required"`
}

type Postings struct {
	repo     postingRepository
	reader   cachedPostingReader
	users    authorResolver
	bus      EventBus.Bus
	validate *validator.Validate
}

func NewPostings(repo postingRepository, reader cachedPostingReader, users authorResolver, bus EventBus.Bus) *Postings {
	return &Postings{
		repo:     repo,
		reader:   reader,
		users:    users,
		bus:      bus,
		validate: validator.New(),
	}
}

// Create persists a new posting owned by authorID. The slug is derived
// from the title; on a collision the insert is retried with a short
// random suffix until the unique index accepts it.
func (s *Postings) Create(ctx context.Context, authorID bson.ObjectID, input PostingInput) (*models.Posting, error) {

	if err := s.validate.Struct(input); err != nil {
		return nil, errors.Wrap(models.ErrValidation, err.Error())
	}

	skills := models.SplitSkills(input.Skills)
	if len(skills) == 0 {
		return nil, errors.Wrap(models.ErrValidation, "at least one skill is required")
	}

	posting := &models.Posting{
		Title:       input.Title,
		Company:     input.Company,
		Location:    input.Location,
		Contract:    input.Contract,
		Description: input.Description,
		Skills:      skills,
		AuthorID:    authorID,
	}

	base := slug.Make(input.Title)
	posting.Slug = base

	for attempt := 0; ; attempt++ {
		err := s.repo.Add(ctx, posting)
		if err == nil {
			break
		}
		if !errors.Is(err, models.ErrDuplicateSlug) || attempt >= maxSlugAttempts {
			return nil, err
		}
		suffix, err := randomSlugSuffix()
		if err != nil {
			return nil, err
		}
		posting.Slug = base + "-" + suffix
	}

	metrics.PostingsCreatedCounter.Inc()
	return posting, nil
}

// GetBySlug returns the posting with its author resolved.
func (s *Postings) GetBySlug(ctx context.Context, postingSlug string) (*models.Posting, error) {

	posting, err := s.reader.GetBySlug(ctx, postingSlug)
	if err != nil {
		return nil, err
	}

	author, err := s.users.GetByID(ctx, posting.AuthorID)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
	} else {
		posting.Author = author
	}

	return posting, nil
}

func (s *Postings) Update(ctx context.Context, postingSlug string, actorID bson.ObjectID, input PostingInput) (*models.Posting, error) {

	posting, err := s.repo.GetBySlug(ctx, postingSlug)
	if err != nil {
		return nil, err
	}

	if !models.IsOwner(posting.AuthorID, actorID) {
		return nil, models.ErrForbidden
	}

	if err := s.validate.Struct(input); err != nil {
		return nil, errors.Wrap(models.ErrValidation, err.Error())
	}

	skills := models.SplitSkills(input.Skills)
	if len(skills) == 0 {
		return nil, errors.Wrap(models.ErrValidation, "at least one skill is required")
	}

	posting.Title = input.Title
	posting.Company = input.Company
	posting.Location = input.Location
	posting.Contract = input.Contract
	posting.Description = input.Description
	posting.Skills = skills

	if err := s.repo.Update(ctx, posting); err != nil {
		return nil, err
	}

	s.reader.Invalidate(postingSlug)
	return posting, nil
}

func (s *Postings) Delete(ctx context.Context, id bson.ObjectID, actorID bson.ObjectID) error {

	posting, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !models.IsOwner(posting.AuthorID, actorID) {
		return models.ErrForbidden
	}

	if err := s.repo.Remove(ctx, id); err != nil {
		return err
	}

	s.reader.Invalidate(posting.Slug)
	return nil
}

// Apply appends a candidate to the posting. Public: no identity is
// required, only a resolvable slug.
func (s *Postings) Apply(ctx context.Context, postingSlug string, input CandidateInput) error {

	if err := s.validate.Struct(input); err != nil {
		return errors.Wrap(models.ErrValidation, err.Error())
	}

	posting, err := s.repo.GetBySlug(ctx, postingSlug)
	if err != nil {
		return err
	}

	candidate := models.Candidate{
		Name:      input.Name,
		Email:     models.NormalizeEmail(input.Email),
		CV:        input.CV,
		AppliedAt: time.Now().UTC(),
	}

	if err := s.repo.AppendCandidate(ctx, postingSlug, candidate); err != nil {
		return err
	}

	s.reader.Invalidate(postingSlug)
	metrics.ApplicationsCounter.Inc()

	owner, err := s.users.GetByID(ctx, posting.AuthorID)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to resolve posting owner for notification: %v", err)
		return nil
	}

	s.bus.Publish(events.CandidateAppliedTopic, events.CandidateApplied{
		OwnerName:     owner.Name,
		OwnerEmail:    owner.Email,
		PostingTitle:  posting.Title,
		CandidateName: candidate.Name,
	})

	return nil
}

// Candidates returns the applications for a posting, owner only.
func (s *Postings) Candidates(ctx context.Context, id bson.ObjectID, actorID bson.ObjectID) (*models.Posting, error) {

	posting, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !models.IsOwner(posting.AuthorID, actorID) {
		return nil, models.ErrForbidden
	}

	return posting, nil
}

func (s *Postings) ListByAuthor(ctx context.Context, authorID bson.ObjectID) ([]models.Posting, error) {
	return s.repo.GetByAuthor(ctx, authorID)
}

func (s *Postings) ListAll(ctx context.Context) ([]models.Posting, error) {
	return s.repo.GetAll(ctx)
}

// Search runs a text search over titles and descriptions. An empty
// query returns every posting, same as the home page.
func (s *Postings) Search(ctx context.Context, query string) ([]models.Posting, error) {

	start := time.Now()
	defer func() {
		metrics.SearchDuration.Observe(time.Since(start).Seconds())
	}()

	if strings.TrimSpace(query) == "" {
		return s.repo.GetAll(ctx)
	}

	return s.repo.Search(ctx, query)
}

func randomSlugSuffix() (string, error) {
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
