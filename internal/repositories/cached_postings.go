package repositories

import (
	"context"
	"time"

	"github.com/devjobs/board/internal/domain/models"
	gocache "github.com/patrickmn/go-cache"
)

type postingReader interface {
	GetBySlug(ctx context.Context, slug string) (*models.Posting, error)
}

// CachedPostings is a read-through cache for slug lookups, the hottest
// read path (every posting page hit). Mutating callers must Invalidate.
type CachedPostings struct {
	repo  postingReader
	cache *gocache.Cache
}

func NewCachedPostings(repo postingReader) *CachedPostings {
	return &CachedPostings{repo: repo, cache: gocache.New(5*time.Minute, 10*time.Minute)}
}

func (c *CachedPostings) GetBySlug(ctx context.Context, slug string) (*models.Posting, error) {
	if value, found := c.cache.Get(slug); found {
		posting := value.(models.Posting)
		return &posting, nil
	}

	posting, err := c.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Add(slug, *posting, gocache.DefaultExpiration); err != nil {
		return posting, nil
	}

	return posting, nil
}

func (c *CachedPostings) Invalidate(slug string) {
	c.cache.Delete(slug)
}
