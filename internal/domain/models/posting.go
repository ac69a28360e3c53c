package models

import (
	"strings"
	"time"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Candidate is an application against a posting. Candidates are
// embedded in the posting document and are append-only: the public
// apply flow adds them, nothing else mutates them.
type Candidate struct {
	Name      string    `bson:"name"`
	Email     string    `bson:"email"`
	CV        string    `bson:"cv"`
	AppliedAt time.Time `bson:"applied_at"`
}

// Posting is a published job vacancy. Slug is unique and URL-routable,
// enforced by a unique index on the postings collection.
type Posting struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	Title       string        `bson:"title"`
	Company     string        `bson:"company"`
	Location    string        `bson:"location"`
	Contract    string        `bson:"contract"`
	Description string        `bson:"description"`
	Skills      []string      `bson:"skills"`
	Slug        string        `bson:"slug"`
	AuthorID    bson.ObjectID `bson:"author"`
	Candidates  []Candidate   `bson:"candidates,omitempty"`
	CreatedAt   time.Time     `bson:"created_at"`

	// Author is resolved on read, never persisted.
	Author *User `bson:"-"`
}

// SplitSkills parses the comma-separated skills form field into an
// ordered list, dropping empty entries.
func SplitSkills(input string) []string {
	return lo.FilterMap(strings.Split(input, ","), func(s string, _ int) (string, bool) {
		trimmed := strings.TrimSpace(s)
		return trimmed, trimmed != ""
	})
}

// IsOwner reports whether actor owns a resource owned by owner. Both
// sides are canonicalized to their hex string form before comparing,
// and the zero ID never matches anything.
func IsOwner(owner, actor bson.ObjectID) bool {
	if owner.IsZero() || actor.IsZero() {
		return false
	}
	return owner.Hex() == actor.Hex()
}
