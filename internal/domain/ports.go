package domain

import (
	"context"
	"time"
)

// WorkRepository defines persistence operations for works.
// Implementations: internal/infra/postgres/repository.go
type WorkRepository interface {
	// List runs the listing query and its companion count query for
	// the given scope. Both are built from the identical filter set,
	// including joins, so the reported total always agrees with the
	// result set.
	List(ctx context.Context, scope ListScope) ([]*Work, int64, error)

	// GetByID retrieves a work by id with no visibility filtering.
	// Returns nil when the row does not exist. Used by mutation paths
	// that need the raw lifecycle state before deciding.
	GetByID(ctx context.Context, id int64) (*Work, error)

	// GetVisible retrieves a work as seen by viewerID: trashed and
	// deleted works are hidden, private works only visible to their
	// owner. Tags and recent favoriting users are populated.
	// Returns nil when not found or not visible.
	GetVisible(ctx context.Context, id int64, viewerID string) (*Work, error)

	// ListTrash returns the owner's trashed (not yet deleted) works.
	ListTrash(ctx context.Context, ownerID string) ([]*Work, error)

	// DistinctTags returns the deduplicated tag names used across the
	// owner's non-deleted works.
	DistinctTags(ctx context.Context, ownerID string) ([]string, error)

	// Create inserts a work and associates it with the given tag
	// names, creating tags on demand.
	Create(ctx context.Context, w *Work, tags []string) error

	// Update persists owner edits and replaces the tag associations.
	Update(ctx context.Context, w *Work, tags []string) error

	// SetTrash moves a work into or out of the trash, stamping or
	// clearing deleted_at. Returns the updated work.
	SetTrash(ctx context.Context, id int64, trashed bool) (*Work, error)

	// SoftDelete marks a work deleted. Never removes rows physically.
	SoftDelete(ctx context.Context, id int64) error

	// IncrementViews bumps the view counter by one.
	IncrementViews(ctx context.Context, id int64) error

	// SweepTrash soft-deletes works trashed before cutoff and returns
	// how many rows it touched. Idempotent.
	SweepTrash(ctx context.Context, cutoff time.Time) (int64, error)
}

// EngagementRepository maintains favorites, comments and follow edges
// together with the counters they affect. Counter updates are atomic
// increments bound to the row mutation, never recomputed.
type EngagementRepository interface {
	AddFavorite(ctx context.Context, userID string, workID int64) error
	RemoveFavorite(ctx context.Context, userID string, workID int64) error

	AddComment(ctx context.Context, c *Comment) error
	// DeleteComment removes the comment if it belongs to userID.
	DeleteComment(ctx context.Context, commentID int64, userID string) error
	ListComments(ctx context.Context, workID int64) ([]*Comment, error)

	Follow(ctx context.Context, followerID, followedID string) error
	Unfollow(ctx context.Context, followerID, followedID string) error
	// FollowedIDs resolves the set of author ids the follower follows,
	// consumed by the following-feed listing.
	FollowedIDs(ctx context.Context, followerID string) ([]string, error)
}

// Cache defines short-lived result caching.
// Implementations: internal/infra/redis/cache.go
type Cache interface {
	// Get retrieves a value by key. Returns nil if not found.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error
}

// ViewDeduper prevents double-counting views from the same viewer
// within a trailing window. The dedup is approximate: a missed entry
// at worst double-counts one view.
// Implementations: internal/infra/redis/dedup.go
type ViewDeduper interface {
	// FirstView reports whether this is the first view for key within
	// the window, recording it as seen.
	FirstView(ctx context.Context, key string) (bool, error)
}

// Identity is the authenticated caller resolved from a bearer token.
type Identity struct {
	UserID   string
	Email    string
	Username string
}

// TokenVerifier validates bearer tokens against the external identity
// provider.
// Implementations: internal/infra/identity/client.go
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}
