package storage

import (
	"context"

	"github.com/DjordjeVuckovic/posts-feed/internal/domain"
	"github.com/DjordjeVuckovic/posts-feed/pkg/pagination"
)

// RangeStore supplies one page of posts for a range query.
type RangeStore interface {
	// Query returns at most q.Limit posts matching the id predicate of q, sorted by
	// createdAt (ties by id) in q's order, read from a single consistent snapshot.
	// A nil slice means no post matched.
	Query(ctx context.Context, q pagination.RangeQuery) ([]domain.Post, error)
}

type Reader interface {
	RangeStore
	// Get returns the post with the given id or an apperr.NotFoundError.
	Get(ctx context.Context, id int64) (domain.Post, error)
}
