package storage

import (
	"context"

	"github.com/DjordjeVuckovic/posts-feed/internal/domain"
)

// Storer owns every mutation of posts. Ids and createdAt are assigned here, both increasing.
type Storer interface {
	Create(ctx context.Context, post domain.NewPost) (domain.Post, error)
	CreateBulk(ctx context.Context, posts []domain.NewPost) (int, error)
	Update(ctx context.Context, id int64, patch domain.PostPatch) (domain.Post, error)
	Delete(ctx context.Context, id int64) error
}

type Store interface {
	Reader
	Storer
}

type Type string

const (
	ES    Type = "es"
	PG    Type = "pg"
	InMem Type = "in_mem"
)

type StorerError string

const (
	ErrUnsupportedStorer StorerError = "unsupported storer type: %s"
)

func (e StorerError) Error() string {
	return string(e)
}
