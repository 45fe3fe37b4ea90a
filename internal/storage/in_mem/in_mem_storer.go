package in_mem

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/DjordjeVuckovic/posts-feed/internal/apperr"
	"github.com/DjordjeVuckovic/posts-feed/internal/domain"
	"github.com/DjordjeVuckovic/posts-feed/internal/storage"
	"github.com/DjordjeVuckovic/posts-feed/pkg/pagination"
)

type Option func(*Store)

// WithClock replaces time.Now as the source of createdAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Store keeps posts in a slice ordered by id. Readers copy out under the read lock,
// so a query sees one snapshot even while writers append.
type Store struct {
	storageLock sync.RWMutex
	posts       []domain.Post
	lastID      int64
	now         func() time.Time
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Query(ctx context.Context, q pagination.RangeQuery) ([]domain.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.storageLock.RLock()
	var matched []domain.Post
	for _, p := range s.posts {
		if q.Matches(p.ID) {
			matched = append(matched, p)
		}
	}
	s.storageLock.RUnlock()

	slices.SortFunc(matched, func(a, b domain.Post) int {
		c := a.CreatedAt.Compare(b.CreatedAt)
		if c == 0 {
			c = cmp.Compare(a.ID, b.ID)
		}
		if q.Descending() {
			return -c
		}
		return c
	})

	if len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return matched, nil
}

func (s *Store) Get(ctx context.Context, id int64) (domain.Post, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	i, ok := s.indexOf(id)
	if !ok {
		return domain.Post{}, apperr.NewNotFound(domain.PostResource, id)
	}
	return s.posts[i], nil
}

func (s *Store) Create(ctx context.Context, post domain.NewPost) (domain.Post, error) {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	created := s.appendLocked(post)
	slog.Debug("Post saved to in-memory storage", "id", created.ID, "title", created.Title)
	return created, nil
}

func (s *Store) CreateBulk(ctx context.Context, posts []domain.NewPost) (int, error) {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	for _, post := range posts {
		s.appendLocked(post)
	}
	slog.Info("Posts saved to in-memory storage", "count", len(posts), "last_id", s.lastID)
	return len(posts), nil
}

func (s *Store) Update(ctx context.Context, id int64, patch domain.PostPatch) (domain.Post, error) {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	i, ok := s.indexOf(id)
	if !ok {
		return domain.Post{}, apperr.NewNotFound(domain.PostResource, id)
	}
	patch.Apply(&s.posts[i])
	return s.posts[i], nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	i, ok := s.indexOf(id)
	if !ok {
		return apperr.NewNotFound(domain.PostResource, id)
	}
	s.posts = slices.Delete(s.posts, i, i+1)
	return nil
}

// appendLocked assigns the next id and a createdAt never earlier than the previous
// post's, keeping id and createdAt order aligned.
func (s *Store) appendLocked(post domain.NewPost) domain.Post {
	createdAt := s.now().UTC()
	if n := len(s.posts); n > 0 && createdAt.Before(s.posts[n-1].CreatedAt) {
		createdAt = s.posts[n-1].CreatedAt
	}

	s.lastID++
	created := domain.Post{
		ID:        s.lastID,
		Author:    post.Author,
		Title:     post.Title,
		Content:   post.Content,
		CreatedAt: createdAt,
	}
	s.posts = append(s.posts, created)
	return created
}

func (s *Store) indexOf(id int64) (int, bool) {
	return slices.BinarySearchFunc(s.posts, id, func(p domain.Post, target int64) int {
		return cmp.Compare(p.ID, target)
	})
}

var _ storage.Store = (*Store)(nil)
