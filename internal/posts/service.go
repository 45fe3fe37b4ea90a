package posts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/DjordjeVuckovic/posts-feed/internal/apperr"
	"github.com/DjordjeVuckovic/posts-feed/internal/domain"
	"github.com/DjordjeVuckovic/posts-feed/internal/storage"
	"github.com/DjordjeVuckovic/posts-feed/pkg/pagination"
)

// RandomBatchDefault is the number of posts GenerateRandom creates when n is not positive.
const RandomBatchDefault = 100

type Service struct {
	store storage.Store
}

func NewService(store storage.Store) *Service {
	return &Service{store: store}
}

// Paginate answers one listing request. base is the absolute listing URL that next links
// point at and raw holds the request's query values. The call is stateless: the only
// blocking step is the single store query, and store failures come back as
// *apperr.StoreError without retry.
func (s *Service) Paginate(ctx context.Context, base *url.URL, raw url.Values) (*pagination.CursorResult[domain.Post], error) {
	params, err := pagination.ParseParams(raw)
	if err != nil {
		return nil, err
	}

	q := pagination.BuildRangeQuery(params)

	page, err := s.store.Query(ctx, q)
	if err != nil {
		return nil, asStoreError("query", err)
	}
	if len(page) > q.Limit {
		return nil, apperr.NewStore("query", fmt.Errorf("store returned %d posts for limit %d", len(page), q.Limit))
	}

	var next *string
	if len(page) > 0 {
		next = pagination.NextLink(base, raw, params, len(page), page[len(page)-1].ID)
	}

	slog.Debug("Posts page assembled",
		"bound", q.Bound.String(),
		"bound_id", q.ID,
		"order", params.Order,
		"take", params.Take,
		"count", len(page),
		"has_next", next != nil)

	return pagination.NewCursorResult(page, postID, next), nil
}

func (s *Service) Get(ctx context.Context, id int64) (domain.Post, error) {
	post, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Post{}, asStoreError("get", err)
	}
	return post, nil
}

func (s *Service) Create(ctx context.Context, post domain.NewPost) (domain.Post, error) {
	if err := validateNewPost(post); err != nil {
		return domain.Post{}, err
	}

	created, err := s.store.Create(ctx, post)
	if err != nil {
		return domain.Post{}, asStoreError("create", err)
	}
	slog.Info("Post created", "id", created.ID, "author", created.Author)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, patch domain.PostPatch) (domain.Post, error) {
	if patch.Empty() {
		return domain.Post{}, apperr.NewValidation("at least one of author, title, content is required")
	}

	updated, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return domain.Post{}, asStoreError("update", err)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return asStoreError("delete", err)
	}
	slog.Info("Post deleted", "id", id)
	return nil
}

// GenerateRandom creates n placeholder posts for author, for filling a feed to page through.
func (s *Service) GenerateRandom(ctx context.Context, author string, n int) (int, error) {
	if strings.TrimSpace(author) == "" {
		return 0, apperr.NewValidation("author is required")
	}
	if n <= 0 {
		n = RandomBatchDefault
	}

	batch := make([]domain.NewPost, n)
	for i := range batch {
		batch[i] = domain.NewPost{
			Author:  author,
			Title:   fmt.Sprintf("generated post title %d", i),
			Content: fmt.Sprintf("generated post content %d", i),
		}
	}

	created, err := s.store.CreateBulk(ctx, batch)
	if err != nil {
		return created, asStoreError("create_bulk", err)
	}
	return created, nil
}

// Import bulk-creates already validated posts, e.g. from a seed fixture.
func (s *Service) Import(ctx context.Context, batch []domain.NewPost) (int, error) {
	for i, p := range batch {
		if err := validateNewPost(p); err != nil {
			return 0, fmt.Errorf("post %d: %w", i, err)
		}
	}

	created, err := s.store.CreateBulk(ctx, batch)
	if err != nil {
		return created, asStoreError("create_bulk", err)
	}
	return created, nil
}

func validateNewPost(p domain.NewPost) error {
	switch {
	case strings.TrimSpace(p.Author) == "":
		return apperr.NewValidation("author is required")
	case strings.TrimSpace(p.Title) == "":
		return apperr.NewValidation("title is required")
	case strings.TrimSpace(p.Content) == "":
		return apperr.NewValidation("content is required")
	}
	return nil
}

// asStoreError passes typed app errors through and classifies anything else as a store failure.
func asStoreError(op string, err error) error {
	var se *apperr.StoreError
	var nf *apperr.NotFoundError
	var ve *apperr.ValidationError
	if errors.As(err, &se) || errors.As(err, &nf) || errors.As(err, &ve) {
		return err
	}
	return apperr.NewStore(op, err)
}

func postID(p domain.Post) int64 {
	return p.ID
}
