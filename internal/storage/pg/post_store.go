package pg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/posts-feed/internal/apperr"
	"github.com/DjordjeVuckovic/posts-feed/internal/domain"
	"github.com/DjordjeVuckovic/posts-feed/internal/storage"
	"github.com/DjordjeVuckovic/posts-feed/pkg/pagination"
	"github.com/jackc/pgx/v5"
)

// Store reads and writes the posts table. Ids come from the BIGSERIAL sequence and
// created_at from the column default.
type Store struct {
	pool *ConnectionPool
}

func NewStore(pool *ConnectionPool) (*Store, error) {
	if pool == nil {
		return nil, fmt.Errorf("connection pool is required")
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Query(ctx context.Context, q pagination.RangeQuery) ([]domain.Post, error) {
	sql, args := buildRangeSQL(q)
	slog.Debug("Executing pg range query", "bound", q.Bound.String(), "id", q.ID, "order", q.Sort.Order, "limit", q.Limit)

	queryCtx, cancel := s.pool.queryCtx(ctx)
	defer cancel()

	rows, err := s.pool.conn.Query(queryCtx, sql, args...)
	if err != nil {
		return nil, apperr.NewStore("query", fmt.Errorf("failed to execute range query: %w", err))
	}

	posts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Post, error) {
		return scanPost(row)
	})
	if err != nil {
		return nil, apperr.NewStore("query", fmt.Errorf("failed to read posts: %w", err))
	}

	return posts, nil
}

func (s *Store) Get(ctx context.Context, id int64) (domain.Post, error) {
	queryCtx, cancel := s.pool.queryCtx(ctx)
	defer cancel()

	row := s.pool.conn.QueryRow(queryCtx, "SELECT "+postColumns+" FROM posts WHERE id = $1", id)
	post, err := scanPost(row)
	if err != nil {
		return domain.Post{}, s.classify("get", id, err)
	}
	return post, nil
}

func (s *Store) Create(ctx context.Context, post domain.NewPost) (domain.Post, error) {
	queryCtx, cancel := s.pool.queryCtx(ctx)
	defer cancel()

	row := s.pool.conn.QueryRow(queryCtx, `
		INSERT INTO posts (author, title, content)
		VALUES ($1, $2, $3)
		RETURNING `+postColumns,
		post.Author, post.Title, post.Content,
	)
	created, err := scanPost(row)
	if err != nil {
		return domain.Post{}, apperr.NewStore("create", fmt.Errorf("failed to insert post: %w", err))
	}
	return created, nil
}

func (s *Store) CreateBulk(ctx context.Context, posts []domain.NewPost) (int, error) {
	if len(posts) == 0 {
		return 0, nil
	}

	rows := make([][]interface{}, len(posts))
	for i, p := range posts {
		rows[i] = []interface{}{p.Author, p.Title, p.Content}
	}

	n, err := s.pool.conn.CopyFrom(
		ctx,
		pgx.Identifier{"posts"},
		[]string{"author", "title", "content"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, apperr.NewStore("create_bulk", fmt.Errorf("failed to bulk insert posts: %w", err))
	}

	slog.Info("Bulk insert completed", "rows", n)
	return int(n), nil
}

func (s *Store) Update(ctx context.Context, id int64, patch domain.PostPatch) (domain.Post, error) {
	queryCtx, cancel := s.pool.queryCtx(ctx)
	defer cancel()

	row := s.pool.conn.QueryRow(queryCtx, `
		UPDATE posts SET
			author  = COALESCE(NULLIF($2::text, ''), author),
			title   = COALESCE(NULLIF($3::text, ''), title),
			content = COALESCE(NULLIF($4::text, ''), content)
		WHERE id = $1
		RETURNING `+postColumns,
		id, patch.Author, patch.Title, patch.Content,
	)
	updated, err := scanPost(row)
	if err != nil {
		return domain.Post{}, s.classify("update", id, err)
	}
	return updated, nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	queryCtx, cancel := s.pool.queryCtx(ctx)
	defer cancel()

	tag, err := s.pool.conn.Exec(queryCtx, "DELETE FROM posts WHERE id = $1", id)
	if err != nil {
		return apperr.NewStore("delete", fmt.Errorf("failed to delete post: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return apperr.NewNotFound(domain.PostResource, id)
	}
	return nil
}

func (s *Store) classify(op string, id int64, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NewNotFound(domain.PostResource, id)
	}
	return apperr.NewStore(op, err)
}

func scanPost(row pgx.Row) (domain.Post, error) {
	var p domain.Post
	err := row.Scan(
		&p.ID,
		&p.Author,
		&p.Title,
		&p.Content,
		&p.LikeCount,
		&p.CommentCount,
		&p.CreatedAt,
	)
	return p, err
}

var _ storage.Store = (*Store)(nil)
