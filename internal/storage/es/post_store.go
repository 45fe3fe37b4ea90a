package es

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/DjordjeVuckovic/posts-feed/internal/apperr"
	"github.com/DjordjeVuckovic/posts-feed/internal/domain"
	"github.com/DjordjeVuckovic/posts-feed/internal/storage"
	"github.com/DjordjeVuckovic/posts-feed/pkg/pagination"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/optype"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/refresh"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"github.com/google/uuid"
)

// Store keeps posts in one index. Elasticsearch has no sequences, so ids are allocated
// here from the highest indexed id; a single writer process per index is assumed.
// Documents are created with op_type=create, so a clashing writer fails instead of
// overwriting. idLock is held from allocation until the refreshed documents are
// searchable, so posts become visible in id order.
type Store struct {
	client    *elasticsearch.TypedClient
	indexName string

	idLock        sync.Mutex
	idLoaded      bool
	lastID        int64
	lastCreatedAt time.Time
}

func NewStore(ctx context.Context, config ClientConfig) (*Store, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	s := &Store{
		client:    client,
		indexName: config.IndexName,
	}

	if err := s.EnsureIndex(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure index exists: %w", err)
	}

	return s, nil
}

func (s *Store) Query(ctx context.Context, q pagination.RangeQuery) ([]domain.Post, error) {
	if err := checkBound(q); err != nil {
		return nil, err
	}
	slog.Debug("Executing es range query", "bound", q.Bound.String(), "id", q.ID, "order", q.Sort.Order, "limit", q.Limit)

	byCreatedAt, byID := buildSort(q)
	res, err := s.client.Search().
		Index(s.indexName).
		Query(buildRangeQuery(q)).
		Sort(byCreatedAt, byID).
		Size(q.Limit).
		Do(ctx)
	if err != nil {
		return nil, apperr.NewStore("query", fmt.Errorf("failed to execute search: %w", err))
	}

	posts, err := decodeHits(res.Hits.Hits)
	if err != nil {
		return nil, apperr.NewStore("query", err)
	}
	return posts, nil
}

func (s *Store) Get(ctx context.Context, id int64) (domain.Post, error) {
	res, err := s.client.Get(s.indexName, docID(id)).Do(ctx)
	if err != nil {
		if isNotFound(err) {
			return domain.Post{}, apperr.NewNotFound(domain.PostResource, id)
		}
		return domain.Post{}, apperr.NewStore("get", fmt.Errorf("failed to get document: %w", err))
	}
	if !res.Found {
		return domain.Post{}, apperr.NewNotFound(domain.PostResource, id)
	}

	var doc PostDocument
	if err := json.Unmarshal(res.Source_, &doc); err != nil {
		return domain.Post{}, apperr.NewStore("get", fmt.Errorf("failed to unmarshal document: %w", err))
	}
	return doc.toDomain(), nil
}

func (s *Store) Create(ctx context.Context, post domain.NewPost) (domain.Post, error) {
	s.idLock.Lock()
	defer s.idLock.Unlock()

	created, err := s.allocateLocked(ctx, []domain.NewPost{post})
	if err != nil {
		return domain.Post{}, err
	}

	doc := toDocument(created[0])
	_, err = s.client.Index(s.indexName).
		Id(docID(doc.ID)).
		OpType(optype.Create).
		Document(doc).
		Refresh(refresh.True).
		Do(ctx)
	if err != nil {
		return domain.Post{}, apperr.NewStore("create", fmt.Errorf("failed to index document: %w", err))
	}

	slog.Debug("Post indexed", "id", doc.ID, "index", s.indexName)
	return created[0], nil
}

func (s *Store) CreateBulk(ctx context.Context, posts []domain.NewPost) (int, error) {
	if len(posts) == 0 {
		return 0, nil
	}

	s.idLock.Lock()
	defer s.idLock.Unlock()

	created, err := s.allocateLocked(ctx, posts)
	if err != nil {
		return 0, err
	}

	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:         s.indexName,
		Client:        s.client,
		NumWorkers:    4,
		FlushBytes:    5e+6, // 5MB
		FlushInterval: 30 * time.Second,
		Refresh:       "true",
	})
	if err != nil {
		return 0, apperr.NewStore("create_bulk", fmt.Errorf("failed to create bulk indexer: %w", err))
	}

	batchID := uuid.NewString()

	// successful and failed are written by the indexer's workers, which may still be
	// running after Close returns on a cancelled context. notAdded is caller-local.
	var mu sync.Mutex
	var successful, failed int
	notAdded := 0
	counts := func() (int, int) {
		mu.Lock()
		defer mu.Unlock()
		return successful, failed
	}

	for _, post := range created {
		doc := toDocument(post)
		docBytes, err := json.Marshal(doc)
		if err != nil {
			notAdded++
			slog.Error("failed to marshal document", "error", err, "id", doc.ID, "batch", batchID)
			continue
		}

		err = bi.Add(ctx, esutil.BulkIndexerItem{
			Action:     "create",
			DocumentID: docID(doc.ID),
			Body:       bytes.NewReader(docBytes),
			OnSuccess: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem) {
				mu.Lock()
				successful++
				mu.Unlock()
			},
			OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
				mu.Lock()
				failed++
				mu.Unlock()
				if err != nil {
					slog.Error("bulk index error", "error", err, "id", item.DocumentID, "batch", batchID)
				} else {
					slog.Error("bulk index error", "status", res.Status, "error", res.Error.Type, "reason", res.Error.Reason, "id", item.DocumentID, "batch", batchID)
				}
			},
		})
		if err != nil {
			notAdded++
			slog.Error("failed to add document to bulk indexer", "error", err, "id", doc.ID, "batch", batchID)
		}
	}

	if err := bi.Close(ctx); err != nil {
		ok, _ := counts()
		return ok, apperr.NewStore("create_bulk", fmt.Errorf("failed to close bulk indexer: %w", err))
	}

	ok, bad := counts()
	bad += notAdded

	slog.Info("Bulk indexing completed",
		"batch", batchID,
		"successful", ok,
		"failed", bad,
		"total", len(posts),
		"index", s.indexName)

	if bad > 0 {
		return ok, apperr.NewStore("create_bulk", fmt.Errorf("failed to index %d out of %d posts", bad, len(posts)))
	}
	return ok, nil
}

func (s *Store) Update(ctx context.Context, id int64, patch domain.PostPatch) (domain.Post, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return domain.Post{}, err
	}

	patch.Apply(&post)

	_, err = s.client.Index(s.indexName).
		Id(docID(id)).
		Document(toDocument(post)).
		Refresh(refresh.True).
		Do(ctx)
	if err != nil {
		return domain.Post{}, apperr.NewStore("update", fmt.Errorf("failed to reindex document: %w", err))
	}
	return post, nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	exists, err := s.client.Exists(s.indexName, docID(id)).Do(ctx)
	if err != nil {
		return apperr.NewStore("delete", fmt.Errorf("failed to check document: %w", err))
	}
	if !exists {
		return apperr.NewNotFound(domain.PostResource, id)
	}

	_, err = s.client.Delete(s.indexName, docID(id)).Refresh(refresh.True).Do(ctx)
	if err != nil {
		if isNotFound(err) {
			return apperr.NewNotFound(domain.PostResource, id)
		}
		return apperr.NewStore("delete", fmt.Errorf("failed to delete document: %w", err))
	}
	return nil
}

func (s *Store) EnsureIndex(ctx context.Context) error {
	exists, err := s.client.Indices.Exists(s.indexName).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check if index exists: %w", err)
	}

	if exists {
		slog.Info("Index already exists", "index", s.indexName)
		return nil
	}

	createRes, err := s.client.Indices.Create(s.indexName).
		Mappings(postMappings()).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	if !createRes.Acknowledged {
		return fmt.Errorf("index creation was not acknowledged")
	}

	slog.Info("Index created successfully", "index", s.indexName)
	return nil
}

// allocateLocked assigns consecutive ids and non-decreasing createdAt values to posts.
// The caller holds idLock.
func (s *Store) allocateLocked(ctx context.Context, posts []domain.NewPost) ([]domain.Post, error) {
	if !s.idLoaded {
		last, err := s.loadLast(ctx)
		if err != nil {
			return nil, apperr.NewStore("allocate_id", err)
		}
		s.lastID = last.ID
		s.lastCreatedAt = last.CreatedAt
		s.idLoaded = true
	}

	createdAt := time.Now().UTC()
	if createdAt.Before(s.lastCreatedAt) {
		createdAt = s.lastCreatedAt
	}

	out := make([]domain.Post, len(posts))
	for i, p := range posts {
		s.lastID++
		out[i] = domain.Post{
			ID:        s.lastID,
			Author:    p.Author,
			Title:     p.Title,
			Content:   p.Content,
			CreatedAt: createdAt,
		}
	}
	s.lastCreatedAt = createdAt
	return out, nil
}

func (s *Store) loadLast(ctx context.Context) (domain.Post, error) {
	desc := sortorder.Desc
	res, err := s.client.Search().
		Index(s.indexName).
		Query(&types.Query{MatchAll: &types.MatchAllQuery{}}).
		Sort(&types.SortOptions{
			SortOptions: map[string]types.FieldSort{
				"id": {Order: &desc},
			},
		}).
		Size(1).
		Do(ctx)
	if err != nil {
		return domain.Post{}, fmt.Errorf("failed to load last id: %w", err)
	}

	posts, err := decodeHits(res.Hits.Hits)
	if err != nil || len(posts) == 0 {
		return domain.Post{}, err
	}
	return posts[0], nil
}

func decodeHits(hits []types.Hit) ([]domain.Post, error) {
	posts := make([]domain.Post, 0, len(hits))
	for _, hit := range hits {
		var doc PostDocument
		if err := json.Unmarshal(hit.Source_, &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal document: %w", err)
		}
		posts = append(posts, doc.toDomain())
	}
	return posts, nil
}

func isNotFound(err error) bool {
	var esErr *types.ElasticsearchError
	return errors.As(err, &esErr) && esErr.Status == http.StatusNotFound
}

func docID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// Healthy pings the cluster.
func (s *Store) Healthy(ctx context.Context) bool {
	ok, err := s.client.Ping().IsSuccess(ctx)
	if err != nil {
		slog.Warn("Elasticsearch health check failed", "error", err)
		return false
	}
	return ok
}

var _ storage.Store = (*Store)(nil)
