package es

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/posts-feed/internal/apperr"
	"github.com/DjordjeVuckovic/posts-feed/internal/domain"
	"github.com/DjordjeVuckovic/posts-feed/pkg/pagination"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRangeQuery(t *testing.T) {
	tests := []struct {
		name string
		q    pagination.RangeQuery
		want string
	}{
		{
			name: "first page",
			q:    pagination.RangeQuery{Bound: pagination.BoundNone},
			want: `{"match_all":{}}`,
		},
		{
			name: "less than",
			q:    pagination.RangeQuery{Bound: pagination.BoundLessThan, ID: 16},
			want: `{"range":{"id":{"lt":16}}}`,
		},
		{
			name: "more than",
			q:    pagination.RangeQuery{Bound: pagination.BoundMoreThan, ID: 20},
			want: `{"range":{"id":{"gt":20}}}`,
		},
		{
			name: "largest exact bound",
			q:    pagination.RangeQuery{Bound: pagination.BoundLessThan, ID: maxExactBound},
			want: `{"range":{"id":{"lt":9007199254740992}}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(buildRangeQuery(tt.q))
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(b))
		})
	}
}

func TestBuildSort(t *testing.T) {
	byCreatedAt, byID := buildSort(pagination.RangeQuery{Sort: pagination.Sort{Order: pagination.OrderDesc}})

	b, err := json.Marshal([]*types.SortOptions{byCreatedAt, byID})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"created_at":{"order":"desc"}},{"id":{"order":"desc"}}]`, string(b))

	byCreatedAt, byID = buildSort(pagination.RangeQuery{Sort: pagination.Sort{Order: pagination.OrderAsc}})
	b, err = json.Marshal([]*types.SortOptions{byCreatedAt, byID})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"created_at":{"order":"asc"}},{"id":{"order":"asc"}}]`, string(b))
}

func TestPostDocument_RoundTripsDomain(t *testing.T) {
	post := domain.Post{
		ID:           7,
		Author:       "newjeans_official",
		Title:        "minji",
		Content:      "makeup",
		LikeCount:    3,
		CommentCount: 1,
		CreatedAt:    time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}

	doc := toDocument(post)
	assert.Equal(t, int64(7), doc.ID)
	assert.False(t, doc.IndexedAt.IsZero())
	assert.Equal(t, post, doc.toDomain())
}

func TestDecodeHits(t *testing.T) {
	hits := []types.Hit{
		{Source_: json.RawMessage(`{"id":2,"author":"a","title":"t","content":"c","like_count":0,"comment_count":0,"created_at":"2024-01-01T00:00:00Z"}`)},
		{Source_: json.RawMessage(`{"id":1,"author":"a","title":"t","content":"c","like_count":0,"comment_count":0,"created_at":"2024-01-01T00:00:00Z"}`)},
	}

	posts, err := decodeHits(hits)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, int64(2), posts[0].ID)
	assert.Equal(t, int64(1), posts[1].ID)

	_, err = decodeHits([]types.Hit{{Source_: json.RawMessage(`not json`)}})
	assert.Error(t, err)
}

func TestStore_QueryRejectsInexactBound(t *testing.T) {
	tests := []struct {
		name string
		q    pagination.RangeQuery
	}{
		{name: "more than above 2^53", q: pagination.RangeQuery{Bound: pagination.BoundMoreThan, ID: 9007199254740993, Limit: 20}},
		{name: "less than below -2^53", q: pagination.RangeQuery{Bound: pagination.BoundLessThan, ID: -9007199254740993, Limit: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// rejected before any request is made, so no client is needed
			_, err := (&Store{}).Query(context.Background(), tt.q)

			var ve *apperr.ValidationError
			require.True(t, errors.As(err, &ve), "expected ValidationError, got %v", err)
			assert.Contains(t, ve.Message, "9007199254740993")
		})
	}
}

func TestCheckBound(t *testing.T) {
	assert.NoError(t, checkBound(pagination.RangeQuery{Bound: pagination.BoundNone, ID: 1 << 62}))
	assert.NoError(t, checkBound(pagination.RangeQuery{Bound: pagination.BoundMoreThan, ID: maxExactBound}))
	assert.NoError(t, checkBound(pagination.RangeQuery{Bound: pagination.BoundLessThan, ID: -maxExactBound}))
	assert.Error(t, checkBound(pagination.RangeQuery{Bound: pagination.BoundLessThan, ID: maxExactBound + 1}))
}
