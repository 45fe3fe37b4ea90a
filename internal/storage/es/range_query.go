package es

import (
	"fmt"

	"github.com/DjordjeVuckovic/posts-feed/internal/apperr"
	"github.com/DjordjeVuckovic/posts-feed/pkg/pagination"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
)

// maxExactBound is the largest id a range bound can carry. The typed client serializes
// query numbers as float64, so larger bounds would be rounded before the comparison.
const maxExactBound = 1 << 53

// buildRangeQuery maps the id predicate onto a range query, or match_all for a first page.
func buildRangeQuery(q pagination.RangeQuery) *types.Query {
	bound := types.Float64(q.ID)

	switch q.Bound {
	case pagination.BoundLessThan:
		return &types.Query{
			Range: map[string]types.RangeQuery{
				"id": types.NumberRangeQuery{Lt: &bound},
			},
		}
	case pagination.BoundMoreThan:
		return &types.Query{
			Range: map[string]types.RangeQuery{
				"id": types.NumberRangeQuery{Gt: &bound},
			},
		}
	default:
		return &types.Query{MatchAll: &types.MatchAllQuery{}}
	}
}

func checkBound(q pagination.RangeQuery) error {
	if q.Bound == pagination.BoundNone {
		return nil
	}
	if q.ID > maxExactBound || q.ID < -maxExactBound {
		return apperr.NewValidation(fmt.Sprintf("id bound %d is outside the range this backend compares exactly (±%d)", q.ID, int64(maxExactBound)))
	}
	return nil
}

// buildSort orders by created_at, then id, both in the requested direction.
func buildSort(q pagination.RangeQuery) (byCreatedAt *types.SortOptions, byID *types.SortOptions) {
	order := sortorder.Asc
	if q.Descending() {
		order = sortorder.Desc
	}

	byCreatedAt = &types.SortOptions{
		SortOptions: map[string]types.FieldSort{
			"created_at": {Order: &order},
		},
	}
	byID = &types.SortOptions{
		SortOptions: map[string]types.FieldSort{
			"id": {Order: &order},
		},
	}
	return byCreatedAt, byID
}
