package pg

import (
	"testing"

	"github.com/DjordjeVuckovic/posts-feed/pkg/pagination"
	"github.com/stretchr/testify/assert"
)

func TestBuildRangeSQL(t *testing.T) {
	tests := []struct {
		name     string
		q        pagination.RangeQuery
		wantSQL  string
		wantArgs []interface{}
	}{
		{
			name:     "unbounded ascending",
			q:        pagination.RangeQuery{Sort: pagination.Sort{Order: pagination.OrderAsc}, Limit: 20},
			wantSQL:  "SELECT " + postColumns + " FROM posts ORDER BY created_at ASC, id ASC LIMIT $1",
			wantArgs: []interface{}{20},
		},
		{
			name:     "less than descending",
			q:        pagination.RangeQuery{Bound: pagination.BoundLessThan, ID: 16, Sort: pagination.Sort{Order: pagination.OrderDesc}, Limit: 10},
			wantSQL:  "SELECT " + postColumns + " FROM posts WHERE id < $1 ORDER BY created_at DESC, id DESC LIMIT $2",
			wantArgs: []interface{}{int64(16), 10},
		},
		{
			name:     "more than ascending",
			q:        pagination.RangeQuery{Bound: pagination.BoundMoreThan, ID: 20, Sort: pagination.Sort{Order: pagination.OrderAsc}, Limit: 20},
			wantSQL:  "SELECT " + postColumns + " FROM posts WHERE id > $1 ORDER BY created_at ASC, id ASC LIMIT $2",
			wantArgs: []interface{}{int64(20), 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := buildRangeSQL(tt.q)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
