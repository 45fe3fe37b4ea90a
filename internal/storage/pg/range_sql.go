package pg

import (
	"fmt"

	"github.com/DjordjeVuckovic/posts-feed/pkg/pagination"
)

const postColumns = "id, author, title, content, like_count, comment_count, created_at"

// buildRangeSQL renders a range query as one SELECT. The statement runs as a single
// snapshot; created_at ties are broken by id in the same direction.
func buildRangeSQL(q pagination.RangeQuery) (string, []interface{}) {
	dir := "ASC"
	if q.Descending() {
		dir = "DESC"
	}

	var where string
	var args []interface{}
	switch q.Bound {
	case pagination.BoundLessThan:
		where = "WHERE id < $1"
		args = append(args, q.ID)
	case pagination.BoundMoreThan:
		where = "WHERE id > $1"
		args = append(args, q.ID)
	}

	args = append(args, q.Limit)
	limit := fmt.Sprintf("$%d", len(args))

	sql := "SELECT " + postColumns + " FROM posts"
	if where != "" {
		sql += " " + where
	}
	sql += fmt.Sprintf(" ORDER BY created_at %s, id %s LIMIT %s", dir, dir, limit)

	return sql, args
}
