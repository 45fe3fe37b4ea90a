package pagination

// BoundKind is the exclusive id constraint of a range query
type BoundKind int

const (
	BoundNone BoundKind = iota
	BoundLessThan
	BoundMoreThan
)

func (k BoundKind) String() string {
	switch k {
	case BoundLessThan:
		return "id <"
	case BoundMoreThan:
		return "id >"
	default:
		return "none"
	}
}

// SortCreatedAt is the only sort key the listing supports
const SortCreatedAt = "createdAt"

// Sort describes the ordering of a range query. Stores break createdAt ties by id
// in the same direction, so the order is total.
type Sort struct {
	Field string
	Order Order
}

// RangeQuery is the store-facing form of Params: a predicate on id, a sort and a limit.
type RangeQuery struct {
	Bound BoundKind
	ID    int64
	Sort  Sort
	Limit int
}

// BuildRangeQuery converts validated params into a range query.
// LessThan is checked first, so it wins when both bounds are present.
func BuildRangeQuery(p Params) RangeQuery {
	q := RangeQuery{
		Bound: BoundNone,
		Sort:  Sort{Field: SortCreatedAt, Order: p.Order},
		Limit: p.Take,
	}

	switch {
	case p.LessThan != nil:
		q.Bound = BoundLessThan
		q.ID = *p.LessThan
	case p.MoreThan != nil:
		q.Bound = BoundMoreThan
		q.ID = *p.MoreThan
	}

	return q
}

// Matches reports whether id satisfies the query predicate.
func (q RangeQuery) Matches(id int64) bool {
	switch q.Bound {
	case BoundLessThan:
		return id < q.ID
	case BoundMoreThan:
		return id > q.ID
	default:
		return true
	}
}

func (q RangeQuery) Descending() bool {
	return q.Sort.Order == OrderDesc
}
