package pagination

// Cursor carries the id of the last item of a page
type Cursor struct {
	After *int64 `json:"after"`
}

// CursorResult is the page envelope returned by the listing endpoint.
// Generic type T allows reuse across different entity types
type CursorResult[T any] struct {
	Data   []T     `json:"data"`
	Cursor Cursor  `json:"cursor"`
	Count  int     `json:"count"`
	Next   *string `json:"next"`
}

// NewCursorResult creates the envelope for one page of items.
// idFn extracts the id of an item; the id of the last item becomes Cursor.After.
// next is the already built next link, or nil.
func NewCursorResult[T any](items []T, idFn func(T) int64, next *string) *CursorResult[T] {
	if items == nil {
		items = make([]T, 0)
	}

	result := &CursorResult[T]{
		Data:  items,
		Count: len(items),
		Next:  next,
	}

	if len(items) > 0 {
		after := idFn(items[len(items)-1])
		result.Cursor.After = &after
	}

	return result
}
