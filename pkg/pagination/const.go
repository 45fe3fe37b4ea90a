package pagination

// TakeDefault is the page size used when take is not specified
const TakeDefault = 20

// TakeMax is the largest accepted page size. It matches Elasticsearch's default
// index.max_result_window.
const TakeMax = 10_000

// Query parameter names understood by the listing endpoint
const (
	ParamLessThan = "where__id_less_than"
	ParamMoreThan = "where__id_more_than"
	ParamOrder    = "order__createdAt"
	ParamTake     = "take"
)

// passThroughParams lists, in serialization order, the request parameters copied
// verbatim into a next link. Bounds are never copied; they are recomputed.
var passThroughParams = []string{ParamOrder, ParamTake}
