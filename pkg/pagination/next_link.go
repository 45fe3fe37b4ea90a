package pagination

import (
	"net/url"
	"strconv"
	"strings"
)

// NextLink builds the absolute URL of the page after one that ended at lastID.
//
// A page shorter than p.Take is taken as the end of the range and yields nil. This is
// best-effort: concurrent writes can make a full page the last one, or extend a range
// that looked exhausted.
//
// The link keeps the literal values of the pass-through params found in raw, drops both
// bounds, and adds the bound that continues in the current direction: more_than for ASC,
// less_than for DESC.
func NextLink(base *url.URL, raw url.Values, p Params, pageLen int, lastID int64) *string {
	if base == nil || pageLen < p.Take || pageLen == 0 {
		return nil
	}

	var qs strings.Builder
	write := func(key, value string) {
		if qs.Len() > 0 {
			qs.WriteByte('&')
		}
		qs.WriteString(url.QueryEscape(key))
		qs.WriteByte('=')
		qs.WriteString(url.QueryEscape(value))
	}

	for _, key := range passThroughParams {
		if vs, ok := raw[key]; ok && len(vs) > 0 {
			write(key, vs[0])
		}
	}

	bound := ParamMoreThan
	if p.Order == OrderDesc {
		bound = ParamLessThan
	}
	write(bound, strconv.FormatInt(lastID, 10))

	next := *base
	next.RawQuery = qs.String()
	next.Fragment = ""
	link := next.String()
	return &link
}
