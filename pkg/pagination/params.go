package pagination

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/posts-feed/internal/apperr"
)

type Order string

const (
	OrderAsc  Order = "ASC"
	OrderDesc Order = "DESC"
)

func (o Order) Valid() bool {
	return o == OrderAsc || o == OrderDesc
}

// Params represents a validated id-cursor pagination request
type Params struct {
	LessThan *int64 `json:"where__id_less_than,omitempty" query:"where__id_less_than"`
	MoreThan *int64 `json:"where__id_more_than,omitempty" query:"where__id_more_than"`
	Order    Order  `json:"order__createdAt" query:"order__createdAt"`
	Take     int    `json:"take" query:"take"`
}

// ParseParams parses raw query values into Params, applying the ASC order and
// TakeDefault defaults. Values are parsed once here; nothing downstream re-coerces them.
func ParseParams(values url.Values) (Params, error) {
	p := Params{
		Order: OrderAsc,
		Take:  TakeDefault,
	}

	var err error
	if p.LessThan, err = parseBound(values, ParamLessThan); err != nil {
		return Params{}, err
	}
	if p.MoreThan, err = parseBound(values, ParamMoreThan); err != nil {
		return Params{}, err
	}

	if raw := strings.TrimSpace(values.Get(ParamOrder)); raw != "" {
		p.Order = Order(raw)
	}
	if raw := strings.TrimSpace(values.Get(ParamTake)); raw != "" {
		take, err := strconv.Atoi(raw)
		if err != nil {
			return Params{}, apperr.NewValidationWrap(ParamTake+" must be a positive integer", err)
		}
		p.Take = take
	}

	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Validate checks order and take, which must lie in [1, TakeMax]. Both bounds may be set;
// LessThan then takes precedence.
func (p Params) Validate() error {
	if !p.Order.Valid() {
		return apperr.NewValidation(ParamOrder + " must be one of ASC, DESC")
	}
	if p.Take <= 0 {
		return apperr.NewValidation(ParamTake + " must be a positive integer")
	}
	if p.Take > TakeMax {
		return apperr.NewValidation(fmt.Sprintf("%s must not exceed %d", ParamTake, TakeMax))
	}
	return nil
}

func parseBound(values url.Values, name string) (*int64, error) {
	raw := strings.TrimSpace(values.Get(name))
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, apperr.NewValidationWrap(name+" must be an integer", err)
	}
	return &v, nil
}
