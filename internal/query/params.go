package query

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"amabackend/internal/domain"

	"github.com/go-playground/validator/v10"
)

// Params is the client supplied list query: paging, per column filters and
// per column sort directions for one resource.
type Params[F, O ColumnSet] struct {
	Page       *uint64     `json:"page,omitempty" validate:"omitempty,min=1,max=92233720368547759"`
	Limit      *uint64     `json:"limit,omitempty" validate:"omitempty,min=2,max=100"`
	Filter     *F          `json:"filter,omitempty"`
	FilterType *FilterType `json:"filter_type,omitempty"`
	Meta       any         `json:"meta,omitempty"`
	Order      *O          `json:"order,omitempty"`
}

// Offset returns the row offset of the requested page for limit.
func (p *Params[F, O]) Offset(limit uint64) uint64 {
	page := uint64(1)
	if p != nil && p.Page != nil && *p.Page > 0 {
		page = *p.Page
	}
	return limit * (page - 1)
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func paramsValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Validate checks the request-level bounds: page in [1,MaxPage] and limit
// in [2,100].
// The compiler does not repeat the lower limit check.
func (p *Params[F, O]) Validate() error {
	if p == nil {
		return nil
	}
	err := paramsValidator().Struct(p)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return domain.ValidationError{Msg: err.Error(), Err: err}
	}
	fe := verrs[0]
	msg := fmt.Sprintf("failed %s validation", fe.Tag())
	switch fe.Field() {
	case "page":
		msg = "must be at least 1"
		if fe.Tag() == "max" {
			msg = fmt.Sprintf("must be at most %d", MaxPage)
		}
	case "limit":
		msg = "must be between 2 and 100"
	}
	return domain.ValidationError{Field: fe.Field(), Msg: msg, Err: err}
}
