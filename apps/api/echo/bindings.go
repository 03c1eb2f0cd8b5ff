package echoapi

import (
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rpeck07/StudentoS/core"
	"github.com/rpeck07/StudentoS/core/engine"
)

const orderingParam = "ordering"

var nowFunc = time.Now // mockable

type Ordering struct {
	Orderings []core.Ordering
}

func (ord *Ordering) Bind(ctx echo.Context) {
	ord.Orderings = core.ParseOrderings(ctx.QueryParam(orderingParam))
}

// queryParams reads optional query parameters, collecting the invalid ones.
type queryParams struct {
	ctx    echo.Context
	fields []core.FieldError
}

func newQueryParams(ctx echo.Context) *queryParams {
	return &queryParams{ctx: ctx}
}

func (q *queryParams) value(name string) (string, bool) {
	v := strings.TrimSpace(q.ctx.QueryParam(name))
	return v, v != ""
}

// today reads ?today=YYYY-MM-DD, defaulting to the server's local date.
func (q *queryParams) today() time.Time {
	v, ok := q.value("today")
	if !ok {
		return engine.Day(nowFunc())
	}
	d, err := engine.ParseDate(v)
	if err != nil {
		q.fields = append(q.fields, core.FieldError{Field: "today", Error: "must be a date formatted as YYYY-MM-DD"})
	}
	return d
}

func (q *queryParams) intParam(name string, def, min int) int {
	v, ok := q.value(name)
	if !ok {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil || i < min {
		q.fields = append(q.fields, core.FieldError{Field: name, Error: "must be an integer >= " + strconv.Itoa(min)})
		return def
	}
	return i
}

func (q *queryParams) floatPtrParam(name string) *float64 {
	v, ok := q.value(name)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		q.fields = append(q.fields, core.FieldError{Field: name, Error: "must be a number"})
		return nil
	}
	return &f
}

func (q *queryParams) floatParam(name string, def float64) float64 {
	if f := q.floatPtrParam(name); f != nil {
		return *f
	}
	return def
}

func (q *queryParams) err() error {
	if len(q.fields) > 0 {
		return core.NewValidationError(nil, q.fields...)
	}
	return nil
}
