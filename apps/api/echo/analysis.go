package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/rpeck07/StudentoS/core"
	"github.com/rpeck07/StudentoS/core/assignment"
	"github.com/rpeck07/StudentoS/core/engine"
	"github.com/rpeck07/StudentoS/core/user"
)

type analysisApi struct {
	svc      *assignment.Service
	defaults core.EngineConfig
}

func registerAnalysisAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	auth *authenticator,
	usrSvc *user.Service,
	svc *assignment.Service,
	defaults core.EngineConfig,
) {
	api := analysisApi{svc: svc, defaults: defaults}

	ag := g.Group("", jwt, auth.contextUserMiddleware(usrSvc))
	ag.GET("/dashboard", api.dashboard)
	ag.GET("/rankings", api.rankings)
	ag.GET("/forecast", api.forecast)
	ag.GET("/workload", api.workload)
	ag.GET("/estimate", api.estimate)
	ag.GET("/assignments/:id/urgency", api.urgency)
	ag.GET("/assignments/:id/gpa-impact", api.gpaImpact)
}

// Handlers

func (api *analysisApi) dashboard(ctx echo.Context) error {
	q := newQueryParams(ctx)
	params := assignment.DashboardParams{
		Today:          q.today(),
		CurrentGrade:   q.floatParam("current_grade", api.defaults.CurrentGrade),
		WorkloadWindow: api.defaults.WorkloadWindow,
	}
	if err := q.err(); err != nil {
		return err
	}

	d, err := api.svc.Dashboard(ctx.Request().Context(), ctxUser(ctx).ID, params)
	if err != nil {
		return errors.Wrap(err, "building dashboard")
	}
	return ctx.JSON(http.StatusOK, d)
}

func (api *analysisApi) rankings(ctx echo.Context) error {
	q := newQueryParams(ctx)
	today := q.today()
	if err := q.err(); err != nil {
		return err
	}
	by := ctx.QueryParam("by")
	if by == "" {
		by = assignment.RankByDanger
	}

	ranked, err := api.svc.Rankings(ctx.Request().Context(), ctxUser(ctx).ID, today, by)
	if err != nil {
		return errors.Wrap(err, "ranking assignments")
	}
	return ctx.JSON(http.StatusOK, ranked)
}

func (api *analysisApi) forecast(ctx echo.Context) error {
	q := newQueryParams(ctx)
	today := q.today()
	window := q.intParam("window", api.defaults.StressWindow, 0)
	if err := q.err(); err != nil {
		return err
	}

	f, err := api.svc.Forecast(ctx.Request().Context(), ctxUser(ctx).ID, today, window)
	if err != nil {
		return errors.Wrap(err, "forecasting")
	}
	return ctx.JSON(http.StatusOK, f)
}

func (api *analysisApi) workload(ctx echo.Context) error {
	q := newQueryParams(ctx)
	today := q.today()
	days := q.intParam("days", api.defaults.ProjectionDays, 0)
	blocks := q.intParam("blocks_per_hour", api.defaults.BlocksPerHour, 1)
	if err := q.err(); err != nil {
		return err
	}

	w, err := api.svc.Workload(ctx.Request().Context(), ctxUser(ctx).ID, today, days, blocks)
	if err != nil {
		return errors.Wrap(err, "projecting workload")
	}
	return ctx.JSON(http.StatusOK, w)
}

func (api *analysisApi) urgency(ctx echo.Context) error {
	q := newQueryParams(ctx)
	today := q.today()
	maxDelay := q.intParam("max_delay", api.defaults.CurveMaxDelay, 0)
	threshold := q.floatParam("threshold", api.defaults.CrunchThreshold)
	if err := q.err(); err != nil {
		return err
	}

	u, err := api.svc.Urgency(ctx.Request().Context(), ctxUser(ctx).ID, ctx.Param("id"), today, maxDelay, threshold)
	if err != nil {
		return errors.Wrap(err, "scoring urgency")
	}
	return ctx.JSON(http.StatusOK, u)
}

func (api *analysisApi) gpaImpact(ctx echo.Context) error {
	q := newQueryParams(ctx)
	current := q.floatParam("current_grade", api.defaults.CurrentGrade)
	predicted := q.floatPtrParam("predicted_score")
	if err := q.err(); err != nil {
		return err
	}

	impact, err := api.svc.GPAImpact(ctx.Request().Context(), ctxUser(ctx).ID, ctx.Param("id"), current, predicted)
	if err != nil {
		return errors.Wrap(err, "estimating gpa impact")
	}
	return ctx.JSON(http.StatusOK, impact)
}

// EstimateResponse is the suggested prep time for an assessment kind.
type EstimateResponse struct {
	Type           string  `json:"type"`
	Confidence     int     `json:"confidence"`
	EstimatedHours float64 `json:"estimated_hours"`
}

func (api *analysisApi) estimate(ctx echo.Context) error {
	q := newQueryParams(ctx)
	confidence := q.intParam("confidence", assignment.DefaultConfidence, 1)
	if err := q.err(); err != nil {
		return err
	}
	kind := ctx.QueryParam("type")
	if kind == "" {
		kind = engine.KindTest
	}

	return ctx.JSON(http.StatusOK, EstimateResponse{
		Type:           kind,
		Confidence:     confidence,
		EstimatedHours: engine.SuggestEstimatedHours(kind, confidence),
	})
}
