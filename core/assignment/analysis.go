package assignment

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/rpeck07/StudentoS/core"
	"github.com/rpeck07/StudentoS/core/engine"
)

const noAssignmentsMessage = "No assignments yet."

// Ranking kinds
const (
	RankByDanger = "danger"
	RankByRisk   = "risk"
)

type (
	// Dashboard is the home screen payload of one user.
	Dashboard struct {
		HasAssignments    bool                        `json:"has_assignments"`
		Top               []engine.DashboardItem      `json:"top"`
		Headlines         []string                    `json:"headlines"`
		StressForecast    engine.StressForecastResult `json:"stress_forecast"`
		GPAImpacts        []engine.GPAImpact          `json:"gpa_impacts"`
		WorkloadNext3Days engine.HoursWindow          `json:"workload_next_3_days"`
	}

	DashboardParams struct {
		Today          time.Time
		CurrentGrade   float64
		WorkloadWindow int
	}

	Forecast struct {
		Stress engine.StressForecastResult `json:"stress"`
		Crunch engine.CrunchForecastResult `json:"crunch"`
	}

	Workload struct {
		engine.HoursWindow
		Bars []string `json:"bars"`
	}

	Urgency struct {
		Assignment Assignment             `json:"assignment"`
		Risk       engine.RiskResult      `json:"risk"`
		Curve      []engine.UrgencyResult `json:"curve"`
		StartBy    engine.StartByResult   `json:"start_by"`
	}
)

// Load returns the owner's well-formed assignments in engine form.
func (svc *Service) Load(ctx context.Context, owner string) ([]engine.Assignment, error) {
	items, err := svc.repo.ReadAll(ctx, owner)
	if err != nil {
		return nil, errors.Wrap(err, "reading assignments")
	}
	return ToEngine(items), nil
}

func (svc *Service) Dashboard(ctx context.Context, owner string, p DashboardParams) (Dashboard, error) {
	as, err := svc.Load(ctx, owner)
	if err != nil {
		return Dashboard{}, err
	}

	if len(as) == 0 {
		return Dashboard{
			Top:       []engine.DashboardItem{},
			Headlines: []string{},
			StressForecast: engine.StressForecastResult{
				WindowDays:    engine.DefaultStressWindow,
				HighRiskNames: []string{},
				Message:       noAssignmentsMessage,
			},
			GPAImpacts:        []engine.GPAImpact{},
			WorkloadNext3Days: engine.HoursWindow{WindowDays: p.WorkloadWindow, Days: []engine.WorkloadDay{}},
		}, nil
	}

	summary := engine.DashboardSummary(as, p.Today)
	return Dashboard{
		HasAssignments:    true,
		Top:               summary.Top,
		Headlines:         summary.Headlines,
		StressForecast:    summary.StressForecast,
		GPAImpacts:        engine.GPAImpactEstimates(as, p.CurrentGrade),
		WorkloadNext3Days: engine.HoursNextDays(as, p.Today, p.WorkloadWindow),
	}, nil
}

// Rankings returns engine.DangerResult or engine.RiskResult records, most pressing first.
func (svc *Service) Rankings(ctx context.Context, owner string, today time.Time, by string) (interface{}, error) {
	if by != RankByDanger && by != RankByRisk {
		return nil, core.NewValidationError(nil, core.FieldError{Field: "by", Error: "must be one of danger, risk"})
	}
	as, err := svc.Load(ctx, owner)
	if err != nil {
		return nil, err
	}
	if by == RankByRisk {
		return engine.RankByRisk(as, today), nil
	}
	return engine.RankByDanger(as, today), nil
}

func (svc *Service) Forecast(ctx context.Context, owner string, today time.Time, windowDays int) (Forecast, error) {
	as, err := svc.Load(ctx, owner)
	if err != nil {
		return Forecast{}, err
	}
	return Forecast{
		Stress: engine.StressForecast(as, today, windowDays),
		Crunch: engine.CrunchForecast(as, today, windowDays),
	}, nil
}

func (svc *Service) Workload(ctx context.Context, owner string, today time.Time, days, blocksPerHour int) (Workload, error) {
	as, err := svc.Load(ctx, owner)
	if err != nil {
		return Workload{}, err
	}
	return Workload{
		HoursWindow: engine.HoursNextDays(as, today, days),
		Bars:        engine.WorkloadTextBars(as, today, days, blocksPerHour),
	}, nil
}

// getEngine finds one Assignment and converts it; a malformed record is a validation error.
func (svc *Service) getEngine(ctx context.Context, owner, id string) (Assignment, engine.Assignment, error) {
	item, err := svc.Get(ctx, owner, id)
	if err != nil {
		return Assignment{}, engine.Assignment{}, err
	}
	a, err := item.ToEngine()
	if err != nil {
		return Assignment{}, engine.Assignment{}, err
	}
	return item, a, nil
}

func (svc *Service) Urgency(ctx context.Context, owner, id string, today time.Time, maxDelay int, crunchThreshold float64) (Urgency, error) {
	item, a, err := svc.getEngine(ctx, owner, id)
	if err != nil {
		return Urgency{}, err
	}
	return Urgency{
		Assignment: item,
		Risk:       engine.CalcRisk(a, today),
		Curve:      engine.UrgencyCurve(a, today, maxDelay),
		StartBy:    engine.StartBy(a, today, crunchThreshold),
	}, nil
}

func (svc *Service) GPAImpact(ctx context.Context, owner, id string, currentGrade float64, predictedScore *float64) (engine.GPAImpact, error) {
	_, a, err := svc.getEngine(ctx, owner, id)
	if err != nil {
		return engine.GPAImpact{}, err
	}
	return engine.GPAImpactEstimate(a, currentGrade, predictedScore), nil
}
