package assignment_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpeck07/StudentoS/core"
	"github.com/rpeck07/StudentoS/core/assignment"
	"github.com/rpeck07/StudentoS/core/engine"
	"github.com/rpeck07/StudentoS/storage/filestore"
	"github.com/rpeck07/StudentoS/testutil"
)

const owner = "u1"

var today = time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC)

func fPtr(f float64) *float64 { return &f }
func iPtr(i int) *int         { return &i }
func sPtr(s string) *string   { return &s }

func newService(t *testing.T) (*assignment.Service, assignment.Repository) {
	store, err := filestore.New(t.TempDir())
	require.NoError(t, err)
	validate, _ := testutil.NewValidator()
	repo := filestore.NewAssignmentRepository(store)
	return assignment.NewService(repo, validate), repo
}

func create(t *testing.T, svc *assignment.Service, na assignment.NewAssignment) assignment.Assignment {
	t.Helper()
	a, err := svc.Create(context.Background(), owner, na)
	require.NoError(t, err)
	return a
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	a := create(t, svc, assignment.NewAssignment{Name: "  Essay  ", DueDate: "2026-02-15"})
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, "Essay", a.Name)
	assert.Equal(t, assignment.DefaultConfidence, a.Confidence)
	assert.Zero(t, a.WeightPercent)
	assert.Zero(t, a.EstHours)
	assert.NotZero(t, a.CreatedAt)

	b := create(t, svc, assignment.NewAssignment{Name: "Quiz", DueDate: "2026-02-11", WeightPercent: fPtr(5), Confidence: iPtr(1), EstHours: fPtr(2.5)})
	assert.Equal(t, 5.0, b.WeightPercent)
	assert.Equal(t, 1, b.Confidence)
	assert.Equal(t, 2.5, b.EstHours)

	items, err := svc.List(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, []assignment.Assignment{a, b}, items)

	tests := []struct {
		name string
		na   assignment.NewAssignment
	}{
		{"blank name", assignment.NewAssignment{Name: "   ", DueDate: "2026-02-15"}},
		{"missing due date", assignment.NewAssignment{Name: "Essay"}},
		{"bad due date", assignment.NewAssignment{Name: "Essay", DueDate: "15/02/2026"}},
		{"weight above 100", assignment.NewAssignment{Name: "Essay", DueDate: "2026-02-15", WeightPercent: fPtr(101)}},
		{"confidence out of range", assignment.NewAssignment{Name: "Essay", DueDate: "2026-02-15", Confidence: iPtr(6)}},
		{"negative hours", assignment.NewAssignment{Name: "Essay", DueDate: "2026-02-15", EstHours: fPtr(-1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, owner, tt.na)
			assert.Error(t, err)
		})
	}

	items, err = svc.List(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestService_Create_concurrent(t *testing.T) {
	svc, _ := newService(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(context.Background(), owner, assignment.NewAssignment{Name: "Reading", DueDate: "2026-02-20"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	items, err := svc.List(context.Background(), owner)
	require.NoError(t, err)
	assert.Len(t, items, 20)
}

func TestService_List_ordering(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	essay := create(t, svc, assignment.NewAssignment{Name: "essay", DueDate: "2026-02-15", WeightPercent: fPtr(30)})
	quiz := create(t, svc, assignment.NewAssignment{Name: "Quiz", DueDate: "2026-02-11", WeightPercent: fPtr(5)})
	lab := create(t, svc, assignment.NewAssignment{Name: "Lab", DueDate: "2026-02-15", WeightPercent: fPtr(10)})

	tests := []struct {
		ordering string
		want     []assignment.Assignment
	}{
		{"", []assignment.Assignment{essay, quiz, lab}},
		{"name", []assignment.Assignment{essay, lab, quiz}},
		{"-weightPercent", []assignment.Assignment{essay, lab, quiz}},
		{"dueDate,name", []assignment.Assignment{quiz, essay, lab}},
		{"-dueDate,-name", []assignment.Assignment{lab, essay, quiz}},
	}
	for _, tt := range tests {
		t.Run(tt.ordering, func(t *testing.T) {
			got, err := svc.List(ctx, owner, core.ParseOrderings(tt.ordering)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := svc.List(ctx, owner, core.ParseOrderings("-owner")...)
	var verr *core.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "ordering", verr.Fields[0].Field)
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	a := create(t, svc, assignment.NewAssignment{Name: "Essay", DueDate: "2026-02-15", WeightPercent: fPtr(30)})

	got, err := svc.Update(ctx, owner, a.ID, assignment.UpdateAssignment{DueDate: sPtr("2026-02-18"), Confidence: iPtr(5)})
	require.NoError(t, err)
	assert.Equal(t, "Essay", got.Name)
	assert.Equal(t, 30.0, got.WeightPercent)
	assert.Equal(t, "2026-02-18", got.DueDate)
	assert.Equal(t, 5, got.Confidence)
	assert.Equal(t, a.CreatedAt, got.CreatedAt)

	stored, err := svc.Get(ctx, owner, a.ID)
	require.NoError(t, err)
	assert.Equal(t, got, stored)

	_, err = svc.Update(ctx, owner, a.ID, assignment.UpdateAssignment{Name: sPtr("  ")})
	assert.Error(t, err)

	_, err = svc.Update(ctx, owner, "missing", assignment.UpdateAssignment{Confidence: iPtr(2)})
	assert.Equal(t, assignment.ErrNotFound, err)
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	a := create(t, svc, assignment.NewAssignment{Name: "Essay", DueDate: "2026-02-15"})
	b := create(t, svc, assignment.NewAssignment{Name: "Quiz", DueDate: "2026-02-11"})

	require.NoError(t, svc.Delete(ctx, owner, a.ID))
	require.NoError(t, svc.Delete(ctx, owner, a.ID))

	items, err := svc.List(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, []assignment.Assignment{b}, items)

	_, err = svc.Get(ctx, owner, a.ID)
	assert.Equal(t, assignment.ErrNotFound, err)
}

func TestService_Dashboard(t *testing.T) {
	ctx := context.Background()
	svc, repo := newService(t)
	params := assignment.DashboardParams{Today: today, CurrentGrade: 85, WorkloadWindow: 3}

	t.Run("no assignments", func(t *testing.T) {
		got, err := svc.Dashboard(ctx, owner, params)
		require.NoError(t, err)
		assert.False(t, got.HasAssignments)
		assert.Empty(t, got.Top)
		assert.Empty(t, got.Headlines)
		assert.Equal(t, "No assignments yet.", got.StressForecast.Message)
		assert.Equal(t, 3, got.WorkloadNext3Days.WindowDays)
	})

	require.NoError(t, repo.WriteAll(ctx, owner, []assignment.Assignment{
		{ID: "a1", Name: "Essay", WeightPercent: 30, DueDate: "2026-02-12", Confidence: 2, EstHours: 6},
		{ID: "a2", Name: "Broken", WeightPercent: 10, DueDate: "someday", Confidence: 3, EstHours: 1},
		{ID: "a3", Name: "Quiz", WeightPercent: 5, DueDate: "2026-02-20", Confidence: 4, EstHours: 1},
	}))

	got, err := svc.Dashboard(ctx, owner, params)
	require.NoError(t, err)
	assert.True(t, got.HasAssignments)
	require.Len(t, got.Top, 2)
	assert.Equal(t, "Essay", got.Top[0].Name)
	assert.Len(t, got.Headlines, 2)
	assert.Len(t, got.GPAImpacts, 2)
	assert.Equal(t, 3, got.WorkloadNext3Days.WindowDays)
	assert.Len(t, got.WorkloadNext3Days.Days, 3)
}

func TestService_Load_skipsMalformed(t *testing.T) {
	ctx := context.Background()
	store, err := filestore.New(t.TempDir())
	require.NoError(t, err)
	validate, _ := testutil.NewValidator()
	svc := assignment.NewService(filestore.NewAssignmentRepository(store), validate)

	data := `[
  {"id": "a1", "name": "Essay", "weightPercent": 30, "dueDate": "2026-02-15", "confidence": 2, "estHours": 6, "createdAt": 1},
  {"id": "a2", "name": "NoFields", "dueDate": "2026-02-15"},
  {"id": "a3", "name": "Unsure", "weightPercent": 10, "dueDate": "2026-02-15", "confidence": 0, "estHours": 2},
  {"id": "a4", "name": "Overconfident", "weightPercent": 10, "dueDate": "2026-02-15", "confidence": 6, "estHours": 2}
]`
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "data_"+owner+".json"), []byte(data), 0600))

	as, err := svc.Load(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, []engine.Assignment{
		{Name: "Essay", WeightPercent: 30, DueDate: time.Date(2026, time.February, 15, 0, 0, 0, 0, time.UTC), Confidence: 2, EstimatedHours: 6},
	}, as)

	items, err := svc.List(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, items, 3)

	_, err = svc.GPAImpact(ctx, owner, "a3", 85, nil)
	var verr *core.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []core.FieldError{{Field: "confidence", Error: "must be between 1 and 5"}}, verr.Fields)
}

func TestService_analysis(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	essay := create(t, svc, assignment.NewAssignment{Name: "Essay", DueDate: "2026-02-12", WeightPercent: fPtr(30), Confidence: iPtr(2), EstHours: fPtr(6)})
	create(t, svc, assignment.NewAssignment{Name: "Quiz", DueDate: "2026-02-20", WeightPercent: fPtr(5), Confidence: iPtr(4), EstHours: fPtr(1)})

	t.Run("rankings", func(t *testing.T) {
		got, err := svc.Rankings(ctx, owner, today, assignment.RankByDanger)
		require.NoError(t, err)
		danger := got.([]engine.DangerResult)
		require.Len(t, danger, 2)
		assert.Equal(t, "Essay", danger[0].Name)

		got, err = svc.Rankings(ctx, owner, today, assignment.RankByRisk)
		require.NoError(t, err)
		assert.Len(t, got.([]engine.RiskResult), 2)

		_, err = svc.Rankings(ctx, owner, today, "vibes")
		assert.Error(t, err)
	})

	t.Run("forecast", func(t *testing.T) {
		got, err := svc.Forecast(ctx, owner, today, 5)
		require.NoError(t, err)
		assert.Equal(t, 5, got.Stress.WindowDays)
		assert.Equal(t, 5, got.Crunch.WindowDays)
	})

	t.Run("workload", func(t *testing.T) {
		got, err := svc.Workload(ctx, owner, today, 3, 2)
		require.NoError(t, err)
		assert.Len(t, got.Days, 3)
		assert.Len(t, got.Bars, 3)
	})

	t.Run("urgency", func(t *testing.T) {
		got, err := svc.Urgency(ctx, owner, essay.ID, today, 3, engine.DefaultCrunchThreshold)
		require.NoError(t, err)
		assert.Equal(t, essay, got.Assignment)
		assert.Len(t, got.Curve, 4)
		assert.Equal(t, "Essay", got.StartBy.Name)

		_, err = svc.Urgency(ctx, owner, "missing", today, 3, engine.DefaultCrunchThreshold)
		assert.Equal(t, assignment.ErrNotFound, err)
	})

	t.Run("gpa impact", func(t *testing.T) {
		got, err := svc.GPAImpact(ctx, owner, essay.ID, 85, nil)
		require.NoError(t, err)
		assert.Equal(t, "Essay", got.Name)

		withScore, err := svc.GPAImpact(ctx, owner, essay.ID, 85, fPtr(100))
		require.NoError(t, err)
		assert.Greater(t, withScore.ProjectedGrade, got.ProjectedGrade)
	})
}
