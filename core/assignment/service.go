package assignment

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/rpeck07/StudentoS/core"
)

var (
	// errors
	ErrNotFound = errors.New("assignment not found")

	nowFunc = time.Now // mockable

	orderingFields = map[string]func(a, b Assignment) int{
		"name":          func(a, b Assignment) int { return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)) },
		"weightPercent": func(a, b Assignment) int { return compare(a.WeightPercent, b.WeightPercent) },
		"dueDate":       func(a, b Assignment) int { return strings.Compare(a.DueDate, b.DueDate) },
		"confidence":    func(a, b Assignment) int { return compare(a.Confidence, b.Confidence) },
		"estHours":      func(a, b Assignment) int { return compare(a.EstHours, b.EstHours) },
		"createdAt":     func(a, b Assignment) int { return compare(a.CreatedAt, b.CreatedAt) },
	}
)

type (
	// Repository stores the whole assignment list of one owner at a time.
	// Owners that never stored anything read as an empty list.
	Repository interface {
		ReadAll(ctx context.Context, owner string) ([]Assignment, error)
		WriteAll(ctx context.Context, owner string, items []Assignment) error
	}

	Service struct {
		repo     Repository
		validate *validator.Validate

		mu    sync.Mutex
		locks map[string]*sync.Mutex
	}
)

func NewService(repo Repository, validate *validator.Validate) *Service {
	return &Service{
		repo:     repo,
		validate: validate,
		locks:    make(map[string]*sync.Mutex),
	}
}

// lock serializes read-modify-write cycles on one owner's list.
// Mutexes are never evicted: there is one per registered user at most.
func (svc *Service) lock(owner string) func() {
	svc.mu.Lock()
	l, ok := svc.locks[owner]
	if !ok {
		l = new(sync.Mutex)
		svc.locks[owner] = l
	}
	svc.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// List returns the owner's assignments, in stored order unless orderings are given.
func (svc *Service) List(ctx context.Context, owner string, orderings ...core.Ordering) ([]Assignment, error) {
	for _, ord := range orderings {
		if _, ok := orderingFields[ord.Field]; !ok {
			return nil, core.NewValidationError(nil, core.FieldError{Field: "ordering", Error: "cannot order by " + ord.Field})
		}
	}

	items, err := svc.repo.ReadAll(ctx, owner)
	if err != nil {
		return nil, errors.Wrap(err, "reading assignments")
	}
	if items == nil {
		items = []Assignment{}
	}
	if len(orderings) > 0 {
		sort.SliceStable(items, func(i, j int) bool {
			for _, ord := range orderings {
				c := orderingFields[ord.Field](items[i], items[j])
				if c == 0 {
					continue
				}
				if ord.Ascending {
					return c < 0
				}
				return c > 0
			}
			return false
		})
	}
	return items, nil
}

func (svc *Service) Get(ctx context.Context, owner, id string) (Assignment, error) {
	items, err := svc.repo.ReadAll(ctx, owner)
	if err != nil {
		return Assignment{}, errors.Wrap(err, "reading assignments")
	}
	if i := indexOf(items, id); i >= 0 {
		return items[i], nil
	}
	return Assignment{}, ErrNotFound
}

// Create validates na, fills in the defaults and appends the new Assignment to the owner's list.
func (svc *Service) Create(ctx context.Context, owner string, na NewAssignment) (Assignment, error) {
	if err := na.Validate(svc.validate); err != nil {
		return Assignment{}, err
	}

	a := Assignment{
		ID:            uuid.NewString(),
		Name:          na.Name,
		WeightPercent: DefaultWeight,
		DueDate:       na.DueDate,
		Confidence:    DefaultConfidence,
		EstHours:      DefaultEstHours,
		CreatedAt:     nowFunc().UnixMilli(),
	}
	if na.WeightPercent != nil {
		a.WeightPercent = *na.WeightPercent
	}
	if na.Confidence != nil {
		a.Confidence = *na.Confidence
	}
	if na.EstHours != nil {
		a.EstHours = *na.EstHours
	}

	defer svc.lock(owner)()
	items, err := svc.repo.ReadAll(ctx, owner)
	if err != nil {
		return Assignment{}, errors.Wrap(err, "reading assignments")
	}
	if err = svc.repo.WriteAll(ctx, owner, append(items, a)); err != nil {
		return Assignment{}, errors.Wrap(err, "writing assignments")
	}
	return a, nil
}

func (svc *Service) Update(ctx context.Context, owner, id string, ua UpdateAssignment) (Assignment, error) {
	if err := ua.Validate(svc.validate); err != nil {
		return Assignment{}, err
	}

	defer svc.lock(owner)()
	items, err := svc.repo.ReadAll(ctx, owner)
	if err != nil {
		return Assignment{}, errors.Wrap(err, "reading assignments")
	}
	i := indexOf(items, id)
	if i < 0 {
		return Assignment{}, ErrNotFound
	}
	items[i] = ua.apply(items[i])
	if err = svc.repo.WriteAll(ctx, owner, items); err != nil {
		return Assignment{}, errors.Wrap(err, "writing assignments")
	}
	return items[i], nil
}

// Delete removes the Assignment. Deleting a missing id is not an error.
func (svc *Service) Delete(ctx context.Context, owner, id string) error {
	defer svc.lock(owner)()
	items, err := svc.repo.ReadAll(ctx, owner)
	if err != nil {
		return errors.Wrap(err, "reading assignments")
	}
	kept := make([]Assignment, 0, len(items))
	for _, item := range items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return nil
	}
	return errors.Wrap(svc.repo.WriteAll(ctx, owner, kept), "writing assignments")
}

func indexOf(items []Assignment, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func compare[T int | int64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
