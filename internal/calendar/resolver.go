package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"fitbysuarez/coaching/internal/domain"
	"fitbysuarez/coaching/internal/editor"
	"fitbysuarez/coaching/internal/repository"
)

// ErrInvalidRange is returned when the requested window is empty or reversed.
var ErrInvalidRange = errors.New("calendar: 'from' must not be after 'to'")

// ClientSource provides the client record whose calendar is being resolved.
type ClientSource interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// ProgramSource looks up the assigned program template by name.
type ProgramSource interface {
	GetByName(ctx context.Context, name string) (*domain.Program, error)
}

// WorkoutSource lists persisted per-date overrides for a client in one call.
type WorkoutSource interface {
	ListByClient(ctx context.Context, clientID primitive.ObjectID, from, to string) ([]domain.ClientWorkout, error)
}

// Resolver merges a client's program projection with their stored overrides.
type Resolver struct {
	clients  ClientSource
	programs ProgramSource
	workouts WorkoutSource
	now      func() time.Time
}

func NewResolver(clients ClientSource, programs ProgramSource, workouts WorkoutSource) *Resolver {
	return &Resolver{clients: clients, programs: programs, workouts: workouts, now: time.Now}
}

// Resolve returns one Entry per date in [from, to], inclusive. Overrides are
// fetched in a single batched query; the template is projected for dates the
// anchor arithmetic puts inside the program, and everything else is empty.
func (r *Resolver) Resolve(ctx context.Context, clientID primitive.ObjectID, from, to time.Time) ([]Entry, error) {
	from, to = Midnight(from), Midnight(to)
	if from.After(to) {
		return nil, ErrInvalidRange
	}

	client, err := r.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("calendar: loading client: %w", err)
	}

	var program *domain.Program
	if client.Program != "" {
		program, err = r.programs.GetByName(ctx, client.Program)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("calendar: loading program %q: %w", client.Program, err)
		}
		// A dangling assignment degrades to overrides-only, same as no program.
	}

	overrides, err := r.workouts.ListByClient(ctx, clientID, from.Format(domain.DateLayout), to.Format(domain.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("calendar: loading workouts: %w", err)
	}
	byDate := make(map[string]*domain.ClientWorkout, len(overrides))
	for i := range overrides {
		byDate[overrides[i].Date] = &overrides[i]
	}

	anchor := AnchorFor(client)
	today := Midnight(r.now()).Format(domain.DateLayout)

	var entries []Entry
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		key := d.Format(domain.DateLayout)
		e := Entry{Date: key, IsToday: key == today, Source: SourceEmpty}
		if w, ok := byDate[key]; ok {
			e.Source = SourceOverride
			e.Title = w.Title
			e.Warmup = w.Warmup
			e.Cooldown = w.Cooldown
			e.Exercises = overrideExercises(w.Exercises)
		} else if plan, ok := projectDay(program, anchor, d); ok {
			e.Source = SourceTemplate
			e.Title = plan.Name
			e.Warmup = plan.Warmup
			e.Cooldown = plan.Cooldown
			e.IsRest = plan.IsRest
			e.Exercises = templateExercises(plan.Exercises)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// AnchorFor picks the date that maps to week 1, day 1 of the client's
// program: the stamped programStartDate when present, otherwise the first
// Monday on or after the client's creation. Either way the result is
// normalized to a Monday so day indices stay Monday-first.
func AnchorFor(client *domain.User) time.Time {
	if client.ProgramStartDate != "" {
		if t, err := time.Parse(domain.DateLayout, client.ProgramStartDate); err == nil {
			return MondayOnOrBefore(t)
		}
	}
	return MondayOnOrAfter(client.CreatedAt)
}

// projectDay maps a date to a template DayPlan, or reports false when the
// date falls before the anchor or past the program's last week.
func projectDay(program *domain.Program, anchor, date time.Time) (domain.DayPlan, bool) {
	if program == nil {
		return domain.DayPlan{}, false
	}
	elapsed := daysBetween(anchor, date)
	if elapsed < 0 {
		return domain.DayPlan{}, false
	}
	weekIndex := elapsed / domain.DaysPerWeek
	dayIndex := elapsed%domain.DaysPerWeek + 1
	if weekIndex >= len(program.Weeks) {
		return domain.DayPlan{}, false
	}
	return program.Weeks[weekIndex].Day(dayIndex)
}

func overrideExercises(list []domain.EditorExercise) []Exercise {
	if len(list) == 0 {
		return nil
	}
	labels := editor.Labels(list)
	out := make([]Exercise, len(list))
	for i, ex := range list {
		out[i] = Exercise{
			Name:       ex.Name,
			Detail:     ex.Instructions,
			VideoURL:   ex.VideoURL,
			IsSuperset: ex.IsSuperset,
			Label:      labels[i],
		}
	}
	return out
}

func templateExercises(list []domain.TemplateExercise) []Exercise {
	if len(list) == 0 {
		return nil
	}
	eds := make([]domain.EditorExercise, len(list))
	for i, ex := range list {
		eds[i] = domain.EditorExercise{Name: ex.Name}
	}
	labels := editor.Labels(eds)
	out := make([]Exercise, len(list))
	for i, ex := range list {
		out[i] = Exercise{Name: ex.Name, Detail: ex.Stats, VideoURL: ex.VideoURL, Label: labels[i]}
	}
	return out
}
