package service

import (
	"context"
	"errors"
	"testing"

	"fitbysuarez/coaching/internal/domain"
)

func TestProgramService_CreateAndGet(t *testing.T) {
	svc := NewProgramService(newMemProgramRepo())
	ctx := context.Background()

	created, err := svc.CreateProgram(ctx, "Fuerza Máxima", "Bloque de fuerza", "fuerza,5x5")
	if err != nil {
		t.Fatalf("CreateProgram failed: %v", err)
	}
	if created.ID.IsZero() {
		t.Fatal("created program has zero ID")
	}

	got, err := svc.GetProgram(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetProgram failed: %v", err)
	}
	if got.Name != "Fuerza Máxima" || got.Description != "Bloque de fuerza" {
		t.Errorf("got %+v", got)
	}
	if len(got.Weeks) != 0 {
		t.Errorf("new program has %d weeks, want 0", len(got.Weeks))
	}
}

func TestProgramService_CreateRequiresName(t *testing.T) {
	svc := NewProgramService(newMemProgramRepo())

	_, err := svc.CreateProgram(context.Background(), "   ", "", "")
	if !errors.Is(err, ErrValidationFailed) {
		t.Errorf("blank name returned %v, want ErrValidationFailed", err)
	}

	created, err := svc.CreateProgram(context.Background(), "  Fuerza  ", "", "")
	if err != nil {
		t.Fatalf("CreateProgram failed: %v", err)
	}
	if created.Name != "Fuerza" {
		t.Errorf("stored name = %q, want surrounding whitespace trimmed", created.Name)
	}
}

func TestProgramService_SetDayRoundTrip(t *testing.T) {
	svc := NewProgramService(newMemProgramRepo())
	ctx := context.Background()

	created, _ := svc.CreateProgram(ctx, "Hipertrofia", "", "")

	plan := domain.DayPlan{
		Name:   "Pecho",
		Warmup: "Movilidad de hombro",
		Exercises: []domain.TemplateExercise{
			{Name: "Press Banca", Stats: "4x8"},
		},
	}

	// weekIndex == len(weeks) appends the week implicitly.
	updated, err := svc.SetDay(ctx, created.ID, 0, 1, plan)
	if err != nil {
		t.Fatalf("SetDay failed: %v", err)
	}
	if len(updated.Weeks) != 1 {
		t.Fatalf("program has %d weeks, want 1", len(updated.Weeks))
	}

	got, ok := updated.Weeks[0].Day(1)
	if !ok {
		t.Fatal("day 1 not set")
	}
	if got.Name != "Pecho" || len(got.Exercises) != 1 || got.Exercises[0].Stats != "4x8" {
		t.Errorf("stored day plan = %+v", got)
	}

	// Unset days stay absent.
	if _, ok := updated.Weeks[0].Day(2); ok {
		t.Error("day 2 should not be set")
	}
}

func TestProgramService_SetDayRejectsGap(t *testing.T) {
	svc := NewProgramService(newMemProgramRepo())
	ctx := context.Background()

	created, _ := svc.CreateProgram(ctx, "Volumen", "", "")

	// Program has zero weeks; week index 2 would leave a hole.
	_, err := svc.SetDay(ctx, created.ID, 2, 1, domain.DayPlan{Name: "x"})
	if !errors.Is(err, ErrWeekGap) {
		t.Errorf("week gap returned %v, want ErrWeekGap", err)
	}
	if !errors.Is(err, ErrValidationFailed) {
		t.Errorf("ErrWeekGap should wrap ErrValidationFailed, got %v", err)
	}

	got, _ := svc.GetProgram(ctx, created.ID)
	if len(got.Weeks) != 0 {
		t.Errorf("failed SetDay still appended weeks: %d", len(got.Weeks))
	}
}

func TestProgramService_SetDayValidatesDayIndex(t *testing.T) {
	svc := NewProgramService(newMemProgramRepo())
	ctx := context.Background()
	created, _ := svc.CreateProgram(ctx, "Volumen", "", "")

	for _, day := range []int{0, 8, -1} {
		if _, err := svc.SetDay(ctx, created.ID, 0, day, domain.DayPlan{}); !errors.Is(err, ErrValidationFailed) {
			t.Errorf("day index %d returned %v, want ErrValidationFailed", day, err)
		}
	}
}

func TestProgramService_AddWeekAppendsContiguously(t *testing.T) {
	svc := NewProgramService(newMemProgramRepo())
	ctx := context.Background()
	created, _ := svc.CreateProgram(ctx, "Bloque", "", "")

	for want := 0; want < 3; want++ {
		idx, err := svc.AddWeek(ctx, created.ID)
		if err != nil {
			t.Fatalf("AddWeek failed: %v", err)
		}
		if idx != want {
			t.Errorf("AddWeek returned index %d, want %d", idx, want)
		}
	}

	got, _ := svc.GetProgram(ctx, created.ID)
	if len(got.Weeks) != 3 {
		t.Fatalf("program has %d weeks, want 3", len(got.Weeks))
	}
	for i, w := range got.Weeks {
		if w.WeekNumber != i+1 {
			t.Errorf("week %d has WeekNumber %d", i, w.WeekNumber)
		}
		if len(w.Days) != 0 {
			t.Errorf("new week %d has %d day slots, want 0", i, len(w.Days))
		}
	}
}

func TestProgramService_ReplaceAndDelete(t *testing.T) {
	repo := newMemProgramRepo()
	svc := NewProgramService(repo)
	ctx := context.Background()
	created, _ := svc.CreateProgram(ctx, "Antiguo", "", "")

	week := domain.Week{WeekNumber: 1, Days: map[string]domain.DayPlan{}}
	week.SetDay(1, domain.DayPlan{Name: "Full Body"})

	replaced, err := svc.ReplaceProgram(ctx, created.ID, &domain.Program{
		Name:  "Renovado",
		Weeks: []domain.Week{week},
	})
	if err != nil {
		t.Fatalf("ReplaceProgram failed: %v", err)
	}
	if replaced.Name != "Renovado" || len(replaced.Weeks) != 1 {
		t.Errorf("replaced = %+v", replaced)
	}

	if err := svc.DeleteProgram(ctx, created.ID); err != nil {
		t.Fatalf("DeleteProgram failed: %v", err)
	}
	if _, err := svc.GetProgram(ctx, created.ID); !errors.Is(err, ErrProgramNotFound) {
		t.Errorf("get after delete returned %v, want ErrProgramNotFound", err)
	}
}

func TestProgramService_ReplaceRejectsBadDayKeys(t *testing.T) {
	svc := NewProgramService(newMemProgramRepo())
	ctx := context.Background()
	created, _ := svc.CreateProgram(ctx, "Bloque", "", "")

	_, err := svc.ReplaceProgram(ctx, created.ID, &domain.Program{
		Name: "Bloque",
		Weeks: []domain.Week{
			{WeekNumber: 1, Days: map[string]domain.DayPlan{"8": {Name: "fuera de rango"}}},
		},
	})
	if !errors.Is(err, ErrValidationFailed) {
		t.Errorf("invalid day key returned %v, want ErrValidationFailed", err)
	}
}
