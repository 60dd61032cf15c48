package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fitbysuarez/coaching/internal/domain"
	"fitbysuarez/coaching/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrProgramNotFound  = errors.New("program not found")
	ErrValidationFailed = errors.New("validation failed")
	// ErrWeekGap is returned when setDay addresses a week more than one past
	// the current count. Weeks must be appended contiguously.
	ErrWeekGap = fmt.Errorf("%w: week index skips ahead of existing weeks", ErrValidationFailed)
)

// ProgramSummary is the listing shape: the full weeks array is omitted.
type ProgramSummary struct {
	ID          primitive.ObjectID `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Tags        string             `json:"tags,omitempty"`
	WeekCount   int                `json:"weekCount"`
	ClientCount int                `json:"clientCount"`
}

// ProgramService manages program templates and their week/day grids. Every
// mutation persists immediately; there is no draft state at this layer.
type ProgramService interface {
	CreateProgram(ctx context.Context, name, description, tags string) (*domain.Program, error)
	GetProgram(ctx context.Context, id primitive.ObjectID) (*domain.Program, error)
	GetProgramByName(ctx context.Context, name string) (*domain.Program, error)
	ListPrograms(ctx context.Context) ([]ProgramSummary, error)
	ReplaceProgram(ctx context.Context, id primitive.ObjectID, program *domain.Program) (*domain.Program, error)
	DeleteProgram(ctx context.Context, id primitive.ObjectID) error

	// AddWeek appends an empty week (no day slots populated) and returns its
	// zero-based index.
	AddWeek(ctx context.Context, programID primitive.ObjectID) (int, error)
	// SetDay stores a day plan at (weekIndex, dayIndex), both addressed the way
	// the builder does: weekIndex zero-based, dayIndex 1..7 Monday-first.
	// weekIndex == len(weeks) implicitly appends a week; anything further is a
	// gap and is rejected.
	SetDay(ctx context.Context, programID primitive.ObjectID, weekIndex, dayIndex int, plan domain.DayPlan) (*domain.Program, error)
}

// programService implements the ProgramService interface.
type programService struct {
	programRepo repository.ProgramRepository
}

// NewProgramService creates a new instance of programService.
func NewProgramService(programRepo repository.ProgramRepository) ProgramService {
	return &programService{
		programRepo: programRepo,
	}
}

// CreateProgram creates an empty program template.
func (s *programService) CreateProgram(ctx context.Context, name, description, tags string) (*domain.Program, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: program name is required", ErrValidationFailed)
	}

	program := &domain.Program{
		Name:        name,
		Description: description,
		Tags:        tags,
		Weeks:       []domain.Week{},
	}

	programID, err := s.programRepo.Create(ctx, program)
	if err != nil {
		return nil, err
	}
	return s.programRepo.GetByID(ctx, programID)
}

// GetProgram retrieves a single program template.
func (s *programService) GetProgram(ctx context.Context, id primitive.ObjectID) (*domain.Program, error) {
	program, err := s.programRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}
	return program, nil
}

// GetProgramByName retrieves a program by its name reference.
func (s *programService) GetProgramByName(ctx context.Context, name string) (*domain.Program, error) {
	program, err := s.programRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}
	return program, nil
}

// ListPrograms retrieves summaries of all program templates.
func (s *programService) ListPrograms(ctx context.Context) ([]ProgramSummary, error) {
	programs, err := s.programRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]ProgramSummary, len(programs))
	for i, p := range programs {
		summaries[i] = ProgramSummary{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Tags:        p.Tags,
			WeekCount:   len(p.Weeks),
			ClientCount: p.ClientCount,
		}
	}
	return summaries, nil
}

// ReplaceProgram overwrites a stored program wholesale (PUT semantics).
func (s *programService) ReplaceProgram(ctx context.Context, id primitive.ObjectID, program *domain.Program) (*domain.Program, error) {
	if program.Name == "" {
		return nil, fmt.Errorf("%w: program name is required", ErrValidationFailed)
	}
	if err := validateWeeks(program.Weeks); err != nil {
		return nil, err
	}

	program.ID = id
	err := s.programRepo.Replace(ctx, program)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}
	return s.programRepo.GetByID(ctx, id)
}

// DeleteProgram removes a program template.
func (s *programService) DeleteProgram(ctx context.Context, id primitive.ObjectID) error {
	err := s.programRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProgramNotFound
		}
		return err
	}
	return nil
}

// AddWeek appends an empty week and persists immediately.
func (s *programService) AddWeek(ctx context.Context, programID primitive.ObjectID) (int, error) {
	program, err := s.GetProgram(ctx, programID)
	if err != nil {
		return 0, err
	}

	// Day slots start empty: an absent key means "not yet planned", which is
	// not the same as an explicit rest day.
	program.Weeks = append(program.Weeks, domain.Week{
		WeekNumber: len(program.Weeks) + 1,
		Days:       map[string]domain.DayPlan{},
	})

	if err := s.programRepo.SetWeeks(ctx, programID, program.Weeks); err != nil {
		return 0, err
	}
	return len(program.Weeks) - 1, nil
}

// SetDay stores a day plan, creating the addressed week when it is exactly one
// past the current count.
func (s *programService) SetDay(ctx context.Context, programID primitive.ObjectID, weekIndex, dayIndex int, plan domain.DayPlan) (*domain.Program, error) {
	if dayIndex < 1 || dayIndex > domain.DaysPerWeek {
		return nil, fmt.Errorf("%w: day index must be 1..7, got %d", ErrValidationFailed, dayIndex)
	}
	if weekIndex < 0 {
		return nil, fmt.Errorf("%w: week index must not be negative", ErrValidationFailed)
	}

	program, err := s.GetProgram(ctx, programID)
	if err != nil {
		return nil, err
	}

	if weekIndex > len(program.Weeks) {
		return nil, ErrWeekGap
	}
	if weekIndex == len(program.Weeks) {
		program.Weeks = append(program.Weeks, domain.Week{
			WeekNumber: len(program.Weeks) + 1,
			Days:       map[string]domain.DayPlan{},
		})
	}

	if plan.Exercises == nil {
		plan.Exercises = []domain.TemplateExercise{}
	}
	program.Weeks[weekIndex].SetDay(dayIndex, plan)

	if err := s.programRepo.SetWeeks(ctx, programID, program.Weeks); err != nil {
		return nil, err
	}
	return program, nil
}

// validateWeeks checks the day-key invariant on a full weeks array coming in
// from a wholesale replace.
func validateWeeks(weeks []domain.Week) error {
	for wi, week := range weeks {
		for key := range week.Days {
			if len(key) != 1 || key[0] < '1' || key[0] > '7' {
				return fmt.Errorf("%w: week %d has invalid day key %q", ErrValidationFailed, wi+1, key)
			}
		}
	}
	return nil
}
