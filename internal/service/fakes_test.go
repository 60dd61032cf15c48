package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"fitbysuarez/coaching/internal/domain"
	"fitbysuarez/coaching/internal/email"
	"fitbysuarez/coaching/internal/repository"
)

// In-memory repository fakes backing the service tests.

type memProgramRepo struct {
	mu       sync.Mutex
	programs map[primitive.ObjectID]*domain.Program
}

func newMemProgramRepo() *memProgramRepo {
	return &memProgramRepo{programs: make(map[primitive.ObjectID]*domain.Program)}
}

func (r *memProgramRepo) Create(ctx context.Context, program *domain.Program) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := primitive.NewObjectID()
	p := *program
	p.ID = id
	r.programs[id] = &p
	return id, nil
}

func (r *memProgramRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Program, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.programs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memProgramRepo) GetByName(ctx context.Context, name string) (*domain.Program, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.programs {
		if p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memProgramRepo) List(ctx context.Context) ([]domain.Program, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Program
	for _, p := range r.programs {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memProgramRepo) Replace(ctx context.Context, program *domain.Program) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.programs[program.ID]; !ok {
		return repository.ErrNotFound
	}
	p := *program
	r.programs[program.ID] = &p
	return nil
}

func (r *memProgramRepo) SetWeeks(ctx context.Context, id primitive.ObjectID, weeks []domain.Week) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.programs[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.Weeks = weeks
	p.UpdatedAt = time.Now()
	return nil
}

func (r *memProgramRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.programs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.programs, id)
	return nil
}

type memWorkoutRepo struct {
	mu       sync.Mutex
	workouts map[string]*domain.ClientWorkout // key: clientID.Hex() + "/" + date
}

func newMemWorkoutRepo() *memWorkoutRepo {
	return &memWorkoutRepo{workouts: make(map[string]*domain.ClientWorkout)}
}

func workoutKey(clientID primitive.ObjectID, date string) string {
	return clientID.Hex() + "/" + date
}

func (r *memWorkoutRepo) Upsert(ctx context.Context, workout *domain.ClientWorkout) (*domain.ClientWorkout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := workoutKey(workout.ClientID, workout.Date)
	w := *workout
	if prev, ok := r.workouts[key]; ok {
		w.ID = prev.ID
		w.CreatedAt = prev.CreatedAt
	} else {
		w.ID = primitive.NewObjectID()
		w.CreatedAt = time.Now()
	}
	w.UpdatedAt = time.Now()
	r.workouts[key] = &w
	cp := w
	return &cp, nil
}

func (r *memWorkoutRepo) GetByClientAndDate(ctx context.Context, clientID primitive.ObjectID, date string) (*domain.ClientWorkout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.workouts[workoutKey(clientID, date)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *w
	return &cp, nil
}

func (r *memWorkoutRepo) ListByClient(ctx context.Context, clientID primitive.ObjectID, from, to string) ([]domain.ClientWorkout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.ClientWorkout
	for _, w := range r.workouts {
		if w.ClientID != clientID {
			continue
		}
		if from != "" && w.Date < from {
			continue
		}
		if to != "" && w.Date > to {
			continue
		}
		out = append(out, *w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (r *memWorkoutRepo) Delete(ctx context.Context, clientID primitive.ObjectID, date string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := workoutKey(clientID, date)
	if _, ok := r.workouts[key]; !ok {
		return repository.ErrNotFound
	}
	delete(r.workouts, key)
	return nil
}

type memLibraryRepo struct {
	mu      sync.Mutex
	entries map[string]*domain.Exercise // key: lowercased name
}

func newMemLibraryRepo() *memLibraryRepo {
	return &memLibraryRepo{entries: make(map[string]*domain.Exercise)}
}

func (r *memLibraryRepo) Upsert(ctx context.Context, exercise *domain.Exercise) (*domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(exercise.Name)
	ex := *exercise
	ex.NameLower = key
	if prev, ok := r.entries[key]; ok {
		ex.ID = prev.ID
		ex.VideoObjectKey = prev.VideoObjectKey
	} else {
		ex.ID = primitive.NewObjectID()
	}
	ex.LastUpdated = time.Now()
	r.entries[key] = &ex
	cp := ex
	return &cp, nil
}

func (r *memLibraryRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ex := range r.entries {
		if ex.ID == id {
			cp := *ex
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memLibraryRepo) GetByName(ctx context.Context, name string) (*domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ex, ok := r.entries[strings.ToLower(name)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *ex
	return &cp, nil
}

func (r *memLibraryRepo) SearchByPrefix(ctx context.Context, prefix string) ([]domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lower := strings.ToLower(prefix)
	var out []domain.Exercise
	for key, ex := range r.entries {
		if strings.HasPrefix(key, lower) {
			out = append(out, *ex)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NameLower < out[j].NameLower })
	return out, nil
}

func (r *memLibraryRepo) SetVideoObjectKey(ctx context.Context, id primitive.ObjectID, objectKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ex := range r.entries {
		if ex.ID == id {
			ex.VideoObjectKey = objectKey
			ex.LastUpdated = time.Now()
			return nil
		}
	}
	return repository.ErrNotFound
}

type memUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[primitive.ObjectID]*domain.User)}
}

func (r *memUserRepo) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		// Exact match, like the unique index on the real collection.
		if !u.IsDeleted && u.Email == user.Email {
			return primitive.NilObjectID, repository.ErrConflict
		}
	}
	id := primitive.NewObjectID()
	u := *user
	u.ID = id
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	r.users[id] = &u
	return id, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, emailAddr string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if !u.IsDeleted && u.Email == emailAddr {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.IsDeleted {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for _, u := range r.users {
		if !u.IsDeleted && u.Role == role {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memUserRepo) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	u := *user
	r.users[user.ID] = &u
	return nil
}

func (r *memUserRepo) SetPassword(ctx context.Context, id primitive.ObjectID, passwordHash string, firstLogin bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.IsDeleted {
		return repository.ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.IsFirstLogin = firstLogin
	return nil
}

func (r *memUserRepo) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.IsDeleted {
		return repository.ErrNotFound
	}
	u.IsDeleted = true
	return nil
}

// fakeStorage records presign and delete calls.
type fakeStorage struct {
	mu      sync.Mutex
	deleted []string
}

func (f *fakeStorage) GeneratePresignedUploadURL(ctx context.Context, objectKey, contentType string, expires time.Duration) (string, error) {
	return "https://storage.test/upload/" + objectKey, nil
}

func (f *fakeStorage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	return "https://storage.test/get/" + objectKey, nil
}

func (f *fakeStorage) DeleteObject(ctx context.Context, objectKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, objectKey)
	return nil
}

// recordingSender captures outbound email without sending anything.
type recordingSender struct {
	mu   sync.Mutex
	sent []email.SendRequest
}

func (r *recordingSender) Send(ctx context.Context, req email.SendRequest) (email.SendResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, req)
	return email.SendResult{MessageID: "test", SentAt: time.Now()}, nil
}
