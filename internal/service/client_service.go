package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"fitbysuarez/coaching/internal/calendar"
	"fitbysuarez/coaching/internal/domain"
	"fitbysuarez/coaching/internal/email"
	"fitbysuarez/coaching/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrClientNotFound = errors.New("client not found")
	ErrEmailConflict  = errors.New("a user with this email already exists")
)

// New clients get a fixed temporary password and are forced to change it on
// first login. The welcome email carries it.
const tempClientPassword = "123"

// ClientUpdate is a partial update of a client's profile. Nil fields are left
// untouched.
type ClientUpdate struct {
	Name             *string
	LastName         *string
	Program          *string
	Group            *string
	Type             *string
	DueDate          *string
	IsActive         *bool
	Timezone         *string
	EmailPreferences *domain.EmailPreferences
}

// PaymentRow is one line of the payments overview.
type PaymentRow struct {
	ClientID primitive.ObjectID `json:"clientId"`
	Name     string             `json:"name"`
	LastName string             `json:"lastName,omitempty"`
	DueDate  string             `json:"dueDate,omitempty"`
	IsActive bool               `json:"isActive"`
}

// PaymentsSummary is the payments overview: current/overdue counts plus one
// row per client.
type PaymentsSummary struct {
	Paid   int          `json:"paid"`
	Unpaid int          `json:"unpaid"`
	Rows   []PaymentRow `json:"rows"`
}

// ClientService manages the trainer's client roster, including the payment
// status view. Payment processing itself happens elsewhere; this layer only
// tracks due dates and the paid/unpaid flag.
type ClientService interface {
	CreateClient(ctx context.Context, name, lastName, emailAddr, clientType, group, dueDate string) (*domain.User, error)
	GetClient(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	ListClients(ctx context.Context) ([]domain.User, error)
	UpdateClient(ctx context.Context, id primitive.ObjectID, update ClientUpdate) (*domain.User, error)
	// DeleteClient flags the client as deleted; the document, and any workouts
	// keyed to it, remain in place.
	DeleteClient(ctx context.Context, id primitive.ObjectID) error

	GetPaymentsSummary(ctx context.Context) (*PaymentsSummary, error)
	SendPaymentReminder(ctx context.Context, clientID primitive.ObjectID) error
}

// clientService implements the ClientService interface.
type clientService struct {
	userRepo repository.UserRepository
	sender   email.Sender
	appURL   string
}

// NewClientService creates a new instance of clientService.
func NewClientService(userRepo repository.UserRepository, sender email.Sender, appURL string) ClientService {
	return &clientService{
		userRepo: userRepo,
		sender:   sender,
		appURL:   appURL,
	}
}

// CreateClient registers a new client with a temporary password and sends the
// welcome email. A send failure is logged, not surfaced: account creation must
// not hinge on the mail provider.
func (s *clientService) CreateClient(ctx context.Context, name, lastName, emailAddr, clientType, group, dueDate string) (*domain.User, error) {
	emailAddr = normalizeEmail(emailAddr)
	if name == "" || emailAddr == "" {
		return nil, fmt.Errorf("%w: name and email are required", ErrValidationFailed)
	}
	if dueDate != "" {
		if err := validateDate(dueDate); err != nil {
			return nil, err
		}
	}

	if _, err := s.userRepo.GetByEmail(ctx, emailAddr); err == nil {
		return nil, ErrEmailConflict
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(tempClientPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	if clientType == "" {
		clientType = "Remoto"
	}
	if group == "" {
		group = "General"
	}

	client := &domain.User{
		Name:         name,
		LastName:     lastName,
		Email:        emailAddr,
		PasswordHash: string(hashed),
		Role:         domain.RoleClient,
		IsFirstLogin: true,
		IsActive:     true,
		Type:         clientType,
		Group:        group,
		DueDate:      dueDate,
		EmailPreferences: domain.EmailPreferences{
			DailyRoutine: true,
		},
	}

	clientID, err := s.userRepo.Create(ctx, client)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrEmailConflict
		}
		return nil, err
	}
	client.ID = clientID

	if _, err := s.sender.Send(ctx, email.WelcomeRequest(client.Email, client.Name, tempClientPassword, s.appURL)); err != nil {
		log.Printf("ERROR: welcome email to %s failed: %v", client.Email, err)
	}

	return s.GetClient(ctx, clientID)
}

// GetClient retrieves one client.
func (s *clientService) GetClient(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	if !user.IsClient() {
		return nil, ErrClientNotFound
	}
	return user, nil
}

// ListClients retrieves all non-deleted clients, newest first.
func (s *clientService) ListClients(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.ListByRole(ctx, domain.RoleClient)
}

// UpdateClient applies a partial profile update. Assigning a program for the
// first time stamps programStartDate with the next Monday, which anchors the
// program's week/day grid on the client's calendar.
func (s *clientService) UpdateClient(ctx context.Context, id primitive.ObjectID, update ClientUpdate) (*domain.User, error) {
	client, err := s.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		client.Name = *update.Name
	}
	if update.LastName != nil {
		client.LastName = *update.LastName
	}
	if update.Program != nil && *update.Program != client.Program {
		client.Program = *update.Program
		if *update.Program == "" {
			client.ProgramStartDate = ""
		} else {
			client.ProgramStartDate = calendar.NextMonday(time.Now()).Format(domain.DateLayout)
		}
	}
	if update.Group != nil {
		client.Group = *update.Group
	}
	if update.Type != nil {
		client.Type = *update.Type
	}
	if update.DueDate != nil {
		if *update.DueDate != "" {
			if err := validateDate(*update.DueDate); err != nil {
				return nil, err
			}
		}
		client.DueDate = *update.DueDate
	}
	if update.IsActive != nil {
		client.IsActive = *update.IsActive
	}
	if update.Timezone != nil {
		client.Timezone = *update.Timezone
	}
	if update.EmailPreferences != nil {
		client.EmailPreferences = *update.EmailPreferences
	}

	if err := s.userRepo.Update(ctx, client); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return client, nil
}

// DeleteClient soft-deletes the client.
func (s *clientService) DeleteClient(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.GetClient(ctx, id); err != nil {
		return err
	}

	err := s.userRepo.SoftDelete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrClientNotFound
		}
		return err
	}
	return nil
}

// GetPaymentsSummary builds the payments overview from the client roster.
func (s *clientService) GetPaymentsSummary(ctx context.Context) (*PaymentsSummary, error) {
	clients, err := s.ListClients(ctx)
	if err != nil {
		return nil, err
	}

	summary := &PaymentsSummary{Rows: make([]PaymentRow, 0, len(clients))}
	for _, c := range clients {
		if c.IsActive {
			summary.Paid++
		} else {
			summary.Unpaid++
		}
		summary.Rows = append(summary.Rows, PaymentRow{
			ClientID: c.ID,
			Name:     c.Name,
			LastName: c.LastName,
			DueDate:  c.DueDate,
			IsActive: c.IsActive,
		})
	}
	return summary, nil
}

// SendPaymentReminder emails one client their due date.
func (s *clientService) SendPaymentReminder(ctx context.Context, clientID primitive.ObjectID) error {
	client, err := s.GetClient(ctx, clientID)
	if err != nil {
		return err
	}

	_, err = s.sender.Send(ctx, email.PaymentReminderRequest(client.Email, client.Name, client.DueDate))
	return err
}
