package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleTrainer Role = "trainer"
	RoleClient  Role = "client"
)

// EmailPreferences controls which automated emails a client receives.
type EmailPreferences struct {
	DailyRoutine      bool `bson:"dailyRoutine" json:"dailyRoutine"`
	IncompleteRoutine bool `bson:"incompleteRoutine" json:"incompleteRoutine"`
}

// User represents a user in the system (either a Trainer or a Client).
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	LastName     string             `bson:"lastName,omitempty" json:"lastName,omitempty"`
	Email        string             `bson:"email" json:"email"`    // Unique index
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	Role         Role               `bson:"role" json:"role"`
	IsFirstLogin bool               `bson:"isFirstLogin" json:"isFirstLogin"`
	IsDeleted    bool               `bson:"isDeleted" json:"-"` // Soft delete; deleted users are filtered from all listings
	Timezone     string             `bson:"timezone,omitempty" json:"timezone,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`

	// --- Client-specific ---
	// Program is the name of the assigned program template, empty if none.
	Program string `bson:"program,omitempty" json:"program,omitempty"`
	// ProgramStartDate anchors the program's week/day grid onto the calendar
	// (ISO date, always a Monday). Empty means "derive from createdAt".
	ProgramStartDate string `bson:"programStartDate,omitempty" json:"programStartDate,omitempty"`
	Group            string `bson:"group,omitempty" json:"group,omitempty"`
	Type             string `bson:"type,omitempty" json:"type,omitempty"` // "Remoto", "Presencial", "Híbrido"

	// Payment tracking. DueDate is the next monthly due date (ISO date);
	// IsActive means the client is current on payments.
	DueDate  string `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	IsActive bool   `bson:"isActive" json:"isActive"`

	EmailPreferences EmailPreferences `bson:"emailPreferences" json:"emailPreferences"`
}

func (u *User) IsTrainer() bool {
	return u.Role == RoleTrainer
}

func (u *User) IsClient() bool {
	return u.Role == RoleClient
}
