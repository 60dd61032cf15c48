// internal/domain/client_workout.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DateLayout is the calendar date format used throughout ("2025-12-01").
const DateLayout = "2006-01-02"

// EditorExercise is one exercise line of a per-date client workout. ID is an
// opaque identifier, stable within one editing session, used by the editor to
// address lines; it carries no meaning beyond that.
type EditorExercise struct {
	ID           string `bson:"id" json:"id"`
	Name         string `bson:"name" json:"name"`
	IsSuperset   bool   `bson:"isSuperset" json:"isSuperset"`
	Instructions string `bson:"instructions,omitempty" json:"instructions,omitempty"`
	VideoURL     string `bson:"videoUrl,omitempty" json:"videoUrl,omitempty"`
}

// ClientWorkout is a workout pinned to one client and one calendar date. It
// overrides whatever the client's assigned program projects onto that date.
// At most one exists per (clientId, date); upserts replace the whole document.
type ClientWorkout struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClientID  primitive.ObjectID `bson:"clientId" json:"clientId"`
	Date      string             `bson:"date" json:"date"` // DateLayout; unique with clientId
	Title     string             `bson:"title,omitempty" json:"title,omitempty"`
	Warmup    string             `bson:"warmup,omitempty" json:"warmup,omitempty"`
	Cooldown  string             `bson:"cooldown,omitempty" json:"cooldown,omitempty"`
	Exercises []EditorExercise   `bson:"exercises" json:"exercises"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
