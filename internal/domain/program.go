// internal/domain/program.go
package domain

import (
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DaysPerWeek is the number of day slots in one program week.
const DaysPerWeek = 7

// TemplateExercise is one exercise line inside a program's day template.
// Stats is free text ("5x5 @ RPE 8", "3x12, descanso 60s").
type TemplateExercise struct {
	Name     string `bson:"name" json:"name"`
	Stats    string `bson:"stats,omitempty" json:"stats,omitempty"`
	VideoURL string `bson:"videoUrl,omitempty" json:"videoUrl,omitempty"`
}

// DayPlan is a reusable workout definition for one day slot of a program week,
// independent of any calendar date.
type DayPlan struct {
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Warmup    string             `bson:"warmup,omitempty" json:"warmup,omitempty"`
	Cooldown  string             `bson:"cooldown,omitempty" json:"cooldown,omitempty"`
	IsRest    bool               `bson:"isRest" json:"isRest"`
	Exercises []TemplateExercise `bson:"exercises" json:"exercises"`
}

// Week holds the day slots of one program week. Days is keyed "1".."7"
// (Monday-first); an absent key means the day is not planned yet, which is
// distinct from an explicit rest day (IsRest=true).
type Week struct {
	WeekNumber int                `bson:"weekNumber" json:"weekNumber"`
	Days       map[string]DayPlan `bson:"days" json:"days"`
}

// Day returns the plan for day index n (1..7) and whether it is set.
func (w Week) Day(n int) (DayPlan, bool) {
	d, ok := w.Days[strconv.Itoa(n)]
	return d, ok
}

// SetDay stores plan at day index n (1..7).
func (w *Week) SetDay(n int, plan DayPlan) {
	if w.Days == nil {
		w.Days = make(map[string]DayPlan)
	}
	w.Days[strconv.Itoa(n)] = plan
}

// Program is a named multi-week workout template built by a trainer and
// assigned to clients by name.
type Program struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Tags        string             `bson:"tags,omitempty" json:"tags,omitempty"`
	Weeks       []Week             `bson:"weeks" json:"weeks"`
	ClientCount int                `bson:"clientCount" json:"clientCount"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
