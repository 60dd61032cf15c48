// internal/domain/exercise.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise is one entry of the shared exercise library, used to drive
// autocomplete and video suggestions in the workout builders.
// Names are unique case-insensitively; NameLower backs the unique index.
type Exercise struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	NameLower string             `bson:"nameLower" json:"-"`

	Category     []string `bson:"category" json:"category"` // e.g., ["Pecho"], ["Pierna", "Glúteo"]
	Instructions string   `bson:"instructions,omitempty" json:"instructions,omitempty"`

	// VideoURL is an external demo link. VideoObjectKey is set instead when the
	// trainer uploaded a clip to object storage; reads then get a presigned URL.
	VideoURL       string `bson:"videoUrl,omitempty" json:"videoUrl,omitempty"`
	VideoObjectKey string `bson:"videoObjectKey,omitempty" json:"-"`

	LastUpdated time.Time `bson:"lastUpdated" json:"lastUpdated"`
}
