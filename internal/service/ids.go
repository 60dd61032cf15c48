package service

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// parseObjectID converts a hex id from a token or URL into an ObjectID.
func parseObjectID(s string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid id %q", ErrValidationFailed, s)
	}
	return id, nil
}

// normalizeEmail is applied before every store and lookup so the unique email
// index compares one canonical form.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
