package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/indieneer/backend/internal/apperrors"
)

// ObjectIDFromHex coerces an external string id into its store form,
// surfacing the typed invalid-id error on malformed input.
func ObjectIDFromHex(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperrors.NewInvalidID(id)
	}
	return oid, nil
}

// ObjectIDsFromHex coerces a list of external ids.
func ObjectIDsFromHex(ids []string) ([]primitive.ObjectID, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := ObjectIDFromHex(id)
		if err != nil {
			return nil, err
		}
		oids = append(oids, oid)
	}
	return oids, nil
}
