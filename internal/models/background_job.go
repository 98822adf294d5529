package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BackgroundJob is a queued task written by offline tooling. The API only
// lists them for administrators; attributes beyond the envelope are
// opaque.
type BackgroundJob struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Type      string             `bson:"type" json:"type"`
	Status    string             `bson:"status" json:"status"`
	Metadata  bson.M             `bson:"metadata,omitempty" json:"metadata,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
