package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NormalizeEmail canonicalizes an email address for storage and lookup.
// Emails are stored lowercase.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Profile represents a registered user of the catalog. The password is
// stored hashed and never serialized into responses.
type Profile struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email       string             `bson:"email" json:"email"`
	Password    string             `bson:"password" json:"-"`
	Name        string             `bson:"name" json:"name"`
	Nickname    string             `bson:"nickname" json:"nickname"`
	DateOfBirth string             `bson:"date_of_birth" json:"date_of_birth"`
	IdpID       string             `bson:"idp_id" json:"idp_id"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// CreateProfile is the payload accepted by profile creation.
type CreateProfile struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Name        string `json:"name"`
	Nickname    string `json:"nickname"`
	DateOfBirth string `json:"date_of_birth"`
}

// PatchProfile carries a partial profile update. Only non-nil fields are
// written.
type PatchProfile struct {
	Email       *string `json:"email"`
	Name        *string `json:"name"`
	Nickname    *string `json:"nickname"`
	DateOfBirth *string `json:"date_of_birth"`
}

// Fields returns the $set document for the present fields.
func (p *PatchProfile) Fields() bson.M {
	fields := bson.M{}
	if p.Email != nil {
		fields["email"] = NormalizeEmail(*p.Email)
	}
	if p.Name != nil {
		fields["name"] = *p.Name
	}
	if p.Nickname != nil {
		fields["nickname"] = *p.Nickname
	}
	if p.DateOfBirth != nil {
		fields["date_of_birth"] = *p.DateOfBirth
	}
	return fields
}
