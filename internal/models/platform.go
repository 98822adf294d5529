package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Platform is a distribution platform (e.g. Steam, GOG). The slug is
// derived from the name on every write, never user-supplied.
type Platform struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Slug      string             `bson:"slug" json:"slug"`
	Name      string             `bson:"name" json:"name"`
	Enabled   bool               `bson:"enabled" json:"enabled"`
	IconURL   string             `bson:"icon_url" json:"icon_url"`
	URL       string             `bson:"url" json:"url"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

type CreatePlatform struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
	IconURL string `json:"icon_url"`
	URL     string `json:"url"`
}

type PatchPlatform struct {
	Name    *string `json:"name"`
	Enabled *bool   `json:"enabled"`
	IconURL *string `json:"icon_url"`
	URL     *string `json:"url"`
}

// Fields returns the $set document for the present fields. A name change
// also rewrites the derived slug.
func (p *PatchPlatform) Fields() bson.M {
	fields := bson.M{}
	if p.Name != nil {
		fields["name"] = *p.Name
		fields["slug"] = Slugify(*p.Name)
	}
	if p.Enabled != nil {
		fields["enabled"] = *p.Enabled
	}
	if p.IconURL != nil {
		fields["icon_url"] = *p.IconURL
	}
	if p.URL != nil {
		fields["url"] = *p.URL
	}
	return fields
}

// PlatformOS is an operating system supported by a platform.
type PlatformOS struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	PlatformID primitive.ObjectID `bson:"platform_id" json:"platform_id"`
	Name       string             `bson:"name" json:"name"`
	Enabled    bool               `bson:"enabled" json:"enabled"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}
