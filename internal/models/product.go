package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductMedia groups the promotional assets of a product.
type ProductMedia struct {
	HeaderURL   string   `bson:"header_url" json:"header_url"`
	Screenshots []string `bson:"screenshots" json:"screenshots"`
	Movies      []string `bson:"movies" json:"movies"`
}

// ProductRequirements describes minimum/recommended system requirements
// per OS family.
type ProductRequirements struct {
	Windows map[string]string `bson:"windows,omitempty" json:"windows,omitempty"`
	Mac     map[string]string `bson:"mac,omitempty" json:"mac,omitempty"`
	Linux   map[string]string `bson:"linux,omitempty" json:"linux,omitempty"`
}

// Product is a catalog entry. Genres hold Tag references and Platforms
// hold Platform references, both resolved at query time.
type Product struct {
	ID                  primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Type                string               `bson:"type" json:"type"`
	Name                string               `bson:"name" json:"name"`
	Slug                string               `bson:"slug" json:"slug"`
	RequiredAge         int                  `bson:"required_age" json:"required_age"`
	DetailedDescription string               `bson:"detailed_description" json:"detailed_description"`
	ShortDescription    string               `bson:"short_description" json:"short_description"`
	SupportedLanguages  string               `bson:"supported_languages" json:"supported_languages"`
	Developers          []string             `bson:"developers" json:"developers"`
	Publishers          []string             `bson:"publishers" json:"publishers"`
	Platforms           []primitive.ObjectID `bson:"platforms" json:"platforms"`
	Genres              []primitive.ObjectID `bson:"genres" json:"genres"`
	ReleaseDate         string               `bson:"release_date" json:"release_date"`
	Media               ProductMedia         `bson:"media" json:"media"`
	Requirements        ProductRequirements  `bson:"requirements" json:"requirements"`
	CreatedAt           time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt           time.Time            `bson:"updated_at" json:"updated_at"`
}

type CreateProduct struct {
	Type                string              `json:"type"`
	Name                string              `json:"name"`
	RequiredAge         int                 `json:"required_age"`
	DetailedDescription string              `json:"detailed_description"`
	ShortDescription    string              `json:"short_description"`
	SupportedLanguages  string              `json:"supported_languages"`
	Developers          []string            `json:"developers"`
	Publishers          []string            `json:"publishers"`
	Platforms           []string            `json:"platforms"`
	Genres              []string            `json:"genres"`
	ReleaseDate         string              `json:"release_date"`
	Media               ProductMedia        `json:"media"`
	Requirements        ProductRequirements `json:"requirements"`
}

type PatchProduct struct {
	Type                *string              `json:"type"`
	Name                *string              `json:"name"`
	RequiredAge         *int                 `json:"required_age"`
	DetailedDescription *string              `json:"detailed_description"`
	ShortDescription    *string              `json:"short_description"`
	SupportedLanguages  *string              `json:"supported_languages"`
	Developers          []string             `json:"developers"`
	Publishers          []string             `json:"publishers"`
	Platforms           []string             `json:"platforms"`
	Genres              []string             `json:"genres"`
	ReleaseDate         *string              `json:"release_date"`
	Media               *ProductMedia        `json:"media"`
	Requirements        *ProductRequirements `json:"requirements"`
}

// Fields returns the $set document for the present fields. Reference
// lists arrive as hex strings and are coerced to object ids; a name
// change rewrites the derived slug.
func (p *PatchProduct) Fields() (bson.M, error) {
	fields := bson.M{}
	if p.Type != nil {
		fields["type"] = *p.Type
	}
	if p.Name != nil {
		fields["name"] = *p.Name
		fields["slug"] = Slugify(*p.Name)
	}
	if p.RequiredAge != nil {
		fields["required_age"] = *p.RequiredAge
	}
	if p.DetailedDescription != nil {
		fields["detailed_description"] = *p.DetailedDescription
	}
	if p.ShortDescription != nil {
		fields["short_description"] = *p.ShortDescription
	}
	if p.SupportedLanguages != nil {
		fields["supported_languages"] = *p.SupportedLanguages
	}
	if p.Developers != nil {
		fields["developers"] = p.Developers
	}
	if p.Publishers != nil {
		fields["publishers"] = p.Publishers
	}
	if p.Platforms != nil {
		ids, err := ObjectIDsFromHex(p.Platforms)
		if err != nil {
			return nil, err
		}
		fields["platforms"] = ids
	}
	if p.Genres != nil {
		ids, err := ObjectIDsFromHex(p.Genres)
		if err != nil {
			return nil, err
		}
		fields["genres"] = ids
	}
	if p.ReleaseDate != nil {
		fields["release_date"] = *p.ReleaseDate
	}
	if p.Media != nil {
		fields["media"] = *p.Media
	}
	if p.Requirements != nil {
		fields["requirements"] = *p.Requirements
	}
	return fields, nil
}
