package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Affiliate is a seller partnered with the catalog. Reviews hold
// by-id references resolved at query time.
type Affiliate struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Name         string               `bson:"name" json:"name"`
	Slug         string               `bson:"slug" json:"slug"`
	Code         string               `bson:"code" json:"code"`
	BecameSeller time.Time            `bson:"became_seller_at" json:"became_seller_at"`
	Sales        int                  `bson:"sales" json:"sales"`
	Bio          string               `bson:"bio" json:"bio"`
	Enabled      bool                 `bson:"enabled" json:"enabled"`
	LogoURL      string               `bson:"logo_url" json:"logo_url"`
	Reviews      []primitive.ObjectID `bson:"reviews" json:"reviews"`
	CreatedAt    time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time            `bson:"updated_at" json:"updated_at"`
}

type CreateAffiliate struct {
	Name         string    `json:"name"`
	Code         string    `json:"code"`
	BecameSeller time.Time `json:"became_seller_at"`
	Sales        int       `json:"sales"`
	Bio          string    `json:"bio"`
	Enabled      bool      `json:"enabled"`
	LogoURL      string    `json:"logo_url"`
	Reviews      []string  `json:"reviews"`
}

type PatchAffiliate struct {
	Name         *string    `json:"name"`
	Code         *string    `json:"code"`
	BecameSeller *time.Time `json:"became_seller_at"`
	Sales        *int       `json:"sales"`
	Bio          *string    `json:"bio"`
	Enabled      *bool      `json:"enabled"`
	LogoURL      *string    `json:"logo_url"`
	Reviews      []string   `json:"reviews"`
}

// Fields returns the $set document for the present fields. A name change
// rewrites the derived slug.
func (p *PatchAffiliate) Fields() (bson.M, error) {
	fields := bson.M{}
	if p.Name != nil {
		fields["name"] = *p.Name
		fields["slug"] = Slugify(*p.Name)
	}
	if p.Code != nil {
		fields["code"] = *p.Code
	}
	if p.BecameSeller != nil {
		fields["became_seller_at"] = *p.BecameSeller
	}
	if p.Sales != nil {
		fields["sales"] = *p.Sales
	}
	if p.Bio != nil {
		fields["bio"] = *p.Bio
	}
	if p.Enabled != nil {
		fields["enabled"] = *p.Enabled
	}
	if p.LogoURL != nil {
		fields["logo_url"] = *p.LogoURL
	}
	if p.Reviews != nil {
		ids, err := ObjectIDsFromHex(p.Reviews)
		if err != nil {
			return nil, err
		}
		fields["reviews"] = ids
	}
	return fields, nil
}
