package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GuessGame is a daily guess-the-game puzzle built around one product.
// Data is free-form and interpreted by the front-end per game type.
type GuessGame struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ProductID primitive.ObjectID `bson:"product_id" json:"product_id"`
	Type      string             `bson:"type" json:"type"`
	Data      bson.M             `bson:"data" json:"data"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

type CreateGuessGame struct {
	ProductID string                 `json:"product_id"`
	Type      string                 `json:"type"`
	Data      map[string]interface{} `json:"data"`
}

type PatchGuessGame struct {
	ProductID *string                `json:"product_id"`
	Type      *string                `json:"type"`
	Data      map[string]interface{} `json:"data"`
}

func (p *PatchGuessGame) Fields() (bson.M, error) {
	fields := bson.M{}
	if p.ProductID != nil {
		oid, err := ObjectIDFromHex(*p.ProductID)
		if err != nil {
			return nil, err
		}
		fields["product_id"] = oid
	}
	if p.Type != nil {
		fields["type"] = *p.Type
	}
	if p.Data != nil {
		fields["data"] = bson.M(p.Data)
	}
	return fields, nil
}

// GuessAttempt is one guess made against a daily game.
type GuessAttempt struct {
	ProductID primitive.ObjectID `bson:"product_id" json:"product_id"`
	Data      bson.M             `bson:"data" json:"data"`
}

// GameGuess tracks a caller's attempts at a daily guess game. ProfileID
// is set only for authenticated callers; GuessedAt is stamped once the
// game is solved.
type GameGuess struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	DailyGuessGameID primitive.ObjectID  `bson:"daily_guess_game_id" json:"daily_guess_game_id"`
	IP               string              `bson:"ip" json:"ip"`
	ProfileID        *primitive.ObjectID `bson:"profile_id,omitempty" json:"profile_id,omitempty"`
	Attempts         []GuessAttempt      `bson:"attempts" json:"attempts"`
	GuessedAt        *time.Time          `bson:"guessed_at,omitempty" json:"guessed_at,omitempty"`
	CreatedAt        time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time           `bson:"updated_at" json:"updated_at"`
}

type CreateGameGuess struct {
	DailyGuessGameID string                 `json:"daily_guess_game_id"`
	IP               string                 `json:"ip"`
	ProfileID        *string                `json:"profile_id"`
	ProductID        string                 `json:"product_id"`
	Data             map[string]interface{} `json:"data"`
}

type PatchGameGuess struct {
	IP        *string    `json:"ip"`
	GuessedAt *time.Time `json:"guessed_at"`
}

func (p *PatchGameGuess) Fields() bson.M {
	fields := bson.M{}
	if p.IP != nil {
		fields["ip"] = *p.IP
	}
	if p.GuessedAt != nil {
		fields["guessed_at"] = *p.GuessedAt
	}
	return fields
}
