package database

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/indieneer/backend/internal/config"
)

const (
	operationTimeout = 500 * time.Millisecond
	connectTimeout   = 1500 * time.Millisecond
)

// ConnectDB builds a client with the service's short operation timeouts
// and returns a handle to the configured database. The client is owned
// by the caller; there is no package-level instance.
func ConnectDB(ctx context.Context, cfg *config.Config) (*mongo.Database, error) {
	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetTimeout(operationTimeout).
		SetConnectTimeout(connectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	logrus.WithField("db", cfg.MongoDB).Info("Connected to MongoDB")
	return client.Database(cfg.MongoDB), nil
}

// EnsureIndexes creates the indexes the schema relies on. Safe to call on
// every startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := true
	name := "nickname_unique"
	_, err := db.Collection("profiles").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "nickname", Value: 1}},
		Options: &options.IndexOptions{
			Unique: &unique,
			Name:   &name,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create nickname index: %w", err)
	}
	return nil
}
