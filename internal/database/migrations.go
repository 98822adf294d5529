package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Migration is a named schema change. Names follow <epoch-ms>_<slug>.
// DependsOn lists migration names that must run first; Run resolves the
// resulting order topologically.
type Migration struct {
	Name      string
	DependsOn []string
	Upgrade   func(ctx context.Context, db *mongo.Database) error
	Downgrade func(ctx context.Context, db *mongo.Database) error
}

// Migrations is the registry of schema changes shipped with the service.
var Migrations = []Migration{
	{
		Name: "1693526400000_profiles_nickname_unique",
		Upgrade: func(ctx context.Context, db *mongo.Database) error {
			return EnsureIndexes(ctx, db)
		},
		Downgrade: func(ctx context.Context, db *mongo.Database) error {
			_, err := db.Collection("profiles").Indexes().DropOne(ctx, "nickname_unique")
			return err
		},
	},
	{
		Name:      "1695945600000_background_jobs_bootstrap",
		DependsOn: []string{"1693526400000_profiles_nickname_unique"},
		Upgrade: func(ctx context.Context, db *mongo.Database) error {
			err := db.CreateCollection(ctx, "background_jobs")
			var cmdErr mongo.CommandError
			if errors.As(err, &cmdErr) && cmdErr.Name == "NamespaceExists" {
				return nil
			}
			return err
		},
		Downgrade: func(ctx context.Context, db *mongo.Database) error {
			return db.Collection("background_jobs").Drop(ctx)
		},
	},
}

type appliedMigration struct {
	Name      string    `bson:"name"`
	AppliedAt time.Time `bson:"applied_at"`
}

// sortMigrations orders migrations so every migration follows its
// declared dependencies.
func sortMigrations(migrations []Migration) ([]Migration, error) {
	byName := make(map[string]Migration, len(migrations))
	for _, m := range migrations {
		byName[m.Name] = m
	}

	var ordered []Migration
	state := map[string]int{} // 0 unseen, 1 visiting, 2 done

	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case 2:
			return nil
		case 1:
			return fmt.Errorf("migration dependency cycle at %s", name)
		}
		m, ok := byName[name]
		if !ok {
			return fmt.Errorf("unknown migration dependency %s", name)
		}
		state[name] = 1
		for _, dep := range m.DependsOn {
			if err := visit(dep); err != nil {
				return err
			}
		}
		state[name] = 2
		ordered = append(ordered, m)
		return nil
	}

	for _, m := range migrations {
		if err := visit(m.Name); err != nil {
			return nil, err
		}
	}
	return ordered, nil
}

// RunMigrations applies every unapplied migration in dependency order and
// records its name in the migrations collection.
func RunMigrations(ctx context.Context, db *mongo.Database) error {
	ordered, err := sortMigrations(Migrations)
	if err != nil {
		return err
	}

	coll := db.Collection("migrations")
	for _, m := range ordered {
		count, err := coll.CountDocuments(ctx, bson.M{"name": m.Name})
		if err != nil {
			return fmt.Errorf("failed to check migration %s: %w", m.Name, err)
		}
		if count > 0 {
			continue
		}

		logrus.WithField("migration", m.Name).Info("Applying migration")
		if err := m.Upgrade(ctx, db); err != nil {
			return fmt.Errorf("migration %s failed: %w", m.Name, err)
		}
		if _, err := coll.InsertOne(ctx, appliedMigration{Name: m.Name, AppliedAt: time.Now().UTC()}); err != nil {
			return fmt.Errorf("failed to record migration %s: %w", m.Name, err)
		}
	}
	return nil
}
