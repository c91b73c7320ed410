package store

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/DvizhHSE/Dvizh-backend/apperr"
)

// ConnectOptions configures the Mongo connection. Connection establishment is
// the only place that retries; request-serving operations never do.
type ConnectOptions struct {
	URI      string
	Database string
	Attempts int
	Backoff  time.Duration
}

// Mongo owns the client and hands out the per-collection stores. The handle
// is created once by the entry point and passed down explicitly.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
	log    zerolog.Logger
}

// Connect dials MongoDB, retrying with a fixed backoff.
func Connect(ctx context.Context, opts ConnectOptions, log zerolog.Logger) (*Mongo, error) {
	attempts := opts.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var client *mongo.Client
	var err error
	for i := 0; i < attempts; i++ {
		client, err = mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
		if err == nil {
			if err = client.Ping(ctx, nil); err == nil {
				break
			}
			_ = client.Disconnect(ctx)
		}
		if i < attempts-1 {
			log.Warn().Err(err).Int("attempt", i+1).Msg("mongo connect failed, retrying")
			select {
			case <-time.After(opts.Backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	log.Info().Str("database", opts.Database).Msg("connected to MongoDB")
	return &Mongo{
		client: client,
		db:     client.Database(opts.Database),
		log:    log,
	}, nil
}

// EnsureIndexes creates the unique email index backing the registration
// pre-check at the database level.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	_, err := m.db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.M{"email": 1},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (m *Mongo) Disconnect(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *Mongo) Users() UserStore {
	return &mongoUsers{col: m.db.Collection("users"), log: m.log}
}

func (m *Mongo) Events() EventStore {
	return &mongoEvents{col: m.db.Collection("events"), log: m.log}
}

func (m *Mongo) Categories() CategoryStore {
	return &mongoCategories{col: m.db.Collection("categories")}
}

func (m *Mongo) Achievements() AchievementStore {
	return &mongoAchievements{col: m.db.Collection("achievements")}
}

// persistErr maps a raw driver error into the taxonomy.
func persistErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", apperr.ErrPersistence, err)
}
