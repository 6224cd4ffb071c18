package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const defaultTimeout = 10 * time.Second

const (
	usersCollection    = "users"
	jobsCollection     = "jobs"
	activityCollection = "activity_logs"
	ticketsCollection  = "help_tickets"
	storiesCollection  = "success_stories"
)

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Store owns the client for the lifetime of the process. It is opened once by
// main and handed to each repository constructor.
type Store struct {
	client  *mongo.Client
	db      *mongo.Database
	timeout time.Duration
}

// Connect establishes a MongoDB client and verifies connectivity with a ping.
func Connect(ctx context.Context, cfg Config) (*Store, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI).SetTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &Store{client: client, db: client.Database(cfg.Database), timeout: timeout}, nil
}

// DB returns the selected database.
func (s *Store) DB() *mongo.Database { return s.db }

// Ping reports whether the primary is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes every repository relies on. The unique
// email index is what turns duplicate registrations into ErrUserExists.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	for coll, models := range indexModels() {
		if _, err := s.db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("ensure indexes on %s: %w", coll, err)
		}
	}
	return nil
}

func indexModels() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bsonKeys("email", 1), Options: options.Index().SetUnique(true)},
			{Keys: bsonKeys("role", 1)},
		},
		jobsCollection: {
			{Keys: bsonKeys("date", -1)},
			{Keys: bsonKeys("trade", 1)},
			{Keys: bsonKeys("country", 1)},
		},
		activityCollection: {
			{Keys: bsonKeys("timestamp", -1)},
			{Keys: bsonKeys("userId", 1, "timestamp", -1)},
		},
		ticketsCollection: {
			{Keys: bsonKeys("userId", 1, "createdAt", -1)},
		},
		storiesCollection: {
			{Keys: bsonKeys("createdAt", -1)},
		},
	}
}
