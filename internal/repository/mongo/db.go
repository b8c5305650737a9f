package mongo

import (
	"context"
	"time"

	"github.com/JocaCola1972/Treinos-LevelUP/internal/repository"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Default connection timeout
const defaultTimeout = 10 * time.Second

// Collection names, matching the tables of the hosted store.
const (
	userCollectionName    = "users"
	shiftCollectionName   = "shifts"
	sessionCollectionName = "sessions"
)

// ConnectDB establishes a connection to MongoDB and pings the primary.
// A zero timeout falls back to defaultTimeout.
func ConnectDB(uri string, timeout time.Duration) (*mongo.Client, error) {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetServerSelectionTimeout(timeout))
	if err != nil {
		return nil, err
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), timeout)
	defer pingCancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		// Ping failed: release the client before reporting
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
		return nil, err
	}
	return client, nil
}

// DisconnectDB gracefully disconnects the MongoDB client.
func DisconnectDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}

// NewBackend wires the three collection repositories on db.
func NewBackend(db *mongo.Database) *repository.Backend {
	return &repository.Backend{
		Users:    NewMongoUserRepository(db),
		Shifts:   NewMongoShiftRepository(db),
		Sessions: NewMongoSessionRepository(db),
	}
}

// EnsureIndexes creates the indexes of every collection. Failures are
// returned, not fatal: the store keeps working without them.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := EnsureUserIndexes(ctx, db.Collection(userCollectionName)); err != nil {
		return err
	}
	if err := EnsureShiftIndexes(ctx, db.Collection(shiftCollectionName)); err != nil {
		return err
	}
	return EnsureSessionIndexes(ctx, db.Collection(sessionCollectionName))
}
