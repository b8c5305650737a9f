package mongo

import (
	"context"
	"errors"

	"github.com/JocaCola1972/Treinos-LevelUP/internal/domain"
	"github.com/JocaCola1972/Treinos-LevelUP/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoSessionRepository implements repository.SessionRepository
type mongoSessionRepository struct {
	collection *mongo.Collection
}

// NewMongoSessionRepository creates a new TrainingSession repository.
func NewMongoSessionRepository(db *mongo.Database) repository.SessionRepository {
	return &mongoSessionRepository{
		collection: db.Collection(sessionCollectionName),
	}
}

// SelectAll returns every session ordered by date, descending. Sessions
// sharing a date come back in whatever order the server picks.
func (r *mongoSessionRepository) SelectAll(ctx context.Context) ([]domain.TrainingSession, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	sessions := []domain.TrainingSession{}
	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	for i := range sessions {
		if sessions[i].AttendeeIDs == nil {
			sessions[i].AttendeeIDs = []string{}
		}
	}
	return sessions, nil
}

// Insert stores a new session.
func (r *mongoSessionRepository) Insert(ctx context.Context, session *domain.TrainingSession) error {
	if session.ID == "" || session.ShiftID == "" {
		return errors.New("session requires id and shiftId")
	}
	_, err := r.collection.InsertOne(ctx, session)
	return err
}

func (r *mongoSessionRepository) Update(ctx context.Context, id string, fields repository.Fields) error {
	return updateFields(ctx, r.collection, id, fields)
}

func (r *mongoSessionRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.collection, id)
}

// EnsureSessionIndexes creates necessary indexes. Call during startup.
func EnsureSessionIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "date", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "shiftId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
