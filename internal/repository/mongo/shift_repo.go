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

// mongoShiftRepository implements repository.ShiftRepository
type mongoShiftRepository struct {
	collection *mongo.Collection
}

// NewMongoShiftRepository creates a new Shift repository.
func NewMongoShiftRepository(db *mongo.Database) repository.ShiftRepository {
	return &mongoShiftRepository{
		collection: db.Collection(shiftCollectionName),
	}
}

// SelectAll returns every shift in insertion order.
func (r *mongoShiftRepository) SelectAll(ctx context.Context) ([]domain.Shift, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	shifts := []domain.Shift{}
	if err = cursor.All(ctx, &shifts); err != nil {
		return nil, err
	}
	for i := range shifts {
		// Rows written by older clients may lack the roster
		if shifts[i].StudentIDs == nil {
			shifts[i].StudentIDs = []string{}
		}
	}
	return shifts, nil
}

// Insert stores a new shift.
func (r *mongoShiftRepository) Insert(ctx context.Context, shift *domain.Shift) error {
	if shift.ID == "" {
		return errors.New("shift ID is required")
	}
	_, err := r.collection.InsertOne(ctx, shift)
	return err
}

func (r *mongoShiftRepository) Update(ctx context.Context, id string, fields repository.Fields) error {
	return updateFields(ctx, r.collection, id, fields)
}

func (r *mongoShiftRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.collection, id)
}

// RemoveStudent pulls studentID from every roster that lists it.
func (r *mongoShiftRepository) RemoveStudent(ctx context.Context, studentID string) error {
	if studentID == "" {
		return errors.New("student ID is required")
	}
	filter := bson.M{"studentIds": studentID}
	update := bson.M{"$pull": bson.M{"studentIds": studentID}}
	_, err := r.collection.UpdateMany(ctx, filter, update)
	return err
}

// EnsureShiftIndexes creates necessary indexes. Call during startup.
func EnsureShiftIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// Student schedule lookups and roster pruning
			Keys:    bson.D{{Key: "studentIds", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "dayOfWeek", Value: 1}, {Key: "startTime", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
