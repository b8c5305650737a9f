package mongo

import (
	"context"
	"testing"

	"github.com/JocaCola1972/Treinos-LevelUP/internal/domain"
	"github.com/JocaCola1972/Treinos-LevelUP/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("select all decodes rows", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		ns := mt.DB.Name() + "." + userCollectionName
		mt.AddMockResponses(
			mtest.CreateCursorResponse(1, ns, mtest.FirstBatch,
				bson.D{
					{Key: "_id", Value: "u2"},
					{Key: "name", Value: "Ana Silva"},
					{Key: "role", Value: "STUDENT"},
					{Key: "phone", Value: "911111111"},
					{Key: "password", Value: "123"},
				},
				bson.D{
					{Key: "_id", Value: "u3"},
					{Key: "name", Value: "Bruno Costa"},
					{Key: "role", Value: "STUDENT"},
					{Key: "phone", Value: "922222222"},
				},
			),
			mtest.CreateCursorResponse(0, ns, mtest.NextBatch),
		)

		users, err := repo.SelectAll(context.Background())
		require.NoError(mt, err)
		require.Len(mt, users, 2)
		assert.Equal(mt, "u2", users[0].ID)
		assert.Equal(mt, domain.RoleStudent, users[0].Role)
		assert.True(mt, users[0].HasPassword())
		assert.False(mt, users[1].HasPassword())
	})

	mt.Run("insert maps duplicate phone", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		err := repo.Insert(context.Background(), &domain.User{ID: "u9", Name: "Rui", Phone: "911111111", Role: domain.RoleStudent})
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "already exists")
	})

	mt.Run("insert requires id", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		err := repo.Insert(context.Background(), &domain.User{Name: "Rui"})
		assert.Error(mt, err)
	})

	mt.Run("update of missing row is not found", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := repo.Update(context.Background(), "ghost", repository.Fields{"name": "X"})
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})

	mt.Run("update with no fields is a no-op", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		assert.NoError(mt, repo.Update(context.Background(), "u2", nil))
	})

	mt.Run("delete", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		assert.NoError(mt, repo.Delete(context.Background(), "u2"))

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))
		assert.ErrorIs(mt, repo.Delete(context.Background(), "u2"), repository.ErrNotFound)
	})
}

func TestShiftRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("select all fills missing rosters", func(mt *mtest.T) {
		repo := NewMongoShiftRepository(mt.DB)
		ns := mt.DB.Name() + "." + shiftCollectionName
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
				bson.D{
					{Key: "_id", Value: "s2"},
					{Key: "dayOfWeek", Value: "Quarta-feira"},
					{Key: "startTime", Value: "19:30"},
					{Key: "durationMinutes", Value: 90},
					{Key: "studentIds", Value: bson.A{"u3", "u5"}},
					{Key: "recurrence", Value: "SEMANAL"},
				},
				bson.D{
					{Key: "_id", Value: "s9"},
					{Key: "dayOfWeek", Value: "Sábado"},
					{Key: "startTime", Value: "10:00"},
					{Key: "durationMinutes", Value: 60},
					{Key: "recurrence", Value: "PONTUAL"},
				},
			),
		)

		shifts, err := repo.SelectAll(context.Background())
		require.NoError(mt, err)
		require.Len(mt, shifts, 2)
		assert.Equal(mt, []string{"u3", "u5"}, shifts[0].StudentIDs)
		assert.Equal(mt, domain.RecurrenceWeekly, shifts[0].Recurrence)
		assert.NotNil(mt, shifts[1].StudentIDs)
		assert.Empty(mt, shifts[1].StudentIDs)
	})

	mt.Run("remove student", func(mt *mtest.T) {
		repo := NewMongoShiftRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 2},
			bson.E{Key: "nModified", Value: 2},
		))
		assert.NoError(mt, repo.RemoveStudent(context.Background(), "u3"))
		assert.Error(mt, repo.RemoveStudent(context.Background(), ""))
	})

	mt.Run("store failure surfaces", func(mt *mtest.T) {
		repo := NewMongoShiftRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11600,
			Name:    "InterruptedAtShutdown",
			Message: "shutting down",
		}))
		_, err := repo.SelectAll(context.Background())
		assert.Error(mt, err)
	})
}

func TestSessionRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("select all decodes session fields", func(mt *mtest.T) {
		repo := NewMongoSessionRepository(mt.DB)
		ns := mt.DB.Name() + "." + sessionCollectionName
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
				bson.D{
					{Key: "_id", Value: "ts1"},
					{Key: "shiftId", Value: "s1"},
					{Key: "date", Value: "2023-10-23"},
					{Key: "isActive", Value: false},
					{Key: "completed", Value: true},
					{Key: "attendeeIds", Value: bson.A{"u2", "u4"}},
					{Key: "notes", Value: "Trabalho de volley"},
					{Key: "aiInsights", Value: "Bom ritmo"},
				},
				bson.D{
					{Key: "_id", Value: "ts0"},
					{Key: "shiftId", Value: "s2"},
					{Key: "date", Value: "2023-10-20"},
					{Key: "isActive", Value: true},
				},
			),
		)

		sessions, err := repo.SelectAll(context.Background())
		require.NoError(mt, err)
		require.Len(mt, sessions, 2)
		assert.Equal(mt, domain.SessionCompleted, sessions[0].Status())
		assert.Equal(mt, []string{"u2", "u4"}, sessions[0].AttendeeIDs)
		assert.Equal(mt, "Bom ritmo", sessions[0].AIInsights)
		assert.Equal(mt, domain.SessionActive, sessions[1].Status())
		assert.Empty(mt, sessions[1].AttendeeIDs)
	})

	mt.Run("insert requires shift", func(mt *mtest.T) {
		repo := NewMongoSessionRepository(mt.DB)
		err := repo.Insert(context.Background(), &domain.TrainingSession{ID: "ts-1"})
		assert.Error(mt, err)
	})

	mt.Run("insert", func(mt *mtest.T) {
		repo := NewMongoSessionRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		err := repo.Insert(context.Background(), &domain.TrainingSession{ID: "ts-1", ShiftID: "s1", Active: true, AttendeeIDs: []string{}})
		assert.NoError(mt, err)
	})

	mt.Run("update attendees", func(mt *mtest.T) {
		repo := NewMongoSessionRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))
		err := repo.Update(context.Background(), "ts-1", repository.Fields{"attendeeIds": []string{"u3"}})
		assert.NoError(mt, err)
	})
}
