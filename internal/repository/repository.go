package repository

import (
	"context"

	"github.com/JocaCola1972/Treinos-LevelUP/internal/domain"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUnavailable  = RepositoryError("store unavailable")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// Fields is a partial update keyed by stored field name (e.g. "attendeeIds").
type Fields map[string]interface{}

// UserRepository is the table contract for the users collection.
type UserRepository interface {
	SelectAll(ctx context.Context) ([]domain.User, error)
	Insert(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, id string, fields Fields) error
	Delete(ctx context.Context, id string) error
}

// ShiftRepository is the table contract for the shifts collection.
type ShiftRepository interface {
	SelectAll(ctx context.Context) ([]domain.Shift, error)
	Insert(ctx context.Context, shift *domain.Shift) error
	Update(ctx context.Context, id string, fields Fields) error
	Delete(ctx context.Context, id string) error
	// RemoveStudent pulls studentID from every roster.
	RemoveStudent(ctx context.Context, studentID string) error
}

// SessionRepository is the table contract for the sessions collection.
// SelectAll returns sessions ordered by date, descending.
type SessionRepository interface {
	SelectAll(ctx context.Context) ([]domain.TrainingSession, error)
	Insert(ctx context.Context, session *domain.TrainingSession) error
	Update(ctx context.Context, id string, fields Fields) error
	Delete(ctx context.Context, id string) error
}

// Backend groups the three collections of the hosted store.
type Backend struct {
	Users    UserRepository
	Shifts   ShiftRepository
	Sessions SessionRepository
}
