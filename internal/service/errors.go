package service

import (
	"errors"

	"github.com/JocaCola1972/Treinos-LevelUP/internal/domain"
)

// --- Error Definitions ---
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrForbidden            = errors.New("operation not allowed for this role")
	ErrPhoneNotRegistered   = errors.New("phone number is not registered")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid phone or password")
	ErrPasswordNotSet       = errors.New("user has no password yet, create one first")
	ErrPasswordAlreadySet   = errors.New("user already has a password")
	ErrPasswordMismatch     = errors.New("password confirmation does not match")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
	ErrPhoneTaken           = errors.New("a user with this phone already exists")
	ErrCannotDeleteSelf     = errors.New("administrators cannot delete themselves")
	ErrShiftNotFound        = errors.New("shift not found")
	ErrSessionNotFound      = errors.New("session not found")
	ErrNotEnrolled          = errors.New("viewer is not enrolled in this session's shift")
	ErrUnsupportedVideoType = errors.New("unsupported video content type")
	ErrForeignVideo         = errors.New("uploaded video does not belong to this session")
)

// IsValidationError reports whether err is a user input problem rather
// than a server failure.
func IsValidationError(err error) bool {
	return errors.Is(err, domain.ErrPasswordTooShort) ||
		errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrEmptyPhone) ||
		errors.Is(err, domain.ErrInvalidRole) ||
		errors.Is(err, domain.ErrInvalidDay) ||
		errors.Is(err, domain.ErrInvalidStartTime) ||
		errors.Is(err, domain.ErrInvalidDuration) ||
		errors.Is(err, domain.ErrInvalidRecurrence) ||
		errors.Is(err, domain.ErrInvalidStartDate) ||
		errors.Is(err, domain.ErrNotesRequired) ||
		errors.Is(err, ErrPasswordMismatch) ||
		errors.Is(err, ErrUnsupportedVideoType) ||
		errors.Is(err, ErrForeignVideo)
}
