package domain

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// Role type to distinguish between user roles
type Role string

const (
	RoleCoach   Role = "COACH"
	RoleStudent Role = "STUDENT"
	RoleAdmin   Role = "ADMIN"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCoach, RoleStudent, RoleAdmin:
		return true
	}
	return false
}

// SkillLevel is the playing level of an athlete or the target level of a shift.
type SkillLevel string

const (
	LevelBeginner     SkillLevel = "Iniciante"
	LevelIntermediate SkillLevel = "Intermédio"
	LevelAdvanced     SkillLevel = "Avançado"
	LevelPro          SkillLevel = "Pro"
)

// MinPasswordLength is enforced on first login and on profile password changes.
const MinPasswordLength = 4

var (
	ErrPasswordTooShort = fmt.Errorf("password must have at least %d characters", MinPasswordLength)
	ErrInvalidRole      = errors.New("role must be one of COACH, STUDENT, ADMIN")
	ErrEmptyName        = errors.New("name cannot be empty")
	ErrEmptyPhone       = errors.New("phone cannot be empty")
)

// User represents a person using the system (coach, student or administrator).
// Phone is the login lookup key. An empty Password means the user has not
// gone through the first login yet.
type User struct {
	ID       string     `bson:"_id" json:"id"`
	Name     string     `bson:"name" json:"name"`
	Role     Role       `bson:"role" json:"role"`
	Level    SkillLevel `bson:"level,omitempty" json:"level,omitempty"`
	Avatar   string     `bson:"avatar" json:"avatar"`
	Phone    string     `bson:"phone" json:"phone"`
	Password string     `bson:"password,omitempty" json:"-"` // bcrypt hash, or legacy plain text
}

// HasPassword reports whether the user already set credentials.
func (u *User) HasPassword() bool {
	return u.Password != ""
}

func (u *User) IsStudent() bool { return u.Role == RoleStudent }
func (u *User) IsCoach() bool { return u.Role == RoleCoach }
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// Validate checks the attributes required at creation time.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(u.Phone) == "" {
		return ErrEmptyPhone
	}
	if !u.Role.Valid() {
		return ErrInvalidRole
	}
	return nil
}

// DefaultAvatar returns the generated avatar used when none is supplied.
func DefaultAvatar(phone string) string {
	return "https://i.pravatar.cc/150?u=" + phone
}

// --- Capabilities ---

// CanManageShifts reports whether the role may create and delete shifts.
func CanManageShifts(r Role) bool { return r == RoleCoach || r == RoleAdmin }

// CanStartSession reports whether the role may activate a session from a shift.
func CanStartSession(r Role) bool { return r == RoleCoach || r == RoleAdmin }

// CanCompleteSession reports whether the role may close an active session.
func CanCompleteSession(r Role) bool { return r == RoleCoach || r == RoleAdmin }

// CanDeleteSession reports whether the role may remove a session from history.
func CanDeleteSession(r Role) bool { return r == RoleCoach || r == RoleAdmin }

// CanManageUsers reports whether the role may create and delete users.
func CanManageUsers(r Role) bool { return r == RoleAdmin }

// CanListUsers reports whether the role may see the full user directory.
func CanListUsers(r Role) bool { return r == RoleCoach || r == RoleAdmin }

// SeesWholeSchedule reports whether the role sees every shift and session
// rather than only the ones it is enrolled in.
func SeesWholeSchedule(r Role) bool { return r != RoleStudent }

// --- Passwords ---

// ValidatePassword enforces the minimum length rule.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// HashPassword returns the bcrypt hash stored for a newly chosen password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword compares a submitted password with the stored value.
// Rows written before hashing was introduced still hold plain text and are
// compared directly.
func VerifyPassword(stored, submitted string) bool {
	if stored == "" {
		return false
	}
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(submitted)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(submitted)) == 1
}

func isBcryptHash(s string) bool {
	return len(s) == 60 && (strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$"))
}
