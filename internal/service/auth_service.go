package service

import (
	"context"
	"log"
	"time"

	"github.com/JocaCola1972/Treinos-LevelUP/internal/domain"
	"github.com/JocaCola1972/Treinos-LevelUP/internal/metrics"
	"github.com/JocaCola1972/Treinos-LevelUP/internal/repository"
	"github.com/golang-jwt/jwt/v4"
)

// LoginStep tells the client which form follows the phone lookup.
type LoginStep string

const (
	StepPassword       LoginStep = "password"
	StepCreatePassword LoginStep = "create"
)

// LookupResult is the outcome of the phone step of the login flow.
type LookupResult struct {
	UserID string    `json:"userId"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar"`
	Next   LoginStep `json:"next"`
}

// AuthService runs the phone/password login flow and issues viewer tokens.
type AuthService interface {
	// Lookup finds the user by exact phone match and says which step follows.
	Lookup(ctx context.Context, phone string) (*LookupResult, error)
	Login(ctx context.Context, phone, password string) (token string, user *domain.User, err error)
	// CreateFirstPassword sets the password of a user that has none and logs
	// them in. An empty confirm skips the confirmation check.
	CreateFirstPassword(ctx context.Context, phone, password, confirm string) (token string, user *domain.User, err error)
	GetJWTSecret() string
}

// authService implements the AuthService interface.
type authService struct {
	ctrl          *Controller
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(ctrl *Controller, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = 12 * time.Hour
	}
	return &authService{
		ctrl:          ctrl,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

func (s *authService) Lookup(ctx context.Context, phone string) (*LookupResult, error) {
	user := s.ctrl.Snapshot().FindUserByPhone(phone)
	if user == nil {
		return nil, ErrPhoneNotRegistered
	}
	next := StepPassword
	if !user.HasPassword() {
		next = StepCreatePassword
	}
	return &LookupResult{UserID: user.ID, Name: user.Name, Avatar: user.Avatar, Next: next}, nil
}

func (s *authService) Login(ctx context.Context, phone, password string) (string, *domain.User, error) {
	user := s.ctrl.Snapshot().FindUserByPhone(phone)
	if user == nil {
		return "", nil, ErrPhoneNotRegistered
	}
	if !user.HasPassword() {
		return "", nil, ErrPasswordNotSet
	}
	if !domain.VerifyPassword(user.Password, password) {
		return "", nil, ErrAuthenticationFailed
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}
	return token, user, nil
}

func (s *authService) CreateFirstPassword(ctx context.Context, phone, password, confirm string) (string, *domain.User, error) {
	found := s.ctrl.Snapshot().FindUserByPhone(phone)
	if found == nil {
		return "", nil, ErrPhoneNotRegistered
	}
	if err := domain.ValidatePassword(password); err != nil {
		return "", nil, err
	}
	if confirm != "" && confirm != password {
		return "", nil, ErrPasswordMismatch
	}
	hashed, err := domain.HashPassword(password)
	if err != nil {
		log.Printf("ERROR: Failed to hash password for user %s: %v", found.ID, err)
		return "", nil, ErrHashingFailed
	}

	var user domain.User
	_, err = s.ctrl.apply(func(_ time.Time, st domain.State) (domain.State, error) {
		current := st.FindUser(found.ID)
		if current == nil {
			return st, ErrUserNotFound
		}
		// Someone else may have completed the first login meanwhile
		if current.HasPassword() {
			return st, ErrPasswordAlreadySet
		}
		current.Password = hashed
		user = *current
		return st.WithUserReplaced(user), nil
	})
	if err != nil {
		return "", nil, err
	}

	s.ctrl.persist(ctx, collectionUsers, metrics.OpUpdate, user.ID, func(ctx context.Context, b *repository.Backend) error {
		return b.Users.Update(ctx, user.ID, repository.Fields{"password": hashed})
	})

	token, err := s.generateJWT(&user)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}
	return token, &user, nil
}

// --- JWT Helper ---

// Claims is the JWT payload carried by viewer tokens.
type Claims struct {
	UserID string      `json:"uid"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// generateJWT creates a new JWT token for the given user.
func (s *authService) generateJWT(user *domain.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "treinos-levelup",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		log.Printf("ERROR: Failed to sign token for user %s: %v", user.ID, err)
		return "", err
	}
	return signed, nil
}

// GetJWTSecret returns the JWT secret for middleware authentication
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}
