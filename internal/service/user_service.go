package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/JocaCola1972/Treinos-LevelUP/internal/domain"
	"github.com/JocaCola1972/Treinos-LevelUP/internal/metrics"
	"github.com/JocaCola1972/Treinos-LevelUP/internal/repository"
)

// NewUserInput carries the admin "add athlete" form.
type NewUserInput struct {
	Name     string
	Phone    string
	Role     domain.Role       // defaults to STUDENT
	Level    domain.SkillLevel // optional
	Avatar   string            // defaults to a generated avatar
	Password string            // optional; empty means first login sets it
}

// ProfileUpdate carries the profile settings form. Nil fields are left alone.
type ProfileUpdate struct {
	Name     *string
	Avatar   *string
	Level    *domain.SkillLevel
	Password *string
}

// UserService manages the user directory and the viewer's own profile.
type UserService interface {
	Me(ctx context.Context, viewerID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, viewerID string, update ProfileUpdate) (*domain.User, error)
	ListUsers(ctx context.Context, viewerID string) ([]domain.User, error)
	CreateUser(ctx context.Context, viewerID string, input NewUserInput) (*domain.User, error)
	// DeleteUser removes the user and prunes them from every shift roster.
	// Session attendance history keeps the id.
	DeleteUser(ctx context.Context, viewerID, userID string) error
}

type userService struct {
	ctrl *Controller
}

// NewUserService creates a new instance of userService.
func NewUserService(ctrl *Controller) UserService {
	return &userService{ctrl: ctrl}
}

func (s *userService) Me(ctx context.Context, viewerID string) (*domain.User, error) {
	viewer, _, err := s.ctrl.viewer(viewerID)
	return viewer, err
}

func (s *userService) UpdateProfile(ctx context.Context, viewerID string, update ProfileUpdate) (*domain.User, error) {
	fields := repository.Fields{}
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, domain.ErrEmptyName
		}
		fields["name"] = name
	}
	if update.Avatar != nil {
		fields["avatar"] = strings.TrimSpace(*update.Avatar)
	}
	if update.Level != nil {
		fields["level"] = *update.Level
	}
	if update.Password != nil {
		if err := domain.ValidatePassword(*update.Password); err != nil {
			return nil, err
		}
		hashed, err := domain.HashPassword(*update.Password)
		if err != nil {
			log.Printf("ERROR: Failed to hash password for user %s: %v", viewerID, err)
			return nil, ErrHashingFailed
		}
		fields["password"] = hashed
	}

	var updated domain.User
	_, err := s.ctrl.apply(func(_ time.Time, st domain.State) (domain.State, error) {
		u := st.FindUser(viewerID)
		if u == nil {
			return st, ErrUserNotFound
		}
		if v, ok := fields["name"].(string); ok {
			u.Name = v
		}
		if v, ok := fields["avatar"].(string); ok {
			u.Avatar = v
		}
		if v, ok := fields["level"].(domain.SkillLevel); ok {
			u.Level = v
		}
		if v, ok := fields["password"].(string); ok {
			u.Password = v
		}
		updated = *u
		return st.WithUserReplaced(updated), nil
	})
	if err != nil {
		return nil, err
	}

	if len(fields) > 0 {
		s.ctrl.persist(ctx, collectionUsers, metrics.OpUpdate, viewerID, func(ctx context.Context, b *repository.Backend) error {
			return b.Users.Update(ctx, viewerID, fields)
		})
	}
	return &updated, nil
}

func (s *userService) ListUsers(ctx context.Context, viewerID string) ([]domain.User, error) {
	viewer, state, err := s.ctrl.viewer(viewerID)
	if err != nil {
		return nil, err
	}
	if !domain.CanListUsers(viewer.Role) {
		return nil, ErrForbidden
	}
	return state.Users, nil
}

func (s *userService) CreateUser(ctx context.Context, viewerID string, input NewUserInput) (*domain.User, error) {
	viewer, _, err := s.ctrl.viewer(viewerID)
	if err != nil {
		return nil, err
	}
	if !domain.CanManageUsers(viewer.Role) {
		return nil, ErrForbidden
	}

	user := domain.User{
		Name:   strings.TrimSpace(input.Name),
		Phone:  strings.TrimSpace(input.Phone),
		Role:   input.Role,
		Level:  input.Level,
		Avatar: strings.TrimSpace(input.Avatar),
	}
	if user.Role == "" {
		user.Role = domain.RoleStudent
	}
	if user.Avatar == "" {
		user.Avatar = domain.DefaultAvatar(user.Phone)
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	if input.Password != "" {
		if err := domain.ValidatePassword(input.Password); err != nil {
			return nil, err
		}
		if user.Password, err = domain.HashPassword(input.Password); err != nil {
			return nil, ErrHashingFailed
		}
	}

	_, err = s.ctrl.apply(func(now time.Time, st domain.State) (domain.State, error) {
		// Login picks the first phone match, so phones must stay unique
		if st.FindUserByPhone(user.Phone) != nil {
			return st, ErrPhoneTaken
		}
		user.ID = st.NextID(domain.UserIDPrefix, now)
		return st.WithUser(user), nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("INFO: User %s (%s) created by %s", user.ID, user.Role, viewer.ID)

	s.ctrl.persist(ctx, collectionUsers, metrics.OpInsert, user.ID, func(ctx context.Context, b *repository.Backend) error {
		return b.Users.Insert(ctx, &user)
	})
	return &user, nil
}

func (s *userService) DeleteUser(ctx context.Context, viewerID, userID string) error {
	viewer, _, err := s.ctrl.viewer(viewerID)
	if err != nil {
		return err
	}
	if !domain.CanManageUsers(viewer.Role) {
		return ErrForbidden
	}
	if userID == viewer.ID {
		return ErrCannotDeleteSelf
	}

	var pruned int
	_, err = s.ctrl.apply(func(_ time.Time, st domain.State) (domain.State, error) {
		if st.FindUser(userID) == nil {
			return st, ErrUserNotFound
		}
		pruned = len(st.ShiftsWithStudent(userID))
		return st.WithoutUser(userID), nil
	})
	if err != nil {
		return err
	}
	log.Printf("INFO: User %s deleted by %s, removed from %d shift rosters", userID, viewer.ID, pruned)

	s.ctrl.persist(ctx, collectionUsers, metrics.OpDelete, userID, func(ctx context.Context, b *repository.Backend) error {
		return b.Users.Delete(ctx, userID)
	})
	if pruned > 0 {
		s.ctrl.persist(ctx, collectionShifts, metrics.OpUpdate, userID, func(ctx context.Context, b *repository.Backend) error {
			return b.Shifts.RemoveStudent(ctx, userID)
		})
	}
	return nil
}
