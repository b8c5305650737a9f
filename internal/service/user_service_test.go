package service

import (
	"context"
	"testing"

	"github.com/JocaCola1972/Treinos-LevelUP/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestDeleteUserPrunesRosters(t *testing.T) {
	store := newMemStore(domain.Fixtures())
	ctrl := newTestController(t, store)
	users := NewUserService(ctrl)

	require.NoError(t, users.DeleteUser(context.Background(), "admin1", "u2"))

	state := ctrl.Snapshot()
	assert.Nil(t, state.FindUser("u2"))
	assert.Equal(t, []string{"u4"}, state.FindShift("s1").StudentIDs)
	assert.Equal(t, []string{"u3", "u5"}, state.FindShift("s2").StudentIDs)
	assert.Equal(t, []string{"u3"}, state.FindShift("s3").StudentIDs)
	// Attendance is history
	assert.Equal(t, []string{"u2", "u4"}, state.FindSession("ts1").AttendeeIDs)

	assert.Equal(t, []string{"users.delete:u2", "shifts.pull:u2"}, store.recorded())
	assert.Equal(t, []string{"u4"}, store.shifts[0].StudentIDs)
}

func TestDeleteUserWithoutShifts(t *testing.T) {
	store := newMemStore(domain.Fixtures())
	ctrl := newTestController(t, store)
	users := NewUserService(ctrl)

	require.NoError(t, users.DeleteUser(context.Background(), "admin1", "u1"))
	assert.Equal(t, []string{"users.delete:u1"}, store.recorded())
}

func TestDeleteUserRejections(t *testing.T) {
	ctrl := newTestController(t, newMemStore(domain.Fixtures()))
	users := NewUserService(ctrl)
	ctx := context.Background()

	assert.ErrorIs(t, users.DeleteUser(ctx, "admin1", "admin1"), ErrCannotDeleteSelf)
	assert.ErrorIs(t, users.DeleteUser(ctx, "u1", "u2"), ErrForbidden)
	assert.ErrorIs(t, users.DeleteUser(ctx, "admin1", "ghost"), ErrUserNotFound)
	assert.Len(t, ctrl.Snapshot().Users, 6)
}

func TestCreateUser(t *testing.T) {
	store := newMemStore(domain.Fixtures())
	ctrl := newTestController(t, store)
	users := NewUserService(ctrl)
	ctx := context.Background()

	created, err := users.CreateUser(ctx, "admin1", NewUserInput{Name: " Rui Alves ", Phone: "955555555"})
	require.NoError(t, err)
	assert.Equal(t, "Rui Alves", created.Name)
	assert.Equal(t, domain.RoleStudent, created.Role)
	assert.Equal(t, domain.DefaultAvatar("955555555"), created.Avatar)
	assert.False(t, created.HasPassword())
	assert.Equal(t, domain.NewID(domain.UserIDPrefix, fixedNow), created.ID)
	assert.Equal(t, []string{"users.insert:" + created.ID}, store.recorded())

	coach, err := users.CreateUser(ctx, "admin1", NewUserInput{
		Name: "Sofia", Phone: "966666666", Role: domain.RoleCoach, Password: "smash",
	})
	require.NoError(t, err)
	assert.NotEqual(t, created.ID, coach.ID)
	assert.True(t, domain.VerifyPassword(coach.Password, "smash"))
	assert.NotEqual(t, "smash", coach.Password)
}

func TestCreateUserRejections(t *testing.T) {
	store := newMemStore(domain.Fixtures())
	ctrl := newTestController(t, store)
	users := NewUserService(ctrl)
	ctx := context.Background()

	cases := []struct {
		name   string
		viewer string
		input  NewUserInput
		want   error
	}{
		{"coach", "u1", NewUserInput{Name: "X", Phone: "1"}, ErrForbidden},
		{"phone taken", "admin1", NewUserInput{Name: "X", Phone: "911111111"}, ErrPhoneTaken},
		{"no name", "admin1", NewUserInput{Name: " ", Phone: "1"}, domain.ErrEmptyName},
		{"no phone", "admin1", NewUserInput{Name: "X"}, domain.ErrEmptyPhone},
		{"bad role", "admin1", NewUserInput{Name: "X", Phone: "1", Role: "GUEST"}, domain.ErrInvalidRole},
		{"short password", "admin1", NewUserInput{Name: "X", Phone: "1", Password: "abc"}, domain.ErrPasswordTooShort},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := users.CreateUser(ctx, tc.viewer, tc.input)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Len(t, ctrl.Snapshot().Users, 6)
	assert.Empty(t, store.recorded())
}

func TestListUsers(t *testing.T) {
	ctrl := newTestController(t, newMemStore(domain.Fixtures()))
	users := NewUserService(ctrl)
	ctx := context.Background()

	all, err := users.ListUsers(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, all, 6)

	_, err = users.ListUsers(ctx, "u2")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateProfile(t *testing.T) {
	store := newMemStore(domain.Fixtures())
	ctrl := newTestController(t, store)
	users := NewUserService(ctrl)
	ctx := context.Background()

	level := domain.LevelIntermediate
	updated, err := users.UpdateProfile(ctx, "u2", ProfileUpdate{Name: strPtr("João P. Silva"), Level: &level})
	require.NoError(t, err)
	assert.Equal(t, "João P. Silva", updated.Name)
	assert.Equal(t, domain.LevelIntermediate, updated.Level)
	assert.Equal(t, "123", updated.Password)

	me, err := users.Me(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, *updated, *me)
	assert.Equal(t, []string{"users.update:u2"}, store.recorded())

	_, err = users.UpdateProfile(ctx, "u2", ProfileUpdate{Password: strPtr("abc")})
	assert.ErrorIs(t, err, domain.ErrPasswordTooShort)

	_, err = users.UpdateProfile(ctx, "u2", ProfileUpdate{Name: strPtr("  ")})
	assert.ErrorIs(t, err, domain.ErrEmptyName)

	updated, err = users.UpdateProfile(ctx, "u2", ProfileUpdate{Password: strPtr("bandeja")})
	require.NoError(t, err)
	assert.True(t, domain.VerifyPassword(updated.Password, "bandeja"))

	// Nothing to change, nothing written
	_, err = users.UpdateProfile(ctx, "u2", ProfileUpdate{})
	require.NoError(t, err)
	assert.Len(t, store.recorded(), 2)

	_, err = users.UpdateProfile(ctx, "ghost", ProfileUpdate{Name: strPtr("x")})
	assert.ErrorIs(t, err, ErrUserNotFound)
}
