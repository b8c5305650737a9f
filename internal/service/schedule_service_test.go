package service

import (
	"context"
	"testing"

	"github.com/JocaCola1972/Treinos-LevelUP/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateShift(t *testing.T) {
	store := newMemStore(domain.Fixtures())
	ctrl := newTestController(t, store)
	shifts := NewScheduleService(ctrl)

	sh, err := shifts.CreateShift(context.Background(), "u1", ShiftInput{
		DayOfWeek:       domain.Thursday,
		StartTime:       "20:00",
		DurationMinutes: 75,
		StudentIDs:      []string{"u2", "u5", "u2"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RecurrenceWeekly, sh.Recurrence)
	assert.Equal(t, "2024-03-06", sh.StartDate)
	assert.Equal(t, []string{"u2", "u5"}, sh.StudentIDs)
	assert.Equal(t, domain.NewID(domain.ShiftIDPrefix, fixedNow), sh.ID)
	assert.Equal(t, []string{"shifts.insert:" + sh.ID}, store.recorded())

	views, err := shifts.ListShifts(context.Background(), "u5")
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "s2", views[0].ID)
	assert.Equal(t, sh.ID, views[1].ID)
	assert.Equal(t, "06/03", views[1].FormattedStartDate)
	assert.Equal(t, "SEMANAL", views[1].RecurrenceBadge)
	require.Len(t, views[1].Students, 2)
	assert.Equal(t, "João Silva", views[1].Students[0].Name)
}

func TestCreateShiftValidation(t *testing.T) {
	store := newMemStore(domain.Fixtures())
	ctrl := newTestController(t, store)
	shifts := NewScheduleService(ctrl)
	ctx := context.Background()

	valid := ShiftInput{DayOfWeek: domain.Monday, StartTime: "18:00", DurationMinutes: 60}
	cases := []struct {
		name   string
		mutate func(*ShiftInput)
		want   error
	}{
		{"day", func(in *ShiftInput) { in.DayOfWeek = "Monday" }, domain.ErrInvalidDay},
		{"time", func(in *ShiftInput) { in.StartTime = "6pm" }, domain.ErrInvalidStartTime},
		{"too short", func(in *ShiftInput) { in.DurationMinutes = 15 }, domain.ErrInvalidDuration},
		{"off step", func(in *ShiftInput) { in.DurationMinutes = 50 }, domain.ErrInvalidDuration},
		{"recurrence", func(in *ShiftInput) { in.Recurrence = "MENSAL" }, domain.ErrInvalidRecurrence},
		{"start date", func(in *ShiftInput) { in.StartDate = "06/03/2024" }, domain.ErrInvalidStartDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			_, err := shifts.CreateShift(ctx, "u1", in)
			assert.ErrorIs(t, err, tc.want)
			assert.True(t, IsValidationError(err))
		})
	}

	_, err := shifts.CreateShift(ctx, "u2", valid)
	assert.ErrorIs(t, err, ErrForbidden)

	assert.Len(t, ctrl.Snapshot().Shifts, 3)
	assert.Empty(t, store.recorded())
}

func TestListShiftsForStudent(t *testing.T) {
	ctrl := newTestController(t, newMemStore(domain.Fixtures()))
	shifts := NewScheduleService(ctrl)

	views, err := shifts.ListShifts(context.Background(), "u2")
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "s1", views[0].ID)
	assert.Equal(t, "s3", views[1].ID)

	views, err = shifts.ListShifts(context.Background(), "admin1")
	require.NoError(t, err)
	assert.Len(t, views, 3)
}

func TestDeleteShiftLeavesSessions(t *testing.T) {
	store := newMemStore(domain.Fixtures())
	ctrl := newTestController(t, store)
	shifts := NewScheduleService(ctrl)
	ctx := context.Background()

	assert.ErrorIs(t, shifts.DeleteShift(ctx, "u2", "s1"), ErrForbidden)
	require.NoError(t, shifts.DeleteShift(ctx, "u1", "s1"))
	assert.ErrorIs(t, shifts.DeleteShift(ctx, "u1", "s1"), ErrShiftNotFound)

	state := ctrl.Snapshot()
	assert.Nil(t, state.FindShift("s1"))
	require.NotNil(t, state.FindSession("ts1"))
	assert.Equal(t, "s1", state.FindSession("ts1").ShiftID)
	assert.Equal(t, []string{"shifts.delete:s1"}, store.recorded())
}

func TestCoachingTipsUseViewerLevel(t *testing.T) {
	ctrl := newTestController(t, newMemStore(domain.Fixtures()))
	gen := &fakeGenerator{tips: "Mantém a raquete alta."}
	coaching := NewCoachingService(ctrl, gen)

	tips, err := coaching.Tips(context.Background(), "u5", "")
	require.NoError(t, err)
	assert.Equal(t, "Mantém a raquete alta.", tips)
	assert.Equal(t, []domain.SkillLevel{domain.LevelAdvanced}, gen.levels)

	_, err = coaching.Tips(context.Background(), "ghost", "")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
