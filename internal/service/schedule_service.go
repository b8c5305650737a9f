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

// ShiftInput carries the "schedule a training" form.
type ShiftInput struct {
	DayOfWeek       string
	StartTime       string
	DurationMinutes int
	StudentIDs      []string
	Recurrence      domain.RecurrenceType // defaults to SEMANAL
	StartDate       string                // YYYY-MM-DD, defaults to today
	Level           domain.SkillLevel
}

// ShiftView is a shift as rendered in the agenda.
type ShiftView struct {
	domain.Shift
	RecurrenceBadge    string        `json:"recurrenceBadge"`
	FormattedStartDate string        `json:"formattedStartDate,omitempty"`
	Students           []UserSummary `json:"students"`
}

// UserSummary is the public part of a user shown next to rosters and
// attendee lists.
type UserSummary struct {
	ID     string            `json:"id"`
	Name   string            `json:"name"`
	Avatar string            `json:"avatar"`
	Level  domain.SkillLevel `json:"level,omitempty"`
}

// ScheduleService manages the shift templates.
type ScheduleService interface {
	// ListShifts returns the viewer's shifts: students only get the ones
	// they are enrolled in.
	ListShifts(ctx context.Context, viewerID string) ([]ShiftView, error)
	CreateShift(ctx context.Context, viewerID string, input ShiftInput) (*domain.Shift, error)
	// DeleteShift removes the template. Its sessions stay as orphans.
	DeleteShift(ctx context.Context, viewerID, shiftID string) error
}

type scheduleService struct {
	ctrl *Controller
}

// NewScheduleService creates a new instance of scheduleService.
func NewScheduleService(ctrl *Controller) ScheduleService {
	return &scheduleService{ctrl: ctrl}
}

func (s *scheduleService) ListShifts(ctx context.Context, viewerID string) ([]ShiftView, error) {
	viewer, state, err := s.ctrl.viewer(viewerID)
	if err != nil {
		return nil, err
	}
	return shiftViews(state, domain.MyShifts(viewer, state.Shifts)), nil
}

func (s *scheduleService) CreateShift(ctx context.Context, viewerID string, input ShiftInput) (*domain.Shift, error) {
	viewer, _, err := s.ctrl.viewer(viewerID)
	if err != nil {
		return nil, err
	}
	if !domain.CanManageShifts(viewer.Role) {
		return nil, ErrForbidden
	}

	shift := domain.Shift{
		DayOfWeek:       strings.TrimSpace(input.DayOfWeek),
		StartTime:       strings.TrimSpace(input.StartTime),
		DurationMinutes: input.DurationMinutes,
		StudentIDs:      domain.UniqueStudentIDs(input.StudentIDs),
		Recurrence:      input.Recurrence,
		StartDate:       strings.TrimSpace(input.StartDate),
		Level:           input.Level,
	}
	if shift.Recurrence == "" {
		shift.Recurrence = domain.RecurrenceWeekly
	}
	if shift.StartDate == "" {
		shift.StartDate = s.ctrl.now().Format("2006-01-02")
	}
	if err := shift.Validate(); err != nil {
		return nil, err
	}

	_, err = s.ctrl.apply(func(now time.Time, st domain.State) (domain.State, error) {
		shift.ID = st.NextID(domain.ShiftIDPrefix, now)
		return st.WithShift(shift), nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("INFO: Shift %s (%s %s) created by %s", shift.ID, shift.DayOfWeek, shift.StartTime, viewer.ID)

	s.ctrl.persist(ctx, collectionShifts, metrics.OpInsert, shift.ID, func(ctx context.Context, b *repository.Backend) error {
		return b.Shifts.Insert(ctx, &shift)
	})
	return &shift, nil
}

func (s *scheduleService) DeleteShift(ctx context.Context, viewerID, shiftID string) error {
	viewer, _, err := s.ctrl.viewer(viewerID)
	if err != nil {
		return err
	}
	if !domain.CanManageShifts(viewer.Role) {
		return ErrForbidden
	}

	_, err = s.ctrl.apply(func(_ time.Time, st domain.State) (domain.State, error) {
		if st.FindShift(shiftID) == nil {
			return st, ErrShiftNotFound
		}
		return st.WithoutShift(shiftID), nil
	})
	if err != nil {
		return err
	}
	log.Printf("INFO: Shift %s deleted by %s", shiftID, viewer.ID)

	s.ctrl.persist(ctx, collectionShifts, metrics.OpDelete, shiftID, func(ctx context.Context, b *repository.Backend) error {
		return b.Shifts.Delete(ctx, shiftID)
	})
	return nil
}

func shiftViews(state domain.State, shifts []domain.Shift) []ShiftView {
	views := make([]ShiftView, 0, len(shifts))
	for _, sh := range shifts {
		views = append(views, newShiftView(state, sh))
	}
	return views
}

func newShiftView(state domain.State, sh domain.Shift) ShiftView {
	return ShiftView{
		Shift:              sh,
		RecurrenceBadge:    sh.Recurrence.Badge(),
		FormattedStartDate: sh.FormattedStartDate(),
		Students:           summaries(state, sh.StudentIDs),
	}
}

// summaries resolves ids to users, skipping ids of deleted users.
func summaries(state domain.State, ids []string) []UserSummary {
	out := make([]UserSummary, 0, len(ids))
	for _, id := range ids {
		if u := state.FindUser(id); u != nil {
			out = append(out, UserSummary{ID: u.ID, Name: u.Name, Avatar: u.Avatar, Level: u.Level})
		}
	}
	return out
}
