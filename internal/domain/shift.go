package domain

import (
	"errors"
	"strings"
	"time"
)

// Days of the week, in the order the schedule is displayed.
const (
	Monday    = "Segunda-feira"
	Tuesday   = "Terça-feira"
	Wednesday = "Quarta-feira"
	Thursday  = "Quinta-feira"
	Friday    = "Sexta-feira"
	Saturday  = "Sábado"
	Sunday    = "Domingo"
)

// DaysOfWeek contains all valid day values.
var DaysOfWeek = []string{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// RecurrenceType is a descriptive label. Nothing in the system materializes
// future occurrences from it; a coach starts every real session by hand.
type RecurrenceType string

const (
	RecurrenceOnce     RecurrenceType = "PONTUAL"
	RecurrenceWeekly   RecurrenceType = "SEMANAL"
	RecurrenceBiweekly RecurrenceType = "QUINZENAL"
)

// Valid reports whether r is a known recurrence kind.
func (r RecurrenceType) Valid() bool {
	switch r {
	case RecurrenceOnce, RecurrenceWeekly, RecurrenceBiweekly:
		return true
	}
	return false
}

// Badge returns the short label rendered next to a shift.
func (r RecurrenceType) Badge() string {
	switch r {
	case RecurrenceWeekly:
		return "SEMANAL"
	case RecurrenceBiweekly:
		return "QUINZENAL"
	default:
		return "PONTUAL"
	}
}

// Input rules for shift duration. They are checked when a shift is created,
// not re-validated on rows loaded from the store.
const (
	MinShiftDuration  = 30
	ShiftDurationStep = 15
)

var (
	ErrInvalidDay        = errors.New("day must be a valid day of the week")
	ErrInvalidStartTime  = errors.New("start time must be in HH:MM format")
	ErrInvalidDuration   = errors.New("duration must be at least 30 minutes in steps of 15")
	ErrInvalidRecurrence = errors.New("recurrence must be one of PONTUAL, SEMANAL, QUINZENAL")
	ErrInvalidStartDate  = errors.New("start date must be in YYYY-MM-DD format")
)

// Shift is a reusable training slot template with an assigned roster.
// StudentIDs is meant as a set but stored as a list.
type Shift struct {
	ID              string         `bson:"_id" json:"id"`
	DayOfWeek       string         `bson:"dayOfWeek" json:"dayOfWeek"`
	StartTime       string         `bson:"startTime" json:"startTime"`
	DurationMinutes int            `bson:"durationMinutes" json:"durationMinutes"`
	StudentIDs      []string       `bson:"studentIds" json:"studentIds"`
	Recurrence      RecurrenceType `bson:"recurrence" json:"recurrence"`
	StartDate       string         `bson:"startDate,omitempty" json:"startDate,omitempty"` // YYYY-MM-DD
	Level           SkillLevel     `bson:"level,omitempty" json:"level,omitempty"`
}

// Validate checks the input rules applied when a shift is created.
func (s *Shift) Validate() error {
	if !IsValidDay(s.DayOfWeek) {
		return ErrInvalidDay
	}
	if _, err := time.Parse("15:04", s.StartTime); err != nil {
		return ErrInvalidStartTime
	}
	if s.DurationMinutes < MinShiftDuration || s.DurationMinutes%ShiftDurationStep != 0 {
		return ErrInvalidDuration
	}
	if !s.Recurrence.Valid() {
		return ErrInvalidRecurrence
	}
	if s.StartDate != "" {
		if _, err := time.Parse("2006-01-02", s.StartDate); err != nil {
			return ErrInvalidStartDate
		}
	}
	return nil
}

// HasStudent reports whether userID is on the roster.
func (s *Shift) HasStudent(userID string) bool {
	for _, id := range s.StudentIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// FormattedStartDate renders the anchor date as DD/MM, or "" when the shift
// has no start date or it is not in YYYY-MM-DD form.
func (s *Shift) FormattedStartDate() string {
	return FormatShiftDate(s.StartDate)
}

// FormatShiftDate converts YYYY-MM-DD into DD/MM.
func FormatShiftDate(date string) string {
	parts := strings.Split(date, "-")
	if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
		return ""
	}
	return parts[2] + "/" + parts[1]
}

// IsValidDay reports whether day is one of DaysOfWeek.
func IsValidDay(day string) bool {
	for _, d := range DaysOfWeek {
		if d == day {
			return true
		}
	}
	return false
}

// UniqueStudentIDs returns ids without duplicates, keeping first-seen order.
// Used on shift creation so a roster never lists the same student twice.
func UniqueStudentIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
