package domain

import (
	"errors"
	"strings"
	"time"
)

// SessionStatus is derived from the (Active, Completed) flag pair.
type SessionStatus string

const (
	SessionActive    SessionStatus = "ACTIVE"
	SessionCompleted SessionStatus = "COMPLETED"
	// SessionInvalid marks a flag pair that no transition produces
	// (both set or both cleared). Only reachable through bad stored data.
	SessionInvalid SessionStatus = "INVALID"
)

// SessionDateLayout is the pt-PT display date given to new sessions.
const SessionDateLayout = "02/01/2006"

var (
	ErrSessionNotActive = errors.New("session is not active")
	ErrSessionCompleted = errors.New("session is already completed")
	ErrNotesRequired    = errors.New("notes are required to complete a session")
	ErrInsightRequired  = errors.New("insight text is required to complete a session")
	ErrEmptyAttendeeID  = errors.New("attendee ID cannot be empty")
)

// TrainingSession is one concrete dated occurrence of a shift.
// Date is a free-form display string, not a validated calendar date.
type TrainingSession struct {
	ID          string   `bson:"_id" json:"id"`
	ShiftID     string   `bson:"shiftId" json:"shiftId"`
	Date        string   `bson:"date" json:"date"`
	Active      bool     `bson:"isActive" json:"isActive"`
	Completed   bool     `bson:"completed" json:"completed"`
	AttendeeIDs []string `bson:"attendeeIds" json:"attendeeIds"`
	VideoURL    string   `bson:"youtubeUrl,omitempty" json:"youtubeUrl,omitempty"`
	Notes       string   `bson:"notes,omitempty" json:"notes,omitempty"`
	AIInsights  string   `bson:"aiInsights,omitempty" json:"aiInsights,omitempty"`
}

// Status maps the flag pair to a lifecycle state.
func (s *TrainingSession) Status() SessionStatus {
	switch {
	case s.Active && !s.Completed:
		return SessionActive
	case s.Completed && !s.Active:
		return SessionCompleted
	default:
		return SessionInvalid
	}
}

// HasAttendee reports whether userID already confirmed attendance.
func (s *TrainingSession) HasAttendee(userID string) bool {
	for _, id := range s.AttendeeIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Activate starts a new session for shift: ACTIVE, dated now, nobody attending.
// Several active sessions for the same shift are allowed.
func Activate(shift Shift, id string, now time.Time) TrainingSession {
	return TrainingSession{
		ID:          id,
		ShiftID:     shift.ID,
		Date:        now.Format(SessionDateLayout),
		Active:      true,
		Completed:   false,
		AttendeeIDs: []string{},
	}
}

// ConfirmAttendance appends userID to the attendee list. Confirming twice is
// a no-op and reports changed=false. The session must be ACTIVE.
func ConfirmAttendance(s TrainingSession, userID string) (updated TrainingSession, changed bool, err error) {
	if userID == "" {
		return s, false, ErrEmptyAttendeeID
	}
	switch s.Status() {
	case SessionActive:
	case SessionCompleted:
		return s, false, ErrSessionCompleted
	default:
		return s, false, ErrSessionNotActive
	}
	if s.HasAttendee(userID) {
		return s, false, nil
	}
	attendees := make([]string, len(s.AttendeeIDs), len(s.AttendeeIDs)+1)
	copy(attendees, s.AttendeeIDs)
	s.AttendeeIDs = append(attendees, userID)
	return s, true, nil
}

// Completion carries what the coach submits when closing a session.
type Completion struct {
	VideoURL string
	Notes    string
	Insight  string
}

// ValidateCompletion checks the submission before any collaborator is called.
func ValidateCompletion(s TrainingSession, notes string) error {
	switch s.Status() {
	case SessionActive:
	case SessionCompleted:
		return ErrSessionCompleted
	default:
		return ErrSessionNotActive
	}
	if strings.TrimSpace(notes) == "" {
		return ErrNotesRequired
	}
	return nil
}

// Complete closes an ACTIVE session exactly once. There is no way back to ACTIVE.
func Complete(s TrainingSession, c Completion) (TrainingSession, error) {
	if err := ValidateCompletion(s, c.Notes); err != nil {
		return s, err
	}
	if strings.TrimSpace(c.Insight) == "" {
		return s, ErrInsightRequired
	}
	s.Active = false
	s.Completed = true
	s.VideoURL = strings.TrimSpace(c.VideoURL)
	s.Notes = c.Notes
	s.AIInsights = c.Insight
	return s, nil
}
