package domain

import "time"

// State is the application's local copy of the three collections.
// Reducers never modify a State in place: each returns a new value whose
// changed slices are fresh, so a snapshot handed to a reader stays valid.
type State struct {
	Users    []User
	Shifts   []Shift
	Sessions []TrainingSession // newest first
}

// FindUser returns the user with id, or nil.
func (s State) FindUser(id string) *User {
	for i := range s.Users {
		if s.Users[i].ID == id {
			u := s.Users[i]
			return &u
		}
	}
	return nil
}

// FindUserByPhone returns the first user whose phone matches exactly.
func (s State) FindUserByPhone(phone string) *User {
	for i := range s.Users {
		if s.Users[i].Phone == phone {
			u := s.Users[i]
			return &u
		}
	}
	return nil
}

// FindShift returns the shift with id, or nil (orphaned sessions).
func (s State) FindShift(id string) *Shift {
	for i := range s.Shifts {
		if s.Shifts[i].ID == id {
			sh := s.Shifts[i]
			return &sh
		}
	}
	return nil
}

// FindSession returns the session with id, or nil.
func (s State) FindSession(id string) *TrainingSession {
	for i := range s.Sessions {
		if s.Sessions[i].ID == id {
			ts := s.Sessions[i]
			return &ts
		}
	}
	return nil
}

// NextID returns a fresh "{prefix}-{millis}" id, moving the timestamp
// forward while it collides with an existing id in the state.
func (s State) NextID(prefix string, now time.Time) string {
	for {
		id := NewID(prefix, now)
		if !s.hasID(id) {
			return id
		}
		now = now.Add(time.Millisecond)
	}
}

func (s State) hasID(id string) bool {
	return s.FindUser(id) != nil || s.FindShift(id) != nil || s.FindSession(id) != nil
}

// WithUser appends u.
func (s State) WithUser(u User) State {
	users := make([]User, 0, len(s.Users)+1)
	s.Users = append(append(users, s.Users...), u)
	return s
}

// WithUserReplaced swaps the user sharing u's id.
func (s State) WithUserReplaced(u User) State {
	users := make([]User, len(s.Users))
	for i, existing := range s.Users {
		if existing.ID == u.ID {
			existing = u
		}
		users[i] = existing
	}
	s.Users = users
	return s
}

// WithoutUser removes the user and prunes their id from every shift roster.
// Session attendee lists are history and keep the id.
func (s State) WithoutUser(id string) State {
	users := make([]User, 0, len(s.Users))
	for _, u := range s.Users {
		if u.ID != id {
			users = append(users, u)
		}
	}
	shifts := make([]Shift, len(s.Shifts))
	for i, sh := range s.Shifts {
		roster := make([]string, 0, len(sh.StudentIDs))
		for _, sid := range sh.StudentIDs {
			if sid != id {
				roster = append(roster, sid)
			}
		}
		sh.StudentIDs = roster
		shifts[i] = sh
	}
	s.Users = users
	s.Shifts = shifts
	return s
}

// ShiftsWithStudent lists the shifts whose roster contains id.
func (s State) ShiftsWithStudent(id string) []Shift {
	var out []Shift
	for _, sh := range s.Shifts {
		if sh.HasStudent(id) {
			out = append(out, sh)
		}
	}
	return out
}

// WithShift appends sh.
func (s State) WithShift(sh Shift) State {
	shifts := make([]Shift, 0, len(s.Shifts)+1)
	s.Shifts = append(append(shifts, s.Shifts...), sh)
	return s
}

// WithoutShift removes the shift. Its sessions stay and become orphaned.
func (s State) WithoutShift(id string) State {
	shifts := make([]Shift, 0, len(s.Shifts))
	for _, sh := range s.Shifts {
		if sh.ID != id {
			shifts = append(shifts, sh)
		}
	}
	s.Shifts = shifts
	return s
}

// WithSession puts a new session in front of the list.
func (s State) WithSession(ts TrainingSession) State {
	sessions := make([]TrainingSession, 0, len(s.Sessions)+1)
	s.Sessions = append(append(sessions, ts), s.Sessions...)
	return s
}

// WithSessionReplaced swaps the session sharing ts's id.
func (s State) WithSessionReplaced(ts TrainingSession) State {
	sessions := make([]TrainingSession, len(s.Sessions))
	for i, existing := range s.Sessions {
		if existing.ID == ts.ID {
			existing = ts
		}
		sessions[i] = existing
	}
	s.Sessions = sessions
	return s
}

// WithoutSession removes the session.
func (s State) WithoutSession(id string) State {
	sessions := make([]TrainingSession, 0, len(s.Sessions))
	for _, ts := range s.Sessions {
		if ts.ID != id {
			sessions = append(sessions, ts)
		}
	}
	s.Sessions = sessions
	return s
}
