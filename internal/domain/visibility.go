package domain

// MyShifts returns the shifts a viewer works with. Students only see shifts
// whose roster contains them; coaches and admins see the whole schedule.
// Input order is preserved. A nil viewer sees nothing.
func MyShifts(viewer *User, shifts []Shift) []Shift {
	if viewer == nil {
		return nil
	}
	if SeesWholeSchedule(viewer.Role) {
		return shifts
	}
	mine := make([]Shift, 0, len(shifts))
	for _, s := range shifts {
		if s.HasStudent(viewer.ID) {
			mine = append(mine, s)
		}
	}
	return mine
}

// ActiveSessions returns the live sessions visible to viewer. For students
// the session's shift must be in myShifts, even if an inconsistent row says
// otherwise. Rows carrying both flags are in neither list.
func ActiveSessions(viewer *User, sessions []TrainingSession, myShifts []Shift) []TrainingSession {
	return visibleSessions(viewer, sessions, myShifts, func(s *TrainingSession) bool { return s.Status() == SessionActive })
}

// PastSessions returns completed sessions visible to viewer, in input order.
// The store serves sessions by descending date with no secondary key, so
// sessions sharing a date have no defined relative order.
func PastSessions(viewer *User, sessions []TrainingSession, myShifts []Shift) []TrainingSession {
	return visibleSessions(viewer, sessions, myShifts, func(s *TrainingSession) bool { return s.Status() == SessionCompleted })
}

// CanSeeSession applies the same rule to a single session.
func CanSeeSession(viewer *User, session TrainingSession, myShifts []Shift) bool {
	if viewer == nil {
		return false
	}
	if SeesWholeSchedule(viewer.Role) {
		return true
	}
	for _, s := range myShifts {
		if s.ID == session.ShiftID {
			return true
		}
	}
	return false
}

func visibleSessions(viewer *User, sessions []TrainingSession, myShifts []Shift, keep func(*TrainingSession) bool) []TrainingSession {
	if viewer == nil {
		return nil
	}
	out := make([]TrainingSession, 0)
	for i := range sessions {
		s := &sessions[i]
		if !keep(s) || !CanSeeSession(viewer, *s, myShifts) {
			continue
		}
		out = append(out, *s)
	}
	return out
}
