package service

import (
	"context"
	"sync"
	"time"

	"github.com/JocaCola1972/Treinos-LevelUP/internal/domain"
	"github.com/JocaCola1972/Treinos-LevelUP/internal/repository"
	"github.com/JocaCola1972/Treinos-LevelUP/internal/textgen"
)

var fixedNow = time.Date(2024, time.March, 6, 19, 25, 0, 0, time.UTC)

// memStore is an in-memory table store. Setting selectErr or writeErr makes
// the matching calls fail without touching the data.
type memStore struct {
	mu        sync.Mutex
	users     []domain.User
	shifts    []domain.Shift
	sessions  []domain.TrainingSession
	selectErr error
	writeErr  error
	writes    []string
}

func newMemStore(seed domain.State) *memStore {
	return &memStore{
		users:    append([]domain.User(nil), seed.Users...),
		shifts:   append([]domain.Shift(nil), seed.Shifts...),
		sessions: append([]domain.TrainingSession(nil), seed.Sessions...),
	}
}

func (m *memStore) backend() *repository.Backend {
	return &repository.Backend{
		Users:    &memUsers{m},
		Shifts:   &memShifts{m},
		Sessions: &memSessions{m},
	}
}

func (m *memStore) record(op string) error {
	m.writes = append(m.writes, op)
	return m.writeErr
}

func (m *memStore) recorded() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.writes...)
}

type memUsers struct{ m *memStore }

func (r *memUsers) SelectAll(ctx context.Context) ([]domain.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.selectErr != nil {
		return nil, r.m.selectErr
	}
	return append([]domain.User(nil), r.m.users...), nil
}

func (r *memUsers) Insert(ctx context.Context, u *domain.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.record("users.insert:" + u.ID); err != nil {
		return err
	}
	r.m.users = append(r.m.users, *u)
	return nil
}

func (r *memUsers) Update(ctx context.Context, id string, fields repository.Fields) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.record("users.update:" + id); err != nil {
		return err
	}
	for i := range r.m.users {
		if r.m.users[i].ID != id {
			continue
		}
		if v, ok := fields["password"].(string); ok {
			r.m.users[i].Password = v
		}
		if v, ok := fields["name"].(string); ok {
			r.m.users[i].Name = v
		}
		return nil
	}
	return repository.ErrNotFound
}

func (r *memUsers) Delete(ctx context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.record("users.delete:" + id); err != nil {
		return err
	}
	for i := range r.m.users {
		if r.m.users[i].ID == id {
			r.m.users = append(r.m.users[:i], r.m.users[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type memShifts struct{ m *memStore }

func (r *memShifts) SelectAll(ctx context.Context) ([]domain.Shift, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.selectErr != nil {
		return nil, r.m.selectErr
	}
	return append([]domain.Shift(nil), r.m.shifts...), nil
}

func (r *memShifts) Insert(ctx context.Context, s *domain.Shift) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.record("shifts.insert:" + s.ID); err != nil {
		return err
	}
	r.m.shifts = append(r.m.shifts, *s)
	return nil
}

func (r *memShifts) Update(ctx context.Context, id string, fields repository.Fields) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return r.m.record("shifts.update:" + id)
}

func (r *memShifts) Delete(ctx context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.record("shifts.delete:" + id); err != nil {
		return err
	}
	for i := range r.m.shifts {
		if r.m.shifts[i].ID == id {
			r.m.shifts = append(r.m.shifts[:i], r.m.shifts[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *memShifts) RemoveStudent(ctx context.Context, studentID string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.record("shifts.pull:" + studentID); err != nil {
		return err
	}
	r.m.shifts = domain.State{Shifts: r.m.shifts}.WithoutUser(studentID).Shifts
	return nil
}

type memSessions struct{ m *memStore }

func (r *memSessions) SelectAll(ctx context.Context) ([]domain.TrainingSession, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.selectErr != nil {
		return nil, r.m.selectErr
	}
	return append([]domain.TrainingSession(nil), r.m.sessions...), nil
}

func (r *memSessions) Insert(ctx context.Context, s *domain.TrainingSession) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.record("sessions.insert:" + s.ID); err != nil {
		return err
	}
	r.m.sessions = append([]domain.TrainingSession{*s}, r.m.sessions...)
	return nil
}

func (r *memSessions) Update(ctx context.Context, id string, fields repository.Fields) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.record("sessions.update:" + id); err != nil {
		return err
	}
	for i := range r.m.sessions {
		if r.m.sessions[i].ID != id {
			continue
		}
		s := &r.m.sessions[i]
		if v, ok := fields["attendeeIds"].([]string); ok {
			s.AttendeeIDs = append([]string(nil), v...)
		}
		if v, ok := fields["isActive"].(bool); ok {
			s.Active = v
		}
		if v, ok := fields["completed"].(bool); ok {
			s.Completed = v
		}
		if v, ok := fields["notes"].(string); ok {
			s.Notes = v
		}
		if v, ok := fields["aiInsights"].(string); ok {
			s.AIInsights = v
		}
		if v, ok := fields["youtubeUrl"].(string); ok {
			s.VideoURL = v
		}
		return nil
	}
	return repository.ErrNotFound
}

func (r *memSessions) Delete(ctx context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.record("sessions.delete:" + id); err != nil {
		return err
	}
	for i := range r.m.sessions {
		if r.m.sessions[i].ID == id {
			r.m.sessions = append(r.m.sessions[:i], r.m.sessions[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// fakeGenerator returns fixed text and records the notes it was given.
type fakeGenerator struct {
	mu       sync.Mutex
	insight  string
	tips     string
	notes    []string
	levels   []domain.SkillLevel
	onInvoke func()
}

func (g *fakeGenerator) TrainingTips(ctx context.Context, level domain.SkillLevel, focus string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.levels = append(g.levels, level)
	return g.tips
}

func (g *fakeGenerator) AnalyzeSession(ctx context.Context, notes string) string {
	g.mu.Lock()
	g.notes = append(g.notes, notes)
	hook := g.onInvoke
	g.mu.Unlock()
	if hook != nil {
		hook()
	}
	return g.insight
}

var _ textgen.Generator = (*fakeGenerator)(nil)

// fakeVideos records presign and delete calls.
type fakeVideos struct {
	mu       sync.Mutex
	uploads  []string
	deleted  []string
	failWith error
}

func (f *fakeVideos) GeneratePresignedUploadURL(ctx context.Context, key, contentType string, expires time.Duration) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return "", f.failWith
	}
	f.uploads = append(f.uploads, key)
	return "https://videos.test/put/" + key, nil
}

func (f *fakeVideos) GeneratePresignedDownloadURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	if f.failWith != nil {
		return "", f.failWith
	}
	return "https://videos.test/get/" + key, nil
}

func (f *fakeVideos) DeleteObject(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, key)
	return f.failWith
}
