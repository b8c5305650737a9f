package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/JocaCola1972/Treinos-LevelUP/internal/domain"
	"github.com/JocaCola1972/Treinos-LevelUP/internal/metrics"
	"github.com/JocaCola1972/Treinos-LevelUP/internal/repository"
)

const defaultWriteTimeout = 10 * time.Second

// Collection labels used in logs and metrics.
const (
	collectionUsers    = "users"
	collectionShifts   = "shifts"
	collectionSessions = "sessions"
)

// Status describes where the current state came from.
type Status struct {
	Offline         bool   `json:"offline"`
	ConnectionError string `json:"connectionError,omitempty"`
	Users           int    `json:"users"`
	Shifts          int    `json:"shifts"`
	Sessions        int    `json:"sessions"`
}

// Controller owns the application state. Every mutation goes through a pure
// reducer applied under the lock; the matching remote write runs afterwards
// and its outcome never changes the local result.
type Controller struct {
	mu      sync.RWMutex
	state   domain.State
	offline bool
	connErr string

	backend      *repository.Backend
	writeTimeout time.Duration
	now          func() time.Time
}

// NewController creates a controller over backend. A nil backend means the
// store could not be reached at all; Load then falls back to fixtures.
func NewController(backend *repository.Backend, writeTimeout time.Duration) *Controller {
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}
	return &Controller{
		backend:      backend,
		writeTimeout: writeTimeout,
		now:          time.Now,
	}
}

// Load reads the three collections. On any failure the fixture dataset
// replaces all of them and the error is kept as the connection message.
// The returned error is informational: the controller is usable either way.
func (c *Controller) Load(ctx context.Context) error {
	state, err := c.selectAll(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		log.Printf("WARN: Initial load failed, using fixture data: %v", err)
		c.state = domain.Fixtures()
		c.offline = true
		c.connErr = connectionMessage(err)
		metrics.OfflineMode.Set(1)
		return err
	}
	c.state = state
	c.offline = false
	c.connErr = ""
	metrics.OfflineMode.Set(0)
	log.Printf("INFO: Loaded %d users, %d shifts, %d sessions", len(state.Users), len(state.Shifts), len(state.Sessions))
	return nil
}

func (c *Controller) selectAll(ctx context.Context) (domain.State, error) {
	if c.backend == nil {
		return domain.State{}, repository.ErrUnavailable
	}
	users, err := c.backend.Users.SelectAll(ctx)
	if err != nil {
		return domain.State{}, fmt.Errorf("load users: %w", err)
	}
	shifts, err := c.backend.Shifts.SelectAll(ctx)
	if err != nil {
		return domain.State{}, fmt.Errorf("load shifts: %w", err)
	}
	sessions, err := c.backend.Sessions.SelectAll(ctx)
	if err != nil {
		return domain.State{}, fmt.Errorf("load sessions: %w", err)
	}
	return domain.State{Users: users, Shifts: shifts, Sessions: sessions}, nil
}

// connectionMessage returns the root cause of a load failure, or the
// generic offline message when it has none.
func connectionMessage(err error) string {
	for errors.Unwrap(err) != nil {
		err = errors.Unwrap(err)
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return domain.OfflineMessage
}

// Snapshot returns the current state. Reducers never touch a published
// state, so the value may be read without holding the lock.
func (c *Controller) Snapshot() domain.State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Status reports whether the service runs on fixtures.
func (c *Controller) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Status{
		Offline:         c.offline,
		ConnectionError: c.connErr,
		Users:           len(c.state.Users),
		Shifts:          len(c.state.Shifts),
		Sessions:        len(c.state.Sessions),
	}
}

// viewer resolves the authenticated user against the current state.
func (c *Controller) viewer(userID string) (*domain.User, domain.State, error) {
	state := c.Snapshot()
	u := state.FindUser(userID)
	if u == nil {
		return nil, state, ErrUserNotFound
	}
	return u, state, nil
}

// apply runs reduce on the current state under the lock and publishes the
// result unless reduce fails.
func (c *Controller) apply(reduce func(now time.Time, s domain.State) (domain.State, error)) (domain.State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next, err := reduce(c.now(), c.state)
	if err != nil {
		return c.state, err
	}
	c.state = next
	return next, nil
}

// persist performs a best-effort remote write. The request context only
// contributes its values: the write outlives a disconnecting client.
func (c *Controller) persist(ctx context.Context, collection, op, id string, write func(ctx context.Context, b *repository.Backend) error) {
	if c.backend == nil {
		c.writeFailed(collection, op, id, repository.ErrUnavailable)
		return
	}
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.writeTimeout)
	defer cancel()
	if err := write(writeCtx, c.backend); err != nil {
		c.writeFailed(collection, op, id, err)
	}
}

func (c *Controller) writeFailed(collection, op, id string, err error) {
	if errors.Is(err, repository.ErrUnavailable) {
		log.Printf("WARN: Store unavailable, %s %s/%s kept locally only", op, collection, id)
	} else {
		log.Printf("ERROR: Failed to %s %s/%s, local state kept: %v", op, collection, id, err)
	}
	metrics.StoreWriteFailures.WithLabelValues(collection, op).Inc()
}
