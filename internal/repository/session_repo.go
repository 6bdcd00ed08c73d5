package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"paycheckout/internal/checkout"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("checkout session not found")

type sessionEntry struct {
	ctrl     *checkout.Controller
	lastSeen time.Time
}

// SessionRepository keeps checkout controllers in memory, keyed by session ID.
// Idle sessions are dropped after ttl.
type SessionRepository struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
	ttl      time.Duration
	now      func() time.Time
	onChange func(active int)
}

func NewSessionRepository(ttl time.Duration) *SessionRepository {
	return &SessionRepository{
		sessions: make(map[string]*sessionEntry),
		ttl:      ttl,
		now:      time.Now,
		onChange: func(int) {},
	}
}

// OnChange registers a callback that receives the session count after every
// create, delete and sweep.
func (r *SessionRepository) OnChange(fn func(active int)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onChange = fn
}

func (r *SessionRepository) Create(ctrl *checkout.Controller) string {
	id := uuid.New().String()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[id] = &sessionEntry{ctrl: ctrl, lastSeen: r.now()}
	r.onChange(len(r.sessions))
	return id
}

// Get returns the controller and refreshes its idle timer.
func (r *SessionRepository) Get(id string) (*checkout.Controller, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	now := r.now()
	if now.Sub(e.lastSeen) > r.ttl {
		delete(r.sessions, id)
		r.onChange(len(r.sessions))
		return nil, ErrSessionNotFound
	}
	e.lastSeen = now
	return e.ctrl, nil
}

func (r *SessionRepository) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return
	}
	delete(r.sessions, id)
	r.onChange(len(r.sessions))
}

func (r *SessionRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep removes sessions idle for longer than ttl and returns how many went.
func (r *SessionRepository) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().Add(-r.ttl)
	removed := 0
	for id, e := range r.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		r.onChange(len(r.sessions))
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (r *SessionRepository) Run(ctx context.Context, interval time.Duration) {
	tick := time.NewTicker(interval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			r.Sweep()
		}
	}
}
