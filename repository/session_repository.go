package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"bodyshop-work-order/workorder"
)

// ErrSessionNotFound is returned for unknown or discarded session ids
var ErrSessionNotFound = errors.New("work order session not found")

// Session is one open work order form
type Session struct {
	ID        string          `json:"id"`
	State     workorder.State `json:"state"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Transition computes the next state of a session
type Transition func(state workorder.State, ids workorder.IDGenerator) (workorder.State, error)

// SessionRepository keeps work order sessions in memory. Sessions are never
// written anywhere and disappear on Delete, expiry, or process exit.
type SessionRepository struct {
	mu          sync.Mutex
	sessions    map[string]*Session
	ids         workorder.IDGenerator
	orderNumber func() string
	now         func() time.Time
}

// Ensure SessionRepository implements SessionRepositoryInterface
var _ SessionRepositoryInterface = (*SessionRepository)(nil)

// NewSessionRepository creates an empty session store
func NewSessionRepository(ids workorder.IDGenerator) *SessionRepository {
	return &SessionRepository{
		sessions:    make(map[string]*Session),
		ids:         ids,
		orderNumber: workorder.NewOrderNumber,
		now:         time.Now,
	}
}

// Create opens a session with a fresh form
func (r *SessionRepository) Create(ctx context.Context) (Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	session := &Session{
		ID:        uuid.NewString(),
		State:     workorder.New(r.ids, r.orderNumber()),
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.sessions[session.ID] = session

	log.Printf("🆕 Session created: id=%s, order=%s", session.ID, session.State.OrderNumber)
	return *session, nil
}

// Get returns a copy of the session
func (r *SessionRepository) Get(ctx context.Context, id string) (Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return Session{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return *session, nil
}

// Update applies fn to the session state under the store lock.
// When fn fails the stored state is left unchanged.
func (r *SessionRepository) Update(ctx context.Context, id string, fn Transition) (Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return Session{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	next, err := fn(session.State, r.ids)
	if err != nil {
		return *session, err
	}
	session.State = next
	session.UpdatedAt = r.now()
	return *session, nil
}

// Delete discards a session
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(r.sessions, id)
	log.Printf("🗑️  Session discarded: id=%s", id)
	return nil
}

// ExpireIdle discards sessions not updated within ttl and returns how many were removed
func (r *SessionRepository) ExpireIdle(ttl time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-ttl)
	removed := 0
	for id, session := range r.sessions {
		if session.UpdatedAt.Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		log.Printf("🧹 Expired %d idle sessions", removed)
	}
	return removed
}

// RunJanitor expires idle sessions every interval until ctx is done
func (r *SessionRepository) RunJanitor(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.ExpireIdle(ttl)
		}
	}
}
