package intake

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session is one visitor's wizard and staged attachments.
type Session struct {
	ID string

	mu       sync.Mutex
	wizard   *Wizard
	stager   *Stager
	lastSeen time.Time
}

func (s *Session) touch(now time.Time) {
	s.lastSeen = now
}

// SessionLimits bounds what anonymous visitors can hold in memory.
// Zero means no limit.
type SessionLimits struct {
	MaxSessions    int
	MaxStagedBytes int64
}

// SessionStore keeps wizard sessions in memory and evicts idle ones.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	staged   int64 // attachment bytes held by all stagers
	limits   SessionLimits
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionStore(ttl time.Duration, limits SessionLimits) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		limits:   limits,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create starts a fresh session, or returns ErrTooManySessions when the
// store is full.
func (s *SessionStore) Create() (*Session, error) {
	sess := &Session{
		ID:       uuid.NewString(),
		wizard:   NewWizard(),
		stager:   NewStager(),
		lastSeen: s.now(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.limits.MaxSessions > 0 && len(s.sessions) >= s.limits.MaxSessions {
		return nil, ErrTooManySessions
	}
	s.sessions[sess.ID] = sess
	return sess, nil
}

func (s *SessionStore) Get(id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (s *SessionStore) has(sess *Session) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[sess.ID] == sess
}

// Delete drops the session and frees its staged files. The caller must not
// hold the session's lock.
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return
	}

	sess.mu.Lock()
	size := sess.stager.Size()
	sess.stager.Clear()
	sess.mu.Unlock()
	s.release(size)
}

// reserve claims n staged bytes from the budget.
func (s *SessionStore) reserve(n int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.limits.MaxStagedBytes > 0 && s.staged+n > s.limits.MaxStagedBytes {
		return ErrStagingFull
	}
	s.staged += n
	return nil
}

func (s *SessionStore) release(n int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staged -= n
	if s.staged < 0 {
		s.staged = 0
	}
}

// StagedBytes returns the attachment bytes currently held in memory.
func (s *SessionStore) StagedBytes() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.staged
}

func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep removes sessions idle for longer than the TTL and returns how many
// it removed. Busy sessions and sessions with a submission in flight are kept.
func (s *SessionStore) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if !sess.mu.TryLock() {
			continue
		}
		expired := now.Sub(sess.lastSeen) > s.ttl && sess.wizard.State() != StateSubmitting
		if expired {
			s.staged -= sess.stager.Size()
			sess.stager.Clear()
			delete(s.sessions, id)
			removed++
		}
		sess.mu.Unlock()
	}
	if s.staged < 0 {
		s.staged = 0
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (s *SessionStore) Run(ctx context.Context, interval time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(s.now()); n > 0 {
				log.Info("expired intake sessions", zap.Int("removed", n), zap.Int("active", s.Len()))
			}
		}
	}
}
