package intake

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// SessionView is the client-facing snapshot of a wizard session.
type SessionView struct {
	ID             string         `json:"id"`
	State          State          `json:"state"`
	Step           StepDefinition `json:"step"`
	Record         Record         `json:"record"`
	CanAdvance     bool           `json:"can_advance"`
	CanSubmit      bool           `json:"can_submit"`
	Files          []string       `json:"files"`
	RemainingFiles int            `json:"remaining_files"`
}

// view must be called with s.mu held.
func (s *Session) view() *SessionView {
	return &SessionView{
		ID:             s.ID,
		State:          s.wizard.State(),
		Step:           s.wizard.Step(),
		Record:         s.wizard.Record(),
		CanAdvance:     s.wizard.CanAdvance(),
		CanSubmit:      s.wizard.CanSubmit(),
		Files:          s.stager.Names(),
		RemainingFiles: s.stager.Remaining(),
	}
}

// Service drives intake wizard sessions and submissions.
type Service struct {
	sessions *SessionStore
	pipeline *Pipeline
	repo     Repository
	catalog  *Catalog
}

func NewService(sessions *SessionStore, pipeline *Pipeline, repo Repository, catalog *Catalog) *Service {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Service{sessions: sessions, pipeline: pipeline, repo: repo, catalog: catalog}
}

func (s *Service) Catalog() *Catalog {
	return s.catalog
}

// Start opens a new wizard session.
func (s *Service) Start() (*SessionView, error) {
	sess, err := s.sessions.Create()
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.view(), nil
}

func (s *Service) View(id string) (*SessionView, error) {
	return s.withSession(id, func(*Session) error { return nil })
}

// UpdateFields applies every change or none. Field names and closed-list
// values are checked before anything is written.
func (s *Service) UpdateFields(id string, values map[string]string) (*SessionView, error) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	type change struct {
		field Field
		value string
	}
	changes := make([]change, 0, len(names))
	for _, name := range names {
		f, err := ParseField(name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		value := values[name]
		if s.catalog.options(f) != nil {
			value = strings.TrimSpace(value)
		}
		if !s.catalog.Allows(f, value) {
			return nil, fmt.Errorf("%s: %w", name, ErrUnknownOption)
		}
		changes = append(changes, change{field: f, value: value})
	}

	return s.withSession(id, func(sess *Session) error {
		if !sess.wizard.Editable() {
			return ErrNotEditable
		}
		for _, ch := range changes {
			if err := sess.wizard.Update(ch.field, ch.value); err != nil {
				return err
			}
		}
		return nil
	})
}

// ToggleService adds or removes one requested service.
func (s *Service) ToggleService(id, code string) (*SessionView, error) {
	if !s.catalog.AllowsService(code) {
		return nil, fmt.Errorf("%s: %w", code, ErrUnknownOption)
	}
	return s.withSession(id, func(sess *Session) error {
		return sess.wizard.ToggleService(code)
	})
}

// Advance moves forward when the current step is valid and reports whether it moved.
func (s *Service) Advance(id string) (*SessionView, bool, error) {
	var moved bool
	v, err := s.withSession(id, func(sess *Session) error {
		moved = sess.wizard.Advance()
		return nil
	})
	return v, moved, err
}

// Retreat moves back one step and reports whether it moved.
func (s *Service) Retreat(id string) (*SessionView, bool, error) {
	var moved bool
	v, err := s.withSession(id, func(sess *Session) error {
		moved = sess.wizard.Retreat()
		return nil
	})
	return v, moved, err
}

// Remaining reports how many more files the session can stage.
func (s *Service) Remaining(id string) (int, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return 0, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.stager.Remaining(), nil
}

// AddFiles stages a selection and reports how many files were kept. Files
// past the free slots are dropped before their bytes count against the
// store's staging budget.
func (s *Service) AddFiles(id string, files []Attachment) (*SessionView, int, error) {
	var kept int
	v, err := s.withSession(id, func(sess *Session) error {
		if !sess.wizard.Editable() {
			return ErrNotEditable
		}
		if free := sess.stager.Remaining(); len(files) > free {
			files = files[:free]
		}
		var size int64
		for _, f := range files {
			size += int64(len(f.Content))
		}
		if err := s.sessions.reserve(size); err != nil {
			return err
		}
		kept = sess.stager.AddFiles(files...)
		return nil
	})
	return v, kept, err
}

// RemoveFile unstages the file at index and reports whether anything changed.
func (s *Service) RemoveFile(id string, index int) (*SessionView, bool, error) {
	var removed bool
	v, err := s.withSession(id, func(sess *Session) error {
		if !sess.wizard.Editable() {
			return ErrNotEditable
		}
		before := sess.stager.Size()
		removed = sess.stager.RemoveFile(index)
		s.sessions.release(before - sess.stager.Size())
		return nil
	})
	return v, removed, err
}

// Submit runs the submission pipeline for the session. The session lock is
// not held while the pipeline runs, so a second submit returns
// ErrSubmissionInFlight. Once started the pipeline ignores ctx cancellation.
// On success the session is discarded; on failure every value and staged
// file is kept for a retry.
func (s *Service) Submit(ctx context.Context, id string) (*Intake, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	rec, err := sess.wizard.BeginSubmit()
	if err != nil {
		sess.mu.Unlock()
		return nil, err
	}
	files := sess.stager.Files()
	sess.touch(s.sessions.now())
	sess.mu.Unlock()

	in, err := s.pipeline.Submit(context.WithoutCancel(ctx), sess.ID, rec, files)

	sess.mu.Lock()
	sess.wizard.FinishSubmit(err)
	if err == nil {
		size := sess.stager.Size()
		sess.stager.Clear()
		s.sessions.release(size)
	}
	sess.touch(s.sessions.now())
	sess.mu.Unlock()

	if err != nil {
		return nil, err
	}
	s.sessions.Delete(id)
	return in, nil
}

func (s *Service) GetIntake(ctx context.Context, id int64) (*Intake, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListIntakes(ctx context.Context, limit, offset int) ([]*Intake, int64, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) withSession(id string, fn func(*Session) error) (*SessionView, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	// Sweep may have evicted the session between Get and Lock.
	if !s.sessions.has(sess) {
		return nil, ErrSessionNotFound
	}
	if err := fn(sess); err != nil {
		return nil, err
	}
	sess.touch(s.sessions.now())
	return sess.view(), nil
}
