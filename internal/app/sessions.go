package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/tidybook/tidybook/internal/domain"
	"github.com/tidybook/tidybook/internal/wizard"
)

// ErrSessionNotFound is returned for unknown or expired session ids.
var ErrSessionNotFound = errors.New("wizard session not found")

// session pairs one engine with its accumulated answers. Its mutex
// serializes user-triggered transitions; within a session nothing runs
// concurrently.
type session struct {
	mu      sync.Mutex
	id      string
	engine  *wizard.Engine
	answers domain.Answers
}

// SessionManager holds the live wizard sessions in memory. Sessions are
// ephemeral by design: an abandoned browser tab simply ages out with the
// process, and submitted sessions survive as leads.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*session
	logger   *slog.Logger
}

// NewSessionManager creates an empty manager.
func NewSessionManager(logger *slog.Logger) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*session),
		logger:   logger,
	}
}

func (m *SessionManager) create() (*session, error) {
	id, err := generateSessionID()
	if err != nil {
		return nil, fmt.Errorf("generating session id: %w", err)
	}

	s := &session{
		id:     id,
		engine: wizard.NewEngine(m.logger),
	}

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	return s, nil
}

func (m *SessionManager) get(id string) (*session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// SessionState is a read-only view of a wizard session surfaced to the
// UI layer.
type SessionState struct {
	ID        string
	Step      wizard.Step
	Direction wizard.Direction
	Progress  int
	Answers   domain.Answers
}

func snapshot(s *session) SessionState {
	return SessionState{
		ID:        s.id,
		Step:      s.engine.Current(),
		Direction: s.engine.Direction(),
		Progress:  s.engine.Progress(),
		Answers:   s.answers,
	}
}

// StartSession opens a new wizard session at the initial step.
func (s *BookingService) StartSession(ctx context.Context) (SessionState, error) {
	sess, err := s.sessions.create()
	if err != nil {
		return SessionState{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return snapshot(sess), nil
}

// GetSession returns the current state of a session.
func (s *BookingService) GetSession(ctx context.Context, id string) (SessionState, error) {
	sess, err := s.sessions.get(id)
	if err != nil {
		return SessionState{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return snapshot(sess), nil
}

// UpdateAnswers merges a patch into the session's answers. A changed zip
// triggers an availability lookup, and the price preview is recomputed
// from the fresh snapshot on every edit.
func (s *BookingService) UpdateAnswers(ctx context.Context, id string, patch domain.AnswersPatch) (SessionState, error) {
	sess, err := s.sessions.get(id)
	if err != nil {
		return SessionState{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	next := patch.Apply(sess.answers)

	if next.Zip != sess.answers.Zip && next.Zip != "" {
		availability, err := s.areas.CheckAvailability(ctx, next.Zip)
		if err != nil {
			return SessionState{}, fmt.Errorf("checking availability: %w", err)
		}
		next.AreaStatus = availability.Status
		next.City = availability.City
		next.State = availability.State
	}

	total, err := s.Quote(ctx, next)
	if err != nil {
		return SessionState{}, err
	}
	next.Total = total

	sess.answers = next
	return snapshot(sess), nil
}

// NextStep advances the session's wizard one step forward.
func (s *BookingService) NextStep(ctx context.Context, id string) (SessionState, error) {
	sess, err := s.sessions.get(id)
	if err != nil {
		return SessionState{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.engine.GoNext(sess.answers)
	return snapshot(sess), nil
}

// BackStep returns the session's wizard to the previous step.
func (s *BookingService) BackStep(ctx context.Context, id string) (SessionState, error) {
	sess, err := s.sessions.get(id)
	if err != nil {
		return SessionState{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.engine.GoBack(sess.answers)
	return snapshot(sess), nil
}

// JumpToStep navigates the session's wizard to an arbitrary step,
// subject to the step's guard.
func (s *BookingService) JumpToStep(ctx context.Context, id string, target wizard.Step) (SessionState, error) {
	sess, err := s.sessions.get(id)
	if err != nil {
		return SessionState{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := sess.engine.GoToStep(target, sess.answers); err != nil {
		return SessionState{}, err
	}
	return snapshot(sess), nil
}

// SubmitSession finalizes a session: the lead is persisted with the
// computed total and the wizard lands on the confirmation step.
func (s *BookingService) SubmitSession(ctx context.Context, id string) (SessionState, domain.Lead, error) {
	sess, err := s.sessions.get(id)
	if err != nil {
		return SessionState{}, domain.Lead{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	lead, err := s.SubmitLead(ctx, sess.answers)
	if err != nil {
		// Answers are preserved; the user can retry the submission.
		return SessionState{}, domain.Lead{}, err
	}

	sess.answers.LeadID = lead.ID
	sess.answers.Total = lead.TotalPrice

	if err := sess.engine.GoToStep(wizard.StepConfirmation, sess.answers); err != nil {
		s.logger.Warn("confirmation step transition failed", "session_id", id, "error", err)
	}

	return snapshot(sess), lead, nil
}
