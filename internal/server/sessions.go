package server

import (
	"sync"

	"github.com/Iron-Ham/stepthrough/internal/errors"
	"github.com/Iron-Ham/stepthrough/internal/logging"
	"github.com/Iron-Ham/stepthrough/internal/walkthrough"
	"github.com/google/uuid"
)

// Action is a cursor command applied to a session.
type Action string

const (
	ActionAdvance Action = "advance"
	ActionRetreat Action = "retreat"
	ActionReset   Action = "reset"
)

// ParseAction validates an action name from a request path.
func ParseAction(s string) (Action, error) {
	switch a := Action(s); a {
	case ActionAdvance, ActionRetreat, ActionReset:
		return a, nil
	default:
		return "", errors.NewValidationError("unknown action").WithField("action").WithValue(s)
	}
}

type session struct {
	id string
	wt *walkthrough.Walkthrough
}

// Registry owns one walkthrough per session. Each session's cursor is
// independent; all access is serialized by the registry mutex.
type Registry struct {
	mu       sync.Mutex
	content  *walkthrough.Content
	sessions map[string]*session
	order    []string // creation order, oldest first
	max      int
	logger   *logging.Logger
}

// NewRegistry creates a registry over validated content. maxSessions caps
// the number of live sessions; values below 1 mean 1.
func NewRegistry(content *walkthrough.Content, maxSessions int, logger *logging.Logger) *Registry {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Registry{
		content:  content,
		sessions: make(map[string]*session),
		max:      max(1, maxSessions),
		logger:   logger,
	}
}

// Create starts a session at the first trace entry. When the registry is
// full the oldest session is evicted.
func (r *Registry) Create() (string, walkthrough.Frame, error) {
	wt, err := walkthrough.New(r.content)
	if err != nil {
		return "", walkthrough.Frame{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for len(r.order) >= r.max {
		oldest := r.order[0]
		r.order = r.order[1:]
		delete(r.sessions, oldest)
		r.logger.WithSession(oldest).Info("session evicted")
	}

	s := &session{id: uuid.NewString(), wt: wt}
	r.sessions[s.id] = s
	r.order = append(r.order, s.id)
	r.logger.WithSession(s.id).Debug("session created", "sessions", len(r.sessions))
	return s.id, wt.Frame(), nil
}

// Frame returns the session's current frame.
func (r *Registry) Frame(id string) (walkthrough.Frame, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.lookup(id)
	if err != nil {
		return walkthrough.Frame{}, err
	}
	return s.wt.Frame(), nil
}

// Apply runs action on the session and returns the resulting frame. moved
// is false when the cursor was already at the boundary.
func (r *Registry) Apply(id string, action Action) (frame walkthrough.Frame, moved bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.lookup(id)
	if err != nil {
		return walkthrough.Frame{}, false, err
	}

	switch action {
	case ActionAdvance:
		moved = s.wt.Advance()
	case ActionRetreat:
		moved = s.wt.Retreat()
	case ActionReset:
		moved = !s.wt.AtStart()
		s.wt.Reset()
	default:
		return walkthrough.Frame{}, false, errors.NewValidationError("unknown action").WithField("action").WithValue(string(action))
	}

	pos := s.wt.Position()
	r.logger.WithSession(id).Debug("session stepped",
		"action", string(action), "moved", moved,
		"trace_index", pos.TraceIndex, "plan_index", pos.PlanIndex)
	return s.wt.Frame(), moved, nil
}

// Delete drops a session.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.lookup(id); err != nil {
		return err
	}
	delete(r.sessions, id)
	for i, sid := range r.order {
		if sid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.logger.WithSession(id).Debug("session deleted")
	return nil
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// lookup must be called with r.mu held.
func (r *Registry) lookup(id string) (*session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, errors.NewNotFoundError("session", id).WithCause(errors.ErrSessionNotFound)
	}
	return s, nil
}
