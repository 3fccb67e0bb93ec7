package session

import (
	"sync"

	"rentagent/app/config"
	"rentagent/app/service/extract"

	"github.com/samber/do"
)

type state struct {
	turns      []Turn
	conditions extract.Conditions
}

// Service keeps per-session dialog history and the accumulated query
// conditions in memory. Sessions are created lazily on first reference and
// never expire.
type Service struct {
	mu       sync.Mutex
	sessions map[string]*state
	maxTurns int
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return &Service{
		sessions: make(map[string]*state),
		maxTurns: cfg.Session.MaxHistoryTurns,
	}, nil
}

func (s *Service) get(id string) *state {
	st, ok := s.sessions[id]
	if !ok {
		st = &state{conditions: extract.Conditions{}}
		s.sessions[id] = st
	}
	return st
}

// Snapshot returns copies of the session's history and conditions, so the
// caller can read them without holding the lock during extraction or
// downstream queries.
func (s *Service) Snapshot(id string) ([]Turn, extract.Conditions) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.get(id)

	turns := make([]Turn, len(st.turns))
	copy(turns, st.turns)

	conditions := extract.Conditions{}
	for k, v := range st.conditions {
		conditions[k] = v
	}

	return turns, conditions
}

// SetConditions replaces the session's accumulated conditions.
func (s *Service) SetConditions(id string, conditions extract.Conditions) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.get(id).conditions = conditions
}

// AppendTurn records a completed exchange, keeping only the most recent
// turns within the configured history window.
func (s *Service) AppendTurn(id, userMsg, reply string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.get(id)
	st.turns = append(st.turns,
		Turn{Role: extract.RoleUser, Content: userMsg},
		Turn{Role: extract.RoleAssistant, Content: reply},
	)

	limit := s.maxTurns * 2
	if limit > 0 && len(st.turns) > limit {
		st.turns = st.turns[len(st.turns)-limit:]
	}
}

// Reset clears the session's history and conditions.
func (s *Service) Reset(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
}
