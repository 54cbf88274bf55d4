package services

import (
	"context"
	"sort"
	"sync"

	"compass/application/ports"
	"compass/domain/core/entities"
	"compass/domain/core/valueobjects"
	"compass/pkg/errors"
)

// SessionState is the generation state of a planner session
type SessionState string

const (
	StateIdle       SessionState = "idle"
	StateGenerating SessionState = "generating"
	StateSuccess    SessionState = "success"
	StateFailed     SessionState = "failed"
)

// PlannerSession tracks one user's generation state and their local view of
// the saved list. The local list changes only after the store confirms a
// mutation, so a failed save never loses the displayed result and never
// shows a phantom entry.
type PlannerSession struct {
	mu sync.Mutex

	state   SessionState
	result  *entities.Plan
	lastErr error

	list    []*entities.SavedItinerary
	editing valueobjects.ItineraryID
}

func newPlannerSession() *PlannerSession {
	return &PlannerSession{state: StateIdle}
}

// Generate runs one generation for this session. A second call while one is
// in flight is rejected busy; sessions are per-user, so one user's generation
// never blocks another's.
func (s *PlannerSession) Generate(ctx context.Context, planner ports.Planner, req ports.PlanRequest) (*entities.Plan, error) {
	s.mu.Lock()
	if s.state == StateGenerating {
		s.mu.Unlock()
		return nil, errors.NewBusyError("plan generation")
	}
	s.state = StateGenerating
	s.mu.Unlock()

	plan, err := planner.GeneratePlan(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateFailed
		s.lastErr = err
		return nil, err
	}

	s.state = StateSuccess
	s.result = plan
	s.lastErr = nil
	return plan, nil
}

// State returns the current generation state
func (s *PlannerSession) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CurrentResult returns the most recent successful generation, if any.
// The result survives failed saves; only a new generation replaces it.
func (s *PlannerSession) CurrentResult() (*entities.Plan, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return nil, false
	}
	return s.result, true
}

// LastError returns the error from the most recent failed generation
func (s *PlannerSession) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// SetList replaces the local list with store-confirmed records, newest first
func (s *PlannerSession) SetList(itineraries []*entities.SavedItinerary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = make([]*entities.SavedItinerary, len(itineraries))
	copy(s.list, itineraries)
	sortByCreatedAtDesc(s.list)
}

// List returns the local list snapshot, newest first
func (s *PlannerSession) List() []*entities.SavedItinerary {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entities.SavedItinerary, len(s.list))
	copy(out, s.list)
	return out
}

// ApplyConfirmedSave merges a store-confirmed save into the local list.
// A resave under an existing ID replaces that entry.
func (s *PlannerSession) ApplyConfirmedSave(itinerary *entities.SavedItinerary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.list {
		if existing.ID().Equals(itinerary.ID()) {
			s.list[i] = itinerary
			sortByCreatedAtDesc(s.list)
			return
		}
	}
	s.list = append(s.list, itinerary)
	sortByCreatedAtDesc(s.list)
}

// ApplyConfirmedDelete removes a store-confirmed deletion from the local list
func (s *PlannerSession) ApplyConfirmedDelete(id valueobjects.ItineraryID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.list {
		if existing.ID().Equals(id) {
			s.list = append(s.list[:i], s.list[i+1:]...)
			break
		}
	}
	sortByCreatedAtDesc(s.list)
}

// BeginEdit opens an edit context bound to one itinerary in the local list
func (s *PlannerSession) BeginEdit(id valueobjects.ItineraryID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.list {
		if existing.ID().Equals(id) {
			s.editing = id
			return nil
		}
	}
	return errors.NewNotFoundError("itinerary")
}

// EditingID returns the itinerary bound to the open edit context, if any
func (s *PlannerSession) EditingID() (valueobjects.ItineraryID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editing.IsZero() {
		return valueobjects.ItineraryID{}, false
	}
	return s.editing, true
}

// CommitEdit closes the edit context with the store-confirmed updated record
func (s *PlannerSession) CommitEdit(updated *entities.SavedItinerary) {
	s.mu.Lock()
	for i, existing := range s.list {
		if existing.ID().Equals(updated.ID()) {
			s.list[i] = updated
			break
		}
	}
	sortByCreatedAtDesc(s.list)
	s.editing = valueobjects.ItineraryID{}
	s.mu.Unlock()
}

// CancelEdit closes the edit context without side effects
func (s *PlannerSession) CancelEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editing = valueobjects.ItineraryID{}
}

func sortByCreatedAtDesc(list []*entities.SavedItinerary) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt().After(list[j].CreatedAt())
	})
}

// SessionManager holds one planner session per user
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*PlannerSession
}

// NewSessionManager creates an empty session manager
func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*PlannerSession),
	}
}

// Session returns the session for a user, creating it on first use
func (m *SessionManager) Session(userID string) *PlannerSession {
	m.mu.RLock()
	session, ok := m.sessions[userID]
	m.mu.RUnlock()
	if ok {
		return session
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if session, ok := m.sessions[userID]; ok {
		return session
	}
	session = newPlannerSession()
	m.sessions[userID] = session
	return session
}
