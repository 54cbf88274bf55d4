package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compass/application/ports"
	"compass/domain/core/entities"
	"compass/domain/core/valueobjects"
	"compass/pkg/errors"
)

type stubPlanner struct {
	mu    sync.Mutex
	block chan struct{}
	plan  *entities.Plan
	err   error
	calls int
}

func (p *stubPlanner) GeneratePlan(ctx context.Context, req ports.PlanRequest) (*entities.Plan, error) {
	p.mu.Lock()
	p.calls++
	block := p.block
	p.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if p.err != nil {
		return nil, p.err
	}
	return p.plan, nil
}

func sessionPlan() *entities.Plan {
	return &entities.Plan{
		Days: []entities.DayPlan{{Day: 1, Activities: []entities.Activity{{
			Name: "Louvre Museum", Description: "d", Type: "museum",
			Cost: "17 EUR", ArrivalTime: "9:00am", DepartureTime: "12:00pm",
		}}}},
		SuggestedLocations: []string{"Louvre Museum"},
	}
}

func sessionItinerary(t *testing.T, userID, destination string, createdAt time.Time) *entities.SavedItinerary {
	t.Helper()
	dates, err := valueobjects.NewDayTrip("2026-06-01")
	require.NoError(t, err)
	it, err := entities.ReconstructItinerary(
		valueobjects.NewItineraryID(), userID, destination, "", "Sunny",
		valueobjects.CrowdSolo, dates, *sessionPlan(), createdAt,
	)
	require.NoError(t, err)
	return it
}

func TestSessionGenerate_Success(t *testing.T) {
	manager := NewSessionManager()
	session := manager.Session("user-1")
	planner := &stubPlanner{plan: sessionPlan()}

	plan, err := session.Generate(context.Background(), planner, ports.PlanRequest{Destination: "Paris"})
	require.NoError(t, err)
	require.NotNil(t, plan)

	assert.Equal(t, StateSuccess, session.State())
	result, ok := session.CurrentResult()
	require.True(t, ok)
	assert.Equal(t, plan, result)
}

func TestSessionGenerate_RejectsConcurrent(t *testing.T) {
	manager := NewSessionManager()
	session := manager.Session("user-1")

	release := make(chan struct{})
	planner := &stubPlanner{plan: sessionPlan(), block: release}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := session.Generate(context.Background(), planner, ports.PlanRequest{Destination: "Paris"})
		assert.NoError(t, err)
	}()

	// Wait for the first generation to take the session
	require.Eventually(t, func() bool {
		return session.State() == StateGenerating
	}, time.Second, time.Millisecond)

	_, err := session.Generate(context.Background(), planner, ports.PlanRequest{Destination: "Paris"})
	require.Error(t, err)
	assert.True(t, errors.IsBusy(err))

	close(release)
	<-done
	assert.Equal(t, StateSuccess, session.State())
}

func TestSessionGenerate_OtherUsersUnaffected(t *testing.T) {
	manager := NewSessionManager()
	first := manager.Session("user-1")
	second := manager.Session("user-2")

	release := make(chan struct{})
	blocked := &stubPlanner{plan: sessionPlan(), block: release}

	done := make(chan struct{})
	go func() {
		defer close(done)
		first.Generate(context.Background(), blocked, ports.PlanRequest{Destination: "Paris"})
	}()
	require.Eventually(t, func() bool {
		return first.State() == StateGenerating
	}, time.Second, time.Millisecond)

	_, err := second.Generate(context.Background(), &stubPlanner{plan: sessionPlan()}, ports.PlanRequest{Destination: "Rome"})
	assert.NoError(t, err)

	close(release)
	<-done
}

func TestSessionGenerate_FailureKeepsPriorResult(t *testing.T) {
	manager := NewSessionManager()
	session := manager.Session("user-1")

	_, err := session.Generate(context.Background(), &stubPlanner{plan: sessionPlan()}, ports.PlanRequest{Destination: "Paris"})
	require.NoError(t, err)

	genErr := errors.NewGenerationError("model returned malformed output", nil)
	_, err = session.Generate(context.Background(), &stubPlanner{err: genErr}, ports.PlanRequest{Destination: "Paris"})
	require.Error(t, err)

	assert.Equal(t, StateFailed, session.State())
	assert.Equal(t, genErr, session.LastError())

	// The displayed result is only replaced by a newer successful generation
	result, ok := session.CurrentResult()
	require.True(t, ok)
	assert.NotNil(t, result)
}

func TestSessionList_ConfirmedMutationsKeepDescendingOrder(t *testing.T) {
	manager := NewSessionManager()
	session := manager.Session("user-1")

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	older := sessionItinerary(t, "user-1", "Rome", base)
	newer := sessionItinerary(t, "user-1", "Paris", base.Add(time.Hour))

	// Inserted oldest-first; the session keeps newest-first regardless
	session.SetList([]*entities.SavedItinerary{older, newer})
	list := session.List()
	require.Len(t, list, 2)
	assert.Equal(t, "Paris", list[0].Destination())

	newest := sessionItinerary(t, "user-1", "Lisbon", base.Add(2*time.Hour))
	session.ApplyConfirmedSave(newest)
	list = session.List()
	require.Len(t, list, 3)
	assert.Equal(t, "Lisbon", list[0].Destination())

	session.ApplyConfirmedDelete(newer.ID())
	list = session.List()
	require.Len(t, list, 2)
	assert.Equal(t, "Lisbon", list[0].Destination())
	assert.Equal(t, "Rome", list[1].Destination())

	// Deleting an absent record leaves the list unchanged
	session.ApplyConfirmedDelete(newer.ID())
	assert.Len(t, session.List(), 2)
}

func TestSessionEditContext(t *testing.T) {
	manager := NewSessionManager()
	session := manager.Session("user-1")

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	it := sessionItinerary(t, "user-1", "Rome", base)
	session.SetList([]*entities.SavedItinerary{it})

	err := session.BeginEdit(valueobjects.NewItineraryID())
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))

	require.NoError(t, session.BeginEdit(it.ID()))
	editing, ok := session.EditingID()
	require.True(t, ok)
	assert.True(t, editing.Equals(it.ID()))

	// Cancel closes the context without touching the list
	session.CancelEdit()
	_, ok = session.EditingID()
	assert.False(t, ok)
	assert.Equal(t, "Rome", session.List()[0].Destination())

	require.NoError(t, session.BeginEdit(it.ID()))
	dest := "Florence"
	require.NoError(t, it.ApplyUpdate(entities.ContentUpdate{Destination: &dest}))
	session.CommitEdit(it)

	_, ok = session.EditingID()
	assert.False(t, ok)
	assert.Equal(t, "Florence", session.List()[0].Destination())
}
