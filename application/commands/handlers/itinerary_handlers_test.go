package handlers

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"compass/application/commands"
	"compass/application/services"
	"compass/domain/core/entities"
	"compass/domain/events"
	"compass/infrastructure/persistence/memory"
	pkgerrors "compass/pkg/errors"
)

type stubPublisher struct {
	mu     sync.Mutex
	events []events.DomainEvent
	err    error
}

func (p *stubPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	return p.PublishBatch(ctx, []events.DomainEvent{event})
}

func (p *stubPublisher) PublishBatch(ctx context.Context, batch []events.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, batch...)
	return nil
}

func (p *stubPublisher) published() []events.DomainEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.DomainEvent(nil), p.events...)
}

func commandPlan() entities.Plan {
	return entities.Plan{
		Days: []entities.DayPlan{{Day: 1, Activities: []entities.Activity{{
			Name: "Louvre Museum", Description: "Morning visit", Type: "museum",
			Cost: "17 EUR", ArrivalTime: "9:00am", DepartureTime: "12:00pm",
		}}}},
		SuggestedLocations: []string{"Louvre Museum"},
	}
}

func saveCommand(userID string) commands.SaveItineraryCommand {
	return commands.SaveItineraryCommand{
		UserID:      userID,
		Destination: "Paris",
		StartDate:   "2026-06-01",
		IsDayTrip:   true,
		Preferences: "museums",
		Weather:     "Sunny, 22C",
		CrowdType:   "couple",
		Plan:        commandPlan(),
	}
}

func TestSaveItinerary_RoundTrip(t *testing.T) {
	repo := memory.NewItineraryRepository()
	publisher := &stubPublisher{}
	handler := NewSaveItineraryHandler(repo, publisher, services.NewSessionManager(), zap.NewNop())

	saved, err := handler.Handle(context.Background(), saveCommand("user-1"))
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.False(t, saved.ID().IsZero())

	list, err := repo.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Paris", list[0].Destination())

	// Events go out only after the store confirmed the write
	published := publisher.published()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventItinerarySaved, published[0].GetEventType())
	assert.Empty(t, saved.GetUncommittedEvents())
}

func TestSaveItinerary_SameIDResaveWins(t *testing.T) {
	repo := memory.NewItineraryRepository()
	handler := NewSaveItineraryHandler(repo, &stubPublisher{}, services.NewSessionManager(), zap.NewNop())

	cmd := saveCommand("user-1")
	cmd.ItineraryID = "itin-42"
	first, err := handler.Handle(context.Background(), cmd)
	require.NoError(t, err)

	cmd.Destination = "Versailles"
	second, err := handler.Handle(context.Background(), cmd)
	require.NoError(t, err)
	assert.True(t, second.ID().Equals(first.ID()))

	list, err := repo.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Versailles", list[0].Destination())
}

func TestSaveItinerary_PublishFailureIsNonFatal(t *testing.T) {
	repo := memory.NewItineraryRepository()
	publisher := &stubPublisher{err: errors.New("event bus unavailable")}
	handler := NewSaveItineraryHandler(repo, publisher, services.NewSessionManager(), zap.NewNop())

	saved, err := handler.Handle(context.Background(), saveCommand("user-1"))
	require.NoError(t, err)

	list, err := repo.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].ID().Equals(saved.ID()))
}

func TestUpdateItinerary(t *testing.T) {
	repo := memory.NewItineraryRepository()
	saveHandler := NewSaveItineraryHandler(repo, &stubPublisher{}, services.NewSessionManager(), zap.NewNop())
	updateHandler := NewUpdateItineraryHandler(repo, &stubPublisher{}, services.NewSessionManager(), zap.NewNop())

	saved, err := saveHandler.Handle(context.Background(), saveCommand("user-1"))
	require.NoError(t, err)

	dest := "Lyon"
	updated, err := updateHandler.Handle(context.Background(), commands.UpdateItineraryCommand{
		ItineraryID: saved.ID().String(),
		UserID:      "user-1",
		Destination: &dest,
	})
	require.NoError(t, err)
	assert.Equal(t, "Lyon", updated.Destination())
	assert.Equal(t, saved.CreatedAt(), updated.CreatedAt())

	got, err := repo.GetByID(context.Background(), "user-1", saved.ID())
	require.NoError(t, err)
	assert.Equal(t, "Lyon", got.Destination())
}

func TestUpdateItinerary_AbsentIDLeavesListUnchanged(t *testing.T) {
	repo := memory.NewItineraryRepository()
	saveHandler := NewSaveItineraryHandler(repo, &stubPublisher{}, services.NewSessionManager(), zap.NewNop())
	updateHandler := NewUpdateItineraryHandler(repo, &stubPublisher{}, services.NewSessionManager(), zap.NewNop())

	_, err := saveHandler.Handle(context.Background(), saveCommand("user-1"))
	require.NoError(t, err)

	dest := "Lyon"
	_, err = updateHandler.Handle(context.Background(), commands.UpdateItineraryCommand{
		ItineraryID: "missing-id",
		UserID:      "user-1",
		Destination: &dest,
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))

	list, err := repo.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Paris", list[0].Destination())
}

func TestUpdateItinerary_CannotTouchAnotherUsersRecord(t *testing.T) {
	repo := memory.NewItineraryRepository()
	saveHandler := NewSaveItineraryHandler(repo, &stubPublisher{}, services.NewSessionManager(), zap.NewNop())
	updateHandler := NewUpdateItineraryHandler(repo, &stubPublisher{}, services.NewSessionManager(), zap.NewNop())

	saved, err := saveHandler.Handle(context.Background(), saveCommand("user-1"))
	require.NoError(t, err)

	dest := "Lyon"
	_, err = updateHandler.Handle(context.Background(), commands.UpdateItineraryCommand{
		ItineraryID: saved.ID().String(),
		UserID:      "user-2",
		Destination: &dest,
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestDeleteItinerary_Idempotent(t *testing.T) {
	repo := memory.NewItineraryRepository()
	saveHandler := NewSaveItineraryHandler(repo, &stubPublisher{}, services.NewSessionManager(), zap.NewNop())
	publisher := &stubPublisher{}
	deleteHandler := NewDeleteItineraryHandler(repo, publisher, services.NewSessionManager(), zap.NewNop())

	saved, err := saveHandler.Handle(context.Background(), saveCommand("user-1"))
	require.NoError(t, err)

	cmd := commands.DeleteItineraryCommand{ItineraryID: saved.ID().String(), UserID: "user-1"}
	require.NoError(t, deleteHandler.Handle(context.Background(), cmd))

	list, err := repo.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, list)

	// Deleting again reports the same outcome
	require.NoError(t, deleteHandler.Handle(context.Background(), cmd))
}

func TestMutations_ReconcileSessionList(t *testing.T) {
	repo := memory.NewItineraryRepository()
	sessions := services.NewSessionManager()
	saveHandler := NewSaveItineraryHandler(repo, &stubPublisher{}, sessions, zap.NewNop())
	deleteHandler := NewDeleteItineraryHandler(repo, &stubPublisher{}, sessions, zap.NewNop())

	session := sessions.Session("user-1")
	assert.Empty(t, session.List())

	saved, err := saveHandler.Handle(context.Background(), saveCommand("user-1"))
	require.NoError(t, err)

	// The confirmed save lands in the session's local list
	list := session.List()
	require.Len(t, list, 1)
	assert.True(t, list[0].ID().Equals(saved.ID()))

	require.NoError(t, deleteHandler.Handle(context.Background(), commands.DeleteItineraryCommand{
		ItineraryID: saved.ID().String(),
		UserID:      "user-1",
	}))
	assert.Empty(t, session.List())
}

func TestSaveItinerary_FailedSaveLeavesSessionListUnchanged(t *testing.T) {
	repo := memory.NewItineraryRepository()
	sessions := services.NewSessionManager()
	handler := NewSaveItineraryHandler(repo, &stubPublisher{}, sessions, zap.NewNop())

	cmd := saveCommand("user-1")
	cmd.CrowdType = "herd"
	_, err := handler.Handle(context.Background(), cmd)
	require.Error(t, err)

	assert.Empty(t, sessions.Session("user-1").List())
}

func TestUpdateItinerary_CommitsOpenEditContext(t *testing.T) {
	repo := memory.NewItineraryRepository()
	sessions := services.NewSessionManager()
	saveHandler := NewSaveItineraryHandler(repo, &stubPublisher{}, sessions, zap.NewNop())
	updateHandler := NewUpdateItineraryHandler(repo, &stubPublisher{}, sessions, zap.NewNop())

	saved, err := saveHandler.Handle(context.Background(), saveCommand("user-1"))
	require.NoError(t, err)

	session := sessions.Session("user-1")
	require.NoError(t, session.BeginEdit(saved.ID()))

	dest := "Lyon"
	_, err = updateHandler.Handle(context.Background(), commands.UpdateItineraryCommand{
		ItineraryID: saved.ID().String(),
		UserID:      "user-1",
		Destination: &dest,
	})
	require.NoError(t, err)

	// The confirmed update closed the edit context and refreshed the entry
	_, open := session.EditingID()
	assert.False(t, open)
	list := session.List()
	require.Len(t, list, 1)
	assert.Equal(t, "Lyon", list[0].Destination())
}
