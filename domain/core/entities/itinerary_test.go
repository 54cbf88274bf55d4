package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compass/domain/core/valueobjects"
	"compass/domain/events"
)

func testPlan() Plan {
	return Plan{
		Days: []DayPlan{
			{Day: 1, Activities: []Activity{{
				Name:          "Louvre Museum",
				Description:   "Morning visit",
				Type:          "museum",
				Cost:          "17 EUR",
				ArrivalTime:   "9:00am",
				DepartureTime: "12:30pm",
			}}},
		},
		SuggestedLocations: []string{"Louvre Museum"},
	}
}

func testDates(t *testing.T) valueobjects.TripDates {
	t.Helper()
	dates, err := valueobjects.NewDayTrip("2026-06-01")
	require.NoError(t, err)
	return dates
}

func TestNewSavedItinerary(t *testing.T) {
	it, err := NewSavedItinerary(
		valueobjects.ItineraryID{},
		"user-123",
		"Paris",
		"museums and food",
		"Sunny, 24C",
		valueobjects.CrowdCouple,
		testDates(t),
		testPlan(),
	)
	require.NoError(t, err)

	assert.False(t, it.ID().IsZero())
	assert.Equal(t, "user-123", it.UserID())
	assert.Equal(t, "Paris", it.Destination())
	assert.Equal(t, "Sunny, 24C", it.Weather())
	assert.False(t, it.CreatedAt().IsZero())

	evts := it.GetUncommittedEvents()
	require.Len(t, evts, 1)
	assert.Equal(t, events.EventItinerarySaved, evts[0].GetEventType())
	assert.Equal(t, it.ID().String(), evts[0].GetAggregateID())

	it.MarkEventsAsCommitted()
	assert.Empty(t, it.GetUncommittedEvents())
}

func TestNewSavedItinerary_DefaultsWeather(t *testing.T) {
	it, err := NewSavedItinerary(
		valueobjects.ItineraryID{},
		"user-123",
		"Paris",
		"",
		"",
		valueobjects.CrowdSolo,
		testDates(t),
		testPlan(),
	)
	require.NoError(t, err)
	assert.Equal(t, DefaultWeather, it.Weather())
}

func TestNewSavedItinerary_Validation(t *testing.T) {
	_, err := NewSavedItinerary(valueobjects.ItineraryID{}, "", "Paris", "", "", valueobjects.CrowdSolo, testDates(t), testPlan())
	assert.Error(t, err)

	_, err = NewSavedItinerary(valueobjects.ItineraryID{}, "user-123", "", "", "", valueobjects.CrowdSolo, testDates(t), testPlan())
	assert.Error(t, err)

	_, err = NewSavedItinerary(valueobjects.ItineraryID{}, "user-123", "Paris", "", "", valueobjects.CrowdSolo, testDates(t), Plan{})
	assert.Error(t, err)
}

func TestReconstructItinerary_PreservesCreatedAt(t *testing.T) {
	created := time.Date(2025, 11, 2, 15, 4, 5, 0, time.UTC)
	id := valueobjects.NewItineraryID()

	it, err := ReconstructItinerary(id, "user-123", "Paris", "museums", "Sunny", valueobjects.CrowdFamily, testDates(t), testPlan(), created)
	require.NoError(t, err)

	assert.Equal(t, created, it.CreatedAt())
	assert.True(t, it.ID().Equals(id))
	assert.Empty(t, it.GetUncommittedEvents())
}

func TestApplyUpdate(t *testing.T) {
	it, err := NewSavedItinerary(valueobjects.ItineraryID{}, "user-123", "Paris", "museums", "Sunny", valueobjects.CrowdSolo, testDates(t), testPlan())
	require.NoError(t, err)
	it.MarkEventsAsCommitted()

	originalID := it.ID()
	originalCreated := it.CreatedAt()

	dest := "Lyon"
	prefs := "food markets"
	require.NoError(t, it.ApplyUpdate(ContentUpdate{Destination: &dest, Preferences: &prefs}))

	assert.Equal(t, "Lyon", it.Destination())
	assert.Equal(t, "food markets", it.Preferences())
	assert.True(t, it.ID().Equals(originalID))
	assert.Equal(t, originalCreated, it.CreatedAt())

	evts := it.GetUncommittedEvents()
	require.Len(t, evts, 1)
	updated, ok := evts[0].(events.ItineraryUpdated)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"destination", "preferences"}, updated.ChangedFields)
}

func TestApplyUpdate_Rejections(t *testing.T) {
	it, err := NewSavedItinerary(valueobjects.ItineraryID{}, "user-123", "Paris", "", "", valueobjects.CrowdSolo, testDates(t), testPlan())
	require.NoError(t, err)
	it.MarkEventsAsCommitted()

	assert.Error(t, it.ApplyUpdate(ContentUpdate{}))

	empty := ""
	assert.Error(t, it.ApplyUpdate(ContentUpdate{Destination: &empty}))

	assert.Error(t, it.ApplyUpdate(ContentUpdate{Plan: &Plan{}}))

	assert.Empty(t, it.GetUncommittedEvents())
	assert.Equal(t, "Paris", it.Destination())
}
