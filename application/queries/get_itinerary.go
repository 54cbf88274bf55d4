package queries

import "errors"

// GetItineraryQuery represents a query to get a single saved itinerary
type GetItineraryQuery struct {
	UserID      string
	ItineraryID string
}

// Validate validates the GetItineraryQuery
func (q GetItineraryQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("user ID is required")
	}
	if q.ItineraryID == "" {
		return errors.New("itinerary ID is required")
	}
	return nil
}

// GetItineraryResult represents the full detail of a saved itinerary
type GetItineraryResult struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"userId"`
	Destination        string    `json:"destination"`
	Preferences        string    `json:"preferences"`
	Weather            string    `json:"weather"`
	CrowdType          string    `json:"crowdType"`
	StartDate          string    `json:"startDate"`
	EndDate            string    `json:"endDate,omitempty"`
	IsDayTrip          bool      `json:"isDayTrip"`
	Days               []DayView `json:"itinerary,omitempty"`
	SuggestedLocations []string  `json:"suggestedLocations,omitempty"`
	LegacyText         string    `json:"legacyItinerary,omitempty"`
	CreatedAt          string    `json:"createdAt"`
}

// DayView represents one day of the itinerary in a read model
type DayView struct {
	Day        int            `json:"day"`
	Activities []ActivityView `json:"activities"`
}

// ActivityView represents a single activity in a read model
type ActivityView struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Type          string `json:"type"`
	Cost          string `json:"cost"`
	ArrivalTime   string `json:"arrival_time"`
	DepartureTime string `json:"departure_time"`
}
