package entities

// Activity is a single scheduled stop within a day. All six fields are
// free-form strings; cost and times carry no numeric or clock guarantees
// ("45$", "Free", "9:00am").
type Activity struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Type          string `json:"type"`
	Cost          string `json:"cost"`
	ArrivalTime   string `json:"arrival_time"`
	DepartureTime string `json:"departure_time"`
}

// DayPlan is one day of the itinerary. Day numbers start at 1; activity order
// is presentation order.
type DayPlan struct {
	Day        int        `json:"day"`
	Activities []Activity `json:"activities"`
}

// Plan is the structured generation result: the day-by-day itinerary plus 1-10
// specific, geocodable place names for the map.
//
// LegacyText carries the free-text itinerary of records stored by earlier
// client generations. Exactly one of Days/LegacyText is populated; legacy
// records are surfaced through an explicit decode step at the store boundary,
// never coerced into the structured shape.
type Plan struct {
	Days               []DayPlan `json:"itinerary"`
	SuggestedLocations []string  `json:"suggestedLocations"`
	LegacyText         string    `json:"-"`
}

// IsLegacy reports whether the plan holds a free-text itinerary from an older
// stored record
func (p Plan) IsLegacy() bool {
	return p.LegacyText != ""
}

// MaxSuggestedLocations bounds the map location list
const (
	MinSuggestedLocations = 1
	MaxSuggestedLocations = 10
)
