package queries

import "errors"

// ListItinerariesQuery represents a query to list a user's saved itineraries
type ListItinerariesQuery struct {
	UserID string
}

// Validate validates the query
func (q ListItinerariesQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("user ID is required")
	}
	return nil
}

// ListItinerariesResult represents the result of listing itineraries,
// newest first
type ListItinerariesResult struct {
	Itineraries []ItinerarySummary `json:"itineraries"`
	TotalCount  int                `json:"totalCount"`
}

// ItinerarySummary represents a saved itinerary in a list view
type ItinerarySummary struct {
	ID          string `json:"id"`
	Destination string `json:"destination"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate,omitempty"`
	IsDayTrip   bool   `json:"isDayTrip"`
	CrowdType   string `json:"crowdType"`
	Weather     string `json:"weather"`
	CreatedAt   string `json:"createdAt"`
}
