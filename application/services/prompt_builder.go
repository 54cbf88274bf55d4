package services

import (
	"fmt"
	"strings"

	"compass/application/ports"
)

// BuildPlanPrompt renders the generation instruction for a plan request.
// The function is pure: the same request always yields the same prompt, and
// a day-trip prompt never mentions an end date.
func BuildPlanPrompt(req ports.PlanRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are a travel expert designing an itinerary for %s visiting %s.\n",
		req.CrowdType.Phrase(), req.Destination)

	if req.IsDayTrip {
		fmt.Fprintf(&b, "This is a single-day trip on %s. Plan exactly one day.\n", req.StartDate)
	} else {
		fmt.Fprintf(&b, "The trip runs from %s to %s. Plan one entry per day of the trip.\n",
			req.StartDate, req.EndDate)
	}

	if strings.TrimSpace(req.Preferences) != "" {
		fmt.Fprintf(&b, "Tailor the plan to these traveler preferences: %s.\n", req.Preferences)
	}

	b.WriteString(`
Respond with a JSON object containing:
- "itinerary": an array of days. Each day has a "day" number starting at 1 and
  an "activities" array. Every activity must include all of: "name",
  "description", "type", "cost", "arrival_time" and "departure_time" as strings.
- "suggestedLocations": between 1 and 10 specific place names from the
  itinerary that can be found on a map. Use real, geocodable names such as
  "Louvre Museum" or "Shinjuku Gyoen National Garden". Never include generic
  phrases like "a local restaurant" or "the city center".
`)

	return b.String()
}
