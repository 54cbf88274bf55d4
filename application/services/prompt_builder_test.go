package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"compass/application/ports"
	"compass/domain/core/valueobjects"
)

func TestBuildPlanPrompt_DayTrip(t *testing.T) {
	prompt := BuildPlanPrompt(ports.PlanRequest{
		Destination: "Paris",
		StartDate:   "2026-06-01",
		IsDayTrip:   true,
		Preferences: "museums and bakeries",
		CrowdType:   valueobjects.CrowdCouple,
	})

	assert.Contains(t, prompt, "Paris")
	assert.Contains(t, prompt, "2026-06-01")
	assert.Contains(t, prompt, "single-day trip")
	assert.Contains(t, prompt, "a couple")
	assert.Contains(t, prompt, "museums and bakeries")
	assert.NotContains(t, prompt, "runs from")
}

func TestBuildPlanPrompt_RangedTrip(t *testing.T) {
	prompt := BuildPlanPrompt(ports.PlanRequest{
		Destination: "Tokyo",
		StartDate:   "2026-04-10",
		EndDate:     "2026-04-14",
		IsDayTrip:   false,
		CrowdType:   valueobjects.CrowdFamily,
	})

	assert.Contains(t, prompt, "runs from 2026-04-10 to 2026-04-14")
	assert.Contains(t, prompt, "a family including children")
	assert.NotContains(t, prompt, "single-day trip")
}

func TestBuildPlanPrompt_Deterministic(t *testing.T) {
	req := ports.PlanRequest{
		Destination: "Lisbon",
		StartDate:   "2026-09-02",
		EndDate:     "2026-09-05",
		CrowdType:   valueobjects.CrowdFriends,
	}
	assert.Equal(t, BuildPlanPrompt(req), BuildPlanPrompt(req))
}

func TestBuildPlanPrompt_SchemaInstructions(t *testing.T) {
	prompt := BuildPlanPrompt(ports.PlanRequest{
		Destination: "Rome",
		StartDate:   "2026-05-01",
		IsDayTrip:   true,
		CrowdType:   valueobjects.CrowdSolo,
	})

	for _, field := range []string{"name", "description", "type", "cost", "arrival_time", "departure_time"} {
		assert.Contains(t, prompt, field)
	}
	assert.Contains(t, prompt, "between 1 and 10")
	assert.Contains(t, prompt, `"a local restaurant"`)
}
