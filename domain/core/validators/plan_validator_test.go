package validators

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPlanJSON() string {
	return `{
		"itinerary": [
			{
				"day": 1,
				"activities": [
					{
						"name": "Louvre Museum",
						"description": "Morning visit to the world's largest art museum",
						"type": "museum",
						"cost": "17 EUR",
						"arrival_time": "9:00am",
						"departure_time": "12:30pm"
					},
					{
						"name": "Le Marais walking tour",
						"description": "Afternoon stroll through the historic district",
						"type": "sightseeing",
						"cost": "Free",
						"arrival_time": "2:00pm",
						"departure_time": "5:00pm"
					}
				]
			},
			{
				"day": 2,
				"activities": [
					{
						"name": "Eiffel Tower",
						"description": "Summit visit with city views",
						"type": "landmark",
						"cost": "28 EUR",
						"arrival_time": "10:00am",
						"departure_time": "1:00pm"
					}
				]
			}
		],
		"suggestedLocations": ["Louvre Museum", "Eiffel Tower", "Le Marais"]
	}`
}

func TestValidatePlan_Valid(t *testing.T) {
	plan, err := ValidatePlan(json.RawMessage(validPlanJSON()))
	require.NoError(t, err)

	require.Len(t, plan.Days, 2)
	assert.Equal(t, 1, plan.Days[0].Day)
	assert.Len(t, plan.Days[0].Activities, 2)
	assert.Equal(t, "Louvre Museum", plan.Days[0].Activities[0].Name)
	assert.Equal(t, "Free", plan.Days[0].Activities[1].Cost)
	assert.Equal(t, []string{"Louvre Museum", "Eiffel Tower", "Le Marais"}, plan.SuggestedLocations)
	assert.False(t, plan.IsLegacy())
}

func TestValidatePlan_NotJSON(t *testing.T) {
	_, err := ValidatePlan(json.RawMessage(`here is your itinerary: day one...`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid JSON")
}

func TestValidatePlan_EmptyItinerary(t *testing.T) {
	_, err := ValidatePlan(json.RawMessage(`{"itinerary": [], "suggestedLocations": ["Paris"]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one day")
}

func TestValidatePlan_MissingActivityField(t *testing.T) {
	doc := `{
		"itinerary": [{
			"day": 1,
			"activities": [{
				"name": "Louvre Museum",
				"description": "Morning visit",
				"type": "museum",
				"cost": "17 EUR",
				"arrival_time": "9:00am"
			}]
		}],
		"suggestedLocations": ["Louvre Museum"]
	}`
	_, err := ValidatePlan(json.RawMessage(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing field "departure_time"`)
}

func TestValidatePlan_DayNumberBelowOne(t *testing.T) {
	doc := `{
		"itinerary": [{
			"day": 0,
			"activities": [{
				"name": "Louvre Museum",
				"description": "d",
				"type": "museum",
				"cost": "17 EUR",
				"arrival_time": "9:00am",
				"departure_time": "12:00pm"
			}]
		}],
		"suggestedLocations": ["Louvre Museum"]
	}`
	_, err := ValidatePlan(json.RawMessage(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "day number must be at least 1")
}

func TestValidatePlan_SuggestedLocationBounds(t *testing.T) {
	base := `{
		"itinerary": [{
			"day": 1,
			"activities": [{
				"name": "Louvre Museum",
				"description": "d",
				"type": "museum",
				"cost": "17 EUR",
				"arrival_time": "9:00am",
				"departure_time": "12:00pm"
			}]
		}],
		"suggestedLocations": %s
	}`

	t.Run("empty list", func(t *testing.T) {
		_, err := ValidatePlan(json.RawMessage(fmt.Sprintf(base, `[]`)))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least one location")
	})

	t.Run("too many", func(t *testing.T) {
		locs := `["a1","a2","a3","a4","a5","a6","a7","a8","a9","a10","a11"]`
		_, err := ValidatePlan(json.RawMessage(fmt.Sprintf(base, locs)))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at most 10")
	})

	t.Run("duplicate", func(t *testing.T) {
		_, err := ValidatePlan(json.RawMessage(fmt.Sprintf(base, `["Louvre Museum", "louvre museum"]`)))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate")
	})

	t.Run("blank entry", func(t *testing.T) {
		_, err := ValidatePlan(json.RawMessage(fmt.Sprintf(base, `["Louvre Museum", "  "]`)))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is empty")
	})
}

func TestDecodeStoredPlan_Structured(t *testing.T) {
	plan, err := DecodeStoredPlan(json.RawMessage(validPlanJSON()))
	require.NoError(t, err)
	assert.False(t, plan.IsLegacy())
	assert.Len(t, plan.Days, 2)
}

func TestDecodeStoredPlan_LegacyText(t *testing.T) {
	plan, err := DecodeStoredPlan(json.RawMessage(`"Day 1: Visit the Louvre in the morning..."`))
	require.NoError(t, err)
	assert.True(t, plan.IsLegacy())
	assert.Equal(t, "Day 1: Visit the Louvre in the morning...", plan.LegacyText)
	assert.Empty(t, plan.Days)
}

func TestDecodeStoredPlan_Empty(t *testing.T) {
	_, err := DecodeStoredPlan(json.RawMessage(`null`))
	assert.Error(t, err)
}
