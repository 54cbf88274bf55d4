package ai

// planSchema is the JSON schema the model output is constrained to. It mirrors
// the validator exactly: six required string fields per activity and a bounded
// suggestedLocations list.
func planSchema() map[string]interface{} {
	activitySchema := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"name":           map[string]interface{}{"type": "string"},
			"description":    map[string]interface{}{"type": "string"},
			"type":           map[string]interface{}{"type": "string"},
			"cost":           map[string]interface{}{"type": "string"},
			"arrival_time":   map[string]interface{}{"type": "string"},
			"departure_time": map[string]interface{}{"type": "string"},
		},
		"required":             []string{"name", "description", "type", "cost", "arrival_time", "departure_time"},
		"additionalProperties": false,
	}

	daySchema := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"day": map[string]interface{}{"type": "integer"},
			"activities": map[string]interface{}{
				"type":  "array",
				"items": activitySchema,
			},
		},
		"required":             []string{"day", "activities"},
		"additionalProperties": false,
	}

	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"itinerary": map[string]interface{}{
				"type":  "array",
				"items": daySchema,
			},
			"suggestedLocations": map[string]interface{}{
				"type":     "array",
				"items":    map[string]interface{}{"type": "string"},
				"minItems": 1,
				"maxItems": 10,
			},
		},
		"required":             []string{"itinerary", "suggestedLocations"},
		"additionalProperties": false,
	}
}
