package validators

import (
	"encoding/json"
	"fmt"
	"strings"

	"compass/domain/core/entities"
	"compass/pkg/errors"
)

// rawActivity mirrors entities.Activity with pointer fields so a missing key
// can be told apart from an empty string.
type rawActivity struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	Type          *string `json:"type"`
	Cost          *string `json:"cost"`
	ArrivalTime   *string `json:"arrival_time"`
	DepartureTime *string `json:"departure_time"`
}

type rawDay struct {
	Day        *int          `json:"day"`
	Activities []rawActivity `json:"activities"`
}

type rawPlan struct {
	Days               []rawDay `json:"itinerary"`
	SuggestedLocations []string `json:"suggestedLocations"`
}

// ValidatePlan decodes and checks a structured plan document, typically the
// raw model output. It returns the first violation found, so generation
// failures carry one actionable message rather than a wall of them.
func ValidatePlan(data json.RawMessage) (*entities.Plan, error) {
	var raw rawPlan
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.NewValidationError("plan is not valid JSON: " + err.Error())
	}

	if len(raw.Days) == 0 {
		return nil, errors.NewValidationError("itinerary must contain at least one day")
	}

	plan := &entities.Plan{
		Days:               make([]entities.DayPlan, 0, len(raw.Days)),
		SuggestedLocations: raw.SuggestedLocations,
	}

	for i, day := range raw.Days {
		if day.Day == nil {
			return nil, errors.NewValidationError(fmt.Sprintf("itinerary[%d]: day number is required", i))
		}
		if *day.Day < 1 {
			return nil, errors.NewValidationError(fmt.Sprintf("itinerary[%d]: day number must be at least 1, got %d", i, *day.Day))
		}
		if len(day.Activities) == 0 {
			return nil, errors.NewValidationError(fmt.Sprintf("itinerary[%d]: day %d has no activities", i, *day.Day))
		}

		activities := make([]entities.Activity, 0, len(day.Activities))
		for j, act := range day.Activities {
			built, err := buildActivity(*day.Day, j, act)
			if err != nil {
				return nil, err
			}
			activities = append(activities, built)
		}

		plan.Days = append(plan.Days, entities.DayPlan{Day: *day.Day, Activities: activities})
	}

	if err := validateSuggestedLocations(raw.SuggestedLocations); err != nil {
		return nil, err
	}

	return plan, nil
}

func buildActivity(day, index int, raw rawActivity) (entities.Activity, error) {
	fields := []struct {
		name  string
		value *string
	}{
		{"name", raw.Name},
		{"description", raw.Description},
		{"type", raw.Type},
		{"cost", raw.Cost},
		{"arrival_time", raw.ArrivalTime},
		{"departure_time", raw.DepartureTime},
	}
	for _, f := range fields {
		if f.value == nil {
			return entities.Activity{}, errors.NewValidationError(
				fmt.Sprintf("day %d activity %d: missing field %q", day, index, f.name))
		}
	}
	if strings.TrimSpace(*raw.Name) == "" {
		return entities.Activity{}, errors.NewValidationError(
			fmt.Sprintf("day %d activity %d: name cannot be empty", day, index))
	}

	return entities.Activity{
		Name:          *raw.Name,
		Description:   *raw.Description,
		Type:          *raw.Type,
		Cost:          *raw.Cost,
		ArrivalTime:   *raw.ArrivalTime,
		DepartureTime: *raw.DepartureTime,
	}, nil
}

func validateSuggestedLocations(locations []string) error {
	if len(locations) < entities.MinSuggestedLocations {
		return errors.NewValidationError("suggestedLocations must contain at least one location")
	}
	if len(locations) > entities.MaxSuggestedLocations {
		return errors.NewValidationError(
			fmt.Sprintf("suggestedLocations must contain at most %d locations, got %d",
				entities.MaxSuggestedLocations, len(locations)))
	}

	seen := make(map[string]struct{}, len(locations))
	for i, loc := range locations {
		if strings.TrimSpace(loc) == "" {
			return errors.NewValidationError(fmt.Sprintf("suggestedLocations[%d] is empty", i))
		}
		key := strings.ToLower(strings.TrimSpace(loc))
		if _, dup := seen[key]; dup {
			return errors.NewValidationError(fmt.Sprintf("suggestedLocations contains duplicate entry %q", loc))
		}
		seen[key] = struct{}{}
	}
	return nil
}

// DecodeStoredPlan decodes a plan as persisted in the store. Older client
// generations stored the itinerary as a single free-text string; those records
// surface as legacy plans rather than being coerced into the structured shape.
func DecodeStoredPlan(data json.RawMessage) (entities.Plan, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return entities.Plan{}, errors.NewValidationError("stored plan is empty")
	}

	if strings.HasPrefix(trimmed, "\"") {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return entities.Plan{}, errors.NewValidationError("stored plan is not valid JSON").WithCause(err)
		}
		return entities.Plan{LegacyText: text}, nil
	}

	var plan entities.Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return entities.Plan{}, errors.NewValidationError("stored plan is not valid JSON").WithCause(err)
	}
	if len(plan.Days) == 0 {
		return entities.Plan{}, errors.NewValidationError("stored plan contains no days")
	}
	return plan, nil
}
