package valueobjects

import (
	"time"

	"compass/pkg/errors"
)

// calendarDateFormat is the wire format for trip dates (YYYY-MM-DD)
const calendarDateFormat = "2006-01-02"

// TripDates is a value object holding the trip duration.
// Invariant: an end date is present if and only if the trip is not a day trip,
// and the end date is never before the start date.
type TripDates struct {
	startDate time.Time
	endDate   time.Time
	isDayTrip bool
}

// NewDayTrip creates trip dates for a single-day trip
func NewDayTrip(startDate string) (TripDates, error) {
	start, err := parseCalendarDate("startDate", startDate)
	if err != nil {
		return TripDates{}, err
	}
	return TripDates{startDate: start, isDayTrip: true}, nil
}

// NewRangedTrip creates trip dates for a multi-day trip
func NewRangedTrip(startDate, endDate string) (TripDates, error) {
	start, err := parseCalendarDate("startDate", startDate)
	if err != nil {
		return TripDates{}, err
	}
	if endDate == "" {
		return TripDates{}, errors.NewValidationError("endDate is required when the trip is not a day trip")
	}
	end, err := parseCalendarDate("endDate", endDate)
	if err != nil {
		return TripDates{}, err
	}
	if end.Before(start) {
		return TripDates{}, errors.NewValidationError("endDate must not be before startDate")
	}
	return TripDates{startDate: start, endDate: end, isDayTrip: false}, nil
}

// NewTripDates creates trip dates from raw request fields, enforcing the
// day-trip/end-date invariant
func NewTripDates(isDayTrip bool, startDate, endDate string) (TripDates, error) {
	if isDayTrip {
		if endDate != "" {
			return TripDates{}, errors.NewValidationError("endDate must be absent for a day trip")
		}
		return NewDayTrip(startDate)
	}
	return NewRangedTrip(startDate, endDate)
}

// IsDayTrip reports whether the trip is a single-day trip
func (d TripDates) IsDayTrip() bool {
	return d.isDayTrip
}

// StartDate returns the trip start date
func (d TripDates) StartDate() time.Time {
	return d.startDate
}

// StartDateString returns the start date in YYYY-MM-DD form
func (d TripDates) StartDateString() string {
	return d.startDate.Format(calendarDateFormat)
}

// EndDate returns the trip end date and whether one exists
func (d TripDates) EndDate() (time.Time, bool) {
	if d.isDayTrip {
		return time.Time{}, false
	}
	return d.endDate, true
}

// EndDateString returns the end date in YYYY-MM-DD form, empty for day trips
func (d TripDates) EndDateString() string {
	if d.isDayTrip {
		return ""
	}
	return d.endDate.Format(calendarDateFormat)
}

// Nights returns the number of nights covered by the trip
func (d TripDates) Nights() int {
	if d.isDayTrip {
		return 0
	}
	return int(d.endDate.Sub(d.startDate).Hours() / 24)
}

func parseCalendarDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.NewValidationError(field + " is required")
	}
	t, err := time.Parse(calendarDateFormat, value)
	if err != nil {
		return time.Time{}, errors.NewValidationError(field + " must be a YYYY-MM-DD date").WithCause(err)
	}
	return t, nil
}
