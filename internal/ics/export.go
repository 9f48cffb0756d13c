package ics

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	"eventcal/internal/models"
)

// Export serializes the given events into a VCALENDAR. Event start times are
// interpreted in loc; each VEVENT runs for one hour since the data model
// stores no end time.
func Export(events []models.Event, loc *time.Location) (string, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//eventcal//EN")

	for i := range events {
		e := &events[i]
		start, err := e.StartsAt(loc)
		if err != nil {
			return "", fmt.Errorf("event %s has unparseable start: %w", e.ID, err)
		}

		ve := cal.AddEvent(e.ID)
		ve.SetDtStampTime(time.Now())
		ve.SetStartAt(start)
		ve.SetEndAt(start.Add(time.Hour))
		ve.SetSummary(e.Title)
		if e.Description != "" {
			ve.SetDescription(e.Description)
		}
		if e.Location != "" {
			ve.SetLocation(e.Location)
		}
	}

	return cal.Serialize(), nil
}
