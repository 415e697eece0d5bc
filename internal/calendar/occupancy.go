package calendar

import (
	"time"

	"studiocal/internal/model"
)

// SlotOccupied reports whether any event's [start, end) interval contains
// the given "HH:MM" slot on date. The interval is half-open: an event ending
// exactly at the slot leaves it free. Used to gate the click-to-create
// affordance in the grid; recomputed per query with no caching.
func SlotOccupied(events []model.CalendarEvent, slot string, date time.Time) bool {
	clock, err := time.Parse("15:04", slot)
	if err != nil {
		return false
	}

	at := time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), 0, 0, date.Location())

	for _, ev := range events {
		if !at.Before(ev.Start) && at.Before(ev.End) {
			return true
		}
	}
	return false
}
