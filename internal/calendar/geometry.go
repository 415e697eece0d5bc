package calendar

import (
	"fmt"
	"time"
)

// Grid geometry constants. One 30-minute slot renders at a fixed pixel
// height; everything else is derived from that ratio.
const (
	SlotMinutes      = 30
	SlotHeightPx     = 60.0
	PxPerMinute      = SlotHeightPx / float64(SlotMinutes)
	MinEventHeightPx = 30.0
)

// Position is the rendered geometry of a single event inside the day grid.
type Position struct {
	Top     float64 `json:"top"`
	Height  float64 `json:"height"`
	Visible bool    `json:"visible"`
}

// TimeSlots returns "HH:MM" labels at 30-minute granularity over the
// half-open hour interval [startHour, endHour). TimeSlots(0, 24) yields the
// full-day slot set; the working-hours set comes from the configured hours.
func TimeSlots(startHour, endHour int) []string {
	if startHour < 0 {
		startHour = 0
	}
	if endHour > 24 {
		endHour = 24
	}
	if endHour <= startHour {
		return nil
	}

	slots := make([]string, 0, (endHour-startHour)*2)
	for h := startHour; h < endHour; h++ {
		for m := 0; m < 60; m += SlotMinutes {
			slots = append(slots, fmt.Sprintf("%02d:%02d", h, m))
		}
	}
	return slots
}

// EventPosition maps an event's time range onto grid pixels. offsetMinutes
// shifts the grid origin (e.g. 360 when the visible grid starts at 06:00).
// An end at or before start is treated as a one-hour event; the height never
// drops below MinEventHeightPx so short events stay clickable.
func EventPosition(start, end time.Time, offsetMinutes int) Position {
	if !end.After(start) {
		end = start.Add(time.Hour)
	}

	startMinutes := start.Hour()*60 + start.Minute()
	top := float64(startMinutes-offsetMinutes) * PxPerMinute
	if top < 0 {
		top = 0
	}

	height := end.Sub(start).Minutes() * PxPerMinute
	if height < MinEventHeightPx {
		height = MinEventHeightPx
	}

	return Position{Top: top, Height: height, Visible: true}
}
