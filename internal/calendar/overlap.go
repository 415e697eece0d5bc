package calendar

import (
	"sort"
	"time"

	"studiocal/internal/model"
)

// Overlap is the lane assignment for one event within a day's layout. It is
// only valid for the exact event set it was computed over.
type Overlap struct {
	Column       int `json:"column"`
	TotalColumns int `json:"total_columns"`
}

// PackColumns assigns each event a column so concurrent events render side
// by side. Events are placed greedily in start order (longer events first on
// ties, so they anchor the layout) into the leftmost column that is free at
// their start time. TotalColumns is then widened per event so every
// time-overlapping neighbor fits beside it, even when those neighbors do not
// all overlap each other.
//
// The packer assumes end > start for every event; the adapters guarantee
// that upstream.
func PackColumns(events []model.CalendarEvent) map[string]Overlap {
	result := make(map[string]Overlap, len(events))
	if len(events) == 0 {
		return result
	}

	sorted := make([]model.CalendarEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Start.Equal(sorted[j].Start) {
			return sorted[i].Start.Before(sorted[j].Start)
		}
		return sorted[i].End.After(sorted[j].End)
	})

	// columnEnds[c] is the end time of the event currently occupying column c.
	columnEnds := make([]time.Time, 0, 4)
	columnOf := make(map[string]int, len(sorted))

	for _, ev := range sorted {
		placed := false
		for c := range columnEnds {
			if !columnEnds[c].After(ev.Start) {
				columnEnds[c] = ev.End
				columnOf[ev.ID] = c
				placed = true
				break
			}
		}
		if !placed {
			columnEnds = append(columnEnds, ev.End)
			columnOf[ev.ID] = len(columnEnds) - 1
		}
	}

	// Pairwise widening pass. O(n²), fine for the tens of events a single
	// day holds; an interval tree would only matter at much larger scale.
	for i := range sorted {
		maxColumn := columnOf[sorted[i].ID]
		for j := range sorted {
			if i == j {
				continue
			}
			if rangesOverlap(sorted[i].Start, sorted[i].End, sorted[j].Start, sorted[j].End) {
				if c := columnOf[sorted[j].ID]; c > maxColumn {
					maxColumn = c
				}
			}
		}
		result[sorted[i].ID] = Overlap{
			Column:       columnOf[sorted[i].ID],
			TotalColumns: maxColumn + 1,
		}
	}

	return result
}

// rangesOverlap reports whether the half-open ranges [s1, e1) and [s2, e2)
// intersect.
func rangesOverlap(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}
