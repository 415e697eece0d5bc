package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studiocal/internal/model"
)

func timedEvent(id string, start, end time.Time) model.CalendarEvent {
	return model.CalendarEvent{ID: id, Title: id, Start: start, End: end, Kind: model.KindAppointment}
}

func TestPackColumns_Empty(t *testing.T) {
	assert.Empty(t, PackColumns(nil))
	assert.Empty(t, PackColumns([]model.CalendarEvent{}))
}

func TestPackColumns_ReusesFreedColumn(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)
	at := func(h, m int) time.Time { return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }

	a := timedEvent("A", at(9, 0), at(10, 0))
	b := timedEvent("B", at(9, 30), at(10, 30))
	c := timedEvent("C", at(10, 15), at(10, 45))

	layout := PackColumns([]model.CalendarEvent{a, b, c})
	require.Len(t, layout, 3)

	// A and C never overlap, so C reuses A's column; B needs its own.
	assert.Equal(t, layout["A"].Column, layout["C"].Column)
	assert.NotEqual(t, layout["A"].Column, layout["B"].Column)

	for id, ov := range layout {
		assert.GreaterOrEqual(t, ov.TotalColumns, 2, "event %s", id)
		assert.GreaterOrEqual(t, ov.TotalColumns, ov.Column+1, "event %s", id)
	}
}

func TestPackColumns_SameColumnNeverOverlaps(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)
	at := func(h, m int) time.Time { return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }

	events := []model.CalendarEvent{
		timedEvent("a", at(9, 0), at(11, 0)),
		timedEvent("b", at(9, 0), at(9, 30)),
		timedEvent("c", at(9, 15), at(10, 0)),
		timedEvent("d", at(9, 45), at(10, 30)),
		timedEvent("e", at(10, 0), at(10, 15)),
		timedEvent("f", at(11, 0), at(12, 0)),
	}

	layout := PackColumns(events)
	require.Len(t, layout, len(events))

	for i := range events {
		for j := i + 1; j < len(events); j++ {
			ei, ej := events[i], events[j]
			if layout[ei.ID].Column != layout[ej.ID].Column {
				continue
			}
			assert.False(t,
				rangesOverlap(ei.Start, ei.End, ej.Start, ej.End),
				"events %s and %s share column %d but overlap", ei.ID, ej.ID, layout[ei.ID].Column)
		}
	}
}

func TestPackColumns_LongerEventAnchorsOnTie(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)
	at := func(h, m int) time.Time { return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }

	short := timedEvent("short", at(9, 0), at(9, 30))
	long := timedEvent("long", at(9, 0), at(11, 0))

	layout := PackColumns([]model.CalendarEvent{short, long})
	assert.Equal(t, 0, layout["long"].Column)
	assert.Equal(t, 1, layout["short"].Column)
	assert.Equal(t, 2, layout["long"].TotalColumns)
	assert.Equal(t, 2, layout["short"].TotalColumns)
}

func TestPackColumns_TotalColumnsCoversNonMutualNeighbors(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)
	at := func(h, m int) time.Time { return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }

	// b spans both a and c; a and c do not overlap each other.
	a := timedEvent("a", at(9, 0), at(10, 0))
	b := timedEvent("b", at(9, 0), at(12, 0))
	c := timedEvent("c", at(10, 0), at(11, 0))

	layout := PackColumns([]model.CalendarEvent{a, b, c})

	// a sits beside b, and so does c (reusing a's freed column).
	assert.Equal(t, 2, layout["a"].TotalColumns)
	assert.Equal(t, 2, layout["b"].TotalColumns)
	assert.Equal(t, 2, layout["c"].TotalColumns)
}

func TestPackColumns_BackToBackShareColumn(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)
	at := func(h, m int) time.Time { return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }

	// An event ending exactly when the next starts frees its column.
	first := timedEvent("first", at(9, 0), at(10, 0))
	second := timedEvent("second", at(10, 0), at(11, 0))

	layout := PackColumns([]model.CalendarEvent{first, second})
	assert.Equal(t, 0, layout["first"].Column)
	assert.Equal(t, 0, layout["second"].Column)
	assert.Equal(t, 1, layout["first"].TotalColumns)
	assert.Equal(t, 1, layout["second"].TotalColumns)
}
