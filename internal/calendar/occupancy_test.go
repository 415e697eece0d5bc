package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"studiocal/internal/model"
)

func TestSlotOccupied(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)
	at := func(h, m int) time.Time { return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }

	events := []model.CalendarEvent{
		{ID: "a", Start: at(9, 0), End: at(9, 30), Kind: model.KindAppointment},
	}

	tests := []struct {
		slot string
		want bool
	}{
		{"08:30", false},
		{"09:00", true},
		{"09:15", true},
		// Half-open interval: an event ending at 09:30 leaves that slot free.
		{"09:30", false},
		{"10:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.slot, func(t *testing.T) {
			assert.Equal(t, tt.want, SlotOccupied(events, tt.slot, day))
		})
	}

	t.Run("no events", func(t *testing.T) {
		assert.False(t, SlotOccupied(nil, "09:00", day))
	})

	t.Run("malformed slot label", func(t *testing.T) {
		assert.False(t, SlotOccupied(events, "nine", day))
	})
}
