package feed

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func icsBody(events ...string) []byte {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//studiocal test//EN",
	}
	lines = append(lines, events...)
	lines = append(lines, "END:VCALENDAR", "")
	return []byte(strings.Join(lines, "\r\n"))
}

func TestParse(t *testing.T) {
	src := Source{ID: "studio", URL: "https://feeds.example/studio.ics"}

	body := icsBody(
		"BEGIN:VEVENT",
		"UID:uid-1",
		"SUMMARY:Fabric consult",
		"LOCATION:Showroom",
		"DTSTART:20260302T090000Z",
		"DTEND:20260302T100000Z",
		"END:VEVENT",
	)

	events, err := Parse(src, body)
	require.NoError(t, err)
	require.Len(t, events, 1)

	ev := events[0]
	assert.Equal(t, "uid-1", ev.UID)
	assert.Equal(t, "Fabric consult", ev.Summary)
	assert.Equal(t, "Showroom", ev.Location)
	assert.False(t, ev.AllDay)
	assert.True(t, ev.Start.Equal(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)))
	assert.True(t, ev.End.Equal(time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)))
}

func TestParse_AllDayDetected(t *testing.T) {
	src := Source{ID: "studio"}

	body := icsBody(
		"BEGIN:VEVENT",
		"UID:uid-fair",
		"SUMMARY:Trade fair",
		"DTSTART;VALUE=DATE:20260302",
		"DTEND;VALUE=DATE:20260303",
		"END:VEVENT",
	)

	events, err := Parse(src, body)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.True(t, events[0].AllDay)
}

func TestParse_MissingUIDSkipped(t *testing.T) {
	src := Source{ID: "studio"}

	body := icsBody(
		"BEGIN:VEVENT",
		"SUMMARY:No identity",
		"DTSTART:20260302T090000Z",
		"DTEND:20260302T100000Z",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:uid-ok",
		"SUMMARY:Valid",
		"DTSTART:20260302T110000Z",
		"DTEND:20260302T120000Z",
		"END:VEVENT",
	)

	events, err := Parse(src, body)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "uid-ok", events[0].UID)
}

func TestParse_EmptyBody(t *testing.T) {
	_, err := Parse(Source{ID: "studio"}, nil)
	assert.Error(t, err)
}

func TestParse_RecurrenceOverrideCaptured(t *testing.T) {
	src := Source{ID: "studio"}

	body := icsBody(
		"BEGIN:VEVENT",
		"UID:uid-rec",
		"SUMMARY:Standup (moved)",
		"RECURRENCE-ID:20260303T083000Z",
		"DTSTART:20260303T100000Z",
		"DTEND:20260303T103000Z",
		"END:VEVENT",
	)

	events, err := Parse(src, body)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.NotNil(t, events[0].RecurrenceID)
	assert.True(t, events[0].RecurrenceID.Equal(time.Date(2026, 3, 3, 8, 30, 0, 0, time.UTC)))
}

func TestParse_RecurrenceRuleCaptured(t *testing.T) {
	src := Source{ID: "studio"}

	body := icsBody(
		"BEGIN:VEVENT",
		"UID:uid-rec",
		"SUMMARY:Standup",
		"DTSTART:20260302T083000Z",
		"DTEND:20260302T084500Z",
		"RRULE:FREQ=DAILY;COUNT=3",
		"EXDATE:20260303T083000Z",
		"END:VEVENT",
	)

	events, err := Parse(src, body)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "FREQ=DAILY;COUNT=3", events[0].RawRRule)
	require.Len(t, events[0].ExDates, 1)
	assert.True(t, events[0].ExDates[0].Equal(time.Date(2026, 3, 3, 8, 30, 0, 0, time.UTC)))
}
