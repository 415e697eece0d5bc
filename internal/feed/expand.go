package feed

import (
	"context"
	"time"

	"github.com/teambition/rrule-go"

	appLog "studiocal/internal/log"
	"studiocal/internal/model"
)

const defaultMaxOccurrencesPerEvent = 1000

// ExpandConfig controls how feed events are expanded into appointments.
type ExpandConfig struct {
	// DisplayLocation is the timezone all appointments are converted to.
	// If nil, time.Local is used.
	DisplayLocation *time.Location

	// RangeStart / RangeEnd bound the expansion window.
	RangeStart time.Time
	RangeEnd   time.Time

	// MaxOccurrencesPerEvent caps runaway recurrence rules. Zero means the
	// package default.
	MaxOccurrencesPerEvent int
}

// ExpandAppointments turns feed events into appointment records within the
// window, expanding RRULE recurrences and honoring EXDATE exceptions and
// RECURRENCE-ID overrides. Every record carries the feed UID as its
// GoogleEventID, so the calendar deduplicator can reconcile it against a
// locally created copy of the same meeting. All-day entries are skipped; the
// scheduling grid only renders timed events.
func ExpandAppointments(events []Event, cfg ExpandConfig) []model.AppointmentRecord {
	if cfg.DisplayLocation == nil {
		cfg.DisplayLocation = time.Local
	}
	if cfg.MaxOccurrencesPerEvent <= 0 {
		cfg.MaxOccurrencesPerEvent = defaultMaxOccurrencesPerEvent
	}
	if cfg.RangeEnd.Before(cfg.RangeStart) {
		return nil
	}

	// Override VEVENTs replace one instance of the base event sharing their
	// UID; they never stand on their own. Orphan overrides are dropped.
	baseEvents := make([]Event, 0, len(events))
	overridesByUID := make(map[string][]Event)
	for _, ev := range events {
		if ev.RecurrenceID != nil {
			overridesByUID[ev.UID] = append(overridesByUID[ev.UID], ev)
			continue
		}
		baseEvents = append(baseEvents, ev)
	}

	records := make([]model.AppointmentRecord, 0, len(baseEvents))
	for _, ev := range baseEvents {
		if ev.AllDay {
			appLog.Debug("sync: all-day entry skipped", "uid", ev.UID, "summary", ev.Summary)
			continue
		}
		overrides := overridesByUID[ev.UID]
		if ev.RawRRule == "" {
			if rec, ok := expandSingle(ev, overrides, cfg); ok {
				records = append(records, rec)
			}
			continue
		}
		records = append(records, expandRecurring(ev, overrides, cfg)...)
	}
	return records
}

func expandSingle(ev Event, overrides []Event, cfg ExpandConfig) (model.AppointmentRecord, bool) {
	if o, ok := overrideForStart(overrides, ev.Start); ok {
		ev = o
	}
	start, end := normalizeRange(ev.Start, ev.End)
	if end.Before(cfg.RangeStart) || start.After(cfg.RangeEnd) {
		return model.AppointmentRecord{}, false
	}
	return makeRecord(ev, start, end, ev.UID, cfg.DisplayLocation), true
}

func expandRecurring(ev Event, overrides []Event, cfg ExpandConfig) []model.AppointmentRecord {
	r, err := rrule.StrToRRule(ev.RawRRule)
	if err != nil {
		appLog.Error("sync: failed to parse RRULE", err, "uid", ev.UID, "rrule", ev.RawRRule)
		return nil
	}
	r.DTStart(ev.Start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range ev.ExDates {
		set.ExDate(ex.In(ev.Start.Location()))
	}

	rangeStart := cfg.RangeStart.In(ev.Start.Location())
	rangeEnd := cfg.RangeEnd.In(ev.Start.Location())
	occTimes := set.Between(rangeStart, rangeEnd, true)

	if len(occTimes) > cfg.MaxOccurrencesPerEvent {
		appLog.Warn("sync: recurrence truncated at cap",
			"uid", ev.UID, "cap", cfg.MaxOccurrencesPerEvent)
		occTimes = occTimes[:cfg.MaxOccurrencesPerEvent]
	}

	duration := ev.End.Sub(ev.Start)
	if duration <= 0 {
		duration = time.Hour
	}

	out := make([]model.AppointmentRecord, 0, len(occTimes))
	for _, occStart := range occTimes {
		// Instance identity: feed UID plus the original occurrence start. A
		// rescheduled instance keeps the same identity after its override is
		// applied, so it is still one event, just moved.
		instanceID := ev.UID + "/" + occStart.In(cfg.DisplayLocation).Format(time.RFC3339)

		if o, ok := overrideForStart(overrides, occStart); ok {
			oStart, oEnd := normalizeRange(o.Start, o.End)
			out = append(out, makeRecord(o, oStart, oEnd, instanceID, cfg.DisplayLocation))
			continue
		}

		out = append(out, makeRecord(ev, occStart, occStart.Add(duration), instanceID, cfg.DisplayLocation))
	}
	return out
}

// overrideForStart finds the override whose RECURRENCE-ID names the given
// occurrence start.
func overrideForStart(overrides []Event, start time.Time) (Event, bool) {
	for _, ov := range overrides {
		if ov.RecurrenceID != nil && ov.RecurrenceID.Equal(start) {
			return ov, true
		}
	}
	return Event{}, false
}

// normalizeRange defaults a missing or inverted end to one hour after start.
func normalizeRange(start, end time.Time) (time.Time, time.Time) {
	if !end.After(start) {
		end = start.Add(time.Hour)
	}
	return start, end
}

func makeRecord(ev Event, start, end time.Time, eventID string, loc *time.Location) model.AppointmentRecord {
	return model.AppointmentRecord{
		ID:            ev.Source.ID + "-" + eventID,
		Title:         ev.Summary,
		Start:         start.In(loc),
		End:           end.In(loc),
		Location:      ev.Location,
		Description:   ev.Description,
		Color:         ev.Source.Color,
		GoogleEventID: eventID,
	}
}

// RefreshAppointments runs the full fetch, parse and expand pipeline for all
// sources and returns the merged appointment snapshot. Per-source failures
// are logged and skipped; a dead feed never empties the calendar.
func RefreshAppointments(ctx context.Context, fetcher *Fetcher, sources []Source, cfg ExpandConfig) []model.AppointmentRecord {
	results, errs := fetcher.FetchAll(ctx, sources)
	if len(errs) > 0 {
		appLog.Warn("sync refresh: some sources failed", "failed", len(errs), "total", len(sources))
	}

	records := make([]model.AppointmentRecord, 0)
	for _, res := range results {
		events, err := Parse(res.Source, res.Body)
		if err != nil {
			continue
		}
		records = append(records, ExpandAppointments(events, cfg)...)
	}

	appLog.Info("sync refresh completed", "sources", len(results), "appointments", len(records))
	return records
}
