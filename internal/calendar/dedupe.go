package calendar

import (
	"math"
	"strconv"
	"strings"

	"studiocal/internal/model"
)

// dedupeBucketMillis buckets event start times to 5-minute resolution.
// Together with the lowercased title this forms the duplicate fingerprint:
// the same meeting created locally and re-imported from an external calendar
// sync lands in the same bucket even when the timestamps differ by a little.
// Two distinct short meetings with the same generic title within 5 minutes
// of each other will collide; that trade-off is accepted.
const dedupeBucketMillis = 300000

func dedupeKey(ev model.CalendarEvent) string {
	title := strings.ToLower(strings.TrimSpace(ev.Title))
	bucket := int64(math.Round(float64(ev.Start.UnixMilli()) / dedupeBucketMillis))
	return title + "_" + strconv.FormatInt(bucket, 10)
}

// DedupeAppointments collapses near-duplicate appointment events. Among
// colliding keys exactly one survives: the incumbent, unless the newcomer
// carries an external-sync identifier the incumbent lacks. First-seen order
// is preserved. Bookings and tasks come from distinct record spaces and are
// never deduplicated.
func DedupeAppointments(events []model.CalendarEvent) []model.CalendarEvent {
	out := make([]model.CalendarEvent, 0, len(events))
	byKey := make(map[string]int, len(events))

	for _, ev := range events {
		key := dedupeKey(ev)
		idx, seen := byKey[key]
		if !seen {
			byKey[key] = len(out)
			out = append(out, ev)
			continue
		}
		if ev.GoogleEventID != "" && out[idx].GoogleEventID == "" {
			out[idx] = ev
		}
	}

	return out
}
