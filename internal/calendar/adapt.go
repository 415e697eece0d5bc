package calendar

import (
	"fmt"
	"time"

	appLog "studiocal/internal/log"
	"studiocal/internal/model"
)

const (
	defaultBookingMinutes = 60
	taskBlockMinutes      = 30
	defaultTaskDueTime    = "09:00"
)

// AdaptAppointments filters appointment records down to those whose start
// falls on date and normalizes them into calendar events. Records with an
// inverted or zero-length time range are dropped rather than surfaced as
// errors; one bad record must never hide the rest of the day.
func AdaptAppointments(appointments []model.AppointmentRecord, date time.Time) []model.CalendarEvent {
	events := make([]model.CalendarEvent, 0, len(appointments))
	dropped := 0

	for _, a := range appointments {
		if !model.SameLocalDay(a.Start, date) {
			continue
		}
		if !a.End.After(a.Start) {
			dropped++
			appLog.Debug("appointment dropped: invalid time range",
				"id", a.ID, "start", a.Start, "end", a.End)
			continue
		}

		events = append(events, model.CalendarEvent{
			ID:               a.ID,
			Title:            a.Title,
			Start:            a.Start,
			End:              a.End,
			Kind:             model.KindAppointment,
			Color:            a.Color,
			Location:         a.Location,
			Description:      a.Description,
			VideoMeetingLink: a.VideoMeetingLink,
			AppointmentType:  a.AppointmentType,
			SchedulerName:    a.SchedulerName,
			GoogleEventID:    a.GoogleEventID,
			UserID:           a.UserID,
		})
	}

	if dropped > 0 {
		appLog.Warn("appointments dropped during adaptation", "count", dropped)
	}
	return events
}

// AdaptBookings filters third-party bookings by their appointment_date field
// and synthesizes a concrete time range from appointment_time plus the
// scheduler's duration (60 minutes when the scheduler does not say).
// Bookings with a missing or unparseable date/time are dropped.
func AdaptBookings(bookings []model.BookingRecord, date time.Time, userID string) []model.CalendarEvent {
	events := make([]model.CalendarEvent, 0, len(bookings))
	dropped := 0

	for i := range bookings {
		b := bookings[i]

		day, err := time.ParseInLocation("2006-01-02", b.AppointmentDate, date.Location())
		if err != nil || !model.SameLocalDay(day, date) {
			if err != nil {
				dropped++
				appLog.Debug("booking dropped: bad appointment_date", "id", b.ID, "date", b.AppointmentDate)
			}
			continue
		}

		clock, err := time.Parse("15:04", b.AppointmentTime)
		if err != nil {
			dropped++
			appLog.Debug("booking dropped: bad appointment_time", "id", b.ID, "time", b.AppointmentTime)
			continue
		}

		duration := defaultBookingMinutes
		schedulerName := ""
		videoLink := b.VideoCallLink
		if b.Scheduler != nil {
			schedulerName = b.Scheduler.Name
			if b.Scheduler.DurationMinutes > 0 {
				duration = b.Scheduler.DurationMinutes
			}
			if videoLink == "" {
				videoLink = b.Scheduler.VideoCallLink
			}
		}

		start := time.Date(day.Year(), day.Month(), day.Day(),
			clock.Hour(), clock.Minute(), 0, 0, date.Location())
		end := start.Add(time.Duration(duration) * time.Minute)

		events = append(events, model.CalendarEvent{
			ID:               b.ID,
			Title:            fmt.Sprintf("%s · %s", b.CustomerName, schedulerName),
			Start:            start,
			End:              end,
			Kind:             model.KindBooking,
			SchedulerName:    schedulerName,
			VideoMeetingLink: videoLink,
			Booking:          &bookings[i],
			UserID:           userID,
		})
	}

	if dropped > 0 {
		appLog.Warn("bookings dropped during adaptation", "count", dropped)
	}
	return events
}

// AdaptTasks filters tasks by due_date and places each in a fixed 30-minute
// block starting at its due_time, defaulting to 09:00 when the time is
// absent or unparseable.
func AdaptTasks(tasks []model.TaskRecord, date time.Time) []model.CalendarEvent {
	events := make([]model.CalendarEvent, 0, len(tasks))

	for i := range tasks {
		t := tasks[i]

		day, err := time.ParseInLocation("2006-01-02", t.DueDate, date.Location())
		if err != nil {
			appLog.Debug("task dropped: bad due_date", "id", t.ID, "due_date", t.DueDate)
			continue
		}
		if !model.SameLocalDay(day, date) {
			continue
		}

		due := t.DueTime
		if due == "" {
			due = defaultTaskDueTime
		}
		clock, err := time.Parse("15:04", due)
		if err != nil {
			clock, _ = time.Parse("15:04", defaultTaskDueTime)
		}

		start := time.Date(day.Year(), day.Month(), day.Day(),
			clock.Hour(), clock.Minute(), 0, 0, date.Location())
		end := start.Add(taskBlockMinutes * time.Minute)

		events = append(events, model.CalendarEvent{
			ID:       t.ID,
			Title:    t.Title,
			Start:    start,
			End:      end,
			Kind:     model.KindTask,
			Task:     &tasks[i],
			Status:   t.Status,
			Priority: t.Priority,
			UserID:   t.UserID,
		})
	}

	return events
}
