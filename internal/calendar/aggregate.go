package calendar

import (
	"time"

	"studiocal/internal/model"
)

// EventsForDate merges the three event sources for one day into a single
// list: deduplicated appointments first, then bookings, then tasks. That
// fixed order is only the tie-break order before the overlap packer re-sorts
// by time. userID is threaded through solely to stamp synthesized booking
// events with an owner.
func EventsForDate(
	appointments []model.AppointmentRecord,
	bookings []model.BookingRecord,
	tasks []model.TaskRecord,
	date time.Time,
	userID string,
) []model.CalendarEvent {
	appointmentEvents := DedupeAppointments(AdaptAppointments(appointments, date))
	bookingEvents := AdaptBookings(bookings, date, userID)
	taskEvents := AdaptTasks(tasks, date)

	out := make([]model.CalendarEvent, 0, len(appointmentEvents)+len(bookingEvents)+len(taskEvents))
	out = append(out, appointmentEvents...)
	out = append(out, bookingEvents...)
	out = append(out, taskEvents...)
	return out
}
