package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studiocal/internal/model"
)

func TestAppointmentRoundTrip(t *testing.T) {
	s := Open(t.TempDir())

	a := &model.AppointmentRecord{
		Title: "Site measure",
		Start: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		Color: "#FF8800",
	}
	require.NoError(t, s.PutAppointment(a))
	require.NotEmpty(t, a.ID, "Put assigns an ID")

	got, err := s.GetAppointment(a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Site measure", got.Title)
	assert.True(t, got.Start.Equal(a.Start))
	assert.Equal(t, "#FF8800", got.Color)

	require.NoError(t, s.DeleteAppointment(a.ID))
	_, err = s.GetAppointment(a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListAppointmentsSortedByStart(t *testing.T) {
	s := Open(t.TempDir())

	later := &model.AppointmentRecord{
		ID:    "later",
		Title: "Afternoon",
		Start: time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC),
	}
	earlier := &model.AppointmentRecord{
		ID:    "earlier",
		Title: "Morning",
		Start: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.PutAppointment(later))
	require.NoError(t, s.PutAppointment(earlier))

	list, err := s.ListAppointments()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "earlier", list[0].ID)
	assert.Equal(t, "later", list[1].ID)
}

func TestKindsAreIsolated(t *testing.T) {
	s := Open(t.TempDir())

	require.NoError(t, s.PutAppointment(&model.AppointmentRecord{ID: "x", Title: "Appt"}))
	require.NoError(t, s.PutBooking(&model.BookingRecord{ID: "x", CustomerName: "Jane"}))
	require.NoError(t, s.PutTask(&model.TaskRecord{ID: "x", Title: "Task"}))

	appointments, err := s.ListAppointments()
	require.NoError(t, err)
	bookings, err := s.ListBookings()
	require.NoError(t, err)
	tasks, err := s.ListTasks()
	require.NoError(t, err)

	assert.Len(t, appointments, 1)
	assert.Len(t, bookings, 1)
	assert.Len(t, tasks, 1)

	// Deleting under one kind must not touch the same ID under another.
	require.NoError(t, s.DeleteBooking("x"))
	_, err = s.GetAppointment("x")
	assert.NoError(t, err)
	_, err = s.GetTask("x")
	assert.NoError(t, err)
}

func TestBookingAndTaskRoundTrip(t *testing.T) {
	s := Open(t.TempDir())

	b := &model.BookingRecord{
		CustomerName:    "Jane Doe",
		AppointmentDate: "2026-03-02",
		AppointmentTime: "14:00",
		Scheduler:       &model.Scheduler{Name: "Consult", DurationMinutes: 30},
	}
	require.NoError(t, s.PutBooking(b))
	gotB, err := s.GetBooking(b.ID)
	require.NoError(t, err)
	require.NotNil(t, gotB.Scheduler)
	assert.Equal(t, 30, gotB.Scheduler.DurationMinutes)

	tk := &model.TaskRecord{
		Title:    "Cut fabric",
		DueDate:  "2026-03-02",
		Priority: model.PriorityHigh,
	}
	require.NoError(t, s.PutTask(tk))
	gotT, err := s.GetTask(tk.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PriorityHigh, gotT.Priority)
}

func TestDeleteMissing(t *testing.T) {
	s := Open(t.TempDir())
	assert.ErrorIs(t, s.DeleteAppointment("nope"), ErrNotFound)
	assert.ErrorIs(t, s.DeleteBooking("nope"), ErrNotFound)
	assert.ErrorIs(t, s.DeleteTask("nope"), ErrNotFound)
}
