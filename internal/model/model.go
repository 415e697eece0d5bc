package model

import "time"

// EventKind discriminates the source a CalendarEvent was derived from.
type EventKind string

const (
	KindAppointment EventKind = "appointment"
	KindBooking     EventKind = "booking"
	KindTask        EventKind = "task"
)

// TaskStatus is the workflow state of a task record.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
)

// TaskPriority is the four-level urgency scale used for task styling.
type TaskPriority string

const (
	PriorityUrgent TaskPriority = "urgent"
	PriorityHigh   TaskPriority = "high"
	PriorityMedium TaskPriority = "medium"
	PriorityLow    TaskPriority = "low"
)

// AppointmentRecord is a directly scheduled appointment. Records created
// locally have an empty GoogleEventID; records imported from an external
// calendar sync carry the upstream event identifier there, which is what
// the deduplicator keys on when the same meeting arrives twice.
type AppointmentRecord struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Start time.Time `json:"start_time"`
	End   time.Time `json:"end_time"`

	Location         string `json:"location,omitempty"`
	Description      string `json:"description,omitempty"`
	VideoMeetingLink string `json:"video_meeting_link,omitempty"`
	AppointmentType  string `json:"appointment_type,omitempty"`
	SchedulerName    string `json:"scheduler_name,omitempty"`

	// Color is an optional "#RRGGBB" override for the calendar grid.
	Color string `json:"color,omitempty"`

	GoogleEventID string `json:"google_event_id,omitempty"`
	UserID        string `json:"user_id,omitempty"`
}

// Scheduler describes the booking page a third-party booking came through.
type Scheduler struct {
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`
	VideoCallLink   string `json:"video_call_link,omitempty"`
}

// BookingRecord is a third-party booking. Date and time arrive as separate
// strings ("2006-01-02" and "15:04") exactly as the booking provider sends
// them; the adapter combines them with the scheduler duration.
type BookingRecord struct {
	ID            string `json:"id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email,omitempty"`
	CustomerPhone string `json:"customer_phone,omitempty"`

	AppointmentDate string `json:"appointment_date"`
	AppointmentTime string `json:"appointment_time,omitempty"`

	VideoCallLink string     `json:"video_call_link,omitempty"`
	Scheduler     *Scheduler `json:"scheduler,omitempty"`

	UserID string `json:"user_id,omitempty"`
}

// TaskRecord is a workshop/production task with a due date. Tasks without a
// due time are shown in the 09:00 slot.
type TaskRecord struct {
	ID    string `json:"id"`
	Title string `json:"title"`

	DueDate string `json:"due_date"`
	DueTime string `json:"due_time,omitempty"`

	Status   TaskStatus   `json:"status,omitempty"`
	Priority TaskPriority `json:"priority,omitempty"`

	UserID string `json:"user_id,omitempty"`
}

// CalendarEvent is the unified, derived representation of a displayable
// calendar item. It is recomputed from the source records on every request
// and never persisted; mutations happen on the source record.
//
// Kind selects which payload fields are meaningful: Booking is non-nil only
// for KindBooking, Task (with Status/Priority) only for KindTask, and the
// pass-through appointment fields are populated only for KindAppointment.
type CalendarEvent struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Start time.Time `json:"start_time"`
	End   time.Time `json:"end_time"`
	Kind  EventKind `json:"kind"`
	Color string    `json:"color,omitempty"`

	Location         string `json:"location,omitempty"`
	Description      string `json:"description,omitempty"`
	VideoMeetingLink string `json:"video_meeting_link,omitempty"`
	AppointmentType  string `json:"appointment_type,omitempty"`
	SchedulerName    string `json:"scheduler_name,omitempty"`
	GoogleEventID    string `json:"google_event_id,omitempty"`

	Booking *BookingRecord `json:"booking_data,omitempty"`

	Task     *TaskRecord  `json:"task_data,omitempty"`
	Status   TaskStatus   `json:"status,omitempty"`
	Priority TaskPriority `json:"priority,omitempty"`

	UserID string `json:"user_id,omitempty"`
}

// SameLocalDay reports whether a and b fall on the same calendar day in
// their own locations. No timezone conversion is performed; callers are
// expected to hand in timestamps already expressed in the display zone.
func SameLocalDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
