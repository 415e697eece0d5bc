package calendar

import "studiocal/internal/model"

// Style is the visual treatment of one event: a background fill, an accent
// border color, and the minimum rendered height shared by all kinds.
type Style struct {
	Background  string  `json:"background"`
	Border      string  `json:"border"`
	MinHeightPx float64 `json:"min_height_px"`
}

const (
	defaultAppointmentColor = "#6366F1"

	// Appending this alpha suffix renders the appointment's own color at
	// roughly 10% opacity for the background fill.
	backgroundAlphaSuffix = "1A"

	bookingBackground = "#DBEAFE"
	bookingBorder     = "#3B82F6"

	completedBackground = "#DCFCE7"
	completedBorder     = "#22C55E"
)

var priorityPalette = map[model.TaskPriority]Style{
	model.PriorityUrgent: {Background: "#FEE2E2", Border: "#EF4444"},
	model.PriorityHigh:   {Background: "#FFEDD5", Border: "#F97316"},
	model.PriorityMedium: {Background: "#FEF9C3", Border: "#EAB308"},
	model.PriorityLow:    {Background: "#E0F2FE", Border: "#0EA5E9"},
}

// ResolveStyle maps an event to its deterministic visual treatment.
//
//   - Completed tasks are green regardless of priority.
//   - Pending tasks pick from the four-level priority palette, defaulting
//     to medium for unknown or missing priorities.
//   - Bookings are always blue; they are not user-colorable.
//   - Appointments use their own color (or the default indigo) as the
//     border, with the background derived by the fixed alpha suffix.
func ResolveStyle(ev model.CalendarEvent) Style {
	var s Style

	switch ev.Kind {
	case model.KindTask:
		if ev.Status == model.StatusCompleted {
			s = Style{Background: completedBackground, Border: completedBorder}
			break
		}
		palette, ok := priorityPalette[ev.Priority]
		if !ok {
			palette = priorityPalette[model.PriorityMedium]
		}
		s = palette

	case model.KindBooking:
		s = Style{Background: bookingBackground, Border: bookingBorder}

	default:
		color := ev.Color
		if color == "" {
			color = defaultAppointmentColor
		}
		s = Style{Background: color + backgroundAlphaSuffix, Border: color}
	}

	s.MinHeightPx = MinEventHeightPx
	return s
}
