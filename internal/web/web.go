package web

import (
	"crypto/subtle"
	"net/http"
	"sync"
	"time"

	"studiocal/internal/calendar"
	"studiocal/internal/config"
	appLog "studiocal/internal/log"
	"studiocal/internal/model"
	"studiocal/internal/store"
)

// Server exposes the scheduling API: the aggregated day view with layout
// and styling, slot occupancy, and CRUD for the three record kinds.
type Server struct {
	cfg *config.Config
	st  *store.Store
	loc *time.Location
	mux *http.ServeMux

	// syncedMu guards the latest snapshot of appointments imported from
	// external calendar feeds. The cron refresher replaces it wholesale;
	// requests only ever read it.
	syncedMu sync.RWMutex
	synced   []model.AppointmentRecord
}

// NewServer constructs a Server over the given config and record store.
func NewServer(cfg *config.Config, st *store.Store) *Server {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		appLog.Error("failed to load timezone, falling back to local", err, "name", cfg.Timezone)
		loc = time.Local
	}

	s := &Server{
		cfg: cfg,
		st:  st,
		loc: loc,
		mux: http.NewServeMux(),
	}
	s.registerRoutes()
	return s
}

// SetSyncedAppointments replaces the snapshot of feed-imported appointments.
func (s *Server) SetSyncedAppointments(records []model.AppointmentRecord) {
	s.syncedMu.Lock()
	s.synced = records
	s.syncedMu.Unlock()
}

func (s *Server) syncedSnapshot() []model.AppointmentRecord {
	s.syncedMu.RLock()
	defer s.syncedMu.RUnlock()
	return s.synced
}

// Handler returns the http.Handler, wrapped with basic auth when configured.
func (s *Server) Handler() http.Handler {
	h := http.Handler(s.mux)
	if s.basicAuthEnabled() {
		appLog.Info("HTTP basic auth enabled", "listen", "http://"+s.cfg.Listen)
		return s.basicAuthMiddleware(h)
	}
	return h
}

func (s *Server) basicAuthEnabled() bool {
	if s.cfg == nil || s.cfg.BasicAuth == nil {
		return false
	}
	// Empty username or password counts as disabled.
	return s.cfg.BasicAuth.Username != "" && s.cfg.BasicAuth.Password != ""
}

// basicAuthMiddleware protects all endpoints except /health.
func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	username := s.cfg.BasicAuth.Username
	password := s.cfg.BasicAuth.Password

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		u, p, ok := r.BasicAuth()
		if !ok || !secureCompare(u, username) || !secureCompare(p, password) {
			w.Header().Set("WWW-Authenticate", `Basic realm="studiocal", charset="UTF-8"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func secureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /api/events", s.handleEvents)
	s.mux.HandleFunc("GET /api/slots", s.handleSlots)

	s.mux.HandleFunc("GET /api/appointments", s.handleListAppointments)
	s.mux.HandleFunc("POST /api/appointments", s.handleCreateAppointment)
	s.mux.HandleFunc("GET /api/appointments/{id}", s.handleGetAppointment)
	s.mux.HandleFunc("PUT /api/appointments/{id}", s.handleUpdateAppointment)
	s.mux.HandleFunc("DELETE /api/appointments/{id}", s.handleDeleteAppointment)

	s.mux.HandleFunc("GET /api/bookings", s.handleListBookings)
	s.mux.HandleFunc("POST /api/bookings", s.handleCreateBooking)
	s.mux.HandleFunc("GET /api/bookings/{id}", s.handleGetBooking)
	s.mux.HandleFunc("PUT /api/bookings/{id}", s.handleUpdateBooking)
	s.mux.HandleFunc("DELETE /api/bookings/{id}", s.handleDeleteBooking)

	s.mux.HandleFunc("GET /api/tasks", s.handleListTasks)
	s.mux.HandleFunc("POST /api/tasks", s.handleCreateTask)
	s.mux.HandleFunc("GET /api/tasks/{id}", s.handleGetTask)
	s.mux.HandleFunc("PUT /api/tasks/{id}", s.handleUpdateTask)
	s.mux.HandleFunc("DELETE /api/tasks/{id}", s.handleDeleteTask)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// eventDTO is one aggregated event plus its computed layout and styling.
type eventDTO struct {
	model.CalendarEvent
	Overlap  calendar.Overlap  `json:"overlap"`
	Position calendar.Position `json:"position"`
	Style    calendar.Style    `json:"style"`
}

// eventsResponse is the JSON shape for GET /api/events.
type eventsResponse struct {
	Date            string     `json:"date"`
	DisplayTimeZone string     `json:"display_timezone"`
	WeekStart       string     `json:"week_start"`
	Events          []eventDTO `json:"events"`
}

// handleEvents returns the aggregated calendar events for one day along
// with the column layout, pixel geometry and style for each.
//
// GET /api/events?date=2026-03-02&user_id=abc
//
// date defaults to today in the display timezone. The grid origin for pixel
// positions is the configured working-hours start.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	date, err := s.resolveDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}
	userID := r.URL.Query().Get("user_id")

	appointments, bookings, tasks, err := s.loadRecords()
	if err != nil {
		appLog.Error("api events: loading records failed", err)
		writeError(w, http.StatusInternalServerError, "failed to load records")
		return
	}

	events := calendar.EventsForDate(appointments, bookings, tasks, date, userID)
	layout := calendar.PackColumns(events)
	offsetMinutes := s.cfg.WorkingHoursStart * 60

	dtos := make([]eventDTO, 0, len(events))
	for _, ev := range events {
		dtos = append(dtos, eventDTO{
			CalendarEvent: ev,
			Overlap:       layout[ev.ID],
			Position:      calendar.EventPosition(ev.Start, ev.End, offsetMinutes),
			Style:         calendar.ResolveStyle(ev),
		})
	}

	writeJSON(w, http.StatusOK, eventsResponse{
		Date:            date.Format("2006-01-02"),
		DisplayTimeZone: s.loc.String(),
		WeekStart:       s.cfg.WeekStart,
		Events:          dtos,
	})
}

// slotDTO is one grid slot with its occupancy flag.
type slotDTO struct {
	Time     string `json:"time"`
	Occupied bool   `json:"occupied"`
}

type slotsResponse struct {
	Date  string    `json:"date"`
	Slots []slotDTO `json:"slots"`
}

// handleSlots returns the working-hours slot set for one day with an
// occupancy flag per slot, for gating the click-to-create affordance.
//
// GET /api/slots?date=2026-03-02&from=8&to=18
func (s *Server) handleSlots(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	date, err := s.resolveDate(q.Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	from := parseIntDefault(q.Get("from"), s.cfg.WorkingHoursStart)
	to := parseIntDefault(q.Get("to"), s.cfg.WorkingHoursEnd)

	appointments, bookings, tasks, err := s.loadRecords()
	if err != nil {
		appLog.Error("api slots: loading records failed", err)
		writeError(w, http.StatusInternalServerError, "failed to load records")
		return
	}
	events := calendar.EventsForDate(appointments, bookings, tasks, date, "")

	labels := calendar.TimeSlots(from, to)
	slots := make([]slotDTO, 0, len(labels))
	for _, label := range labels {
		slots = append(slots, slotDTO{
			Time:     label,
			Occupied: calendar.SlotOccupied(events, label, date),
		})
	}

	writeJSON(w, http.StatusOK, slotsResponse{
		Date:  date.Format("2006-01-02"),
		Slots: slots,
	})
}

// loadRecords gathers the three source collections: stored appointments
// merged with the feed-synced snapshot, plus stored bookings and tasks.
func (s *Server) loadRecords() ([]model.AppointmentRecord, []model.BookingRecord, []model.TaskRecord, error) {
	appointments, err := s.st.ListAppointments()
	if err != nil {
		return nil, nil, nil, err
	}
	appointments = append(appointments, s.syncedSnapshot()...)

	bookings, err := s.st.ListBookings()
	if err != nil {
		return nil, nil, nil, err
	}
	tasks, err := s.st.ListTasks()
	if err != nil {
		return nil, nil, nil, err
	}
	return appointments, bookings, tasks, nil
}

func (s *Server) resolveDate(raw string) (time.Time, error) {
	if raw == "" {
		now := time.Now().In(s.loc)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc), nil
	}
	return time.ParseInLocation("2006-01-02", raw, s.loc)
}
