package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	appLog "studiocal/internal/log"
	"studiocal/internal/model"
	"studiocal/internal/store"
)

// CRUD endpoints for the three source record kinds. These are deliberately
// thin: the calendar engine never mutates anything, so every write lands
// here and the next /api/events request reflects it.

func (s *Server) handleListAppointments(w http.ResponseWriter, _ *http.Request) {
	list, err := s.st.ListAppointments()
	if err != nil {
		appLog.Error("list appointments failed", err)
		writeError(w, http.StatusInternalServerError, "failed to list appointments")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreateAppointment(w http.ResponseWriter, r *http.Request) {
	var a model.AppointmentRecord
	if !decodeBody(w, r, &a) {
		return
	}
	if !a.End.After(a.Start) {
		writeError(w, http.StatusBadRequest, "end_time must be after start_time")
		return
	}
	if err := s.st.PutAppointment(&a); err != nil {
		appLog.Error("create appointment failed", err)
		writeError(w, http.StatusInternalServerError, "failed to store appointment")
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (s *Server) handleGetAppointment(w http.ResponseWriter, r *http.Request) {
	a, err := s.st.GetAppointment(r.PathValue("id"))
	if respondStoreErr(w, err, "appointment") {
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleUpdateAppointment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := s.st.GetAppointment(id); respondStoreErr(w, err, "appointment") {
		return
	}
	var a model.AppointmentRecord
	if !decodeBody(w, r, &a) {
		return
	}
	a.ID = id
	if !a.End.After(a.Start) {
		writeError(w, http.StatusBadRequest, "end_time must be after start_time")
		return
	}
	if err := s.st.PutAppointment(&a); err != nil {
		appLog.Error("update appointment failed", err, "id", id)
		writeError(w, http.StatusInternalServerError, "failed to store appointment")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleDeleteAppointment(w http.ResponseWriter, r *http.Request) {
	if respondStoreErr(w, s.st.DeleteAppointment(r.PathValue("id")), "appointment") {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListBookings(w http.ResponseWriter, _ *http.Request) {
	list, err := s.st.ListBookings()
	if err != nil {
		appLog.Error("list bookings failed", err)
		writeError(w, http.StatusInternalServerError, "failed to list bookings")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	var b model.BookingRecord
	if !decodeBody(w, r, &b) {
		return
	}
	if b.AppointmentDate == "" {
		writeError(w, http.StatusBadRequest, "appointment_date is required")
		return
	}
	if err := s.st.PutBooking(&b); err != nil {
		appLog.Error("create booking failed", err)
		writeError(w, http.StatusInternalServerError, "failed to store booking")
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (s *Server) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	b, err := s.st.GetBooking(r.PathValue("id"))
	if respondStoreErr(w, err, "booking") {
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleUpdateBooking(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := s.st.GetBooking(id); respondStoreErr(w, err, "booking") {
		return
	}
	var b model.BookingRecord
	if !decodeBody(w, r, &b) {
		return
	}
	b.ID = id
	if err := s.st.PutBooking(&b); err != nil {
		appLog.Error("update booking failed", err, "id", id)
		writeError(w, http.StatusInternalServerError, "failed to store booking")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleDeleteBooking(w http.ResponseWriter, r *http.Request) {
	if respondStoreErr(w, s.st.DeleteBooking(r.PathValue("id")), "booking") {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListTasks(w http.ResponseWriter, _ *http.Request) {
	list, err := s.st.ListTasks()
	if err != nil {
		appLog.Error("list tasks failed", err)
		writeError(w, http.StatusInternalServerError, "failed to list tasks")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var t model.TaskRecord
	if !decodeBody(w, r, &t) {
		return
	}
	if t.DueDate == "" {
		writeError(w, http.StatusBadRequest, "due_date is required")
		return
	}
	if err := s.st.PutTask(&t); err != nil {
		appLog.Error("create task failed", err)
		writeError(w, http.StatusInternalServerError, "failed to store task")
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	t, err := s.st.GetTask(r.PathValue("id"))
	if respondStoreErr(w, err, "task") {
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := s.st.GetTask(id); respondStoreErr(w, err, "task") {
		return
	}
	var t model.TaskRecord
	if !decodeBody(w, r, &t) {
		return
	}
	t.ID = id
	if err := s.st.PutTask(&t); err != nil {
		appLog.Error("update task failed", err, "id", id)
		writeError(w, http.StatusInternalServerError, "failed to store task")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if respondStoreErr(w, s.st.DeleteTask(r.PathValue("id")), "task") {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeBody decodes a JSON request body into v, writing a 400 and
// returning false on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// respondStoreErr writes the appropriate status for a store error and
// reports whether the request is finished.
func respondStoreErr(w http.ResponseWriter, err error, noun string) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, noun+" not found")
		return true
	}
	appLog.Error("store access failed", err)
	writeError(w, http.StatusInternalServerError, "failed to access "+noun)
	return true
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		appLog.Error("failed to write JSON response", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	type errResp struct {
		Error string `json:"error"`
	}
	writeJSON(w, status, errResp{Error: msg})
}
