package store

import (
	"encoding/json"
	"errors"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/peterbourgon/diskv/v3"

	"studiocal/internal/model"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("store: record not found")

const (
	kindAppointments = "appointments"
	kindBookings     = "bookings"
	kindTasks        = "tasks"
)

// Store is a file-backed record store for the three source record kinds.
// Keys are "<kind>:<id>"; each kind maps to its own subdirectory with one
// JSON file per record.
type Store struct {
	d *diskv.Diskv
}

// Open creates a Store rooted at baseDir.
func Open(baseDir string) *Store {
	return &Store{d: diskv.New(diskv.Options{
		BasePath:          baseDir,
		AdvancedTransform: keyToPath,
		InverseTransform:  pathToKey,
		CacheSizeMax:      1024 * 1024, // 1MB
	})}
}

func keyToPath(key string) *diskv.PathKey {
	parts := strings.SplitN(key, ":", 2)
	if len(parts) != 2 {
		return &diskv.PathKey{FileName: key}
	}
	return &diskv.PathKey{Path: []string{parts[0]}, FileName: parts[1]}
}

func pathToKey(pk *diskv.PathKey) string {
	if len(pk.Path) == 0 {
		return pk.FileName
	}
	return strings.Join(pk.Path, ":") + ":" + pk.FileName
}

func (s *Store) put(kind, id string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.d.Write(kind+":"+id, data)
}

func (s *Store) get(kind, id string, out any) error {
	data, err := s.d.Read(kind + ":" + id)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotFound
		}
		return err
	}
	return json.Unmarshal(data, out)
}

func (s *Store) delete(kind, id string) error {
	key := kind + ":" + id
	if !s.d.Has(key) {
		return ErrNotFound
	}
	return s.d.Erase(key)
}

// PutAppointment stores an appointment, assigning an ID when it has none.
func (s *Store) PutAppointment(a *model.AppointmentRecord) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return s.put(kindAppointments, a.ID, a)
}

func (s *Store) GetAppointment(id string) (model.AppointmentRecord, error) {
	var a model.AppointmentRecord
	err := s.get(kindAppointments, id, &a)
	return a, err
}

func (s *Store) DeleteAppointment(id string) error {
	return s.delete(kindAppointments, id)
}

// ListAppointments returns all appointments ordered by start time.
func (s *Store) ListAppointments() ([]model.AppointmentRecord, error) {
	out := make([]model.AppointmentRecord, 0)
	for key := range s.d.KeysPrefix(kindAppointments+":", nil) {
		var a model.AppointmentRecord
		if err := s.readKey(key, &a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Start.Equal(out[j].Start) {
			return out[i].Start.Before(out[j].Start)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// PutBooking stores a booking, assigning an ID when it has none.
func (s *Store) PutBooking(b *model.BookingRecord) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return s.put(kindBookings, b.ID, b)
}

func (s *Store) GetBooking(id string) (model.BookingRecord, error) {
	var b model.BookingRecord
	err := s.get(kindBookings, id, &b)
	return b, err
}

func (s *Store) DeleteBooking(id string) error {
	return s.delete(kindBookings, id)
}

// ListBookings returns all bookings ordered by appointment date and time.
func (s *Store) ListBookings() ([]model.BookingRecord, error) {
	out := make([]model.BookingRecord, 0)
	for key := range s.d.KeysPrefix(kindBookings+":", nil) {
		var b model.BookingRecord
		if err := s.readKey(key, &b); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	sort.SliceStable(out, func(i, j int) bool {
		li := out[i].AppointmentDate + " " + out[i].AppointmentTime
		lj := out[j].AppointmentDate + " " + out[j].AppointmentTime
		if li != lj {
			return li < lj
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// PutTask stores a task, assigning an ID when it has none.
func (s *Store) PutTask(t *model.TaskRecord) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return s.put(kindTasks, t.ID, t)
}

func (s *Store) GetTask(id string) (model.TaskRecord, error) {
	var t model.TaskRecord
	err := s.get(kindTasks, id, &t)
	return t, err
}

func (s *Store) DeleteTask(id string) error {
	return s.delete(kindTasks, id)
}

// ListTasks returns all tasks ordered by due date and time.
func (s *Store) ListTasks() ([]model.TaskRecord, error) {
	out := make([]model.TaskRecord, 0)
	for key := range s.d.KeysPrefix(kindTasks+":", nil) {
		var t model.TaskRecord
		if err := s.readKey(key, &t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		li := out[i].DueDate + " " + out[i].DueTime
		lj := out[j].DueDate + " " + out[j].DueTime
		if li != lj {
			return li < lj
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) readKey(key string, out any) error {
	data, err := s.d.Read(key)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
