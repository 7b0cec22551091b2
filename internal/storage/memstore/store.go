// Package memstore is an in-memory storage.Store used by tests. It mirrors
// the behavior of the real backends, including the unique email and booking
// slot constraints.
package memstore

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"hospital-backend/internal/models"
	"hospital-backend/internal/storage"
)

type Store struct {
	mu           sync.RWMutex
	nextID       int64
	patients     map[string]models.Patient
	doctors      map[string]models.Doctor
	appointments map[string]models.Appointment
	users        map[string]models.User
}

func New() *Store {
	return &Store{
		patients:     make(map[string]models.Patient),
		doctors:      make(map[string]models.Doctor),
		appointments: make(map[string]models.Appointment),
		users:        make(map[string]models.User),
	}
}

// newID must be called with the write lock held.
func (s *Store) newID() string {
	s.nextID++
	return strconv.FormatInt(s.nextID, 10)
}

func (s *Store) CheckID(id string) error {
	if _, err := strconv.ParseInt(id, 10, 64); err != nil {
		return storage.ErrInvalidID
	}
	return nil
}

func sortByID[T any](ids []string, get func(string) T) []T {
	sort.Slice(ids, func(i, j int) bool {
		a, _ := strconv.ParseInt(ids[i], 10, 64)
		b, _ := strconv.ParseInt(ids[j], 10, 64)
		return a < b
	})
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, get(id))
	}
	return out
}

// ---- patients ----

func (s *Store) ListPatients(ctx context.Context) ([]models.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.patients))
	for id := range s.patients {
		ids = append(ids, id)
	}
	return sortByID(ids, func(id string) models.Patient { return s.patients[id] }), nil
}

func (s *Store) GetPatient(ctx context.Context, id string) (*models.Patient, error) {
	if err := s.CheckID(id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.patients[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &p, nil
}

func (s *Store) CreatePatient(ctx context.Context, p *models.Patient) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.newID()
	cp := *p
	cp.ID = id
	s.patients[id] = cp
	return id, nil
}

func (s *Store) DeletePatient(ctx context.Context, id string) error {
	if err := s.CheckID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for aid, a := range s.appointments {
		if a.PatientID == id {
			delete(s.appointments, aid)
		}
	}
	delete(s.patients, id)
	return nil
}

// ---- doctors ----

func (s *Store) ListDoctors(ctx context.Context) ([]models.Doctor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.doctors))
	for id := range s.doctors {
		ids = append(ids, id)
	}
	return sortByID(ids, func(id string) models.Doctor { return s.doctors[id] }), nil
}

func (s *Store) GetDoctor(ctx context.Context, id string) (*models.Doctor, error) {
	if err := s.CheckID(id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.doctors[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &d, nil
}

func (s *Store) CreateDoctor(ctx context.Context, d *models.Doctor) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.newID()
	cp := *d
	cp.ID = id
	s.doctors[id] = cp
	return id, nil
}

func (s *Store) DeleteDoctor(ctx context.Context, id string) error {
	if err := s.CheckID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for aid, a := range s.appointments {
		if a.DoctorID == id {
			delete(s.appointments, aid)
		}
	}
	delete(s.doctors, id)
	return nil
}

// ---- appointments ----

func (s *Store) ListAppointments(ctx context.Context) ([]models.AppointmentDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.AppointmentDetail, 0, len(s.appointments))
	for _, a := range s.appointments {
		out = append(out, models.AppointmentDetail{
			ID:          a.ID,
			PatientID:   a.PatientID,
			PatientName: s.patients[a.PatientID].Name,
			DoctorID:    a.DoctorID,
			DoctorName:  s.doctors[a.DoctorID].Name,
			Datetime:    a.Datetime,
			CreatedAt:   a.CreatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Datetime < out[j].Datetime })
	return out, nil
}

func (s *Store) CreateAppointment(ctx context.Context, a *models.Appointment) (string, error) {
	if err := s.CheckID(a.PatientID); err != nil {
		return "", err
	}
	if err := s.CheckID(a.DoctorID); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	// Unique slot constraints, as the real backends enforce via indexes.
	for _, existing := range s.appointments {
		if existing.Datetime == a.Datetime &&
			(existing.DoctorID == a.DoctorID || existing.PatientID == a.PatientID) {
			return "", storage.ErrDuplicate
		}
	}
	id := s.newID()
	cp := *a
	cp.ID = id
	s.appointments[id] = cp
	return id, nil
}

func (s *Store) DeleteAppointment(ctx context.Context, id string) error {
	if err := s.CheckID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.appointments, id)
	return nil
}

func (s *Store) HasDoctorConflict(ctx context.Context, doctorID, datetime string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.appointments {
		if a.DoctorID == doctorID && a.Datetime == datetime {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) HasPatientConflict(ctx context.Context, patientID, datetime string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.appointments {
		if a.PatientID == patientID && a.Datetime == datetime {
			return true, nil
		}
	}
	return false, nil
}

// ---- users ----

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	return sortByID(ids, func(id string) models.User { return s.users[id] }), nil
}

func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	if err := s.CheckID(id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &u, nil
}

func (s *Store) CreateUser(ctx context.Context, u *models.User) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return "", storage.ErrDuplicate
		}
	}
	id := s.newID()
	cp := *u
	cp.ID = id
	s.users[id] = cp
	return id, nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *Store) FindAdmin(ctx context.Context) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.IsAdmin {
			cp := u
			return &cp, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *Store) SetAdmin(ctx context.Context, id string, admin bool) error {
	if err := s.CheckID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil
	}
	u.IsAdmin = admin
	s.users[id] = u
	return nil
}

// ---- maintenance ----

func (s *Store) Counts(ctx context.Context) (storage.Counts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return storage.Counts{
		Patients:     int64(len(s.patients)),
		Doctors:      int64(len(s.doctors)),
		Appointments: int64(len(s.appointments)),
	}, nil
}

func (s *Store) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appointments = make(map[string]models.Appointment)
	s.patients = make(map[string]models.Patient)
	s.doctors = make(map[string]models.Doctor)
	return nil
}

func (s *Store) Ping(ctx context.Context) error { return nil }

func (s *Store) Close(ctx context.Context) error { return nil }
