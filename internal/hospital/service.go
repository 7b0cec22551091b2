// Package hospital holds the business logic: the booking validator, the
// auth/admin rules and the seeding fixtures. It talks to storage only
// through the Store interface, so any backend variant (or the in-memory
// test store) plugs in unchanged.
package hospital

import (
	"context"
	"errors"
	"strings"
	"time"

	"hospital-backend/internal/auth"
	"hospital-backend/internal/models"
	"hospital-backend/internal/storage"
)

// SlotLayout is the exact booking datetime format: 24-hour, zero-padded.
const SlotLayout = "2006-01-02 15:04"

// Service wires the domain rules to a storage backend chosen at startup.
type Service struct {
	store storage.Store
}

func New(store storage.Store) *Service {
	return &Service{store: store}
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// ---- patients ----

func (s *Service) ListPatients(ctx context.Context) ([]models.Patient, error) {
	list, err := s.store.ListPatients(ctx)
	return list, wrapStore(err, "internal error")
}

func (s *Service) CreatePatient(ctx context.Context, name string, age int, contact, address string) (string, error) {
	if name == "" {
		return "", errf(KindValidation, "Name required")
	}
	id, err := s.store.CreatePatient(ctx, &models.Patient{
		Name:      name,
		Age:       age,
		Contact:   contact,
		Address:   address,
		CreatedAt: now(),
	})
	return id, wrapStore(err, "internal error")
}

func (s *Service) DeletePatient(ctx context.Context, id string) error {
	return wrapStore(s.store.DeletePatient(ctx, id), "invalid id")
}

// ---- doctors ----

func (s *Service) ListDoctors(ctx context.Context) ([]models.Doctor, error) {
	list, err := s.store.ListDoctors(ctx)
	return list, wrapStore(err, "internal error")
}

func (s *Service) CreateDoctor(ctx context.Context, name, specialty, contact string) (string, error) {
	if name == "" {
		return "", errf(KindValidation, "Name required")
	}
	id, err := s.store.CreateDoctor(ctx, &models.Doctor{
		Name:      name,
		Specialty: specialty,
		Contact:   contact,
		CreatedAt: now(),
	})
	return id, wrapStore(err, "internal error")
}

func (s *Service) DeleteDoctor(ctx context.Context, id string) error {
	return wrapStore(s.store.DeleteDoctor(ctx, id), "invalid id")
}

// ---- appointments ----

func (s *Service) ListAppointments(ctx context.Context) ([]models.AppointmentDetail, error) {
	list, err := s.store.ListAppointments(ctx)
	return list, wrapStore(err, "internal error")
}

// CreateAppointment runs the booking checks in a fixed order; the first
// failing check short-circuits before anything is written:
// datetime format, id coercion, patient exists, doctor exists, doctor slot
// free, patient slot free. The check-then-insert sequence is not serialized
// across callers — the unique slot indexes in the backends catch the race
// and surface it as a conflict.
func (s *Service) CreateAppointment(ctx context.Context, patientID, doctorID, datetime string) (string, error) {
	if _, err := time.Parse(SlotLayout, datetime); err != nil {
		return "", errf(KindValidation, "Invalid datetime format")
	}
	if s.store.CheckID(patientID) != nil || s.store.CheckID(doctorID) != nil {
		return "", errf(KindReference, "Invalid patient_id or doctor_id")
	}
	if _, err := s.store.GetPatient(ctx, patientID); err != nil {
		return "", wrapStore(err, "Patient not found")
	}
	if _, err := s.store.GetDoctor(ctx, doctorID); err != nil {
		return "", wrapStore(err, "Doctor not found")
	}
	if taken, err := s.store.HasDoctorConflict(ctx, doctorID, datetime); err != nil {
		return "", wrapStore(err, "internal error")
	} else if taken {
		return "", errf(KindConflict, "Doctor already booked at this time")
	}
	if taken, err := s.store.HasPatientConflict(ctx, patientID, datetime); err != nil {
		return "", wrapStore(err, "internal error")
	} else if taken {
		return "", errf(KindConflict, "Patient already has an appointment at this time")
	}

	id, err := s.store.CreateAppointment(ctx, &models.Appointment{
		PatientID: patientID,
		DoctorID:  doctorID,
		Datetime:  datetime,
		CreatedAt: now(),
	})
	// A concurrent booking that won the race surfaces here as a duplicate.
	return id, wrapStore(err, "Doctor already booked at this time")
}

func (s *Service) DeleteAppointment(ctx context.Context, id string) error {
	return wrapStore(s.store.DeleteAppointment(ctx, id), "invalid id")
}

// ---- users / auth ----

// Signup creates a user. Role "admin" is subject to the single-admin rule.
func (s *Service) Signup(ctx context.Context, name, email, password, role string) (*models.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, errf(KindValidation, "name, email, password required")
	}
	isAdmin := strings.ToLower(role) == "admin"

	switch _, err := s.store.FindUserByEmail(ctx, email); {
	case err == nil:
		return nil, errf(KindConflict, "email already registered")
	case !errors.Is(err, storage.ErrNotFound):
		return nil, wrapStore(err, "internal error")
	}
	if isAdmin {
		switch _, err := s.store.FindAdmin(ctx); {
		case err == nil:
			return nil, errf(KindConflict, "admin already exists")
		case !errors.Is(err, storage.ErrNotFound):
			return nil, wrapStore(err, "internal error")
		}
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, wrapStore(err, "internal error")
	}
	u := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now(),
		IsAdmin:      isAdmin,
	}
	id, err := s.store.CreateUser(ctx, u)
	if err != nil {
		return nil, wrapStore(err, "email already registered")
	}
	u.ID = id
	return u, nil
}

// Login verifies credentials. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, errf(KindValidation, "email and password required")
	}
	u, err := s.store.FindUserByEmail(ctx, email)
	if err != nil || !auth.CheckPassword(password, u.PasswordHash) {
		return nil, errf(KindAuth, "invalid credentials")
	}
	return u, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]models.User, error) {
	list, err := s.store.ListUsers(ctx)
	return list, wrapStore(err, "internal error")
}

// PromoteToAdmin grants the admin flag unless a different user already
// holds it. Promoting the current admin again is a no-op success.
func (s *Service) PromoteToAdmin(ctx context.Context, id string) error {
	if err := s.store.CheckID(id); err != nil {
		return errf(KindReference, "invalid id")
	}
	switch admin, err := s.store.FindAdmin(ctx); {
	case err == nil && admin.ID != id:
		return errf(KindConflict, "admin already exists")
	case err != nil && !errors.Is(err, storage.ErrNotFound):
		return wrapStore(err, "internal error")
	}
	return wrapStore(s.store.SetAdmin(ctx, id, true), "invalid id")
}

// DemoteAdmin unconditionally clears the admin flag.
func (s *Service) DemoteAdmin(ctx context.Context, id string) error {
	if err := s.store.CheckID(id); err != nil {
		return errf(KindReference, "invalid id")
	}
	return wrapStore(s.store.SetAdmin(ctx, id, false), "invalid id")
}

// ---- maintenance ----

// Clear wipes appointments, patients and doctors. Users are kept.
func (s *Service) Clear(ctx context.Context) error {
	return wrapStore(s.store.ClearAll(ctx), "internal error")
}
