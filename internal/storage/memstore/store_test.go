package memstore

import (
	"context"
	"errors"
	"testing"

	"hospital-backend/internal/models"
	"hospital-backend/internal/storage"
)

func TestCheckID(t *testing.T) {
	s := New()
	if err := s.CheckID("42"); err != nil {
		t.Errorf("numeric id rejected: %v", err)
	}
	for _, bad := range []string{"", "abc", "1.5", "0x1f"} {
		if err := s.CheckID(bad); !errors.Is(err, storage.ErrInvalidID) {
			t.Errorf("CheckID(%q) = %v, want ErrInvalidID", bad, err)
		}
	}
}

func TestPatientCRUD(t *testing.T) {
	s := New()
	ctx := context.Background()

	id, err := s.CreatePatient(ctx, &models.Patient{Name: "Ali Khan", Age: 30})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	p, err := s.GetPatient(ctx, id)
	if err != nil || p.Name != "Ali Khan" {
		t.Fatalf("get: %v %v", p, err)
	}
	if _, err := s.GetPatient(ctx, "999"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := s.DeletePatient(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetPatient(ctx, id); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("patient should be gone, got %v", err)
	}
}

func TestListOrdering(t *testing.T) {
	s := New()
	ctx := context.Background()
	// ids 1..11; lexicographic order would put "10" before "2"
	for i := 0; i < 11; i++ {
		if _, err := s.CreatePatient(ctx, &models.Patient{Name: "p"}); err != nil {
			t.Fatal(err)
		}
	}
	list, err := s.ListPatients(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 11 {
		t.Fatalf("expected 11 patients, got %d", len(list))
	}
	if list[1].ID != "2" || list[10].ID != "11" {
		t.Errorf("not in numeric id order: %s, %s", list[1].ID, list[10].ID)
	}
}

func TestSlotConstraints(t *testing.T) {
	s := New()
	ctx := context.Background()
	pid, _ := s.CreatePatient(ctx, &models.Patient{Name: "Ali Khan"})
	pid2, _ := s.CreatePatient(ctx, &models.Patient{Name: "Sara Ahmed"})
	did, _ := s.CreateDoctor(ctx, &models.Doctor{Name: "Dr. Hamza"})
	did2, _ := s.CreateDoctor(ctx, &models.Doctor{Name: "Dr. Fatima"})

	const slot = "2030-03-01 10:00"
	if _, err := s.CreateAppointment(ctx, &models.Appointment{PatientID: pid, DoctorID: did, Datetime: slot}); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	// same doctor, different patient
	if _, err := s.CreateAppointment(ctx, &models.Appointment{PatientID: pid2, DoctorID: did, Datetime: slot}); !errors.Is(err, storage.ErrDuplicate) {
		t.Errorf("doctor double-booking: got %v, want ErrDuplicate", err)
	}
	// same patient, different doctor
	if _, err := s.CreateAppointment(ctx, &models.Appointment{PatientID: pid, DoctorID: did2, Datetime: slot}); !errors.Is(err, storage.ErrDuplicate) {
		t.Errorf("patient double-booking: got %v, want ErrDuplicate", err)
	}
	// different slot is fine
	if _, err := s.CreateAppointment(ctx, &models.Appointment{PatientID: pid, DoctorID: did, Datetime: "2030-03-01 11:00"}); err != nil {
		t.Errorf("non-conflicting booking rejected: %v", err)
	}

	if taken, _ := s.HasDoctorConflict(ctx, did, slot); !taken {
		t.Error("HasDoctorConflict missed the booked slot")
	}
	if taken, _ := s.HasPatientConflict(ctx, pid2, slot); taken {
		t.Error("HasPatientConflict reported a phantom booking")
	}
}

func TestCascades(t *testing.T) {
	s := New()
	ctx := context.Background()
	pid, _ := s.CreatePatient(ctx, &models.Patient{Name: "Ali Khan"})
	did, _ := s.CreateDoctor(ctx, &models.Doctor{Name: "Dr. Hamza"})
	s.CreateAppointment(ctx, &models.Appointment{PatientID: pid, DoctorID: did, Datetime: "2030-03-01 10:00"})

	if err := s.DeleteDoctor(ctx, did); err != nil {
		t.Fatal(err)
	}
	appts, _ := s.ListAppointments(ctx)
	if len(appts) != 0 {
		t.Errorf("deleting the doctor should remove its appointments, got %d", len(appts))
	}
}

func TestUserEmailUnique(t *testing.T) {
	s := New()
	ctx := context.Background()
	if _, err := s.CreateUser(ctx, &models.User{Name: "a", Email: "a@x.com"}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateUser(ctx, &models.User{Name: "b", Email: "a@x.com"}); !errors.Is(err, storage.ErrDuplicate) {
		t.Errorf("duplicate email: got %v, want ErrDuplicate", err)
	}
	u, err := s.FindUserByEmail(ctx, "a@x.com")
	if err != nil || u.Name != "a" {
		t.Errorf("FindUserByEmail: %v %v", u, err)
	}
	if _, err := s.FindUserByEmail(ctx, "missing@x.com"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("missing email: got %v", err)
	}
}

func TestAdminFlag(t *testing.T) {
	s := New()
	ctx := context.Background()
	id, _ := s.CreateUser(ctx, &models.User{Name: "a", Email: "a@x.com"})

	if _, err := s.FindAdmin(ctx); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected no admin, got %v", err)
	}
	if err := s.SetAdmin(ctx, id, true); err != nil {
		t.Fatal(err)
	}
	admin, err := s.FindAdmin(ctx)
	if err != nil || admin.ID != id {
		t.Fatalf("FindAdmin: %v %v", admin, err)
	}
	// missing id is a silent no-op, matching the sql UPDATE semantics
	if err := s.SetAdmin(ctx, "999", true); err != nil {
		t.Errorf("SetAdmin on missing id: %v", err)
	}
}

func TestClearKeepsUsers(t *testing.T) {
	s := New()
	ctx := context.Background()
	s.CreatePatient(ctx, &models.Patient{Name: "Ali Khan"})
	s.CreateDoctor(ctx, &models.Doctor{Name: "Dr. Hamza"})
	s.CreateUser(ctx, &models.User{Name: "a", Email: "a@x.com"})

	if err := s.ClearAll(ctx); err != nil {
		t.Fatal(err)
	}
	counts, _ := s.Counts(ctx)
	if counts.Patients != 0 || counts.Doctors != 0 || counts.Appointments != 0 {
		t.Errorf("clear left data behind: %+v", counts)
	}
	users, _ := s.ListUsers(ctx)
	if len(users) != 1 {
		t.Errorf("clear must keep users, got %d", len(users))
	}
}
