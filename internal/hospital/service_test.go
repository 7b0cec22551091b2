package hospital_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"hospital-backend/internal/hospital"
	"hospital-backend/internal/storage/memstore"
)

func setup(t *testing.T) (*hospital.Service, context.Context) {
	t.Helper()
	return hospital.New(memstore.New()), context.Background()
}

func seedPair(t *testing.T, svc *hospital.Service, ctx context.Context) (patientID, doctorID string) {
	t.Helper()
	patientID, err := svc.CreatePatient(ctx, "Test Patient", 40, "0300-0000000", "Lahore")
	if err != nil {
		t.Fatalf("create patient: %v", err)
	}
	doctorID, err = svc.CreateDoctor(ctx, "Dr. Test", "Cardiology", "042-0000000")
	if err != nil {
		t.Fatalf("create doctor: %v", err)
	}
	return patientID, doctorID
}

func wantKind(t *testing.T, err error, kind hospital.Kind) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error")
	}
	var e *hospital.Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *hospital.Error, got %T: %v", err, err)
	}
	if e.Kind != kind {
		t.Fatalf("expected kind %d, got %d (%v)", kind, e.Kind, err)
	}
}

// ----- booking validator -----

func TestCreateAppointment(t *testing.T) {
	svc, ctx := setup(t)
	pid, did := seedPair(t, svc, ctx)

	id, err := svc.CreateAppointment(ctx, pid, did, "2030-01-15 10:00")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == "" {
		t.Fatal("empty id")
	}

	list, err := svc.ListAppointments(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 appointment, got %d", len(list))
	}
	a := list[0]
	if a.PatientName != "Test Patient" || a.DoctorName != "Dr. Test" {
		t.Errorf("joined names wrong: %q / %q", a.PatientName, a.DoctorName)
	}
	if a.Datetime != "2030-01-15 10:00" {
		t.Errorf("datetime: got %q", a.Datetime)
	}
	if a.CreatedAt == "" {
		t.Error("missing created_at")
	}
}

func TestDoctorConflict(t *testing.T) {
	svc, ctx := setup(t)
	pid, did := seedPair(t, svc, ctx)
	pid2, err := svc.CreatePatient(ctx, "Second Patient", 25, "", "")
	if err != nil {
		t.Fatalf("create patient: %v", err)
	}

	if _, err := svc.CreateAppointment(ctx, pid, did, "2030-01-15 10:00"); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	// same doctor, same slot, different patient
	_, err = svc.CreateAppointment(ctx, pid2, did, "2030-01-15 10:00")
	wantKind(t, err, hospital.KindConflict)
	if err.Error() != "Doctor already booked at this time" {
		t.Errorf("message: got %q", err.Error())
	}

	// a different slot for the same doctor is fine
	if _, err := svc.CreateAppointment(ctx, pid2, did, "2030-01-15 11:00"); err != nil {
		t.Errorf("different slot should succeed: %v", err)
	}
}

func TestPatientConflict(t *testing.T) {
	svc, ctx := setup(t)
	pid, did := seedPair(t, svc, ctx)
	did2, err := svc.CreateDoctor(ctx, "Dr. Second", "Neurology", "")
	if err != nil {
		t.Fatalf("create doctor: %v", err)
	}

	if _, err := svc.CreateAppointment(ctx, pid, did, "2030-01-15 10:00"); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	// same patient, same slot, different doctor
	_, err = svc.CreateAppointment(ctx, pid, did2, "2030-01-15 10:00")
	wantKind(t, err, hospital.KindConflict)
	if err.Error() != "Patient already has an appointment at this time" {
		t.Errorf("message: got %q", err.Error())
	}
}

func TestCreateAppointmentMissingReferences(t *testing.T) {
	svc, ctx := setup(t)
	pid, _ := seedPair(t, svc, ctx)

	// valid patient, unknown doctor
	_, err := svc.CreateAppointment(ctx, pid, "9999", "2030-01-15 10:00")
	wantKind(t, err, hospital.KindNotFound)
	if err.Error() != "Doctor not found" {
		t.Errorf("message: got %q", err.Error())
	}

	// unknown patient is reported first
	_, err = svc.CreateAppointment(ctx, "9999", "9999", "2030-01-15 10:00")
	wantKind(t, err, hospital.KindNotFound)
	if err.Error() != "Patient not found" {
		t.Errorf("message: got %q", err.Error())
	}
}

func TestCreateAppointmentInvalidIDs(t *testing.T) {
	svc, ctx := setup(t)
	seedPair(t, svc, ctx)

	_, err := svc.CreateAppointment(ctx, "not-a-number", "1", "2030-01-15 10:00")
	wantKind(t, err, hospital.KindReference)

	_, err = svc.CreateAppointment(ctx, "1", "also bad", "2030-01-15 10:00")
	wantKind(t, err, hospital.KindReference)
}

func TestDatetimeFormatRejectedFirst(t *testing.T) {
	svc, ctx := setup(t)

	// no patients or doctors exist; a format error must win anyway
	tests := []struct {
		name string
		dt   string
	}{
		{"slashes", "2024/01/01 10:00"},
		{"with seconds", "2024-01-01 10:00:00"},
		{"missing time", "2024-01-01"},
		{"unpadded", "2024-1-1 9:00"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateAppointment(ctx, "abc", "def", tt.dt)
			wantKind(t, err, hospital.KindValidation)
			if err.Error() != "Invalid datetime format" {
				t.Errorf("message: got %q", err.Error())
			}
		})
	}

	// control: the exact format passes the parse and fails later
	_, err := svc.CreateAppointment(ctx, "abc", "def", "2024-01-01 10:00")
	wantKind(t, err, hospital.KindReference)
}

func TestCreatePatientValidation(t *testing.T) {
	svc, ctx := setup(t)
	_, err := svc.CreatePatient(ctx, "", 10, "", "")
	wantKind(t, err, hospital.KindValidation)
	_, err = svc.CreateDoctor(ctx, "", "", "")
	wantKind(t, err, hospital.KindValidation)
}

// ----- cascade -----

func TestDeletePatientCascades(t *testing.T) {
	svc, ctx := setup(t)
	pid, did := seedPair(t, svc, ctx)
	if _, err := svc.CreateAppointment(ctx, pid, did, "2030-01-15 10:00"); err != nil {
		t.Fatalf("booking: %v", err)
	}
	if _, err := svc.CreateAppointment(ctx, pid, did, "2030-01-15 11:00"); err != nil {
		t.Fatalf("booking: %v", err)
	}

	if err := svc.DeletePatient(ctx, pid); err != nil {
		t.Fatalf("delete patient: %v", err)
	}

	list, err := svc.ListAppointments(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected no appointments after cascade, got %d", len(list))
	}
	// the slot is free again
	pid2, err := svc.CreatePatient(ctx, "Replacement", 30, "", "")
	if err != nil {
		t.Fatalf("create patient: %v", err)
	}
	if _, err := svc.CreateAppointment(ctx, pid2, did, "2030-01-15 10:00"); err != nil {
		t.Errorf("slot should be free after cascade: %v", err)
	}
}

func TestDeleteDoctorCascades(t *testing.T) {
	svc, ctx := setup(t)
	pid, did := seedPair(t, svc, ctx)
	if _, err := svc.CreateAppointment(ctx, pid, did, "2030-01-15 10:00"); err != nil {
		t.Fatalf("booking: %v", err)
	}

	if err := svc.DeleteDoctor(ctx, did); err != nil {
		t.Fatalf("delete doctor: %v", err)
	}
	list, _ := svc.ListAppointments(ctx)
	if len(list) != 0 {
		t.Errorf("expected no appointments after cascade, got %d", len(list))
	}
}

func TestDeleteInvalidID(t *testing.T) {
	svc, ctx := setup(t)
	wantKind(t, svc.DeletePatient(ctx, "xyz"), hospital.KindReference)
	wantKind(t, svc.DeleteDoctor(ctx, "xyz"), hospital.KindReference)
	wantKind(t, svc.DeleteAppointment(ctx, "xyz"), hospital.KindReference)
}

// ----- users / admin -----

func TestSignupAndLogin(t *testing.T) {
	svc, ctx := setup(t)

	u, err := svc.Signup(ctx, "Alice", "alice@example.com", "secret123", "")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if u.ID == "" || u.IsAdmin {
		t.Fatalf("unexpected user: %+v", u)
	}
	if u.PasswordHash == "secret123" {
		t.Fatal("password stored in the clear")
	}

	got, err := svc.Login(ctx, "alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.Name != "Alice" {
		t.Errorf("name: got %q", got.Name)
	}
}

func TestSignupValidation(t *testing.T) {
	svc, ctx := setup(t)
	tests := []struct {
		name, uname, email, pass string
	}{
		{"missing name", "", "a@b.com", "pw"},
		{"missing email", "A", "", "pw"},
		{"missing password", "A", "a@b.com", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Signup(ctx, tt.uname, tt.email, tt.pass, "")
			wantKind(t, err, hospital.KindValidation)
		})
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, ctx := setup(t)
	if _, err := svc.Signup(ctx, "Alice", "alice@example.com", "secret123", ""); err != nil {
		t.Fatalf("signup: %v", err)
	}
	_, err := svc.Signup(ctx, "Other", "alice@example.com", "different", "")
	wantKind(t, err, hospital.KindConflict)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, ctx := setup(t)
	if _, err := svc.Signup(ctx, "Alice", "alice@example.com", "secret123", ""); err != nil {
		t.Fatalf("signup: %v", err)
	}

	// wrong password and unknown email yield the same error
	_, err1 := svc.Login(ctx, "alice@example.com", "wrong")
	wantKind(t, err1, hospital.KindAuth)
	_, err2 := svc.Login(ctx, "nobody@example.com", "secret123")
	wantKind(t, err2, hospital.KindAuth)
	if err1.Error() != err2.Error() {
		t.Errorf("errors should not reveal which field was wrong: %q vs %q", err1, err2)
	}
}

func TestAdminSingleton(t *testing.T) {
	svc, ctx := setup(t)
	admin, err := svc.Signup(ctx, "Root", "root@example.com", "secret123", "admin")
	if err != nil {
		t.Fatalf("admin signup: %v", err)
	}
	if !admin.IsAdmin {
		t.Fatal("expected admin flag")
	}

	// a second admin signup is rejected
	_, err = svc.Signup(ctx, "Usurper", "u@example.com", "secret123", "admin")
	wantKind(t, err, hospital.KindConflict)

	// a regular user can sign up, but not be promoted while Root reigns
	user, err := svc.Signup(ctx, "Bob", "bob@example.com", "secret123", "user")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	wantKind(t, svc.PromoteToAdmin(ctx, user.ID), hospital.KindConflict)

	// re-promoting the current admin is a no-op success
	if err := svc.PromoteToAdmin(ctx, admin.ID); err != nil {
		t.Errorf("re-promote current admin: %v", err)
	}

	// demote, then promotion succeeds
	if err := svc.DemoteAdmin(ctx, admin.ID); err != nil {
		t.Fatalf("demote: %v", err)
	}
	if err := svc.PromoteToAdmin(ctx, user.ID); err != nil {
		t.Fatalf("promote after demote: %v", err)
	}
	users, _ := svc.ListUsers(ctx)
	admins := 0
	for _, u := range users {
		if u.IsAdmin {
			admins++
		}
	}
	if admins != 1 {
		t.Errorf("expected exactly 1 admin, got %d", admins)
	}
}

// ----- seed / clear -----

func TestSeedIdempotent(t *testing.T) {
	svc, ctx := setup(t)
	if err := svc.Seed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}

	patients, _ := svc.ListPatients(ctx)
	doctors, _ := svc.ListDoctors(ctx)
	appointments, _ := svc.ListAppointments(ctx)
	if len(patients) != 5 || len(doctors) != 4 || len(appointments) != 3 {
		t.Fatalf("unexpected seed counts: %d/%d/%d", len(patients), len(doctors), len(appointments))
	}

	if err := svc.Seed(ctx); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	patients2, _ := svc.ListPatients(ctx)
	doctors2, _ := svc.ListDoctors(ctx)
	appointments2, _ := svc.ListAppointments(ctx)
	if len(patients2) != len(patients) || len(doctors2) != len(doctors) || len(appointments2) != len(appointments) {
		t.Errorf("seed not idempotent: %d/%d/%d after second run",
			len(patients2), len(doctors2), len(appointments2))
	}
}

func TestClearKeepsUsers(t *testing.T) {
	svc, ctx := setup(t)
	if err := svc.Seed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := svc.Signup(ctx, "Alice", "alice@example.com", "secret123", ""); err != nil {
		t.Fatalf("signup: %v", err)
	}

	if err := svc.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	patients, _ := svc.ListPatients(ctx)
	doctors, _ := svc.ListDoctors(ctx)
	appointments, _ := svc.ListAppointments(ctx)
	if len(patients)+len(doctors)+len(appointments) != 0 {
		t.Errorf("expected empty store, got %d/%d/%d", len(patients), len(doctors), len(appointments))
	}
	users, _ := svc.ListUsers(ctx)
	if len(users) != 1 {
		t.Errorf("users should survive clear, got %d", len(users))
	}
}

func TestListPatientsOrdered(t *testing.T) {
	svc, ctx := setup(t)
	for i := 0; i < 5; i++ {
		if _, err := svc.CreatePatient(ctx, fmt.Sprintf("P%d", i), 20+i, "", ""); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	patients, err := svc.ListPatients(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for i, p := range patients {
		want := fmt.Sprintf("P%d", i)
		if p.Name != want {
			t.Errorf("position %d: got %q, want %q", i, p.Name, want)
		}
	}
}
