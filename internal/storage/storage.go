package storage

import (
	"context"

	"hospital-backend/internal/models"
)

// Counts holds the record totals used by idempotent seeding.
type Counts struct {
	Patients     int64
	Doctors      int64
	Appointments int64
}

// Store is the persistence capability shared by the relational and the
// document backend. The variant is chosen once at startup; every operation
// is routed to it for the lifetime of the process.
//
// Implementations must be safe for concurrent callers but provide no
// cross-request isolation for check-then-write sequences — the booking
// validator's conflict checks rely on the unique slot indexes as a backstop.
type Store interface {
	// CheckID reports whether id is coercible to the backend's native
	// identifier type. Returns ErrInvalidID when it is not.
	CheckID(id string) error

	// Patients
	ListPatients(ctx context.Context) ([]models.Patient, error)
	GetPatient(ctx context.Context, id string) (*models.Patient, error)
	CreatePatient(ctx context.Context, p *models.Patient) (string, error)
	// DeletePatient removes the patient's appointments first, then the
	// patient itself.
	DeletePatient(ctx context.Context, id string) error

	// Doctors
	ListDoctors(ctx context.Context) ([]models.Doctor, error)
	GetDoctor(ctx context.Context, id string) (*models.Doctor, error)
	CreateDoctor(ctx context.Context, d *models.Doctor) (string, error)
	// DeleteDoctor removes the doctor's appointments first, then the
	// doctor itself.
	DeleteDoctor(ctx context.Context, id string) error

	// Appointments
	ListAppointments(ctx context.Context) ([]models.AppointmentDetail, error)
	CreateAppointment(ctx context.Context, a *models.Appointment) (string, error)
	DeleteAppointment(ctx context.Context, id string) error
	HasDoctorConflict(ctx context.Context, doctorID, datetime string) (bool, error)
	HasPatientConflict(ctx context.Context, patientID, datetime string) (bool, error)

	// Users
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) (string, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	// FindAdmin returns the user holding the admin flag, or ErrNotFound.
	FindAdmin(ctx context.Context) (*models.User, error)
	// SetAdmin flips the admin flag. A missing id is a silent no-op.
	SetAdmin(ctx context.Context, id string, admin bool) error

	// Maintenance
	Counts(ctx context.Context) (Counts, error)
	// ClearAll wipes appointments, patients and doctors. Users survive.
	ClearAll(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
