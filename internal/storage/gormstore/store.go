// Package gormstore implements the relational storage variant on top of
// gorm, using a single-file SQLite database by default or PostgreSQL when a
// connection string is configured.
package gormstore

import (
	"context"
	"errors"
	"strconv"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hospital-backend/internal/models"
	"hospital-backend/internal/storage"
)

// Store is the relational storage.Store implementation.
type Store struct {
	db *gorm.DB
}

// Open connects to PostgreSQL when postgresURI is set, otherwise to the
// SQLite file at sqlitePath, and creates the schema if absent. Unique
// indexes on user.email and on both booking slot pairs are part of the
// schema, so slot conflicts are enforced at the database level in this
// backend too.
func Open(postgresURI, sqlitePath string) (*Store, error) {
	var dial gorm.Dialector
	if postgresURI != "" {
		dial = postgres.Open(postgresURI)
	} else {
		dial = sqlite.Open(sqlitePath)
	}

	db, err := gorm.Open(dial, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&patientRow{}, &doctorRow{}, &appointmentRow{}, &userRow{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// parseID coerces an API id to the integer primary key type.
func parseID(id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, storage.ErrInvalidID
	}
	return n, nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// CheckID implements storage.Store.
func (s *Store) CheckID(id string) error {
	_, err := parseID(id)
	return err
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return storage.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return storage.ErrDuplicate
	default:
		return err
	}
}

// ---- patients ----

func (s *Store) ListPatients(ctx context.Context) ([]models.Patient, error) {
	var rows []patientRow
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]models.Patient, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, nil
}

func (s *Store) GetPatient(ctx context.Context, id string) (*models.Patient, error) {
	n, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var row patientRow
	if err := s.db.WithContext(ctx).First(&row, n).Error; err != nil {
		return nil, translate(err)
	}
	p := row.toModel()
	return &p, nil
}

func (s *Store) CreatePatient(ctx context.Context, p *models.Patient) (string, error) {
	row := patientRow{Name: p.Name, Age: p.Age, Contact: p.Contact, Address: p.Address, CreatedAt: p.CreatedAt}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", translate(err)
	}
	return formatID(row.ID), nil
}

func (s *Store) DeletePatient(ctx context.Context, id string) error {
	n, err := parseID(id)
	if err != nil {
		return err
	}
	// Cascade and entity delete run in one transaction so a crash cannot
	// leave appointments half-removed.
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("patient_id = ?", n).Delete(&appointmentRow{}).Error; err != nil {
			return err
		}
		return tx.Delete(&patientRow{}, n).Error
	})
}

// ---- doctors ----

func (s *Store) ListDoctors(ctx context.Context) ([]models.Doctor, error) {
	var rows []doctorRow
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]models.Doctor, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, nil
}

func (s *Store) GetDoctor(ctx context.Context, id string) (*models.Doctor, error) {
	n, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var row doctorRow
	if err := s.db.WithContext(ctx).First(&row, n).Error; err != nil {
		return nil, translate(err)
	}
	d := row.toModel()
	return &d, nil
}

func (s *Store) CreateDoctor(ctx context.Context, d *models.Doctor) (string, error) {
	row := doctorRow{Name: d.Name, Specialty: d.Specialty, Contact: d.Contact, CreatedAt: d.CreatedAt}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", translate(err)
	}
	return formatID(row.ID), nil
}

func (s *Store) DeleteDoctor(ctx context.Context, id string) error {
	n, err := parseID(id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("doctor_id = ?", n).Delete(&appointmentRow{}).Error; err != nil {
			return err
		}
		return tx.Delete(&doctorRow{}, n).Error
	})
}

// ---- appointments ----

// appointmentJoin carries the scan target for the joined listing.
type appointmentJoin struct {
	ID          int64
	PatientID   int64
	DoctorID    int64
	Datetime    string
	CreatedAt   string
	PatientName string
	DoctorName  string
}

func (s *Store) ListAppointments(ctx context.Context) ([]models.AppointmentDetail, error) {
	var rows []appointmentJoin
	err := s.db.WithContext(ctx).
		Table("appointment AS a").
		Select("a.id, a.patient_id, a.doctor_id, a.datetime, a.created_at, p.name AS patient_name, d.name AS doctor_name").
		Joins("JOIN patient p ON p.id = a.patient_id").
		Joins("JOIN doctor d ON d.id = a.doctor_id").
		Order("a.datetime").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]models.AppointmentDetail, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.AppointmentDetail{
			ID:          formatID(r.ID),
			PatientID:   formatID(r.PatientID),
			PatientName: r.PatientName,
			DoctorID:    formatID(r.DoctorID),
			DoctorName:  r.DoctorName,
			Datetime:    r.Datetime,
			CreatedAt:   r.CreatedAt,
		})
	}
	return out, nil
}

func (s *Store) CreateAppointment(ctx context.Context, a *models.Appointment) (string, error) {
	pid, err := parseID(a.PatientID)
	if err != nil {
		return "", err
	}
	did, err := parseID(a.DoctorID)
	if err != nil {
		return "", err
	}
	row := appointmentRow{PatientID: pid, DoctorID: did, Datetime: a.Datetime, CreatedAt: a.CreatedAt}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", translate(err)
	}
	return formatID(row.ID), nil
}

func (s *Store) DeleteAppointment(ctx context.Context, id string) error {
	n, err := parseID(id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&appointmentRow{}, n).Error
}

func (s *Store) HasDoctorConflict(ctx context.Context, doctorID, datetime string) (bool, error) {
	did, err := parseID(doctorID)
	if err != nil {
		return false, err
	}
	var count int64
	err = s.db.WithContext(ctx).Model(&appointmentRow{}).
		Where("doctor_id = ? AND datetime = ?", did, datetime).
		Count(&count).Error
	return count > 0, err
}

func (s *Store) HasPatientConflict(ctx context.Context, patientID, datetime string) (bool, error) {
	pid, err := parseID(patientID)
	if err != nil {
		return false, err
	}
	var count int64
	err = s.db.WithContext(ctx).Model(&appointmentRow{}).
		Where("patient_id = ? AND datetime = ?", pid, datetime).
		Count(&count).Error
	return count > 0, err
}

// ---- users ----

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	var rows []userRow
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]models.User, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, nil
}

func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	n, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var row userRow
	if err := s.db.WithContext(ctx).First(&row, n).Error; err != nil {
		return nil, translate(err)
	}
	u := row.toModel()
	return &u, nil
}

func (s *Store) CreateUser(ctx context.Context, u *models.User) (string, error) {
	row := userRow{Name: u.Name, Email: u.Email, PasswordHash: u.PasswordHash, CreatedAt: u.CreatedAt, IsAdmin: u.IsAdmin}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", translate(err)
	}
	return formatID(row.ID), nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var row userRow
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&row).Error; err != nil {
		return nil, translate(err)
	}
	u := row.toModel()
	return &u, nil
}

func (s *Store) FindAdmin(ctx context.Context) (*models.User, error) {
	var row userRow
	if err := s.db.WithContext(ctx).Where("is_admin = ?", true).First(&row).Error; err != nil {
		return nil, translate(err)
	}
	u := row.toModel()
	return &u, nil
}

func (s *Store) SetAdmin(ctx context.Context, id string, admin bool) error {
	n, err := parseID(id)
	if err != nil {
		return err
	}
	// Mirrors a bare UPDATE: a missing id is a no-op, not an error.
	return s.db.WithContext(ctx).Model(&userRow{}).Where("id = ?", n).Update("is_admin", admin).Error
}

// ---- maintenance ----

func (s *Store) Counts(ctx context.Context) (storage.Counts, error) {
	var c storage.Counts
	db := s.db.WithContext(ctx)
	if err := db.Model(&patientRow{}).Count(&c.Patients).Error; err != nil {
		return c, err
	}
	if err := db.Model(&doctorRow{}).Count(&c.Doctors).Error; err != nil {
		return c, err
	}
	if err := db.Model(&appointmentRow{}).Count(&c.Appointments).Error; err != nil {
		return c, err
	}
	return c, nil
}

func (s *Store) ClearAll(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		session := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := session.Delete(&appointmentRow{}).Error; err != nil {
			return err
		}
		if err := session.Delete(&patientRow{}).Error; err != nil {
			return err
		}
		return session.Delete(&doctorRow{}).Error
	})
}

func (s *Store) Ping(ctx context.Context) error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}
	return db.PingContext(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
