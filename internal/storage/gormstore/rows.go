package gormstore

import "hospital-backend/internal/models"

// Row types are private to the relational backend; the rest of the system
// only sees the string-id API models.

type patientRow struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"not null"`
	Age       int    `gorm:"default:0"`
	Contact   string
	Address   string
	CreatedAt string `gorm:"column:created_at"`
}

func (patientRow) TableName() string { return "patient" }

func (r patientRow) toModel() models.Patient {
	return models.Patient{
		ID:        formatID(r.ID),
		Name:      r.Name,
		Age:       r.Age,
		Contact:   r.Contact,
		Address:   r.Address,
		CreatedAt: r.CreatedAt,
	}
}

type doctorRow struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"not null"`
	Specialty string
	Contact   string
	CreatedAt string `gorm:"column:created_at"`
}

func (doctorRow) TableName() string { return "doctor" }

func (r doctorRow) toModel() models.Doctor {
	return models.Doctor{
		ID:        formatID(r.ID),
		Name:      r.Name,
		Specialty: r.Specialty,
		Contact:   r.Contact,
		CreatedAt: r.CreatedAt,
	}
}

// appointmentRow carries the two slot uniqueness indexes: one per doctor
// slot, one per patient slot. They backstop the application-level conflict
// checks under concurrent booking.
type appointmentRow struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	PatientID int64  `gorm:"column:patient_id;not null;uniqueIndex:uq_patient_slot"`
	DoctorID  int64  `gorm:"column:doctor_id;not null;uniqueIndex:uq_doctor_slot"`
	Datetime  string `gorm:"column:datetime;not null;uniqueIndex:uq_doctor_slot;uniqueIndex:uq_patient_slot"`
	CreatedAt string `gorm:"column:created_at"`
}

func (appointmentRow) TableName() string { return "appointment" }

type userRow struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Name         string `gorm:"not null"`
	Email        string `gorm:"not null;uniqueIndex"`
	PasswordHash string `gorm:"column:password_hash;not null"`
	CreatedAt    string `gorm:"column:created_at"`
	IsAdmin      bool   `gorm:"column:is_admin;default:false"`
}

func (userRow) TableName() string { return "user" }

func (r userRow) toModel() models.User {
	return models.User{
		ID:           formatID(r.ID),
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
		IsAdmin:      r.IsAdmin,
	}
}
