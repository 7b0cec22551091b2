package mongostore

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"hospital-backend/internal/models"
)

type patientDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Age       int                `bson:"age"`
	Contact   string             `bson:"contact"`
	Address   string             `bson:"address"`
	CreatedAt string             `bson:"created_at"`
}

func (d patientDoc) toModel() models.Patient {
	return models.Patient{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Age:       d.Age,
		Contact:   d.Contact,
		Address:   d.Address,
		CreatedAt: d.CreatedAt,
	}
}

type doctorDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Specialty string             `bson:"specialty"`
	Contact   string             `bson:"contact"`
	CreatedAt string             `bson:"created_at"`
}

func (d doctorDoc) toModel() models.Doctor {
	return models.Doctor{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Specialty: d.Specialty,
		Contact:   d.Contact,
		CreatedAt: d.CreatedAt,
	}
}

// appointmentDoc keeps patient_id and doctor_id as hex strings, the same
// representation the API uses for references.
type appointmentDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	PatientID string             `bson:"patient_id"`
	DoctorID  string             `bson:"doctor_id"`
	Datetime  string             `bson:"datetime"`
	CreatedAt string             `bson:"created_at"`
}

type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	CreatedAt    string             `bson:"created_at"`
	IsAdmin      bool               `bson:"is_admin"`
}

func (d userDoc) toModel() models.User {
	return models.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
		IsAdmin:      d.IsAdmin,
	}
}
