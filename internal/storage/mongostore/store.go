// Package mongostore implements the document storage variant on MongoDB.
// Collections mirror the relational tables; ids are ObjectIDs exposed as
// hex strings, and appointments keep their patient/doctor references as
// those hex strings.
package mongostore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hospital-backend/internal/models"
	"hospital-backend/internal/storage"
)

const databaseName = "hospital"

// Store is the document storage.Store implementation.
type Store struct {
	client       *mongo.Client
	patients     *mongo.Collection
	doctors      *mongo.Collection
	appointments *mongo.Collection
	users        *mongo.Collection
}

// Open connects to MongoDB, verifies liveness with a ping bounded by ctx,
// and ensures the indexes: unique user email, a datetime index, and unique
// (doctor_id, datetime) and (patient_id, datetime) slot pairs.
func Open(ctx context.Context, uri string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(2*time.Second))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	db := client.Database(databaseName)
	s := &Store{
		client:       client,
		patients:     db.Collection("patients"),
		doctors:      db.Collection("doctors"),
		appointments: db.Collection("appointments"),
		users:        db.Collection("users"),
	}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}
	_, err = s.appointments.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "datetime", Value: 1}}},
		{
			Keys:    bson.D{{Key: "doctor_id", Value: 1}, {Key: "datetime", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "patient_id", Value: 1}, {Key: "datetime", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	return err
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, storage.ErrInvalidID
	}
	return oid, nil
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
	case errors.Is(err, mongo.ErrNoDocuments):
		return storage.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return storage.ErrDuplicate
	default:
		return err
	}
}

// ---- patients ----

func (s *Store) ListPatients(ctx context.Context) ([]models.Patient, error) {
	cur, err := s.patients.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []patientDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]models.Patient, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	return out, nil
}

func (s *Store) GetPatient(ctx context.Context, id string) (*models.Patient, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var doc patientDoc
	if err := s.patients.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	p := doc.toModel()
	return &p, nil
}

func (s *Store) CreatePatient(ctx context.Context, p *models.Patient) (string, error) {
	res, err := s.patients.InsertOne(ctx, patientDoc{
		Name: p.Name, Age: p.Age, Contact: p.Contact, Address: p.Address, CreatedAt: p.CreatedAt,
	})
	if err != nil {
		return "", translate(err)
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (s *Store) DeletePatient(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	// Two-step cascade: multi-document transactions need a replica set,
	// so this backend cannot assume one is available.
	if _, err := s.appointments.DeleteMany(ctx, bson.M{"patient_id": id}); err != nil {
		return err
	}
	_, err = s.patients.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

// ---- doctors ----

func (s *Store) ListDoctors(ctx context.Context) ([]models.Doctor, error) {
	cur, err := s.doctors.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []doctorDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]models.Doctor, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	return out, nil
}

func (s *Store) GetDoctor(ctx context.Context, id string) (*models.Doctor, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var doc doctorDoc
	if err := s.doctors.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	d := doc.toModel()
	return &d, nil
}

func (s *Store) CreateDoctor(ctx context.Context, d *models.Doctor) (string, error) {
	res, err := s.doctors.InsertOne(ctx, doctorDoc{
		Name: d.Name, Specialty: d.Specialty, Contact: d.Contact, CreatedAt: d.CreatedAt,
	})
	if err != nil {
		return "", translate(err)
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (s *Store) DeleteDoctor(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	if _, err := s.appointments.DeleteMany(ctx, bson.M{"doctor_id": id}); err != nil {
		return err
	}
	_, err = s.doctors.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

// ---- appointments ----

func (s *Store) ListAppointments(ctx context.Context) ([]models.AppointmentDetail, error) {
	cur, err := s.appointments.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "datetime", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []appointmentDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	patientNames, err := s.namesByID(ctx, s.patients, referencedIDs(docs, func(d appointmentDoc) string { return d.PatientID }))
	if err != nil {
		return nil, err
	}
	doctorNames, err := s.namesByID(ctx, s.doctors, referencedIDs(docs, func(d appointmentDoc) string { return d.DoctorID }))
	if err != nil {
		return nil, err
	}

	out := make([]models.AppointmentDetail, 0, len(docs))
	for _, d := range docs {
		out = append(out, models.AppointmentDetail{
			ID:          d.ID.Hex(),
			PatientID:   d.PatientID,
			PatientName: patientNames[d.PatientID],
			DoctorID:    d.DoctorID,
			DoctorName:  doctorNames[d.DoctorID],
			Datetime:    d.Datetime,
			CreatedAt:   d.CreatedAt,
		})
	}
	return out, nil
}

func referencedIDs(docs []appointmentDoc, pick func(appointmentDoc) string) []primitive.ObjectID {
	seen := make(map[string]bool)
	var ids []primitive.ObjectID
	for _, d := range docs {
		hex := pick(d)
		if hex == "" || seen[hex] {
			continue
		}
		seen[hex] = true
		if oid, err := primitive.ObjectIDFromHex(hex); err == nil {
			ids = append(ids, oid)
		}
	}
	return ids
}

func (s *Store) namesByID(ctx context.Context, coll *mongo.Collection, ids []primitive.ObjectID) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	cur, err := coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var docs []struct {
		ID   primitive.ObjectID `bson:"_id"`
		Name string             `bson:"name"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	for _, d := range docs {
		names[d.ID.Hex()] = d.Name
	}
	return names, nil
}

func (s *Store) CreateAppointment(ctx context.Context, a *models.Appointment) (string, error) {
	if err := s.CheckID(a.PatientID); err != nil {
		return "", err
	}
	if err := s.CheckID(a.DoctorID); err != nil {
		return "", err
	}
	res, err := s.appointments.InsertOne(ctx, appointmentDoc{
		PatientID: a.PatientID, DoctorID: a.DoctorID, Datetime: a.Datetime, CreatedAt: a.CreatedAt,
	})
	if err != nil {
		return "", translate(err)
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (s *Store) DeleteAppointment(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	_, err = s.appointments.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

func (s *Store) HasDoctorConflict(ctx context.Context, doctorID, datetime string) (bool, error) {
	n, err := s.appointments.CountDocuments(ctx, bson.M{"doctor_id": doctorID, "datetime": datetime})
	return n > 0, err
}

func (s *Store) HasPatientConflict(ctx context.Context, patientID, datetime string) (bool, error) {
	n, err := s.appointments.CountDocuments(ctx, bson.M{"patient_id": patientID, "datetime": datetime})
	return n > 0, err
}

// ---- users ----

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	cur, err := s.users.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]models.User, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	return out, nil
}

func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var doc userDoc
	if err := s.users.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	u := doc.toModel()
	return &u, nil
}

func (s *Store) CreateUser(ctx context.Context, u *models.User) (string, error) {
	res, err := s.users.InsertOne(ctx, userDoc{
		Name: u.Name, Email: u.Email, PasswordHash: u.PasswordHash, CreatedAt: u.CreatedAt, IsAdmin: u.IsAdmin,
	})
	if err != nil {
		return "", translate(err)
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var doc userDoc
	if err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	u := doc.toModel()
	return &u, nil
}

func (s *Store) FindAdmin(ctx context.Context) (*models.User, error) {
	var doc userDoc
	if err := s.users.FindOne(ctx, bson.M{"is_admin": true}).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	u := doc.toModel()
	return &u, nil
}

func (s *Store) SetAdmin(ctx context.Context, id string, admin bool) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	_, err = s.users.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"is_admin": admin}})
	return err
}

// ---- maintenance ----

func (s *Store) Counts(ctx context.Context) (storage.Counts, error) {
	var c storage.Counts
	var err error
	if c.Patients, err = s.patients.CountDocuments(ctx, bson.M{}); err != nil {
		return c, err
	}
	if c.Doctors, err = s.doctors.CountDocuments(ctx, bson.M{}); err != nil {
		return c, err
	}
	if c.Appointments, err = s.appointments.CountDocuments(ctx, bson.M{}); err != nil {
		return c, err
	}
	return c, nil
}

func (s *Store) ClearAll(ctx context.Context) error {
	if _, err := s.appointments.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	if _, err := s.patients.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	_, err := s.doctors.DeleteMany(ctx, bson.M{})
	return err
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
