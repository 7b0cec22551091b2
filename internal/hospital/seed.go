package hospital

import (
	"context"
	"fmt"
	"time"

	"hospital-backend/internal/models"
)

var seedPatients = []models.Patient{
	{Name: "Ali Khan", Age: 30, Contact: "0300-1111111", Address: "Lahore"},
	{Name: "Sara Ahmed", Age: 27, Contact: "0301-2222222", Address: "Karachi"},
	{Name: "Bilal Hussain", Age: 45, Contact: "0302-3333333", Address: "Islamabad"},
	{Name: "Ayesha Siddiqui", Age: 34, Contact: "0303-4444444", Address: "Multan"},
	{Name: "Usman Farooq", Age: 52, Contact: "0304-5555555", Address: "Peshawar"},
}

var seedDoctors = []models.Doctor{
	{Name: "Dr. Hamza", Specialty: "Cardiology", Contact: "042-1234567"},
	{Name: "Dr. Fatima", Specialty: "Neurology", Contact: "042-7654321"},
	{Name: "Dr. Ahmed", Specialty: "Orthopedics", Contact: "042-5556677"},
	{Name: "Dr. Maryam", Specialty: "Pediatrics", Contact: "042-9988776"},
}

// Seed populates demo data. Each block is skipped when records of that kind
// already exist, so invoking it repeatedly changes nothing.
func (s *Service) Seed(ctx context.Context) error {
	counts, err := s.store.Counts(ctx)
	if err != nil {
		return wrapStore(err, "internal error")
	}

	if counts.Patients == 0 {
		for _, p := range seedPatients {
			p.CreatedAt = now()
			if _, err := s.store.CreatePatient(ctx, &p); err != nil {
				return wrapStore(err, "internal error")
			}
		}
	}
	if counts.Doctors == 0 {
		for _, d := range seedDoctors {
			d.CreatedAt = now()
			if _, err := s.store.CreateDoctor(ctx, &d); err != nil {
				return wrapStore(err, "internal error")
			}
		}
	}
	if counts.Appointments == 0 {
		patients, err := s.store.ListPatients(ctx)
		if err != nil {
			return wrapStore(err, "internal error")
		}
		doctors, err := s.store.ListDoctors(ctx)
		if err != nil {
			return wrapStore(err, "internal error")
		}
		n := min(3, min(len(patients), len(doctors)))
		today := time.Now().UTC().Format("2006-01-02")
		for i := 0; i < n; i++ {
			slot := fmt.Sprintf("%s %02d:00", today, 10+i*2)
			_, err := s.store.CreateAppointment(ctx, &models.Appointment{
				PatientID: patients[i].ID,
				DoctorID:  doctors[i].ID,
				Datetime:  slot,
				CreatedAt: now(),
			})
			if err != nil {
				return wrapStore(err, "internal error")
			}
		}
	}
	return nil
}
