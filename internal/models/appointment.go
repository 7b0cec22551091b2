package models

// Appointment links a patient and a doctor to a time slot. Datetime is the
// slot key, kept as the exact "YYYY-MM-DD HH:MM" string it was booked with.
type Appointment struct {
	ID        string `json:"id"`
	PatientID string `json:"patient_id"`
	DoctorID  string `json:"doctor_id"`
	Datetime  string `json:"datetime"`
	CreatedAt string `json:"created_at"`
}

// AppointmentDetail is an Appointment joined with the referenced names,
// as returned by the appointment listing.
type AppointmentDetail struct {
	ID          string `json:"id"`
	PatientID   string `json:"patient_id"`
	PatientName string `json:"patient_name"`
	DoctorID    string `json:"doctor_id"`
	DoctorName  string `json:"doctor_name"`
	Datetime    string `json:"datetime"`
	CreatedAt   string `json:"created_at"`
}
