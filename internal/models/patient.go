package models

// Patient defines the structure for patient records.
// IDs are strings at the API boundary; each storage backend coerces them
// to its native identifier type.
type Patient struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Age       int    `json:"age"`
	Contact   string `json:"contact"`
	Address   string `json:"address"`
	CreatedAt string `json:"created_at"`
}
