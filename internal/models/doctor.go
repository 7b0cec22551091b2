package models

// Doctor defines the structure for doctor records.
type Doctor struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Contact   string `json:"contact"`
	CreatedAt string `json:"created_at"`
}
