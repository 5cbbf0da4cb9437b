package domain

import "time"

// Donation is one accepted contribution to a project, recorded for history.
type Donation struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Donor     string    `json:"donor"`
	AmountXLM float64   `json:"amount_xlm"`
	CreatedAt time.Time `json:"created_at"`
}
