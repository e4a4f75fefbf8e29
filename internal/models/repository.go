package models

import "time"

// RepositorySummary is the client-facing view of one GitHub repository.
type RepositorySummary struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	FullName    string     `json:"full_name"`
	Description *string    `json:"description"`
	Language    *string    `json:"language"`
	Stars       int        `json:"stars"`
	UpdatedAt   *time.Time `json:"updated_at"`
}
