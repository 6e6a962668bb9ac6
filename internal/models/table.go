package models

import "time"

const (
	TableStatusPlaying = "playing"
	TableStatusWon     = "won"
)

// Table describes a dealt table held in server memory.
type Table struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Status       string    `json:"status"` // playing|won
	Seed         *int64    `json:"seed,omitempty"`
	MaxPasses    int       `json:"max_passes"`
	EmptyTableau string    `json:"empty_tableau"`
	Events       int64     `json:"events"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
