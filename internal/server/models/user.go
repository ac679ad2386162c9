package models

import (
	"encoding/json"
	"time"
)

// DefaultLastPage is the page a freshly registered user lands on.
const DefaultLastPage = "paper_interpretation"

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Profile      json.RawMessage
	Settings     Settings
	LastPage     string
	CreatedAt    time.Time
}
