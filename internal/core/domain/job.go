package domain

import "time"

// Sentinel filter values sent by the public listing page meaning "no filter".
const (
	AllTrades    = "All Trades"
	AllCountries = "All Countries"
)

// DateLayout is the layout of Job.Date.
const DateLayout = "2006-01-02"

// Job is a vacancy published on the portal.
type Job struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Company          string    `json:"company"`
	Location         string    `json:"location"`
	Country          string    `json:"country"`
	Salary           string    `json:"salary"`
	Description      string    `json:"description"`
	Responsibilities []string  `json:"responsibilities"`
	Requirements     []string  `json:"requirements"`
	Benefits         []string  `json:"benefits"`
	Type             string    `json:"type"`
	Experience       string    `json:"experience"`
	Trade            string    `json:"trade"`
	Featured         bool      `json:"featured"`
	Date             string    `json:"date"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
