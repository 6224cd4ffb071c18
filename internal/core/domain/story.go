package domain

import "time"

// SuccessStory is a placed candidate's testimonial shown on the home page.
type SuccessStory struct {
	ID            string    `json:"id"`
	CustomerName  string    `json:"customer_name"`
	CustomerImage string    `json:"customer_image"`
	JobTitle      string    `json:"job_title"`
	Company       string    `json:"company"`
	Location      string    `json:"location"`
	Testimonial   string    `json:"testimonial"`
	Rating        int       `json:"rating"`
	CreatedBy     string    `json:"created_by,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
