package domain

import "time"

type TicketPriority string

const (
	PriorityLow    TicketPriority = "low"
	PriorityMedium TicketPriority = "medium"
	PriorityHigh   TicketPriority = "high"
	PriorityUrgent TicketPriority = "urgent"
)

type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in-progress"
	TicketResolved   TicketStatus = "resolved"
	TicketClosed     TicketStatus = "closed"
)

// WarningNotificationFailed is returned alongside a created ticket when the
// e-mail notification could not be delivered.
const WarningNotificationFailed = "notification failed"

// HelpTicket is a support request raised from the admin portal. UserEmail and
// UserName are copied from the account at submission time.
type HelpTicket struct {
	ID          string         `json:"id"`
	UserID      string         `json:"user_id"`
	UserEmail   string         `json:"user_email"`
	UserName    string         `json:"user_name"`
	ProblemType string         `json:"problem_type"`
	Subject     string         `json:"subject"`
	Message     string         `json:"message"`
	Priority    TicketPriority `json:"priority"`
	Status      TicketStatus   `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
