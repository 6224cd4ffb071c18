package domain

import "time"

// ActivityStatus is the outcome recorded on an audit entry.
type ActivityStatus string

const (
	ActivitySuccess ActivityStatus = "success"
	ActivityFailed  ActivityStatus = "failed"
	ActivityError   ActivityStatus = "error"
	ActivityWarning ActivityStatus = "warning"
)

// Valid reports whether s is one of the known statuses.
func (s ActivityStatus) Valid() bool {
	switch s {
	case ActivitySuccess, ActivityFailed, ActivityError, ActivityWarning:
		return true
	}
	return false
}

// Audit action labels.
const (
	ActionLogin               = "Login"
	ActionLoginAttempt        = "Login Attempt"
	ActionLogout              = "Logout"
	ActionPasswordChange      = "Password Change"
	ActionProfileUpdate       = "Profile Update"
	ActionUserRegistered      = "User Registered"
	ActionJobCreated          = "Job Created"
	ActionJobUpdated          = "Job Updated"
	ActionJobDeleted          = "Job Deleted"
	ActionHelpTicketSubmitted = "Help Ticket Submitted"
	ActionStoryCreated        = "Success Story Created"
)

// Audit resource labels.
const (
	ResourceAuthentication = "Authentication"
	ResourceUserAccount    = "User Account"
	ResourceUserProfile    = "User Profile"
	ResourceJobManagement  = "Job Management"
	ResourceSupportSystem  = "Support System"
	ResourceSuccessStory   = "Success Story"
)

// ActivityLog is an append-only audit entry. An empty UserID marks an
// anonymous or failed-authentication event.
type ActivityLog struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id,omitempty"`
	Action    string         `json:"action"`
	Resource  string         `json:"resource"`
	Details   string         `json:"details"`
	IPAddress string         `json:"ip_address"`
	UserAgent string         `json:"user_agent"`
	Timestamp time.Time      `json:"timestamp"`
	Status    ActivityStatus `json:"status"`
}
