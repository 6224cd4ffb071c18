package domain

// ContactMessage is a public contact-form submission.
type ContactMessage struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// Attachment is an in-memory file forwarded by e-mail.
type Attachment struct {
	Filename string
	Content  []byte
}

// JobApplication is a public apply-form submission with the candidate's resume.
type JobApplication struct {
	Name       string
	Email      string
	Phone      string
	JobRole    string
	Country    string
	Experience string
	Message    string
	Resume     Attachment
}
