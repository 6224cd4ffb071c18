package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/sunshine-recruitment/portal/internal/core/domain"
)

var (
	helpTicketTmpl = template.Must(template.New("help").Parse(`<h2>New Help Ticket Submitted</h2>
<p><strong>Ticket ID:</strong> {{.Ticket.ID}}</p>
<p><strong>From:</strong> {{.Ticket.UserName}} ({{.Ticket.UserEmail}})</p>
<p><strong>Problem Type:</strong> {{.Ticket.ProblemType}}</p>
<p><strong>Priority:</strong> {{.Ticket.Priority}}</p>
<p><strong>Subject:</strong> {{.Ticket.Subject}}</p>
<p><strong>Message:</strong></p>
<div style="background-color:#f5f5f5;padding:15px;border-radius:5px;white-space:pre-line;">{{.Ticket.Message}}</div>
<p><strong>Submitted At:</strong> {{.SubmittedAt}}</p>
<hr>
<p><em>This is an automated message from the Sunshine admin portal.</em></p>`))

	contactTmpl = template.Must(template.New("contact").Parse(`<div style="font-family:Arial,sans-serif;padding:20px;max-width:600px;">
<h2 style="color:#3b82f6;">New Contact Form Submission</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Phone:</strong> {{.Phone}}</p>
<p><strong>Subject:</strong> {{.Subject}}</p>
<div style="margin-top:20px;padding:15px;background-color:#f9fafb;border-left:4px solid #3b82f6;">
<h3 style="margin-top:0;">Message:</h3>
<p style="white-space:pre-line;">{{.Message}}</p>
</div>
</div>`))

	applicationTmpl = template.Must(template.New("application").Parse(`<div style="font-family:Arial,sans-serif;padding:20px;max-width:600px;">
<h2 style="color:#3b82f6;">New Job Application</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Phone:</strong> {{.Phone}}</p>
<p><strong>Job Role:</strong> {{.JobRole}}</p>
<p><strong>Preferred Country:</strong> {{.Country}}</p>
<p><strong>Experience:</strong> {{.Experience}}</p>
<div style="margin-top:20px;padding:15px;background-color:#f9fafb;border-left:4px solid #3b82f6;">
<h3 style="margin-top:0;">Additional Message:</h3>
<p style="white-space:pre-line;">{{if .Message}}{{.Message}}{{else}}No additional message provided.{{end}}</p>
</div>
</div>`))
)

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s mail: %w", t.Name(), err)
	}
	return buf.String(), nil
}

func helpTicketMessage(from, to string, t *domain.HelpTicket, at time.Time) (*gomail.Message, error) {
	body, err := render(helpTicketTmpl, struct {
		Ticket      *domain.HelpTicket
		SubmittedAt string
	}{t, at.UTC().Format(time.RFC1123)})
	if err != nil {
		return nil, err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Reply-To", t.UserEmail)
	m.SetHeader("Subject", fmt.Sprintf("[Help Ticket] %s: %s", t.ProblemType, t.Subject))
	m.SetBody("text/html", body)
	return m, nil
}

func contactMessage(from, to string, c domain.ContactMessage) (*gomail.Message, error) {
	body, err := render(contactTmpl, c)
	if err != nil {
		return nil, err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Reply-To", c.Email)
	m.SetHeader("Subject", "Contact Form: "+c.Subject)
	m.SetBody("text/plain", fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\n\nMessage:\n%s\n",
		c.Name, c.Email, c.Phone, c.Message))
	m.AddAlternative("text/html", body)
	return m, nil
}

func applicationMessage(from, to string, a domain.JobApplication) (*gomail.Message, error) {
	body, err := render(applicationTmpl, a)
	if err != nil {
		return nil, err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Reply-To", a.Email)
	m.SetHeader("Subject", fmt.Sprintf("Job Application: %s in %s", a.JobRole, a.Country))
	m.SetBody("text/html", body)

	content := a.Resume.Content
	m.Attach(a.Resume.Filename, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(content)
		return err
	}))
	return m, nil
}
