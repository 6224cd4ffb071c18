package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sunshine-recruitment/portal/internal/core/domain"
	"github.com/sunshine-recruitment/portal/internal/core/ports"
)

// ContactHandler serves the public contact and apply forms.
type ContactHandler struct {
	service        ports.ContactService
	maxResumeBytes int64
}

func NewContactHandler(service ports.ContactService, maxResumeBytes int64) *ContactHandler {
	return &ContactHandler{service: service, maxResumeBytes: maxResumeBytes}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Contact handles POST /api/contact.
//
// @Summary      Send a contact message
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        body  body      contactRequest  true  "Contact form"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  apiError
// @Failure      500   {object}  apiError
// @Failure      503   {object}  apiError
// @Router       /contact [post]
func (h *ContactHandler) Contact(c echo.Context) error {
	var req contactRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	if err := h.service.Contact(c.Request().Context(), ports.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	}); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, success("Message sent successfully"))
}

// Apply handles POST /api/apply. The resume is forwarded as an attachment.
//
// @Summary      Apply for a job
// @Tags         forms
// @Accept       multipart/form-data
// @Produce      json
// @Param        name        formData  string  true   "Full name"
// @Param        email       formData  string  true   "E-mail"
// @Param        phone       formData  string  true   "Phone"
// @Param        job_role    formData  string  true   "Job role"
// @Param        country     formData  string  false  "Preferred country"
// @Param        experience  formData  string  false  "Experience"
// @Param        message     formData  string  false  "Message"
// @Param        resume      formData  file    true   "Resume"
// @Success      200         {object}  messageResponse
// @Failure      400         {object}  apiError
// @Failure      500         {object}  apiError
// @Failure      503         {object}  apiError
// @Router       /apply [post]
func (h *ContactHandler) Apply(c echo.Context) error {
	in := ports.ApplicationInput{
		Name:       c.FormValue("name"),
		Email:      c.FormValue("email"),
		Phone:      c.FormValue("phone"),
		JobRole:    c.FormValue("job_role"),
		Country:    c.FormValue("country"),
		Experience: c.FormValue("experience"),
		Message:    c.FormValue("message"),
	}

	resume, err := h.readResume(c)
	if err != nil {
		return err
	}
	in.Resume = resume

	if err := h.service.Apply(c.Request().Context(), in); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, success("Application submitted successfully"))
}

// readResume loads the uploaded resume into memory. A missing file returns nil.
func (h *ContactHandler) readResume(c echo.Context) (*domain.Attachment, error) {
	fh, err := c.FormFile("resume")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.NewValidationError("invalid multipart form")
	}
	if fh.Size > h.maxResumeBytes {
		return nil, domain.NewValidationError("resume must be at most %d bytes", h.maxResumeBytes)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, h.maxResumeBytes))
	if err != nil {
		return nil, err
	}
	return &domain.Attachment{Filename: fh.Filename, Content: content}, nil
}
