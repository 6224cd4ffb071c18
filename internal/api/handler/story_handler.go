package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sunshine-recruitment/portal/internal/core/domain"
	"github.com/sunshine-recruitment/portal/internal/core/ports"
)

// StoryHandler serves success stories: the admin form and the public feed.
type StoryHandler struct {
	service ports.StoryService
}

func NewStoryHandler(service ports.StoryService) *StoryHandler {
	return &StoryHandler{service: service}
}

type storiesResponse struct {
	Success bool                   `json:"success"`
	Stories []*domain.SuccessStory `json:"stories"`
}

type storyResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Story   *domain.SuccessStory `json:"story"`
}

// Create handles POST /api/admin/success-stories.
//
// @Summary      Add a success story
// @Tags         success-stories
// @Accept       multipart/form-data
// @Produce      json
// @Security     CookieAuth
// @Param        customer_name   formData  string  true  "Customer name"
// @Param        job_title       formData  string  true  "Job title"
// @Param        company         formData  string  true  "Company"
// @Param        location        formData  string  true  "Location"
// @Param        testimonial     formData  string  true  "Testimonial"
// @Param        rating          formData  int     true  "Rating 1-5"
// @Param        customer_image  formData  file    true  "Customer photo"
// @Success      201             {object}  storyResponse
// @Failure      400             {object}  apiError
// @Failure      401             {object}  apiError
// @Failure      403             {object}  apiError
// @Router       /admin/success-stories [post]
func (h *StoryHandler) Create(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	rating, _ := strconv.Atoi(strings.TrimSpace(c.FormValue("rating")))
	in := ports.StoryInput{
		CustomerName: c.FormValue("customer_name"),
		JobTitle:     c.FormValue("job_title"),
		Company:      c.FormValue("company"),
		Location:     c.FormValue("location"),
		Testimonial:  c.FormValue("testimonial"),
		Rating:       rating,
	}

	fh, err := c.FormFile("customer_image")
	switch {
	case errors.Is(err, http.ErrMissingFile):
	case err != nil:
		return domain.NewValidationError("invalid multipart form")
	default:
		f, err := fh.Open()
		if err != nil {
			return err
		}
		defer f.Close()
		in.Image = &ports.ImageUpload{Filename: fh.Filename, Size: fh.Size, Content: f}
	}

	story, err := h.service.Create(c.Request().Context(), id, in, requestMeta(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, storyResponse{
		Success: true,
		Message: "Success story added successfully",
		Story:   story,
	})
}

// ListAll handles GET /api/admin/success-stories.
//
// @Summary      List all success stories
// @Tags         success-stories
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  storiesResponse
// @Failure      401  {object}  apiError
// @Failure      403  {object}  apiError
// @Router       /admin/success-stories [get]
func (h *StoryHandler) ListAll(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	stories, err := h.service.ListAll(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, storiesResponse{Success: true, Stories: nonNilStories(stories)})
}

// ListPublic handles GET /api/success-stories.
//
// @Summary      Latest success stories
// @Tags         success-stories
// @Produce      json
// @Success      200  {object}  storiesResponse
// @Router       /success-stories [get]
func (h *StoryHandler) ListPublic(c echo.Context) error {
	stories, err := h.service.ListPublic(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, storiesResponse{Success: true, Stories: nonNilStories(stories)})
}

func nonNilStories(s []*domain.SuccessStory) []*domain.SuccessStory {
	if s == nil {
		return []*domain.SuccessStory{}
	}
	return s
}
