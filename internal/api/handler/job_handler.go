package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sunshine-recruitment/portal/internal/core/domain"
	"github.com/sunshine-recruitment/portal/internal/core/ports"
)

// JobHandler serves the public listing and the admin job CRUD.
type JobHandler struct {
	service ports.JobService
}

func NewJobHandler(service ports.JobService) *JobHandler {
	return &JobHandler{service: service}
}

type createJobRequest struct {
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	Location         string   `json:"location"`
	Country          string   `json:"country"`
	Salary           string   `json:"salary"`
	Description      string   `json:"description"`
	Responsibilities []string `json:"responsibilities"`
	Requirements     []string `json:"requirements"`
	Benefits         []string `json:"benefits"`
	Type             string   `json:"type"`
	Experience       string   `json:"experience"`
	Trade            string   `json:"trade"`
	Featured         bool     `json:"featured"`
	Date             string   `json:"date"`
}

// updateJobRequest mirrors createJobRequest with every field optional.
type updateJobRequest struct {
	Title            *string  `json:"title"`
	Company          *string  `json:"company"`
	Location         *string  `json:"location"`
	Country          *string  `json:"country"`
	Salary           *string  `json:"salary"`
	Description      *string  `json:"description"`
	Responsibilities []string `json:"responsibilities"`
	Requirements     []string `json:"requirements"`
	Benefits         []string `json:"benefits"`
	Type             *string  `json:"type"`
	Experience       *string  `json:"experience"`
	Trade            *string  `json:"trade"`
	Featured         *bool    `json:"featured"`
	Date             *string  `json:"date"`
}

type jobsResponse struct {
	Success bool          `json:"success"`
	Jobs    []*domain.Job `json:"jobs"`
}

type jobResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Job     *domain.Job `json:"job"`
}

// List handles GET /api/jobs.
//
// @Summary      List jobs
// @Tags         jobs
// @Produce      json
// @Param        search    query     string  false  "Case-insensitive match on title, company or location"
// @Param        trade     query     string  false  "Trade, or All Trades"
// @Param        country   query     string  false  "Country, or All Countries"
// @Param        featured  query     bool    false  "Only featured jobs"
// @Success      200       {object}  jobsResponse
// @Failure      500       {object}  apiError
// @Router       /jobs [get]
func (h *JobHandler) List(c echo.Context) error {
	featured, _ := strconv.ParseBool(c.QueryParam("featured"))

	jobs, err := h.service.List(c.Request().Context(), ports.JobFilter{
		Search:       c.QueryParam("search"),
		Trade:        c.QueryParam("trade"),
		Country:      c.QueryParam("country"),
		FeaturedOnly: featured,
	})
	if err != nil {
		return err
	}
	if jobs == nil {
		jobs = []*domain.Job{}
	}
	return c.JSON(http.StatusOK, jobsResponse{Success: true, Jobs: jobs})
}

// Get handles GET /api/jobs/:id.
//
// @Summary      Get a job
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  jobResponse
// @Failure      404  {object}  apiError
// @Router       /jobs/{id} [get]
func (h *JobHandler) Get(c echo.Context) error {
	job, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, jobResponse{Success: true, Job: job})
}

// Create handles POST /api/jobs.
//
// @Summary      Create a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      createJobRequest  true  "Job details"
// @Success      201   {object}  jobResponse
// @Failure      400   {object}  apiError
// @Failure      401   {object}  apiError
// @Failure      403   {object}  apiError
// @Router       /jobs [post]
func (h *JobHandler) Create(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createJobRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	job, err := h.service.Create(c.Request().Context(), id, ports.JobInput{
		Title:            req.Title,
		Company:          req.Company,
		Location:         req.Location,
		Country:          req.Country,
		Salary:           req.Salary,
		Description:      req.Description,
		Responsibilities: req.Responsibilities,
		Requirements:     req.Requirements,
		Benefits:         req.Benefits,
		Type:             req.Type,
		Experience:       req.Experience,
		Trade:            req.Trade,
		Featured:         req.Featured,
		Date:             req.Date,
	}, requestMeta(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, jobResponse{Success: true, Message: "Job created successfully", Job: job})
}

// Update handles PUT /api/jobs/:id. Omitted fields keep their stored value.
//
// @Summary      Update a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      string            true  "Job ID"
// @Param        body  body      updateJobRequest  true  "Fields to change"
// @Success      200   {object}  jobResponse
// @Failure      400   {object}  apiError
// @Failure      401   {object}  apiError
// @Failure      403   {object}  apiError
// @Failure      404   {object}  apiError
// @Router       /jobs/{id} [put]
func (h *JobHandler) Update(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateJobRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	job, err := h.service.Update(c.Request().Context(), id, c.Param("id"), ports.JobPatch{
		Title:            req.Title,
		Company:          req.Company,
		Location:         req.Location,
		Country:          req.Country,
		Salary:           req.Salary,
		Description:      req.Description,
		Responsibilities: req.Responsibilities,
		Requirements:     req.Requirements,
		Benefits:         req.Benefits,
		Type:             req.Type,
		Experience:       req.Experience,
		Trade:            req.Trade,
		Featured:         req.Featured,
		Date:             req.Date,
	}, requestMeta(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, jobResponse{Success: true, Message: "Job updated successfully", Job: job})
}

// Delete handles DELETE /api/jobs/:id.
//
// @Summary      Delete a job
// @Tags         jobs
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  apiError
// @Failure      403  {object}  apiError
// @Failure      404  {object}  apiError
// @Router       /jobs/{id} [delete]
func (h *JobHandler) Delete(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id, c.Param("id"), requestMeta(c)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, success("Job deleted successfully"))
}
