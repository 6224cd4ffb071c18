package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sunshine-recruitment/portal/internal/core/domain"
	"github.com/sunshine-recruitment/portal/internal/core/ports"
)

type ActivityHandler struct {
	service ports.AuditService
}

func NewActivityHandler(service ports.AuditService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

type activityRequest struct {
	Action   string `json:"action"`
	Resource string `json:"resource"`
	Details  string `json:"details"`
	Status   string `json:"status"`
}

type activityPageResponse struct {
	Success    bool                  `json:"success"`
	Activities []*domain.ActivityLog `json:"activities"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"page"`
	Limit      int                   `json:"limit"`
	TotalPages int                   `json:"total_pages"`
}

type activityCreatedResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}

// List handles GET /api/admin/activity. Admins see every entry, other
// users only their own.
//
// @Summary      Query the activity log
// @Tags         activity
// @Produce      json
// @Security     CookieAuth
// @Param        page    query     int     false  "Page, 1-based"
// @Param        limit   query     int     false  "Page size"
// @Param        status  query     string  false  "success, failed, error, warning or all"
// @Param        action  query     string  false  "Case-insensitive match on action"
// @Param        search  query     string  false  "Case-insensitive match on resource or details"
// @Success      200     {object}  activityPageResponse
// @Failure      401     {object}  apiError
// @Router       /admin/activity [get]
func (h *ActivityHandler) List(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	res, err := h.service.Query(c.Request().Context(), id, ports.ActivityFilter{
		Status:   c.QueryParam("status"),
		Action:   c.QueryParam("action"),
		Search:   c.QueryParam("search"),
		Page:     page,
		PageSize: limit,
	})
	if err != nil {
		return err
	}

	items := res.Items
	if items == nil {
		items = []*domain.ActivityLog{}
	}
	return c.JSON(http.StatusOK, activityPageResponse{
		Success:    true,
		Activities: items,
		Total:      res.Total,
		Page:       res.Page,
		Limit:      res.PageSize,
		TotalPages: res.TotalPages,
	})
}

// Create handles POST /api/admin/activity for client-reported events.
//
// @Summary      Record an activity
// @Tags         activity
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      activityRequest  true  "Activity entry"
// @Success      201   {object}  activityCreatedResponse
// @Failure      400   {object}  apiError
// @Failure      401   {object}  apiError
// @Router       /admin/activity [post]
func (h *ActivityHandler) Create(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req activityRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	entryID, err := h.service.Submit(c.Request().Context(), id, ports.ActivityInput{
		Action:   req.Action,
		Resource: req.Resource,
		Details:  req.Details,
		Status:   req.Status,
	}, requestMeta(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, activityCreatedResponse{
		Success: true,
		Message: "Activity logged successfully",
		ID:      entryID,
	})
}
