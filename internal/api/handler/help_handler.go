package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sunshine-recruitment/portal/internal/core/domain"
	"github.com/sunshine-recruitment/portal/internal/core/ports"
)

// HelpHandler serves the admin help desk.
type HelpHandler struct {
	service ports.TicketService
}

func NewHelpHandler(service ports.TicketService) *HelpHandler {
	return &HelpHandler{service: service}
}

type ticketRequest struct {
	ProblemType string `json:"problem_type"`
	Subject     string `json:"subject"`
	Message     string `json:"message"`
	Priority    string `json:"priority"`
}

type ticketCreatedResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	TicketID string `json:"ticket_id"`
	Warning  string `json:"warning,omitempty"`
}

type ticketResponse struct {
	Success bool               `json:"success"`
	Ticket  *domain.HelpTicket `json:"ticket"`
}

type ticketPageResponse struct {
	Success    bool                 `json:"success"`
	Tickets    []*domain.HelpTicket `json:"tickets"`
	Total      int64                `json:"total"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
	TotalPages int                  `json:"total_pages"`
}

// Submit handles POST /api/admin/help. A failed e-mail notification does not
// fail the request; it is reported in the warning field.
//
// @Summary      Submit a help ticket
// @Tags         help
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      ticketRequest  true  "Ticket details"
// @Success      201   {object}  ticketCreatedResponse
// @Failure      400   {object}  apiError
// @Failure      401   {object}  apiError
// @Failure      403   {object}  apiError
// @Router       /admin/help [post]
func (h *HelpHandler) Submit(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req ticketRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	receipt, err := h.service.Submit(c.Request().Context(), id, ports.TicketInput{
		ProblemType: req.ProblemType,
		Subject:     req.Subject,
		Message:     req.Message,
		Priority:    req.Priority,
	}, requestMeta(c))
	if err != nil {
		return err
	}

	resp := ticketCreatedResponse{
		Success:  true,
		Message:  "Help ticket submitted successfully. You will receive a response via email.",
		TicketID: receipt.Ticket.ID,
	}
	if receipt.Warning != "" {
		resp.Message = "Help ticket submitted successfully, but email notification failed. Please contact support directly if urgent."
		resp.Warning = receipt.Warning
	}
	return c.JSON(http.StatusCreated, resp)
}

// List handles GET /api/admin/help and returns the caller's own tickets.
//
// @Summary      List my help tickets
// @Tags         help
// @Produce      json
// @Security     CookieAuth
// @Param        page    query     int     false  "Page, 1-based"
// @Param        limit   query     int     false  "Page size"
// @Param        status  query     string  false  "open, in-progress, resolved, closed or all"
// @Success      200     {object}  ticketPageResponse
// @Failure      401     {object}  apiError
// @Router       /admin/help [get]
func (h *HelpHandler) List(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	res, err := h.service.ListMine(c.Request().Context(), id, c.QueryParam("status"), page, limit)
	if err != nil {
		return err
	}

	items := res.Items
	if items == nil {
		items = []*domain.HelpTicket{}
	}
	return c.JSON(http.StatusOK, ticketPageResponse{
		Success:    true,
		Tickets:    items,
		Total:      res.Total,
		Page:       res.Page,
		Limit:      res.PageSize,
		TotalPages: res.TotalPages,
	})
}

// Get handles GET /api/admin/help/:id.
//
// @Summary      Get a help ticket
// @Tags         help
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Ticket ID"
// @Success      200  {object}  ticketResponse
// @Failure      401  {object}  apiError
// @Failure      404  {object}  apiError
// @Router       /admin/help/{id} [get]
func (h *HelpHandler) Get(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	ticket, err := h.service.Get(c.Request().Context(), id, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ticketResponse{Success: true, Ticket: ticket})
}
