package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/thallyson03/ceapdesk/internal/api/dto"
	"github.com/thallyson03/ceapdesk/internal/auth"
	"github.com/thallyson03/ceapdesk/internal/domain"
	"github.com/thallyson03/ceapdesk/internal/service"
	apperrors "github.com/thallyson03/ceapdesk/pkg/util/errorutil"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.SectorID == "" || req.Title == "" {
		return apperrors.NewValidationError("sector_id and title required", nil)
	}

	view, err := h.service.CreateTicket(c.UserContext(), principal.User.ID, service.TicketCreateInput{
		SectorID:    req.SectorID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ticketResponse(view)})
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	views, err := h.service.ListTickets(c.UserContext(), parseTicketQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponses(views)})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	view, err := h.service.GetTicket(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(view)})
}

// ListAlerts GET /tickets/sla/alerts.
func (h *TicketsHandler) ListAlerts(c *fiber.Ctx) error {
	views, err := h.service.ListAlerts(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponses(views)})
}

func parseTicketQuery(c *fiber.Ctx) service.TicketListFilter {
	filter := service.TicketListFilter{}
	if sectorID := c.Query("sector_id"); sectorID != "" {
		filter.SectorID = &sectorID
	}
	if requesterID := c.Query("requester_id"); requesterID != "" {
		filter.RequesterID = &requesterID
	}
	for _, s := range splitList(c.Query("status")) {
		filter.Statuses = append(filter.Statuses, domain.TicketStatus(s))
	}
	for _, s := range splitList(c.Query("sla_status")) {
		filter.SLAStatuses = append(filter.SLAStatuses, domain.SLAStatus(s))
	}
	filter.CreatedFrom = parseTime(c.Query("created_from"))
	filter.CreatedTo = parseTime(c.Query("created_to"))

	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize
	return filter
}

func ticketResponses(views []service.TicketView) []dto.TicketResponse {
	items := make([]dto.TicketResponse, 0, len(views))
	for i := range views {
		items = append(items, ticketResponse(&views[i]))
	}
	return items
}

func ticketResponse(v *service.TicketView) dto.TicketResponse {
	return dto.TicketResponse{
		ID:                    v.ID,
		ExternalKey:           v.ExternalKey,
		RequesterID:           v.RequesterID,
		SectorID:              v.SectorID,
		Title:                 v.Title,
		Description:           v.Description,
		Status:                v.Status,
		Priority:              v.Priority,
		BusinessDaysAllotted:  v.BusinessDaysAllotted,
		DueDate:               v.DueDate,
		SLAStatus:             v.SLAStatus,
		RemainingBusinessDays: v.RemainingBusinessDays,
		CreatedAt:             v.CreatedAt,
		UpdatedAt:             v.UpdatedAt,
	}
}
