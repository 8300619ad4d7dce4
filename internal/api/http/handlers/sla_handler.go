package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/thallyson03/ceapdesk/internal/api/dto"
	"github.com/thallyson03/ceapdesk/internal/domain"
	"github.com/thallyson03/ceapdesk/internal/service"
	apperrors "github.com/thallyson03/ceapdesk/pkg/util/errorutil"
)

// SLAHandler serves SLA policies and deadline computations.
type SLAHandler struct {
	sla      *service.SLAService
	policies *service.SLAPolicyService
	now      func() time.Time
}

// NewSLAHandler constructs handler.
func NewSLAHandler(slaService *service.SLAService, policyService *service.SLAPolicyService) *SLAHandler {
	return &SLAHandler{sla: slaService, policies: policyService, now: time.Now}
}

// ListPolicies GET /sla/policies.
func (h *SLAHandler) ListPolicies(c *fiber.Ctx) error {
	policies, err := h.policies.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.SLAPolicyResponse, 0, len(policies))
	for i := range policies {
		items = append(items, policyResponse(&policies[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetSectorPolicy GET /sla/policies/sector/:sectorId.
func (h *SLAHandler) GetSectorPolicy(c *fiber.Ctx) error {
	policy, err := h.policies.GetActiveForSector(c.UserContext(), c.Params("sectorId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": policyResponse(policy)})
}

// CreatePolicy POST /sla/policies.
func (h *SLAHandler) CreatePolicy(c *fiber.Ctx) error {
	var req dto.SLAPolicyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	policy, err := h.policies.Create(c.UserContext(), service.SLAPolicyInput{
		SectorID:     req.SectorID,
		BusinessDays: req.BusinessDays,
		Description:  req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": policyResponse(policy)})
}

// UpdatePolicy PUT /sla/policies/:id.
func (h *SLAHandler) UpdatePolicy(c *fiber.Ctx) error {
	var req dto.SLAPolicyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	policy, err := h.policies.Update(c.UserContext(), c.Params("id"), service.SLAPolicyInput{
		BusinessDays: req.BusinessDays,
		Description:  req.Description,
		Active:       req.Active,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": policyResponse(policy)})
}

// DeletePolicy DELETE /sla/policies/:id.
func (h *SLAHandler) DeletePolicy(c *fiber.Ctx) error {
	if err := h.policies.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// DueDate GET /sla/due-date?start=&business_days=.
func (h *SLAHandler) DueDate(c *fiber.Ctx) error {
	start := h.now()
	if raw := c.Query("start"); raw != "" {
		parsed, err := parseInstant(h.sla.Engine(), "start", raw)
		if err != nil {
			return err
		}
		start = parsed
	}
	days, err := strconv.Atoi(c.Query("business_days"))
	if err != nil {
		return apperrors.NewValidationError("business_days must be an integer", map[string]any{
			"business_days": c.Query("business_days"),
		})
	}
	due, err := h.sla.DueDate(c.UserContext(), start, days)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.DueDateResponse{Start: start, BusinessDays: days, DueDate: due}})
}

// Remaining GET /sla/remaining?due=&as_of=.
func (h *SLAHandler) Remaining(c *fiber.Ctx) error {
	if c.Query("due") == "" {
		return apperrors.NewValidationError("due is required", nil)
	}
	due, err := parseInstant(h.sla.Engine(), "due", c.Query("due"))
	if err != nil {
		return err
	}
	asOf := h.now()
	if raw := c.Query("as_of"); raw != "" {
		if asOf, err = parseInstant(h.sla.Engine(), "as_of", raw); err != nil {
			return err
		}
	}
	r, err := h.sla.Remaining(c.UserContext(), due, asOf)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.RemainingResponse{
		DueDate:       r.Due,
		AsOf:          r.AsOf,
		RemainingDays: r.BusinessDays,
		Status:        r.Status,
	}})
}

func policyResponse(p *domain.SLAPolicy) dto.SLAPolicyResponse {
	return dto.SLAPolicyResponse{
		ID:           p.ID,
		SectorID:     p.SectorID,
		BusinessDays: p.BusinessDays,
		Description:  p.Description,
		Active:       p.Active,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
