package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/thallyson03/ceapdesk/internal/api/dto"
	"github.com/thallyson03/ceapdesk/internal/domain"
	"github.com/thallyson03/ceapdesk/internal/service"
	apperrors "github.com/thallyson03/ceapdesk/pkg/util/errorutil"
)

// SectorsHandler manages sectors.
type SectorsHandler struct {
	service *service.SectorService
}

// NewSectorsHandler constructs handler.
func NewSectorsHandler(sectorService *service.SectorService) *SectorsHandler {
	return &SectorsHandler{service: sectorService}
}

// Create POST /sectors.
func (h *SectorsHandler) Create(c *fiber.Ctx) error {
	var req dto.SectorRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	sector, err := h.service.Create(c.UserContext(), req.Name)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": sectorResponse(sector)})
}

// List GET /sectors.
func (h *SectorsHandler) List(c *fiber.Ctx) error {
	sectors, err := h.service.List(c.UserContext(), c.QueryBool("active", false))
	if err != nil {
		return err
	}
	items := make([]dto.SectorResponse, 0, len(sectors))
	for i := range sectors {
		items = append(items, sectorResponse(&sectors[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func sectorResponse(s *domain.Sector) dto.SectorResponse {
	return dto.SectorResponse{ID: s.ID, Name: s.Name, Active: s.Active, CreatedAt: s.CreatedAt}
}
