package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/thallyson03/ceapdesk/internal/api/dto"
	"github.com/thallyson03/ceapdesk/internal/domain"
	"github.com/thallyson03/ceapdesk/internal/service"
	apperrors "github.com/thallyson03/ceapdesk/pkg/util/errorutil"
)

// HolidaysHandler manages the holiday calendar.
type HolidaysHandler struct {
	service *service.HolidayService
}

// NewHolidaysHandler constructs handler.
func NewHolidaysHandler(holidayService *service.HolidayService) *HolidaysHandler {
	return &HolidaysHandler{service: holidayService}
}

// List GET /holidays?year=.
func (h *HolidaysHandler) List(c *fiber.Ctx) error {
	var year *int
	if raw := c.Query("year"); raw != "" {
		y, err := parseYear(raw)
		if err != nil {
			return err
		}
		year = &y
	}
	holidays, err := h.service.List(c.UserContext(), year)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": holidayResponses(holidays)})
}

// ListActiveByYear GET /holidays/year/:year.
func (h *HolidaysHandler) ListActiveByYear(c *fiber.Ctx) error {
	year, err := parseYear(c.Params("year"))
	if err != nil {
		return err
	}
	holidays, err := h.service.ListActiveByYear(c.UserContext(), year)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": holidayResponses(holidays)})
}

// Create POST /holidays.
func (h *HolidaysHandler) Create(c *fiber.Ctx) error {
	input, err := parseHolidayRequest(c)
	if err != nil {
		return err
	}
	holiday, err := h.service.Create(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": holidayResponse(holiday)})
}

// Update PUT /holidays/:id.
func (h *HolidaysHandler) Update(c *fiber.Ctx) error {
	input, err := parseHolidayRequest(c)
	if err != nil {
		return err
	}
	holiday, err := h.service.Update(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": holidayResponse(holiday)})
}

// Delete DELETE /holidays/:id.
func (h *HolidaysHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// SeedDefaults POST /holidays/defaults/:year.
func (h *HolidaysHandler) SeedDefaults(c *fiber.Ctx) error {
	year, err := parseYear(c.Params("year"))
	if err != nil {
		return err
	}
	result, err := h.service.AddDefaultHolidays(c.UserContext(), year)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.SeedHolidaysResponse{
		Year:     result.Year,
		Fixed:    len(result.Fixed),
		Movable:  len(result.Movable),
		Inserted: holidayResponses(result.All()),
	}})
}

// CheckBusinessDay GET /holidays/business-day/:date.
func (h *HolidaysHandler) CheckBusinessDay(c *fiber.Ctx) error {
	date, err := parseCivilDate("date", c.Params("date"))
	if err != nil {
		return err
	}
	check, err := h.service.CheckBusinessDay(c.UserContext(), date)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.BusinessDayResponse{
		Date:          check.Date.Format(time.DateOnly),
		IsBusinessDay: check.IsBusinessDay,
		IsWeekend:     check.IsWeekend,
		IsHoliday:     check.IsHoliday,
	}})
}

func parseHolidayRequest(c *fiber.Ctx) (service.HolidayInput, error) {
	var req dto.HolidayRequest
	if err := c.BodyParser(&req); err != nil {
		return service.HolidayInput{}, apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Date == "" {
		return service.HolidayInput{}, apperrors.NewValidationError("date is required", nil)
	}
	date, err := parseCivilDate("date", req.Date)
	if err != nil {
		return service.HolidayInput{}, err
	}
	return service.HolidayInput{
		Name:        req.Name,
		Date:        date,
		Kind:        req.Kind,
		Active:      req.Active,
		Description: req.Description,
	}, nil
}

func holidayResponses(holidays []domain.Holiday) []dto.HolidayResponse {
	items := make([]dto.HolidayResponse, 0, len(holidays))
	for i := range holidays {
		items = append(items, holidayResponse(&holidays[i]))
	}
	return items
}

func holidayResponse(h *domain.Holiday) dto.HolidayResponse {
	return dto.HolidayResponse{
		ID:          h.ID,
		Name:        h.Name,
		Date:        h.Date.Format(time.DateOnly),
		Kind:        h.Kind,
		Active:      h.Active,
		Description: h.Description,
		CreatedAt:   h.CreatedAt,
		UpdatedAt:   h.UpdatedAt,
	}
}
