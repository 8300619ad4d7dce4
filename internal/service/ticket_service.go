package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/thallyson03/ceapdesk/internal/domain"
	"github.com/thallyson03/ceapdesk/internal/events"
	"github.com/thallyson03/ceapdesk/internal/observability"
	"github.com/thallyson03/ceapdesk/internal/repository"
	apperrors "github.com/thallyson03/ceapdesk/pkg/util/errorutil"
)

const alertScanLimit = 500

// TicketService opens tickets with an SLA deadline and keeps their stored SLA
// status current whenever they are read.
type TicketService struct {
	tickets    repository.TicketRepository
	sectors    repository.SectorRepository
	sla        *SLAService
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	now        func() time.Time
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	SectorRepo repository.SectorRepository
	SLA        *SLAService
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
	Clock      func() time.Time
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	SectorID    string
	Title       string
	Description string
	Priority    domain.TicketPriority
}

// TicketListFilter describes listing filters.
type TicketListFilter struct {
	RequesterID *string
	SectorID    *string
	Statuses    []domain.TicketStatus
	SLAStatuses []domain.SLAStatus
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

// TicketView is a ticket with its freshly computed remaining business days.
type TicketView struct {
	domain.Ticket
	RemainingBusinessDays int
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	return &TicketService{
		tickets:    deps.TicketRepo,
		sectors:    deps.SectorRepo,
		sla:        deps.SLA,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     logger,
		now:        clock,
	}
}

// CreateTicket opens a ticket. The sector's active policy, or the default, is
// snapshotted into the ticket together with the computed due date.
func (s *TicketService) CreateTicket(ctx context.Context, requesterID string, input TicketCreateInput) (*TicketView, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title is required", nil)
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.TicketPriorityMedium
	}
	if !validPriority(priority) {
		return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": priority})
	}

	sector, err := s.sectors.GetByID(ctx, input.SectorID)
	if err != nil {
		return nil, notFoundOr(err, "sector", input.SectorID)
	}
	if !sector.Active {
		return nil, apperrors.NewValidationError("sector inactive", map[string]any{"sector_id": sector.ID})
	}

	ctx, span := observability.Tracer().Start(ctx, "TicketService.CreateTicket")
	defer span.End()

	days, _, err := s.sla.BusinessDaysForSector(ctx, sector.ID)
	if err != nil {
		return nil, err
	}
	openedAt := s.now()
	due, err := s.sla.DueDate(ctx, openedAt, days)
	if err != nil {
		return nil, err
	}
	remaining, err := s.sla.Remaining(ctx, due, openedAt)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("business_days", days), attribute.String("sla_status", string(remaining.Status)))

	ticket := &domain.Ticket{
		ExternalKey:          generateTicketKey(),
		RequesterID:          requesterID,
		SectorID:             sector.ID,
		Title:                title,
		Description:          strings.TrimSpace(input.Description),
		Status:               domain.TicketStatusOpen,
		Priority:             priority,
		BusinessDaysAllotted: days,
		DueDate:              due,
		SLAStatus:            remaining.Status,
		CreatedAt:            openedAt,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, fmt.Errorf("create ticket: %w", err)
	}

	s.logger.Info("ticket created",
		zap.String("ticket_id", ticket.ID),
		zap.String("sector_id", ticket.SectorID),
		zap.Int("business_days", days),
		zap.Time("due_date", due))
	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		ActorID:  &requesterID,
		Payload: events.TicketCreatedPayload{
			SectorID:     ticket.SectorID,
			Priority:     ticket.Priority,
			Title:        ticket.Title,
			BusinessDays: days,
			DueDate:      due,
			SLAStatus:    ticket.SLAStatus,
		},
	})
	return &TicketView{Ticket: *ticket, RemainingBusinessDays: remaining.BusinessDays}, nil
}

// ListTickets returns tickets matching filter with their SLA status refreshed.
// Status filters apply to the stored value before the refresh.
func (s *TicketService) ListTickets(ctx context.Context, filter TicketListFilter) ([]TicketView, error) {
	tickets, err := s.tickets.ListWithFilter(ctx, repository.TicketFilter{
		RequesterID: filter.RequesterID,
		SectorID:    filter.SectorID,
		Statuses:    filter.Statuses,
		SLAStatuses: filter.SLAStatuses,
		CreatedFrom: filter.CreatedFrom,
		CreatedTo:   filter.CreatedTo,
		Limit:       filter.Limit,
		Offset:      filter.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return s.refreshAll(ctx, tickets)
}

// GetTicket returns one ticket with its SLA status refreshed.
func (s *TicketService) GetTicket(ctx context.Context, id string) (*TicketView, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "ticket", id)
	}
	view, err := s.refresh(ctx, ticket, s.now())
	if err != nil {
		return nil, err
	}
	return view, nil
}

// ListAlerts returns unresolved tickets that are near due or overdue, soonest
// deadline first. Every candidate is refreshed before it is filtered.
func (s *TicketService) ListAlerts(ctx context.Context) ([]TicketView, error) {
	ctx, span := observability.Tracer().Start(ctx, "TicketService.ListAlerts")
	defer span.End()

	tickets, err := s.tickets.ListWithFilter(ctx, repository.TicketFilter{
		Statuses:   []domain.TicketStatus{domain.TicketStatusOpen, domain.TicketStatusInProgress},
		OrderByDue: true,
		Limit:      alertScanLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	views, err := s.refreshAll(ctx, tickets)
	if err != nil {
		return nil, err
	}

	alerts := []TicketView{}
	for _, v := range views {
		if v.SLAStatus == domain.SLAStatusNearDue || v.SLAStatus == domain.SLAStatusOverdue {
			alerts = append(alerts, v)
		}
	}
	span.SetAttributes(attribute.Int("alerts", len(alerts)))
	return alerts, nil
}

func (s *TicketService) refreshAll(ctx context.Context, tickets []domain.Ticket) ([]TicketView, error) {
	asOf := s.now()
	views := make([]TicketView, 0, len(tickets))
	for i := range tickets {
		view, err := s.refresh(ctx, &tickets[i], asOf)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// refresh recomputes the ticket's SLA status and persists it when it changed.
func (s *TicketService) refresh(ctx context.Context, ticket *domain.Ticket, asOf time.Time) (*TicketView, error) {
	remaining, err := s.sla.Remaining(ctx, ticket.DueDate, asOf)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordSLAStatus(remaining.Status)

	if remaining.Status != ticket.SLAStatus {
		previous := ticket.SLAStatus
		if err := s.tickets.UpdateSLAStatus(ctx, ticket.ID, remaining.Status); err != nil {
			return nil, fmt.Errorf("update sla status: %w", err)
		}
		ticket.SLAStatus = remaining.Status
		s.metrics.RecordSLATransition(previous, remaining.Status)
		s.logger.Info("sla status changed",
			zap.String("ticket_id", ticket.ID),
			zap.String("from", string(previous)),
			zap.String("to", string(remaining.Status)),
			zap.Int("remaining_business_days", remaining.BusinessDays))
		publishEvent(ctx, s.dispatcher, s.logger, events.Event{
			Type:     events.EventSLAStatusChanged,
			TicketID: ticket.ID,
			Payload: events.SLAStatusChangedPayload{
				OldStatus:     previous,
				NewStatus:     remaining.Status,
				RemainingDays: remaining.BusinessDays,
				DueDate:       ticket.DueDate,
			},
		})
	}
	return &TicketView{Ticket: *ticket, RemainingBusinessDays: remaining.BusinessDays}, nil
}

func validPriority(p domain.TicketPriority) bool {
	switch p {
	case domain.TicketPriorityLow, domain.TicketPriorityMedium, domain.TicketPriorityHigh, domain.TicketPriorityUrgent:
		return true
	}
	return false
}

func generateTicketKey() string {
	return "TCK-" + strings.ToUpper(uuid.NewString()[:8])
}
