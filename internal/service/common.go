package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/thallyson03/ceapdesk/internal/events"
	"github.com/thallyson03/ceapdesk/internal/sla"
	apperrors "github.com/thallyson03/ceapdesk/pkg/util/errorutil"
)

// notFoundOr turns a missing row into a NOT_FOUND error and leaves every other
// error for the transport layer to map.
func notFoundOr(err error, resource, id string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound(resource, map[string]any{"id": id})
	}
	return err
}

// engineError reports a walk that hit the iteration cap as an internal error.
func engineError(err error) error {
	if errors.Is(err, sla.ErrCalendarExhausted) {
		return apperrors.NewInternalError(err)
	}
	return err
}

func publishEvent(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, event events.Event) {
	if dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if err := dispatcher.Publish(ctx, event); err != nil && logger != nil {
		logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
