package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/thallyson03/ceapdesk/internal/sla"
	apperrors "github.com/thallyson03/ceapdesk/pkg/util/errorutil"
)

// parseCivilDate reads a YYYY-MM-DD value as a calendar date at UTC midnight.
func parseCivilDate(field, val string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(val))
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("invalid date, expected YYYY-MM-DD", map[string]any{field: val})
	}
	return t, nil
}

// parseInstant accepts RFC3339 or a bare YYYY-MM-DD, which is read as
// midnight in the calendar's timezone.
func parseInstant(engine *sla.Engine, field, val string) (time.Time, error) {
	val = strings.TrimSpace(val)
	if t, err := time.Parse(time.RFC3339, val); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.DateOnly, val); err == nil {
		return engine.Midnight(t), nil
	}
	return time.Time{}, apperrors.NewValidationError("invalid date, expected RFC3339 or YYYY-MM-DD", map[string]any{field: val})
}

func parseYear(val string) (int, error) {
	year, err := strconv.Atoi(val)
	if err != nil {
		return 0, apperrors.NewValidationError("invalid year", map[string]any{"year": val})
	}
	return year, nil
}

func parseTime(val string) *time.Time {
	if val == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return nil
	}
	return &t
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func splitList(val string) []string {
	if val == "" {
		return nil
	}
	out := []string{}
	for _, part := range strings.Split(val, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
