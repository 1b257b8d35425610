package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"fleet-dispatch/internal/data/repository"
	"fleet-dispatch/internal/i18n"
	"fleet-dispatch/pkg/apperr"
	"fleet-dispatch/pkg/utils"

	"github.com/google/uuid"
)

func localeOf(ctx context.Context, override string) string {
	if override != "" {
		return i18n.Normalize(override)
	}
	return i18n.Normalize(utils.GetLocaleFromContext(ctx))
}

func validationError(errs map[string]string) error {
	return apperr.Validation("validation failed: %s", utils.FormatValidationErrors(errs)).WithDetails(errs)
}

func parseID(value, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil, apperr.BadRequest("invalid %s: %s", field, value)
	}
	return id, nil
}

func parseOptionalID(value *string, field string) (*uuid.UUID, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	id, err := parseID(*value, field)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseOptionalDate(value *string, field string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, *value)
	if err != nil {
		return nil, apperr.BadRequest("invalid %s: %s", field, *value)
	}
	return &t, nil
}

func isRowMissing(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}

// calendarDay is the date of now in loc, as UTC midnight like stored dates.
func calendarDay(now time.Time, loc *time.Location) time.Time {
	y, m, d := now.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
