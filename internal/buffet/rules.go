// Package buffet holds the pure rules for the Saturday buffet: validation, the
// "is the buffet open right now" computation and a human-readable settings diff.
package buffet

import (
	"fmt"
	"strings"
	"time"

	"curryleaf-backend/internal/models"
)

const (
	MaxPrice             = 999.99
	MaxHoursLength       = 50
	MaxDescriptionLength = 200
)

func Validate(s models.BuffetSettings) []models.FieldError {
	var errs []models.FieldError

	if s.Price <= 0 {
		errs = append(errs, models.FieldError{Field: "price", Message: "price must be greater than 0"})
	} else if s.Price > MaxPrice {
		errs = append(errs, models.FieldError{Field: "price", Message: fmt.Sprintf("price must be at most %.2f", MaxPrice)})
	}

	hours := strings.TrimSpace(s.Hours)
	if hours == "" {
		errs = append(errs, models.FieldError{Field: "hours", Message: "hours are required"})
	} else if len(hours) > MaxHoursLength {
		errs = append(errs, models.FieldError{Field: "hours", Message: fmt.Sprintf("hours must be at most %d characters", MaxHoursLength)})
	}

	desc := strings.TrimSpace(s.Description)
	if desc == "" {
		errs = append(errs, models.FieldError{Field: "description", Message: "description is required"})
	} else if len(desc) > MaxDescriptionLength {
		errs = append(errs, models.FieldError{Field: "description", Message: fmt.Sprintf("description must be at most %d characters", MaxDescriptionLength)})
	}

	return errs
}

// parseClock parses a 12-hour clock like "12:00 PM" or "3:15 pm" into minutes
// since midnight.
func parseClock(s string) (int, error) {
	t, err := time.Parse("3:04 PM", strings.ToUpper(strings.TrimSpace(s)))
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ParseHours splits a free-text range like "12:00 PM - 3:00 PM" into start and
// end minutes since midnight.
func ParseHours(hours string) (start, end int, err error) {
	parts := strings.Split(hours, "-")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("hours %q: expected a single \"start - end\" range", hours)
	}
	if start, err = parseClock(parts[0]); err != nil {
		return 0, 0, fmt.Errorf("hours %q: bad start time: %w", hours, err)
	}
	if end, err = parseClock(parts[1]); err != nil {
		return 0, 0, fmt.Errorf("hours %q: bad end time: %w", hours, err)
	}
	return start, end, nil
}

// IsActiveNow reports whether the buffet is being served at the given moment.
// The buffet runs on Saturdays only; a settings row that is switched off or has
// an unparseable hours string is never active.
func IsActiveNow(s models.BuffetSettings, now time.Time) bool {
	if !s.IsActive || now.Weekday() != time.Saturday {
		return false
	}
	start, end, err := ParseHours(s.Hours)
	if err != nil {
		return false
	}
	minute := now.Hour()*60 + now.Minute()
	return minute >= start && minute < end
}

// Diff produces human-readable changelog lines between two settings snapshots.
// An empty result means nothing changed.
func Diff(old, new models.BuffetSettings) []string {
	var lines []string
	if old.Price != new.Price {
		lines = append(lines, fmt.Sprintf("price: $%.2f -> $%.2f", old.Price, new.Price))
	}
	if old.Hours != new.Hours {
		lines = append(lines, fmt.Sprintf("hours: %q -> %q", old.Hours, new.Hours))
	}
	if old.Description != new.Description {
		lines = append(lines, fmt.Sprintf("description: %q -> %q", old.Description, new.Description))
	}
	if old.IsActive != new.IsActive {
		if new.IsActive {
			lines = append(lines, "buffet switched on")
		} else {
			lines = append(lines, "buffet switched off")
		}
	}
	return lines
}
