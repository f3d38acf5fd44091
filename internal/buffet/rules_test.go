package buffet

import (
	"strings"
	"testing"
	"time"

	"curryleaf-backend/internal/models"
)

func validSettings() models.BuffetSettings {
	return models.BuffetSettings{
		Price:       15.99,
		Hours:       "12:00 PM - 3:00 PM",
		Description: "Saturday lunch buffet",
		IsActive:    true,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*models.BuffetSettings)
		wantField string
	}{
		{"valid", func(s *models.BuffetSettings) {}, ""},
		{"zero price", func(s *models.BuffetSettings) { s.Price = 0 }, "price"},
		{"price over cap", func(s *models.BuffetSettings) { s.Price = 1000 }, "price"},
		{"empty hours", func(s *models.BuffetSettings) { s.Hours = " " }, "hours"},
		{"long hours", func(s *models.BuffetSettings) { s.Hours = strings.Repeat("x", 51) }, "hours"},
		{"empty description", func(s *models.BuffetSettings) { s.Description = "" }, "description"},
		{"long description", func(s *models.BuffetSettings) { s.Description = strings.Repeat("x", 201) }, "description"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSettings()
			tt.mutate(&s)
			errs := Validate(s)
			if tt.wantField == "" {
				if len(errs) != 0 {
					t.Fatalf("Validate() = %v, want no errors", errs)
				}
				return
			}
			found := false
			for _, e := range errs {
				if e.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("Validate() = %v, want error on %q", errs, tt.wantField)
			}
		})
	}
}

func TestParseHours(t *testing.T) {
	start, end, err := ParseHours("12:00 PM - 3:00 PM")
	if err != nil {
		t.Fatalf("ParseHours: %v", err)
	}
	if start != 12*60 || end != 15*60 {
		t.Errorf("ParseHours = (%d, %d), want (720, 900)", start, end)
	}

	if _, _, err := ParseHours("noon to three"); err == nil {
		t.Error("free text without a range should fail")
	}
	if _, _, err := ParseHours("12:00 - 3:00"); err == nil {
		t.Error("missing AM/PM should fail")
	}
}

func TestIsActiveNow(t *testing.T) {
	// 2026-08-29 is a Saturday.
	saturday := func(hour, min int) time.Time {
		return time.Date(2026, 8, 29, hour, min, 0, 0, time.UTC)
	}
	friday := time.Date(2026, 8, 28, 13, 0, 0, 0, time.UTC)

	s := validSettings()
	tests := []struct {
		name string
		s    models.BuffetSettings
		now  time.Time
		want bool
	}{
		{"saturday during window", s, saturday(13, 0), true},
		{"saturday at open", s, saturday(12, 0), true},
		{"saturday at close", s, saturday(15, 0), false},
		{"saturday before open", s, saturday(11, 59), false},
		{"friday during window hours", s, friday, false},
		{"switched off", func() models.BuffetSettings { c := s; c.IsActive = false; return c }(), saturday(13, 0), false},
		{"garbage hours", func() models.BuffetSettings { c := s; c.Hours = "whenever"; return c }(), saturday(13, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsActiveNow(tt.s, tt.now); got != tt.want {
				t.Errorf("IsActiveNow() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDiff(t *testing.T) {
	old := validSettings()
	updated := old
	updated.Price = 17.99
	updated.IsActive = false

	lines := Diff(old, updated)
	if len(lines) != 2 {
		t.Fatalf("Diff() = %v, want 2 lines", lines)
	}
	if lines[0] != "price: $15.99 -> $17.99" {
		t.Errorf("price line = %q", lines[0])
	}
	if lines[1] != "buffet switched off" {
		t.Errorf("active line = %q", lines[1])
	}

	if lines := Diff(old, old); len(lines) != 0 {
		t.Errorf("Diff(same, same) = %v, want empty", lines)
	}
}
