package invite

import (
	"regexp"
	"testing"
	"time"

	"curryleaf-backend/internal/models"
)

func TestNewCodeFormat(t *testing.T) {
	re := regexp.MustCompile(`^CURRY-ADMIN-[A-Z0-9]{4}-[A-Z0-9]{7}$`)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code := NewCode()
		if !re.MatchString(code) {
			t.Fatalf("code %q does not match format", code)
		}
		if seen[code] {
			t.Fatalf("duplicate code generated: %q", code)
		}
		seen[code] = true
	}
}

func TestStatusOf(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		ic   models.InviteCode
		want Status
	}{
		{"fresh", models.InviteCode{MaxUses: 1, UsedCount: 0, ExpiresAt: now.Add(time.Hour)}, StatusActive},
		{"exhausted", models.InviteCode{MaxUses: 1, UsedCount: 1, ExpiresAt: now.Add(time.Hour)}, StatusUsed},
		{"multi-use with remaining", models.InviteCode{MaxUses: 3, UsedCount: 2, ExpiresAt: now.Add(time.Hour)}, StatusActive},
		// Derived expiry: no write ever marked this row, the clock alone does it.
		{"past expiry unused", models.InviteCode{MaxUses: 1, UsedCount: 0, ExpiresAt: now.Add(-time.Minute)}, StatusExpired},
		{"past expiry and exhausted", models.InviteCode{MaxUses: 1, UsedCount: 1, ExpiresAt: now.Add(-time.Minute)}, StatusUsed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusOf(tt.ic, now); got != tt.want {
				t.Errorf("StatusOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateForRedemption(t *testing.T) {
	now := time.Now()
	ok := models.InviteCode{Code: "CURRY-ADMIN-AAAA-BBBBBBB", MaxUses: 1, ExpiresAt: now.Add(time.Hour)}
	if err := ValidateForRedemption(ok, now); err != nil {
		t.Errorf("active invite should validate: %v", err)
	}
	used := ok
	used.UsedCount = 1
	if err := ValidateForRedemption(used, now); err == nil {
		t.Error("used invite should be rejected")
	}
	expired := ok
	expired.ExpiresAt = now.Add(-time.Hour)
	if err := ValidateForRedemption(expired, now); err == nil {
		t.Error("expired invite should be rejected")
	}
}
