// Package invite holds the invite-code rules: code generation in the fixed
// human-readable format and derived status. Status is never stored; it is
// computed from the row and the clock so readers never disagree because of a
// missed write.
package invite

import (
	"crypto/rand"
	"fmt"
	"time"

	"curryleaf-backend/internal/models"
)

const (
	// CURRY-ADMIN-XXXX-XXXXXXX, X drawn from uppercase alphanumerics.
	codePrefix   = "CURRY-ADMIN"
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// DefaultExpiry is the fixed default lifetime of a new invite.
	DefaultExpiry = 168 * time.Hour

	DefaultMaxUses = 1
)

// NewCode generates a fresh invite code string.
func NewCode() string {
	return fmt.Sprintf("%s-%s-%s", codePrefix, randomSegment(4), randomSegment(7))
}

func randomSegment(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	for i := range buf {
		buf[i] = codeAlphabet[int(buf[i])%len(codeAlphabet)]
	}
	return string(buf)
}

// Status is the derived lifecycle state of an invite code.
type Status string

const (
	StatusActive  Status = "active"
	StatusUsed    Status = "used"
	StatusExpired Status = "expired"
)

// StatusOf derives the state of an invite at the given moment. Exhausted use
// counts win over expiry so a fully-redeemed code reads "used" even after its
// expiry passes.
func StatusOf(ic models.InviteCode, now time.Time) Status {
	if ic.UsedCount >= ic.MaxUses {
		return StatusUsed
	}
	if now.After(ic.ExpiresAt) {
		return StatusExpired
	}
	return StatusActive
}

// ValidateForRedemption returns an error when the invite cannot be redeemed
// right now.
func ValidateForRedemption(ic models.InviteCode, now time.Time) error {
	switch StatusOf(ic, now) {
	case StatusUsed:
		return fmt.Errorf("invite code %s has already been used", ic.Code)
	case StatusExpired:
		return fmt.Errorf("invite code %s has expired", ic.Code)
	}
	return nil
}
