package models

import "time"

// InviteCode gates admin registration. Expiry is never stored as a state:
// it is derived at read time from ExpiresAt (see internal/invite).
type InviteCode struct {
	ID        string     `gorm:"primaryKey;size:36" json:"id"` // uuid
	Code      string     `gorm:"size:30;uniqueIndex;not null" json:"code"`
	CreatedBy uint       `gorm:"not null" json:"created_by"`
	MaxUses   int        `gorm:"not null;default:1" json:"max_uses"`
	UsedCount int        `gorm:"not null;default:0" json:"used_count"`
	UsedBy    *uint      `json:"used_by,omitempty"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `json:"created_at"`
}
