package models

import "time"

// MenuBackup is an append-only snapshot of the full aggregate, written before
// destructive or bulk operations. Snapshots are never updated in place.
type MenuBackup struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"` // uuid
	Label     string    `gorm:"size:100" json:"label"`
	Payload   string    `gorm:"type:jsonb;not null" json:"-"`
	ItemCount int       `gorm:"not null" json:"item_count"`
	CreatedAt time.Time `json:"created_at"`
}
