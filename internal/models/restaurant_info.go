package models

import "time"

// RestaurantInfo is a singleton row (ID is always 1).
type RestaurantInfo struct {
	ID          uint   `gorm:"primaryKey" json:"-"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Address     string `gorm:"size:255;not null" json:"address"`
	Phone       string `gorm:"size:30" json:"phone"`
	Email       string `gorm:"size:100" json:"email"`
	Website     string `gorm:"size:255" json:"website"`
	Description string `gorm:"size:1000" json:"description"`

	// One free-text hours string per weekday.
	HoursMonday    string `gorm:"size:100" json:"hours_monday"`
	HoursTuesday   string `gorm:"size:100" json:"hours_tuesday"`
	HoursWednesday string `gorm:"size:100" json:"hours_wednesday"`
	HoursThursday  string `gorm:"size:100" json:"hours_thursday"`
	HoursFriday    string `gorm:"size:100" json:"hours_friday"`
	HoursSaturday  string `gorm:"size:100" json:"hours_saturday"`
	HoursSunday    string `gorm:"size:100" json:"hours_sunday"`

	UpdatedAt time.Time `json:"updated_at"`
}

// HoursMap returns the weekly hours keyed by weekday name, Monday first.
func (r *RestaurantInfo) HoursMap() map[string]string {
	return map[string]string{
		"monday":    r.HoursMonday,
		"tuesday":   r.HoursTuesday,
		"wednesday": r.HoursWednesday,
		"thursday":  r.HoursThursday,
		"friday":    r.HoursFriday,
		"saturday":  r.HoursSaturday,
		"sunday":    r.HoursSunday,
	}
}
