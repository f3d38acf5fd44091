package models

// Aggregate is the full in-memory bundle the data manager caches and the store
// persists: restaurant info, buffet settings, the category list and every menu
// item, treated as one unit for full-save operations.
type Aggregate struct {
	RestaurantInfo RestaurantInfo `json:"restaurant_info"`
	Buffet         BuffetSettings `json:"buffet"`
	Categories     []string       `json:"categories"`
	MenuItems      []MenuItem     `json:"menu_items"`
}

// Clone returns a deep copy, used for the snapshot-before-mutate rollback path.
func (a *Aggregate) Clone() *Aggregate {
	cp := &Aggregate{
		RestaurantInfo: a.RestaurantInfo,
		Buffet:         a.Buffet,
		Categories:     make([]string, len(a.Categories)),
		MenuItems:      make([]MenuItem, len(a.MenuItems)),
	}
	copy(cp.Categories, a.Categories)
	copy(cp.MenuItems, a.MenuItems)
	return cp
}

// FindItem returns a pointer into MenuItems for the given id, or nil.
func (a *Aggregate) FindItem(id string) *MenuItem {
	for i := range a.MenuItems {
		if a.MenuItems[i].ID == id {
			return &a.MenuItems[i]
		}
	}
	return nil
}
