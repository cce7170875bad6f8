package projection

import (
	"time"

	"bodyshop-work-order/models"
)

// Derived bundles every display-only value computed from a snapshot
type Derived struct {
	Duration    string       `json:"duration,omitempty"`
	Groups      []ItemGroup  `json:"groups"`
	ListedItems []ListedItem `json:"listedItems"`
}

// Derive computes the derived view of a snapshot as of now
func Derive(snap models.FormSnapshot, now time.Time) Derived {
	duration, _ := ComputeDuration(snap.Dates, now)
	return Derived{
		Duration:    duration,
		Groups:      GroupItemsByType(snap.Items),
		ListedItems: ListItems(snap.Items),
	}
}
