package models

import "strings"

// JobType is the category of a line item
type JobType string

const (
	JobTypeRepair  JobType = "Repair"
	JobTypeReplace JobType = "Replace"
	JobTypeBlend   JobType = "Blend"
	JobTypePolish  JobType = "Polish/Touch up"
	JobTypeOther   JobType = "Other"
)

// JobTypes lists every job type in selector order
var JobTypes = []JobType{JobTypeRepair, JobTypeReplace, JobTypeBlend, JobTypePolish, JobTypeOther}

// ParseJobType maps a raw type value onto the closed enumeration.
// "Polish" and "Touch up" spellings are accepted as aliases for Polish/Touch up.
func ParseJobType(raw string) (JobType, bool) {
	trimmed := strings.TrimSpace(raw)
	for _, t := range JobTypes {
		if strings.EqualFold(trimmed, string(t)) {
			return t, true
		}
	}
	switch strings.ToLower(trimmed) {
	case "polish", "touch up", "touch-up", "polish/touch-up":
		return JobTypePolish, true
	}
	return "", false
}

// ItemField names an editable field of a line item
type ItemField string

const (
	FieldType        ItemField = "type"
	FieldCustomTitle ItemField = "customTitle"
	FieldDescription ItemField = "desc"
	FieldPartNumber  ItemField = "partNum"
)

// LineItem represents one job entry on a work order
type LineItem struct {
	ID          int64   `json:"id,string"`
	Type        JobType `json:"type"`
	CustomTitle string  `json:"customTitle"`
	Description string  `json:"desc"`
	PartNumber  string  `json:"partNum,omitempty"`
}

// IsBlank reports whether the item has no usable description
func (i LineItem) IsBlank() bool {
	return strings.TrimSpace(i.Description) == ""
}
