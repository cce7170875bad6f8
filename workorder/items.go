package workorder

import (
	"errors"
	"fmt"
	"strings"

	"bodyshop-work-order/models"
)

var (
	// ErrUnknownField is returned when an update names a field a line item does not have
	ErrUnknownField = errors.New("unknown line item field")
	// ErrUnknownJobType is returned when a type update carries a value outside the enumeration
	ErrUnknownJobType = errors.New("unknown job type")
)

// NewBlankItem creates an unused item of the given type.
// customTitle is kept only for Other items.
func NewBlankItem(ids IDGenerator, jobType models.JobType, customTitle string) models.LineItem {
	item := models.LineItem{ID: ids.NextID(), Type: jobType}
	if jobType == models.JobTypeOther {
		item.CustomTitle = customTitle
	}
	return item
}

// NewItemList returns the initial list: a single blank Repair item
func NewItemList(ids IDGenerator) []models.LineItem {
	return []models.LineItem{NewBlankItem(ids, models.JobTypeRepair, "")}
}

// AppendItem adds a blank item at the end. The new item inherits the type of
// the current last item, and its custom title when that type is Other.
func AppendItem(items []models.LineItem, ids IDGenerator) []models.LineItem {
	seed := models.LineItem{Type: models.JobTypeRepair}
	if len(items) > 0 {
		seed = items[len(items)-1]
	}
	out := cloneItems(items, 1)
	return append(out, NewBlankItem(ids, seed.Type, seed.CustomTitle))
}

// UpdateItem sets one field on the first item matching id and returns the new list.
// An unknown id leaves the list unchanged. Setting a description with visible
// text on the last item appends one blank item that inherits the edited item's type.
// Moving an item off Other drops its custom title.
func UpdateItem(items []models.LineItem, ids IDGenerator, id int64, field models.ItemField, value string) ([]models.LineItem, error) {
	idx := indexOf(items, id)
	if idx < 0 {
		return items, nil
	}

	out := cloneItems(items, 1)
	item := out[idx]
	switch field {
	case models.FieldType:
		jobType, ok := models.ParseJobType(value)
		if !ok {
			return items, fmt.Errorf("%w: %q", ErrUnknownJobType, value)
		}
		item.Type = jobType
		if jobType != models.JobTypeOther {
			item.CustomTitle = ""
		}
	case models.FieldCustomTitle:
		item.CustomTitle = value
	case models.FieldDescription:
		item.Description = value
	case models.FieldPartNumber:
		item.PartNumber = value
	default:
		return items, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	out[idx] = item

	if field == models.FieldDescription && strings.TrimSpace(value) != "" && idx == len(out)-1 {
		out = append(out, NewBlankItem(ids, item.Type, item.CustomTitle))
	}
	return out, nil
}

// RemoveItem deletes the first item matching id. Removing the only item
// leaves a single fresh blank item instead of an empty list.
func RemoveItem(items []models.LineItem, ids IDGenerator, id int64) []models.LineItem {
	idx := indexOf(items, id)
	if idx < 0 {
		return items
	}

	out := make([]models.LineItem, 0, len(items))
	out = append(out, items[:idx]...)
	out = append(out, items[idx+1:]...)
	if len(out) == 0 {
		return NewItemList(ids)
	}
	return out
}

func indexOf(items []models.LineItem, id int64) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

// cloneItems copies items into a new slice with room for extra appends
func cloneItems(items []models.LineItem, extra int) []models.LineItem {
	out := make([]models.LineItem, len(items), len(items)+extra)
	copy(out, items)
	return out
}
