package workorder

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"bodyshop-work-order/models"
)

// sequenceIDs hands out 1, 2, 3, ...
type sequenceIDs struct {
	next int64
}

func (s *sequenceIDs) NextID() int64 {
	s.next++
	return s.next
}

func TestNewItemListHasOneBlankRepair(t *testing.T) {
	items := NewItemList(&sequenceIDs{})
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
	if items[0].Type != models.JobTypeRepair || !items[0].IsBlank() {
		t.Errorf("initial item = %+v, want blank Repair", items[0])
	}
}

func TestAppendItemInheritsLastType(t *testing.T) {
	ids := &sequenceIDs{}
	items := []models.LineItem{
		{ID: ids.NextID(), Type: models.JobTypeRepair, Description: "bumper"},
		{ID: ids.NextID(), Type: models.JobTypeOther, CustomTitle: "Detail", Description: "interior"},
	}

	out := AppendItem(items, ids)
	if len(out) != 3 {
		t.Fatalf("len(out) = %d, want 3", len(out))
	}
	last := out[2]
	if last.Type != models.JobTypeOther || last.CustomTitle != "Detail" || last.Description != "" {
		t.Errorf("appended item = %+v, want blank Other titled Detail", last)
	}
	if len(items) != 2 {
		t.Errorf("input slice was modified: len = %d", len(items))
	}
}

func TestAppendItemDropsTitleForNonOther(t *testing.T) {
	ids := &sequenceIDs{}
	items := []models.LineItem{{ID: ids.NextID(), Type: models.JobTypeBlend, CustomTitle: "leftover"}}

	out := AppendItem(items, ids)
	if out[1].Type != models.JobTypeBlend || out[1].CustomTitle != "" {
		t.Errorf("appended item = %+v, want blank Blend without title", out[1])
	}
}

func TestUpdateDescriptionOnLastItemAutoAdds(t *testing.T) {
	ids := &sequenceIDs{}
	items := NewItemList(ids)
	items, _ = UpdateItem(items, ids, items[0].ID, models.FieldType, "Replace")

	out, err := UpdateItem(items, ids, items[0].ID, models.FieldDescription, "Front bumper cover")
	if err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}
	if out[0].Description != "Front bumper cover" {
		t.Errorf("description = %q", out[0].Description)
	}
	if !out[1].IsBlank() || out[1].Type != models.JobTypeReplace {
		t.Errorf("trailing item = %+v, want blank Replace", out[1])
	}

	// Editing the same item again must not add another row
	out2, _ := UpdateItem(out, ids, out[0].ID, models.FieldDescription, "Front bumper cover L")
	if len(out2) != 2 {
		t.Errorf("len after second edit = %d, want 2", len(out2))
	}
}

func TestUpdateDescriptionOnNonLastItemDoesNotAutoAdd(t *testing.T) {
	ids := &sequenceIDs{}
	items := []models.LineItem{
		{ID: ids.NextID(), Type: models.JobTypeRepair},
		{ID: ids.NextID(), Type: models.JobTypeRepair},
	}
	out, _ := UpdateItem(items, ids, items[0].ID, models.FieldDescription, "hood")
	if len(out) != 2 {
		t.Errorf("len(out) = %d, want 2", len(out))
	}
}

func TestUpdateEmptyDescriptionDoesNotAutoAdd(t *testing.T) {
	ids := &sequenceIDs{}
	items := NewItemList(ids)
	out, _ := UpdateItem(items, ids, items[0].ID, models.FieldDescription, "")
	if len(out) != 1 {
		t.Errorf("len(out) = %d, want 1", len(out))
	}
}

func TestUpdateWhitespaceDescriptionDoesNotAutoAdd(t *testing.T) {
	ids := &sequenceIDs{}
	items := NewItemList(ids)
	out, _ := UpdateItem(items, ids, items[0].ID, models.FieldDescription, "   ")
	if len(out) != 1 {
		t.Errorf("len(out) = %d, want 1", len(out))
	}
	if out[0].Description != "   " {
		t.Errorf("description = %q, want raw value kept", out[0].Description)
	}
}

func TestUpdateTypeAwayFromOtherClearsCustomTitle(t *testing.T) {
	ids := &sequenceIDs{}
	items := []models.LineItem{{ID: ids.NextID(), Type: models.JobTypeOther, CustomTitle: "Weld"}}

	out, err := UpdateItem(items, ids, items[0].ID, models.FieldType, "Blend")
	if err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}
	if out[0].Type != models.JobTypeBlend || out[0].CustomTitle != "" {
		t.Errorf("item = %+v, want Blend without title", out[0])
	}

	out, _ = UpdateItem(out, ids, out[0].ID, models.FieldDescription, "Door")
	if len(out) != 2 || out[1].CustomTitle != "" {
		t.Errorf("auto-added item = %+v, want no title", out[len(out)-1])
	}
}

func TestUpdateUnknownIDIsNoop(t *testing.T) {
	ids := &sequenceIDs{}
	items := NewItemList(ids)
	out, err := UpdateItem(items, ids, 999, models.FieldDescription, "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].Description != "" {
		t.Errorf("list changed: %+v", out)
	}
}

func TestUpdateRejectsUnknownFieldAndType(t *testing.T) {
	ids := &sequenceIDs{}
	items := NewItemList(ids)

	if _, err := UpdateItem(items, ids, items[0].ID, models.ItemField("price"), "1"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("err = %v, want ErrUnknownField", err)
	}
	if _, err := UpdateItem(items, ids, items[0].ID, models.FieldType, "Weld"); !errors.Is(err, ErrUnknownJobType) {
		t.Errorf("err = %v, want ErrUnknownJobType", err)
	}
}

func TestUpdateAffectsFirstDuplicateOnly(t *testing.T) {
	ids := &sequenceIDs{}
	items := []models.LineItem{
		{ID: 7, Type: models.JobTypeRepair},
		{ID: 7, Type: models.JobTypeRepair},
		{ID: 8, Type: models.JobTypeRepair},
	}
	out, _ := UpdateItem(items, ids, 7, models.FieldDescription, "door")
	if out[0].Description != "door" || out[1].Description != "" {
		t.Errorf("items = %+v, want only the first duplicate edited", out)
	}

	removed := RemoveItem(items, ids, 7)
	if len(removed) != 2 || removed[0].ID != 7 || removed[1].ID != 8 {
		t.Errorf("after remove = %+v, want one duplicate left", removed)
	}
}

func TestRemoveLastRemainingItemLeavesBlankRepair(t *testing.T) {
	ids := &sequenceIDs{}
	items := []models.LineItem{{ID: ids.NextID(), Type: models.JobTypeBlend, Description: "quarter panel"}}

	out := RemoveItem(items, ids, items[0].ID)
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1", len(out))
	}
	if out[0].ID == items[0].ID {
		t.Errorf("replacement reused the removed id")
	}
	if out[0].Type != models.JobTypeRepair || !out[0].IsBlank() {
		t.Errorf("replacement = %+v, want blank Repair", out[0])
	}
}

func TestRemovePreservesOrder(t *testing.T) {
	ids := &sequenceIDs{}
	items := []models.LineItem{{ID: 1}, {ID: 2}, {ID: 3}}
	out := RemoveItem(items, ids, 2)
	if len(out) != 2 || out[0].ID != 1 || out[1].ID != 3 {
		t.Errorf("out = %+v, want ids 1,3", out)
	}
}

func TestRandomSequencesNeverEmptyList(t *testing.T) {
	ids := &sequenceIDs{}
	rng := rand.New(rand.NewSource(42))
	items := NewItemList(ids)
	descs := []string{"", "hood", "  ", "fender"}

	for step := 0; step < 2000; step++ {
		pick := items[rng.Intn(len(items))].ID
		switch rng.Intn(3) {
		case 0:
			items = AppendItem(items, ids)
		case 1:
			before := len(items)
			wasLast := items[len(items)-1].ID == pick
			value := descs[rng.Intn(len(descs))]
			var err error
			items, err = UpdateItem(items, ids, pick, models.FieldDescription, value)
			if err != nil {
				t.Fatalf("step %d: %v", step, err)
			}
			want := before
			if wasLast && strings.TrimSpace(value) != "" {
				want++
			}
			if len(items) != want {
				t.Fatalf("step %d: len = %d, want %d", step, len(items), want)
			}
		case 2:
			items = RemoveItem(items, ids, pick)
		}
		if len(items) == 0 {
			t.Fatalf("step %d: list became empty", step)
		}
	}
}
