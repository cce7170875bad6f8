package workorder

import (
	"errors"
	"testing"

	"bodyshop-work-order/models"
)

func strPtr(s string) *string { return &s }

func TestNewState(t *testing.T) {
	s := New(&sequenceIDs{}, "WO-1")
	if s.OrderNumber != "WO-1" {
		t.Errorf("OrderNumber = %s", s.OrderNumber)
	}
	if len(s.Items) != 1 {
		t.Errorf("len(Items) = %d, want 1", len(s.Items))
	}
	if s.UploadStatus != models.UploadIdle {
		t.Errorf("UploadStatus = %s, want idle", s.UploadStatus)
	}
}

func TestTransitionsDoNotMutateReceiver(t *testing.T) {
	ids := &sequenceIDs{}
	s := New(ids, "WO-1")
	next, err := s.UpdateItem(ids, s.Items[0].ID, models.FieldDescription, "hood")
	if err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}
	if s.Items[0].Description != "" || len(s.Items) != 1 {
		t.Errorf("receiver changed: %+v", s.Items)
	}
	if len(next.Items) != 2 {
		t.Errorf("len(next.Items) = %d, want 2", len(next.Items))
	}
}

func TestSnapshotCopiesItems(t *testing.T) {
	s := New(&sequenceIDs{}, "WO-1")
	snap := s.Snapshot()
	snap.Items[0].Description = "changed"
	if s.Items[0].Description != "" {
		t.Errorf("snapshot shares item storage with state")
	}
}

func TestMissingFields(t *testing.T) {
	s := New(&sequenceIDs{}, "WO-1").
		WithCustomer(models.Customer{Name: "Jane"}).
		WithDates(models.DateRange{Start: "01/02"})

	missing := s.MissingFields()
	want := map[string]bool{
		"customer.phone": true, "vehicle.vin": true, "vehicle.makeModel": true,
		"vehicle.plate": true, "vehicle.year": true, "dates.end": true,
	}
	if len(missing) != len(want) {
		t.Fatalf("missing = %v", missing)
	}
	for _, m := range missing {
		if !want[m] {
			t.Errorf("unexpected missing field %s", m)
		}
	}
}

func TestVinDecodeAppliesWhenCurrent(t *testing.T) {
	s := New(&sequenceIDs{}, "WO-1").WithVIN("1hgcm82633a004352")
	if s.Vehicle.VIN != "1HGCM82633A004352" {
		t.Errorf("VIN = %s, want upper-cased", s.Vehicle.VIN)
	}
	token := s.VinToken()

	next, err := s.ApplyVinDecode(token, models.DecodedVehicle{
		Year:      "2003",
		MakeModel: "HONDA Accord EX",
		Details:   []models.VehicleDetail{{VariableID: 26, Variable: "Make", Value: strPtr("HONDA")}},
	})
	if err != nil {
		t.Fatalf("ApplyVinDecode failed: %v", err)
	}
	if next.Vehicle.Year != "2003" || next.Vehicle.MakeModel != "HONDA Accord EX" {
		t.Errorf("vehicle = %+v", next.Vehicle)
	}
	if !next.HasVehicleDetails() {
		t.Errorf("details not stored")
	}
}

func TestVinDecodeDroppedAfterVinChange(t *testing.T) {
	s := New(&sequenceIDs{}, "WO-1").WithVIN("1HGCM82633A004352")
	token := s.VinToken()
	s = s.WithVIN("JH4KA8260MC000000")

	_, err := s.ApplyVinDecode(token, models.DecodedVehicle{Year: "2003"})
	if !errors.Is(err, ErrStaleResponse) {
		t.Errorf("err = %v, want ErrStaleResponse", err)
	}
}

func TestVinFailureClearsDetailsOnly(t *testing.T) {
	s := New(&sequenceIDs{}, "WO-1").
		WithVehicle(models.Vehicle{Year: "2019", MakeModel: "Toyota Camry", VIN: "4T1B11HK5KU000000"})
	s, _ = s.ApplyVinDecode(s.VinToken(), models.DecodedVehicle{
		Details: []models.VehicleDetail{{VariableID: 29, Variable: "Model Year", Value: strPtr("2019")}},
	})

	next, err := s.ApplyVinFailure(s.VinToken())
	if err != nil {
		t.Fatalf("ApplyVinFailure failed: %v", err)
	}
	if next.HasVehicleDetails() {
		t.Errorf("details not cleared")
	}
	if next.Vehicle.Year != "2019" || next.Vehicle.MakeModel != "Toyota Camry" {
		t.Errorf("vehicle fields changed: %+v", next.Vehicle)
	}
}

func TestApplyAnalysisMergesAndAppendsBlank(t *testing.T) {
	ids := &sequenceIDs{}
	s := New(ids, "WO-1").WithCustomer(models.Customer{Name: "Existing", Phone: "555-0100"})
	s, token := s.BeginUpload()
	if s.UploadStatus != models.UploadUploading {
		t.Fatalf("UploadStatus = %s, want uploading", s.UploadStatus)
	}

	result := models.AnalysisResult{
		Customer: &models.Customer{Name: "", Phone: "555-0199"},
		Vehicle:  &models.Vehicle{Year: "2018", MakeModel: "Honda Civic", VIN: "2HGFC2F59JH000000"},
		Items: []models.AnalysisItem{
			{Type: "Replace", Desc: "Bumper Cover", PartNum: "HO1000300"},
			{Type: "Blend", Desc: "Fender LT"},
			{Type: "Weld", Desc: "Frame rail"},
		},
		Notes: "Customer waiting",
	}
	next, err := s.ApplyAnalysis(ids, token, result)
	if err != nil {
		t.Fatalf("ApplyAnalysis failed: %v", err)
	}

	if next.Customer.Name != "Existing" || next.Customer.Phone != "555-0199" {
		t.Errorf("customer = %+v", next.Customer)
	}
	if next.Vehicle.VIN != "2HGFC2F59JH000000" || next.Vehicle.Year != "2018" {
		t.Errorf("vehicle = %+v", next.Vehicle)
	}
	if next.Notes != "Customer waiting" {
		t.Errorf("notes = %q", next.Notes)
	}
	if len(next.Items) != 4 {
		t.Fatalf("len(items) = %d, want 4", len(next.Items))
	}
	if next.Items[0].PartNumber != "HO1000300" {
		t.Errorf("part number lost: %+v", next.Items[0])
	}
	if next.Items[2].Type != models.JobTypeOther || next.Items[2].CustomTitle != "Weld" {
		t.Errorf("unknown type mapped to %+v", next.Items[2])
	}
	if !next.Items[3].IsBlank() {
		t.Errorf("trailing item not blank: %+v", next.Items[3])
	}
	if next.UploadStatus != models.UploadSuccess {
		t.Errorf("UploadStatus = %s, want success", next.UploadStatus)
	}
}

func TestNewerUploadSupersedesOlder(t *testing.T) {
	ids := &sequenceIDs{}
	s := New(ids, "WO-1")
	s, first := s.BeginUpload()
	s, second := s.BeginUpload()

	if _, err := s.ApplyAnalysis(ids, first, models.AnalysisResult{Notes: "old"}); !errors.Is(err, ErrStaleResponse) {
		t.Errorf("err = %v, want ErrStaleResponse", err)
	}
	next, err := s.ApplyUploadFailure(second)
	if err != nil {
		t.Fatalf("ApplyUploadFailure failed: %v", err)
	}
	if next.UploadStatus != models.UploadError {
		t.Errorf("UploadStatus = %s, want error", next.UploadStatus)
	}
	if next.Notes != "" {
		t.Errorf("failure changed notes")
	}
}

func TestResetDropsPendingResponses(t *testing.T) {
	ids := &sequenceIDs{}
	s := New(ids, "WO-1").WithVIN("1HGCM82633A004352").WithNotes("keep?")
	vinToken := s.VinToken()
	s, uploadToken := s.BeginUpload()

	s = s.Reset(ids, "WO-2")
	if s.OrderNumber != "WO-2" || s.Notes != "" || s.Vehicle.VIN != "" || len(s.Items) != 1 {
		t.Errorf("reset state = %+v", s)
	}
	if _, err := s.ApplyVinDecode(vinToken, models.DecodedVehicle{Year: "2003"}); !errors.Is(err, ErrStaleResponse) {
		t.Errorf("vin err = %v, want ErrStaleResponse", err)
	}
	if _, err := s.ApplyUploadFailure(uploadToken); !errors.Is(err, ErrStaleResponse) {
		t.Errorf("upload err = %v, want ErrStaleResponse", err)
	}
}

func TestApplyAnalysisTrailingBlankIsRepair(t *testing.T) {
	ids := &sequenceIDs{}
	s, token := New(ids, "WO-1").BeginUpload()
	result := models.AnalysisResult{
		Items: []models.AnalysisItem{{Type: "Blend", Desc: "Fender LT"}},
	}
	next, err := s.ApplyAnalysis(ids, token, result)
	if err != nil {
		t.Fatalf("ApplyAnalysis failed: %v", err)
	}
	if len(next.Items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(next.Items))
	}
	last := next.Items[1]
	if !last.IsBlank() || last.Type != models.JobTypeRepair || last.CustomTitle != "" {
		t.Errorf("trailing item = %+v, want blank Repair", last)
	}
}

func TestApplyAnalysisDropsCustomTitleOnKnownType(t *testing.T) {
	ids := &sequenceIDs{}
	s, token := New(ids, "WO-1").BeginUpload()
	result := models.AnalysisResult{
		Items: []models.AnalysisItem{
			{Type: "Replace", CustomTitle: "Stray", Desc: "Hood"},
			{Type: "Other", CustomTitle: "Calibrate", Desc: "ADAS camera"},
		},
	}
	next, err := s.ApplyAnalysis(ids, token, result)
	if err != nil {
		t.Fatalf("ApplyAnalysis failed: %v", err)
	}
	if next.Items[0].CustomTitle != "" {
		t.Errorf("Replace item kept title %q", next.Items[0].CustomTitle)
	}
	if next.Items[1].Type != models.JobTypeOther || next.Items[1].CustomTitle != "Calibrate" {
		t.Errorf("Other item = %+v, want title Calibrate", next.Items[1])
	}
}
