package workorder

import (
	"errors"
	"strings"

	"bodyshop-work-order/models"
)

// ErrStaleResponse is returned when an enrichment response arrives after the
// input that triggered it was replaced (VIN edited, newer upload, form reset)
var ErrStaleResponse = errors.New("stale enrichment response")

// State is the complete form of one work order session.
// Every transition returns a new State and leaves the receiver untouched.
type State struct {
	OrderNumber      string                 `json:"orderNumber"`
	Customer         models.Customer        `json:"customer"`
	Vehicle          models.Vehicle         `json:"vehicle"`
	Dates            models.DateRange       `json:"dates"`
	Notes            string                 `json:"notes"`
	Items            []models.LineItem      `json:"items"`
	VehicleDetails   []models.VehicleDetail `json:"-"`
	UploadStatus     models.UploadStatus    `json:"uploadStatus"`
	HighlightMissing bool                   `json:"highlightMissing"`

	vinEpoch    uint64
	uploadEpoch uint64
}

// New returns an empty form with one blank line item
func New(ids IDGenerator, orderNumber string) State {
	return State{
		OrderNumber:  orderNumber,
		Items:        NewItemList(ids),
		UploadStatus: models.UploadIdle,
	}
}

// Snapshot copies the printable part of the state
func (s State) Snapshot() models.FormSnapshot {
	return models.FormSnapshot{
		OrderNumber: s.OrderNumber,
		Customer:    s.Customer,
		Vehicle:     s.Vehicle,
		Dates:       s.Dates,
		Notes:       s.Notes,
		Items:       cloneItems(s.Items, 0),
	}
}

// HasVehicleDetails reports whether a decode result is available
func (s State) HasVehicleDetails() bool {
	return len(s.VehicleDetails) > 0
}

func (s State) WithCustomer(c models.Customer) State {
	s.Customer = c
	return s
}

// WithVehicle replaces the vehicle fields. A changed VIN invalidates any decode in flight.
func (s State) WithVehicle(v models.Vehicle) State {
	v.VIN = strings.ToUpper(v.VIN)
	if v.VIN != s.Vehicle.VIN {
		s.vinEpoch++
	}
	s.Vehicle = v
	return s
}

// WithVIN sets only the VIN, upper-cased
func (s State) WithVIN(vin string) State {
	v := s.Vehicle
	v.VIN = vin
	return s.WithVehicle(v)
}

func (s State) WithDates(d models.DateRange) State {
	s.Dates = d
	return s
}

func (s State) WithNotes(notes string) State {
	s.Notes = notes
	return s
}

func (s State) WithHighlight(enabled bool) State {
	s.HighlightMissing = enabled
	return s
}

// AddItem appends a blank item (explicit "add" action)
func (s State) AddItem(ids IDGenerator) State {
	s.Items = AppendItem(s.Items, ids)
	return s
}

// UpdateItem edits one field of one item, applying the auto-add rule
func (s State) UpdateItem(ids IDGenerator, id int64, field models.ItemField, value string) (State, error) {
	items, err := UpdateItem(s.Items, ids, id, field, value)
	if err != nil {
		return s, err
	}
	s.Items = items
	return s, nil
}

func (s State) RemoveItem(ids IDGenerator, id int64) State {
	s.Items = RemoveItem(s.Items, ids, id)
	return s
}

// Reset clears the form and issues a new order number.
// Pending enrichment responses for the old form are dropped.
func (s State) Reset(ids IDGenerator, orderNumber string) State {
	fresh := New(ids, orderNumber)
	fresh.vinEpoch = s.vinEpoch + 1
	fresh.uploadEpoch = s.uploadEpoch + 1
	return fresh
}

// MissingFields lists the required fields that are still empty
func (s State) MissingFields() []string {
	var missing []string
	check := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	check("customer.name", s.Customer.Name)
	check("customer.phone", s.Customer.Phone)
	check("vehicle.vin", s.Vehicle.VIN)
	check("vehicle.makeModel", s.Vehicle.MakeModel)
	check("vehicle.plate", s.Vehicle.Plate)
	check("vehicle.year", s.Vehicle.Year)
	check("dates.start", s.Dates.Start)
	check("dates.end", s.Dates.End)
	return missing
}

// VinToken identifies the current VIN for a decode request
func (s State) VinToken() uint64 {
	return s.vinEpoch
}

// ApplyVinDecode writes a decode result into the vehicle fields
func (s State) ApplyVinDecode(token uint64, decoded models.DecodedVehicle) (State, error) {
	if token != s.vinEpoch {
		return s, ErrStaleResponse
	}
	if decoded.Year != "" {
		s.Vehicle.Year = decoded.Year
	}
	if decoded.MakeModel != "" {
		s.Vehicle.MakeModel = decoded.MakeModel
	}
	s.VehicleDetails = decoded.Details
	return s, nil
}

// ApplyVinFailure drops stored details and keeps the vehicle fields as they are
func (s State) ApplyVinFailure(token uint64) (State, error) {
	if token != s.vinEpoch {
		return s, ErrStaleResponse
	}
	s.VehicleDetails = nil
	return s, nil
}

// BeginUpload marks an analysis request as in flight and returns its token.
// Any earlier upload still in flight becomes stale.
func (s State) BeginUpload() (State, uint64) {
	s.uploadEpoch++
	s.UploadStatus = models.UploadUploading
	return s, s.uploadEpoch
}

// ApplyAnalysis merges an analysis result. Non-empty incoming values replace
// the current ones; imported items replace the list and are followed by one blank item.
func (s State) ApplyAnalysis(ids IDGenerator, token uint64, result models.AnalysisResult) (State, error) {
	if token != s.uploadEpoch {
		return s, ErrStaleResponse
	}

	if c := result.Customer; c != nil {
		s.Customer.Name = pick(c.Name, s.Customer.Name)
		s.Customer.Phone = pick(c.Phone, s.Customer.Phone)
	}
	if v := result.Vehicle; v != nil {
		vehicle := s.Vehicle
		vehicle.Year = pick(v.Year, vehicle.Year)
		vehicle.MakeModel = pick(v.MakeModel, vehicle.MakeModel)
		vehicle.Plate = pick(v.Plate, vehicle.Plate)
		vehicle.VIN = pick(v.VIN, vehicle.VIN)
		s = s.WithVehicle(vehicle)
	}
	if strings.TrimSpace(result.Notes) != "" {
		s.Notes = result.Notes
	}

	if len(result.Items) > 0 {
		items := make([]models.LineItem, 0, len(result.Items)+1)
		for _, in := range result.Items {
			items = append(items, importItem(ids, in))
		}
		s.Items = append(items, NewBlankItem(ids, models.JobTypeRepair, ""))
	}

	s.UploadStatus = models.UploadSuccess
	return s, nil
}

// ApplyUploadFailure flags the upload as failed without touching any field
func (s State) ApplyUploadFailure(token uint64) (State, error) {
	if token != s.uploadEpoch {
		return s, ErrStaleResponse
	}
	s.UploadStatus = models.UploadError
	return s, nil
}

// importItem converts an analysis item. Unknown types become Other with the
// raw type as title. A custom title survives only on Other items.
func importItem(ids IDGenerator, in models.AnalysisItem) models.LineItem {
	item := models.LineItem{
		ID:          ids.NextID(),
		Description: in.Desc,
		PartNumber:  in.PartNum,
	}
	jobType, ok := models.ParseJobType(in.Type)
	switch {
	case ok:
		item.Type = jobType
		if jobType == models.JobTypeOther {
			item.CustomTitle = in.CustomTitle
		}
	case strings.TrimSpace(in.Type) == "":
		item.Type = models.JobTypeRepair
	default:
		item.Type = models.JobTypeOther
		item.CustomTitle = in.CustomTitle
		if item.CustomTitle == "" {
			item.CustomTitle = in.Type
		}
	}
	return item
}

func pick(incoming, current string) string {
	if strings.TrimSpace(incoming) == "" {
		return current
	}
	return incoming
}
