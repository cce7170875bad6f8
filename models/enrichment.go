package models

// VehicleDetail is one variable returned by the VIN decode service
type VehicleDetail struct {
	VariableID int     `json:"VariableId"`
	Variable   string  `json:"Variable"`
	Value      *string `json:"Value"`
}

// ValueString returns the detail value or "" when absent
func (d VehicleDetail) ValueString() string {
	if d.Value == nil {
		return ""
	}
	return *d.Value
}

// VinDecodeResponse is the raw payload of the decode service
type VinDecodeResponse struct {
	Count          int             `json:"Count"`
	Message        string          `json:"Message"`
	SearchCriteria string          `json:"SearchCriteria"`
	Results        []VehicleDetail `json:"Results"`
}

// DecodedVehicle is the subset of a decode response written into the form
type DecodedVehicle struct {
	VIN       string          `json:"vin"`
	Year      string          `json:"year"`
	MakeModel string          `json:"makeModel"`
	Details   []VehicleDetail `json:"details"`
}

// AnalysisItem is a line item as returned by the analysis endpoint
type AnalysisItem struct {
	Type        string `json:"type"`
	Desc        string `json:"desc"`
	PartNum     string `json:"partNum"`
	CustomTitle string `json:"customTitle"`
}

// AnalysisResult is the document analysis payload. Every section is optional.
type AnalysisResult struct {
	Customer *Customer      `json:"customer,omitempty"`
	Vehicle  *Vehicle       `json:"vehicle,omitempty"`
	Items    []AnalysisItem `json:"items,omitempty"`
	Notes    string         `json:"notes,omitempty"`
}
