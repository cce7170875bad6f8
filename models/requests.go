package models

// UpdateItemRequest represents the request body for editing one line item field
type UpdateItemRequest struct {
	Field string `json:"field" validate:"required,oneof=type customTitle desc partNum"`
	Value string `json:"value"`
}

// DecodeVinRequest represents the request body for VIN entry
type DecodeVinRequest struct {
	VIN string `json:"vin" validate:"max=17"`
}

// NotesRequest represents the request body for the notes field
type NotesRequest struct {
	Notes string `json:"notes"`
}

// HighlightRequest toggles required-field highlighting
type HighlightRequest struct {
	Enabled bool `json:"enabled"`
}

// PrintRequest represents the print/export query parameters
type PrintRequest struct {
	Format string `validate:"required,oneof=html pdf xlsx png"`
}

// ErrorResponse is the JSON body returned on failures
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
