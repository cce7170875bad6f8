package models

import "time"

// Customer holds the customer contact fields
type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Vehicle holds the vehicle identification fields
type Vehicle struct {
	Year      string `json:"year"`
	MakeModel string `json:"makeModel"`
	Plate     string `json:"plate"`
	VIN       string `json:"vin"`
}

// DateRange holds the scheduled start and end as MM/DD strings (empty when unset)
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// UploadStatus tracks the document analysis request for UI display
type UploadStatus string

const (
	UploadIdle      UploadStatus = "idle"
	UploadUploading UploadStatus = "uploading"
	UploadSuccess   UploadStatus = "success"
	UploadError     UploadStatus = "error"
)

// FormSnapshot is the read-only aggregate handed to renderers
type FormSnapshot struct {
	OrderNumber string     `json:"orderNumber"`
	Customer    Customer   `json:"customer"`
	Vehicle     Vehicle    `json:"vehicle"`
	Dates       DateRange  `json:"dates"`
	Notes       string     `json:"notes"`
	Items       []LineItem `json:"items"`
}

// IssuedWorkOrder is one entry in the issued work order log
type IssuedWorkOrder struct {
	ID           int64     `json:"id"`
	OrderNumber  string    `json:"orderNumber"`
	CustomerName string    `json:"customerName"`
	Vehicle      string    `json:"vehicle"`
	Format       string    `json:"format"`
	ItemCount    int       `json:"itemCount"`
	IssuedAt     time.Time `json:"issuedAt"`
}
