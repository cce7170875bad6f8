package service

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"bodyshop-work-order/models"
	"bodyshop-work-order/projection"
)

const placeholder = "--"

//go:embed templates/work_order.html
var workOrderTemplateSource string

var workOrderTemplate = template.Must(template.New("work_order").Parse(workOrderTemplateSource))

// Renderer turns a form snapshot into a printable document.
// Implementations must not modify the snapshot.
type Renderer interface {
	Format() string
	ContentType() string
	Render(ctx context.Context, snap models.FormSnapshot) ([]byte, error)
}

// PrintView is the template data of a printed work order
type PrintView struct {
	ShopName      string
	OrderNumber   string
	CustomerName  string
	CustomerPhone string
	StartDate     string
	EndDate       string
	Duration      string
	VehicleLine   string
	VIN           string
	Plate         string
	Notes         string
	ShowNotes     bool
	Groups        []projection.ItemGroup
	ListedItems   []projection.ListedItem
	ShowItemList  bool
}

// BuildPrintView projects a snapshot onto print fields, substituting
// placeholders for empty dates and vehicle fields
func BuildPrintView(shopName string, snap models.FormSnapshot, now time.Time) PrintView {
	derived := projection.Derive(snap, now)

	start := orPlaceholder(snap.Dates.Start)
	end := strings.TrimSpace(snap.Dates.End)
	if end == "" {
		// a single selected day prints as start = end
		end = start
	}

	vehicleLine := strings.TrimSpace(snap.Vehicle.Year + " " + snap.Vehicle.MakeModel)

	return PrintView{
		ShopName:      shopName,
		OrderNumber:   snap.OrderNumber,
		CustomerName:  snap.Customer.Name,
		CustomerPhone: snap.Customer.Phone,
		StartDate:     start,
		EndDate:       end,
		Duration:      derived.Duration,
		VehicleLine:   orPlaceholder(vehicleLine),
		VIN:           orPlaceholder(snap.Vehicle.VIN),
		Plate:         orPlaceholder(snap.Vehicle.Plate),
		Notes:         snap.Notes,
		ShowNotes:     strings.TrimSpace(snap.Notes) != "",
		Groups:        derived.Groups,
		ListedItems:   derived.ListedItems,
		ShowItemList:  needsItemList(snap.Items),
	}
}

// needsItemList reports whether the summary grid alone would hide something:
// Other items or part numbers only appear in the full item list
func needsItemList(items []models.LineItem) bool {
	for _, item := range items {
		if item.IsBlank() {
			continue
		}
		if item.Type == models.JobTypeOther || strings.TrimSpace(item.PartNumber) != "" {
			return true
		}
	}
	return false
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return strings.TrimSpace(s)
}

// HTMLRenderer renders the printable work order page
type HTMLRenderer struct {
	shopName string
	now      func() time.Time
}

// Ensure HTMLRenderer implements Renderer
var _ Renderer = (*HTMLRenderer)(nil)

// NewHTMLRenderer creates a new HTMLRenderer
func NewHTMLRenderer(shopName string) *HTMLRenderer {
	return &HTMLRenderer{shopName: shopName, now: time.Now}
}

func (r *HTMLRenderer) Format() string      { return "html" }
func (r *HTMLRenderer) ContentType() string { return "text/html; charset=utf-8" }

// Render executes the work order template. The output depends only on the
// snapshot and the current calendar year.
func (r *HTMLRenderer) Render(ctx context.Context, snap models.FormSnapshot) ([]byte, error) {
	view := BuildPrintView(r.shopName, snap, r.now())

	var buf bytes.Buffer
	if err := workOrderTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}
