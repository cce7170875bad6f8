package router

import (
	"net/http"
	"strings"

	"bodyshop-work-order/app/controller"
)

// Controllers groups the HTTP controllers served by the router
type Controllers struct {
	WorkOrder  *controller.WorkOrderController
	Enrichment *controller.EnrichmentController
	Print      *controller.PrintController
	Estimate   *controller.EstimateController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(mux *http.ServeMux, controllers *Controllers) {
	// Ping endpoint
	mux.HandleFunc("/ping", pingHandler)

	// Estimate analysis backend
	mux.HandleFunc("/analyze", controllers.Estimate.Analyze)
	mux.HandleFunc("/health", controllers.Estimate.Health)

	// Drive exports
	mux.HandleFunc("/exports/drive", controllers.Print.DriveExports)

	// Create work order
	mux.HandleFunc("/work-orders", controllers.WorkOrder.Create)

	// Everything below a work order id
	mux.HandleFunc("/work-orders/", func(w http.ResponseWriter, r *http.Request) {
		dispatchWorkOrder(w, r, controllers)
	})
}

// dispatchWorkOrder routes /work-orders/{id}[/action[/itemId]] by path and method
func dispatchWorkOrder(w http.ResponseWriter, r *http.Request, c *Controllers) {
	segments := pathSegments(r.URL.Path, "/work-orders/")
	if len(segments) == 0 {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	if segments[0] == "issued" && len(segments) == 1 {
		c.Print.IssuedOrders(w, r)
		return
	}

	id := segments[0]
	if len(segments) == 1 {
		switch r.Method {
		case http.MethodGet:
			c.WorkOrder.Get(w, r, id)
		case http.MethodDelete:
			c.WorkOrder.Delete(w, r, id)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	action := segments[1]
	route := r.Method + " " + action
	if len(segments) == 2 {
		switch route {
		case "PUT customer":
			c.WorkOrder.UpdateCustomer(w, r, id)
		case "PUT vehicle":
			c.WorkOrder.UpdateVehicle(w, r, id)
		case "PUT dates":
			c.WorkOrder.UpdateDates(w, r, id)
		case "PUT notes":
			c.WorkOrder.UpdateNotes(w, r, id)
		case "POST items":
			c.WorkOrder.AddItem(w, r, id)
		case "POST reset":
			c.WorkOrder.Reset(w, r, id)
		case "POST highlight":
			c.WorkOrder.Highlight(w, r, id)
		case "GET vehicle-details":
			c.WorkOrder.VehicleDetails(w, r, id)
		case "POST vin":
			c.Enrichment.SetVIN(w, r, id)
		case "POST analyze":
			c.Enrichment.AnalyzeDocument(w, r, id)
		case "GET print":
			c.Print.Print(w, r, id)
		default:
			http.Error(w, "Not found", http.StatusNotFound)
		}
		return
	}

	if len(segments) == 3 {
		switch route {
		case "PATCH items":
			c.WorkOrder.UpdateItem(w, r, id, segments[2])
			return
		case "DELETE items":
			c.WorkOrder.RemoveItem(w, r, id, segments[2])
			return
		case "POST export":
			if segments[2] == "drive" {
				c.Print.ExportDrive(w, r, id)
				return
			}
		}
	}

	http.Error(w, "Not found", http.StatusNotFound)
}

// pathSegments returns the non-empty path segments after prefix
func pathSegments(path, prefix string) []string {
	var segments []string
	for _, s := range strings.Split(strings.TrimPrefix(path, prefix), "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}
