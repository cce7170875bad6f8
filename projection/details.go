package projection

import (
	"strings"

	"bodyshop-work-order/models"
)

const notApplicable = "Not Applicable"

// FilterDisplayableDetails keeps decode variables worth showing: value present,
// not "Not Applicable", and a variable name without "Error" or "ErrorCode".
// The name match is a case-sensitive substring test.
func FilterDisplayableDetails(details []models.VehicleDetail) []models.VehicleDetail {
	out := make([]models.VehicleDetail, 0, len(details))
	for _, d := range details {
		value := d.ValueString()
		if value == "" || value == notApplicable {
			continue
		}
		if strings.Contains(d.Variable, "Error") || strings.Contains(d.Variable, "ErrorCode") {
			continue
		}
		out = append(out, d)
	}
	return out
}
