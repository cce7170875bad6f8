package projection

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"bodyshop-work-order/models"
)

// SummaryTypes are the fixed buckets of the printed job summary, in print order
var SummaryTypes = []models.JobType{
	models.JobTypeRepair,
	models.JobTypeReplace,
	models.JobTypeBlend,
	models.JobTypePolish,
}

var summaryLabels = map[models.JobType]string{
	models.JobTypeRepair:  "REPAIR",
	models.JobTypeReplace: "REPLACE",
	models.JobTypeBlend:   "BLEND",
	models.JobTypePolish:  "POLISH",
}

// ItemGroup is one bucket of the job summary
type ItemGroup struct {
	Type    models.JobType `json:"type"`
	Label   string         `json:"label"`
	Entries []string       `json:"entries"`
	Count   int            `json:"count"`
}

// ListedItem is one row of the generic item list
type ListedItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PartNumber  string `json:"partNumber,omitempty"`
}

func upper(s string) string {
	return cases.Upper(language.Und).String(s)
}

// GroupItemsByType buckets non-blank items into Repair, Replace, Blend and
// Polish/Touch up. Other items are left out. Entries are upper-cased copies
// of the descriptions and keep list order.
func GroupItemsByType(items []models.LineItem) []ItemGroup {
	groups := make([]ItemGroup, len(SummaryTypes))
	index := make(map[models.JobType]int, len(SummaryTypes))
	for i, t := range SummaryTypes {
		groups[i] = ItemGroup{Type: t, Label: summaryLabels[t], Entries: []string{}}
		index[t] = i
	}

	for _, item := range items {
		if item.IsBlank() {
			continue
		}
		i, ok := index[item.Type]
		if !ok {
			continue
		}
		groups[i].Entries = append(groups[i].Entries, upper(item.Description))
		groups[i].Count++
	}
	return groups
}

// ListItems returns every non-blank item, Other included, for layouts that
// print the full job list. Other items are titled by their custom title.
func ListItems(items []models.LineItem) []ListedItem {
	listed := make([]ListedItem, 0, len(items))
	for _, item := range items {
		if item.IsBlank() {
			continue
		}
		title := upper(string(item.Type))
		if label, ok := summaryLabels[item.Type]; ok {
			title = label
		}
		if item.Type == models.JobTypeOther {
			title = "OTHER"
			if custom := strings.TrimSpace(item.CustomTitle); custom != "" {
				title = upper(custom)
			}
		}
		listed = append(listed, ListedItem{
			Title:       title,
			Description: upper(strings.TrimSpace(item.Description)),
			PartNumber:  strings.TrimSpace(item.PartNumber),
		})
	}
	return listed
}
