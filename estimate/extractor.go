// Package estimate reads collision repair estimates (Mitchell layout) and
// derives work order fields from their text.
package estimate

import (
	"regexp"
	"strings"
	"unicode"

	"bodyshop-work-order/models"
)

var (
	vinPattern     = regexp.MustCompile(`VIN\s*\n?\s*([A-HJ-NPR-Z0-9]{17})`)
	platePattern   = regexp.MustCompile(`License\s*\n?\s*([A-Z]{2}-[A-Z0-9 ]+)`)
	vehiclePattern = regexp.MustCompile(`(?i)(\d{4})\s+(Honda|Toyota|Ford|Chevrolet|Nissan|Hyundai|Kia|BMW|Mercedes|Audi|Lexus|Mazda|Subaru|Volkswagen|Jeep|Dodge|GMC|Ram|Acura|Infiniti|Volvo|[A-Za-z]+)\s+([^\n]+?)(?:\d+\s*Door|\d+\.\d+L|License)`)
	partNumPattern = regexp.MustCompile(`^[A-Z0-9 -]+$`)
	partTail       = regexp.MustCompile(`^[A-Z0-9]+$`)
)

var bodyParts = []string{
	"bumper", "cover", "grille", "hood", "fender", "door", "panel",
	"rocker", "quarter", "trunk", "tailgate", "mirror", "lamp",
	"garnish", "molding", "bracket", "support", "assembly", "guard",
	"handle", "mudguard", "wheel opening", "belt", "sensor", "pump",
	"glass", "absorber", "condenser", "radiator", "frame", "plate",
	"shield", "lock", "latch", "hinge", "regulator", "motor", "pillar",
	"air bag", "seat belt", "w/shield",
}

// Vehicle option lines that mention a part name but are not repair lines
var excludeTerms = []string{
	"automatic headlights", "power door locks", "power remote", "power steering",
	"power windows", "heated mirror", "lumbar support", "daytime running",
	"tonneau cover", "air conditioning", "cruise control", "steering wheel",
	"bluetooth", "keyless", "4wd", "awd", "cyl gas", "door utility", "audio control",
}

var sectionHeaders = toSet(
	"Front Bumper", "Front Fender", "Front Door", "Rear Bumper", "Hood", "Headlamps",
	"Fog Lamps", "Front Lamps", "Grille", "Seat Belts", "Air Bags", "Cooling",
	"Radiator Support", "Air Bag System",
	"Garnish", "Assembly", "Support", "Bracket",
)

var (
	endKeywords    = []string{"Remove", "Replace", "Blend", "Refinish", "Repair", "Overhaul", "Body", "INC", "Existing", "Aftermarket", "New", "Yes", "No"}
	rejectedDescs  = toSet("AUTO", "Body", "INC", "Inc", "Existing")
	partNumSkips   = toSet("Body", "Refinish", "New", "Aftermarket", "Recycled", "Existing", "Remove /", "Replace")
	partNumRejects = toSet("Order", "Labor", "Total", "Sublet", "Notes")
)

const (
	operationWindow = 5
	partNumWindow   = 15
)

// Extract derives customer, vehicle and job items from estimate text
func Extract(text string) models.AnalysisResult {
	result := models.AnalysisResult{
		Customer: &models.Customer{},
		Vehicle:  &models.Vehicle{},
	}

	if m := vinPattern.FindStringSubmatch(text); m != nil {
		result.Vehicle.VIN = m[1]
	}
	if m := platePattern.FindStringSubmatch(text); m != nil {
		result.Vehicle.Plate = m[1]
	}
	if m := vehiclePattern.FindStringSubmatch(text); m != nil {
		result.Vehicle.Year = m[1]
		result.Vehicle.MakeModel = m[2] + " " + strings.TrimSpace(m[3])
	}

	result.Items = dedupe(extractItems(splitLines(text)))
	return result
}

func splitLines(text string) []string {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// itemsStart returns the index of the line item table header
func itemsStart(lines []string) int {
	for i, line := range lines {
		if strings.Contains(line, "Line #") {
			return i
		}
		if strings.Contains(line, "Description") {
			lo, hi := max(0, i-1), min(len(lines), i+2)
			if strings.Contains(strings.Join(lines[lo:hi], " "), "Operation") {
				return i
			}
		}
	}
	return 0
}

func extractItems(lines []string) []models.AnalysisItem {
	var items []models.AnalysisItem

	i := itemsStart(lines)
	for i < len(lines) {
		line := lines[i]
		lower := strings.ToLower(line)

		if containsAny(lower, excludeTerms) || !containsAny(lower, bodyParts) || sectionHeaders[line] {
			i++
			continue
		}

		jobType, ok := detectOperation(lines[i:min(len(lines), i+operationWindow)])
		if !ok {
			i++
			continue
		}

		desc, consumed := describe(lines, i)
		if len(desc) > 3 && !rejectedDescs[desc] {
			item := models.AnalysisItem{Type: string(jobType), Desc: desc}
			if jobType == models.JobTypeReplace {
				item.PartNum = findPartNumber(lines, i)
			}
			items = append(items, item)
		}
		i += 1 + consumed
	}
	return items
}

// detectOperation looks for the operation near a part line.
// Blend wins over Replace, which needs "Remove /" as well.
func detectOperation(window []string) (models.JobType, bool) {
	text := strings.Join(window, " ")
	switch {
	case strings.Contains(text, "Blend"):
		return models.JobTypeBlend, true
	case strings.Contains(text, "Remove /") && strings.Contains(text, "Replace"):
		return models.JobTypeReplace, true
	case strings.Contains(text, "Repair"):
		return models.JobTypeRepair, true
	}
	return "", false
}

// describe cleans the part line and joins at most one continuation line
func describe(lines []string, i int) (string, int) {
	desc := strings.TrimSpace(lines[i])
	for _, kw := range []string{"Remove /", "Remove", "Replace"} {
		if idx := strings.Index(desc, kw); idx >= 0 {
			desc = strings.TrimSpace(desc[:idx])
		}
	}

	for j := i + 1; j < min(len(lines), i+3); j++ {
		next := lines[j]
		if isEndOfDescription(next) {
			break
		}
		if len(next) > 2 && unicode.IsUpper(rune(next[0])) {
			return desc + " " + next, 1
		}
	}
	return desc, 0
}

func isEndOfDescription(line string) bool {
	if isNumeric(line, ".#") {
		return true
	}
	for _, kw := range endKeywords {
		if strings.HasPrefix(line, kw) {
			return true
		}
	}
	return false
}

// findPartNumber scans ahead of a Replace line for an OEM or aftermarket part
// number such as HO1014102C or "971 807 180". A trailing hyphen joins the next line.
func findPartNumber(lines []string, i int) string {
	for k := i; k < min(len(lines), i+partNumWindow); k++ {
		line := lines[k]
		if partNumSkips[line] || isNumeric(line, ".#*$") {
			continue
		}
		if len(line) < 3 || !partNumPattern.MatchString(line) || !strings.ContainsFunc(line, unicode.IsDigit) {
			continue
		}
		if partNumRejects[line] {
			continue
		}
		if strings.HasSuffix(line, "-") && k+1 < len(lines) && partTail.MatchString(lines[k+1]) {
			return line + lines[k+1]
		}
		return line
	}
	return ""
}

// dedupe drops repeated (type, description) pairs, ignoring description case
func dedupe(items []models.AnalysisItem) []models.AnalysisItem {
	seen := make(map[string]bool, len(items))
	unique := make([]models.AnalysisItem, 0, len(items))
	for _, item := range items {
		key := item.Type + "\x00" + strings.ToLower(item.Desc)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, item)
	}
	return unique
}

// isNumeric reports whether s is all digits once the ignored characters are removed
func isNumeric(s, ignored string) bool {
	digits := 0
	for _, r := range s {
		if strings.ContainsRune(ignored, r) {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
		digits++
	}
	return digits > 0
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

func toSet(values ...string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
