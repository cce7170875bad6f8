package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"bodyshop-work-order/models"
)

// VinLength is the only VIN length the decode service is called with
const VinLength = 17

// ErrVinIncomplete is returned for a VIN that is not exactly 17 characters
var ErrVinIncomplete = errors.New("vin must be 17 characters")

// NHTSA vPIC variable ids
const (
	variableMake      = 26
	variableModel     = 28
	variableModelYear = 29
	variableSeries    = 34
	variableTrim      = 38
)

// VinDecoder calls the vehicle decode service
type VinDecoder struct {
	baseURL string
	client  *http.Client
}

// Ensure VinDecoder implements VinDecoderInterface
var _ VinDecoderInterface = (*VinDecoder)(nil)

// NewVinDecoder creates a decoder for baseURL (…/decodevin)
func NewVinDecoder(baseURL string, client *http.Client) *VinDecoder {
	if client == nil {
		client = http.DefaultClient
	}
	return &VinDecoder{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// Decode looks up vin and extracts year and make/model. The VIN is upper-cased first.
func (d *VinDecoder) Decode(ctx context.Context, vin string) (models.DecodedVehicle, error) {
	vin = strings.ToUpper(strings.TrimSpace(vin))
	if len(vin) != VinLength {
		return models.DecodedVehicle{}, fmt.Errorf("%w: got %d", ErrVinIncomplete, len(vin))
	}

	endpoint := fmt.Sprintf("%s/%s?format=json", d.baseURL, url.PathEscape(vin))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.DecodedVehicle{}, fmt.Errorf("failed to build decode request: %w", err)
	}

	log.Printf("🔎 Decoding VIN %s", vin)
	resp, err := d.client.Do(req)
	if err != nil {
		return models.DecodedVehicle{}, fmt.Errorf("failed to call decode service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.DecodedVehicle{}, fmt.Errorf("decode service returned status %d", resp.StatusCode)
	}

	var payload models.VinDecodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.DecodedVehicle{}, fmt.Errorf("failed to decode response: %w", err)
	}

	decoded := ExtractVehicle(payload.Results)
	decoded.VIN = vin
	log.Printf("✓ VIN %s decoded: year=%q makeModel=%q", vin, decoded.Year, decoded.MakeModel)
	return decoded, nil
}

// ExtractVehicle picks year and make/model out of raw decode results.
// Trim falls back to Series when absent.
func ExtractVehicle(details []models.VehicleDetail) models.DecodedVehicle {
	values := make(map[int]string, len(details))
	for _, d := range details {
		if v := strings.TrimSpace(d.ValueString()); v != "" {
			values[d.VariableID] = v
		}
	}

	trim := values[variableTrim]
	if trim == "" {
		trim = values[variableSeries]
	}

	return models.DecodedVehicle{
		Year:      values[variableModelYear],
		MakeModel: ComposeMakeModel(values[variableMake], values[variableModel], trim),
		Details:   details,
	}
}

// ComposeMakeModel joins make, model and trim, dropping the trim when
// "Make Model" already contains it
func ComposeMakeModel(vehicleMake, model, trim string) string {
	base := strings.TrimSpace(vehicleMake + " " + model)
	if trim == "" || strings.Contains(base, trim) {
		return base
	}
	return strings.TrimSpace(base + " " + trim)
}
