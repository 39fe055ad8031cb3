package zoneclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"habitat_service/internal/domain/model"
)

// HTTPZoneClient fetches opportunity zones from the external habitat model service.
type HTTPZoneClient struct {
	endpoint string
	client   *http.Client
}

func NewHTTPZoneClient(endpoint string, timeout time.Duration) *HTTPZoneClient {
	return &HTTPZoneClient{
		endpoint: endpoint,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

type zoneResponse struct {
	Zones []struct {
		Lat   float64 `json:"lat"`
		Lng   float64 `json:"lng"`
		Name  string  `json:"name"`
		Score float64 `json:"score"`
	} `json:"zones"`
}

func (c *HTTPZoneClient) OpportunityZones(ctx context.Context, bounds model.Bounds) ([]model.OpportunityZone, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid zone model endpoint: %w", err)
	}
	u = u.JoinPath("opportunity-zones")
	if !bounds.IsZero() {
		q := u.Query()
		q.Set("bbox", fmt.Sprintf("%f,%f,%f,%f", bounds.MinLat, bounds.MinLng, bounds.MaxLat, bounds.MaxLng))
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zone model request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("zone model request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("zone model service returned status: %d", resp.StatusCode)
	}

	var body zoneResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode zone model response: %w", err)
	}

	zones := make([]model.OpportunityZone, 0, len(body.Zones))
	for _, z := range body.Zones {
		zones = append(zones, model.OpportunityZone{
			Lat:    z.Lat,
			Lng:    z.Lng,
			Name:   z.Name,
			Source: "model",
			Score:  z.Score,
		})
	}
	return zones, nil
}
