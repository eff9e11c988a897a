package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"WAYGO_BACK-END/internal/config"
	"WAYGO_BACK-END/internal/service"
)

// PlacesClient talks to the Google Places web service. It resolves
// free-text city searches and ranks places inside a city by category.
// Without an API key it returns empty result sets instead of failing,
// so the wizard and generator stay usable in development.
type PlacesClient struct {
	cfg        config.PlacesConfig
	httpClient *http.Client
}

// NewPlacesClient creates a new PlacesClient instance
func NewPlacesClient(cfg config.PlacesConfig) *PlacesClient {
	return &PlacesClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type placesTextSearchResponse struct {
	Status  string `json:"status"`
	Results []struct {
		PlaceID          string  `json:"place_id"`
		Name             string  `json:"name"`
		FormattedAddress string  `json:"formatted_address"`
		Rating           float64 `json:"rating"`
		UserRatingsTotal int     `json:"user_ratings_total"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// SearchCity returns candidate cities matching the given name.
func (c *PlacesClient) SearchCity(ctx context.Context, cityName string) ([]service.CityCandidate, error) {
	if c.cfg.APIKey == "" {
		return []service.CityCandidate{}, nil
	}

	params := url.Values{}
	params.Set("query", cityName)
	params.Set("type", "locality")
	params.Set("key", c.cfg.APIKey)
	params.Set("language", "ko")

	resp, err := c.textSearch(ctx, params)
	if err != nil {
		return nil, err
	}

	candidates := make([]service.CityCandidate, 0, len(resp.Results))
	for _, r := range resp.Results {
		candidates = append(candidates, service.CityCandidate{
			PlaceID:          r.PlaceID,
			Name:             r.Name,
			FormattedAddress: r.FormattedAddress,
		})
	}
	return candidates, nil
}

// RankPlaces returns up to count places in the city matching the given
// category hints, best rated first. Fewer than count results is normal
// for small cities.
func (c *PlacesClient) RankPlaces(ctx context.Context, city, cityPlaceID string, typeHints []string, count int) ([]service.PlaceCandidate, error) {
	if c.cfg.APIKey == "" || count <= 0 {
		return []service.PlaceCandidate{}, nil
	}

	seen := make(map[string]bool)
	ranked := make([]service.PlaceCandidate, 0, count)

	hints := typeHints
	if len(hints) == 0 {
		hints = []string{"tourist_attraction"}
	}

	for _, hint := range hints {
		if len(ranked) >= count {
			break
		}

		params := url.Values{}
		params.Set("query", fmt.Sprintf("%s in %s", strings.ReplaceAll(hint, "_", " "), city))
		params.Set("type", hint)
		params.Set("key", c.cfg.APIKey)
		params.Set("language", "ko")

		resp, err := c.textSearch(ctx, params)
		if err != nil {
			return nil, err
		}

		for _, r := range resp.Results {
			if len(ranked) >= count {
				break
			}
			if seen[r.PlaceID] {
				continue
			}
			seen[r.PlaceID] = true

			candidate := service.PlaceCandidate{
				PlaceID: r.PlaceID,
				Name:    r.Name,
				Address: r.FormattedAddress,
				Lat:     r.Geometry.Location.Lat,
				Lng:     r.Geometry.Location.Lng,
			}
			if r.Rating > 0 {
				rating := r.Rating
				candidate.Rating = &rating
			}
			ranked = append(ranked, candidate)
		}
	}

	return ranked, nil
}

func (c *PlacesClient) textSearch(ctx context.Context, params url.Values) (*placesTextSearchResponse, error) {
	endpoint := fmt.Sprintf("%s/textsearch/json?%s", c.cfg.BaseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build places request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("places request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("places request failed: status %d", resp.StatusCode)
	}

	var parsed placesTextSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode places response: %w", err)
	}
	if parsed.Status != "OK" && parsed.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("places request rejected: %s", parsed.Status)
	}
	return &parsed, nil
}
