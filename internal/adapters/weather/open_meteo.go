package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const openMeteoTimeLayout = "2006-01-02T15:04"

// Client reads current conditions from the Open-Meteo forecast API.
type Client struct {
	baseURL    string
	latitude   float64
	longitude  float64
	httpClient *http.Client
}

// NewClient builds a client for a fixed store location. The HTTP timeout is a
// backstop; callers bound the lookup with their own context deadline.
func NewClient(baseURL string, latitude, longitude float64) *Client {
	return &Client{
		baseURL:   baseURL,
		latitude:  latitude,
		longitude: longitude,
		httpClient: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type forecastResponse struct {
	Current *struct {
		Time          string  `json:"time"`
		Temperature2m float64 `json:"temperature_2m"`
		WeatherCode   int     `json:"weather_code"`
	} `json:"current"`
}

// CurrentConditions implements services.WeatherProvider.
func (c *Client) CurrentConditions(ctx context.Context) (*domain.WeatherSnapshot, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(c.latitude, 'f', 4, 64))
	q.Set("longitude", strconv.FormatFloat(c.longitude, 'f', 4, 64))
	q.Set("current", "temperature_2m,weather_code")
	q.Set("timezone", "GMT")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/forecast?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build weather request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("weather request returned status %d", resp.StatusCode)
	}

	var body forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}
	if body.Current == nil {
		return nil, fmt.Errorf("weather response has no current conditions")
	}

	observed, err := time.Parse(openMeteoTimeLayout, body.Current.Time)
	if err != nil {
		return nil, fmt.Errorf("failed to parse weather observation time %q: %w", body.Current.Time, err)
	}

	return &domain.WeatherSnapshot{
		Condition:    Describe(body.Current.WeatherCode),
		WeatherCode:  body.Current.WeatherCode,
		TemperatureC: body.Current.Temperature2m,
		ObservedAt:   observed.UTC(),
	}, nil
}

// Describe maps a WMO weather interpretation code to a short label.
func Describe(code int) string {
	switch {
	case code == 0:
		return "clear"
	case code <= 3:
		return "cloudy"
	case code == 45 || code == 48:
		return "fog"
	case code >= 51 && code <= 57:
		return "drizzle"
	case (code >= 61 && code <= 67) || (code >= 80 && code <= 82):
		return "rain"
	case (code >= 71 && code <= 77) || code == 85 || code == 86:
		return "snow"
	case code >= 95:
		return "thunderstorm"
	default:
		return "unknown"
	}
}
