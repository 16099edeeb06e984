// Package openmeteo implements the weather.Client interface against the
// Open-Meteo forecast API. The API is free and needs no credential.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/agriguard/agriguard/internal/domain/weather"
)

const defaultBaseURL = "https://api.open-meteo.com/v1"

const requestTimeout = 15 * time.Second

const (
	currentParams  = "temperature_2m,relative_humidity_2m,precipitation,wind_speed_10m,weather_code"
	forecastParams = "temperature_2m_max,temperature_2m_min,precipitation_sum,relative_humidity_2m_mean,wind_speed_10m_max,weather_code"
	historyParams  = "temperature_2m_max,temperature_2m_min,precipitation_sum,relative_humidity_2m_mean"
)

// Client calls the Open-Meteo /forecast endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs an Open-Meteo client.
func NewClient(baseURL string) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

type currentResponse struct {
	Current struct {
		Temperature   float64 `json:"temperature_2m"`
		Humidity      float64 `json:"relative_humidity_2m"`
		Precipitation float64 `json:"precipitation"`
		WindSpeed     float64 `json:"wind_speed_10m"`
		WeatherCode   int     `json:"weather_code"`
	} `json:"current"`
}

type dailyResponse struct {
	Daily struct {
		Time          []string  `json:"time"`
		TempMax       []float64 `json:"temperature_2m_max"`
		TempMin       []float64 `json:"temperature_2m_min"`
		Precipitation []float64 `json:"precipitation_sum"`
		Humidity      []float64 `json:"relative_humidity_2m_mean"`
		WindSpeed     []float64 `json:"wind_speed_10m_max"`
		WeatherCode   []int     `json:"weather_code"`
	} `json:"daily"`
}

// Current fetches a fresh snapshot of present conditions.
func (c *Client) Current(ctx context.Context, latitude, longitude float64) (weather.Snapshot, error) {
	query := url.Values{}
	query.Set("latitude", formatCoord(latitude))
	query.Set("longitude", formatCoord(longitude))
	query.Set("current", currentParams)
	query.Set("timezone", "auto")

	var out currentResponse
	if err := c.get(ctx, query, &out); err != nil {
		return weather.Snapshot{}, err
	}
	cur := out.Current
	return weather.Snapshot{
		Temperature:   cur.Temperature,
		Humidity:      cur.Humidity,
		Precipitation: cur.Precipitation,
		WindSpeed:     cur.WindSpeed,
		WeatherCode:   cur.WeatherCode,
		Condition:     weather.Condition(cur.WeatherCode),
		Timestamp:     time.Now(),
	}, nil
}

// Forecast fetches up to MaxForecastDays of daily forecast, clamping days.
func (c *Client) Forecast(ctx context.Context, latitude, longitude float64, days int) (weather.Forecast, error) {
	if days < 1 {
		days = 1
	}
	if days > weather.MaxForecastDays {
		days = weather.MaxForecastDays
	}

	query := url.Values{}
	query.Set("latitude", formatCoord(latitude))
	query.Set("longitude", formatCoord(longitude))
	query.Set("daily", forecastParams)
	query.Set("timezone", "auto")
	query.Set("forecast_days", strconv.Itoa(days))

	var out dailyResponse
	if err := c.get(ctx, query, &out); err != nil {
		return weather.Forecast{}, err
	}
	return weather.Forecast{
		Latitude:    latitude,
		Longitude:   longitude,
		Days:        collectDays(out),
		GeneratedAt: time.Now(),
	}, nil
}

// Historical fetches daily conditions for the past daysBack days.
func (c *Client) Historical(ctx context.Context, latitude, longitude float64, daysBack int) (weather.History, error) {
	if daysBack < 1 {
		daysBack = 1
	}

	query := url.Values{}
	query.Set("latitude", formatCoord(latitude))
	query.Set("longitude", formatCoord(longitude))
	query.Set("daily", historyParams)
	query.Set("timezone", "auto")
	query.Set("past_days", strconv.Itoa(daysBack))
	query.Set("forecast_days", "1")

	var out dailyResponse
	if err := c.get(ctx, query, &out); err != nil {
		return weather.History{}, err
	}
	return weather.History{
		Latitude:  latitude,
		Longitude: longitude,
		Days:      collectDays(out),
		Period:    fmt.Sprintf("Last %d days", daysBack),
	}, nil
}

func (c *Client) get(ctx context.Context, query url.Values, out any) error {
	endpoint := c.baseURL + "/forecast?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build open-meteo request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("open-meteo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("open-meteo api error: status=%d body=%s", resp.StatusCode, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode open-meteo response: %w", err)
	}
	return nil
}

// collectDays zips parallel daily arrays into per-day records. Series shorter
// than the time axis leave zero values rather than failing.
func collectDays(resp dailyResponse) []weather.ForecastDay {
	daily := resp.Daily
	days := make([]weather.ForecastDay, 0, len(daily.Time))
	for i, date := range daily.Time {
		day := weather.ForecastDay{Date: date}
		if i < len(daily.TempMax) {
			day.TempMax = daily.TempMax[i]
		}
		if i < len(daily.TempMin) {
			day.TempMin = daily.TempMin[i]
		}
		if i < len(daily.Precipitation) {
			day.Precipitation = daily.Precipitation[i]
		}
		if i < len(daily.Humidity) {
			day.Humidity = daily.Humidity[i]
		}
		if i < len(daily.WindSpeed) {
			day.WindSpeed = daily.WindSpeed[i]
		}
		if i < len(daily.WeatherCode) {
			day.WeatherCode = daily.WeatherCode[i]
		}
		days = append(days, day)
	}
	return days
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var _ weather.Client = (*Client)(nil)
