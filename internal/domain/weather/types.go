package weather

import (
	"context"
	"time"
)

// Snapshot is the current conditions at a location, created fresh per request.
type Snapshot struct {
	Temperature   float64   `json:"temperature"`
	Humidity      float64   `json:"humidity"`
	Precipitation float64   `json:"precipitation"`
	WindSpeed     float64   `json:"wind_speed"`
	WeatherCode   int       `json:"weather_code"`
	Condition     string    `json:"condition"`
	Timestamp     time.Time `json:"timestamp"`
}

// ForecastDay is one day of the daily forecast, in request order.
type ForecastDay struct {
	Date          string  `json:"date"`
	TempMax       float64 `json:"temp_max"`
	TempMin       float64 `json:"temp_min"`
	Precipitation float64 `json:"precipitation"`
	Humidity      float64 `json:"humidity"`
	WindSpeed     float64 `json:"wind_speed"`
	WeatherCode   int     `json:"weather_code"`
}

// Forecast is an ordered daily forecast for a location.
type Forecast struct {
	Latitude    float64       `json:"latitude"`
	Longitude   float64       `json:"longitude"`
	Days        []ForecastDay `json:"forecast"`
	GeneratedAt time.Time     `json:"generated_at"`
}

// History is recent past daily conditions for trend analysis.
type History struct {
	Latitude  float64       `json:"latitude"`
	Longitude float64       `json:"longitude"`
	Days      []ForecastDay `json:"historical"`
	Period    string        `json:"period"`
}

// MaxForecastDays is the provider's daily forecast ceiling.
const MaxForecastDays = 16

// Client fetches conditions from the forecast provider.
type Client interface {
	Current(ctx context.Context, latitude, longitude float64) (Snapshot, error)
	Forecast(ctx context.Context, latitude, longitude float64, days int) (Forecast, error)
	Historical(ctx context.Context, latitude, longitude float64, daysBack int) (History, error)
}

// conditionByCode maps WMO weather codes to readable conditions.
var conditionByCode = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Foggy",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	71: "Slight snow",
	73: "Moderate snow",
	75: "Heavy snow",
	80: "Slight rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
	95: "Thunderstorm",
	96: "Thunderstorm with hail",
}

// Condition renders a WMO weather code as a readable condition string.
func Condition(code int) string {
	if cond, ok := conditionByCode[code]; ok {
		return cond
	}
	return "Unknown"
}
