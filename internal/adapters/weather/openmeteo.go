package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/selivandex/briefing-bot/pkg/models"
)

const openMeteoAPIURL = "https://api.open-meteo.com/v1/forecast"

// Provider supplies the weather observation for the monitored location
type Provider interface {
	GetName() string
	GetObservation(ctx context.Context) (models.WeatherObservation, error)
}

// OpenMeteoProvider fetches current weather plus the daily forecast from
// Open-Meteo (free, no API key needed)
type OpenMeteoProvider struct {
	client    *http.Client
	location  string
	latitude  float64
	longitude float64
	timezone  string
}

// NewOpenMeteoProvider creates new Open-Meteo weather provider
func NewOpenMeteoProvider(location string, lat, lon float64, timezone string, timeout time.Duration) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		client:    &http.Client{Timeout: timeout},
		location:  location,
		latitude:  lat,
		longitude: lon,
		timezone:  timezone,
	}
}

func (p *OpenMeteoProvider) GetName() string {
	return "open-meteo"
}

// GetObservation fetches current conditions and the multi-day forecast
func (p *OpenMeteoProvider) GetObservation(ctx context.Context) (models.WeatherObservation, error) {
	var obs models.WeatherObservation

	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%.2f", p.latitude))
	params.Set("longitude", fmt.Sprintf("%.2f", p.longitude))
	params.Set("current_weather", "true")
	params.Set("daily", "weathercode,temperature_2m_max,temperature_2m_min")
	params.Set("timezone", p.timezone)

	req, err := http.NewRequestWithContext(ctx, "GET", openMeteoAPIURL+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return obs, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return obs, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return obs, fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		CurrentWeather struct {
			Temperature float64 `json:"temperature"`
			WindSpeed   float64 `json:"windspeed"`
			WeatherCode int     `json:"weathercode"`
		} `json:"current_weather"`
		Daily struct {
			TemperatureMax []float64 `json:"temperature_2m_max"`
			TemperatureMin []float64 `json:"temperature_2m_min"`
		} `json:"daily"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return obs, fmt.Errorf("failed to decode response: %w", err)
	}

	obs = models.WeatherObservation{
		Location:    p.location,
		Observed:    true,
		Temperature: result.CurrentWeather.Temperature,
		WindSpeed:   result.CurrentWeather.WindSpeed,
		Code:        result.CurrentWeather.WeatherCode,
	}

	for i, high := range result.Daily.TemperatureMax {
		day := models.DailyForecast{High: high}
		if i < len(result.Daily.TemperatureMin) {
			day.Low = result.Daily.TemperatureMin[i]
		}
		obs.Forecast = append(obs.Forecast, day)
	}

	return obs, nil
}
