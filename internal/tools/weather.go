package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// CurrentWeather resolves a place name to coordinates and reports the
// current conditions there. Each missing piece of provider data is a
// distinct reported outcome, never a crash: the result string is spoken
// to the caller as-is.
func (c *Connectors) CurrentWeather(ctx context.Context, location string) (string, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return "", fmt.Errorf("location is required")
	}

	place, found, err := c.geocode(ctx, location)
	if err != nil {
		return "", err
	}
	if !found {
		return fmt.Sprintf("Location not found: %s", location), nil
	}

	current, found, err := c.currentConditions(ctx, place.Latitude, place.Longitude)
	if err != nil {
		return "", err
	}
	if !found {
		return fmt.Sprintf("Weather data is unavailable for %s right now.", place.Name), nil
	}

	return fmt.Sprintf("Current weather in %s: %.1f degrees Celsius, wind %.0f kilometers per hour, %s.",
		place.Name, current.Temperature, current.WindSpeed, describeWeatherCode(current.WeatherCode)), nil
}

type geocodeResult struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (c *Connectors) geocode(ctx context.Context, location string) (geocodeResult, bool, error) {
	u := strings.TrimRight(c.cfg.GeocodeBaseURL, "/") + "/v1/search?name=" + url.QueryEscape(location) + "&count=1"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return geocodeResult{}, false, fmt.Errorf("create geocode request: %w", err)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return geocodeResult{}, false, fmt.Errorf("geocode request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return geocodeResult{}, false, fmt.Errorf("geocode status %d", res.StatusCode)
	}

	var decoded struct {
		Results []geocodeResult `json:"results"`
	}
	if err := decodeBody(res.Body, &decoded); err != nil {
		return geocodeResult{}, false, fmt.Errorf("decode geocode response: %w", err)
	}
	if len(decoded.Results) == 0 {
		return geocodeResult{}, false, nil
	}
	return decoded.Results[0], true, nil
}

type currentConditions struct {
	Temperature float64 `json:"temperature"`
	WindSpeed   float64 `json:"windspeed"`
	WeatherCode int     `json:"weathercode"`
}

func (c *Connectors) currentConditions(ctx context.Context, lat, lon float64) (currentConditions, bool, error) {
	u := fmt.Sprintf("%s/v1/forecast?latitude=%f&longitude=%f&current_weather=true",
		strings.TrimRight(c.cfg.ForecastBaseURL, "/"), lat, lon)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return currentConditions{}, false, fmt.Errorf("create forecast request: %w", err)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return currentConditions{}, false, fmt.Errorf("forecast request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return currentConditions{}, false, fmt.Errorf("forecast status %d", res.StatusCode)
	}

	var decoded struct {
		CurrentWeather *currentConditions `json:"current_weather"`
	}
	if err := decodeBody(res.Body, &decoded); err != nil {
		return currentConditions{}, false, fmt.Errorf("decode forecast response: %w", err)
	}
	if decoded.CurrentWeather == nil {
		return currentConditions{}, false, nil
	}
	return *decoded.CurrentWeather, true, nil
}

// describeWeatherCode maps WMO weather interpretation codes to speech-friendly text.
func describeWeatherCode(code int) string {
	switch {
	case code == 0:
		return "clear sky"
	case code <= 2:
		return "partly cloudy"
	case code == 3:
		return "overcast"
	case code == 45 || code == 48:
		return "foggy"
	case code >= 51 && code <= 57:
		return "drizzle"
	case code >= 61 && code <= 67:
		return "rain"
	case code >= 71 && code <= 77:
		return "snow"
	case code >= 80 && code <= 82:
		return "rain showers"
	case code >= 85 && code <= 86:
		return "snow showers"
	case code >= 95:
		return "thunderstorms"
	default:
		return "mixed conditions"
	}
}
