package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"vocalis-backend/internal/models"
)

// WeatherService resolves a location name and fetches current conditions from
// Open-Meteo. One geocoding call plus one forecast call, no caching, no retry.
type WeatherService struct {
	geocodingURL string
	forecastURL  string
	httpClient   *http.Client
}

func NewWeatherService() *WeatherService {
	return &WeatherService{
		geocodingURL: "https://geocoding-api.open-meteo.com/v1/search",
		forecastURL:  "https://api.open-meteo.com/v1/forecast",
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// WMO weather interpretation codes.
var weatherCodes = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Foggy",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	56: "Light freezing drizzle",
	57: "Dense freezing drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	66: "Light freezing rain",
	67: "Heavy freezing rain",
	71: "Slight snow fall",
	73: "Moderate snow fall",
	75: "Heavy snow fall",
	77: "Snow grains",
	80: "Slight rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
	85: "Slight snow showers",
	86: "Heavy snow showers",
	95: "Thunderstorm",
	96: "Thunderstorm with slight hail",
	99: "Thunderstorm with heavy hail",
}

// Frequent transcription misspellings seen from the voice pipeline.
var commonCorrections = map[string]string{
	"tokoyo":    "Tokyo",
	"kyouto":    "Kyoto",
	"osaka-shi": "Osaka",
	"newyork":   "New York",
}

var fuzzyCandidates = []string{
	"Tokyo", "Osaka", "Kyoto", "Sapporo", "Nagoya", "Fukuoka", "Yokohama",
	"Paris", "London", "New York", "Delhi", "Mumbai",
	"東京", "大阪", "京都", "札幌", "名古屋", "福岡", "横浜",
}

type geocodingResult struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Country   string  `json:"country"`
}

type geocodingResponse struct {
	Results []geocodingResult `json:"results"`
}

type forecastResponse struct {
	Current struct {
		Temperature float64  `json:"temperature_2m"`
		Humidity    *float64 `json:"relative_humidity_2m"`
		WeatherCode int      `json:"weather_code"`
		WindSpeed   float64  `json:"wind_speed_10m"`
	} `json:"current"`
}

// Lookup returns current weather for a named location. It fails with
// *NotFoundError when the location cannot be resolved and *ProviderError on
// upstream failures.
func (s *WeatherService) Lookup(ctx context.Context, location string) (*models.WeatherResponse, error) {
	lat, lon, name, err := s.geocode(ctx, location)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%g", lat))
	params.Set("longitude", fmt.Sprintf("%g", lon))
	params.Set("current", "temperature_2m,relative_humidity_2m,weather_code,wind_speed_10m")
	params.Set("timezone", "auto")

	var forecast forecastResponse
	if err := s.getJSON(ctx, s.forecastURL, params, &forecast); err != nil {
		return nil, err
	}

	description, ok := weatherCodes[forecast.Current.WeatherCode]
	if !ok {
		description = "Unknown"
	}

	return &models.WeatherResponse{
		Location:           name,
		Latitude:           lat,
		Longitude:          lon,
		Temperature:        forecast.Current.Temperature,
		WeatherCode:        forecast.Current.WeatherCode,
		WeatherDescription: description,
		WindSpeed:          forecast.Current.WindSpeed,
		Humidity:           forecast.Current.Humidity,
	}, nil
}

// geocode resolves a location name to coordinates, retrying once with a
// corrected spelling when the raw query finds nothing.
func (s *WeatherService) geocode(ctx context.Context, location string) (lat, lon float64, name string, err error) {
	lang := "en"
	if containsJapanese(location) {
		lang = "ja"
	}

	result, err := s.geocodeQuery(ctx, location, lang)
	if err != nil {
		return 0, 0, "", err
	}

	if result == nil {
		corrected := commonCorrections[strings.ToLower(strings.TrimSpace(location))]
		if corrected == "" {
			corrected = closestCandidate(location)
		}
		if corrected != "" {
			result, err = s.geocodeQuery(ctx, corrected, lang)
			if err != nil {
				return 0, 0, "", err
			}
		}
	}

	if result == nil {
		return 0, 0, "", &NotFoundError{Message: fmt.Sprintf("Location %q not found", location)}
	}

	name = result.Name
	if result.Country != "" {
		name = fmt.Sprintf("%s, %s", result.Name, result.Country)
	}
	return result.Latitude, result.Longitude, name, nil
}

func (s *WeatherService) geocodeQuery(ctx context.Context, location, lang string) (*geocodingResult, error) {
	params := url.Values{}
	params.Set("name", location)
	params.Set("count", "1")
	params.Set("language", lang)
	params.Set("format", "json")

	var geo geocodingResponse
	if err := s.getJSON(ctx, s.geocodingURL, params, &geo); err != nil {
		return nil, err
	}
	if len(geo.Results) == 0 {
		return nil, nil
	}
	return &geo.Results[0], nil
}

func (s *WeatherService) getJSON(ctx context.Context, baseURL string, params url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return &ProviderError{Provider: "open-meteo", Message: err.Error(), Transient: true}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &ProviderError{
			Provider:   "open-meteo",
			StatusCode: resp.StatusCode,
			Message:    "unexpected status",
			Transient:  resp.StatusCode >= 500,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ProviderError{Provider: "open-meteo", Message: fmt.Sprintf("failed to decode response: %v", err)}
	}
	return nil
}

// FormatWeatherForLLM renders weather data as one context line for the model.
func FormatWeatherForLLM(w *models.WeatherResponse) string {
	humidity := "n/a"
	if w.Humidity != nil {
		humidity = fmt.Sprintf("%g%%", *w.Humidity)
	}
	return fmt.Sprintf("Location: %s, Temperature: %g°C, Condition: %s, Wind Speed: %g km/h, Humidity: %s",
		w.Location, w.Temperature, w.WeatherDescription, w.WindSpeed, humidity)
}

func containsJapanese(s string) bool {
	for _, r := range s {
		if (r >= 0x3040 && r <= 0x309F) || // hiragana
			(r >= 0x30A0 && r <= 0x30FF) || // katakana
			(r >= 0x4E00 && r <= 0x9FFF) { // kanji
			return true
		}
	}
	return false
}

// closestCandidate picks the best fuzzy match from the known city list, or ""
// when nothing is close enough.
func closestCandidate(location string) string {
	const maxDistanceRatio = 0.25

	best := ""
	bestDistance := -1
	for _, candidate := range fuzzyCandidates {
		d := editDistance(strings.ToLower(location), strings.ToLower(candidate))
		if bestDistance < 0 || d < bestDistance {
			best = candidate
			bestDistance = d
		}
	}

	if best == "" {
		return ""
	}
	limit := int(float64(len([]rune(best)))*maxDistanceRatio) + 1
	if bestDistance > limit {
		return ""
	}
	return best
}

func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
