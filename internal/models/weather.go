package models

// WeatherResponse is the reshaped Open-Meteo payload for one location.
type WeatherResponse struct {
	Location           string   `json:"location"`
	Latitude           float64  `json:"latitude"`
	Longitude          float64  `json:"longitude"`
	Temperature        float64  `json:"temperature"` // Celsius
	WeatherCode        int      `json:"weather_code"`
	WeatherDescription string   `json:"weather_description"`
	WindSpeed          float64  `json:"wind_speed"` // km/h
	Humidity           *float64 `json:"humidity,omitempty"`
}
