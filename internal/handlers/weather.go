package handlers

import (
	"context"
	"net/http"
	"strings"

	"vocalis-backend/internal/models"
)

type weatherService interface {
	Lookup(ctx context.Context, location string) (*models.WeatherResponse, error)
}

type WeatherHandler struct {
	weather weatherService
}

func NewWeatherHandler(weather weatherService) *WeatherHandler {
	return &WeatherHandler{weather: weather}
}

func (h *WeatherHandler) GetWeather(w http.ResponseWriter, r *http.Request) {
	location := strings.TrimSpace(r.URL.Query().Get("location"))
	if location == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Query parameter 'location' is required", r))
		return
	}

	weather, err := h.weather.Lookup(r.Context(), location)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, weather)
}
