package weather

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

	"drip-backend/internal/domain/entity"
	"drip-backend/internal/domain/port"
)

// DefaultBaseURL адрес OpenWeatherMap API.
const DefaultBaseURL = "https://api.openweathermap.org"

// OpenWeatherClient проксирует запрос текущей погоды в OpenWeatherMap
type OpenWeatherClient struct {
	APIKey  string
	BaseURL string
	httpc   *http.Client
}

// NewOpenWeatherClient создаёт клиента с таймаутом 10 секунд
func NewOpenWeatherClient(apiKey, baseURL string) *OpenWeatherClient {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	return &OpenWeatherClient{
		APIKey:  apiKey,
		BaseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
}

type currentResponse struct {
	Name string `json:"name"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
}

// Current запрашивает текущую погоду в метрических единицах
func (c *OpenWeatherClient) Current(ctx context.Context, lat, lon float64) (*entity.Weather, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("units", "metric")
	q.Set("appid", c.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/data/2.5/weather?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrWeatherUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		x, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", entity.ErrWeatherUnavailable, resp.StatusCode, strings.TrimSpace(string(x)))
	}

	var out currentResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", entity.ErrWeatherUnavailable, err)
	}

	condition := "Clear"
	if len(out.Weather) > 0 && out.Weather[0].Main != "" {
		condition = out.Weather[0].Main
	}

	return &entity.Weather{
		Temperature: out.Main.Temp,
		Condition:   condition,
		City:        out.Name,
	}, nil
}

var _ port.WeatherProvider = (*OpenWeatherClient)(nil)
