// Package weather fetches current conditions from OpenWeatherMap.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
)

const defaultEndpoint = "https://api.openweathermap.org/data/2.5/weather"

type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

type Option func(*Client)

func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = endpoint }
}

func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		endpoint:   defaultEndpoint,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

// Report is the subset of current conditions worth narrating.
type Report struct {
	City        string
	Description string
	TempC       float64
	FeelsLikeC  float64
	Humidity    int
	WindMPS     float64
}

func (r *Report) String() string {
	return fmt.Sprintf("🌤 Weather in %s: %s, %.1f°C (feels like %.1f°C), humidity %d%%, wind %.1f m/s",
		r.City, r.Description, r.TempC, r.FeelsLikeC, r.Humidity, r.WindMPS)
}

type apiResponse struct {
	Name    string `json:"name"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// Current fetches current conditions for a city in metric units.
func (c *Client) Current(ctx context.Context, city string) (*Report, error) {
	if !c.Enabled() {
		return nil, errors.New("weather is not configured")
	}

	query := url.Values{}
	query.Set("q", city)
	query.Set("appid", c.apiKey)
	query.Set("units", "metric")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "build weather request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "weather request")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("weather request failed with status %d", resp.StatusCode)
	}

	var decoded apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, errors.Wrap(err, "decode weather response")
	}

	report := &Report{
		City:       decoded.Name,
		TempC:      decoded.Main.Temp,
		FeelsLikeC: decoded.Main.FeelsLike,
		Humidity:   decoded.Main.Humidity,
		WindMPS:    decoded.Wind.Speed,
	}
	if report.City == "" {
		report.City = city
	}
	if len(decoded.Weather) > 0 {
		report.Description = decoded.Weather[0].Description
	}
	return report, nil
}
