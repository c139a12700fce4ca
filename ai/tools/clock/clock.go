// Package clock answers "what time is it in X" questions. It asks
// timeapi.io first and falls back to the local clock when the upstream
// is unreachable, so the answer path never fails outright.
package clock

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultEndpoint = "https://timeapi.io"

// cityZones maps the city names users actually type to IANA zones.
// Anything unknown resolves to the default zone.
var cityZones = map[string]string{
	"delhi":       "Asia/Kolkata",
	"kolkata":     "Asia/Kolkata",
	"mumbai":      "Asia/Kolkata",
	"new york":    "America/New_York",
	"los angeles": "America/Los_Angeles",
	"london":      "Europe/London",
	"paris":       "Europe/Paris",
	"berlin":      "Europe/Berlin",
	"tokyo":       "Asia/Tokyo",
	"sydney":      "Australia/Sydney",
}

type Client struct {
	endpoint    string
	defaultZone string
	httpClient  *http.Client
	now         func() time.Time
}

type Option func(*Client)

func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = endpoint }
}

func WithNow(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

func New(defaultZone string, opts ...Option) *Client {
	if defaultZone == "" {
		defaultZone = "Asia/Kolkata"
	}
	c := &Client{
		endpoint:    defaultEndpoint,
		defaultZone: defaultZone,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Zone resolves a city name to an IANA zone name.
func (c *Client) Zone(city string) string {
	if zone, ok := cityZones[strings.ToLower(strings.TrimSpace(city))]; ok {
		return zone
	}
	return c.defaultZone
}

type timeResponse struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

// CurrentTime returns a sentence with the current time in the city's
// zone, from timeapi.io when reachable and the local clock otherwise.
func (c *Client) CurrentTime(ctx context.Context, city string) string {
	zone := c.Zone(city)
	if city == "" {
		city = zone
	}

	if answer, err := c.remoteTime(ctx, city, zone); err == nil {
		return answer
	}

	loc, err := time.LoadLocation(zone)
	if err != nil {
		loc = time.UTC
	}
	return fmt.Sprintf("Current time in %s: %s (TimeZone: %s)", city, c.now().In(loc).Format("2006-01-02 15:04:05"), zone)
}

func (c *Client) remoteTime(ctx context.Context, city, zone string) (string, error) {
	u := fmt.Sprintf("%s/api/Time/current/zone?timeZone=%s", c.endpoint, url.QueryEscape(zone))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("time request failed with status %d", resp.StatusCode)
	}

	var decoded timeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", err
	}
	if decoded.DateTime == "" {
		return "", fmt.Errorf("time response missing dateTime")
	}
	return fmt.Sprintf("Current time in %s: %s (TimeZone: %s)", city, decoded.DateTime, decoded.TimeZone), nil
}
