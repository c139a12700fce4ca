package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrent(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		assert.Equal(t, "owm-key", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		w.Write([]byte(`{
			"name": "Mumbai",
			"weather": [{"description": "haze"}],
			"main": {"temp": 31.2, "feels_like": 35.8, "humidity": 70},
			"wind": {"speed": 3.6}
		}`))
	}))
	defer srv.Close()

	c := New("owm-key", WithEndpoint(srv.URL))

	report, err := c.Current(context.Background(), "Mumbai")

	require.NoError(t, err)
	assert.Equal(t, "Mumbai", gotQuery)
	assert.Equal(t, "Mumbai", report.City)
	assert.Equal(t, "haze", report.Description)
	assert.InDelta(t, 31.2, report.TempC, 0.001)
	assert.Equal(t, 70, report.Humidity)
	assert.Contains(t, report.String(), "Weather in Mumbai")
}

func TestCurrent_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "city not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := New("owm-key", WithEndpoint(srv.URL))

	_, err := c.Current(context.Background(), "nowhere")

	assert.Error(t, err)
}

func TestCurrent_NotConfigured(t *testing.T) {
	_, err := New("").Current(context.Background(), "Mumbai")
	assert.Error(t, err)
}
