package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/prem-acharya/ai-agent-backend/ai/llm"
	"github.com/prem-acharya/ai-agent-backend/ai/metrics"
	"github.com/prem-acharya/ai-agent-backend/ai/session"
	"github.com/prem-acharya/ai-agent-backend/ai/tools"
	"github.com/prem-acharya/ai-agent-backend/ai/tools/clock"
	"github.com/prem-acharya/ai-agent-backend/ai/tools/weather"
	"github.com/prem-acharya/ai-agent-backend/ai/tools/websearch"
	"github.com/prem-acharya/ai-agent-backend/internal/profile"
	apiv1 "github.com/prem-acharya/ai-agent-backend/server/router/api/v1"
)

type Server struct {
	Profile *profile.Profile

	echoServer *echo.Echo
	metrics    *metrics.PrometheusExporter
}

func NewServer(ctx context.Context, instanceProfile *profile.Profile) (*Server, error) {
	location, err := time.LoadLocation(instanceProfile.Timezone)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid timezone %q", instanceProfile.Timezone)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			slog.Info("request", "method", v.Method, "uri", v.URI, "status", v.Status)
			return nil
		},
	}))

	exporter := metrics.NewPrometheusExporter(metrics.DefaultConfig())

	var searchClient *websearch.Client
	if instanceProfile.TavilyAPIKey != "" {
		var opts []websearch.Option
		if instanceProfile.TavilyAPIURL != "" {
			opts = append(opts, websearch.WithEndpoint(instanceProfile.TavilyAPIURL))
		}
		searchClient = websearch.New(instanceProfile.TavilyAPIKey, opts...)
	}
	var weatherClient *weather.Client
	if instanceProfile.WeatherAPIKey != "" {
		weatherClient = weather.New(instanceProfile.WeatherAPIKey)
	}

	chatSession := session.New(session.Config{
		Providers:     llm.NewRegistry(providerConfigs(instanceProfile)),
		Tasks:         tools.NewTasks(location),
		Calendar:      tools.NewCalendar(location),
		Search:        searchClient,
		Clock:         clock.New(instanceProfile.Timezone),
		Weather:       weatherClient,
		Metrics:       exporter,
		MaxConcurrent: int64(instanceProfile.MaxConcurrentChats),
	})

	s := &Server{
		Profile:    instanceProfile,
		echoServer: e,
		metrics:    exporter,
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "Service ready.")
	})
	e.GET("/metrics", echo.WrapHandler(exporter.Handler()))

	apiv1.NewAPIV1Service(instanceProfile, chatSession).RegisterRoutes(e)

	return s, nil
}

func (s *Server) Start(_ context.Context) error {
	address := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)

	go func() {
		var err error
		if s.Profile.UNIXSock != "" {
			err = startUnixSocketServer(s.echoServer, s.Profile.UNIXSock)
		} else {
			err = s.echoServer.Start(address)
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to start echo server", "error", err)
		}
	}()

	return nil
}

func (s *Server) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := s.echoServer.Shutdown(ctx); err != nil {
		slog.Error("failed to shutdown server", "error", err)
	}

	slog.Info("server stopped properly")
}

func startUnixSocketServer(e *echo.Echo, path string) error {
	// A stale socket from an unclean shutdown blocks the bind.
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "failed to remove stale socket %q", path)
	}
	listener, err := net.Listen("unix", path)
	if err != nil {
		return errors.Wrapf(err, "failed to listen on %q", path)
	}
	if err := os.Chmod(path, 0o660); err != nil {
		return errors.Wrapf(err, "failed to chmod socket %q", path)
	}
	e.Listener = listener
	return e.Start("")
}

// providerConfigs maps the profile's credentials onto provider
// connection settings, one entry per configured kind.
func providerConfigs(p *profile.Profile) map[string]llm.Config {
	configs := make(map[string]llm.Config)
	if p.GeminiAPIKey != "" {
		configs["gemini"] = llm.Config{
			Kind:    "gemini",
			APIKey:  p.GeminiAPIKey,
			Model:   p.GeminiModel,
			Timeout: p.LLMTimeout,
		}
	}
	if p.OpenAIAPIKey != "" {
		configs["openai"] = llm.Config{
			Kind:    "openai",
			APIKey:  p.OpenAIAPIKey,
			BaseURL: p.OpenAIBaseURL,
			Model:   p.OpenAIModel,
			Timeout: p.LLMTimeout,
		}
	}
	if p.GPT4oAPIKey != "" {
		configs["gpt4o"] = llm.Config{
			Kind:    "gpt4o",
			APIKey:  p.GPT4oAPIKey,
			Model:   p.GPT4oModel,
			Timeout: p.LLMTimeout,
		}
	}
	if p.DeepSeekAPIKey != "" {
		configs["deepseek"] = llm.Config{
			Kind:    "deepseek",
			APIKey:  p.DeepSeekAPIKey,
			Model:   p.DeepSeekModel,
			Timeout: p.LLMTimeout,
		}
	}
	return configs
}
