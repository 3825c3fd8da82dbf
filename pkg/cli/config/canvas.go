package config

import (
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/studyhall-lab/studyhall/pkg/usecase"
)

// Canvas holds CLI flags for the LMS connection
type Canvas struct {
	baseURL      string
	cookie       string
	demoFallback bool
}

// Flags returns CLI flags for Canvas configuration
func (x *Canvas) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "canvas-base-url",
			Usage:       "Canvas LMS base URL (e.g., https://school.instructure.com); overridden by the persisted settings",
			Category:    "Canvas",
			Sources:     cli.EnvVars("STUDYHALL_CANVAS_BASE_URL"),
			Destination: &x.baseURL,
		},
		&cli.StringFlag{
			Name:        "canvas-cookie",
			Usage:       "Canvas session cookie for headless use (the HTTP bridge forwards the browser's cookie instead)",
			Category:    "Canvas",
			Sources:     cli.EnvVars("STUDYHALL_CANVAS_COOKIE"),
			Destination: &x.cookie,
		},
		&cli.BoolFlag{
			Name:        "demo-fallback",
			Usage:       "Serve built-in sample data when Canvas is unreachable",
			Category:    "Canvas",
			Sources:     cli.EnvVars("STUDYHALL_DEMO_FALLBACK"),
			Destination: &x.demoFallback,
		},
	}
}

func (x Canvas) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("base_url", x.baseURL),
		slog.Int("cookie.len", len(x.cookie)),
		slog.Bool("demo_fallback", x.demoFallback),
	)
}

// BaseURL returns the configured Canvas base URL
func (x *Canvas) BaseURL() string {
	return x.baseURL
}

// Cookie returns the static Canvas session cookie
func (x *Canvas) Cookie() string {
	return x.cookie
}

// DemoFallback reports whether sample data fallback is enabled
func (x *Canvas) DemoFallback() bool {
	return x.demoFallback
}

// Options translates the flags into use case options
func (x *Canvas) Options() []usecase.Option {
	return []usecase.Option{
		usecase.WithBaseURL(x.baseURL),
		usecase.WithCookie(x.cookie),
		usecase.WithDemoFallback(x.demoFallback),
	}
}
