package config

import (
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/studyhall-lab/studyhall/pkg/domain/interfaces"
	"github.com/studyhall-lab/studyhall/pkg/service/gemini"
)

// Gemini holds CLI flags for the assistant API. The serve command reads
// the key from the persisted settings instead; this flag backs the
// one-shot commands.
type Gemini struct {
	apiKey   string
	endpoint string
}

// Flags returns CLI flags for Gemini configuration
func (x *Gemini) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gemini-api-key",
			Usage:       "Gemini API key (empty runs in demo mode with canned responses)",
			Category:    "Gemini",
			Sources:     cli.EnvVars("STUDYHALL_GEMINI_API_KEY"),
			Destination: &x.apiKey,
		},
		&cli.StringFlag{
			Name:        "gemini-endpoint",
			Usage:       "Gemini generateContent endpoint override",
			Category:    "Gemini",
			Value:       gemini.DefaultEndpoint,
			Sources:     cli.EnvVars("STUDYHALL_GEMINI_ENDPOINT"),
			Destination: &x.endpoint,
		},
	}
}

func (x Gemini) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("api-key.len", len(x.apiKey)),
		slog.String("endpoint", x.endpoint),
	)
}

// APIKey returns the configured API key
func (x *Gemini) APIKey() string {
	return x.apiKey
}

// Configure creates the assistant client. An empty key is allowed and
// yields a client serving canned content only.
func (x *Gemini) Configure() interfaces.AssistantClient {
	return gemini.New(x.apiKey, gemini.WithEndpoint(x.endpoint))
}
