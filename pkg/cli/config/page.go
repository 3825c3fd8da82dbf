package config

import (
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/studyhall-lab/studyhall/pkg/service/injector"
)

// Page holds CLI flags for the page injection behavior
type Page struct {
	configPath string
}

// pageFile is the TOML shape of the injection config file:
//
//	[injection]
//	selectors = ["#main", "body"]
//	retry_interval = "500ms"
type pageFile struct {
	Injection struct {
		Selectors     []string `toml:"selectors"`
		RetryInterval string   `toml:"retry_interval"`
	} `toml:"injection"`
}

// Flags returns CLI flags for page configuration
func (x *Page) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "page-config",
			Usage:       "TOML file overriding the mount selector list and retry interval",
			Category:    "Page",
			Sources:     cli.EnvVars("STUDYHALL_PAGE_CONFIG"),
			Destination: &x.configPath,
		},
	}
}

// Configure loads the injection config file into injector options. Without
// a file the built-in defaults apply.
func (x *Page) Configure() ([]injector.Option, error) {
	if x.configPath == "" {
		return nil, nil
	}

	raw, err := os.ReadFile(x.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(ErrConfigNotFound, "page config", goerr.V(ConfigPathKey, x.configPath))
		}
		return nil, goerr.Wrap(err, "failed to read page config", goerr.V(ConfigPathKey, x.configPath))
	}

	var file pageFile
	if err := toml.Unmarshal(raw, &file); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, err.Error(), goerr.V(ConfigPathKey, x.configPath))
	}

	var opts []injector.Option
	if len(file.Injection.Selectors) > 0 {
		opts = append(opts, injector.WithSelectors(file.Injection.Selectors))
	}
	if file.Injection.RetryInterval != "" {
		d, err := time.ParseDuration(file.Injection.RetryInterval)
		if err != nil || d <= 0 {
			return nil, goerr.Wrap(ErrInvalidConfig, "retry_interval must be a positive duration",
				goerr.V(ConfigPathKey, x.configPath),
				goerr.V("retry_interval", file.Injection.RetryInterval),
			)
		}
		opts = append(opts, injector.WithRetryInterval(d))
	}

	return opts, nil
}
