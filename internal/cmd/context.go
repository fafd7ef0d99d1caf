package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/MrJJimenez/awwjobs/internal/config"
	"github.com/MrJJimenez/awwjobs/internal/models"
	"github.com/MrJJimenez/awwjobs/internal/scraper"
	"github.com/MrJJimenez/awwjobs/internal/ui"
	"github.com/rs/zerolog"
)

// SourceFactory builds the pipeline for a command. Tests replace it with a fake.
type SourceFactory func(cfg models.ScraperConfig, logger zerolog.Logger) (scraper.Source, error)

type Context struct {
	Out        io.Writer
	Err        io.Writer
	UI         *ui.UI
	Config     config.Config
	ConfigDir  string
	Logger     zerolog.Logger
	Verbose    bool
	JSONOutput bool
	PlainText  bool
	Version    string
	ColorMode  ui.ColorMode
	NewSource  SourceFactory
}

func buildSource(cfg models.ScraperConfig, logger zerolog.Logger) (scraper.Source, error) {
	return scraper.Build(cfg, logger)
}

// source resolves proxies and builds the pipeline from the loaded config.
func (c *Context) source(proxiesFlag string) (scraper.Source, error) {
	proxies, err := config.LoadProxies(proxiesFlag)
	if err != nil {
		return nil, err
	}
	factory := c.NewSource
	if factory == nil {
		factory = buildSource
	}
	return factory(c.Config.ScraperConfig(proxies), c.Logger)
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
