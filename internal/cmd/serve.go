package cmd

import (
	"github.com/MrJJimenez/awwjobs/internal/api"
)

type ServeCmd struct {
	Addr    string `help:"Listen address (default from config, 127.0.0.1:8000)."`
	Proxies string `help:"Comma-separated proxy URLs." env:"AWWJOBS_PROXIES"`
}

func (s *ServeCmd) Run(ctx *Context) error {
	source, err := ctx.source(s.Proxies)
	if err != nil {
		return err
	}

	addr := firstNonEmpty(s.Addr, ctx.Config.Addr)
	handler := api.NewHandler(api.Deps{
		Source:  source,
		AppName: ctx.Config.AppName,
		Version: ctx.Version,
		Logger:  ctx.Logger,
	})

	runCtx, stop := signalContext()
	defer stop()

	ctx.Logger.Info().
		Str("source", source.SourceURL()).
		Int("concurrency", ctx.Config.Concurrency).
		Msg("starting api")
	return api.NewServer(addr, handler, ctx.Logger).ListenAndServe(runCtx)
}
