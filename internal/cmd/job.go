package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/MrJJimenez/awwjobs/internal/export"
)

type JobCmd struct {
	ID string `arg:"" help:"Job id, the slug of its detail page (e.g. senior-designer)."`
	OutputOptions
	Proxies string `help:"Comma-separated proxy URLs." env:"AWWJOBS_PROXIES"`
}

func (j *JobCmd) Run(ctx *Context) error {
	id := strings.TrimSpace(j.ID)
	if id == "" {
		return fmt.Errorf("job id is required")
	}
	source, err := ctx.source(j.Proxies)
	if err != nil {
		return err
	}

	runCtx, stop := signalContext()
	defer stop()

	record, err := source.JobByID(runCtx, id)
	if err != nil {
		return err
	}

	return writeOutput(ctx, j.OutputOptions, func(w io.Writer, format export.Format, opts export.WriteOptions) error {
		return export.WriteRecord(w, record, format, opts)
	})
}
