package cmd

import "fmt"

type VersionCmd struct{}

func (v *VersionCmd) Run(ctx *Context) error {
	_, err := fmt.Fprintf(ctx.Out, "%s %s\n", ctx.Config.AppName, ctx.Version)
	return err
}
