package cmd

import (
	"github.com/alecthomas/kong"
)

type CLI struct {
	Color   string `help:"Color output: auto, always, never." enum:"auto,always,never" default:"auto" env:"AWWJOBS_COLOR"`
	JSON    bool   `help:"JSON output to stdout; disables colors." env:"AWWJOBS_JSON"`
	Plain   bool   `help:"TSV output to stdout; disables colors."`
	Verbose bool   `help:"Enable debug logging." env:"AWWJOBS_VERBOSE"`

	VersionFlag kong.VersionFlag `name:"version" help:"Print version."`

	Version VersionCmd `cmd:"" help:"Print version."`
	Config  ConfigCmd  `cmd:"" help:"Manage configuration."`
	Serve   ServeCmd   `cmd:"" help:"Run the JSON API."`
	Jobs    JobsCmd    `cmd:"" help:"List jobs from one listing page."`
	Job     JobCmd     `cmd:"" help:"Show a single job by id."`
	Proxies ProxiesCmd `cmd:"" help:"Proxy utilities."`
}

func NewCLI() *CLI {
	return &CLI{}
}
