package main

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/broady/omnigen/cmd/omnigen/internal/cli"
	"github.com/broady/omnigen/cmd/omnigen/internal/dedupe"
	"github.com/broady/omnigen/cmd/omnigen/internal/describe"
	"github.com/broady/omnigen/cmd/omnigen/internal/run"
)

type CLI struct {
	cli.Globals

	Version  VersionCmd   `cmd:"" help:"Print version information."`
	Run      run.Cmd      `cmd:"" help:"Transform model documents and write a summary per model."`
	Dedupe   dedupe.Cmd   `cmd:"" help:"Transform model documents and merge identical types across them."`
	Describe describe.Cmd `cmd:"" help:"Print the types of a model document."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run(g *cli.Globals) error {
	fmt.Fprintln(g.Out(), Version())
	return nil
}

func main() {
	c := &CLI{}
	ctx := kong.Parse(c,
		kong.Name("omnigen"),
		kong.Description("Optimize omni type models: hoist generics, compress hierarchies and merge duplicates."),
		kong.UsageOnError(),
	)
	err := ctx.Run(&c.Globals)
	ctx.FatalIfErrorf(err)
}
