// Package run implements the "omnigen run" command.
package run

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/broady/omnigen"
	"github.com/broady/omnigen/cmd/omnigen/internal/cli"
	"github.com/broady/omnigen/modelfile"
)

type Cmd struct {
	Files []string `arg:"" help:"Model documents (.yaml, .yml or .json)."`

	cli.OptionFlags
	cli.OutputFlags
}

// Run transforms each document with its own options plus any --set
// overrides and writes a summary per model.
func (c *Cmd) Run(g *cli.Globals) error {
	ctx := context.Background()
	logger := g.Logger()
	out := c.Sink(g)

	for _, path := range c.Files {
		doc, err := modelfile.Load(path)
		if err != nil {
			return errors.Wrapf(err, "load %s", path)
		}
		opts, err := c.Apply(*doc.Options)
		if err != nil {
			return err
		}
		model, err := doc.Model()
		if err != nil {
			return errors.Wrapf(err, "build %s", path)
		}
		model.Name = cli.ModelName(doc, path)

		res, err := omnigen.New().
			WithOptions(opts).
			WithLogger(logger.With(slog.String("file", path))).
			Run(model)
		if err != nil {
			return err
		}
		if err := c.Write(ctx, out, model.Name, modelfile.Summarize(res)); err != nil {
			return err
		}
	}
	return nil
}
