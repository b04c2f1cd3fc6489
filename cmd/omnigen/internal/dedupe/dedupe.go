// Package dedupe implements the "omnigen dedupe" command.
package dedupe

import (
	"context"

	"github.com/pkg/errors"

	"github.com/broady/omnigen"
	"github.com/broady/omnigen/cmd/omnigen/internal/cli"
	"github.com/broady/omnigen/modelfile"
	"github.com/broady/omnigen/omni"
)

type Cmd struct {
	Files []string `arg:"" help:"Model documents to merge."`

	cli.OptionFlags
	cli.OutputFlags
}

// Report lists the types that were merged across models.
type Report struct {
	Models       []string      `json:"models" yaml:"models"`
	Replacements []Replacement `json:"replacements" yaml:"replacements"`
}

// Replacement is one merged type.
type Replacement struct {
	Model string `json:"model" yaml:"model"`
	From  string `json:"from" yaml:"from"`
	To    string `json:"to" yaml:"to"`
}

// Run transforms all documents in parallel with one set of options, then
// merges types that are structurally identical across them.
func (c *Cmd) Run(g *cli.Globals) error {
	ctx := context.Background()

	opts, err := c.Apply(omnigen.DefaultOptions())
	if err != nil {
		return err
	}
	opts.Deduplicate = true

	models := make([]*omni.Model, len(c.Files))
	for i, path := range c.Files {
		doc, err := modelfile.Load(path)
		if err != nil {
			return errors.Wrapf(err, "load %s", path)
		}
		if models[i], err = doc.Model(); err != nil {
			return errors.Wrapf(err, "build %s", path)
		}
		models[i].Name = cli.ModelName(doc, path)
	}

	res, err := omnigen.New().WithOptions(opts).WithLogger(g.Logger()).RunAll(ctx, models...)
	if err != nil {
		return err
	}

	report := &Report{}
	for _, m := range models {
		report.Models = append(report.Models, m.Name)
	}
	for _, r := range res.Replacements {
		if r.From == r.To {
			continue
		}
		report.Replacements = append(report.Replacements, Replacement{
			Model: r.Root.(*omni.Model).Name,
			From:  omni.Describe(r.From),
			To:    omni.Describe(r.To),
		})
	}

	out := c.Sink(g)
	if err := c.Write(ctx, out, "dedupe", report); err != nil {
		return err
	}
	for _, r := range res.Results {
		if err := c.Write(ctx, out, r.Model.Name, modelfile.Summarize(r)); err != nil {
			return err
		}
	}
	return nil
}
