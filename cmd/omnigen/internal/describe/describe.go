// Package describe implements the "omnigen describe" command.
package describe

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"

	"github.com/broady/omnigen/cmd/omnigen/internal/cli"
	"github.com/broady/omnigen/modelfile"
	"github.com/broady/omnigen/omni"
	"github.com/broady/omnigen/omni/traverse"
)

type Cmd struct {
	File string `arg:"" help:"Model document." type:"existingfile"`
	Dump bool   `help:"Dump the raw type graph instead of descriptors."`
}

var dumper = spew.ConfigState{
	Indent:                  "  ",
	MaxDepth:                8,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Run prints one line per reachable type, followed by its properties.
func (c *Cmd) Run(g *cli.Globals) error {
	doc, err := modelfile.Load(c.File)
	if err != nil {
		return errors.Wrapf(err, "load %s", c.File)
	}
	model, err := doc.Model()
	if err != nil {
		return errors.Wrapf(err, "build %s", c.File)
	}

	w := g.Out()
	if c.Dump {
		dumper.Fdump(w, model)
		return nil
	}
	for _, t := range traverse.AllExportableTypes(model) {
		fmt.Fprintln(w, omni.Describe(t))
		for _, p := range omni.PropertiesOf(t) {
			fmt.Fprintf(w, "  %s: %s\n", p.Name, omni.Describe(p.Type))
		}
	}
	return nil
}
