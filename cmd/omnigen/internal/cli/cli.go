// Package cli holds flags and helpers shared by omnigen subcommands.
package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/broady/omnigen"
	"github.com/broady/omnigen/modelfile"
	"github.com/broady/omnigen/sink"
)

// Globals are flags accepted by every subcommand.
type Globals struct {
	LogLevel string `help:"Log level." enum:"debug,info,warn,error" default:"warn" name:"log-level"`

	Stdout io.Writer `kong:"-"`
	Stderr io.Writer `kong:"-"`
}

// Logger returns a text logger writing to Stderr at LogLevel.
func (g *Globals) Logger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(g.LogLevel)); err != nil {
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(g.stderr(), &slog.HandlerOptions{Level: level}))
}

// Out returns the standard output writer.
func (g *Globals) Out() io.Writer {
	if g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

func (g *Globals) stderr() io.Writer {
	if g.Stderr == nil {
		return os.Stderr
	}
	return g.Stderr
}

// OptionFlags override pipeline options with key=value pairs.
type OptionFlags struct {
	Set []string `help:"Override a pipeline option, e.g. --set generify_types=false." short:"s" placeholder:"KEY=VALUE"`
}

// Apply decodes the --set pairs on top of base.
func (f OptionFlags) Apply(base omnigen.Options) (omnigen.Options, error) {
	values := make(map[string][]string, len(f.Set))
	for _, kv := range f.Set {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return omnigen.Options{}, omnigen.Errorf(omnigen.CodeInvalidOptions, "--set %q: want KEY=VALUE", kv)
		}
		values[k] = append(values[k], v)
	}
	return base.With(values)
}

// OutputFlags pick where and how results are written.
type OutputFlags struct {
	Out    string `help:"Output directory. Results go to stdout when empty." short:"o" type:"path"`
	Format string `help:"Output format." enum:"yaml,json" default:"yaml" short:"f"`
}

// Sink returns the sink selected by the flags.
func (f OutputFlags) Sink(g *Globals) sink.Sink {
	if f.Out == "" {
		return sink.NewWriter(g.Out())
	}
	return sink.NewDir(f.Out)
}

// Write encodes v and stores it as name plus the format's extension.
func (f OutputFlags) Write(ctx context.Context, s sink.Sink, name string, v any) error {
	format := modelfile.Format(f.Format)
	var buf strings.Builder
	if err := modelfile.Encode(&buf, format, v); err != nil {
		return err
	}
	path := FileName(name) + "." + string(format)
	return errors.Wrapf(s.WriteFile(ctx, path, []byte(buf.String())), "write %s", path)
}

// FileName turns a model name into a safe file name.
func FileName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', ' ':
			return '_'
		}
		return r
	}, name)
	if name == "" || name == "." || name == ".." {
		return "model"
	}
	return name
}

// ModelName returns the document name, or the file's base name without extension.
func ModelName(doc *modelfile.Document, path string) string {
	if doc.Name != "" {
		return doc.Name
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
