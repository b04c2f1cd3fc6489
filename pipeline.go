package omnigen

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/broady/omnigen/omni"
	"github.com/broady/omnigen/omni/merge"
	"github.com/broady/omnigen/omni/transform"
)

// Pipeline runs the model transformations.
// Create with New() and configure with method chaining.
//
// Example:
//
//	res, err := omnigen.New().
//	    WithOptions(opts).
//	    WithLogger(logger).
//	    Run(model)
type Pipeline struct {
	opts   Options
	logger *slog.Logger
}

// Result is the outcome of running a Pipeline over one model.
type Result struct {
	Model *omni.Model

	// Diagnostics lists every optimization that was skipped, in pass order.
	Diagnostics omni.Diagnostics

	// GenericMappings links each hoisted supertype to its generic form.
	GenericMappings []*transform.GenericMapping

	// Elevated is the number of properties moved to a supertype.
	Elevated int
}

// RunAllResult is the outcome of RunAll.
type RunAllResult struct {
	// Results holds one Result per input model, in input order.
	Results []*Result

	// Replacements is the applied deduplication plan. Empty unless
	// Options.Deduplicate is set.
	Replacements []merge.Replacement
}

// New creates a Pipeline with DefaultOptions.
func New() *Pipeline {
	return &Pipeline{opts: DefaultOptions()}
}

// WithOptions replaces the pipeline options.
func (p *Pipeline) WithOptions(opts Options) *Pipeline {
	p.opts = opts
	return p
}

// WithLogger sets the logger diagnostics are forwarded to.
// A nil logger means slog.Default().
func (p *Pipeline) WithLogger(logger *slog.Logger) *Pipeline {
	p.logger = logger
	return p
}

// Options returns the options the pipeline will run with.
func (p *Pipeline) Options() Options {
	return p.opts
}

func (p *Pipeline) log() *slog.Logger {
	if p.logger == nil {
		return slog.Default()
	}
	return p.logger
}

// Run transforms model in place: property elevation, then generics
// hoisting, then inheritance simplification. Errors are *Error values.
func (p *Pipeline) Run(model *omni.Model) (*Result, error) {
	return p.run(context.Background(), model)
}

func (p *Pipeline) run(ctx context.Context, model *omni.Model) (*Result, error) {
	if model == nil {
		return nil, NewError(CodeInvalidModel, "model is nil")
	}
	if err := p.opts.Validate(); err != nil {
		return nil, DefaultErrorTransformer(err)
	}
	logger := p.log()
	topts := p.opts.toTransform()
	start := time.Now()

	res := &Result{Model: model}
	res.Elevated = transform.ElevateProperties(model, topts)

	gen, err := transform.Generics(model, topts)
	if gen != nil {
		res.Diagnostics = append(res.Diagnostics, gen.Diagnostics...)
		res.GenericMappings = gen.Mappings
	}
	if err != nil {
		return res, p.fail(ctx, model, errors.Wrap(err, "generics"))
	}

	if err := transform.SimplifyInheritance(model, topts); err != nil {
		return res, p.fail(ctx, model, errors.Wrap(err, "simplify inheritance"))
	}

	for _, d := range res.Diagnostics {
		level := slog.LevelWarn
		if informational(d.Code) {
			level = slog.LevelDebug
		}
		logger.Log(ctx, level, d.Message,
			slog.String("model", model.Name),
			slog.String("code", d.Code),
			slog.String("type", omni.Describe(d.Type)),
		)
	}

	logger.InfoContext(ctx, "model transformed",
		slog.String("model", model.Name),
		slog.Int("elevated", res.Elevated),
		slog.Int("generics", len(res.GenericMappings)),
		slog.Int("diagnostics", len(res.Diagnostics)),
		slog.Duration("duration", time.Since(start)),
	)
	return res, nil
}

func (p *Pipeline) fail(ctx context.Context, model *omni.Model, err error) error {
	out := DefaultErrorTransformer(err)
	p.log().ErrorContext(ctx, "model transform failed",
		slog.String("model", model.Name),
		slog.Any("error", err),
	)
	return out
}

// RunAll runs the pipeline over independent models in parallel and, when
// Options.Deduplicate is set, merges structurally identical types across
// them afterwards. Models must not share mutable nodes.
func (p *Pipeline) RunAll(ctx context.Context, models ...*omni.Model) (*RunAllResult, error) {
	out := &RunAllResult{Results: make([]*Result, len(models))}

	g, gctx := errgroup.WithContext(ctx)
	for i, m := range models {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := p.run(gctx, m)
			out.Results[i] = res
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return out, err
	}

	if !p.opts.Deduplicate || len(models) < 2 {
		return out, nil
	}
	roots := make([]omni.TypeOwner, len(models))
	for i, m := range models {
		roots[i] = m
	}
	out.Replacements = merge.GetReplacements(roots...)
	if err := merge.ApplyReplacements(out.Replacements, p.opts.SwapMaxDepth); err != nil {
		return out, p.fail(ctx, models[0], err)
	}
	p.log().InfoContext(ctx, "models deduplicated",
		slog.Int("models", len(models)),
		slog.Int("replacements", len(out.Replacements)),
	)
	return out, nil
}

func informational(code string) bool {
	switch code {
	case omni.DiagGenericNoBenefit, omni.DiagCommonNameFallback:
		return true
	}
	return false
}
