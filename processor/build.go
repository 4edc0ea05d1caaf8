package processor

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/erraggy/apitestgen/assembler"
	"github.com/erraggy/apitestgen/definition"
)

// Built pairs a unit with its reassembled standalone definition.
type Built struct {
	Unit       definition.Unit
	Definition string
}

// BuildAll reassembles every filtered unit of def into a standalone
// definition, running up to the configured concurrency at once. Results are
// returned in unit order. The first failure cancels outstanding work.
func BuildAll(ctx context.Context, def *Definition, opts ...Option) ([]Built, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}

	asm, err := assembler.New(def.Base)
	if err != nil {
		return nil, err
	}

	units := def.Filtered()
	out := make([]Built, len(units))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.concurrency)
	for i, u := range units {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			text, err := asm.BuildUnit(u, cfg.filterSchemas)
			if err != nil {
				return err
			}
			out[i] = Built{Unit: u, Definition: text}
			cfg.logger.Debug("built unit", "unit", u.String())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("processor: build failed: %w", err)
	}
	return out, nil
}
