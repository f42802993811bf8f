// Package rules implements the prioritized chapter/heading resolver chain:
// legally mandated overrides first, then material routing, then the
// external classification oracle.
package rules

import (
	"context"
	"fmt"

	"github.com/chrishsmith/sourcify-sub003/internal/model"
)

// HeadingRoute is a resolved chapter/heading pair with the rationale for
// picking it.
type HeadingRoute struct {
	Chapter       string
	Heading       string
	Justification string
	// Source names the resolver that produced the route.
	Source string
	// Confidence is the resolver's own certainty in [0,1].
	Confidence float64
}

// HeadingResolver is one link in the resolution chain. Resolve returns
// nil when the resolver has no answer, signaling the chain to continue.
type HeadingResolver interface {
	Name() string
	Resolve(ctx context.Context, u *model.ProductUnderstanding) (*HeadingRoute, error)
}

// Chain tries resolvers in order; the first non-nil route wins. Adding
// or reordering resolvers is a data change, not a logic change.
type Chain struct {
	resolvers []HeadingResolver
}

// NewChain builds a chain from resolvers in priority order.
func NewChain(resolvers ...HeadingResolver) *Chain {
	return &Chain{resolvers: resolvers}
}

// Resolve walks the chain. A resolver error stops the walk: errors here
// are either fatal validation failures or oracle unavailability, and the
// caller decides which recovery applies.
func (c *Chain) Resolve(ctx context.Context, u *model.ProductUnderstanding) (*HeadingRoute, error) {
	for _, r := range c.resolvers {
		route, err := r.Resolve(ctx, u)
		if err != nil {
			return nil, fmt.Errorf("resolver %s: %w", r.Name(), err)
		}
		if route != nil {
			return route, nil
		}
	}
	return nil, nil
}
