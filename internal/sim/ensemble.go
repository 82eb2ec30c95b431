package sim

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// Member is one independent run: its own simulator, its own state.
type Member struct {
	Simulator *Simulator
	State     *State
}

// Ensemble runs members side by side, one goroutine each. Members must not
// share a simulator or a state.
type Ensemble struct {
	members []Member
}

func NewEnsemble(members ...Member) *Ensemble {
	return &Ensemble{members: members}
}

func (e *Ensemble) Len() int { return len(e.members) }

// Run returns one result per member, in order. Every member runs to the end
// even if another fails; the failures are collected into one error.
func (e *Ensemble) Run(ctx context.Context, cfg RunConfig) ([]*Result, error) {
	results := make([]*Result, len(e.members))
	errs := make([]error, len(e.members))

	var wg sync.WaitGroup
	for i, m := range e.members {
		wg.Add(1)
		go func(idx int, m Member) {
			defer wg.Done()
			results[idx], errs[idx] = m.Simulator.Run(ctx, m.State, cfg)
		}(i, m)
	}
	wg.Wait()

	var merr *multierror.Error
	for i, err := range errs {
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("member %d: %w", i, err))
		}
	}
	return results, merr.ErrorOrNil()
}
