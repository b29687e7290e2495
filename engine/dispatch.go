package engine

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"netdoc/model"
	"netdoc/netctl"
)

// DefaultActionTimeout bounds one network-control call. Service restarts
// can take several seconds; a hung one must not stall the whole dispatch.
const DefaultActionTimeout = 8 * time.Second

// Dispatcher walks remediation catalogs against a network controller.
// Actions within one category run strictly in order, stopping at the first
// success; independent categories may run concurrently.
type Dispatcher struct {
	ctl           netctl.Controller
	log           *zap.Logger
	actionTimeout time.Duration
	parallel      bool
}

// NewDispatcher creates a dispatcher. A zero actionTimeout selects
// DefaultActionTimeout.
func NewDispatcher(ctl netctl.Controller, log *zap.Logger, actionTimeout time.Duration, parallel bool) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	if actionTimeout <= 0 {
		actionTimeout = DefaultActionTimeout
	}
	return &Dispatcher{
		ctl:           ctl,
		log:           log,
		actionTimeout: actionTimeout,
		parallel:      parallel,
	}
}

// Dispatch runs the catalog for each active category and returns every
// attempt, keyed by category. A controller error is recorded as a failed
// outcome, never propagated; the caller always gets a complete map.
func (d *Dispatcher) Dispatch(ctx context.Context, cats []model.ProblemCategory) map[model.ProblemCategory][]model.RemediationOutcome {
	results := make(map[model.ProblemCategory][]model.RemediationOutcome, len(cats))

	if !d.parallel || len(cats) < 2 {
		for _, cat := range cats {
			results[cat] = d.dispatchCategory(ctx, cat)
		}
		return results
	}

	var mu sync.Mutex
	var g errgroup.Group
	for _, cat := range cats {
		cat := cat
		g.Go(func() error {
			outcomes := d.dispatchCategory(ctx, cat)
			mu.Lock()
			results[cat] = outcomes
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// dispatchCategory walks one category's action list in order.
func (d *Dispatcher) dispatchCategory(ctx context.Context, cat model.ProblemCategory) []model.RemediationOutcome {
	actions := ActionsFor(cat)
	if actions == nil {
		// Closed enum; this is a defect, not a runtime condition.
		d.log.Error("no catalog entry for category", zap.Stringer("category", cat))
		return nil
	}

	outcomes := make([]model.RemediationOutcome, 0, len(actions))
	for _, a := range actions {
		if a.Op == "" {
			outcomes = append(outcomes, model.RemediationOutcome{
				Action: a.Name,
				Detail: a.Guidance,
			})
			continue
		}

		actx, cancel := context.WithTimeout(ctx, d.actionTimeout)
		detail, err := d.ctl.Apply(actx, a.Op)
		cancel()

		if err != nil {
			d.log.Warn("remediation action failed",
				zap.Stringer("category", cat),
				zap.String("action", a.Name),
				zap.Error(err))
			outcomes = append(outcomes, model.RemediationOutcome{
				Action: a.Name,
				Detail: err.Error(),
			})
			continue
		}

		d.log.Info("remediation action succeeded",
			zap.Stringer("category", cat),
			zap.String("action", a.Name))
		outcomes = append(outcomes, model.RemediationOutcome{
			Action:    a.Name,
			Succeeded: true,
			Detail:    detail,
		})
		break // first success ends the category
	}
	return outcomes
}
