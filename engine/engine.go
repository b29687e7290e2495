// Package engine scores probe measurements, classifies network problems,
// and dispatches remediation actions against an OS network controller.
package engine

import (
	"context"
	"os"

	"go.uber.org/zap"

	"netdoc/collector"
	"netdoc/model"
)

// Engine runs the full diagnostic cycle: probe collection, scoring,
// classification, remediation dispatch, and report assembly. It holds no
// per-run state; every Run works from a fresh probe result.
type Engine struct {
	registry   *collector.Registry
	dispatcher *Dispatcher
	log        *zap.Logger
}

// RunOptions controls one diagnostic run.
type RunOptions struct {
	// Fix enables remediation dispatch for classified problems. Without
	// it the run is read-only: score and classify, touch nothing.
	Fix bool

	// ProblemReported carries the caller's intent signal; see
	// ClassifyOptions.
	ProblemReported bool
}

// New creates an engine from its collaborators.
func New(registry *collector.Registry, dispatcher *Dispatcher, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		registry:   registry,
		dispatcher: dispatcher,
		log:        log,
	}
}

// Run collects a fresh probe result and produces a diagnostic report.
func (e *Engine) Run(ctx context.Context, opts RunOptions) *model.DiagnosticReport {
	probe := e.registry.CollectAll(ctx)
	return e.RunWithProbe(ctx, probe, opts)
}

// RunWithProbe scores, classifies, optionally dispatches, and assembles a
// report from an externally collected probe result. The caller always gets
// a complete report; probe and action failures are captured as data.
func (e *Engine) RunWithProbe(ctx context.Context, probe *model.ProbeResult, opts RunOptions) *model.DiagnosticReport {
	assessment := Score(probe)
	cats := Classify(probe, ClassifyOptions{ProblemReported: opts.ProblemReported})

	e.log.Info("diagnostic assessed",
		zap.Int("total_score", assessment.TotalScore),
		zap.Stringer("status", assessment.OverallStatus),
		zap.Int("problems", len(cats)))

	var outcomes map[model.ProblemCategory][]model.RemediationOutcome
	if opts.Fix && len(cats) > 0 {
		outcomes = e.dispatcher.Dispatch(ctx, cats)
	}

	rep := Assemble(assessment, cats, outcomes)
	rep.Hostname, _ = os.Hostname()
	return &rep
}
