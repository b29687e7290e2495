package cmd

import (
	"netdoc/engine"
	"netdoc/ui"
)

// runWatch starts the live TUI.
func runWatch(eng *engine.Engine, cfg Config) error {
	return ui.Run(eng, cfg.Interval, cfg.FixMode, cfg.ProblemReported)
}
