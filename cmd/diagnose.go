package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"netdoc/config"
	"netdoc/engine"
	"netdoc/model"
)

// advice maps each problem category to manual guidance shown when
// automation is off or ran out of actions.
var advice = map[model.ProblemCategory]string{
	model.WifiDisconnected:   "Reconnect manually: nmcli device wifi connect <SSID>",
	model.InternetDown:       "Check router/modem power and the WAN uplink",
	model.PoorSignal:         "Move closer to the router or use a WiFi extender",
	model.ExtremeLatency:     "Check for congestion on the network or restart the router",
	model.DNSFailure:         "Try an alternative DNS server (8.8.8.8 or 1.1.1.1)",
	model.GeneralDegradation: "Power-cycle router and device; contact your ISP if it persists",
}

// runDiagnose executes -count diagnostic passes and renders each report.
func runDiagnose(eng *engine.Engine, cfg Config, usercfg config.Config, logger *zap.Logger) error {
	notifier := engine.NewNotifier(engine.AlertConfig{
		Webhook: usercfg.Alerts.Webhook,
		Command: usercfg.Alerts.Command,
	}, logger)

	count := cfg.Count
	if count < 1 {
		count = 1
	}

	var worst error
	for i := 0; i < count; i++ {
		if i > 0 {
			time.Sleep(cfg.Interval)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		rep := eng.Run(ctx, engine.RunOptions{
			Fix:             cfg.FixMode,
			ProblemReported: cfg.ProblemReported,
		})
		cancel()

		if engine.ShouldAlert(rep) {
			notifier.Notify("diagnostic_degraded", rep)
		}

		var err error
		switch {
		case cfg.JSONMode:
			err = renderJSON(rep)
		case cfg.MDMode:
			fmt.Println(renderMarkdown(rep))
		case cfg.CronMode:
			err = renderCron(rep)
		default:
			renderCLI(rep, cfg.FixMode)
			err = exitCodeFor(rep)
		}
		if err != nil {
			worst = err
		}
	}
	return worst
}

// exitCodeFor maps a report to the process exit status: 2 when poor or a
// category exhausted its fixes, 1 when fair, 0 otherwise.
func exitCodeFor(rep *model.DiagnosticReport) error {
	if rep.OverallStatus == model.StatusPoor || rep.AnyExhausted() {
		return ExitCodeError{Code: 2}
	}
	if rep.OverallStatus == model.StatusFair {
		return ExitCodeError{Code: 1}
	}
	return nil
}

// ── CLI Output ──────────────────────────────────────────────────────────────

func renderCLI(rep *model.DiagnosticReport, fixMode bool) {
	ts := rep.Timestamp.Format("2006-01-02 15:04:05")
	fmt.Printf("\n %s%s netdoc v%s %s — %s%s%s  %s%s%s\n\n",
		B, BBlu+FBWht, Version, R,
		B, rep.Hostname, R,
		D, ts, R)

	// Quality section
	fmt.Printf(" %sQuality%s  %s / 100  %s\n\n",
		B, R, scoreColored(rep.TotalScore), statusBadge(rep.OverallStatus))
	a := rep.Assessment
	printDimension("Signal", a.SignalScore, engine.SignalMax)
	printDimension("Latency", a.LatencyScore, engine.LatencyMax)
	printDimension("Reliability", a.ReliabilityScore, engine.ReliabilityMax)
	printDimension("DNS", a.DNSScore, engine.DNSMax)
	fmt.Println()

	// Problems section
	if len(rep.Problems) == 0 {
		fmt.Printf(" %s✓%s  No problems detected\n\n", FBGrn, R)
		return
	}

	for _, cat := range rep.Problems {
		fmt.Printf(" %s✗ %s%s\n", FBRed, cat, R)

		outcomes := rep.Remediations[cat]
		for _, o := range outcomes {
			if o.Succeeded {
				fmt.Printf("   %s✓%s %-26s %s\n", FBGrn, R, o.Action, o.Detail)
			} else {
				fmt.Printf("   %s✗%s %-26s %s%s%s\n", FBRed, R, o.Action, D, o.Detail, R)
			}
		}

		switch {
		case !fixMode:
			fmt.Printf("   %s→ %s%s\n", D, advice[cat], R)
		case rep.CategoryExhausted(cat):
			fmt.Printf("   %s→ couldn't automatically fix this, try manually: %s%s\n", D, advice[cat], R)
		}
	}
	fmt.Println()
}

func printDimension(name string, score, max int) {
	fmt.Printf("   %s %-12s%s %s  %s%d/%d%s\n",
		B, name, R, gauge(score, max), D, score, max, R)
}

// gauge renders a 10-cell bar colored by fill fraction.
func gauge(score, max int) string {
	const cells = 10
	filled := 0
	if max > 0 {
		filled = score * cells / max
	}
	color := FBGrn
	switch {
	case score*3 < max:
		color = FBRed
	case score*3 < max*2:
		color = FBYel
	}
	return color + strings.Repeat("█", filled) + D + strings.Repeat("░", cells-filled) + R
}

func scoreColored(total int) string {
	switch {
	case total >= 80:
		return fmt.Sprintf("%s%s%d%s", B, FBGrn, total, R)
	case total >= 40:
		return fmt.Sprintf("%s%d%s", FBYel, total, R)
	default:
		return fmt.Sprintf("%s%s%d%s", B, FBRed, total, R)
	}
}

func statusBadge(s model.Status) string {
	switch s {
	case model.StatusExcellent:
		return fmt.Sprintf("%s%sEXCELLENT%s", B, FBGrn, R)
	case model.StatusGood:
		return fmt.Sprintf("%sGOOD%s", FBGrn, R)
	case model.StatusFair:
		return fmt.Sprintf("%sFAIR%s", FBYel, R)
	default:
		return fmt.Sprintf("%s%sPOOR%s", B, FBRed, R)
	}
}

// ── JSON Output ─────────────────────────────────────────────────────────────

func renderJSON(rep *model.DiagnosticReport) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

// ── Markdown Output ─────────────────────────────────────────────────────────

func renderMarkdown(rep *model.DiagnosticReport) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# netdoc report — %s\n\n", rep.Hostname))
	sb.WriteString(fmt.Sprintf("**Timestamp:** %s\n\n", rep.Timestamp.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("**Quality:** %d/100 (%s)\n\n", rep.TotalScore, rep.OverallStatus))

	sb.WriteString("| Dimension | Score | Max |\n|---|---|---|\n")
	a := rep.Assessment
	sb.WriteString(fmt.Sprintf("| Signal | %d | %d |\n", a.SignalScore, engine.SignalMax))
	sb.WriteString(fmt.Sprintf("| Latency | %d | %d |\n", a.LatencyScore, engine.LatencyMax))
	sb.WriteString(fmt.Sprintf("| Reliability | %d | %d |\n", a.ReliabilityScore, engine.ReliabilityMax))
	sb.WriteString(fmt.Sprintf("| DNS | %d | %d |\n", a.DNSScore, engine.DNSMax))

	if len(rep.Problems) == 0 {
		sb.WriteString("\nNo problems detected.\n")
		return sb.String()
	}

	sb.WriteString("\n## Problems\n\n")
	for _, cat := range rep.Problems {
		sb.WriteString(fmt.Sprintf("### %s\n\n", cat))
		outcomes := rep.Remediations[cat]
		if len(outcomes) > 0 {
			sb.WriteString("| Action | Result | Detail |\n|---|---|---|\n")
			for _, o := range outcomes {
				result := "failed"
				if o.Succeeded {
					result = "succeeded"
				}
				sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n", o.Action, result, o.Detail))
			}
			sb.WriteString("\n")
		}
		if rep.CategoryExhausted(cat) || len(outcomes) == 0 {
			sb.WriteString(fmt.Sprintf("Manual step: %s\n\n", advice[cat]))
		}
	}
	return sb.String()
}

// ── Cron Output ─────────────────────────────────────────────────────────────

func renderCron(rep *model.DiagnosticReport) error {
	if rep.OverallStatus >= model.StatusGood && len(rep.Problems) == 0 {
		// Silent if OK — cron-friendly
		return nil
	}

	probs := make([]string, 0, len(rep.Problems))
	for _, cat := range rep.Problems {
		s := cat.String()
		if rep.CategoryExhausted(cat) {
			s += "(unfixed)"
		}
		probs = append(probs, s)
	}
	fmt.Printf("netdoc %s: %d/100 %s — %s\n",
		rep.Hostname, rep.TotalScore, rep.OverallStatus, strings.Join(probs, ", "))

	return exitCodeFor(rep)
}
