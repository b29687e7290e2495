package cmd

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"netdoc/collector"
	"netdoc/config"
	"netdoc/engine"
	"netdoc/netctl"
)

// Version is set at build time via ldflags.
var Version = "0.3.0"

// ── ANSI color/style codes ──────────────────────────────────────────────────

const (
	R = "\033[0m" // reset
	B = "\033[1m" // bold
	D = "\033[2m" // dim

	FCyn = "\033[36m"

	FBRed = "\033[91m"
	FBGrn = "\033[92m"
	FBYel = "\033[93m"
	FBWht = "\033[97m"

	BBlu = "\033[44m"
)

// Config holds CLI configuration.
type Config struct {
	Interval        time.Duration
	Count           int
	JSONMode        bool
	MDMode          bool
	CronMode        bool
	WatchMode       bool
	FixMode         bool
	ProblemReported bool
	Host            string
	Iface           string
	Debug           bool
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `netdoc v%s — WiFi/internet diagnostics with automated remediation

Usage:
  netdoc [OPTIONS] [INTERVAL]

Modes:
  (default)         One-shot diagnosis, colored CLI report
  -watch            Live TUI — score, dimensions, problems, fixes
  -json             Single JSON report to stdout, then exit
  -md               Single Markdown report to stdout, then exit
  -cron             Silent if healthy; one-line summary + exit code otherwise
  -version          Print version and exit

Options:
  -fix              Attempt automated remediation for classified problems
  -report-problem   Treat this run as user-reported trouble: when no
                    threshold rule fires, fall back to general remediation
  -interval N       Seconds between runs when -count > 1 (default: 30)
  -count N          Number of diagnostic runs (default: 1)
  -host HOST        Ping target (default: from config, 8.8.8.8)
  -iface NAME       Wireless interface (default: from config, wlan0)
  -debug            Verbose logging to stderr

Positional:
  INTERVAL          First positional arg sets interval: netdoc 60 = netdoc -interval 60

Examples:
  netdoc                             One diagnostic pass, read-only
  sudo netdoc -fix                   Diagnose and attempt fixes
  sudo netdoc -fix -report-problem   User says it's broken; remediate even
                                     without a threshold hit
  netdoc -json | jq '.totalScore'
  netdoc -md > /tmp/wifi-report.md
  netdoc -watch                      Live view, 'f' toggles fix mode
  netdoc -cron                       For crontab; exit 2 on poor, 1 on fair
  netdoc -count 5 -interval 10       Five passes, 10s apart
`, Version)
}

// ExitCodeError signals a non-zero exit code without calling os.Exit directly.
type ExitCodeError struct{ Code int }

func (e ExitCodeError) Error() string { return fmt.Sprintf("exit %d", e.Code) }

// Run parses flags and starts the application.
func Run() error {
	var cfg Config
	var intervalSec int
	var showVersion bool

	flag.IntVar(&intervalSec, "interval", 30, "Seconds between runs when -count > 1")
	flag.IntVar(&cfg.Count, "count", 1, "Number of diagnostic runs")
	flag.BoolVar(&cfg.JSONMode, "json", false, "Output a single JSON report and exit")
	flag.BoolVar(&cfg.MDMode, "md", false, "Output a single Markdown report and exit")
	flag.BoolVar(&cfg.CronMode, "cron", false, "Silent if healthy, one-liner otherwise")
	flag.BoolVar(&cfg.WatchMode, "watch", false, "Live TUI mode")
	flag.BoolVar(&cfg.FixMode, "fix", false, "Attempt automated remediation")
	flag.BoolVar(&cfg.ProblemReported, "report-problem", false, "Caller reports a problem; enable fallback remediation")
	flag.StringVar(&cfg.Host, "host", "", "Ping target (overrides config)")
	flag.StringVar(&cfg.Iface, "iface", "", "Wireless interface (overrides config)")
	flag.BoolVar(&cfg.Debug, "debug", false, "Verbose logging to stderr")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")

	flag.Usage = printUsage
	flag.Parse()

	if showVersion {
		fmt.Printf("netdoc v%s\n", Version)
		return nil
	}

	// Support positional arg for interval: `netdoc 60` = `netdoc -interval 60`
	if args := flag.Args(); len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil && n > 0 {
			intervalSec = n
		}
	}
	cfg.Interval = time.Duration(intervalSec) * time.Second

	logger := buildLogger(cfg.Debug)
	defer func() { _ = logger.Sync() }()

	usercfg := config.Load()
	if cfg.Host != "" {
		usercfg.PingHost = cfg.Host
	}
	if cfg.Iface != "" {
		usercfg.WifiInterface = cfg.Iface
	}

	eng := buildEngine(usercfg, logger)

	if cfg.WatchMode {
		return runWatch(eng, cfg)
	}
	return runDiagnose(eng, cfg, usercfg, logger)
}

// buildEngine wires the collector registry, network controller, and
// dispatcher into a diagnostic engine.
func buildEngine(usercfg config.Config, logger *zap.Logger) *engine.Engine {
	reg := collector.NewRegistry(usercfg, logger)
	ctl := netctl.NewExecController(usercfg.WifiInterface, logger)
	disp := engine.NewDispatcher(ctl, logger,
		time.Duration(usercfg.ActionTimeoutSec)*time.Second, usercfg.ParallelDispatch)
	return engine.New(reg, disp, logger)
}

// buildLogger creates a stderr logger: quiet by default so report output
// stays clean, verbose with -debug.
func buildLogger(debug bool) *zap.Logger {
	ec := zap.NewDevelopmentEncoderConfig()
	level := zapcore.WarnLevel
	if debug {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(ec),
		zapcore.Lock(os.Stderr),
		level,
	)
	return zap.New(core)
}
