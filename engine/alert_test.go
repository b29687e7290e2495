package engine

import (
	"testing"

	"netdoc/model"
)

func TestValidateWebhookURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"https allowed", "https://hooks.example.com/netdoc", false},
		{"http allowed", "http://alerts.internal.example:8080/hook", false},
		{"file scheme rejected", "file:///etc/passwd", true},
		{"ftp scheme rejected", "ftp://example.com/x", true},
		{"localhost blocked", "http://localhost:9000/hook", true},
		{"loopback blocked", "https://127.0.0.1/hook", true},
		{"ipv6 loopback blocked", "http://[::1]:8080/hook", true},
		{"cloud metadata blocked", "http://169.254.169.254/latest/meta-data", true},
		{"gcp metadata blocked", "http://metadata.google.internal/computeMetadata", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateWebhookURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateWebhookURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestNotifierEnabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  AlertConfig
		want bool
	}{
		{"nothing configured", AlertConfig{}, false},
		{"webhook only", AlertConfig{Webhook: "https://hooks.example.com/x"}, true},
		{"command only", AlertConfig{Command: "notify-send netdoc"}, true},
		{"both", AlertConfig{Webhook: "https://h.example.com", Command: "true"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNotifier(tt.cfg, nil)
			if got := n.Enabled(); got != tt.want {
				t.Errorf("Enabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShouldAlert(t *testing.T) {
	t.Run("poor status alerts", func(t *testing.T) {
		rep := &model.DiagnosticReport{TotalScore: 25, OverallStatus: model.StatusPoor}
		if !ShouldAlert(rep) {
			t.Error("poor status must alert")
		}
	})

	t.Run("fair status without exhaustion stays quiet", func(t *testing.T) {
		rep := &model.DiagnosticReport{TotalScore: 55, OverallStatus: model.StatusFair}
		if ShouldAlert(rep) {
			t.Error("fair status alone must not alert")
		}
	})

	t.Run("exhausted category alerts even when score is decent", func(t *testing.T) {
		rep := &model.DiagnosticReport{
			TotalScore:    65,
			OverallStatus: model.StatusGood,
			Problems:      []model.ProblemCategory{model.DNSFailure},
			Remediations: map[model.ProblemCategory][]model.RemediationOutcome{
				model.DNSFailure: {
					{Action: "flush-dns-cache"},
					{Action: "restart-dns-service"},
				},
			},
		}
		if !ShouldAlert(rep) {
			t.Error("exhausted remediation must alert")
		}
	})

	t.Run("successful remediation stays quiet", func(t *testing.T) {
		rep := &model.DiagnosticReport{
			TotalScore:    65,
			OverallStatus: model.StatusGood,
			Problems:      []model.ProblemCategory{model.DNSFailure},
			Remediations: map[model.ProblemCategory][]model.RemediationOutcome{
				model.DNSFailure: {{Action: "flush-dns-cache", Succeeded: true}},
			},
		}
		if ShouldAlert(rep) {
			t.Error("a fixed category must not alert")
		}
	})
}
