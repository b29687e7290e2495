package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netdoc/model"
)

func TestAssemblePreservesOrderAndCopies(t *testing.T) {
	assessment := model.QualityAssessment{
		SignalScore: 5, LatencyScore: 5, ReliabilityScore: 5, DNSScore: 5,
		TotalScore: 20, OverallStatus: model.StatusPoor,
	}
	cats := []model.ProblemCategory{model.WifiDisconnected, model.InternetDown}
	outcomes := map[model.ProblemCategory][]model.RemediationOutcome{
		model.WifiDisconnected: {
			{Action: "reset-wifi-adapter", Detail: "rfkill busy"},
			{Action: "reload-network-modules", Succeeded: true, Detail: "modules reloaded"},
		},
	}

	rep := Assemble(assessment, cats, outcomes)

	assert.Equal(t, 20, rep.TotalScore)
	assert.Equal(t, model.StatusPoor, rep.OverallStatus)
	assert.Equal(t, cats, rep.Problems)
	assert.False(t, rep.Timestamp.IsZero())

	// Mutating the inputs afterwards must not leak into the report.
	cats[0] = model.DNSFailure
	outcomes[model.WifiDisconnected][0].Succeeded = true
	assert.Equal(t, model.WifiDisconnected, rep.Problems[0])
	assert.False(t, rep.Remediations[model.WifiDisconnected][0].Succeeded)
}

func TestAssembleOmitsEmptyRemediations(t *testing.T) {
	rep := Assemble(model.QualityAssessment{TotalScore: 95, OverallStatus: model.StatusExcellent}, nil, nil)
	assert.Nil(t, rep.Remediations)
	assert.Empty(t, rep.Problems)
}

func TestReportJSONShape(t *testing.T) {
	rep := Assemble(
		model.QualityAssessment{
			SignalScore: 15, LatencyScore: 25, ReliabilityScore: 20, DNSScore: 20,
			TotalScore: 80, OverallStatus: model.StatusExcellent,
		},
		[]model.ProblemCategory{model.PoorSignal},
		map[model.ProblemCategory][]model.RemediationOutcome{
			model.PoorSignal: {{Action: "signal-guidance", Detail: "move closer to the router"}},
		},
	)
	rep.Hostname = "laptop-01"

	raw, err := json.Marshal(rep)
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &doc))

	for _, key := range []string{"totalScore", "overallStatus", "problems", "remediations"} {
		assert.Contains(t, doc, key)
	}

	var status string
	require.NoError(t, json.Unmarshal(doc["overallStatus"], &status))
	assert.Equal(t, "excellent", status)

	var problems []string
	require.NoError(t, json.Unmarshal(doc["problems"], &problems))
	assert.Equal(t, []string{"poor-signal"}, problems)

	var rems map[string][]model.RemediationOutcome
	require.NoError(t, json.Unmarshal(doc["remediations"], &rems))
	require.Contains(t, rems, "poor-signal", "map keys marshal as category names, not integers")
	assert.Equal(t, "signal-guidance", rems["poor-signal"][0].Action)
}

func TestCategoryExhausted(t *testing.T) {
	rep := model.DiagnosticReport{
		Problems: []model.ProblemCategory{model.InternetDown, model.ExtremeLatency},
		Remediations: map[model.ProblemCategory][]model.RemediationOutcome{
			model.InternetDown: {
				{Action: "flush-dns-cache"},
				{Action: "restart-dns-service"},
				{Action: "release-renew-ip"},
				{Action: "restart-network-stack"},
			},
			model.ExtremeLatency: {
				{Action: "flush-routing-cache"},
				{Action: "flush-dns-cache", Succeeded: true},
			},
		},
	}

	assert.True(t, rep.CategoryExhausted(model.InternetDown))
	assert.False(t, rep.CategoryExhausted(model.ExtremeLatency))
	assert.False(t, rep.CategoryExhausted(model.DNSFailure), "untouched category is not exhausted")
	assert.True(t, rep.AnyExhausted())
}
