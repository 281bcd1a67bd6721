package health

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Dallionking/project-estimator/internal/catalogue"
	"github.com/Dallionking/project-estimator/internal/config"
)

type countingProvider struct {
	cat   catalogue.Catalogue
	err   error
	calls int
}

func (p *countingProvider) Fetch(context.Context) (catalogue.Catalogue, error) {
	p.calls++
	return p.cat, p.err
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Stub.CatalogueFile = filepath.Join(dir, "catalogue.json")
	cfg.Stub.InboxDir = filepath.Join(dir, "inbox")
	return cfg
}

func goodCatalogue() catalogue.Catalogue {
	cat := catalogue.Catalogue{}
	for _, c := range catalogue.AllCategories() {
		id := string(c) + "-svc"
		cat[id] = catalogue.Service{
			ID:       id,
			Name:     c.Label(),
			Category: c,
			FeatureCategories: []catalogue.FeatureCategory{{
				ID: "main",
				Features: []catalogue.Feature{
					{ID: "a", Name: "A", Price: decimal.NewFromInt(100)},
					{ID: "b", Name: "B"},
				},
			}},
		}
	}
	return cat
}

func resultByName(r *Report, name string) CheckResult {
	for _, res := range r.Results {
		if res.Name == name {
			return res
		}
	}
	return CheckResult{Name: name, Status: Status(-1)}
}

func TestRunAll_Healthy(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.Stub.CatalogueFile, []byte(`{"x":{"name":"X","category":"design"}}`), 0o644))

	p := &countingProvider{cat: goodCatalogue()}
	report := NewChecker(cfg, p).RunAll(context.Background())

	require.True(t, report.Healthy, FormatReport(report))
	require.Equal(t, 9, report.Total)
	require.Equal(t, 1, p.calls, "catalogue fetched once per run")
	require.Equal(t, StatusPass, resultByName(report, "catalogue-endpoint").Status)
	require.Equal(t, StatusPass, resultByName(report, "stub-inbox").Status)
	require.True(t, report.WizardReady)
	require.Empty(t, report.Impacts())

	// No config file was loaded, so only the config-files check warns.
	require.Equal(t, 1, report.Warned)
	require.Equal(t, StatusWarn, resultByName(report, "config-files").Status)
	out := FormatReport(report)
	require.Contains(t, out, "DEGRADED")
	require.Contains(t, out, "fix: estimator config init")
}

func TestOverallBadge(t *testing.T) {
	pass := CheckResult{Category: "config", Status: StatusPass}
	stubFail := CheckResult{Category: "stub", Status: StatusFail}
	backendFail := CheckResult{Category: "backend", Status: StatusFail}

	require.Contains(t, overallBadge(buildReport([]CheckResult{pass}, 0)), "READY")
	require.Contains(t, overallBadge(buildReport([]CheckResult{pass, stubFail}, 0)), "DEGRADED")
	require.Contains(t, overallBadge(buildReport([]CheckResult{pass, backendFail}, 0)), "BLOCKED")
}

func TestRunAll_BackendDown(t *testing.T) {
	cfg := testConfig(t)
	report := NewChecker(cfg, &countingProvider{err: errors.New("connection refused")}).RunAll(context.Background())

	require.False(t, report.Healthy)
	require.Equal(t, StatusFail, resultByName(report, "catalogue-endpoint").Status)
	require.Equal(t, StatusWarn, resultByName(report, "catalogue-prices").Status)
	require.Equal(t, StatusWarn, resultByName(report, "stub-catalogue-file").Status)
	require.False(t, report.WizardReady)
	require.Contains(t, resultByName(report, "catalogue-endpoint").Hint, "api.base_url")
	require.Equal(t, []string{"Intake Backend: the wizard cannot load services or submit projects"}, report.Impacts())

	out := FormatReport(report)
	require.Contains(t, out, "BLOCKED")
	require.Contains(t, out, "fix: check api.base_url")
	require.Contains(t, out, "the wizard cannot load services")
}

func TestRunAll_StubFailureDoesNotBlockWizard(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.Stub.CatalogueFile, []byte(`not json`), 0o644))

	report := NewChecker(cfg, &countingProvider{cat: goodCatalogue()}).RunAll(context.Background())
	require.False(t, report.Healthy)
	require.True(t, report.WizardReady)
	require.Equal(t, StatusFail, resultByName(report, "stub-catalogue-file").Status)
	require.Equal(t, []string{"Development Stub: estimator serve cannot run"}, report.Impacts())
	require.Contains(t, FormatReport(report), "DEGRADED")
}

func TestCatalogueChecks_FlagBadData(t *testing.T) {
	cat := goodCatalogue()
	svc := cat["design-svc"]
	svc.Category = "gardening"
	svc.FeatureCategories = []catalogue.FeatureCategory{{Features: []catalogue.Feature{
		{ID: "dup", Price: decimal.NewFromInt(-5)},
		{ID: "dup"},
	}}}
	cat["design-svc"] = svc

	report := NewChecker(testConfig(t), &countingProvider{cat: cat}).RunCategory(context.Background(), "catalogue")
	require.Equal(t, 4, report.Total)
	require.Equal(t, StatusFail, resultByName(report, "catalogue-categories").Status)
	require.Equal(t, StatusFail, resultByName(report, "catalogue-prices").Status)
	require.Equal(t, StatusFail, resultByName(report, "catalogue-feature-ids").Status)
	require.Equal(t, StatusPass, resultByName(report, "catalogue-services").Status)
	require.Contains(t, resultByName(report, "catalogue-categories").Hint, "specialized-tech")
}

func TestConfigCheck_Invalid(t *testing.T) {
	cfg := testConfig(t)
	cfg.API.Timeout = 0
	report := NewChecker(cfg, &countingProvider{}).RunCategory(context.Background(), "config")
	require.Equal(t, StatusFail, resultByName(report, "config-valid").Status)
	require.Contains(t, resultByName(report, "config-valid").Message, "api.timeout")
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	report := NewChecker(testConfig(t), &countingProvider{}).RunAll(ctx)
	require.Equal(t, report.Total, report.Failed)
}

func TestStatusStrings(t *testing.T) {
	require.Equal(t, "pass", StatusPass.String())
	require.Equal(t, []string{"config", "backend", "catalogue", "stub"}, Categories())
}
