// Package health runs diagnostic checks for the estimator: configuration,
// backend reachability, catalogue quality and the development stub.
package health

import (
	"context"
	"time"

	"github.com/Dallionking/project-estimator/internal/catalogue"
	"github.com/Dallionking/project-estimator/internal/config"
)

// Status represents the result of a single health check.
type Status int

const (
	StatusPass Status = iota
	StatusWarn
	StatusFail
)

// String returns the lowercase text representation of the status.
func (s Status) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusWarn:
		return "warn"
	case StatusFail:
		return "fail"
	default:
		return "unknown"
	}
}

// area is a group of checks and what a failure in it costs the user.
type area struct {
	key   string
	label string
	// impact is what stops working when a check in the area fails.
	impact string
	// blocksWizard marks areas the interactive estimator depends on.
	blocksWizard bool
}

var areas = []area{
	{"config", "Configuration", "settings fall back to defaults or are rejected", true},
	{"backend", "Intake Backend", "the wizard cannot load services or submit projects", true},
	{"catalogue", "Service Catalogue", "clients may see wrong categories or prices", true},
	{"stub", "Development Stub", "estimator serve cannot run", false},
}

func lookupArea(key string) area {
	for _, a := range areas {
		if a.key == key {
			return a
		}
	}
	return area{key: key, label: key}
}

// CheckResult holds the result of a single check. Hint says how to fix a
// warning or failure.
type CheckResult struct {
	Name     string
	Category string
	Status   Status
	Message  string
	Hint     string
	Duration time.Duration
}

// Report holds results of all checks.
type Report struct {
	Results  []CheckResult
	Passed   int
	Warned   int
	Failed   int
	Total    int
	Duration time.Duration
	Healthy  bool
	// WizardReady is false when a check the estimator wizard depends on failed.
	WizardReady bool
}

// Impacts lists, per failing category, what the failure breaks.
func (r *Report) Impacts() []string {
	failed := map[string]bool{}
	for _, res := range r.Results {
		if res.Status == StatusFail {
			failed[res.Category] = true
		}
	}
	var out []string
	for _, a := range areas {
		if failed[a.key] {
			out = append(out, a.label+": "+a.impact)
		}
	}
	return out
}

// Check is a named, categorized health check function.
type Check struct {
	Name     string
	Category string
	Fn       func(ctx context.Context) CheckResult
}

// Checker runs the estimator's health checks against one configuration.
type Checker struct {
	checks   []Check
	cfg      *config.Config
	provider catalogue.Provider

	// fetched caches the catalogue between the backend and catalogue checks.
	fetched    catalogue.Catalogue
	fetchErr   error
	fetchTried bool
}

// NewChecker creates a checker. provider is the catalogue source the wizard
// would use.
func NewChecker(cfg *config.Config, provider catalogue.Provider) *Checker {
	c := &Checker{cfg: cfg, provider: provider}
	c.registerChecks()
	return c
}

func (c *Checker) add(name, category string, fn func(ctx context.Context) CheckResult) {
	c.checks = append(c.checks, Check{Name: name, Category: category, Fn: fn})
}

// Categories returns the check categories in display order.
func Categories() []string {
	keys := make([]string, len(areas))
	for i, a := range areas {
		keys[i] = a.key
	}
	return keys
}

// RunAll runs every registered check and returns a report.
func (c *Checker) RunAll(ctx context.Context) *Report {
	return c.run(ctx, func(Check) bool { return true })
}

// RunCategory runs only the checks matching the given category.
func (c *Checker) RunCategory(ctx context.Context, category string) *Report {
	return c.run(ctx, func(ch Check) bool { return ch.Category == category })
}

func (c *Checker) run(ctx context.Context, want func(Check) bool) *Report {
	start := time.Now()
	var results []CheckResult

	for _, ch := range c.checks {
		if !want(ch) {
			continue
		}
		if ctx.Err() != nil {
			results = append(results, CheckResult{
				Name:     ch.Name,
				Category: ch.Category,
				Status:   StatusFail,
				Message:  "cancelled before it ran",
			})
			continue
		}
		t := time.Now()
		r := ch.Fn(ctx)
		r.Duration = time.Since(t)
		r.Name = ch.Name
		r.Category = ch.Category
		results = append(results, r)
	}

	return buildReport(results, time.Since(start))
}

func buildReport(results []CheckResult, dur time.Duration) *Report {
	r := &Report{
		Results:     results,
		Total:       len(results),
		Duration:    dur,
		WizardReady: true,
	}
	for _, res := range results {
		switch res.Status {
		case StatusPass:
			r.Passed++
		case StatusWarn:
			r.Warned++
		case StatusFail:
			r.Failed++
			if lookupArea(res.Category).blocksWizard {
				r.WizardReady = false
			}
		}
	}
	r.Healthy = r.Failed == 0
	return r
}
