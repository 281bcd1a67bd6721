package health

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Dallionking/project-estimator/internal/catalogue"
	"github.com/Dallionking/project-estimator/internal/config"
	"github.com/Dallionking/project-estimator/internal/inbox"
)

// registerChecks registers the checks across four categories.
func (c *Checker) registerChecks() {
	c.add("config-valid", "config", c.checkConfigValid)
	c.add("config-files", "config", c.checkConfigFiles)

	c.add("catalogue-endpoint", "backend", c.checkCatalogueEndpoint)

	c.add("catalogue-services", "catalogue", c.checkServices)
	c.add("catalogue-categories", "catalogue", c.checkCategories)
	c.add("catalogue-prices", "catalogue", c.checkPrices)
	c.add("catalogue-feature-ids", "catalogue", c.checkFeatureIDs)

	c.add("stub-catalogue-file", "stub", c.checkStubCatalogueFile)
	c.add("stub-inbox", "stub", c.checkStubInbox)
}

func categoryKeys() string {
	keys := make([]string, 0, len(catalogue.AllCategories()))
	for _, c := range catalogue.AllCategories() {
		keys = append(keys, string(c))
	}
	return strings.Join(keys, ", ")
}

func (c *Checker) fetch(ctx context.Context) (catalogue.Catalogue, error) {
	if !c.fetchTried {
		c.fetched, c.fetchErr = c.provider.Fetch(ctx)
		c.fetchTried = true
	}
	return c.fetched, c.fetchErr
}

// ---------------------------------------------------------------------------
// Config checks
// ---------------------------------------------------------------------------

func (c *Checker) checkConfigValid(_ context.Context) CheckResult {
	errs := config.Validate(c.cfg)
	if len(errs) == 0 {
		return CheckResult{Status: StatusPass, Message: "all settings valid"}
	}
	return CheckResult{
		Status:  StatusFail,
		Message: fmt.Sprintf("%d issue(s): %s", len(errs), errs[0].Error()),
		Hint:    "run estimator config to see every issue",
	}
}

func (c *Checker) checkConfigFiles(_ context.Context) CheckResult {
	sources := config.Sources()
	if len(sources) == 0 {
		return CheckResult{Status: StatusWarn, Message: "no config file, using defaults", Hint: "estimator config init"}
	}
	return CheckResult{Status: StatusPass, Message: strings.Join(sources, ", ")}
}

// ---------------------------------------------------------------------------
// Backend checks
// ---------------------------------------------------------------------------

func (c *Checker) checkCatalogueEndpoint(ctx context.Context) CheckResult {
	cat, err := c.fetch(ctx)
	if err != nil {
		return CheckResult{
			Status:  StatusFail,
			Message: err.Error(),
			Hint:    "check api.base_url, or run estimator serve and point api.base_url at it",
		}
	}
	return CheckResult{
		Status:  StatusPass,
		Message: fmt.Sprintf("%s reachable, %d services", c.cfg.API.BaseURL, len(cat)),
	}
}

// ---------------------------------------------------------------------------
// Catalogue checks
// ---------------------------------------------------------------------------

func (c *Checker) withCatalogue(ctx context.Context, fn func(catalogue.Catalogue) CheckResult) CheckResult {
	cat, err := c.fetch(ctx)
	if err != nil {
		return CheckResult{Status: StatusWarn, Message: "skipped: catalogue unavailable", Hint: "fix the backend check first"}
	}
	return fn(cat)
}

func (c *Checker) checkServices(ctx context.Context) CheckResult {
	return c.withCatalogue(ctx, func(cat catalogue.Catalogue) CheckResult {
		if len(cat) == 0 {
			return CheckResult{Status: StatusFail, Message: "catalogue has no services", Hint: "the Services step cannot be completed until services are published"}
		}
		var empty []string
		for _, s := range cat.Sorted() {
			if s.FeatureCount() == 0 {
				empty = append(empty, s.ID)
			}
		}
		if len(empty) > 0 {
			return CheckResult{
				Status:  StatusWarn,
				Message: "services without features: " + strings.Join(empty, ", "),
				Hint:    "these services always price at $0",
			}
		}
		return CheckResult{Status: StatusPass, Message: fmt.Sprintf("%d services", len(cat))}
	})
}

func (c *Checker) checkCategories(ctx context.Context) CheckResult {
	return c.withCatalogue(ctx, func(cat catalogue.Catalogue) CheckResult {
		var unknown []string
		used := map[catalogue.Category]bool{}
		for _, s := range cat.Sorted() {
			if !s.Category.Valid() {
				unknown = append(unknown, fmt.Sprintf("%s (%q)", s.ID, s.Category))
				continue
			}
			used[s.Category] = true
		}
		if len(unknown) > 0 {
			return CheckResult{
				Status:  StatusFail,
				Message: "unknown category: " + strings.Join(unknown, ", "),
				Hint:    "use one of: " + categoryKeys(),
			}
		}
		if n := len(catalogue.AllCategories()) - len(used); n > 0 {
			return CheckResult{
				Status:  StatusWarn,
				Message: fmt.Sprintf("%d categories have no services", n),
				Hint:    "clients picking those categories will see an empty Services step",
			}
		}
		return CheckResult{Status: StatusPass, Message: "every category has services"}
	})
}

func (c *Checker) checkPrices(ctx context.Context) CheckResult {
	return c.withCatalogue(ctx, func(cat catalogue.Catalogue) CheckResult {
		var negative []string
		for _, s := range cat.Sorted() {
			for _, fc := range s.FeatureCategories {
				for _, f := range fc.Features {
					if f.Price.IsNegative() {
						negative = append(negative, s.ID+"/"+f.ID)
					}
				}
			}
		}
		if len(negative) > 0 {
			return CheckResult{
				Status:  StatusFail,
				Message: "negative price: " + strings.Join(negative, ", "),
				Hint:    "negative prices reduce the estimate total",
			}
		}
		return CheckResult{Status: StatusPass, Message: "all prices non-negative"}
	})
}

func (c *Checker) checkFeatureIDs(ctx context.Context) CheckResult {
	return c.withCatalogue(ctx, func(cat catalogue.Catalogue) CheckResult {
		var dupes []string
		for _, s := range cat.Sorted() {
			seen := map[string]bool{}
			for _, fc := range s.FeatureCategories {
				for _, f := range fc.Features {
					if f.ID == "" || seen[f.ID] {
						dupes = append(dupes, fmt.Sprintf("%s/%q", s.ID, f.ID))
					}
					seen[f.ID] = true
				}
			}
		}
		if len(dupes) > 0 {
			return CheckResult{
				Status:  StatusFail,
				Message: "missing or duplicate feature id: " + strings.Join(dupes, ", "),
				Hint:    "features sharing an id toggle together and are priced once",
			}
		}
		return CheckResult{Status: StatusPass, Message: "feature ids unique per service"}
	})
}

// ---------------------------------------------------------------------------
// Stub checks
// ---------------------------------------------------------------------------

func (c *Checker) checkStubCatalogueFile(_ context.Context) CheckResult {
	path := c.cfg.Stub.CatalogueFile
	f, err := os.Open(path)
	if err != nil {
		return CheckResult{
			Status:  StatusWarn,
			Message: fmt.Sprintf("%s not found", path),
			Hint:    "only needed for estimator serve; set stub.catalogue_file",
		}
	}
	defer f.Close()
	cat, err := catalogue.Decode(f)
	if err != nil {
		return CheckResult{Status: StatusFail, Message: err.Error(), Hint: "the file must be a JSON object of service id to service"}
	}
	return CheckResult{Status: StatusPass, Message: fmt.Sprintf("%s: %d services", path, len(cat))}
}

func (c *Checker) checkStubInbox(_ context.Context) CheckResult {
	in, err := inbox.Open(c.cfg.Stub.InboxDir)
	if err != nil {
		return CheckResult{Status: StatusFail, Message: err.Error()}
	}
	probe, err := os.CreateTemp(in.Dir(), ".tmp-probe-*")
	if err != nil {
		return CheckResult{Status: StatusFail, Message: "inbox not writable: " + err.Error(), Hint: "set stub.inbox_dir to a writable directory"}
	}
	probe.Close()
	os.Remove(probe.Name())

	counts, err := in.Count()
	if err != nil {
		return CheckResult{Status: StatusWarn, Message: err.Error()}
	}
	return CheckResult{
		Status:  StatusPass,
		Message: fmt.Sprintf("%d new, %d archived", counts.New, counts.Archived),
	}
}
