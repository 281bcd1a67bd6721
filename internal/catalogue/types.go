// Package catalogue models the read-only service catalogue the estimator
// wizard offers: categories, services, feature groups and priced features.
package catalogue

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Category is one of the fixed service categories.
type Category string

const (
	CategoryDevelopment     Category = "development"
	CategoryInfrastructure  Category = "infrastructure"
	CategorySpecializedTech Category = "specialized-tech"
	CategoryBusinessSystems Category = "business-systems"
	CategoryDesign          Category = "design"
	CategoryMarketing       Category = "marketing"
	CategoryPackages        Category = "packages"
)

// AllCategories returns every category in display order.
func AllCategories() []Category {
	return []Category{
		CategoryDevelopment,
		CategoryInfrastructure,
		CategorySpecializedTech,
		CategoryBusinessSystems,
		CategoryDesign,
		CategoryMarketing,
		CategoryPackages,
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, k := range AllCategories() {
		if k == c {
			return true
		}
	}
	return false
}

// Label returns the human-readable category name.
func (c Category) Label() string {
	switch c {
	case CategoryDevelopment:
		return "Development"
	case CategoryInfrastructure:
		return "Infrastructure"
	case CategorySpecializedTech:
		return "Specialized Tech"
	case CategoryBusinessSystems:
		return "Business Systems"
	case CategoryDesign:
		return "Design"
	case CategoryMarketing:
		return "Marketing"
	case CategoryPackages:
		return "Packages"
	default:
		return string(c)
	}
}

// Description is shown next to the category checkbox in the wizard.
func (c Category) Description() string {
	switch c {
	case CategoryDevelopment:
		return "Web, mobile and custom software builds"
	case CategoryInfrastructure:
		return "Cloud, hosting, DevOps and networking"
	case CategorySpecializedTech:
		return "AI, data, IoT and other specialist work"
	case CategoryBusinessSystems:
		return "CRM, ERP and workflow automation"
	case CategoryDesign:
		return "Brand, UI/UX and visual design"
	case CategoryMarketing:
		return "SEO, content, campaigns and analytics"
	case CategoryPackages:
		return "Bundled offerings at a fixed scope"
	default:
		return ""
	}
}

// Feature is an individually priced item. A missing price decodes as zero.
type Feature struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// FeatureCategory groups the features of one service.
type FeatureCategory struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Features []Feature `json:"features"`
}

// Service is a catalogue entry the client can select.
type Service struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	Description       string            `json:"description"`
	Category          Category          `json:"category"`
	FeatureCategories []FeatureCategory `json:"featureCategories"`
}

// FeatureCount returns the number of features across all groups.
func (s Service) FeatureCount() int {
	n := 0
	for _, fc := range s.FeatureCategories {
		n += len(fc.Features)
	}
	return n
}

// Catalogue maps service id to Service. It is never modified after being
// fetched.
type Catalogue map[string]Service

// Lookup returns the service with the given id.
func (c Catalogue) Lookup(id string) (Service, bool) {
	s, ok := c[id]
	return s, ok
}

// FindFeature locates a feature of a service by id.
func (c Catalogue) FindFeature(serviceID, featureID string) (Feature, bool) {
	s, ok := c[serviceID]
	if !ok {
		return Feature{}, false
	}
	for _, fc := range s.FeatureCategories {
		for _, f := range fc.Features {
			if f.ID == featureID {
				return f, true
			}
		}
	}
	return Feature{}, false
}

// Sorted returns all services ordered by name, then id.
func (c Catalogue) Sorted() []Service {
	out := make([]Service, 0, len(c))
	for _, s := range c {
		out = append(out, s)
	}
	SortServices(out)
	return out
}

// InCategories returns the services whose category is in cats, sorted.
func (c Catalogue) InCategories(cats map[Category]bool) []Service {
	var out []Service
	for _, s := range c {
		if cats[s.Category] {
			out = append(out, s)
		}
	}
	SortServices(out)
	return out
}

// SortServices orders services by name, then id.
func SortServices(s []Service) {
	sort.Slice(s, func(i, j int) bool {
		if s[i].Name != s[j].Name {
			return s[i].Name < s[j].Name
		}
		return s[i].ID < s[j].ID
	})
}

// normalize fills record ids from their map keys.
func (c Catalogue) normalize() {
	for id, s := range c {
		if s.ID == "" {
			s.ID = id
			c[id] = s
		}
	}
}
