package quote

import (
	"sort"

	"github.com/Dallionking/project-estimator/internal/catalogue"
)

// Selection is the client's in-progress choice of categories, services and
// features. It is immutable: every toggle returns a new Selection and copies
// only the maps it changes, so earlier values are never affected.
//
// Invariant: features has a key only for service ids present in services.
type Selection struct {
	categories map[catalogue.Category]bool
	services   map[string]catalogue.Service
	features   map[string]map[string]catalogue.Feature
}

// ToggleCategory adds c when absent and removes it when present. Selected
// services are left alone even if their category is removed.
func (s Selection) ToggleCategory(c catalogue.Category) Selection {
	next := s
	next.categories = make(map[catalogue.Category]bool, len(s.categories)+1)
	for k := range s.categories {
		next.categories[k] = true
	}
	if s.categories[c] {
		delete(next.categories, c)
	} else {
		next.categories[c] = true
	}
	return next
}

// ToggleService selects svc with an empty feature set, or deselects it
// together with all of its features.
func (s Selection) ToggleService(svc catalogue.Service) Selection {
	next := s
	next.services = make(map[string]catalogue.Service, len(s.services)+1)
	for k, v := range s.services {
		next.services[k] = v
	}
	next.features = make(map[string]map[string]catalogue.Feature, len(s.features)+1)
	for k, v := range s.features {
		next.features[k] = v // inner maps are never mutated, sharing is safe
	}

	if _, ok := s.services[svc.ID]; ok {
		delete(next.services, svc.ID)
		delete(next.features, svc.ID)
	} else {
		next.services[svc.ID] = svc
		next.features[svc.ID] = map[string]catalogue.Feature{}
	}
	return next
}

// ToggleFeature adds or removes f under serviceID. It is a no-op when the
// service is not selected.
func (s Selection) ToggleFeature(serviceID string, f catalogue.Feature) Selection {
	if _, ok := s.services[serviceID]; !ok {
		return s
	}

	current := s.features[serviceID]
	inner := make(map[string]catalogue.Feature, len(current)+1)
	for k, v := range current {
		inner[k] = v
	}
	if _, ok := current[f.ID]; ok {
		delete(inner, f.ID)
	} else {
		inner[f.ID] = f
	}

	next := s
	next.features = make(map[string]map[string]catalogue.Feature, len(s.features))
	for k, v := range s.features {
		next.features[k] = v
	}
	next.features[serviceID] = inner
	return next
}

// HasCategory reports whether c is selected.
func (s Selection) HasCategory(c catalogue.Category) bool {
	return s.categories[c]
}

// HasService reports whether the service is selected.
func (s Selection) HasService(id string) bool {
	_, ok := s.services[id]
	return ok
}

// HasFeature reports whether the feature is selected under the service.
func (s Selection) HasFeature(serviceID, featureID string) bool {
	_, ok := s.features[serviceID][featureID]
	return ok
}

// CategorySet returns a copy of the selected category set.
func (s Selection) CategorySet() map[catalogue.Category]bool {
	out := make(map[catalogue.Category]bool, len(s.categories))
	for k := range s.categories {
		out[k] = true
	}
	return out
}

// Categories returns the selected categories in catalogue display order.
func (s Selection) Categories() []catalogue.Category {
	var out []catalogue.Category
	for _, c := range catalogue.AllCategories() {
		if s.categories[c] {
			out = append(out, c)
		}
	}
	// Unknown categories (from hand-written sheets) sort after known ones.
	var extra []catalogue.Category
	for c := range s.categories {
		if !c.Valid() {
			extra = append(extra, c)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}

// Services returns the selected services sorted by name.
func (s Selection) Services() []catalogue.Service {
	out := make([]catalogue.Service, 0, len(s.services))
	for _, svc := range s.services {
		out = append(out, svc)
	}
	catalogue.SortServices(out)
	return out
}

// ServiceIDs returns the selected service ids sorted.
func (s Selection) ServiceIDs() []string {
	ids := make([]string, 0, len(s.services))
	for id := range s.services {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Features returns the features selected under a service, sorted by name.
func (s Selection) Features(serviceID string) []catalogue.Feature {
	inner := s.features[serviceID]
	out := make([]catalogue.Feature, 0, len(inner))
	for _, f := range inner {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// FeatureCount returns the number of selected features across services.
func (s Selection) FeatureCount() int {
	n := 0
	for _, inner := range s.features {
		n += len(inner)
	}
	return n
}

// ServiceCount returns the number of selected services.
func (s Selection) ServiceCount() int {
	return len(s.services)
}

// CategoryCount returns the number of selected categories.
func (s Selection) CategoryCount() int {
	return len(s.categories)
}

// Equal reports whether two selections contain the same ids.
func (s Selection) Equal(o Selection) bool {
	if len(s.categories) != len(o.categories) ||
		len(s.services) != len(o.services) ||
		len(s.features) != len(o.features) {
		return false
	}
	for c := range s.categories {
		if !o.categories[c] {
			return false
		}
	}
	for id := range s.services {
		if _, ok := o.services[id]; !ok {
			return false
		}
	}
	for sid, inner := range s.features {
		other, ok := o.features[sid]
		if !ok || len(inner) != len(other) {
			return false
		}
		for fid := range inner {
			if _, ok := other[fid]; !ok {
				return false
			}
		}
	}
	return true
}
