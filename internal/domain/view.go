package domain

// ManagerAll is the manager filter value that disables manager filtering.
const ManagerAll = "All"

// FilterScope narrows aggregation to a set of platforms and/or one manager.
// An empty platform set and ManagerAll mean no scope is active.
type FilterScope struct {
	Platforms []string `json:"platforms,omitempty"`
	Manager   string   `json:"manager,omitempty"`
}

// Active reports whether the scope restricts anything at all.
func (s FilterScope) Active() bool {
	return len(s.Platforms) > 0 || (s.Manager != "" && s.Manager != ManagerAll)
}

// HasPlatform reports whether the scope's platform set admits the platform.
// An empty set admits every platform.
func (s FilterScope) HasPlatform(platform string) bool {
	if len(s.Platforms) == 0 {
		return true
	}
	for _, p := range s.Platforms {
		if p == platform {
			return true
		}
	}
	return false
}

// ViewState is the immutable UI state a dashboard request computes from.
// Handlers derive a new ViewState per request; nothing here is ever
// mutated in place.
type ViewState struct {
	Search             string             `json:"search,omitempty"`
	Category           string             `json:"category,omitempty"`
	Scope              FilterScope        `json:"scope"`
	IntensityPct       float64            `json:"intensity_pct"`
	Overrides          map[string]float64 `json:"overrides,omitempty"`
	AllowOOSAdjustment bool               `json:"allow_oos_adjustment"`
	// Locked marks a batch of overrides as confirmed. It goes stale the
	// instant the intensity or any override changes again.
	Locked   bool `json:"locked"`
	Page     int  `json:"page,omitempty"`
	PageSize int  `json:"page_size,omitempty"`
}

// WithOverride returns a copy of the state with one override set and the
// locked flag cleared.
func (v ViewState) WithOverride(sku string, price float64) ViewState {
	next := v
	next.Overrides = make(map[string]float64, len(v.Overrides)+1)
	for k, val := range v.Overrides {
		next.Overrides[k] = val
	}
	next.Overrides[sku] = price
	next.Locked = false
	return next
}

// WithIntensity returns a copy of the state with a new intensity. Explicit
// overrides are kept: intensity and overrides are independent inputs.
func (v ViewState) WithIntensity(pct float64) ViewState {
	next := v
	next.IntensityPct = pct
	next.Locked = false
	return next
}
