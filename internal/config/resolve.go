package config

import "github.com/hoanghonghuy/commitagent/internal/ai"

// EnabledProviders returns the providers taking part in selection, in declaration order.
func EnabledProviders(s Snapshot) []ai.Provider {
	out := make([]ai.Provider, 0, len(s.Providers))
	for _, p := range s.Providers {
		if p.IsEnabled() {
			out = append(out, p)
		}
	}
	return out
}

// ResolveProvider selects the provider for a request.
//
// An explicit id is looked up among enabled providers and nothing else is
// tried when it is missing. Without one, the configured default provider
// name is matched against enabled providers, then the first enabled provider
// is used.
func ResolveProvider(s Snapshot, explicitID string) (ai.Provider, bool) {
	enabled := EnabledProviders(s)

	if explicitID != "" {
		for _, p := range enabled {
			if p.ID == explicitID {
				return p, true
			}
		}
		return ai.Provider{}, false
	}

	if s.DefaultProviderName != "" {
		for _, p := range enabled {
			if p.Name == s.DefaultProviderName {
				return p, true
			}
		}
	}

	if len(enabled) > 0 {
		return enabled[0], true
	}
	return ai.Provider{}, false
}

// ResolveModel selects the model id for p.
//
// An explicit model id is returned verbatim. The configured default model is
// only considered when p is the configured default provider, and only if p
// lists it. Otherwise the provider's first model is used.
func ResolveModel(s Snapshot, p ai.Provider, explicitModelID string) (string, bool) {
	if explicitModelID != "" {
		return explicitModelID, true
	}

	if IsDefaultProvider(s, p) && s.DefaultModel != "" && p.HasModel(s.DefaultModel) {
		return s.DefaultModel, true
	}

	if len(p.Models) > 0 {
		return p.Models[0].ID, true
	}
	return "", false
}

// IsDefaultProvider reports whether p is the configured default provider.
// Names are not unique, so only the first enabled provider carrying the
// default name counts.
func IsDefaultProvider(s Snapshot, p ai.Provider) bool {
	if s.DefaultProviderName == "" || p.Name != s.DefaultProviderName {
		return false
	}
	for _, q := range EnabledProviders(s) {
		if q.Name == s.DefaultProviderName {
			return q.ID == p.ID
		}
	}
	return false
}
