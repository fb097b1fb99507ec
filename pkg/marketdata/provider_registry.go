package marketdata

import (
	"slices"
	"strings"
	"time"

	"github.com/rxtech-lab/argo-dashboard/pkg/errors"
)

// ProviderInfo describes a market data provider and the limits its public tier enforces.
type ProviderInfo struct {
	Name           ProviderType `json:"name"`
	DisplayName    string       `json:"displayName"`
	DefaultBaseURL string       `json:"defaultBaseUrl"`
	// APIKeyHeaders are the header names the provider reads a key from, lower case.
	APIKeyHeaders []string `json:"apiKeyHeaders"`
	// MaxHistoryDays is how far back a request may reach. Zero means unbounded.
	MaxHistoryDays int `json:"maxHistoryDays"`
}

var providers = map[ProviderType]ProviderInfo{
	ProviderCoinGecko: {
		Name:           ProviderCoinGecko,
		DisplayName:    "CoinGecko",
		DefaultBaseURL: "https://api.coingecko.com/api/v3",
		APIKeyHeaders:  []string{"x-cg-demo-api-key", "x-cg-pro-api-key"},
		MaxHistoryDays: 365,
	},
}

// Providers lists the registered providers ordered by name.
func Providers() []ProviderInfo {
	list := make([]ProviderInfo, 0, len(providers))
	for _, info := range providers {
		list = append(list, info)
	}

	slices.SortFunc(list, func(a, b ProviderInfo) int {
		return strings.Compare(string(a.Name), string(b.Name))
	})

	return list
}

// LookupProvider returns the registered provider called name.
func LookupProvider(name ProviderType) (ProviderInfo, error) {
	info, ok := providers[name]
	if !ok {
		names := make([]string, 0, len(providers))
		for _, p := range Providers() {
			names = append(names, string(p.Name))
		}

		return ProviderInfo{}, errors.Newf(errors.ErrCodeInvalidConfiguration,
			"unsupported market data provider %q, expected one of %v", name, names)
	}

	return info, nil
}

// AcceptsAPIKeyHeader reports whether header is one the provider reads. An empty header
// means no key is sent and is always accepted.
func (p ProviderInfo) AcceptsAPIKeyHeader(header string) bool {
	return header == "" || slices.Contains(p.APIKeyHeaders, strings.ToLower(header))
}

// EarliestAllowed returns the oldest instant a request made at now may reach.
// It returns the zero time when the provider has no history limit.
func (p ProviderInfo) EarliestAllowed(now time.Time) time.Time {
	if p.MaxHistoryDays <= 0 {
		return time.Time{}
	}

	return now.AddDate(0, 0, -p.MaxHistoryDays)
}
