package usecase

import (
	"fmt"
	"strings"
)

// AuthenticityConfig holds the configurable mock-identifier rules. New mock
// patterns observed in production are additions to this data, not code
// changes.
type AuthenticityConfig struct {
	MockPrefixes []string
	Denylist     []string
}

// defaultMockPrefixes match identifiers seeded by retailer sample docs and
// developer fixtures
var defaultMockPrefixes = []string{"10315", "walmart-", "mock-", "test-"}

const minProductIDLength = 6

// AuthenticityFilter rejects product identifiers that indicate mock or
// placeholder data. The checks are purely syntactic so the filter can run on
// the caller submission path without added latency.
type AuthenticityFilter struct {
	mockPrefixes []string
	denylist     map[string]bool
}

// NewAuthenticityFilter creates a filter from the given configuration.
// Empty prefix lists fall back to the built-in defaults; the denylist is
// always additive.
func NewAuthenticityFilter(config AuthenticityConfig) *AuthenticityFilter {
	prefixes := config.MockPrefixes
	if len(prefixes) == 0 {
		prefixes = defaultMockPrefixes
	}

	denylist := make(map[string]bool, len(config.Denylist))
	for _, id := range config.Denylist {
		denylist[strings.TrimSpace(id)] = true
	}

	return &AuthenticityFilter{
		mockPrefixes: prefixes,
		denylist:     denylist,
	}
}

// IsAuthentic reports whether the identifier can belong to a real catalog
// product.
func (f *AuthenticityFilter) IsAuthentic(id string) bool {
	return f.Check(id) == nil
}

// Check returns nil for authentic identifiers, or an error naming the rule
// the identifier violated. The reason is surfaced verbatim in 400 responses.
func (f *AuthenticityFilter) Check(id string) error {
	if id == "" {
		return fmt.Errorf("product id is empty")
	}

	for _, prefix := range f.mockPrefixes {
		if strings.HasPrefix(id, prefix) {
			return fmt.Errorf("product id %q matches mock prefix %q", id, prefix)
		}
	}

	if !isDigitsOnly(id) {
		return fmt.Errorf("product id %q is not numeric", id)
	}

	if len(id) < minProductIDLength {
		return fmt.Errorf("product id %q is shorter than %d digits", id, minProductIDLength)
	}

	if f.denylist[id] {
		return fmt.Errorf("product id %q is a known sample identifier", id)
	}

	return nil
}

// isDigitsOnly reports whether s is a non-empty string of decimal digits
func isDigitsOnly(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}
