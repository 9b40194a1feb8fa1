package staterules

import (
	"context"
	"fmt"
)

// Option applies a configuration option to the InMemoryRegistry.
type Option func(*InMemoryRegistry)

// WithRules replaces the seeded rule table entirely.
func WithRules(rules []StateNILRules) Option {
	return func(r *InMemoryRegistry) {
		if len(rules) == 0 {
			return
		}
		r.rules = make(map[string]StateNILRules, len(rules))
		for _, rec := range rules {
			r.rules[rec.StateCode] = rec
		}
	}
}

// WithOverride upserts a single rule record over the seeded table.
func WithOverride(rec StateNILRules) Option {
	return func(r *InMemoryRegistry) {
		r.rules[rec.StateCode] = rec
	}
}

// InMemoryRegistry implements Registry over an immutable in-memory table.
// Reads are lock-free; the table is never mutated after construction.
type InMemoryRegistry struct {
	rules map[string]StateNILRules
}

// NewInMemoryRegistry creates a registry seeded with the default state table.
func NewInMemoryRegistry(opts ...Option) *InMemoryRegistry {
	r := &InMemoryRegistry{
		rules: make(map[string]StateNILRules, len(defaultRules)),
	}
	for code, rec := range defaultRules {
		r.rules[code] = rec
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Lookup returns the rules for a state. Input is normalized through
// ExtractStateCode; unknown states return ErrNotFound, never a default.
func (r *InMemoryRegistry) Lookup(_ context.Context, stateCode string) (StateNILRules, error) {
	code, ok := ExtractStateCode(stateCode)
	if !ok {
		return StateNILRules{}, fmt.Errorf("lookup %q: %w", stateCode, ErrNotFound)
	}
	rec, ok := r.rules[code]
	if !ok {
		return StateNILRules{}, fmt.Errorf("lookup %q: %w", stateCode, ErrNotFound)
	}
	return rec, nil
}

// Count returns the number of jurisdictions in the table.
func (r *InMemoryRegistry) Count() int {
	return len(r.rules)
}
