// Package attribution proposes an owning business for a candidate asset
// based on its network address. The recommender is stateless and advisory:
// it annotates candidates, it never assigns ownership.
package attribution

import (
	"fmt"
	"strings"

	"github.com/assureops/api/pkg/domain/shared"
)

// Rule maps an address pattern to a business. Patterns are dotted-quad
// prefixes with "*" wildcards per octet, e.g. "192.168.1.*" or "10.*.*.*".
type Rule struct {
	Pattern      string `yaml:"pattern"`
	BusinessID   string `yaml:"business_id"`
	BusinessName string `yaml:"business_name"`
	Reason       string `yaml:"reason"`
}

// Validate checks the rule is well-formed.
func (r Rule) Validate() error {
	if r.BusinessID == "" {
		return fmt.Errorf("%w: rule business_id is required", shared.ErrValidation)
	}
	if r.BusinessName == "" {
		return fmt.Errorf("%w: rule business_name is required", shared.ErrValidation)
	}
	octets := strings.Split(r.Pattern, ".")
	if len(octets) != 4 {
		return fmt.Errorf("%w: pattern %q must have four octets", shared.ErrValidation, r.Pattern)
	}
	for _, o := range octets {
		if o == "" {
			return fmt.Errorf("%w: pattern %q has an empty octet", shared.ErrValidation, r.Pattern)
		}
	}
	return nil
}

// matches reports whether the rule pattern covers the given dotted-quad IP.
func (r Rule) matches(ip string) bool {
	want := strings.Split(r.Pattern, ".")
	got := strings.Split(ip, ".")
	if len(got) != 4 {
		return false
	}
	for i := range want {
		if want[i] == "*" {
			continue
		}
		if want[i] != got[i] {
			return false
		}
	}
	return true
}

// Recommendation is the advisory output of the recommender.
type Recommendation struct {
	BusinessID   string
	BusinessName string
	Reason       string
}

// Recommender evaluates an ordered rule list, first match wins. Overlapping
// prefixes must be ordered most-specific-first by the rule author; the
// recommender does not resolve specificity itself.
type Recommender struct {
	rules []Rule
}

// NewRecommender creates a Recommender after validating every rule.
func NewRecommender(rules []Rule) (*Recommender, error) {
	for i, r := range rules {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
	}
	owned := make([]Rule, len(rules))
	copy(owned, rules)
	return &Recommender{rules: owned}, nil
}

// Recommend returns the first matching rule's proposal for the IP, or
// ok=false when no rule matches. No match is not an error.
func (r *Recommender) Recommend(ip string) (Recommendation, bool) {
	ip = strings.TrimSpace(ip)
	if ip == "" {
		return Recommendation{}, false
	}
	for _, rule := range r.rules {
		if rule.matches(ip) {
			return Recommendation{
				BusinessID:   rule.BusinessID,
				BusinessName: rule.BusinessName,
				Reason:       rule.Reason,
			}, true
		}
	}
	return Recommendation{}, false
}

// BusinessName resolves a business id to the display name carried by the
// first rule referencing it. Used when a confirmation supplies only the id.
func (r *Recommender) BusinessName(businessID string) (string, bool) {
	for _, rule := range r.rules {
		if rule.BusinessID == businessID {
			return rule.BusinessName, true
		}
	}
	return "", false
}

// Rules returns a copy of the ordered rule list.
func (r *Recommender) Rules() []Rule {
	result := make([]Rule, len(r.rules))
	copy(result, r.rules)
	return result
}
