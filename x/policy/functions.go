package policy

import (
	"github.com/securetaskhub/taskhub/core"
)

// Requirement is a pure predicate over (subject, resource). Extensions
// compose into the evaluator after the ownership rule and before the
// final deny.
type Requirement func(subject *core.Subject, resource *core.Resource) bool

// RequireClaim allows subjects carrying the given claim value,
// e.g. RequireClaim("department", "IT") for department-scoped delegation.
func RequireClaim(claimType, value string) Requirement {
	return func(subject *core.Subject, resource *core.Resource) bool {
		if subject == nil {
			return false
		}
		for _, v := range subject.ClaimValues(claimType) {
			if v == value {
				return true
			}
		}
		return false
	}
}

// RequireRole allows subjects carrying the given role.
func RequireRole(name string) Requirement {
	return func(subject *core.Subject, resource *core.Resource) bool {
		if subject == nil {
			return false
		}
		return subject.HasRole(name)
	}
}
