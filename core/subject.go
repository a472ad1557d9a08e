package core

import "slices"

// Subject is the normalized representation of an authenticated caller.
// Anonymous requests carry no Subject at all (a nil *Subject), never a
// sentinel value.
type Subject struct {
	ID     string              `json:"id"`
	Roles  []string            `json:"roles"`
	Claims map[string][]string `json:"claims,omitempty"`
}

func NewSubject(id string, roles ...string) Subject {
	return Subject{
		ID:     id,
		Roles:  roles,
		Claims: make(map[string][]string),
	}
}

// HasRole reports whether the subject carries the given role.
// Matching is exact and case-sensitive.
func (s *Subject) HasRole(name string) bool {
	return slices.Contains(s.Roles, name)
}

// ClaimValue returns the first value of the given claim type.
func (s *Subject) ClaimValue(claimType string) (string, bool) {
	values, ok := s.Claims[claimType]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// ClaimValues returns every value of the given claim type.
func (s *Subject) ClaimValues(claimType string) []string {
	return s.Claims[claimType]
}

func (s *Subject) AddClaim(claimType, value string) {
	if s.Claims == nil {
		s.Claims = make(map[string][]string)
	}
	s.Claims[claimType] = append(s.Claims[claimType], value)
}
