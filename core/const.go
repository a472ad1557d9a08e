package core

const (
	SubjectCtxKey     = "th-subject"
	RequesterIdCtxKey = "th-requesterId"
	TokenCtxKey       = "th-token"
)

const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// Capability is an operation requested on a resource.
// List and Create are collection-level and are evaluated without a resource.
type Capability int

const (
	CapabilityRead Capability = iota
	CapabilityUpdate
	CapabilityDelete
	CapabilityList
	CapabilityCreate
)

func (c Capability) String() string {
	switch c {
	case CapabilityRead:
		return "Read"
	case CapabilityUpdate:
		return "Update"
	case CapabilityDelete:
		return "Delete"
	case CapabilityList:
		return "List"
	case CapabilityCreate:
		return "Create"
	default:
		return "Unknown"
	}
}

// Decision is the outcome of a policy evaluation. The zero value denies.
type Decision int

const (
	DecisionDeny Decision = iota
	DecisionAllow
)

func (d Decision) String() string {
	if d == DecisionAllow {
		return "Allow"
	}
	return "Deny"
}

// AllowedClaimTypes is the allow-list applied to supplementary claims
// at token-decode time. Claim types outside this list are dropped.
var AllowedClaimTypes = map[string]bool{
	"department": true,
	"email":      true,
}
