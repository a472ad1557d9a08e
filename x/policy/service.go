package policy

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/securetaskhub/taskhub/core"
	"github.com/securetaskhub/taskhub/util"
)

var tracer = otel.Tracer("policy")

type service struct {
	config       util.Config
	requirements []Requirement
}

// NewService creates a new policy service
func NewService(config util.Config) core.PolicyService {
	return &service{config: config}
}

// NewServiceWithRequirements creates a policy service with extension
// requirements evaluated before the final deny.
func NewServiceWithRequirements(config util.Config, requirements ...Requirement) core.PolicyService {
	return &service{config: config, requirements: requirements}
}

// Evaluate applies the access rules in order, first match wins:
// no subject denies, collection-level capabilities allow, the Admin role
// allows, ownership allows, extension requirements allow, otherwise deny.
func (s service) Evaluate(ctx context.Context, subject *core.Subject, capability core.Capability, resource *core.Resource) core.Decision {
	ctx, span := tracer.Start(ctx, "Policy.Service.Evaluate")
	defer span.End()

	span.SetAttributes(attribute.String("capability", capability.String()))

	if subject == nil || subject.ID == "" {
		return core.DecisionDeny
	}

	span.SetAttributes(attribute.String("subject", subject.ID))

	if capability == core.CapabilityList || capability == core.CapabilityCreate {
		return core.DecisionAllow
	}

	if subject.HasRole(core.RoleAdmin) {
		return core.DecisionAllow
	}

	if resource != nil && resource.OwnerID != "" && resource.OwnerID == subject.ID {
		return core.DecisionAllow
	}

	for _, requirement := range s.requirements {
		if requirement(subject, resource) {
			return core.DecisionAllow
		}
	}

	return core.DecisionDeny
}
