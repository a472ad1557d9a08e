// Package auth establishes who is calling. It exchanges credentials for
// signed tokens, resolves Bearer tokens into subjects on every request,
// and gates routes by principal class.
package auth

import (
	"context"

	"go.opentelemetry.io/otel"

	"github.com/securetaskhub/taskhub/core"
	"github.com/securetaskhub/taskhub/util"
)

var tracer = otel.Tracer("auth")

type service struct {
	token    core.TokenService
	policy   core.PolicyService
	identity core.IdentityProvider
	config   util.Config
}

// NewService creates a new auth service
func NewService(token core.TokenService, policy core.PolicyService, identity core.IdentityProvider, config util.Config) core.AuthService {
	return &service{token, policy, identity, config}
}

// Login exchanges credentials for a signed bearer token
func (s *service) Login(ctx context.Context, email, password string) (string, core.Subject, error) {
	ctx, span := tracer.Start(ctx, "Auth.Service.Login")
	defer span.End()

	subject, err := s.identity.ResolveCredentials(ctx, email, password)
	if err != nil {
		span.RecordError(err)
		return "", core.Subject{}, err
	}

	token, err := s.token.Issue(ctx, subject, s.config.Auth.TTL())
	if err != nil {
		span.RecordError(err)
		return "", core.Subject{}, err
	}

	return token, subject, nil
}

// Logout invalidates the presented token for the rest of its lifetime
func (s *service) Logout(ctx context.Context, token string) error {
	ctx, span := tracer.Start(ctx, "Auth.Service.Logout")
	defer span.End()

	err := s.token.Revoke(ctx, token)
	if err != nil {
		span.RecordError(err)
		return err
	}

	return nil
}
