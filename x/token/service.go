package token

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/securetaskhub/taskhub/core"
	"github.com/securetaskhub/taskhub/util"
)

type service struct {
	repository Repository
	config     util.Config
	now        func() time.Time
}

// NewService creates a new token service. A nil repository disables the
// revocation list.
func NewService(repository Repository, config util.Config) core.TokenService {
	return &service{
		repository: repository,
		config:     config,
		now:        time.Now,
	}
}

// Issue creates a signed bearer token embedding the subject's id, roles
// and allow-listed claims
func (s *service) Issue(ctx context.Context, subject core.Subject, ttl time.Duration) (string, error) {
	ctx, span := tracer.Start(ctx, "Token.Service.Issue")
	defer span.End()

	if subject.ID == "" {
		return "", errors.New("cannot issue a token for an empty subject id")
	}

	if ttl <= 0 {
		ttl = s.config.Auth.TTL()
	}

	now := s.now()
	claims := Claims{
		Roles: subject.Roles,
		Clm:   filterClaims(subject.Claims),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Auth.Issuer,
			Subject:   subject.ID,
			Audience:  jwt.ClaimStrings{s.config.Auth.Audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Auth.SigningKey))
	if err != nil {
		span.RecordError(err)
		return "", err
	}

	return signed, nil
}

// Verify checks signature and validity window, then reconstructs the
// Subject solely from the embedded claims. Each failure mode is reported
// distinctly and is never downgraded.
func (s *service) Verify(ctx context.Context, raw string) (core.Subject, error) {
	ctx, span := tracer.Start(ctx, "Token.Service.Verify")
	defer span.End()

	claims, err := s.parse(raw)
	if err != nil {
		span.RecordError(err)
		return core.Subject{}, err
	}

	if s.repository != nil {
		revoked, err := s.repository.CheckJTI(ctx, claims.ID)
		if err != nil {
			span.RecordError(err)
			return core.Subject{}, core.NewErrorStoreUnavailable(err)
		}
		if revoked {
			return core.Subject{}, core.NewErrorTokenRevoked()
		}
	}

	return core.Subject{
		ID:     claims.Subject,
		Roles:  claims.Roles,
		Claims: filterClaims(claims.Clm),
	}, nil
}

// Revoke deny-lists the token's jti until its natural expiry. The token
// must still verify; an attacker cannot shadow arbitrary ids.
func (s *service) Revoke(ctx context.Context, raw string) error {
	ctx, span := tracer.Start(ctx, "Token.Service.Revoke")
	defer span.End()

	if s.repository == nil {
		return errors.New("revocation list is not configured")
	}

	claims, err := s.parse(raw)
	if err != nil {
		span.RecordError(err)
		return err
	}

	err = s.repository.InvalidateJTI(ctx, claims.ID, claims.ExpiresAt.Time)
	if err != nil {
		span.RecordError(err)
		return core.NewErrorStoreUnavailable(err)
	}

	return nil
}

func (s *service) parse(raw string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &Claims{},
		func(t *jwt.Token) (any, error) {
			return []byte(s.config.Auth.SigningKey), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, core.NewErrorTokenExpired()
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, core.NewErrorTokenBadSignature()
		default:
			return nil, core.NewErrorTokenMalformed()
		}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || claims.Subject == "" {
		return nil, core.NewErrorTokenMalformed()
	}

	if s.config.Auth.Issuer != "" && claims.Issuer != s.config.Auth.Issuer {
		return nil, core.NewErrorTokenMalformed()
	}

	if s.config.Auth.Audience != "" && !slices.Contains(claims.Audience, s.config.Auth.Audience) {
		return nil, core.NewErrorTokenMalformed()
	}

	return claims, nil
}

// filterClaims drops claim types outside the allow-list so decoded
// subjects cannot grow unbounded claim sets.
func filterClaims(claims map[string][]string) map[string][]string {
	if claims == nil {
		return nil
	}
	filtered := make(map[string][]string)
	for claimType, values := range claims {
		if core.AllowedClaimTypes[claimType] {
			filtered[claimType] = values
		}
	}
	return filtered
}
