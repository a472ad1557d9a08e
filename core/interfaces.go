//go:generate go run go.uber.org/mock/mockgen -source=interfaces.go -destination=mock/services.go
package core

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
)

// PolicyService decides whether a subject may perform a capability on a
// resource. Evaluation is pure: same inputs, same decision, no I/O.
type PolicyService interface {
	Evaluate(ctx context.Context, subject *Subject, capability Capability, resource *Resource) Decision
}

// TokenService is the bearer token codec. Verify reconstructs a Subject
// solely from the embedded claims and never consults an identity store.
type TokenService interface {
	Issue(ctx context.Context, subject Subject, ttl time.Duration) (string, error)
	Verify(ctx context.Context, raw string) (Subject, error)
	Revoke(ctx context.Context, raw string) error
}

// TaskRepository is the owned-resource store contract. Every operation
// that takes a subject re-derives its own Allow/Deny from that subject;
// none of them accept a precomputed decision.
type TaskRepository interface {
	Count(ctx context.Context) (int64, error)
	ListOwned(ctx context.Context, ownerID string) ([]Task, error)
	ListAll(ctx context.Context) ([]Task, error)
	GetIfAuthorized(ctx context.Context, id string, subject *Subject) (Task, error)
	Create(ctx context.Context, task Task, ownerID string) (Task, error)
	Update(ctx context.Context, id string, patch TaskPatch, subject *Subject) (bool, error)
	Delete(ctx context.Context, id string, subject *Subject) (bool, error)
}

type TaskService interface {
	Count(ctx context.Context) (int64, error)
	GetMine(ctx context.Context, subject *Subject) ([]Task, error)
	GetAll(ctx context.Context, subject *Subject) ([]Task, error)
	Get(ctx context.Context, id string, subject *Subject) (Task, error)
	Create(ctx context.Context, subject *Subject, title, description string, status TaskStatus) (Task, error)
	Update(ctx context.Context, id string, patch TaskPatch, subject *Subject) (Task, error)
	Delete(ctx context.Context, id string, subject *Subject) error
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, Subject, error)
	Logout(ctx context.Context, raw string) error
	IdentifySubject(next echo.HandlerFunc) echo.HandlerFunc
	Restrict(principal int) echo.MiddlewareFunc
}

// IdentityProvider resolves credentials to a Subject. Account lifecycle
// and password storage live behind this boundary, outside the core.
type IdentityProvider interface {
	ResolveCredentials(ctx context.Context, email, password string) (Subject, error)
}
