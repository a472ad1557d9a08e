package token

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("token")

// Repository is the jti deny-list. Entries live exactly as long as the
// token they shadow.
type Repository interface {
	CheckJTI(ctx context.Context, jti string) (bool, error)
	InvalidateJTI(ctx context.Context, jti string, exp time.Time) error
}

type repository struct {
	rdb *redis.Client
}

func NewRepository(rdb *redis.Client) Repository {
	return &repository{
		rdb: rdb,
	}
}

// CheckJTI reports whether jti has been revoked
func (r *repository) CheckJTI(ctx context.Context, jti string) (bool, error) {
	ctx, span := tracer.Start(ctx, "Token.Repository.CheckJTI")
	defer span.End()

	exists, err := r.rdb.Exists(ctx, "revoked:"+jti).Result()
	if err != nil {
		span.RecordError(err)
		return false, err
	}

	return exists != 0, nil
}

// InvalidateJTI revokes jti until exp
func (r *repository) InvalidateJTI(ctx context.Context, jti string, exp time.Time) error {
	ctx, span := tracer.Start(ctx, "Token.Repository.InvalidateJTI")
	defer span.End()

	expiration := time.Until(exp)
	if expiration <= 0 {
		// already past exp, nothing to shadow
		return nil
	}

	err := r.rdb.Set(ctx, "revoked:"+jti, "1", expiration).Err()
	if err != nil {
		span.RecordError(err)
		return err
	}

	return nil
}
