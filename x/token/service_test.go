package token

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/securetaskhub/taskhub/core"
	"github.com/securetaskhub/taskhub/util"
)

var ctx = context.Background()

var testConfig = util.Config{
	Auth: util.Auth{
		SigningKey: "unittest-signing-key-0123456789abcdef0123456789",
		Issuer:     "taskhub.example.com",
		Audience:   "taskhub.example.com",
	},
}

func newTestService(now time.Time) *service {
	return &service{
		config: testConfig,
		now:    func() time.Time { return now },
	}
}

// fakeRepository is an in-memory stand-in for the redis deny-list
type fakeRepository struct {
	revoked map[string]time.Time
}

func (f *fakeRepository) CheckJTI(ctx context.Context, jti string) (bool, error) {
	_, ok := f.revoked[jti]
	return ok, nil
}

func (f *fakeRepository) InvalidateJTI(ctx context.Context, jti string, exp time.Time) error {
	f.revoked[jti] = exp
	return nil
}

func TestIssueVerifyRoundTrip(t *testing.T) {

	s := newTestService(time.Now())

	subject := core.NewSubject("alice", core.RoleUser)
	subject.AddClaim("department", "Engineering")

	raw, err := s.Issue(ctx, subject, time.Hour)
	assert.NoError(t, err)
	assert.NotEmpty(t, raw)

	decoded, err := s.Verify(ctx, raw)
	assert.NoError(t, err)
	assert.Equal(t, subject.ID, decoded.ID)
	assert.Equal(t, subject.Roles, decoded.Roles)
	value, ok := decoded.ClaimValue("department")
	assert.True(t, ok)
	assert.Equal(t, "Engineering", value)
}

func TestIssueRefusesEmptySubject(t *testing.T) {

	s := newTestService(time.Now())

	_, err := s.Issue(ctx, core.Subject{}, time.Hour)
	assert.Error(t, err)
}

func TestVerifyExpired(t *testing.T) {

	issuedAt := time.Now()
	s := newTestService(issuedAt)

	subject := core.NewSubject("alice", core.RoleUser)
	raw, err := s.Issue(ctx, subject, time.Second)
	assert.NoError(t, err)

	// advance the clock past expiry
	s.now = func() time.Time { return issuedAt.Add(2 * time.Second) }

	_, err = s.Verify(ctx, raw)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrorTokenExpired{}))
}

func TestVerifyRejectsFutureIssuedAt(t *testing.T) {

	now := time.Now()

	// issued half an hour from now, expiring in an hour
	issuer := newTestService(now.Add(30 * time.Minute))

	subject := core.NewSubject("alice", core.RoleUser)
	raw, err := issuer.Issue(ctx, subject, time.Hour)
	assert.NoError(t, err)

	// the validity window has not opened yet
	s := newTestService(now)
	_, err = s.Verify(ctx, raw)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrorTokenMalformed{}))

	// once the clock reaches iat the same token verifies
	s.now = func() time.Time { return now.Add(31 * time.Minute) }
	_, err = s.Verify(ctx, raw)
	assert.NoError(t, err)
}

func TestVerifyRejectsForeignIssuer(t *testing.T) {

	s := newTestService(time.Now())

	other := newTestService(time.Now())
	other.config.Auth.Issuer = "somewhere-else.example.com"

	subject := core.NewSubject("alice", core.RoleUser)
	raw, err := other.Issue(ctx, subject, time.Hour)
	assert.NoError(t, err)

	_, err = s.Verify(ctx, raw)
	assert.True(t, errors.Is(err, core.ErrorTokenMalformed{}))
}

func TestVerifyBadSignature(t *testing.T) {

	s := newTestService(time.Now())

	subject := core.NewSubject("alice", core.RoleUser)
	raw, err := s.Issue(ctx, subject, time.Hour)
	assert.NoError(t, err)

	// flip a byte in the signature segment
	split := strings.Split(raw, ".")
	assert.Len(t, split, 3)
	sig, err := base64.RawURLEncoding.DecodeString(split[2])
	assert.NoError(t, err)
	sig[0] ^= 0xff
	tampered := split[0] + "." + split[1] + "." + base64.RawURLEncoding.EncodeToString(sig)

	_, err = s.Verify(ctx, tampered)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrorTokenBadSignature{}))
}

func TestVerifyMalformed(t *testing.T) {

	s := newTestService(time.Now())

	for _, raw := range []string{"", "garbage", "a.b", "a.b.c.d", "!!.!!.!!"} {
		_, err := s.Verify(ctx, raw)
		assert.Error(t, err, raw)
		assert.True(t, errors.Is(err, core.ErrorTokenMalformed{}), raw)
	}
}

func TestVerifyRejectsForeignKey(t *testing.T) {

	s := newTestService(time.Now())

	other := newTestService(time.Now())
	other.config.Auth.SigningKey = "another-signing-key-0123456789abcdef01234567"

	subject := core.NewSubject("alice", core.RoleUser)
	raw, err := other.Issue(ctx, subject, time.Hour)
	assert.NoError(t, err)

	_, err = s.Verify(ctx, raw)
	assert.True(t, errors.Is(err, core.ErrorTokenBadSignature{}))
}

func TestVerifyFiltersUnknownClaimTypes(t *testing.T) {

	s := newTestService(time.Now())

	subject := core.NewSubject("alice", core.RoleUser)
	subject.AddClaim("department", "IT")
	subject.AddClaim("shoe_size", "44")

	raw, err := s.Issue(ctx, subject, time.Hour)
	assert.NoError(t, err)

	decoded, err := s.Verify(ctx, raw)
	assert.NoError(t, err)

	_, ok := decoded.ClaimValue("shoe_size")
	assert.False(t, ok)
	value, ok := decoded.ClaimValue("department")
	assert.True(t, ok)
	assert.Equal(t, "IT", value)
}

func TestRevoke(t *testing.T) {

	s := newTestService(time.Now())
	s.repository = &fakeRepository{revoked: make(map[string]time.Time)}

	subject := core.NewSubject("alice", core.RoleUser)
	raw, err := s.Issue(ctx, subject, time.Hour)
	assert.NoError(t, err)

	_, err = s.Verify(ctx, raw)
	assert.NoError(t, err)

	err = s.Revoke(ctx, raw)
	assert.NoError(t, err)

	_, err = s.Verify(ctx, raw)
	assert.True(t, errors.Is(err, core.ErrorTokenRevoked{}))
}
