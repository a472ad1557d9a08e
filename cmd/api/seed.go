package main

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/securetaskhub/taskhub/core"
	"github.com/securetaskhub/taskhub/util"
)

// demoIdentityProvider holds a fixed set of accounts for development mode.
// Credentials are hashed at startup so no digest lives in the binary.
type demoIdentityProvider struct {
	accounts map[string]demoAccount

	// compared against on unknown emails so misses cost the same as hits
	dummyHash []byte
}

type demoAccount struct {
	hash    []byte
	subject core.Subject
}

func setupIdentityProvider(config util.Config) (core.IdentityProvider, error) {
	if !config.Auth.DevMode {
		return nil, fmt.Errorf("no identity provider configured; the demo provider is only available in devMode")
	}

	dummyHash, err := bcrypt.GenerateFromPassword([]byte("dummy"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	provider := &demoIdentityProvider{accounts: map[string]demoAccount{}, dummyHash: dummyHash}

	seed := []struct {
		email      string
		password   string
		roles      []string
		department string
	}{
		{"admin@demo.local", "admin-password", []string{core.RoleAdmin, core.RoleUser}, "Administration"},
		{"alice@demo.local", "alice-password", []string{core.RoleUser}, "Engineering"},
		{"bob@demo.local", "bob-password", []string{core.RoleUser}, "IT"},
	}

	for _, entry := range seed {
		hash, err := bcrypt.GenerateFromPassword([]byte(entry.password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}

		subject := core.NewSubject(entry.email, entry.roles...)
		subject.AddClaim("department", entry.department)
		subject.AddClaim("email", entry.email)

		provider.accounts[entry.email] = demoAccount{hash: hash, subject: subject}
	}

	return provider, nil
}

func (p *demoIdentityProvider) ResolveCredentials(ctx context.Context, email, password string) (core.Subject, error) {
	account, ok := p.accounts[email]
	if !ok {
		bcrypt.CompareHashAndPassword(p.dummyHash, []byte(password))
		return core.Subject{}, core.NewErrorUnauthenticated()
	}

	err := bcrypt.CompareHashAndPassword(account.hash, []byte(password))
	if err != nil {
		return core.Subject{}, core.NewErrorUnauthenticated()
	}

	return account.subject, nil
}
