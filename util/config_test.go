package util

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateRequiresSigningKey(t *testing.T) {
	config := Config{}
	err := config.Validate()
	assert.Error(t, err)
}

func TestValidateDevModeFallsBackToDevKey(t *testing.T) {
	config := Config{Auth: Auth{DevMode: true}}
	err := config.Validate()
	assert.NoError(t, err)
	assert.Equal(t, DevSigningKey, config.Auth.SigningKey)
}

func TestValidateRejectsDevKeyOutsideDevMode(t *testing.T) {
	config := Config{Auth: Auth{SigningKey: DevSigningKey}}
	err := config.Validate()
	assert.Error(t, err)
}

func TestValidateRejectsShortKey(t *testing.T) {
	config := Config{Auth: Auth{SigningKey: "too-short"}}
	err := config.Validate()
	assert.Error(t, err)

	config.Auth.SigningKey = strings.Repeat("k", 32)
	err = config.Validate()
	assert.NoError(t, err)
}

func TestTTLDefaultsToOneHour(t *testing.T) {
	auth := Auth{}
	assert.Equal(t, time.Hour, auth.TTL())

	auth.TokenTTL = "15m"
	assert.Equal(t, 15*time.Minute, auth.TTL())

	auth.TokenTTL = "not-a-duration"
	assert.Equal(t, time.Hour, auth.TTL())
}
