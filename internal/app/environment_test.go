package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMustGetEnv(t *testing.T) {
	ctx := context.Background()
	t.Setenv("TEST_STRINGS", "auth0, operator_token")
	t.Setenv("TEST_EMPTY", "")
	t.Setenv("TEST_FLOAT", "12.5")
	t.Setenv("TEST_INT", "8")
	t.Setenv("TEST_BOOL", "TRUE")
	t.Setenv("TEST_DURATION", "90s")
	t.Setenv("TEST_BAD", "abc")

	assert.Equal(t, []string{"auth0", "operator_token"}, MustGetEnvAsStrings(ctx, "TEST_STRINGS"))
	assert.Equal(t, []string{""}, MustGetEnvAsStrings(ctx, "TEST_EMPTY"))
	assert.Equal(t, 12.5, MustGetEnvAsFloat(ctx, "TEST_FLOAT"))
	assert.Equal(t, 8, MustGetEnvAsInt(ctx, "TEST_INT"))
	assert.True(t, MustGetEnvAsBoolean(ctx, "TEST_BOOL"))
	assert.Equal(t, 90*time.Second, MustGetEnvAsDuration(ctx, "TEST_DURATION"))
	assert.Equal(t, "fallback", GetEnvAsStringOrDefault("TEST_UNSET_VARIABLE", "fallback"))
	assert.Equal(t, "", GetEnvAsStringOrDefault("TEST_EMPTY", "fallback"))

	assert.Panics(t, func() { MustGetEnvAsString(ctx, "TEST_UNSET_VARIABLE") })
	assert.Panics(t, func() { MustGetEnvAsFloat(ctx, "TEST_BAD") })
	assert.Panics(t, func() { MustGetEnvAsInt(ctx, "TEST_BAD") })
	assert.Panics(t, func() { MustGetEnvAsBoolean(ctx, "TEST_BAD") })
	assert.Panics(t, func() { MustGetEnvAsDuration(ctx, "TEST_BAD") })
}
