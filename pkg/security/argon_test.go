package security_test

import (
	"strings"
	"testing"

	"bitwise74/auth-api/pkg/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgonRoundtrip(t *testing.T) {
	argon := security.NewArgon()

	encoded, err := argon.GenerateFromPassword("Aa123456")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$"))

	ok, err := argon.VerifyPasswd("Aa123456", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = argon.VerifyPasswd("Wrong1234", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgonSaltsDiffer(t *testing.T) {
	argon := security.NewArgon()

	first, err := argon.GenerateFromPassword("Aa123456")
	require.NoError(t, err)
	second, err := argon.GenerateFromPassword("Aa123456")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestArgonRejectsMalformedHash(t *testing.T) {
	argon := security.NewArgon()

	_, err := argon.VerifyPasswd("Aa123456", "not-a-phc-string")
	require.Error(t, err)
}
