package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHashService_HashAndVerify(t *testing.T) {
	svc := NewBcryptHashService()

	hash, err := svc.Hash("StrongP@ss123")
	require.NoError(t, err)
	assert.NotEqual(t, "StrongP@ss123", hash)

	ok, err := svc.Verify("StrongP@ss123", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBcryptHashService_WrongPassword(t *testing.T) {
	svc := NewBcryptHashService()

	hash, err := svc.Hash("StrongP@ss123")
	require.NoError(t, err)

	ok, err := svc.Verify("wrong-password", hash)
	require.NoError(t, err, "a mismatch is not an error")
	assert.False(t, ok)
}

func TestBcryptHashService_UniqueSalts(t *testing.T) {
	svc := NewBcryptHashService()

	first, err := svc.Hash("StrongP@ss123")
	require.NoError(t, err)
	second, err := svc.Hash("StrongP@ss123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestBcryptHashService_MalformedHash(t *testing.T) {
	svc := NewBcryptHashService()

	_, err := svc.Verify("whatever", "not-a-bcrypt-hash")
	assert.Error(t, err)
}
