package crypto

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Senegura/TicketSystem/pkg/util"
)

func TestGenerateSalt(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{name: "default size", size: DefaultSaltSize, wantErr: false},
		{name: "small size", size: 8, wantErr: false},
		{name: "zero size", size: 0, wantErr: true},
		{name: "negative size", size: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			salt, err := GenerateSalt(tt.size)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, util.HasCode(err, "VALIDATION_FAILED"))
				return
			}
			require.NoError(t, err)
			assert.Len(t, salt, tt.size)
		})
	}
}

func TestGenerateSalt_Unique(t *testing.T) {
	a, err := GenerateSalt(DefaultSaltSize)
	require.NoError(t, err)
	b, err := GenerateSalt(DefaultSaltSize)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestHashPassword_Deterministic(t *testing.T) {
	salt, err := GenerateSalt(DefaultSaltSize)
	require.NoError(t, err)

	first, err := HashPassword("secret123", salt, 1000, SHA256)
	require.NoError(t, err)
	second, err := HashPassword("secret123", salt, 1000, SHA256)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestHashPassword_SensitiveToEveryInput(t *testing.T) {
	salt, err := GenerateSalt(DefaultSaltSize)
	require.NoError(t, err)
	otherSalt, err := GenerateSalt(DefaultSaltSize)
	require.NoError(t, err)

	base, err := HashPassword("secret123", salt, 1000, SHA256)
	require.NoError(t, err)

	changedPassword, err := HashPassword("secret124", salt, 1000, SHA256)
	require.NoError(t, err)
	assert.NotEqual(t, base, changedPassword)

	changedSalt, err := HashPassword("secret123", otherSalt, 1000, SHA256)
	require.NoError(t, err)
	assert.NotEqual(t, base, changedSalt)

	changedIterations, err := HashPassword("secret123", salt, 1001, SHA256)
	require.NoError(t, err)
	assert.NotEqual(t, base, changedIterations)

	changedAlgorithm, err := HashPassword("secret123", salt, 1000, SHA512)
	require.NoError(t, err)
	assert.NotEqual(t, base, changedAlgorithm)
}

func TestHashPassword_DigestLengths(t *testing.T) {
	salt, err := GenerateSalt(DefaultSaltSize)
	require.NoError(t, err)

	tests := []struct {
		algorithm Algorithm
		keyLen    int
	}{
		{algorithm: SHA1, keyLen: 20},
		{algorithm: SHA256, keyLen: 32},
		{algorithm: SHA384, keyLen: 48},
		{algorithm: SHA512, keyLen: 64},
	}

	for _, tt := range tests {
		t.Run(string(tt.algorithm), func(t *testing.T) {
			encoded, err := HashPassword("secret123", salt, 100, tt.algorithm)
			require.NoError(t, err)

			raw, err := base64.StdEncoding.DecodeString(encoded)
			require.NoError(t, err)
			assert.Len(t, raw, tt.keyLen)
		})
	}
}

func TestHashPassword_InvalidArguments(t *testing.T) {
	salt, err := GenerateSalt(DefaultSaltSize)
	require.NoError(t, err)

	tests := []struct {
		name       string
		password   string
		salt       []byte
		iterations int
		algorithm  Algorithm
	}{
		{name: "empty password", password: "", salt: salt, iterations: 1000, algorithm: SHA256},
		{name: "nil salt", password: "secret123", salt: nil, iterations: 1000, algorithm: SHA256},
		{name: "empty salt", password: "secret123", salt: []byte{}, iterations: 1000, algorithm: SHA256},
		{name: "zero iterations", password: "secret123", salt: salt, iterations: 0, algorithm: SHA256},
		{name: "negative iterations", password: "secret123", salt: salt, iterations: -5, algorithm: SHA256},
		{name: "unknown algorithm", password: "secret123", salt: salt, iterations: 1000, algorithm: Algorithm("MD5")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := HashPassword(tt.password, tt.salt, tt.iterations, tt.algorithm)
			require.Error(t, err)
			assert.True(t, util.HasCode(err, "VALIDATION_FAILED"))
		})
	}
}
