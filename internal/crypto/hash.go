// Package crypto provides salt generation and password hashing for the
// credential subsystem. Hashes are derived with PBKDF2 so that the salt,
// iteration count and digest algorithm recorded per user reproduce the
// stored hash deterministically.
package crypto

import (
	"crypto/rand"
	"crypto/sha1" //nolint:gosec // legacy digest kept for verifying old hashes
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"fmt"
	"hash"

	"golang.org/x/crypto/pbkdf2"

	"github.com/Senegura/TicketSystem/pkg/util"
)

// DefaultSaltSize is the salt length in bytes used when callers have no
// configured override.
const DefaultSaltSize = 32

// Algorithm names a digest family usable with HashPassword.
type Algorithm string

const (
	SHA1   Algorithm = "SHA1"
	SHA256 Algorithm = "SHA256"
	SHA384 Algorithm = "SHA384"
	SHA512 Algorithm = "SHA512"
)

// digest returns the hash constructor and derived-key length for the algorithm.
func (a Algorithm) digest() (func() hash.Hash, int, error) {
	switch a {
	case SHA1:
		return sha1.New, 20, nil
	case SHA256:
		return sha256.New, 32, nil
	case SHA384:
		return sha512.New384, 48, nil
	case SHA512:
		return sha512.New, 64, nil
	default:
		return nil, 0, util.NewValidationError(
			fmt.Sprintf("unsupported hash algorithm %q", string(a)), nil)
	}
}

// GenerateSalt returns size bytes of cryptographically secure random data.
func GenerateSalt(size int) ([]byte, error) {
	if size <= 0 {
		return nil, util.NewValidationError("salt size must be greater than 0", nil)
	}
	salt := make([]byte, size)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// HashPassword derives a fixed-length digest from password and salt using
// PBKDF2 with the given iteration count and digest algorithm, and returns
// it base64 encoded. The output length is fixed by the digest family.
func HashPassword(password string, salt []byte, iterations int, algorithm Algorithm) (string, error) {
	if password == "" {
		return "", util.NewValidationError("password cannot be empty", nil)
	}
	if len(salt) == 0 {
		return "", util.NewValidationError("salt cannot be empty", nil)
	}
	if iterations <= 0 {
		return "", util.NewValidationError("iteration count must be greater than 0", nil)
	}

	newHash, keyLen, err := algorithm.digest()
	if err != nil {
		return "", err
	}

	key := pbkdf2.Key([]byte(password), salt, iterations, keyLen, newHash)
	return base64.StdEncoding.EncodeToString(key), nil
}
