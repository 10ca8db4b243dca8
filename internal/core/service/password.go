package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexedwards/argon2id"
	"golang.org/x/crypto/bcrypt"
)

// Argon2Params are the argon2id cost parameters used for new hashes.
type Argon2Params = argon2id.Params

var DefaultArgon2Params = Argon2Params{
	Memory:      64 * 1024,
	Iterations:  1,
	Parallelism: 4,
	SaltLength:  16,
	KeyLength:   32,
}

var errMalformedHash = errors.New("malformed password hash")

// PasswordHasher derives and verifies salted password hashes.
type PasswordHasher struct {
	params Argon2Params
}

func NewPasswordHasher(params Argon2Params) *PasswordHasher {
	return &PasswordHasher{params: params}
}

// Hash returns an encoded hash of the form
// $argon2id$v=19$m=65536,t=1,p=4$<salt>$<key>.
func (h *PasswordHasher) Hash(password string) (string, error) {
	params := h.params
	hash, err := argon2id.CreateHash(password, &params)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return hash, nil
}

// Verify reports whether password matches encoded. Legacy bcrypt hashes are
// accepted as well.
func (h *PasswordHasher) Verify(password, encoded string) (bool, error) {
	if isBcryptHash(encoded) {
		err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password))
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("failed to verify bcrypt hash: %w", err)
		}
		return true, nil
	}

	if err := checkArgon2Hash(encoded); err != nil {
		return false, err
	}

	match, err := argon2id.ComparePasswordAndHash(password, encoded)
	if err != nil {
		return false, fmt.Errorf("%w: %v", errMalformedHash, err)
	}
	return match, nil
}

func isBcryptHash(encoded string) bool {
	return strings.HasPrefix(encoded, "$2a$") ||
		strings.HasPrefix(encoded, "$2b$") ||
		strings.HasPrefix(encoded, "$2y$")
}

// checkArgon2Hash rejects encodings argon2 cannot derive a key from.
// Zero time or parallelism makes argon2.IDKey panic.
func checkArgon2Hash(encoded string) error {
	params, _, _, err := argon2id.DecodeHash(encoded)
	if err != nil {
		return fmt.Errorf("%w: %v", errMalformedHash, err)
	}
	if params.Iterations == 0 || params.Parallelism == 0 || params.Memory == 0 || params.KeyLength == 0 {
		return errMalformedHash
	}
	return nil
}
