package service

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	hasher := NewPasswordHasher(testArgon2Params)

	hash, err := hasher.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$m=8192,t=1,p=1$") {
		t.Errorf("unexpected hash encoding: %s", hash)
	}
	if strings.Contains(hash, "secret1") {
		t.Error("hash must not contain the password")
	}

	ok, err := hasher.Verify("secret1", hash)
	if err != nil || !ok {
		t.Errorf("expected password to verify, got ok=%v err=%v", ok, err)
	}

	ok, err = hasher.Verify("secret2", hash)
	if err != nil || ok {
		t.Errorf("expected wrong password to fail, got ok=%v err=%v", ok, err)
	}
}

func TestPasswordHasher_SaltedHashesDiffer(t *testing.T) {
	hasher := NewPasswordHasher(testArgon2Params)

	first, _ := hasher.Hash("secret1")
	second, _ := hasher.Hash("secret1")
	if first == second {
		t.Error("expected different hashes for the same password")
	}
}

func TestPasswordHasher_VerifyUsesEncodedParams(t *testing.T) {
	old := NewPasswordHasher(testArgon2Params)
	hash, _ := old.Hash("secret1")

	current := NewPasswordHasher(DefaultArgon2Params)
	ok, err := current.Verify("secret1", hash)
	if err != nil || !ok {
		t.Errorf("expected hash made with other params to verify, got ok=%v err=%v", ok, err)
	}
}

func TestPasswordHasher_LegacyBcrypt(t *testing.T) {
	hasher := NewPasswordHasher(testArgon2Params)

	legacy, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	ok, err := hasher.Verify("secret1", string(legacy))
	if err != nil || !ok {
		t.Errorf("expected bcrypt hash to verify, got ok=%v err=%v", ok, err)
	}

	ok, err = hasher.Verify("nope", string(legacy))
	if err != nil || ok {
		t.Errorf("expected wrong password to fail, got ok=%v err=%v", ok, err)
	}
}

func TestPasswordHasher_MalformedHash(t *testing.T) {
	hasher := NewPasswordHasher(testArgon2Params)

	for _, encoded := range []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=8192,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=18$m=8192,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$garbage$c2FsdA$a2V5",
		"$argon2id$v=19$m=8192,t=1,p=1$!!!$a2V5",
	} {
		ok, err := hasher.Verify("secret1", encoded)
		if err == nil || ok {
			t.Errorf("%q: expected error, got ok=%v err=%v", encoded, ok, err)
		}
	}
}

func TestPasswordHasher_ZeroCostParams(t *testing.T) {
	hasher := NewPasswordHasher(testArgon2Params)

	for _, encoded := range []string{
		"$argon2id$v=19$m=8192,t=0,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=8192,t=1,p=0$c2FsdA$a2V5",
		"$argon2id$v=19$m=0,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=8192,t=1,p=1$c2FsdA$",
	} {
		ok, err := hasher.Verify("secret1", encoded)
		if !errors.Is(err, errMalformedHash) || ok {
			t.Errorf("%q: expected errMalformedHash, got ok=%v err=%v", encoded, ok, err)
		}
	}
}
