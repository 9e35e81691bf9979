// Package password hashes and verifies user passwords with bcrypt.
//
// Every hash carries its own random salt, so hashing the same plaintext twice
// yields different strings. Callers must never log either argument.
package password

import (
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// MaxBytes is the longest input bcrypt accepts.
const MaxBytes = 72

// Hash returns the bcrypt hash of plain using bcrypt.DefaultCost.
func Hash(plain string) (string, error) {
	return HashWithCost(plain, bcrypt.DefaultCost)
}

// HashWithCost is Hash with an explicit work factor; tests use bcrypt.MinCost.
func HashWithCost(plain string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("password.Hash: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plain matches hash. A malformed hash is a mismatch.
func Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// dummyHash 首次使用时生成，与真实哈希同等代价
var dummyHash = sync.OnceValue(func() string {
	hashed, err := bcrypt.GenerateFromPassword([]byte("delishare-dummy-password"), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("password: dummy hash: %v", err))
	}
	return string(hashed)
})

// DummyHash returns a fixed bcrypt hash at bcrypt.DefaultCost. Comparing
// against it when no account matches keeps that path as slow as a real
// password check.
func DummyHash() string {
	return dummyHash()
}
