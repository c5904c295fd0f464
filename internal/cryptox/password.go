// Package cryptox wraps the password-hashing primitives used by the ledger.
// Only derived hashes ever reach storage; plaintext passwords stay in the
// request scope.
package cryptox

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a storable credential hash from a plaintext password.
func HashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

// CheckPassword reports whether password matches the stored hash.
func CheckPassword(hash []byte, password string) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}
