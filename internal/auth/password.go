package auth

import (
	"golang.org/x/crypto/bcrypt"

	util "github.com/spec-kit/food-order-service/pkg/util"
)

// HashPassword hashes a plaintext password with configured cost. Called
// explicitly on the write path, and only when the password value changes.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", util.NewInternalError(err)
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its stored hash. A mismatch
// returns false with a nil error; only backend failures produce an error.
func ComparePassword(hashed, plain string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	if err == nil {
		return true, nil
	}
	if err == bcrypt.ErrMismatchedHashAndPassword {
		return false, nil
	}
	return false, util.NewInternalError(err)
}
