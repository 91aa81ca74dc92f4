package mocks

import "errors"

// MockPasswordVerifier implements auth.PasswordVerifier for testing.
// It treats the hash as the plaintext it should equal, unless an
// override is provided.
type MockPasswordVerifier struct {
	CompareFn func(hashedPassword, password string) error
}

// ErrPasswordMismatch is returned when the default comparison fails.
var ErrPasswordMismatch = errors.New("password mismatch")

// Compare implements auth.PasswordVerifier.
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if hashedPassword != password {
		return ErrPasswordMismatch
	}
	return nil
}
