package mocks

import (
	"errors"
	"sync"
)

// ErrPasswordMismatch is returned by MockPasswordVerifier when ShouldSucceed is false.
var ErrPasswordMismatch = errors.New("password mismatch")

// MockPasswordVerifier implements auth.PasswordVerifier for testing
type MockPasswordVerifier struct {
	mu sync.Mutex

	// ShouldSucceed determines whether the password comparison should succeed
	ShouldSucceed bool

	// CompareFn allows for custom comparison logic in tests
	CompareFn func(hashedPassword, password string) error

	compareCalls int
	dummyCalls   int
}

// Compare implements the auth.PasswordVerifier interface
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	m.mu.Lock()
	m.compareCalls++
	m.mu.Unlock()

	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if m.ShouldSucceed {
		return nil
	}
	return ErrPasswordMismatch
}

// CompareDummy records that a login for an unknown email still paid for a comparison.
func (m *MockPasswordVerifier) CompareDummy(password string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dummyCalls++
}

// Calls returns how many times Compare and CompareDummy were called.
func (m *MockPasswordVerifier) Calls() (compare, dummy int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.compareCalls, m.dummyCalls
}
