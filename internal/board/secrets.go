package board

import "crypto/subtle"

// Secrets are the two shared gate values. They keep casual viewers from
// peeking or deleting; they are not authentication.
type Secrets struct {
	PIN      string
	Password string
}

// CheckPIN reports whether pin opens the reveal gate.
func (s Secrets) CheckPIN(pin string) bool {
	return equal(pin, s.PIN)
}

// CheckPassword reports whether password opens the delete gate.
func (s Secrets) CheckPassword(password string) bool {
	return equal(password, s.Password)
}

func equal(got, want string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
