package utils

import "golang.org/x/crypto/bcrypt"

// BcryptHasher hashes credentials with bcrypt. It satisfies the hashing seam
// the user service consumes, keeping the primitive swappable.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash hashes a plain text password.
func (h *BcryptHasher) Hash(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), h.cost)
	return string(b), err
}

// Compare checks a plain text password against its stored hash.
func (h *BcryptHasher) Compare(hash, pw string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw))
}
