package services

import "golang.org/x/crypto/bcrypt"

// Bcrypt hashes passwords with bcrypt
type Bcrypt struct {
	Cost int
}

// Hash returns the bcrypt hash of the password
func (b Bcrypt) Hash(password string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}

	return string(hashedPassword), nil
}

// Compare reports wether the password matches the hash
func (Bcrypt) Compare(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
