package password

import "golang.org/x/crypto/bcrypt"

// Hasher is the opaque one-way password capability consumed by the auth
// flows. Keeping it behind an interface lets tests observe exactly when a
// password comparison happens.
type Hasher interface {
	Hash(plain string) (string, error)
	Compare(plain, digest string) bool
}

// Bcrypt implements Hasher with bcrypt at the given cost.
type Bcrypt struct {
	Cost int
}

func NewBcrypt() Bcrypt {
	return Bcrypt{Cost: bcrypt.DefaultCost}
}

func (b Bcrypt) Hash(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), b.Cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

func (b Bcrypt) Compare(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
