package user

import "golang.org/x/crypto/bcrypt"

// HashPassword produces a salted one-way bcrypt hash of the plaintext. Each
// call salts freshly, so equal inputs yield distinct stored values.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plain matches the stored hash. A mismatch is
// a normal false, never an error.
func CheckPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
