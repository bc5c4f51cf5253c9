package tools

import "golang.org/x/crypto/bcrypt"

// PasswordEncrypt hashes a plaintext password for storage.
func PasswordEncrypt(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	PanicOnErr(err)
	return string(hash)
}

// PasswordCompare reports whether the plaintext password matches the stored hash.
func PasswordCompare(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
