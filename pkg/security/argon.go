// Package security contains everything related to the security of user data
package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

type ArgonHash struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

func New() *ArgonHash {
	return &ArgonHash{
		Memory:      64 * 1024,
		Iterations:  3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// GenerateFromPassword hashes p and returns the PHC-style encoded string
// that gets stored in the users table.
func (a *ArgonHash) GenerateFromPassword(p string) (string, error) {
	salt := make([]byte, a.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(p), salt, a.Iterations, a.Memory, a.Parallelism, a.KeyLength)

	encoded := fmt.Sprintf("$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		a.Memory, a.Iterations, a.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash))

	return encoded, nil
}

// VerifyPasswd compares a password p with the stored PHC-style encoded hash e.
// The parameters embedded in e win over the ones configured on a, so stored
// hashes survive parameter bumps.
func (a *ArgonHash) VerifyPasswd(p, e string) (bool, error) {
	memory, iterations, parallelism, salt, hash, err := decodeHash(e)
	if err != nil {
		return false, err
	}

	calc := argon2.IDKey([]byte(p), salt, iterations, memory, parallelism, uint32(len(hash)))

	return subtle.ConstantTimeCompare(hash, calc) == 1, nil
}

func decodeHash(e string) (memory, iterations uint32, parallelism uint8, salt, hash []byte, err error) {
	parts := strings.Split(e, "$")
	if len(parts) != 6 {
		err = errors.New("invalid hash format")
		return
	}

	if _, err = fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism); err != nil {
		return
	}

	if salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return
	}

	hash, err = base64.RawStdEncoding.DecodeString(parts[5])
	return
}
