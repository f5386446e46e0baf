// Package auth holds the credential primitives used by the authenticator:
// password digests and Basic header parsing.
package auth

import (
	"crypto/sha1"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrMismatch is returned by Hasher.Compare when the password does not match.
var ErrMismatch = errors.New("password mismatch")

// Hasher turns passwords into stored digests and checks them.
type Hasher interface {
	Hash(password string) (string, error)
	Compare(digest, password string) error
}

const (
	HasherBcrypt = "bcrypt"
	HasherSHA1   = "sha1"
)

// NewHasher returns the hasher registered under name.
func NewHasher(name string) (Hasher, error) {
	switch name {
	case HasherBcrypt, "":
		return BcryptHasher{Cost: bcrypt.DefaultCost}, nil
	case HasherSHA1:
		return SHA1Hasher{}, nil
	default:
		return nil, fmt.Errorf("unknown password hasher %q", name)
	}
}

type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h BcryptHasher) Compare(digest, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	if err != nil {
		return ErrMismatch
	}
	return nil
}

// SHA1Hasher stores unsalted hex SHA-1 digests. It exists to verify
// accounts imported from stores that used this scheme.
type SHA1Hasher struct{}

func (SHA1Hasher) Hash(password string) (string, error) {
	sum := sha1.Sum([]byte(password))
	return hex.EncodeToString(sum[:]), nil
}

func (h SHA1Hasher) Compare(digest, password string) error {
	want, _ := h.Hash(password)
	if subtle.ConstantTimeCompare([]byte(digest), []byte(want)) != 1 {
		return ErrMismatch
	}
	return nil
}
