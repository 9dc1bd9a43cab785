package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Coût bcrypt : ~60-80ms par hash, suffisant pour un login de formulaire.
const BcryptCost = 10

// HashPassword hash un mot de passe avec bcrypt (salt aléatoire inclus).
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword vérifie si un mot de passe correspond au hash stocké.
// Retourne (false, nil) pour un simple mismatch ; une erreur signale un
// hash corrompu ou un échec du hasher lui-même.
func VerifyPassword(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}
