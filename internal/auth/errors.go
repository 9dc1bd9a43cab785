package auth

import "errors"

var (
	// Échec de lookup : aucun compte sous ce username dans la collection du rôle.
	ErrNotFound = errors.New("compte introuvable")
	// Le mot de passe soumis ne correspond pas au hash stocké.
	ErrBadCredentials = errors.New("mot de passe incorrect")
	// Un compte avec ce username existe déjà dans la collection du rôle.
	ErrAlreadyExists = errors.New("un compte avec ce nom existe déjà")
	// Le tag de rôle d'une session ne correspond à aucune collection.
	ErrUnknownRole = errors.New("rôle de session inconnu")
	// L'id sérialisé en session ne se résout plus vers un compte.
	ErrAccountNotFound = errors.New("compte de session introuvable")
)
