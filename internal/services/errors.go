package services

import "errors"

var (
	// ErrUnauthorized : token bearer absent ou ne correspondant à aucun user.
	ErrUnauthorized = errors.New("non authentifié")
	// ErrEmptyCart : checkout refusé, panier absent ou vide.
	ErrEmptyCart = errors.New("panier vide")
	// ErrBadFeed : flux d'import illisible, le lot entier est rejeté.
	ErrBadFeed = errors.New("flux d'import invalide")
)
