package services

import "github.com/google/uuid"

// IDGenerator fabrique les ids opaques de toutes les entités. Injecté dans
// chaque service pour que les tests puissent fournir des ids déterministes.
type IDGenerator func() string

// NewID est le générateur par défaut (UUID v4 aléatoire).
func NewID() string {
	return uuid.NewString()
}
