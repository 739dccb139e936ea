package services

import "sync"

// UserLocks sérialise les mutations du panier d'un même utilisateur.
// Deux requêtes concurrentes du même user passent l'une après l'autre,
// sinon une mutation concurrente de la liste de produits peut perdre un
// ajout ou une suppression. Les users différents ne se bloquent pas.
//
// Le même verrou est partagé entre CartService et CheckoutService : le
// cycle lecture-vidage-écriture du checkout compte comme une mutation.
type UserLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewUserLocks() *UserLocks {
	return &UserLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock prend le verrou du user et retourne la fonction qui le relâche.
func (l *UserLocks) Lock(userID string) func() {
	l.mu.Lock()
	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
