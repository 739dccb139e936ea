package services

import (
	"context"
	"errors"
	"log"

	"boutique_back_end/internal/models"
	"boutique_back_end/internal/storage"
	"boutique_back_end/internal/utils"
	"boutique_back_end/internal/validation"
)

// IdentityService gère l'inscription et l'authentification. L'id généré à
// l'inscription est aussi le token bearer que le client présente ensuite :
// pas de session, pas de token signé.
type IdentityService struct {
	store storage.Store
	newID IDGenerator
}

func NewIdentityService(store storage.Store, newID IDGenerator) *IdentityService {
	if newID == nil {
		newID = NewID
	}
	return &IdentityService{store: store, newID: newID}
}

// Register valide le payload, hash le mot de passe et crée l'utilisateur.
// Aucune unicité d'email n'est imposée : deux inscriptions avec le même
// email donnent deux comptes distincts.
func (s *IdentityService) Register(ctx context.Context, email, name, password string) (models.User, error) {
	if err := validation.Registration(email, name, password); err != nil {
		return models.User{}, err
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:       s.newID(),
		Email:    email,
		Name:     name,
		Password: hashed,
	}

	if err := s.store.InsertUser(ctx, user); err != nil {
		return models.User{}, err
	}

	// Mail de bienvenue hors chemin critique : un SMTP en panne ne doit
	// pas faire échouer l'inscription.
	go func(email, name string) {
		if err := utils.SendWelcomeEmail(email, name); err != nil {
			log.Println("⚠️ Envoi du mail de bienvenue impossible:", err)
		}
	}(user.Email, user.Name)

	return user, nil
}

// Authenticate résout un token bearer vers l'utilisateur correspondant.
func (s *IdentityService) Authenticate(ctx context.Context, token string) (models.User, error) {
	if token == "" {
		return models.User{}, ErrUnauthorized
	}
	user, err := s.store.FindUser(ctx, token)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.User{}, ErrUnauthorized
		}
		return models.User{}, err
	}
	return user, nil
}
