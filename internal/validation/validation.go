// Package validation vérifie les payloads d'inscription avant qu'ils ne
// touchent le stockage. Aucune I/O ici : uniquement des règles de forme.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	PasswordMinLength = 8
	NameMinLength     = 3
	NameMaxLength     = 30

	// Jeu de symboles accepté pour les mots de passe.
	AllowedSymbols = "!@#$%^&*()-_=+[]{};:,.?"
)

// Forme local@domain.tld classique, rien de plus malin.
var emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// Error est une erreur corrigeable par l'utilisateur (HTTP 422).
// Le message nomme la première règle qui échoue.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func invalid(format string, args ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// Registration valide un payload d'inscription et retourne la première
// règle en échec, ou nil si tout passe.
func Registration(email, name, password string) error {
	if !emailRe.MatchString(email) {
		return invalid("Adresse email invalide")
	}
	if n := utf8.RuneCountInString(name); n < NameMinLength || n > NameMaxLength {
		return invalid("Le nom doit contenir entre %d et %d caractères", NameMinLength, NameMaxLength)
	}
	return Password(password)
}

// Password applique la politique de composition du mot de passe.
func Password(password string) error {
	if utf8.RuneCountInString(password) < PasswordMinLength {
		return invalid("Le mot de passe doit contenir au moins %d caractères", PasswordMinLength)
	}

	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(AllowedSymbols, r):
			hasSymbol = true
		}
	}

	switch {
	case !hasLower:
		return invalid("Le mot de passe doit contenir au moins une minuscule")
	case !hasUpper:
		return invalid("Le mot de passe doit contenir au moins une majuscule")
	case !hasDigit:
		return invalid("Le mot de passe doit contenir au moins un chiffre")
	case !hasSymbol:
		return invalid("Le mot de passe doit contenir au moins un symbole (%s)", AllowedSymbols)
	}
	return nil
}
