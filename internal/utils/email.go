package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/wneessen/go-mail"
)

// SendWelcomeEmail envoie le mail de bienvenue après inscription.
// Appelé en goroutine par le service d'identité : un échec SMTP ne doit
// jamais faire échouer l'inscription elle-même.
func SendWelcomeEmail(to, name string) error {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return nil // SMTP non configuré, on n'envoie rien
	}

	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
		port = p
	}

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@boutique.local"
	}

	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject("Bienvenue sur la boutique")
	msg.SetBodyString(mail.TypeTextHTML, welcomeHTML(name))

	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi du mail de bienvenue à", to)
	return client.DialAndSend(msg)
}

func welcomeHTML(name string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Bienvenue, %s !</h2>
		<p>Votre compte est prêt. Bonne visite sur la boutique.</p>
	</div>
</body>
</html>`, name)
}
