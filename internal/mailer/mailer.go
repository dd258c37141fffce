package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog"
)

type Config struct {
	Host     string
	Port     string
	From     string
	Password string
}

// Enabled reports whether enough SMTP settings are present to send mail.
func (c Config) Enabled() bool {
	return c.Host != "" && c.From != ""
}

func SendOrderConfirmation(log *zerolog.Logger, cfg Config, recipientEmail string) error {
	if !cfg.Enabled() {
		log.Warn().Str("email", recipientEmail).Msg("SMTP not configured, skipping confirmation email")
		return nil
	}

	subject := "Your order is confirmed"
	body := "Hello!\n\nYour spot on the drop has been reserved. We'll be in touch with the details.\n\nThanks for joining."

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		cfg.From, recipientEmail, subject, body,
	)

	addr := cfg.Host + ":" + cfg.Port
	auth := smtp.PlainAuth("", cfg.From, cfg.Password, cfg.Host)

	if err := smtp.SendMail(addr, auth, cfg.From, []string{recipientEmail}, []byte(msg)); err != nil {
		log.Warn().Msgf("failed to send email to %s: %v", recipientEmail, err)
		return fmt.Errorf("send email: %w", err)
	}

	log.Info().Msgf("Confirmation email sent to %s", recipientEmail)
	return nil
}
