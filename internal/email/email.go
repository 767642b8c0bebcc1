package email

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/wneessen/go-mail"
)

// Mailer sends transactional mail over SMTP. When SMTP_HOST is not configured
// (local dev), messages are logged to the console instead of being sent.
type Mailer struct {
	host string
	port int
	user string
	pass string
	from string
}

// NewMailerFromEnv builds a Mailer from SMTP_HOST / SMTP_PORT / SMTP_USERNAME /
// SMTP_PASSWORD / MAIL_FROM.
func NewMailerFromEnv() *Mailer {
	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
		port = p
	}
	from := os.Getenv("MAIL_FROM")
	if from == "" {
		from = "noreply@spiceshelf.kitchen"
	}
	return &Mailer{
		host: os.Getenv("SMTP_HOST"),
		port: port,
		user: os.Getenv("SMTP_USERNAME"),
		pass: os.Getenv("SMTP_PASSWORD"),
		from: from,
	}
}

// Send delivers a plain-text email, or logs it when SMTP is unconfigured.
func (m *Mailer) Send(to, subject, body string) error {
	if m.host == "" {
		log.Println("====================================================")
		log.Printf("--- EMAIL (SMTP not configured, logging only) ---")
		log.Printf("To: %s", to)
		log.Printf("Subject: %s", subject)
		log.Println(body)
		log.Println("====================================================")
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	client, err := mail.NewClient(m.host,
		mail.WithPort(m.port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(m.user),
		mail.WithPassword(m.pass),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	return client.DialAndSend(msg)
}

// SendEmailChangeConfirmation mails the one-time token for an address change
// to the account's *current* inbox.
func (m *Mailer) SendEmailChangeConfirmation(to, newEmail, token string) error {
	subject := "Confirm your Spiceshelf email change"
	body := fmt.Sprintf(
		"A change of your account email to %s was requested.\n\n"+
			"Confirmation token: %s\n\n"+
			"The token expires in 1 hour. If you did not request this, ignore this message.",
		newEmail, token,
	)
	return m.Send(to, subject, body)
}
