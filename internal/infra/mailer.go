package infra

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"
)

// Mailer sends transactional mail (receipts, low-stock digests) over SMTP.
// Sends go through a circuit breaker so a dead relay cannot pile up workers.
type Mailer struct {
	host     string
	port     int
	user     string
	password string
	breaker  *CircuitBreaker
}

func NewMailer(host string, port int, user, password string) *Mailer {
	return &Mailer{
		host:     host,
		port:     port,
		user:     user,
		password: password,
		breaker:  NewCircuitBreaker(5, 2*time.Minute),
	}
}

// Enabled reports whether SMTP is configured at all.
func (m *Mailer) Enabled() bool { return m.host != "" }

// Send delivers a message with an optional PDF attachment.
func (m *Mailer) Send(to, subject, body string, attachmentPath string) error {
	if !m.Enabled() {
		return nil
	}

	return m.breaker.Do(func() error {
		e := email.NewEmail()
		e.From = m.user
		e.To = []string{to}
		e.Subject = subject
		e.Text = []byte(body)
		if attachmentPath != "" {
			if _, err := e.AttachFile(attachmentPath); err != nil {
				return err
			}
		}

		addr := fmt.Sprintf("%s:%d", m.host, m.port)
		return e.Send(addr, smtp.PlainAuth("", m.user, m.password, m.host))
	})
}
